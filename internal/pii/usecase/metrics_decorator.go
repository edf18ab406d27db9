package usecase

import (
	"context"
	"time"

	"github.com/allisson/receiptvault/internal/metrics"
	piiDomain "github.com/allisson/receiptvault/internal/pii/domain"
)

// codecWithMetrics decorates Codec with metrics instrumentation.
type codecWithMetrics struct {
	next    Codec
	metrics metrics.BusinessMetrics
}

// NewCodecWithMetrics wraps a Codec with metrics recording.
func NewCodecWithMetrics(codec Codec, m metrics.BusinessMetrics) Codec {
	return &codecWithMetrics{
		next:    codec,
		metrics: m,
	}
}

// EncodeTaxID records metrics for tax ID encode operations.
func (c *codecWithMetrics) EncodeTaxID(ctx context.Context, raw string) (*piiDomain.EncodedValue, error) {
	start := time.Now()
	value, err := c.next.EncodeTaxID(ctx, raw)
	c.record(ctx, "encode_tax_id", start, err)
	return value, err
}

// EncodeVehicleID records metrics for vehicle ID encode operations.
func (c *codecWithMetrics) EncodeVehicleID(ctx context.Context, raw string) (*piiDomain.EncodedValue, error) {
	start := time.Now()
	value, err := c.next.EncodeVehicleID(ctx, raw)
	c.record(ctx, "encode_vehicle_id", start, err)
	return value, err
}

// DecodeValue records metrics for decode operations.
func (c *codecWithMetrics) DecodeValue(ctx context.Context, token string) (string, error) {
	start := time.Now()
	plaintext, err := c.next.DecodeValue(ctx, token)
	c.record(ctx, "decode_value", start, err)
	return plaintext, err
}

func (c *codecWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordOperation(ctx, "pii", operation, status)
	c.metrics.RecordDuration(ctx, "pii", operation, time.Since(start), status)
}
