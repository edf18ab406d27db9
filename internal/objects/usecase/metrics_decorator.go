package usecase

import (
	"context"
	"time"

	"github.com/allisson/receiptvault/internal/metrics"
)

// gatewayWithMetrics decorates Gateway with metrics instrumentation.
type gatewayWithMetrics struct {
	next    Gateway
	metrics metrics.BusinessMetrics
}

// NewGatewayWithMetrics wraps a Gateway with metrics recording.
func NewGatewayWithMetrics(gateway Gateway, m metrics.BusinessMetrics) Gateway {
	return &gatewayWithMetrics{
		next:    gateway,
		metrics: m,
	}
}

// Upload records metrics for upload operations.
func (g *gatewayWithMetrics) Upload(ctx context.Context, input UploadInput) (string, error) {
	start := time.Now()
	path, err := g.next.Upload(ctx, input)
	g.record(ctx, "upload", start, err)
	return path, err
}

// Download records metrics for download operations.
func (g *gatewayWithMetrics) Download(
	ctx context.Context,
	path, requesterID string,
) (*DownloadOutput, error) {
	start := time.Now()
	output, err := g.next.Download(ctx, path, requesterID)
	g.record(ctx, "download", start, err)
	return output, err
}

// Delete records metrics for delete operations.
func (g *gatewayWithMetrics) Delete(ctx context.Context, path string) error {
	start := time.Now()
	err := g.next.Delete(ctx, path)
	g.record(ctx, "delete", start, err)
	return err
}

// NormalizePath is a pure mapping and is not instrumented.
func (g *gatewayWithMetrics) NormalizePath(path string) string {
	return g.next.NormalizePath(path)
}

func (g *gatewayWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	g.metrics.RecordOperation(ctx, "objects", operation, status)
	g.metrics.RecordDuration(ctx, "objects", operation, time.Since(start), status)
}
