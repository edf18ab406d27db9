package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/receiptvault/internal/metrics"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestCodecWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockMetrics := &mockBusinessMetrics{}
		mockMetrics.On("RecordOperation", ctx, "pii", "encode_tax_id", "success").Once()
		mockMetrics.On("RecordDuration", ctx, "pii", "encode_tax_id", mock.AnythingOfType("time.Duration"), "success").Once()

		decorator := NewCodecWithMetrics(newTestCodec(t), mockMetrics)

		value, err := decorator.EncodeTaxID(ctx, "123-45-6789")
		require.NoError(t, err)
		assert.NotNil(t, value)

		mockMetrics.AssertExpectations(t)
	})

	t.Run("InvalidInputStillRecordsSuccess", func(t *testing.T) {
		// Validation rejection is (nil, nil), not an error, so it counts as success.
		mockMetrics := &mockBusinessMetrics{}
		mockMetrics.On("RecordOperation", ctx, "pii", "encode_tax_id", "success").Once()
		mockMetrics.On("RecordDuration", ctx, "pii", "encode_tax_id", mock.AnythingOfType("time.Duration"), "success").Once()

		decorator := NewCodecWithMetrics(newTestCodec(t), mockMetrics)

		value, err := decorator.EncodeTaxID(ctx, "bad")
		require.NoError(t, err)
		assert.Nil(t, value)

		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockMetrics := &mockBusinessMetrics{}
		mockMetrics.On("RecordOperation", ctx, "pii", "decode_value", "error").Once()
		mockMetrics.On("RecordDuration", ctx, "pii", "decode_value", mock.AnythingOfType("time.Duration"), "error").Once()

		decorator := NewCodecWithMetrics(newTestCodec(t), mockMetrics)

		_, err := decorator.DecodeValue(ctx, "bm90LWEtdmFsaWQtdG9rZW4tYXQtYWxs")
		assert.Error(t, err)

		mockMetrics.AssertExpectations(t)
	})

	t.Run("VehicleID_Records", func(t *testing.T) {
		mockMetrics := &mockBusinessMetrics{}
		mockMetrics.On("RecordOperation", ctx, "pii", "encode_vehicle_id", "success").Once()
		mockMetrics.On("RecordDuration", ctx, "pii", "encode_vehicle_id", mock.AnythingOfType("time.Duration"), "success").Once()

		decorator := NewCodecWithMetrics(newTestCodec(t), mockMetrics)

		value, err := decorator.EncodeVehicleID(ctx, "1HGCM82633A004352")
		require.NoError(t, err)
		assert.NotNil(t, value)

		mockMetrics.AssertExpectations(t)
	})
}
