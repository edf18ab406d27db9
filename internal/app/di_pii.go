package app

import (
	"context"
	"fmt"

	piiUsecase "github.com/allisson/receiptvault/internal/pii/usecase"
)

// Codec returns the PII codec wrapped with metrics instrumentation.
func (c *Container) Codec(ctx context.Context) (piiUsecase.Codec, error) {
	c.codecInit.Do(func() {
		codec, err := c.initCodec(ctx)
		if err != nil {
			c.initErrors["codec"] = err
			return
		}
		c.codec = codec
	})
	if storedErr, exists := c.initErrors["codec"]; exists {
		return nil, storedErr
	}
	return c.codec, nil
}

// initCodec creates the PII codec with all its dependencies.
func (c *Container) initCodec(ctx context.Context) (piiUsecase.Codec, error) {
	tokenCipher, err := c.TokenCipher(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get token cipher for codec: %w", err)
	}

	fingerprinter, err := c.Fingerprinter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get fingerprinter for codec: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for codec: %w", err)
	}

	codec := piiUsecase.NewCodec(tokenCipher, fingerprinter)
	return piiUsecase.NewCodecWithMetrics(codec, businessMetrics), nil
}
