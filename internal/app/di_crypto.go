package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/receiptvault/internal/crypto/domain"
	cryptoService "github.com/allisson/receiptvault/internal/crypto/service"
)

// SecretKey returns the process-wide secret key, resolving it on first access.
// Resolution fails closed in production-like environments.
func (c *Container) SecretKey(ctx context.Context) (*cryptoDomain.SecretKey, error) {
	c.secretKeyInit.Do(func() {
		secretKey, err := cryptoDomain.LoadSecretKey(ctx, c.config, cryptoService.NewKMSService(), c.Logger())
		if err != nil {
			c.initErrors["secretKey"] = err
			return
		}
		c.secretKey = secretKey
	})
	if storedErr, exists := c.initErrors["secretKey"]; exists {
		return nil, storedErr
	}
	return c.secretKey, nil
}

// TokenCipher returns the token cipher built on the derived cipher subkey.
func (c *Container) TokenCipher(ctx context.Context) (cryptoService.TokenCipher, error) {
	c.tokenCipherInit.Do(func() {
		tokenCipher, err := c.initTokenCipher(ctx)
		if err != nil {
			c.initErrors["tokenCipher"] = err
			return
		}
		c.tokenCipher = tokenCipher
	})
	if storedErr, exists := c.initErrors["tokenCipher"]; exists {
		return nil, storedErr
	}
	return c.tokenCipher, nil
}

// Fingerprinter returns the keyed fingerprinter built on the derived
// fingerprint subkey.
func (c *Container) Fingerprinter(ctx context.Context) (cryptoService.Fingerprinter, error) {
	c.fingerprinterInit.Do(func() {
		fingerprinter, err := c.initFingerprinter(ctx)
		if err != nil {
			c.initErrors["fingerprinter"] = err
			return
		}
		c.fingerprinter = fingerprinter
	})
	if storedErr, exists := c.initErrors["fingerprinter"]; exists {
		return nil, storedErr
	}
	return c.fingerprinter, nil
}

// initTokenCipher builds the token cipher for the configured AEAD algorithm
// with the configured integrity failure policy.
func (c *Container) initTokenCipher(ctx context.Context) (cryptoService.TokenCipher, error) {
	secretKey, err := c.SecretKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key for token cipher: %w", err)
	}

	policy, err := cryptoService.ParseFailurePolicy(c.config.OnDecryptFailure)
	if err != nil {
		return nil, err
	}

	cipherKey := secretKey.CipherKey()
	defer cryptoDomain.Zero(cipherKey)

	aead, err := cryptoService.NewAEADManager().CreateCipher(
		cipherKey,
		cryptoDomain.Algorithm(c.config.CryptoAlgorithm),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return cryptoService.NewTokenCipher(aead, policy), nil
}

// initFingerprinter builds the HMAC fingerprinter.
func (c *Container) initFingerprinter(ctx context.Context) (cryptoService.Fingerprinter, error) {
	secretKey, err := c.SecretKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key for fingerprinter: %w", err)
	}

	fingerprintKey := secretKey.FingerprintKey()
	defer cryptoDomain.Zero(fingerprintKey)

	return cryptoService.NewHMACFingerprinter(fingerprintKey), nil
}
