// Package domain defines key material types for the PII protection core.
//
// A single 256-bit secret is resolved once at process start and owned by the
// process root. Purpose-specific subkeys (encryption, fingerprinting) are
// derived from it so that compromise of one does not compromise the other.
package domain

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/crypto/hkdf"

	"github.com/allisson/receiptvault/internal/config"
	"github.com/allisson/receiptvault/internal/errors"
)

// Subkey derivation info strings. These MUST stay stable: changing one
// invalidates every ciphertext or fingerprint produced under it.
const (
	cipherKeyInfo      = "receiptvault:cipher:v1"
	fingerprintKeyInfo = "receiptvault:fingerprint:v1"

	// developmentKeyLabel seeds the deterministic fallback key used when no
	// SECRET_KEY is configured outside production.
	developmentKeyLabel = "receiptvault:development-only-key"
)

// KMSKeeper decrypts key material wrapped by an external KMS.
// *gocloud.dev/secrets.Keeper implements this interface.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens a KMSKeeper for a configured provider URI.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// SecretKey holds the process-wide 32-byte symmetric secret and derives
// purpose-specific subkeys from it. The raw material never leaves this type
// except through the derived subkeys, and is never persisted by this core.
type SecretKey struct {
	key []byte
}

// NewSecretKey wraps raw key material. The key must be exactly 32 bytes.
func NewSecretKey(key []byte) (*SecretKey, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &SecretKey{key: k}, nil
}

// CipherKey derives the 32-byte subkey used for authenticated encryption.
func (s *SecretKey) CipherKey() []byte {
	return s.derive(cipherKeyInfo)
}

// FingerprintKey derives the 32-byte subkey used for searchable fingerprints.
func (s *SecretKey) FingerprintKey() []byte {
	return s.derive(fingerprintKeyInfo)
}

// derive expands a purpose-specific subkey via HKDF-SHA256. The info string
// is the only thing separating the subkeys, so it must be unique per purpose.
func (s *SecretKey) derive(info string) []byte {
	out := make([]byte, KeySize)
	r := hkdf.New(sha256.New, s.key, nil, []byte(info))
	if _, err := io.ReadFull(r, out); err != nil {
		// HKDF-SHA256 cannot fail for a 32-byte read.
		panic(fmt.Sprintf("hkdf derive: %v", err))
	}
	return out
}

// Close zeroes the key material. The SecretKey must not be used afterwards.
func (s *SecretKey) Close() {
	Zero(s.key)
	s.key = nil
}

// LoadSecretKey resolves the process secret key from configuration.
//
// Resolution order:
//   - SECRET_KEY set with KMS configured: the value is base64 KMS ciphertext,
//     unwrapped through the configured keeper.
//   - SECRET_KEY set without KMS: the value is 64 hex characters (32 bytes).
//   - SECRET_KEY absent: fatal in a production-like environment (fail closed
//     at startup); in development a deterministic fallback key is derived
//     from a fixed label and a loud warning is logged.
func LoadSecretKey(
	ctx context.Context,
	cfg *config.Config,
	kms KMSService,
	logger *slog.Logger,
) (*SecretKey, error) {
	if cfg.SecretKey == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("%w: refusing to start in %s", ErrSecretKeyNotSet, cfg.Environment)
		}
		logger.Warn("SECRET_KEY not set, using deterministic development key",
			slog.String("environment", cfg.Environment))
		return developmentSecretKey()
	}

	if cfg.KMSProvider != "" && cfg.KMSKeyURI != "" {
		return unwrapSecretKey(ctx, cfg, kms)
	}

	raw, err := hex.DecodeString(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecretKey, err)
	}
	defer Zero(raw)

	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidSecretKey, len(raw))
	}

	return NewSecretKey(raw)
}

// unwrapSecretKey decrypts a KMS-wrapped secret key through a gocloud keeper.
func unwrapSecretKey(ctx context.Context, cfg *config.Config, kms KMSService) (*SecretKey, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(cfg.SecretKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfiguration, fmt.Sprintf("invalid base64 secret key: %v", err))
	}

	keeper, err := kms.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfiguration, fmt.Sprintf("failed to open KMS keeper: %v", err))
	}
	defer func() { _ = keeper.Close() }()

	raw, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfiguration, fmt.Sprintf("failed to unwrap secret key: %v", err))
	}
	defer Zero(raw)

	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: unwrapped key is %d bytes", ErrInvalidSecretKey, len(raw))
	}

	return NewSecretKey(raw)
}

// developmentSecretKey derives a deterministic key from a fixed label.
// Reachable only outside production-like environments.
func developmentSecretKey() (*SecretKey, error) {
	raw := make([]byte, KeySize)
	r := hkdf.New(sha256.New, []byte(developmentKeyLabel), nil, nil)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("failed to derive development key: %w", err)
	}
	defer Zero(raw)
	return NewSecretKey(raw)
}
