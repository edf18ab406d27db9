package domain

import (
	"github.com/allisson/receiptvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures.
var (
	// ErrSecretKeyNotSet indicates no SECRET_KEY is configured in a
	// production-like environment. Startup must abort.
	ErrSecretKeyNotSet = errors.Wrap(errors.ErrConfiguration, "secret key not set")

	// ErrInvalidSecretKey indicates the configured secret key is not
	// 64 hex characters (32 bytes).
	ErrInvalidSecretKey = errors.Wrap(errors.ErrConfiguration, "secret key must be 64 hex characters")

	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	//
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305)
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	//
	// All keys must be exactly 32 bytes (256 bits) for both AES-256-GCM
	// and ChaCha20-Poly1305.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates an authenticated decryption operation failed.
	//
	// This error can occur due to:
	//   - Wrong decryption key used
	//   - Ciphertext has been tampered with (authentication failure)
	//   - Invalid nonce provided
	//   - Corrupted or truncated token
	//
	// For security reasons, the specific cause is not disclosed to prevent
	// information leakage that could aid attackers.
	ErrDecryptionFailed = errors.Wrap(errors.ErrIntegrity, "decryption failed")
)
