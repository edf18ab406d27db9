// Package service provides the cryptographic services of the PII protection core:
// AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305), the self-contained token cipher
// used for sensitive columns, and the keyed fingerprinter that makes ciphertext
// searchable by exact value.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/receiptvault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// TokenCipher encrypts opaque strings into self-contained base64 tokens
// (nonce || tag || ciphertext) and back.
type TokenCipher interface {
	// Encrypt returns a fresh token for plaintext. Empty input is returned unchanged.
	Encrypt(plaintext string) (string, error)

	// Decrypt recovers the plaintext from a token. Behavior on integrity
	// failure is governed by the configured FailurePolicy.
	Decrypt(token string) (string, error)
}

// Fingerprinter derives a deterministic, non-reversible digest of a normalized
// plaintext value, enabling equality lookups over ciphertext-only storage.
type Fingerprinter interface {
	// Fingerprint returns base64(HMAC-SHA256(key, normalize(plaintext))).
	// Empty input returns the empty string.
	Fingerprint(plaintext string) string
}

// KMSService opens KMS keepers for wrapping and unwrapping the secret key.
type KMSService interface {
	// OpenKeeper opens a keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
