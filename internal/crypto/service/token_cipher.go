package service

import (
	"encoding/base64"
	"fmt"

	"github.com/allisson/receiptvault/internal/config"
	cryptoDomain "github.com/allisson/receiptvault/internal/crypto/domain"
	apperrors "github.com/allisson/receiptvault/internal/errors"
)

// FailurePolicy selects the token cipher behavior when decryption fails
// integrity verification.
type FailurePolicy string

const (
	// FailureRaise surfaces integrity failures as ErrDecryptionFailed.
	FailureRaise FailurePolicy = FailurePolicy(config.DecryptFailureRaise)

	// FailurePassthrough returns the input unchanged on integrity failure.
	// This masks corruption as "probably legacy plaintext" and exists only
	// for backward compatibility with rows written before encryption was
	// introduced. It never produces a different valid-looking plaintext:
	// the AEAD tag check guarantees failure is all-or-nothing.
	FailurePassthrough FailurePolicy = FailurePolicy(config.DecryptFailurePassthrough)
)

// ParseFailurePolicy maps a configuration string to a FailurePolicy.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case FailureRaise, FailurePassthrough:
		return FailurePolicy(s), nil
	default:
		return "", apperrors.Wrap(apperrors.ErrConfiguration, fmt.Sprintf("unknown on-decrypt-failure policy %q", s))
	}
}

// tokenCipher implements TokenCipher over an AEAD instance.
//
// Wire format: base64(nonce[12] || tag[16] || ciphertext[N]). The Go AEAD
// implementations append the tag to the ciphertext, so Encrypt re-packs the
// sealed output into the fixed-offset layout and Decrypt reverses it.
type tokenCipher struct {
	aead   AEAD
	policy FailurePolicy
}

// NewTokenCipher creates a TokenCipher over the given AEAD with the given
// integrity failure policy.
func NewTokenCipher(aead AEAD, policy FailurePolicy) TokenCipher {
	return &tokenCipher{aead: aead, policy: policy}
}

// Encrypt encrypts plaintext into a self-contained base64 token.
// Empty input is returned unchanged so absent fields stay absent.
func (t *tokenCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return plaintext, nil
	}

	sealed, nonce, err := t.aead.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt token: %w", err)
	}

	// sealed = ciphertext || tag; the wire layout is nonce || tag || ciphertext.
	split := len(sealed) - cryptoDomain.TagSize
	token := make([]byte, 0, cryptoDomain.NonceSize+len(sealed))
	token = append(token, nonce...)
	token = append(token, sealed[split:]...)
	token = append(token, sealed[:split]...)

	return base64.StdEncoding.EncodeToString(token), nil
}

// Decrypt recovers the plaintext from a token produced by Encrypt.
// Empty input is returned unchanged. On malformed input or tag mismatch the
// configured FailurePolicy decides between raising ErrDecryptionFailed and
// returning the input unchanged.
func (t *tokenCipher) Decrypt(token string) (string, error) {
	if token == "" {
		return token, nil
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return t.fail(token, fmt.Errorf("%w: invalid base64", cryptoDomain.ErrDecryptionFailed))
	}
	if len(raw) < cryptoDomain.NonceSize+cryptoDomain.TagSize {
		return t.fail(token, fmt.Errorf("%w: token too short", cryptoDomain.ErrDecryptionFailed))
	}

	nonce := raw[:cryptoDomain.NonceSize]
	tag := raw[cryptoDomain.NonceSize : cryptoDomain.NonceSize+cryptoDomain.TagSize]
	ciphertext := raw[cryptoDomain.NonceSize+cryptoDomain.TagSize:]

	// Rebuild the sealed layout the AEAD expects: ciphertext || tag.
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := t.aead.Decrypt(sealed, nonce, nil)
	if err != nil {
		return t.fail(token, fmt.Errorf("%w: %v", cryptoDomain.ErrDecryptionFailed, err))
	}

	return string(plaintext), nil
}

// fail applies the integrity failure policy.
func (t *tokenCipher) fail(token string, err error) (string, error) {
	if t.policy == FailurePassthrough {
		return token, nil
	}
	return "", err
}
