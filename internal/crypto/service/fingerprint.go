package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// hmacFingerprinter implements Fingerprinter with HMAC-SHA256.
//
// The fingerprint is intentionally deterministic (no nonce): equal normalized
// plaintexts under the same key always produce equal digests, which is what
// makes "find record by exact PII value" possible over ciphertext-only
// storage. That determinism is a deliberate trade against semantic security;
// callers must not use fingerprints where unlinkability across fields derived
// from the same raw value is required.
type hmacFingerprinter struct {
	key []byte
}

// NewHMACFingerprinter creates a Fingerprinter keyed with the given 32-byte
// fingerprint subkey. The key is copied.
func NewHMACFingerprinter(key []byte) Fingerprinter {
	k := make([]byte, len(key))
	copy(k, key)
	return &hmacFingerprinter{key: k}
}

// Fingerprint returns base64(HMAC-SHA256(key, normalize(plaintext))).
// Normalization for identifier-class values is uppercase + trim, so
// "1hgcm82633a004352 " and "1HGCM82633A004352" index identically.
// Empty input returns the empty string.
func (h *hmacFingerprinter) Fingerprint(plaintext string) string {
	if plaintext == "" {
		return ""
	}

	normalized := strings.ToUpper(strings.TrimSpace(plaintext))

	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(normalized))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
