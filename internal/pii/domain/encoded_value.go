package domain

// EncodedValue is the pair persisted by the external data layer for one
// sensitive field: an authenticated ciphertext token for storage and a
// deterministic fingerprint for exact-match lookups. The plaintext itself is
// discarded once the pair is produced.
type EncodedValue struct {
	// Ciphertext is the self-contained base64 token (nonce || tag || ciphertext).
	Ciphertext string
	// Fingerprint is base64(HMAC-SHA256(key, normalized plaintext)), stored
	// as an indexed column so rows can be found without decrypting.
	Fingerprint string
}
