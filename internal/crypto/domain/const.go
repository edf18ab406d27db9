package domain

// Algorithm represents the cryptographic algorithm used for encryption.
//
// All supported algorithms provide Authenticated Encryption with Associated Data (AEAD),
// ensuring both confidentiality and authenticity of encrypted data. Both use a
// 12-byte nonce and a 16-byte authentication tag, so the token wire layout is
// identical regardless of the selected algorithm.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	//
	// AES-GCM (Advanced Encryption Standard in Galois/Counter Mode) combines
	// AES encryption with GMAC authentication. It uses a 256-bit key and
	// provides excellent performance on hardware with AES-NI acceleration.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	//
	// ChaCha20-Poly1305 combines the ChaCha20 stream cipher with the Poly1305 MAC
	// for authentication. It's designed for high performance on platforms without
	// AES hardware acceleration and is resistant to timing attacks.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// Token wire layout constants. A token is base64(nonce || tag || ciphertext).
const (
	// NonceSize is the nonce length in bytes for both supported algorithms.
	NonceSize = 12
	// TagSize is the authentication tag length in bytes for both supported algorithms.
	TagSize = 16
	// KeySize is the required key length in bytes (256 bits).
	KeySize = 32
)
