package usecase

import (
	"context"

	cryptoService "github.com/allisson/receiptvault/internal/crypto/service"
	piiDomain "github.com/allisson/receiptvault/internal/pii/domain"
)

// codec implements Codec over an injected TokenCipher and Fingerprinter.
type codec struct {
	cipher        cryptoService.TokenCipher
	fingerprinter cryptoService.Fingerprinter
}

// NewCodec creates a Codec with the given cipher and fingerprinter.
func NewCodec(cipher cryptoService.TokenCipher, fingerprinter cryptoService.Fingerprinter) Codec {
	return &codec{cipher: cipher, fingerprinter: fingerprinter}
}

// EncodeTaxID validates, encrypts, and fingerprints a tax identification number.
// Invalid input never raises: it returns (nil, nil) and leaves the decision to
// the caller.
func (c *codec) EncodeTaxID(_ context.Context, raw string) (*piiDomain.EncodedValue, error) {
	taxID, err := piiDomain.ParseTaxID(raw)
	if err != nil {
		return nil, nil
	}
	return c.encode(taxID.String())
}

// EncodeVehicleID normalizes, encrypts, and fingerprints a vehicle identifier.
// Only emptiness yields (nil, nil).
func (c *codec) EncodeVehicleID(_ context.Context, raw string) (*piiDomain.EncodedValue, error) {
	vehicleID, err := piiDomain.ParseVehicleID(raw)
	if err != nil {
		return nil, nil
	}
	return c.encode(vehicleID.String())
}

// DecodeValue decrypts a token produced by either encode operation.
func (c *codec) DecodeValue(_ context.Context, token string) (string, error) {
	return c.cipher.Decrypt(token)
}

// encode produces the {ciphertext, fingerprint} pair for a canonical value.
// The fingerprint is computed over the canonical form so lookups by raw user
// input normalize to the same digest.
func (c *codec) encode(canonical string) (*piiDomain.EncodedValue, error) {
	ciphertext, err := c.cipher.Encrypt(canonical)
	if err != nil {
		return nil, err
	}

	return &piiDomain.EncodedValue{
		Ciphertext:  ciphertext,
		Fingerprint: c.fingerprinter.Fingerprint(canonical),
	}, nil
}
