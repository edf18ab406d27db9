// Package usecase implements the PII codec business logic.
//
// The codec combines the token cipher and the fingerprinter into a single
// encrypt-and-index operation per field type. Validation failures return a
// nil value rather than an error: the caller decides whether a nil means
// "skip field" or "reject request".
package usecase

import (
	"context"

	piiDomain "github.com/allisson/receiptvault/internal/pii/domain"
)

// Codec converts sensitive plaintext into {ciphertext, fingerprint} pairs
// and back.
type Codec interface {
	// EncodeTaxID validates and encodes a tax identification number.
	// Returns (nil, nil) when the input does not contain exactly 9 digits.
	EncodeTaxID(ctx context.Context, raw string) (*piiDomain.EncodedValue, error)

	// EncodeVehicleID normalizes and encodes a vehicle identifier.
	// Returns (nil, nil) only when the input is empty after normalization;
	// no length validation happens at this layer.
	EncodeVehicleID(ctx context.Context, raw string) (*piiDomain.EncodedValue, error)

	// DecodeValue decrypts a token produced by either encode operation.
	DecodeValue(ctx context.Context, token string) (string, error)
}
