// Package domain defines the PII value types handled by the codec layer.
//
// Values are constructed from user input at write time and discarded
// immediately after producing their encrypted token and search fingerprint;
// they are never retained by the codec.
package domain

import (
	"strings"
)

// taxIDDigits is the canonical length of a tax identification number.
const taxIDDigits = 9

// TaxID is a validated tax identification number in canonical digits-only form.
type TaxID string

// ParseTaxID strips all non-digit characters from raw and validates the
// canonical form. Accepts "123-45-6789", "123 45 6789", "123456789", etc.
func ParseTaxID(raw string) (TaxID, error) {
	digits := digitsOnly(raw)
	if len(digits) != taxIDDigits {
		return "", ErrInvalidTaxID
	}
	return TaxID(digits), nil
}

// String returns the canonical digits-only form.
func (t TaxID) String() string {
	return string(t)
}

// Mask returns the display-safe masked form "XXX-XX-dddd" exposing only the
// last 4 digits. Safe for UI display even when derived from decrypted plaintext.
func (t TaxID) Mask() string {
	return "XXX-XX-" + string(t)[taxIDDigits-4:]
}

// Format returns the human-readable form "ddd-dd-dddd".
func (t TaxID) Format() string {
	s := string(t)
	return s[:3] + "-" + s[3:5] + "-" + s[5:]
}

// MaskTaxID masks a raw tax ID for display. Values that do not contain
// exactly 9 digits are returned unchanged (best-effort rendering of legacy
// data rather than erroring at display time).
func MaskTaxID(raw string) string {
	t, err := ParseTaxID(raw)
	if err != nil {
		return raw
	}
	return t.Mask()
}

// FormatTaxID formats a raw tax ID as "ddd-dd-dddd". Values that do not
// contain exactly 9 digits pass through unchanged.
func FormatTaxID(raw string) string {
	t, err := ParseTaxID(raw)
	if err != nil {
		return raw
	}
	return t.Format()
}

// FormatEmployerID formats a raw employer identification number as
// "dd-ddddddd". Values that do not contain exactly 9 digits pass through
// unchanged.
func FormatEmployerID(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) != taxIDDigits {
		return raw
	}
	return digits[:2] + "-" + digits[2:]
}

// digitsOnly strips everything except ASCII digits.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
