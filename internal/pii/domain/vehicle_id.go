package domain

import (
	"strings"
)

// standardVehicleIDLength is the length of a standard vehicle identification number.
const standardVehicleIDLength = 17

// VehicleID is a vehicle identification number in canonical uppercase form.
type VehicleID string

// ParseVehicleID normalizes raw input (trim + uppercase). Only emptiness is
// rejected at this layer; length and character-set validation happen upstream
// in the form layer, so short or unusual identifiers are accepted here.
func ParseVehicleID(raw string) (VehicleID, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return "", ErrEmptyVehicleID
	}
	return VehicleID(normalized), nil
}

// String returns the canonical uppercase form.
func (v VehicleID) String() string {
	return string(v)
}

// IsStandardLength reports whether the identifier has the standard 17
// characters. Informational only; non-standard lengths are still encoded.
func (v VehicleID) IsStandardLength() bool {
	return len(v) == standardVehicleIDLength
}
