package domain

import (
	"github.com/allisson/receiptvault/internal/errors"
)

var (
	// ErrInvalidTaxID indicates the input does not contain exactly 9 digits.
	ErrInvalidTaxID = errors.Wrap(errors.ErrInvalidInput, "tax id must contain exactly 9 digits")

	// ErrEmptyVehicleID indicates the input is empty after normalization.
	ErrEmptyVehicleID = errors.Wrap(errors.ErrInvalidInput, "vehicle id is empty")
)
