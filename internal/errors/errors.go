// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by the boundary layer.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the requester doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrConfiguration indicates the process configuration is invalid or incomplete.
	// This class is fatal: startup must abort rather than serve degraded crypto.
	ErrConfiguration = errors.New("configuration error")

	// ErrIntegrity indicates an authenticated decryption failed verification.
	// The ciphertext was tampered with, truncated, or produced under another key.
	ErrIntegrity = errors.New("integrity verification failed")

	// ErrBackend indicates an I/O failure talking to the blob storage backend.
	ErrBackend = errors.New("backend error")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
