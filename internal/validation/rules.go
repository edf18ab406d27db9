// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/receiptvault/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// HexSecretKey validates that a string decodes to exactly 32 bytes of hex.
var HexSecretKey = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_hex_key_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_hex_key", "must be hex-encoded")
	}
	if len(decoded) != 32 {
		return validation.NewError("validation_hex_key_size", "must decode to exactly 32 bytes")
	}
	return nil
})

// AccountScope validates the account segment of a storage path: non-blank,
// no path separators, no relative segments, no surrounding whitespace.
// The value is concatenated into storage paths, so it must never be able to
// change the path shape.
var AccountScope = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_account_scope_type", "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_account_scope_blank", "must not be blank")
	}
	if s != strings.TrimSpace(s) {
		return validation.NewError("validation_account_scope_whitespace", "must not contain surrounding whitespace")
	}
	if strings.ContainsAny(s, "/\\") {
		return validation.NewError("validation_account_scope_separator", "must not contain path separators")
	}
	if s == "." || s == ".." {
		return validation.NewError("validation_account_scope_segment", "must not be a relative path segment")
	}
	return nil
})

// Base64 validates that a string is valid base64-encoded data.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	_, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// NoWhitespace validates that string doesn't contain leading/trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
// Built with By rather than a string rule: string rules skip empty values,
// which is exactly the case this rule must reject.
var NotBlank = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_not_blank_type", "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "must not be blank")
	}
	return nil
})
