package domain

import (
	"github.com/allisson/receiptvault/internal/errors"
)

var (
	// ErrObjectNotFound indicates the backend has no blob at the given path.
	ErrObjectNotFound = errors.Wrap(errors.ErrNotFound, "object not found")

	// ErrMetadataNotFound indicates no metadata record exists for the path.
	ErrMetadataNotFound = errors.Wrap(errors.ErrNotFound, "object metadata not found")

	// ErrPolicyNotFound indicates no access policy exists for the path.
	ErrPolicyNotFound = errors.Wrap(errors.ErrNotFound, "access policy not found")

	// ErrAccessDenied indicates the requester's relationship to the policy
	// does not cover the requested permission.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "access denied")

	// ErrBackendTimeout indicates a backend call exceeded the configured bound.
	ErrBackendTimeout = errors.Wrap(errors.ErrBackend, "backend timeout")

	// ErrEmptyContent indicates an upload with no bytes.
	ErrEmptyContent = errors.Wrap(errors.ErrInvalidInput, "content is empty")

	// ErrInvalidAccountScope indicates an upload without a valid account scope.
	ErrInvalidAccountScope = errors.Wrap(errors.ErrInvalidInput, "invalid account scope")
)
