// Package usecase defines the interfaces and implementations for object
// storage business logic: uploads, ACL-checked downloads, deletes, and the
// reconciliation sweep that removes state orphaned by partial deletes.
package usecase

import (
	"context"

	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
)

// BlobBackend defines the interface for blob storage backend operations.
type BlobBackend interface {
	Upload(ctx context.Context, path, contentType string, content []byte) error
	Download(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// MetadataRepository defines the interface for object metadata persistence.
type MetadataRepository interface {
	Save(ctx context.Context, metadata *objectsDomain.ObjectMetadata) error
	Get(ctx context.Context, path string) (*objectsDomain.ObjectMetadata, error)
	Delete(ctx context.Context, path string) error
	ListPaths(ctx context.Context) ([]string, error)
}

// PolicyRepository defines the interface for access policy persistence.
type PolicyRepository interface {
	Save(ctx context.Context, path string, policy objectsDomain.AccessPolicy) error
	Get(ctx context.Context, path string) (objectsDomain.AccessPolicy, error)
	Delete(ctx context.Context, path string) error
	ListPaths(ctx context.Context) ([]string, error)
}

// UploadInput carries everything needed to store a new object.
type UploadInput struct {
	// AccountScope is the account segment of the storage path.
	AccountScope string
	// OwnerID identifies the uploading caller; it becomes the policy owner.
	OwnerID string
	// ContentType is the MIME type to record; empty falls back to the default.
	ContentType string
	// Content is the object bytes.
	Content []byte
	// Visibility selects the default policy: private is owner-only, public is
	// world-readable.
	Visibility objectsDomain.Visibility
	// Policy, when set, replaces the default policy derived from Visibility.
	Policy *objectsDomain.AccessPolicy
}

// DownloadOutput carries a downloaded object and its delivery headers.
type DownloadOutput struct {
	Content      []byte
	ContentType  string
	CacheControl string
}

// Gateway defines the interface for object storage business logic.
type Gateway interface {
	// Upload stores the object, records its metadata, and attaches an access
	// policy. Returns the internal storage path.
	Upload(ctx context.Context, input UploadInput) (string, error)
	// Download enforces the access policy and returns the object with the
	// cache directive matching its visibility.
	Download(ctx context.Context, path, requesterID string) (*DownloadOutput, error)
	// Delete removes the blob, then its metadata, then its policy.
	Delete(ctx context.Context, path string) error
	// NormalizePath maps an internal storage path to its external form.
	NormalizePath(path string) string
}

// SweepReport summarizes one reconciliation pass.
type SweepReport struct {
	// ScannedPaths is the number of metadata records checked.
	ScannedPaths int
	// OrphanedMetadata is the number of metadata records removed because
	// their blob no longer exists.
	OrphanedMetadata int
	// OrphanedPolicies is the number of policies removed because neither
	// blob nor metadata exists for their path.
	OrphanedPolicies int
	// UnindexedBlobs is the number of stored blobs with no metadata record.
	// These are reported, never deleted.
	UnindexedBlobs int
}

// Reconciler defines the interface for the orphaned-state sweep.
type Reconciler interface {
	Sweep(ctx context.Context) (SweepReport, error)
}
