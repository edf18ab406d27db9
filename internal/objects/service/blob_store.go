// Package service implements blob backend access for object storage.
// The backend is reached through gocloud.dev/blob, so the same code serves
// local filesystem buckets in development and S3-compatible buckets in
// production.
package service

import (
	"context"
	"errors"
	"io"
	"time"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Blob drivers enabled via URL scheme (file://, mem://, s3://).
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	apperrors "github.com/allisson/receiptvault/internal/errors"
	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
)

// BlobStore wraps a blob bucket with per-call timeouts and error
// classification. Every call is bounded: a backend that stops responding
// surfaces as ErrBackendTimeout instead of hanging the caller.
type BlobStore struct {
	bucket  *blob.Bucket
	timeout time.Duration
}

// Upload writes content to the given path with the given content type.
func (b *BlobStore) Upload(ctx context.Context, path, contentType string, content []byte) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	options := &blob.WriterOptions{ContentType: contentType}
	err := b.bucket.WriteAll(ctx, path, content, options)
	return b.classify(err, "failed to upload blob")
}

// Download reads the full content stored at the given path.
func (b *BlobStore) Download(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	content, err := b.bucket.ReadAll(ctx, path)
	if err != nil {
		return nil, b.classify(err, "failed to download blob")
	}
	return content, nil
}

// Delete removes the blob at the given path. Deleting an absent blob is not
// an error so that delete stays idempotent.
func (b *BlobStore) Delete(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	err := b.bucket.Delete(ctx, path)
	if err != nil && gcerrors.Code(err) == gcerrors.NotFound {
		return nil
	}
	return b.classify(err, "failed to delete blob")
}

// Exists reports whether a blob is stored at the given path.
func (b *BlobStore) Exists(ctx context.Context, path string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	exists, err := b.bucket.Exists(ctx, path)
	if err != nil {
		return false, b.classify(err, "failed to check blob existence")
	}
	return exists, nil
}

// List returns the paths of every blob under the given prefix.
func (b *BlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var paths []string
	iter := b.bucket.List(&blob.ListOptions{Prefix: prefix})
	for {
		object, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, b.classify(err, "failed to list blobs")
		}
		paths = append(paths, object.Key)
	}
	return paths, nil
}

// Close releases the underlying bucket.
func (b *BlobStore) Close() error {
	return b.bucket.Close()
}

// classify maps driver errors to the domain error taxonomy.
func (b *BlobStore) classify(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(objectsDomain.ErrBackendTimeout, message)
	}
	if gcerrors.Code(err) == gcerrors.NotFound {
		return objectsDomain.ErrObjectNotFound
	}
	return apperrors.Wrap(errors.Join(apperrors.ErrBackend, err), message)
}

// NewBlobStore opens the bucket at bucketURL and returns a store whose calls
// are bounded by timeout. A non-positive timeout would expire every call
// before it starts, so it is rejected up front.
func NewBlobStore(ctx context.Context, bucketURL string, timeout time.Duration) (*BlobStore, error) {
	if timeout <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "blob operation timeout must be positive")
	}
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open blob bucket")
	}
	return &BlobStore{bucket: bucket, timeout: timeout}, nil
}
