// Package domain defines the storage object model: paths, metadata, and the
// access policy evaluated on every read or write of a private object.
package domain

import (
	"strings"
	"time"
)

// DefaultContentType is served when metadata for a path was lost.
// The in-memory metadata store offers no persistence guarantee, so content
// type delivery degrades rather than failing the download.
const DefaultContentType = "application/octet-stream"

// Cache directives selected by object visibility. Private objects must never
// end up in a shared cache.
const (
	CacheControlPublic  = "public, max-age=86400"
	CacheControlPrivate = "private, max-age=60"
)

// receiptsSegment is the fixed category segment in storage paths.
const receiptsSegment = "receipts"

// externalRoot is the client-facing path root replacing the private prefix.
const externalRoot = "/objects"

// ObjectMetadata describes a stored blob. The bytes themselves are owned by
// the backend and never cached by this core.
type ObjectMetadata struct {
	// Path is the internal storage path (private root included).
	Path string
	// ContentType is the MIME type recorded at upload time.
	ContentType string
	// CreatedAt is the UTC timestamp when the metadata was recorded.
	CreatedAt time.Time
}

// BuildPath constructs the internal storage path
// <privateRoot>/<accountScope>/receipts/<id>.
func BuildPath(privateRoot, accountScope, id string) string {
	return privateRoot + "/" + accountScope + "/" + receiptsSegment + "/" + id
}

// NormalizePath maps an internal private-root path to the externally
// addressable form used by client-facing URLs: the private root prefix is
// replaced with "/objects". Paths outside the private root are returned
// unchanged.
func NormalizePath(privateRoot, path string) string {
	if !IsPrivatePath(privateRoot, path) {
		return path
	}
	return externalRoot + strings.TrimPrefix(path, privateRoot)
}

// IsPrivatePath reports whether path lives under the private root and is
// therefore subject to ACL enforcement.
func IsPrivatePath(privateRoot, path string) bool {
	return strings.HasPrefix(path, privateRoot+"/")
}
