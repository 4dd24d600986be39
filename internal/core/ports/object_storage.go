package ports

import (
	"context"
	"io"
)

// ObjectStorage persists audio blobs under generated keys. Implementations are
// interchangeable (local disk, S3-compatible object store) and selected by
// configuration.
type ObjectStorage interface {
	// Store writes the blob under key and returns once it is durable.
	Store(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	// Remove deletes the blob. A missing object is not an error.
	Remove(ctx context.Context, key string) error
	// URL returns a reference the browser can fetch the blob from: a local
	// path served by the API, or a presigned remote URL.
	URL(ctx context.Context, key string) (string, error)
}
