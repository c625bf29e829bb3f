package ports

import (
	"context"
	"io"
)

// BlobStore persists uploaded file content. Save returns the storage path and
// the number of bytes written.
type BlobStore interface {
	Save(ctx context.Context, name string, content io.Reader) (path string, size int64, err error)
}
