package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// DiskStore writes uploaded blobs under a local directory. File names are
// timestamped so repeated uploads of the same name never collide.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	dir := filepath.Join(root, "resources")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create resource dir: %w", err)
	}
	return &DiskStore{root: dir}, nil
}

// Save streams content to disk and returns the stored path and byte count.
func (s *DiskStore) Save(ctx context.Context, name string, content io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	// Only the base name is trusted; anything resembling a path is stripped.
	safe := filepath.Base(name)
	path := filepath.Join(s.root, fmt.Sprintf("%d_%s", time.Now().UnixNano(), safe))

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create blob: %w", err)
	}

	size, err := io.Copy(f, content)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("close blob: %w", err)
	}
	return path, size, nil
}
