// Package storage provides the blob backends for recording audio: local disk
// for development and an S3-compatible bucket for deployments.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalDisk stores blobs as files under a single directory. Files are served
// back over the router's /uploads static route.
type LocalDisk struct {
	dir string
}

// NewLocalDisk creates the directory if needed and returns the store.
func NewLocalDisk(dir string) (*LocalDisk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalDisk{dir: dir}, nil
}

func (l *LocalDisk) Store(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	// Keys are generated server-side, but never follow one outside the dir.
	path := filepath.Join(l.dir, filepath.Base(key))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create blob file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write blob file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close blob file: %w", err)
	}

	return nil
}

func (l *LocalDisk) Remove(ctx context.Context, key string) error {
	path := filepath.Join(l.dir, filepath.Base(key))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove blob file: %w", err)
	}
	return nil
}

func (l *LocalDisk) URL(ctx context.Context, key string) (string, error) {
	return "/uploads/" + filepath.Base(key), nil
}
