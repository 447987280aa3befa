package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/toomanyjoshes/terminalchat/internal/config"
	apperrors "github.com/toomanyjoshes/terminalchat/pkg/errors"
)

// BlobStore holds attachment bytes, keyed by attachment ID. The core only
// references blobs by ID and never inspects their content.
type BlobStore interface {
	Save(ctx context.Context, id string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}

// NewFromConfig selects the blob backend from configuration.
func NewFromConfig(cfg *config.Config) (BlobStore, error) {
	switch cfg.BlobBackend {
	case "s3":
		return NewS3Store(cfg)
	case "", "disk":
		return NewDiskStore(cfg.BlobDir)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}

// DiskStore keeps one file per attachment ID under a local directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// path maps an ID to a file path. IDs are UUIDs generated server-side, so
// they can never contain separators, but Base guards the invariant anyway.
func (s *DiskStore) path(id string) string {
	return filepath.Join(s.dir, filepath.Base(id))
}

func (s *DiskStore) Save(ctx context.Context, id string, r io.Reader, size int64, contentType string) error {
	f, err := os.OpenFile(s.path(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return apperrors.Storage("failed to store file")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(s.path(id))
		return apperrors.Storage("failed to store file")
	}
	return nil
}

func (s *DiskStore) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(id))
	if os.IsNotExist(err) {
		return nil, apperrors.NotFound("File not found")
	}
	if err != nil {
		return nil, apperrors.Storage("failed to open file")
	}
	return f, nil
}

func (s *DiskStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return apperrors.Storage("failed to delete file")
	}
	return nil
}
