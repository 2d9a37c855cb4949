package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ObjectStore is the slice of Store the snapshotter needs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// Snapshotter pushes and restores zstd-compressed catalog snapshots
// under a fixed object key.
type Snapshotter struct {
	store   ObjectStore
	key     string
	tempDir string
}

// NewSnapshotter creates a snapshotter writing to the given object key.
func NewSnapshotter(store ObjectStore, key string) *Snapshotter {
	return &Snapshotter{
		store:   store,
		key:     key,
		tempDir: os.TempDir(),
	}
}

// Upload compresses the catalog file and uploads it. Returns the ETag
// of the uploaded snapshot.
func (s *Snapshotter) Upload(ctx context.Context, catalogPath string) (string, error) {
	compressedPath := filepath.Join(s.tempDir, fmt.Sprintf("catalog_%d.json.zst", time.Now().UnixNano()))
	if err := CompressFile(catalogPath, compressedPath); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	defer os.Remove(compressedPath)

	compressed, err := os.Open(compressedPath)
	if err != nil {
		return "", fmt.Errorf("snapshot: open compressed file: %w", err)
	}
	defer compressed.Close()

	etag, err := s.store.Upload(ctx, s.key, compressed, "application/zstd")
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return etag, nil
}

// Restore downloads the latest snapshot and decompresses it to destPath.
// Returns ErrNotFound if no snapshot has been uploaded yet.
func (s *Snapshotter) Restore(ctx context.Context, destPath string) error {
	body, _, err := s.store.Download(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("snapshot: %w", err)
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("snapshot: create dest dir: %w", err)
	}

	// Decompress to a temp file first so a truncated download never
	// clobbers an existing catalog.
	tempPath := destPath + ".restore"
	if err := DecompressStream(body, tempPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("snapshot: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("snapshot: replace catalog: %w", err)
	}
	return nil
}
