package backup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.objects[key] = data
	return "etag-" + key, nil
}

func (s *memStore) Download(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, "", ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), "etag-" + key, nil
}

func TestSnapshotUploadRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.json")
	content := []byte(`[{"name":"COEP Technological University","location":"Pune, Maharashtra"}]`)
	if err := os.WriteFile(catalogPath, content, 0o644); err != nil {
		t.Fatal(err)
	}

	store := newMemStore()
	snap := NewSnapshotter(store, "snapshots/catalog.json.zst")

	etag, err := snap.Upload(context.Background(), catalogPath)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if etag == "" {
		t.Error("Upload() returned empty etag")
	}

	// Restore into a path that does not exist yet, as on a fresh deploy.
	destPath := filepath.Join(dir, "fresh", "catalog.json")
	if err := snap.Restore(context.Background(), destPath); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	restored, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(restored, content) {
		t.Errorf("restored catalog = %q, want %q", restored, content)
	}
}

func TestRestoreMissingSnapshot(t *testing.T) {
	snap := NewSnapshotter(newMemStore(), "snapshots/catalog.json.zst")

	err := snap.Restore(context.Background(), filepath.Join(t.TempDir(), "catalog.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Restore() error = %v, want ErrNotFound", err)
	}
}

// A corrupt snapshot must fail without clobbering the catalog already on
// disk and without leaving a partial restore file behind.
func TestRestoreCorruptSnapshotKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	destPath := filepath.Join(dir, "catalog.json")
	existing := []byte(`[{"name":"VJTI Mumbai"}]`)
	if err := os.WriteFile(destPath, existing, 0o644); err != nil {
		t.Fatal(err)
	}

	store := newMemStore()
	store.objects["snapshots/catalog.json.zst"] = []byte("not a zstd stream")
	snap := NewSnapshotter(store, "snapshots/catalog.json.zst")

	if err := snap.Restore(context.Background(), destPath); err == nil {
		t.Fatal("Restore() succeeded on corrupt snapshot")
	}

	kept, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(kept, existing) {
		t.Errorf("existing catalog was clobbered: %q", kept)
	}
	if _, err := os.Stat(destPath + ".restore"); !os.IsNotExist(err) {
		t.Error("partial restore file left behind")
	}
}
