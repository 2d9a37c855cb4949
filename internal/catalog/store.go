package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	domerrors "github.com/margdarshak/margdarshak-go/internal/errors"
)

// LoadColleges reads a catalog file written by SaveColleges (or by hand).
// The file is a single JSON array of records.
func LoadColleges(path string) ([]College, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domerrors.NewDataLoadError(path, err)
	}

	var colleges []College
	if err := json.Unmarshal(data, &colleges); err != nil {
		return nil, domerrors.NewDataLoadError(path, err)
	}
	return colleges, nil
}

// SaveColleges writes the catalog wholesale as pretty-printed JSON. The
// write goes through a temp file and rename so a crashed run never leaves
// a truncated catalog behind. Non-ASCII text is written as-is.
func SaveColleges(path string, colleges []College) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(colleges); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp catalog: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

// Catalog is an in-memory catalog that requests read and a single writer
// (the reload job or the harvester) replaces wholesale. Readers get a
// shared snapshot slice; they must not mutate the records.
type Catalog struct {
	mu       sync.RWMutex
	colleges []College
}

// NewCatalog creates a catalog holding the given records.
func NewCatalog(colleges []College) *Catalog {
	return &Catalog{colleges: colleges}
}

// Snapshot returns the current records. The slice header is shared; treat
// it as read-only.
func (c *Catalog) Snapshot() []College {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.colleges
}

// Replace swaps in a new set of records.
func (c *Catalog) Replace(colleges []College) {
	c.mu.Lock()
	c.colleges = colleges
	c.mu.Unlock()
}

// Len returns the number of records currently held.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.colleges)
}
