// Package storage provides the SQLite-backed harvest cache. Each source's
// last successful batch is kept with its fetch time so a re-run within the
// TTL can skip the network entirely.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver for database/sql

	"github.com/margdarshak/margdarshak-go/internal/catalog"
)

const schema = `
CREATE TABLE IF NOT EXISTS source_batches (
	source     TEXT PRIMARY KEY,
	records    TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);
`

// Cache wraps the SQLite database holding per-source harvest batches.
type Cache struct {
	conn *sql.DB
	path string
	ttl  time.Duration
	now  func() time.Time
}

// New opens (or creates) the cache database and initializes the schema.
// ttl specifies how long a cached batch remains valid.
func New(dbPath string, ttl time.Duration) (*Cache, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// WAL keeps the harvester and a concurrent inspection query from
	// blocking each other.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=30000"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := conn.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Cache{
		conn: conn,
		path: dbPath,
		ttl:  ttl,
		now:  time.Now,
	}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// SaveBatch stores a source's batch, replacing any previous one.
func (c *Cache) SaveBatch(source string, colleges []catalog.College) error {
	records, err := json.Marshal(colleges)
	if err != nil {
		return fmt.Errorf("failed to encode batch for %s: %w", source, err)
	}

	_, err = c.conn.Exec(
		`INSERT INTO source_batches (source, records, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET records = excluded.records, fetched_at = excluded.fetched_at`,
		source, string(records), c.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save batch for %s: %w", source, err)
	}
	return nil
}

// GetBatch returns a source's cached batch. ok is false when the source
// has no batch or the batch is older than the TTL.
func (c *Cache) GetBatch(source string) ([]catalog.College, bool, error) {
	var records string
	var fetchedAt int64

	err := c.conn.QueryRow(
		"SELECT records, fetched_at FROM source_batches WHERE source = ?",
		source,
	).Scan(&records, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read batch for %s: %w", source, err)
	}

	if c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl {
		return nil, false, nil
	}

	var colleges []catalog.College
	if err := json.Unmarshal([]byte(records), &colleges); err != nil {
		return nil, false, fmt.Errorf("failed to decode batch for %s: %w", source, err)
	}
	return colleges, true, nil
}

// PurgeExpired deletes batches older than the TTL and returns how many
// were removed.
func (c *Cache) PurgeExpired() (int64, error) {
	cutoff := c.now().Add(-c.ttl).Unix()

	result, err := c.conn.Exec("DELETE FROM source_batches WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired batches: %w", err)
	}
	return result.RowsAffected()
}
