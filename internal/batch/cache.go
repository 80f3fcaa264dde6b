package batch

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS outlines (
	content_hash TEXT PRIMARY KEY,
	path         TEXT NOT NULL,
	result       BLOB NOT NULL,
	created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Cache stores marshaled extraction results keyed by input content hash, so
// unchanged files skip re-extraction across runs. Renamed but identical
// files hit the same entry.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if needed) the SQLite cache at path.
// ":memory:" is accepted for tests.
func OpenCache(path string) (*Cache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cache: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open: %w", err)
	}
	if path == ":memory:" {
		// each connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("cache: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached result for the given content hash, or ok=false.
func (c *Cache) Get(hash string) ([]byte, bool) {
	if c == nil || c.db == nil {
		return nil, false
	}
	var result []byte
	err := c.db.QueryRow(`SELECT result FROM outlines WHERE content_hash = ?`, hash).Scan(&result)
	if err != nil {
		return nil, false
	}
	return result, true
}

// Put stores a result under the given content hash, replacing any previous
// entry.
func (c *Cache) Put(hash, path string, result []byte) error {
	if c == nil || c.db == nil {
		return nil
	}
	_, err := c.db.Exec(
		`INSERT INTO outlines (content_hash, path, result) VALUES (?, ?, ?)
		 ON CONFLICT(content_hash) DO UPDATE SET path = excluded.path, result = excluded.result`,
		hash, path, result,
	)
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}
	return nil
}

// hashFile returns the hex SHA-256 of a file's contents.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
