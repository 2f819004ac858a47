// Package cache stores converted functions in a sqlite database so the CLI
// can skip the pass for inputs it has already seen. The cache is owned by
// the caller: nothing is pruned behind its back.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// schemaVersion is mixed into every key so a format change invalidates old rows.
const schemaVersion = "funssa-cache-1"

const schema = `
CREATE TABLE IF NOT EXISTS transforms (
	key     TEXT PRIMARY KEY,
	id      TEXT NOT NULL,
	func    TEXT NOT NULL,
	output  TEXT NOT NULL,
	used    INTEGER NOT NULL
)`

// Entry is one cached conversion.
type Entry struct {
	ID     uuid.UUID
	Key    string
	Func   string
	Output string
}

type Cache struct {
	db         *sql.DB
	maxEntries int
}

// Open opens or creates the database at path. maxEntries bounds the table
// after each Store; zero or less disables the bound.
func Open(ctx context.Context, path string, maxEntries int) (*Cache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	// One connection serialises writers from concurrent conversions.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising cache %s: %w", path, err)
	}
	return &Cache{db: db, maxEntries: maxEntries}, nil
}

// Key hashes everything a conversion depends on.
func Key(parts ...string) string {
	h := sha256.New()
	h.Write([]byte(schemaVersion))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the entry stored under key and marks it recently used.
func (c *Cache) Lookup(ctx context.Context, key string) (*Entry, bool, error) {
	var e Entry
	var id string
	err := c.db.QueryRowContext(ctx,
		`SELECT id, key, func, output FROM transforms WHERE key = ?`, key).
		Scan(&id, &e.Key, &e.Func, &e.Output)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}
	if e.ID, err = uuid.Parse(id); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	if err := c.touch(ctx, key); err != nil {
		return nil, false, err
	}
	return &e, true, nil
}

// Store records output under key, replacing any previous entry, then prunes
// to the configured bound.
func (c *Cache) Store(ctx context.Context, key, funcName, output string) (*Entry, error) {
	e := &Entry{ID: uuid.New(), Key: key, Func: funcName, Output: output}
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO transforms (key, id, func, output, used)
		 VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(used), 0) + 1 FROM transforms))`,
		e.Key, e.ID.String(), e.Func, e.Output)
	if err != nil {
		return nil, fmt.Errorf("writing cache: %w", err)
	}
	if c.maxEntries > 0 {
		if _, err := c.Prune(ctx, c.maxEntries); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (c *Cache) touch(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx,
		`UPDATE transforms SET used = (SELECT COALESCE(MAX(used), 0) + 1 FROM transforms) WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("updating cache: %w", err)
	}
	return nil
}

// Prune deletes the least recently used entries until at most max remain and
// returns how many were deleted.
func (c *Cache) Prune(ctx context.Context, max int) (int, error) {
	if max < 0 {
		max = 0
	}
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM transforms WHERE key NOT IN (
			SELECT key FROM transforms ORDER BY used DESC LIMIT ?)`, max)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Clear deletes every entry.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM transforms`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transforms`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache: %w", err)
	}
	return n, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
