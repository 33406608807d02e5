package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gregjones/httpcache"
)

// Compile-time interface satisfaction check.
var _ httpcache.Cache = (*ResponseCache)(nil)

// ResponseCache is a SQLite-backed httpcache.Cache. It stores serialized
// upstream responses keyed by request URL so ETag revalidation survives
// restarts. Entries older than maxAge are ignored on read; zero keeps them
// until Prune or Delete.
type ResponseCache struct {
	db      *DB
	maxAge  time.Duration
	timeout time.Duration
}

// NewResponseCache creates a ResponseCache backed by the given DB.
func NewResponseCache(db *DB, maxAge time.Duration) *ResponseCache {
	return &ResponseCache{db: db, maxAge: maxAge, timeout: 5 * time.Second}
}

// Get returns the cached response bytes for key.
// The httpcache interface has no error return, so failures are logged and
// reported as a miss.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	const query = `SELECT response, stored_at FROM http_cache WHERE cache_key = ?`

	var response []byte
	var storedAt int64
	err := c.db.Reader.QueryRowContext(ctx, query, key).Scan(&response, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		slog.Error("response cache read failed", "key", key, "error", err)
		return nil, false
	}

	if c.maxAge > 0 && time.Since(time.Unix(storedAt, 0)) > c.maxAge {
		return nil, false
	}

	return response, true
}

// Set stores or replaces the response bytes for key.
func (c *ResponseCache) Set(key string, responseBytes []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	const query = `INSERT INTO http_cache (cache_key, response, stored_at) VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET response = excluded.response, stored_at = excluded.stored_at`

	if _, err := c.db.Writer.ExecContext(ctx, query, key, responseBytes, time.Now().Unix()); err != nil {
		slog.Error("response cache write failed", "key", key, "error", err)
	}
}

// Delete removes the entry for key, if any.
func (c *ResponseCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	const query = `DELETE FROM http_cache WHERE cache_key = ?`
	if _, err := c.db.Writer.ExecContext(ctx, query, key); err != nil {
		slog.Error("response cache delete failed", "key", key, "error", err)
	}
}

// Prune deletes entries stored before the cutoff and returns how many were removed.
func (c *ResponseCache) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	const query = `DELETE FROM http_cache WHERE stored_at < ?`

	result, err := c.db.Writer.ExecContext(ctx, query, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune response cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}

	return rows, nil
}
