// Package kv implements the local key-value store backing all persistence:
// a single SQLite table of named entries, used the way a browser app uses
// localStorage.
package kv

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a KV over a single on-disk SQLite database. Writes go through a
// circuit breaker so a persistently failing disk (the quota-exceeded case)
// degrades to fast no-ops instead of hammering the database; writes are never
// retried.
type SQLite struct {
	db     *sql.DB
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// kv table exists.
func OpenSQLite(path string, logger *zap.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLite{
		db:     db,
		cb:     newWriteBreaker(),
		logger: logger,
	}, nil
}

// Get returns the entry stored under key, or ok=false when it was never set.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

// Set replaces the entry under key in a single statement, so a failed write
// leaves the previous value untouched.
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.cb.Execute(func() (any, error) {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// newWriteBreaker creates the circuit breaker guarding writes.
func newWriteBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "kv-writes",
		MaxRequests: 1,                // half-open: probe with a single write
		Interval:    30 * time.Second, // closed: reset counters every 30s
		Timeout:     10 * time.Second, // open -> half-open after 10s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}
