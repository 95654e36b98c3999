package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/kolkov/privreg/internal/privreg/core"
)

// SQLiteRecorder persists growth events to SQLite for offline
// leak/growth diagnostics. It implements core.GrowthRecorder.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// NewSQLiteRecorder opens (creating if needed) a SQLite database at
// path and prepares its growth_events table. path may be ":memory:"
// for tests.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("privreg/audit: open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("privreg/audit: enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS growth_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			old_len    INTEGER NOT NULL,
			new_len    INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("privreg/audit: create table: %w", err)
	}

	return &SQLiteRecorder{db: db}, nil
}

// RecordGrowth implements core.GrowthRecorder.
func (r *SQLiteRecorder) RecordGrowth(ctx context.Context, ev core.GrowthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errRecorderClosed
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO growth_events (old_len, new_len, duration_ns, recorded_at)
		VALUES (?, ?, ?, ?)
	`, ev.OldLen, ev.NewLen, ev.Duration.Nanoseconds(), ev.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("privreg/audit: insert growth event: %w", err)
	}
	return nil
}

// Count returns the number of growth events recorded so far. It exists
// mainly for tests and CLI reporting.
func (r *SQLiteRecorder) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, errRecorderClosed
	}

	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM growth_events").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("privreg/audit: count growth events: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.db.Close()
}

var errRecorderClosed = errors.New("privreg/audit: recorder is closed")
