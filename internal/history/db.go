// Package history provides SQLite-backed command history for gish.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/gish-shell/gish/internal/logging"
)

// DB wraps the history database handle.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// Single interactive process; keep the pool at one connection so the
	// sqlite file never sees concurrent writers.
	db.SetMaxOpenConns(1)

	return &DB{DB: db}, nil
}

// OpenInMemory opens an in-memory database, used by tests.
func OpenInMemory() (*DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &DB{DB: db}, nil
}

// MigrateUp creates the schema if it does not exist.
func (d *DB) MigrateUp(ctx context.Context) error {
	_, err := d.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			command    TEXT NOT NULL,
			cwd        TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session_id, created_at);
		CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);
	`)
	if err != nil {
		return fmt.Errorf("migrate history schema: %w", err)
	}

	log := logging.Component("history")
	log.Debug().Msg("history schema up to date")
	return nil
}
