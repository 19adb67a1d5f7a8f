package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository errors.
var (
	ErrInvalidEntry = errors.New("invalid history entry")
)

// Repository handles history persistence.
type Repository struct {
	db *DB
}

// NewRepository creates a Repository over db.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Append records an executed command. Missing ID and CreatedAt are filled
// in. Returns ErrInvalidEntry when the command or session id is empty.
func (r *Repository) Append(ctx context.Context, entry *Entry) error {
	if entry.Command == "" || entry.SessionID == "" {
		return ErrInvalidEntry
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	} else {
		entry.CreatedAt = entry.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO entries (id, session_id, command, cwd, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.SessionID,
		entry.Command,
		entry.Cwd,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// Recent returns up to limit entries across all sessions, oldest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	// rowid is insertion order, which for a single appending process is
	// chronological and avoids timestamp-text ordering quirks.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, command, cwd, created_at FROM (
			SELECT rowid AS rid, id, session_id, command, cwd, created_at
			FROM entries
			ORDER BY rid DESC
			LIMIT ?
		) ORDER BY rid
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// BySession returns up to limit entries for one session, oldest first.
func (r *Repository) BySession(ctx context.Context, sessionID string, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, command, cwd, created_at
		FROM entries
		WHERE session_id = ?
		ORDER BY rowid
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query session history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Clear deletes all history entries and reports how many were removed.
func (r *Repository) Clear(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared entries: %w", err)
	}

	return removed, nil
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var createdAt string

		if err := rows.Scan(
			&entry.ID,
			&entry.SessionID,
			&entry.Command,
			&entry.Cwd,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			entry.CreatedAt = t
		}

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history entries: %w", err)
	}

	return entries, nil
}
