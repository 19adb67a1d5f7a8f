package history

import (
	"context"
	"errors"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.MigrateUp(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func TestRepositoryAppend(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	entry := &Entry{
		SessionID: "session-1",
		Command:   "echo hello",
		Cwd:       "/tmp",
	}

	if err := repo.Append(ctx, entry); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if entry.ID == "" {
		t.Error("expected ID to be set")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestRepositoryAppendInvalid(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	if err := repo.Append(ctx, &Entry{SessionID: "s"}); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry for empty command, got %v", err)
	}
	if err := repo.Append(ctx, &Entry{Command: "ls"}); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry for empty session, got %v", err)
	}
}

func TestRepositoryRecentOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, cmd := range []string{"first", "second", "third"} {
		entry := &Entry{
			SessionID: "s",
			Command:   cmd,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := repo.Append(ctx, entry); err != nil {
			t.Fatalf("Append %q: %v", cmd, err)
		}
	}

	entries, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Command != "first" || entries[2].Command != "third" {
		t.Fatalf("entries out of order: %q ... %q", entries[0].Command, entries[2].Command)
	}

	// Limit keeps the most recent entries but still reports oldest first.
	entries, err = repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent limited: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Command != "second" || entries[1].Command != "third" {
		t.Fatalf("limited entries wrong: %q, %q", entries[0].Command, entries[1].Command)
	}
}

func TestRepositoryBySession(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	for _, e := range []*Entry{
		{SessionID: "a", Command: "ls"},
		{SessionID: "b", Command: "pwd"},
		{SessionID: "a", Command: "cd /"},
	} {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	entries, err := repo.BySession(ctx, "a", 0)
	if err != nil {
		t.Fatalf("BySession: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for session a, got %d", len(entries))
	}
	for _, e := range entries {
		if e.SessionID != "a" {
			t.Fatalf("entry from wrong session: %+v", e)
		}
	}
}

func TestRepositoryClear(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	for _, cmd := range []string{"one", "two"} {
		if err := repo.Append(ctx, &Entry{SessionID: "s", Command: cmd}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	removed, err := repo.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}

	entries, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent after clear: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}
