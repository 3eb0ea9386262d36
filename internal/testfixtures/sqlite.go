package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/example/trainee-timetable/internal/persistence/sqlite"
	"github.com/example/trainee-timetable/internal/persistence/sqlite/migration"
)

// SQLiteHarness provides a migrated snapshot store in a temporary database
// file for integration-style tests.
type SQLiteHarness struct {
	Store *sqlite.SnapshotStore
	Path  string

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// Reopen closes the store and opens the same file again.
func (h *SQLiteHarness) Reopen(tb testing.TB) *sqlite.SnapshotStore {
	tb.Helper()
	h.Close()
	store := openStore(tb, h.Path)
	h.Store = store
	h.cleanup = func() { _ = store.Close() }
	return store
}

// NewSQLiteHarness opens a fresh database under tb.TempDir. The store is
// closed automatically when the test ends.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "timetable.db")
	store := openStore(tb, path)
	harness := &SQLiteHarness{
		Store:   store,
		Path:    path,
		cleanup: func() { _ = store.Close() },
	}

	tb.Cleanup(harness.Close)
	return harness
}

func openStore(tb testing.TB, path string) *sqlite.SnapshotStore {
	tb.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(context.Background(), migration.DefaultSQLiteConfig(path), logger)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}
	return store
}
