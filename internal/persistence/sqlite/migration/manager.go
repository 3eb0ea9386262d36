package migration

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"time"
)

// Manager runs pending migrations found in a file system against an executor.
type Manager struct {
	scanner  FileScanner
	executor Executor
	files    fs.FS
	dir      string
	logger   *slog.Logger
}

// NewManager creates a migration manager reading migrations from dir in files.
func NewManager(scanner FileScanner, executor Executor, files fs.FS, dir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		scanner:  scanner,
		executor: executor,
		files:    files,
		dir:      dir,
		logger:   logger.With("component", "migration"),
	}
}

// RunMigrations executes all pending migrations in version order. Execution
// stops at the first failure; migrations applied before it stay applied.
func (m *Manager) RunMigrations(ctx context.Context) error {
	start := time.Now()
	if err := m.executor.InitializeVersionTable(ctx); err != nil {
		m.logger.ErrorContext(ctx, "failed to initialize schema_migrations table", "error", err)
		return fmt.Errorf("failed to initialize version table: %w", err)
	}

	pending, err := m.GetPendingMigrations(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to resolve pending migrations", "error", err)
		return err
	}
	if len(pending) == 0 {
		m.logger.DebugContext(ctx, "database schema up to date")
		return nil
	}

	for i, migration := range pending {
		logger := m.logger.With("version", migration.Version, "description", migration.Description)
		logger.InfoContext(ctx, "applying migration", "position", i+1, "pending", len(pending))

		migrationStart := time.Now()
		if err := m.executor.ExecuteMigration(ctx, migration); err != nil {
			logger.ErrorContext(ctx, "migration failed", "error", err)
			return NewMigrationError(migration.Version, migration.FilePath, "execute migration",
				fmt.Errorf("%w: %w", ErrMigrationFailed, err))
		}
		logger.InfoContext(ctx, "migration applied", "duration", time.Since(migrationStart))
	}

	m.logger.InfoContext(ctx, "migrations completed", "count", len(pending), "duration", time.Since(start))
	return nil
}

// GetPendingMigrations returns available migrations that have not been applied
func (m *Manager) GetPendingMigrations(ctx context.Context) ([]Migration, error) {
	available, err := m.scanner.ScanMigrations(m.files, m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan migrations: %w", err)
	}
	applied, err := m.executor.GetAppliedVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied versions: %w", err)
	}
	if err := validateSequence(available, applied); err != nil {
		return nil, fmt.Errorf("migration sequence validation failed: %w", err)
	}

	done := make(map[string]bool, len(applied))
	for _, a := range applied {
		done[a.Version] = true
	}
	var pending []Migration
	for _, migration := range available {
		if !done[migration.Version] {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

// Status reports the applied and pending migrations
func (m *Manager) Status(ctx context.Context) (MigrationStatus, error) {
	if err := m.executor.InitializeVersionTable(ctx); err != nil {
		return MigrationStatus{}, fmt.Errorf("failed to initialize version table: %w", err)
	}
	applied, err := m.executor.GetAppliedVersions(ctx)
	if err != nil {
		return MigrationStatus{}, fmt.Errorf("failed to get applied migrations: %w", err)
	}
	pending, err := m.GetPendingMigrations(ctx)
	if err != nil {
		return MigrationStatus{}, err
	}

	status := MigrationStatus{
		PendingCount:      len(pending),
		AppliedMigrations: applied,
		PendingMigrations: pending,
	}
	if len(applied) > 0 {
		status.CurrentVersion = applied[len(applied)-1].Version
	}
	return status, nil
}

// validateSequence ensures available versions have no gaps and that every
// applied version still has a file.
func validateSequence(available []Migration, applied []AppliedMigration) error {
	versions := make(map[int]bool, len(available))
	lowest, highest := 0, 0
	for i, migration := range available {
		v, err := strconv.Atoi(migration.Version)
		if err != nil {
			return NewMigrationError(migration.Version, migration.FilePath, "validate sequence",
				fmt.Errorf("%w: version '%s' is not numeric", ErrInvalidVersion, migration.Version))
		}
		versions[v] = true
		if i == 0 || v < lowest {
			lowest = v
		}
		if v > highest {
			highest = v
		}
	}
	for v := lowest; len(available) > 0 && v <= highest; v++ {
		if !versions[v] {
			return fmt.Errorf("%w: missing migration version %03d in sequence", ErrVersionConflict, v)
		}
	}
	for _, a := range applied {
		v, err := strconv.Atoi(a.Version)
		if err != nil || !versions[v] {
			return fmt.Errorf("%w: applied migration %s not found in available migrations", ErrVersionConflict, a.Version)
		}
	}
	return nil
}
