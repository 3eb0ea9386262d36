package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/trainee-timetable/internal/persistence/sqlite/migration"
)

// ConnectionPool wraps the sqlx handle shared by the snapshot store.
type ConnectionPool struct {
	db *sqlx.DB
}

// NewConnectionPool opens the database described by config.
func NewConnectionPool(config migration.SQLiteConfig) (*ConnectionPool, error) {
	db, err := migration.OpenDatabase(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	return NewConnectionPoolFromDB(db), nil
}

// NewConnectionPoolFromDB wraps an already opened database handle.
func NewConnectionPoolFromDB(db *sql.DB) *ConnectionPool {
	return &ConnectionPool{db: sqlx.NewDb(db, migration.DriverName)}
}

func (cp *ConnectionPool) DB() *sqlx.DB {
	return cp.db
}

func (cp *ConnectionPool) Close() error {
	if cp == nil || cp.db == nil {
		return nil
	}
	return cp.db.Close()
}

// inTx runs fn inside a transaction, so the three snapshot tables are always
// read or replaced together. The transaction is rolled back when fn fails or
// panics.
func (cp *ConnectionPool) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := cp.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", classify(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", classify(err), rbErr)
		}
		return classify(err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", classify(err))
	}
	return nil
}

// Driver failure classes recognised by classify.
var (
	ErrDatabaseLocked      = errors.New("database locked")
	ErrConstraintViolation = errors.New("constraint violation")
)

var (
	lockedMarkers     = []string{"database is locked", "database table is locked", "SQLITE_BUSY"}
	constraintMarkers = []string{"UNIQUE constraint failed", "CHECK constraint failed", "NOT NULL constraint failed"}
)

// classify tags a driver error with ErrDatabaseLocked or
// ErrConstraintViolation based on its message.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrDatabaseLocked) || errors.Is(err, ErrConstraintViolation) {
		return err
	}
	msg := err.Error()
	for _, marker := range lockedMarkers {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %w", ErrDatabaseLocked, err)
		}
	}
	for _, marker := range constraintMarkers {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
	}
	return err
}

// lockBackoff retries work that fails with ErrDatabaseLocked, doubling the
// wait between attempts up to max.
type lockBackoff struct {
	retries int
	initial time.Duration
	max     time.Duration
}

func defaultLockBackoff() lockBackoff {
	return lockBackoff{retries: 3, initial: 100 * time.Millisecond, max: 2 * time.Second}
}

func (b lockBackoff) run(ctx context.Context, fn func() error) error {
	delay := b.initial
	var err error
	for attempt := 0; ; attempt++ {
		if err = classify(fn()); !errors.Is(err, ErrDatabaseLocked) {
			return err
		}
		if attempt == b.retries {
			return fmt.Errorf("still locked after %d retries: %w", b.retries, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = min(delay*2, b.max)
	}
}
