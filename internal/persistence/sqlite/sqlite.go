package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/example/trainee-timetable/internal/persistence"
	"github.com/example/trainee-timetable/internal/persistence/sqlite/migration"
	"github.com/example/trainee-timetable/internal/scheduler"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// insertBatchSize keeps multi-row inserts under SQLite's bound variable limit.
const insertBatchSize = 100

const (
	selectTrainees = `SELECT position, id, name, email, color FROM trainees ORDER BY position`
	selectSessions = `SELECT position, id, trainee_id, title, session_type, notes, week_key, day_index, slot_time
		FROM sessions ORDER BY position`
	selectDayBookings = `SELECT position, id, date_key, trainee_id, hours, status FROM day_bookings ORDER BY position`

	insertTrainees = `INSERT INTO trainees (position, id, name, email, color)
		VALUES (:position, :id, :name, :email, :color)`
	insertSessions = `INSERT INTO sessions (position, id, trainee_id, title, session_type, notes, week_key, day_index, slot_time)
		VALUES (:position, :id, :trainee_id, :title, :session_type, :notes, :week_key, :day_index, :slot_time)`
	insertDayBookings = `INSERT INTO day_bookings (position, id, date_key, trainee_id, hours, status)
		VALUES (:position, :id, :date_key, :trainee_id, :hours, :status)`
)

type traineeRow struct {
	Position int    `db:"position"`
	ID       string `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Color    string `db:"color"`
}

type sessionRow struct {
	Position  int    `db:"position"`
	ID        string `db:"id"`
	TraineeID string `db:"trainee_id"`
	Title     string `db:"title"`
	Type      string `db:"session_type"`
	Notes     string `db:"notes"`
	Week      string `db:"week_key"`
	Day       int    `db:"day_index"`
	Time      string `db:"slot_time"`
}

type dayBookingRow struct {
	Position  int    `db:"position"`
	ID        string `db:"id"`
	Date      string `db:"date_key"`
	TraineeID string `db:"trainee_id"`
	Hours     int    `db:"hours"`
	Status    string `db:"status"`
}

// SnapshotStore persists timetable snapshots in SQLite. Each Save replaces
// the three tables in a single transaction.
type SnapshotStore struct {
	pool   *ConnectionPool
	retry  lockBackoff
	logger *slog.Logger
}

var _ persistence.Store = (*SnapshotStore)(nil)

// Open opens the database, applies pending migrations and returns a store.
func Open(ctx context.Context, config migration.SQLiteConfig, logger *slog.Logger) (*SnapshotStore, error) {
	pool, err := NewConnectionPool(config)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool.DB().DB, logger); err != nil {
		pool.Close()
		return nil, err
	}
	return NewSnapshotStore(pool, logger), nil
}

// Migrate applies the embedded schema migrations to db.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	manager := migration.NewManager(
		migration.NewFileScanner(),
		migration.NewSQLiteExecutor(db, logger),
		migrationFiles,
		"migrations",
		logger,
	)
	if err := manager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

// NewSnapshotStore returns a store backed by an already migrated pool.
func NewSnapshotStore(pool *ConnectionPool, logger *slog.Logger) *SnapshotStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotStore{
		pool:   pool,
		retry:  defaultLockBackoff(),
		logger: logger.With(slog.String("component", "sqlite_store")),
	}
}

// Close releases the underlying connection pool.
func (s *SnapshotStore) Close() error {
	return s.pool.Close()
}

// Load reads all three collections in position order.
func (s *SnapshotStore) Load(ctx context.Context) (persistence.Snapshot, error) {
	var (
		trainees []traineeRow
		sessions []sessionRow
		bookings []dayBookingRow
	)

	err := s.retry.run(ctx, func() error {
		return s.pool.inTx(ctx, func(tx *sqlx.Tx) error {
			if err := tx.SelectContext(ctx, &trainees, selectTrainees); err != nil {
				return fmt.Errorf("select trainees: %w", err)
			}
			if err := tx.SelectContext(ctx, &sessions, selectSessions); err != nil {
				return fmt.Errorf("select sessions: %w", err)
			}
			if err := tx.SelectContext(ctx, &bookings, selectDayBookings); err != nil {
				return fmt.Errorf("select day bookings: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return persistence.Snapshot{}, fmt.Errorf("%w: load: %w", persistence.ErrStorageUnavailable, err)
	}

	snapshot := persistence.Snapshot{
		Trainees:    make([]scheduler.Trainee, 0, len(trainees)),
		Sessions:    make([]scheduler.Session, 0, len(sessions)),
		DayBookings: make([]scheduler.DayBooking, 0, len(bookings)),
	}
	for _, row := range trainees {
		snapshot.Trainees = append(snapshot.Trainees, scheduler.Trainee{
			ID: row.ID, Name: row.Name, Email: row.Email, Color: row.Color,
		})
	}
	for _, row := range sessions {
		snapshot.Sessions = append(snapshot.Sessions, scheduler.Session{
			ID: row.ID, TraineeID: row.TraineeID, Title: row.Title, Type: row.Type,
			Notes: row.Notes, Week: row.Week, Day: row.Day, Time: row.Time,
		})
	}
	for _, row := range bookings {
		snapshot.DayBookings = append(snapshot.DayBookings, scheduler.DayBooking{
			ID: row.ID, Date: row.Date, TraineeID: row.TraineeID, Hours: row.Hours,
			Status: scheduler.Status(row.Status),
		})
	}

	s.logger.DebugContext(ctx, "snapshot loaded",
		slog.Int("trainees", len(snapshot.Trainees)),
		slog.Int("sessions", len(snapshot.Sessions)),
		slog.Int("day_bookings", len(snapshot.DayBookings)),
	)
	return snapshot, nil
}

// Save overwrites all three collections atomically.
func (s *SnapshotStore) Save(ctx context.Context, snapshot persistence.Snapshot) error {
	trainees := make([]traineeRow, len(snapshot.Trainees))
	for i, t := range snapshot.Trainees {
		trainees[i] = traineeRow{Position: i, ID: t.ID, Name: t.Name, Email: t.Email, Color: t.Color}
	}
	sessions := make([]sessionRow, len(snapshot.Sessions))
	for i, sess := range snapshot.Sessions {
		sessions[i] = sessionRow{
			Position: i, ID: sess.ID, TraineeID: sess.TraineeID, Title: sess.Title, Type: sess.Type,
			Notes: sess.Notes, Week: sess.Week, Day: sess.Day, Time: sess.Time,
		}
	}
	bookings := make([]dayBookingRow, len(snapshot.DayBookings))
	for i, b := range snapshot.DayBookings {
		bookings[i] = dayBookingRow{
			Position: i, ID: b.ID, Date: b.Date, TraineeID: b.TraineeID, Hours: b.Hours, Status: string(b.Status),
		}
	}

	err := s.retry.run(ctx, func() error {
		return s.pool.inTx(ctx, func(tx *sqlx.Tx) error {
			for _, table := range []string{"day_bookings", "sessions", "trainees"} {
				if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
					return fmt.Errorf("clear %s: %w", table, err)
				}
			}
			if err := insertBatches(ctx, tx, insertTrainees, trainees); err != nil {
				return fmt.Errorf("insert trainees: %w", err)
			}
			if err := insertBatches(ctx, tx, insertSessions, sessions); err != nil {
				return fmt.Errorf("insert sessions: %w", err)
			}
			if err := insertBatches(ctx, tx, insertDayBookings, bookings); err != nil {
				return fmt.Errorf("insert day bookings: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("%w: save: %w", persistence.ErrStorageUnavailable, err)
	}

	s.logger.DebugContext(ctx, "snapshot saved",
		slog.Int("trainees", len(trainees)),
		slog.Int("sessions", len(sessions)),
		slog.Int("day_bookings", len(bookings)),
	)
	return nil
}

// insertBatches runs a named multi-row insert for rows in chunks.
func insertBatches[T any](ctx context.Context, tx *sqlx.Tx, query string, rows []T) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		if _, err := tx.NamedExecContext(ctx, query, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}
