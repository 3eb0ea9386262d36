package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/example/trainee-timetable/internal/calendar"
	"github.com/example/trainee-timetable/internal/metrics"
	"github.com/example/trainee-timetable/internal/persistence"
	"github.com/example/trainee-timetable/internal/scheduler"
)

// SnapshotStore captures the persistence operations needed by the workspace.
type SnapshotStore interface {
	Load(ctx context.Context) (persistence.Snapshot, error)
	Save(ctx context.Context, snapshot persistence.Snapshot) error
}

// WorkspaceOptions configures a Workspace.
type WorkspaceOptions struct {
	Holidays       calendar.Holidays
	MaxWeeklyHours int
	IDGenerator    func() string
	Now            func() time.Time
	Store          SnapshotStore
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	ViewCacheTTL   time.Duration
}

// Workspace owns the single timetable of the process. Reads share a read
// lock; each mutation validates, mutates, rebuilds indices and persists
// inside one write critical section.
type Workspace struct {
	mu        sync.RWMutex
	timetable *scheduler.Timetable
	store     SnapshotStore
	metrics   *metrics.Metrics
	now       func() time.Time
	logger    *slog.Logger
	weeks     *viewCache[scheduler.WeekView]
	months    *viewCache[scheduler.MonthView]

	// unloaded is set while the stored snapshot could not be read. Saving
	// then would overwrite it with the partial in-memory state.
	unloaded bool
}

// NewWorkspace constructs an empty workspace.
func NewWorkspace(opts WorkspaceOptions) *Workspace {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ws := &Workspace{
		timetable: scheduler.New(scheduler.Options{
			Holidays:       opts.Holidays,
			MaxWeeklyHours: opts.MaxWeeklyHours,
			NewID:          opts.IDGenerator,
		}),
		store:   opts.Store,
		metrics: opts.Metrics,
		now:     opts.Now,
		logger:  defaultLogger(opts.Logger),
		weeks:   newViewCache(opts.ViewCacheTTL, 0, opts.Now, cloneWeekView),
		months:  newViewCache(opts.ViewCacheTTL, 0, opts.Now, cloneMonthView),
	}
	return ws
}

// Today returns the date key of the current local day.
func (w *Workspace) Today() string {
	return calendar.Key(w.now())
}

// Persisting reports whether mutations are written to the store.
func (w *Workspace) Persisting() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.store != nil && !w.unloaded
}

// Now returns the workspace clock reading.
func (w *Workspace) Now() time.Time {
	return w.now()
}

// Load replaces the timetable with the stored snapshot. When autoPromote is
// set, planned bookings dated before today are promoted to present and the
// result is persisted. It returns the number of promoted bookings.
//
// When the store cannot be read, saving is suspended until a later Load
// succeeds, so stored data is never replaced by an empty timetable.
func (w *Workspace) Load(ctx context.Context, autoPromote bool) (promoted int, err error) {
	logger := serviceLogger(ctx, w.logger, "Workspace", "Load", "auto_promote", autoPromote)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.store != nil {
		var snapshot persistence.Snapshot
		snapshot, err = w.store.Load(ctx)
		if err != nil {
			w.unloaded = true
			logger.ErrorContext(ctx, "failed to load snapshot; saving suspended", "error", err, "error_kind", ErrorKind(err))
			return 0, err
		}
		w.unloaded = false
		w.timetable.Replace(snapshot.Records())
	}

	if autoPromote {
		promoted = w.timetable.AutoPromotePastPlanned(w.Today())
		w.metrics.RecordAutoPromoted(promoted)
		if promoted > 0 {
			w.persistLocked(ctx, logger)
		}
	}
	w.afterChangeLocked()

	records := w.timetable.Records()
	logger.InfoContext(ctx, "timetable loaded",
		"trainees", len(records.Trainees),
		"sessions", len(records.Sessions),
		"day_bookings", len(records.DayBookings),
		"promoted", promoted,
	)
	return promoted, nil
}

// read runs fn under the read lock.
func (w *Workspace) read(fn func(t *scheduler.Timetable)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(w.timetable)
}

// mutate runs fn under the write lock. When fn reports a change, cached views
// are dropped and the snapshot is persisted. Persistence failures are logged
// and never returned: the in-memory state stays authoritative.
func (w *Workspace) mutate(ctx context.Context, logger *slog.Logger, entity, operation string, fn func(t *scheduler.Timetable) (bool, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed, err := fn(w.timetable)
	if err != nil {
		w.metrics.RecordRejection(ErrorKind(err))
		return err
	}
	if !changed {
		return nil
	}

	w.metrics.RecordMutation(entity, operation)
	w.afterChangeLocked()
	w.persistLocked(ctx, logger)
	return nil
}

func (w *Workspace) afterChangeLocked() {
	w.weeks.Invalidate()
	w.months.Invalidate()
	records := w.timetable.Records()
	w.metrics.SetRecordCounts(len(records.Trainees), len(records.Sessions), len(records.DayBookings))
}

func (w *Workspace) persistLocked(ctx context.Context, logger *slog.Logger) {
	if w.store == nil {
		return
	}
	if w.unloaded {
		w.metrics.RecordPersistFailure()
		logger.WarnContext(ctx, "change kept in memory only; stored timetable was never loaded", "error_kind", "storage_unavailable")
		return
	}
	if err := w.store.Save(context.WithoutCancel(ctx), persistence.FromRecords(w.timetable.Records())); err != nil {
		w.metrics.RecordPersistFailure()
		logger.ErrorContext(ctx, "failed to persist timetable", "error", err, "error_kind", ErrorKind(err))
	}
}
