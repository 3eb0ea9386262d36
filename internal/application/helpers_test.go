package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/example/trainee-timetable/internal/calendar"
	"github.com/example/trainee-timetable/internal/metrics"
	"github.com/example/trainee-timetable/internal/persistence/memory"
	"github.com/example/trainee-timetable/internal/scheduler"
)

// testNow is Wednesday 2026-03-11; the surrounding week starts 2026-03-09.
var testNow = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	workspace *Workspace
	store     *memory.Store
	metrics   *metrics.Metrics
	trainees  *TraineeService
	sessions  *SessionService
	bookings  *BookingService
	calendar  *CalendarService
	transfer  *TransferService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, memory.New())
}

func newTestEnvWithStore(t *testing.T, store *memory.Store) *testEnv {
	t.Helper()

	counter := 0
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	ws := NewWorkspace(WorkspaceOptions{
		Holidays:       calendar.Bulgaria2026(),
		MaxWeeklyHours: scheduler.DefaultMaxWeeklyHours,
		IDGenerator: func() string {
			counter++
			return fmt.Sprintf("id-%d", counter)
		},
		Now:     func() time.Time { return testNow },
		Store:   store,
		Metrics: m,
		Logger:  logger,
	})
	return &testEnv{
		workspace: ws,
		store:     store,
		metrics:   m,
		trainees:  NewTraineeServiceWithLogger(ws, logger),
		sessions:  NewSessionServiceWithLogger(ws, logger),
		bookings:  NewBookingServiceWithLogger(ws, logger),
		calendar:  NewCalendarServiceWithLogger(ws, logger),
		transfer:  NewTransferServiceWithLogger(ws, nil, logger),
	}
}

func (e *testEnv) mustTrainee(t *testing.T, name string) scheduler.Trainee {
	t.Helper()
	tr, err := e.trainees.CreateTrainee(context.Background(), scheduler.TraineeInput{Name: name})
	if err != nil {
		t.Fatalf("failed to create trainee %s: %v", name, err)
	}
	return tr
}

func (e *testEnv) mustBooking(t *testing.T, traineeID, date string, hours int) scheduler.DayBooking {
	t.Helper()
	b, err := e.bookings.CreateBooking(context.Background(), scheduler.BookingInput{TraineeID: traineeID, Date: date, Hours: hours})
	if err != nil {
		t.Fatalf("failed to book %s on %s: %v", traineeID, date, err)
	}
	return b
}
