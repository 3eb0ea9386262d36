package testfixtures

import (
	"io"
	"log/slog"

	"github.com/example/trainee-timetable/internal/application"
	"github.com/example/trainee-timetable/internal/calendar"
	"github.com/example/trainee-timetable/internal/metrics"
	"github.com/example/trainee-timetable/internal/persistence/memory"
	"github.com/example/trainee-timetable/internal/scheduler"
)

// ServiceFactory assembles a workspace and its services with a deterministic
// clock, identifiers and the 2026 holiday table.
type ServiceFactory struct {
	Clock          *Clock
	IDGenerator    *IDGenerator
	Holidays       calendar.Holidays
	MaxWeeklyHours int
	Logger         *slog.Logger
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:          NewClock(ReferenceTime()),
		IDGenerator:    NewIDGenerator("id"),
		Holidays:       calendar.Bulgaria2026(),
		MaxWeeklyHours: scheduler.DefaultMaxWeeklyHours,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(ReferenceTime())
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// WithMaxWeeklyHours overrides the weekly cap.
func WithMaxWeeklyHours(hours int) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.MaxWeeklyHours = hours
	}
}

// WithLogger overrides the discard logger.
func WithLogger(logger *slog.Logger) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Logger = logger
	}
}

// Services bundles a workspace with every service built on it.
type Services struct {
	Workspace *application.Workspace
	Store     application.SnapshotStore
	Metrics   *metrics.Metrics
	Trainees  *application.TraineeService
	Sessions  *application.SessionService
	Bookings  *application.BookingService
	Calendar  *application.CalendarService
	Transfer  *application.TransferService
}

// NewServices builds services over store. A nil store gets a fresh
// in-memory one.
func (f *ServiceFactory) NewServices(store application.SnapshotStore) Services {
	if store == nil {
		store = memory.New()
	}
	m := metrics.New()
	ws := application.NewWorkspace(application.WorkspaceOptions{
		Holidays:       f.Holidays,
		MaxWeeklyHours: f.MaxWeeklyHours,
		IDGenerator:    f.IDGenerator.NextFunc(),
		Now:            f.Clock.NowFunc(),
		Store:          store,
		Metrics:        m,
		Logger:         f.Logger,
	})
	return Services{
		Workspace: ws,
		Store:     store,
		Metrics:   m,
		Trainees:  application.NewTraineeServiceWithLogger(ws, f.Logger),
		Sessions:  application.NewSessionServiceWithLogger(ws, f.Logger),
		Bookings:  application.NewBookingServiceWithLogger(ws, f.Logger),
		Calendar:  application.NewCalendarServiceWithLogger(ws, f.Logger),
		Transfer:  application.NewTransferServiceWithLogger(ws, nil, f.Logger),
	}
}
