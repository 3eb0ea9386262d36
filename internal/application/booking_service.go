package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/trainee-timetable/internal/calendar"
	"github.com/example/trainee-timetable/internal/scheduler"
)

// BookingService manages whole-day attendance bookings under the weekly cap.
type BookingService struct {
	workspace *Workspace
	logger    *slog.Logger
}

// NewBookingService constructs a booking service over the workspace.
func NewBookingService(workspace *Workspace) *BookingService {
	return NewBookingServiceWithLogger(workspace, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(workspace *Workspace, logger *slog.Logger) *BookingService {
	return &BookingService{workspace: workspace, logger: defaultLogger(logger)}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// BookingsOnDate returns the bookings of one date in insertion order.
func (s *BookingService) BookingsOnDate(ctx context.Context, date string) ([]scheduler.DayBooking, error) {
	if s == nil || s.workspace == nil {
		return nil, fmt.Errorf("BookingService is not configured")
	}
	day, err := parseDateParam("date", date, s.workspace.Now())
	if err != nil {
		return nil, err
	}

	key := calendar.Key(day)
	var bookings []scheduler.DayBooking
	s.workspace.read(func(t *scheduler.Timetable) {
		bookings = t.BookingsOnDate(key)
	})
	return bookings, nil
}

// CreateBooking books hours for a trainee on a date. Status is forced to
// planned for future dates.
func (s *BookingService) CreateBooking(ctx context.Context, input scheduler.BookingInput) (booking scheduler.DayBooking, err error) {
	if s == nil || s.workspace == nil {
		return scheduler.DayBooking{}, fmt.Errorf("BookingService is not configured")
	}

	input.ID = ""
	logger := s.loggerWith(ctx, "CreateBooking",
		"trainee_id", input.TraineeID,
		"date", input.Date,
		"hours", input.Hours,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create booking", "booking created",
			"booking_id", booking.ID, "status", booking.Status)
	}()

	today := s.workspace.Today()
	err = s.workspace.mutate(ctx, logger, "booking", "create", func(t *scheduler.Timetable) (bool, error) {
		var addErr error
		booking, addErr = t.AddBooking(input, today)
		return addErr == nil, addErr
	})
	return booking, err
}

// UpdateBooking edits the trainee, hours and status of a booking. The date
// of an existing booking does not change.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, input scheduler.BookingInput) (booking scheduler.DayBooking, err error) {
	if s == nil || s.workspace == nil {
		return scheduler.DayBooking{}, fmt.Errorf("BookingService is not configured")
	}

	id = strings.TrimSpace(id)
	logger := s.loggerWith(ctx, "UpdateBooking",
		"booking_id", id,
		"trainee_id", input.TraineeID,
		"hours", input.Hours,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to update booking", "booking updated", "status", booking.Status)
	}()

	today := s.workspace.Today()
	err = s.workspace.mutate(ctx, logger, "booking", "update", func(t *scheduler.Timetable) (bool, error) {
		var updateErr error
		booking, updateErr = t.UpdateBooking(id, input, today)
		return updateErr == nil, updateErr
	})
	return booking, err
}

// DeleteBooking removes a booking. Unknown IDs are ignored.
func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if s == nil || s.workspace == nil {
		return fmt.Errorf("BookingService is not configured")
	}

	logger := s.loggerWith(ctx, "DeleteBooking", "booking_id", id)
	var removed bool
	err := s.workspace.mutate(ctx, logger, "booking", "delete", func(t *scheduler.Timetable) (bool, error) {
		removed = t.DeleteBooking(id)
		return removed, nil
	})
	if removed {
		logger.InfoContext(ctx, "booking deleted")
	}
	return err
}
