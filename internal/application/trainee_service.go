package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/trainee-timetable/internal/scheduler"
)

// TraineeWeek reports a trainee's hours in one week. Available is the number
// of hours that could still be booked, counting the excluded booking as free.
type TraineeWeek struct {
	scheduler.WeeklyStats
	Available int
}

// TraineeService manages the trainee roster.
type TraineeService struct {
	workspace *Workspace
	logger    *slog.Logger
}

// NewTraineeService constructs a trainee service over the workspace.
func NewTraineeService(workspace *Workspace) *TraineeService {
	return NewTraineeServiceWithLogger(workspace, nil)
}

// NewTraineeServiceWithLogger constructs a trainee service with a specified logger.
func NewTraineeServiceWithLogger(workspace *Workspace, logger *slog.Logger) *TraineeService {
	return &TraineeService{workspace: workspace, logger: defaultLogger(logger)}
}

func (s *TraineeService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TraineeService", operation, attrs...)
}

// ListTrainees returns the roster in insertion order.
func (s *TraineeService) ListTrainees(ctx context.Context) ([]scheduler.Trainee, error) {
	if s == nil || s.workspace == nil {
		return nil, fmt.Errorf("TraineeService is not configured")
	}
	var trainees []scheduler.Trainee
	s.workspace.read(func(t *scheduler.Timetable) {
		trainees = t.Trainees()
	})
	return trainees, nil
}

// CreateTrainee adds a trainee to the roster.
func (s *TraineeService) CreateTrainee(ctx context.Context, input scheduler.TraineeInput) (trainee scheduler.Trainee, err error) {
	if s == nil || s.workspace == nil {
		return scheduler.Trainee{}, fmt.Errorf("TraineeService is not configured")
	}

	logger := s.loggerWith(ctx, "CreateTrainee")
	defer func() {
		logOutcome(ctx, logger, err, "failed to create trainee", "trainee created", "trainee_id", trainee.ID)
	}()

	err = s.workspace.mutate(ctx, logger, "trainee", "create", func(t *scheduler.Timetable) (bool, error) {
		var addErr error
		trainee, addErr = t.AddTrainee(input)
		return addErr == nil, addErr
	})
	return trainee, err
}

// UpdateTrainee edits an existing trainee.
func (s *TraineeService) UpdateTrainee(ctx context.Context, id string, input scheduler.TraineeInput) (trainee scheduler.Trainee, err error) {
	if s == nil || s.workspace == nil {
		return scheduler.Trainee{}, fmt.Errorf("TraineeService is not configured")
	}

	logger := s.loggerWith(ctx, "UpdateTrainee", "trainee_id", id)
	defer func() {
		logOutcome(ctx, logger, err, "failed to update trainee", "trainee updated")
	}()

	err = s.workspace.mutate(ctx, logger, "trainee", "update", func(t *scheduler.Timetable) (bool, error) {
		var updateErr error
		trainee, updateErr = t.UpdateTrainee(id, input)
		return updateErr == nil, updateErr
	})
	return trainee, err
}

// DeleteTrainee removes a trainee and every session and booking assigned to
// it. Deleting an unknown trainee succeeds without changes.
func (s *TraineeService) DeleteTrainee(ctx context.Context, id string) (cascade scheduler.Cascade, err error) {
	if s == nil || s.workspace == nil {
		return scheduler.Cascade{}, fmt.Errorf("TraineeService is not configured")
	}

	logger := s.loggerWith(ctx, "DeleteTrainee", "trainee_id", id)
	var removed bool
	err = s.workspace.mutate(ctx, logger, "trainee", "delete", func(t *scheduler.Timetable) (bool, error) {
		cascade, removed = t.DeleteTrainee(id)
		return removed, nil
	})
	if removed {
		logger.InfoContext(ctx, "trainee deleted",
			"sessions_removed", cascade.Sessions,
			"bookings_removed", cascade.Bookings,
		)
	}
	return cascade, err
}

// WeeklyStats reports the hours of the week containing date for a trainee.
// A non-empty excludeBookingID leaves that booking out of the available
// figure, as needed when editing it.
func (s *TraineeService) WeeklyStats(ctx context.Context, id, date, excludeBookingID string) (TraineeWeek, error) {
	if s == nil || s.workspace == nil {
		return TraineeWeek{}, fmt.Errorf("TraineeService is not configured")
	}

	day, err := parseDateParam("date", date, s.workspace.Now())
	if err != nil {
		return TraineeWeek{}, err
	}

	var (
		week  TraineeWeek
		found bool
	)
	s.workspace.read(func(t *scheduler.Timetable) {
		if _, found = t.Trainee(id); !found {
			return
		}
		week.WeeklyStats = t.WeeklyStats(id, day)
		week.Available = t.AvailableHours(id, day, strings.TrimSpace(excludeBookingID))
	})
	if !found {
		return TraineeWeek{}, ErrNotFound
	}
	return week, nil
}
