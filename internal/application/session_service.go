package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/trainee-timetable/internal/scheduler"
)

// SessionService manages week-specific time slot sessions.
type SessionService struct {
	workspace *Workspace
	logger    *slog.Logger
}

// NewSessionService constructs a session service over the workspace.
func NewSessionService(workspace *Workspace) *SessionService {
	return NewSessionServiceWithLogger(workspace, nil)
}

// NewSessionServiceWithLogger constructs a session service with a specified logger.
func NewSessionServiceWithLogger(workspace *Workspace, logger *slog.Logger) *SessionService {
	return &SessionService{workspace: workspace, logger: defaultLogger(logger)}
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SessionService", operation, attrs...)
}

// SessionsInSlot returns the sessions of one slot in insertion order.
func (s *SessionService) SessionsInSlot(ctx context.Context, query SlotQuery) ([]scheduler.Session, error) {
	if s == nil || s.workspace == nil {
		return nil, fmt.Errorf("SessionService is not configured")
	}
	week, day, slot, err := query.parse()
	if err != nil {
		return nil, err
	}

	var sessions []scheduler.Session
	s.workspace.read(func(t *scheduler.Timetable) {
		sessions = t.SessionsInSlot(week, day, slot)
	})
	return sessions, nil
}

// CreateSession schedules a session in a bookable slot.
func (s *SessionService) CreateSession(ctx context.Context, input scheduler.SessionInput) (session scheduler.Session, err error) {
	if s == nil || s.workspace == nil {
		return scheduler.Session{}, fmt.Errorf("SessionService is not configured")
	}

	logger := s.loggerWith(ctx, "CreateSession",
		"trainee_id", input.TraineeID,
		"week", input.Week,
		"day", input.Day,
		"time", input.Time,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create session", "session created", "session_id", session.ID)
	}()

	err = s.workspace.mutate(ctx, logger, "session", "create", func(t *scheduler.Timetable) (bool, error) {
		var addErr error
		session, addErr = t.AddSession(input)
		return addErr == nil, addErr
	})
	return session, err
}

// UpdateSession edits the trainee, title, type and notes of a session. The
// slot does not change.
func (s *SessionService) UpdateSession(ctx context.Context, id string, edit scheduler.SessionEdit) (session scheduler.Session, err error) {
	if s == nil || s.workspace == nil {
		return scheduler.Session{}, fmt.Errorf("SessionService is not configured")
	}

	logger := s.loggerWith(ctx, "UpdateSession", "session_id", id)
	defer func() {
		logOutcome(ctx, logger, err, "failed to update session", "session updated")
	}()

	err = s.workspace.mutate(ctx, logger, "session", "update", func(t *scheduler.Timetable) (bool, error) {
		var updateErr error
		session, updateErr = t.UpdateSession(id, edit)
		return updateErr == nil, updateErr
	})
	return session, err
}

// DeleteSession removes a session. Unknown IDs are ignored.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	if s == nil || s.workspace == nil {
		return fmt.Errorf("SessionService is not configured")
	}

	logger := s.loggerWith(ctx, "DeleteSession", "session_id", id)
	var removed bool
	err := s.workspace.mutate(ctx, logger, "session", "delete", func(t *scheduler.Timetable) (bool, error) {
		removed = t.DeleteSession(id)
		return removed, nil
	})
	if removed {
		logger.InfoContext(ctx, "session deleted")
	}
	return err
}
