package application

import (
	"errors"

	"github.com/example/trainee-timetable/internal/interchange"
	"github.com/example/trainee-timetable/internal/persistence"
	"github.com/example/trainee-timetable/internal/scheduler"
)

var (
	// ErrNotFound is returned when an edit or lookup targets a missing record.
	ErrNotFound = scheduler.ErrNotFound
	// ErrStorageUnavailable marks persistence failures.
	ErrStorageUnavailable = persistence.ErrStorageUnavailable
)

type (
	// ValidationError captures field level validation issues.
	ValidationError = scheduler.ValidationError
	// WeeklyCapExceededError rejects bookings above the weekly hour cap.
	WeeklyCapExceededError = scheduler.WeeklyCapExceededError
	// MalformedImportError rejects an import document.
	MalformedImportError = interchange.MalformedImportError
)

// ErrorKind maps sentinel and typed errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_unavailable"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}
	var capErr *WeeklyCapExceededError
	if errors.As(err, &capErr) {
		return "weekly_cap_exceeded"
	}
	var importErr *MalformedImportError
	if errors.As(err, &importErr) {
		return "malformed_import"
	}

	return "unexpected"
}

func fieldError(field, message string) error {
	vErr := &ValidationError{}
	vErr.Add(field, message)
	return vErr
}
