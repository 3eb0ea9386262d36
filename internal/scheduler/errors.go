package scheduler

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an edit targets a record that does not exist.
var ErrNotFound = errors.New("scheduler: not found")

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %d field(s)", len(v.FieldErrors))
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// Add records a field level validation error. The first message recorded for a
// field wins.
func (v *ValidationError) Add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	if _, exists := v.FieldErrors[field]; exists {
		return
	}
	v.FieldErrors[field] = message
}

// Merge copies entries from another validation error into the receiver.
func (v *ValidationError) Merge(other *ValidationError) {
	if other == nil || len(other.FieldErrors) == 0 {
		return
	}
	for field, msg := range other.FieldErrors {
		v.Add(field, msg)
	}
}

func (v *ValidationError) orNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

// WeeklyCapExceededError rejects a booking that would push a trainee past the
// weekly hour cap. Current excludes the hours of the booking being edited.
type WeeklyCapExceededError struct {
	TraineeID string
	WeekStart string
	Attempted int
	Current   int
	Cap       int
}

func (e *WeeklyCapExceededError) Error() string {
	return fmt.Sprintf("cannot add %d hours: trainee %s already has %d hours in week %s (max %d)",
		e.Attempted, e.TraineeID, e.Current, e.WeekStart, e.Cap)
}

// Available returns how many more hours the week could take.
func (e *WeeklyCapExceededError) Available() int {
	if avail := e.Cap - e.Current; avail > 0 {
		return avail
	}
	return 0
}
