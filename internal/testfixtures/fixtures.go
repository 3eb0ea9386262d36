package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/trainee-timetable/internal/persistence"
	"github.com/example/trainee-timetable/internal/scheduler"
)

var (
	traineeCounter uint64
	sessionCounter uint64
	bookingCounter uint64
)

// referenceTime is Wednesday 2026-03-11; its week starts on Monday 2026-03-09.
var referenceTime = time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)

// ReferenceWeek is the week key of ReferenceTime.
const ReferenceWeek = "2026-03-09"

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- Trainee fixtures -----------------------------

// TraineeOption configures a generated trainee.
type TraineeOption func(*scheduler.Trainee)

// NewTrainee returns a trainee with a unique id and a palette colour.
func NewTrainee(opts ...TraineeOption) scheduler.Trainee {
	idx := atomic.AddUint64(&traineeCounter, 1)
	trainee := scheduler.Trainee{
		ID:    fmt.Sprintf("trainee-%03d", idx),
		Name:  fmt.Sprintf("Trainee %03d", idx),
		Email: fmt.Sprintf("trainee-%03d@example.com", idx),
		Color: scheduler.PaletteColor(int(idx - 1)),
	}
	for _, opt := range opts {
		opt(&trainee)
	}
	return trainee
}

// WithTraineeID overrides the generated trainee ID.
func WithTraineeID(id string) TraineeOption {
	return func(t *scheduler.Trainee) { t.ID = id }
}

// WithTraineeName overrides the generated name.
func WithTraineeName(name string) TraineeOption {
	return func(t *scheduler.Trainee) { t.Name = name }
}

// WithTraineeColor overrides the palette colour.
func WithTraineeColor(color string) TraineeOption {
	return func(t *scheduler.Trainee) { t.Color = color }
}

// ----------------------------- Session fixtures -----------------------------

// SessionOption configures a generated session.
type SessionOption func(*scheduler.Session)

// NewSession returns a training session for traineeID at 08:00 on the Monday
// of ReferenceWeek.
func NewSession(traineeID string, opts ...SessionOption) scheduler.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	session := scheduler.Session{
		ID:        fmt.Sprintf("session-%03d", idx),
		TraineeID: traineeID,
		Title:     fmt.Sprintf("Session %03d", idx),
		Type:      scheduler.DefaultSessionType,
		Week:      ReferenceWeek,
		Day:       0,
		Time:      "08:00",
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(s *scheduler.Session) { s.ID = id }
}

// WithSessionSlot places the session in another slot.
func WithSessionSlot(week string, day int, slot string) SessionOption {
	return func(s *scheduler.Session) {
		s.Week = week
		s.Day = day
		s.Time = slot
	}
}

// WithSessionTitle overrides the generated title.
func WithSessionTitle(title string) SessionOption {
	return func(s *scheduler.Session) { s.Title = title }
}

// ----------------------------- Booking fixtures -----------------------------

// BookingOption configures a generated day booking.
type BookingOption func(*scheduler.DayBooking)

// NewBooking returns a planned booking of hours for traineeID on date.
func NewBooking(traineeID, date string, hours int, opts ...BookingOption) scheduler.DayBooking {
	idx := atomic.AddUint64(&bookingCounter, 1)
	booking := scheduler.DayBooking{
		ID:        fmt.Sprintf("booking-%03d", idx),
		Date:      date,
		TraineeID: traineeID,
		Hours:     hours,
		Status:    scheduler.StatusPlanned,
	}
	for _, opt := range opts {
		opt(&booking)
	}
	return booking
}

// WithBookingID overrides the generated booking ID.
func WithBookingID(id string) BookingOption {
	return func(b *scheduler.DayBooking) { b.ID = id }
}

// WithBookingStatus overrides the planned status.
func WithBookingStatus(status scheduler.Status) BookingOption {
	return func(b *scheduler.DayBooking) { b.Status = status }
}

// ----------------------------- Snapshots -----------------------------

// SnapshotBuilder accumulates records into a persistence.Snapshot.
type SnapshotBuilder struct {
	snapshot persistence.Snapshot
}

// NewSnapshot starts an empty snapshot.
func NewSnapshot() *SnapshotBuilder {
	return &SnapshotBuilder{}
}

// Trainees appends trainees.
func (b *SnapshotBuilder) Trainees(trainees ...scheduler.Trainee) *SnapshotBuilder {
	b.snapshot.Trainees = append(b.snapshot.Trainees, trainees...)
	return b
}

// Sessions appends sessions.
func (b *SnapshotBuilder) Sessions(sessions ...scheduler.Session) *SnapshotBuilder {
	b.snapshot.Sessions = append(b.snapshot.Sessions, sessions...)
	return b
}

// Bookings appends day bookings.
func (b *SnapshotBuilder) Bookings(bookings ...scheduler.DayBooking) *SnapshotBuilder {
	b.snapshot.DayBookings = append(b.snapshot.DayBookings, bookings...)
	return b
}

// Build returns the accumulated snapshot.
func (b *SnapshotBuilder) Build() persistence.Snapshot {
	return persistence.FromRecords(b.snapshot.Records())
}
