package scheduler

import (
	"strings"

	"github.com/google/uuid"

	"github.com/example/trainee-timetable/internal/calendar"
)

// DefaultMaxWeeklyHours is the weekly hour cap applied when none is configured.
const DefaultMaxWeeklyHours = 20

// Options configures a Timetable.
type Options struct {
	Holidays       calendar.Holidays
	MaxWeeklyHours int
	NewID          func() string
}

// Timetable owns the record collections and keeps their indices consistent
// with them. Every mutation rebuilds the indices before returning.
type Timetable struct {
	records        Records
	indices        Indices
	holidays       calendar.Holidays
	maxWeeklyHours int
	newID          func() string
}

// New constructs an empty timetable.
func New(opts Options) *Timetable {
	if opts.Holidays == nil {
		opts.Holidays = calendar.Holidays{}
	}
	if opts.MaxWeeklyHours <= 0 {
		opts.MaxWeeklyHours = DefaultMaxWeeklyHours
	}
	if opts.NewID == nil {
		opts.NewID = NewID
	}
	t := &Timetable{
		holidays:       opts.Holidays,
		maxWeeklyHours: opts.MaxWeeklyHours,
		newID:          opts.NewID,
	}
	t.rebuild()
	return t
}

// NewID returns a time ordered identifier with a random suffix.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Holidays returns the holiday table consulted by the timetable.
func (t *Timetable) Holidays() calendar.Holidays {
	return t.holidays
}

// MaxWeeklyHours returns the weekly hour cap.
func (t *Timetable) MaxWeeklyHours() int {
	return t.maxWeeklyHours
}

// Records returns a copy of the stored collections.
func (t *Timetable) Records() Records {
	return t.records.Clone()
}

// Replace swaps in whole collections, as done when loading or importing.
func (t *Timetable) Replace(records Records) {
	t.records = records.Clone()
	t.rebuild()
}

// Trainees returns the roster in insertion order.
func (t *Timetable) Trainees() []Trainee {
	return append([]Trainee(nil), t.records.Trainees...)
}

// Trainee looks up a trainee by ID.
func (t *Timetable) Trainee(id string) (Trainee, bool) {
	tr, ok := t.indices.TraineeByID[id]
	return tr, ok
}

// Session looks up a session by ID.
func (t *Timetable) Session(id string) (Session, bool) {
	if i := t.sessionIndex(id); i >= 0 {
		return t.records.Sessions[i], true
	}
	return Session{}, false
}

// Booking looks up a day booking by ID.
func (t *Timetable) Booking(id string) (DayBooking, bool) {
	if i := t.bookingIndex(id); i >= 0 {
		return t.records.DayBookings[i], true
	}
	return DayBooking{}, false
}

func (t *Timetable) rebuild() {
	t.indices = BuildIndices(t.records)
}

// AddTrainee validates and stores a new trainee. A trainee without a colour
// is assigned one from the palette.
func (t *Timetable) AddTrainee(in TraineeInput) (Trainee, error) {
	in = normalizeTraineeInput(in)
	if err := validateTraineeInput(in); err != nil {
		return Trainee{}, err
	}
	if in.Color == "" {
		in.Color = PaletteColor(len(t.records.Trainees))
	}

	tr := Trainee{ID: t.newID(), Name: in.Name, Email: in.Email, Color: in.Color}
	t.records.Trainees = append(t.records.Trainees, tr)
	t.rebuild()
	return tr, nil
}

// UpdateTrainee replaces the editable fields of an existing trainee. An empty
// colour keeps the current one.
func (t *Timetable) UpdateTrainee(id string, in TraineeInput) (Trainee, error) {
	i := t.traineeIndex(id)
	if i < 0 {
		return Trainee{}, ErrNotFound
	}
	in = normalizeTraineeInput(in)
	if err := validateTraineeInput(in); err != nil {
		return Trainee{}, err
	}

	tr := &t.records.Trainees[i]
	tr.Name = in.Name
	tr.Email = in.Email
	if in.Color != "" {
		tr.Color = in.Color
	}
	updated := *tr
	t.rebuild()
	return updated, nil
}

// Cascade counts the records removed along with a trainee.
type Cascade struct {
	Sessions int
	Bookings int
}

// DeleteTrainee removes a trainee together with every session and booking
// that references it. Deleting an unknown ID is a no-op.
func (t *Timetable) DeleteTrainee(id string) (Cascade, bool) {
	i := t.traineeIndex(id)
	if i < 0 {
		return Cascade{}, false
	}
	t.records.Trainees = append(t.records.Trainees[:i:i], t.records.Trainees[i+1:]...)

	var cascade Cascade
	sessions := t.records.Sessions[:0:0]
	for _, s := range t.records.Sessions {
		if s.TraineeID == id {
			cascade.Sessions++
			continue
		}
		sessions = append(sessions, s)
	}
	bookings := t.records.DayBookings[:0:0]
	for _, b := range t.records.DayBookings {
		if b.TraineeID == id {
			cascade.Bookings++
			continue
		}
		bookings = append(bookings, b)
	}
	t.records.Sessions = sessions
	t.records.DayBookings = bookings
	t.rebuild()
	return cascade, true
}

// AddSession validates and stores a session in a bookable slot.
func (t *Timetable) AddSession(in SessionInput) (Session, error) {
	s := Session{
		TraineeID: strings.TrimSpace(in.TraineeID),
		Title:     strings.TrimSpace(in.Title),
		Type:      sessionType(in.Type),
		Notes:     strings.TrimSpace(in.Notes),
		Week:      strings.TrimSpace(in.Week),
		Day:       in.Day,
		Time:      strings.TrimSpace(in.Time),
	}

	vErr := &ValidationError{}
	t.validateSessionFields(vErr, s)
	t.validateSlot(vErr, s.Week, s.Day, s.Time)
	if !vErr.HasErrors() && len(DetectConflicts(t.indices.SessionsBySlot[s.Slot()], s)) > 0 {
		vErr.Add("trainee_id", "trainee already has a session in this slot")
	}
	if err := vErr.orNil(); err != nil {
		return Session{}, err
	}

	s.ID = t.newID()
	t.records.Sessions = append(t.records.Sessions, s)
	t.rebuild()
	return s, nil
}

// UpdateSession edits the trainee, title, type and notes of a session.
func (t *Timetable) UpdateSession(id string, edit SessionEdit) (Session, error) {
	i := t.sessionIndex(id)
	if i < 0 {
		return Session{}, ErrNotFound
	}

	s := t.records.Sessions[i]
	s.TraineeID = strings.TrimSpace(edit.TraineeID)
	s.Title = strings.TrimSpace(edit.Title)
	s.Type = sessionType(edit.Type)
	s.Notes = strings.TrimSpace(edit.Notes)

	vErr := &ValidationError{}
	t.validateSessionFields(vErr, s)
	t.validateSlot(vErr, s.Week, s.Day, s.Time)
	if !vErr.HasErrors() && len(DetectConflicts(t.indices.SessionsBySlot[s.Slot()], s)) > 0 {
		vErr.Add("trainee_id", "trainee already has a session in this slot")
	}
	if err := vErr.orNil(); err != nil {
		return Session{}, err
	}

	t.records.Sessions[i] = s
	t.rebuild()
	return s, nil
}

// DeleteSession removes a session. Deleting an unknown ID is a no-op.
func (t *Timetable) DeleteSession(id string) bool {
	i := t.sessionIndex(id)
	if i < 0 {
		return false
	}
	t.records.Sessions = append(t.records.Sessions[:i:i], t.records.Sessions[i+1:]...)
	t.rebuild()
	return true
}

// AddBooking creates a booking through the booking policy.
func (t *Timetable) AddBooking(in BookingInput, today string) (DayBooking, error) {
	in.ID = ""
	return t.ApplyBooking(in, today)
}

// UpdateBooking edits a booking through the booking policy.
func (t *Timetable) UpdateBooking(id string, in BookingInput, today string) (DayBooking, error) {
	if strings.TrimSpace(id) == "" {
		return DayBooking{}, ErrNotFound
	}
	in.ID = id
	return t.ApplyBooking(in, today)
}

// DeleteBooking removes a booking. Deleting an unknown ID is a no-op.
func (t *Timetable) DeleteBooking(id string) bool {
	i := t.bookingIndex(id)
	if i < 0 {
		return false
	}
	t.records.DayBookings = append(t.records.DayBookings[:i:i], t.records.DayBookings[i+1:]...)
	t.rebuild()
	return true
}

func (t *Timetable) validateSessionFields(vErr *ValidationError, s Session) {
	if s.TraineeID == "" {
		vErr.Add("trainee_id", "trainee is required")
	} else if _, ok := t.indices.TraineeByID[s.TraineeID]; !ok {
		vErr.Add("trainee_id", "trainee does not exist")
	}
	if s.Title == "" {
		vErr.Add("title", "title is required")
	}
}

func (t *Timetable) validateSlot(vErr *ValidationError, week string, day int, slot string) {
	if !calendar.IsWeekKey(week) {
		vErr.Add("week", "week must be the date key of a Monday")
	}
	if day < 0 || day >= calendar.DaysPerWeek {
		vErr.Add("day", "day must be between 0 and 6")
	}
	if !calendar.IsTimeSlot(slot) {
		vErr.Add("time", "time must be one of the fixed slots")
	}
	if vErr.HasErrors() {
		return
	}
	date, err := calendar.SlotDate(week, day)
	if err != nil || !t.holidays.IsBookable(date, day) {
		vErr.Add("day", "date is not bookable")
	}
}

func (t *Timetable) traineeIndex(id string) int {
	for i := range t.records.Trainees {
		if t.records.Trainees[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Timetable) sessionIndex(id string) int {
	for i := range t.records.Sessions {
		if t.records.Sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Timetable) bookingIndex(id string) int {
	for i := range t.records.DayBookings {
		if t.records.DayBookings[i].ID == id {
			return i
		}
	}
	return -1
}

func normalizeTraineeInput(in TraineeInput) TraineeInput {
	return TraineeInput{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Color: strings.ToLower(strings.TrimSpace(in.Color)),
	}
}

func validateTraineeInput(in TraineeInput) error {
	vErr := &ValidationError{}
	if in.Name == "" {
		vErr.Add("name", "name is required")
	}
	if in.Color != "" && !ValidColor(in.Color) {
		vErr.Add("color", "color must be a #rrggbb value")
	}
	return vErr.orNil()
}

func sessionType(raw string) string {
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return trimmed
	}
	return DefaultSessionType
}
