package scheduler

// Status is the attendance state of a day booking.
type Status string

const (
	// StatusPlanned marks a booking that has not been attended yet.
	StatusPlanned Status = "planned"
	// StatusPresent marks a booking the trainee attended.
	StatusPresent Status = "present"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPlanned || s == StatusPresent
}

// DefaultSessionType is applied to sessions created without a type.
const DefaultSessionType = "training"

// Trainee is a person that sessions and bookings are assigned to.
type Trainee struct {
	ID    string
	Name  string
	Email string
	Color string
}

// Session occupies one time slot of a specific week.
type Session struct {
	ID        string
	TraineeID string
	Title     string
	Type      string
	Notes     string
	Week      string
	Day       int
	Time      string
}

// Slot returns the slot the session occupies.
func (s Session) Slot() SlotKey {
	return SlotKey{Week: s.Week, Day: s.Day, Time: s.Time}
}

// DayBooking reserves whole-day attendance hours for a trainee on a date.
type DayBooking struct {
	ID        string
	Date      string
	TraineeID string
	Hours     int
	Status    Status
}

// Records holds the three collections owned by a timetable.
type Records struct {
	Trainees    []Trainee
	Sessions    []Session
	DayBookings []DayBooking
}

// Clone returns a copy of r that shares no backing arrays with it.
func (r Records) Clone() Records {
	return Records{
		Trainees:    append([]Trainee(nil), r.Trainees...),
		Sessions:    append([]Session(nil), r.Sessions...),
		DayBookings: append([]DayBooking(nil), r.DayBookings...),
	}
}

// TraineeInput carries the editable trainee fields.
type TraineeInput struct {
	Name  string
	Email string
	Color string
}

// SessionInput carries the fields of a new session.
type SessionInput struct {
	TraineeID string
	Title     string
	Type      string
	Notes     string
	Week      string
	Day       int
	Time      string
}

// SessionEdit carries the fields that may change on an existing session. The
// slot of a session is fixed once created.
type SessionEdit struct {
	TraineeID string
	Title     string
	Type      string
	Notes     string
}

// BookingInput carries the fields of a booking submission. An empty ID creates
// a booking; otherwise the booking with that ID is edited and Date is ignored.
type BookingInput struct {
	ID        string
	TraineeID string
	Date      string
	Hours     int
	Status    Status
}

// WeeklyStats partitions a trainee's weekly hours by status.
type WeeklyStats struct {
	WeekStart string
	Planned   int
	Present   int
	Total     int
	Cap       int
	Remaining int
}
