package persistence

import "github.com/example/trainee-timetable/internal/scheduler"

// Snapshot is the persisted form of the three timetable collections. Order
// within each collection is significant and must survive a round trip.
type Snapshot struct {
	Trainees    []scheduler.Trainee
	Sessions    []scheduler.Session
	DayBookings []scheduler.DayBooking
}

// FromRecords captures the collections of a timetable.
func FromRecords(records scheduler.Records) Snapshot {
	cloned := records.Clone()
	return Snapshot{
		Trainees:    cloned.Trainees,
		Sessions:    cloned.Sessions,
		DayBookings: cloned.DayBookings,
	}
}

// Records converts the snapshot back into timetable collections. Missing
// collections come back empty.
func (s Snapshot) Records() scheduler.Records {
	return scheduler.Records{
		Trainees:    s.Trainees,
		Sessions:    s.Sessions,
		DayBookings: s.DayBookings,
	}.Clone()
}

// IsEmpty reports whether the snapshot holds no records at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.Trainees) == 0 && len(s.Sessions) == 0 && len(s.DayBookings) == 0
}
