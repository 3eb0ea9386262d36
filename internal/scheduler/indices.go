package scheduler

import "fmt"

// SlotKey identifies one cell of the week view.
type SlotKey struct {
	Week string
	Day  int
	Time string
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s-%d-%s", k.Week, k.Day, k.Time)
}

// Indices are lookup structures derived from Records. Buckets keep the order
// in which their records appear in the source collections.
type Indices struct {
	TraineeByID    map[string]Trainee
	BookingsByDate map[string][]DayBooking
	SessionsBySlot map[SlotKey][]Session
}

// BuildIndices derives the lookup indices for the given records.
func BuildIndices(records Records) Indices {
	ix := Indices{
		TraineeByID:    make(map[string]Trainee, len(records.Trainees)),
		BookingsByDate: make(map[string][]DayBooking),
		SessionsBySlot: make(map[SlotKey][]Session),
	}
	for _, t := range records.Trainees {
		ix.TraineeByID[t.ID] = t
	}
	for _, b := range records.DayBookings {
		ix.BookingsByDate[b.Date] = append(ix.BookingsByDate[b.Date], b)
	}
	for _, s := range records.Sessions {
		key := s.Slot()
		ix.SessionsBySlot[key] = append(ix.SessionsBySlot[key], s)
	}
	return ix
}
