package scheduler

import (
	"strings"
	"time"

	"github.com/example/trainee-timetable/internal/calendar"
)

// ResolveStatus forces bookings dated after today to planned. Date-keys order
// lexically, so the comparison works on the keys directly.
func ResolveStatus(dateKey string, requested Status, todayKey string) Status {
	if dateKey > todayKey {
		return StatusPlanned
	}
	return requested
}

// CanAddHours reports whether newHours fit under the weekly cap for the week
// containing date. The hours of excludeBookingID are discounted when that
// booking is already counted in the week, as happens when it is being edited.
func (t *Timetable) CanAddHours(traineeID string, date time.Time, newHours int, excludeBookingID string) bool {
	return t.hoursExcluding(traineeID, date, excludeBookingID)+newHours <= t.maxWeeklyHours
}

// AvailableHours returns how many hours could still be booked in the week
// containing date, counting the hours of excludeBookingID as available.
func (t *Timetable) AvailableHours(traineeID string, date time.Time, excludeBookingID string) int {
	if avail := t.maxWeeklyHours - t.hoursExcluding(traineeID, date, excludeBookingID); avail > 0 {
		return avail
	}
	return 0
}

func (t *Timetable) hoursExcluding(traineeID string, date time.Time, excludeBookingID string) int {
	hours := t.WeeklyHours(traineeID, date)
	if excludeBookingID == "" {
		return hours
	}
	existing, ok := t.Booking(excludeBookingID)
	if !ok || existing.TraineeID != traineeID {
		return hours
	}
	existingDate, err := calendar.ParseKey(existing.Date)
	if err != nil || !calendar.WeekStart(existingDate).Equal(calendar.WeekStart(date)) {
		return hours
	}
	return hours - existing.Hours
}

// ApplyBooking validates a booking submission, resolves its status against
// today, checks the weekly cap and then creates or edits the booking. A cap
// violation returns *WeeklyCapExceededError and leaves the store untouched.
func (t *Timetable) ApplyBooking(in BookingInput, todayKey string) (DayBooking, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.TraineeID = strings.TrimSpace(in.TraineeID)
	in.Date = strings.TrimSpace(in.Date)

	existing := -1
	if in.ID != "" {
		existing = t.bookingIndex(in.ID)
		if existing < 0 {
			return DayBooking{}, ErrNotFound
		}
		in.Date = t.records.DayBookings[existing].Date
		if in.Status == "" {
			in.Status = t.records.DayBookings[existing].Status
		}
	}
	if in.Status == "" {
		in.Status = StatusPlanned
	}

	vErr := &ValidationError{}
	if in.TraineeID == "" {
		vErr.Add("trainee_id", "trainee is required")
	} else if _, ok := t.indices.TraineeByID[in.TraineeID]; !ok {
		vErr.Add("trainee_id", "trainee does not exist")
	}
	if in.Hours <= 0 {
		vErr.Add("hours", "hours must be positive")
	}
	if !in.Status.Valid() {
		vErr.Add("status", "status must be planned or present")
	}
	date, err := calendar.ParseKey(in.Date)
	switch {
	case err != nil:
		vErr.Add("date", "date must be a YYYY-MM-DD date key")
	case !t.holidays.IsBookable(in.Date, calendar.DayIndex(date)):
		vErr.Add("date", "date is not bookable")
	}
	if err := vErr.orNil(); err != nil {
		return DayBooking{}, err
	}

	status := ResolveStatus(in.Date, in.Status, todayKey)
	current := t.hoursExcluding(in.TraineeID, date, in.ID)
	if current+in.Hours > t.maxWeeklyHours {
		return DayBooking{}, &WeeklyCapExceededError{
			TraineeID: in.TraineeID,
			WeekStart: calendar.Key(calendar.WeekStart(date)),
			Attempted: in.Hours,
			Current:   current,
			Cap:       t.maxWeeklyHours,
		}
	}

	var booking DayBooking
	if existing >= 0 {
		b := &t.records.DayBookings[existing]
		b.TraineeID = in.TraineeID
		b.Hours = in.Hours
		b.Status = status
		booking = *b
	} else {
		booking = DayBooking{
			ID:        t.newID(),
			Date:      in.Date,
			TraineeID: in.TraineeID,
			Hours:     in.Hours,
			Status:    status,
		}
		t.records.DayBookings = append(t.records.DayBookings, booking)
	}
	t.rebuild()
	return booking, nil
}

// AutoPromotePastPlanned marks every planned booking dated before today as
// present and returns how many bookings changed.
func (t *Timetable) AutoPromotePastPlanned(todayKey string) int {
	promoted := 0
	for i := range t.records.DayBookings {
		b := &t.records.DayBookings[i]
		if b.Status == StatusPlanned && b.Date < todayKey {
			b.Status = StatusPresent
			promoted++
		}
	}
	if promoted > 0 {
		t.rebuild()
	}
	return promoted
}
