package scheduler

import (
	"time"

	"github.com/example/trainee-timetable/internal/calendar"
)

// SessionsInSlot returns the sessions stacked in one slot, in insertion order.
func (t *Timetable) SessionsInSlot(week string, day int, slot string) []Session {
	bucket := t.indices.SessionsBySlot[SlotKey{Week: week, Day: day, Time: slot}]
	return append([]Session(nil), bucket...)
}

// BookingsOnDate returns the bookings of a date, in insertion order.
func (t *Timetable) BookingsOnDate(date string) []DayBooking {
	return append([]DayBooking(nil), t.indices.BookingsByDate[date]...)
}

// WeeklyHours sums a trainee's booked hours, regardless of status, over the
// Monday to Sunday week containing anyDate.
func (t *Timetable) WeeklyHours(traineeID string, anyDate time.Time) int {
	stats := t.weekTotals(traineeID, anyDate)
	return stats.Total
}

// WeeklyStats partitions a trainee's weekly hours into present and planned.
// Any status other than present counts as planned.
func (t *Timetable) WeeklyStats(traineeID string, anyDate time.Time) WeeklyStats {
	stats := t.weekTotals(traineeID, anyDate)
	stats.Cap = t.maxWeeklyHours
	stats.Remaining = t.maxWeeklyHours - stats.Total
	if stats.Remaining < 0 {
		stats.Remaining = 0
	}
	return stats
}

func (t *Timetable) weekTotals(traineeID string, anyDate time.Time) WeeklyStats {
	start := calendar.WeekStart(anyDate)
	stats := WeeklyStats{WeekStart: calendar.Key(start)}
	for _, day := range calendar.WeekDates(start) {
		for _, b := range t.indices.BookingsByDate[calendar.Key(day)] {
			if b.TraineeID != traineeID {
				continue
			}
			if b.Status == StatusPresent {
				stats.Present += b.Hours
			} else {
				stats.Planned += b.Hours
			}
		}
	}
	stats.Total = stats.Planned + stats.Present
	return stats
}
