package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/trainee-timetable/internal/calendar"
)

const (
	weekKey   = "2026-03-09"
	monday    = "2026-03-09"
	tuesday   = "2026-03-10"
	wednesday = "2026-03-11"
	thursday  = "2026-03-12"
	friday    = "2026-03-13"
)

func newTestTimetable(t *testing.T) *Timetable {
	t.Helper()
	counter := 0
	return New(Options{
		Holidays: calendar.Bulgaria2026(),
		NewID: func() string {
			counter++
			return fmt.Sprintf("id-%d", counter)
		},
	})
}

func mustAddTrainee(t *testing.T, tt *Timetable, name string) Trainee {
	t.Helper()
	tr, err := tt.AddTrainee(TraineeInput{Name: name})
	require.NoError(t, err)
	return tr
}

func mustBook(t *testing.T, tt *Timetable, traineeID, date string, hours int, status Status) DayBooking {
	t.Helper()
	b, err := tt.AddBooking(BookingInput{TraineeID: traineeID, Date: date, Hours: hours, Status: status}, "2026-01-01")
	require.NoError(t, err)
	return b
}

func mustDate(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := calendar.ParseKey(key)
	require.NoError(t, err)
	return d
}
