package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekView(t *testing.T) {
	tt := newTestTimetable(t)
	tt.Replace(Records{
		Trainees: []Trainee{{ID: "t1", Name: "A", Color: "#4a90d9"}},
		Sessions: []Session{
			{ID: "s1", TraineeID: "t1", Title: "Intro", Type: "training", Week: "2026-05-25", Day: 0, Time: "08:00"},
			{ID: "s2", TraineeID: "t1", Title: "Drills", Type: "training", Week: "2026-05-25", Day: 1, Time: "08:00"},
			{ID: "s3", TraineeID: "gone", Title: "Orphan", Type: "training", Week: "2026-05-25", Day: 2, Time: "17:00"},
		},
	})

	view := tt.WeekView(mustDate(t, "2026-05-28"), "2026-05-27")
	assert.Equal(t, "2026-05-25", view.WeekStart)
	assert.Equal(t, 22, view.Week)

	require.NotNil(t, view.Days[0].Holiday)
	assert.Equal(t, "ED+", view.Days[0].Holiday.Short)
	assert.False(t, view.Days[0].Bookable)
	assert.True(t, view.Days[2].Today)
	assert.True(t, view.Days[5].Weekend)

	require.Len(t, view.Slots, 10)
	first := view.Slots[0]
	assert.Equal(t, "8:00 AM", first.Label)
	assert.Empty(t, first.Cells[0], "holiday cells hide stored sessions")
	require.Len(t, first.Cells[1], 1)
	assert.Equal(t, "A", first.Cells[1][0].TraineeName)
	assert.Equal(t, "#367cc5", first.Cells[1][0].GradientColor)

	last := view.Slots[9]
	require.Len(t, last.Cells[2], 1)
	assert.Equal(t, UnknownTraineeName, last.Cells[2][0].TraineeName)
}

func TestMonthView(t *testing.T) {
	tt := newTestTimetable(t)
	tt.Replace(Records{
		Trainees: []Trainee{{ID: "t1", Name: "A", Color: "#4a90d9"}},
		DayBookings: []DayBooking{
			{ID: "b1", Date: "2026-05-25", TraineeID: "t1", Hours: 8, Status: StatusPlanned},
			{ID: "b2", Date: "2026-05-26", TraineeID: "t1", Hours: 8, Status: StatusPresent},
			{ID: "b3", Date: "2026-05-28", TraineeID: "t1", Hours: 4, Status: StatusPlanned},
		},
	})

	view := tt.MonthView(2026, time.May, "2026-05-27")
	require.Len(t, view.Weeks, 5)
	assert.Nil(t, view.Weeks[0].Days[0])

	last := view.Weeks[4]
	holiday := last.Days[0]
	require.NotNil(t, holiday)
	assert.Equal(t, "2026-05-25", holiday.Date)
	assert.False(t, holiday.Bookable)
	assert.False(t, holiday.Editable)
	assert.Empty(t, holiday.Bookings)
	require.NotNil(t, holiday.Holiday)

	past := last.Days[1]
	assert.True(t, past.Past)
	assert.False(t, past.Editable)
	require.Len(t, past.Bookings, 1)
	assert.Equal(t, "A", past.Bookings[0].TraineeName)

	assert.True(t, last.Days[2].Today)
	assert.True(t, last.Days[2].Editable)
	assert.Len(t, last.Days[3].Bookings, 1)
	assert.True(t, last.Days[5].Weekend)
	assert.False(t, last.Days[5].Editable)
}
