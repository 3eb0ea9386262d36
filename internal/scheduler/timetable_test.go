package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimetableTrainees(t *testing.T) {
	t.Run("add trims input and assigns a palette colour", func(t *testing.T) {
		tt := newTestTimetable(t)
		tr, err := tt.AddTrainee(TraineeInput{Name: "  Maria  ", Email: " maria@example.com "})
		require.NoError(t, err)
		assert.Equal(t, "id-1", tr.ID)
		assert.Equal(t, "Maria", tr.Name)
		assert.Equal(t, "maria@example.com", tr.Email)
		assert.Equal(t, Palette[0], tr.Color)

		second := mustAddTrainee(t, tt, "Ivan")
		assert.Equal(t, Palette[1], second.Color)

		got, ok := tt.Trainee(tr.ID)
		require.True(t, ok)
		assert.Equal(t, tr, got)
	})

	t.Run("add rejects blank names and malformed colours", func(t *testing.T) {
		tt := newTestTimetable(t)
		_, err := tt.AddTrainee(TraineeInput{Name: "   ", Color: "blue"})
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Contains(t, vErr.FieldErrors, "name")
		assert.Contains(t, vErr.FieldErrors, "color")
		assert.Empty(t, tt.Trainees())
	})

	t.Run("update keeps colour when none is given", func(t *testing.T) {
		tt := newTestTimetable(t)
		tr, err := tt.AddTrainee(TraineeInput{Name: "Maria", Color: "#112233"})
		require.NoError(t, err)

		updated, err := tt.UpdateTrainee(tr.ID, TraineeInput{Name: "Maria P."})
		require.NoError(t, err)
		assert.Equal(t, "#112233", updated.Color)
		assert.Equal(t, "Maria P.", updated.Name)

		got, _ := tt.Trainee(tr.ID)
		assert.Equal(t, "Maria P.", got.Name)
	})

	t.Run("update of unknown trainee is not found", func(t *testing.T) {
		tt := newTestTimetable(t)
		_, err := tt.UpdateTrainee("missing", TraineeInput{Name: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteTraineeCascades(t *testing.T) {
	tt := newTestTimetable(t)
	a := mustAddTrainee(t, tt, "A")
	b := mustAddTrainee(t, tt, "B")

	_, err := tt.AddSession(SessionInput{TraineeID: a.ID, Title: "Intro", Week: weekKey, Day: 0, Time: "09:00"})
	require.NoError(t, err)
	keep, err := tt.AddSession(SessionInput{TraineeID: b.ID, Title: "Intro", Week: weekKey, Day: 0, Time: "09:00"})
	require.NoError(t, err)
	mustBook(t, tt, a.ID, monday, 8, StatusPlanned)
	mustBook(t, tt, a.ID, tuesday, 4, StatusPlanned)
	kept := mustBook(t, tt, b.ID, monday, 6, StatusPlanned)

	cascade, removed := tt.DeleteTrainee(a.ID)
	require.True(t, removed)
	assert.Equal(t, Cascade{Sessions: 1, Bookings: 2}, cascade)

	_, ok := tt.Trainee(a.ID)
	assert.False(t, ok)
	assert.Equal(t, []Session{keep}, tt.SessionsInSlot(weekKey, 0, "09:00"))
	assert.Equal(t, []DayBooking{kept}, tt.BookingsOnDate(monday))
	assert.Empty(t, tt.BookingsOnDate(tuesday))
	assert.Zero(t, tt.WeeklyHours(a.ID, mustDate(t, monday)))

	records := tt.Records()
	for _, s := range records.Sessions {
		assert.NotEqual(t, a.ID, s.TraineeID)
	}
	for _, bk := range records.DayBookings {
		assert.NotEqual(t, a.ID, bk.TraineeID)
	}

	_, removed = tt.DeleteTrainee(a.ID)
	assert.False(t, removed)
}

func TestTimetableSessions(t *testing.T) {
	t.Run("add defaults type and stacks trainees in a slot", func(t *testing.T) {
		tt := newTestTimetable(t)
		a := mustAddTrainee(t, tt, "A")
		b := mustAddTrainee(t, tt, "B")

		first, err := tt.AddSession(SessionInput{TraineeID: a.ID, Title: " Safety ", Week: weekKey, Day: 2, Time: "10:00"})
		require.NoError(t, err)
		assert.Equal(t, DefaultSessionType, first.Type)
		assert.Equal(t, "Safety", first.Title)

		second, err := tt.AddSession(SessionInput{TraineeID: b.ID, Title: "Safety", Type: "assessment", Week: weekKey, Day: 2, Time: "10:00"})
		require.NoError(t, err)

		assert.Equal(t, []Session{first, second}, tt.SessionsInSlot(weekKey, 2, "10:00"))
		assert.Empty(t, tt.SessionsInSlot(weekKey, 2, "11:00"))
	})

	t.Run("add rejects invalid slots", func(t *testing.T) {
		tt := newTestTimetable(t)
		a := mustAddTrainee(t, tt, "A")

		cases := []struct {
			name  string
			in    SessionInput
			field string
		}{
			{"weekend", SessionInput{TraineeID: a.ID, Title: "x", Week: weekKey, Day: 5, Time: "09:00"}, "day"},
			{"holiday", SessionInput{TraineeID: a.ID, Title: "x", Week: "2026-05-25", Day: 0, Time: "09:00"}, "day"},
			{"not a monday", SessionInput{TraineeID: a.ID, Title: "x", Week: tuesday, Day: 0, Time: "09:00"}, "week"},
			{"day out of range", SessionInput{TraineeID: a.ID, Title: "x", Week: weekKey, Day: 7, Time: "09:00"}, "day"},
			{"unknown slot", SessionInput{TraineeID: a.ID, Title: "x", Week: weekKey, Day: 0, Time: "18:00"}, "time"},
			{"missing title", SessionInput{TraineeID: a.ID, Week: weekKey, Day: 0, Time: "09:00"}, "title"},
			{"missing trainee", SessionInput{Title: "x", Week: weekKey, Day: 0, Time: "09:00"}, "trainee_id"},
			{"unknown trainee", SessionInput{TraineeID: "ghost", Title: "x", Week: weekKey, Day: 0, Time: "09:00"}, "trainee_id"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tt.AddSession(tc.in)
				var vErr *ValidationError
				require.True(t, errors.As(err, &vErr), "expected validation error, got %v", err)
				assert.Contains(t, vErr.FieldErrors, tc.field)
			})
		}
		assert.Empty(t, tt.Records().Sessions)
	})

	t.Run("add rejects a second session for the same trainee in a slot", func(t *testing.T) {
		tt := newTestTimetable(t)
		a := mustAddTrainee(t, tt, "A")
		in := SessionInput{TraineeID: a.ID, Title: "x", Week: weekKey, Day: 1, Time: "08:00"}
		_, err := tt.AddSession(in)
		require.NoError(t, err)

		_, err = tt.AddSession(in)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Len(t, tt.SessionsInSlot(weekKey, 1, "08:00"), 1)
	})

	t.Run("update edits details but keeps the slot", func(t *testing.T) {
		tt := newTestTimetable(t)
		a := mustAddTrainee(t, tt, "A")
		b := mustAddTrainee(t, tt, "B")
		s, err := tt.AddSession(SessionInput{TraineeID: a.ID, Title: "x", Week: weekKey, Day: 1, Time: "08:00"})
		require.NoError(t, err)

		updated, err := tt.UpdateSession(s.ID, SessionEdit{TraineeID: b.ID, Title: "y", Type: "review", Notes: "bring laptop"})
		require.NoError(t, err)
		assert.Equal(t, s.Slot(), updated.Slot())
		assert.Equal(t, b.ID, updated.TraineeID)
		assert.Equal(t, "review", updated.Type)
		assert.Equal(t, []Session{updated}, tt.SessionsInSlot(weekKey, 1, "08:00"))

		_, err = tt.UpdateSession("missing", SessionEdit{TraineeID: b.ID, Title: "y"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update rejects moving onto an occupied trainee slot", func(t *testing.T) {
		tt := newTestTimetable(t)
		a := mustAddTrainee(t, tt, "A")
		b := mustAddTrainee(t, tt, "B")
		_, err := tt.AddSession(SessionInput{TraineeID: a.ID, Title: "x", Week: weekKey, Day: 1, Time: "08:00"})
		require.NoError(t, err)
		s, err := tt.AddSession(SessionInput{TraineeID: b.ID, Title: "x", Week: weekKey, Day: 1, Time: "08:00"})
		require.NoError(t, err)

		_, err = tt.UpdateSession(s.ID, SessionEdit{TraineeID: a.ID, Title: "x"})
		var vErr *ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("delete of unknown session is a no-op", func(t *testing.T) {
		tt := newTestTimetable(t)
		assert.False(t, tt.DeleteSession("missing"))
	})
}

func TestRecordsAreCopies(t *testing.T) {
	tt := newTestTimetable(t)
	a := mustAddTrainee(t, tt, "A")
	mustBook(t, tt, a.ID, monday, 8, StatusPlanned)

	records := tt.Records()
	records.Trainees[0].Name = "changed"
	records.DayBookings[0].Hours = 99

	got, _ := tt.Trainee(a.ID)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, 8, tt.BookingsOnDate(monday)[0].Hours)
}

func TestReplaceRebuildsIndices(t *testing.T) {
	tt := newTestTimetable(t)
	mustAddTrainee(t, tt, "old")

	tt.Replace(Records{
		Trainees:    []Trainee{{ID: "t1", Name: "New", Color: "#000000"}},
		DayBookings: []DayBooking{{ID: "b1", Date: monday, TraineeID: "t1", Hours: 25, Status: StatusPlanned}},
	})

	require.Len(t, tt.Trainees(), 1)
	_, ok := tt.Trainee("t1")
	assert.True(t, ok)
	assert.Equal(t, 25, tt.WeeklyHours("t1", mustDate(t, friday)))
	assert.Empty(t, tt.Records().Sessions)
}
