package interchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/example/trainee-timetable/internal/scheduler"
)

func sampleRecords() scheduler.Records {
	return scheduler.Records{
		Trainees: []scheduler.Trainee{
			{ID: "t1", Name: "Ana", Email: "ana@example.com", Color: "#4a90d9"},
			{ID: "t2", Name: "Boris", Color: "#e67e22"},
		},
		Sessions: []scheduler.Session{
			{ID: "s1", TraineeID: "t1", Title: "Safety", Type: "training", Week: "2026-03-09", Day: 0, Time: "08:00"},
			{ID: "s2", TraineeID: "t2", Title: "Review", Type: "review", Notes: "room 2", Week: "2026-03-09", Day: 4, Time: "17:00"},
		},
		DayBookings: []scheduler.DayBooking{
			{ID: "b1", Date: "2026-03-10", TraineeID: "t1", Hours: 8, Status: scheduler.StatusPresent},
			{ID: "b2", Date: "2026-03-11", TraineeID: "t2", Hours: 4, Status: scheduler.StatusPlanned},
		},
	}
}

func TestExport(t *testing.T) {
	exportedAt := time.Date(2026, 3, 12, 9, 30, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleRecords(), exportedAt))

	out := buf.String()
	assert.Contains(t, out, "\n  \"trainees\": [")
	assert.Contains(t, out, `"dayBookings"`)
	assert.Contains(t, out, `"traineeId": "t1"`)
	assert.Contains(t, out, `"exportedAt": "2026-03-12T09:30:00Z"`)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &generic))
	assert.Len(t, generic["sessions"], 2)
}

func TestExportEmptyCollectionsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, scheduler.Records{}, time.Now()))
	assert.Contains(t, buf.String(), `"trainees": []`)
	assert.Contains(t, buf.String(), `"sessions": []`)
	assert.Contains(t, buf.String(), `"dayBookings": []`)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "trainee-timetable-2026-03-12.json", FileName(time.Date(2026, 3, 12, 23, 0, 0, 0, time.UTC)))
}

func TestExportImportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleRecords(), time.Now()))

	imported, err := NewDecoder(nil).Decode(&buf)
	require.NoError(t, err)
	assert.True(t, imported.HasTrainees)
	assert.True(t, imported.HasSessions)
	assert.True(t, imported.HasDayBookings)
	applied, err := imported.Apply(scheduler.Records{})
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), applied)
}

func TestDecodeEncodings(t *testing.T) {
	doc := `{"trainees":[{"id":"t1","name":"Ана","color":"#4a90d9"}]}`

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(doc)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{name: "utf-8", input: doc},
		{name: "utf-8 with bom", input: "\xef\xbb\xbf" + doc},
		{name: "utf-16 with bom", input: utf16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imported, err := NewDecoder(nil).Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, imported.Trainees, 1)
			assert.Equal(t, "Ана", imported.Trainees[0].Name)
		})
	}
}

func TestDecodePartial(t *testing.T) {
	current := sampleRecords()

	t.Run("absent keys keep current collections", func(t *testing.T) {
		imported, err := NewDecoder(nil).Decode(strings.NewReader(`{"dayBookings":[]}`))
		require.NoError(t, err)

		next, err := imported.Apply(current)
		require.NoError(t, err)
		assert.Equal(t, current.Trainees, next.Trainees)
		assert.Equal(t, current.Sessions, next.Sessions)
		assert.Empty(t, next.DayBookings)
		assert.Equal(t, map[string]int{KeyDayBookings: 0}, imported.Counts())
	})

	t.Run("non-array values are ignored", func(t *testing.T) {
		imported, err := NewDecoder(nil).Decode(strings.NewReader(`{"trainees":null,"sessions":{"a":1},"dayBookings":"x"}`))
		require.NoError(t, err)
		next, err := imported.Apply(current)
		require.NoError(t, err)
		assert.Equal(t, current, next)
		assert.Empty(t, imported.Counts())
	})

	t.Run("roster without referenced trainees is rejected", func(t *testing.T) {
		imported, err := NewDecoder(nil).Decode(strings.NewReader(`{"trainees":[{"id":"zz","name":"Zara","color":"#123456"}]}`))
		require.NoError(t, err)

		next, err := imported.Apply(current)
		var malformed *MalformedImportError
		require.True(t, errors.As(err, &malformed), "expected malformed import, got %v", err)
		assert.Equal(t, current, next)
		require.Len(t, malformed.Issues, 4)
		assert.Equal(t, Issue{Collection: KeySessions, Index: 0, Field: "traineeId",
			Message: `existing record refers to trainee "t1", which the imported roster drops`}, malformed.Issues[0])
		assert.Equal(t, KeyDayBookings, malformed.Issues[3].Collection)
	})

	t.Run("imported bookings must name a known trainee", func(t *testing.T) {
		imported, err := NewDecoder(nil).Decode(strings.NewReader(`{"dayBookings":[{"id":"b9","date":"2026-03-12","traineeId":"ghost","hours":4}]}`))
		require.NoError(t, err)

		_, err = imported.Apply(current)
		var malformed *MalformedImportError
		require.True(t, errors.As(err, &malformed))
		require.Len(t, malformed.Issues, 1)
		assert.Equal(t, `dayBookings[0].traineeId: trainee "ghost" is not in the roster`, malformed.Issues[0].String())
	})
}

func TestDecodeDefaults(t *testing.T) {
	doc := `{
		"sessions":[{"id":"s1","traineeId":"t1","title":"x","day":0,"time":"08:00","week":"2026-03-09"}],
		"dayBookings":[{"id":"b1","date":"2026-03-10","traineeId":"t1","hours":8}]
	}`
	imported, err := NewDecoder(nil).Decode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, scheduler.DefaultSessionType, imported.Sessions[0].Type)
	assert.Equal(t, 0, imported.Sessions[0].Day)
	assert.Equal(t, scheduler.StatusPlanned, imported.DayBookings[0].Status)
}

func TestDecodeRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		issues []Issue
	}{
		{
			name:   "not json",
			input:  `{trainees`,
			issues: []Issue{{Index: -1, Message: "document must be a JSON object"}},
		},
		{
			name:   "top level array",
			input:  `[]`,
			issues: []Issue{{Index: -1, Message: "document must be a JSON object"}},
		},
		{
			name:  "missing trainee fields",
			input: `{"trainees":[{"id":"t1"}]}`,
			issues: []Issue{
				{Collection: KeyTrainees, Index: 0, Field: "name", Message: "is required"},
				{Collection: KeyTrainees, Index: 0, Field: "color", Message: "is required"},
			},
		},
		{
			name:   "wrong field type",
			input:  `{"dayBookings":[{"id":"b1","date":"2026-03-10","traineeId":"t1","hours":"8"}]}`,
			issues: []Issue{{Collection: KeyDayBookings, Index: 0, Message: "field hours must be int"}},
		},
		{
			name:   "non-positive hours",
			input:  `{"dayBookings":[{"id":"b1","date":"2026-03-10","traineeId":"t1","hours":0,"status":"planned"}]}`,
			issues: []Issue{{Collection: KeyDayBookings, Index: 0, Field: "hours", Message: "must be greater than 0"}},
		},
		{
			name:   "unknown status",
			input:  `{"dayBookings":[{"id":"b1","date":"2026-03-10","traineeId":"t1","hours":2,"status":"absent"}]}`,
			issues: []Issue{{Collection: KeyDayBookings, Index: 0, Field: "status", Message: "must be one of: planned present"}},
		},
		{
			name:  "bad session slot",
			input: `{"sessions":[{"id":"s1","traineeId":"t1","title":"x","day":7,"time":"18:00","week":"2026-03-10"}]}`,
			issues: []Issue{
				{Collection: KeySessions, Index: 0, Field: "day", Message: "must be between 0 and 6"},
				{Collection: KeySessions, Index: 0, Field: "time", Message: "must be a time slot between 08:00 and 17:00"},
				{Collection: KeySessions, Index: 0, Field: "week", Message: "must be the YYYY-MM-DD date of a Monday"},
			},
		},
		{
			name:   "missing session day",
			input:  `{"sessions":[{"id":"s1","traineeId":"t1","title":"x","time":"08:00","week":"2026-03-09"}]}`,
			issues: []Issue{{Collection: KeySessions, Index: 0, Field: "day", Message: "is required"}},
		},
		{
			name:   "record is not an object",
			input:  `{"trainees":[{"id":"t1","name":"A","color":"#4a90d9"},"t2"]}`,
			issues: []Issue{{Collection: KeyTrainees, Index: 1, Message: "record must be a JSON object"}},
		},
		{
			name:   "duplicate id",
			input:  `{"trainees":[{"id":"t1","name":"A","color":"#4a90d9"},{"id":"t1","name":"B","color":"#4a90d9"}]}`,
			issues: []Issue{{Collection: KeyTrainees, Index: 1, Field: "id", Message: `duplicate id "t1" (first at index 0)`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(nil).Decode(strings.NewReader(tt.input))
			require.Error(t, err)

			var malformed *MalformedImportError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.issues, malformed.Issues)
		})
	}
}

func TestMalformedImportErrorMessage(t *testing.T) {
	err := &MalformedImportError{Issues: []Issue{
		{Collection: KeySessions, Index: 2, Field: "time", Message: "is required"},
		{Index: -1, Message: "document must be a JSON object"},
	}}
	assert.Equal(t, "malformed import: sessions[2].time: is required; document must be a JSON object", err.Error())
}
