package calendar

import (
	"fmt"
	"time"
)

// KeyLayout is the time layout of a date-key.
const KeyLayout = "2006-01-02"

// DaysPerWeek is the number of day columns in a week.
const DaysPerWeek = 7

// ParseKey parses a date-key into midnight UTC of that day.
func ParseKey(key string) (time.Time, error) {
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: invalid date key %q: %w", key, err)
	}
	return t, nil
}

// ValidKey reports whether key is a well formed date-key.
func ValidKey(key string) bool {
	_, err := ParseKey(key)
	return err == nil
}

// Key formats the wall-clock date of t as a date-key.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// Date truncates t to midnight of its wall-clock date, expressed in UTC so that
// day arithmetic is unaffected by daylight saving transitions.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayIndex returns the Monday-first index of t's weekday.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns midnight of the Monday that starts the week containing t.
func WeekStart(t time.Time) time.Time {
	d := Date(t)
	return d.AddDate(0, 0, -DayIndex(d))
}

// WeekKey returns the week-key for the week containing the given date-key.
func WeekKey(dateKey string) (string, error) {
	t, err := ParseKey(dateKey)
	if err != nil {
		return "", err
	}
	return Key(WeekStart(t)), nil
}

// IsWeekKey reports whether key is a date-key naming a Monday.
func IsWeekKey(key string) bool {
	t, err := ParseKey(key)
	return err == nil && DayIndex(t) == 0
}

// WeekDates returns the seven dates of the week starting at weekStart.
func WeekDates(weekStart time.Time) [DaysPerWeek]time.Time {
	var out [DaysPerWeek]time.Time
	start := Date(weekStart)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// SlotDate returns the date-key of the given day index within a week.
func SlotDate(weekKey string, day int) (string, error) {
	start, err := ParseKey(weekKey)
	if err != nil {
		return "", err
	}
	if day < 0 || day >= DaysPerWeek {
		return "", fmt.Errorf("calendar: day index %d out of range", day)
	}
	return Key(start.AddDate(0, 0, day)), nil
}

// WeekNumber returns the ISO 8601 week number of t.
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}
