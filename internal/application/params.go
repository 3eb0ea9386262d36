package application

import (
	"strconv"
	"strings"
	"time"

	"github.com/example/trainee-timetable/internal/calendar"
)

// parseDateParam parses a date key. An empty value selects the day of now.
func parseDateParam(field, raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return calendar.Date(now), nil
	}
	t, err := calendar.ParseKey(raw)
	if err != nil {
		return time.Time{}, fieldError(field, "must be a YYYY-MM-DD date")
	}
	return t, nil
}

// parseMonthParam parses a YYYY-MM month. An empty value selects the month
// of now.
func parseMonthParam(field, raw string, now time.Time) (int, time.Month, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return 0, 0, fieldError(field, "must be a YYYY-MM month")
	}
	return t.Year(), t.Month(), nil
}

// SlotQuery identifies one time slot of a week.
type SlotQuery struct {
	Week string
	Day  string
	Time string
}

func (q SlotQuery) parse() (week string, day int, slot string, err error) {
	vErr := &ValidationError{}
	week = strings.TrimSpace(q.Week)
	if !calendar.IsWeekKey(week) {
		vErr.Add("week", "must be the YYYY-MM-DD date of a Monday")
	}
	day, convErr := strconv.Atoi(strings.TrimSpace(q.Day))
	if convErr != nil || day < 0 || day >= calendar.DaysPerWeek {
		vErr.Add("day", "must be between 0 and 6")
	}
	slot = strings.TrimSpace(q.Time)
	if !calendar.IsTimeSlot(slot) {
		vErr.Add("time", "must be a time slot between 08:00 and 17:00")
	}
	if vErr.HasErrors() {
		return "", 0, "", vErr
	}
	return week, day, slot, nil
}
