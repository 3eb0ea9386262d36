package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/trainee-timetable/internal/calendar"
	"github.com/example/trainee-timetable/internal/scheduler"
)

// HolidayEntry is a holiday together with its date key.
type HolidayEntry struct {
	Date string
	calendar.Holiday
}

// TimeSlot is a bookable hour with its display label.
type TimeSlot struct {
	Time  string
	Label string
}

// CalendarService answers the read-only week, month and holiday queries.
type CalendarService struct {
	workspace *Workspace
	logger    *slog.Logger
}

// NewCalendarService constructs a calendar service over the workspace.
func NewCalendarService(workspace *Workspace) *CalendarService {
	return NewCalendarServiceWithLogger(workspace, nil)
}

// NewCalendarServiceWithLogger constructs a calendar service with a specified logger.
func NewCalendarServiceWithLogger(workspace *Workspace, logger *slog.Logger) *CalendarService {
	return &CalendarService{workspace: workspace, logger: defaultLogger(logger)}
}

// Week lays out the sessions of the week containing date. An empty date
// selects the current week.
func (s *CalendarService) Week(ctx context.Context, date string) (scheduler.WeekView, error) {
	if s == nil || s.workspace == nil {
		return scheduler.WeekView{}, fmt.Errorf("CalendarService is not configured")
	}
	day, err := parseDateParam("date", date, s.workspace.Now())
	if err != nil {
		return scheduler.WeekView{}, err
	}

	today := s.workspace.Today()
	key := calendar.Key(calendar.WeekStart(day)) + "|" + today

	var view scheduler.WeekView
	s.workspace.read(func(t *scheduler.Timetable) {
		if cached, ok := s.workspace.weeks.Get(key); ok {
			view = cached
			return
		}
		view = t.WeekView(day, today)
		s.workspace.weeks.Store(key, view)
	})
	return view, nil
}

// Month lays out the bookings of a YYYY-MM month. An empty month selects the
// current one.
func (s *CalendarService) Month(ctx context.Context, month string) (scheduler.MonthView, error) {
	if s == nil || s.workspace == nil {
		return scheduler.MonthView{}, fmt.Errorf("CalendarService is not configured")
	}
	year, m, err := parseMonthParam("month", month, s.workspace.Now())
	if err != nil {
		return scheduler.MonthView{}, err
	}

	today := s.workspace.Today()
	key := fmt.Sprintf("%04d-%02d|%s", year, int(m), today)

	var view scheduler.MonthView
	s.workspace.read(func(t *scheduler.Timetable) {
		if cached, ok := s.workspace.months.Get(key); ok {
			view = cached
			return
		}
		view = t.MonthView(year, m, today)
		s.workspace.months.Store(key, view)
	})
	return view, nil
}

// Holidays returns the holiday table ordered by date.
func (s *CalendarService) Holidays(ctx context.Context) ([]HolidayEntry, error) {
	if s == nil || s.workspace == nil {
		return nil, fmt.Errorf("CalendarService is not configured")
	}
	var entries []HolidayEntry
	s.workspace.read(func(t *scheduler.Timetable) {
		holidays := t.Holidays()
		for _, key := range holidays.Keys() {
			entries = append(entries, HolidayEntry{Date: key, Holiday: holidays[key]})
		}
	})
	return entries, nil
}

// TimeSlots returns the ten daily slots with their display labels.
func (s *CalendarService) TimeSlots() []TimeSlot {
	slots := calendar.TimeSlots()
	out := make([]TimeSlot, 0, len(slots))
	for _, slot := range slots {
		out = append(out, TimeSlot{Time: slot, Label: calendar.SlotLabel(slot)})
	}
	return out
}
