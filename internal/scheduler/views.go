package scheduler

import (
	"time"

	"github.com/example/trainee-timetable/internal/calendar"
)

// UnknownTraineeName labels entries whose trainee is missing from the roster.
const UnknownTraineeName = "Unknown"

// SessionEntry is a session decorated with its trainee for display.
type SessionEntry struct {
	Session
	TraineeName   string
	Color         string
	GradientColor string
}

// BookingEntry is a booking decorated with its trainee for display.
type BookingEntry struct {
	DayBooking
	TraineeName string
	Color       string
}

// DayColumn describes one day of the week view.
type DayColumn struct {
	Date     string
	Day      int
	Weekend  bool
	Today    bool
	Bookable bool
	Holiday  *calendar.Holiday
}

// SlotRow is one time slot across the seven days of the week view. Cells on
// non-bookable days are always empty.
type SlotRow struct {
	Time  string
	Label string
	Cells [calendar.DaysPerWeek][]SessionEntry
}

// WeekView is the session grid of one week.
type WeekView struct {
	WeekStart string
	Week      int
	Days      [calendar.DaysPerWeek]DayColumn
	Slots     []SlotRow
}

// WeekView lays out the sessions of the week containing anyDate.
func (t *Timetable) WeekView(anyDate time.Time, todayKey string) WeekView {
	start := calendar.WeekStart(anyDate)
	view := WeekView{WeekStart: calendar.Key(start), Week: calendar.WeekNumber(start)}

	for i, d := range calendar.WeekDates(start) {
		key := calendar.Key(d)
		col := DayColumn{
			Date:     key,
			Day:      i,
			Weekend:  calendar.IsWeekend(i),
			Today:    key == todayKey,
			Bookable: t.holidays.IsBookable(key, i),
		}
		if h, ok := t.holidays.Lookup(key); ok {
			col.Holiday = &h
		}
		view.Days[i] = col
	}

	for _, slot := range calendar.TimeSlots() {
		row := SlotRow{Time: slot, Label: calendar.SlotLabel(slot)}
		for i, col := range view.Days {
			if !col.Bookable {
				continue
			}
			for _, s := range t.indices.SessionsBySlot[SlotKey{Week: view.WeekStart, Day: i, Time: slot}] {
				row.Cells[i] = append(row.Cells[i], t.sessionEntry(s))
			}
		}
		view.Slots = append(view.Slots, row)
	}
	return view
}

// MonthDay is one in-month date of the month view. Bookings are listed only on
// bookable days; Editable additionally requires the date not to be past.
type MonthDay struct {
	Date     string
	Day      int
	Weekend  bool
	Today    bool
	Past     bool
	Bookable bool
	Editable bool
	Holiday  *calendar.Holiday
	Bookings []BookingEntry
}

// MonthWeek is one row of the month view. Days outside the month are nil.
type MonthWeek struct {
	Week int
	Days [calendar.DaysPerWeek]*MonthDay
}

// MonthView is the booking calendar of one month.
type MonthView struct {
	Year  int
	Month time.Month
	Weeks []MonthWeek
}

// MonthView lays out the bookings of a month.
func (t *Timetable) MonthView(year int, month time.Month, todayKey string) MonthView {
	view := MonthView{Year: year, Month: month}
	for _, row := range calendar.MonthRows(year, month) {
		week := MonthWeek{Week: row.Week}
		for i, key := range row.Dates {
			if key == "" {
				continue
			}
			day := &MonthDay{
				Date:     key,
				Day:      i,
				Weekend:  calendar.IsWeekend(i),
				Today:    key == todayKey,
				Past:     key < todayKey,
				Bookable: t.holidays.IsBookable(key, i),
			}
			if h, ok := t.holidays.Lookup(key); ok {
				day.Holiday = &h
			}
			day.Editable = day.Bookable && !day.Past
			if day.Bookable {
				for _, b := range t.indices.BookingsByDate[key] {
					day.Bookings = append(day.Bookings, t.bookingEntry(b))
				}
			}
			week.Days[i] = day
		}
		view.Weeks = append(view.Weeks, week)
	}
	return view
}

func (t *Timetable) sessionEntry(s Session) SessionEntry {
	entry := SessionEntry{Session: s, TraineeName: UnknownTraineeName}
	if tr, ok := t.indices.TraineeByID[s.TraineeID]; ok {
		entry.TraineeName = tr.Name
		entry.Color = tr.Color
		entry.GradientColor = DarkenColor(tr.Color, GradientShift)
	}
	return entry
}

func (t *Timetable) bookingEntry(b DayBooking) BookingEntry {
	entry := BookingEntry{DayBooking: b, TraineeName: UnknownTraineeName}
	if tr, ok := t.indices.TraineeByID[b.TraineeID]; ok {
		entry.TraineeName = tr.Name
		entry.Color = tr.Color
	}
	return entry
}
