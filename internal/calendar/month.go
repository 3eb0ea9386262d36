package calendar

import "time"

// MonthRow is one Monday-first week row of a month grid. Dates holds the
// date-key for each column, or "" where the column falls outside the month.
type MonthRow struct {
	Week  int
	Dates [DaysPerWeek]string
}

// MonthRows lays out the given month as week rows. Rows whose Monday to Friday
// columns all fall outside the month are omitted.
func MonthRows(year int, month time.Month) []MonthRow {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var rows []MonthRow
	for start := WeekStart(first); !start.After(last); start = start.AddDate(0, 0, DaysPerWeek) {
		row := MonthRow{Week: WeekNumber(start)}
		weekday := false
		for i, d := range WeekDates(start) {
			if d.Month() != month || d.Year() != year {
				continue
			}
			row.Dates[i] = Key(d)
			if !IsWeekend(i) {
				weekday = true
			}
		}
		if weekday {
			rows = append(rows, row)
		}
	}
	return rows
}
