package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Holiday describes a non-working day.
type Holiday struct {
	Name        string `json:"name"`
	Short       string `json:"short"`
	Description string `json:"description"`
}

// Holidays is a read-only table of holidays keyed by date-key.
type Holidays map[string]Holiday

// IsWeekend reports whether the Monday-first day index is Saturday or Sunday.
func IsWeekend(dayIndex int) bool {
	return dayIndex == 5 || dayIndex == 6
}

// Lookup returns the holiday declared for the date-key, if any.
func (h Holidays) Lookup(key string) (Holiday, bool) {
	holiday, ok := h[key]
	return holiday, ok
}

// IsBookable reports whether the date can carry sessions and bookings.
func (h Holidays) IsBookable(key string, dayIndex int) bool {
	if IsWeekend(dayIndex) {
		return false
	}
	_, holiday := h[key]
	return !holiday
}

// IsBookableKey is IsBookable for a date-key whose day index is derived from
// the date itself. Malformed keys are never bookable.
func (h Holidays) IsBookableKey(key string) bool {
	t, err := ParseKey(key)
	if err != nil {
		return false
	}
	return h.IsBookable(key, DayIndex(t))
}

// Keys returns the declared date-keys in ascending order.
func (h Holidays) Keys() []string {
	keys := make([]string, 0, len(h))
	for key := range h {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DecodeHolidays reads a JSON object mapping date-keys to holidays.
func DecodeHolidays(r io.Reader) (Holidays, error) {
	var raw map[string]Holiday
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("calendar: decode holidays: %w", err)
	}
	table := make(Holidays, len(raw))
	for key, holiday := range raw {
		if !ValidKey(key) {
			return nil, fmt.Errorf("calendar: holiday key %q is not a date key", key)
		}
		if holiday.Name == "" {
			return nil, fmt.Errorf("calendar: holiday %s has no name", key)
		}
		table[key] = holiday
	}
	return table, nil
}

// LoadHolidaysFile reads a holiday table from a JSON file.
func LoadHolidaysFile(path string) (Holidays, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("calendar: open holidays file: %w", err)
	}
	defer f.Close()
	return DecodeHolidays(f)
}

// Bulgaria2026 returns the Bulgarian public holidays of 2026, including the
// Mondays observed in compensation for holidays falling on a weekend.
func Bulgaria2026() Holidays {
	return Holidays{
		"2026-01-01": {Name: "New Year's Day", Short: "NY", Description: "Celebrates the beginning of the new calendar year. Bulgarians welcome the new year with festive gatherings, fireworks, and traditional meals."},
		"2026-03-03": {Name: "Liberation Day", Short: "LD", Description: "Bulgaria's National Day commemorating liberation from Ottoman rule in 1878. The Treaty of San Stefano ended nearly 500 years of Ottoman domination."},
		"2026-04-17": {Name: "Good Friday", Short: "GF", Description: "Orthodox Christian holy day marking the crucifixion of Jesus Christ. A solemn day of fasting and reflection before Easter."},
		"2026-04-18": {Name: "Holy Saturday", Short: "HS", Description: "The day between Good Friday and Easter Sunday. Bulgarians prepare Easter eggs and traditional kozunak bread."},
		"2026-04-19": {Name: "Easter Sunday", Short: "ES", Description: "The most important Orthodox Christian holiday celebrating Christ's resurrection. Families gather for festive meals and egg-cracking traditions."},
		"2026-04-20": {Name: "Easter Monday", Short: "EM", Description: "Continuation of Easter celebrations. A day for family visits, sharing Easter meals, and enjoying the spring weather."},
		"2026-05-01": {Name: "Labour Day", Short: "LabD", Description: "International Workers' Day celebrating the achievements of workers worldwide. Many Bulgarians enjoy outdoor activities and picnics."},
		"2026-05-06": {Name: "St. George's Day", Short: "SGD", Description: "Also known as Bulgarian Army Day. Honors St. George, patron saint of the military. Traditional lamb dishes are prepared on this day."},
		"2026-05-24": {Name: "Education & Culture Day", Short: "ED", Description: "Celebrates Saints Cyril and Methodius who created the Cyrillic alphabet. A day honoring Bulgarian education, culture, and Slavic heritage."},
		"2026-05-25": {Name: "Education Day (Observed)", Short: "ED+", Description: "Compensation day for Education & Culture Day which falls on Sunday. Per Bulgarian law, the following Monday is a non-working day."},
		"2026-09-06": {Name: "Unification Day", Short: "UD", Description: "Commemorates the unification of Eastern Rumelia with the Principality of Bulgaria in 1885. A milestone in Bulgarian national unity."},
		"2026-09-07": {Name: "Unification Day (Observed)", Short: "UD+", Description: "Compensation day for Unification Day which falls on Sunday. Per Bulgarian law, the following Monday is a non-working day."},
		"2026-09-22": {Name: "Independence Day", Short: "ID", Description: "Marks Bulgaria's declaration of full independence from the Ottoman Empire in 1908. Celebrated with official ceremonies and cultural events."},
		"2026-12-24": {Name: "Christmas Eve", Short: "CE", Description: "Badni Vecher, a sacred family evening with traditional meatless dinner of odd-numbered dishes. Families gather to share blessings."},
		"2026-12-25": {Name: "Christmas Day", Short: "XM", Description: "Celebrates the birth of Jesus Christ. Bulgarian Christmas traditions include caroling, festive meals, and family gatherings."},
		"2026-12-26": {Name: "Christmas Day 2", Short: "XM2", Description: "Second day of Christmas celebrations. Continued family visits, festive meals, and holiday traditions across Bulgaria."},
		"2026-12-28": {Name: "Christmas (Observed)", Short: "XM+", Description: "Compensation day for Christmas Day 2 which falls on Saturday. Per Bulgarian law, the following Monday is a non-working day."},
	}
}
