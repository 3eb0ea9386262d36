package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

var timeSlots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

var slotSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(timeSlots))
	for _, slot := range timeSlots {
		set[slot] = struct{}{}
	}
	return set
}()

// TimeSlots returns the hourly slot labels of a day, earliest first.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// IsTimeSlot reports whether label is one of the fixed slots.
func IsTimeSlot(label string) bool {
	_, ok := slotSet[label]
	return ok
}

// SlotLabel renders a slot such as "13:00" in 12-hour form ("1:00 PM").
func SlotLabel(slot string) string {
	hourText, _, ok := strings.Cut(slot, ":")
	if !ok {
		return slot
	}
	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return slot
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour
	if hour > 12 {
		display = hour - 12
	}
	return fmt.Sprintf("%d:00 %s", display, period)
}
