// Package schedule owns the bookable slot grid and the date conventions the
// booking engine relies on. All times are in the process-local calendar; the
// business runs on a single fixed clock.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Working window: bookings start at 10:00 and the last slot begins at 17:30.
const (
	OpeningHour = 10
	ClosingHour = 18 // exclusive
	slotMinutes = 30
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Slots returns the full ordered grid of bookable "HH:MM" labels for any day:
// 10:00, 10:30, ... 17:30. The result is a fresh slice on every call.
func Slots() []string {
	slots := make([]string, 0, (ClosingHour-OpeningHour)*60/slotMinutes)
	for hour := OpeningHour; hour < ClosingHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
		slots = append(slots, fmt.Sprintf("%02d:30", hour))
	}
	return slots
}

// ParseDate parses a "YYYY-MM-DD" string in local time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// Normalize pins a date to 12:00:00 local so timezone conversions cannot
// shift it across a day boundary.
func Normalize(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.Local)
}

// DayWindow returns the half-open [start, end) boundaries of the calendar day
// containing date, in local time.
func DayWindow(date time.Time) (start, end time.Time) {
	start = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1)
}

// InWorkingHours reports whether an "HH:MM" value starts inside the working
// window. Only the hour component is checked, matching the behavior clients
// have relied on; "10:45" passes even though it never appears in the grid.
func InWorkingHours(timeOfDay string) bool {
	hourPart, _, ok := strings.Cut(timeOfDay, ":")
	if !ok {
		return false
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return false
	}
	return hour >= OpeningHour && hour < ClosingHour
}
