package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlots(t *testing.T) {
	expected := []string{
		"10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
		"16:00", "16:30", "17:00", "17:30",
	}

	slots := Slots()
	assert.Equal(t, expected, slots)

	// Deterministic across calls, and callers may mutate their copy freely.
	slots[0] = "mutated"
	assert.Equal(t, expected, Slots())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())

	_, err = ParseDate("15/03/2025")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	require.NoError(t, err)

	n := Normalize(d)
	assert.Equal(t, 12, n.Hour())
	assert.Equal(t, 0, n.Minute())
	assert.Equal(t, d.Day(), n.Day())

	// Normalizing a late-evening timestamp must not drift into the next day.
	late := time.Date(2025, 3, 15, 23, 45, 0, 0, time.Local)
	assert.Equal(t, 15, Normalize(late).Day())
}

func TestDayWindow(t *testing.T) {
	d := Normalize(time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local))
	start, end := DayWindow(d)

	assert.True(t, start.Before(d))
	assert.True(t, end.After(d))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.Equal(t, 0, start.Hour())
}

func TestInWorkingHours(t *testing.T) {
	testCases := []struct {
		timeOfDay string
		want      bool
	}{
		{"10:00", true},
		{"17:30", true},
		{"09:30", false},
		{"18:00", false},
		{"23:00", false},
		{"00:00", false},
		// Hour-only check: off-grid minutes inside the window still pass.
		{"10:45", true},
		{"bogus", false},
		{"", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, InWorkingHours(tc.timeOfDay), "time %q", tc.timeOfDay)
	}
}
