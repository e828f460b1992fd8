package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayName(t *testing.T) {
	assert.Equal(t, "Monday", DayName("Mon"))
	assert.Equal(t, "Sunday", DayName("Sun"))
	assert.Equal(t, "Wednesday", DayName(" Wed "))
	assert.Equal(t, "Funday", DayName("Funday"))
	assert.Equal(t, "", DayName(""))
}

func TestTimeRange(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"0 (9:00-11:00)", "9:00-11:00"},
		{"3 (1:30 PM-3:30 PM)", "1:30 PM-3:30 PM"},
		{"9:00-11:00", "9:00-11:00"},
		{"", ""},
		{"morning", "morning"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TimeRange(tt.label), "label %q", tt.label)
	}
}

func TestStartMinutes(t *testing.T) {
	tests := []struct {
		timeRange string
		expected  int
	}{
		{"9:00-11:00", 540},
		{"1:30 PM-3:30 PM", 810},
		{"12:00 AM-2:00 AM", 0},
		{"12:15 PM-2:15 PM", 735},
		{"9 AM-11 AM", 540},
		{"7:45-9:45", 465},
		{"", 0},
		{"afternoon", 0},
		{"99:00-100:00", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, StartMinutes(tt.timeRange), "range %q", tt.timeRange)
	}
}

func TestStartMinutesNeverPanicsOnGarbage(t *testing.T) {
	for _, input := range []string{"(((", "-", "AM", "12", ":30", "x:y-z:w"} {
		assert.NotPanics(t, func() { StartMinutes(input) }, "input %q", input)
	}
}
