// Package projection derives every view the review dashboard renders from a
// single backend schedule result: calendar rows, density buckets, conflict
// tables and summary metrics. Everything here is a pure function of its
// inputs; results are safe to memoize per loaded schedule.
package projection

import (
	"regexp"
	"strconv"
	"strings"
)

var dayNames = map[string]string{
	"Mon": "Monday",
	"Tue": "Tuesday",
	"Wed": "Wednesday",
	"Thu": "Thursday",
	"Fri": "Friday",
	"Sat": "Saturday",
	"Sun": "Sunday",
}

// WeekDays lists the seven calendar columns in render order.
var WeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName maps a backend three-letter day token to its display name. Tokens
// outside the known vocabulary pass through unchanged.
func DayName(abbr string) string {
	if full, ok := dayNames[strings.TrimSpace(abbr)]; ok {
		return full
	}
	return abbr
}

var blockLabelRe = regexp.MustCompile(`\(([^)]+)\)`)

// TimeRange extracts the "<start>-<end>" portion of a composite block label
// such as "0 (9:00-11:00)". Labels without a parenthetical segment are
// returned unchanged.
func TimeRange(label string) string {
	if m := blockLabelRe.FindStringSubmatch(label); m != nil {
		return strings.TrimSpace(m[1])
	}
	return label
}

var startTimeRe = regexp.MustCompile(`^\s*(\d{1,2})(?::(\d{2}))?\s*(AM|PM|am|pm)?`)

// StartMinutes converts the leading time component of a range like
// "9:00-11:00" or "1:30 PM-3:30 PM" into minutes since midnight for
// chronological sorting. 12 AM maps to 0 and 12 PM to 720; a missing minutes
// component counts as zero. Anything unparseable sorts to the start.
func StartMinutes(timeRange string) int {
	m := startTimeRe.FindStringSubmatch(timeRange)
	if m == nil || m[1] == "" {
		return 0
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0
	}
	minutes := 0
	if m[2] != "" {
		minutes, err = strconv.Atoi(m[2])
		if err != nil || minutes < 0 || minutes > 59 {
			minutes = 0
		}
	}
	switch strings.ToUpper(m[3]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}
	return hour*60 + minutes
}
