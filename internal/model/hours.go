package model

import (
	"regexp"
	"strconv"
	"strings"
)

// HoursSeparator joins the opening and closing clock times of an hours range.
const HoursSeparator = "-"

var (
	clockPattern      = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	hoursRangePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`)
)

// IsValidHoursRange reports whether s is a strict 24-hour "HH:MM-HH:MM" range.
func IsValidHoursRange(s string) bool {
	return hoursRangePattern.MatchString(s)
}

// ClockMinutes converts an "HH:MM" clock time to minutes since midnight.
// The second result is false when s is missing or not a valid clock time.
func ClockMinutes(s string) (int, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, true
}

// JoinHours combines two clock times into an hours range.
// The result is empty unless both are non-empty.
func JoinHours(start, end string) string {
	if start == "" || end == "" {
		return ""
	}
	return start + HoursSeparator + end
}

// SplitHours splits a well-formed hours range into its clock times.
// Malformed or empty ranges yield two empty strings.
func SplitHours(hours string) (start, end string) {
	if !IsValidHoursRange(hours) {
		return "", ""
	}
	start, end, _ = strings.Cut(hours, HoursSeparator)
	return start, end
}

// ParseHoursRange converts a stored hours range to minutes since midnight.
func ParseHoursRange(hours string) (start, end int, ok bool) {
	a, b, found := strings.Cut(strings.TrimSpace(hours), HoursSeparator)
	if !found {
		return 0, 0, false
	}
	start, okStart := ClockMinutes(a)
	end, okEnd := ClockMinutes(b)
	if !okStart || !okEnd {
		return 0, 0, false
	}
	return start, end, true
}

// HoursFilter selects listings whose opening hours cover a requested window.
// Either bound may be absent; a bound that does not parse counts as absent.
type HoursFilter struct {
	start, end       int
	hasStart, hasEnd bool
}

// NewHoursFilter builds a filter from two optional "HH:MM" clock times.
func NewHoursFilter(start, end string) HoursFilter {
	var f HoursFilter
	f.start, f.hasStart = ClockMinutes(start)
	f.end, f.hasEnd = ClockMinutes(end)
	return f
}

// Active reports whether at least one bound is set.
func (f HoursFilter) Active() bool {
	return f.hasStart || f.hasEnd
}

// Matches reports whether a listing with the given hours passes the filter.
func (f HoursFilter) Matches(hours string) bool {
	if !f.Active() {
		return true
	}

	opens, closes, ok := ParseHoursRange(hours)
	if !ok {
		return false
	}

	switch {
	case f.hasStart && f.hasEnd:
		return opens <= f.start && closes >= f.end
	case f.hasStart:
		return closes >= f.start
	default:
		return opens <= f.end
	}
}
