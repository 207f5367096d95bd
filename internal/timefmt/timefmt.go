// Package timefmt converts between hour-of-day integers and the
// "H:MM AM/PM" labels shown on the schedule grid.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// HoursPerDay bounds every hour value handled by the grid.
const HoursPerDay = 24

// ParseError reports a display string that is not of the form "H:MM AM/PM".
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("timefmt: cannot parse %q: %s", e.Input, e.Reason)
}

// ParseHour parses "9:00 AM" style labels into a 24-hour value.
// 12 AM is 0 and 12 PM is 12. Only whole hours are accepted.
func ParseHour(display string) (int, error) {
	s := strings.TrimSpace(display)
	clock, suffix, ok := strings.Cut(s, " ")
	if !ok {
		return 0, &ParseError{Input: display, Reason: "missing AM/PM suffix"}
	}
	suffix = strings.ToUpper(strings.TrimSpace(suffix))
	if suffix != "AM" && suffix != "PM" {
		return 0, &ParseError{Input: display, Reason: "suffix must be AM or PM"}
	}

	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, &ParseError{Input: display, Reason: "missing ':'"}
	}
	if mm != "00" {
		return 0, &ParseError{Input: display, Reason: "minutes must be 00"}
	}
	h, err := strconv.Atoi(hh)
	if err != nil || len(hh) > 2 {
		return 0, &ParseError{Input: display, Reason: "hour is not a number"}
	}
	if h < 1 || h > 12 {
		return 0, &ParseError{Input: display, Reason: "hour must be 1-12"}
	}

	h %= 12
	if suffix == "PM" {
		h += 12
	}
	return h, nil
}

// FormatHour renders an hour as "H:00 AM/PM". Values outside 0..23 are
// reduced mod 24 first.
func FormatHour(hour int) string {
	hour = Normalize(hour)
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}

// EndHour is the hour an activity of the given duration ends, wrapping past
// midnight.
func EndHour(start, duration int) int {
	return Normalize(start + duration)
}

// FormatRange renders "9:00 AM → 11:00 AM".
func FormatRange(start, duration int) string {
	return FormatHour(start) + " → " + FormatHour(EndHour(start, duration))
}

// Normalize reduces any integer hour into 0..23.
func Normalize(hour int) int {
	hour %= HoursPerDay
	if hour < 0 {
		hour += HoursPerDay
	}
	return hour
}

// Valid reports whether hour is a displayable grid hour.
func Valid(hour int) bool {
	return hour >= 0 && hour < HoursPerDay
}
