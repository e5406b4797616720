package utils

import (
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeWidth  = 5
)

// ParseDay parses a calendar date and returns midnight UTC of that day.
// Accepts "2006-01-02" or RFC 3339; for RFC 3339 the day is taken in the value's own offset.
func ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, NewInvalidRequest("date is required")
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, NewInvalidRequest("invalid date format")
	}
	return DayOf(t), nil
}

// DayOf truncates t to its calendar day, expressed as midnight UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day in loc as midnight UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DayOf(now.In(loc))
}

// NormalizeTime left-pads a wall-clock time with zeros to "HH:MM" width.
// It is applied on both the availability write path and the booking read path.
func NormalizeTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= timeWidth {
		return raw
	}
	return strings.Repeat("0", timeWidth-len(raw)) + raw
}

// ValidClockTime reports whether s is a zero-padded "HH:MM" between 00:00 and 23:59.
func ValidClockTime(s string) bool {
	if len(s) != timeWidth {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
