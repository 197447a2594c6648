// Package dateutil provides date parsing and calendar alignment utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Layouts shared across the module.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// ISOLayout is an ISO-8601 local wall-clock timestamp without offset.
	ISOLayout = "2006-01-02T15:04:05"
)

// Validation errors.
var (
	ErrInvalidDateFormat     = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClockFormat    = errors.New("time must be in HH:MM format")
	ErrInvalidDateTimeFormat = errors.New("date-time must be in YYYY-MM-DDTHH:MM format")
	ErrInvalidWeekday        = errors.New("weekday must be a name (sunday..saturday) or 0-6")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

// dateTimeLayouts are accepted for explicit date-time input.
var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	ISOLayout,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// String returns the clock in HH:MM format.
func (c Clock) String() string {
	return time.Date(0, 1, 1, c.Hour, c.Minute, 0, 0, time.UTC).Format(ClockLayout)
}

// On returns the given date at this clock time, in the date's location.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

// ClockOf returns the time of day of t.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseClock parses a time string in HH:MM format.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 {
		return Clock{}, ErrInvalidClockFormat
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return Clock{}, ErrInvalidClockFormat
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ParseDate parses a date string in YYYY-MM-DD format in the location of relativeTo.
// If the string is empty, returns the date of relativeTo.
func ParseDate(s string, relativeTo time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TruncateToDay(relativeTo), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseDateTime parses explicit date-time input in loc (time.Local when nil).
// Seconds are optional and a space may separate date and time.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDateTimeFormat
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateTimeFormat
}

// ParseWeekday parses a weekday name ("monday", "mon") or index ("0".."6", 0=Sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	input := strings.ToLower(strings.TrimSpace(s))
	if wd, ok := weekdayMap[input]; ok {
		return wd, nil
	}
	if len(input) == 1 && input[0] >= '0' && input[0] <= '6' {
		return time.Weekday(input[0] - '0'), nil
	}
	return 0, ErrInvalidWeekday
}

// FormatISO formats t as an ISO-8601 local wall-clock timestamp.
func FormatISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Sunday on or before t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	t = TruncateToDay(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// FirstOfMonth returns midnight on the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// DaysUntil returns the number of days from one weekday forward to another.
// If both are the same weekday, returns 7.
func DaysUntil(from, to time.Weekday) int {
	days := int(to) - int(from)
	if days <= 0 {
		days += 7
	}
	return days
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
