// Package recurrence resolves recurrence rules into concrete calendar dates.
//
// Every function in this package is pure: the current time is always passed
// in explicitly and nothing reads an ambient clock.
package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huddlehq/huddle/internal/dateutil"
)

// Validation errors.
var (
	ErrInvalidInterval     = errors.New("interval must be daily, weekly or monthly")
	ErrInvalidWeekday      = errors.New("weekday must be between 0 (sunday) and 6 (saturday)")
	ErrInvalidWeekOfMonth  = errors.New("week of month must be 1-4 or 5 (last)")
	ErrMissingWeekday      = errors.New("weekday is required")
	ErrMissingWeekOfMonth  = errors.New("week of month is required")
	ErrMissingDate         = errors.New("start date is required")
	ErrMissingStartTime    = errors.New("start time is required")
	ErrInvalidTimeFormat   = errors.New("time must be in HH:MM format")
	ErrInvalidDateFormat   = errors.New("date must be in YYYY-MM-DD format")
	ErrNoMonthlyOccurrence = errors.New("could not compute next monthly occurrence")
)

// Interval is the repeat cadence of a rule. The empty interval means the
// event does not repeat.
type Interval string

const (
	IntervalNone    Interval = ""
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

// LastWeek is the week-of-month value meaning "last occurrence in the month".
const LastWeek = 5

// ParseInterval parses an interval name. "none" and "" both mean no repeat.
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return IntervalNone, nil
	case "daily":
		return IntervalDaily, nil
	case "weekly":
		return IntervalWeekly, nil
	case "monthly":
		return IntervalMonthly, nil
	default:
		return IntervalNone, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
}

// ParseWeekOfMonth parses an ordinal week: "1".."4", "5" or "last".
func ParseWeekOfMonth(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "first":
		return 1, nil
	case "2", "second":
		return 2, nil
	case "3", "third":
		return 3, nil
	case "4", "fourth":
		return 4, nil
	case "5", "last":
		return LastWeek, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekOfMonth, s)
	}
}

// Rule is an abstract repeat description stored against an event.
// Weekday and WeekOfMonth are optional; nil means "use the anchor's own".
type Rule struct {
	Interval    Interval
	Weekday     *time.Weekday
	WeekOfMonth *int
}

// Daily returns a rule repeating every day.
func Daily() Rule {
	return Rule{Interval: IntervalDaily}
}

// Weekly returns a rule repeating every week on the given weekday.
func Weekly(weekday time.Weekday) Rule {
	return Rule{Interval: IntervalWeekly, Weekday: &weekday}
}

// Monthly returns a rule repeating on the week-th weekday of every month.
func Monthly(week int, weekday time.Weekday) Rule {
	return Rule{Interval: IntervalMonthly, Weekday: &weekday, WeekOfMonth: &week}
}

// IsRecurring returns true if the rule repeats.
func (r Rule) IsRecurring() bool {
	return r.Interval != IntervalNone
}

// Validate checks the interval and the ranges of the optional fields.
// Missing fields are not an error here; see ResolveFirst for required inputs.
func (r Rule) Validate() error {
	switch r.Interval {
	case IntervalNone, IntervalDaily, IntervalWeekly, IntervalMonthly:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidInterval, r.Interval)
	}
	if r.Weekday != nil && (*r.Weekday < time.Sunday || *r.Weekday > time.Saturday) {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, *r.Weekday)
	}
	if r.WeekOfMonth != nil && (*r.WeekOfMonth < 1 || *r.WeekOfMonth > LastWeek) {
		return fmt.Errorf("%w: %d", ErrInvalidWeekOfMonth, *r.WeekOfMonth)
	}
	return nil
}

// WithDefaults fills the weekday and week-of-month from anchor where the rule
// leaves them unset, for the intervals that use them.
func (r Rule) WithDefaults(anchor time.Time) Rule {
	switch r.Interval {
	case IntervalWeekly:
		if r.Weekday == nil {
			wd := anchor.Weekday()
			r.Weekday = &wd
		}
	case IntervalMonthly:
		if r.Weekday == nil {
			wd := anchor.Weekday()
			r.Weekday = &wd
		}
		if r.WeekOfMonth == nil {
			week := OrdinalWeek(anchor)
			r.WeekOfMonth = &week
		}
	}
	return r
}

// Matches reports whether t falls on a day the rule produces. Unset weekday
// and week-of-month fields match anything; a non-repeating rule matches every day.
func (r Rule) Matches(t time.Time) bool {
	switch r.Interval {
	case IntervalWeekly:
		return r.Weekday == nil || t.Weekday() == *r.Weekday
	case IntervalMonthly:
		if r.Weekday == nil || r.WeekOfMonth == nil {
			return r.Weekday == nil || t.Weekday() == *r.Weekday
		}
		day, ok := NthWeekday(t.Year(), t.Month(), *r.WeekOfMonth, *r.Weekday, t.Location())
		return ok && dateutil.SameDay(day, t)
	default:
		return true
	}
}

// OrdinalWeek returns which occurrence of its weekday t is within its month:
// 1 for days 1-7, 2 for days 8-14 and so on up to 5.
func OrdinalWeek(t time.Time) int {
	return (t.Day()-1)/7 + 1
}

// Describe returns a human label such as "Repeats monthly on the last Friday".
func (r Rule) Describe() string {
	switch r.Interval {
	case IntervalDaily:
		return "Repeats daily"
	case IntervalWeekly:
		if r.Weekday == nil {
			return "Repeats weekly"
		}
		return "Repeats weekly on " + r.Weekday.String()
	case IntervalMonthly:
		if r.Weekday == nil || r.WeekOfMonth == nil {
			return "Repeats monthly"
		}
		return fmt.Sprintf("Repeats monthly on the %s %s", ordinalName(*r.WeekOfMonth), r.Weekday.String())
	default:
		return "Does not repeat"
	}
}

func ordinalName(week int) string {
	switch week {
	case 1:
		return "first"
	case 2:
		return "second"
	case 3:
		return "third"
	case 4:
		return "fourth"
	case LastWeek:
		return "last"
	default:
		return fmt.Sprintf("#%d", week)
	}
}
