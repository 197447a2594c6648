package recurrence

import (
	"time"

	"github.com/huddlehq/huddle/internal/dateutil"
)

// NthWeekday returns the week-th occurrence of weekday in the given month,
// at midnight in loc.
//
// For week 1-4 the month is scanned forward from day 1; the result is absent
// if the month has fewer matches. For week 5 (LastWeek) the month is scanned
// backward from its last day, which always succeeds. Any other week value is
// absent.
func NthWeekday(year int, month time.Month, week int, weekday time.Weekday, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	last := dateutil.DaysIn(year, month, loc)

	switch {
	case week >= 1 && week <= 4:
		count := 0
		for day := 1; day <= last; day++ {
			d := time.Date(year, month, day, 0, 0, 0, 0, loc)
			if d.Weekday() != weekday {
				continue
			}
			count++
			if count == week {
				return d, true
			}
		}
		return time.Time{}, false

	case week == LastWeek:
		for day := last; day >= 1; day-- {
			d := time.Date(year, month, day, 0, 0, 0, 0, loc)
			if d.Weekday() == weekday {
				return d, true
			}
		}
		return time.Time{}, false

	default:
		return time.Time{}, false
	}
}
