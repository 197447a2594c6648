package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/huddlehq/huddle/internal/dateutil"
)

// FirstInput holds the raw fields captured when an event is created.
//
// Recurring rules use Date (daily only), Start and End as "YYYY-MM-DD" and
// "HH:MM" strings. Non-recurring events use StartAt and EndAt as explicit
// date-times; End may stand in for EndAt on the start's date.
type FirstInput struct {
	Rule    Rule
	Date    string
	Start   string
	End     string
	StartAt string
	EndAt   string
}

// Resolved is the concrete first start and optional end to persist.
type Resolved struct {
	Start time.Time
	End   *time.Time
}

// StartISO returns the start as a local wall-clock ISO-8601 string.
func (r Resolved) StartISO() string {
	return dateutil.FormatISO(r.Start)
}

// EndISO returns the end as a local wall-clock ISO-8601 string, or nil.
func (r Resolved) EndISO() *string {
	if r.End == nil {
		return nil
	}
	s := dateutil.FormatISO(*r.End)
	return &s
}

// ResolveFirst resolves the first occurrence using the default engine.
func ResolveFirst(in FirstInput, now time.Time) (Resolved, error) {
	return defaultEngine.ResolveFirst(in, now)
}

// ResolveFirst computes the single first start/end for in. It is the one path
// every creation flow goes through. Dates are interpreted in now's location.
func (e *Engine) ResolveFirst(in FirstInput, now time.Time) (Resolved, error) {
	if err := in.Rule.Validate(); err != nil {
		return Resolved{}, err
	}

	var (
		start time.Time
		err   error
	)
	switch in.Rule.Interval {
	case IntervalDaily:
		start, err = resolveDaily(in, now)
	case IntervalWeekly:
		start, err = resolveWeekly(in, now)
	case IntervalMonthly:
		start, err = e.resolveMonthly(in, now)
	default:
		return resolveOnce(in, now)
	}
	if err != nil {
		return Resolved{}, err
	}

	end, err := endOn(start, in.End)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Start: start, End: end}, nil
}

// resolveDaily trusts the explicit date as entered; there is no roll-forward.
func resolveDaily(in FirstInput, now time.Time) (time.Time, error) {
	if strings.TrimSpace(in.Date) == "" {
		return time.Time{}, ErrMissingDate
	}
	date, err := dateutil.ParseDate(in.Date, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, in.Date)
	}
	clock, err := startClock(in.Start)
	if err != nil {
		return time.Time{}, err
	}
	return clock.On(date), nil
}

func resolveWeekly(in FirstInput, now time.Time) (time.Time, error) {
	if in.Rule.Weekday == nil {
		return time.Time{}, ErrMissingWeekday
	}
	clock, err := startClock(in.Start)
	if err != nil {
		return time.Time{}, err
	}
	return nextWeekday(clock, *in.Rule.Weekday, now), nil
}

func (e *Engine) resolveMonthly(in FirstInput, now time.Time) (time.Time, error) {
	if in.Rule.WeekOfMonth == nil {
		return time.Time{}, ErrMissingWeekOfMonth
	}
	if in.Rule.Weekday == nil {
		return time.Time{}, ErrMissingWeekday
	}
	clock, err := startClock(in.Start)
	if err != nil {
		return time.Time{}, err
	}
	starts := monthlyStarts(clock, *in.Rule.WeekOfMonth, *in.Rule.Weekday, now, 1, e.lookahead())
	if len(starts) == 0 {
		return time.Time{}, ErrNoMonthlyOccurrence
	}
	return starts[0], nil
}

// resolveOnce normalizes the explicit date-times of a non-recurring event.
func resolveOnce(in FirstInput, now time.Time) (Resolved, error) {
	if strings.TrimSpace(in.StartAt) == "" {
		return Resolved{}, ErrMissingStartTime
	}
	start, err := dateutil.ParseDateTime(in.StartAt, now.Location())
	if err != nil {
		return Resolved{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, in.StartAt)
	}

	res := Resolved{Start: start}
	if strings.TrimSpace(in.EndAt) != "" {
		end, err := dateutil.ParseDateTime(in.EndAt, now.Location())
		if err != nil {
			return Resolved{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, in.EndAt)
		}
		res.End = &end
		return res, nil
	}

	res.End, err = endOn(start, in.End)
	if err != nil {
		return Resolved{}, err
	}
	return res, nil
}

func startClock(s string) (dateutil.Clock, error) {
	if strings.TrimSpace(s) == "" {
		return dateutil.Clock{}, ErrMissingStartTime
	}
	clock, err := dateutil.ParseClock(s)
	if err != nil {
		return dateutil.Clock{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return clock, nil
}

// endOn applies an optional HH:MM end to the start's date.
func endOn(start time.Time, end string) (*time.Time, error) {
	if strings.TrimSpace(end) == "" {
		return nil, nil
	}
	clock, err := dateutil.ParseClock(end)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, end)
	}
	t := clock.On(start)
	return &t, nil
}
