package recurrence

import (
	"time"

	"github.com/huddlehq/huddle/internal/dateutil"
)

// Projection defaults.
const (
	DefaultCount     = 5
	MonthlyLookahead = 24
)

// labelLayout renders an occurrence start for display.
const labelLayout = "Mon Jan 2, 2006 15:04"

// AnchorTime supplies the time of day every occurrence inherits. Its date
// supplies the default weekday and ordinal week. A positive Duration gives
// each occurrence an end time.
type AnchorTime struct {
	Start    time.Time
	Duration time.Duration
}

// Clock returns the anchor's time of day.
func (a AnchorTime) Clock() dateutil.Clock {
	return dateutil.ClockOf(a.Start)
}

// Occurrence is one concrete future instance of a rule.
type Occurrence struct {
	Start time.Time
	End   *time.Time
	Label string
}

// StartISO returns the start as a local wall-clock ISO-8601 string.
func (o Occurrence) StartISO() string {
	return dateutil.FormatISO(o.Start)
}

// EndISO returns the end as a local wall-clock ISO-8601 string, or nil.
func (o Occurrence) EndISO() *string {
	if o.End == nil {
		return nil
	}
	s := dateutil.FormatISO(*o.End)
	return &s
}

// Engine projects and resolves rules. The zero value uses MonthlyLookahead.
type Engine struct {
	// MonthlyLookahead bounds the monthly search in months.
	MonthlyLookahead int
}

// NewEngine creates an engine with the given monthly lookahead.
// Values <= 0 fall back to MonthlyLookahead.
func NewEngine(lookahead int) *Engine {
	return &Engine{MonthlyLookahead: lookahead}
}

var defaultEngine = &Engine{}

func (e *Engine) lookahead() int {
	if e == nil || e.MonthlyLookahead <= 0 {
		return MonthlyLookahead
	}
	return e.MonthlyLookahead
}

// Project returns up to count future occurrences of rule using the default engine.
func Project(anchor AnchorTime, rule Rule, now time.Time, count int) []Occurrence {
	return defaultEngine.Project(anchor, rule, now, count)
}

// Project returns up to count occurrences of rule at or after now.
//
// Daily and weekly rules always yield exactly count occurrences. Monthly rules
// stop once the lookahead bound is reached and may return fewer. A rule that
// does not repeat yields nil. A count <= 0 means DefaultCount.
func (e *Engine) Project(anchor AnchorTime, rule Rule, now time.Time, count int) []Occurrence {
	if count <= 0 {
		count = DefaultCount
	}
	rule = rule.WithDefaults(anchor.Start)
	clock := anchor.Clock()

	var starts []time.Time
	switch rule.Interval {
	case IntervalDaily:
		starts = dailyStarts(clock, now, count)
	case IntervalWeekly:
		starts = weeklyStarts(clock, *rule.Weekday, now, count)
	case IntervalMonthly:
		starts = monthlyStarts(clock, *rule.WeekOfMonth, *rule.Weekday, now, count, e.lookahead())
	default:
		return nil
	}

	occurrences := make([]Occurrence, 0, len(starts))
	for _, start := range starts {
		occurrences = append(occurrences, newOccurrence(start, anchor.Duration))
	}
	return occurrences
}

func newOccurrence(start time.Time, duration time.Duration) Occurrence {
	o := Occurrence{Start: start, Label: start.Format(labelLayout)}
	if duration > 0 {
		end := start.Add(duration)
		o.End = &end
		o.Label += " - " + end.Format(dateutil.ClockLayout)
	}
	return o
}

// dailyStarts returns count consecutive days at clock, beginning today if the
// time is still ahead of now and tomorrow otherwise.
func dailyStarts(clock dateutil.Clock, now time.Time, count int) []time.Time {
	first := clock.On(now)
	if !first.After(now) {
		first = clock.On(dateutil.TruncateToDay(now).AddDate(0, 0, 1))
	}
	starts := make([]time.Time, count)
	for i := range starts {
		starts[i] = time.Date(first.Year(), first.Month(), first.Day()+i, clock.Hour, clock.Minute, 0, 0, first.Location())
	}
	return starts
}

// nextWeekday returns the next date strictly after today's date that falls
// on weekday, at clock. When today is already weekday the result is a week
// out, regardless of whether clock has passed.
func nextWeekday(clock dateutil.Clock, weekday time.Weekday, now time.Time) time.Time {
	delta := dateutil.DaysUntil(now.Weekday(), weekday)
	return clock.On(dateutil.TruncateToDay(now).AddDate(0, 0, delta))
}

func weeklyStarts(clock dateutil.Clock, weekday time.Weekday, now time.Time, count int) []time.Time {
	first := nextWeekday(clock, weekday, now)
	starts := make([]time.Time, count)
	for i := range starts {
		starts[i] = time.Date(first.Year(), first.Month(), first.Day()+7*i, clock.Hour, clock.Minute, 0, 0, first.Location())
	}
	return starts
}

// monthlyStarts walks month by month from now's month, for at most lookahead
// months, collecting candidates that are not before now.
func monthlyStarts(clock dateutil.Clock, week int, weekday time.Weekday, now time.Time, count, lookahead int) []time.Time {
	var starts []time.Time
	year, month := now.Year(), now.Month()
	for i := 0; i < lookahead && len(starts) < count; i++ {
		target := time.Date(year, month+time.Month(i), 1, 0, 0, 0, 0, now.Location())
		day, ok := NthWeekday(target.Year(), target.Month(), week, weekday, now.Location())
		if !ok {
			continue
		}
		candidate := clock.On(day)
		if candidate.Before(now) {
			continue
		}
		starts = append(starts, candidate)
	}
	return starts
}
