package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// ErrUnsupportedRRule is returned for RRULEs that have no Rule equivalent.
var ErrUnsupportedRRule = errors.New("unsupported RRULE")

// rruleWeekdays is indexed by time.Weekday.
var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// RRule renders the rule as an iCalendar RRULE value without the "RRULE:"
// prefix, e.g. "FREQ=MONTHLY;BYDAY=-1FR". The last week of the month is
// written as ordinal -1.
func (r Rule) RRule() (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	var opt rrule.ROption
	switch r.Interval {
	case IntervalDaily:
		opt.Freq = rrule.DAILY
	case IntervalWeekly:
		opt.Freq = rrule.WEEKLY
		if r.Weekday != nil {
			opt.Byweekday = []rrule.Weekday{rruleWeekdays[*r.Weekday]}
		}
	case IntervalMonthly:
		if r.Weekday == nil {
			return "", ErrMissingWeekday
		}
		if r.WeekOfMonth == nil {
			return "", ErrMissingWeekOfMonth
		}
		n := *r.WeekOfMonth
		if n == LastWeek {
			n = -1
		}
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[*r.Weekday].Nth(n)}
	default:
		return "", fmt.Errorf("%w: event does not repeat", ErrUnsupportedRRule)
	}
	return opt.RRuleString(), nil
}

// RuleFromRRule parses a single RRULE value into a Rule. Only plain daily,
// weekly with at most one BYDAY, and monthly with one ordinal BYDAY (or one
// BYDAY plus one BYSETPOS) are accepted. INTERVAL must be 1 and COUNT/UNTIL
// are rejected since a Rule repeats indefinitely.
func RuleFromRRule(s string) (Rule, error) {
	opt, err := rrule.StrToROption(s)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrUnsupportedRRule, err)
	}
	if opt.Interval > 1 {
		return Rule{}, fmt.Errorf("%w: INTERVAL=%d", ErrUnsupportedRRule, opt.Interval)
	}
	if opt.Count != 0 || !opt.Until.IsZero() {
		return Rule{}, fmt.Errorf("%w: bounded rules", ErrUnsupportedRRule)
	}
	if len(opt.Bymonth)+len(opt.Bymonthday)+len(opt.Byyearday)+len(opt.Byweekno) > 0 {
		return Rule{}, fmt.Errorf("%w: %s", ErrUnsupportedRRule, s)
	}

	switch opt.Freq {
	case rrule.DAILY:
		if len(opt.Byweekday) > 0 {
			return Rule{}, fmt.Errorf("%w: daily rule with BYDAY", ErrUnsupportedRRule)
		}
		return Daily(), nil

	case rrule.WEEKLY:
		switch len(opt.Byweekday) {
		case 0:
			return Rule{Interval: IntervalWeekly}, nil
		case 1:
			wd := opt.Byweekday[0]
			if wd.N() != 0 {
				return Rule{}, fmt.Errorf("%w: ordinal BYDAY on weekly rule", ErrUnsupportedRRule)
			}
			return Weekly(fromRRuleDay(wd.Day())), nil
		default:
			return Rule{}, fmt.Errorf("%w: multiple weekdays", ErrUnsupportedRRule)
		}

	case rrule.MONTHLY:
		if len(opt.Byweekday) != 1 {
			return Rule{}, fmt.Errorf("%w: monthly rule needs exactly one BYDAY", ErrUnsupportedRRule)
		}
		wd := opt.Byweekday[0]
		n := wd.N()
		if n == 0 && len(opt.Bysetpos) == 1 {
			n = opt.Bysetpos[0]
		} else if len(opt.Bysetpos) > 0 {
			return Rule{}, fmt.Errorf("%w: BYSETPOS", ErrUnsupportedRRule)
		}
		week, err := weekFromOrdinal(n)
		if err != nil {
			return Rule{}, err
		}
		return Monthly(week, fromRRuleDay(wd.Day())), nil

	default:
		return Rule{}, fmt.Errorf("%w: FREQ=%v", ErrUnsupportedRRule, opt.Freq)
	}
}

// fromRRuleDay converts rrule's Monday-first index to a time.Weekday.
func fromRRuleDay(day int) time.Weekday {
	return time.Weekday((day + 1) % 7)
}

func weekFromOrdinal(n int) (int, error) {
	switch {
	case n >= 1 && n <= 4:
		return n, nil
	case n == -1:
		return LastWeek, nil
	default:
		return 0, fmt.Errorf("%w: ordinal %d", ErrUnsupportedRRule, n)
	}
}
