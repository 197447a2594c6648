package recurrence

import (
	"errors"
	"testing"
	"time"
)

func TestRule_RRule(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		want string
	}{
		{"daily", Daily(), "FREQ=DAILY"},
		{"weekly without weekday", Rule{Interval: IntervalWeekly}, "FREQ=WEEKLY"},
		{"weekly monday", Weekly(time.Monday), "FREQ=WEEKLY;BYDAY=MO"},
		{"weekly sunday", Weekly(time.Sunday), "FREQ=WEEKLY;BYDAY=SU"},
		{"monthly second tuesday", Monthly(2, time.Tuesday), "FREQ=MONTHLY;BYDAY=+2TU"},
		{"monthly last friday", Monthly(LastWeek, time.Friday), "FREQ=MONTHLY;BYDAY=-1FR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.RRule()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}

			back, err := RuleFromRRule(got)
			if err != nil {
				t.Fatalf("RuleFromRRule(%q): %v", got, err)
			}
			if back.Describe() != tt.rule.Describe() {
				t.Errorf("round trip = %q, want %q", back.Describe(), tt.rule.Describe())
			}
		})
	}
}

func TestRule_RRuleErrors(t *testing.T) {
	if _, err := (Rule{}).RRule(); !errors.Is(err, ErrUnsupportedRRule) {
		t.Errorf("non-recurring: got %v, want %v", err, ErrUnsupportedRRule)
	}
	if _, err := (Rule{Interval: IntervalMonthly}).RRule(); !errors.Is(err, ErrMissingWeekday) {
		t.Errorf("monthly without weekday: got %v, want %v", err, ErrMissingWeekday)
	}
}

func TestRuleFromRRule(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "RRULE:FREQ=WEEKLY;BYDAY=TH", want: "Repeats weekly on Thursday"},
		{input: "FREQ=MONTHLY;BYDAY=3WE", want: "Repeats monthly on the third Wednesday"},
		{input: "FREQ=MONTHLY;BYDAY=SA;BYSETPOS=-1", want: "Repeats monthly on the last Saturday"},
		{input: "FREQ=DAILY;INTERVAL=1", want: "Repeats daily"},
		{input: "FREQ=DAILY;INTERVAL=2", wantErr: true},
		{input: "FREQ=WEEKLY;BYDAY=MO,WE", wantErr: true},
		{input: "FREQ=WEEKLY;COUNT=4", wantErr: true},
		{input: "FREQ=MONTHLY;BYMONTHDAY=15", wantErr: true},
		{input: "FREQ=MONTHLY;BYDAY=-2FR", wantErr: true},
		{input: "FREQ=YEARLY", wantErr: true},
		{input: "garbage", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := RuleFromRRule(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedRRule) {
					t.Fatalf("got error %v, want %v", err, ErrUnsupportedRRule)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Describe() != tt.want {
				t.Errorf("got %q, want %q", got.Describe(), tt.want)
			}
		})
	}
}

func TestRule_WithDefaults(t *testing.T) {
	anchor := time.Date(2025, 5, 30, 18, 0, 0, 0, time.UTC) // last Friday of May

	got := Rule{Interval: IntervalMonthly}.WithDefaults(anchor)
	if got.Weekday == nil || *got.Weekday != time.Friday {
		t.Errorf("weekday = %v, want Friday", got.Weekday)
	}
	if got.WeekOfMonth == nil || *got.WeekOfMonth != LastWeek {
		t.Errorf("week = %v, want %d", got.WeekOfMonth, LastWeek)
	}

	daily := Daily().WithDefaults(anchor)
	if daily.Weekday != nil || daily.WeekOfMonth != nil {
		t.Errorf("daily rule gained fields: %+v", daily)
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		input   string
		want    Interval
		wantErr bool
	}{
		{input: "", want: IntervalNone},
		{input: "none", want: IntervalNone},
		{input: "Daily", want: IntervalDaily},
		{input: "weekly", want: IntervalWeekly},
		{input: " monthly ", want: IntervalMonthly},
		{input: "yearly", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInterval(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInterval) {
					t.Fatalf("got error %v, want %v", err, ErrInvalidInterval)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseWeekOfMonth(t *testing.T) {
	for input, want := range map[string]int{"1": 1, "second": 2, "4": 4, "5": LastWeek, "Last": LastWeek} {
		got, err := ParseWeekOfMonth(input)
		if err != nil || got != want {
			t.Errorf("ParseWeekOfMonth(%q) = %d, %v; want %d", input, got, err, want)
		}
	}
	if _, err := ParseWeekOfMonth("6"); !errors.Is(err, ErrInvalidWeekOfMonth) {
		t.Errorf("got error %v, want %v", err, ErrInvalidWeekOfMonth)
	}
}

func TestRule_Matches(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 19, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		rule Rule
		t    time.Time
		want bool
	}{
		{"none", Rule{}, day(2024, 1, 2), true},
		{"daily", Daily(), day(2024, 1, 2), true},
		{"weekly same weekday", Weekly(time.Tuesday), day(2024, 1, 2), true},
		{"weekly other weekday", Weekly(time.Friday), day(2024, 1, 2), false},
		{"weekly unset weekday", Rule{Interval: IntervalWeekly}, day(2024, 1, 2), true},
		{"monthly last friday", Monthly(LastWeek, time.Friday), day(2024, 1, 26), true},
		{"monthly last friday on a tuesday", Monthly(LastWeek, time.Friday), day(2024, 1, 2), false},
		{"monthly last friday on an earlier friday", Monthly(LastWeek, time.Friday), day(2024, 1, 19), false},
		{"monthly second monday", Monthly(2, time.Monday), day(2024, 1, 8), true},
		{"monthly first monday on the second", Monthly(1, time.Monday), day(2024, 1, 8), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Matches(tt.t); got != tt.want {
				t.Errorf("Matches(%s) = %v, want %v", tt.t.Format("Mon 2006-01-02"), got, tt.want)
			}
		})
	}
}
