package event

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/huddlehq/huddle/internal/recurrence"
)

var testNow = time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	t.Run("weekly event", func(t *testing.T) {
		e, err := New(Draft{
			Title:    "  Go night ",
			Type:     "regular",
			Group:    "gophers",
			Category: "Tech",
			Schedule: recurrence.FirstInput{
				Rule:  recurrence.Weekly(time.Wednesday),
				Start: "19:00",
				End:   "21:00",
			},
		}, nil, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Title != "Go night" {
			t.Errorf("got title %q", e.Title)
		}
		if e.Type != TypeRegular {
			t.Errorf("got type %q, want %q", e.Type, TypeRegular)
		}
		want := time.Date(2025, 1, 8, 19, 0, 0, 0, time.UTC)
		if !e.Start.Equal(want) {
			t.Errorf("got start %v, want %v", e.Start, want)
		}
		if e.Duration() != 2*time.Hour {
			t.Errorf("got duration %v", e.Duration())
		}
		if !e.IsRecurring() {
			t.Error("expected recurring event")
		}
		if !e.CreatedAt.Equal(testNow) {
			t.Errorf("got CreatedAt %v, want %v", e.CreatedAt, testNow)
		}
	})

	t.Run("one-off event", func(t *testing.T) {
		e, err := New(Draft{
			Title:    "Launch party",
			Type:     "Special",
			Schedule: recurrence.FirstInput{StartAt: "2025-02-14T20:00"},
		}, nil, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.IsRecurring() {
			t.Error("expected non-recurring event")
		}
		if e.Date() != "2025-02-14" {
			t.Errorf("got date %q", e.Date())
		}
		if e.Occurrences(nil, testNow, 3) != nil {
			t.Error("expected no occurrences for a one-off event")
		}
	})
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  error
	}{
		{
			name:  "empty title",
			draft: Draft{Title: "  ", Type: "Regular", Schedule: recurrence.FirstInput{StartAt: "2025-02-14T20:00"}},
			want:  ErrEmptyTitle,
		},
		{
			name:  "invalid type",
			draft: Draft{Title: "x", Type: "Huge", Schedule: recurrence.FirstInput{StartAt: "2025-02-14T20:00"}},
			want:  ErrInvalidType,
		},
		{
			name:  "schedule error is wrapped",
			draft: Draft{Title: "x", Type: "Regular", Schedule: recurrence.FirstInput{Rule: recurrence.Daily(), Start: "09:00"}},
			want:  recurrence.ErrMissingDate,
		},
		{
			name: "end before start",
			draft: Draft{Title: "x", Type: "Regular", Schedule: recurrence.FirstInput{
				Rule: recurrence.Daily(), Date: "2025-01-10", Start: "10:00", End: "09:00",
			}},
			want: ErrEndBeforeStart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.draft, nil, testNow)
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestType_Priority(t *testing.T) {
	types := []Type{TypeRegular, "Other", TypeLightning, TypeSpecial}
	sort.SliceStable(types, func(i, j int) bool { return types[i].Priority() < types[j].Priority() })

	want := []Type{TypeSpecial, TypeLightning, TypeRegular, "Other"}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, types[i], want[i])
		}
	}
}

func TestEvent_Occurrences(t *testing.T) {
	e, err := New(Draft{
		Title: "Last Friday social",
		Type:  "Lightning",
		Schedule: recurrence.FirstInput{
			Rule:  recurrence.Monthly(recurrence.LastWeek, time.Friday),
			Start: "18:00",
			End:   "20:00",
		},
	}, nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	later := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	got := e.Occurrences(nil, later, 3)
	want := []string{"2025-02-28T18:00:00", "2025-03-28T18:00:00", "2025-04-25T18:00:00"}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].StartISO() != want[i] {
			t.Errorf("occurrence %d = %s, want %s", i, got[i].StartISO(), want[i])
		}
		if end := got[i].EndISO(); end == nil || (*end)[11:] != "20:00:00" {
			t.Errorf("occurrence %d end = %v", i, end)
		}
	}
}
