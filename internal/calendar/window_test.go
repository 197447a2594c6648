package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestBuildWindow_Property(t *testing.T) {
	start := time.Date(2023, 12, 1, 15, 0, 0, 0, time.UTC)
	for i := 0; i < 800; i++ {
		anchor := start.AddDate(0, 0, i)
		w := BuildWindow(anchor)

		if len(w.Days) != WindowDays {
			t.Fatalf("window has %d days", len(w.Days))
		}
		if w.Start.Weekday() != time.Sunday || w.Days[0].Weekday() != time.Sunday {
			t.Fatalf("BuildWindow(%v) starts on %v", anchor, w.Start.Weekday())
		}
		if !w.Contains(anchor) {
			t.Fatalf("BuildWindow(%v) does not contain its anchor", anchor)
		}
		for j := 1; j < WindowDays; j++ {
			if !w.Days[j-1].AddDate(0, 0, 1).Equal(w.Days[j]) {
				t.Fatalf("days %d and %d are not consecutive", j-1, j)
			}
		}
		if again := BuildWindow(w.Start); again != w {
			t.Fatalf("BuildWindow is not idempotent for %v", anchor)
		}
	}
}

func TestWindow_Title(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		want   string
	}{
		{
			name:   "31 january days and 4 february days",
			anchor: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			want:   "January",
		},
		{
			name:   "18/17 split",
			anchor: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
			want:   "Jan - Feb",
		},
		{
			name:   "exactly 21 days is dominant",
			anchor: time.Date(2024, 8, 11, 0, 0, 0, 0, time.UTC),
			want:   "August",
		},
		{
			name:   "20 days is not dominant",
			anchor: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
			want:   "Jan - Feb",
		},
		{
			name:   "across a year boundary",
			anchor: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
			want:   "Dec - Jan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildWindow(tt.anchor).Title(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuickJumps(t *testing.T) {
	now := time.Date(2025, 10, 16, 14, 0, 0, 0, time.UTC)
	jumps := QuickJumps(now)

	wantLabels := []string{"This month", "Next month", "December", "January", "February", "March"}
	wantAnchors := []string{"2025-09-28", "2025-10-26", "2025-11-30", "2025-12-28", "2026-02-01", "2026-03-01"}
	if len(jumps) != len(wantLabels) {
		t.Fatalf("got %d jumps, want %d", len(jumps), len(wantLabels))
	}
	for i, j := range jumps {
		if j.Label != wantLabels[i] {
			t.Errorf("jump %d label = %q, want %q", i, j.Label, wantLabels[i])
		}
		if got := j.Anchor.Format("2006-01-02"); got != wantAnchors[i] {
			t.Errorf("jump %d anchor = %s, want %s", i, got, wantAnchors[i])
		}
		if j.Anchor.Weekday() != time.Sunday {
			t.Errorf("jump %d anchor is a %v", i, j.Anchor.Weekday())
		}
	}
}

func TestNavigator(t *testing.T) {
	now := time.Date(2025, 10, 16, 14, 0, 0, 0, time.UTC)

	t.Run("starts on this month", func(t *testing.T) {
		n := NewNavigator(now)
		if got := n.Anchor().Format("2006-01-02"); got != "2025-09-28" {
			t.Errorf("anchor = %s", got)
		}
		if !n.Window().Contains(now) {
			t.Error("initial window does not contain now")
		}
	})

	t.Run("prev and next shift by 35 days", func(t *testing.T) {
		n := NewNavigator(now)
		start := n.Anchor()
		n.Prev()
		if !n.Anchor().Equal(start.AddDate(0, 0, -35)) {
			t.Errorf("after Prev anchor = %v", n.Anchor())
		}
		if !n.Next() {
			t.Fatal("Next refused")
		}
		if !n.Anchor().Equal(start) {
			t.Errorf("after Next anchor = %v, want %v", n.Anchor(), start)
		}
	})

	t.Run("next stops at furthest quick jump", func(t *testing.T) {
		n := NewNavigator(now)
		limit := n.QuickJumps()[QuickJumpCount-1].Anchor
		moves := 0
		for n.Next() {
			moves++
			if n.Anchor().After(limit) {
				t.Fatalf("anchor %v passed limit %v", n.Anchor(), limit)
			}
			if moves > 20 {
				t.Fatal("navigation never stopped")
			}
		}
		if n.CanNext() {
			t.Error("CanNext true after Next refused")
		}
		// 2025-09-28 + 4*35 days = 2026-02-15, one more would be 2026-03-22.
		if moves != 4 {
			t.Errorf("moved %d times, want 4", moves)
		}
		n.Prev()
		if !n.CanNext() {
			t.Error("CanNext false after stepping back")
		}
	})

	t.Run("jump", func(t *testing.T) {
		n := NewNavigator(now)
		if err := n.Jump(3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !n.Anchor().Equal(n.QuickJumps()[3].Anchor) {
			t.Errorf("anchor = %v", n.Anchor())
		}
		if err := n.Jump(6); !errors.Is(err, ErrInvalidJump) {
			t.Errorf("got error %v, want %v", err, ErrInvalidJump)
		}
		if err := n.Jump(-1); !errors.Is(err, ErrInvalidJump) {
			t.Errorf("got error %v, want %v", err, ErrInvalidJump)
		}
	})

	t.Run("set anchor normalizes to sunday", func(t *testing.T) {
		n := NewNavigator(now)
		n.SetAnchor(time.Date(2025, 7, 9, 12, 0, 0, 0, time.UTC))
		if got := n.Anchor().Format("2006-01-02"); got != "2025-07-06" {
			t.Errorf("anchor = %s", got)
		}
	})
}

func TestWindow_Week(t *testing.T) {
	w := BuildWindow(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	for i := 0; i < WeeksPerGrid; i++ {
		week := w.Week(i)
		if len(week) != DaysPerWeek {
			t.Fatalf("week %d has %d days", i, len(week))
		}
		if week[0].Weekday() != time.Sunday {
			t.Errorf("week %d starts on %v", i, week[0].Weekday())
		}
	}
	if w.Week(5) != nil {
		t.Error("expected nil for out-of-range week")
	}
}
