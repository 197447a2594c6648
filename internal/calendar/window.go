// Package calendar builds the rolling 35-day calendar window and places
// events into its day cells.
package calendar

import (
	"errors"
	"time"

	"github.com/huddlehq/huddle/internal/dateutil"
)

// Window geometry.
const (
	WindowDays   = 35
	DaysPerWeek  = 7
	WeeksPerGrid = WindowDays / DaysPerWeek

	// dominantDays is how many days a month needs to title the window alone.
	dominantDays = 21
)

// QuickJumpCount is the number of quick-jump options offered.
const QuickJumpCount = 6

// ErrInvalidJump is returned when a quick-jump index is out of range.
var ErrInvalidJump = errors.New("quick jump index out of range")

// Window is 35 consecutive days beginning on a Sunday.
type Window struct {
	Start time.Time
	Days  [WindowDays]time.Time
}

// BuildWindow returns the window starting on the Sunday on or before anchor.
// Building from a window's own Start yields the same window.
func BuildWindow(anchor time.Time) Window {
	start := dateutil.StartOfWeek(anchor)
	w := Window{Start: start}
	for i := range w.Days {
		w.Days[i] = time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, start.Location())
	}
	return w
}

// End returns the last day in the window.
func (w Window) End() time.Time {
	return w.Days[WindowDays-1]
}

// Contains reports whether t falls on a day inside the window.
func (w Window) Contains(t time.Time) bool {
	_, ok := w.Index(t)
	return ok
}

// Index returns the position of t's day in the window.
func (w Window) Index(t time.Time) (int, bool) {
	for i, d := range w.Days {
		if dateutil.SameDay(d, t) {
			return i, true
		}
	}
	return 0, false
}

// Week returns the seven days of grid row i (0-4).
func (w Window) Week(i int) []time.Time {
	if i < 0 || i >= WeeksPerGrid {
		return nil
	}
	return w.Days[i*DaysPerWeek : (i+1)*DaysPerWeek]
}

// Title returns the dominant month's full name when one month holds at
// least 21 of the 35 days, otherwise "Jan - Feb" from the first and last day.
func (w Window) Title() string {
	type ym struct {
		year  int
		month time.Month
	}
	counts := make(map[ym]int)
	for _, d := range w.Days {
		key := ym{d.Year(), d.Month()}
		counts[key]++
		if counts[key] >= dominantDays {
			return d.Month().String()
		}
	}
	return w.Days[0].Format("Jan") + " - " + w.End().Format("Jan")
}

// QuickJump is a named window anchor.
type QuickJump struct {
	Label  string
	Anchor time.Time
}

// QuickJumps returns "This month", "Next month" and the four month names
// after that, each anchored on the Sunday on or before the month's 1st.
func QuickJumps(now time.Time) []QuickJump {
	first := dateutil.FirstOfMonth(now)
	jumps := make([]QuickJump, 0, QuickJumpCount)
	for i := 0; i < QuickJumpCount; i++ {
		month := first.AddDate(0, i, 0)
		var label string
		switch i {
		case 0:
			label = "This month"
		case 1:
			label = "Next month"
		default:
			label = month.Month().String()
		}
		jumps = append(jumps, QuickJump{Label: label, Anchor: dateutil.StartOfWeek(month)})
	}
	return jumps
}

// Navigator tracks the anchor of the displayed window.
type Navigator struct {
	anchor time.Time
	jumps  []QuickJump
}

// NewNavigator starts on the "This month" window for now.
func NewNavigator(now time.Time) *Navigator {
	jumps := QuickJumps(now)
	return &Navigator{anchor: jumps[0].Anchor, jumps: jumps}
}

// Anchor returns the current window start.
func (n *Navigator) Anchor() time.Time {
	return n.anchor
}

// Window returns the current window.
func (n *Navigator) Window() Window {
	return BuildWindow(n.anchor)
}

// QuickJumps returns the available jump options.
func (n *Navigator) QuickJumps() []QuickJump {
	return n.jumps
}

// SetAnchor moves to the window containing t. It is not bounded.
func (n *Navigator) SetAnchor(t time.Time) {
	n.anchor = dateutil.StartOfWeek(t)
}

// Prev moves the window back 35 days.
func (n *Navigator) Prev() {
	n.anchor = shift(n.anchor, -WindowDays)
}

// CanNext reports whether moving forward stays within the furthest quick jump.
func (n *Navigator) CanNext() bool {
	limit := n.jumps[len(n.jumps)-1].Anchor
	return !shift(n.anchor, WindowDays).After(limit)
}

// Next moves the window forward 35 days if allowed and reports whether it moved.
func (n *Navigator) Next() bool {
	if !n.CanNext() {
		return false
	}
	n.anchor = shift(n.anchor, WindowDays)
	return true
}

// Jump replaces the anchor with quick-jump option i.
func (n *Navigator) Jump(i int) error {
	if i < 0 || i >= len(n.jumps) {
		return ErrInvalidJump
	}
	n.anchor = n.jumps[i].Anchor
	return nil
}

func shift(t time.Time, days int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+days, 0, 0, 0, 0, t.Location())
}
