package calendar

import (
	"sort"
	"time"

	"github.com/huddlehq/huddle/internal/dateutil"
	"github.com/huddlehq/huddle/internal/event"
)

// MaxEventsPerCell caps how many events a day cell shows.
const MaxEventsPerCell = 3

// EventSummary is the slice of an event the calendar needs.
type EventSummary struct {
	ID           int64      `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Date         string     `json:"date" yaml:"date"`
	Type         event.Type `json:"type" yaml:"type"`
	IsRecurring  bool       `json:"is_recurring" yaml:"is_recurring"`
	CategoryName string     `json:"category,omitempty" yaml:"category,omitempty"`
}

// Summarize converts a stored event into its calendar summary.
func Summarize(e *event.Event) EventSummary {
	return EventSummary{
		ID:           e.ID,
		Title:        e.Title,
		Date:         e.Start.Format(dateutil.DateLayout),
		Type:         e.Type,
		IsRecurring:  e.IsRecurring(),
		CategoryName: e.Category,
	}
}

// SummarizeAll converts a slice of events.
func SummarizeAll(events []*event.Event) []EventSummary {
	out := make([]EventSummary, 0, len(events))
	for _, e := range events {
		out = append(out, Summarize(e))
	}
	return out
}

// Cell is one day of the grid and the events shown in it.
type Cell struct {
	Date   time.Time
	Events []EventSummary
}

// PlaceEvents fills the window's cells with up to MaxEventsPerCell events each.
func PlaceEvents(w Window, events []EventSummary) [WindowDays]Cell {
	return PlaceEventsLimit(w, events, MaxEventsPerCell)
}

// PlaceEventsLimit fills each cell with the day's non-recurring events,
// ordered by type priority and cut to limit. Ties keep input order. Events
// past the limit are dropped. A limit <= 0 means MaxEventsPerCell.
func PlaceEventsLimit(w Window, events []EventSummary, limit int) [WindowDays]Cell {
	if limit <= 0 {
		limit = MaxEventsPerCell
	}

	byDate := make(map[string][]EventSummary)
	for _, e := range events {
		if e.IsRecurring {
			continue
		}
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	var cells [WindowDays]Cell
	for i, day := range w.Days {
		cells[i].Date = day
		dayEvents := byDate[day.Format(dateutil.DateLayout)]
		if len(dayEvents) == 0 {
			continue
		}
		sort.SliceStable(dayEvents, func(a, b int) bool {
			return dayEvents[a].Type.Priority() < dayEvents[b].Type.Priority()
		})
		if len(dayEvents) > limit {
			dayEvents = dayEvents[:limit]
		}
		cells[i].Events = dayEvents
	}
	return cells
}

// Overflow returns, per cell, how many of the day's non-recurring events did
// not fit. cells must come from placing the same events into w.
func Overflow(w Window, events []EventSummary, cells [WindowDays]Cell) [WindowDays]int {
	totals := make(map[string]int)
	for _, e := range events {
		if !e.IsRecurring {
			totals[e.Date]++
		}
	}

	var hidden [WindowDays]int
	for i, day := range w.Days {
		if n := totals[day.Format(dateutil.DateLayout)] - len(cells[i].Events); n > 0 {
			hidden[i] = n
		}
	}
	return hidden
}
