package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/recurrence"
)

func TestPlaceEvents_PriorityAndCap(t *testing.T) {
	w := BuildWindow(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	day := "2025-03-12"

	events := []EventSummary{
		{ID: 1, Title: "regular one", Date: day, Type: event.TypeRegular},
		{ID: 2, Title: "lightning one", Date: day, Type: event.TypeLightning},
		{ID: 3, Title: "regular two", Date: day, Type: event.TypeRegular},
		{ID: 4, Title: "special", Date: day, Type: event.TypeSpecial},
		{ID: 5, Title: "lightning two", Date: day, Type: event.TypeLightning},
	}

	cells := PlaceEvents(w, events)
	idx, ok := w.Index(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	if !ok {
		t.Fatal("day not in window")
	}
	got := cells[idx].Events
	if len(got) != MaxEventsPerCell {
		t.Fatalf("got %d events, want %d", len(got), MaxEventsPerCell)
	}
	wantIDs := []int64{4, 2, 5}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("position %d: got %q (id %d), want id %d", i, got[i].Title, got[i].ID, id)
		}
	}
}

func TestPlaceEvents_RegularNeverBeforeLightning(t *testing.T) {
	w := BuildWindow(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	day := "2025-03-05"
	orders := [][]event.Type{
		{event.TypeRegular, event.TypeRegular, event.TypeLightning, event.TypeLightning, event.TypeSpecial},
		{event.TypeSpecial, event.TypeRegular, event.TypeLightning, event.TypeRegular, event.TypeLightning},
		{event.TypeLightning, event.TypeSpecial, event.TypeRegular},
	}

	for _, types := range orders {
		var events []EventSummary
		for i, typ := range types {
			events = append(events, EventSummary{ID: int64(i), Date: day, Type: typ})
		}
		cells := PlaceEvents(w, events)
		got := cells[3].Events
		if got[0].Type != event.TypeSpecial {
			t.Errorf("%v: first = %s, want Special", types, got[0].Type)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Type.Priority() < got[i-1].Type.Priority() {
				t.Errorf("%v: %s placed after %s", types, got[i].Type, got[i-1].Type)
			}
		}
	}
}

func TestPlaceEvents_SkipsRecurringAndOutOfWindow(t *testing.T) {
	w := BuildWindow(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	events := []EventSummary{
		{ID: 1, Date: "2025-03-02", Type: event.TypeSpecial, IsRecurring: true},
		{ID: 2, Date: "2025-03-02", Type: event.TypeRegular},
		{ID: 3, Date: "2025-05-01", Type: event.TypeRegular},
		{ID: 4, Date: "2025-03-01", Type: event.TypeRegular},
	}

	cells := PlaceEvents(w, events)
	total := 0
	for i, c := range cells {
		if !c.Date.Equal(w.Days[i]) {
			t.Errorf("cell %d date = %v, want %v", i, c.Date, w.Days[i])
		}
		total += len(c.Events)
	}
	if total != 1 {
		t.Fatalf("placed %d events, want 1", total)
	}
	if cells[0].Events[0].ID != 2 {
		t.Errorf("placed id %d, want 2", cells[0].Events[0].ID)
	}
}

func TestPlaceEventsLimit(t *testing.T) {
	w := BuildWindow(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	var events []EventSummary
	for i := 0; i < 6; i++ {
		events = append(events, EventSummary{ID: int64(i), Date: "2025-03-02", Type: event.TypeRegular})
	}
	if got := len(PlaceEventsLimit(w, events, 5)[0].Events); got != 5 {
		t.Errorf("limit 5: got %d", got)
	}
	if got := len(PlaceEventsLimit(w, events, 0)[0].Events); got != MaxEventsPerCell {
		t.Errorf("limit 0: got %d, want %d", got, MaxEventsPerCell)
	}
}

func TestOverflow(t *testing.T) {
	w := BuildWindow(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	events := []EventSummary{
		{ID: 1, Date: "2025-03-02", Type: event.TypeRegular},
		{ID: 2, Date: "2025-03-02", Type: event.TypeRegular},
		{ID: 3, Date: "2025-03-02", Type: event.TypeSpecial},
		{ID: 4, Date: "2025-03-02", Type: event.TypeLightning},
		{ID: 5, Date: "2025-03-02", Type: event.TypeRegular, IsRecurring: true},
		{ID: 6, Date: "2025-03-03", Type: event.TypeRegular},
		{ID: 7, Date: "2025-06-01", Type: event.TypeRegular},
	}
	cells := PlaceEventsLimit(w, events, 2)
	hidden := Overflow(w, events, cells)

	if hidden[0] != 2 {
		t.Errorf("hidden[0] = %d, want 2", hidden[0])
	}
	if hidden[1] != 0 {
		t.Errorf("hidden[1] = %d, want 0", hidden[1])
	}
	for i := 2; i < WindowDays; i++ {
		if hidden[i] != 0 {
			t.Errorf("hidden[%d] = %d, want 0", i, hidden[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	e := &event.Event{
		ID:       9,
		Title:    "Monthly meetup",
		Category: "Social",
		Type:     event.TypeRegular,
		Start:    time.Date(2025, 3, 28, 18, 0, 0, 0, time.UTC),
		Rule:     recurrence.Monthly(recurrence.LastWeek, time.Friday),
	}
	got := Summarize(e)
	want := EventSummary{ID: 9, Title: "Monthly meetup", Date: "2025-03-28", Type: event.TypeRegular, IsRecurring: true, CategoryName: "Social"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAgenda(t *testing.T) {
	w := BuildWindow(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	cells := PlaceEvents(w, []EventSummary{
		{ID: 1, Title: "Go night", Date: "2025-03-05", Type: event.TypeRegular, CategoryName: "Tech"},
		{ID: 2, Title: "Launch", Date: "2025-03-05", Type: event.TypeSpecial},
	})

	got := Agenda(w, cells)
	for _, want := range []string{"March (Mar 2 - Apr 5, 2025)", "Wed Mar 5", "  [Special] Launch", "  [Regular] Go night (Tech)"} {
		if !strings.Contains(got, want) {
			t.Errorf("agenda missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Launch") > strings.Index(got, "Go night") {
		t.Error("special event should be listed first")
	}

	empty := Agenda(w, PlaceEvents(w, nil))
	if !strings.Contains(empty, "No events.") {
		t.Errorf("empty agenda = %q", empty)
	}
}
