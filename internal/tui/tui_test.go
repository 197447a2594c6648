package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/huddlehq/huddle/internal/calendar"
	"github.com/huddlehq/huddle/internal/config"
	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/recurrence"
	"github.com/huddlehq/huddle/internal/tui/commands"
)

// Wednesday; the "This month" window runs Dec 29 2024 - Feb 1 2025.
var testNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

type memRepo struct {
	events []*event.Event
}

func (r *memRepo) CreateEvent(ctx context.Context, e *event.Event) error {
	e.ID = int64(len(r.events) + 1)
	r.events = append(r.events, e)
	return nil
}

func (r *memRepo) CreateEvents(ctx context.Context, events []*event.Event) error {
	for _, e := range events {
		_ = r.CreateEvent(ctx, e)
	}
	return nil
}

func (r *memRepo) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	for _, e := range r.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, event.ErrEventNotFound
}

func (r *memRepo) ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]*event.Event, error) {
	var out []*event.Event
	last := end.AddDate(0, 0, 1)
	for _, e := range r.events {
		if !e.Start.Before(start) && e.Start.Before(last) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memRepo) ListRecurringEvents(ctx context.Context) ([]*event.Event, error) {
	var out []*event.Event
	for _, e := range r.events {
		if e.IsRecurring() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memRepo) ListAllEvents(ctx context.Context) ([]*event.Event, error) {
	return r.events, nil
}

func (r *memRepo) DeleteEvent(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}

func (r *memRepo) Close() error {
	return nil
}

func sampleRepo() *memRepo {
	at := func(day, hour int) time.Time {
		return time.Date(2025, 1, day, hour, 0, 0, 0, time.Local)
	}
	return &memRepo{events: []*event.Event{
		{ID: 1, Title: "Launch party", Type: event.TypeSpecial, Category: "Tech", Start: at(10, 20)},
		{ID: 2, Title: "Meetup A", Type: event.TypeRegular, Start: at(10, 18)},
		{ID: 3, Title: "Meetup B", Type: event.TypeRegular, Start: at(10, 19)},
		{ID: 4, Title: "Lightning round", Type: event.TypeLightning, Start: at(10, 21)},
		{ID: 5, Title: "Meetup C", Type: event.TypeRegular, Start: at(10, 22)},
		{ID: 6, Title: "Go night", Type: event.TypeRegular, Start: at(1, 19), Rule: recurrence.Weekly(time.Wednesday)},
	}}
}

func newTestModel(t *testing.T, repo event.Repository, opts ...ModelOption) Model {
	t.Helper()
	opts = append([]ModelOption{WithNow(func() time.Time { return testNow })}, opts...)
	return New(repo, config.Default(), opts...)
}

// newCountingModel is newTestModel with "+N more" counts enabled.
func newCountingModel(t *testing.T, repo event.Repository) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Calendar.ShowHiddenCount = true
	return New(repo, cfg, WithNow(func() time.Time { return testNow }))
}

// loaded runs the model's initial load synchronously.
func loaded(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no command")
	}
	return update(t, m, cmd())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.Local)
}

func TestNew_StartsOnThisMonth(t *testing.T) {
	m := newTestModel(t, nil)

	if got, want := m.nav.Anchor(), date(2024, time.December, 29); !got.Equal(want) {
		t.Errorf("anchor = %v, want %v", got, want)
	}
	if m.cursor != 17 {
		t.Errorf("cursor = %d, want 17 (today)", m.cursor)
	}
	if m.activeJump() != 0 {
		t.Errorf("active jump = %d, want 0", m.activeJump())
	}
	if m.Init() != nil {
		t.Error("Init without a repository should not load")
	}
}

func TestNavigationKeys(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		wantAnchor time.Time
		wantJump   int
	}{
		{name: "prev", keys: []string{"h"}, wantAnchor: date(2024, time.November, 24), wantJump: -1},
		{name: "next", keys: []string{"l"}, wantAnchor: date(2025, time.February, 2), wantJump: -1},
		{name: "next then prev", keys: []string{"l", "h"}, wantAnchor: date(2024, time.December, 29), wantJump: 0},
		{name: "jump to march", keys: []string{"3"}, wantAnchor: date(2025, time.February, 23), wantJump: 2},
		{name: "jump to june", keys: []string{"6"}, wantAnchor: date(2025, time.June, 1), wantJump: 5},
		{name: "today key", keys: []string{"4", "t"}, wantAnchor: date(2024, time.December, 29), wantJump: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, nil)
			for _, k := range tt.keys {
				m, _ = press(t, m, k)
			}
			if got := m.nav.Anchor(); !got.Equal(tt.wantAnchor) {
				t.Errorf("anchor = %v, want %v", got, tt.wantAnchor)
			}
			if got := m.activeJump(); got != tt.wantJump {
				t.Errorf("active jump = %d, want %d", got, tt.wantJump)
			}
		})
	}
}

func TestNext_StopsAtFurthestJump(t *testing.T) {
	m := newTestModel(t, nil)
	for i := 0; i < 4; i++ {
		m, _ = press(t, m, "l")
	}
	limit := m.nav.Anchor()
	if want := date(2025, time.May, 18); !limit.Equal(want) {
		t.Fatalf("anchor after 4 moves = %v, want %v", limit, want)
	}

	m, cmd := press(t, m, "l")
	if !m.nav.Anchor().Equal(limit) {
		t.Errorf("anchor moved past the furthest jump: %v", m.nav.Anchor())
	}
	if cmd == nil {
		t.Fatal("expected a status command")
	}
	status, ok := cmd().(commands.StatusMsgCmd)
	if !ok || !strings.Contains(status.Msg, "furthest") {
		t.Errorf("msg = %#v", status)
	}
}

func TestCursorMovement(t *testing.T) {
	tests := []struct {
		name  string
		start int
		key   string
		want  int
	}{
		{name: "up a week", start: 17, key: "up", want: 10},
		{name: "down a week", start: 17, key: "down", want: 24},
		{name: "left", start: 17, key: "left", want: 16},
		{name: "right", start: 17, key: "right", want: 18},
		{name: "left at first cell", start: 0, key: "left", want: 0},
		{name: "up in first row", start: 3, key: "up", want: 3},
		{name: "down in last row", start: 30, key: "down", want: 30},
		{name: "right at last cell", start: 34, key: "right", want: 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, nil)
			m.cursor = tt.start
			m, _ = press(t, m, tt.key)
			if m.cursor != tt.want {
				t.Errorf("cursor = %d, want %d", m.cursor, tt.want)
			}
		})
	}
}

func TestWindowLoaded_PlacesEvents(t *testing.T) {
	m := loaded(t, newTestModel(t, sampleRepo()))

	if m.loading {
		t.Error("still loading after WindowLoadedMsg")
	}
	// Jan 10 is 12 days after Dec 29.
	cell := m.cells[12]
	if len(cell.Events) != calendar.MaxEventsPerCell {
		t.Fatalf("cell events = %d, want %d", len(cell.Events), calendar.MaxEventsPerCell)
	}
	if cell.Events[0].Title != "Launch party" || cell.Events[1].Title != "Lightning round" {
		t.Errorf("cell order = %v", cell.Events)
	}
	if m.hidden[12] != 0 {
		t.Errorf("hidden = %d without show_hidden_count, want 0", m.hidden[12])
	}
	if counted := loaded(t, newCountingModel(t, sampleRepo())); counted.hidden[12] != 2 {
		t.Errorf("hidden = %d with show_hidden_count, want 2", counted.hidden[12])
	}
	// The recurring event's own start is not placed on the grid.
	if len(m.cells[3].Events) != 0 {
		t.Errorf("recurring event placed on Jan 1: %v", m.cells[3].Events)
	}
}

func TestWindowLoaded_IgnoresStaleWindow(t *testing.T) {
	repo := sampleRepo()
	m := newTestModel(t, repo)
	stale := m.Init()

	m, _ = press(t, m, "l")
	m = update(t, m, stale())

	if len(m.events) != 0 {
		t.Errorf("stale load applied: %d events", len(m.events))
	}
	if !m.loading {
		t.Error("stale load cleared the loading state")
	}
}

func TestCopyAgenda_UsesClipboard(t *testing.T) {
	var copied string
	m := loaded(t, newTestModel(t, sampleRepo(), WithClipboard(func(s string) error {
		copied = s
		return nil
	})))

	_, cmd := press(t, m, "y")
	if cmd == nil {
		t.Fatal("expected a copy command")
	}
	msg, ok := cmd().(commands.AgendaCopiedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want AgendaCopiedMsg", msg)
	}
	if msg.Events != 3 {
		t.Errorf("copied events = %d, want 3", msg.Events)
	}
	if !strings.HasPrefix(copied, "January (Dec 29 - Feb 1, 2025)") {
		t.Errorf("agenda header = %q", copied)
	}
	if !strings.Contains(copied, "[Special] Launch party (Tech)") {
		t.Errorf("agenda missing event:\n%s", copied)
	}
}

func TestErrMsg_SetsStatus(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, commands.ErrMsg{Err: errors.New("disk full")})
	if m.statusMsg != "Error: disk full" {
		t.Errorf("status = %q", m.statusMsg)
	}
	if m.statusText() != "Error: disk full" {
		t.Errorf("status text = %q", m.statusText())
	}
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(t, nil)
			var cmd tea.Cmd
			if k == "ctrl+c" {
				_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
			} else {
				_, cmd = press(t, m, k)
			}
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("msg type = %T, want tea.QuitMsg", cmd())
			}
		})
	}
}

func TestDayDetail(t *testing.T) {
	m := loaded(t, newTestModel(t, sampleRepo()))
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	// q closes the modal instead of quitting.
	m, _ = press(t, m, "enter")
	if !m.showDetail {
		t.Fatal("enter did not open the day detail")
	}
	m, cmd := press(t, m, "q")
	if m.showDetail || cmd != nil {
		t.Fatalf("q should close the detail, showDetail=%v cmd=%v", m.showDetail, cmd)
	}

	// Jan 15 is a Wednesday: the weekly event repeats on it.
	m, _ = press(t, m, "enter")
	out := ansi.Strip(m.View())
	for _, want := range []string{"Wednesday, Jan 15 2025", "Repeating:", "19:00 Go night", "[Esc] Close"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q", want)
		}
	}

	m, _ = press(t, m, "esc")
	m.cursor = 12
	m, _ = press(t, m, "enter")
	out = ansi.Strip(m.View())
	for _, want := range []string{"Friday, Jan 10 2025", "Launch party", "Meetup C", "(Tech)"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q", want)
		}
	}
}

func TestRecurringOn(t *testing.T) {
	m := loaded(t, newTestModel(t, sampleRepo()))

	tests := []struct {
		name string
		day  time.Time
		want int
	}{
		{name: "first occurrence", day: date(2025, time.January, 1), want: 1},
		{name: "later wednesday", day: date(2025, time.January, 22), want: 1},
		{name: "thursday", day: date(2025, time.January, 16), want: 0},
		{name: "before the first occurrence", day: date(2024, time.December, 25), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.recurringOn(tt.day); len(got) != tt.want {
				t.Errorf("recurringOn = %v, want %d entries", got, tt.want)
			}
		})
	}
}

func TestHelpModal(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = press(t, m, "?")
	if !m.help.ShowAll {
		t.Fatal("? did not open help")
	}
	if out := ansi.Strip(m.View()); !strings.Contains(out, "copy agenda") {
		t.Errorf("help modal missing bindings:\n%s", out)
	}

	// Keys other than close are swallowed while help is open.
	m, cmd := press(t, m, "q")
	if m.help.ShowAll || cmd != nil {
		t.Errorf("q should only close help, ShowAll=%v cmd=%v", m.help.ShowAll, cmd)
	}
}

func TestView(t *testing.T) {
	prevProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
	})

	t.Run("unsized", func(t *testing.T) {
		m := newTestModel(t, nil)
		if got := m.View(); got != "Loading..." {
			t.Errorf("View = %q", got)
		}
	})

	t.Run("too small", func(t *testing.T) {
		m := update(t, newTestModel(t, nil), tea.WindowSizeMsg{Width: 40, Height: 8})
		if got := m.View(); !strings.Contains(got, "Terminal too small") {
			t.Errorf("View = %q", got)
		}
	})

	t.Run("calendar", func(t *testing.T) {
		m := loaded(t, newCountingModel(t, sampleRepo()))
		m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
		out := m.View()

		if lines := strings.Split(out, "\n"); len(lines) != 40 {
			t.Errorf("view height = %d, want 40", len(lines))
		}
		bgSeq := "\x1b[48;2;"
		if !strings.Contains(out, bgSeq) {
			t.Error("expected truecolor backgrounds in output")
		}

		plain := ansi.Strip(out)
		for _, want := range []string{
			"January",
			"Dec 29 - Feb 1, 2025",
			"[1] This month",
			"[6] June",
			"Sun", "Sat",
			"Jan 1",
			"Launch party",
			"+2 more",
			"Special", "Lightning", "Regular",
			"3 events",
		} {
			if !strings.Contains(plain, want) {
				t.Errorf("view missing %q", want)
			}
		}
	})

	t.Run("drops overflow silently by default", func(t *testing.T) {
		m := loaded(t, newTestModel(t, sampleRepo()))
		m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
		if plain := ansi.Strip(m.View()); strings.Contains(plain, "+2 more") {
			t.Errorf("view shows an overflow marker:\n%s", plain)
		}
	})
}

func TestCellLinesAndWidth(t *testing.T) {
	tests := []struct {
		gridH, want int
	}{
		{gridH: 9, want: 1},
		{gridH: 35, want: 5},
		{gridH: 44, want: 7},
		{gridH: 3, want: 1},
	}
	for _, tt := range tests {
		if got := cellLines(tt.gridH); got != tt.want {
			t.Errorf("cellLines(%d) = %d, want %d", tt.gridH, got, tt.want)
		}
	}
	if got := colWidth(118); got != 15 {
		t.Errorf("colWidth(118) = %d, want 15", got)
	}
}

func TestFocusMonth(t *testing.T) {
	w := calendar.BuildWindow(date(2025, time.January, 1))
	if got := focusMonth(w); got != time.January {
		t.Errorf("focusMonth = %v, want January", got)
	}
}
