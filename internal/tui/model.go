package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/huddlehq/huddle/internal/calendar"
	"github.com/huddlehq/huddle/internal/config"
	"github.com/huddlehq/huddle/internal/db"
	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/tui/commands"
	"github.com/huddlehq/huddle/internal/tui/theme"
)

// Model is the main TUI model: a 35-day calendar window with quick jumps.
type Model struct {
	// Dependencies
	repo   event.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	keys keyMap
	help help.Model

	// Window state
	nav       *calendar.Navigator
	events    []calendar.EventSummary
	recurring []*event.Event
	cells     [calendar.WindowDays]calendar.Cell
	hidden    [calendar.WindowDays]int // events dropped from each cell
	cursor    int                      // index into the window's days
	loading   bool

	showDetail bool

	now  func() time.Time
	copy func(string) error

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow replaces the clock used for the initial window and "today".
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithClipboard replaces the clipboard writer used by the copy key.
func WithClipboard(copyFn func(string) error) ModelOption {
	return func(m *Model) {
		m.copy = copyFn
	}
}

// New creates a new TUI model.
func New(repo event.Repository, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to the default on error
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle.Bold(true)
	h.Styles.ShortDesc = styles.LegendStyle
	h.Styles.ShortSeparator = styles.LegendStyle
	h.Styles.FullKey = styles.HelpStyle.Bold(true)
	h.Styles.FullDesc = styles.LegendStyle
	h.Styles.FullSeparator = styles.LegendStyle

	m := Model{
		repo:    repo,
		config:  cfg,
		theme:   t,
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    h,
		now:     time.Now,
		copy:    clipboard.WriteAll,
		loading: repo != nil,
	}

	for _, opt := range opts {
		opt(&m)
	}

	m.nav = calendar.NewNavigator(m.now())
	m.placeEvents()
	m.cursor = m.todayIndex()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return commands.LoadWindow(m.repo, m.nav.Window())
}

// Run starts the TUI.
func Run(repo event.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging. A nil repo is
// opened from the configured database path and closed on exit.
func RunWithDebug(repo event.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	if repo == nil {
		opened, err := openRepo(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		defer opened.Close()
		repo = opened
	}

	p := tea.NewProgram(New(repo, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func openRepo(path string) (*db.SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return repo, nil
}

// placeEvents rebuilds the grid cells from the loaded events.
func (m *Model) placeEvents() {
	w := m.nav.Window()
	m.cells = calendar.PlaceEventsLimit(w, m.events, m.config.Calendar.MaxEventsPerCell)
	m.hidden = [calendar.WindowDays]int{}
	if m.config.Calendar.ShowHiddenCount {
		m.hidden = calendar.Overflow(w, m.events, m.cells)
	}
}

// todayIndex returns the cell holding today, or 0 when today is outside the window.
func (m Model) todayIndex() int {
	if i, ok := m.nav.Window().Index(m.now()); ok {
		return i
	}
	return 0
}

// activeJump returns the quick jump matching the current anchor, or -1.
func (m Model) activeJump() int {
	for i, j := range m.nav.QuickJumps() {
		if j.Anchor.Equal(m.nav.Anchor()) {
			return i
		}
	}
	return -1
}
