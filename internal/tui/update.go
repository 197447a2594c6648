package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/huddlehq/huddle/internal/calendar"
	"github.com/huddlehq/huddle/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case commands.WindowLoadedMsg:
		// A slower load for a window we already left is dropped.
		if !msg.Anchor.Equal(m.nav.Anchor()) {
			LogWindowLoaded(msg.Anchor, len(msg.Events), true)
			return m, nil
		}
		LogWindowLoaded(msg.Anchor, len(msg.Events), false)
		m.events = msg.Events
		m.recurring = msg.Recurring
		m.loading = false
		m.placeEvents()
		return m, nil

	case commands.AgendaCopiedMsg:
		return m, commands.Status(fmt.Sprintf("Copied %d events to clipboard", msg.Events))

	case commands.ErrMsg:
		LogError("update", msg.Err)
		m.err = msg.Err
		m.loading = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = m.now().Add(3 * time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showDetail {
		return m.handleDetailKeys(msg)
	}
	if m.help.ShowAll {
		if key.Matches(msg, m.keys.Help, m.keys.Close) {
			m.help.ShowAll = false
		}
		return m, nil
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys on the calendar grid.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Prev):
		m.nav.Prev()
		LogNavigation("prev", m.nav.Anchor())
		return m.reload()

	case key.Matches(msg, m.keys.Next):
		if !m.nav.Next() {
			return m, commands.Status("Already at the furthest month")
		}
		LogNavigation("next", m.nav.Anchor())
		return m.reload()

	case key.Matches(msg, m.keys.Today):
		return m.jump(0)

	case key.Matches(msg, m.keys.Jump):
		i, _ := jumpIndex(msg.String())
		return m.jump(i)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-calendar.DaysPerWeek)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(calendar.DaysPerWeek)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Open):
		m.showDetail = true

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyAgenda()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = true
	}

	return m, nil
}

// handleDetailKeys handles keys while the day detail modal is open.
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.showDetail = false
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyAgenda()
	}
	return m, nil
}

func (m Model) jump(i int) (tea.Model, tea.Cmd) {
	if err := m.nav.Jump(i); err != nil {
		if errors.Is(err, calendar.ErrInvalidJump) {
			return m, commands.Status(fmt.Sprintf("No quick jump %d", i+1))
		}
		return m, func() tea.Msg { return commands.ErrMsg{Err: err} }
	}
	LogNavigation(fmt.Sprintf("jump %d", i+1), m.nav.Anchor())
	return m.reload()
}

// reload clears the grid for the new window and loads its events.
func (m Model) reload() (tea.Model, tea.Cmd) {
	m.events = nil
	m.placeEvents()
	m.cursor = m.todayIndex()
	if m.repo == nil {
		return m, nil
	}
	m.loading = true
	return m, commands.LoadWindow(m.repo, m.nav.Window())
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= calendar.WindowDays {
		return
	}
	m.cursor = next
}

func (m Model) copyAgenda() tea.Cmd {
	placed := 0
	for _, c := range m.cells {
		placed += len(c.Events)
	}
	text := calendar.Agenda(m.nav.Window(), m.cells)
	return commands.CopyAgenda(m.copy, text, placed)
}
