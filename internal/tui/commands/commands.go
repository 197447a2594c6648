// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/huddlehq/huddle/internal/calendar"
	"github.com/huddlehq/huddle/internal/event"
)

// ErrNoRepository is returned when a load is requested without storage.
var ErrNoRepository = errors.New("no event repository configured")

// WindowLoadedMsg is sent when the events of a window are loaded.
type WindowLoadedMsg struct {
	Anchor    time.Time // window start the load was issued for
	Events    []calendar.EventSummary
	Recurring []*event.Event
}

// AgendaCopiedMsg is sent after the window agenda reached the clipboard.
type AgendaCopiedMsg struct {
	Events int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadWindow loads the events starting inside w, plus every recurring event
// so the day detail can list their occurrences.
func LoadWindow(repo event.Repository, w calendar.Window) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: ErrNoRepository}
		}
		ctx := context.Background()

		events, err := repo.ListEventsByDateRange(ctx, w.Start, w.End())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading events: %w", err)}
		}

		recurring, err := repo.ListRecurringEvents(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading recurring events: %w", err)}
		}

		return WindowLoadedMsg{
			Anchor:    w.Start,
			Events:    calendar.SummarizeAll(events),
			Recurring: recurring,
		}
	}
}

// CopyAgenda writes text to the clipboard with copyFn.
func CopyAgenda(copyFn func(string) error, text string, events int) tea.Cmd {
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return AgendaCopiedMsg{Events: events}
	}
}

// Status shows msg in the status line.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}
