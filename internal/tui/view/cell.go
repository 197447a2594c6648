package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CellEvent is one event line inside a day cell.
type CellEvent struct {
	Title string
	Style lipgloss.Style
}

// CellModel describes a day cell. Hidden counts events that did not fit.
type CellModel struct {
	Day    string
	Events []CellEvent
	Hidden int
	Width  int
	Lines  int
}

// CellStyles groups the styles used inside a cell.
type CellStyles struct {
	DayStyle  lipgloss.Style
	MoreStyle lipgloss.Style
}

// RenderCell renders a cell as exactly Lines lines: the day number, then one
// line per event, then a "+N more" marker when events were cut.
func RenderCell(c CellModel, styles CellStyles) string {
	if c.Lines <= 0 {
		c.Lines = 1
	}
	lines := make([]string, 0, c.Lines)
	lines = append(lines, styles.DayStyle.Render(c.Day))

	room := c.Lines - 1
	events, hidden := c.Events, c.Hidden
	if len(events) > room || (hidden > 0 && len(events) == room) {
		// the last line becomes the "+N more" marker
		keep := room - 1
		if keep < 0 {
			keep = 0
		}
		if keep > len(events) {
			keep = len(events)
		}
		hidden += len(events) - keep
		events = events[:keep]
	}

	for _, e := range events {
		lines = append(lines, e.Style.Render(Truncate(e.Title, c.Width)))
	}
	if hidden > 0 && len(lines) < c.Lines {
		lines = append(lines, styles.MoreStyle.Render(Truncate(fmt.Sprintf("+%d more", hidden), c.Width)))
	}
	for len(lines) < c.Lines {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
