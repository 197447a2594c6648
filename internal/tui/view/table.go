package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableContent holds the rendered cells of the grid, one row per week.
type TableContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

// TableViewState holds data needed to render the calendar grid.
type TableViewState struct {
	InnerW       int
	GridH        int
	Headers      []string
	HeaderStyles []lipgloss.Style
	Content      TableContent
	BorderStyle  lipgloss.Style
	VAlign       lipgloss.Position
	Bg           lipgloss.Color
	Render       bool
}

// styleAt returns the style of a header (row == table.HeaderRow) or body cell.
// Cells without a configured style render unstyled.
func (s TableViewState) styleAt(row, col int) lipgloss.Style {
	var styles []lipgloss.Style
	switch {
	case row == table.HeaderRow:
		styles = s.HeaderStyles
	case row >= 0 && row < len(s.Content.CellStyles):
		styles = s.Content.CellStyles[row]
	}
	if col < 0 || col >= len(styles) {
		return lipgloss.NewStyle()
	}
	return styles[col]
}

// RenderTable draws the weeks as a bordered lipgloss table with a rule
// between rows, so each week reads as its own band.
func RenderTable(state TableViewState) string {
	if !state.Render || state.GridH <= 0 {
		return ""
	}

	t := table.New().
		Headers(state.Headers...).
		Rows(state.Content.Rows...).
		Width(max(state.InnerW-2, 0)).
		Border(lipgloss.RoundedBorder()).
		BorderRow(true).
		BorderStyle(state.BorderStyle).
		StyleFunc(state.styleAt)

	return PlaceBox(state.InnerW, state.GridH, state.VAlign, t.Render(), state.Bg)
}
