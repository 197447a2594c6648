package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW      int
	FooterH     int
	LegendText  string
	StatusText  string
	HelpText    string
	LegendStyle lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	VAlign      lipgloss.Position
	Bg          lipgloss.Color
}

// RenderFooter renders the legend, status and help lines. A footer shorter
// than three lines drops the legend.
func RenderFooter(state FooterViewState) string {
	if state.FooterH <= 0 {
		return ""
	}

	status := footerLine(state.InnerW, state.StatusStyle, state.StatusText)
	help := footerLine(state.InnerW, state.HelpStyle, state.HelpText)

	s := status + "\n" + help
	if state.FooterH >= 3 {
		s = footerLine(state.InnerW, state.LegendStyle, state.LegendText) + "\n" + s
	}
	return PlaceBox(state.InnerW, state.FooterH, state.VAlign, s, state.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return style.Render(content)
}
