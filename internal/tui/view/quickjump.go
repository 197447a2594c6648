package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// QuickJumpStyles groups the styles of the quick-jump bar.
type QuickJumpStyles struct {
	Item   lipgloss.Style
	Active lipgloss.Style
	Sep    lipgloss.Style
}

// RenderQuickJumps renders the numbered jump options. active is the index of
// the option matching the current window, or -1.
func RenderQuickJumps(labels []string, active int, styles QuickJumpStyles) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := styles.Item
		if i == active {
			style = styles.Active
		}
		parts = append(parts, style.Render("["+strconv.Itoa(i+1)+"] "+label))
	}
	return strings.Join(parts, styles.Sep.Render("  "))
}
