// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles of a modal frame and its buttons.
type ModalStyles struct {
	Frame        lipgloss.Style
	Header       lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Footer       lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
}

// RenderModalFrame stacks the title bar, body and footer inside the frame.
// Empty sections are skipped.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	sections := []string{styles.Header.Render(styles.Title.Render(title))}
	if body != "" {
		sections = append(sections, body)
	}
	if footer != "" {
		sections = append(sections, styles.Footer.Render(footer))
	}
	return styles.Frame.Render(strings.Join(sections, "\n\n"))
}

// RenderModalButtons renders a row of key hints; the first is the default action.
func RenderModalButtons(styles ModalStyles, labels ...string) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		style := styles.Button
		if i == 0 {
			style = styles.ButtonActive
		}
		parts[i] = style.Render(label)
	}
	return strings.Join(parts, styles.Body.Render(" "))
}
