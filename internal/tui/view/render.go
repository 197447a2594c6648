package view

import "github.com/charmbracelet/lipgloss"

// ViewState is the composed screen: the base content and an optional modal
// drawn over its center.
type ViewState struct {
	Width            int
	Height           int
	BaseContent      string
	ModalContent     string
	ShowModal        bool
	ModalBg          lipgloss.Color
	EmptyPlaceholder string
}

// Render returns the final frame. Until the terminal size is known only the
// placeholder is shown.
func Render(state ViewState) string {
	switch {
	case state.Width == 0 || state.Height == 0:
		if state.EmptyPlaceholder == "" {
			return "Loading..."
		}
		return state.EmptyPlaceholder
	case state.ShowModal && state.ModalContent != "":
		return Overlay(state.BaseContent, state.ModalContent, state.Width, state.Height, state.ModalBg)
	default:
		return state.BaseContent
	}
}
