// Package tui provides the terminal user interface for huddle.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/tui/theme"
	"github.com/huddlehq/huddle/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorBgToday     lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorToday       lipgloss.Color
	colorWarning     lipgloss.Color

	// Title bar
	TitleStyle lipgloss.Style
	SpanStyle  lipgloss.Style

	// Quick-jump bar
	JumpStyle       lipgloss.Style
	JumpActiveStyle lipgloss.Style
	JumpSepStyle    lipgloss.Style

	// Grid
	DayHeaderStyle   lipgloss.Style
	BorderStyle      lipgloss.Style
	CellStyle        lipgloss.Style // Day in the focused month
	CellMutedStyle   lipgloss.Style // Day outside the focused month
	CellTodayStyle   lipgloss.Style
	CellCursorStyle  lipgloss.Style
	DayNumberStyle   lipgloss.Style
	DayNumberMuted   lipgloss.Style
	DayNumberToday   lipgloss.Style
	MoreStyle        lipgloss.Style
	eventStyles      map[event.Type]lipgloss.Style
	eventMutedStyles map[event.Type]lipgloss.Style

	// Footer
	LegendStyle lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalHintStyle         lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorBgToday = palette.BgToday
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorToday = palette.Today
	s.colorWarning = palette.Warning

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.SpanStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.JumpStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.JumpActiveStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(s.colorAccent).
		Bold(true)

	s.JumpSepStyle = lipgloss.NewStyle().
		Background(s.colorBg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.CellStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgHighlight).
		Align(lipgloss.Left)

	s.CellMutedStyle = s.CellStyle.
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.CellTodayStyle = s.CellStyle.
		Background(s.colorBgToday)

	s.CellCursorStyle = s.CellStyle.
		Foreground(palette.TextOnSelection).
		Background(s.colorBgSelection)

	s.DayNumberStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Bold(true)

	s.DayNumberMuted = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	s.DayNumberToday = lipgloss.NewStyle().
		Foreground(s.colorToday).
		Bold(true).
		Underline(true)

	s.MoreStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Italic(true)

	// Event chips: darker background in the type's color, readable text
	s.eventStyles = map[event.Type]lipgloss.Style{
		event.TypeSpecial:   chip(palette.SpecialBg, palette.TextOnSpecial).Bold(true),
		event.TypeLightning: chip(palette.LightningBg, palette.TextOnLightning),
		event.TypeRegular:   chip(palette.RegularBg, palette.TextOnRegular),
	}
	s.eventMutedStyles = map[event.Type]lipgloss.Style{
		event.TypeSpecial:   chip(palette.SpecialMutedBg, s.colorFgMuted),
		event.TypeLightning: chip(palette.LightningMutedBg, s.colorFgMuted),
		event.TypeRegular:   chip(palette.RegularMutedBg, s.colorFgMuted),
	}

	s.LegendStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	// Modal styles - use high-contrast theme colors
	modal := palette.Modal
	modalBg := modal.Bg
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(56).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg).
		Padding(0, 1).
		Align(lipgloss.Center)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		Background(modalBg)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Panel).
		Padding(0, 2)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight).
		Bold(true).
		Padding(0, 2)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		Padding(0, 1)

	return s
}

func chip(bg, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(fg)
}

// EventStyle returns the chip style for an event type. muted is used for
// days outside the focused month.
func (s *Styles) EventStyle(t event.Type, muted bool) lipgloss.Style {
	styles := s.eventStyles
	if muted {
		styles = s.eventMutedStyles
	}
	if style, ok := styles[t]; ok {
		return style
	}
	return styles[event.TypeRegular]
}

func (s *Styles) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		Frame:        s.ModalStyle,
		Header:       s.ModalHeaderStyle,
		Title:        s.ModalTitleStyle,
		Body:         s.ModalBodyStyle,
		Footer:       s.ModalFooterStyle,
		Button:       s.ModalButtonStyle,
		ButtonActive: s.ModalButtonActiveStyle,
	}
}
