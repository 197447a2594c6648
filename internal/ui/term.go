package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/huddlehq/huddle/internal/event"
)

// Color definitions for consistent styling across the UI.
var (
	// Special events stand out
	colorSpecial = color.New(color.FgMagenta, color.Bold)

	// Lightning talks: short and bright
	colorLightning = color.New(color.FgYellow)

	// Regular meetups: calm
	colorRegular = color.New(color.FgCyan)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Today's date in the grid
	colorToday = color.New(color.FgGreen, color.Bold)

	// Muted: for secondary information and out-of-month days
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatType colors s with the color of event type t.
func formatType(t event.Type, s string) string {
	switch t {
	case event.TypeSpecial:
		return colorSpecial.Sprint(s)
	case event.TypeLightning:
		return colorLightning.Sprint(s)
	default:
		return colorRegular.Sprint(s)
	}
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatToday formats today's day number.
func formatToday(s string) string {
	return colorToday.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// truncate shortens s to width display columns.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// padRight pads s with spaces to width display columns.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
