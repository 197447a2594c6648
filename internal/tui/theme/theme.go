// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/huddlehq/huddle/internal/event"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when none is configured.
const DefaultName = "mocha"

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // In-month day cells
	BgSelection string `toml:"bg_selection"` // Cursor cell
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Days outside the focused month
	Accent      string `toml:"accent"`       // Title, borders, active quick jump
	Special     string `toml:"special"`      // Special events
	Lightning   string `toml:"lightning"`    // Lightning talks
	Regular     string `toml:"regular"`      // Regular meetups
	Today       string `toml:"today"`        // Today's day number
	Warning     string `toml:"warning"`      // Status warnings

	// Modal palette (can override base theme values)
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// TypeColor returns the hex color for an event type.
func (t *Theme) TypeColor(typ event.Type) string {
	switch typ {
	case event.TypeSpecial:
		return t.Special
	case event.TypeLightning:
		return t.Lightning
	default:
		return t.Regular
	}
}

// ModalPalette is the set of colors a modal is drawn with.
type ModalPalette struct {
	BaseBg      string
	ModalBorder string
	TextPrimary string
	TextMuted   string
	Highlight   string
}

// Modal returns the modal colors. Load has already filled every empty modal
// field from the base colors.
func (t *Theme) Modal() ModalPalette {
	return ModalPalette{
		BaseBg:      coalesce(t.BaseBg, t.BgHighlight, t.Bg),
		ModalBorder: coalesce(t.ModalBorder, t.Accent),
		TextPrimary: coalesce(t.TextPrimary, t.Fg),
		TextMuted:   coalesce(t.TextMuted, t.FgMuted),
		Highlight:   coalesce(t.Highlight, t.BgSelection, t.Accent),
	}
}

// applyDefaults fills optional colors from the base palette.
func (t *Theme) applyDefaults() {
	t.Today = coalesce(t.Today, t.Accent)
	m := t.Modal()
	t.BaseBg, t.ModalBorder, t.TextPrimary, t.TextMuted, t.Highlight =
		m.BaseBg, m.ModalBorder, m.TextPrimary, m.TextMuted, m.Highlight
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}

// IsAvailable reports whether a theme name is available, ignoring case.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
