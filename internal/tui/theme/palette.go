// Package theme provides color themes for the TUI.
package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	BgToday     lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	Special   lipgloss.Color
	Lightning lipgloss.Color
	Regular   lipgloss.Color

	// Event chip backgrounds inside the focused month and outside it.
	SpecialBg        lipgloss.Color
	LightningBg      lipgloss.Color
	RegularBg        lipgloss.Color
	SpecialMutedBg   lipgloss.Color
	LightningMutedBg lipgloss.Color
	RegularMutedBg   lipgloss.Color

	TextOnAccent    lipgloss.Color
	TextOnSelection lipgloss.Color
	TextOnSpecial   lipgloss.Color
	TextOnLightning lipgloss.Color
	TextOnRegular   lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg          lipgloss.Color
	Border      lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Highlight   lipgloss.AdaptiveColor
	Panel       lipgloss.AdaptiveColor
	ReverseText lipgloss.AdaptiveColor
}

// NewPalette derives a Palette from the provided Theme. A nil theme uses
// the default.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := isLightTheme(t.Bg)
	special := newChip(t.Special, t, light)
	lightning := newChip(t.Lightning, t, light)
	regular := newChip(t.Regular, t, light)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		BgToday:     lipgloss.Color(alternateShade(coalesce(t.BgHighlight, t.Bg), light)),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Today:       lipgloss.Color(t.Today),
		Warning:     lipgloss.Color(t.Warning),

		Special:   lipgloss.Color(t.Special),
		Lightning: lipgloss.Color(t.Lightning),
		Regular:   lipgloss.Color(t.Regular),

		SpecialBg:        special.bg,
		LightningBg:      lightning.bg,
		RegularBg:        regular.bg,
		SpecialMutedBg:   special.muted,
		LightningMutedBg: lightning.muted,
		RegularMutedBg:   regular.muted,

		TextOnAccent:    lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnSelection: lipgloss.Color(chooseTextColor(t.BgSelection, t.Bg, t.Fg)),
		TextOnSpecial:   special.text,
		TextOnLightning: lightning.text,
		TextOnRegular:   regular.text,

		Modal: newModalColors(t),
	}
}

// chip is the background pair and text color of one event type.
type chip struct {
	bg, muted, text lipgloss.Color
}

// newChip shades accent for use as a cell background. Dark themes darken the
// accent; light themes wash it out towards the background.
func newChip(accent string, t *Theme, light bool) chip {
	var bg, muted string
	if light {
		bg = blendColors(accent, t.Bg, 0.75)
		muted = blendColors(accent, t.Bg, 0.88)
	} else {
		bg = darkenColor(accent)
		muted = muteColor(accent)
	}
	return chip{
		bg:    lipgloss.Color(bg),
		muted: lipgloss.Color(muted),
		text:  lipgloss.Color(chooseTextColor(bg, t.Bg, t.Fg)),
	}
}

func newModalColors(t *Theme) ModalColors {
	m := t.Modal()
	bg := coalesce(m.BaseBg, t.BgHighlight, t.Bg)
	text := coalesce(m.TextPrimary, t.Fg)
	return ModalColors{
		Bg:          lipgloss.Color(bg),
		Border:      adaptiveColor(coalesce(m.ModalBorder, t.Accent)),
		Text:        adaptiveColor(text),
		Muted:       adaptiveColor(coalesce(m.TextMuted, t.FgMuted)),
		Highlight:   adaptiveColor(coalesce(m.Highlight, t.BgSelection, t.Accent)),
		Panel:       adaptiveColor(coalesce(t.BgSelection, t.BgHighlight, t.Bg)),
		ReverseText: lipgloss.AdaptiveColor{Dark: bg, Light: text},
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// darkenColor halves each channel of hex, keeping channels above 40 so chips
// stay visible on dark backgrounds.
func darkenColor(hex string) string {
	return scaleColor(hex, 0.50, 40)
}

// muteColor is a heavier darkenColor for days outside the focused month.
func muteColor(hex string) string {
	return scaleColor(hex, 0.30, 30)
}

// scaleColor multiplies every channel by factor with a floor on the 0-255
// scale. Unparseable input is returned unchanged.
func scaleColor(hex string, factor float64, floor int) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	low := float64(floor) / 255
	ch := func(v float64) float64 { return math.Max(v*factor, low) }
	return colorful.Color{R: ch(c.R), G: ch(c.G), B: ch(c.B)}.Hex()
}

// alternateShade lifts a color slightly off its surroundings.
func alternateShade(hex string, light bool) string {
	if light {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.30)
}

func adaptiveColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: hex, Light: hex}
}

// chooseTextColor picks whichever of the two text colors contrasts more with bg.
func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

// contrastRatio is the WCAG contrast ratio of two colors, from 1 to 21.
func contrastRatio(a, b string) float64 {
	hi, lo := relativeLuminance(a), relativeLuminance(b)
	if hi < lo {
		hi, lo = lo, hi
	}
	return (hi + 0.05) / (lo + 0.05)
}

// relativeLuminance is the WCAG luminance of hex, or 0 when it does not parse.
func relativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// blendColors mixes ratio of b into a in RGB space. ratio is clamped to
// [0, 1]; a is returned as is when either color does not parse.
func blendColors(a, b string, ratio float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendRgb(cb, math.Min(math.Max(ratio, 0), 1)).Hex()
}
