package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox places content in a w×h box, aligned left and vertically by
// vAlign, with every gap painted bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content, lipgloss.WithWhitespaceBackground(bg))
	return Fill(placed, w, h, bg)
}

// Fill pads each line of content to width and the block to height with bg.
// Lines already wider than width are left alone; extra lines are dropped.
func Fill(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	pad := lipgloss.NewStyle().Background(bg)
	lines := fitHeight(strings.Split(content, "\n"), height)
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + pad.Render(strings.Repeat(" ", gap))
		}
	}
	return strings.Join(lines, "\n")
}

func fitHeight(lines []string, height int) []string {
	if len(lines) >= height {
		return lines[:height]
	}
	return append(lines, make([]string, height-len(lines))...)
}

// Overlay centers box over base in a width×height screen. Box lines are
// squared off to the widest line and keep bg after every ANSI reset, so
// styled spans inside the box do not punch holes into its background.
func Overlay(base, box string, width, height int, bg lipgloss.Color) string {
	rows := strings.Split(box, "\n")
	boxW := 0
	for _, r := range rows {
		boxW = max(boxW, lipgloss.Width(r))
	}
	if boxW == 0 {
		return base
	}
	boxW = min(boxW, width)
	top := max((height-len(rows))/2, 0)
	left := max((width-boxW)/2, 0)

	seq := backgroundSeq(bg)
	pad := lipgloss.NewStyle().Background(bg)
	screen := strings.Split(Fill(base, width, height, ""), "\n")
	for i, r := range rows {
		y := top + i
		if y >= len(screen) {
			break
		}
		switch w := lipgloss.Width(r); {
		case w > boxW:
			r = ansi.Cut(r, 0, boxW)
		case w < boxW:
			r += pad.Render(strings.Repeat(" ", boxW-w))
		}
		r = keepBackground(r, seq) + ansi.ResetStyle
		screen[y] = ansi.Cut(screen[y], 0, left) + r + ansi.Cut(screen[y], left+boxW, width)
	}
	return strings.Join(screen, "\n")
}

// keepBackground re-applies seq after each sequence that clears the background.
func keepBackground(line, seq string) string {
	if seq == "" {
		return line
	}
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		line = strings.ReplaceAll(line, reset, reset+seq)
	}
	return line
}

func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
