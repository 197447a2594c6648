package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the key bindings of the calendar view.
type keyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Today key.Binding
	Jump  key.Binding
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Open  key.Binding
	Close key.Binding
	Copy  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("h", "pgup"),
			key.WithHelp("h", "prev 5 weeks"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "pgdown"),
			key.WithHelp("l", "next 5 weeks"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "this month"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "jump"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next day"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "day detail"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "enter", "q"),
			key.WithHelp("esc", "close"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy agenda"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Jump, k.Open, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today, k.Jump},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.Close, k.Copy},
		{k.Help, k.Quit},
	}
}

// jumpIndex maps a quick-jump key to its zero-based option.
func jumpIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '6' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
