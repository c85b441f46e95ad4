package tui

import "github.com/charmbracelet/bubbles/key"

// ExploreKeyMap holds the explorer bindings. Letter keys go to the search
// input, so movement uses arrows and control chords.
type ExploreKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Book    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var DefaultExploreKeyMap = ExploreKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Book: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "book"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "n"),
		key.WithHelp("esc", "cancel"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
