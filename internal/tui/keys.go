package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Tab    key.Binding
	Move   key.Binding
	Marker key.Binding
	Toggle key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch list"),
		),
		Move: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "move to other list"),
		),
		Marker: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "click marker"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t", "+", "-"),
			key.WithHelp("t", "show/hide lists"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tab, k.Move, k.Marker, k.Toggle, k.Reload, k.Quit}
}
