package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global key bindings
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Connect key.Binding
	Preview key.Binding
	Copy    key.Binding
	Dismiss key.Binding
}

// DefaultKeyMap returns the default global key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Connect: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "connect"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "focus preview"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy preview"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "dismiss"),
		),
	}
}

// ShortHelp returns key bindings for the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Connect, k.Preview, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Connect, k.Preview, k.Copy},
		{k.Help, k.Dismiss, k.Quit},
	}
}
