// Package keymap defines the dashboard key bindings.
package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the full set of dashboard bindings. It implements help.KeyMap.
type KeyMap struct {
	Speed  [3]key.Binding
	Toggle key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// Default returns the default bindings.
func Default() KeyMap {
	return KeyMap{
		Speed: [3]key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "panel 1 speed")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "panel 2 speed")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "panel 3 speed")),
		},
		Toggle: key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "stop/start")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Speed[0], k.Toggle, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Speed[0], k.Speed[1], k.Speed[2]},
		{k.Toggle, k.Reload},
		{k.Help, k.Quit},
	}
}
