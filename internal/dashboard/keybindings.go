package dashboard

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dashboard key bindings. Only quit is semantically
// meaningful; every other key is a no-op.
type keyMap struct {
	Quit key.Binding
}

// defaultKeyMap returns the standard bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}
