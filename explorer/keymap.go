package explorer

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the tree's key bindings.
type KeyMap struct {
	Up, Down       key.Binding
	Top, Bottom    key.Binding
	Expand         key.Binding
	Collapse       key.Binding
	Activate       key.Binding
	Refresh        key.Binding
	ToggleHidden   key.Binding
	PageUp, PageDn key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:          key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "first")),
		Bottom:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last")),
		Expand:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
		Collapse:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
		Activate:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Refresh:      key.NewBinding(key.WithKeys("f5", "R"), key.WithHelp("R", "refresh")),
		ToggleHidden: key.NewBinding(key.WithKeys("."), key.WithHelp(".", "hidden files")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDn:       key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	}
}
