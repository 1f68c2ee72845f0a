package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the application-wide shortcuts. They are checked before a
// key reaches the focused pane.
type KeyMap struct {
	Save, Open, New key.Binding
	Quit            key.Binding
	NextTheme       key.Binding
	ToggleExplorer  key.Binding
	CycleFocus      key.Binding
	Menu            key.Binding
	FileMenu        key.Binding
	EditMenu        key.Binding
	ViewMenu        key.Binding
	HelpMenu        key.Binding
	ExplorerNewFile key.Binding
	ExplorerNewDir  key.Binding
	ExplorerDelete  key.Binding
	ExplorerRename  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save:           key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Open:           key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
		New:            key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
		Quit:           key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		NextTheme:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next theme")),
		ToggleExplorer: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "explorer")),
		CycleFocus:     key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "switch pane")),
		Menu:           key.NewBinding(key.WithKeys("f10"), key.WithHelp("f10", "menu")),
		FileMenu:       key.NewBinding(key.WithKeys("alt+f"), key.WithHelp("alt+f", "file")),
		EditMenu:       key.NewBinding(key.WithKeys("alt+e"), key.WithHelp("alt+e", "edit")),
		ViewMenu:       key.NewBinding(key.WithKeys("alt+v"), key.WithHelp("alt+v", "view")),
		HelpMenu:       key.NewBinding(key.WithKeys("alt+h"), key.WithHelp("alt+h", "help")),

		// Explorer-only bindings, mirroring its context menu.
		ExplorerNewFile: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new file")),
		ExplorerNewDir:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "new folder")),
		ExplorerDelete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		ExplorerRename:  key.NewBinding(key.WithKeys("r", "f2"), key.WithHelp("r", "rename")),
	}
}
