package editor

import "github.com/hydroxite/hydroxite/vim"

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Rendering options.
	ShowLineNums bool
	Style        Style
	// TabWidth is the tab stop in cells. Default: 4.
	TabWidth int

	// ReadOnly ignores every mutating key, including Vim commands.
	ReadOnly bool

	// KeyMap overrides DefaultKeyMap when any binding is set.
	KeyMap KeyMap

	// Highlighter is called for visible lines only.
	Highlighter Highlighter

	// Clipboard backs copy/cut/paste. Nil disables them.
	Clipboard Clipboard

	// AutoPairs inserts the closing bracket or quote when an opener is typed.
	AutoPairs bool

	// Vim, when set, routes keys through a modal state machine first.
	Vim *vim.Machine

	// OnChange is called after any key or mouse update that changed the
	// buffer version.
	OnChange func(ChangeEvent)

	// Forwarded to buffer.Options.
	HistoryLimit int
}

// Clipboard is the host clipboard. Read and write failures are ignored.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}
