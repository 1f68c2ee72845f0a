package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hydroxite/hydroxite/editor"
	"github.com/hydroxite/hydroxite/explorer"
)

// Chrome styles the application frame around the panes.
type Chrome struct {
	App        lipgloss.Style
	MenuBar    lipgloss.Style
	MenuItem   lipgloss.Style
	MenuActive lipgloss.Style
	MenuKey    lipgloss.Style
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusErr  lipgloss.Style
	Border     lipgloss.Style
	Dialog     lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Accent     lipgloss.Style
	Input      lipgloss.Style
}

func color(c string) lipgloss.Color { return lipgloss.Color(c) }

// Editor returns the editor pane style for t.
func (t Theme) Editor() editor.Style {
	base := lipgloss.NewStyle().Background(color(t.Background))
	gutter := base.Foreground(color(t.Muted))
	return editor.Style{
		Pane:          base,
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: base.Foreground(color(t.Accent)).Bold(true),
		Text:          base.Foreground(color(t.Foreground)),
		Selection:     lipgloss.NewStyle().Background(color(t.Selection)).Foreground(color(t.Foreground)),
		Cursor:        lipgloss.NewStyle().Background(color(t.Cursor)).Foreground(color(t.Background)),
	}
}

// Explorer returns the file tree style for t.
func (t Theme) Explorer() explorer.Style {
	return explorer.Style{
		Dir:             lipgloss.NewStyle().Foreground(color(t.Directory)).Bold(true),
		File:            lipgloss.NewStyle().Foreground(color(t.Foreground)),
		Icon:            lipgloss.NewStyle().Foreground(color(t.Muted)),
		Selected:        lipgloss.NewStyle().Background(color(t.Accent)).Foreground(color(t.Background)),
		SelectedBlurred: lipgloss.NewStyle().Background(color(t.Selection)).Foreground(color(t.Foreground)),
		Empty:           lipgloss.NewStyle().Foreground(color(t.Muted)).Italic(true),
	}
}

// Chrome returns the frame styles for t.
func (t Theme) Chrome() Chrome {
	menu := lipgloss.NewStyle().Background(color(t.MenuBg)).Foreground(color(t.MenuFg))
	status := lipgloss.NewStyle().Background(color(t.StatusBg)).Foreground(color(t.StatusFg))
	return Chrome{
		App:        lipgloss.NewStyle().Background(color(t.Background)).Foreground(color(t.Foreground)),
		MenuBar:    menu,
		MenuItem:   menu.Padding(0, 1),
		MenuActive: menu.Padding(0, 1).Background(color(t.Accent)).Foreground(color(t.Background)),
		MenuKey:    menu.Foreground(color(t.Muted)),
		StatusBar:  status,
		StatusMode: status.Foreground(color(t.Accent)).Bold(true),
		StatusErr:  status.Foreground(color(t.Error)).Bold(true),
		Border:     lipgloss.NewStyle().Foreground(color(t.Muted)),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(t.Accent)).
			Padding(1, 2),
		Title:  lipgloss.NewStyle().Foreground(color(t.Accent)).Bold(true),
		Muted:  lipgloss.NewStyle().Foreground(color(t.Muted)),
		Accent: lipgloss.NewStyle().Foreground(color(t.Accent)),
		Input:  lipgloss.NewStyle().Foreground(color(t.Foreground)),
	}
}
