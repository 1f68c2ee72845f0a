package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering. Pane is applied to the whole
// viewport, so its background also fills rows past the end of the text.
type Style struct {
	Pane lipgloss.Style

	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style
}

// DefaultStyle uses the terminal's colors with 256-color accents.
func DefaultStyle() Style {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Pane:          lipgloss.NewStyle(),
		Gutter:        dim,
		LineNum:       dim,
		LineNumActive: dim.Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
	}
}
