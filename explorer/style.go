package explorer

import "github.com/charmbracelet/lipgloss"

// Style controls the tree's rendering.
type Style struct {
	Dir  lipgloss.Style
	File lipgloss.Style
	Icon lipgloss.Style

	// Selected styles the selected row while focused; SelectedBlurred
	// while another pane has focus.
	Selected        lipgloss.Style
	SelectedBlurred lipgloss.Style

	Empty lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Dir:             lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true),
		File:            lipgloss.NewStyle(),
		Icon:            lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Selected:        lipgloss.NewStyle().Reverse(true),
		SelectedBlurred: lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Empty:           lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
	}
}
