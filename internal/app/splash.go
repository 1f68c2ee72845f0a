package app

import (
	"github.com/charmbracelet/lipgloss"
)

type splashItem struct {
	label string
	key   string
	cmd   command
}

// The order matches the single-letter shortcuts in updateSplash.
var splashItems = []splashItem{
	{label: "Vim mode", key: "v", cmd: cmdToggleVim},
	{label: "New File", key: "n", cmd: cmdNew},
	{label: "Open File", key: "o", cmd: cmdOpen},
	{label: "Open Folder", key: "f", cmd: cmdOpenFolder},
	{label: "Quit", key: "q", cmd: cmdQuit},
}

func (m Model) renderSplash() string {
	st := m.chrome
	rows := []string{
		st.Title.Render("Hydroxite"),
		st.Muted.Render("a terminal text editor"),
		"",
	}
	for i, it := range splashItems {
		label := it.label
		if it.cmd == cmdToggleVim {
			box := "[ ] "
			if m.vimEnabled() {
				box = "[x] "
			}
			label = box + label
		}
		line := label + "  " + st.Muted.Render(it.key)
		if i == m.splashCursor {
			line = st.Accent.Render("› ") + st.Accent.Bold(true).Render(label) + "  " + st.Muted.Render(it.key)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", st.Muted.Render("↑/↓ select · enter confirm"))

	box := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
