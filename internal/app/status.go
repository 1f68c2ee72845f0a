package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/hydroxite/hydroxite/syntax"
	"github.com/hydroxite/hydroxite/vim"
)

// renderStatus draws the bottom line: mode, file name and message on the
// left, language, cursor and theme on the right.
func (m Model) renderStatus() string {
	st := m.chrome
	var left []string

	message := m.status
	if m.vimEnabled() {
		switch mode := m.machine.Mode(); mode {
		case vim.ModeCommand, vim.ModeSearch:
			message = m.machine.StatusLine()
			left = append(left, st.StatusMode.Render(" "+mode.String()+" "))
		default:
			left = append(left, st.StatusMode.Render(" "+m.machine.StatusLine()+" "))
		}
	}

	name := m.doc.Name()
	if m.doc.Dirty() {
		name += " [+]"
	}
	left = append(left, st.StatusBar.Render(" "+name+" "))
	if message != "" {
		style := st.StatusBar
		if m.statusErr && message == m.status {
			style = st.StatusErr
		}
		left = append(left, style.Render(" "+message))
	}

	cur := m.doc.Buffer().Cursor()
	lang := m.doc.Language()
	if lang == syntax.PlainText {
		lang = "Plain Text"
	}
	right := []string{lang, fmt.Sprintf("Ln %d, Col %d", cur.Row+1, cur.Col+1), m.theme.Name}
	if m.vimEnabled() {
		if p := m.machine.Pending(); p != "" {
			right = append([]string{p}, right...)
		}
	}
	r := st.StatusBar.Render(strings.Join(right, " · ") + " ")

	l := strings.Join(left, "")
	gap := m.width - lipgloss.Width(l) - lipgloss.Width(r)
	if gap < 1 {
		return ansi.Truncate(l, m.width, "…")
	}
	return l + st.StatusBar.Render(strings.Repeat(" ", gap)) + r
}
