package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	var screen string
	if m.splash {
		screen = m.renderSplash()
	} else {
		screen = lipgloss.JoinVertical(lipgloss.Left,
			renderMenuBar(m.chrome, m.menu, m.width),
			m.renderBody(),
			m.renderStatus(),
		)
		if m.menu.active() {
			items := renderItems(m.chrome, menus[m.menu.open].items, m.menu.selected, m.checked)
			screen = overlay(screen, items, titleX(m.menu.open), 1)
		}
	}

	if m.dialog.open() {
		fg := m.dialog.view(m.chrome)
		x, y := center(fg, m.width, m.height)
		screen = overlay(screen, fg, x, y)
	}
	return screen
}

func (m Model) renderBody() string {
	h := m.bodyHeight()
	if h == 0 {
		return ""
	}
	if !m.showExplorer || m.explorerWidth() == 0 {
		return m.editor.View()
	}
	sep := m.chrome.Border.Render(strings.TrimSuffix(strings.Repeat("│\n", h), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, m.explorer.View(), sep, m.editor.View())
}

// checked reports View menu toggles that are on.
func (m Model) checked(c command) bool {
	switch c {
	case cmdToggleVim:
		return m.vimEnabled()
	case cmdToggleLineNumbers:
		return m.editor.ShowLineNums()
	case cmdToggleExplorer:
		return m.showExplorer
	}
	return false
}
