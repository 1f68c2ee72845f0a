package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hydroxite/hydroxite/theme"
)

type menuItem struct {
	label    string
	shortcut string
	cmd      command
}

type menu struct {
	title string
	items []menuItem
}

var menus = []menu{
	{title: "File", items: []menuItem{
		{label: "New File", cmd: cmdNewFile},
		{label: "New Folder", cmd: cmdNewFolder},
		{label: "New", shortcut: "ctrl+n", cmd: cmdNew},
		{label: "Open", shortcut: "ctrl+o", cmd: cmdOpen},
		{label: "Open Folder", cmd: cmdOpenFolder},
		{label: "Save", shortcut: "ctrl+s", cmd: cmdSave},
		{label: "Save As", cmd: cmdSaveAs},
		{label: "Exit", shortcut: "ctrl+q", cmd: cmdQuit},
	}},
	{title: "Edit", items: []menuItem{
		{label: "Undo", shortcut: "ctrl+z", cmd: cmdUndo},
		{label: "Redo", shortcut: "ctrl+y", cmd: cmdRedo},
		{label: "Cut", shortcut: "ctrl+x", cmd: cmdCut},
		{label: "Copy", shortcut: "ctrl+c", cmd: cmdCopy},
		{label: "Paste", shortcut: "ctrl+v", cmd: cmdPaste},
		{label: "Select All", cmd: cmdSelectAll},
	}},
	{title: "View", items: []menuItem{
		{label: "Vim Mode", cmd: cmdToggleVim},
		{label: "Line Numbers", cmd: cmdToggleLineNumbers},
		{label: "Explorer", shortcut: "ctrl+b", cmd: cmdToggleExplorer},
		{label: "Next Theme", shortcut: "ctrl+t", cmd: cmdNextTheme},
	}},
	{title: "Help", items: []menuItem{
		{label: "About", cmd: cmdAbout},
	}},
}

var contextItems = []menuItem{
	{label: "New File", shortcut: "a", cmd: cmdNewFile},
	{label: "New Folder", shortcut: "A", cmd: cmdNewFolder},
	{label: "Rename", shortcut: "r", cmd: cmdRename},
	{label: "Delete", shortcut: "d", cmd: cmdDelete},
}

// menuState tracks the open menu. open is -1 when the bar is inactive.
type menuState struct {
	open     int
	selected int
}

func (s menuState) active() bool { return s.open >= 0 }

// titleX returns the column where menu i's title starts.
func titleX(i int) int {
	x := 0
	for j := 0; j < i; j++ {
		x += runewidth.StringWidth(menus[j].title) + 2
	}
	return x
}

// menuAt returns the menu whose title covers column x, or -1.
func menuAt(x int) int {
	for i, mn := range menus {
		start := titleX(i)
		if x >= start && x < start+runewidth.StringWidth(mn.title)+2 {
			return i
		}
	}
	return -1
}

func renderMenuBar(st theme.Chrome, s menuState, width int) string {
	var sb strings.Builder
	for i, mn := range menus {
		if s.open == i {
			sb.WriteString(st.MenuActive.Render(mn.title))
		} else {
			sb.WriteString(st.MenuItem.Render(mn.title))
		}
	}
	bar := sb.String()
	if w := lipgloss.Width(bar); w < width {
		bar += st.MenuBar.Render(strings.Repeat(" ", width-w))
	}
	return bar
}

// renderItems draws a drop-down or context list. check reports toggles
// that are on; they get a check mark.
func renderItems(st theme.Chrome, items []menuItem, selected int, check func(command) bool) string {
	labelW, keyW := 0, 0
	for _, it := range items {
		labelW = max(labelW, runewidth.StringWidth(it.label)+2)
		keyW = max(keyW, runewidth.StringWidth(it.shortcut))
	}

	lines := make([]string, 0, len(items))
	for i, it := range items {
		mark := "  "
		if check != nil && check(it.cmd) {
			mark = "✓ "
		}
		label := runewidth.FillRight(mark+it.label, labelW+1)
		line := " " + label + " " + runewidth.FillLeft(it.shortcut, keyW) + " "
		if i == selected {
			lines = append(lines, st.MenuActive.UnsetPadding().Render(line))
		} else {
			lines = append(lines, st.MenuBar.Render(" "+label+" ")+st.MenuKey.Render(runewidth.FillLeft(it.shortcut, keyW)+" "))
		}
	}
	return strings.Join(lines, "\n")
}
