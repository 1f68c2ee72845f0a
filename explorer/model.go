package explorer

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// OpenFileMsg is emitted when a file row is activated.
type OpenFileMsg struct {
	Path string
}

// ErrorMsg reports a failed tree operation triggered from the view.
type ErrorMsg struct {
	Err error
}

// Model is the Bubble Tea view of a Tree.
type Model struct {
	tree  *Tree
	keys  KeyMap
	style Style

	focused       bool
	width, height int
	offset        int
}

func New(tree *Tree) Model {
	return Model{
		tree:  tree,
		keys:  DefaultKeyMap(),
		style: DefaultStyle(),
	}
}

func (m Model) Tree() *Tree { return m.tree }

func (m Model) SetStyle(st Style) Model {
	m.style = st
	return m
}

func (m Model) SetKeyMap(km KeyMap) Model {
	m.keys = km
	return m
}

func (m Model) SetSize(w, h int) Model {
	m.width, m.height = max(w, 0), max(h, 0)
	m.follow()
	return m
}

func (m Model) Width() int  { return m.width }
func (m Model) Height() int { return m.height }

func (m Model) Focus() Model {
	m.focused = true
	return m
}

func (m Model) Blur() Model {
	m.focused = false
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Init() tea.Cmd { return nil }

// Update handles keys while focused. Mouse coordinates are relative to
// the tree's top-left corner.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.tree == nil {
		return m, nil
	}
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		cmd = m.updateKey(msg)
		m.follow()
	case tea.MouseMsg:
		cmd = m.updateMouse(msg)
	}
	return m, cmd
}

// Sync brings the scroll offset back to the selection after the tree was
// changed from outside the model.
func (m Model) Sync() Model {
	m.follow()
	return m
}

// IndexAt returns the tree row shown at view row y, or -1.
func (m Model) IndexAt(y int) int {
	if m.tree == nil || y < 0 || y >= m.height {
		return -1
	}
	if i := m.offset + y; i < len(m.tree.Visible()) {
		return i
	}
	return -1
}

func (m *Model) updateKey(msg tea.KeyMsg) tea.Cmd {
	t := m.tree
	switch {
	case key.Matches(msg, m.keys.Up):
		t.MoveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		t.MoveSelection(1)
	case key.Matches(msg, m.keys.Top):
		t.SelectIndex(0)
	case key.Matches(msg, m.keys.Bottom):
		t.SelectIndex(len(t.Visible()) - 1)
	case key.Matches(msg, m.keys.PageUp):
		t.MoveSelection(-max(m.height-1, 1))
	case key.Matches(msg, m.keys.PageDn):
		t.MoveSelection(max(m.height-1, 1))
	case key.Matches(msg, m.keys.Expand):
		sel, ok := t.Selected()
		if !ok || !sel.Dir {
			return nil
		}
		if sel.Expanded {
			t.MoveSelection(1)
			return nil
		}
		return errCmd(t.Expand(sel.Path))
	case key.Matches(msg, m.keys.Collapse):
		sel, ok := t.Selected()
		if !ok {
			return nil
		}
		if sel.Dir && sel.Expanded {
			t.Collapse(sel.Path)
			return nil
		}
		if parent := filepath.Dir(sel.Path); parent != t.Root() {
			t.Select(parent)
		}
	case key.Matches(msg, m.keys.Activate):
		return m.activate()
	case key.Matches(msg, m.keys.Refresh):
		return errCmd(t.Refresh())
	case key.Matches(msg, m.keys.ToggleHidden):
		return errCmd(t.SetShowHidden(!t.ShowHidden()))
	}
	return nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.offset = max(m.offset-3, 0)
		return nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.offset = min(m.offset+3, max(len(m.tree.Visible())-m.height, 0))
		return nil
	case msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft:
		return nil
	}
	if msg.X < 0 || msg.Y < 0 || msg.X >= m.width || msg.Y >= m.height {
		return nil
	}
	row := m.IndexAt(msg.Y)
	if row < 0 {
		return nil
	}
	m.tree.SelectIndex(row)
	return m.activate()
}

// activate toggles a folder or opens a file.
func (m *Model) activate() tea.Cmd {
	sel, ok := m.tree.Selected()
	if !ok {
		return nil
	}
	if sel.Dir {
		return errCmd(m.tree.Toggle(sel.Path))
	}
	path := sel.Path
	return func() tea.Msg { return OpenFileMsg{Path: path} }
}

func errCmd(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg { return ErrorMsg{Err: err} }
}

// follow keeps the selected row inside the visible window.
func (m *Model) follow() {
	if m.tree == nil || m.height <= 0 {
		return
	}
	sel := m.tree.SelectedIndex()
	if sel < 0 {
		m.offset = 0
		return
	}
	if sel < m.offset {
		m.offset = sel
	}
	if sel >= m.offset+m.height {
		m.offset = sel - m.height + 1
	}
	m.offset = min(m.offset, max(len(m.tree.Visible())-m.height, 0))
}

func (m Model) View() string {
	if m.tree == nil || m.width <= 0 || m.height <= 0 {
		return ""
	}
	nodes := m.tree.Visible()
	lines := make([]string, 0, m.height)
	if len(nodes) == 0 {
		lines = append(lines, m.style.Empty.Render(m.fit("(empty)")))
	}

	sel := m.tree.SelectedIndex()
	for i := m.offset; i < len(nodes) && len(lines) < m.height; i++ {
		lines = append(lines, m.renderNode(nodes[i], i == sel))
	}
	for len(lines) < m.height {
		lines = append(lines, strings.Repeat(" ", m.width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderNode(n Node, selected bool) string {
	glyph := fileGlyph(n.Name)
	if n.Dir {
		glyph = glyphCollapsed
		if n.Expanded {
			glyph = glyphExpanded
		}
	}
	text := m.fit(strings.Repeat("  ", n.Depth) + glyph + " " + n.Name)

	if selected {
		if m.focused {
			return m.style.Selected.Render(text)
		}
		return m.style.SelectedBlurred.Render(text)
	}

	indent := strings.Repeat("  ", n.Depth)
	rest := strings.TrimPrefix(text, indent)
	if g := glyph + " "; strings.HasPrefix(rest, g) {
		name := m.style.File
		if n.Dir {
			name = m.style.Dir
		}
		return indent + m.style.Icon.Render(glyph) + " " + name.Render(strings.TrimPrefix(rest, g))
	}
	return text
}

// fit truncates or pads s to exactly the model width.
func (m Model) fit(s string) string {
	s = runewidth.Truncate(s, m.width, "…")
	if w := runewidth.StringWidth(s); w < m.width {
		s += strings.Repeat(" ", m.width-w)
	}
	return s
}
