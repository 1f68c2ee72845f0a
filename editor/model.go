package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hydroxite/hydroxite/buffer"
	"github.com/hydroxite/hydroxite/vim"
)

// Model is a Bubble Tea component that renders and interacts with a buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer

	focused bool

	viewport viewport.Model
	xOffset  int

	lastBufVersion  uint64
	lastTextVersion uint64
	lastCursor      buffer.Pos

	mouseAnchor   buffer.Pos
	mouseDragging bool
}

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.viewport.Style = paneStyle(cfg.Style)
	m.markSynced()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// SetBuffer swaps the edited document, e.g. when another file is opened.
func (m Model) SetBuffer(b *buffer.Buffer) Model {
	if b == nil {
		b = buffer.New("", buffer.Options{HistoryLimit: m.cfg.HistoryLimit})
	}
	m.buf = b
	m.viewport.YOffset = 0
	m.xOffset = 0
	m.mouseDragging = false
	if m.cfg.Vim != nil {
		m.cfg.Vim.Reset(b)
	}
	m.markSynced()
	m.followCursor()
	m.rebuildContent()
	return m
}

func (m Model) SetStyle(st Style) Model {
	m.cfg.Style = st
	m.viewport.Style = paneStyle(st)
	m.rebuildContent()
	return m
}

// paneStyle keeps only the pane background; the viewport must not gain a
// frame.
func paneStyle(st Style) lipgloss.Style {
	return lipgloss.NewStyle().Background(st.Pane.GetBackground())
}

func (m Model) SetHighlighter(h Highlighter) Model {
	m.cfg.Highlighter = h
	m.rebuildContent()
	return m
}

func (m Model) SetShowLineNums(on bool) Model {
	m.cfg.ShowLineNums = on
	m.followCursor()
	m.rebuildContent()
	return m
}

func (m Model) ShowLineNums() bool { return m.cfg.ShowLineNums }

func (m Model) SetTabWidth(n int) Model {
	if n <= 0 {
		n = 4
	}
	m.cfg.TabWidth = n
	m.followCursor()
	m.rebuildContent()
	return m
}

func (m Model) SetAutoPairs(on bool) Model {
	m.cfg.AutoPairs = on
	return m
}

// SetVim enables modal editing with v, or disables it when v is nil.
func (m Model) SetVim(v *vim.Machine) Model {
	m.cfg.Vim = v
	if v != nil {
		v.Reset(m.buf)
	}
	m.rebuildContent()
	return m
}

func (m Model) Vim() *vim.Machine { return m.cfg.Vim }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)

	m.followCursor()
	m.rebuildContent()
	return m
}

func (m Model) Width() int  { return m.viewport.Width }
func (m Model) Height() int { return m.viewport.Height }

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.followCursor()
		m.rebuildContent()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.mouseDragging = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		m.syncFromBuffer(true)
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m, cmd = m.updateMouse(msg)
		// Don't force-follow the cursor here; wheel scrolling is manual.
		m.syncFromBuffer(false)
		return m, cmd
	default:
		// Hosts may mutate the buffer directly between messages.
		m.syncFromBuffer(true)
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

// syncFromBuffer re-renders after buffer changes and fires OnChange.
func (m *Model) syncFromBuffer(follow bool) {
	if m.buf == nil {
		return
	}
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return
	}
	cursorChanged := cur != m.lastCursor
	prevText := m.lastTextVersion
	m.markSynced()

	if follow || cursorChanged && !m.mouseDragging {
		m.followCursor()
	}
	m.rebuildContent()
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf, prevText))
	}
}

func (m *Model) markSynced() {
	if m.buf == nil {
		return
	}
	m.lastBufVersion = m.buf.Version()
	m.lastTextVersion = m.buf.TextVersion()
	m.lastCursor = m.buf.Cursor()
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

// followCursor scrolls just enough to keep the cursor cell visible.
func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	cur := m.buf.Cursor()

	if h := m.visibleRowCount(); h > 0 {
		y := m.viewport.YOffset
		if cur.Row < y {
			y = cur.Row
		} else if cur.Row >= y+h {
			y = cur.Row - h + 1
		}
		m.viewport.YOffset = clampInt(y, 0, max(m.buf.LineCount()-h, 0))
	}

	w := m.contentWidth()
	if w <= 0 {
		m.xOffset = 0
		return
	}
	l := layoutLine(m.buf.LineGraphemes(cur.Row), m.cfg.TabWidth)
	x := l.cellForCol(cur.Col)
	cw := 1
	if cur.Col < len(l.cells) {
		cw = l.cells[cur.Col].Width
	}
	if x < m.xOffset {
		m.xOffset = x
	} else if x+cw > m.xOffset+w {
		m.xOffset = x + cw - w
	}
	m.xOffset = max(m.xOffset, 0)
}

func (m Model) visibleRowCount() int {
	return max(m.viewport.Height-m.viewport.Style.GetVerticalFrameSize(), 0)
}

func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums || m.buf == nil {
		return 0
	}
	return gutterDigits(m.buf.LineCount()) + 1
}

func (m Model) contentWidth() int {
	return max(m.viewport.Width-m.viewport.Style.GetHorizontalFrameSize()-m.gutterWidth(), 0)
}

// SelectAll selects the whole document and moves the cursor to its end.
func (m Model) SelectAll() Model {
	if m.buf == nil {
		return m
	}
	last := m.buf.LineCount() - 1
	end := buffer.Pos{Row: last, Col: m.buf.LineLen(last)}
	m.buf.SetCursor(end)
	m.buf.SetSelection(buffer.Range{End: end})
	m.syncFromBuffer(true)
	return m
}

// Copy writes the selection to the clipboard.
func (m Model) Copy() Model {
	m.copySelection()
	return m
}

// Cut moves the selection to the clipboard.
func (m Model) Cut() Model {
	if m.cfg.ReadOnly {
		return m.Copy()
	}
	m.cutSelection()
	m.syncFromBuffer(true)
	return m
}

// Paste inserts the clipboard contents at the cursor.
func (m Model) Paste() Model {
	if m.cfg.ReadOnly {
		return m
	}
	m.pasteClipboard()
	m.syncFromBuffer(true)
	return m
}

// Undo reverts the last history step.
func (m Model) Undo() Model {
	if !m.cfg.ReadOnly && m.buf != nil {
		m.buf.Undo()
		m.syncFromBuffer(true)
	}
	return m
}

// Redo reapplies the last undone history step.
func (m Model) Redo() Model {
	if !m.cfg.ReadOnly && m.buf != nil {
		m.buf.Redo()
		m.syncFromBuffer(true)
	}
	return m
}
