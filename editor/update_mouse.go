package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hydroxite/hydroxite/buffer"
)

// wheelColumns is the horizontal scroll step of a sideways wheel tick.
const wheelColumns = 4

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if isWheel(msg) {
		return m.updateWheel(msg)
	}

	if !m.focused || m.buf == nil {
		return m, nil
	}

	// Only handle selection/cursor changes for left button interactions.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if !m.mouseInBounds(msg.X, msg.Y) {
			return m, nil
		}

		p := m.screenToDocPos(msg.X, msg.Y)
		if msg.Shift {
			anchor := m.buf.Cursor()
			if raw, ok := m.buf.SelectionRaw(); ok {
				anchor = raw.Start
			}
			m.mouseAnchor = anchor
			m.buf.SetCursor(p)
			m.buf.SetSelection(buffer.Range{Start: anchor, End: p})
		} else {
			m.mouseAnchor = p
			m.buf.SetCursor(p)
			m.buf.ClearSelection()
		}
		if v := m.cfg.Vim; v != nil && v.Mode().IsVisual() {
			v.Reset(m.buf)
		}
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, nil
		}

		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		p := m.screenToDocPos(x, y)
		m.buf.SetCursor(p)
		m.buf.SetSelection(buffer.Range{Start: m.mouseAnchor, End: p})

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return m, nil
}

func (m Model) updateWheel(msg tea.MouseMsg) (Model, tea.Cmd) {
	prevX := m.xOffset
	switch msg.Button {
	case tea.MouseButtonWheelLeft:
		m.xOffset = max(m.xOffset-wheelColumns, 0)
	case tea.MouseButtonWheelRight:
		m.xOffset = min(m.xOffset+wheelColumns, m.maxXOffset())
	default:
		prevY := m.viewport.YOffset
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		if m.viewport.YOffset != prevY {
			// Newly exposed rows need highlighting.
			m.rebuildContent()
		}
		return m, cmd
	}
	if m.xOffset != prevX {
		m.rebuildContent()
	}
	return m, nil
}

// maxXOffset is the scroll that shows the end of the widest visible line.
func (m Model) maxXOffset() int {
	if m.buf == nil {
		return 0
	}
	start := clampInt(m.viewport.YOffset, 0, m.buf.LineCount())
	end := min(start+m.visibleRowCount(), m.buf.LineCount())
	widest := 0
	for row := start; row < end; row++ {
		widest = max(widest, layoutLine(m.buf.LineGraphemes(row), m.cfg.TabWidth).width)
	}
	return max(widest+1-m.contentWidth(), 0)
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
