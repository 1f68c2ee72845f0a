package editor

import "github.com/hydroxite/hydroxite/buffer"

// ScreenToDoc maps viewport-local screen coordinates to a document position.
//
// Coordinates use terminal cells relative to the editor viewport. Gutter
// clicks map to column 0; positions are clamped into document bounds.
func (m Model) ScreenToDoc(x, y int) buffer.Pos {
	return m.screenToDocPos(x, y)
}

// DocToScreen maps a document position to viewport-local screen coordinates.
//
// ok is false when the position is outside the visible viewport content.
func (m Model) DocToScreen(pos buffer.Pos) (x int, y int, ok bool) {
	return m.docToScreenPos(pos)
}

func (m Model) screenToDocPos(x, y int) buffer.Pos {
	if m.buf == nil {
		return buffer.Pos{}
	}
	row := clampInt(m.viewport.YOffset+max(y, 0), 0, m.buf.LineCount()-1)

	gw := m.gutterWidth()
	if x < gw {
		return buffer.Pos{Row: row}
	}
	l := layoutLine(m.buf.LineGraphemes(row), m.cfg.TabWidth)
	return buffer.Pos{Row: row, Col: l.colForCell(x - gw + m.xOffset)}
}

func (m Model) docToScreenPos(pos buffer.Pos) (x int, y int, ok bool) {
	if m.buf == nil {
		return 0, 0, false
	}
	row := clampInt(pos.Row, 0, m.buf.LineCount()-1)
	l := layoutLine(m.buf.LineGraphemes(row), m.cfg.TabWidth)
	col := clampInt(pos.Col, 0, len(l.cells))

	x = l.cellForCol(col) - m.xOffset + m.gutterWidth()
	y = row - m.viewport.YOffset
	if y < 0 || y >= m.visibleRowCount() {
		return x, y, false
	}
	if x < m.gutterWidth() || x >= m.viewport.Width {
		return x, y, false
	}
	return x, y, true
}
