package editor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hydroxite/hydroxite/buffer"
	"github.com/hydroxite/hydroxite/internal/grapheme"
)

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	st := m.cfg.Style
	n := m.buf.LineCount()
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()
	digits := 0
	if m.cfg.ShowLineNums {
		digits = gutterDigits(n)
	}

	// Highlight visible rows only.
	hlStart, hlEnd := 0, 0
	if m.cfg.Highlighter != nil {
		if h := m.visibleRowCount(); h > 0 {
			hlStart = clampInt(m.viewport.YOffset, 0, n)
			hlEnd = min(hlStart+h, n)
		}
		if dh, ok := m.cfg.Highlighter.(DocumentHighlighter); ok && hlEnd > hlStart {
			if err := dh.Prepare(m.buf.TextVersion(), m.buf.Text); err != nil {
				hlEnd = hlStart
			}
		}
	}

	left := max(m.xOffset, 0)
	right := math.MaxInt
	if w := m.contentWidth(); w > 0 {
		right = left + w
	}

	out := make([]string, 0, n)
	for row := 0; row < n; row++ {
		var sb strings.Builder
		if m.cfg.ShowLineNums {
			numStyle := st.LineNum
			if m.focused && row == cursor.Row {
				numStyle = st.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(st.Gutter.Render(" "))
		}

		graphemes := m.buf.LineGraphemes(row)
		var spans []HighlightSpan
		if row >= hlStart && row < hlEnd {
			spans = m.highlightForLine(row, graphemes, cursor)
		}
		sb.WriteString(renderLine(
			st,
			layoutLine(graphemes, m.cfg.TabWidth),
			row,
			cursor,
			m.focused,
			sel,
			selOK,
			spans,
			left,
			right,
		))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) highlightForLine(row int, graphemes []string, cursor buffer.Pos) []HighlightSpan {
	ctx := LineContext{
		Row:         row,
		Text:        grapheme.Join(graphemes),
		CursorCol:   -1,
		TextVersion: m.buf.TextVersion(),
	}
	if cursor.Row == row {
		ctx.HasCursor = true
		ctx.CursorCol = clampInt(cursor.Col, 0, len(graphemes))
	}
	spans, err := m.cfg.Highlighter.HighlightLine(ctx)
	if err != nil {
		return nil
	}
	return normalizeHighlightSpans(spans, len(graphemes))
}

func renderLine(
	st Style,
	l lineLayout,
	row int,
	cursor buffer.Pos,
	focused bool,
	sel buffer.Range,
	selOK bool,
	highlights []HighlightSpan,
	left, right int,
) string {
	cursorCol := -1
	if focused && row == cursor.Row {
		cursorCol = clampInt(cursor.Col, 0, len(l.cells))
	}
	selStart, selEnd, hasSel := selectionColsForRow(sel, selOK, row, len(l.cells))

	var sb strings.Builder
	hi := 0
	for i, c := range l.cells {
		spanL := max(c.Start, left)
		spanR := min(c.Start+c.Width, right)
		if spanL >= spanR {
			continue
		}

		style := st.Text
		switch {
		case i == cursorCol:
			style = st.Cursor
		case hasSel && i >= selStart && i < selEnd:
			style = st.Selection
		default:
			for hi < len(highlights) && highlights[hi].EndCol <= i {
				hi++
			}
			if hi < len(highlights) && highlights[hi].StartCol <= i {
				style = highlights[hi].Style.Inherit(st.Text)
			}
		}

		text := c.Text
		if w := spanR - spanL; w != c.Width {
			// Partially scrolled wide grapheme or tab: keep alignment with blanks.
			text = strings.Repeat(" ", w)
		}
		sb.WriteString(style.Render(text))
	}

	// Cursor at EOL is rendered as a 1-cell placeholder space.
	if cursorCol == len(l.cells) && l.width >= left && l.width < right {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}

func selectionColsForRow(sel buffer.Range, ok bool, row, lineLen int) (start, end int, has bool) {
	if !ok || row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	start, end = 0, lineLen
	if row == sel.Start.Row {
		start = clampInt(sel.Start.Col, 0, lineLen)
	}
	if row == sel.End.Row {
		end = clampInt(sel.End.Col, 0, lineLen)
	}
	return start, end, start < end
}

func gutterDigits(lineCount int) int {
	return len(strconv.Itoa(max(lineCount, 1)))
}
