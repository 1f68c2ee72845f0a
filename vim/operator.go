package vim

import (
	"strings"

	"github.com/hydroxite/hydroxite/buffer"
	"github.com/hydroxite/hydroxite/internal/grapheme"
)

// span is the region an operator acts on.
type span struct {
	r        buffer.Range
	linewise bool
	// startRow and endRow are set for linewise spans.
	startRow, endRow int
}

func lineSpan(b *buffer.Buffer, startRow, endRow int) span {
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	startRow = max(startRow, 0)
	endRow = min(endRow, b.LineCount()-1)
	return span{
		r:        lineDeleteRange(b, startRow, endRow),
		linewise: true,
		startRow: startRow,
		endRow:   endRow,
	}
}

// lineDeleteRange covers rows startRow..endRow including one line break, so
// deleting it removes the lines entirely.
func lineDeleteRange(b *buffer.Buffer, startRow, endRow int) buffer.Range {
	last := b.LineCount() - 1
	switch {
	case endRow < last:
		return buffer.Range{Start: buffer.Pos{Row: startRow}, End: buffer.Pos{Row: endRow + 1}}
	case startRow > 0:
		return buffer.Range{
			Start: buffer.Pos{Row: startRow - 1, Col: b.LineLen(startRow - 1)},
			End:   buffer.Pos{Row: endRow, Col: b.LineLen(endRow)},
		}
	default:
		return buffer.Range{End: buffer.Pos{Row: endRow, Col: b.LineLen(endRow)}}
	}
}

func linesText(b *buffer.Buffer, startRow, endRow int) string {
	var sb strings.Builder
	for row := startRow; row <= endRow; row++ {
		sb.WriteString(b.Line(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func motionSpan(b *buffer.Buffer, mo motion, key string) span {
	cur := b.Cursor()
	if mo.kind == linewise {
		return lineSpan(b, cur.Row, mo.target.Row)
	}
	start, end := orderPos(cur, mo.target)
	if mo.kind == inclusive {
		end = buffer.Pos{Row: end.Row, Col: min(end.Col+1, b.LineLen(end.Row))}
	}
	// `dw` on the last word of a line stops at the line end.
	if key == "w" && end.Row > start.Row {
		for end.Row > start.Row && firstNonBlank(b, end.Row) >= end.Col {
			end = buffer.Pos{Row: end.Row - 1, Col: b.LineLen(end.Row - 1)}
		}
	}
	return span{r: buffer.Range{Start: start, End: end}}
}

// changeWordSpan implements `cw`, which behaves like `ce` on a word.
func (m *Machine) changeWordSpan(b *buffer.Buffer, count int) span {
	cur := b.Cursor()
	if classAt(b, cur) == grapheme.ClassSpace {
		mo, _ := m.resolveMotion(b, "w", count)
		return motionSpan(b, mo, "w")
	}
	p := cur
	for i := 0; i < max(count, 1); i++ {
		cls := classAt(b, p)
		nextPos := buffer.Pos{Row: p.Row, Col: p.Col + 1}
		if i == 0 && (atEOL(b, nextPos) || classAt(b, nextPos) != cls) {
			continue
		}
		p = wordEnd(b, p)
	}
	end := buffer.Pos{Row: p.Row, Col: min(p.Col+1, b.LineLen(p.Row))}
	return span{r: buffer.Range{Start: cur, End: end}}
}

// operate applies op (d, c, y, > or <) to s.
func (m *Machine) operate(b *buffer.Buffer, op byte, s span) Result {
	switch op {
	case 'd':
		m.deleteSpan(b, s)
	case 'y':
		m.yankSpan(b, s)
	case 'c':
		m.changeSpan(b, s)
	case '>', '<':
		startRow, endRow := s.startRow, s.endRow
		if !s.linewise {
			startRow, endRow = s.r.Start.Row, s.r.End.Row
		}
		m.shiftLines(b, startRow, endRow, op == '>')
	}
	m.wantCol = b.Cursor().Col
	return Result{}
}

func (m *Machine) deleteSpan(b *buffer.Buffer, s span) {
	if s.linewise {
		m.setRegister(linesText(b, s.startRow, s.endRow), true)
		b.Apply(buffer.TextEdit{Range: s.r})
		row := min(s.startRow, b.LineCount()-1)
		b.SetCursor(buffer.Pos{Row: row, Col: firstNonBlank(b, row)})
		return
	}
	if s.r.IsEmpty() {
		return
	}
	m.setRegister(b.TextInRange(s.r), false)
	b.Apply(buffer.TextEdit{Range: s.r})
	b.SetCursor(clampNormal(b, s.r.Start))
}

func (m *Machine) yankSpan(b *buffer.Buffer, s span) {
	if s.linewise {
		m.setRegister(linesText(b, s.startRow, s.endRow), true)
		b.SetCursor(buffer.Pos{Row: s.startRow, Col: min(b.Cursor().Col, lastCol(b, s.startRow))})
		return
	}
	m.setRegister(b.TextInRange(s.r), false)
	b.SetCursor(clampNormal(b, s.r.Start))
}

func (m *Machine) changeSpan(b *buffer.Buffer, s span) {
	if !m.insertGroup {
		b.BeginGroup()
		m.insertGroup = true
	}
	if s.linewise {
		m.setRegister(linesText(b, s.startRow, s.endRow), true)
		indent := leadingSpace(b.Line(s.startRow))
		r := buffer.Range{
			Start: buffer.Pos{Row: s.startRow},
			End:   buffer.Pos{Row: s.endRow, Col: b.LineLen(s.endRow)},
		}
		b.Apply(buffer.TextEdit{Range: r, Text: indent})
		m.enterInsert(b, buffer.Pos{Row: s.startRow, Col: grapheme.Count(indent)})
		return
	}
	if !s.r.IsEmpty() {
		m.setRegister(b.TextInRange(s.r), false)
		b.Apply(buffer.TextEdit{Range: s.r})
	}
	m.enterInsert(b, s.r.Start)
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func (m *Machine) shiftLines(b *buffer.Buffer, startRow, endRow int, right bool) {
	var edits []buffer.TextEdit
	for row := startRow; row <= endRow; row++ {
		line := b.Line(row)
		if right {
			if line == "" {
				continue
			}
			at := buffer.Pos{Row: row}
			edits = append(edits, buffer.TextEdit{Range: buffer.Range{Start: at, End: at}, Text: m.opt.Indent})
			continue
		}
		n := 0
		switch {
		case strings.HasPrefix(line, "\t"):
			n = 1
		default:
			for n < m.opt.TabWidth && n < len(line) && line[n] == ' ' {
				n++
			}
		}
		if n > 0 {
			edits = append(edits, buffer.TextEdit{Range: buffer.Range{
				Start: buffer.Pos{Row: row},
				End:   buffer.Pos{Row: row, Col: n},
			}})
		}
	}
	b.Apply(edits...)
	b.SetCursor(buffer.Pos{Row: startRow, Col: firstNonBlank(b, startRow)})
}

// put implements `p` and `P`.
func (m *Machine) put(b *buffer.Buffer, before bool, count int) {
	reg := m.getRegister()
	if reg.text == "" {
		return
	}
	text := strings.Repeat(reg.text, max(count, 1))
	cur := b.Cursor()

	if reg.linewise {
		body := strings.TrimSuffix(text, "\n")
		row := cur.Row
		if before {
			at := buffer.Pos{Row: cur.Row}
			b.Apply(buffer.TextEdit{Range: buffer.Range{Start: at, End: at}, Text: body + "\n"})
		} else {
			at := buffer.Pos{Row: cur.Row, Col: b.LineLen(cur.Row)}
			b.Apply(buffer.TextEdit{Range: buffer.Range{Start: at, End: at}, Text: "\n" + body})
			row = cur.Row + 1
		}
		b.SetCursor(buffer.Pos{Row: row, Col: firstNonBlank(b, row)})
		m.wantCol = b.Cursor().Col
		return
	}

	at := cur
	if !before && b.LineLen(cur.Row) > 0 {
		at.Col++
	}
	b.Apply(buffer.TextEdit{Range: buffer.Range{Start: at, End: at}, Text: text})
	end := b.Cursor()
	if end.Col > 0 {
		end.Col--
	}
	b.SetCursor(clampNormal(b, end))
	m.wantCol = b.Cursor().Col
}

// joinLines joins n lines starting at row (`J`), collapsing the leading
// whitespace of each joined line into one space.
func (m *Machine) joinLines(b *buffer.Buffer, row, n int) {
	last := min(row+n-1, b.LineCount()-1)
	if last <= row {
		return
	}
	var edits []buffer.TextEdit
	joinCol := 0
	// Join bottom-up so earlier rows keep their coordinates.
	for r := last; r > row; r-- {
		prevLen := b.LineLen(r - 1)
		line := b.Line(r)
		trimmed := strings.TrimLeft(line, " \t")
		sep := " "
		if trimmed == "" || strings.HasPrefix(trimmed, ")") || b.LineLen(r-1) == 0 ||
			strings.HasSuffix(b.Line(r-1), " ") {
			sep = ""
		}
		edits = append(edits, buffer.TextEdit{
			Range: buffer.Range{
				Start: buffer.Pos{Row: r - 1, Col: prevLen},
				End:   buffer.Pos{Row: r, Col: grapheme.Count(line) - grapheme.Count(trimmed)},
			},
			Text: sep,
		})
		if r == row+1 {
			joinCol = prevLen
		}
	}
	b.Apply(edits...)
	b.SetCursor(clampNormal(b, buffer.Pos{Row: row, Col: joinCol}))
	m.wantCol = b.Cursor().Col
}

// replaceChars implements `r<c>`.
func (m *Machine) replaceChars(b *buffer.Buffer, with string, n int) {
	cur := b.Cursor()
	if cur.Col+n > b.LineLen(cur.Row) {
		return
	}
	r := buffer.Range{Start: cur, End: buffer.Pos{Row: cur.Row, Col: cur.Col + n}}
	b.Apply(buffer.TextEdit{Range: r, Text: strings.Repeat(with, n)})
	b.SetCursor(buffer.Pos{Row: cur.Row, Col: cur.Col + n - 1})
}

// toggleCase implements `~`.
func (m *Machine) toggleCase(b *buffer.Buffer, n int) {
	cur := b.Cursor()
	end := min(cur.Col+n, b.LineLen(cur.Row))
	if end <= cur.Col {
		return
	}
	var sb strings.Builder
	for col := cur.Col; col < end; col++ {
		g := b.GraphemeAt(buffer.Pos{Row: cur.Row, Col: col})
		switch up := strings.ToUpper(g); {
		case up != g:
			sb.WriteString(up)
		default:
			sb.WriteString(strings.ToLower(g))
		}
	}
	r := buffer.Range{Start: cur, End: buffer.Pos{Row: cur.Row, Col: end}}
	b.Apply(buffer.TextEdit{Range: r, Text: sb.String()})
	b.SetCursor(clampNormal(b, buffer.Pos{Row: cur.Row, Col: end}))
	m.wantCol = b.Cursor().Col
}

// openLine implements `o` and `O`, carrying over the current indentation.
func (m *Machine) openLine(b *buffer.Buffer, above bool) {
	cur := b.Cursor()
	indent := leadingSpace(b.Line(cur.Row))
	if !m.insertGroup {
		b.BeginGroup()
		m.insertGroup = true
	}
	if above {
		at := buffer.Pos{Row: cur.Row}
		b.Apply(buffer.TextEdit{Range: buffer.Range{Start: at, End: at}, Text: indent + "\n"})
		m.enterInsert(b, buffer.Pos{Row: cur.Row, Col: grapheme.Count(indent)})
		return
	}
	at := buffer.Pos{Row: cur.Row, Col: b.LineLen(cur.Row)}
	b.Apply(buffer.TextEdit{Range: buffer.Range{Start: at, End: at}, Text: "\n" + indent})
	m.enterInsert(b, buffer.Pos{Row: cur.Row + 1, Col: grapheme.Count(indent)})
}
