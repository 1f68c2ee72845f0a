package vim

import (
	"github.com/hydroxite/hydroxite/buffer"
	"github.com/hydroxite/hydroxite/internal/grapheme"
)

// motionKind describes how an operator treats the span a motion covers.
type motionKind int

const (
	exclusive motionKind = iota
	inclusive
	linewise
)

type motion struct {
	target buffer.Pos
	kind   motionKind
	// keepCol leaves wantCol untouched (vertical motions).
	keepCol bool
}

// resolveMotion maps a key to a motion from the cursor. ok is false when the
// key is not a motion.
func (m *Machine) resolveMotion(b *buffer.Buffer, key string, count int) (motion, bool) {
	cur := b.Cursor()
	n := max(count, 1)

	switch key {
	case "h", "left", "backspace":
		return motion{target: buffer.Pos{Row: cur.Row, Col: max(cur.Col-n, 0)}}, true
	case "l", "right", " ":
		limit := b.LineLen(cur.Row)
		if m.op == 0 {
			limit = lastCol(b, cur.Row)
		}
		return motion{target: buffer.Pos{Row: cur.Row, Col: min(cur.Col+n, limit)}}, true
	case "j", "down":
		row := min(cur.Row+n, b.LineCount()-1)
		return motion{target: buffer.Pos{Row: row, Col: m.wantCol}, kind: linewise, keepCol: true}, true
	case "k", "up":
		row := max(cur.Row-n, 0)
		return motion{target: buffer.Pos{Row: row, Col: m.wantCol}, kind: linewise, keepCol: true}, true
	case "0", "home":
		return motion{target: buffer.Pos{Row: cur.Row}}, true
	case "^":
		return motion{target: buffer.Pos{Row: cur.Row, Col: firstNonBlank(b, cur.Row)}}, true
	case "$", "end":
		row := min(cur.Row+n-1, b.LineCount()-1)
		return motion{target: buffer.Pos{Row: row, Col: lastCol(b, row)}, kind: inclusive}, true
	case "w":
		p := cur
		for i := 0; i < n; i++ {
			p = wordForward(b, p)
		}
		return motion{target: p}, true
	case "b":
		p := cur
		for i := 0; i < n; i++ {
			p = wordBackward(b, p)
		}
		return motion{target: p}, true
	case "e":
		p := cur
		for i := 0; i < n; i++ {
			p = wordEnd(b, p)
		}
		return motion{target: p, kind: inclusive}, true
	case "G":
		row := b.LineCount() - 1
		if count > 0 {
			row = min(count-1, b.LineCount()-1)
		}
		return motion{target: buffer.Pos{Row: row, Col: firstNonBlank(b, row)}, kind: linewise}, true
	case "gg":
		row := 0
		if count > 0 {
			row = min(count-1, b.LineCount()-1)
		}
		return motion{target: buffer.Pos{Row: row, Col: firstNonBlank(b, row)}, kind: linewise}, true
	}
	return motion{}, false
}

// lastCol is the rightmost Normal-mode column of row.
func lastCol(b *buffer.Buffer, row int) int {
	return max(b.LineLen(row)-1, 0)
}

func firstNonBlank(b *buffer.Buffer, row int) int {
	n := b.LineLen(row)
	for col := 0; col < n; col++ {
		if !grapheme.IsSpace(b.GraphemeAt(buffer.Pos{Row: row, Col: col})) {
			return col
		}
	}
	return lastCol(b, row)
}

// clampNormal keeps p off the end-of-line cell, as Normal mode requires.
func clampNormal(b *buffer.Buffer, p buffer.Pos) buffer.Pos {
	row := min(max(p.Row, 0), b.LineCount()-1)
	return buffer.Pos{Row: row, Col: min(max(p.Col, 0), lastCol(b, row))}
}

func atEOL(b *buffer.Buffer, p buffer.Pos) bool {
	return p.Col >= b.LineLen(p.Row)
}

func docEnd(b *buffer.Buffer) buffer.Pos {
	last := b.LineCount() - 1
	return buffer.Pos{Row: last, Col: b.LineLen(last)}
}

func classAt(b *buffer.Buffer, p buffer.Pos) grapheme.Class {
	if atEOL(b, p) {
		return grapheme.ClassSpace
	}
	return grapheme.ClassOf(b.GraphemeAt(p))
}

func next(b *buffer.Buffer, p buffer.Pos) buffer.Pos {
	if p.Col < b.LineLen(p.Row) {
		return buffer.Pos{Row: p.Row, Col: p.Col + 1}
	}
	if p.Row < b.LineCount()-1 {
		return buffer.Pos{Row: p.Row + 1}
	}
	return p
}

func prev(b *buffer.Buffer, p buffer.Pos) buffer.Pos {
	if p.Col > 0 {
		return buffer.Pos{Row: p.Row, Col: p.Col - 1}
	}
	if p.Row > 0 {
		return buffer.Pos{Row: p.Row - 1, Col: b.LineLen(p.Row - 1)}
	}
	return p
}

// wordForward implements `w`: skip the current word class, then whitespace.
// An empty line counts as a word.
func wordForward(b *buffer.Buffer, p buffer.Pos) buffer.Pos {
	end := docEnd(b)
	if cls := classAt(b, p); cls != grapheme.ClassSpace {
		for p != end && !atEOL(b, p) && classAt(b, p) == cls {
			p = next(b, p)
		}
	}
	for p != end {
		if atEOL(b, p) {
			p = next(b, p)
			if b.LineLen(p.Row) == 0 {
				return p
			}
			continue
		}
		if classAt(b, p) != grapheme.ClassSpace {
			break
		}
		p = next(b, p)
	}
	return p
}

// wordBackward implements `b`.
func wordBackward(b *buffer.Buffer, p buffer.Pos) buffer.Pos {
	if p == (buffer.Pos{}) {
		return p
	}
	p = prev(b, p)
	for p != (buffer.Pos{}) {
		if b.LineLen(p.Row) == 0 {
			return p
		}
		if classAt(b, p) != grapheme.ClassSpace {
			break
		}
		p = prev(b, p)
	}
	cls := classAt(b, p)
	for p.Col > 0 && classAt(b, buffer.Pos{Row: p.Row, Col: p.Col - 1}) == cls {
		p.Col--
	}
	return p
}

// wordEnd implements `e`.
func wordEnd(b *buffer.Buffer, p buffer.Pos) buffer.Pos {
	end := docEnd(b)
	p = next(b, p)
	for p != end && classAt(b, p) == grapheme.ClassSpace {
		p = next(b, p)
	}
	if atEOL(b, p) {
		return clampNormal(b, p)
	}
	cls := classAt(b, p)
	for p.Col+1 < b.LineLen(p.Row) && classAt(b, buffer.Pos{Row: p.Row, Col: p.Col + 1}) == cls {
		p.Col++
	}
	return p
}
