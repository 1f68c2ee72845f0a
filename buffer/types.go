package buffer

import "cmp"

// Pos points into the logical document by (row, col).
// Row and Col are 0-based; Col counts grapheme clusters.
type Pos struct {
	Row int
	Col int
}

// Range spans [Start, End) in document order once normalized.
type Range struct {
	Start Pos
	End   Pos
}

// TextEdit replaces Range with Text; Text may span lines.
type TextEdit struct {
	Range Range
	Text  string
}

// ComparePos orders positions by row, then column.
func ComparePos(a, b Pos) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

// Before reports whether p sits strictly before q.
func (p Pos) Before(q Pos) bool { return ComparePos(p, q) < 0 }

func NormalizeRange(r Range) Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

// Contains reports whether p lies inside the half-open range.
func (r Range) Contains(p Pos) bool {
	r = NormalizeRange(r)
	return !p.Before(r.Start) && p.Before(r.End)
}

// clampInt bounds v to [lo, hi]; lo wins when the bounds cross.
func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// ClampPos moves p onto the nearest valid position of a document with
// rowCount rows (at least one) whose row lengths come from lineLen.
func ClampPos(p Pos, rowCount int, lineLen func(row int) int) Pos {
	row := clampInt(p.Row, 0, max(rowCount, 1)-1)
	var width int
	if lineLen != nil {
		width = max(lineLen(row), 0)
	}
	return Pos{Row: row, Col: clampInt(p.Col, 0, width)}
}

func ClampRange(r Range, rowCount int, lineLen func(row int) int) Range {
	return Range{
		Start: ClampPos(r.Start, rowCount, lineLen),
		End:   ClampPos(r.End, rowCount, lineLen),
	}
}
