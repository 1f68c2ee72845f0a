package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// cell is one grapheme of a line laid out on the terminal grid.
type cell struct {
	// Text is the rendered text; tabs are expanded to spaces.
	Text  string
	Start int // first visual cell
	Width int
}

// lineLayout maps a buffer line to visual cells. Horizontal scrolling works
// in cell units, document columns in graphemes.
type lineLayout struct {
	cells []cell
	width int
}

func layoutLine(graphemes []string, tabWidth int) lineLayout {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	out := lineLayout{cells: make([]cell, 0, len(graphemes))}
	for _, g := range graphemes {
		w := graphemeCellWidth(g, out.width, tabWidth)
		text := g
		if g == "\t" {
			text = strings.Repeat(" ", w)
		}
		out.cells = append(out.cells, cell{Text: text, Start: out.width, Width: w})
		out.width += w
	}
	return out
}

// cellForCol returns the visual cell where grapheme col starts. col may be
// the line length (end of line).
func (l lineLayout) cellForCol(col int) int {
	if col <= 0 || len(l.cells) == 0 {
		return 0
	}
	if col >= len(l.cells) {
		return l.width
	}
	return l.cells[col].Start
}

// colForCell returns the grapheme column under visual cell x. Cells past the
// end of the line map to the line length.
func (l lineLayout) colForCell(x int) int {
	if x <= 0 {
		return 0
	}
	for i, c := range l.cells {
		if x < c.Start+c.Width {
			return i
		}
	}
	return len(l.cells)
}

func graphemeCellWidth(text string, visualCol, tabWidth int) int {
	if text == "\t" {
		return tabAdvance(visualCol, tabWidth)
	}

	w := runewidth.StringWidth(text)
	if w <= 0 {
		w = uniseg.StringWidth(text)
	}
	if w <= 0 {
		w = 1
	}
	return w
}

func tabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return tabWidth - visualCol%tabWidth
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
