package editor

import (
	"github.com/hydroxite/hydroxite/buffer"
	"github.com/hydroxite/hydroxite/internal/grapheme"
)

var autoPairs = map[string]string{
	"(":  ")",
	"[":  "]",
	"{":  "}",
	"\"": "\"",
	"'":  "'",
}

func isCloser(s string) bool {
	switch s {
	case ")", "]", "}", "\"", "'":
		return true
	}
	return false
}

// autoPair handles typing s when auto-pairs are on. It reports whether the
// key was consumed.
func (m Model) autoPair(s string) bool {
	if !m.cfg.AutoPairs {
		return false
	}
	b := m.buf
	if _, ok := b.Selection(); ok {
		return false
	}
	cur := b.Cursor()
	next := b.GraphemeAt(cur)

	// Typing a closer in front of the same closer steps over it.
	if isCloser(s) && next == s {
		b.SetCursor(buffer.Pos{Row: cur.Row, Col: cur.Col + 1})
		return true
	}

	closer, ok := autoPairs[s]
	if !ok {
		return false
	}
	if next != "" && grapheme.IsWord(next) {
		return false
	}
	if s == closer && cur.Col > 0 && grapheme.IsWord(b.GraphemeAt(buffer.Pos{Row: cur.Row, Col: cur.Col - 1})) {
		// Apostrophes inside words and closing quotes are not pairs.
		return false
	}
	b.InsertText(s + closer)
	b.SetCursor(buffer.Pos{Row: cur.Row, Col: cur.Col + 1})
	return true
}

// deletePair removes both halves when backspacing inside an empty pair.
func (m Model) deletePair() bool {
	if !m.cfg.AutoPairs {
		return false
	}
	b := m.buf
	if _, ok := b.Selection(); ok {
		return false
	}
	cur := b.Cursor()
	if cur.Col == 0 {
		return false
	}
	prev := b.GraphemeAt(buffer.Pos{Row: cur.Row, Col: cur.Col - 1})
	closer, ok := autoPairs[prev]
	if !ok || b.GraphemeAt(cur) != closer {
		return false
	}
	b.Apply(buffer.TextEdit{Range: buffer.Range{
		Start: buffer.Pos{Row: cur.Row, Col: cur.Col - 1},
		End:   buffer.Pos{Row: cur.Row, Col: cur.Col + 1},
	}})
	return true
}
