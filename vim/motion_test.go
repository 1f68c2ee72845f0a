package vim

import (
	"testing"

	"github.com/hydroxite/hydroxite/buffer"
)

func TestMotions(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		start   buffer.Pos
		keys    []string
		wantRow int
		wantCol int
	}{
		{name: "l stops at last char", text: "abc", keys: []string{"5l"}, wantCol: 2},
		{name: "h stops at col 0", text: "abc", start: buffer.Pos{Col: 1}, keys: []string{"3h"}, wantCol: 0},
		{name: "w next word", text: "hello world", keys: []string{"w"}, wantCol: 6},
		{name: "w punctuation", text: "foo.bar", keys: []string{"w"}, wantCol: 3},
		{name: "w crosses lines", text: "foo\n  bar", keys: []string{"w"}, wantRow: 1, wantCol: 2},
		{name: "w stops on empty line", text: "foo\n\nbar", keys: []string{"w"}, wantRow: 1, wantCol: 0},
		{name: "e word end", text: "hello world", keys: []string{"e"}, wantCol: 4},
		{name: "e from end jumps", text: "hello world", start: buffer.Pos{Col: 4}, keys: []string{"e"}, wantCol: 10},
		{name: "b word start", text: "hello world", start: buffer.Pos{Col: 10}, keys: []string{"b"}, wantCol: 6},
		{name: "b crosses lines", text: "foo\nbar", start: buffer.Pos{Row: 1}, keys: []string{"b"}, wantCol: 0},
		{name: "dollar", text: "hello", keys: []string{"$"}, wantCol: 4},
		{name: "zero", text: "hello", start: buffer.Pos{Col: 3}, keys: []string{"0"}, wantCol: 0},
		{name: "caret", text: "   x", keys: []string{"^"}, wantCol: 3},
		{name: "G last line", text: "a\nb\nc", keys: []string{"G"}, wantRow: 2},
		{name: "count G", text: "a\nb\nc", keys: []string{"2G"}, wantRow: 1},
		{name: "gg", text: "a\nb\nc", start: buffer.Pos{Row: 2}, keys: []string{"gg"}, wantRow: 0},
		{name: "count j", text: "a\nb\nc\nd", keys: []string{"3j"}, wantRow: 3},
		{name: "k clamps", text: "a\nb", start: buffer.Pos{Row: 1}, keys: []string{"5k"}, wantRow: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := buffer.New(tc.text, buffer.Options{})
			b.SetCursor(tc.start)
			m := New(Options{})
			feed(t, m, b, tc.keys...)
			assertCursor(t, b, tc.wantRow, tc.wantCol)
		})
	}
}

func TestVerticalMotionKeepsWantedColumn(t *testing.T) {
	b := buffer.New("abcdef\nab\nabcdef", buffer.Options{})
	m := New(Options{})

	feed(t, m, b, "4l")
	assertCursor(t, b, 0, 4)
	feed(t, m, b, "j")
	assertCursor(t, b, 1, 1)
	feed(t, m, b, "j")
	assertCursor(t, b, 2, 4)
}

func TestDollarStickToLineEnd(t *testing.T) {
	b := buffer.New("ab\nabcdef", buffer.Options{})
	m := New(Options{})

	feed(t, m, b, "$", "j")
	assertCursor(t, b, 1, 5)
}

func TestWordMotionsOnGraphemes(t *testing.T) {
	b := buffer.New("héllo wörld", buffer.Options{})
	m := New(Options{})

	feed(t, m, b, "w")
	assertCursor(t, b, 0, 6)
	feed(t, m, b, "e")
	assertCursor(t, b, 0, 10)
}
