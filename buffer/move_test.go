package buffer

import "testing"

func TestMove(t *testing.T) {
	cases := []struct {
		name string
		text string
		from Pos
		move Move
		want Pos
	}{
		{name: "left wraps to previous line", text: "ab\ncd", from: Pos{Row: 1, Col: 0}, move: Move{Unit: MoveGrapheme, Dir: DirLeft}, want: Pos{Row: 0, Col: 2}},
		{name: "right wraps to next line", text: "ab\ncd", from: Pos{Row: 0, Col: 2}, move: Move{Unit: MoveGrapheme, Dir: DirRight}, want: Pos{Row: 1, Col: 0}},
		{name: "down clamps column", text: "abcd\nx", from: Pos{Row: 0, Col: 3}, move: Move{Unit: MoveLine, Dir: DirDown}, want: Pos{Row: 1, Col: 1}},
		{name: "up at top stays", text: "ab", from: Pos{Row: 0, Col: 1}, move: Move{Unit: MoveLine, Dir: DirUp}, want: Pos{Row: 0, Col: 1}},
		{name: "word right", text: "foo  bar", from: Pos{Row: 0, Col: 0}, move: Move{Unit: MoveWord, Dir: DirRight}, want: Pos{Row: 0, Col: 3}},
		{name: "word left", text: "foo  bar", from: Pos{Row: 0, Col: 8}, move: Move{Unit: MoveWord, Dir: DirLeft}, want: Pos{Row: 0, Col: 5}},
		{name: "line end", text: "héllo", from: Pos{}, move: Move{Unit: MoveLine, Dir: DirEnd}, want: Pos{Row: 0, Col: 5}},
		{name: "doc end", text: "a\nbc", from: Pos{}, move: Move{Unit: MoveDoc, Dir: DirEnd}, want: Pos{Row: 1, Col: 2}},
		{name: "doc home", text: "a\nbc", from: Pos{Row: 1, Col: 1}, move: Move{Unit: MoveDoc, Dir: DirHome}, want: Pos{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(tc.text, Options{})
			b.SetCursor(tc.from)
			b.Move(tc.move)
			if got := b.Cursor(); got != tc.want {
				t.Fatalf("cursor=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestMove_ExtendKeepsAnchor(t *testing.T) {
	b := New("abcd", Options{})
	b.SetCursor(Pos{Row: 0, Col: 1})
	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})
	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})

	r, ok := b.Selection()
	if !ok || r != (Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 0, Col: 3}}) {
		t.Fatalf("selection=%v ok=%v", r, ok)
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft})
	if _, ok := b.Selection(); ok {
		t.Fatalf("plain move must clear selection")
	}
}
