package editor

import "testing"

func TestLayoutLine_TabsAndWideGraphemes(t *testing.T) {
	l := layoutLine([]string{"a", "\t", "界", "b"}, 4)

	wantStarts := []int{0, 1, 4, 6}
	for i, c := range l.cells {
		if c.Start != wantStarts[i] {
			t.Fatalf("cell %d start: got %d, want %d", i, c.Start, wantStarts[i])
		}
	}
	if l.cells[1].Text != "   " {
		t.Fatalf("tab text: got %q, want 3 spaces", l.cells[1].Text)
	}
	if l.width != 7 {
		t.Fatalf("width: got %d, want 7", l.width)
	}
}

func TestLayoutLine_ColCellMapping(t *testing.T) {
	l := layoutLine([]string{"a", "界", "b"}, 4)

	cases := []struct {
		cell, col int
	}{
		{cell: 0, col: 0},
		{cell: 1, col: 1},
		{cell: 2, col: 1},
		{cell: 3, col: 2},
		{cell: 9, col: 3},
	}
	for _, tc := range cases {
		if got := l.colForCell(tc.cell); got != tc.col {
			t.Fatalf("colForCell(%d): got %d, want %d", tc.cell, got, tc.col)
		}
	}
	if got := l.cellForCol(2); got != 3 {
		t.Fatalf("cellForCol(2): got %d, want 3", got)
	}
	if got := l.cellForCol(3); got != 4 {
		t.Fatalf("cellForCol(eol): got %d, want 4", got)
	}
}
