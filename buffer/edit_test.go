package buffer

import "testing"

func TestInsertText_ReplacesSelectionAndMovesCursor(t *testing.T) {
	b := New("hello world", Options{})
	b.SetSelection(Range{Start: Pos{Row: 0, Col: 6}, End: Pos{Row: 0, Col: 11}})
	b.InsertText("there\nfriend")

	if got, want := b.Text(), "hello there\nfriend"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 6}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
	if b.TextVersion() != 1 {
		t.Fatalf("text version=%d, want 1", b.TextVersion())
	}
}

func TestInsertText_EmptyDeletesSelection(t *testing.T) {
	b := New("abc", Options{})
	b.SetSelection(Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 0, Col: 2}})
	b.InsertText("")
	if got := b.Text(); got != "c" {
		t.Fatalf("text=%q, want %q", got, "c")
	}

	v := b.Version()
	b.InsertText("")
	if b.Version() != v {
		t.Fatalf("empty insert without selection must be a no-op")
	}
}

func TestDeleteBackward(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		cursor     Pos
		wantText   string
		wantCursor Pos
	}{
		{name: "mid line", text: "abc", cursor: Pos{Row: 0, Col: 2}, wantText: "ac", wantCursor: Pos{Row: 0, Col: 1}},
		{name: "join lines", text: "ab\ncd", cursor: Pos{Row: 1, Col: 0}, wantText: "abcd", wantCursor: Pos{Row: 0, Col: 2}},
		{name: "doc start", text: "ab", cursor: Pos{}, wantText: "ab", wantCursor: Pos{}},
		{name: "grapheme cluster", text: "éx", cursor: Pos{Row: 0, Col: 1}, wantText: "x", wantCursor: Pos{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(tc.text, Options{})
			b.SetCursor(tc.cursor)
			b.DeleteBackward()
			if got := b.Text(); got != tc.wantText {
				t.Fatalf("text=%q, want %q", got, tc.wantText)
			}
			if got := b.Cursor(); got != tc.wantCursor {
				t.Fatalf("cursor=%v, want %v", got, tc.wantCursor)
			}
		})
	}
}

func TestDeleteForward(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(Pos{Row: 0, Col: 2})
	b.DeleteForward()
	if got := b.Text(); got != "abcd" {
		t.Fatalf("text=%q, want %q", got, "abcd")
	}
	if got := b.Cursor(); got != (Pos{Row: 0, Col: 2}) {
		t.Fatalf("cursor=%v", got)
	}

	b.SetCursor(Pos{Row: 0, Col: 4})
	v := b.Version()
	b.DeleteForward()
	if b.Version() != v {
		t.Fatalf("delete at doc end must be a no-op")
	}
}

func TestApply_SequentialEditsSingleUndoStep(t *testing.T) {
	b := New("one two", Options{})
	b.Apply(
		TextEdit{Range: Range{Start: Pos{Row: 0, Col: 4}, End: Pos{Row: 0, Col: 7}}, Text: "2"},
		TextEdit{Range: Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 0, Col: 3}}, Text: "1"},
	)
	if got := b.Text(); got != "1 2" {
		t.Fatalf("text=%q, want %q", got, "1 2")
	}
	if got := b.Cursor(); got != (Pos{Row: 0, Col: 1}) {
		t.Fatalf("cursor=%v, want end of last edit", got)
	}

	ch, ok := b.LastChange()
	if !ok || len(ch.AppliedEdits) != 2 {
		t.Fatalf("expected 2 applied edits, got %+v", ch)
	}

	if !b.Undo() {
		t.Fatalf("expected undo")
	}
	if got := b.Text(); got != "one two" {
		t.Fatalf("text after undo=%q", got)
	}
}

func TestApply_NoEffectiveEditIsNoop(t *testing.T) {
	b := New("abc", Options{})
	b.Apply(TextEdit{Range: Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 0, Col: 1}}, Text: "a"})
	if b.Version() != 0 || b.CanUndo() {
		t.Fatalf("expected no-op, version=%d", b.Version())
	}
}
