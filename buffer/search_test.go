package buffer

import (
	"regexp"
	"testing"
)

func TestFind(t *testing.T) {
	b := New("foo bar\nbaz foo\nfoo", Options{})
	re := regexp.MustCompile(`foo`)

	r, ok := b.Find(re, Pos{}, true, false)
	if !ok || r != (Range{Start: Pos{Row: 1, Col: 4}, End: Pos{Row: 1, Col: 7}}) {
		t.Fatalf("forward from origin: got %v ok=%v", r, ok)
	}

	r, ok = b.Find(re, Pos{Row: 2, Col: 0}, true, false)
	if ok {
		t.Fatalf("expected no match without wrap, got %v", r)
	}

	r, ok = b.Find(re, Pos{Row: 2, Col: 0}, true, true)
	if !ok || r.Start != (Pos{}) {
		t.Fatalf("wrapped forward: got %v ok=%v", r, ok)
	}

	r, ok = b.Find(re, Pos{Row: 1, Col: 4}, false, false)
	if !ok || r.Start != (Pos{}) {
		t.Fatalf("backward: got %v ok=%v", r, ok)
	}

	r, ok = b.Find(re, Pos{}, false, true)
	if !ok || r.Start != (Pos{Row: 2, Col: 0}) {
		t.Fatalf("wrapped backward: got %v ok=%v", r, ok)
	}
}

func TestFind_GraphemeColumns(t *testing.T) {
	b := New("héllo wörld", Options{})
	r, ok := b.Find(regexp.MustCompile(`w.r`), Pos{}, true, false)
	if !ok || r != (Range{Start: Pos{Row: 0, Col: 6}, End: Pos{Row: 0, Col: 9}}) {
		t.Fatalf("got %v ok=%v", r, ok)
	}
}

func TestFind_NoMatch(t *testing.T) {
	b := New("abc", Options{})
	if _, ok := b.Find(regexp.MustCompile(`z`), Pos{}, true, true); ok {
		t.Fatalf("expected no match")
	}
	if _, ok := b.Find(nil, Pos{}, true, true); ok {
		t.Fatalf("nil pattern must not match")
	}
}
