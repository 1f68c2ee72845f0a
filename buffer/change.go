package buffer

// ChangeSource says which operation produced a Change.
type ChangeSource uint8

const (
	ChangeSourceEdit ChangeSource = iota
	ChangeSourceUndo
	ChangeSourceRedo
)

func (s ChangeSource) String() string {
	switch s {
	case ChangeSourceUndo:
		return "undo"
	case ChangeSourceRedo:
		return "redo"
	default:
		return "edit"
	}
}

// SelectionState is a normalized selection snapshot.
type SelectionState struct {
	Active bool
	Range  Range
}

// AppliedEdit is one effective replacement inside a Change. Undo and redo
// report the whole document as replaced.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string
}

// Change records the last text mutation: versions, cursor and selection on
// both sides, and the edits in the order they were applied.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    Pos
	CursorAfter     Pos
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	AppliedEdits    []AppliedEdit
}

// LastChange returns a copy of the most recent text change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	out := b.lastChange
	out.AppliedEdits = append([]AppliedEdit(nil), b.lastChange.AppliedEdits...)
	return out, true
}

func selectionStateFromInternal(sel selectionState) SelectionState {
	if !sel.active {
		return SelectionState{}
	}
	r := NormalizeRange(Range{Start: sel.anchor, End: sel.end})
	if r.IsEmpty() {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: r}
}

// pendingChange collects edits while a mutation is in progress.
type pendingChange struct {
	Change
}

func (b *Buffer) startChange(src ChangeSource) *pendingChange {
	return &pendingChange{Change{
		Source:          src,
		VersionBefore:   b.version,
		CursorBefore:    b.cursor,
		SelectionBefore: selectionStateFromInternal(b.sel),
	}}
}

func (p *pendingChange) add(e AppliedEdit) {
	e.RangeBefore = NormalizeRange(e.RangeBefore)
	e.RangeAfter = NormalizeRange(e.RangeAfter)
	p.AppliedEdits = append(p.AppliedEdits, e)
}

// finish publishes p as the last change when the buffer version moved.
func (b *Buffer) finish(p *pendingChange) {
	if b.version == p.VersionBefore {
		return
	}
	p.VersionAfter = b.version
	p.CursorAfter = b.cursor
	p.SelectionAfter = selectionStateFromInternal(b.sel)
	b.lastChange = p.Change
	b.hasLastChange = true
}

// wholeDocumentEdit describes replacing before with after, or reports false
// when they are equal.
func wholeDocumentEdit(before, after string) (AppliedEdit, bool) {
	if before == after {
		return AppliedEdit{}, false
	}
	return AppliedEdit{
		RangeBefore: documentRange(before),
		RangeAfter:  documentRange(after),
		InsertText:  after,
		DeletedText: before,
	}, true
}

func documentRange(text string) Range {
	lines := splitLines(text)
	last := len(lines) - 1
	return Range{End: Pos{Row: last, Col: len(lines[last])}}
}
