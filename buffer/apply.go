package buffer

// Apply runs edits in order as a single undo step and reports whether the
// text changed. Each range is read against the text left by the edits
// before it and clamped to the document. The cursor ends after the last
// effective edit and any selection is dropped.
func (b *Buffer) Apply(edits ...TextEdit) bool {
	if len(edits) == 0 {
		return false
	}

	prev := b.snapshot()
	pc := b.startChange(ChangeSourceEdit)
	cursor := b.cursor
	for _, e := range edits {
		next, applied, ok := b.replaceRange(e.Range, e.Text)
		if ok {
			cursor = next
			pc.add(applied)
		}
	}
	if len(pc.AppliedEdits) == 0 {
		return false
	}

	b.cursor = b.clampPos(cursor)
	b.sel = selectionState{}
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	b.finish(pc)
	return true
}
