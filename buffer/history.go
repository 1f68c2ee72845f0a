package buffer

type bufferSnapshot struct {
	text   string
	cursor Pos
	sel    selectionState
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot

	// groupDepth > 0 coalesces every edit into the first snapshot taken
	// after BeginGroup.
	groupDepth    int
	groupRecorded bool
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{
		text:   b.Text(),
		cursor: b.cursor,
		sel:    b.sel,
	}
}

func (b *Buffer) restore(s bufferSnapshot) {
	b.lines = splitLines(s.text)
	b.cursor = b.clampPos(s.cursor)

	if !s.sel.active {
		b.sel = selectionState{}
		return
	}

	anchor := b.clampPos(s.sel.anchor)
	end := b.clampPos(s.sel.end)
	if anchor == end {
		b.sel = selectionState{}
		return
	}
	b.sel = selectionState{active: true, anchor: anchor, end: end}
}

func (b *Buffer) recordUndo(prev bufferSnapshot) {
	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}
	b.hist.redo = nil

	if b.hist.groupDepth > 0 {
		if b.hist.groupRecorded {
			return
		}
		b.hist.groupRecorded = true
	}

	b.hist.undo = append(b.hist.undo, prev)
	if len(b.hist.undo) > limit {
		b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
	}
}

// BeginGroup starts coalescing subsequent edits into a single undo step.
// Groups nest; only the outermost EndGroup closes the step.
func (b *Buffer) BeginGroup() {
	if b.hist.groupDepth == 0 {
		b.hist.groupRecorded = false
	}
	b.hist.groupDepth++
}

// EndGroup closes a group opened with BeginGroup.
func (b *Buffer) EndGroup() {
	if b.hist.groupDepth > 0 {
		b.hist.groupDepth--
	}
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

func (b *Buffer) Undo() bool {
	if len(b.hist.undo) == 0 {
		return false
	}
	b.hist.groupDepth = 0

	cur := b.snapshot()
	pc := b.startChange(ChangeSourceUndo)

	i := len(b.hist.undo) - 1
	prev := b.hist.undo[i]
	b.hist.undo = b.hist.undo[:i]
	b.hist.redo = append(b.hist.redo, cur)

	b.restore(prev)
	b.version++
	b.textVersion++
	if applied, ok := wholeDocumentEdit(cur.text, prev.text); ok {
		pc.add(applied)
	}
	b.finish(pc)
	return true
}

func (b *Buffer) Redo() bool {
	if len(b.hist.redo) == 0 {
		return false
	}
	b.hist.groupDepth = 0

	cur := b.snapshot()
	pc := b.startChange(ChangeSourceRedo)

	i := len(b.hist.redo) - 1
	next := b.hist.redo[i]
	b.hist.redo = b.hist.redo[:i]

	if limit := b.opt.HistoryLimit; limit > 0 {
		b.hist.undo = append(b.hist.undo, cur)
		if len(b.hist.undo) > limit {
			b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
		}
	}

	b.restore(next)
	b.version++
	b.textVersion++
	if applied, ok := wholeDocumentEdit(cur.text, next.text); ok {
		pc.add(applied)
	}
	b.finish(pc)
	return true
}
