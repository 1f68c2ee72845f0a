package editor

import "github.com/hydroxite/hydroxite/buffer"

type ChangeEvent struct {
	Version     uint64
	TextVersion uint64
	Cursor      buffer.Pos
	Selection   struct {
		Range  buffer.Range
		Active bool
	}

	// TextChanged is set when the document text differs from the previous
	// event's.
	TextChanged bool
	// Edits are the replacements of the latest text change, set together
	// with TextChanged. Undo and redo report one whole-document edit.
	Edits  []buffer.AppliedEdit
	Source buffer.ChangeSource
}

func buildChangeEvent(b *buffer.Buffer, prevTextVersion uint64) ChangeEvent {
	ev := ChangeEvent{
		Version:     b.Version(),
		TextVersion: b.TextVersion(),
		Cursor:      b.Cursor(),
		TextChanged: b.TextVersion() != prevTextVersion,
	}
	if ch, ok := b.LastChange(); ok && ev.TextChanged && ch.VersionAfter == ev.Version {
		ev.Edits = ch.AppliedEdits
		ev.Source = ch.Source
	}
	if r, ok := b.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	return ev
}
