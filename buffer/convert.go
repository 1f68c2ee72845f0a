package buffer

type OffsetClampMode uint8

const (
	// OffsetError rejects offsets outside the document or inside a cluster.
	OffsetError OffsetClampMode = iota
	// OffsetClamp clamps into the document and snaps down to a cluster start.
	OffsetClamp
)

// PosFromByteOffset maps a byte offset into Text() to a document position.
// Newlines count as one byte.
func (b *Buffer) PosFromByteOffset(off int, mode OffsetClampMode) (Pos, bool) {
	total := b.docByteLen()
	switch mode {
	case OffsetError:
		if off < 0 || off > total {
			return Pos{}, false
		}
	case OffsetClamp:
		off = clampInt(off, 0, total)
	default:
		return Pos{}, false
	}

	p, exact := b.posAtByte(off)
	if !exact && mode == OffsetError {
		return Pos{}, false
	}
	return p, true
}

// ByteOffsetFromPos maps pos to a byte offset into Text().
func (b *Buffer) ByteOffsetFromPos(pos Pos, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if b.clampPos(pos) != pos {
			return 0, false
		}
	case OffsetClamp:
		pos = b.clampPos(pos)
	default:
		return 0, false
	}
	return b.posToByteOffset(pos), true
}

func (b *Buffer) docByteLen() int {
	total := 0
	for row, line := range b.lines {
		for _, cluster := range line {
			total += len(cluster)
		}
		if row < len(b.lines)-1 {
			total++
		}
	}
	return total
}

// posAtByte returns the position of the cluster containing off. exact is
// false when off falls inside a multi-byte cluster.
func (b *Buffer) posAtByte(off int) (p Pos, exact bool) {
	cur := 0
	for row, line := range b.lines {
		for col, cluster := range line {
			if off == cur {
				return Pos{Row: row, Col: col}, true
			}
			next := cur + len(cluster)
			if off < next {
				return Pos{Row: row, Col: col}, false
			}
			cur = next
		}
		if off == cur {
			return Pos{Row: row, Col: len(line)}, true
		}
		cur++ // newline
	}
	last := len(b.lines) - 1
	return Pos{Row: last, Col: len(b.lines[last])}, false
}

func (b *Buffer) posToByteOffset(pos Pos) int {
	off := 0
	for row := 0; row < pos.Row; row++ {
		for _, cluster := range b.lines[row] {
			off += len(cluster)
		}
		off++
	}
	for col := 0; col < pos.Col; col++ {
		off += len(b.lines[pos.Row][col])
	}
	return off
}
