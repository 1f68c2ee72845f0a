package buffer

import "regexp"

// Find returns the range of the next match of re relative to from.
//
// Forward searches start strictly after from; backward searches end strictly
// before it. When wrap is set the search continues from the other end of the
// document. Empty matches are ignored.
func (b *Buffer) Find(re *regexp.Regexp, from Pos, forward, wrap bool) (Range, bool) {
	if re == nil {
		return Range{}, false
	}
	text := b.Text()
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return Range{}, false
	}
	fromOff := b.posToByteOffset(b.clampPos(from))

	pick := -1
	if forward {
		for i, loc := range locs {
			if loc[0] > fromOff && loc[1] > loc[0] {
				pick = i
				break
			}
		}
		if pick < 0 && wrap {
			for i, loc := range locs {
				if loc[1] > loc[0] {
					pick = i
					break
				}
			}
		}
	} else {
		for i := len(locs) - 1; i >= 0; i-- {
			if locs[i][0] < fromOff && locs[i][1] > locs[i][0] {
				pick = i
				break
			}
		}
		if pick < 0 && wrap {
			for i := len(locs) - 1; i >= 0; i-- {
				if locs[i][1] > locs[i][0] {
					pick = i
					break
				}
			}
		}
	}
	if pick < 0 {
		return Range{}, false
	}

	start, _ := b.posAtByte(locs[pick][0])
	end, exact := b.posAtByte(locs[pick][1])
	if !exact {
		end.Col++
	}
	return Range{Start: start, End: b.clampPos(end)}, true
}
