package cellbuffer

// WriteResolvedChars appends the buffer's resolved character content,
// row-major, to *out: one rune per cell for empty/ASCII cells, and for a
// multi-cell cluster either every constituent rune (includeZeroWidth) or
// just its first, visible rune. Continuation cells contribute nothing,
// since their cluster was already written at its start cell. Returns the
// number of runes appended.
func (b *Buffer) WriteResolvedChars(out *[]rune, includeZeroWidth bool) int {
	written := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := b.cells[b.index(x, y)]
			switch cell.kind {
			case cellContinuation:
				continue
			case cellEmpty:
				*out = append(*out, ' ')
				written++
			case cellASCII:
				*out = append(*out, rune(cell.ascii))
				written++
			case cellStart:
				bytes, err := b.pool.Get(cell.id)
				if err != nil {
					*out = append(*out, ' ')
					written++
					continue
				}
				runes := []rune(string(bytes))
				if len(runes) == 0 {
					continue
				}
				if includeZeroWidth {
					*out = append(*out, runes...)
					written += len(runes)
				} else {
					*out = append(*out, runes[0])
					written++
				}
			}
		}
	}
	return written
}
