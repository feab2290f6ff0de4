package textbuffer

import (
	"sort"

	"github.com/aretext/vtext/event"
	"github.com/aretext/vtext/text"
)

// Highlight is one styled range within a single logical line. Overlapping
// highlights on the same line are resolved at render time by Priority
// (higher wins), with Group then insertion order (Seq) as a stable
// tie-break.
type Highlight struct {
	Row       int
	ColStart  int
	ColEnd    int
	StyleID   uint32
	Priority  int
	Group     string
	Seq       int
}

// AddHighlightByCharRange adds a highlight spanning [colStart, colEnd) on
// row.
func (d *Document) AddHighlightByCharRange(row, colStart, colEnd int, styleID uint32, priority int, group string) {
	h := Highlight{
		Row:      row,
		ColStart: colStart,
		ColEnd:   colEnd,
		StyleID:  styleID,
		Priority: priority,
		Group:    group,
		Seq:      d.nextHlSeq,
	}
	d.nextHlSeq++
	d.highlights[row] = append(d.highlights[row], h)
	d.emitter.Emit(event.TopicHighlightsChanged, nil)
}

// AddHighlightByCoords adds highlights covering [rowStart,colStart) through
// [rowEnd,colEnd), splitting multi-line spans into one highlight per row:
// the full line width on interior rows, and the given column bounds on the
// first and last row.
func (d *Document) AddHighlightByCoords(rowStart, colStart, rowEnd, colEnd int, styleID uint32, priority int, group string) {
	if rowStart == rowEnd {
		d.AddHighlightByCharRange(rowStart, colStart, colEnd, styleID, priority, group)
		return
	}
	d.AddHighlightByCharRange(rowStart, colStart, lineWidthSentinel, styleID, priority, group)
	for r := rowStart + 1; r < rowEnd; r++ {
		d.AddHighlightByCharRange(r, 0, lineWidthSentinel, styleID, priority, group)
	}
	d.AddHighlightByCharRange(rowEnd, 0, colEnd, styleID, priority, group)
}

// lineWidthSentinel marks a highlight's ColEnd as "to the end of the line",
// resolved by the caller (typically a view) against the line's actual
// width, since the Text Buffer does not compute virtual line layout.
const lineWidthSentinel = -1

// GetLineHighlights returns row's highlights ordered for rendering:
// highest Priority first, Group then Seq as a stable tie-break.
func (d *Document) GetLineHighlights(row int) []Highlight {
	hs := append([]Highlight(nil), d.highlights[row]...)
	sort.SliceStable(hs, func(i, j int) bool {
		if hs[i].Priority != hs[j].Priority {
			return hs[i].Priority > hs[j].Priority
		}
		if hs[i].Group != hs[j].Group {
			return hs[i].Group < hs[j].Group
		}
		return hs[i].Seq < hs[j].Seq
	})
	return hs
}

// ResolvedLineHighlights returns row's highlights (see GetLineHighlights for
// ordering), with any "to end of line" sentinel ColEnd resolved against
// lineRuneLen, the row's actual length in grapheme clusters.
func (d *Document) ResolvedLineHighlights(row int, lineRuneLen int) []Highlight {
	hs := d.GetLineHighlights(row)
	for i := range hs {
		if hs[i].ColEnd == lineWidthSentinel {
			hs[i].ColEnd = lineRuneLen
		}
	}
	return hs
}

// rowAtOffset returns the logical line number containing byte offset.
func (d *Document) rowAtOffset(offset int) int {
	pos := 0
	row := 0
	d.tree.Walk(func(seg text.Segment) bool {
		span := segSpan(seg)
		if offset < pos+span {
			return false
		}
		if seg.Kind == text.KindHardBreak {
			row++
		}
		pos += span
		return true
	})
	return row
}

// shiftHighlightsAfterInsert re-keys highlights on lines after the insert
// point when the inserted text added whole lines. Highlights on the
// directly edited line are left in place; their columns are not
// re-derived from the edit (a documented simplification — callers that
// need exact column tracking through edits should recompute highlights
// for the edited line after the insert).
func (d *Document) shiftHighlightsAfterInsert(offset int, byteLen int) {
	addedLines := 0
	// Re-derive newline count from the just-built tree state by checking
	// how many hard breaks now exist between offset and offset+byteLen.
	pos := 0
	d.tree.Walk(func(seg text.Segment) bool {
		span := segSpan(seg)
		if pos >= offset && pos < offset+byteLen && seg.Kind == text.KindHardBreak {
			addedLines++
		}
		pos += span
		return pos < offset+byteLen
	})
	if addedLines == 0 {
		return
	}
	startRow := d.rowAtOffset(offset)
	d.shiftRows(startRow+1, addedLines)
}

// shiftHighlightsAfterDelete re-keys highlights after a deletion that
// removed whole lines.
func (d *Document) shiftHighlightsAfterDelete(removedLines int, startRow int) {
	if removedLines <= 0 {
		return
	}
	d.shiftRows(startRow+removedLines+1, -removedLines)
}

func (d *Document) shiftRows(fromRow int, delta int) {
	if delta == 0 {
		return
	}
	next := make(map[int][]Highlight, len(d.highlights))
	for row, hs := range d.highlights {
		newRow := row
		if row >= fromRow {
			newRow = row + delta
		}
		if newRow < 0 {
			continue
		}
		next[newRow] = append(next[newRow], hs...)
	}
	d.highlights = next
}
