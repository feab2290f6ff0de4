package textbuffer

import (
	"github.com/aretext/vtext/event"
	"github.com/aretext/vtext/text"
	"github.com/aretext/vtext/text/utf8"
	"github.com/aretext/vtext/verr"
)

// buildSegments decomposes b into a sequence of TextChunk/HardBreak
// segments, appending b's bytes to the arena once up front. Hard breaks
// carry no bytes of their own; GetPlainTextInto re-materializes them.
func (d *Document) buildSegments(b []byte, styleID uint32) []text.Segment {
	base, _ := d.arena.append(b)
	breaks := utf8.FindLineBreaks(b)

	var segs []text.Segment
	prev := 0
	for _, lb := range breaks {
		breakLen := 1
		if lb.Kind == utf8.LineBreakCRLF {
			breakLen = 2
		}
		lineEnd := lb.Offset - breakLen
		if lineEnd > prev {
			segs = append(segs, d.makeChunk(base+prev, base+lineEnd, b[prev:lineEnd], styleID))
		}
		switch lb.Kind {
		case utf8.LineBreakCRLF:
			segs = append(segs, text.HardBreakCRLF())
		case utf8.LineBreakCR:
			segs = append(segs, text.HardBreakCR())
		default:
			segs = append(segs, text.HardBreak())
		}
		prev = lb.Offset
	}
	if prev < len(b) {
		segs = append(segs, d.makeChunk(base+prev, base+len(b), b[prev:], styleID))
	}
	return segs
}

func (d *Document) makeChunk(byteStart, byteEnd int, content []byte, styleID uint32) text.Segment {
	width := utf8.CalculateTextWidth(content, d.widthMethod, d.tabWidth)
	ascii := utf8.IsASCIIOnly(content)
	return text.TextChunk(d.arena.memID, byteStart, byteEnd, width, ascii, styleID)
}

// locate resolves a document byte offset to the segment that contains it
// and the offset within that segment. A byte offset that lands exactly on
// a segment boundary resolves to the start of the following segment; the
// document's total length resolves to (segmentCount, 0). This is an O(n)
// walk, a scope-conscious simplification: the rope's own structural
// operations (Insert/Delete/Split/Concat by segment index) stay O(log n),
// but mapping a byte offset to a segment index is not cached here.
func (d *Document) locate(offset int) (segIndex, within int) {
	pos := 0
	idx := 0
	found := false
	d.tree.Walk(func(seg text.Segment) bool {
		span := segSpan(seg)
		if offset < pos+span {
			segIndex = idx
			within = offset - pos
			found = true
			return false
		}
		pos += span
		idx++
		return true
	})
	if !found {
		segIndex = d.tree.Count()
		within = 0
	}
	return segIndex, within
}

// ensureBoundaryAt splits the text chunk straddling offset, if any, into
// two chunks so that a segment boundary exists exactly at offset.
func (d *Document) ensureBoundaryAt(offset int) {
	idx, within := d.locate(offset)
	if idx >= d.tree.Count() || within == 0 {
		return
	}
	seg, err := d.tree.Get(idx)
	if err != nil || seg.Kind != text.KindTextChunk {
		return
	}
	if within >= seg.ByteLen() {
		return
	}
	splitAt := seg.ByteStart + within
	content := d.arena.slice(seg.ByteStart, splitAt)
	left := d.makeChunk(seg.ByteStart, splitAt, content, seg.StyleID)
	rightContent := d.arena.slice(splitAt, seg.ByteEnd)
	right := d.makeChunk(splitAt, seg.ByteEnd, rightContent, seg.StyleID)

	_ = d.tree.Replace(idx, left)
	_ = d.tree.Insert(idx+1, right)
}

// InsertBytesAtOffset inserts b (valid UTF-8) at document byte offset
// offset under styleID, coalescing into the preceding text chunk when it
// shares the style and sits at the arena's current tail (the common case
// during sequential typing).
func (d *Document) InsertBytesAtOffset(offset int, b []byte, styleID uint32) error {
	if len(b) == 0 {
		return nil
	}
	if offset < 0 || offset > d.GetLength() {
		return verr.InvalidIndex{Index: offset, Len: d.GetLength()}
	}
	if !utf8.Validate(b) {
		return verr.InvalidUtf8{ByteOffset: utf8.FirstInvalidByteOffset(b)}
	}

	d.ensureBoundaryAt(offset)
	idx, _ := d.locate(offset)

	if !containsNewline(b) && idx > 0 {
		if prev, err := d.tree.Get(idx - 1); err == nil &&
			prev.Kind == text.KindTextChunk &&
			prev.StyleID == styleID &&
			prev.ByteEnd == len(d.arena.bytes) {

			start, end := d.arena.append(b)
			_ = start
			extra := utf8.CalculateTextWidth(b, d.widthMethod, d.tabWidth)
			merged := text.TextChunk(
				d.arena.memID,
				prev.ByteStart,
				end,
				prev.Width+extra,
				prev.AsciiOnly && utf8.IsASCIIOnly(b),
				styleID,
			)
			if err := d.tree.Replace(idx-1, merged); err != nil {
				return err
			}
			d.shiftHighlightsAfterInsert(offset, len(b))
			d.emitter.Emit(event.TopicDocumentChanged, nil)
			return nil
		}
	}

	segs := d.buildSegments(b, styleID)
	if err := d.tree.InsertSlice(idx, segs); err != nil {
		return err
	}
	d.shiftHighlightsAfterInsert(offset, len(b))
	d.emitter.Emit(event.TopicDocumentChanged, nil)
	return nil
}

func containsNewline(b []byte) bool {
	for _, c := range b {
		if c == '\n' || c == '\r' {
			return true
		}
	}
	return false
}

// DeleteByteRange removes the bytes in [start, end).
func (d *Document) DeleteByteRange(start, end int) error {
	n := d.GetLength()
	if start < 0 || end < start || end > n {
		return verr.InvalidIndex{Index: end, Len: n}
	}
	if start == end {
		return nil
	}

	startRow := d.rowAtOffset(start)
	removedLines := d.rowAtOffset(end) - startRow

	d.ensureBoundaryAt(start)
	d.ensureBoundaryAt(end)
	si, _ := d.locate(start)
	ei, _ := d.locate(end)

	if err := d.tree.DeleteRange(si, ei); err != nil {
		return err
	}
	d.shiftHighlightsAfterDelete(removedLines, startRow)
	d.emitter.Emit(event.TopicDocumentChanged, nil)
	return nil
}
