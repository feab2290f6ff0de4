package textbuffer

import "github.com/aretext/vtext/text"

// DocLine is one logical, hard-break-delimited line: its byte offset within
// the document and its content with the trailing break stripped.
type DocLine struct {
	ByteOffset int
	Bytes      []byte
}

// AllLines returns every logical line in the document in order, grounded on
// the same tree walk GetPlainTextInto uses to reconstruct plain text. A
// document with no hard breaks returns exactly one line (possibly empty).
func (d *Document) AllLines() []DocLine {
	var lines []DocLine
	var cur []byte
	offset := 0
	lineStart := 0
	d.tree.Walk(func(seg text.Segment) bool {
		switch seg.Kind {
		case text.KindTextChunk:
			cur = append(cur, d.arena.slice(seg.ByteStart, seg.ByteEnd)...)
			offset += seg.ByteLen()
		case text.KindHardBreak:
			lines = append(lines, DocLine{ByteOffset: lineStart, Bytes: cur})
			breakLen := 1
			if seg.Ending == text.EndingCRLF {
				breakLen = 2
			}
			offset += breakLen
			lineStart = offset
			cur = nil
		}
		return true
	})
	lines = append(lines, DocLine{ByteOffset: lineStart, Bytes: cur})
	return lines
}
