package editbuffer

import (
	"github.com/aretext/vtext/text/utf8"
	"github.com/aretext/vtext/textbuffer"
)

// InsertText inserts bytes at the primary cursor and advances the cursor
// past the inserted text. Multi-line insertions push subsequent content
// onto new lines. Any installed placeholder stops showing the moment real
// content makes the document non-empty (see textbuffer.HasPlaceholder).
func (e *EditBuffer) InsertText(bytes []byte) error {
	offset := e.docOffset(e.cursor)
	if err := e.doc.InsertBytesAtOffset(offset, bytes, 0); err != nil {
		return err
	}
	e.cursor = e.cursorAtOffset(offset + len(bytes))
	return nil
}

// cursorAtOffset converts an absolute document byte offset to a logical
// cursor position.
func (e *EditBuffer) cursorAtOffset(offset int) Cursor {
	lines := e.doc.AllLines()
	row := len(lines) - 1
	for i := 0; i < len(lines); i++ {
		next := e.doc.GetLength() + 1
		if i+1 < len(lines) {
			next = lines[i+1].ByteOffset
		}
		if offset < next {
			row = i
			break
		}
	}
	within := offset - lines[row].ByteOffset
	col := byteOffsetToCol(lines[row].Bytes, within)
	return Cursor{Row: row, Col: col}
}

// byteOffsetToCol converts a byte offset within lineBytes to the number of
// whole grapheme clusters preceding it.
func byteOffsetToCol(lineBytes []byte, byteOffset int) int {
	clusters := utf8.FindClusters(lineBytes)
	col := 0
	for _, gc := range clusters {
		if gc.ByteOffset >= byteOffset {
			break
		}
		col++
	}
	return col
}

// Backspace deletes the grapheme cluster before the cursor, joining lines
// when the cursor is at the start of a non-first line.
func (e *EditBuffer) Backspace() error {
	offset := e.docOffset(e.cursor)
	if offset == 0 {
		return nil
	}
	prevOffset := e.prevGraphemeOffset(offset)
	if err := e.doc.DeleteByteRange(prevOffset, offset); err != nil {
		return err
	}
	e.cursor = e.cursorAtOffset(prevOffset)
	return nil
}

// DeleteForward deletes the grapheme cluster at the cursor, joining lines
// when the cursor is at the end of a non-last line.
func (e *EditBuffer) DeleteForward() error {
	offset := e.docOffset(e.cursor)
	if offset >= e.doc.GetLength() {
		return nil
	}
	nextOffset := e.nextGraphemeOffset(offset)
	if err := e.doc.DeleteByteRange(offset, nextOffset); err != nil {
		return err
	}
	e.cursor = e.cursorAtOffset(offset)
	return nil
}

// DeleteRange deletes the document bytes between logical cursors from and
// to (in either order), leaving the cursor at the start of the deleted
// range.
func (e *EditBuffer) DeleteRange(from, to Cursor) error {
	a := e.docOffset(from)
	b := e.docOffset(to)
	if a > b {
		a, b = b, a
	}
	if err := e.doc.DeleteByteRange(a, b); err != nil {
		return err
	}
	e.cursor = e.cursorAtOffset(a)
	return nil
}

// DeleteLine deletes the current line, including its trailing line break,
// leaving the cursor at the start of what is now the current line.
func (e *EditBuffer) DeleteLine() error {
	lines := e.doc.AllLines()
	row := e.cursor.Row
	if row < 0 || row >= len(lines) {
		return nil
	}
	start := lines[row].ByteOffset
	var end int
	if row+1 < len(lines) {
		end = lines[row+1].ByteOffset
	} else {
		end = e.doc.GetLength()
	}
	if err := e.doc.DeleteByteRange(start, end); err != nil {
		return err
	}
	e.cursor = e.cursorAtOffset(start)
	return nil
}

func (e *EditBuffer) prevGraphemeOffset(offset int) int {
	c := e.cursorAtOffset(offset)
	if c.Col > 0 {
		return e.docOffset(Cursor{Row: c.Row, Col: c.Col - 1})
	}
	if c.Row == 0 {
		return 0
	}
	prevRow := c.Row - 1
	return e.docOffset(Cursor{Row: prevRow, Col: e.lineRuneCount(prevRow)})
}

func (e *EditBuffer) nextGraphemeOffset(offset int) int {
	c := e.cursorAtOffset(offset)
	if c.Col < e.lineRuneCount(c.Row) {
		return e.docOffset(Cursor{Row: c.Row, Col: c.Col + 1})
	}
	if c.Row+1 >= e.lineCount() {
		return e.doc.GetLength()
	}
	return e.docOffset(Cursor{Row: c.Row + 1, Col: 0})
}

// SetPlaceholderStyledText installs display-only text, surfaced by the
// document's RenderLines whenever its real content is empty but invisible
// to InsertText/DeleteForward/Backspace and their logical-offset math
// (which only ever see the document's real, possibly-empty rope).
func (e *EditBuffer) SetPlaceholderStyledText(chunks []textbuffer.StyledChunk) {
	e.doc.SetPlaceholderStyledText(chunks)
}
