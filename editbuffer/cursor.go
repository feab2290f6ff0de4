// Package editbuffer layers logical cursors and edit intent over a Text
// Buffer, the way aretext's locate and exec packages turn tree positions
// into cursor motions and edit operations, generalized over grapheme
// clusters instead of single runes.
package editbuffer

import (
	"github.com/aretext/vtext/text/utf8"
	"github.com/aretext/vtext/textbuffer"
)

// Cursor is a logical position: Row is a source line index, Col is a
// grapheme-cluster index within that line.
type Cursor struct {
	Row int
	Col int
}

// EditBuffer is a Text Buffer plus a primary cursor (and, in principle,
// additional cursors — only the primary is implemented today).
type EditBuffer struct {
	doc    *textbuffer.Document
	cursor Cursor
}

// New constructs an EditBuffer over doc with the cursor at (0, 0).
func New(doc *textbuffer.Document) *EditBuffer {
	return &EditBuffer{doc: doc}
}

// Document returns the underlying Text Buffer.
func (e *EditBuffer) Document() *textbuffer.Document {
	return e.doc
}

// Cursor returns the primary cursor's current logical position.
func (e *EditBuffer) Cursor() Cursor {
	return e.cursor
}

func (e *EditBuffer) lineCount() int {
	return e.doc.GetLineCount()
}

func (e *EditBuffer) lineBytes(row int) []byte {
	lines := e.doc.AllLines()
	if row < 0 || row >= len(lines) {
		return nil
	}
	return lines[row].Bytes
}

// lineClusters returns row's grapheme clusters and its byte content.
func (e *EditBuffer) lineClusters(row int) ([]byte, []utf8.Cluster) {
	b := e.lineBytes(row)
	return b, utf8.FindClusters(b)
}

// lineRuneCount returns the number of grapheme clusters on row (the
// maximum valid Col value for set_cursor is this count, one past the last
// cluster).
func (e *EditBuffer) lineRuneCount(row int) int {
	_, clusters := e.lineClusters(row)
	return len(clusters)
}

// colToByteOffset converts a grapheme-aligned column on row to a byte
// offset within that line's bytes, clamping col to [0, lineRuneCount(row)].
func (e *EditBuffer) colToByteOffset(row, col int) int {
	b, clusters := e.lineClusters(row)
	if col <= 0 {
		return 0
	}
	if col >= len(clusters) {
		return len(b)
	}
	return clusters[col].ByteOffset
}

// docOffset converts a logical cursor position to an absolute document
// byte offset.
func (e *EditBuffer) docOffset(c Cursor) int {
	lines := e.doc.AllLines()
	if c.Row < 0 {
		c.Row = 0
	}
	if c.Row >= len(lines) {
		c.Row = len(lines) - 1
	}
	line := lines[c.Row]
	return line.ByteOffset + e.colToByteOffset(c.Row, c.Col)
}

// SetCursor moves the primary cursor to (row, col), clamping row to
// [0, lineCount-1] and col to row's width at a grapheme cluster boundary.
func (e *EditBuffer) SetCursor(row, col int) {
	if row < 0 {
		row = 0
	}
	if max := e.lineCount() - 1; row > max {
		row = max
	}
	if col < 0 {
		col = 0
	}
	if maxCol := e.lineRuneCount(row); col > maxCol {
		col = maxCol
	}
	e.cursor = Cursor{Row: row, Col: col}
}

// MoveLeft moves the primary cursor back by count grapheme clusters,
// stopping at the start of the line.
func (e *EditBuffer) MoveLeft(count int) {
	col := e.cursor.Col - count
	if col < 0 {
		col = 0
	}
	e.SetCursor(e.cursor.Row, col)
}

// MoveRight moves the primary cursor forward by count grapheme clusters,
// stopping at the end of the line.
func (e *EditBuffer) MoveRight(count int) {
	e.SetCursor(e.cursor.Row, e.cursor.Col+count)
}

// MoveUp moves the primary cursor up count lines, preserving its current
// column (clamped to the destination line's width). Desired-visual-column
// preservation across empty/short lines is layered on top of this by
// editorview, which tracks desired_visual_column against virtual lines.
func (e *EditBuffer) MoveUp(count int) {
	e.SetCursor(e.cursor.Row-count, e.cursor.Col)
}

// MoveDown moves the primary cursor down count lines, preserving its
// current column (clamped to the destination line's width).
func (e *EditBuffer) MoveDown(count int) {
	e.SetCursor(e.cursor.Row+count, e.cursor.Col)
}

// GotoLine moves the primary cursor to the start of line n, clamping n to
// [0, lineCount-1]. A very large n (the "go to end" sentinel) clamps to the
// last line's end rather than its start.
func (e *EditBuffer) GotoLine(n int) {
	lastRow := e.lineCount() - 1
	if n > lastRow {
		e.SetCursor(lastRow, e.lineRuneCount(lastRow))
		return
	}
	e.SetCursor(n, 0)
}

// GetEOL returns the logical cursor at the end of the current line.
func (e *EditBuffer) GetEOL() Cursor {
	return Cursor{Row: e.cursor.Row, Col: e.lineRuneCount(e.cursor.Row)}
}
