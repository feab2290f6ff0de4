package editbuffer

import "github.com/aretext/vtext/text/utf8"

// isWordBreakByte reports whether b separates word runs: ASCII whitespace
// or a byte from the find_wrap_breaks punctuation class, including the
// hyphen (per spec, hyphens are boundaries matching that class).
func isWordBreakByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '-', '/', '\\', '.', ',', ':', ';', '!', '?', '(', ')', '[', ']', '{', '}':
		return true
	default:
		return false
	}
}

// NextWordBoundary moves the primary cursor to the start of the next word
// run: the first non-break character after a span of whitespace/
// punctuation, or the start of the next line if already at end of line.
func (e *EditBuffer) NextWordBoundary() {
	b, clusters := e.lineClusters(e.cursor.Row)
	col := e.cursor.Col

	if col >= len(clusters) {
		if e.cursor.Row+1 < e.lineCount() {
			e.SetCursor(e.cursor.Row+1, 0)
		}
		return
	}

	i := col
	for i < len(clusters) && !isWordBreakByte(firstByte(b, clusters[i])) {
		i++
	}
	for i < len(clusters) && isWordBreakByte(firstByte(b, clusters[i])) {
		i++
	}
	if i >= len(clusters) {
		if e.cursor.Row+1 < e.lineCount() {
			e.SetCursor(e.cursor.Row+1, 0)
			return
		}
	}
	e.SetCursor(e.cursor.Row, i)
}

// PrevWordBoundary moves the primary cursor to the start of the word run
// before the cursor; the mirror of NextWordBoundary.
func (e *EditBuffer) PrevWordBoundary() {
	b, clusters := e.lineClusters(e.cursor.Row)
	col := e.cursor.Col

	if col == 0 {
		if e.cursor.Row > 0 {
			prevRow := e.cursor.Row - 1
			e.SetCursor(prevRow, e.lineRuneCount(prevRow))
		}
		return
	}

	i := col - 1
	for i > 0 && isWordBreakByte(firstByte(b, clusters[i])) {
		i--
	}
	for i > 0 && !isWordBreakByte(firstByte(b, clusters[i-1])) {
		i--
	}
	e.SetCursor(e.cursor.Row, i)
}

func firstByte(lineBytes []byte, gc utf8.Cluster) byte {
	if gc.ByteOffset >= len(lineBytes) {
		return 0
	}
	return lineBytes[gc.ByteOffset]
}
