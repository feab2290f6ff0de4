package editbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretext/vtext/text/utf8"
	"github.com/aretext/vtext/textbuffer"
)

func newTestBuffer(t *testing.T, text string) *EditBuffer {
	t.Helper()
	doc := textbuffer.New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, doc.SetText([]byte(text)))
	return New(doc)
}

func TestSetCursorClampsToLineWidth(t *testing.T) {
	e := newTestBuffer(t, "ab\nc")
	e.SetCursor(0, 100)
	assert.Equal(t, Cursor{Row: 0, Col: 2}, e.Cursor())

	e.SetCursor(100, 0)
	assert.Equal(t, Cursor{Row: 1, Col: 0}, e.Cursor())
}

func TestMoveLeftRightClampToLine(t *testing.T) {
	e := newTestBuffer(t, "abc")
	e.SetCursor(0, 1)
	e.MoveRight(5)
	assert.Equal(t, Cursor{Row: 0, Col: 3}, e.Cursor())

	e.MoveLeft(10)
	assert.Equal(t, Cursor{Row: 0, Col: 0}, e.Cursor())
}

func TestGotoLineSentinelGoesToLastLineEnd(t *testing.T) {
	e := newTestBuffer(t, "aa\nbb\nccc")
	e.GotoLine(1_000_000)
	assert.Equal(t, Cursor{Row: 2, Col: 3}, e.Cursor())
}

func TestGotoLineClampsWithinRange(t *testing.T) {
	e := newTestBuffer(t, "aa\nbb\nccc")
	e.GotoLine(1)
	assert.Equal(t, Cursor{Row: 1, Col: 0}, e.Cursor())
}

func TestInsertTextAdvancesCursor(t *testing.T) {
	e := newTestBuffer(t, "ac")
	e.SetCursor(0, 1)
	require.NoError(t, e.InsertText([]byte("b")))

	assert.Equal(t, Cursor{Row: 0, Col: 2}, e.Cursor())
	assert.Equal(t, "abc", string(e.Document().AllLines()[0].Bytes))
}

func TestInsertMultiLineTextMovesCursorToNewRow(t *testing.T) {
	e := newTestBuffer(t, "ac")
	e.SetCursor(0, 1)
	require.NoError(t, e.InsertText([]byte("b\nd")))

	assert.Equal(t, Cursor{Row: 1, Col: 1}, e.Cursor())
}

func TestBackspaceJoinsLines(t *testing.T) {
	e := newTestBuffer(t, "ab\ncd")
	e.SetCursor(1, 0)
	require.NoError(t, e.Backspace())

	assert.Equal(t, Cursor{Row: 0, Col: 2}, e.Cursor())
	lines := e.Document().AllLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "abcd", string(lines[0].Bytes))
}

func TestDeleteForwardAtEOLJoinsLines(t *testing.T) {
	e := newTestBuffer(t, "ab\ncd")
	e.SetCursor(0, 2)
	require.NoError(t, e.DeleteForward())

	lines := e.Document().AllLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "abcd", string(lines[0].Bytes))
}

func TestDeleteLineRemovesLineAndBreak(t *testing.T) {
	e := newTestBuffer(t, "one\ntwo\nthree")
	e.SetCursor(1, 0)
	require.NoError(t, e.DeleteLine())

	buf, _ := e.Document().GetPlainTextInto(nil)
	assert.Equal(t, "one\nthree", string(buf))
}

func TestNextWordBoundarySkipsWhitespace(t *testing.T) {
	e := newTestBuffer(t, "foo  bar")
	e.SetCursor(0, 0)
	e.NextWordBoundary()
	assert.Equal(t, Cursor{Row: 0, Col: 5}, e.Cursor())
}

func TestPrevWordBoundaryMirrorsNext(t *testing.T) {
	e := newTestBuffer(t, "foo  bar")
	e.SetCursor(0, 8)
	e.PrevWordBoundary()
	assert.Equal(t, Cursor{Row: 0, Col: 5}, e.Cursor())
}

func TestNextWordBoundaryAtEOLGoesToNextLine(t *testing.T) {
	e := newTestBuffer(t, "foo\nbar")
	e.SetCursor(0, 3)
	e.NextWordBoundary()
	assert.Equal(t, Cursor{Row: 1, Col: 0}, e.Cursor())
}

func TestPlaceholderShowsOnlyWhenEmpty(t *testing.T) {
	doc := textbuffer.New(utf8.WidthMethodWcwidth, 4)
	e := New(doc)
	e.SetPlaceholderStyledText([]textbuffer.StyledChunk{{Bytes: []byte("placeholder"), StyleID: 1}})

	assert.True(t, doc.HasPlaceholder())
	assert.Equal(t, 0, doc.GetLength())

	require.NoError(t, e.InsertText([]byte("x")))
	assert.False(t, doc.HasPlaceholder())

	require.NoError(t, e.Backspace())
	assert.True(t, doc.HasPlaceholder())
}
