package textbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretext/vtext/text/utf8"
)

func plainText(d *Document) string {
	buf, _ := d.GetPlainTextInto(nil)
	return string(buf)
}

func TestSetTextAndGetPlainText(t *testing.T) {
	d := New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, d.SetText([]byte("hello\nworld")))

	assert.Equal(t, "hello\nworld", plainText(d))
	assert.Equal(t, 11, d.GetLength())
	assert.Equal(t, 2, d.GetLineCount())
}

func TestSetTextRejectsInvalidUtf8(t *testing.T) {
	d := New(utf8.WidthMethodWcwidth, 4)
	err := d.SetText([]byte{0xFF})
	require.Error(t, err)
}

func TestInsertAtEndCoalescesIntoTailChunk(t *testing.T) {
	d := New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, d.SetText([]byte("ab")))

	require.NoError(t, d.InsertBytesAtOffset(2, []byte("c"), 0))
	require.NoError(t, d.InsertBytesAtOffset(3, []byte("d"), 0))

	assert.Equal(t, "abcd", plainText(d))
	assert.Equal(t, 1, d.tree.Count())
}

func TestInsertInMiddleSplitsChunk(t *testing.T) {
	d := New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, d.SetText([]byte("ace")))

	require.NoError(t, d.InsertBytesAtOffset(1, []byte("b"), 0))
	require.NoError(t, d.InsertBytesAtOffset(3, []byte("d"), 0))

	assert.Equal(t, "abcde", plainText(d))
}

func TestInsertMultiLine(t *testing.T) {
	d := New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, d.SetText([]byte("ac")))

	require.NoError(t, d.InsertBytesAtOffset(1, []byte("b\nd\ne"), 0))

	assert.Equal(t, "ab\nd\nec", plainText(d))
	assert.Equal(t, 3, d.GetLineCount())
}

func TestDeleteByteRange(t *testing.T) {
	d := New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, d.SetText([]byte("hello world")))

	require.NoError(t, d.DeleteByteRange(5, 11))
	assert.Equal(t, "hello", plainText(d))
}

func TestDeleteAcrossLines(t *testing.T) {
	d := New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, d.SetText([]byte("one\ntwo\nthree")))

	require.NoError(t, d.DeleteByteRange(2, 9))
	assert.Equal(t, "onhree", plainText(d))
	assert.Equal(t, 1, d.GetLineCount())
}

func TestHighlightsOrderedByPriorityThenGroupThenSeq(t *testing.T) {
	d := New(utf8.WidthMethodWcwidth, 4)
	d.AddHighlightByCharRange(0, 0, 5, 1, 1, "b")
	d.AddHighlightByCharRange(0, 0, 5, 2, 2, "a")
	d.AddHighlightByCharRange(0, 0, 5, 3, 2, "a")

	hs := d.GetLineHighlights(0)
	require.Len(t, hs, 3)
	assert.Equal(t, uint32(2), hs[0].StyleID)
	assert.Equal(t, uint32(3), hs[1].StyleID)
	assert.Equal(t, uint32(1), hs[2].StyleID)
}

func TestLoadFileNotFound(t *testing.T) {
	d := New(utf8.WidthMethodWcwidth, 4)
	err := d.LoadFile("/nonexistent/path/to/file.txt")
	require.Error(t, err)
}
