package textview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretext/vtext/text/utf8"
	"github.com/aretext/vtext/textbuffer"
)

func TestWrapNoneEmitsVerbatimLine(t *testing.T) {
	vls := wrapLine([]byte("hello world"), WrapNone, 0, utf8.WidthMethodWcwidth, 4)
	require.Len(t, vls, 1)
	assert.Equal(t, 11, vls[0].Width)
	assert.True(t, vls[0].WrapStart)
}

func TestWrapCharSplitsAtWidth(t *testing.T) {
	vls := wrapLine([]byte("abcdefgh"), WrapChar, 3, utf8.WidthMethodWcwidth, 4)
	require.Len(t, vls, 3)
	assert.Equal(t, 3, vls[0].Width)
	assert.Equal(t, 3, vls[1].Width)
	assert.Equal(t, 2, vls[2].Width)
	assert.True(t, vls[0].WrapStart)
	assert.False(t, vls[1].WrapStart)
}

func TestWrapWordBreaksAtSpace(t *testing.T) {
	vls := wrapLine([]byte("aa bb cc"), WrapWord, 5, utf8.WidthMethodWcwidth, 4)
	require.NotEmpty(t, vls)
	for _, vl := range vls {
		assert.LessOrEqual(t, vl.Width, 5)
	}
}

func TestWrapCharAtWidthOnePutsEachClusterOnOwnLine(t *testing.T) {
	vls := wrapLine([]byte("ab"), WrapChar, 1, utf8.WidthMethodWcwidth, 4)
	require.Len(t, vls, 2)
	assert.Equal(t, 1, vls[0].Width)
	assert.Equal(t, 1, vls[1].Width)
}

func TestViewVirtualLineTotalMatchesSourceWidth(t *testing.T) {
	d := textbuffer.New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, d.SetText([]byte("12345678901234567890123456789012345")))
	v := New(d)
	v.SetWrapMode(WrapChar)
	v.SetWrapWidth(20)

	vls := v.VirtualLines()
	total := 0
	for _, vl := range vls {
		total += vl.Width
	}
	assert.Equal(t, 35, total)
	assert.Equal(t, 2, len(vls))
}

func TestViewDirtyAfterDocumentChange(t *testing.T) {
	d := textbuffer.New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, d.SetText([]byte("ab")))
	v := New(d)

	_ = v.VirtualLines()
	assert.False(t, v.dirty)

	require.NoError(t, d.InsertBytesAtOffset(2, []byte("c"), 0))
	assert.True(t, v.dirty)
}

func TestViewportVerticalSlicing(t *testing.T) {
	d := textbuffer.New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, d.SetText([]byte("a\nb\nc\nd\ne")))
	v := New(d)
	v.SetViewport(Viewport{Y: 1, Height: 2, Width: 10})

	vls := v.VirtualLines()
	require.Len(t, vls, 2)
}

func TestClipHorizontalRespectsViewportX(t *testing.T) {
	d := textbuffer.New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, d.SetText([]byte("abcdefgh")))
	v := New(d)
	v.SetViewport(Viewport{X: 2, Width: 3, Height: 1})

	clipped := v.ClipHorizontal([]byte("abcdefgh"))
	assert.Equal(t, "cde", string(clipped))
}
