package editorview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretext/vtext/editbuffer"
	"github.com/aretext/vtext/text/utf8"
	"github.com/aretext/vtext/textbuffer"
	"github.com/aretext/vtext/textview"
)

func newTestEditorView(t *testing.T, text string) (*EditorView, *textview.View) {
	t.Helper()
	doc := textbuffer.New(utf8.WidthMethodWcwidth, 4)
	require.NoError(t, doc.SetText([]byte(text)))
	eb := editbuffer.New(doc)
	v := textview.New(doc)
	return New(eb, v), v
}

func TestLogicalToVisualRoundTripsNoWrap(t *testing.T) {
	ev, _ := newTestEditorView(t, "hello\nworld")
	c := editbuffer.Cursor{Row: 1, Col: 3}
	pos := ev.LogicalToVisual(c)
	back := ev.VisualToLogical(pos)
	assert.Equal(t, c, back)
}

func TestLogicalToVisualSplitsAcrossWrappedLine(t *testing.T) {
	ev, v := newTestEditorView(t, "abcdefgh")
	v.SetWrapMode(textview.WrapChar)
	v.SetWrapWidth(4)

	pos := ev.LogicalToVisual(editbuffer.Cursor{Row: 0, Col: 5})
	assert.Equal(t, VisualPos{Row: 1, Col: 1}, pos)
}

func TestMoveDownVisualPreservesDesiredColumnAcrossShortLine(t *testing.T) {
	ev, _ := newTestEditorView(t, "abcdef\na\nabcdef")
	ev.eb.SetCursor(0, 4)

	ev.MoveDownVisual(1)
	assert.Equal(t, editbuffer.Cursor{Row: 1, Col: 1}, ev.eb.Cursor())

	ev.MoveDownVisual(1)
	assert.Equal(t, editbuffer.Cursor{Row: 2, Col: 4}, ev.eb.Cursor())
}

func TestMoveLeftResetsDesiredColumn(t *testing.T) {
	ev, _ := newTestEditorView(t, "abcdef\na\nabcdef")
	ev.eb.SetCursor(0, 4)
	ev.MoveDownVisual(1)
	ev.MoveLeftVisual(1)
	assert.False(t, ev.hasDesiredCol)
}

func TestSetTextResetsCursorAndViewport(t *testing.T) {
	ev, v := newTestEditorView(t, "aa\nbb\ncc\ndd")
	v.SetViewport(textview.Viewport{Y: 2, Height: 2})
	ev.eb.SetCursor(3, 1)
	ev.hasDesiredCol = true
	ev.desiredCol = 1

	require.NoError(t, ev.SetText([]byte("xyz")))

	assert.Equal(t, editbuffer.Cursor{Row: 0, Col: 0}, ev.eb.Cursor())
	assert.False(t, ev.hasDesiredCol)
	vp, ok := v.Viewport()
	require.True(t, ok)
	assert.Equal(t, 0, vp.Y)
}

func TestEnsureCursorVisiblePinsAtZeroWhenContentFits(t *testing.T) {
	ev, v := newTestEditorView(t, "a\nb\nc")
	v.SetViewport(textview.Viewport{Y: 2, Height: 10})
	ev.EnsureCursorVisible(0.25)

	vp, ok := v.Viewport()
	require.True(t, ok)
	assert.Equal(t, 0, vp.Y)
}

func TestEnsureCursorVisibleScrollsForwardPastMargin(t *testing.T) {
	lines := ""
	for i := 0; i < 20; i++ {
		lines += "x\n"
	}
	ev, v := newTestEditorView(t, lines)
	v.SetViewport(textview.Viewport{Y: 0, Height: 5})
	ev.eb.SetCursor(10, 0)

	ev.EnsureCursorVisible(0.2)

	vp, ok := v.Viewport()
	require.True(t, ok)
	assert.True(t, vp.Y > 0)

	cursorRow := ev.LogicalToVisual(ev.eb.Cursor()).Row
	margin := int(0.2 * float64(vp.Height))
	assert.True(t, cursorRow < vp.Y+vp.Height-margin)
	assert.True(t, cursorRow >= vp.Y+margin)
}

func TestEnsureCursorVisibleScrollsBackward(t *testing.T) {
	lines := ""
	for i := 0; i < 20; i++ {
		lines += "x\n"
	}
	ev, v := newTestEditorView(t, lines)
	v.SetViewport(textview.Viewport{Y: 15, Height: 5})
	ev.eb.SetCursor(2, 0)

	ev.EnsureCursorVisible(0.2)

	vp, ok := v.Viewport()
	require.True(t, ok)
	assert.True(t, vp.Y <= 2)
}
