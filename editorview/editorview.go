// Package editorview layers visual cursor translation and scroll-margin
// auto-scroll over a textview.View, the way aretext's display.ScrollToCursor
// and exec.ScrollToCursor turn a rune position and a line-wrap config into a
// view origin, generalized here to a fractional scroll margin and an
// explicit visual cursor row/column rather than a single rune offset.
package editorview

import (
	"github.com/aretext/vtext/editbuffer"
	"github.com/aretext/vtext/text/utf8"
	"github.com/aretext/vtext/textview"
)

// VisualPos is a position in the flattened virtual-line space a View
// produces: Row indexes textview.View.AllVirtualLines(), Col is a cell-width
// offset within that virtual line (not a grapheme-cluster count, since
// clusters vary in display width).
type VisualPos struct {
	Row, Col int
}

// EditorView couples an EditBuffer's logical cursor to a textview.View's
// wrapped layout, adding visual (wrap-aware) vertical motion and the
// scroll-margin auto-scroll spec.md §4.8 requires before each render.
type EditorView struct {
	eb   *editbuffer.EditBuffer
	view *textview.View

	desiredCol    int
	hasDesiredCol bool
}

// New constructs an EditorView over eb's cursor and view's layout. view
// should already be subscribed to eb.Document()'s change notifications (via
// textview.New(eb.Document())).
func New(eb *editbuffer.EditBuffer, view *textview.View) *EditorView {
	return &EditorView{eb: eb, view: view}
}

// EditBuffer returns the underlying EditBuffer.
func (ev *EditorView) EditBuffer() *editbuffer.EditBuffer {
	return ev.eb
}

// View returns the underlying textview.View.
func (ev *EditorView) View() *textview.View {
	return ev.view
}

// SetText replaces the document's content, then resets the viewport to the
// top and the cursor to (0,0). Visibility enforcement is deferred to the
// next EnsureCursorVisible call, matching how a fresh document is always
// displayed from its start rather than wherever the old cursor happened to
// be.
func (ev *EditorView) SetText(bytes []byte) error {
	if err := ev.eb.Document().SetText(bytes); err != nil {
		return err
	}
	ev.eb.SetCursor(0, 0)
	ev.ResetDesiredColumn()
	if vp, ok := ev.view.Viewport(); ok {
		vp.Y = 0
		ev.view.SetViewport(vp)
	}
	return nil
}

// LogicalToVisual converts a logical cursor to its visual position in the
// current wrap layout.
func (ev *EditorView) LogicalToVisual(c editbuffer.Cursor) VisualPos {
	doc := ev.eb.Document()
	method := doc.WidthMethod()
	tabWidth := doc.TabWidth()

	row := c.Row
	if row < 0 {
		row = 0
	}
	if max := ev.view.SourceLineCount() - 1; row > max {
		row = max
	}

	lineBytes := ev.view.SourceLineBytes(row)
	clusters := utf8.FindClusters(lineBytes)
	col := c.Col
	if col < 0 {
		col = 0
	}
	if col > len(clusters) {
		col = len(clusters)
	}
	byteOffset := len(lineBytes)
	if col < len(clusters) {
		byteOffset = clusters[col].ByteOffset
	}

	start := ev.view.FlatIndexForSourceLine(row)
	flat := ev.view.AllVirtualLines()
	flatRow := start
	for i := start; i < len(flat); i++ {
		if ev.view.SourceLineForFlatIndex(i) != row {
			break
		}
		if flat[i].ByteOffset <= byteOffset {
			flatRow = i
		} else {
			break
		}
	}

	vl := flat[flatRow]
	visualCol := columnWidth(lineBytes[vl.ByteOffset:byteOffset], method, tabWidth)
	return VisualPos{Row: flatRow, Col: visualCol}
}

// VisualToLogical converts a visual position in the current wrap layout
// back to a logical cursor, clamping an out-of-range row to the first or
// last virtual line.
func (ev *EditorView) VisualToLogical(p VisualPos) editbuffer.Cursor {
	flat := ev.view.AllVirtualLines()
	if len(flat) == 0 {
		return editbuffer.Cursor{}
	}

	row := p.Row
	if row < 0 {
		row = 0
	}
	if row >= len(flat) {
		row = len(flat) - 1
	}

	sourceLine := ev.view.SourceLineForFlatIndex(row)
	vl := flat[row]
	lineBytes := ev.view.SourceLineBytes(sourceLine)

	end := len(lineBytes)
	if row+1 < len(flat) && ev.view.SourceLineForFlatIndex(row+1) == sourceLine {
		end = flat[row+1].ByteOffset
	}
	vlBytes := lineBytes[vl.ByteOffset:end]

	doc := ev.eb.Document()
	byteWithin := byteOffsetForColumn(vlBytes, p.Col, doc.WidthMethod(), doc.TabWidth())
	byteOffset := vl.ByteOffset + byteWithin

	col := colForByteOffset(lineBytes, byteOffset)
	return editbuffer.Cursor{Row: sourceLine, Col: col}
}

// ResetDesiredColumn clears the remembered visual column vertical moves
// preserve. Any operation that changes the cursor's column intentionally
// (as opposed to a vertical move re-targeting the same column) should call
// this, matching the usual vi-like convention that left/right motions reset
// the "sticky" column while up/down motions don't.
func (ev *EditorView) ResetDesiredColumn() {
	ev.hasDesiredCol = false
}

// MoveLeftVisual moves the logical cursor left by count grapheme clusters
// and resets the desired visual column.
func (ev *EditorView) MoveLeftVisual(count int) {
	ev.eb.MoveLeft(count)
	ev.ResetDesiredColumn()
}

// MoveRightVisual moves the logical cursor right by count grapheme clusters
// and resets the desired visual column.
func (ev *EditorView) MoveRightVisual(count int) {
	ev.eb.MoveRight(count)
	ev.ResetDesiredColumn()
}

// MoveUpVisual moves the cursor up count virtual lines, preserving the
// desired visual column across short or empty intervening lines the way a
// plain row-based move (editbuffer.MoveUp) cannot: the column used is
// remembered from the first vertical move in a run and re-applied on every
// subsequent one, until MoveLeftVisual, MoveRightVisual, SetText or
// ResetDesiredColumn clears it. Moving the cursor directly through
// editbuffer.SetCursor does not clear it.
func (ev *EditorView) MoveUpVisual(count int) {
	ev.moveVertical(-count)
}

// MoveDownVisual moves the cursor down count virtual lines, preserving the
// desired visual column (see MoveUpVisual).
func (ev *EditorView) MoveDownVisual(count int) {
	ev.moveVertical(count)
}

func (ev *EditorView) moveVertical(delta int) {
	cur := ev.LogicalToVisual(ev.eb.Cursor())
	if !ev.hasDesiredCol {
		ev.desiredCol = cur.Col
		ev.hasDesiredCol = true
	}

	total := len(ev.view.AllVirtualLines())
	row := cur.Row + delta
	if row < 0 {
		row = 0
	}
	if row > total-1 {
		row = total - 1
	}

	logical := ev.VisualToLogical(VisualPos{Row: row, Col: ev.desiredCol})
	ev.eb.SetCursor(logical.Row, logical.Col)
}

// EnsureCursorVisible runs before each render: given a scroll margin
// m in [0, 0.5] (clamped), it scrolls the view's viewport vertically by the
// minimum number of virtual lines needed to keep the cursor's virtual row
// within the inner band [Y + floor(m*h), Y + h - floor(m*h)). If the
// document has no more virtual lines than the viewport height, the viewport
// is pinned at Y=0.
func (ev *EditorView) EnsureCursorVisible(m float64) {
	vp, ok := ev.view.Viewport()
	if !ok || vp.Height <= 0 {
		return
	}
	if m < 0 {
		m = 0
	}
	if m > 0.5 {
		m = 0.5
	}

	total := len(ev.view.AllVirtualLines())
	h := vp.Height
	if total <= h {
		if vp.Y != 0 {
			vp.Y = 0
			ev.view.SetViewport(vp)
		}
		return
	}

	margin := int(m * float64(h))
	cursorRow := ev.LogicalToVisual(ev.eb.Cursor()).Row

	lower := vp.Y + margin
	upper := vp.Y + h - margin

	newY := vp.Y
	if cursorRow < lower {
		newY = cursorRow - margin
	} else if cursorRow >= upper {
		newY = cursorRow - h + margin + 1
	} else {
		return
	}

	if newY < 0 {
		newY = 0
	}
	if maxY := total - h; newY > maxY {
		newY = maxY
	}
	if newY != vp.Y {
		vp.Y = newY
		ev.view.SetViewport(vp)
	}
}

func columnWidth(b []byte, method utf8.WidthMethod, tabWidth int) int {
	width := 0
	for _, gc := range utf8.FindClusters(b) {
		width += clusterWidth(b, gc, method, tabWidth)
	}
	return width
}

func byteOffsetForColumn(b []byte, col int, method utf8.WidthMethod, tabWidth int) int {
	width := 0
	for _, gc := range utf8.FindClusters(b) {
		if width >= col {
			return gc.ByteOffset
		}
		width += clusterWidth(b, gc, method, tabWidth)
	}
	return len(b)
}

func colForByteOffset(lineBytes []byte, byteOffset int) int {
	col := 0
	for _, gc := range utf8.FindClusters(lineBytes) {
		if gc.ByteOffset >= byteOffset {
			break
		}
		col++
	}
	return col
}

func clusterWidth(lineBytes []byte, gc utf8.Cluster, method utf8.WidthMethod, tabWidth int) int {
	b := lineBytes[gc.ByteOffset : gc.ByteOffset+gc.ByteLen]
	if gc.RuneLen == 1 && len(b) == 1 && b[0] == '\t' {
		return tabWidth
	}
	return utf8.GraphemeClusterWidth([]rune(string(b)), method)
}
