package cellbuffer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/aretext/vtext/cellwidth"
	"github.com/aretext/vtext/style"
	"github.com/aretext/vtext/text/utf8"
	"github.com/aretext/vtext/textview"
)

// SetWidthMethod configures how DrawText/DrawTextBuffer size grapheme
// clusters. Defaults to WidthMethodUnicode.
func (b *Buffer) SetWidthMethod(method utf8.WidthMethod) {
	b.widthMethod = method
}

// SetTabWidth configures the static cell width of a literal tab byte drawn
// via DrawText. Defaults to 4.
func (b *Buffer) SetTabWidth(n int) {
	b.tabWidth = n
}

func (b *Buffer) sizer() cellwidth.Sizer {
	return cellwidth.New(b.tabWidth, b.widthMethod)
}

// DrawText places bytes as a run of grapheme clusters starting at (x,y),
// advancing one column per cluster's display width. fg/bg/attrs apply to
// the whole run; bg is alpha-blended per cell against whatever already
// occupies that cell (see blend.go).
func (b *Buffer) DrawText(bytes []byte, x, y int, fg, bg Color, attrs tcell.AttrMask) {
	sizer := b.sizer()
	col := x
	for _, gc := range utf8.FindClusters(bytes) {
		clusterBytes := bytes[gc.ByteOffset : gc.ByteOffset+gc.ByteLen]
		w := sizer.GraphemeClusterWidth([]rune(string(clusterBytes)))
		if w < 1 {
			w = 1
		}
		b.placeCluster(col, y, clusterBytes, w, fg, bg, attrs)
		col += w
	}
}

// Clip is an optional clip rectangle for DrawTextBuffer, pushed onto the
// scissor stack for the duration of the draw and popped before returning.
type Clip struct {
	Rect    Rect
	HasClip bool
}

// DrawTextBuffer draws every virtual line currently visible in view,
// starting at (x,y), one row per virtual line, resolving each line's
// highlights through reg and drawing each styled sub-run in its resolved
// color. An optional clip narrows the region written within this one call,
// on top of any clip already pushed by the caller.
func (b *Buffer) DrawTextBuffer(view *textview.View, reg *style.Registry, x, y int, clip Clip) {
	if clip.HasClip {
		b.PushScissorRect(clip.Rect)
		defer b.PopScissorRect()
	}

	doc := view.Document()
	lines := view.VirtualLines()
	sizer := b.sizer()

	for row, vl := range lines {
		flatIdx := vlIndexFor(view, row)
		sourceLine := view.SourceLineForFlatIndex(flatIdx)
		vlBytes := view.LineBytes(sourceLine, vl)
		clippedBytes := view.ClipHorizontal(vlBytes)

		// Unstyled base pass: draws the raw run so every cluster occupies a
		// cell even where no highlight applies.
		b.DrawText(clippedBytes, x, y+row, Color{}, Color{}, tcell.AttrNone)

		if doc == nil {
			continue
		}

		vlClusters := utf8.FindClusters(vlBytes)
		vlStart := vl.CharOffset
		vlEnd := vlStart + len(vlClusters)

		fullLineBytes := view.SourceLineBytes(sourceLine)
		lineRuneLen := len(utf8.FindClusters(fullLineBytes))

		// Highlights come highest priority first; draw them in reverse so the
		// highest-priority run is drawn last and wins where runs overlap.
		hs := doc.ResolvedLineHighlights(sourceLine, lineRuneLen)
		for hi := len(hs) - 1; hi >= 0; hi-- {
			h := hs[hi]
			localStart := h.ColStart
			if localStart < vlStart {
				localStart = vlStart
			}
			localEnd := h.ColEnd
			if localEnd > vlEnd {
				localEnd = vlEnd
			}
			if localEnd <= localStart {
				continue
			}
			localStart -= vlStart
			localEnd -= vlStart

			byteStart := len(vlBytes)
			if localStart < len(vlClusters) {
				byteStart = vlClusters[localStart].ByteOffset
			}
			byteEnd := len(vlBytes)
			if localEnd < len(vlClusters) {
				byteEnd = vlClusters[localEnd].ByteOffset
			}
			if byteEnd <= byteStart {
				continue
			}

			colOffset := 0
			for _, gc := range vlClusters[:localStart] {
				colOffset += clusterCellWidth(sizer, vlBytes, gc)
			}

			resolved := reg.MergeStyles([]style.ID{style.ID(h.StyleID)})
			fg, bg, attrs := resolved.Decompose()
			b.DrawText(vlBytes[byteStart:byteEnd], x+colOffset, y+row, colorFromTcell(fg), colorFromTcell(bg), attrs)
		}
	}
}

func clusterCellWidth(sizer cellwidth.Sizer, bytes []byte, gc utf8.Cluster) int {
	runes := []rune(string(bytes[gc.ByteOffset : gc.ByteOffset+gc.ByteLen]))
	w := sizer.GraphemeClusterWidth(runes)
	if w < 1 {
		w = 1
	}
	return w
}

// colorFromTcell converts a resolved, fully-opaque style color back into a
// blendable Color, the inverse of Color.tcellColor. Highlight resolution has
// no alpha concept, so the result is always opaque.
func colorFromTcell(c tcell.Color) Color {
	r, g, bl := c.RGB()
	if r < 0 || g < 0 || bl < 0 {
		return Color{A: 0}
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(bl), A: 1}
}

// vlIndexFor recovers the absolute flat index for the row-th entry of
// view.VirtualLines(), accounting for any vertical viewport offset, so
// DrawTextBuffer can ask the view which source line produced it.
func vlIndexFor(view *textview.View, row int) int {
	if vp, ok := view.Viewport(); ok {
		return vp.Y + row
	}
	return row
}

func (b *Buffer) placeCluster(x, y int, clusterBytes []byte, w int, fg, bg Color, attrs tcell.AttrMask) {
	if !b.visible(x, y) {
		return
	}

	style := b.composeStyle(x, y, fg, bg, attrs)

	for i := 0; i < w; i++ {
		cx := x + i
		if b.visible(cx, y) {
			b.clearClusterAt(cx, y)
		}
	}

	ascii := len(clusterBytes) == 1 && clusterBytes[0] < 0x80
	if w == 1 && ascii {
		b.cells[b.index(x, y)] = Cell{kind: cellASCII, ascii: clusterBytes[0], style: style}
		return
	}

	id, err := b.pool.Alloc(clusterBytes)
	if err != nil {
		return
	}
	if err := b.tracker.Add(id); err != nil {
		_ = b.pool.Decref(id)
		return
	}
	// The tracker now holds its own reference; drop Alloc's so that the
	// tracker releasing it frees the slot.
	_ = b.pool.Decref(id)

	if b.visible(x, y) {
		b.cells[b.index(x, y)] = Cell{kind: cellStart, id: id, width: w, style: style}
	}
	for i := 1; i < w; i++ {
		cx := x + i
		if b.visible(cx, y) {
			b.cells[b.index(cx, y)] = Cell{kind: cellContinuation, startX: x, style: style}
		}
	}
}

// clearClusterAt tears down whatever grapheme cluster (if any) occupies
// (x,y): releases its tracker reference exactly once and repaints every
// cell it used to occupy as a blank ASCII space, so a narrower replacement
// doesn't leave orphaned continuation cells pointing at a freed ID.
func (b *Buffer) clearClusterAt(x, y int) {
	cell := b.cells[b.index(x, y)]

	var startX int
	switch cell.kind {
	case cellStart:
		startX = x
	case cellContinuation:
		startX = cell.startX
	default:
		return
	}

	start := b.cells[b.index(startX, y)]
	if start.kind != cellStart {
		return
	}

	_ = b.tracker.Remove(start.id)

	for i := 0; i < start.width; i++ {
		cx := startX + i
		if b.inBounds(cx, y) {
			b.cells[b.index(cx, y)] = Cell{kind: cellASCII, ascii: ' ', style: start.style}
		}
	}
}
