package textview

import (
	"github.com/aretext/vtext/event"
	"github.com/aretext/vtext/text/utf8"
	"github.com/aretext/vtext/textbuffer"
)

// Viewport is a rectangular window over virtual lines. Y is a virtual-line
// offset; X is a column offset honored only when WrapMode is WrapNone.
type Viewport struct {
	X, Y, Width, Height int
}

// LineInfo answers hit-testing in O(1) once a View is clean: Starts[row]
// gives the index of row's first virtual line, Widths[i] gives virtual
// line i's width, and MaxWidth is the widest virtual line in the document.
type LineInfo struct {
	Starts   []int
	Widths   []int
	MaxWidth int
}

// lineEntry is one source line's wrap result plus its document byte
// offset, kept alongside the flattened virtual-line list so logical/visual
// coordinate translation can recover the owning source line.
type lineEntry struct {
	sourceLine int
	byteOffset int
	bytes      []byte
	virtual    []VirtualLine
}

// View computes and caches wrapped virtual-line layout for a document,
// rebuilding only when the document signals a change, the way aretext's
// display.Scroll cache defers recomputation until the next read after a
// dirty notification.
type View struct {
	doc       *textbuffer.Document
	wrapMode  WrapMode
	wrapWidth int // 0 means "derive from viewport width"
	viewport  Viewport
	hasVP     bool

	dirty    bool
	entries  []lineEntry
	flat     []VirtualLine
	flatLine []int // flat[i] belongs to source line flatLine[i]
	info     LineInfo

	listenerID event.ListenerID
}

// New constructs a View over doc, initially dirty.
func New(doc *textbuffer.Document) *View {
	v := &View{doc: doc, wrapMode: WrapNone, dirty: true}
	v.listenerID = doc.Events().On(event.TopicDocumentChanged, func(interface{}) {
		v.dirty = true
	})
	return v
}

// Document returns the underlying Text Buffer.
func (v *View) Document() *textbuffer.Document {
	return v.doc
}

// Close unsubscribes the View from its document's change notifications.
func (v *View) Close() {
	v.doc.Events().Off(event.TopicDocumentChanged, v.listenerID)
}

// SetWrapMode changes the wrap mode and marks the view dirty.
func (v *View) SetWrapMode(mode WrapMode) {
	if v.wrapMode == mode {
		return
	}
	v.wrapMode = mode
	v.dirty = true
}

// SetWrapWidth sets an explicit wrap width. A width of 0 means "use the
// viewport width", matching spec behavior when no explicit width is set.
func (v *View) SetWrapWidth(w int) {
	if v.wrapWidth == w {
		return
	}
	v.wrapWidth = w
	v.dirty = true
}

// SetViewport installs a viewport, marking the view dirty if its width
// changed (since width affects wrap layout when wrapping is enabled).
func (v *View) SetViewport(vp Viewport) {
	changed := !v.hasVP || v.viewport.Width != vp.Width
	v.viewport = vp
	v.hasVP = true
	if changed {
		v.dirty = true
	}
}

// Viewport returns the currently installed viewport and whether one is set.
func (v *View) Viewport() (Viewport, bool) {
	return v.viewport, v.hasVP
}

// ClearViewport removes the viewport so queries return unclipped layout.
func (v *View) ClearViewport() {
	if !v.hasVP {
		return
	}
	v.hasVP = false
	v.dirty = true
}

func (v *View) effectiveWrapWidth() int {
	if v.wrapWidth > 0 {
		return v.wrapWidth
	}
	if v.hasVP {
		return v.viewport.Width
	}
	return 0
}

func (v *View) rebuild() {
	lines := v.doc.RenderLines()
	method := v.doc.WidthMethod()
	tabWidth := v.doc.TabWidth()
	wrapWidth := v.effectiveWrapWidth()

	v.entries = make([]lineEntry, len(lines))
	v.flat = v.flat[:0]
	v.flatLine = v.flatLine[:0]
	v.info.Widths = v.info.Widths[:0]
	v.info.Starts = make([]int, len(lines))
	maxW := 0

	for i, l := range lines {
		vls := wrapLine(l.Bytes, v.wrapMode, wrapWidth, method, tabWidth)
		v.entries[i] = lineEntry{sourceLine: i, byteOffset: l.ByteOffset, bytes: l.Bytes, virtual: vls}
		v.info.Starts[i] = len(v.flat)
		for _, vl := range vls {
			v.flat = append(v.flat, vl)
			v.flatLine = append(v.flatLine, i)
			v.info.Widths = append(v.info.Widths, vl.Width)
			if vl.Width > maxW {
				maxW = vl.Width
			}
		}
	}
	v.info.MaxWidth = maxW
	v.dirty = false
}

func (v *View) ensureClean() {
	if v.dirty {
		v.rebuild()
	}
}

// VirtualLines returns the document's virtual lines, vertically clipped to
// the viewport's Y/Height when one is set.
func (v *View) VirtualLines() []VirtualLine {
	v.ensureClean()
	if !v.hasVP {
		return v.flat
	}
	return v.sliceVertical(v.flat)
}

func (v *View) sliceVertical(lines []VirtualLine) []VirtualLine {
	y := v.viewport.Y
	if y < 0 {
		y = 0
	}
	if y > len(lines) {
		y = len(lines)
	}
	end := len(lines)
	if v.viewport.Height > 0 && y+v.viewport.Height < end {
		end = y + v.viewport.Height
	}
	return lines[y:end]
}

// LineInfo returns the cached starts/widths/max-width table.
func (v *View) LineInfo() LineInfo {
	v.ensureClean()
	return v.info
}

// AllVirtualLines returns every virtual line in the document, ignoring any
// viewport's vertical clipping. Used for logical/visual coordinate
// translation, which must see the whole document regardless of scroll
// position.
func (v *View) AllVirtualLines() []VirtualLine {
	v.ensureClean()
	return v.flat
}

// SourceLineForFlatIndex returns the source line index that produced the
// flat virtual line at i.
func (v *View) SourceLineForFlatIndex(i int) int {
	v.ensureClean()
	if i < 0 || i >= len(v.flatLine) {
		return -1
	}
	return v.flatLine[i]
}

// FlatIndexForSourceLine returns the flat index of sourceLine's first
// virtual line.
func (v *View) FlatIndexForSourceLine(sourceLine int) int {
	v.ensureClean()
	if sourceLine < 0 || sourceLine >= len(v.info.Starts) {
		return -1
	}
	return v.info.Starts[sourceLine]
}

// SourceLineCount returns the number of source lines backing this view.
func (v *View) SourceLineCount() int {
	v.ensureClean()
	return len(v.entries)
}

// SourceLineBytes returns the full byte content of sourceLine, unwrapped.
func (v *View) SourceLineBytes(sourceLine int) []byte {
	v.ensureClean()
	if sourceLine < 0 || sourceLine >= len(v.entries) {
		return nil
	}
	return v.entries[sourceLine].bytes
}

// LineBytes returns the byte content backing virtual line vl within source
// line sourceLine, so a caller can render or further clip it.
func (v *View) LineBytes(sourceLine int, vl VirtualLine) []byte {
	v.ensureClean()
	if sourceLine < 0 || sourceLine >= len(v.entries) {
		return nil
	}
	b := v.entries[sourceLine].bytes
	end := len(b)
	// A virtual line's byte range runs to the next virtual line's
	// ByteOffset, or to the end of the source line for the last one.
	vls := v.entries[sourceLine].virtual
	for i, cand := range vls {
		if cand.ByteOffset == vl.ByteOffset {
			if i+1 < len(vls) {
				end = vls[i+1].ByteOffset
			}
			break
		}
	}
	if vl.ByteOffset > len(b) || end > len(b) || end < vl.ByteOffset {
		return nil
	}
	return b[vl.ByteOffset:end]
}

// ClipHorizontal applies viewport.X/Width column clipping to lineBytes,
// used only when WrapMode is WrapNone: rendering starts at the cluster
// whose start column is >= viewport.X and stops at viewport.X+viewport.Width.
// With no viewport, lineBytes is returned unclipped.
func (v *View) ClipHorizontal(lineBytes []byte) []byte {
	if !v.hasVP || v.wrapMode != WrapNone {
		return lineBytes
	}
	method := v.doc.WidthMethod()
	tabWidth := v.doc.TabWidth()
	clusters := utf8.FindClusters(lineBytes)

	col := 0
	startByte, endByte := len(lineBytes), len(lineBytes)
	started := false
	for _, gc := range clusters {
		if !started && col >= v.viewport.X {
			startByte = gc.ByteOffset
			started = true
		}
		if started && col >= v.viewport.X+v.viewport.Width {
			endByte = gc.ByteOffset
			break
		}
		col += clusterWidth(lineBytes, gc, method, tabWidth)
	}
	if !started {
		return nil
	}
	if endByte < startByte {
		endByte = startByte
	}
	return lineBytes[startByte:endByte]
}
