// Package cellbuffer implements the Cell Buffer: an owned 2D grid of
// terminal cells with a scissor-rect clip stack and alpha blending, the way
// aretext's display.DrawBuffer/drawGraphemeCluster write grapheme clusters
// into a tcell.Screen through a bounds-checked ScreenRegion, retargeted here
// to write into a grid this package owns instead of a live terminal, with
// multi-rune clusters identified by Grapheme Pool IDs instead of raw runes.
package cellbuffer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/aretext/vtext/gpool"
	"github.com/aretext/vtext/gtracker"
	"github.com/aretext/vtext/text/utf8"
)

// cellKind distinguishes what occupies a cell.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellASCII
	cellStart        // first cell of a (possibly multi-cell) grapheme cluster
	cellContinuation // a cell covered by a wide cluster's width, W > 1
)

// Cell is one position in the grid.
type Cell struct {
	kind   cellKind
	ascii  byte
	id     gpool.ID // valid for cellStart
	width  int      // valid for cellStart: how many cells this cluster spans
	startX int      // valid for cellContinuation: the column of its cellStart
	style  tcell.Style
}

// Style returns the cell's style.
func (c Cell) Style() tcell.Style {
	return c.style
}

// Empty reports whether the cell holds no content (as after Clear with no
// fill character, or outside the grid before the first write).
func (c Cell) Empty() bool {
	return c.kind == cellEmpty
}

// Color is a blendable RGBA color, used as draw_text's fg/bg input before
// it's composited down to a tcell.Color stored in a Cell's Style.
type Color struct {
	R, G, B uint8
	A       float64 // 0 = fully transparent, 1 = fully opaque
}

func (c Color) tcellColor() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Rect is an axis-aligned scissor rectangle in grid coordinates.
type Rect struct {
	X, Y, Width, Height int
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func (r Rect) intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Buffer is a 2D grid of cells plus the clip stack and pool tracker a Cell
// Buffer needs to place grapheme clusters.
type Buffer struct {
	width, height int
	cells         []Cell

	pool    *gpool.Pool
	tracker *gtracker.Tracker

	clipStack []Rect

	widthMethod utf8.WidthMethod
	tabWidth    int
}

// New constructs a Buffer of size w×h backed by pool for non-ASCII cluster
// storage. pool may be shared with other buffers/documents in the same
// thread; this Buffer owns exactly one Tracker over it. Width method defaults
// to WidthMethodUnicode and tab width to 4; see SetWidthMethod/SetTabWidth.
func New(pool *gpool.Pool, w, h int) *Buffer {
	b := &Buffer{pool: pool, tracker: gtracker.New(pool), widthMethod: utf8.WidthMethodUnicode, tabWidth: 4}
	b.init(w, h)
	return b
}

// Init resizes the buffer to w×h, discarding all content (equivalent to a
// fresh New plus Clear, but reusing the same tracker/pool).
func (b *Buffer) Init(w, h int) error {
	if err := b.releaseAllIDs(); err != nil {
		return err
	}
	b.init(w, h)
	return nil
}

func (b *Buffer) init(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.width, b.height = w, h
	b.cells = make([]Cell, w*h)
	b.clipStack = b.clipStack[:0]
}

// Width returns the buffer's column count.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer's row count.
func (b *Buffer) Height() int {
	return b.height
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at (x,y), or the zero Cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[b.index(x, y)]
}

// Clear resets every cell to bg with the given fill character (space if 0),
// releasing every grapheme ID this buffer had tracked.
func (b *Buffer) Clear(bg Color, char rune) error {
	if err := b.releaseAllIDs(); err != nil {
		return err
	}
	if char == 0 {
		char = ' '
	}
	style := tcell.StyleDefault.Background(bg.tcellColor())
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.cells[b.index(x, y)] = b.asciiCell(byte(char), style)
		}
	}
	return nil
}

func (b *Buffer) asciiCell(ch byte, style tcell.Style) Cell {
	return Cell{kind: cellASCII, ascii: ch, style: style}
}

func (b *Buffer) releaseAllIDs() error {
	return b.tracker.Clear()
}
