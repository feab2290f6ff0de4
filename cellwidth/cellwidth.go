// Package cellwidth adapts text/utf8's width calculations to the small
// Sizer interface a Cell Buffer placement routine wants, the way aretext's
// cellwidth.Sizer gave display/buffer.go one call to size a cluster before
// writing it into a cell grid.
package cellwidth

import "github.com/aretext/vtext/text/utf8"

// Sizer determines the cell width of a grapheme cluster for placement in a
// Cell Buffer.
type Sizer interface {
	GraphemeClusterWidth(gc []rune) int
}

type sizer struct {
	tabWidth int
	method   utf8.WidthMethod
}

// New constructs a Sizer using method to size non-tab clusters and a static
// tabWidth for tab clusters (tab width does not depend on column offset;
// see text/utf8.CalculateTextWidth).
func New(tabWidth int, method utf8.WidthMethod) Sizer {
	return &sizer{tabWidth: tabWidth, method: method}
}

// GraphemeClusterWidth returns the width in cells of a grapheme cluster.
func (s *sizer) GraphemeClusterWidth(gc []rune) int {
	if len(gc) == 0 {
		return 0
	}
	if len(gc) == 1 && gc[0] == '\t' {
		return s.tabWidth
	}
	return utf8.GraphemeClusterWidth(gc, s.method)
}
