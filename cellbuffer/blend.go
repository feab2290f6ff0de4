package cellbuffer

import "github.com/gdamore/tcell/v2"

// composeStyle resolves the style to store at (x,y) for a draw_text call,
// blending fg/bg over whatever style already occupies that cell: alpha < 1
// blends toward the existing color (source-over), alpha <= 0 leaves the
// existing color untouched, and alpha >= 1 replaces it outright. attrs
// replace the cell's attribute bitmask directly, since draw_text specifies
// them explicitly rather than layering them.
func (b *Buffer) composeStyle(x, y int, fg, bg Color, attrs tcell.AttrMask) tcell.Style {
	existing := b.Get(x, y).style
	exFg, exBg, _ := existing.Decompose()
	return tcell.StyleDefault.
		Foreground(blend(exFg, fg)).
		Background(blend(exBg, bg)).
		Attributes(attrs)
}

// blend source-over composites src atop dst, treating an invalid/unset dst
// color as black so a blended draw onto an empty cell still produces src's
// color scaled by its own alpha.
func blend(dst tcell.Color, src Color) tcell.Color {
	if src.A <= 0 {
		return dst
	}
	if src.A >= 1 {
		return src.tcellColor()
	}
	dr, dg, db := dst.RGB()
	if dr < 0 || dg < 0 || db < 0 {
		dr, dg, db = 0, 0, 0
	}
	r := blendChannel(uint8(dr), src.R, src.A)
	g := blendChannel(uint8(dg), src.G, src.A)
	bl := blendChannel(uint8(db), src.B, src.A)
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}

func blendChannel(dst, src uint8, alpha float64) uint8 {
	return uint8(float64(src)*alpha + float64(dst)*(1-alpha))
}
