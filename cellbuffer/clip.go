package cellbuffer

import "github.com/aretext/vtext/verr"

// PushScissorRect narrows writes to r intersected with whatever clip is
// already in effect, the way display.ScreenRegion bounds-checks every Put
// against its own rectangle before reaching the real screen. Push/pop nest:
// the effective clip at any point is the intersection of every rect still on
// the stack.
func (b *Buffer) PushScissorRect(r Rect) {
	if len(b.clipStack) > 0 {
		r = r.intersect(b.clipStack[len(b.clipStack)-1])
	}
	b.clipStack = append(b.clipStack, r)
}

// PopScissorRect removes the most recently pushed scissor rect. Popping with
// an empty stack is a defined error rather than a silent no-op.
func (b *Buffer) PopScissorRect() error {
	if len(b.clipStack) == 0 {
		return verr.ScissorUnderflow{}
	}
	b.clipStack = b.clipStack[:len(b.clipStack)-1]
	return nil
}

// visible reports whether (x,y) lies within the grid and within every
// scissor rect currently on the clip stack.
func (b *Buffer) visible(x, y int) bool {
	if !b.inBounds(x, y) {
		return false
	}
	if len(b.clipStack) == 0 {
		return true
	}
	return b.clipStack[len(b.clipStack)-1].contains(x, y)
}
