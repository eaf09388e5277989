package bramble

import "image"

// Layout arranges a widget's children. Implementations set each child's
// position and size from the parent's size and the children's preferred
// sizes, honoring non-zero fixed sizes.
type Layout interface {
	PreferredSize(ctx Context, w Widget) image.Point
	PerformLayout(ctx Context, w Widget)
}

// PerformLayout lays out w's subtree. A widget with a Layout delegates to
// it; otherwise each child is sized to its fixed size where set, else to
// its preferred size where non-zero, and its own subtree is laid out.
// Children's positions are left alone.
func PerformLayout(ctx Context, w Widget) {
	if l := w.Layout(); l != nil {
		l.PerformLayout(ctx, w)
		return
	}
	for _, child := range w.base().children {
		child.SetSize(ResolveSize(ctx, child))
		PerformLayout(ctx, child)
	}
}

// ResolveSize returns the size a layout should give w: each non-zero
// fixed dimension wins, then a non-zero preferred dimension, then the
// current size.
func ResolveSize(ctx Context, w Widget) image.Point {
	pref := w.PreferredSize(ctx)
	fix := w.FixedSize()
	cur := w.Size()
	return image.Point{
		X: pickDim(fix.X, pref.X, cur.X),
		Y: pickDim(fix.Y, pref.Y, cur.Y),
	}
}

func pickDim(fixed, preferred, current int) int {
	switch {
	case fixed > 0:
		return fixed
	case preferred > 0:
		return preferred
	default:
		return current
	}
}
