package bramble

import (
	"image"
	"weak"

	"github.com/google/uuid"
)

// DefaultFontSize is used when neither a widget nor any theme on its
// ancestor chain sets a font size.
const DefaultFontSize = 16

// Widget is the capability interface every node in the tree implements.
//
// Concrete widgets embed *WidgetNode, which supplies every method; they
// override the ones whose behavior differs (usually Draw and
// PreferredSize). The interface is sealed: only types embedding a
// *WidgetNode satisfy it, so tree links are always managed by this
// package.
type Widget interface {
	base() *WidgetNode

	ID() string
	Parent() Widget
	Children() []Widget
	NumChildren() int
	ChildAt(index int) Widget
	ChildIndex(child Widget) int

	Pos() image.Point
	SetPos(p image.Point)
	Size() image.Point
	SetSize(s image.Point)
	FixedSize() image.Point
	SetFixedSize(s image.Point)
	Width() int
	Height() int

	FontSize() int
	SetFontSize(size int)
	HasFontSize() bool
	Theme() *Theme
	SetTheme(t *Theme)
	ResolvedTheme() *Theme
	Layout() Layout
	SetLayout(l Layout)

	Enabled() bool
	SetEnabled(enabled bool)
	Visible() bool
	SetVisible(visible bool)
	Focused() bool
	SetFocused(focused bool)
	Tooltip() string
	SetTooltip(tooltip string)

	PreferredSize(ctx Context) image.Point
	// Draw paints the widget. The default traversal never calls Draw on a
	// child whose Visible flag is false, so a hidden widget's subtree is
	// not drawn.
	Draw(ctx Context)
	AbsolutePosition() image.Point
	VisibleRecursive() bool
	Contains(p image.Point) bool
	AsWindow() Window
}

// Window is implemented by floating top-level widgets that live directly
// under a Screen and can be raised, dragged and made modal.
type Window interface {
	Widget
	Title() string
	Modal() bool
}

// WidgetNode is the state shared by every widget. It is not a widget on
// its own: concrete widgets create one with NewWidgetNode and embed it.
type WidgetNode struct {
	owner Widget
	id    string

	// Hierarchy. parent is weak: children are owned through the children
	// slice only, so a parent can be disposed or collected while a child
	// is still referenced elsewhere.
	parent   weak.Pointer[WidgetNode]
	children []Widget

	pos       image.Point
	size      image.Point
	fixedSize image.Point
	fontSize  int

	theme  *Theme
	layout Layout

	enabled bool
	visible bool
	focused bool
	tooltip string

	root     bool
	disposed bool
}

// NewWidgetNode creates the node state for owner, the concrete widget that
// will embed it. An empty id is replaced by a random UUID.
//
//	func NewLabel(id, caption string) *Label {
//		l := &Label{caption: caption}
//		l.WidgetNode = bramble.NewWidgetNode(l, id)
//		return l
//	}
func NewWidgetNode(owner Widget, id string) *WidgetNode {
	if owner == nil {
		panic("bramble: widget node requires an owner")
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &WidgetNode{
		owner:   owner,
		id:      id,
		enabled: true,
		visible: true,
	}
}

func (n *WidgetNode) base() *WidgetNode { return n }

// ID returns the widget's identifier.
func (n *WidgetNode) ID() string { return n.id }

// parentNode resolves the back-reference. A parent that was disposed or
// garbage collected resolves to nil.
func (n *WidgetNode) parentNode() *WidgetNode {
	p := n.parent.Value()
	if p == nil || p.disposed {
		return nil
	}
	return p
}

// setParent replaces the back-reference. Only Attach and Detach call it,
// in lockstep with childrenMut.
func (n *WidgetNode) setParent(p *WidgetNode) {
	if p == nil {
		n.parent = weak.Pointer[WidgetNode]{}
		return
	}
	n.parent = weak.Make(p)
}

// childrenMut exposes the live child slice for structural edits.
func (n *WidgetNode) childrenMut() *[]Widget { return &n.children }

// Parent returns the parent widget, or nil for a root, a detached widget,
// or a widget whose parent no longer exists.
func (n *WidgetNode) Parent() Widget {
	if p := n.parentNode(); p != nil {
		return p.owner
	}
	return nil
}

// Children returns a copy of the child list. Editing the tree while
// iterating the copy is safe.
func (n *WidgetNode) Children() []Widget {
	out := make([]Widget, len(n.children))
	copy(out, n.children)
	return out
}

// NumChildren returns the number of children.
func (n *WidgetNode) NumChildren() int { return len(n.children) }

// ChildAt returns the child at the given index.
func (n *WidgetNode) ChildAt(index int) Widget { return n.children[index] }

// ChildIndex returns the index of child, or -1 if it is not a child of n.
func (n *WidgetNode) ChildIndex(child Widget) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *WidgetNode) Pos() image.Point           { return n.pos }
func (n *WidgetNode) SetPos(p image.Point)       { n.pos = p }
func (n *WidgetNode) Size() image.Point          { return n.size }
func (n *WidgetNode) SetSize(s image.Point)      { n.size = s }
func (n *WidgetNode) FixedSize() image.Point     { return n.fixedSize }
func (n *WidgetNode) SetFixedSize(s image.Point) { n.fixedSize = s }
func (n *WidgetNode) Width() int                 { return n.size.X }
func (n *WidgetNode) Height() int                { return n.size.Y }

// FontSize returns the widget's font size: its own override, else the
// nearest theme's standard size, else DefaultFontSize.
func (n *WidgetNode) FontSize() int {
	if n.fontSize > 0 {
		return n.fontSize
	}
	if t := n.ResolvedTheme(); t != nil && t.StandardFontSize > 0 {
		return t.StandardFontSize
	}
	return DefaultFontSize
}

// SetFontSize sets the font size override. Zero or negative clears it.
func (n *WidgetNode) SetFontSize(size int) {
	if size < 0 {
		size = 0
	}
	n.fontSize = size
}

// HasFontSize reports whether the widget overrides its font size.
func (n *WidgetNode) HasFontSize() bool { return n.fontSize > 0 }

// Theme returns the theme set on this widget, or nil if it inherits.
func (n *WidgetNode) Theme() *Theme     { return n.theme }
func (n *WidgetNode) SetTheme(t *Theme) { n.theme = t }

// ResolvedTheme returns the theme of the nearest live widget on the path
// to the root that has one, or nil.
func (n *WidgetNode) ResolvedTheme() *Theme {
	for p := n; p != nil; p = p.parentNode() {
		if p.theme != nil {
			return p.theme
		}
	}
	return nil
}

func (n *WidgetNode) Layout() Layout     { return n.layout }
func (n *WidgetNode) SetLayout(l Layout) { n.layout = l }

func (n *WidgetNode) Enabled() bool             { return n.enabled }
func (n *WidgetNode) SetEnabled(enabled bool)   { n.enabled = enabled }
func (n *WidgetNode) Visible() bool             { return n.visible }
func (n *WidgetNode) SetVisible(visible bool)   { n.visible = visible }
func (n *WidgetNode) Focused() bool             { return n.focused }
func (n *WidgetNode) SetFocused(focused bool)   { n.focused = focused }
func (n *WidgetNode) Tooltip() string           { return n.tooltip }
func (n *WidgetNode) SetTooltip(tooltip string) { n.tooltip = tooltip }

// PreferredSize returns the size the widget would like. Without a layout
// the answer is zero, which defers to the explicit size.
func (n *WidgetNode) PreferredSize(ctx Context) image.Point {
	if n.layout != nil {
		return n.layout.PreferredSize(ctx, n.owner)
	}
	return image.Point{}
}

// Draw draws the visible children in order, translated by this widget's
// position. Later children paint over earlier ones.
func (n *WidgetNode) Draw(ctx Context) {
	if len(n.children) == 0 {
		return
	}
	ctx.Translate(n.pos.X, n.pos.Y)
	for _, child := range n.children {
		if !child.Visible() {
			continue
		}
		child.Draw(ctx)
	}
	ctx.Translate(-n.pos.X, -n.pos.Y)
}

// AbsolutePosition returns the widget's position in screen coordinates.
// A widget without a live parent reports its own position.
func (n *WidgetNode) AbsolutePosition() image.Point {
	if p := n.Parent(); p != nil {
		return p.AbsolutePosition().Add(n.pos)
	}
	return n.pos
}

// VisibleRecursive reports whether this widget and every live ancestor
// are visible.
func (n *WidgetNode) VisibleRecursive() bool {
	if !n.visible {
		return false
	}
	if p := n.Parent(); p != nil {
		return p.VisibleRecursive()
	}
	return true
}

// Contains reports whether p, in the parent's coordinate space, lies in
// [pos, pos+size). The right and bottom edges are outside.
func (n *WidgetNode) Contains(p image.Point) bool {
	return p.In(n.Bounds())
}

// Bounds returns the widget rectangle in the parent's coordinate space.
func (n *WidgetNode) Bounds() image.Rectangle {
	return image.Rectangle{Min: n.pos, Max: n.pos.Add(n.size)}
}

// AsWindow returns nil. Floating window widgets override it to return
// themselves.
func (n *WidgetNode) AsWindow() Window { return nil }
