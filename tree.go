package bramble

import "errors"

var (
	ErrNilWidget       = errors.New("bramble: nil widget")
	ErrCycle           = errors.New("bramble: adding child would create a cycle")
	ErrDisposed        = errors.New("bramble: widget is disposed")
	ErrScreenChild     = errors.New("bramble: a screen cannot be a child")
	ErrNotChild        = errors.New("bramble: child's parent is not this widget")
	ErrIndexOutOfRange = errors.New("bramble: child index out of range")
)

// Attach appends child to parent's children. A child that already has a
// parent is removed from it first, so ownership moves in one step. A
// child already in parent moves to the end. On error the tree is left unchanged.
func Attach(parent, child Widget) error {
	if parent == nil || child == nil {
		return ErrNilWidget
	}
	n := parent.NumChildren()
	if child.base().parentNode() == parent.base() {
		n--
	}
	return AttachAt(parent, child, n)
}

// AttachAt inserts child into parent's children at index, with the same
// reparenting behavior as Attach. When child is already a child of parent,
// index refers to the list with child removed.
func AttachAt(parent, child Widget, index int) error {
	if parent == nil || child == nil {
		return ErrNilWidget
	}
	p, c := parent.base(), child.base()
	if p.disposed || c.disposed {
		if globalDebug {
			debugCheckDisposed(p, "Attach (parent)")
			debugCheckDisposed(c, "Attach (child)")
		}
		return ErrDisposed
	}
	if c.root {
		return ErrScreenChild
	}
	if isAncestor(c, p) {
		return ErrCycle
	}
	size := len(p.children)
	if c.parentNode() == p {
		size--
	}
	if index < 0 || index > size {
		return ErrIndexOutOfRange
	}

	if old := c.parentNode(); old != nil {
		old.removeChildByPtr(child)
	}
	kids := p.childrenMut()
	*kids = append(*kids, nil)
	copy((*kids)[index+1:], (*kids)[index:])
	(*kids)[index] = child
	c.setParent(p)

	if globalDebug {
		debugCheckTreeDepth(c)
		debugCheckChildCount(p)
	}
	return nil
}

// Detach removes child from its parent. A child without a live parent is
// left as is and ErrNotChild is returned.
func Detach(child Widget) error {
	if child == nil {
		return ErrNilWidget
	}
	c := child.base()
	p := c.parentNode()
	if p == nil {
		return ErrNotChild
	}
	p.removeChildByPtr(child)
	c.setParent(nil)
	return nil
}

// AddChild appends child to this widget's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, disposed, a Screen, or an ancestor of this
// widget.
func (n *WidgetNode) AddChild(child Widget) {
	if err := Attach(n.owner, child); err != nil {
		panic(err)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *WidgetNode) AddChildAt(child Widget, index int) {
	if err := AttachAt(n.owner, child, index); err != nil {
		panic(err)
	}
}

// RemoveChild detaches child from this widget.
// Panics if child's parent is not this widget.
func (n *WidgetNode) RemoveChild(child Widget) {
	if child == nil {
		panic(ErrNilWidget)
	}
	if child.base().parentNode() != n {
		panic(ErrNotChild)
	}
	if err := Detach(child); err != nil {
		panic(err)
	}
}

// RemoveChildAt removes and returns the child at the given index.
func (n *WidgetNode) RemoveChildAt(index int) Widget {
	if index < 0 || index >= len(n.children) {
		panic(ErrIndexOutOfRange)
	}
	child := n.children[index]
	n.RemoveChild(child)
	return child
}

// RemoveFromParent detaches this widget from its parent.
// No-op if this widget has no parent.
func (n *WidgetNode) RemoveFromParent() {
	if n.parentNode() == nil {
		return
	}
	_ = Detach(n.owner)
}

// RemoveChildren detaches all children from this widget.
// Children are NOT disposed.
func (n *WidgetNode) RemoveChildren() {
	for _, child := range n.children {
		child.base().setParent(nil)
	}
	clear(n.children)
	n.children = n.children[:0]
}

// SetChildIndex moves child to a new index among its siblings.
func (n *WidgetNode) SetChildIndex(child Widget, index int) {
	if child == nil || child.base().parentNode() != n {
		panic(ErrNotChild)
	}
	nc := len(n.children)
	if index < 0 || index >= nc {
		panic(ErrIndexOutOfRange)
	}
	oldIndex := n.ChildIndex(child)
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
}

// --- Disposal ---

// Dispose removes this widget from its parent, marks it as disposed, and
// recursively disposes all descendants. Back-references to a disposed
// widget resolve to nil from then on.
func (n *WidgetNode) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *WidgetNode) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.base().dispose()
	}
	clear(n.children)
	n.children = nil
	n.layout = nil
	n.theme = nil
	n.focused = false
}

// IsDisposed returns true if this widget has been disposed.
func (n *WidgetNode) IsDisposed() bool {
	return n.disposed
}

// --- Traversal ---

// Root returns the topmost live ancestor of w, or w itself.
func Root(w Widget) Widget {
	for {
		p := w.Parent()
		if p == nil {
			return w
		}
		w = p
	}
}

// Walk calls fn for w and its descendants depth-first in children order.
// Returning false from fn skips that widget's subtree.
func Walk(w Widget, fn func(Widget) bool) {
	if !fn(w) {
		return
	}
	for _, child := range w.base().children {
		Walk(child, fn)
	}
}

// FindByID returns the first widget in root's subtree, in Walk order,
// whose ID is id.
func FindByID(root Widget, id string) Widget {
	var found Widget
	Walk(root, func(w Widget) bool {
		if found != nil {
			return false
		}
		if w.ID() == id {
			found = w
			return false
		}
		return true
	})
	return found
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *WidgetNode) bool {
	for p := node; p != nil; p = p.parentNode() {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing the
// child's back-reference.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *WidgetNode) removeChildByPtr(child Widget) {
	kids := n.childrenMut()
	for i, c := range *kids {
		if c == child {
			copy((*kids)[i:], (*kids)[i+1:])
			(*kids)[len(*kids)-1] = nil
			*kids = (*kids)[:len(*kids)-1]
			return
		}
	}
}
