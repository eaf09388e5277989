package bramble

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Optional handler interfaces ---
//
// Widgets opt into input by implementing any of these. Points are in the
// coordinate space of the widget's parent, the same space as Pos and
// Contains. A handler returns true when it consumed the event.

// MouseButtonHandler receives button presses and releases.
// Implementations that contain other widgets usually end with
// PropagateMouseButton so their children still see the event.
type MouseButtonHandler interface {
	MouseButtonEvent(p image.Point, button MouseButton, down bool, mods KeyModifiers) bool
}

// MouseMotionHandler receives pointer movement while no drag is active.
type MouseMotionHandler interface {
	MouseMotionEvent(p, rel image.Point, buttons MouseButtons, mods KeyModifiers) bool
}

// MouseDragHandler receives every pointer move while it is the drag target.
type MouseDragHandler interface {
	MouseDragEvent(p, rel image.Point, buttons MouseButtons, mods KeyModifiers) bool
}

// MouseEnterHandler is told when the pointer enters or leaves the widget.
type MouseEnterHandler interface {
	MouseEnterEvent(p image.Point, enter bool) bool
}

// ScrollHandler receives wheel and trackpad scrolling.
type ScrollHandler interface {
	ScrollEvent(p image.Point, dx, dy float64) bool
}

// KeyboardHandler receives key events while focused.
type KeyboardHandler interface {
	KeyboardEvent(key ebiten.Key, scancode int, action Action, mods KeyModifiers) bool
}

// CharHandler receives text input while focused.
type CharHandler interface {
	KeyboardCharacterEvent(r rune) bool
}

// FocusHandler is told when the widget gains or loses focus.
type FocusHandler interface {
	FocusEvent(focused bool) bool
}

// --- Interaction events ---

// EventSink is the interface for optional external consumers of
// interaction events, such as an ECS world.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent describes one dispatched input event. X and Y are
// screen coordinates; LocalX and LocalY are relative to the target
// widget's parent.
type InteractionEvent struct {
	Type      EventType
	WidgetID  string // empty when no widget was targeted
	X, Y      int
	LocalX    int
	LocalY    int
	DeltaX    int
	DeltaY    int
	ScrollX   float64
	ScrollY   float64
	Button    MouseButton
	Buttons   MouseButtons
	Modifiers KeyModifiers
	Key       ebiten.Key
	Action    Action
	Char      rune
	Handled   bool
}

// --- Screen entry points ---

// CursorPosEvent handles pointer movement to (x, y) in screen
// coordinates. During a drag the move goes only to the drag target;
// otherwise it is propagated through the tree with enter/leave
// notifications.
func (s *Screen) CursorPosEvent(x, y int) bool {
	if !s.processEvents {
		return false
	}
	s.touch()
	p := image.Pt(x, y)
	rel := p.Sub(s.mousePos)
	s.mousePos = p

	if s.dragActive {
		if dw, origin, ok := s.liveDragTarget(); ok {
			local := p.Sub(origin)
			handled := deliverMouseDrag(dw, local, rel, s.mouseState, s.modifiers)
			s.emit(InteractionEvent{
				Type: EventDrag, WidgetID: dw.ID(), X: x, Y: y,
				LocalX: local.X, LocalY: local.Y, DeltaX: rel.X, DeltaY: rel.Y,
				Buttons: s.mouseState, Modifiers: s.modifiers, Handled: handled,
			})
			return handled
		}
		s.cancelDrag()
	}

	handled := PropagateMouseMotion(s, p, rel, s.mouseState, s.modifiers)
	s.emit(InteractionEvent{
		Type: EventPointerMove, X: x, Y: y, LocalX: x, LocalY: y,
		DeltaX: rel.X, DeltaY: rel.Y, Buttons: s.mouseState,
		Modifiers: s.modifiers, Handled: handled,
	})
	return handled
}

// MouseButtonEvent handles a button transition at the current pointer
// position.
//
// A press on a widget other than the screen starts a drag targeting it
// and gives it focus; a press on empty screen space clears focus. A
// release ends the drag, and the drag target receives the release even if
// the pointer has left it. While a modal window is focused, presses
// outside it are ignored.
func (s *Screen) MouseButtonEvent(button MouseButton, action Action, mods KeyModifiers) bool {
	if !s.processEvents {
		return false
	}
	s.touch()
	s.modifiers = mods

	down := action != ActionRelease
	if win := s.modalWindow(); down && win != nil {
		r := image.Rectangle{Min: win.AbsolutePosition(), Max: win.AbsolutePosition().Add(win.Size())}
		if !s.mousePos.In(r) {
			return false
		}
	}

	if down {
		s.mouseState = s.mouseState.with(button)
	} else {
		s.mouseState = s.mouseState.without(button)
	}

	target := s.FindWidget(s.mousePos)
	if down {
		s.pressAt(target, button)
	} else if s.dragActive {
		s.releaseDrag(target, button)
	}

	handled := PropagateMouseButton(s, s.mousePos, button, down, mods)

	typ := EventPointerUp
	if down {
		typ = EventPointerDown
	}
	ev := InteractionEvent{
		Type: typ, X: s.mousePos.X, Y: s.mousePos.Y,
		Button: button, Buttons: s.mouseState, Modifiers: mods,
		Action: action, Handled: handled,
	}
	if target != nil && target != Widget(s) {
		ev.WidgetID = target.ID()
		local := s.mousePos.Sub(parentOrigin(target))
		ev.LocalX, ev.LocalY = local.X, local.Y
	}
	s.emit(ev)
	return handled
}

func (s *Screen) pressAt(target Widget, button MouseButton) {
	if s.dragActive {
		// Another button went down mid-drag; the drag keeps its target.
		return
	}
	if target == nil || target == Widget(s) || !enabledRecursive(target) {
		s.cancelDrag()
		s.UpdateFocus(nil)
		return
	}
	s.dragActive = true
	s.dragWidget = target
	s.UpdateFocus(target)
	local := s.mousePos.Sub(parentOrigin(target))
	s.emit(InteractionEvent{
		Type: EventDragStart, WidgetID: target.ID(), X: s.mousePos.X, Y: s.mousePos.Y,
		LocalX: local.X, LocalY: local.Y, Button: button, Buttons: s.mouseState,
		Modifiers: s.modifiers,
	})
}

func (s *Screen) releaseDrag(target Widget, button MouseButton) {
	dw, origin, ok := s.liveDragTarget()
	if ok && dw != target {
		deliverMouseButton(dw, s.mousePos.Sub(origin), button, false, s.modifiers)
	}
	if ok {
		local := s.mousePos.Sub(origin)
		s.emit(InteractionEvent{
			Type: EventDragEnd, WidgetID: dw.ID(), X: s.mousePos.X, Y: s.mousePos.Y,
			LocalX: local.X, LocalY: local.Y, Button: button, Buttons: s.mouseState,
			Modifiers: s.modifiers,
		})
	}
	s.cancelDrag()
}

// KeyEvent delivers a key event along the focus path, innermost widget
// first, until one consumes it.
func (s *Screen) KeyEvent(key ebiten.Key, scancode int, action Action, mods KeyModifiers) bool {
	if !s.processEvents {
		return false
	}
	s.touch()
	s.modifiers = mods

	ev := InteractionEvent{
		Type: EventKey, X: s.mousePos.X, Y: s.mousePos.Y,
		Key: key, Action: action, Modifiers: mods, Buttons: s.mouseState,
	}
	for _, w := range s.focusPath {
		if w.base().disposed || !w.Focused() {
			continue
		}
		h, ok := w.(KeyboardHandler)
		if ok && h.KeyboardEvent(key, scancode, action, mods) {
			ev.WidgetID = w.ID()
			ev.Handled = true
			break
		}
	}
	s.emit(ev)
	return ev.Handled
}

// CharEvent delivers a text input character along the focus path.
func (s *Screen) CharEvent(r rune) bool {
	if !s.processEvents {
		return false
	}
	s.touch()

	ev := InteractionEvent{
		Type: EventChar, X: s.mousePos.X, Y: s.mousePos.Y,
		Char: r, Modifiers: s.modifiers,
	}
	for _, w := range s.focusPath {
		if w.base().disposed || !w.Focused() {
			continue
		}
		h, ok := w.(CharHandler)
		if ok && h.KeyboardCharacterEvent(r) {
			ev.WidgetID = w.ID()
			ev.Handled = true
			break
		}
	}
	s.emit(ev)
	return ev.Handled
}

// ScrollEvent propagates a scroll at the current pointer position.
func (s *Screen) ScrollEvent(dx, dy float64) bool {
	if !s.processEvents {
		return false
	}
	s.touch()
	handled := PropagateScroll(s, s.mousePos, dx, dy)
	s.emit(InteractionEvent{
		Type: EventScroll, X: s.mousePos.X, Y: s.mousePos.Y,
		ScrollX: dx, ScrollY: dy, Modifiers: s.modifiers, Handled: handled,
	})
	return handled
}

// ResizeEvent records a new surface size and lays the tree out again.
// A zero-area size (a minimized window) is recorded but not applied.
// The size is applied even while events are suspended; only the
// interaction time and the return value follow SetProcessEvents.
func (s *Screen) ResizeEvent(width, height int) bool {
	s.framebufferSize = image.Pt(width, height)
	if pr, ok := s.surface.(pixelRatioSurface); ok {
		s.pixelRatio = pr.PixelRatio()
	}
	if width <= 0 || height <= 0 {
		return false
	}
	s.SetSize(image.Pt(width, height))
	s.PerformLayout()
	if !s.processEvents {
		return false
	}
	s.touch()
	return true
}

// FindWidget returns the deepest visible widget containing p, in screen
// coordinates, or the screen itself.
func (s *Screen) FindWidget(p image.Point) Widget {
	return findWidget(s, p)
}

func findWidget(w Widget, p image.Point) Widget {
	local := p.Sub(w.Pos())
	kids := w.base().children
	for i := len(kids) - 1; i >= 0; i-- {
		c := kids[i]
		if c.Visible() && c.Contains(local) {
			return findWidget(c, local)
		}
	}
	return w
}

// UpdateFocus moves focus to w and its ancestors. Widgets that lose focus
// get FocusEvent(false) first, then widgets that gain it get
// FocusEvent(true) from the outermost inwards. A window on the new path is
// raised above its siblings. Passing nil clears focus. Widgets that do not
// belong to this screen are ignored.
func (s *Screen) UpdateFocus(w Widget) {
	var path []Widget
	for c := w; c != nil; c = c.Parent() {
		path = append(path, c)
	}
	if w != nil && path[len(path)-1] != Widget(s) {
		return
	}

	for _, old := range s.focusPath {
		if old.base().disposed || !old.Focused() || containsWidget(path, old) {
			continue
		}
		old.SetFocused(false)
		deliverFocus(old, false)
		s.emit(InteractionEvent{Type: EventBlur, WidgetID: old.ID(), X: s.mousePos.X, Y: s.mousePos.Y})
	}

	s.focusPath = path
	for i := len(path) - 1; i >= 0; i-- {
		c := path[i]
		if !c.Focused() {
			c.SetFocused(true)
			deliverFocus(c, true)
			s.emit(InteractionEvent{Type: EventFocus, WidgetID: c.ID(), X: s.mousePos.X, Y: s.mousePos.Y})
		}
		if win := c.AsWindow(); win != nil {
			MoveToFront(win)
		}
	}
}

// MoveToFront makes w the last child of its parent so it draws above its
// siblings and is hit-tested first.
func MoveToFront(w Widget) {
	p := w.Parent()
	if p == nil {
		return
	}
	pn := p.base()
	if pn.ChildIndex(w) == len(pn.children)-1 {
		return
	}
	pn.SetChildIndex(w, len(pn.children)-1)
}

// --- Default propagation ---

// PropagateMouseButton forwards a button event at p, in the parent space
// of w, to the topmost visible, enabled child of w containing it.
func PropagateMouseButton(w Widget, p image.Point, button MouseButton, down bool, mods KeyModifiers) bool {
	local := p.Sub(w.Pos())
	kids := w.Children()
	for i := len(kids) - 1; i >= 0; i-- {
		c := kids[i]
		if !c.Visible() || !c.Enabled() || !c.Contains(local) {
			continue
		}
		if deliverMouseButton(c, local, button, down, mods) {
			return true
		}
	}
	return false
}

// PropagateMouseMotion forwards pointer motion to the children of w,
// notifying children whose containment of the pointer changed, and stops
// at the first child that consumes the motion.
func PropagateMouseMotion(w Widget, p, rel image.Point, buttons MouseButtons, mods KeyModifiers) bool {
	local := p.Sub(w.Pos())
	kids := w.Children()
	for i := len(kids) - 1; i >= 0; i-- {
		c := kids[i]
		if !c.Visible() {
			continue
		}
		contained := c.Contains(local)
		wasContained := c.Contains(local.Sub(rel))
		if contained != wasContained {
			deliverMouseEnter(c, local, contained)
		}
		if contained && c.Enabled() && deliverMouseMotion(c, local, rel, buttons, mods) {
			return true
		}
	}
	return false
}

// PropagateScroll forwards a scroll at p to the topmost visible, enabled
// child of w containing it.
func PropagateScroll(w Widget, p image.Point, dx, dy float64) bool {
	local := p.Sub(w.Pos())
	kids := w.Children()
	for i := len(kids) - 1; i >= 0; i-- {
		c := kids[i]
		if !c.Visible() || !c.Enabled() || !c.Contains(local) {
			continue
		}
		if deliverScroll(c, local, dx, dy) {
			return true
		}
	}
	return false
}

func deliverMouseButton(w Widget, p image.Point, button MouseButton, down bool, mods KeyModifiers) bool {
	if h, ok := w.(MouseButtonHandler); ok {
		return h.MouseButtonEvent(p, button, down, mods)
	}
	return PropagateMouseButton(w, p, button, down, mods)
}

func deliverMouseMotion(w Widget, p, rel image.Point, buttons MouseButtons, mods KeyModifiers) bool {
	if h, ok := w.(MouseMotionHandler); ok {
		return h.MouseMotionEvent(p, rel, buttons, mods)
	}
	return PropagateMouseMotion(w, p, rel, buttons, mods)
}

func deliverMouseDrag(w Widget, p, rel image.Point, buttons MouseButtons, mods KeyModifiers) bool {
	if h, ok := w.(MouseDragHandler); ok {
		return h.MouseDragEvent(p, rel, buttons, mods)
	}
	return false
}

func deliverMouseEnter(w Widget, p image.Point, enter bool) {
	if h, ok := w.(MouseEnterHandler); ok {
		h.MouseEnterEvent(p, enter)
	}
	if s, ok := Root(w).(*Screen); ok {
		typ := EventPointerLeave
		if enter {
			typ = EventPointerEnter
		}
		s.emit(InteractionEvent{
			Type: typ, WidgetID: w.ID(), X: s.mousePos.X, Y: s.mousePos.Y,
			LocalX: p.X, LocalY: p.Y, Buttons: s.mouseState, Modifiers: s.modifiers,
		})
	}
}

func deliverScroll(w Widget, p image.Point, dx, dy float64) bool {
	if h, ok := w.(ScrollHandler); ok {
		return h.ScrollEvent(p, dx, dy)
	}
	return PropagateScroll(w, p, dx, dy)
}

func deliverFocus(w Widget, focused bool) {
	if h, ok := w.(FocusHandler); ok {
		h.FocusEvent(focused)
	}
}

// --- Helpers ---

func (s *Screen) touch() {
	s.lastInteraction = s.clock.Ticks()
}

func (s *Screen) emit(e InteractionEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
	if s.debug {
		debugLogEvent(e)
	}
}

func (s *Screen) cancelDrag() {
	s.dragActive = false
	s.dragWidget = nil
}

// liveDragTarget returns the drag target and its parent's screen origin
// when the target is still attached to this screen.
func (s *Screen) liveDragTarget() (Widget, image.Point, bool) {
	dw := s.dragWidget
	if dw == nil || dw.base().disposed {
		return nil, image.Point{}, false
	}
	p := dw.Parent()
	if p == nil || Root(p) != Widget(s) {
		return nil, image.Point{}, false
	}
	return dw, p.AbsolutePosition(), true
}

// modalWindow returns the modal window on the focus path, if any.
func (s *Screen) modalWindow() Window {
	for _, w := range s.focusPath {
		if w.base().disposed {
			continue
		}
		if win := w.AsWindow(); win != nil && win.Modal() {
			return win
		}
	}
	return nil
}

func parentOrigin(w Widget) image.Point {
	if p := w.Parent(); p != nil {
		return p.AbsolutePosition()
	}
	return image.Point{}
}

func enabledRecursive(w Widget) bool {
	for c := w; c != nil; c = c.Parent() {
		if !c.Enabled() {
			return false
		}
	}
	return true
}

func containsWidget(ws []Widget, w Widget) bool {
	for _, c := range ws {
		if c == w {
			return true
		}
	}
	return false
}
