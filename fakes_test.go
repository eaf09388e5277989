package bramble

import (
	"fmt"
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Rendering context ---

// recordingContext logs every call as a short string.
type recordingContext struct {
	ops      []string
	inFrame  bool
	offset   image.Point
	saved    []image.Point
	closed   bool
	closeErr error
}

func (c *recordingContext) add(format string, args ...any) {
	c.ops = append(c.ops, fmt.Sprintf(format, args...))
}

func (c *recordingContext) BeginFrame(w, h int, ratio float64) {
	c.inFrame = true
	c.offset = image.Point{}
	c.add("begin %dx%d@%g", w, h, ratio)
}

func (c *recordingContext) EndFrame() {
	c.inFrame = false
	c.add("end")
}

func (c *recordingContext) Save() { c.saved = append(c.saved, c.offset) }

func (c *recordingContext) Restore() {
	c.offset = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
}

func (c *recordingContext) Translate(x, y int) {
	c.offset = c.offset.Add(image.Pt(x, y))
}

func (c *recordingContext) FillRect(r image.Rectangle, col Color) {
	c.add("fill %v", r.Add(c.offset))
}

func (c *recordingContext) StrokeRect(r image.Rectangle, width float64, col Color) {
	c.add("stroke %v", r.Add(c.offset))
}

func (c *recordingContext) Text(x, y int, s string, size float64, col Color) {
	p := image.Pt(x, y).Add(c.offset)
	c.add("text %q at %v alpha %.2f", s, p, col.A)
}

// TextBounds uses a fixed advance of half the font size per byte.
func (c *recordingContext) TextBounds(s string, size float64) image.Point {
	return image.Pt(len(s)*int(size)/2, int(size))
}

func (c *recordingContext) Close() error {
	c.closed = true
	c.add("close")
	return c.closeErr
}

// --- Surface and clock ---

type fakeSurface struct {
	w, h   int
	title  string
	titles int
	ratio  float64
}

func (s *fakeSurface) Size() (int, int)      { return s.w, s.h }
func (s *fakeSurface) SetTitle(title string) { s.title = title; s.titles++ }
func (s *fakeSurface) PixelRatio() float64   { return s.ratio }

type fakeClock struct {
	now uint32
}

func (c *fakeClock) Ticks() uint32     { return c.now }
func (c *fakeClock) advance(ms uint32) { c.now += ms }

// --- Widgets ---

// recorder collects handler calls from probes in one tree.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) reset() { r.calls = r.calls[:0] }

// box is a widget with no handlers and no drawing of its own.
type box struct {
	*WidgetNode
}

func newBox(id string) *box {
	b := &box{}
	b.WidgetNode = NewWidgetNode(b, id)
	return b
}

// probe implements every handler interface and records each call. When
// consume is set it claims events; otherwise it forwards them to its
// children.
type probe struct {
	*WidgetNode
	rec     *recorder
	consume bool
}

func newProbe(id string, rec *recorder) *probe {
	p := &probe{rec: rec}
	p.WidgetNode = NewWidgetNode(p, id)
	return p
}

func (p *probe) Draw(ctx Context) {
	p.rec.add("draw %s", p.ID())
	ctx.FillRect(p.Bounds(), ColorWhite)
	p.WidgetNode.Draw(ctx)
}

func (p *probe) MouseButtonEvent(pt image.Point, button MouseButton, down bool, mods KeyModifiers) bool {
	p.rec.add("button %s %v down=%v", p.ID(), pt, down)
	if p.consume {
		return true
	}
	return PropagateMouseButton(p, pt, button, down, mods)
}

func (p *probe) MouseMotionEvent(pt, rel image.Point, buttons MouseButtons, mods KeyModifiers) bool {
	p.rec.add("motion %s %v", p.ID(), pt)
	if p.consume {
		return true
	}
	return PropagateMouseMotion(p, pt, rel, buttons, mods)
}

func (p *probe) MouseDragEvent(pt, rel image.Point, buttons MouseButtons, mods KeyModifiers) bool {
	p.rec.add("drag %s %v rel %v", p.ID(), pt, rel)
	return true
}

func (p *probe) MouseEnterEvent(pt image.Point, enter bool) bool {
	if enter {
		p.rec.add("enter %s", p.ID())
	} else {
		p.rec.add("leave %s", p.ID())
	}
	return false
}

func (p *probe) ScrollEvent(pt image.Point, dx, dy float64) bool {
	p.rec.add("scroll %s %g,%g", p.ID(), dx, dy)
	if p.consume {
		return true
	}
	return PropagateScroll(p, pt, dx, dy)
}

func (p *probe) KeyboardEvent(key ebiten.Key, scancode int, action Action, mods KeyModifiers) bool {
	p.rec.add("key %s %v %d", p.ID(), key, action)
	return p.consume
}

func (p *probe) KeyboardCharacterEvent(r rune) bool {
	p.rec.add("char %s %c", p.ID(), r)
	return p.consume
}

func (p *probe) FocusEvent(focused bool) bool {
	p.rec.add("focus %s %v", p.ID(), focused)
	return false
}

// testWindow is a probe that reports itself as a window.
type testWindow struct {
	*probe
	modal bool
}

func newTestWindow(id string, rec *recorder, modal bool) *testWindow {
	w := &testWindow{probe: &probe{rec: rec}, modal: modal}
	w.WidgetNode = NewWidgetNode(w, id)
	return w
}

func (w *testWindow) Title() string    { return w.ID() }
func (w *testWindow) Modal() bool      { return w.modal }
func (w *testWindow) AsWindow() Window { return w }

// sinkRecorder is an EventSink that keeps every event.
type sinkRecorder struct {
	events []InteractionEvent
}

func (s *sinkRecorder) EmitEvent(e InteractionEvent) {
	s.events = append(s.events, e)
}

func (s *sinkRecorder) types() []EventType {
	out := make([]EventType, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}

// --- Screen setup ---

type screenFixture struct {
	screen  *Screen
	ctx     *recordingContext
	surface *fakeSurface
	clock   *fakeClock
	flags   ContextFlags
}

func newScreenFixture(t *testing.T, w, h int) *screenFixture {
	t.Helper()
	f := &screenFixture{
		ctx:     &recordingContext{},
		surface: &fakeSurface{w: w, h: h, ratio: 2},
		clock:   &fakeClock{now: 1000},
	}
	s, err := NewScreenWithConfig("screen", "Test", f.surface, ScreenConfig{
		NewContext: func(_ Surface, flags ContextFlags) (Context, error) {
			f.flags = flags
			return f.ctx, nil
		},
		Clock: f.clock,
	})
	if err != nil {
		t.Fatalf("NewScreenWithConfig: %v", err)
	}
	f.screen = s
	return f
}

// place sets w's position and size in its parent's space.
func place(w Widget, x, y, width, height int) {
	w.SetPos(image.Pt(x, y))
	w.SetSize(image.Pt(width, height))
}

// --- Assertions ---

func assertCalls(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("calls = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call %d = %q, want %q (all: %q)", i, got[i], want[i], got)
		}
	}
}

func assertParent(t *testing.T, child, want Widget) {
	t.Helper()
	if got := child.Parent(); got != want {
		t.Errorf("%s.Parent() = %v, want %v", child.ID(), idOf(got), idOf(want))
	}
}

func idOf(w Widget) string {
	if w == nil {
		return "<nil>"
	}
	return w.ID()
}

func childIDs(w Widget) []string {
	kids := w.Children()
	out := make([]string, len(kids))
	for i, c := range kids {
		out[i] = c.ID()
	}
	return out
}

func assertChildIDs(t *testing.T, w Widget, want ...string) {
	t.Helper()
	assertCalls(t, childIDs(w), want...)
}

// assertTreeInvariant checks that every child's parent is the widget
// listing it, and that no widget appears twice.
func assertTreeInvariant(t *testing.T, root Widget) {
	t.Helper()
	seen := map[Widget]bool{}
	var check func(w Widget)
	check = func(w Widget) {
		if seen[w] {
			t.Fatalf("widget %s appears twice in the tree", w.ID())
		}
		seen[w] = true
		for _, c := range w.Children() {
			if c.Parent() != w {
				t.Fatalf("child %s of %s has parent %s", c.ID(), w.ID(), idOf(c.Parent()))
			}
			check(c)
		}
	}
	check(root)
}

func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		if want != nil && r != want {
			t.Errorf("panic = %v, want %v", r, want)
		}
	}()
	fn()
}
