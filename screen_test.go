package bramble

import (
	"errors"
	"image"
	"testing"
	"time"
)

func TestNewScreenAdoptsSurface(t *testing.T) {
	f := newScreenFixture(t, 800, 600)
	s := f.screen

	if f.surface.title != "Test" || f.surface.titles != 1 {
		t.Errorf("surface title = %q (set %d times), want %q once", f.surface.title, f.surface.titles, "Test")
	}
	if s.Caption() != "Test" || s.ID() != "screen" {
		t.Errorf("caption/id = %q/%q", s.Caption(), s.ID())
	}
	if s.Size() != image.Pt(800, 600) || s.FramebufferSize() != image.Pt(800, 600) {
		t.Errorf("size = %v, framebuffer = %v, want (800,600)", s.Size(), s.FramebufferSize())
	}
	if f.flags != FlagAntialias|FlagStencilStrokes {
		t.Errorf("context flags = %v", f.flags)
	}
	if s.RenderContext() != Context(f.ctx) || s.Surface() != Surface(f.surface) {
		t.Error("screen should keep the context and surface it was given")
	}
	if s.Background() != DefaultBackground {
		t.Errorf("Background = %+v", s.Background())
	}
	if !s.ProcessEvents() {
		t.Error("new screen should process events")
	}
	if s.LastInteraction() != 1000 {
		t.Errorf("LastInteraction = %d, want 1000", s.LastInteraction())
	}
	if s.PixelRatio() != 0 {
		t.Errorf("PixelRatio = %g before any resize, want 0", s.PixelRatio())
	}
	if s.Theme() == nil {
		t.Error("screen should carry the default theme")
	}
	if s.DragActive() || s.DragWidget() != nil || len(s.FocusPath()) != 0 {
		t.Error("new screen should have no drag or focus")
	}
}

func TestNewScreenFailures(t *testing.T) {
	boom := errors.New("no gpu")

	if _, err := NewScreen("s", "x", nil); !errors.Is(err, ErrNilSurface) {
		t.Errorf("nil surface error = %v, want ErrNilSurface", err)
	}

	_, err := NewScreenWithConfig("s", "x", &fakeSurface{w: 1, h: 1}, ScreenConfig{
		NewContext: func(Surface, ContextFlags) (Context, error) { return nil, boom },
	})
	if !errors.Is(err, boom) {
		t.Errorf("factory error = %v, want wrapped %v", err, boom)
	}

	_, err = NewScreenWithConfig("s", "x", &fakeSurface{w: 1, h: 1}, ScreenConfig{
		NewContext: func(Surface, ContextFlags) (Context, error) { return nil, nil },
	})
	if !errors.Is(err, ErrNilContext) {
		t.Errorf("nil context error = %v, want ErrNilContext", err)
	}
}

func TestScreenVisibilityScenario(t *testing.T) {
	s := newScreenFixture(t, 800, 600).screen
	if s.Size() != image.Pt(800, 600) || !s.VisibleRecursive() {
		t.Fatal("screen should be 800x600 and visible")
	}

	child := newBox("child")
	child.SetPos(image.Pt(10, 10))
	s.AddChild(child)
	if child.AbsolutePosition() != image.Pt(10, 10) {
		t.Errorf("child AbsolutePosition = %v, want (10,10)", child.AbsolutePosition())
	}

	s.SetVisible(false)
	if child.VisibleRecursive() {
		t.Error("child of a hidden screen should not be visible")
	}
	if !child.Visible() {
		t.Error("child's own flag should stay true")
	}
}

func TestScreenCannotBeAChild(t *testing.T) {
	s := newScreenFixture(t, 100, 100).screen
	expectPanic(t, ErrScreenChild, func() { newBox("p").AddChild(s) })
}

// --- Drawing ---

func TestDrawWidgetsSingleFrame(t *testing.T) {
	f := newScreenFixture(t, 800, 600)
	rec := &recorder{}
	win := newTestWindow("win", rec, false)
	place(win, 100, 100, 200, 200)
	inner := newProbe("inner", rec)
	place(inner, 10, 40, 50, 20)
	other := newProbe("other", rec)
	place(other, 0, 0, 10, 10)
	f.screen.AddChild(win)
	win.AddChild(inner)
	f.screen.AddChild(other)

	f.screen.DrawWidgets()

	assertCalls(t, f.ctx.ops,
		"begin 800x600@1",
		"fill (100,100)-(300,300)",
		"fill (110,140)-(160,160)",
		"fill (0,0)-(10,10)",
		"end",
	)
	assertCalls(t, rec.calls, "draw win", "draw inner", "draw other")
}

func TestDrawWidgetsHiddenScreen(t *testing.T) {
	f := newScreenFixture(t, 800, 600)
	f.screen.AddChild(newProbe("a", &recorder{}))
	f.screen.SetVisible(false)

	f.screen.DrawWidgets()

	if len(f.ctx.ops) != 0 {
		t.Errorf("hidden screen should not draw, got %q", f.ctx.ops)
	}
}

type panicky struct {
	*WidgetNode
}

func (p *panicky) Draw(ctx Context) { panic("draw failed") }

func TestDrawWidgetsEndsFrameOnPanic(t *testing.T) {
	f := newScreenFixture(t, 100, 100)
	p := &panicky{}
	p.WidgetNode = NewWidgetNode(p, "p")
	f.screen.AddChild(p)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected the draw panic to reach the caller")
			}
		}()
		f.screen.DrawWidgets()
	}()

	assertCalls(t, f.ctx.ops, "begin 100x100@1", "end")
	if f.ctx.inFrame {
		t.Error("frame left open")
	}
}

// --- Lifecycle ---

func TestScreenClose(t *testing.T) {
	f := newScreenFixture(t, 100, 100)
	child := newBox("child")
	f.screen.AddChild(child)

	if err := f.screen.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.ctx.closed || !f.screen.IsDisposed() || !child.IsDisposed() {
		t.Error("Close should dispose the tree and close the context")
	}
	if err := f.screen.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	assertCalls(t, f.ctx.ops, "close")

	f.screen.DrawWidgets()
	assertCalls(t, f.ctx.ops, "close")
}

func TestScreenCloseWrapsContextError(t *testing.T) {
	f := newScreenFixture(t, 100, 100)
	boom := errors.New("device lost")
	f.ctx.closeErr = boom
	if err := f.screen.Close(); !errors.Is(err, boom) {
		t.Errorf("Close error = %v, want wrapped %v", err, boom)
	}
}

func TestSetCaption(t *testing.T) {
	f := newScreenFixture(t, 100, 100)
	f.screen.SetCaption("Other")
	if f.screen.Caption() != "Other" || f.surface.title != "Other" || f.surface.titles != 2 {
		t.Errorf("caption = %q, surface title = %q", f.screen.Caption(), f.surface.title)
	}
}

func TestScreenPerformLayout(t *testing.T) {
	f := newScreenFixture(t, 100, 100)
	b := newSizedBox("b", image.Pt(30, 12))
	f.screen.AddChild(b)
	f.screen.PerformLayout()
	if b.Size() != image.Pt(30, 12) {
		t.Errorf("Size = %v, want (30,12)", b.Size())
	}
}

func TestSetTooltipDelayClampsNegative(t *testing.T) {
	f := newScreenFixture(t, 100, 100)
	f.screen.SetTooltipDelay(-time.Second)
	if f.screen.tooltipDelay != 0 {
		t.Errorf("tooltipDelay = %d, want 0", f.screen.tooltipDelay)
	}
}
