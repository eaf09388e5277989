package bramble

import (
	"image"
	"testing"
)

// --- Constructor defaults ---

func TestNewWidgetNodeDefaults(t *testing.T) {
	b := newBox("b")
	if b.ID() != "b" {
		t.Errorf("ID = %q, want %q", b.ID(), "b")
	}
	if b.Parent() != nil {
		t.Error("new widget should have no parent")
	}
	if b.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", b.NumChildren())
	}
	if !b.Enabled() || !b.Visible() || b.Focused() {
		t.Errorf("flags = enabled %v visible %v focused %v, want true true false",
			b.Enabled(), b.Visible(), b.Focused())
	}
	if b.Pos() != (image.Point{}) || b.Size() != (image.Point{}) || b.FixedSize() != (image.Point{}) {
		t.Error("geometry should start at zero")
	}
	if b.HasFontSize() {
		t.Error("new widget should not override font size")
	}
	if b.Theme() != nil || b.Layout() != nil {
		t.Error("new widget should have no theme or layout")
	}
	if b.Tooltip() != "" {
		t.Errorf("Tooltip = %q, want empty", b.Tooltip())
	}
	if b.AsWindow() != nil {
		t.Error("plain widget should not be a window")
	}
	if b.IsDisposed() {
		t.Error("new widget should not be disposed")
	}
}

func TestNewWidgetNodeEmptyIDGetsUUID(t *testing.T) {
	a := newBox("")
	b := newBox("")
	if len(a.ID()) != 36 {
		t.Errorf("generated ID %q is not a UUID string", a.ID())
	}
	if a.ID() == b.ID() {
		t.Error("generated IDs should be unique")
	}
}

func TestNewWidgetNodeNilOwnerPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil owner, got none")
		}
	}()
	NewWidgetNode(nil, "x")
}

// --- Geometry ---

func TestWidthHeightFollowSize(t *testing.T) {
	b := newBox("b")
	b.SetSize(image.Pt(30, 40))
	if b.Width() != 30 || b.Height() != 40 {
		t.Errorf("Width/Height = %d/%d, want 30/40", b.Width(), b.Height())
	}
}

func TestContainsIsHalfOpen(t *testing.T) {
	b := newBox("b")
	place(b, 10, 20, 100, 50)

	tests := []struct {
		p    image.Point
		want bool
	}{
		{image.Pt(10, 20), true},
		{image.Pt(109, 69), true},
		{image.Pt(110, 20), false},
		{image.Pt(10, 70), false},
		{image.Pt(9, 20), false},
		{image.Pt(50, 19), false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestContainsZeroSize(t *testing.T) {
	b := newBox("b")
	b.SetPos(image.Pt(5, 5))
	if b.Contains(image.Pt(5, 5)) {
		t.Error("zero-size widget should contain nothing")
	}
}

func TestAbsolutePositionComposes(t *testing.T) {
	root := newBox("root")
	mid := newBox("mid")
	leaf := newBox("leaf")
	root.SetPos(image.Pt(1, 2))
	mid.SetPos(image.Pt(10, 20))
	leaf.SetPos(image.Pt(100, 200))
	root.AddChild(mid)
	mid.AddChild(leaf)

	if got, want := leaf.AbsolutePosition(), image.Pt(111, 222); got != want {
		t.Errorf("AbsolutePosition = %v, want %v", got, want)
	}
	if got, want := root.AbsolutePosition(), image.Pt(1, 2); got != want {
		t.Errorf("root AbsolutePosition = %v, want %v", got, want)
	}
}

func TestAbsolutePositionAfterParentDisposed(t *testing.T) {
	parent := newBox("parent")
	child := newBox("child")
	parent.SetPos(image.Pt(50, 50))
	child.SetPos(image.Pt(5, 6))
	parent.AddChild(child)
	parent.Dispose()

	if got, want := child.AbsolutePosition(), image.Pt(5, 6); got != want {
		t.Errorf("AbsolutePosition = %v, want %v", got, want)
	}
}

// --- Visibility ---

func TestVisibleRecursive(t *testing.T) {
	root := newBox("root")
	mid := newBox("mid")
	leaf := newBox("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	if !leaf.VisibleRecursive() {
		t.Error("all visible: leaf should be visible")
	}
	mid.SetVisible(false)
	if leaf.VisibleRecursive() {
		t.Error("hidden ancestor: leaf should not be visible")
	}
	if !leaf.Visible() {
		t.Error("leaf's own flag should be unchanged")
	}
	mid.SetVisible(true)
	leaf.SetVisible(false)
	if leaf.VisibleRecursive() {
		t.Error("hidden leaf should not be visible")
	}
}

// --- Font size and theme ---

func TestFontSizeResolution(t *testing.T) {
	root := newBox("root")
	child := newBox("child")
	root.AddChild(child)

	if child.FontSize() != DefaultFontSize {
		t.Errorf("no theme: FontSize = %d, want %d", child.FontSize(), DefaultFontSize)
	}

	theme := DefaultTheme()
	theme.StandardFontSize = 22
	root.SetTheme(theme)
	if child.FontSize() != 22 {
		t.Errorf("inherited theme: FontSize = %d, want 22", child.FontSize())
	}

	child.SetFontSize(30)
	if !child.HasFontSize() || child.FontSize() != 30 {
		t.Errorf("override: FontSize = %d, want 30", child.FontSize())
	}

	child.SetFontSize(0)
	if child.HasFontSize() {
		t.Error("SetFontSize(0) should clear the override")
	}
	child.SetFontSize(-4)
	if child.HasFontSize() || child.FontSize() != 22 {
		t.Errorf("negative size should clear the override, FontSize = %d", child.FontSize())
	}
}

func TestResolvedThemeNearestWins(t *testing.T) {
	root := newBox("root")
	mid := newBox("mid")
	leaf := newBox("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	outer, inner := DefaultTheme(), DefaultTheme()
	root.SetTheme(outer)
	if leaf.ResolvedTheme() != outer {
		t.Error("leaf should resolve the root theme")
	}
	mid.SetTheme(inner)
	if leaf.ResolvedTheme() != inner {
		t.Error("leaf should resolve the nearest theme")
	}
	if leaf.Theme() != nil {
		t.Error("Theme() should report only the widget's own theme")
	}
}

func TestThemeIsShared(t *testing.T) {
	theme := DefaultTheme()
	a, b := newBox("a"), newBox("b")
	a.SetTheme(theme)
	b.SetTheme(theme)
	theme.StandardFontSize = 40
	if a.FontSize() != 40 || b.FontSize() != 40 {
		t.Error("theme edits should be visible to every widget sharing it")
	}
}

// --- Preferred size ---

type fixedLayout struct {
	pref  image.Point
	calls int
}

func (l *fixedLayout) PreferredSize(ctx Context, w Widget) image.Point { return l.pref }
func (l *fixedLayout) PerformLayout(ctx Context, w Widget)             { l.calls++ }

func TestPreferredSizeDefaultsToZero(t *testing.T) {
	b := newBox("b")
	if got := b.PreferredSize(&recordingContext{}); got != (image.Point{}) {
		t.Errorf("PreferredSize = %v, want zero", got)
	}
}

func TestPreferredSizeDelegatesToLayout(t *testing.T) {
	b := newBox("b")
	b.SetLayout(&fixedLayout{pref: image.Pt(70, 30)})
	if got := b.PreferredSize(&recordingContext{}); got != image.Pt(70, 30) {
		t.Errorf("PreferredSize = %v, want (70,30)", got)
	}
}

// --- Draw ---

func TestDrawTranslatesByPosition(t *testing.T) {
	rec := &recorder{}
	ctx := &recordingContext{}
	root := newBox("root")
	root.SetPos(image.Pt(100, 50))
	a := newProbe("a", rec)
	place(a, 10, 10, 5, 5)
	root.AddChild(a)

	root.Draw(ctx)

	assertCalls(t, ctx.ops, "fill (110,60)-(115,65)")
	if ctx.offset != (image.Point{}) {
		t.Errorf("translation not restored: %v", ctx.offset)
	}
}

func TestDrawSkipsInvisibleChildren(t *testing.T) {
	rec := &recorder{}
	root := newBox("root")
	a := newProbe("a", rec)
	b := newProbe("b", rec)
	c := newProbe("c", rec)
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)
	b.SetVisible(false)

	root.Draw(&recordingContext{})

	assertCalls(t, rec.calls, "draw a", "draw c")
}

func TestDrawDepthFirstChildrenOrder(t *testing.T) {
	rec := &recorder{}
	root := newBox("root")
	a := newProbe("a", rec)
	a1 := newProbe("a1", rec)
	a2 := newProbe("a2", rec)
	b := newProbe("b", rec)
	root.AddChild(a)
	a.AddChild(a1)
	a.AddChild(a2)
	root.AddChild(b)

	root.Draw(&recordingContext{})

	assertCalls(t, rec.calls, "draw a", "draw a1", "draw a2", "draw b")
}
