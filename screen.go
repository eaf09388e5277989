package bramble

import (
	"errors"
	"fmt"
	"image"
	"time"
)

var (
	ErrNilSurface = errors.New("bramble: nil surface")
	ErrNilContext = errors.New("bramble: context factory returned nil context")
)

const defaultTooltipDelay = 500 * time.Millisecond

// ScreenConfig holds optional Screen construction settings. Zero values
// select the defaults.
type ScreenConfig struct {
	// NewContext creates the rendering context. Defaults to
	// NewEbitenContext.
	NewContext ContextFactory
	// Clock supplies interaction timestamps. Defaults to a SystemClock.
	Clock Clock
	// Theme is set on the screen and inherited by every widget without
	// its own. Defaults to DefaultTheme().
	Theme *Theme
	// TooltipDelay is the idle time before a tooltip shows. Defaults to
	// 500ms.
	TooltipDelay time.Duration
}

// Screen is the root widget. It owns the rendering context, drives frames,
// and tracks pointer and keyboard interaction state. A Screen is never a
// child of another widget.
type Screen struct {
	*WidgetNode

	ctx     Context
	surface Surface
	clock   Clock
	caption string

	framebufferSize image.Point
	pixelRatio      float64
	background      Color

	// Interaction state
	mouseState      MouseButtons
	modifiers       KeyModifiers
	mousePos        image.Point
	dragActive      bool
	dragWidget      Widget
	lastInteraction uint32
	processEvents   bool
	focusPath       []Widget // focused widget first, screen last

	tooltipDelay uint32 // milliseconds
	sink         EventSink
	debug        bool
	closed       bool
}

// NewScreen creates a screen for surface with the default configuration.
func NewScreen(id, caption string, surface Surface) (*Screen, error) {
	return NewScreenWithConfig(id, caption, surface, ScreenConfig{})
}

// NewScreenWithConfig creates a screen for surface. The surface title is
// set to caption and its current size is adopted as the screen size. The
// screen fails to construct when no rendering context can be created.
func NewScreenWithConfig(id, caption string, surface Surface, cfg ScreenConfig) (*Screen, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}
	if cfg.NewContext == nil {
		cfg.NewContext = NewEbitenContext
	}
	if cfg.Clock == nil {
		cfg.Clock = NewSystemClock()
	}
	if cfg.Theme == nil {
		cfg.Theme = DefaultTheme()
	}
	if cfg.TooltipDelay <= 0 {
		cfg.TooltipDelay = defaultTooltipDelay
	}

	surface.SetTitle(caption)
	w, h := surface.Size()

	ctx, err := cfg.NewContext(surface, FlagAntialias|FlagStencilStrokes)
	if err != nil {
		return nil, fmt.Errorf("bramble: create render context: %w", err)
	}
	if ctx == nil {
		return nil, ErrNilContext
	}

	s := &Screen{
		ctx:             ctx,
		surface:         surface,
		clock:           cfg.Clock,
		caption:         caption,
		framebufferSize: image.Pt(w, h),
		background:      DefaultBackground,
		lastInteraction: cfg.Clock.Ticks(),
		processEvents:   true,
		tooltipDelay:    uint32(cfg.TooltipDelay.Milliseconds()),
	}
	s.WidgetNode = NewWidgetNode(s, id)
	s.root = true
	s.SetTheme(cfg.Theme)
	s.SetSize(image.Pt(w, h))
	return s, nil
}

// DrawWidgets draws the whole tree inside one frame of the rendering
// context. Nothing is drawn while the screen is hidden. The frame is
// closed even if a widget's Draw panics.
func (s *Screen) DrawWidgets() {
	if !s.Visible() || s.closed {
		return
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.ctx.BeginFrame(s.Width(), s.Height(), 1.0)
	func() {
		defer s.ctx.EndFrame()
		s.Draw(s.ctx)
		s.drawTooltip(s.ctx)
	}()

	if s.debug {
		stats.drawTime = time.Since(t0)
		stats.widgetCount, stats.maxDepth = countWidgets(s)
		s.debugLog(stats)
	}
}

// PerformLayout lays out the whole tree against the screen's context.
func (s *Screen) PerformLayout() {
	PerformLayout(s.ctx, s)
}

// SetBackground sets the color the host clears the surface to before
// drawing widgets.
func (s *Screen) SetBackground(c Color) {
	s.background = c
}

// Background returns the clear color.
func (s *Screen) Background() Color {
	return s.background
}

// RenderContext returns the rendering context owned by the screen, for
// widgets that need to measure outside a draw traversal.
func (s *Screen) RenderContext() Context {
	return s.ctx
}

// Surface returns the window surface the screen renders into.
func (s *Screen) Surface() Surface {
	return s.surface
}

// Caption returns the window caption.
func (s *Screen) Caption() string {
	return s.caption
}

// SetCaption changes the window caption and the surface title.
func (s *Screen) SetCaption(caption string) {
	s.caption = caption
	s.surface.SetTitle(caption)
}

// FramebufferSize returns the last known framebuffer size.
func (s *Screen) FramebufferSize() image.Point {
	return s.framebufferSize
}

// PixelRatio returns the device scale factor, or 0 before the surface
// has reported one.
func (s *Screen) PixelRatio() float64 {
	return s.pixelRatio
}

// MousePos returns the last pointer position in screen coordinates.
func (s *Screen) MousePos() image.Point {
	return s.mousePos
}

// MouseState returns the currently pressed mouse buttons.
func (s *Screen) MouseState() MouseButtons {
	return s.mouseState
}

// Modifiers returns the modifier keys held at the last event.
func (s *Screen) Modifiers() KeyModifiers {
	return s.modifiers
}

// DragActive reports whether a drag is in progress.
func (s *Screen) DragActive() bool {
	return s.dragActive
}

// DragWidget returns the widget receiving the current drag, or nil.
func (s *Screen) DragWidget() Widget {
	if !s.dragActive {
		return nil
	}
	return s.dragWidget
}

// LastInteraction returns the clock tick of the last accepted input event.
func (s *Screen) LastInteraction() uint32 {
	return s.lastInteraction
}

// ProcessEvents reports whether input events are handled.
func (s *Screen) ProcessEvents() bool {
	return s.processEvents
}

// SetProcessEvents suspends or resumes input handling. Interaction state
// is kept while suspended.
func (s *Screen) SetProcessEvents(enabled bool) {
	s.processEvents = enabled
}

// FocusPath returns the focused widgets from the innermost to the screen.
func (s *Screen) FocusPath() []Widget {
	out := make([]Widget, len(s.focusPath))
	copy(out, s.focusPath)
	return out
}

// SetTooltipDelay sets the idle time before a tooltip is shown.
func (s *Screen) SetTooltipDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.tooltipDelay = uint32(d.Milliseconds())
}

// SetEventSink sets the optional receiver of interaction events.
func (s *Screen) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, tree edits
// on disposed widgets panic, tree depth and child count warnings are
// printed, and per-frame stats are logged to stderr.
func (s *Screen) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// Close disposes the widget tree and releases the rendering context.
// Calling Close again is a no-op.
func (s *Screen) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.dragActive = false
	s.dragWidget = nil
	s.focusPath = nil
	s.Dispose()
	if err := s.ctx.Close(); err != nil {
		return fmt.Errorf("bramble: close render context: %w", err)
	}
	return nil
}

// globalDebug mirrors the most recently set Screen debug flag so that
// tree operations (which lack a Screen pointer) can check it cheaply.
// Only valid with a single Screen.
var globalDebug bool
