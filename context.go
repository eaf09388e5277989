package bramble

import (
	"image"
	"time"
)

// ContextFlags select rendering context capabilities at creation time.
type ContextFlags uint8

const (
	// FlagAntialias enables antialiased geometry.
	FlagAntialias ContextFlags = 1 << iota
	// FlagStencilStrokes renders strokes through the stencil buffer so
	// overlapping segments of one stroke do not double-blend.
	FlagStencilStrokes
)

// Context is the vector rendering backend a Screen owns and lends to
// widgets for the duration of a draw traversal. Widgets must not retain it
// past the call they received it in.
//
// Drawing calls are only valid between BeginFrame and EndFrame.
// Coordinates are logical pixels relative to the current translation.
type Context interface {
	BeginFrame(width, height int, pixelRatio float64)
	EndFrame()

	Save()
	Restore()
	Translate(x, y int)

	FillRect(r image.Rectangle, c Color)
	StrokeRect(r image.Rectangle, width float64, c Color)
	Text(x, y int, s string, size float64, c Color)
	TextBounds(s string, size float64) image.Point

	// Close releases backend resources. The context is unusable afterwards.
	Close() error
}

// ContextFactory creates a rendering context bound to surface.
type ContextFactory func(surface Surface, flags ContextFlags) (Context, error)

// Surface is the native window a Screen renders into.
type Surface interface {
	Size() (width, height int)
	SetTitle(title string)
}

// pixelRatioSurface is implemented by surfaces that can report their
// device scale factor.
type pixelRatioSurface interface {
	PixelRatio() float64
}

// Clock is a monotonic millisecond tick source.
type Clock interface {
	Ticks() uint32
}

// SystemClock counts milliseconds since it was created.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock starting at zero now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Ticks returns the milliseconds elapsed since the clock was created.
func (c *SystemClock) Ticks() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}
