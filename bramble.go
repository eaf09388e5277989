package bramble

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// DefaultBackground is the mid-gray a new Screen clears to.
var DefaultBackground = Color{0.3, 0.3, 0.3, 1}

// RGBA8 converts c to a premultiplied color.RGBA for the rendering backend.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // fires when a pointer button is pressed
	EventPointerUp                     // fires when a pointer button is released
	EventPointerMove                   // fires when the pointer moves without a drag
	EventDragStart                     // fires when a press starts a drag on a widget
	EventDrag                          // fires for each move routed to the drag target
	EventDragEnd                       // fires when the pointer is released after dragging
	EventPointerEnter                  // fires when the pointer enters a widget's bounds
	EventPointerLeave                  // fires when the pointer leaves a widget's bounds
	EventScroll                        // fires on wheel/trackpad scroll
	EventKey                           // fires on key press, repeat and release
	EventChar                          // fires for each input character
	EventFocus                         // fires when a widget gains focus
	EventBlur                          // fires when a widget loses focus
)

var eventTypeNames = [...]string{
	"pointer-down", "pointer-up", "pointer-move", "drag-start", "drag", "drag-end",
	"pointer-enter", "pointer-leave", "scroll", "key", "char", "focus", "blur",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// MouseButtons is a bitmask of currently pressed mouse buttons, one bit per
// MouseButton value.
type MouseButtons uint8

// Has reports whether b is pressed.
func (m MouseButtons) Has(b MouseButton) bool {
	return m&(1<<b) != 0
}

func (m MouseButtons) with(b MouseButton) MouseButtons    { return m | 1<<b }
func (m MouseButtons) without(b MouseButton) MouseButtons { return m &^ (1 << b) }

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Action is the transition reported for a button or key.
type Action uint8

const (
	ActionRelease Action = iota
	ActionPress
	ActionRepeat
)
