package bramble

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	// Ebitengine does not expose platform scancodes.
	unknownScancode = -1

	keyRepeatDelay    = 30 // ticks before a held key starts repeating
	keyRepeatInterval = 3  // ticks between repeats
)

// mouseButtons maps ebiten buttons to bramble buttons in dispatch order.
var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	b  MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// inputFrame is the input observed during one tick, in screen coordinates.
type inputFrame struct {
	mods     KeyModifiers
	cursor   image.Point
	pressed  []MouseButton
	released []MouseButton
	wheelX   float64
	wheelY   float64
	keysDown []ebiten.Key
	keysRep  []ebiten.Key
	keysUp   []ebiten.Key
	chars    []rune
}

func (f *inputFrame) reset() {
	f.mods = 0
	f.pressed = f.pressed[:0]
	f.released = f.released[:0]
	f.wheelX, f.wheelY = 0, 0
	f.keysDown = f.keysDown[:0]
	f.keysRep = f.keysRep[:0]
	f.keysUp = f.keysUp[:0]
	f.chars = f.chars[:0]
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// pollPointer fills the pointer part of f from the live mouse state.
func pollPointer(f *inputFrame) {
	mx, my := ebiten.CursorPosition()
	f.cursor = image.Pt(mx, my)
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.eb) {
			f.pressed = append(f.pressed, mb.b)
		}
		if inpututil.IsMouseButtonJustReleased(mb.eb) {
			f.released = append(f.released, mb.b)
		}
	}
	f.wheelX, f.wheelY = ebiten.Wheel()
}

// pollKeyboard fills the keyboard part of f from the live key state.
func pollKeyboard(f *inputFrame) {
	f.keysDown = inpututil.AppendJustPressedKeys(f.keysDown)
	f.keysUp = inpututil.AppendJustReleasedKeys(f.keysUp)
	held := inpututil.AppendPressedKeys(nil)
	for _, k := range held {
		if keyRepeats(inpututil.KeyPressDuration(k)) {
			f.keysRep = append(f.keysRep, k)
		}
	}
	f.chars = ebiten.AppendInputChars(f.chars)
}

// keyRepeats reports whether a key held for d ticks repeats this tick.
func keyRepeats(d int) bool {
	if d <= keyRepeatDelay {
		return false
	}
	return (d-keyRepeatDelay)%keyRepeatInterval == 0
}

// dispatchInput feeds one frame of input to the screen: pointer motion
// first, then buttons, scrolling, keys, and text.
func dispatchInput(s *Screen, f *inputFrame) {
	if f.cursor != s.MousePos() {
		s.CursorPosEvent(f.cursor.X, f.cursor.Y)
	}
	for _, b := range f.pressed {
		s.MouseButtonEvent(b, ActionPress, f.mods)
	}
	for _, b := range f.released {
		s.MouseButtonEvent(b, ActionRelease, f.mods)
	}
	if f.wheelX != 0 || f.wheelY != 0 {
		s.ScrollEvent(f.wheelX, f.wheelY)
	}
	for _, k := range f.keysDown {
		s.KeyEvent(k, unknownScancode, ActionPress, f.mods)
	}
	for _, k := range f.keysRep {
		s.KeyEvent(k, unknownScancode, ActionRepeat, f.mods)
	}
	for _, k := range f.keysUp {
		s.KeyEvent(k, unknownScancode, ActionRelease, f.mods)
	}
	for _, r := range f.chars {
		s.CharEvent(r)
	}
}
