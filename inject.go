package bramble

import "image"

// syntheticPointerEvent represents a single injected pointer event in
// screen coordinates.
type syntheticPointerEvent struct {
	pos     image.Point
	pressed bool
	button  MouseButton
	text    string
}

// InjectPress queues a left button press at the given screen coordinates.
// The event replaces real pointer input on the next Update.
func (g *Game) InjectPress(x, y int) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{
		pos:     image.Pt(x, y),
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move with the left button held down. Use
// this between InjectPress and InjectRelease to simulate a drag.
func (g *Game) InjectMove(x, y int) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{
		pos:     image.Pt(x, y),
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a left button release at the given screen coordinates.
func (g *Game) InjectRelease(x, y int) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{
		pos:    image.Pt(x, y),
		button: MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (g *Game) InjectClick(x, y int) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at from, linearly
// interpolated moves over frames-2 intermediate frames, and release at to.
// Minimum frames is 2 (press + release).
func (g *Game) InjectDrag(from, to image.Point, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(from.X, from.Y)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := from.X + int(float64(to.X-from.X)*t)
		y := from.Y + int(float64(to.Y-from.Y)*t)
		g.InjectMove(x, y)
	}
	g.InjectRelease(to.X, to.Y)
}

// InjectText queues text input delivered to the focused widget. The pointer
// stays where it is. Consumes one frame.
func (g *Game) InjectText(s string) {
	evt := syntheticPointerEvent{
		pos:     g.screen.MousePos(),
		pressed: g.injectDown,
		button:  MouseButtonLeft,
		text:    s,
	}
	if n := len(g.injectQueue); n > 0 {
		evt.pos = g.injectQueue[n-1].pos
		evt.pressed = g.injectQueue[n-1].pressed
	}
	g.injectQueue = append(g.injectQueue, evt)
}

// processInjectedInput pops one event from the inject queue into f.
// Returns true if an event was consumed; real pointer input is skipped
// for that frame.
func (g *Game) processInjectedInput(f *inputFrame) bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	f.cursor = evt.pos
	switch {
	case evt.pressed && !g.injectDown:
		f.pressed = append(f.pressed, evt.button)
	case !evt.pressed && g.injectDown:
		f.released = append(f.released, evt.button)
	}
	g.injectDown = evt.pressed
	for _, r := range evt.text {
		f.chars = append(f.chars, r)
	}
	return true
}
