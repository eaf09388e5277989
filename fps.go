package bramble

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsCounter displays the current FPS and TPS. The text is refreshed
// roughly every half second into its own image.
type fpsCounter struct {
	img   *ebiten.Image
	ticks int
}

func newFPSCounter() *fpsCounter {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsCounter{img: ebiten.NewImage(100, 32)}
}

func (f *fpsCounter) update() {
	f.ticks++
	if f.ticks < ebiten.TPS()/2 {
		return
	}
	f.ticks = 0

	f.img.Clear()
	// Semi-transparent background for readability
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (f *fpsCounter) draw(dst *ebiten.Image) {
	dst.DrawImage(f.img, nil)
}
