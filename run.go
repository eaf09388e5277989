package bramble

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNotEbitenSurface is returned when a Screen not backed by an
// *EbitenSurface is run with the Ebitengine host loop.
var ErrNotEbitenSurface = errors.New("bramble: screen surface is not an *EbitenSurface")

// RunConfig holds window settings for Run.
type RunConfig struct {
	// Width and Height set the initial window size. Zero keeps the size
	// of the screen's surface.
	Width, Height int
	// Resizable lets the user resize the window.
	Resizable bool
	// ShowFPS draws an FPS and TPS counter in the top-left corner.
	ShowFPS bool
	// TPS sets ticks per second. Zero keeps the Ebitengine default.
	TPS int
}

// Game adapts a Screen to ebiten.Game. Update polls input and dispatches
// it to the screen, Draw clears to the screen background and draws the
// widgets, and Layout reports resizes.
type Game struct {
	screen  *Screen
	surface *EbitenSurface
	layout  image.Point

	frame       inputFrame
	injectQueue []syntheticPointerEvent
	injectDown  bool
	runner      *TestRunner
	screenshots []string

	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots".
	ScreenshotDir string

	fps *fpsCounter
}

// NewGame wraps screen for the Ebitengine loop. The screen must have been
// created with an *EbitenSurface.
func NewGame(screen *Screen) (*Game, error) {
	es, ok := screen.Surface().(*EbitenSurface)
	if !ok {
		return nil, ErrNotEbitenSurface
	}
	return &Game{screen: screen, surface: es, ScreenshotDir: defaultScreenshotDir}, nil
}

// Screen returns the wrapped screen.
func (g *Game) Screen() *Screen {
	return g.screen
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.runner != nil {
		g.runner.step(g)
	}
	g.frame.reset()
	g.frame.mods = readModifiers()
	if !g.processInjectedInput(&g.frame) {
		pollPointer(&g.frame)
	}
	pollKeyboard(&g.frame)
	dispatchInput(g.screen, &g.frame)
	if g.fps != nil {
		g.fps.update()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(dst *ebiten.Image) {
	dst.Fill(g.screen.Background().RGBA8())
	g.surface.SetTarget(dst)
	g.screen.DrawWidgets()
	g.surface.SetTarget(nil)
	g.flushScreenshots(dst)
	if g.fps != nil {
		g.fps.draw(dst)
	}
}

// Layout implements ebiten.Game. The screen follows the window's logical
// size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := image.Pt(outsideWidth, outsideHeight)
	if size != g.layout {
		g.layout = size
		g.surface.setSize(outsideWidth, outsideHeight)
		g.screen.ResizeEvent(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs screen until the window is closed. The
// screen is closed when the loop ends.
func Run(screen *Screen, cfg RunConfig) error {
	g, err := NewGame(screen)
	if err != nil {
		return err
	}
	w, h := g.surface.Size()
	if cfg.Width > 0 && cfg.Height > 0 {
		w, h = cfg.Width, cfg.Height
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(screen.Caption())
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.ShowFPS {
		g.fps = newFPSCounter()
	}

	runErr := ebiten.RunGame(g)
	if err := screen.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return fmt.Errorf("bramble: run: %w", runErr)
	}
	return nil
}
