package bramble

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// EbitenSurface is a Surface backed by the Ebitengine window. The image
// to draw into is handed over by the game loop each frame with SetTarget.
type EbitenSurface struct {
	width, height int
	title         string
	target        *ebiten.Image
}

// NewEbitenSurface creates a surface with the given initial logical size.
func NewEbitenSurface(width, height int) *EbitenSurface {
	return &EbitenSurface{width: width, height: height}
}

// Size returns the logical size of the surface.
func (s *EbitenSurface) Size() (int, int) {
	return s.width, s.height
}

// SetTitle sets the window title.
func (s *EbitenSurface) SetTitle(title string) {
	s.title = title
	ebiten.SetWindowTitle(title)
}

// Title returns the last title set.
func (s *EbitenSurface) Title() string {
	return s.title
}

// PixelRatio returns the device scale factor of the current monitor.
func (s *EbitenSurface) PixelRatio() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// SetTarget sets the image drawing goes to. Pass nil once the frame is
// done so the image is not retained.
func (s *EbitenSurface) SetTarget(img *ebiten.Image) {
	s.target = img
}

// Target returns the current draw target, or nil outside a frame.
func (s *EbitenSurface) Target() *ebiten.Image {
	return s.target
}

func (s *EbitenSurface) setSize(width, height int) {
	s.width, s.height = width, height
}

// --- Context ---

type ebitenContext struct {
	surface *EbitenSurface
	flags   ContextFlags

	fontSource *text.GoTextFaceSource
	faces      map[float64]*text.GoTextFace

	// whiteImage is a 3x3 white image; whiteSubImage is its center pixel,
	// used as the source for solid-color triangles.
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
	vertices      []ebiten.Vertex
	indices       []uint16

	inFrame    bool
	frameSize  image.Point
	pixelRatio float64
	offset     image.Point
	saved      []image.Point
	closed     bool
}

// NewEbitenContext creates a rendering context drawing into an
// *EbitenSurface with the Go Regular font. It is the default
// ContextFactory.
func NewEbitenContext(surface Surface, flags ContextFlags) (Context, error) {
	src, err := LoadTTFFace(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return newEbitenContext(surface, flags, src)
}

// EbitenContextFactory returns a ContextFactory whose contexts render text
// with the given font source instead of Go Regular.
func EbitenContextFactory(font *text.GoTextFaceSource) ContextFactory {
	return func(surface Surface, flags ContextFlags) (Context, error) {
		if font == nil {
			return NewEbitenContext(surface, flags)
		}
		return newEbitenContext(surface, flags, font)
	}
}

func newEbitenContext(surface Surface, flags ContextFlags, font *text.GoTextFaceSource) (Context, error) {
	es, ok := surface.(*EbitenSurface)
	if !ok {
		return nil, fmt.Errorf("bramble: ebiten context needs *EbitenSurface, got %T", surface)
	}
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &ebitenContext{
		surface:       es,
		flags:         flags,
		fontSource:    font,
		faces:         make(map[float64]*text.GoTextFace),
		whiteImage:    white,
		whiteSubImage: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}, nil
}

// LoadTTFFace parses TrueType or OpenType data into a font source for
// EbitenContextFactory.
func LoadTTFFace(ttfData []byte) (*text.GoTextFaceSource, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("bramble: parse TTF data: %w", err)
	}
	return source, nil
}

func (c *ebitenContext) BeginFrame(width, height int, pixelRatio float64) {
	if c.inFrame {
		panic("bramble: BeginFrame called inside an open frame")
	}
	c.inFrame = true
	c.frameSize = image.Pt(width, height)
	c.pixelRatio = pixelRatio
	c.offset = image.Point{}
	c.saved = c.saved[:0]
}

func (c *ebitenContext) EndFrame() {
	if !c.inFrame {
		panic("bramble: EndFrame called without an open frame")
	}
	c.inFrame = false
}

func (c *ebitenContext) Save() {
	c.saved = append(c.saved, c.offset)
}

func (c *ebitenContext) Restore() {
	if len(c.saved) == 0 {
		return
	}
	c.offset = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
}

func (c *ebitenContext) Translate(x, y int) {
	c.offset = c.offset.Add(image.Pt(x, y))
}

// dst returns the current draw target, or nil when drawing is not
// allowed.
func (c *ebitenContext) dst() *ebiten.Image {
	if !c.inFrame || c.closed {
		return nil
	}
	return c.surface.target
}

func (c *ebitenContext) antialias() bool {
	return c.flags&FlagAntialias != 0
}

func (c *ebitenContext) FillRect(r image.Rectangle, col Color) {
	dst := c.dst()
	if dst == nil || r.Empty() {
		return
	}
	r = r.Add(c.offset)
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y),
		float32(r.Dx()), float32(r.Dy()), col.RGBA8(), c.antialias())
}

func (c *ebitenContext) StrokeRect(r image.Rectangle, width float64, col Color) {
	dst := c.dst()
	if dst == nil || r.Empty() || width <= 0 {
		return
	}
	r = r.Add(c.offset)
	if c.flags&FlagStencilStrokes == 0 {
		vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y),
			float32(r.Dx()), float32(r.Dy()), float32(width), col.RGBA8(), c.antialias())
		return
	}

	var path vector.Path
	path.MoveTo(float32(r.Min.X), float32(r.Min.Y))
	path.LineTo(float32(r.Max.X), float32(r.Min.Y))
	path.LineTo(float32(r.Max.X), float32(r.Max.Y))
	path.LineTo(float32(r.Min.X), float32(r.Max.Y))
	path.Close()

	op := &vector.StrokeOptions{Width: float32(width), LineJoin: vector.LineJoinMiter}
	c.vertices, c.indices = path.AppendVerticesAndIndicesForStroke(c.vertices[:0], c.indices[:0], op)
	for i := range c.vertices {
		v := &c.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(col.R)
		v.ColorG = float32(col.G)
		v.ColorB = float32(col.B)
		v.ColorA = float32(col.A)
	}
	// Non-zero fill through the stencil buffer keeps overlapping stroke
	// segments from blending twice.
	dst.DrawTriangles(c.vertices, c.indices, c.whiteSubImage, &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.FillRuleNonZero,
		AntiAlias: c.antialias(),
	})
}

func (c *ebitenContext) face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = DefaultFontSize
	}
	f, ok := c.faces[size]
	if !ok {
		f = &text.GoTextFace{Source: c.fontSource, Size: size}
		c.faces[size] = f
	}
	return f
}

func (c *ebitenContext) Text(x, y int, s string, size float64, col Color) {
	dst := c.dst()
	if dst == nil || s == "" {
		return
	}
	p := image.Pt(x, y).Add(c.offset)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.X), float64(p.Y))
	op.ColorScale.ScaleWithColor(col.RGBA8())
	text.Draw(dst, s, c.face(size), op)
}

func (c *ebitenContext) TextBounds(s string, size float64) image.Point {
	if s == "" {
		return image.Point{}
	}
	f := c.face(size)
	m := f.Metrics()
	w, h := text.Measure(s, f, m.HAscent+m.HDescent+m.HLineGap)
	return image.Pt(int(math.Ceil(w)), int(math.Ceil(h)))
}

func (c *ebitenContext) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.whiteImage.Deallocate()
	c.faces = nil
	return nil
}
