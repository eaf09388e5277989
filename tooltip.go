package bramble

import (
	"image"

	"github.com/tanema/gween/ease"
)

const (
	tooltipFadeMs    = 250
	tooltipMaxAlpha  = 0.8
	tooltipMaxWidth  = 150
	tooltipOffsetGap = 10
)

// tooltipTarget returns the widget whose tooltip should show now, and how
// long past the delay the pointer has been idle.
func (s *Screen) tooltipTarget() (Widget, uint32, bool) {
	elapsed := s.clock.Ticks() - s.lastInteraction
	if elapsed < s.tooltipDelay {
		return nil, 0, false
	}
	w := s.FindWidget(s.mousePos)
	if w == nil || w == Widget(s) || w.Tooltip() == "" || !w.VisibleRecursive() {
		return nil, 0, false
	}
	return w, elapsed - s.tooltipDelay, true
}

// tooltipAlpha eases the tooltip in over tooltipFadeMs.
func tooltipAlpha(sinceShown uint32) float64 {
	t := float32(min(sinceShown, tooltipFadeMs))
	return float64(ease.OutQuad(t, 0, tooltipMaxAlpha, tooltipFadeMs))
}

// drawTooltip draws the hovered widget's tooltip centered below it. Called
// inside the frame after the tree has been drawn, with no translation.
func (s *Screen) drawTooltip(ctx Context) {
	w, since, ok := s.tooltipTarget()
	if !ok {
		return
	}
	theme := w.ResolvedTheme()
	if theme == nil {
		theme = DefaultTheme()
	}
	alpha := tooltipAlpha(since)
	size := float64(theme.TooltipFontSize)
	text := w.Tooltip()

	tb := ctx.TextBounds(text, size)
	tb.X = min(tb.X, tooltipMaxWidth)

	abs := w.AbsolutePosition()
	origin := image.Pt(abs.X+w.Width()/2-tb.X/2, abs.Y+w.Height()+tooltipOffsetGap)
	pad := theme.TooltipPadding
	box := image.Rectangle{
		Min: origin.Sub(image.Pt(pad, pad)),
		Max: origin.Add(tb).Add(image.Pt(pad, pad)),
	}

	ctx.FillRect(box, theme.TooltipFillColor.WithAlpha(alpha))
	ctx.Text(origin.X, origin.Y, text, size, theme.TooltipTextColor.WithAlpha(alpha))
}
