package page

import (
	"math"

	"github.com/matzehuels/pageview/pkg/geom"
)

// FixedPage is a page with a known natural size and no content of its
// own. It implements the full Page capability and is the embeddable base
// for pages that do carry content.
type FixedPage struct {
	natural  geom.SizeF
	rotation geom.Rotation
	scale    geom.PointF
	dpi      float64

	pos  geom.Point
	size geom.Size
}

// NewFixedPage creates a page with the given natural size in points.
// The page starts unrotated, unscaled, at the default 72 DPI resolution.
func NewFixedPage(width, height float64) *FixedPage {
	return &FixedPage{
		natural: geom.SizeF{Width: width, Height: height},
		scale:   geom.PointF{X: 1.0, Y: 1.0},
		dpi:     DefaultDPI,
	}
}

// NewPaperPage creates a page with a named paper size.
func NewPaperPage(size geom.SizeF) *FixedPage {
	return NewFixedPage(size.Width, size.Height)
}

// PageSizeF returns the natural size in points.
func (p *FixedPage) PageSizeF() geom.SizeF {
	return p.natural
}

// SetPageSizeF sets the natural size in points.
func (p *FixedPage) SetPageSizeF(s geom.SizeF) {
	p.natural = s
}

// Rotation returns the page's own rotation.
func (p *FixedPage) Rotation() geom.Rotation {
	return p.rotation
}

// SetRotation sets the page's own rotation.
func (p *FixedPage) SetRotation(r geom.Rotation) {
	p.rotation = r
}

// Scale returns the page's own per-axis scale.
func (p *FixedPage) Scale() geom.PointF {
	return p.scale
}

// SetScale sets the page's own per-axis scale.
// Values are not validated; non-positive scales are caller responsibility.
func (p *FixedPage) SetScale(s geom.PointF) {
	p.scale = s
}

// DPI returns the resolution the natural size is expressed in.
func (p *FixedPage) DPI() float64 {
	return p.dpi
}

// SetDPI sets the source resolution. Image-backed pages use this to map
// pixel dimensions to points.
func (p *FixedPage) SetDPI(dpi float64) {
	p.dpi = dpi
}

// Pos returns the position assigned by the layout.
func (p *FixedPage) Pos() geom.Point {
	return p.pos
}

// SetPos assigns the page's position in layout coordinates.
func (p *FixedPage) SetPos(pos geom.Point) {
	p.pos = pos
}

// Size returns the rendered size from the last ComputeSize call.
func (p *FixedPage) Size() geom.Size {
	return p.size
}

// Width returns the rendered width.
func (p *FixedPage) Width() int {
	return p.size.Width
}

// Height returns the rendered height.
func (p *FixedPage) Height() int {
	return p.size.Height
}

// Rect returns the page's rectangle in layout coordinates.
func (p *FixedPage) Rect() geom.Rect {
	return geom.Rect{X: p.pos.X, Y: p.pos.Y, Width: p.size.Width, Height: p.size.Height}
}

// ComputeSize computes the rendered device size for the given context.
//
// The natural size is first scaled by the page's own per-axis scale.
// If the composed page+layout rotation is an odd quarter turn the axes
// swap. The result is then mapped from the page's source resolution to
// the layout DPI and multiplied by the zoom factor and the layout's
// per-axis scale, rounding to whole pixels.
func (p *FixedPage) ComputeSize(ctx Context) {
	w := p.natural.Width * p.scale.X
	h := p.natural.Height * p.scale.Y
	if p.rotation.Plus(ctx.Rotation).Transposed() {
		w, h = h, w
	}
	w *= ctx.DPI.X / p.dpi * ctx.ZoomFactor * ctx.Scale.X
	h *= ctx.DPI.Y / p.dpi * ctx.ZoomFactor * ctx.Scale.Y
	p.size = geom.Size{
		Width:  int(math.Round(w)),
		Height: int(math.Round(h)),
	}
}

// ZoomForWidth returns the zoom factor at which the rendered width equals
// width. It is the exact inverse of ComputeSize along the X axis.
func (p *FixedPage) ZoomForWidth(ctx Context, width int) float64 {
	w := p.natural.Width * p.scale.X
	if p.rotation.Plus(ctx.Rotation).Transposed() {
		w = p.natural.Height * p.scale.Y
	}
	return float64(width) * p.dpi / (ctx.DPI.X * ctx.Scale.X * w)
}

// ZoomForHeight returns the zoom factor at which the rendered height
// equals height. It is the exact inverse of ComputeSize along the Y axis.
func (p *FixedPage) ZoomForHeight(ctx Context, height int) float64 {
	h := p.natural.Height * p.scale.Y
	if p.rotation.Plus(ctx.Rotation).Transposed() {
		h = p.natural.Width * p.scale.X
	}
	return float64(height) * p.dpi / (ctx.DPI.Y * ctx.Scale.Y * h)
}

// Ensure FixedPage implements Page.
var (
	_ Page        = (*FixedPage)(nil)
	_ DPIProvider = (*FixedPage)(nil)
)
