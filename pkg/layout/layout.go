package layout

import (
	"time"

	"github.com/matzehuels/pageview/pkg/geom"
	"github.com/matzehuels/pageview/pkg/observability"
	"github.com/matzehuels/pageview/pkg/page"
)

// Default parameter values for a freshly constructed Layout.
const (
	DefaultMargin  = 4
	DefaultSpacing = 8
)

// Layout manages pages with a list-like API and positions them.
type Layout struct {
	pages []page.Page

	size  geom.Size
	sized bool // size has been computed at least once

	margin     int
	spacing    int
	zoomFactor float64
	scale      geom.PointF
	dpi        geom.PointF
	rotation   geom.Rotation

	strategy Strategy
}

// New creates an empty layout with default parameters and a vertical
// Linear strategy.
func New() *Layout {
	return NewWithStrategy(NewLinear(Vertical))
}

// NewWithStrategy creates an empty layout using the given position
// strategy. A nil strategy selects the base behavior: a left-aligned
// vertical stack with bounding-box size aggregation.
func NewWithStrategy(s Strategy) *Layout {
	return &Layout{
		margin:     DefaultMargin,
		spacing:    DefaultSpacing,
		zoomFactor: 1.0,
		scale:      geom.PointF{X: 1.0, Y: 1.0},
		dpi:        geom.PointF{X: page.DefaultDPI, Y: page.DefaultDPI},
		strategy:   s,
	}
}

// Strategy returns the installed position strategy, or nil when the base
// behavior is in effect.
func (l *Layout) Strategy() Strategy {
	return l.strategy
}

// SetStrategy installs a position strategy. Call Update afterwards.
func (l *Layout) SetStrategy(s Strategy) {
	l.strategy = s
}

// Size returns the bounding size computed by the last Update.
func (l *Layout) Size() geom.Size {
	return l.size
}

// Width returns the layout's computed width.
func (l *Layout) Width() int {
	return l.size.Width
}

// Height returns the layout's computed height.
func (l *Layout) Height() int {
	return l.size.Height
}

// Margin returns the border around the whole page set in pixels.
func (l *Layout) Margin() int {
	return l.margin
}

// SetMargin sets the border around the whole page set in pixels.
func (l *Layout) SetMargin(margin int) {
	l.margin = margin
}

// Spacing returns the gap between consecutive pages in pixels.
func (l *Layout) Spacing() int {
	return l.spacing
}

// SetSpacing sets the gap between consecutive pages in pixels.
func (l *Layout) SetSpacing(spacing int) {
	l.spacing = spacing
}

// ZoomFactor returns the zoom factor (1.0 by default).
func (l *Layout) ZoomFactor() float64 {
	return l.zoomFactor
}

// SetZoomFactor sets the zoom factor to enlarge or shrink the pages.
func (l *Layout) SetZoomFactor(zoom float64) {
	l.zoomFactor = zoom
}

// Scale returns the layout's per-axis scale.
func (l *Layout) Scale() geom.PointF {
	return l.scale
}

// SetScale sets the layout's per-axis scale. Normally left at (1.0, 1.0);
// use it to support displays with non-square pixels.
func (l *Layout) SetScale(scale geom.PointF) {
	l.scale = scale
}

// DPI returns the layout's per-axis resolution.
func (l *Layout) DPI() geom.PointF {
	return l.dpi
}

// SetDPI sets the layout's per-axis resolution.
func (l *Layout) SetDPI(dpi geom.PointF) {
	l.dpi = dpi
}

// Rotation returns the rotation applied to the whole layout.
func (l *Layout) Rotation() geom.Rotation {
	return l.rotation
}

// SetRotation sets the rotation applied to the whole layout. It composes
// with each page's own rotation during size computation.
func (l *Layout) SetRotation(r geom.Rotation) {
	l.rotation = r
}

// Context returns an immutable snapshot of the layout parameters, passed
// to every page during size computation.
func (l *Layout) Context() page.Context {
	return page.Context{
		Margin:     l.margin,
		Spacing:    l.spacing,
		ZoomFactor: l.zoomFactor,
		Scale:      l.scale,
		DPI:        l.dpi,
		Rotation:   l.rotation,
	}
}

// Update recomputes the size of all pages, updates their positions, and
// sets the layout's own size. Call it after adding or removing pages or
// after changing scale, DPI, zoom factor, spacing or margin.
//
// It returns true if the total size has changed.
func (l *Layout) Update() bool {
	start := time.Now()
	observability.Layout().OnUpdateStart(len(l.pages))

	l.UpdatePageSizes()
	l.UpdatePagePositions()
	changed := l.ComputeSize()

	observability.Layout().OnUpdateComplete(l.size.Width, l.size.Height, changed, time.Since(start))
	return changed
}

// UpdatePageSizes computes the rendered size of every page from the
// current layout parameters.
func (l *Layout) UpdatePageSizes() {
	ctx := l.Context()
	for _, p := range l.pages {
		p.ComputeSize(ctx)
	}
}

// UpdatePagePositions assigns every page's position. With a strategy
// installed the strategy decides; the base behavior stacks pages
// vertically, left-aligned at the margin.
func (l *Layout) UpdatePagePositions() {
	if l.strategy != nil {
		l.strategy.PositionPages(l)
		return
	}
	top := l.margin
	for _, p := range l.pages {
		p.SetPos(geom.Point{X: l.margin, Y: top})
		top += p.Size().Height + l.spacing
	}
}

// ComputeSize computes and stores the total size of the layout and
// returns true if it differs from the previously stored size. The first
// computation always reports a change, since the size moves from unset
// to set.
func (l *Layout) ComputeSize() bool {
	size := BoundingSize(l)
	if l.strategy != nil {
		size = l.strategy.ComputeSize(l)
	}
	changed := !l.sized || size != l.size
	l.size = size
	l.sized = true
	return changed
}

// BoundingSize computes the union bounding rectangle of all page rects,
// expanded by the layout margin on every side. It is the default size
// aggregation; strategies are free to call it. An empty collection
// yields a degenerate size of twice the margin per axis.
func BoundingSize(l *Layout) geom.Size {
	var r geom.Rect
	for _, p := range l.pages {
		r = r.Union(p.Rect())
	}
	m := l.margin
	return r.Adjusted(-m, -m, m, m).Size()
}
