package layout

import (
	"github.com/matzehuels/pageview/pkg/geom"
)

// Strategy assigns page positions and aggregates the layout size. The
// engine invokes PositionPages after page sizes are known and ComputeSize
// afterwards; both see the layout through its public surface.
//
// Strategies are held by composition, not inheritance: a grid or
// facing-pages layout implements this interface and is installed with
// SetStrategy without sharing any engine state.
type Strategy interface {
	// PositionPages assigns every page's position. Implementations
	// should respect the layout's margin and spacing.
	PositionPages(l *Layout)

	// ComputeSize returns the layout's total size after positioning.
	// Most strategies return BoundingSize(l).
	ComputeSize(l *Layout) geom.Size
}

// Orientation is the stacking axis of the Linear strategy.
type Orientation int

const (
	// Vertical stacks pages top to bottom.
	Vertical Orientation = iota

	// Horizontal stacks pages left to right.
	Horizontal
)

// String returns "vertical" or "horizontal".
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Linear stacks pages along one axis and centers each page on the other.
type Linear struct {
	orientation Orientation
}

// NewLinear creates a linear stacking strategy with the given
// orientation.
func NewLinear(o Orientation) *Linear {
	return &Linear{orientation: o}
}

// Orientation returns the stacking axis.
func (s *Linear) Orientation() Orientation {
	return s.orientation
}

// SetOrientation sets the stacking axis. Call Update on the layout
// afterwards.
func (s *Linear) SetOrientation(o Orientation) {
	s.orientation = o
}

// PositionPages stacks the pages along the strategy's axis. The
// cross-axis extent is the largest page extent plus the margin on both
// sides; every page is centered within it using floor division. The
// main-axis cursor starts at the margin and advances by each page's
// extent plus the spacing.
//
// An empty collection assigns no positions.
func (s *Linear) PositionPages(l *Layout) {
	if s.orientation == Vertical {
		width := maxExtent(l, func(sz geom.Size) int { return sz.Width }) + l.Margin()*2
		top := l.Margin()
		for _, p := range l.pages {
			p.SetPos(geom.Point{X: (width - p.Size().Width) / 2, Y: top})
			top += p.Size().Height + l.Spacing()
		}
		return
	}
	height := maxExtent(l, func(sz geom.Size) int { return sz.Height }) + l.Margin()*2
	left := l.Margin()
	for _, p := range l.pages {
		p.SetPos(geom.Point{X: left, Y: (height - p.Size().Height) / 2})
		left += p.Size().Width + l.Spacing()
	}
}

// ComputeSize aggregates the default bounding box.
func (s *Linear) ComputeSize(l *Layout) geom.Size {
	return BoundingSize(l)
}

// maxExtent returns the largest page extent along one axis, 0 if the
// collection is empty.
func maxExtent(l *Layout, axis func(geom.Size) int) int {
	extent := 0
	for _, p := range l.pages {
		if e := axis(p.Size()); e > extent {
			extent = e
		}
	}
	return extent
}

// Ensure Linear implements Strategy.
var _ Strategy = (*Linear)(nil)
