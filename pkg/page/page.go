package page

import (
	"github.com/matzehuels/pageview/pkg/geom"
)

// DefaultDPI is the resolution natural page sizes are expressed in
// (points, 1/72 inch).
const DefaultDPI = 72.0

// Context is an immutable snapshot of the layout parameters a page needs
// to compute its rendered size. The layout builds one Context per update
// pass and hands it to every page.
type Context struct {
	Margin     int
	Spacing    int
	ZoomFactor float64
	Scale      geom.PointF
	DPI        geom.PointF
	Rotation   geom.Rotation
}

// DefaultContext returns a Context with neutral parameters: margin 4,
// spacing 8, zoom 1.0, square pixels at 72 DPI, no rotation.
func DefaultContext() Context {
	return Context{
		Margin:     4,
		Spacing:    8,
		ZoomFactor: 1.0,
		Scale:      geom.PointF{X: 1.0, Y: 1.0},
		DPI:        geom.PointF{X: DefaultDPI, Y: DefaultDPI},
	}
}

// DPIProvider is implemented by pages whose natural size is expressed
// at a known source resolution. Snapshots persist the value so a
// restored page sizes identically.
type DPIProvider interface {
	DPI() float64
}

// Page is the capability the layout engine positions and sizes.
//
// Implementations own their natural size, rotation and per-axis scale.
// The layout calls ComputeSize during an update pass, then SetPos during
// positioning; Rect combines the two for hit testing.
type Page interface {
	// PageSizeF returns the natural, untransformed size in points.
	PageSizeF() geom.SizeF

	// Rotation returns the page's own rotation, composed with the
	// layout rotation during size computation.
	Rotation() geom.Rotation

	// Scale returns the page's own per-axis scale factors.
	Scale() geom.PointF

	// ComputeSize computes and stores the rendered device size from the
	// given layout context.
	ComputeSize(ctx Context)

	// Size returns the rendered size from the last ComputeSize call.
	Size() geom.Size

	// Pos returns the position assigned by the layout.
	Pos() geom.Point

	// SetPos assigns the page's position in layout coordinates.
	SetPos(p geom.Point)

	// Rect returns the page's rectangle (position plus rendered size).
	Rect() geom.Rect

	// ZoomForWidth returns the zoom factor at which the page's rendered
	// width would equal width, given the other context parameters.
	ZoomForWidth(ctx Context, width int) float64

	// ZoomForHeight returns the zoom factor at which the page's rendered
	// height would equal height, given the other context parameters.
	ZoomForHeight(ctx Context, height int) float64
}
