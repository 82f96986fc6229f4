package layout

import (
	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/geom"
	"github.com/matzehuels/pageview/pkg/observability"
)

// FitMode selects which viewport dimensions the Fit solver matches.
// It is a bitmask; FitBoth requests both axes.
type FitMode int

const (
	// FixedScale requests no fitting; Fit is a no-op.
	FixedScale FitMode = 0

	// FitWidth matches the layout width to the viewport width.
	FitWidth FitMode = 1

	// FitHeight matches the layout height to the viewport height.
	FitHeight FitMode = 2

	// FitBoth matches both axes; the smaller factor wins so the layout
	// never overflows either dimension (contain semantics).
	FitBoth FitMode = FitWidth | FitHeight
)

// String returns a human-readable form of the fit mode.
func (m FitMode) String() string {
	switch m {
	case FitWidth:
		return "width"
	case FitHeight:
		return "height"
	case FitBoth:
		return "both"
	default:
		return "fixed"
	}
}

// ParseFitMode maps the names used in manifests, the CLI and the API
// to a FitMode. Unknown names fail with INVALID_FIT_MODE.
func ParseFitMode(s string) (FitMode, error) {
	switch s {
	case "fixed":
		return FixedScale, nil
	case "width":
		return FitWidth, nil
	case "height":
		return FitHeight, nil
	case "both":
		return FitBoth, nil
	default:
		return FixedScale, errors.New(errors.ErrCodeInvalidFitMode, "unknown fit mode %q", s)
	}
}

// Fit computes the zoom factor that makes the layout fit the given
// viewport size under the given mode and applies it as the layout's new
// zoom factor. Callers must invoke Update afterwards to realize the new
// sizes and positions.
//
// With an empty collection or FixedScale mode, Fit is a no-op.
func (l *Layout) Fit(size geom.Size, mode FitMode) {
	if mode == FixedScale || len(l.pages) == 0 {
		return
	}
	zoom := 0.0
	if mode&FitWidth != 0 {
		zoom = l.ZoomFitWidth(size.Width)
	}
	if mode&FitHeight != 0 {
		if h := l.ZoomFitHeight(size.Height); mode&FitWidth == 0 || h < zoom {
			zoom = h
		}
	}
	l.SetZoomFactor(zoom)
	observability.Layout().OnFit(mode.String(), zoom)
}

// ZoomFitWidth returns the zoom factor this layout would need to fit in
// the given width. The widest page decides; the margin is subtracted
// from both sides.
func (l *Layout) ZoomFitWidth(width int) float64 {
	return l.WidestPage().ZoomForWidth(l.Context(), width-l.margin*2)
}

// ZoomFitHeight returns the zoom factor this layout would need to fit in
// the given height. The highest page decides; the margin is subtracted
// from both sides.
func (l *Layout) ZoomFitHeight(height int) float64 {
	return l.HighestPage().ZoomForHeight(l.Context(), height-l.margin*2)
}
