package layout

import (
	"iter"

	"github.com/matzehuels/pageview/pkg/geom"
	"github.com/matzehuels/pageview/pkg/page"
)

// WidestPage returns the widest page, or nil for an empty layout.
//
// Width is judged in the layout's frame: a page whose composed
// page+layout rotation is an odd quarter turn contributes its natural
// height instead. The page's own per-axis scale is applied; the layout's
// zoom and scale are not, since they are uniform across pages. Among
// equally wide pages the first one wins.
func (l *Layout) WidestPage() page.Page {
	return l.maxPage(func(p page.Page) float64 {
		s := p.PageSizeF()
		if p.Rotation().Plus(l.rotation).Transposed() {
			return s.Height * p.Scale().Y
		}
		return s.Width * p.Scale().X
	})
}

// HighestPage returns the highest page, or nil for an empty layout.
// The same rotation and scale rules as WidestPage apply, on the other
// axis.
func (l *Layout) HighestPage() page.Page {
	return l.maxPage(func(p page.Page) float64 {
		s := p.PageSizeF()
		if p.Rotation().Plus(l.rotation).Transposed() {
			return s.Width * p.Scale().X
		}
		return s.Height * p.Scale().Y
	})
}

// maxPage returns the first page maximizing key, or nil if there are no
// pages.
func (l *Layout) maxPage(key func(page.Page) float64) page.Page {
	var best page.Page
	var bestKey float64
	for _, p := range l.pages {
		k := key(p)
		if best == nil || k > bestKey {
			best, bestKey = p, k
		}
	}
	return best
}

// PageAt returns the first page whose rect contains the given point in
// layout coordinates, or nil. The scan is O(n); specialized layouts may
// shadow this with a spatial index without changing the contract.
func (l *Layout) PageAt(pt geom.Point) page.Page {
	for _, p := range l.pages {
		if p.Rect().Contains(pt) {
			return p
		}
	}
	return nil
}

// PagesAt returns an iterator over the pages whose rects intersect the
// given rect, in collection order. Each call derives a fresh sequence
// from the current collection state.
func (l *Layout) PagesAt(r geom.Rect) iter.Seq[page.Page] {
	return func(yield func(page.Page) bool) {
		for _, p := range l.pages {
			if p.Rect().Intersects(r) && !yield(p) {
				return
			}
		}
	}
}
