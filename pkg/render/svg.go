package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/pageview/pkg/layout"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	pageFill   string
	pageStroke string
	labels     bool
	grid       int
	scale      float64
}

// WithBackground sets the canvas color behind the pages.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithPageFill sets the page fill color.
func WithPageFill(color string) SVGOption {
	return func(r *svgRenderer) { r.pageFill = color }
}

// WithLabels draws the page number centered on each page.
func WithLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = true }
}

// WithGrid overlays grid lines every step layout pixels, as an
// alignment aid when inspecting positions. A step of 0 or less
// disables the grid.
func WithGrid(step int) SVGOption {
	return func(r *svgRenderer) { r.grid = step }
}

// WithScale multiplies the output pixel size. The view box stays in
// layout coordinates, so element positions are unaffected.
func WithScale(factor float64) SVGOption {
	return func(r *svgRenderer) { r.scale = factor }
}

// RenderSVG renders the layout geometry as an SVG document. The layout
// must be updated.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{
		background: "#e8e8e8",
		pageFill:   "#ffffff",
		pageStroke: "#444444",
		scale:      1.0,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1.0
	}

	outW := int(float64(l.Width()) * r.scale)
	outH := int(float64(l.Height()) * r.scale)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width(), l.Height(), outW, outH)
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="%s"/>`+"\n",
		l.Width(), l.Height(), r.background)
	if r.grid > 0 {
		writeGrid(&buf, r.grid, l.Width(), l.Height())
	}

	i := 0
	for p := range l.All() {
		rect := p.Rect()
		fmt.Fprintf(&buf, `  <rect class="page" id="page-%d" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s"/>`+"\n",
			i, rect.X, rect.Y, rect.Width, rect.Height, r.pageFill, r.pageStroke)
		if r.labels {
			fmt.Fprintf(&buf, `  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="%d" fill="#888888">%d</text>`+"\n",
				rect.X+rect.Width/2, rect.Y+rect.Height/2, labelSize(rect.Height), i+1)
		}
		i++
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// writeGrid emits grid lines behind the pages.
func writeGrid(buf *bytes.Buffer, step, width, height int) {
	for x := step; x < width; x += step {
		fmt.Fprintf(buf, `  <line class="grid" x1="%d" y1="0" x2="%d" y2="%d" stroke="#d0d0d0" stroke-width="0.5"/>`+"\n",
			x, x, height)
	}
	for y := step; y < height; y += step {
		fmt.Fprintf(buf, `  <line class="grid" x1="0" y1="%d" x2="%d" y2="%d" stroke="#d0d0d0" stroke-width="0.5"/>`+"\n",
			y, width, y)
	}
}

// labelSize picks a font size proportional to the page, capped so labels
// stay unobtrusive on large pages.
func labelSize(pageHeight int) int {
	size := pageHeight / 4
	if size > 24 {
		size = 24
	}
	if size < 6 {
		size = 6
	}
	return size
}
