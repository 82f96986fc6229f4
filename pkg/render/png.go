package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/matzehuels/pageview/pkg/layout"
	"github.com/matzehuels/pageview/pkg/page"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

// PageBitmapFunc supplies a page's bitmap at its rendered size. A nil
// image means the page draws as a bordered blank.
type PageBitmapFunc func(index int, p page.Page) (image.Image, error)

type pngRenderer struct {
	background color.Color
	pageFill   color.Color
	pageBorder color.Color
	bitmaps    PageBitmapFunc
}

// WithPNGBackground sets the canvas color behind the pages.
func WithPNGBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// WithPageBitmaps sets the source of page bitmaps, letting a caller
// substitute cached bitmaps for direct rendering.
func WithPageBitmaps(fn PageBitmapFunc) PNGOption {
	return func(r *pngRenderer) { r.bitmaps = fn }
}

// RenderPNG renders the layout as a PNG bitmap. Pages backed by images
// draw their content; other pages draw as bordered blanks. The layout
// must be updated.
func RenderPNG(l *layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{
		background: color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff},
		pageFill:   color.White,
		pageBorder: color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff},
		bitmaps:    directBitmap,
	}
	for _, opt := range opts {
		opt(&r)
	}

	dst := image.NewRGBA(image.Rect(0, 0, l.Width(), l.Height()))
	fill(dst, dst.Bounds(), r.background)

	i := 0
	for p := range l.All() {
		rect := p.Rect()
		bounds := image.Rect(rect.X, rect.Y, rect.Right(), rect.Bottom())
		fill(dst, bounds, r.pageBorder)
		fill(dst, bounds.Inset(1), r.pageFill)

		if !rect.IsEmpty() {
			img, err := r.bitmaps(i, p)
			if err != nil {
				return nil, err
			}
			if img != nil {
				draw.Draw(dst, bounds, img, img.Bounds().Min, draw.Over)
			}
		}
		i++
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPagePNG renders a single page's bitmap at its rendered size.
// The page must be sized by a layout update first.
func RenderPagePNG(p page.Page) ([]byte, error) {
	size := p.Size()
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	fill(dst, dst.Bounds(), color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff})
	fill(dst, dst.Bounds().Inset(1), color.White)

	if ip, ok := p.(*page.ImagePage); ok && !size.IsEmpty() {
		draw.Draw(dst, dst.Bounds(), ip.Render(), image.Point{}, draw.Over)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// directBitmap renders page content in place, without a cache.
func directBitmap(_ int, p page.Page) (image.Image, error) {
	if ip, ok := p.(*page.ImagePage); ok {
		return ip.Render(), nil
	}
	return nil, nil
}

func fill(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}
