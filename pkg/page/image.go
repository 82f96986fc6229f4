package page

import (
	"image"
	_ "image/png" // register PNG decoding for LoadImagePage
	"os"

	"golang.org/x/image/draw"

	"github.com/matzehuels/pageview/pkg/geom"
)

// ImagePage is a page backed by a raster image. Its natural size is
// derived from the pixel dimensions at the image's source resolution,
// so a 300 DPI scan and a 72 DPI screenshot of the same physical page
// lay out identically.
type ImagePage struct {
	FixedPage
	img image.Image
}

// NewImagePage creates a page for the given image, interpreting its
// pixel dimensions at dpi. A dpi of 0 uses the default 72.
func NewImagePage(img image.Image, dpi float64) *ImagePage {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	b := img.Bounds()
	p := &ImagePage{img: img}
	p.natural = geom.SizeF{Width: float64(b.Dx()), Height: float64(b.Dy())}
	p.scale = geom.PointF{X: 1.0, Y: 1.0}
	p.dpi = dpi
	return p
}

// LoadImagePage reads and decodes an image file into an ImagePage.
func LoadImagePage(path string, dpi float64) (*ImagePage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return NewImagePage(img, dpi), nil
}

// Image returns the backing image.
func (p *ImagePage) Image() image.Image {
	return p.img
}

// Render produces the page bitmap at the rendered size from the last
// ComputeSize call. The source image is scaled with approximate bilinear
// interpolation; rotation of the bitmap itself is left to the caller's
// presentation layer.
func (p *ImagePage) Render() image.Image {
	size := p.Size()
	if size.IsEmpty() {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), p.img, p.img.Bounds(), draw.Src, nil)
	return dst
}

// Ensure ImagePage implements Page.
var _ Page = (*ImagePage)(nil)
