// Package manifest loads document descriptions from TOML files.
//
// A manifest names the document and lists its pages, either by paper
// size name, explicit dimensions in points, or a backing image file:
//
//	title = "sample document"
//
//	[layout]
//	margin = 4
//	spacing = 8
//	orientation = "vertical"
//
//	[[page]]
//	size = "a4"
//	count = 3
//
//	[[page]]
//	width = 150
//	height = 150
//	rotation = 90
//
// Load builds a ready-to-update layout from a manifest file. Malformed
// manifests fail with INVALID_MANIFEST.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pageview/pkg/cache"
	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/geom"
	"github.com/matzehuels/pageview/pkg/layout"
	"github.com/matzehuels/pageview/pkg/page"
)

// Manifest is the TOML shape of a document description.
type Manifest struct {
	Title  string       `toml:"title"`
	Layout LayoutConfig `toml:"layout"`
	Pages  []PageConfig `toml:"page"`
}

// LayoutConfig holds the optional layout parameter overrides. Absent
// values keep the layout defaults.
type LayoutConfig struct {
	Margin      *int     `toml:"margin"`
	Spacing     *int     `toml:"spacing"`
	Zoom        *float64 `toml:"zoom"`
	DPI         *float64 `toml:"dpi"`
	Rotation    int      `toml:"rotation"`    // degrees, multiple of 90
	Orientation string   `toml:"orientation"` // "vertical" (default) or "horizontal"
}

// PageConfig describes one page entry. Exactly one of Size, Width+Height
// or Image must be given.
type PageConfig struct {
	Size     string    `toml:"size"`   // named paper size, e.g. "a4"
	Width    float64   `toml:"width"`  // points
	Height   float64   `toml:"height"` // points
	Image    string    `toml:"image"`  // path relative to the manifest
	DPI      float64   `toml:"dpi"`    // image source resolution
	Rotation int       `toml:"rotation"`
	Scale    []float64 `toml:"scale"` // [x, y]
	Count    int       `toml:"count"` // repetitions, default 1
}

// Document is a loaded manifest: the built layout plus identifying
// metadata.
type Document struct {
	Title string
	// Hash identifies the manifest contents, for cache keys.
	Hash   string
	Layout *layout.Layout
}

// Load reads a manifest file and builds its document. Image paths in
// the manifest resolve relative to the manifest's directory.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to read manifest %s", path)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse builds a document from manifest bytes. Image paths resolve
// relative to dir.
func Parse(data []byte, dir string) (*Document, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to parse manifest")
	}

	l, err := m.Build(dir)
	if err != nil {
		return nil, err
	}
	return &Document{
		Title:  m.Title,
		Hash:   cache.Hash(data),
		Layout: l,
	}, nil
}

// Build constructs a layout from the manifest. Image paths resolve
// relative to dir.
func (m *Manifest) Build(dir string) (*layout.Layout, error) {
	l, err := m.Layout.build()
	if err != nil {
		return nil, err
	}
	for i := range m.Pages {
		pages, err := m.Pages[i].build(dir)
		if err != nil {
			// Page errors carry their own codes; keep them intact.
			return nil, err
		}
		l.Extend(pages...)
	}
	return l, nil
}

func (c *LayoutConfig) build() (*layout.Layout, error) {
	orientation := layout.Vertical
	switch c.Orientation {
	case "", "vertical":
	case "horizontal":
		orientation = layout.Horizontal
	default:
		return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown orientation %q", c.Orientation)
	}
	if c.Rotation%90 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "layout rotation %d is not a multiple of 90", c.Rotation)
	}

	l := layout.NewWithStrategy(layout.NewLinear(orientation))
	if c.Margin != nil {
		l.SetMargin(*c.Margin)
	}
	if c.Spacing != nil {
		l.SetSpacing(*c.Spacing)
	}
	if c.Zoom != nil {
		l.SetZoomFactor(*c.Zoom)
	}
	if c.DPI != nil {
		l.SetDPI(geom.PointF{X: *c.DPI, Y: *c.DPI})
	}
	l.SetRotation(geom.RotationFromDegrees(c.Rotation))
	return l, nil
}

func (c *PageConfig) build(dir string) ([]page.Page, error) {
	base, err := c.basePage(dir)
	if err != nil {
		return nil, err
	}
	if c.Rotation%90 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "rotation %d is not a multiple of 90", c.Rotation)
	}
	rotation := geom.RotationFromDegrees(c.Rotation)
	scale := geom.PointF{X: 1.0, Y: 1.0}
	switch len(c.Scale) {
	case 0:
	case 2:
		if c.Scale[0] <= 0 || c.Scale[1] <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "scale values must be positive")
		}
		scale = geom.PointF{X: c.Scale[0], Y: c.Scale[1]}
	default:
		return nil, errors.New(errors.ErrCodeInvalidManifest, "scale must have exactly two values, got %d", len(c.Scale))
	}

	count := c.Count
	if count == 0 {
		count = 1
	}
	if count < 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "count must not be negative, got %d", count)
	}

	pages := make([]page.Page, 0, count)
	for range count {
		p := base()
		p.SetRotation(rotation)
		p.SetScale(scale)
		pages = append(pages, p)
	}
	return pages, nil
}

// configurablePage is the slice of the Page capability a manifest entry
// configures.
type configurablePage interface {
	page.Page
	SetRotation(geom.Rotation)
	SetScale(geom.PointF)
}

// basePage returns a factory so repeated entries get distinct page
// values.
func (c *PageConfig) basePage(dir string) (func() configurablePage, error) {
	switch {
	case c.Image != "":
		if c.Size != "" || c.Width != 0 || c.Height != 0 {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "image entries must not also give a size")
		}
		if err := errors.ValidatePath(c.Image); err != nil {
			return nil, err
		}
		p, err := page.LoadImagePage(filepath.Join(dir, c.Image), c.DPI)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to load image %s", c.Image)
		}
		// Repeated entries share the decoded image but not the page.
		img, dpi := p.Image(), p.DPI()
		return func() configurablePage { return page.NewImagePage(img, dpi) }, nil

	case c.Size != "":
		if c.Width != 0 || c.Height != 0 {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "give either a named size or explicit dimensions, not both")
		}
		size, ok := page.PaperSize(c.Size)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown paper size %q", c.Size)
		}
		return func() configurablePage { return page.NewPaperPage(size) }, nil

	case c.Width > 0 && c.Height > 0:
		w, h := c.Width, c.Height
		return func() configurablePage { return page.NewFixedPage(w, h) }, nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidManifest, "page entry needs a size, dimensions, or an image")
	}
}
