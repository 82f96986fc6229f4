package render

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"time"

	"github.com/matzehuels/pageview/pkg/cache"
	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/layout"
	"github.com/matzehuels/pageview/pkg/observability"
	"github.com/matzehuels/pageview/pkg/page"
)

// Output formats accepted by [Renderer.Render].
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Renderer renders layouts through a cache. The cache key covers the
// document hash and every layout parameter that influences the output,
// so a stale hit is impossible as long as the hash identifies the page
// set.
type Renderer struct {
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// NewRenderer creates a caching renderer. A nil cache disables caching,
// a nil keyer uses the default key scheme.
func NewRenderer(c cache.Cache, k cache.Keyer, ttl time.Duration) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	return &Renderer{cache: c, keyer: k, ttl: ttl}
}

// Render renders the layout in the given format, serving from the cache
// when possible. docHash identifies the page set, typically the manifest
// hash. Unknown formats fail with INVALID_FORMAT.
func (r *Renderer) Render(ctx context.Context, docHash string, l *layout.Layout, format string) ([]byte, error) {
	if format != FormatSVG && format != FormatPNG && format != FormatJSON {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown render format %q", format)
	}

	key := r.keyer.LayoutKey(docHash, layoutKeyOpts(l, format))
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "layout")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	data, err := r.render(ctx, docHash, l, format)
	if err != nil {
		return nil, err
	}
	r.store(ctx, "layout", key, data)
	return data, nil
}

// RenderPage renders one page's bitmap at its current device size,
// serving from the cache. Page bitmaps are the expensive unit of work;
// the whole-layout PNG is composed from them, and they are also served
// directly for viewers that fetch pages on demand.
func (r *Renderer) RenderPage(ctx context.Context, docID string, l *layout.Layout, index int) ([]byte, error) {
	p, err := l.At(index)
	if err != nil {
		return nil, err
	}

	key := r.keyer.PageKey(docID, index, cache.PageKeyOpts{
		Width:    p.Size().Width,
		Height:   p.Size().Height,
		Rotation: p.Rotation().Plus(l.Rotation()).Degrees(),
		Format:   FormatPNG,
	})
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "page")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "page")

	data, err := RenderPagePNG(p)
	if err != nil {
		return nil, err
	}
	r.store(ctx, "page", key, data)
	return data, nil
}

// store writes an artifact back to the cache. Backends mark transient
// failures retryable, so the write gets a few attempts; a render is
// still served even when the write ultimately fails.
func (r *Renderer) store(ctx context.Context, keyType, key string, data []byte) {
	err := cache.RetryWithBackoff(ctx, func() error {
		return r.cache.Set(ctx, key, data, r.ttl)
	})
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType, len(data))
	}
}

func (r *Renderer) render(ctx context.Context, docHash string, l *layout.Layout, format string) ([]byte, error) {
	switch format {
	case FormatPNG:
		return RenderPNG(l, WithPageBitmaps(r.pageBitmap(ctx, docHash, l)))
	case FormatJSON:
		return RenderJSON(l)
	default:
		return RenderSVG(l), nil
	}
}

// pageBitmap fetches image-backed page bitmaps through the page cache.
// Blank pages are cheap to draw directly and skip it.
func (r *Renderer) pageBitmap(ctx context.Context, docHash string, l *layout.Layout) PageBitmapFunc {
	return func(index int, p page.Page) (image.Image, error) {
		if _, ok := p.(*page.ImagePage); !ok {
			return nil, nil
		}
		data, err := r.RenderPage(ctx, docHash, l, index)
		if err != nil {
			return nil, err
		}
		return png.Decode(bytes.NewReader(data))
	}
}

func layoutKeyOpts(l *layout.Layout, format string) cache.LayoutKeyOpts {
	opts := cache.LayoutKeyOpts{
		Margin:   l.Margin(),
		Spacing:  l.Spacing(),
		Zoom:     l.ZoomFactor(),
		Rotation: l.Rotation().Degrees(),
		Format:   format,
	}
	if lin, ok := l.Strategy().(*layout.Linear); ok {
		opts.Orientation = lin.Orientation().String()
	}
	return opts
}
