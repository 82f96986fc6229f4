package render

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pageview/pkg/cache"
	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/layout"
	"github.com/matzehuels/pageview/pkg/page"
)

func sampleLayout() *layout.Layout {
	l := layout.New()
	l.Extend(
		page.NewFixedPage(100, 200),
		page.NewFixedPage(150, 150),
		page.NewFixedPage(100, 100),
	)
	l.Update()
	return l
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sampleLayout()))

	if !strings.Contains(svg, `viewBox="0 0 158 474"`) {
		t.Errorf("SVG should size to the layout:\n%s", svg)
	}
	for _, want := range []string{
		`id="page-0" x="29" y="4" width="100" height="200"`,
		`id="page-1" x="4" y="212" width="150" height="150"`,
		`id="page-2" x="29" y="370" width="100" height="100"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "<text") {
		t.Error("labels should be off by default")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(sampleLayout(), WithLabels(), WithBackground("#000000"), WithPageFill("#fafafa")))
	if !strings.Contains(svg, `fill="#000000"`) || !strings.Contains(svg, `fill="#fafafa"`) {
		t.Error("color options should be applied")
	}
	for _, label := range []string{">1</text>", ">2</text>", ">3</text>"} {
		if !strings.Contains(svg, label) {
			t.Errorf("SVG missing page label %q", label)
		}
	}
}

func TestRenderSVGGrid(t *testing.T) {
	svg := string(RenderSVG(sampleLayout(), WithGrid(100)))
	if !strings.Contains(svg, `class="grid" x1="100" y1="0" x2="100" y2="474"`) {
		t.Errorf("SVG missing vertical grid line:\n%s", svg)
	}
	if !strings.Contains(svg, `class="grid" x1="0" y1="400" x2="158" y2="400"`) {
		t.Errorf("SVG missing horizontal grid line:\n%s", svg)
	}
	if strings.Contains(string(RenderSVG(sampleLayout())), `class="grid"`) {
		t.Error("grid should be off by default")
	}
}

func TestRenderSVGScale(t *testing.T) {
	svg := string(RenderSVG(sampleLayout(), WithScale(2.0)))
	if !strings.Contains(svg, `viewBox="0 0 158 474" width="316" height="948"`) {
		t.Errorf("scale should only affect the output pixel size:\n%s", svg)
	}
	// Element coordinates stay in layout space.
	if !strings.Contains(svg, `id="page-1" x="4" y="212"`) {
		t.Error("page coordinates should be unscaled")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(sampleLayout())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got, want := img.Bounds().Max, (image.Point{X: 158, Y: 474}); got != want {
		t.Errorf("PNG size = %v, want %v", got, want)
	}
}

func TestRenderPNGImagePage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 50))
	l := layout.New()
	l.Append(page.NewImagePage(src, 0))
	l.Update()

	data, err := RenderPNG(l)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleLayout())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Width  int `json:"width"`
		Height int `json:"height"`
		Margin int `json:"margin"`
		Pages  []struct {
			Index         int     `json:"index"`
			X             int     `json:"x"`
			Y             int     `json:"y"`
			NaturalHeight float64 `json:"natural_height"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Width != 158 || out.Height != 474 || out.Margin != 4 {
		t.Errorf("geometry = %+v", out)
	}
	if len(out.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(out.Pages))
	}
	if out.Pages[1].X != 4 || out.Pages[1].Y != 212 {
		t.Errorf("page 1 = %+v", out.Pages[1])
	}
	if out.Pages[0].NaturalHeight != 200 {
		t.Errorf("page 0 natural height = %v, want 200", out.Pages[0].NaturalHeight)
	}
}

func TestRendererCaching(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	r := NewRenderer(mem, nil, time.Hour)
	l := sampleLayout()

	first, err := r.Render(ctx, "doc1", l, FormatSVG)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if mem.Len() != 1 {
		t.Errorf("cache holds %d entries after first render, want 1", mem.Len())
	}

	second, err := r.Render(ctx, "doc1", l, FormatSVG)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached render should match the original")
	}
	if mem.Len() != 1 {
		t.Errorf("cache holds %d entries after hit, want 1", mem.Len())
	}

	// A parameter change misses and stores a new entry.
	l.SetSpacing(16)
	l.Update()
	if _, err := r.Render(ctx, "doc1", l, FormatSVG); err != nil {
		t.Fatal(err)
	}
	if mem.Len() != 2 {
		t.Errorf("cache holds %d entries after parameter change, want 2", mem.Len())
	}

	// So does a different format or document.
	if _, err := r.Render(ctx, "doc1", l, FormatJSON); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render(ctx, "doc2", l, FormatJSON); err != nil {
		t.Fatal(err)
	}
	if mem.Len() != 4 {
		t.Errorf("cache holds %d entries, want 4", mem.Len())
	}
}

func TestRendererPageCaching(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	r := NewRenderer(mem, nil, time.Hour)

	src := image.NewRGBA(image.Rect(0, 0, 50, 50))
	l := layout.New()
	l.Append(page.NewImagePage(src, 0))
	l.Update()

	first, err := r.RenderPage(ctx, "doc1", l, 0)
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if mem.Len() != 1 {
		t.Errorf("cache holds %d entries after first page render, want 1", mem.Len())
	}
	second, err := r.RenderPage(ctx, "doc1", l, 0)
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached page bitmap should match the original")
	}
	if mem.Len() != 1 {
		t.Errorf("cache holds %d entries after hit, want 1", mem.Len())
	}

	// The whole-layout PNG composes from the cached page bitmap and
	// adds only its own entry.
	if _, err := r.Render(ctx, "doc1", l, FormatPNG); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if mem.Len() != 2 {
		t.Errorf("cache holds %d entries after layout render, want 2", mem.Len())
	}

	if _, err := r.RenderPage(ctx, "doc1", l, 5); errors.GetCode(err) != errors.ErrCodeOutOfRange {
		t.Errorf("RenderPage out of range: %v", err)
	}
}

// flakyCache fails the first Set attempts with a retryable error.
type flakyCache struct {
	cache.Cache
	failures int
	sets     int
}

func (c *flakyCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	if c.failures > 0 {
		c.failures--
		return cache.Retryable(cache.ErrNetwork)
	}
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestRendererRetriesCacheWrites(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	flaky := &flakyCache{Cache: mem, failures: 1}
	r := NewRenderer(flaky, nil, time.Hour)
	l := sampleLayout()

	data, err := r.Render(ctx, "doc1", l, FormatSVG)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Render returned no data")
	}
	if flaky.sets != 2 {
		t.Errorf("Set attempts = %d, want 2 (one failure, one retry)", flaky.sets)
	}
	if mem.Len() != 1 {
		t.Errorf("cache holds %d entries after retried write, want 1", mem.Len())
	}
}

func TestRendererUnknownFormat(t *testing.T) {
	r := NewRenderer(nil, nil, 0)
	_, err := r.Render(context.Background(), "doc1", sampleLayout(), "gif")
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("Render error = %v, want INVALID_FORMAT", err)
	}
}
