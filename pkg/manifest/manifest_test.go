package manifest

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/geom"
	"github.com/matzehuels/pageview/pkg/layout"
)

const sampleManifest = `
title = "sample document"

[layout]
margin = 4
spacing = 8

[[page]]
width = 100
height = 200

[[page]]
width = 150
height = 150

[[page]]
width = 100
height = 100
`

func TestParseSampleManifest(t *testing.T) {
	doc, err := Parse([]byte(sampleManifest), ".")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Title != "sample document" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.Hash == "" {
		t.Error("Hash should be set")
	}

	l := doc.Layout
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	l.Update()
	if got, want := l.Size(), (geom.Size{Width: 158, Height: 474}); got != want {
		t.Errorf("Size() = %v, want %v", got, want)
	}
}

func TestParseLayoutConfig(t *testing.T) {
	doc, err := Parse([]byte(`
[layout]
margin = 10
spacing = 2
zoom = 1.5
dpi = 96.0
rotation = 90
orientation = "horizontal"
`), ".")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	l := doc.Layout
	if l.Margin() != 10 || l.Spacing() != 2 {
		t.Errorf("margin/spacing = %d/%d, want 10/2", l.Margin(), l.Spacing())
	}
	if l.ZoomFactor() != 1.5 {
		t.Errorf("ZoomFactor() = %v, want 1.5", l.ZoomFactor())
	}
	if got, want := l.DPI(), (geom.PointF{X: 96, Y: 96}); got != want {
		t.Errorf("DPI() = %v, want %v", got, want)
	}
	if l.Rotation() != geom.Rotate90 {
		t.Errorf("Rotation() = %v, want Rotate90", l.Rotation())
	}
	lin, ok := l.Strategy().(*layout.Linear)
	if !ok || lin.Orientation() != layout.Horizontal {
		t.Error("Strategy should be horizontal Linear")
	}
}

func TestParseDefaultsPreserved(t *testing.T) {
	doc, err := Parse([]byte(`[[page]]`+"\n"+`size = "a4"`), ".")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	l := doc.Layout
	if l.Margin() != layout.DefaultMargin || l.Spacing() != layout.DefaultSpacing {
		t.Error("absent layout overrides should keep the defaults")
	}
	if l.ZoomFactor() != 1.0 {
		t.Errorf("ZoomFactor() = %v, want 1.0", l.ZoomFactor())
	}
}

func TestParsePageRepetitionAndAttributes(t *testing.T) {
	doc, err := Parse([]byte(`
[[page]]
size = "a4"
count = 3
rotation = 90
scale = [2.0, 1.0]
`), ".")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	l := doc.Layout
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	for p := range l.All() {
		if p.Rotation() != geom.Rotate90 {
			t.Errorf("page rotation = %v, want Rotate90", p.Rotation())
		}
		if got, want := p.Scale(), (geom.PointF{X: 2, Y: 1}); got != want {
			t.Errorf("page scale = %v, want %v", got, want)
		}
	}

	// Repeated entries must be distinct values.
	a, _ := l.At(0)
	b, _ := l.At(1)
	if a == b {
		t.Error("repeated pages should be distinct page values")
	}
}

func TestParseImagePage(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 144, 72))
	f, err := os.Create(filepath.Join(dir, "scan.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	doc, err := Parse([]byte(`
[[page]]
image = "scan.png"
dpi = 144.0
`), dir)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, _ := doc.Layout.At(0)
	// 144x72 pixels at 144 dpi cover 72x36 points at the default 72 dpi.
	doc.Layout.Update()
	if got, want := p.Size(), (geom.Size{Width: 72, Height: 36}); got != want {
		t.Errorf("image page size = %v, want %v", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		code errors.Code
	}{
		{"malformed toml", `title = `, errors.ErrCodeInvalidManifest},
		{"unknown orientation", "[layout]\norientation = \"diagonal\"", errors.ErrCodeInvalidManifest},
		{"bad layout rotation", "[layout]\nrotation = 45", errors.ErrCodeInvalidManifest},
		{"unknown paper size", "[[page]]\nsize = \"a9\"", errors.ErrCodeInvalidManifest},
		{"size and dimensions", "[[page]]\nsize = \"a4\"\nwidth = 100.0\nheight = 100.0", errors.ErrCodeInvalidManifest},
		{"no size at all", "[[page]]\nrotation = 90", errors.ErrCodeInvalidManifest},
		{"bad page rotation", "[[page]]\nsize = \"a4\"\nrotation = 30", errors.ErrCodeInvalidManifest},
		{"short scale", "[[page]]\nsize = \"a4\"\nscale = [1.0]", errors.ErrCodeInvalidManifest},
		{"negative scale", "[[page]]\nsize = \"a4\"\nscale = [-1.0, 1.0]", errors.ErrCodeInvalidManifest},
		{"negative count", "[[page]]\nsize = \"a4\"\ncount = -2", errors.ErrCodeInvalidManifest},
		{"absolute image path", "[[page]]\nimage = \"/etc/passwd\"", errors.ErrCodeInvalidPath},
		{"traversing image path", "[[page]]\nimage = \"../secret.png\"", errors.ErrCodeInvalidPath},
		{"missing image", "[[page]]\nimage = \"nope.png\"", errors.ErrCodeInvalidManifest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml), t.TempDir())
			if errors.GetCode(err) != tt.code {
				t.Errorf("Parse error code = %v (%v), want %v", errors.GetCode(err), err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.toml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Layout.Len() != 3 {
		t.Errorf("Len() = %d, want 3", doc.Layout.Len())
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("Load of missing file: code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestHashIdentifiesContents(t *testing.T) {
	a, err := Parse([]byte(sampleManifest), ".")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse([]byte(sampleManifest), ".")
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash != b.Hash {
		t.Error("identical manifests should hash identically")
	}

	c, err := Parse([]byte(sampleManifest+"\n[[page]]\nsize = \"a4\"\n"), ".")
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash == c.Hash {
		t.Error("different manifests should hash differently")
	}
}
