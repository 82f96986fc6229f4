package render

import (
	"encoding/json"

	"github.com/matzehuels/pageview/pkg/layout"
)

// jsonOutput is the geometry dump consumed by client-side viewers.
type jsonOutput struct {
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Margin   int        `json:"margin"`
	Spacing  int        `json:"spacing"`
	Zoom     float64    `json:"zoom"`
	Rotation int        `json:"rotation"`
	Pages    []jsonPage `json:"pages"`
}

type jsonPage struct {
	Index         int     `json:"index"`
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	NaturalWidth  float64 `json:"natural_width"`  // points
	NaturalHeight float64 `json:"natural_height"` // points
	Rotation      int     `json:"rotation"`       // degrees
}

// RenderJSON renders the layout geometry as JSON. The layout must be
// updated.
func RenderJSON(l *layout.Layout) ([]byte, error) {
	out := jsonOutput{
		Width:    l.Width(),
		Height:   l.Height(),
		Margin:   l.Margin(),
		Spacing:  l.Spacing(),
		Zoom:     l.ZoomFactor(),
		Rotation: l.Rotation().Degrees(),
		Pages:    []jsonPage{},
	}
	i := 0
	for p := range l.All() {
		rect := p.Rect()
		natural := p.PageSizeF()
		out.Pages = append(out.Pages, jsonPage{
			Index:         i,
			X:             rect.X,
			Y:             rect.Y,
			Width:         rect.Width,
			Height:        rect.Height,
			NaturalWidth:  natural.Width,
			NaturalHeight: natural.Height,
			Rotation:      p.Rotation().Degrees(),
		})
		i++
	}
	return json.MarshalIndent(out, "", "  ")
}
