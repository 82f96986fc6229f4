// Package store persists layout snapshots.
//
// A snapshot freezes a document's layout: the parameter set, the page
// list with their natural sizes, and the device geometry from the last
// update. Snapshots restore to a working layout, so a viewer can save
// its exact state and return to it later.
//
// Two backends are provided: FileStore keeps snapshots as JSON files in
// a directory, MongoStore keeps them in a MongoDB collection.
package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/geom"
	"github.com/matzehuels/pageview/pkg/layout"
	"github.com/matzehuels/pageview/pkg/page"
)

// PageState is the persisted form of one page.
type PageState struct {
	NaturalWidth  float64 `json:"natural_width" bson:"natural_width"`   // points
	NaturalHeight float64 `json:"natural_height" bson:"natural_height"` // points
	DPI           float64 `json:"dpi" bson:"dpi"`
	Rotation      int     `json:"rotation" bson:"rotation"` // degrees
	ScaleX        float64 `json:"scale_x" bson:"scale_x"`
	ScaleY        float64 `json:"scale_y" bson:"scale_y"`

	// Device geometry from the last update.
	X      int `json:"x" bson:"x"`
	Y      int `json:"y" bson:"y"`
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
}

// Snapshot is a frozen layout state.
type Snapshot struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	Margin      int     `json:"margin" bson:"margin"`
	Spacing     int     `json:"spacing" bson:"spacing"`
	Zoom        float64 `json:"zoom" bson:"zoom"`
	ScaleX      float64 `json:"scale_x" bson:"scale_x"`
	ScaleY      float64 `json:"scale_y" bson:"scale_y"`
	DPIX        float64 `json:"dpi_x" bson:"dpi_x"`
	DPIY        float64 `json:"dpi_y" bson:"dpi_y"`
	Rotation    int     `json:"rotation" bson:"rotation"` // degrees
	Orientation string  `json:"orientation" bson:"orientation"`

	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`

	Pages []PageState `json:"pages" bson:"pages"`
}

// Capture freezes the current state of a layout under a fresh ID.
func Capture(title string, l *layout.Layout) *Snapshot {
	s := &Snapshot{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),

		Margin:      l.Margin(),
		Spacing:     l.Spacing(),
		Zoom:        l.ZoomFactor(),
		ScaleX:      l.Scale().X,
		ScaleY:      l.Scale().Y,
		DPIX:        l.DPI().X,
		DPIY:        l.DPI().Y,
		Rotation:    l.Rotation().Degrees(),
		Orientation: captureOrientation(l),

		Width:  l.Width(),
		Height: l.Height(),
	}
	for p := range l.All() {
		natural := p.PageSizeF()
		state := PageState{
			NaturalWidth:  natural.Width,
			NaturalHeight: natural.Height,
			DPI:           page.DefaultDPI,
			Rotation:      p.Rotation().Degrees(),
			ScaleX:        p.Scale().X,
			ScaleY:        p.Scale().Y,
			X:             p.Pos().X,
			Y:             p.Pos().Y,
			Width:         p.Size().Width,
			Height:        p.Size().Height,
		}
		if fp, ok := p.(page.DPIProvider); ok {
			state.DPI = fp.DPI()
		}
		s.Pages = append(s.Pages, state)
	}
	return s
}

func captureOrientation(l *layout.Layout) string {
	if lin, ok := l.Strategy().(*layout.Linear); ok {
		return lin.Orientation().String()
	}
	return layout.Vertical.String()
}

// Restore rebuilds a working layout from the snapshot and updates it.
// Invalid snapshot contents fail with INVALID_SNAPSHOT.
func (s *Snapshot) Restore() (*layout.Layout, error) {
	orientation := layout.Vertical
	switch s.Orientation {
	case "", "vertical":
	case "horizontal":
		orientation = layout.Horizontal
	default:
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "unknown orientation %q", s.Orientation)
	}
	if s.Rotation%90 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "rotation %d is not a multiple of 90", s.Rotation)
	}

	l := layout.NewWithStrategy(layout.NewLinear(orientation))
	l.SetMargin(s.Margin)
	l.SetSpacing(s.Spacing)
	l.SetZoomFactor(s.Zoom)
	l.SetScale(geom.PointF{X: s.ScaleX, Y: s.ScaleY})
	l.SetDPI(geom.PointF{X: s.DPIX, Y: s.DPIY})
	l.SetRotation(geom.RotationFromDegrees(s.Rotation))

	for i, ps := range s.Pages {
		if ps.NaturalWidth <= 0 || ps.NaturalHeight <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot, "page %d has a non-positive natural size", i)
		}
		if ps.Rotation%90 != 0 {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot, "page %d rotation %d is not a multiple of 90", i, ps.Rotation)
		}
		p := page.NewFixedPage(ps.NaturalWidth, ps.NaturalHeight)
		if ps.DPI > 0 {
			p.SetDPI(ps.DPI)
		}
		p.SetRotation(geom.RotationFromDegrees(ps.Rotation))
		p.SetScale(geom.PointF{X: ps.ScaleX, Y: ps.ScaleY})
		l.Append(p)
	}
	l.Update()
	return l, nil
}

// Marshal encodes the snapshot as indented JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal decodes a snapshot from JSON.
// Malformed data fails with INVALID_SNAPSHOT.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "failed to decode snapshot")
	}
	if s.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "snapshot has no id")
	}
	return &s, nil
}
