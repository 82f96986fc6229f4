package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/geom"
	"github.com/matzehuels/pageview/pkg/layout"
	"github.com/matzehuels/pageview/pkg/page"
	"github.com/matzehuels/pageview/pkg/render"
	"github.com/matzehuels/pageview/pkg/store"
)

// layoutResponse summarizes the document and its layout parameters.
type layoutResponse struct {
	Title       string  `json:"title"`
	Hash        string  `json:"hash"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Margin      int     `json:"margin"`
	Spacing     int     `json:"spacing"`
	Zoom        float64 `json:"zoom"`
	Rotation    int     `json:"rotation"`
	Orientation string  `json:"orientation"`
	PageCount   int     `json:"page_count"`
}

// pageInfo is the JSON shape of one page's geometry.
type pageInfo struct {
	Index         int     `json:"index"`
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	NaturalWidth  float64 `json:"natural_width"`
	NaturalHeight float64 `json:"natural_height"`
	Rotation      int     `json:"rotation"`
}

func (s *Server) layoutResponseLocked() layoutResponse {
	l := s.doc.Layout
	return layoutResponse{
		Title:       s.doc.Title,
		Hash:        s.doc.Hash,
		Width:       l.Width(),
		Height:      l.Height(),
		Margin:      l.Margin(),
		Spacing:     l.Spacing(),
		Zoom:        l.ZoomFactor(),
		Rotation:    l.Rotation().Degrees(),
		Orientation: orientationOf(l),
		PageCount:   l.Len(),
	}
}

func orientationOf(l *layout.Layout) string {
	if lin, ok := l.Strategy().(*layout.Linear); ok {
		return lin.Orientation().String()
	}
	return layout.Vertical.String()
}

func pageInfoOf(index int, p page.Page) pageInfo {
	rect := p.Rect()
	natural := p.PageSizeF()
	return pageInfo{
		Index:         index,
		X:             rect.X,
		Y:             rect.Y,
		Width:         rect.Width,
		Height:        rect.Height,
		NaturalWidth:  natural.Width,
		NaturalHeight: natural.Height,
		Rotation:      p.Rotation().Degrees(),
	}
}

func (s *Server) handleGetLayout(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	resp := s.layoutResponseLocked()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// updateLayoutRequest carries optional parameter overrides; absent
// fields keep their current values.
type updateLayoutRequest struct {
	Margin      *int     `json:"margin"`
	Spacing     *int     `json:"spacing"`
	Zoom        *float64 `json:"zoom"`
	DPI         *float64 `json:"dpi"`
	Rotation    *int     `json:"rotation"`
	Orientation *string  `json:"orientation"`
}

func (s *Server) handleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	var req updateLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to decode request body"))
		return
	}
	if req.Rotation != nil && *req.Rotation%90 != 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "rotation %d is not a multiple of 90", *req.Rotation))
		return
	}
	var orientation *layout.Orientation
	if req.Orientation != nil {
		switch *req.Orientation {
		case "vertical":
			o := layout.Vertical
			orientation = &o
		case "horizontal":
			o := layout.Horizontal
			orientation = &o
		default:
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "unknown orientation %q", *req.Orientation))
			return
		}
	}

	s.mu.Lock()
	l := s.doc.Layout
	if req.Margin != nil {
		l.SetMargin(*req.Margin)
	}
	if req.Spacing != nil {
		l.SetSpacing(*req.Spacing)
	}
	if req.Zoom != nil {
		l.SetZoomFactor(*req.Zoom)
	}
	if req.DPI != nil {
		l.SetDPI(geom.PointF{X: *req.DPI, Y: *req.DPI})
	}
	if req.Rotation != nil {
		l.SetRotation(geom.RotationFromDegrees(*req.Rotation))
	}
	if orientation != nil {
		if lin, ok := l.Strategy().(*layout.Linear); ok {
			lin.SetOrientation(*orientation)
		} else {
			l.SetStrategy(layout.NewLinear(*orientation))
		}
	}
	l.Update()
	resp := s.layoutResponseLocked()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePages(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	pages := make([]pageInfo, 0, s.doc.Layout.Len())
	i := 0
	for p := range s.doc.Layout.All() {
		pages = append(pages, pageInfoOf(i, p))
		i++
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, pages)
}

func (s *Server) handlePageAt(w http.ResponseWriter, r *http.Request) {
	x, errX := queryInt(r, "x")
	y, errY := queryInt(r, "y")
	if errX != nil || errY != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "x and y must be integers"))
		return
	}

	s.mu.Lock()
	p := s.doc.Layout.PageAt(geom.Point{X: x, Y: y})
	var info pageInfo
	if p != nil {
		index, _ := s.doc.Layout.Index(p)
		info = pageInfoOf(index, p)
	}
	s.mu.Unlock()

	if p == nil {
		writeError(w, errors.New(errors.ErrCodePageNotFound, "no page at (%d, %d)", x, y))
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handlePagesIn(w http.ResponseWriter, r *http.Request) {
	x, errX := queryInt(r, "x")
	y, errY := queryInt(r, "y")
	width, errW := queryInt(r, "width")
	height, errH := queryInt(r, "height")
	if errX != nil || errY != nil || errW != nil || errH != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "x, y, width and height must be integers"))
		return
	}

	s.mu.Lock()
	pages := []pageInfo{}
	i := 0
	for p := range s.doc.Layout.All() {
		rect := geom.Rect{X: x, Y: y, Width: width, Height: height}
		if p.Rect().Intersects(rect) {
			pages = append(pages, pageInfoOf(i, p))
		}
		i++
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, pages)
}

// fitRequest asks the solver to match the layout to a viewport.
type fitRequest struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mode   string `json:"mode"`
}

type fitResponse struct {
	Zoom    float64 `json:"zoom"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Changed bool    `json:"changed"`
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	var req fitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to decode request body"))
		return
	}
	mode, err := layout.ParseFitMode(req.Mode)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "viewport dimensions must be positive"))
		return
	}

	s.mu.Lock()
	l := s.doc.Layout
	l.Fit(geom.Size{Width: req.Width, Height: req.Height}, mode)
	changed := l.Update()
	resp := fitResponse{
		Zoom:    l.ZoomFactor(),
		Width:   l.Width(),
		Height:  l.Height(),
		Changed: changed,
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

var renderContentTypes = map[string]string{
	render.FormatSVG:  "image/svg+xml",
	render.FormatPNG:  "image/png",
	render.FormatJSON: "application/json",
}

func (s *Server) handleRender(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		data, err := s.renderer.Render(r.Context(), s.doc.Hash, s.doc.Layout, format)
		s.mu.Unlock()
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", renderContentTypes[format])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// handleRenderPage serves a single page's bitmap, for viewers that
// fetch pages on demand instead of the whole layout.
func (s *Server) handleRenderPage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "page index must be an integer"))
		return
	}

	s.mu.Lock()
	data, err := s.renderer.RenderPage(r.Context(), s.doc.Hash, s.doc.Layout, index)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", renderContentTypes[render.FormatPNG])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleCaptureSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snapshot := store.Capture(s.doc.Title, s.doc.Layout)
	s.mu.Unlock()

	if err := s.store.Save(r.Context(), snapshot); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snapshot)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if snapshots == nil {
		snapshots = []*store.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(r.URL.Query().Get(name))
}
