// Package api implements the pageview HTTP API.
//
// The server exposes one document's layout over a small JSON API:
// geometry queries, hit testing, fit computations, rendered previews
// and snapshot management. All layout access is serialized through a
// mutex, so concurrent requests see consistent geometry.
//
// # Endpoints
//
//	GET    /healthz              liveness probe
//	GET    /v1/layout            layout parameters and total size
//	POST   /v1/layout            update layout parameters
//	GET    /v1/pages             all page geometry
//	GET    /v1/pages/at          hit test a point (?x=&y=)
//	GET    /v1/pages/in          pages intersecting a rect (?x=&y=&width=&height=)
//	GET    /v1/pages/{index}/render.png  single page bitmap
//	POST   /v1/fit               compute and apply a fit zoom
//	GET    /v1/render.{format}   rendered preview (svg, png, json)
//	POST   /v1/snapshots         capture a snapshot
//	GET    /v1/snapshots         list snapshots
//	GET    /v1/snapshots/{id}    fetch a snapshot
//	DELETE /v1/snapshots/{id}    delete a snapshot
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/manifest"
	"github.com/matzehuels/pageview/pkg/observability"
	"github.com/matzehuels/pageview/pkg/render"
	"github.com/matzehuels/pageview/pkg/store"
)

// Server serves one document's layout.
type Server struct {
	mu       sync.Mutex
	doc      *manifest.Document
	renderer *render.Renderer
	store    store.Store
	logger   *log.Logger
}

// NewServer creates a server for the given document. The layout is
// updated once so the first request already sees geometry. A nil store
// disables the snapshot endpoints, a nil logger discards logs.
func NewServer(doc *manifest.Document, renderer *render.Renderer, st store.Store, logger *log.Logger) *Server {
	if renderer == nil {
		renderer = render.NewRenderer(nil, nil, 0)
	}
	if logger == nil {
		logger = log.New(nil)
	}
	doc.Layout.Update()
	return &Server{
		doc:      doc,
		renderer: renderer,
		store:    st,
		logger:   logger,
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/layout", s.handleGetLayout)
		r.Post("/layout", s.handleUpdateLayout)
		r.Get("/pages", s.handlePages)
		r.Get("/pages/at", s.handlePageAt)
		r.Get("/pages/in", s.handlePagesIn)
		r.Get("/pages/{index}/render.png", s.handleRenderPage)
		r.Post("/fit", s.handleFit)
		r.Get("/render.svg", s.handleRender(render.FormatSVG))
		r.Get("/render.png", s.handleRender(render.FormatPNG))
		r.Get("/render.json", s.handleRender(render.FormatJSON))

		if s.store != nil {
			r.Post("/snapshots", s.handleCaptureSnapshot)
			r.Get("/snapshots", s.handleListSnapshots)
			r.Get("/snapshots/{id}", s.handleGetSnapshot)
			r.Delete("/snapshots/{id}", s.handleDeleteSnapshot)
		}
	})

	return r
}

// observe reports request events to the logger and the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration.Round(time.Microsecond))
	})
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON shape of an error response.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps structured error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidManifest,
		errors.ErrCodeInvalidFitMode, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidSnapshot, errors.ErrCodeInvalidPath,
		errors.ErrCodeOutOfRange:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodePageNotFound,
		errors.ErrCodeFileNotFound, errors.ErrCodeSnapshotNotFound:
		status = http.StatusNotFound
	}

	var body errorBody
	body.Error.Code = string(code)
	if body.Error.Code == "" {
		body.Error.Code = string(errors.ErrCodeInternal)
	}
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}
