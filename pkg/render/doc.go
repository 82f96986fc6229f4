// Package render produces visual output for page layouts.
//
// # Overview
//
// The package turns an updated layout into viewer artifacts:
//
//   - [RenderSVG]: a scalable overview of the page geometry
//   - [RenderPNG]: a raster overview, with image page content composited
//   - [RenderJSON]: the raw geometry for client-side viewers
//
// All sinks require the layout to be updated first; they read page
// positions and sizes, never recompute them.
//
// # Caching
//
// Rendering is the expensive half of serving a viewer, so [Renderer]
// wraps the sinks with a cache keyed by the document hash and every
// layout parameter that influences the output. Single page bitmaps are
// cached individually ([Renderer.RenderPage]); the whole-layout PNG is
// composed from them.
//
//	r := render.NewRenderer(cache.NewMemoryCache(), cache.NewDefaultKeyer(), time.Hour)
//	out, err := r.Render(ctx, doc.Hash, doc.Layout, render.FormatSVG)
package render
