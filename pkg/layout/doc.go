// Package layout arranges an ordered collection of pages in a single
// coordinate space and computes the zoom factor needed to fit the
// arrangement into a viewport.
//
// A Layout holds the page collection together with the shared geometric
// parameters (margin, spacing, zoom factor, per-axis scale and DPI, and a
// whole-layout rotation). After any mutation of the collection or the
// parameters, Update recomputes every page's size, positions the pages
// through the installed Strategy, and aggregates the bounding size:
//
//	l := layout.New()
//	l.Append(page.NewFixedPage(595, 842))
//	l.Append(page.NewFixedPage(595, 842))
//	changed := l.Update()
//
// Update reports whether the overall size changed so that dependent
// scroll and viewport state can react.
//
// # Concurrency
//
// The engine is single-threaded and not safe for concurrent use. Owners
// must serialize collection mutation, parameter changes and Update calls,
// for example behind a UI event loop or an external lock.
//
// # Validation policy
//
// Parameter setters accept their values verbatim. Negative margins,
// spacings, zoom factors, scales or DPI values are not rejected or
// clamped; the resulting geometry is the caller's responsibility.
package layout
