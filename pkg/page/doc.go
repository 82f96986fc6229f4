// Package page defines the page capability consumed by the layout engine.
//
// A Page knows its natural (untransformed) size in points, its own
// rotation and per-axis scale, and can compute its rendered device size
// from a layout Context — an immutable snapshot of the layout's margin,
// spacing, zoom, scale, DPI and rotation. Pages never reach into shared
// layout state; everything they need arrives through the Context, which
// keeps them testable in isolation.
//
// Two concrete implementations are provided: FixedPage for pages that are
// pure geometry (a known paper size) and ImagePage for pages backed by a
// raster image.
package page
