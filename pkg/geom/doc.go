// Package geom provides the coordinate types used by the layout engine.
//
// Two coordinate spaces exist side by side:
//
//   - Device space: integer pixels after zoom, DPI and scale have been
//     applied. Point, Size and Rect live here; this is the space in which
//     pages are positioned and hit testing happens.
//   - Natural space: float64 points (1/72 inch) describing a page before
//     any transformation. SizeF and PointF live here.
//
// Rect follows the screen convention: the origin is the top-left corner
// and Y grows downward. Containment is half-open, so a point on the right
// or bottom edge is outside the rectangle.
package geom
