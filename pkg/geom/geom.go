package geom

// Point is a position in device space.
type Point struct {
	X, Y int
}

// PointF is a per-axis pair of float64 values, used for scale factors and
// DPI settings where the two axes may differ.
type PointF struct {
	X, Y float64
}

// Size is a width/height pair in device space.
type Size struct {
	Width, Height int
}

// IsEmpty returns true if either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// SizeF is a width/height pair in natural space (points, 1/72 inch).
type SizeF struct {
	Width, Height float64
}

// Transposed returns the size with its axes swapped.
func (s SizeF) Transposed() SizeF {
	return SizeF{Width: s.Height, Height: s.Width}
}

// Rect is an axis-aligned rectangle in device space.
// The zero value is the empty rectangle and acts as the identity for Union.
type Rect struct {
	X, Y          int
	Width, Height int
}

// RectFromSize returns a rectangle at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Pos returns the top-left corner.
func (r Rect) Pos() Point {
	return Point{X: r.X, Y: r.Y}
}

// Right returns the X coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the Y coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether p lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() &&
		p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersects reports whether the two rectangles share any area.
// Empty rectangles intersect nothing.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Union returns the smallest rectangle containing both r and o.
// An empty rectangle is the identity element, so a union accumulated from
// the zero value yields the bounding box of the non-empty operands.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Adjusted returns the rectangle with the given deltas added to its edges:
// dx1/dy1 move the left/top edge, dx2/dy2 move the right/bottom edge.
// Adjusted(-m, -m, m, m) grows the rectangle by a margin on every side.
func (r Rect) Adjusted(dx1, dy1, dx2, dy2 int) Rect {
	return Rect{
		X:      r.X + dx1,
		Y:      r.Y + dy1,
		Width:  r.Width - dx1 + dx2,
		Height: r.Height - dy1 + dy2,
	}
}

// Translated returns the rectangle moved by the given offset.
func (r Rect) Translated(p Point) Rect {
	return Rect{X: r.X + p.X, Y: r.Y + p.Y, Width: r.Width, Height: r.Height}
}
