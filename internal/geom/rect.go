// Package geom provides integer grid geometry.
package geom

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle on the grid.
type Rect struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the rectangle
}

// Center returns the center coordinates of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Translate returns the rectangle moved by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// IsOutOfBounds reports whether the rectangle leaves a width x height area.
// The far edge is exclusive: a rectangle touching the last row or column
// counts as out of bounds, keeping a one-tile border free.
func (r Rect) IsOutOfBounds(width, height int) bool {
	return r.X < 0 ||
		r.Y < 0 ||
		r.X+r.Width >= width ||
		r.Y+r.Height >= height
}

// Collides returns true if this rectangle overlaps another.
func (r Rect) Collides(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// CollidesNear returns true if this rectangle, grown by padding on every
// side, overlaps another. The grown origin is clamped at zero.
func (r Rect) CollidesNear(other Rect, padding int) bool {
	near := Rect{
		X:      max(0, r.X-padding),
		Y:      max(0, r.Y-padding),
		Width:  r.Width + padding*2,
		Height: r.Height + padding*2,
	}
	return near.Collides(other)
}

// Intersect returns the overlap of two rectangles. ok is false when they do
// not overlap.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	x0, y0 := max(r.X, other.X), max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}
