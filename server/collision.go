package main

// Rect is an axis-aligned bounding box anchored at its top-left corner
type Rect struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
	W float64 `msgpack:"w"`
	H float64 `msgpack:"h"`
}

// PointInRect reports whether (px,py) lies strictly inside r.
// A point exactly on an edge is not a hit.
func PointInRect(px, py float64, r Rect) bool {
	return r.X < px && px < r.X+r.W && r.Y < py && py < r.Y+r.H
}

// ContainsHalfOpen reports whether (px,py) lies in [X, X+W) x [Y, Y+H)
func (r Rect) ContainsHalfOpen(px, py float64) bool {
	return r.X <= px && px < r.X+r.W && r.Y <= py && py < r.Y+r.H
}

// Center returns the midpoint of r
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Overlaps reports whether two rects intersect with positive area
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}
