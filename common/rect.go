package common

import "math"

// Rect is an axis-aligned bounding volume in world pixels. Origin is the
// top-left corner and y grows downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// SetPosition moves the rectangle's top-left corner, keeping its size.
func (r *Rect) SetPosition(x, y float64) {
	r.X = x
	r.Y = y
}

// Intersects reports whether the rectangles overlap on both axes. Edges
// that only touch do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

// Overlap returns the penetration depth on each axis, or 0 on an axis
// without overlap. The values carry no direction.
func (r Rect) Overlap(other Rect) (x, y float64) {
	x = math.Max(0, math.Min(r.Right(), other.Right())-math.Max(r.X, other.X))
	y = math.Max(0, math.Min(r.Bottom(), other.Bottom())-math.Max(r.Y, other.Y))
	return x, y
}

// Contains reports whether the point lies inside r, edges included.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.Right() && py >= r.Y && py <= r.Bottom()
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Distance is the Euclidean distance between the two centers.
func (r Rect) Distance(other Rect) float64 {
	ax, ay := r.Center()
	bx, by := other.Center()
	return math.Hypot(bx-ax, by-ay)
}
