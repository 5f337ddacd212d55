package mathx

import "math"

// Rect is an axis-aligned rectangle with origin (X,Y) and extent (W,H).
// Y grows downward, matching screen space.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// RectCentered builds a rectangle of size w x h around c.
func RectCentered(c Vec2, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) TL() Vec2        { return Vec2{r.X, r.Y} }
func (r Rect) TR() Vec2        { return Vec2{r.X + r.W, r.Y} }
func (r Rect) BL() Vec2        { return Vec2{r.X, r.Y + r.H} }
func (r Rect) BR() Vec2        { return Vec2{r.X + r.W, r.Y + r.H} }
func (r Rect) Center() Vec2    { return Vec2{r.X + r.W/2, r.Y + r.H/2} }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p lies inside r, edges inclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Snap returns the point of r nearest to p (p itself when inside).
func (r Rect) Snap(p Vec2) Vec2 {
	return Vec2{Clamp(p.X, r.X, r.Right()), Clamp(p.Y, r.Y, r.Bottom())}
}

// Dilate grows r by d on every side.
func (r Rect) Dilate(d float64) Rect {
	return Rect{r.X - d, r.Y - d, r.W + 2*d, r.H + 2*d}
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Triangle is three points in draw order.
type Triangle struct {
	A, B, C Vec2
}

// AABB is the tight bounding rectangle of t.
func (t Triangle) AABB() Rect {
	minX := math.Min(t.A.X, math.Min(t.B.X, t.C.X))
	minY := math.Min(t.A.Y, math.Min(t.B.Y, t.C.Y))
	maxX := math.Max(t.A.X, math.Max(t.B.X, t.C.X))
	maxY := math.Max(t.A.Y, math.Max(t.B.Y, t.C.Y))
	return Rect{minX, minY, maxX - minX, maxY - minY}
}
