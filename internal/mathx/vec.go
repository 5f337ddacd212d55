// Package mathx holds the small vector, rectangle and hashing toolkit shared
// by the simulation and the canvas encoder. Everything here is pure.
package mathx

import "math"

// Vec2 is a 2D point or direction in world or screen space.
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{x, y}.
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float64) Vec2     { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float64         { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64           { return math.Sqrt(v.LenSq()) }
func (v Vec2) Dist(o Vec2) float64    { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool           { return v.X == 0 && v.Y == 0 }
func (v Vec2) Promote(z float64) Vec3 { return Vec3{v.X, v.Y, z} }

// Div divides by s. A zero divisor yields the zero vector.
func (v Vec2) Div(s float64) Vec2 {
	if s == 0 {
		return Vec2{}
	}
	return Vec2{v.X / s, v.Y / s}
}

// Normalize returns the unit vector in v's direction, or the zero vector when
// v has no usable length. Callers rely on this never producing NaN.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Lerp interpolates component-wise; t is not clamped.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t)}
}

// OffsetRTheta returns v displaced by r along angle theta (radians).
func (v Vec2) OffsetRTheta(r, theta float64) Vec2 {
	return Vec2{v.X + r*math.Cos(theta), v.Y + r*math.Sin(theta)}
}

// Angle is the heading of v in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Transform maps v from rectangle from into rectangle to, preserving its
// relative position. A degenerate axis of from maps to the centre of to.
func (v Vec2) Transform(from, to Rect) Vec2 {
	return Vec2{
		remap(v.X, from.X, from.W, to.X, to.W),
		remap(v.Y, from.Y, from.H, to.Y, to.H),
	}
}

func remap(x, fromStart, fromLen, toStart, toLen float64) float64 {
	if fromLen == 0 {
		return toStart + toLen/2
	}
	return toStart + (x-fromStart)/fromLen*toLen
}

// AngleBetween returns the unsigned angle between a and b in [0, pi]. Either
// vector being zero yields 0.
func AngleBetween(a, b Vec2) float64 {
	na, nb := a.Normalize(), b.Normalize()
	if na.IsZero() || nb.IsZero() {
		return 0
	}
	return math.Acos(Clamp(na.Dot(nb), -1, 1))
}

// Vec3 is a position plus depth, as written into vertex records.
type Vec3 struct {
	X, Y, Z float64
}

// Vec4 is an RGBA colour with channels in [0,1].
type Vec4 struct {
	X, Y, Z, W float64
}

// RGBA is shorthand for a Vec4 colour.
func RGBA(r, g, b, a float64) Vec4 { return Vec4{r, g, b, a} }

// Lerp interpolates component-wise; t is not clamped.
func (v Vec4) Lerp(o Vec4, t float64) Vec4 {
	return Vec4{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t), Lerp(v.Z, o.Z, t), Lerp(v.W, o.W, t)}
}

// Clamp01 clamps every channel into [0,1].
func (v Vec4) Clamp01() Vec4 {
	return Vec4{Clamp(v.X, 0, 1), Clamp(v.Y, 0, 1), Clamp(v.Z, 0, 1), Clamp(v.W, 0, 1)}
}

// Scale multiplies the colour channels, leaving alpha alone.
func (v Vec4) Scale(s float64) Vec4 { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W} }

// WithAlpha replaces the alpha channel.
func (v Vec4) WithAlpha(a float64) Vec4 { return Vec4{v.X, v.Y, v.Z, a} }

// Lerp is the scalar linear interpolation a + (b-a)*t.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ExpBlend is the fraction of the remaining gap closed in dt by an
// exponential approach with the given rate (1/s). Always in [0,1).
func ExpBlend(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}
