/*
Package geom is the geometry kernel of the outline editor: distances between
points and segments, Bézier evaluation, bounding boxes of selections, affine
transforms about a pivot, and the view transform between font space and
screen space.

Curve distances are approximations by uniform parameter sampling. Hit-testing
behavior near a curve depends on the sample counts, which is why the counts are
fixed constants (QuadSamples, CubicSamples).
*/
package geom

import "math"

// Vec is a 2D vector or position.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (v Vec) Add(w Vec) Vec         { return Vec{v.X + w.X, v.Y + w.Y} }
func (v Vec) Sub(w Vec) Vec         { return Vec{v.X - w.X, v.Y - w.Y} }
func (v Vec) Mul(f float64) Vec     { return Vec{v.X * f, v.Y * f} }
func (v Vec) Dot(w Vec) float64     { return v.X*w.X + v.Y*w.Y }
func (v Vec) Len() float64          { return math.Hypot(v.X, v.Y) }
func (v Vec) LenSq() float64        { return v.X*v.X + v.Y*v.Y }
func (v Vec) DistSq(w Vec) float64  { return v.Sub(w).LenSq() }
func (v Vec) Dist(w Vec) float64    { return v.Sub(w).Len() }
func (v Vec) IsZero() bool          { return v.X == 0 && v.Y == 0 }
func (v Vec) Lerp(w Vec, t float64) Vec {
	return Vec{v.X + (w.X-v.X)*t, v.Y + (w.Y-v.Y)*t}
}

// Rotate rotates v counter-clockwise by angle (radians) about the origin.
func (v Vec) Rotate(angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// SafeRatio returns num/den, or 1 if den is zero. Scale factors of degenerate
// (zero-extent) selections must not poison coordinates with NaN or Inf.
func SafeRatio(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) {
		return 1
	}
	r := num / den
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 1
	}
	return r
}

// --- Rectangles ------------------------------------------------------------

// Rect is an axis-aligned rectangle. Min is the corner with the smaller
// coordinates.
type Rect struct {
	Min, Max Vec
}

// R creates a normalized rectangle from two corners.
func R(a, b Vec) Rect {
	return Rect{
		Min: Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the center of r.
func (r Rect) Center() Vec {
	return Vec{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Contains reports whether p lies inside r, borders included.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Extend returns the smallest rectangle containing r and p.
func (r Rect) Extend(p Vec) Rect {
	return Rect{
		Min: Vec{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Vec{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Inset grows r by d on every side (shrinks for negative d).
func (r Rect) Inset(d float64) Rect {
	return Rect{Min: Vec{r.Min.X - d, r.Min.Y - d}, Max: Vec{r.Max.X + d, r.Max.Y + d}}
}
