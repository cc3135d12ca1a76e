package geom

import "math"

// Affine is a declarative transform about a pivot (CenterX, CenterY).
// Apply scales about the pivot, then rotates about the pivot
// (counter-clockwise, degrees), then translates. The order is fixed: undo
// snapshots taken before a transform are only reproducible with it.
type Affine struct {
	TranslateX, TranslateY float64
	ScaleX, ScaleY         float64
	RotationDeg            float64
	CenterX, CenterY       float64
}

// Identity is the transform leaving every point in place.
func Identity() Affine {
	return Affine{ScaleX: 1, ScaleY: 1}
}

// Translation is a pure translation.
func Translation(dx, dy float64) Affine {
	return Affine{TranslateX: dx, TranslateY: dy, ScaleX: 1, ScaleY: 1}
}

// ScalingAbout scales by (sx, sy) about pivot c.
func ScalingAbout(c Vec, sx, sy float64) Affine {
	return Affine{ScaleX: sx, ScaleY: sy, CenterX: c.X, CenterY: c.Y}
}

// RotationAbout rotates by deg degrees about pivot c.
func RotationAbout(c Vec, deg float64) Affine {
	return Affine{ScaleX: 1, ScaleY: 1, RotationDeg: deg, CenterX: c.X, CenterY: c.Y}
}

// IsIdentity reports whether t leaves every point in place.
func (t Affine) IsIdentity() bool {
	return t.TranslateX == 0 && t.TranslateY == 0 && t.ScaleX == 1 && t.ScaleY == 1 &&
		math.Mod(t.RotationDeg, 360) == 0
}

// Apply transforms p.
func (t Affine) Apply(p Vec) Vec {
	c := Vec{t.CenterX, t.CenterY}
	q := p
	if t.ScaleX != 1 {
		q.X = c.X + (p.X-c.X)*t.ScaleX
	}
	if t.ScaleY != 1 {
		q.Y = c.Y + (p.Y-c.Y)*t.ScaleY
	}
	if t.RotationDeg != 0 {
		q = c.Add(q.Sub(c).Rotate(Radians(t.RotationDeg)))
	}
	return Vec{q.X + t.TranslateX, q.Y + t.TranslateY}
}
