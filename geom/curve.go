package geom

import (
	"math"

	"github.com/npillmayer/glyphedit/outline"
)

// Sample counts for curve distance approximation. Changing them changes which
// pointer positions count as hits near a curve.
const (
	QuadSamples  = 10
	CubicSamples = 15
)

// P converts an outline point to a vector.
func P(p outline.Point) Vec {
	return Vec{p.X, p.Y}
}

// EvalQuad evaluates a quadratic Bézier at t (Bernstein form).
func EvalQuad(p0, p1, p2 Vec, t float64) Vec {
	mt := 1 - t
	a, b, c := mt*mt, 2*mt*t, t*t
	return Vec{
		a*p0.X + b*p1.X + c*p2.X,
		a*p0.Y + b*p1.Y + c*p2.Y,
	}
}

// EvalCubic evaluates a cubic Bézier at t (Bernstein form).
func EvalCubic(p0, p1, p2, p3 Vec, t float64) Vec {
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return Vec{
		a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// QuadTangent returns the derivative 2((1−t)(p1−p0) + t(p2−p1)).
func QuadTangent(p0, p1, p2 Vec, t float64) Vec {
	return p1.Sub(p0).Mul(1 - t).Add(p2.Sub(p1).Mul(t)).Mul(2)
}

// CubicTangent returns the derivative
// 3((1−t)²(p1−p0) + 2(1−t)t(p2−p1) + t²(p3−p2)).
func CubicTangent(p0, p1, p2, p3 Vec, t float64) Vec {
	mt := 1 - t
	return p1.Sub(p0).Mul(mt * mt).
		Add(p2.Sub(p1).Mul(2 * mt * t)).
		Add(p3.Sub(p2).Mul(t * t)).
		Mul(3)
}

// PointToSegmentDistance returns the distance from p to the line segment a–b,
// projecting p onto the segment with the parameter clamped to [0,1].
func PointToSegmentDistance(p, a, b Vec) float64 {
	ab := b.Sub(a)
	l2 := ab.LenSq()
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Mul(t)))
}

// PointToQuadDistance approximates the distance from p to a quadratic Bézier
// by evaluating the curve at samples+1 uniformly spaced parameters.
func PointToQuadDistance(p, p0, ctrl, p1 Vec, samples int) float64 {
	if samples < 1 {
		samples = QuadSamples
	}
	minSq := math.Inf(1)
	for i := 0; i <= samples; i++ {
		q := EvalQuad(p0, ctrl, p1, float64(i)/float64(samples))
		minSq = math.Min(minSq, p.DistSq(q))
	}
	return math.Sqrt(minSq)
}

// PointToCubicDistance approximates the distance from p to a cubic Bézier
// by evaluating the curve at samples+1 uniformly spaced parameters.
func PointToCubicDistance(p, p0, c1, c2, p1 Vec, samples int) float64 {
	if samples < 1 {
		samples = CubicSamples
	}
	minSq := math.Inf(1)
	for i := 0; i <= samples; i++ {
		q := EvalCubic(p0, c1, c2, p1, float64(i)/float64(samples))
		minSq = math.Min(minSq, p.DistSq(q))
	}
	return math.Sqrt(minSq)
}

// SegmentDistance returns the distance from p to seg, using the sampling
// approximations for curves.
func SegmentDistance(p Vec, seg outline.Segment) float64 {
	switch {
	case seg.Op == outline.OpQuadTo && len(seg.Controls) == 1:
		return PointToQuadDistance(p, P(seg.Start), P(seg.Controls[0]), P(seg.End), QuadSamples)
	case seg.Op == outline.OpCubicTo && len(seg.Controls) == 2:
		return PointToCubicDistance(p, P(seg.Start), P(seg.Controls[0]), P(seg.Controls[1]),
			P(seg.End), CubicSamples)
	}
	return PointToSegmentDistance(p, P(seg.Start), P(seg.End))
}

// Eval returns the position of seg at parameter t.
func Eval(seg outline.Segment, t float64) Vec {
	switch {
	case seg.Op == outline.OpQuadTo && len(seg.Controls) == 1:
		return EvalQuad(P(seg.Start), P(seg.Controls[0]), P(seg.End), t)
	case seg.Op == outline.OpCubicTo && len(seg.Controls) == 2:
		return EvalCubic(P(seg.Start), P(seg.Controls[0]), P(seg.Controls[1]), P(seg.End), t)
	}
	return P(seg.Start).Lerp(P(seg.End), t)
}

// Tangent returns the direction of seg at parameter t (not normalized).
func Tangent(seg outline.Segment, t float64) Vec {
	switch {
	case seg.Op == outline.OpQuadTo && len(seg.Controls) == 1:
		return QuadTangent(P(seg.Start), P(seg.Controls[0]), P(seg.End), t)
	case seg.Op == outline.OpCubicTo && len(seg.Controls) == 2:
		return CubicTangent(P(seg.Start), P(seg.Controls[0]), P(seg.Controls[1]), P(seg.End), t)
	}
	return P(seg.End).Sub(P(seg.Start))
}

// EvaluateAtHalf returns position and tangent of seg at t = 0.5. Renderers
// place direction arrows there.
func EvaluateAtHalf(seg outline.Segment) (pos, tangent Vec) {
	return Eval(seg, 0.5), Tangent(seg, 0.5)
}
