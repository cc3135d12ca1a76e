package geom

import (
	"math"
	"testing"

	"github.com/npillmayer/glyphedit/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestPointToSegmentDistanceClamps(t *testing.T) {
	a, b := V(0, 0), V(10, 0)
	assert.InDelta(t, 5.0, PointToSegmentDistance(V(5, 5), a, b), eps)
	assert.InDelta(t, 5.0, PointToSegmentDistance(V(-3, 4), a, b), eps, "beyond start clamps to a")
	assert.InDelta(t, 5.0, PointToSegmentDistance(V(13, -4), a, b), eps, "beyond end clamps to b")
	assert.InDelta(t, 5.0, PointToSegmentDistance(V(3, 4), a, a), eps, "degenerate segment")
}

func TestCurveDistanceUsesSamples(t *testing.T) {
	p0, c, p1 := V(0, 0), V(50, 100), V(100, 0)
	// the curve apex is (50, 50) at t = 0.5, which is a sample point
	assert.InDelta(t, 0.0, PointToQuadDistance(V(50, 50), p0, c, p1, QuadSamples), eps)
	assert.InDelta(t, 10.0, PointToQuadDistance(V(50, 60), p0, c, p1, QuadSamples), eps)
	//
	c1, c2 := V(0, 100), V(100, 100)
	apex := EvalCubic(p0, c1, c2, p1, 0.5)
	assert.InDelta(t, 75.0, apex.Y, eps)
	// t = 0.5 is not among the 15 samples; the nearest are t = 7/15 and 8/15
	assert.InDelta(t, 5.0, PointToCubicDistance(apex, p0, c1, c2, p1, CubicSamples), 0.05)
	assert.InDelta(t, 0.0, PointToCubicDistance(apex, p0, c1, c2, p1, 2), eps)
	assert.Equal(t, PointToCubicDistance(apex, p0, c1, c2, p1, CubicSamples),
		PointToCubicDistance(apex, p0, c1, c2, p1, 0), "non-positive sample count uses default")
}

func TestEvaluateAtHalf(t *testing.T) {
	seg := outline.Segment{
		Op:       outline.OpQuadTo,
		Start:    outline.Pt(1, 0, 0),
		Controls: []outline.Point{outline.Pt(2, 50, 100)},
		End:      outline.Pt(3, 100, 0),
	}
	pos, tan := EvaluateAtHalf(seg)
	assert.InDelta(t, 50.0, pos.X, eps)
	assert.InDelta(t, 50.0, pos.Y, eps)
	assert.InDelta(t, 100.0, tan.X, eps)
	assert.InDelta(t, 0.0, tan.Y, eps)
	//
	cubic := outline.Segment{
		Op:    outline.OpCubicTo,
		Start: outline.Pt(1, 0, 0),
		Controls: []outline.Point{
			outline.Pt(2, 0, 100), outline.Pt(3, 100, 100),
		},
		End: outline.Pt(4, 100, 0),
	}
	_, tan = EvaluateAtHalf(cubic)
	// 3(0.25·(0,100) + 0.5·(100,0) + 0.25·(0,-100)) = (150, 0)
	assert.InDelta(t, 150.0, tan.X, eps)
	assert.InDelta(t, 0.0, tan.Y, eps)
	//
	line := outline.Segment{Op: outline.OpLineTo, Start: outline.Pt(1, 0, 0), End: outline.Pt(2, 10, 20)}
	pos, tan = EvaluateAtHalf(line)
	assert.Equal(t, V(5, 10), pos)
	assert.Equal(t, V(10, 20), tan)
}

func TestSelectionBoundingBox(t *testing.T) {
	c := outline.NewContour(1,
		outline.MoveTo(outline.Pt(1, 0, 0)),
		outline.CubicTo(outline.Pt(2, 10, 50), outline.Pt(3, 90, 60), outline.Pt(4, 100, 0)),
		outline.LineTo(outline.Pt(5, 100, -40)),
	)
	cs := []outline.Contour{c}
	_, ok := SelectionBoundingBox(cs, outline.Selection{})
	assert.False(t, ok, "empty selection has no box")
	//
	box, ok := SelectionBoundingBox(cs, outline.NewSelection(1, 4))
	require.True(t, ok)
	assert.Equal(t, R(V(0, 0), V(100, 60)), box, "both end points selected pulls in controls")
	//
	box, ok = SelectionBoundingBox(cs, outline.SegmentSelection(outline.SegmentKey{Contour: 1, Start: 4, End: 5}))
	require.True(t, ok)
	assert.Equal(t, R(V(100, -40), V(100, 0)), box, "segment selection expands to end points")
	//
	box, ok = SelectionBoundingBox(cs, outline.NewSelection(5))
	require.True(t, ok)
	assert.Equal(t, 0.0, box.Width())
}

func TestAffineOrder(t *testing.T) {
	tr := Affine{ScaleX: 2, ScaleY: 2, RotationDeg: 90, CenterX: 10, CenterY: 0, TranslateX: 1, TranslateY: 1}
	// scale about (10,0): (20,0) -> (30,0); rotate 90° about (10,0): (10,20); translate: (11,21)
	q := tr.Apply(V(20, 0))
	assert.InDelta(t, 11.0, q.X, eps)
	assert.InDelta(t, 21.0, q.Y, eps)
}

func TestAffineIdentityIsNoOp(t *testing.T) {
	id := Identity()
	assert.True(t, id.IsIdentity())
	for _, p := range []Vec{V(0, 0), V(0.1, -0.3), V(1e6, 123.456)} {
		q := id.Apply(p)
		assert.InDelta(t, p.X, q.X, eps)
		assert.InDelta(t, p.Y, q.Y, eps)
	}
	tr := Affine{ScaleX: 1, ScaleY: 1, CenterX: 5, CenterY: 5}
	assert.Equal(t, V(0.1, 0.7), tr.Apply(V(0.1, 0.7)))
}

func TestSafeRatio(t *testing.T) {
	assert.Equal(t, 1.0, SafeRatio(5, 0))
	assert.Equal(t, 2.5, SafeRatio(5, 2))
	assert.Equal(t, 1.0, SafeRatio(math.Inf(1), 1))
}

func TestViewMapping(t *testing.T) {
	v := View{Scale: 2, OriginX: 100, OriginY: 500}
	s := v.ToScreen(V(10, 20))
	assert.Equal(t, V(120, 460), s)
	assert.Equal(t, V(10, 20), v.ToFont(s))
	//
	z := v.ZoomAt(2, V(300, 300))
	f := v.ToFont(V(300, 300))
	assert.InDelta(t, 300.0, z.ToScreen(f).X, eps)
	assert.InDelta(t, 300.0, z.ToScreen(f).Y, eps)
	assert.Equal(t, 4.0, z.Scale)
	assert.Equal(t, 2.5, v.FontDistance(5))
}
