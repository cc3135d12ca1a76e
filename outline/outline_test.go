package outline

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangle builds M(0,0) L(100,0) L(100,200) Z with ids 1..3 on contour 10.
func triangle() Contour {
	return NewContour(10,
		MoveTo(Pt(1, 0, 0)),
		LineTo(Pt(2, 100, 0)),
		LineTo(Pt(3, 100, 200)),
		Close(),
	)
}

func TestContourStructure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.outline")
	defer teardown()
	//
	c := triangle()
	assert.True(t, c.IsClosed())
	assert.NoError(t, c.Validate())
	assert.Len(t, c.Points(), 3)
	bad := NewContour(11, LineTo(Pt(1, 0, 0)))
	assert.ErrorIs(t, bad.Validate(), ErrMalformedContour)
	bad = NewContour(12, MoveTo(Pt(1, 0, 0)), Close(), LineTo(Pt(2, 1, 1)))
	assert.ErrorIs(t, bad.Validate(), ErrMalformedContour)
}

func TestSegmentsIncludeClosingSegment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.outline")
	defer teardown()
	//
	segs := triangle().Segments()
	require.Len(t, segs, 3)
	assert.Equal(t, SegmentKey{Contour: 10, Start: 1, End: 2}, segs[0].Key)
	assert.Equal(t, SegmentKey{Contour: 10, Start: 2, End: 3}, segs[1].Key)
	assert.True(t, segs[2].Closing)
	assert.Equal(t, "10:3:1", segs[2].Key.String())
	//
	open := NewContour(20, MoveTo(Pt(1, 0, 0)), LineTo(Pt(2, 10, 0)))
	assert.Len(t, open.Segments(), 1, "open contours have no closing segment")
}

func TestSegmentIdentityIsStableAcrossCurveChange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.outline")
	defer teardown()
	//
	line := NewContour(1, MoveTo(Pt(1, 0, 0)), LineTo(Pt(2, 90, 0)))
	curve := NewContour(1, MoveTo(Pt(1, 0, 0)),
		CubicTo(Pt(7, 30, 10), Pt(8, 60, 10), Pt(2, 90, 0)))
	assert.Equal(t, line.Segments()[0].Key, curve.Segments()[0].Key)
	assert.Len(t, curve.Segments()[0].Controls, 2)
	assert.Equal(t, OffCurveCubic, curve.Segments()[0].Controls[0].Kind)
}

func TestCloneIsolation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.outline")
	defer teardown()
	//
	cs := []Contour{triangle()}
	clone := CloneAll(cs)
	UpdatePoints(cs, func(p Point) (Point, bool) { return p.Moved(5, 5), true })
	p, ok := FindPoint(clone, 2)
	require.True(t, ok)
	assert.Equal(t, 100.0, p.X, "clone must not see mutations of the original")
	q, _ := FindPoint(cs, 2)
	assert.Equal(t, 105.0, q.X)
}

func TestFindMissingPoint(t *testing.T) {
	_, ok := FindPoint([]Contour{triangle()}, 99)
	assert.False(t, ok)
	_, _, ok = FindSegment([]Contour{triangle()}, SegmentKey{Contour: 10, Start: 1, End: 3})
	assert.False(t, ok)
}

func TestReversedKeepsCurveShape(t *testing.T) {
	c := NewContour(1,
		MoveTo(Pt(1, 0, 0)),
		QuadTo(Pt(2, 5, 10), Pt(3, 10, 0)),
		CubicTo(Pt(4, 12, 5), Pt(5, 18, 5), Pt(6, 20, 0)),
	)
	r := c.Reversed()
	require.Len(t, r.Commands, 3)
	assert.Equal(t, PointID(6), r.Commands[0].Pts[0].ID)
	assert.Equal(t, OpCubicTo, r.Commands[1].Op)
	assert.Equal(t, PointID(5), r.Commands[1].Pts[0].ID)
	assert.Equal(t, PointID(4), r.Commands[1].Pts[1].ID)
	assert.Equal(t, PointID(3), r.Commands[1].Pts[2].ID)
	assert.Equal(t, OpQuadTo, r.Commands[2].Op)
	assert.Equal(t, PointID(1), r.Commands[2].Pts[1].ID)
}

func TestSelectionEndpointExpansion(t *testing.T) {
	sel := SegmentSelection(SegmentKey{Contour: 10, Start: 1, End: 2})
	assert.False(t, sel.HasPoint(1), "segment selection must not imply point selection")
	ids := sel.EndpointIDs()
	assert.Contains(t, ids, PointID(1))
	assert.Contains(t, ids, PointID(2))
	//
	sel.AddPoint(3)
	pruned := sel.Prune([]Contour{NewContour(10, MoveTo(Pt(3, 0, 0)))})
	assert.True(t, pruned.HasPoint(3))
	assert.Empty(t, pruned.Segments)
}

func TestComponentOffsetsAccumulate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.outline")
	defer teardown()
	//
	comps := []Component{{
		TargetID: "A", XOffset: 10, YOffset: 5,
		SubComponents: []Component{{TargetID: "B", XOffset: 3, YOffset: -2,
			Contours: []Contour{NewContour(1, MoveTo(Pt(1, 1, 1)))}}},
	}}
	dx, dy, ok := AccumulatedOffset(comps, ComponentPath{0, 0})
	require.True(t, ok)
	assert.Equal(t, 13.0, dx)
	assert.Equal(t, 3.0, dy)
	_, _, ok = AccumulatedOffset(comps, ComponentPath{0, 1})
	assert.False(t, ok)
	//
	flat := Flatten(comps)
	require.Len(t, flat, 1)
	assert.Equal(t, 14.0, flat[0].Commands[0].Pts[0].X)
	assert.Equal(t, 1.0, comps[0].SubComponents[0].Contours[0].Commands[0].Pts[0].X,
		"flatten must not modify the tree")
}

func TestCloneComponentsIsDeep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.outline")
	defer teardown()
	//
	comps := []Component{{TargetID: "A", SubComponents: []Component{{TargetID: "B",
		Contours: []Contour{NewContour(1, MoveTo(Pt(1, 1, 1)))}}}}}
	clone := CloneComponents(comps)
	require.Len(t, clone, 1)
	comps[0].SubComponents[0].XOffset = 99
	comps[0].SubComponents[0].Contours[0].Commands[0].Pts[0].X = 42
	assert.Equal(t, 0.0, clone[0].SubComponents[0].XOffset)
	assert.Equal(t, 1.0, clone[0].SubComponents[0].Contours[0].Commands[0].Pts[0].X)
}

type mapResolver map[string]ResolvedGlyph

func (m mapResolver) Resolve(id string) (ResolvedGlyph, error) {
	g, ok := m[id]
	if !ok {
		return ResolvedGlyph{}, assert.AnError
	}
	return g, nil
}

func TestAssemble(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.outline")
	defer teardown()
	//
	r := mapResolver{
		"acute":  {Contours: []Contour{triangle()}},
		"aacute": {Components: []ComponentRef{{TargetID: "acute", XOffset: 40}}},
		"loop":   {Components: []ComponentRef{{TargetID: "loop"}}},
	}
	comps, err := Assemble([]ComponentRef{{TargetID: "aacute", YOffset: 7}}, r)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.True(t, comps[0].IsComposite)
	assert.True(t, comps[0].Locked)
	require.Len(t, comps[0].SubComponents, 1)
	assert.Len(t, comps[0].SubComponents[0].Contours, 1)
	//
	_, err = Assemble([]ComponentRef{{TargetID: "loop"}}, r)
	assert.ErrorIs(t, err, ErrComponentCycle)
	_, err = Assemble([]ComponentRef{{TargetID: "missing"}}, r)
	assert.Error(t, err)
}
