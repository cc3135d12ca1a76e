package editstate

import (
	"errors"
	"testing"

	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteStartPointRepairsContour(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.edit")
	defer teardown()
	//
	s := load(t, "M 0 0 L 100 0 L 100 -100 L 0 -100 Z")
	require.NoError(t, s.Apply(SetSelection{Selection: outline.NewSelection(pointAt(t, s, 0, 0))}))
	require.NoError(t, s.Apply(DeleteSelection{}))
	cs := s.Contours()
	require.Len(t, cs, 1)
	assert.Equal(t, []string{"M 100,0", "L 100,100", "L 0,100", "Z"}, coords(cs)[0])
	assert.NoError(t, cs[0].Validate())
}

func TestDeleteSegmentSelection(t *testing.T) {
	s := load(t, "M 0 0 L 100 0 L 200 0 M 0 -50 L 10 -50")
	c := s.Contours()[0]
	key := outline.SegmentKey{Contour: c.ID, Start: pointAt(t, s, 100, 0), End: pointAt(t, s, 200, 0)}
	second := s.Contours()[1]
	sel := outline.SegmentSelection(key)
	for _, p := range second.Points() {
		sel.AddPoint(p.ID)
	}
	require.NoError(t, s.Apply(SetSelection{Selection: sel}))
	require.NoError(t, s.Apply(DeleteSelection{}))
	cs := s.Contours()
	require.Len(t, cs, 1, "emptied contours are dropped")
	assert.Equal(t, []string{"M 0,0"}, coords(cs)[0])
}

func TestDeleteWithoutSelectionIsNoOp(t *testing.T) {
	s := load(t, "M 0 0 L 100 0")
	require.NoError(t, s.Apply(DeleteSelection{}))
	assert.Equal(t, 0, s.UndoDepth())
	assert.False(t, s.IsDirty())
}

func TestConvertClosingSegment(t *testing.T) {
	s := load(t, "M 0 0 L 100 0 L 100 -100 Z")
	c := s.Contours()[0]
	first, last := pointAt(t, s, 0, 0), pointAt(t, s, 100, 100)
	key := outline.SegmentKey{Contour: c.ID, Start: last, End: first}
	require.NoError(t, s.Apply(SetSelection{Selection: outline.SegmentSelection(key)}))
	require.NoError(t, s.Apply(ConvertSegments{To: outline.OpQuadTo}))
	c = s.Contours()[0]
	assert.Equal(t, []string{"M 0,0", "L 100,0", "L 100,100", "Q 50,50 0,0", "Z"}, coords([]outline.Contour{c})[0])
	segs := c.Segments()
	require.Len(t, segs, 3, "the explicit closing curve replaces the closing line")
	assert.Equal(t, key, segs[2].Key)
	assert.Equal(t, outline.OpQuadTo, segs[2].Op)
	assert.False(t, segs[2].Closing)
	//
	require.NoError(t, s.Apply(ConvertSegments{To: outline.OpLineTo}))
	c = s.Contours()[0]
	assert.Equal(t, []string{"M 0,0", "L 100,0", "L 100,100", "Z"}, coords([]outline.Contour{c})[0])
	assert.True(t, c.Commands[len(c.Commands)-1].Op == outline.OpClose)
	assert.Equal(t, 2, s.UndoDepth())
}

func TestStraightenCurve(t *testing.T) {
	s := load(t, "M 0 0 C 0 -50 100 -50 100 0 L 200 0")
	require.NoError(t, s.Apply(SelectAll{}))
	require.NoError(t, s.Apply(ConvertSegments{To: outline.OpLineTo}))
	assert.Equal(t, [][]string{{"M 0,0", "L 100,0", "L 200,0"}}, coords(s.Contours()))
	err := s.Apply(ConvertSegments{To: outline.OpClose})
	assert.True(t, errors.Is(err, ErrRejected))
}

// --- Clipboard -------------------------------------------------------------

func TestClipboardNeverDuplicatesEndpoints(t *testing.T) {
	s := load(t, "M 0 0 L 100 0 Q 150 -50 200 0 L 300 0 M 0 -200 L 50 -200")
	sel := outline.Selection{}
	for _, p := range outline.AllPoints(s.Contours()) {
		if (p.Y <= 50 && p.X <= 200) || (p.X == 0 && p.Y == 200) {
			sel.AddPoint(p.ID)
		}
	}
	cb := ComputeClipboard(s.Contours(), sel)
	require.Len(t, cb.Segments, 2)
	assert.Equal(t, outline.OpQuadTo, cb.Segments[1].Op)
	require.Len(t, cb.Points, 1)
	assert.Equal(t, 0.0, cb.Points[0].X)
	assert.Equal(t, 200.0, cb.Points[0].Y)
	endpoints := make(map[outline.PointID]bool)
	for _, seg := range cb.Segments {
		endpoints[seg.Start.ID], endpoints[seg.End.ID] = true, true
	}
	for _, p := range cb.Points {
		assert.False(t, endpoints[p.ID], "loose point %s is a segment end point", p.ID)
	}
}

func TestClipboardCopiesLoneControlPoint(t *testing.T) {
	s := load(t, "M 0 0 Q 50 -80 100 0")
	ctrl := pointAt(t, s, 50, 80)
	cb := ComputeClipboard(s.Contours(), outline.NewSelection(ctrl))
	assert.Empty(t, cb.Segments)
	require.Len(t, cb.Points, 1)
	assert.Equal(t, ClipPoint{ID: ctrl, X: 50, Y: 80}, cb.Points[0])
	pasted := BuildPaste(cb, 5, 5, s.IDs())
	require.Len(t, pasted, 1)
	assert.Equal(t, []string{"M 55,85"}, coords(pasted)[0])
}

func TestClosingCurveSharesStartPoint(t *testing.T) {
	s := load(t, "M 0 0 L 100 0 L 100 -100 Z")
	c := s.Contours()[0]
	first, last := pointAt(t, s, 0, 0), pointAt(t, s, 100, 100)
	key := outline.SegmentKey{Contour: c.ID, Start: last, End: first}
	require.NoError(t, s.Apply(SetSelection{Selection: outline.SegmentSelection(key)}))
	require.NoError(t, s.Apply(ConvertSegments{To: outline.OpCubicTo}))
	c = s.Contours()[0]
	end, ok := c.Commands[len(c.Commands)-2].End()
	require.True(t, ok)
	assert.Equal(t, first, end.ID)
	// moving the start point moves the end of the closing curve along
	require.NoError(t, s.Apply(ApplyTransform{
		Transform: geom.Translation(-10, 0),
		Selection: outline.NewSelection(first),
	}))
	c = s.Contours()[0]
	start, _ := c.Commands[0].End()
	end, _ = c.Commands[len(c.Commands)-2].End()
	assert.Equal(t, geom.V(-10, 0), geom.P(start))
	assert.Equal(t, geom.V(-10, 0), geom.P(end))
}

func TestPasteClosedContour(t *testing.T) {
	s := load(t, "M 0 0 L 100 0 Q 100 -100 0 -100 Z")
	require.NoError(t, s.Apply(SelectAll{}))
	cb := s.CopySelection()
	require.Len(t, cb.Segments, 3)
	pasted := BuildPaste(cb, 10, 0, s.IDs())
	require.Len(t, pasted, 1)
	assert.Equal(t, []string{"M 10,0", "L 110,0", "Q 110,100 10,100", "Z"}, coords(pasted)[0])
}

func TestPasteMergesNearlyCoincidentPoints(t *testing.T) {
	cb := Clipboard{Segments: []ClipSegment{
		{Op: outline.OpLineTo, Start: ClipPoint{X: 0, Y: 0}, End: ClipPoint{X: 10, Y: 0}},
		{Op: outline.OpLineTo, Start: ClipPoint{X: 10.0001, Y: 0}, End: ClipPoint{X: 20, Y: 0}},
		{Op: outline.OpLineTo, Start: ClipPoint{X: 50, Y: 0}, End: ClipPoint{X: 60, Y: 0}},
	}}
	pasted := BuildPaste(cb, 0, 0, nil)
	require.Len(t, pasted, 2)
	assert.Len(t, pasted[0].Points(), 3)
	assert.Len(t, pasted[1].Points(), 2)
}

func TestPasteReversesSegmentsAgainstWalk(t *testing.T) {
	// the cubic is stored from b to a, the walk starts at a
	cb := Clipboard{Segments: []ClipSegment{
		{Op: outline.OpLineTo, Start: ClipPoint{X: 0, Y: 0}, End: ClipPoint{X: 10, Y: 0}},
		{
			Op:       outline.OpCubicTo,
			Start:    ClipPoint{X: 30, Y: 0},
			Controls: []ClipPoint{{X: 25, Y: 5}, {X: 15, Y: 5}},
			End:      ClipPoint{X: 10, Y: 0},
		},
	}}
	pasted := BuildPaste(cb, 0, 0, nil)
	require.Len(t, pasted, 1)
	assert.Equal(t, []string{"M 0,0", "L 10,0", "C 15,5 25,5 30,0"}, coords(pasted)[0])
}

func TestPasteLoosePoints(t *testing.T) {
	cb := Clipboard{Points: []ClipPoint{{X: 1, Y: 2}, {X: 3, Y: 4}}}
	pasted := BuildPaste(cb, 1, 1, nil)
	require.Len(t, pasted, 1)
	assert.Equal(t, []string{"M 2,3", "L 4,5"}, coords(pasted)[0])
	//
	s := New()
	err := s.Apply(Paste{})
	assert.True(t, errors.Is(err, ErrRejected))
}

func TestCut(t *testing.T) {
	s := load(t, "M 0 0 L 100 0 L 200 0")
	sel := outline.NewSelection(pointAt(t, s, 100, 0), pointAt(t, s, 200, 0))
	require.NoError(t, s.Apply(SetSelection{Selection: sel}))
	require.NoError(t, s.Apply(Cut{}))
	assert.Len(t, s.Clipboard().Segments, 1)
	assert.Equal(t, [][]string{{"M 0,0"}}, coords(s.Contours()))
	label, ok := s.UndoLabel()
	assert.True(t, ok)
	assert.Equal(t, "Cut", label)
}

// --- Pen tool --------------------------------------------------------------

func TestPenDrawAndClose(t *testing.T) {
	s := New()
	require.NoError(t, s.Apply(SetToolMode{Mode: ToolPen}))
	for _, at := range []geom.Vec{geom.V(0, 0), geom.V(100, 0), geom.V(100, 100)} {
		require.NoError(t, s.Apply(AddPoint{At: at}))
	}
	id, ok := s.ActivePath()
	require.True(t, ok)
	require.NoError(t, s.Apply(ClosePath{}))
	assert.False(t, s.IsDrawing())
	cs := s.Contours()
	require.Len(t, cs, 1)
	assert.Equal(t, id, cs[0].ID)
	assert.Equal(t, []string{"M 0,0", "L 100,0", "L 100,100", "Z"}, coords(cs)[0])
	assert.True(t, errors.Is(s.Apply(ClosePath{}), ErrRejected))
	// a new click starts a new contour
	require.NoError(t, s.Apply(AddPoint{At: geom.V(5, 5)}))
	assert.Len(t, s.Contours(), 2)
	require.NoError(t, s.Apply(EndPath{}))
	assert.False(t, s.IsDrawing())
}

func TestConnectClosesContour(t *testing.T) {
	s := load(t, "M 0 0 L 100 0 L 100 -100")
	a, b := pointAt(t, s, 0, 0), pointAt(t, s, 100, 100)
	require.NoError(t, s.Apply(ConnectPoints{From: b, To: a}))
	assert.True(t, s.Contours()[0].IsClosed())
	assert.True(t, errors.Is(s.Apply(ConnectPoints{From: b, To: a}), ErrRejected), "closed contours have no ends")
}

func TestConnectMergesContours(t *testing.T) {
	s := load(t, "M 0 0 L 10 0 M 30 0 L 20 0")
	from, to := pointAt(t, s, 0, 0), pointAt(t, s, 20, 0)
	require.NoError(t, s.Apply(ConnectPoints{From: from, To: to}))
	cs := s.Contours()
	require.Len(t, cs, 1)
	assert.Equal(t, []string{"M 10,0", "L 0,0", "L 20,0", "L 30,0"}, coords(cs)[0])
	assert.Equal(t, 1, s.UndoDepth())
}

func TestConnectRejectsInnerPoints(t *testing.T) {
	s := load(t, "M 0 0 L 10 0 L 20 0")
	err := s.Apply(ConnectPoints{From: pointAt(t, s, 10, 0), To: pointAt(t, s, 20, 0)})
	assert.True(t, errors.Is(err, ErrRejected))
	err = s.Apply(ConnectPoints{From: 4711, To: pointAt(t, s, 20, 0)})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestExtendPath(t *testing.T) {
	s := load(t, "M 0 0 L 10 0")
	require.NoError(t, s.Apply(ExtendPath{From: pointAt(t, s, 10, 0), At: geom.V(20, 5)}))
	assert.True(t, s.IsDrawing())
	require.NoError(t, s.Apply(AddPoint{At: geom.V(30, 5)}))
	assert.Equal(t, [][]string{{"M 0,0", "L 10,0", "L 20,5", "L 30,5"}}, coords(s.Contours()))
	//
	require.NoError(t, s.Apply(ExtendPath{From: pointAt(t, s, 0, 0), At: geom.V(-10, 0)}))
	assert.False(t, s.IsDrawing())
	assert.Equal(t, [][]string{{"M -10,0", "L 0,0", "L 10,0", "L 20,5", "L 30,5"}}, coords(s.Contours()))
}
