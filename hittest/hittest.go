/*
Package hittest answers "what is under the cursor" for glyph outlines.

All queries take a cursor position in screen space (pixels, Y down) and a
geom.View mapping font space to the screen. Tolerances are given in pixels
and are converted to font units with the view's scale, so hit areas keep
their on-screen size at every zoom level.

Ties are broken by traversal order: the first point or segment encountered
wins. Callers rely on stable contour and command ordering for this.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package hittest

import (
	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/outline"
)

// Tolerances are the screen-space distances (in pixels) used for hit-testing.
type Tolerances struct {
	HitRadius    float64 // point and segment hits
	Pad          float64 // padding of the selection box around the selection
	Handle       float64 // half side length of a resize handle's hit area
	RotateOffset float64 // distance of the rotation handle above the box
	RotateRadius float64 // radius of the rotation handle's hit area
}

// DefaultTolerances returns the tolerances used unless configured otherwise.
func DefaultTolerances() Tolerances {
	return Tolerances{
		HitRadius:    8,
		Pad:          8,
		Handle:       6,
		RotateOffset: 24,
		RotateRadius: 8,
	}
}

// --- Points and segments ---------------------------------------------------

// HitPoint returns the point nearest to the cursor, provided it lies within
// the hit radius. Distances are compared in font space.
func HitPoint(cs []outline.Contour, cursor geom.Vec, view geom.View, tol Tolerances) (outline.Point, bool) {
	f := view.ToFont(cursor)
	r := view.FontDistance(tol.HitRadius)
	best, bestSq := outline.Point{}, r*r
	found := false
	for _, p := range outline.AllPoints(cs) {
		d := f.DistSq(geom.P(p))
		if d < bestSq || (!found && d == bestSq) {
			best, bestSq, found = p, d, true
		}
	}
	return best, found
}

// HitSegment returns the segment nearest to the cursor, closing segments
// included, provided it lies within the hit radius.
func HitSegment(cs []outline.Contour, cursor geom.Vec, view geom.View, tol Tolerances) (outline.Segment, bool) {
	f := view.ToFont(cursor)
	best, bestDist := outline.Segment{}, view.FontDistance(tol.HitRadius)
	found := false
	for _, seg := range outline.AllSegments(cs) {
		d := geom.SegmentDistance(f, seg)
		if d < bestDist || (!found && d == bestDist) {
			best, bestDist, found = seg, d, true
		}
	}
	return best, found
}

// TargetKind tells what a Hit found.
type TargetKind uint8

const (
	Nothing TargetKind = iota
	PointTarget
	SegmentTarget
)

// Target is the result of Hit.
type Target struct {
	Kind    TargetKind
	Point   outline.Point   // valid for PointTarget
	Segment outline.Segment // valid for SegmentTarget
}

// Hit tests points first and segments second. A point within the hit radius is
// always preferred over any segment.
func Hit(cs []outline.Contour, cursor geom.Vec, view geom.View, tol Tolerances) Target {
	if p, ok := HitPoint(cs, cursor, view, tol); ok {
		return Target{Kind: PointTarget, Point: p}
	}
	if seg, ok := HitSegment(cs, cursor, view, tol); ok {
		return Target{Kind: SegmentTarget, Segment: seg}
	}
	return Target{}
}

// RubberBand selects every point, on-curve and control, whose screen position
// lies inside the rectangle spanned by screen positions a and b.
func RubberBand(cs []outline.Contour, a, b geom.Vec, view geom.View) outline.Selection {
	rect := geom.R(a, b)
	sel := outline.Selection{}
	for _, p := range outline.AllPoints(cs) {
		if rect.Contains(view.ToScreen(geom.P(p))) {
			sel.AddPoint(p.ID)
		}
	}
	return sel
}
