package outline

import "fmt"

// SegmentKey identifies a segment by its contour and its two on-curve end
// points. Segment identity is stable as long as both end point identifiers
// are unchanged, even if the segment's curve type or control points change.
type SegmentKey struct {
	Contour ContourID
	Start   PointID
	End     PointID
}

// String renders the key in the "contour:start:end" notation.
func (k SegmentKey) String() string {
	return fmt.Sprintf("%d:%d:%d", uint64(k.Contour), uint64(k.Start), uint64(k.End))
}

// Segment is the curve or line between two consecutive on-curve points.
// Segments are derived from contours and never stored.
type Segment struct {
	Key      SegmentKey
	Op       Op      // OpLineTo, OpQuadTo or OpCubicTo
	Start    Point   // on-curve start point
	Controls []Point // zero, one or two control points
	End      Point   // on-curve end point
	Command  int     // index of the command ending this segment (the Close for closing segments)
	Closing  bool    // segment from the last on-curve point back to the first
}

// Points returns start, controls and end of seg in order.
func (seg Segment) Points() []Point {
	pts := make([]Point, 0, 2+len(seg.Controls))
	pts = append(pts, seg.Start)
	pts = append(pts, seg.Controls...)
	return append(pts, seg.End)
}

// IsLine reports whether seg is a straight line.
func (seg Segment) IsLine() bool {
	return seg.Op == OpLineTo
}

// Segments derives the segments of c in traversal order. For closed contours
// with at least two on-curve points the closing segment comes last.
func (c Contour) Segments() []Segment {
	var segs []Segment
	var prev Point
	var first Point
	havePrev := false
	for k, cmd := range c.Commands {
		switch cmd.Op {
		case OpMoveTo:
			prev, first, havePrev = cmd.Pts[0], cmd.Pts[0], true
		case OpLineTo, OpQuadTo, OpCubicTo:
			end, _ := cmd.End()
			if havePrev {
				segs = append(segs, Segment{
					Key:      SegmentKey{Contour: c.ID, Start: prev.ID, End: end.ID},
					Op:       cmd.Op,
					Start:    prev,
					Controls: cmd.Controls(),
					End:      end,
					Command:  k,
				})
			}
			prev, havePrev = end, true
		case OpClose:
			if havePrev && len(segs) > 0 && prev.ID != first.ID {
				segs = append(segs, Segment{
					Key:     SegmentKey{Contour: c.ID, Start: prev.ID, End: first.ID},
					Op:      OpLineTo,
					Start:   prev,
					End:     first,
					Command: k,
					Closing: true,
				})
			}
		}
	}
	return segs
}

// AllSegments derives the segments of every contour in cs.
func AllSegments(cs []Contour) []Segment {
	var segs []Segment
	for _, c := range cs {
		segs = append(segs, c.Segments()...)
	}
	return segs
}

// FindSegment looks up a segment by key. It returns the index of the contour
// holding the segment, or false if the key does not resolve.
func FindSegment(cs []Contour, key SegmentKey) (Segment, int, bool) {
	ci := IndexOf(cs, key.Contour)
	if ci < 0 {
		return Segment{}, -1, false
	}
	for _, seg := range cs[ci].Segments() {
		if seg.Key == key {
			return seg, ci, true
		}
	}
	return Segment{}, -1, false
}
