package geom

import "github.com/npillmayer/glyphedit/outline"

// ExpandSelection returns the identifiers of every point touched by sel:
// the selected points themselves plus all points, on-curve and control, of any
// segment which is either selected directly or has both end points selected.
func ExpandSelection(cs []outline.Contour, sel outline.Selection) map[outline.PointID]struct{} {
	ids := make(map[outline.PointID]struct{}, len(sel.Points))
	for id := range sel.Points {
		ids[id] = struct{}{}
	}
	for _, c := range cs {
		for _, seg := range c.Segments() {
			if !FullySelected(sel, seg) {
				continue
			}
			for _, p := range seg.Points() {
				ids[p.ID] = struct{}{}
			}
		}
	}
	return ids
}

// FullySelected reports whether seg counts as selected: selected by key or with
// both end points selected.
func FullySelected(sel outline.Selection, seg outline.Segment) bool {
	return sel.HasSegment(seg.Key) || (sel.HasPoint(seg.Start.ID) && sel.HasPoint(seg.End.ID))
}

// SelectionBoundingBox returns the axis-aligned bounding box of all points
// touched by sel (see ExpandSelection). The second result is false if the
// selection touches no existing point.
func SelectionBoundingBox(cs []outline.Contour, sel outline.Selection) (Rect, bool) {
	ids := ExpandSelection(cs, sel)
	if len(ids) == 0 {
		return Rect{}, false
	}
	var box Rect
	found := false
	for _, p := range outline.AllPoints(cs) {
		if _, ok := ids[p.ID]; !ok {
			continue
		}
		if !found {
			box = Rect{Min: P(p), Max: P(p)}
			found = true
			continue
		}
		box = box.Extend(P(p))
	}
	return box, found
}

// Bounds returns the bounding box of all points of cs, controls included.
func Bounds(cs []outline.Contour) (Rect, bool) {
	pts := outline.AllPoints(cs)
	if len(pts) == 0 {
		return Rect{}, false
	}
	box := Rect{Min: P(pts[0]), Max: P(pts[0])}
	for _, p := range pts[1:] {
		box = box.Extend(P(p))
	}
	return box, true
}
