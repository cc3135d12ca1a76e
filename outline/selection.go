package outline

import (
	"cmp"
	"maps"
	"slices"
)

// Selection is a set of selected points and a set of selected segments.
// A segment being selected does not imply its end points are selected;
// operations needing every touched point have to expand segments explicitly.
//
// The zero Selection is empty and ready to use.
type Selection struct {
	Points   map[PointID]struct{}
	Segments map[SegmentKey]struct{}
}

// NewSelection creates a selection holding the given points.
func NewSelection(ids ...PointID) Selection {
	sel := Selection{}
	for _, id := range ids {
		sel.AddPoint(id)
	}
	return sel
}

// SegmentSelection creates a selection holding the given segments.
func SegmentSelection(keys ...SegmentKey) Selection {
	sel := Selection{}
	for _, k := range keys {
		sel.AddSegment(k)
	}
	return sel
}

// IsEmpty reports whether nothing is selected.
func (sel Selection) IsEmpty() bool {
	return len(sel.Points) == 0 && len(sel.Segments) == 0
}

// HasPoint reports whether point id is selected.
func (sel Selection) HasPoint(id PointID) bool {
	_, ok := sel.Points[id]
	return ok
}

// HasSegment reports whether the segment with key k is selected.
func (sel Selection) HasSegment(k SegmentKey) bool {
	_, ok := sel.Segments[k]
	return ok
}

// AddPoint selects point id.
func (sel *Selection) AddPoint(id PointID) {
	if sel.Points == nil {
		sel.Points = make(map[PointID]struct{})
	}
	sel.Points[id] = struct{}{}
}

// RemovePoint deselects point id.
func (sel *Selection) RemovePoint(id PointID) {
	delete(sel.Points, id)
}

// TogglePoint flips the selection state of point id.
func (sel *Selection) TogglePoint(id PointID) {
	if sel.HasPoint(id) {
		sel.RemovePoint(id)
	} else {
		sel.AddPoint(id)
	}
}

// AddSegment selects the segment with key k.
func (sel *Selection) AddSegment(k SegmentKey) {
	if sel.Segments == nil {
		sel.Segments = make(map[SegmentKey]struct{})
	}
	sel.Segments[k] = struct{}{}
}

// ToggleSegment flips the selection state of segment k.
func (sel *Selection) ToggleSegment(k SegmentKey) {
	if sel.HasSegment(k) {
		delete(sel.Segments, k)
	} else {
		sel.AddSegment(k)
	}
}

// Union returns a new selection holding everything in sel and other.
func (sel Selection) Union(other Selection) Selection {
	u := sel.Clone()
	for id := range other.Points {
		u.AddPoint(id)
	}
	for k := range other.Segments {
		u.AddSegment(k)
	}
	return u
}

// Clone returns an independent copy of sel.
func (sel Selection) Clone() Selection {
	return Selection{
		Points:   maps.Clone(sel.Points),
		Segments: maps.Clone(sel.Segments),
	}
}

// PointIDs returns the selected point identifiers in ascending order.
func (sel Selection) PointIDs() []PointID {
	return slices.Sorted(maps.Keys(sel.Points))
}

// SegmentKeys returns the selected segment keys in a stable order.
func (sel Selection) SegmentKeys() []SegmentKey {
	keys := slices.Collect(maps.Keys(sel.Segments))
	slices.SortFunc(keys, func(a, b SegmentKey) int {
		return cmp.Or(
			cmp.Compare(a.Contour, b.Contour),
			cmp.Compare(a.Start, b.Start),
			cmp.Compare(a.End, b.End),
		)
	})
	return keys
}

// EndpointIDs returns the selected points plus the end points of every
// selected segment. Control points are not included.
func (sel Selection) EndpointIDs() map[PointID]struct{} {
	ids := maps.Clone(sel.Points)
	if ids == nil {
		ids = make(map[PointID]struct{})
	}
	for k := range sel.Segments {
		ids[k.Start] = struct{}{}
		ids[k.End] = struct{}{}
	}
	return ids
}

// Prune drops identifiers which no longer resolve in cs.
func (sel Selection) Prune(cs []Contour) Selection {
	live := make(map[PointID]struct{})
	for _, p := range AllPoints(cs) {
		live[p.ID] = struct{}{}
	}
	pruned := Selection{}
	for id := range sel.Points {
		if _, ok := live[id]; ok {
			pruned.AddPoint(id)
		}
	}
	for k := range sel.Segments {
		if _, _, ok := FindSegment(cs, k); ok {
			pruned.AddSegment(k)
		}
	}
	return pruned
}
