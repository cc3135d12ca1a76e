package editstate

import (
	"slices"

	"github.com/npillmayer/glyphedit/outline"
)

func (s *State) newPoint(x, y float64) outline.Point {
	return outline.Pt(s.ids.Point(), x, y)
}

func (s *State) addPoint(a AddPoint) {
	before := s.snapshot()
	p := s.newPoint(a.At.X, a.At.Y)
	ci := -1
	if id, ok := s.ActivePath(); ok {
		ci = outline.IndexOf(s.contours, id)
	}
	if ci >= 0 && !s.contours[ci].IsClosed() {
		s.contours[ci].Commands = append(s.contours[ci].Commands, outline.LineTo(p))
	} else {
		c := outline.NewContour(s.ids.Contour(), outline.MoveTo(p))
		s.contours = append(s.contours, c)
		s.activePath, s.drawing = c.ID, true
	}
	s.selection = outline.NewSelection(p.ID)
	s.commit("Add point", before)
}

func (s *State) closePath(a ClosePath) error {
	id, ok := s.ActivePath()
	if !ok {
		return rejected(a, "no path is being drawn")
	}
	ci := outline.IndexOf(s.contours, id)
	if ci < 0 {
		return notFound(a, "no contour %s", id)
	}
	c := s.contours[ci]
	if c.IsClosed() || len(c.OnCurvePoints()) < 2 {
		return rejected(a, "contour %s cannot be closed", id)
	}
	before := s.snapshot()
	s.contours[ci].Commands = append(s.contours[ci].Commands, outline.Close())
	s.endDrawing()
	s.commit("Close path", before)
	return nil
}

// openEnd locates an end point of an open contour. atStart tells whether id
// is the contour's first on-curve point.
func openEnd(cs []outline.Contour, id outline.PointID) (ci int, atStart bool, ok bool) {
	loc, found := outline.Find(cs, id)
	if !found {
		return -1, false, false
	}
	c := cs[loc.Contour]
	if c.IsClosed() {
		return loc.Contour, false, false
	}
	first, last, _ := c.Endpoints()
	switch id {
	case first.ID:
		return loc.Contour, true, true
	case last.ID:
		return loc.Contour, false, true
	}
	return loc.Contour, false, false
}

func (s *State) connectPoints(a ConnectPoints) error {
	for _, id := range []outline.PointID{a.From, a.To} {
		if _, ok := outline.Find(s.contours, id); !ok {
			return notFound(a, "no point %s", id)
		}
	}
	fi, fromStart, ok1 := openEnd(s.contours, a.From)
	ti, toStart, ok2 := openEnd(s.contours, a.To)
	if !ok1 || !ok2 || a.From == a.To {
		return rejected(a, "%s and %s are not two end points of open contours", a.From, a.To)
	}
	before := s.snapshot()
	if fi == ti {
		c := &s.contours[fi]
		if len(c.OnCurvePoints()) < 2 {
			return rejected(a, "contour %s is too short to close", c.ID)
		}
		c.Commands = append(c.Commands, outline.Close())
		tracer().Debugf("closed contour %s by connecting %s to %s", c.ID, a.From, a.To)
	} else {
		// orient: From becomes the last point of the first contour, To the first
		// point of the second one
		head, tail := s.contours[fi], s.contours[ti]
		if fromStart {
			head = head.Reversed()
		}
		if !toStart {
			tail = tail.Reversed()
		}
		to := tail.Commands[0].Pts[0]
		merged := outline.Contour{ID: head.ID, Commands: slices.Clone(head.Commands)}
		merged.Commands = append(merged.Commands, outline.LineTo(to))
		merged.Commands = append(merged.Commands, tail.Commands[1:]...)
		s.contours[fi] = merged
		s.contours = slices.Delete(s.contours, ti, ti+1)
		tracer().Debugf("merged contour %s into %s", tail.ID, head.ID)
	}
	s.selection = outline.NewSelection(a.From, a.To)
	s.endDrawing()
	s.commit("Connect points", before)
	return nil
}

func (s *State) extendPath(a ExtendPath) error {
	if _, ok := outline.Find(s.contours, a.From); !ok {
		return notFound(a, "no point %s", a.From)
	}
	ci, atStart, ok := openEnd(s.contours, a.From)
	if !ok {
		return rejected(a, "%s is not an end point of an open contour", a.From)
	}
	before := s.snapshot()
	p := s.newPoint(a.At.X, a.At.Y)
	c := &s.contours[ci]
	if atStart {
		from := c.Commands[0].Pts[0]
		c.Commands[0] = outline.LineTo(from)
		c.Commands = slices.Insert(c.Commands, 0, outline.MoveTo(p))
		s.endDrawing()
	} else {
		c.Commands = append(c.Commands, outline.LineTo(p))
		s.activePath, s.drawing = c.ID, true
	}
	s.selection = outline.NewSelection(p.ID)
	s.commit("Extend path", before)
	return nil
}
