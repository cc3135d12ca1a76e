package editstate

import (
	"slices"

	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/outline"
)

// --- Moving and transforming -----------------------------------------------

func (s *State) movePointsLive(a MovePointsLive) error {
	for id := range a.Delta {
		if _, ok := outline.Find(s.contours, id); !ok {
			return notFound(a, "no point %s", id)
		}
	}
	if len(a.Delta) == 0 {
		return nil
	}
	outline.UpdatePoints(s.contours, func(p outline.Point) (outline.Point, bool) {
		d, ok := a.Delta[p.ID]
		if !ok {
			return p, false
		}
		return p.Moved(d.X, d.Y), true
	})
	s.dirty = true
	return nil
}

func (s *State) transformPointsLive(a TransformPointsLive) error {
	for id := range a.Positions {
		if _, ok := outline.Find(s.contours, id); !ok {
			return notFound(a, "no point %s", id)
		}
	}
	if len(a.Positions) == 0 {
		return nil
	}
	outline.UpdatePoints(s.contours, func(p outline.Point) (outline.Point, bool) {
		at, ok := a.Positions[p.ID]
		if !ok {
			return p, false
		}
		return p.At(at.X, at.Y), true
	})
	s.dirty = true
	return nil
}

func (s *State) applyTransform(a ApplyTransform) {
	if a.Transform.IsIdentity() {
		return
	}
	ids := geom.ExpandSelection(s.contours, a.Selection)
	if len(ids) == 0 {
		return
	}
	before := s.snapshot()
	n := outline.UpdatePoints(s.contours, func(p outline.Point) (outline.Point, bool) {
		if _, ok := ids[p.ID]; !ok {
			return p, false
		}
		q := a.Transform.Apply(geom.P(p))
		return p.At(q.X, q.Y), true
	})
	if n == 0 {
		return
	}
	s.commit("Transform points", before)
}

// --- Deleting --------------------------------------------------------------

func (s *State) deleteSelection(label string) {
	del := s.selection.EndpointIDs()
	if len(del) == 0 {
		return
	}
	before := s.snapshot()
	out := make([]outline.Contour, 0, len(s.contours))
	changed := false
	for _, c := range s.contours {
		nc, ch := deletePoints(c, del)
		changed = changed || ch
		if nc.IsEmpty() {
			tracer().Debugf("contour %s dropped after deletion", c.ID)
			continue
		}
		out = append(out, nc)
	}
	if !changed {
		return
	}
	s.contours = out
	s.selection = outline.Selection{}
	s.endDrawing()
	s.commit(label, before)
}

// minClosedOnCurve is the number of on-curve points a contour needs to keep
// its Close after points have been deleted from it.
const minClosedOnCurve = 3

// deletePoints removes every command of c holding a point in del. If the
// MoveTo is removed, the end point of the next surviving command starts the
// contour instead.
func deletePoints(c outline.Contour, del map[outline.PointID]struct{}) (outline.Contour, bool) {
	hit := func(cmd outline.Command) bool {
		for _, p := range cmd.Points() {
			if _, ok := del[p.ID]; ok {
				return true
			}
		}
		return false
	}
	cmds := make([]outline.Command, 0, len(c.Commands))
	movedStart := false
	for _, cmd := range c.Commands {
		if cmd.Op != outline.OpClose && hit(cmd) {
			movedStart = movedStart || cmd.Op == outline.OpMoveTo
			continue
		}
		cmds = append(cmds, cmd)
	}
	if len(cmds) == len(c.Commands) {
		return c, false
	}
	if movedStart {
		for len(cmds) > 0 {
			if p, ok := cmds[0].End(); ok {
				cmds[0] = outline.MoveTo(p)
				break
			}
			cmds = cmds[1:]
		}
	}
	nc := outline.Contour{ID: c.ID, Commands: cmds}
	if on := len(nc.OnCurvePoints()); on == 0 {
		nc.Commands = nil
	} else if nc.IsClosed() && on < minClosedOnCurve {
		nc.Commands = nc.Commands[:len(nc.Commands)-1]
	}
	return nc, true
}

// --- Converting segments ---------------------------------------------------

func (s *State) convertSegments(a ConvertSegments) error {
	switch a.To {
	case outline.OpLineTo, outline.OpQuadTo, outline.OpCubicTo:
	default:
		return rejected(a, "cannot convert segments to %s", a.To)
	}
	before := s.snapshot()
	changed := false
	for ci := range s.contours {
		c := &s.contours[ci]
		segs := c.Segments()
		// back to front, so that command indices of earlier segments stay valid
		for k := len(segs) - 1; k >= 0; k-- {
			seg := segs[k]
			if !geom.FullySelected(s.selection, seg) {
				continue
			}
			switch {
			case a.To == outline.OpLineTo && !seg.IsLine():
				c.Commands = straighten(c.Commands, seg)
				changed = true
			case a.To != outline.OpLineTo && seg.IsLine():
				c.Commands = s.curve(c.Commands, seg, a.To)
				changed = true
			}
		}
	}
	if !changed {
		return nil
	}
	label := "Convert to curve"
	if a.To == outline.OpLineTo {
		label = "Convert to line"
	}
	s.commit(label, before)
	return nil
}

// curve replaces a line segment by a Bézier with default control points:
// the midpoint for quadratics, the 1/3 and 2/3 points for cubics. A closing
// segment is made explicit by inserting the curve before the Close; the
// curve ends on the contour's start point.
func (s *State) curve(cmds []outline.Command, seg outline.Segment, to outline.Op) []outline.Command {
	a, b := geom.P(seg.Start), geom.P(seg.End)
	ctrl := func(t float64) outline.Point {
		v := a.Lerp(b, t)
		return outline.Point{ID: s.ids.Point(), X: v.X, Y: v.Y}
	}
	var cmd outline.Command
	if to == outline.OpQuadTo {
		cmd = outline.QuadTo(ctrl(0.5), seg.End)
	} else {
		cmd = outline.CubicTo(ctrl(1.0/3.0), ctrl(2.0/3.0), seg.End)
	}
	if seg.Closing {
		return slices.Insert(cmds, seg.Command, cmd)
	}
	cmds[seg.Command] = cmd
	return cmds
}

// straighten replaces a curve segment by a line. A curve explicitly closing
// the contour is removed, leaving the closure to the Close command.
func straighten(cmds []outline.Command, seg outline.Segment) []outline.Command {
	k := seg.Command
	if k+1 < len(cmds) && cmds[k+1].Op == outline.OpClose && seg.End.ID == cmds[0].Pts[0].ID {
		return slices.Delete(cmds, k, k+1)
	}
	cmds[k] = outline.LineTo(seg.End)
	return cmds
}
