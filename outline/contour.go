package outline

import (
	"errors"
	"fmt"
)

// Contour is one continuous outline path, possibly closed.
// The first command must be a MoveTo; a Close, if present, must be last.
//
// Point identifiers are unique within a contour set, with one exception: a
// closed contour whose last curve returns to the start point ends on the
// MoveTo point itself, so both occurrences carry the same identifier. The
// point moves as one, and the segment key of the closing curve stays the
// same as the key of the closing line it replaced.
type Contour struct {
	ID       ContourID
	Commands []Command
}

// NewContour creates a contour from commands. The command slice is copied.
func NewContour(id ContourID, cmds ...Command) Contour {
	c := Contour{ID: id, Commands: make([]Command, len(cmds))}
	copy(c.Commands, cmds)
	return c
}

// IsClosed reports whether the last command of c is a Close.
func (c Contour) IsClosed() bool {
	n := len(c.Commands)
	return n > 0 && c.Commands[n-1].Op == OpClose
}

// IsEmpty reports whether c has no commands at all.
func (c Contour) IsEmpty() bool {
	return len(c.Commands) == 0
}

// Points enumerates all points of c, on-curve and control points, in traversal
// order.
func (c Contour) Points() []Point {
	pts := make([]Point, 0, len(c.Commands)*2)
	for _, cmd := range c.Commands {
		pts = append(pts, cmd.Pts[:cmd.Op.Arity()]...)
	}
	return pts
}

// OnCurvePoints enumerates the on-curve points of c in traversal order.
func (c Contour) OnCurvePoints() []Point {
	pts := make([]Point, 0, len(c.Commands))
	for _, cmd := range c.Commands {
		if p, ok := cmd.End(); ok {
			pts = append(pts, p)
		}
	}
	return pts
}

// Clone returns a deep copy of c. No point storage is shared between c and the
// clone.
func (c Contour) Clone() Contour {
	clone := Contour{ID: c.ID}
	if c.Commands != nil {
		clone.Commands = make([]Command, len(c.Commands))
		copy(clone.Commands, c.Commands)
	}
	return clone
}

// Endpoints returns the first and last on-curve points of an open contour.
func (c Contour) Endpoints() (first, last Point, ok bool) {
	on := c.OnCurvePoints()
	if len(on) == 0 {
		return Point{}, Point{}, false
	}
	return on[0], on[len(on)-1], true
}

// Reversed returns an open contour traversing the same points in the opposite
// direction. Control points swap order so curve shapes are preserved. For
// closed contours the closing segment is kept as the closing segment.
func (c Contour) Reversed() Contour {
	r := Contour{ID: c.ID}
	closed := c.IsClosed()
	cmds := c.Commands
	if closed {
		cmds = cmds[:len(cmds)-1]
	}
	if len(cmds) == 0 {
		return c.Clone()
	}
	last, _ := cmds[len(cmds)-1].End()
	r.Commands = append(r.Commands, MoveTo(last))
	for i := len(cmds) - 1; i > 0; i-- {
		prev, _ := cmds[i-1].End()
		cmd := cmds[i]
		switch cmd.Op {
		case OpLineTo:
			r.Commands = append(r.Commands, LineTo(prev))
		case OpQuadTo:
			r.Commands = append(r.Commands, QuadTo(cmd.Pts[0], prev))
		case OpCubicTo:
			r.Commands = append(r.Commands, CubicTo(cmd.Pts[1], cmd.Pts[0], prev))
		}
	}
	if closed {
		r.Commands = append(r.Commands, Close())
	}
	return r
}

// ErrMalformedContour is returned by Validate for structurally invalid contours.
var ErrMalformedContour = errors.New("malformed contour")

// Validate checks the structural rules of a contour: it must start with a
// MoveTo and may only end with a Close. Empty contours are valid.
func (c Contour) Validate() error {
	for i, cmd := range c.Commands {
		switch {
		case i == 0 && cmd.Op != OpMoveTo:
			return fmt.Errorf("%w: %s starts with %s", ErrMalformedContour, c.ID, cmd.Op)
		case i > 0 && cmd.Op == OpMoveTo:
			return fmt.Errorf("%w: %s has MoveTo at position %d", ErrMalformedContour, c.ID, i)
		case cmd.Op == OpClose && i != len(c.Commands)-1:
			return fmt.Errorf("%w: %s has Close at position %d", ErrMalformedContour, c.ID, i)
		}
	}
	return nil
}

// --- Contour sets ----------------------------------------------------------

// CloneAll deep-copies a contour set. The result shares no mutable storage with
// cs, which is what undo snapshots rely on.
func CloneAll(cs []Contour) []Contour {
	if cs == nil {
		return nil
	}
	clone := make([]Contour, len(cs))
	for i, c := range cs {
		clone[i] = c.Clone()
	}
	return clone
}

// AllPoints enumerates every point of every contour in traversal order.
func AllPoints(cs []Contour) []Point {
	var pts []Point
	for _, c := range cs {
		pts = append(pts, c.Points()...)
	}
	return pts
}

// Location addresses a point inside a contour set.
type Location struct {
	Contour int // index into the contour set
	Command int // index into the contour's commands
	Slot    int // index into the command's points
}

// Find looks up the location of the point with identifier id.
// The second return value is false if no such point exists.
func Find(cs []Contour, id PointID) (Location, bool) {
	for ci, c := range cs {
		for k, cmd := range c.Commands {
			for s := range cmd.Op.Arity() {
				if cmd.Pts[s].ID == id {
					return Location{Contour: ci, Command: k, Slot: s}, true
				}
			}
		}
	}
	return Location{}, false
}

// PointAt returns the point at loc. loc must have been produced by Find on
// the same contour set.
func PointAt(cs []Contour, loc Location) Point {
	return cs[loc.Contour].Commands[loc.Command].Pts[loc.Slot]
}

// FindPoint looks up a point by identifier.
func FindPoint(cs []Contour, id PointID) (Point, bool) {
	loc, ok := Find(cs, id)
	if !ok {
		return Point{}, false
	}
	return PointAt(cs, loc), true
}

// IndexOf returns the index of the contour with identifier id, or -1.
func IndexOf(cs []Contour, id ContourID) int {
	for i, c := range cs {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// UpdatePoints rewrites every point for which fn returns true in its second
// result. Identifiers and kinds are preserved regardless of what fn returns.
// It reports how many points were changed.
func UpdatePoints(cs []Contour, fn func(Point) (Point, bool)) int {
	n := 0
	for ci := range cs {
		cmds := cs[ci].Commands
		for k := range cmds {
			for s := range cmds[k].Op.Arity() {
				old := cmds[k].Pts[s]
				p, ok := fn(old)
				if !ok {
					continue
				}
				p.ID, p.Kind = old.ID, old.Kind
				cmds[k].Pts[s] = p
				n++
			}
		}
	}
	return n
}

// HighestID returns the largest identifier used in cs. Editors adopting
// contours from elsewhere use it to keep their IDSource collision-free.
func HighestID(cs []Contour) uint64 {
	var max uint64
	for _, c := range cs {
		if uint64(c.ID) > max {
			max = uint64(c.ID)
		}
		for _, p := range c.Points() {
			if uint64(p.ID) > max {
				max = uint64(p.ID)
			}
		}
	}
	return max
}

// Translated returns a deep copy of cs with every point displaced by (dx, dy).
func Translated(cs []Contour, dx, dy float64) []Contour {
	clone := CloneAll(cs)
	UpdatePoints(clone, func(p Point) (Point, bool) {
		return p.Moved(dx, dy), true
	})
	return clone
}
