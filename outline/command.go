package outline

import (
	"fmt"
	"strings"
)

// Op is the type tag of a contour command.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpCubicTo
	OpClose
)

var opLetters = [...]string{"M", "L", "Q", "C", "Z"}

// Letter returns the interchange letter for an op.
func (op Op) Letter() string {
	if int(op) < len(opLetters) {
		return opLetters[op]
	}
	return "?"
}

// Arity returns the number of points a command with this op carries.
func (op Op) Arity() int {
	switch op {
	case OpMoveTo, OpLineTo:
		return 1
	case OpQuadTo:
		return 2
	case OpCubicTo:
		return 3
	}
	return 0
}

func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpQuadTo:
		return "QuadTo"
	case OpCubicTo:
		return "CubicTo"
	case OpClose:
		return "Close"
	}
	return "Op?"
}

// Command is one element of a contour. It is a closed tagged union: the Op
// determines how many entries of Pts are in use. The on-curve end point is
// always the last point in use; control points precede it.
//
// Command is a value type. Copying a command copies its points.
type Command struct {
	Op  Op
	Pts [3]Point
}

// MoveTo starts a contour at p.
func MoveTo(p Point) Command {
	p.Kind = OnCurve
	return Command{Op: OpMoveTo, Pts: [3]Point{p}}
}

// LineTo draws a straight line to p.
func LineTo(p Point) Command {
	p.Kind = OnCurve
	return Command{Op: OpLineTo, Pts: [3]Point{p}}
}

// QuadTo draws a quadratic Bézier with control point c to p.
func QuadTo(c, p Point) Command {
	c.Kind = OffCurveQuadratic
	p.Kind = OnCurve
	return Command{Op: OpQuadTo, Pts: [3]Point{c, p}}
}

// CubicTo draws a cubic Bézier with control points c1 and c2 to p.
func CubicTo(c1, c2, p Point) Command {
	c1.Kind = OffCurveCubic
	c2.Kind = OffCurveCubic
	p.Kind = OnCurve
	return Command{Op: OpCubicTo, Pts: [3]Point{c1, c2, p}}
}

// Close connects the last on-curve point of a contour back to its first one.
func Close() Command {
	return Command{Op: OpClose}
}

// Points returns a copy of the points of cmd in traversal order (controls
// first).
func (cmd Command) Points() []Point {
	pts := make([]Point, cmd.Op.Arity())
	copy(pts, cmd.Pts[:])
	return pts
}

// End returns the on-curve end point of cmd. Close has no end point.
func (cmd Command) End() (Point, bool) {
	n := cmd.Op.Arity()
	if n == 0 {
		return Point{}, false
	}
	return cmd.Pts[n-1], true
}

// Controls returns the off-curve points of cmd, which may be empty.
func (cmd Command) Controls() []Point {
	n := cmd.Op.Arity()
	if n <= 1 {
		return nil
	}
	ctrl := make([]Point, n-1)
	copy(ctrl, cmd.Pts[:n-1])
	return ctrl
}

// Contains reports whether any point of cmd has identifier id.
func (cmd Command) Contains(id PointID) bool {
	for i := range cmd.Op.Arity() {
		if cmd.Pts[i].ID == id {
			return true
		}
	}
	return false
}

func (cmd Command) String() string {
	if cmd.Op == OpClose {
		return "Z"
	}
	var sb strings.Builder
	sb.WriteString(cmd.Op.Letter())
	for i := range cmd.Op.Arity() {
		fmt.Fprintf(&sb, "(%g,%g)", cmd.Pts[i].X, cmd.Pts[i].Y)
	}
	return sb.String()
}
