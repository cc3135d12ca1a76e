package outline

import "fmt"

// PointID identifies a point. Identifiers are stable across point movement and
// are replaced when a point is deleted and recreated.
type PointID uint64

// ContourID identifies a contour.
type ContourID uint64

// NoPoint is the zero PointID. It is never issued by an IDSource.
const NoPoint PointID = 0

func (id PointID) String() string {
	return fmt.Sprintf("p%d", uint64(id))
}

func (id ContourID) String() string {
	return fmt.Sprintf("c%d", uint64(id))
}

// IDSource issues fresh point and contour identifiers. An editor owns exactly
// one IDSource; every decode, paste or point recreation draws from it.
// IDSource is not safe for concurrent use.
type IDSource struct {
	next uint64
}

// NewIDSource creates an identifier source starting after 0.
func NewIDSource() *IDSource {
	return &IDSource{}
}

// Point returns a fresh point identifier.
func (src *IDSource) Point() PointID {
	src.next++
	return PointID(src.next)
}

// Contour returns a fresh contour identifier.
func (src *IDSource) Contour() ContourID {
	src.next++
	return ContourID(src.next)
}

// Observe makes sure ids issued later will not collide with id.
// It is used when contours built elsewhere are adopted by an editor.
func (src *IDSource) Observe(id uint64) {
	if id > src.next {
		src.next = id
	}
}

// --- Points ----------------------------------------------------------------

// PointKind tells on-curve points from Bézier control points.
type PointKind uint8

const (
	OnCurve           PointKind = iota // the outline passes through this point
	OffCurveQuadratic                  // control point of a quadratic Bézier
	OffCurveCubic                      // control point of a cubic Bézier
)

func (k PointKind) String() string {
	switch k {
	case OnCurve:
		return "on"
	case OffCurveQuadratic:
		return "quad-ctrl"
	case OffCurveCubic:
		return "cubic-ctrl"
	}
	return "unknown"
}

// Point is a point of an outline in font design units (Y up).
type Point struct {
	ID   PointID
	X, Y float64
	Kind PointKind
}

// Pt creates an on-curve point.
func Pt(id PointID, x, y float64) Point {
	return Point{ID: id, X: x, Y: y, Kind: OnCurve}
}

// IsOnCurve reports whether the outline passes through p.
func (p Point) IsOnCurve() bool {
	return p.Kind == OnCurve
}

// Moved returns a copy of p displaced by (dx, dy). The identifier is kept.
func (p Point) Moved(dx, dy float64) Point {
	p.X += dx
	p.Y += dy
	return p
}

// At returns a copy of p positioned at (x, y). The identifier is kept.
func (p Point) At(x, y float64) Point {
	p.X, p.Y = x, y
	return p
}

func (p Point) String() string {
	return fmt.Sprintf("%s(%g,%g)", p.ID, p.X, p.Y)
}
