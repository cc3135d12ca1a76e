package hittest

import (
	"math"

	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/outline"
)

// Handle identifies a transform handle of a selection box or image.
type Handle uint8

const (
	None Handle = iota
	Move
	TopLeft
	TopRight
	BottomLeft
	BottomRight
	TopMiddle
	BottomMiddle
	LeftMiddle
	RightMiddle
	Rotate
)

var handleNames = [...]string{"none", "move", "tl", "tr", "bl", "br", "tm", "bm", "lm", "rm", "rotate"}

func (h Handle) String() string {
	if int(h) < len(handleNames) {
		return handleNames[h]
	}
	return "handle?"
}

// IsResize reports whether h is one of the eight resize handles.
func (h Handle) IsResize() bool {
	return h >= TopLeft && h <= RightMiddle
}

// Anchor returns the handle opposite to h. Scaling with handle h keeps the
// anchor in place. Edge handles map to the opposite edge's midpoint.
func (h Handle) Anchor() Handle {
	switch h {
	case TopLeft:
		return BottomRight
	case TopRight:
		return BottomLeft
	case BottomLeft:
		return TopRight
	case BottomRight:
		return TopLeft
	case TopMiddle:
		return BottomMiddle
	case BottomMiddle:
		return TopMiddle
	case LeftMiddle:
		return RightMiddle
	case RightMiddle:
		return LeftMiddle
	}
	return None
}

// ScalesX reports whether dragging h changes the horizontal extent.
func (h Handle) ScalesX() bool {
	return h.IsResize() && h != TopMiddle && h != BottomMiddle
}

// ScalesY reports whether dragging h changes the vertical extent.
func (h Handle) ScalesY() bool {
	return h.IsResize() && h != LeftMiddle && h != RightMiddle
}

// HandlePos is the position of a handle in a Y-down frame.
type HandlePos struct {
	Handle Handle
	At     geom.Vec
}

// Layout returns the positions of the rotation handle and the eight resize
// handles of box, in the order they are tested. box is in a Y-down frame, so
// Min is the top left corner.
func Layout(box geom.Rect, tol Tolerances) []HandlePos {
	c := box.Center()
	return []HandlePos{
		{Rotate, geom.V(c.X, box.Min.Y-tol.RotateOffset)},
		{TopLeft, box.Min},
		{TopRight, geom.V(box.Max.X, box.Min.Y)},
		{BottomLeft, geom.V(box.Min.X, box.Max.Y)},
		{BottomRight, box.Max},
		{TopMiddle, geom.V(c.X, box.Min.Y)},
		{BottomMiddle, geom.V(c.X, box.Max.Y)},
		{LeftMiddle, geom.V(box.Min.X, c.Y)},
		{RightMiddle, geom.V(box.Max.X, c.Y)},
	}
}

// SelectionFrame maps a font-space bounding box to the padded screen box the
// transform handles sit on.
func SelectionFrame(box geom.Rect, view geom.View, tol Tolerances) geom.Rect {
	return geom.R(view.ToScreen(box.Min), view.ToScreen(box.Max)).Inset(tol.Pad)
}

// HitHandle tests the cursor against the handles of a selection whose
// font-space bounding box is box. Move is returned for positions inside the
// padded box but off all handles.
func HitHandle(box geom.Rect, cursor geom.Vec, view geom.View, tol Tolerances) Handle {
	return classify(SelectionFrame(box, view, tol), cursor, tol)
}

// ImageFrame returns the unrotated screen-space box of an image layer,
// centered at the origin of the image's local frame (Y down).
func ImageFrame(img *outline.ImageLayer, view geom.View) geom.Rect {
	hw, hh := img.HalfExtents()
	s := view.FontDistance(1)
	hw, hh = hw/s, hh/s
	return geom.R(geom.V(-hw, -hh), geom.V(hw, hh))
}

// ImageLocal maps a screen position into the local frame of an image layer:
// the offset from the image center, rotated back by the image's rotation and
// expressed in screen pixels with Y pointing down.
func ImageLocal(img *outline.ImageLayer, cursor geom.Vec, view geom.View) geom.Vec {
	f := view.ToFont(cursor)
	d := f.Sub(geom.V(img.CenterX, img.CenterY)).Rotate(-geom.Radians(img.RotationDeg))
	px := 1 / view.FontDistance(1)
	return geom.V(d.X*px, -d.Y*px)
}

// HitImageHandle tests the cursor against the handles of an image layer.
// The layout equals that of HitHandle, computed in the image's unrotated
// local frame. Image boxes are not padded.
func HitImageHandle(img *outline.ImageLayer, cursor geom.Vec, view geom.View, tol Tolerances) Handle {
	if img == nil {
		return None
	}
	return classify(ImageFrame(img, view), ImageLocal(img, cursor, view), tol)
}

func classify(box geom.Rect, p geom.Vec, tol Tolerances) Handle {
	for _, h := range Layout(box, tol) {
		if h.Handle == Rotate {
			if p.Dist(h.At) <= tol.RotateRadius {
				return Rotate
			}
			continue
		}
		if math.Abs(p.X-h.At.X) <= tol.Handle && math.Abs(p.Y-h.At.Y) <= tol.Handle {
			return h.Handle
		}
	}
	if box.Contains(p) {
		return Move
	}
	return None
}
