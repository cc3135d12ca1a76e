package interact

import (
	"maps"
	"math"
	"slices"

	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/hittest"
	"github.com/npillmayer/glyphedit/outline"
)

type gestureKind uint8

const (
	noGesture gestureKind = iota
	movePoints
	rubberBand
	panView
	scaleSelection
	rotateSelection
	connectPoints
	moveComponent
	moveImage
	scaleImage
	rotateImage
	penClick
)

var gestureNames = [...]string{"none", "move-points", "rubber-band", "pan",
	"scale", "rotate", "connect", "move-component", "move-image", "scale-image",
	"rotate-image", "pen"}

func (k gestureKind) String() string {
	if int(k) < len(gestureNames) {
		return gestureNames[k]
	}
	return "gesture?"
}

// rotationSnap is the angle increment of rotations with Shift held.
const rotationSnap = 15.0

// gesture is the state of one press-drag-release cycle.
type gesture struct {
	kind   gestureKind
	start  geom.Vec // screen position of the press
	last   geom.Vec // last screen position seen
	button Button
	mods   Mods
	active bool // drag threshold exceeded
	// select tool clicks
	target   hittest.Target
	collapse bool // a click without drag reduces the selection to target
	// point gestures
	before   []outline.Contour
	wasDirty bool
	ids      []outline.PointID
	origin   map[outline.PointID]geom.Vec
	applied  geom.Vec // font-space delta already sent to the state
	moved    bool
	handle   hittest.Handle
	box      geom.Rect // font-space selection box at drag start
	view     geom.View // view at drag start
	// connect
	from outline.PointID
	// components
	path       outline.ComponentPath
	compBefore []outline.Component
	// images
	img *outline.ImageLayer // placement at drag start
}

// fontDelta is the font-space displacement from the press to screen
// position pos, measured in the view of the drag start.
func (g *gesture) fontDelta(pos geom.Vec) geom.Vec {
	return g.view.ToFont(pos).Sub(g.view.ToFont(g.start))
}

// --- Press -----------------------------------------------------------------

func (c *Controller) pressSelect(g *gesture) {
	s := c.state
	cs, view := s.Contours(), s.View()
	g.view = view
	if p, ok := hittest.HitPoint(cs, g.start, view, c.tol); ok {
		g.target = hittest.Target{Kind: hittest.PointTarget, Point: p}
		c.pressPoint(g, p.ID)
		return
	}
	sel := s.Selection()
	box, hasBox := c.selectionBox(cs, sel)
	var h hittest.Handle
	if hasBox {
		h = hittest.HitHandle(box, g.start, view, c.tol)
		switch {
		case h.IsResize():
			g.kind, g.handle, g.box = scaleSelection, h, box
			return
		case h == hittest.Rotate:
			g.kind, g.handle, g.box = rotateSelection, h, box
			return
		}
	}
	if seg, ok := hittest.HitSegment(cs, g.start, view, c.tol); ok {
		g.target = hittest.Target{Kind: hittest.SegmentTarget, Segment: seg}
		c.pressSegment(g, seg.Key)
		return
	}
	if h == hittest.Move {
		g.kind = movePoints
		return
	}
	if !s.IsEditingComponent() {
		if path, ok := componentAt(s.Components(), view.ToFont(g.start)); ok {
			c.pressComponent(g, path)
			return
		}
	}
	if img, ok := s.FocusedImage(); ok {
		switch h := hittest.HitImageHandle(img, g.start, view, c.tol); {
		case h == hittest.Move:
			g.kind, g.img = moveImage, img
			return
		case h.IsResize():
			g.kind, g.handle, g.img = scaleImage, h, img
			return
		case h == hittest.Rotate:
			g.kind, g.handle, g.img = rotateImage, h, img
			return
		}
	}
	g.kind = rubberBand
}

// selectionBox returns the font-space box of a selection which is wide enough
// to be transformed.
func (c *Controller) selectionBox(cs []outline.Contour, sel outline.Selection) (geom.Rect, bool) {
	if len(geom.ExpandSelection(cs, sel)) < 2 {
		return geom.Rect{}, false
	}
	return geom.SelectionBoundingBox(cs, sel)
}

func (c *Controller) pressPoint(g *gesture, id outline.PointID) {
	sel := c.state.Selection()
	switch {
	case g.mods.Has(ModShift):
		sel.TogglePoint(id)
		c.apply(editstate.SetSelection{Selection: sel})
		if !sel.HasPoint(id) {
			return // deselected, nothing to drag
		}
	case sel.HasPoint(id):
		g.collapse = true
	default:
		c.apply(editstate.SetSelection{Selection: outline.NewSelection(id)})
	}
	g.kind = movePoints
}

func (c *Controller) pressSegment(g *gesture, key outline.SegmentKey) {
	sel := c.state.Selection()
	switch {
	case g.mods.Has(ModShift):
		sel.ToggleSegment(key)
		c.apply(editstate.SetSelection{Selection: sel})
		if !sel.HasSegment(key) {
			return
		}
	case sel.HasSegment(key):
		g.collapse = true
	default:
		c.apply(editstate.SetSelection{Selection: outline.SegmentSelection(key)})
	}
	g.kind = movePoints
}

func (c *Controller) pressComponent(g *gesture, path outline.ComponentPath) {
	if !c.apply(editstate.SetActiveComponent{Path: path}) {
		return
	}
	if c.state.IsEditingComponent() {
		return // unlocked: its outline is now in the live buffer
	}
	g.kind, g.path = moveComponent, path
}

func (c *Controller) pressPen(g *gesture) {
	s := c.state
	cs, view := s.Contours(), s.View()
	g.view = view
	g.kind = penClick
	if p, ok := hittest.HitPoint(cs, g.start, view, c.tol); ok {
		g.target = hittest.Target{Kind: hittest.PointTarget, Point: p}
		if isOpenEndpoint(cs, p.ID) {
			g.kind, g.from = connectPoints, p.ID
		}
	}
}

// --- Drag ------------------------------------------------------------------

// activate is called once the drag threshold is exceeded. It captures the
// start snapshot of the gesture. It returns false if the gesture has nothing
// to drag.
func (c *Controller) activate(g *gesture) bool {
	s := c.state
	switch g.kind {
	case noGesture:
		return false
	case movePoints, scaleSelection, rotateSelection:
		g.before = s.Contours()
		g.wasDirty = s.IsDirty()
		ids := geom.ExpandSelection(g.before, s.Selection())
		if len(ids) == 0 {
			return false
		}
		g.ids = slices.Sorted(maps.Keys(ids))
		g.origin = make(map[outline.PointID]geom.Vec, len(ids))
		for _, p := range outline.AllPoints(g.before) {
			if _, ok := ids[p.ID]; ok {
				g.origin[p.ID] = geom.P(p)
			}
		}
	case moveComponent:
		g.compBefore = s.Components()
	}
	g.active = true
	tracer().Debugf("%s gesture started", g.kind)
	return true
}

func (c *Controller) drag(g *gesture, pos geom.Vec) {
	prev := g.last
	g.last = pos
	switch g.kind {
	case movePoints:
		c.dragPoints(g, pos)
	case scaleSelection, rotateSelection:
		c.transformPoints(g, c.selectionTransform(g, pos))
	case panView:
		if d := pos.Sub(prev); !d.IsZero() {
			c.apply(editstate.PanView{DX: d.X, DY: d.Y})
		}
	case moveComponent:
		d := g.fontDelta(pos)
		step := d.Sub(g.applied)
		if step.IsZero() {
			return
		}
		if !c.apply(editstate.MoveComponentLive{Path: g.path, DX: step.X, DY: step.Y}) {
			c.abort(g)
			return
		}
		g.applied = d
	case moveImage, scaleImage, rotateImage:
		c.placeImage(g, c.imagePlacement(g, pos))
	}
}

// dragPoints positions every dragged point at its start position displaced
// by the font-space distance from the press to pos.
func (c *Controller) dragPoints(g *gesture, pos geom.Vec) {
	d := g.fontDelta(pos)
	if d == g.applied {
		return
	}
	at := make(map[outline.PointID]geom.Vec, len(g.ids))
	for _, id := range g.ids {
		at[id] = g.origin[id].Add(d)
	}
	if !c.apply(editstate.TransformPointsLive{Positions: at}) {
		c.abort(g)
		return
	}
	g.applied = d
}

// selectionTransform computes the transform of a scale or rotate gesture
// from the press position to pos.
func (c *Controller) selectionTransform(g *gesture, pos geom.Vec) geom.Affine {
	from, to := g.view.ToFont(g.start), g.view.ToFont(pos)
	if g.kind == rotateSelection {
		center := g.box.Center()
		deg := angleBetween(from.Sub(center), to.Sub(center))
		if g.mods.Has(ModShift) {
			deg = math.Round(deg/rotationSnap) * rotationSnap
		}
		return geom.RotationAbout(center, deg)
	}
	anchor := handleAt(g.box, g.handle.Anchor())
	sx, sy := 1.0, 1.0
	if g.handle.ScalesX() {
		sx = geom.SafeRatio(to.X-anchor.X, from.X-anchor.X)
	}
	if g.handle.ScalesY() {
		sy = geom.SafeRatio(to.Y-anchor.Y, from.Y-anchor.Y)
	}
	if g.mods.Has(ModShift) && g.handle.ScalesX() && g.handle.ScalesY() {
		if math.Abs(sx-1) > math.Abs(sy-1) {
			sy = sx
		} else {
			sx = sy
		}
	}
	return geom.ScalingAbout(anchor, sx, sy)
}

// transformPoints positions every dragged point at its start position mapped
// by t.
func (c *Controller) transformPoints(g *gesture, t geom.Affine) {
	pos := make(map[outline.PointID]geom.Vec, len(g.ids))
	for _, id := range g.ids {
		pos[id] = t.Apply(g.origin[id])
	}
	if !c.apply(editstate.TransformPointsLive{Positions: pos}) {
		c.abort(g)
		return
	}
	g.moved = !t.IsIdentity()
}

// angleBetween returns the counter-clockwise angle from a to b in degrees,
// in the range (-180, 180].
func angleBetween(a, b geom.Vec) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	return geom.Degrees(math.Atan2(a.X*b.Y-a.Y*b.X, a.Dot(b)))
}

// handleAt returns the font-space position of handle h on box. Font space is
// Y-up, so the top edge is at Max.Y.
func handleAt(box geom.Rect, h hittest.Handle) geom.Vec {
	c := box.Center()
	switch h {
	case hittest.TopLeft:
		return geom.V(box.Min.X, box.Max.Y)
	case hittest.TopRight:
		return box.Max
	case hittest.BottomLeft:
		return box.Min
	case hittest.BottomRight:
		return geom.V(box.Max.X, box.Min.Y)
	case hittest.TopMiddle:
		return geom.V(c.X, box.Max.Y)
	case hittest.BottomMiddle:
		return geom.V(c.X, box.Min.Y)
	case hittest.LeftMiddle:
		return geom.V(box.Min.X, c.Y)
	case hittest.RightMiddle:
		return geom.V(box.Max.X, c.Y)
	}
	return c
}

// --- Images ----------------------------------------------------------------

func (c *Controller) imagePlacement(g *gesture, pos geom.Vec) editstate.ImagePlacement {
	p := editstate.PlacementOf(g.img)
	switch g.kind {
	case moveImage:
		d := g.fontDelta(pos)
		p.CenterX += d.X
		p.CenterY += d.Y
	case rotateImage:
		center := geom.V(p.CenterX, p.CenterY)
		from, to := g.view.ToFont(g.start), g.view.ToFont(pos)
		deg := angleBetween(from.Sub(center), to.Sub(center))
		if g.mods.Has(ModShift) {
			deg = math.Round(deg/rotationSnap) * rotationSnap
		}
		p.RotationDeg += deg
	case scaleImage:
		// work in the image's unrotated local frame (screen pixels, Y down),
		// keeping the handle opposite to the dragged one in place
		from := hittest.ImageLocal(g.img, g.start, g.view)
		to := hittest.ImageLocal(g.img, pos, g.view)
		var anchor geom.Vec
		for _, hp := range hittest.Layout(hittest.ImageFrame(g.img, g.view), c.tol) {
			if hp.Handle == g.handle.Anchor() {
				anchor = hp.At
			}
		}
		fx, fy := 1.0, 1.0
		if g.handle.ScalesX() {
			fx = geom.SafeRatio(to.X-anchor.X, from.X-anchor.X)
		}
		if g.handle.ScalesY() {
			fy = geom.SafeRatio(to.Y-anchor.Y, from.Y-anchor.Y)
		}
		p.ScaleX *= fx
		p.ScaleY *= fy
		local := geom.V(anchor.X*(1-fx), anchor.Y*(1-fy))
		px := g.view.FontDistance(1)
		shift := geom.V(local.X*px, -local.Y*px).Rotate(geom.Radians(g.img.RotationDeg))
		p.CenterX += shift.X
		p.CenterY += shift.Y
	}
	return p
}

func (c *Controller) placeImage(g *gesture, p editstate.ImagePlacement) {
	if !c.apply(editstate.SetImageTransform{ID: g.img.ID, Placement: p}) {
		c.abort(g)
		return
	}
	g.moved = p != editstate.PlacementOf(g.img)
}

// --- Release ---------------------------------------------------------------

// finish ends an active drag with the matching commit. Gestures without net
// movement leave no history entry.
func (c *Controller) finish(g *gesture) {
	s := c.state
	switch g.kind {
	case movePoints:
		if g.applied.IsZero() {
			c.revert(g)
		} else {
			c.apply(editstate.CommitMove{Before: g.before})
		}
	case scaleSelection, rotateSelection:
		if g.moved {
			c.apply(editstate.CommitTransform{Before: g.before})
		} else {
			c.revert(g)
		}
	case moveComponent:
		if !g.applied.IsZero() {
			c.apply(editstate.CommitComponentMove{Before: g.compBefore})
		}
	case rubberBand:
		sel := hittest.RubberBand(s.Contours(), g.start, g.last, s.View())
		if g.mods.Has(ModShift) {
			sel = s.Selection().Union(sel)
		}
		c.apply(editstate.SetSelection{Selection: sel})
	case connectPoints:
		c.finishConnect(g)
	case penClick:
		c.penClick(g) // pen drags off a point place the point at the press position
	}
	tracer().Debugf("%s gesture finished", g.kind)
}

func (c *Controller) finishConnect(g *gesture) {
	s := c.state
	cs := s.Contours()
	if p, ok := hittest.HitPoint(cs, g.last, s.View(), c.tol); ok {
		if p.ID != g.from && isOpenEndpoint(cs, p.ID) {
			c.apply(editstate.ConnectPoints{From: g.from, To: p.ID})
		}
		return // dropped on an inner point or back on the start point
	}
	c.apply(editstate.ExtendPath{From: g.from, At: s.View().ToFont(g.last)})
}

// abort ends a gesture whose target vanished. Movement already applied is
// committed so no live change is left outside a live/commit pair.
func (c *Controller) abort(g *gesture) {
	tracer().Infof("%s gesture aborted", g.kind)
	if c.g == g {
		c.g = nil
	}
	c.finish(g)
	g.kind = noGesture
}

// cancel undoes the live changes of an active drag and drops the gesture.
func (c *Controller) cancel(g *gesture) {
	switch g.kind {
	case movePoints, scaleSelection, rotateSelection:
		c.revert(g)
	case moveComponent:
		if !g.applied.IsZero() {
			c.apply(editstate.MoveComponentLive{Path: g.path, DX: -g.applied.X, DY: -g.applied.Y})
		}
	case moveImage, scaleImage, rotateImage:
		c.placeImage(g, editstate.PlacementOf(g.img))
	}
	tracer().Debugf("%s gesture cancelled", g.kind)
}

// revert resets the dragged points to the start snapshot of g.
func (c *Controller) revert(g *gesture) {
	c.apply(editstate.RevertLive{Before: g.before, Dirty: g.wasDirty})
}

// --- Clicks ----------------------------------------------------------------

func (c *Controller) click(g *gesture) {
	s := c.state
	switch g.kind {
	case penClick, connectPoints:
		c.penClick(g)
	case movePoints:
		if g.collapse {
			switch g.target.Kind {
			case hittest.PointTarget:
				c.apply(editstate.SetSelection{Selection: outline.NewSelection(g.target.Point.ID)})
			case hittest.SegmentTarget:
				c.apply(editstate.SetSelection{Selection: outline.SegmentSelection(g.target.Segment.Key)})
			}
		}
	case rubberBand:
		if !g.mods.Has(ModShift) {
			c.apply(editstate.ClearSelection{})
		}
		if s.IsEditingComponent() {
			c.apply(editstate.SetActiveComponent{})
		}
	}
}

// penClick adds a point, or closes or connects the path being drawn when the
// click hits an existing point.
func (c *Controller) penClick(g *gesture) {
	s := c.state
	at := g.view.ToFont(g.start)
	if g.target.Kind != hittest.PointTarget {
		c.apply(editstate.AddPoint{At: at})
		return
	}
	id := g.target.Point.ID
	cs := s.Contours()
	if active, ok := s.ActivePath(); ok && s.IsDrawing() {
		if i := outline.IndexOf(cs, active); i >= 0 {
			first, last, _ := cs[i].Endpoints()
			switch {
			case id == first.ID && len(cs[i].OnCurvePoints()) > 1:
				c.apply(editstate.ClosePath{})
				return
			case id != last.ID && isOpenEndpoint(cs, id):
				c.apply(editstate.ConnectPoints{From: last.ID, To: id})
				return
			}
		}
	}
	if isOpenEndpoint(cs, id) {
		c.apply(editstate.SetSelection{Selection: outline.NewSelection(id)})
		return
	}
	c.apply(editstate.AddPoint{At: at})
}
