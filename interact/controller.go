package interact

import (
	"errors"
	"math"

	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/hittest"
	"github.com/npillmayer/glyphedit/outline"
)

// DefaultDragThreshold is the distance in screen pixels a pressed pointer has
// to travel before a press turns into a drag.
const DefaultDragThreshold = 3.0

// DefaultPasteOffset is the displacement in font units applied to pasted
// contours.
const DefaultPasteOffset = 10.0

// Clipboard stores clipboard payloads between editors. session.Session
// implements it.
type Clipboard interface {
	Clipboard() editstate.Clipboard
	SetClipboard(editstate.Clipboard)
}

type localClipboard struct {
	data editstate.Clipboard
}

func (c *localClipboard) Clipboard() editstate.Clipboard       { return c.data.Clone() }
func (c *localClipboard) SetClipboard(data editstate.Clipboard) { c.data = data.Clone() }

// Controller dispatches pointer and key events of one editor.
type Controller struct {
	state     *editstate.State
	tol       hittest.Tolerances
	threshold float64
	offset    float64
	clipboard Clipboard
	g         *gesture // nil while no pointer button is pressed
}

// Option configures a Controller.
type Option func(*Controller)

// WithTolerances sets the hit-testing tolerances.
func WithTolerances(tol hittest.Tolerances) Option {
	return func(c *Controller) { c.tol = tol }
}

// WithDragThreshold sets the drag threshold in screen pixels.
func WithDragThreshold(px float64) Option {
	return func(c *Controller) {
		if px >= 0 {
			c.threshold = px
		}
	}
}

// WithPasteOffset sets the displacement of pasted contours in font units.
func WithPasteOffset(d float64) Option {
	return func(c *Controller) { c.offset = d }
}

// WithClipboard makes the controller copy to and paste from cb instead of a
// private clipboard.
func WithClipboard(cb Clipboard) Option {
	return func(c *Controller) {
		if cb != nil {
			c.clipboard = cb
		}
	}
}

// New creates a controller driving state s.
func New(s *editstate.State, opts ...Option) *Controller {
	c := &Controller{
		state:     s,
		tol:       hittest.DefaultTolerances(),
		threshold: DefaultDragThreshold,
		offset:    DefaultPasteOffset,
		clipboard: &localClipboard{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the state driven by c.
func (c *Controller) State() *editstate.State { return c.state }

// Tolerances returns the hit-testing tolerances in use.
func (c *Controller) Tolerances() hittest.Tolerances { return c.tol }

// Gesture returns the name of the gesture in progress, or "" if no drag is
// active.
func (c *Controller) Gesture() string {
	if c.g == nil || !c.g.active {
		return ""
	}
	return c.g.kind.String()
}

// Band returns the screen rectangle of a rubber-band selection in progress.
func (c *Controller) Band() (geom.Rect, bool) {
	if c.g == nil || !c.g.active || c.g.kind != rubberBand {
		return geom.Rect{}, false
	}
	return geom.R(c.g.start, c.g.last), true
}

// --- Pointer events --------------------------------------------------------

// PointerDown starts a gesture. A press while another gesture is in progress
// finishes that gesture first.
func (c *Controller) PointerDown(ev PointerEvent) {
	if c.g != nil {
		c.Interrupt()
	}
	g := &gesture{start: ev.Pos(), last: ev.Pos(), button: ev.Button, mods: ev.Mods}
	c.g = g
	switch {
	case ev.Button == ButtonMiddle || c.state.ToolMode() == editstate.ToolHand:
		g.kind = panView
	case ev.Button != ButtonPrimary:
		c.g = nil
		return
	case c.state.ToolMode() == editstate.ToolPen:
		c.pressPen(g)
	default:
		c.pressSelect(g)
	}
	tracer().Debugf("pointer down at %v: %s", g.start, g.kind)
}

// PointerMove advances the gesture in progress. Moves without a pressed
// button are ignored.
func (c *Controller) PointerMove(ev PointerEvent) {
	g := c.g
	if g == nil {
		return
	}
	g.mods = ev.Mods
	pos := ev.Pos()
	if !g.active {
		if pos.Dist(g.start) < c.threshold {
			return
		}
		if !c.activate(g) {
			c.g = nil
			return
		}
	}
	c.drag(g, pos)
}

// PointerUp finishes the gesture in progress. A press which never turned into
// a drag is treated as a click.
func (c *Controller) PointerUp(ev PointerEvent) {
	g := c.g
	if g == nil {
		return
	}
	g.mods = ev.Mods
	if !g.active {
		if ev.Pos().Dist(g.start) >= c.threshold {
			c.PointerMove(ev)
			if c.g == nil {
				return
			}
		} else {
			c.g = nil
			c.click(g)
			return
		}
	}
	c.drag(g, ev.Pos())
	c.g = nil
	c.finish(g)
}

// Interrupt finishes a drag in progress as if the pointer was released at its
// last known position. A press which has not turned into a drag is dropped.
// Hosts call Interrupt on focus loss or similar external events.
func (c *Controller) Interrupt() {
	g := c.g
	c.g = nil
	if g == nil || !g.active {
		return
	}
	tracer().Infof("%s gesture interrupted", g.kind)
	c.finish(g)
}

// Wheel zooms the view by factor 1.1 per step, keeping the font position
// under the pointer in place. Negative steps zoom out.
func (c *Controller) Wheel(ev PointerEvent, steps float64) {
	if steps == 0 {
		return
	}
	c.apply(editstate.ZoomView{Factor: math.Pow(1.1, steps), Anchor: ev.Pos()})
}

// apply forwards an action to the state. Failures are traced and reported
// to the caller, which aborts whatever it was doing.
func (c *Controller) apply(a editstate.Action) bool {
	if err := c.state.Apply(a); err != nil {
		if errors.Is(err, editstate.ErrNotFound) {
			tracer().Errorf("aborting: %v", err)
		} else {
			tracer().Infof("%v", err)
		}
		return false
	}
	return true
}

// --- Helpers ---------------------------------------------------------------

func isOpenEndpoint(cs []outline.Contour, id outline.PointID) bool {
	loc, ok := outline.Find(cs, id)
	if !ok || cs[loc.Contour].IsClosed() {
		return false
	}
	first, last, ok := cs[loc.Contour].Endpoints()
	return ok && (id == first.ID || id == last.ID)
}

// componentAt returns the path of the last component, in depth-first order,
// whose own outline's bounding box contains font position f.
func componentAt(comps []outline.Component, f geom.Vec) (outline.ComponentPath, bool) {
	var hit outline.ComponentPath
	outline.WalkComponents(comps, func(path outline.ComponentPath, comp *outline.Component) bool {
		if len(comp.Contours) == 0 {
			return true
		}
		dx, dy, _ := outline.AccumulatedOffset(comps, path)
		if box, ok := geom.Bounds(outline.Translated(comp.Contours, dx, dy)); ok && box.Contains(f) {
			hit = path
		}
		return true
	})
	return hit, hit != nil
}
