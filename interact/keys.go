package interact

import (
	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/outline"
)

// NudgeStep is the distance in font units an arrow key moves the selection.
// Shift multiplies it by ten.
const NudgeStep = 1.0

// KeyDown handles a key press and reports whether the key was consumed.
// While the pointer is pressed only Escape is handled; it cancels the drag.
func (c *Controller) KeyDown(k Key, mods Mods) bool {
	tracer().Debugf("key %s %s", mods, k)
	if c.g != nil {
		if k != KeyEscape {
			return false
		}
		g := c.g
		c.g = nil
		if g.active {
			c.cancel(g)
		}
		return true
	}
	s := c.state
	ctrl := mods.Has(ModCtrl)
	switch {
	case k == KeyDelete || k == KeyBackspace:
		return c.apply(editstate.DeleteSelection{})
	case k == KeyEnter:
		if !s.IsDrawing() {
			return false
		}
		return c.apply(editstate.ClosePath{})
	case k == KeyEscape:
		switch {
		case s.IsDrawing():
			return c.apply(editstate.EndPath{})
		case s.IsEditingComponent():
			return c.apply(editstate.SetActiveComponent{})
		}
		return c.apply(editstate.ClearSelection{})
	case k == KeyLeft, k == KeyRight, k == KeyUp, k == KeyDown:
		return c.nudge(k, mods)
	case ctrl && k == KeyZ && mods.Has(ModShift), ctrl && k == KeyY:
		return c.apply(editstate.Redo{})
	case ctrl && k == KeyZ:
		return c.apply(editstate.Undo{})
	case ctrl && k == KeyA:
		return c.apply(editstate.SelectAll{})
	case ctrl && k == KeyC:
		return c.copy()
	case ctrl && k == KeyX:
		if !c.copy() {
			return false
		}
		return c.apply(editstate.Cut{})
	case ctrl && k == KeyV:
		return c.apply(editstate.Paste{Data: c.clipboard.Clipboard(), DX: c.offset, DY: -c.offset})
	}
	return false
}

// copy stores the selection in the clipboard. An empty selection leaves the
// clipboard untouched.
func (c *Controller) copy() bool {
	data := c.state.CopySelection()
	if data.IsEmpty() {
		return false
	}
	c.clipboard.SetClipboard(data)
	tracer().Debugf("copied %d segments and %d points", len(data.Segments), len(data.Points))
	return true
}

// nudge moves the selection by one step as a single undoable edit.
func (c *Controller) nudge(k Key, mods Mods) bool {
	s := c.state
	step := NudgeStep
	if mods.Has(ModShift) {
		step *= 10
	}
	var d geom.Vec
	switch k {
	case KeyLeft:
		d = geom.V(-step, 0)
	case KeyRight:
		d = geom.V(step, 0)
	case KeyUp:
		d = geom.V(0, step)
	case KeyDown:
		d = geom.V(0, -step)
	}
	before := s.Contours()
	ids := geom.ExpandSelection(before, s.Selection())
	if len(ids) == 0 {
		return false
	}
	delta := make(map[outline.PointID]geom.Vec, len(ids))
	for id := range ids {
		delta[id] = d
	}
	if !c.apply(editstate.MovePointsLive{Delta: delta}) {
		return false
	}
	return c.apply(editstate.CommitMove{Before: before})
}
