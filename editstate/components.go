package editstate

import (
	"slices"

	"github.com/npillmayer/glyphedit/outline"
)

// Components returns a deep copy of the component tree.
func (s *State) Components() []outline.Component {
	return outline.CloneComponents(s.components)
}

// ActiveComponent returns the path of the component being edited or moved.
func (s *State) ActiveComponent() (outline.ComponentPath, bool) {
	return slices.Clone(s.compPath), len(s.compPath) > 0
}

// IsEditingComponent reports whether the live buffer holds the outline of an
// unlocked component instead of the glyph's own contours.
func (s *State) IsEditingComponent() bool { return s.compEditing }

func (s *State) setComponents(comps []outline.Component) {
	s.leaveComponent(false)
	s.components = outline.CloneComponents(comps)
}

func (s *State) setActiveComponent(a SetActiveComponent) error {
	if len(a.Path) == 0 {
		s.leaveComponent(true)
		return nil
	}
	comp, ok := outline.ComponentAt(s.components, a.Path)
	if !ok {
		return notFound(a, "no component at %v", a.Path)
	}
	locked := comp.Locked
	s.leaveComponent(true)
	// leaving may have rewritten the tree, so look up again
	comp, _ = outline.ComponentAt(s.components, a.Path)
	s.compPath = slices.Clone(a.Path)
	if locked {
		return nil
	}
	dx, dy, _ := outline.AccumulatedOffset(s.components, a.Path)
	s.compStash = s.contours
	s.compEditing = true
	s.contours = outline.Translated(comp.Contours, dx, dy)
	s.compEntry = outline.CloneAll(s.contours)
	s.ids.Observe(outline.HighestID(s.contours))
	s.selection = outline.Selection{}
	s.undo, s.redo = nil, nil
	s.endDrawing()
	tracer().Infof("editing outline of component %s at %v", comp.TargetID, a.Path)
	return nil
}

// leaveComponent ends component editing. With writeBack set, edits to an
// unlocked component's outline are stored in every instance of the same
// target, and the target is recorded as edited.
func (s *State) leaveComponent(writeBack bool) {
	defer func() { s.compPath = nil }()
	if !s.compEditing {
		return
	}
	comp, ok := outline.ComponentAt(s.components, s.compPath)
	if writeBack && ok && !sameContours(s.contours, s.compEntry) {
		dx, dy, _ := outline.AccumulatedOffset(s.components, s.compPath)
		local := outline.Translated(s.contours, -dx, -dy)
		target := comp.TargetID
		n := 0
		outline.WalkComponents(s.components, func(_ outline.ComponentPath, c *outline.Component) bool {
			if c.TargetID == target {
				c.Contours = outline.CloneAll(local)
				n++
			}
			return true
		})
		s.edited[target] = struct{}{}
		s.dirty = true
		tracer().Infof("wrote outline of %s back to %d component instances", target, n)
	}
	s.contours = s.compStash
	s.compStash, s.compEntry = nil, nil
	s.compEditing = false
	s.selection = outline.Selection{}
	s.undo, s.redo = nil, nil
	s.endDrawing()
}

func sameContours(a, b []outline.Contour) bool {
	return slices.EqualFunc(a, b, func(x, y outline.Contour) bool {
		return x.ID == y.ID && slices.Equal(x.Commands, y.Commands)
	})
}

func (s *State) moveComponentLive(a MoveComponentLive) error {
	comp, ok := outline.ComponentAt(s.components, a.Path)
	if !ok {
		return notFound(a, "no component at %v", a.Path)
	}
	if s.compEditing && slices.Equal(s.compPath, a.Path) {
		return rejected(a, "component at %v is being edited", a.Path)
	}
	comp.XOffset += a.DX
	comp.YOffset += a.DY
	s.dirty = true
	return nil
}

func (s *State) setComponentLocked(a SetComponentLocked) error {
	if _, ok := outline.ComponentAt(s.components, a.Path); !ok {
		return notFound(a, "no component at %v", a.Path)
	}
	if s.compEditing && slices.Equal(s.compPath, a.Path) {
		s.leaveComponent(true)
	}
	comp, _ := outline.ComponentAt(s.components, a.Path)
	comp.Locked = a.Locked
	return nil
}
