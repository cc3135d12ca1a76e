package outline

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
)

// Component is a node of a composite glyph: a reference to another glyph's
// outline, positioned by an offset, possibly composite itself.
//
// Locked components may only be moved as a whole. Unlocked components allow
// editing the referenced outline directly; such edits belong to the referenced
// glyph, not to the composite.
type Component struct {
	TargetID      string
	XOffset       float64
	YOffset       float64
	Contours      []Contour // resolved outline of TargetID, empty for pure composites
	IsComposite   bool
	SubComponents []Component
	Locked        bool
	NaturalXMin   float64
	NaturalYMin   float64
}

// ComponentPath addresses a node in a component tree by child indices,
// starting at the top-level list.
type ComponentPath []int

// ComponentAt returns a pointer to the component at path, or false if the
// path does not resolve.
func ComponentAt(comps []Component, path ComponentPath) (*Component, bool) {
	if len(path) == 0 {
		return nil, false
	}
	level := comps
	var node *Component
	for _, inx := range path {
		if inx < 0 || inx >= len(level) {
			return nil, false
		}
		node = &level[inx]
		level = node.SubComponents
	}
	return node, true
}

// AccumulatedOffset sums the offsets of every component along path. Offsets
// compose additively down the tree and are applied at read time only.
func AccumulatedOffset(comps []Component, path ComponentPath) (dx, dy float64, ok bool) {
	if len(path) == 0 {
		return 0, 0, false
	}
	level := comps
	for _, inx := range path {
		if inx < 0 || inx >= len(level) {
			return 0, 0, false
		}
		dx += level[inx].XOffset
		dy += level[inx].YOffset
		level = level[inx].SubComponents
	}
	return dx, dy, true
}

// Flatten returns the contours of a component tree, each translated by its
// accumulated offset. The result is a fresh copy, suitable for rendering.
func Flatten(comps []Component) []Contour {
	var out []Contour
	var walk func([]Component, float64, float64)
	walk = func(level []Component, dx, dy float64) {
		for _, c := range level {
			x, y := dx+c.XOffset, dy+c.YOffset
			out = append(out, Translated(c.Contours, x, y)...)
			walk(c.SubComponents, x, y)
		}
	}
	walk(comps, 0, 0)
	return out
}

// WalkComponents calls fn for every node of the tree in depth-first order.
// Returning false from fn stops the descent into that node's children.
func WalkComponents(comps []Component, fn func(path ComponentPath, c *Component) bool) {
	var walk func([]Component, ComponentPath)
	walk = func(level []Component, prefix ComponentPath) {
		for i := range level {
			path := append(append(ComponentPath{}, prefix...), i)
			if fn(path, &level[i]) {
				walk(level[i].SubComponents, path)
			}
		}
	}
	walk(comps, nil)
}

// CloneComponents returns a deep copy of a component tree.
func CloneComponents(comps []Component) []Component {
	if comps == nil {
		return nil
	}
	var clone []Component
	if err := copier.CopyWithOption(&clone, &comps, copier.Option{DeepCopy: true}); err != nil {
		tracer().Errorf("cannot clone component tree: %v", err)
		return nil
	}
	return clone
}

// --- Assembly --------------------------------------------------------------

// ComponentRef is a reference from a composite glyph to another glyph.
type ComponentRef struct {
	TargetID string
	XOffset  float64
	YOffset  float64
}

// ResolvedGlyph is what a Resolver reports for a referenced glyph.
type ResolvedGlyph struct {
	Contours   []Contour
	Components []ComponentRef // non-empty for composite glyphs
	XMin, YMin float64        // natural bounding box origin
}

// Resolver supplies the outline of a referenced glyph. Fetching glyphs is the
// business of the host; package outline only assembles the tree.
type Resolver interface {
	Resolve(targetID string) (ResolvedGlyph, error)
}

// MaxComponentDepth bounds the nesting of composite glyphs. Deeper nesting is
// treated as a reference cycle.
const MaxComponentDepth = 16

// ErrComponentCycle is returned when component references nest too deeply.
var ErrComponentCycle = errors.New("component nesting too deep or cyclic")

// Assemble builds a component tree from references. Every node is locked
// initially.
func Assemble(refs []ComponentRef, r Resolver) ([]Component, error) {
	return assemble(refs, r, 0)
}

func assemble(refs []ComponentRef, r Resolver, depth int) ([]Component, error) {
	if depth >= MaxComponentDepth {
		return nil, ErrComponentCycle
	}
	comps := make([]Component, 0, len(refs))
	for _, ref := range refs {
		g, err := r.Resolve(ref.TargetID)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve component %q: %w", ref.TargetID, err)
		}
		sub, err := assemble(g.Components, r, depth+1)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("component %s at (%g,%g): %d contours, %d sub-components",
			ref.TargetID, ref.XOffset, ref.YOffset, len(g.Contours), len(sub))
		comps = append(comps, Component{
			TargetID:      ref.TargetID,
			XOffset:       ref.XOffset,
			YOffset:       ref.YOffset,
			Contours:      CloneAll(g.Contours),
			IsComposite:   len(g.Components) > 0,
			SubComponents: sub,
			Locked:        true,
			NaturalXMin:   g.XMin,
			NaturalYMin:   g.YMin,
		})
	}
	return comps, nil
}
