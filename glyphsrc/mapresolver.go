package glyphsrc

import (
	"fmt"
	"slices"

	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/glyphedit/pathcodec"
)

// MapResolver resolves component references from memory. Resolved glyphs are
// copies; changing them does not change the map.
type MapResolver map[string]outline.ResolvedGlyph

var _ outline.Resolver = MapResolver(nil)

// Resolve implements outline.Resolver.
func (m MapResolver) Resolve(targetID string) (outline.ResolvedGlyph, error) {
	g, ok := m[targetID]
	if !ok {
		return outline.ResolvedGlyph{}, fmt.Errorf("%w: %q", ErrNoGlyph, targetID)
	}
	return outline.ResolvedGlyph{
		Contours:   outline.CloneAll(g.Contours),
		Components: slices.Clone(g.Components),
		XMin:       g.XMin,
		YMin:       g.YMin,
	}, nil
}

// AddPath enters a glyph given by an interchange path string and optional
// component references. The natural origin is taken from the bounding box of
// the outline.
func (m MapResolver) AddPath(id, path string, refs ...outline.ComponentRef) {
	cs := pathcodec.Decode(path, nil)
	g := outline.ResolvedGlyph{Contours: cs, Components: refs}
	if box, ok := geom.Bounds(cs); ok {
		g.XMin, g.YMin = box.Min.X, box.Min.Y
	}
	m[id] = g
}

// AddRecord enters a glyph delivered by a Source under its name.
func (m MapResolver) AddRecord(g GlyphRecord) {
	m[g.Name] = outline.ResolvedGlyph{
		Contours: g.Contours(nil),
		XMin:     g.Metrics.BBox.Min.X,
		YMin:     g.Metrics.BBox.Min.Y,
	}
}
