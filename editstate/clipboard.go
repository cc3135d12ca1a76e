package editstate

import (
	"math"
	"slices"

	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/outline"
)

// ClipPoint is a point of a clipboard payload. ID is the identifier of the
// source point; pasting never reuses it.
type ClipPoint struct {
	ID   outline.PointID `toml:"id" yaml:"id"`
	X, Y float64
}

// ClipSegment is a copied segment.
type ClipSegment struct {
	Op       outline.Op  `toml:"op" yaml:"op"`
	Start    ClipPoint   `toml:"start" yaml:"start"`
	Controls []ClipPoint `toml:"controls" yaml:"controls"`
	End      ClipPoint   `toml:"end" yaml:"end"`
}

// Clipboard is the payload exchanged through a clipboard: copied segments and
// loose points. It carries no contour structure; pasting rebuilds contours
// from segment adjacency.
type Clipboard struct {
	Segments []ClipSegment `toml:"segments" yaml:"segments"`
	Points   []ClipPoint   `toml:"points" yaml:"points"`
}

// IsEmpty reports whether the payload holds nothing to paste.
func (cb Clipboard) IsEmpty() bool {
	return len(cb.Segments) == 0 && len(cb.Points) == 0
}

// Clone returns a deep copy of cb.
func (cb Clipboard) Clone() Clipboard {
	c := Clipboard{Points: slices.Clone(cb.Points)}
	if cb.Segments != nil {
		c.Segments = make([]ClipSegment, len(cb.Segments))
		for i, seg := range cb.Segments {
			seg.Controls = slices.Clone(seg.Controls)
			c.Segments[i] = seg
		}
	}
	return c
}

func clipPoint(p outline.Point) ClipPoint {
	return ClipPoint{ID: p.ID, X: p.X, Y: p.Y}
}

// ComputeClipboard copies the selected parts of cs in one walk over the
// contours. A segment is copied if it is selected itself or both of its end
// points are selected. Any other selected point, control points included, is
// copied as a loose point. No point is copied twice.
func ComputeClipboard(cs []outline.Contour, sel outline.Selection) Clipboard {
	var cb Clipboard
	taken := make(map[outline.PointID]struct{})
	for _, c := range cs {
		for _, seg := range c.Segments() {
			if !geom.FullySelected(sel, seg) {
				continue
			}
			clip := ClipSegment{Op: seg.Op, Start: clipPoint(seg.Start), End: clipPoint(seg.End)}
			for _, ctrl := range seg.Controls {
				clip.Controls = append(clip.Controls, clipPoint(ctrl))
			}
			cb.Segments = append(cb.Segments, clip)
			for _, p := range seg.Points() {
				taken[p.ID] = struct{}{}
			}
		}
		for _, p := range c.Points() {
			if _, ok := taken[p.ID]; ok || !sel.HasPoint(p.ID) {
				continue
			}
			cb.Points = append(cb.Points, clipPoint(p))
			taken[p.ID] = struct{}{}
		}
	}
	tracer().Debugf("clipboard: %d segments, %d loose points", len(cb.Segments), len(cb.Points))
	return cb
}

// --- Paste -----------------------------------------------------------------

// PasteQuantum is the grid on which pasted end points are matched: positions
// equal after rounding to three decimals are considered the same point.
const PasteQuantum = 1000.0

type qpos struct{ x, y int64 }

func quantize(p ClipPoint) qpos {
	return qpos{int64(math.Round(p.X * PasteQuantum)), int64(math.Round(p.Y * PasteQuantum))}
}

type pasteEdge struct {
	seg  ClipSegment
	from int
	to   int
	used bool
}

// BuildPaste rebuilds contours from a clipboard payload, displaced by
// (dx, dy). Segment end points at the same quantized position are merged.
// Each chain of connected segments becomes a contour, starting at an end point
// of degree 1 if there is one; a chain returning to its start is closed.
// Loose points form one additional contour. Every point and contour gets a
// fresh identifier from ids.
func BuildPaste(data Clipboard, dx, dy float64, ids *outline.IDSource) []outline.Contour {
	if ids == nil {
		ids = outline.NewIDSource()
	}
	var nodes []ClipPoint
	index := make(map[qpos]int)
	node := func(p ClipPoint) int {
		q := quantize(p)
		if n, ok := index[q]; ok {
			return n
		}
		index[q] = len(nodes)
		nodes = append(nodes, p)
		return len(nodes) - 1
	}
	edges := make([]*pasteEdge, 0, len(data.Segments))
	incident := make(map[int][]*pasteEdge)
	for _, seg := range data.Segments {
		e := &pasteEdge{seg: seg, from: node(seg.Start), to: node(seg.End)}
		edges = append(edges, e)
		incident[e.from] = append(incident[e.from], e)
		if e.to != e.from {
			incident[e.to] = append(incident[e.to], e)
		}
	}
	at := func(p ClipPoint) outline.Point {
		return outline.Point{ID: ids.Point(), X: p.X + dx, Y: p.Y + dy}
	}
	unused := func(n int) (open []*pasteEdge) {
		for _, e := range incident[n] {
			if !e.used {
				open = append(open, e)
			}
		}
		return
	}
	var out []outline.Contour
	for {
		start := -1
		for n := range nodes {
			if len(unused(n)) == 1 {
				start = n
				break
			}
		}
		if start < 0 {
			for _, e := range edges {
				if !e.used {
					start = e.from
					break
				}
			}
		}
		if start < 0 {
			break
		}
		first := at(nodes[start])
		c := outline.Contour{ID: ids.Contour(), Commands: []outline.Command{outline.MoveTo(first)}}
		for cur := start; ; {
			open := unused(cur)
			if len(open) == 0 {
				break
			}
			e := open[0]
			e.used = true
			ctrl, next := e.seg.Controls, e.to
			if e.from != cur {
				ctrl, next = reversed(ctrl), e.from
			}
			var end outline.Point
			if next == start {
				end = first
			} else {
				end = at(nodes[next])
			}
			if next == start && e.seg.Op == outline.OpLineTo {
				c.Commands = append(c.Commands, outline.Close())
				break
			}
			c.Commands = append(c.Commands, pasteCommand(e.seg.Op, ctrl, end, at))
			if next == start {
				c.Commands = append(c.Commands, outline.Close())
				break
			}
			cur = next
		}
		out = append(out, c)
	}
	if len(data.Points) > 0 {
		c := outline.Contour{ID: ids.Contour()}
		for i, p := range data.Points {
			if i == 0 {
				c.Commands = append(c.Commands, outline.MoveTo(at(p)))
			} else {
				c.Commands = append(c.Commands, outline.LineTo(at(p)))
			}
		}
		out = append(out, c)
	}
	return out
}

func pasteCommand(op outline.Op, ctrl []ClipPoint, end outline.Point, at func(ClipPoint) outline.Point) outline.Command {
	switch {
	case op == outline.OpQuadTo && len(ctrl) == 1:
		return outline.QuadTo(at(ctrl[0]), end)
	case op == outline.OpCubicTo && len(ctrl) == 2:
		return outline.CubicTo(at(ctrl[0]), at(ctrl[1]), end)
	}
	return outline.LineTo(end)
}

func reversed(pts []ClipPoint) []ClipPoint {
	r := slices.Clone(pts)
	slices.Reverse(r)
	return r
}

func (s *State) paste(a Paste) error {
	if a.Data.IsEmpty() {
		return rejected(a, "clipboard is empty")
	}
	before := s.snapshot()
	pasted := BuildPaste(a.Data, a.DX, a.DY, s.ids)
	s.contours = append(s.contours, pasted...)
	s.selection = outline.Selection{}
	for _, p := range outline.AllPoints(pasted) {
		s.selection.AddPoint(p.ID)
	}
	s.endDrawing()
	s.commit("Paste", before)
	return nil
}
