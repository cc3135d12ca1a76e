package glyphsrc

import (
	"github.com/npillmayer/glyphedit/outline"
)

// pathBuilder collects the segments a font library emits into closed
// contours, Y up. Font contours are always closed; a contour ends where the
// next one starts or when the outline is complete.
type pathBuilder struct {
	ids  *outline.IDSource
	done []outline.Contour
	cur  []outline.Command
}

func newPathBuilder() *pathBuilder {
	return &pathBuilder{ids: outline.NewIDSource()}
}

func (pb *pathBuilder) pt(x, y float64) outline.Point {
	return outline.Pt(pb.ids.Point(), x, y)
}

func (pb *pathBuilder) moveTo(x, y float64) {
	pb.closeContour()
	pb.cur = append(pb.cur, outline.MoveTo(pb.pt(x, y)))
}

func (pb *pathBuilder) lineTo(x, y float64) {
	if pb.cur == nil {
		pb.moveTo(0, 0)
	}
	pb.cur = append(pb.cur, outline.LineTo(pb.pt(x, y)))
}

func (pb *pathBuilder) quadTo(cx, cy, x, y float64) {
	if pb.cur == nil {
		pb.moveTo(0, 0)
	}
	pb.cur = append(pb.cur, outline.QuadTo(pb.pt(cx, cy), pb.pt(x, y)))
}

func (pb *pathBuilder) cubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	if pb.cur == nil {
		pb.moveTo(0, 0)
	}
	pb.cur = append(pb.cur, outline.CubicTo(pb.pt(c1x, c1y), pb.pt(c2x, c2y), pb.pt(x, y)))
}

// closeContour finishes the current contour. A trailing straight line back to
// the start point is implied by Close and dropped. A lone MoveTo is discarded.
func (pb *pathBuilder) closeContour() {
	cmds := pb.cur
	pb.cur = nil
	if len(cmds) < 2 {
		return
	}
	start := cmds[0].Pts[0]
	if last := cmds[len(cmds)-1]; last.Op == outline.OpLineTo &&
		last.Pts[0].X == start.X && last.Pts[0].Y == start.Y {
		cmds = cmds[:len(cmds)-1]
	}
	if len(cmds) < 2 {
		return
	}
	cmds = append(cmds, outline.Close())
	pb.done = append(pb.done, outline.NewContour(pb.ids.Contour(), cmds...))
}

// contours closes the current contour and returns all contours collected.
func (pb *pathBuilder) contours() []outline.Contour {
	pb.closeContour()
	return pb.done
}
