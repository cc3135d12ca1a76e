/*
Package preview rasterizes editor frames for inspection, e.g. from the command
line tools. It is not meant as an editing canvas.

Glyph contours are filled with x/image/vector. Inactive drawing layers are
drawn as a light backdrop, components in the glyph color, and on-curve and
off-curve points as small squares on request.
*/
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/outline"
	"golang.org/x/image/vector"
)

// Options control rendering.
type Options struct {
	Width, Height int
	Margin        int  // pixels kept free around the glyph when fitting
	UseView       bool // map with the frame's view instead of fitting the glyph
	ShowPoints    bool
}

// DefaultOptions renders a 256×256 image fitted to the glyph.
func DefaultOptions() Options {
	return Options{Width: 256, Height: 256, Margin: 16}
}

var (
	paper    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ink      = color.RGBA{0x20, 0x20, 0x20, 0xff}
	backdrop = color.RGBA{0xd0, 0xd8, 0xe8, 0xff}
	onCurve  = color.RGBA{0xd0, 0x30, 0x30, 0xff}
	offCurve = color.RGBA{0x30, 0x70, 0xd0, 0xff}
	selected = color.RGBA{0xf0, 0xa0, 0x00, 0xff}
)

// Render draws a frame into a new image.
func Render(f editstate.Frame, opts Options) *image.RGBA {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)
	glyph := append(outline.CloneAll(f.Contours), outline.Flatten(f.Components)...)
	var back []outline.Contour
	for _, l := range f.Layers {
		if d, ok := l.(*outline.DrawingLayer); ok && d.ID != f.ActiveLayer {
			back = append(back, d.Contours...)
		}
	}
	view := f.View
	if !opts.UseView {
		view = Fit(append(glyph, back...), opts)
	}
	fill(img, back, view, backdrop)
	fill(img, glyph, view, ink)
	if opts.ShowPoints {
		marks(img, f.Contours, f.Selection, view)
	}
	return img
}

// WritePNG renders a frame as PNG.
func WritePNG(w io.Writer, f editstate.Frame, opts Options) error {
	return png.Encode(w, Render(f, opts))
}

// Fit returns a view showing the bounding box of cs centered in an image of
// the size given by opts. Empty outlines yield a view with the baseline at
// three quarters of the image height.
func Fit(cs []outline.Contour, opts Options) geom.View {
	w, h := float64(opts.Width), float64(opts.Height)
	m := float64(opts.Margin)
	box, ok := geom.Bounds(cs)
	if !ok || box.Width() == 0 && box.Height() == 0 {
		return geom.View{Scale: 1, OriginX: w / 2, OriginY: h * 3 / 4}
	}
	sx := geom.SafeRatio(w-2*m, box.Width())
	sy := geom.SafeRatio(h-2*m, box.Height())
	scale := min(sx, sy)
	if box.Width() == 0 {
		scale = sy
	} else if box.Height() == 0 {
		scale = sx
	}
	c := box.Center()
	return geom.View{
		Scale:   scale,
		OriginX: w/2 - c.X*scale,
		OriginY: h/2 + c.Y*scale,
	}
}

func fill(img *image.RGBA, cs []outline.Contour, view geom.View, col color.RGBA) {
	if len(cs) == 0 {
		return
	}
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	at := func(p outline.Point) (float32, float32) {
		s := view.ToScreen(geom.P(p))
		return float32(s.X), float32(s.Y)
	}
	for _, c := range cs {
		for _, cmd := range c.Commands {
			switch cmd.Op {
			case outline.OpMoveTo:
				z.MoveTo(at(cmd.Pts[0]))
			case outline.OpLineTo:
				z.LineTo(at(cmd.Pts[0]))
			case outline.OpQuadTo:
				bx, by := at(cmd.Pts[0])
				cx, cy := at(cmd.Pts[1])
				z.QuadTo(bx, by, cx, cy)
			case outline.OpCubicTo:
				bx, by := at(cmd.Pts[0])
				cx, cy := at(cmd.Pts[1])
				dx, dy := at(cmd.Pts[2])
				z.CubeTo(bx, by, cx, cy, dx, dy)
			case outline.OpClose:
				z.ClosePath()
			}
		}
		if !c.IsClosed() {
			z.ClosePath() // open contours are filled as if closed
		}
	}
	z.Draw(img, b, image.NewUniform(col), image.Point{})
}

func marks(img *image.RGBA, cs []outline.Contour, sel outline.Selection, view geom.View) {
	for _, p := range outline.AllPoints(cs) {
		col := offCurve
		if p.IsOnCurve() {
			col = onCurve
		}
		if sel.HasPoint(p.ID) {
			col = selected
		}
		s := view.ToScreen(geom.P(p))
		x, y := int(s.X+0.5), int(s.Y+0.5)
		r := image.Rect(x-2, y-2, x+3, y+3)
		draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
	}
}
