package glyphsrc

import (
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/internal/fontload"
)

// OpenTypesetting opens a font file with the go-text backend.
func OpenTypesetting(fontfile string) (Source, error) {
	f, err := fontload.LoadOpenTypeFont(fontfile)
	if err != nil {
		return nil, err
	}
	return NewTypesetting(f)
}

// NewTypesetting creates a source for a loaded font, using the go-text
// backend.
func NewTypesetting(f *fontload.ScalableFont) (Source, error) {
	face, err := f.Typesetting()
	if err != nil {
		return nil, err
	}
	tracer().Infof("go-text source for %q, %d glyphs", f.Fontname, f.NumGlyphs())
	return &source{be: &typesettingBackend{font: f, face: face}}, nil
}

type typesettingBackend struct {
	font *fontload.ScalableFont
	face *font.Face
}

func (be *typesettingBackend) fontName() string { return be.font.Fontname }

func (be *typesettingBackend) numGlyphs() int { return be.font.NumGlyphs() }

func (be *typesettingBackend) index(r rune) (int, bool) {
	gid, ok := be.face.NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return int(gid), true
}

func (be *typesettingBackend) glyphName(inx int) string {
	return be.face.GlyphName(font.GID(inx))
}

// go-text delivers Y pointing up.
func (be *typesettingBackend) outline(inx int, pb *pathBuilder) error {
	data := be.face.GlyphData(font.GID(inx))
	if data == nil {
		return nil
	}
	out, ok := data.(font.GlyphOutline)
	if !ok {
		return fmt.Errorf("glyph %d is not a vector outline (%T)", inx, data)
	}
	for _, seg := range out.Segments {
		a := seg.Args
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			pb.moveTo(float64(a[0].X), float64(a[0].Y))
		case ot.SegmentOpLineTo:
			pb.lineTo(float64(a[0].X), float64(a[0].Y))
		case ot.SegmentOpQuadTo:
			pb.quadTo(float64(a[0].X), float64(a[0].Y), float64(a[1].X), float64(a[1].Y))
		case ot.SegmentOpCubeTo:
			pb.cubeTo(float64(a[0].X), float64(a[0].Y), float64(a[1].X), float64(a[1].Y),
				float64(a[2].X), float64(a[2].Y))
		default:
			return fmt.Errorf("unknown segment op %d", seg.Op)
		}
	}
	return nil
}

func (be *typesettingBackend) metrics(inx int) (Metrics, error) {
	gid := font.GID(inx)
	m := Metrics{
		Advance:    float64(be.face.HorizontalAdvance(gid)),
		UnitsPerEm: int(be.face.Upem()),
		XHeight:    float64(be.face.LineMetric(font.XHeight)),
		CapHeight:  float64(be.face.LineMetric(font.CapHeight)),
	}
	if ext, ok := be.face.FontHExtents(); ok {
		m.Ascender = float64(ext.Ascender)
		m.Descender = float64(ext.Descender)
	}
	// extents grow downwards from YBearing
	if ext, ok := be.face.GlyphExtents(gid); ok {
		m.BBox = geom.Rect{
			Min: geom.V(float64(ext.XBearing), float64(ext.YBearing+ext.Height)),
			Max: geom.V(float64(ext.XBearing+ext.Width), float64(ext.YBearing)),
		}
	}
	return m, nil
}
