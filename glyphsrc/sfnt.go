package glyphsrc

import (
	"errors"
	"fmt"

	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/internal/fontload"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// OpenSFNT opens a font file with the sfnt backend.
func OpenSFNT(fontfile string) (Source, error) {
	f, err := fontload.LoadOpenTypeFont(fontfile)
	if err != nil {
		return nil, err
	}
	return NewSFNT(f), nil
}

// NewSFNT creates a source for a loaded font, using the sfnt backend.
func NewSFNT(f *fontload.ScalableFont) Source {
	be := &sfntBackend{font: f}
	// one pixel per font unit
	be.ppem = fixed.Int26_6(f.UnitsPerEm()) << 6
	tracer().Infof("sfnt source for %q, %d glyphs", f.Fontname, f.NumGlyphs())
	return &source{be: be}
}

type sfntBackend struct {
	font *fontload.ScalableFont
	buf  sfnt.Buffer
	ppem fixed.Int26_6
}

func (be *sfntBackend) fontName() string { return be.font.Fontname }

func (be *sfntBackend) numGlyphs() int { return be.font.NumGlyphs() }

func (be *sfntBackend) index(r rune) (int, bool) {
	x, err := be.font.SFNT.GlyphIndex(&be.buf, r)
	if err != nil || x == 0 {
		return 0, false
	}
	return int(x), true
}

func (be *sfntBackend) glyphName(inx int) string {
	name, err := be.font.SFNT.GlyphName(&be.buf, sfnt.GlyphIndex(inx))
	if err != nil {
		return ""
	}
	return name
}

// units converts a 26.6 value at one pixel per unit to font units.
func units(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// sfnt delivers Y pointing down.
func (be *sfntBackend) outline(inx int, pb *pathBuilder) error {
	segs, err := be.font.SFNT.LoadGlyph(&be.buf, sfnt.GlyphIndex(inx), be.ppem, nil)
	if err != nil {
		return err
	}
	for _, seg := range segs {
		a := seg.Args
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			pb.moveTo(units(a[0].X), -units(a[0].Y))
		case sfnt.SegmentOpLineTo:
			pb.lineTo(units(a[0].X), -units(a[0].Y))
		case sfnt.SegmentOpQuadTo:
			pb.quadTo(units(a[0].X), -units(a[0].Y), units(a[1].X), -units(a[1].Y))
		case sfnt.SegmentOpCubeTo:
			pb.cubeTo(units(a[0].X), -units(a[0].Y), units(a[1].X), -units(a[1].Y),
				units(a[2].X), -units(a[2].Y))
		default:
			return fmt.Errorf("unknown segment op %d", seg.Op)
		}
	}
	return nil
}

func (be *sfntBackend) metrics(inx int) (Metrics, error) {
	fm, err := be.font.SFNT.Metrics(&be.buf, be.ppem, font.HintingNone)
	if err != nil {
		return Metrics{}, err
	}
	bounds, adv, err := be.font.SFNT.GlyphBounds(&be.buf, sfnt.GlyphIndex(inx), be.ppem, font.HintingNone)
	if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
		return Metrics{}, err
	}
	return Metrics{
		Advance: units(adv),
		BBox: geom.Rect{
			Min: geom.V(units(bounds.Min.X), -units(bounds.Max.Y)),
			Max: geom.V(units(bounds.Max.X), -units(bounds.Min.Y)),
		},
		UnitsPerEm: be.font.UnitsPerEm(),
		Ascender:   units(fm.Ascent),
		Descender:  -units(fm.Descent),
		XHeight:    units(fm.XHeight),
		CapHeight:  units(fm.CapHeight),
	}, nil
}
