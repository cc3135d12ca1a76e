package glyphsrc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/glyphedit/pathcodec"
	"golang.org/x/text/unicode/runenames"
)

// ErrNoGlyph is wrapped by errors for glyphs missing in a source.
var ErrNoGlyph = errors.New("no such glyph")

// Metrics are the metrics of a glyph and of its font, in font units (Y up).
// Descender is negative for fonts descending below the baseline.
type Metrics struct {
	Advance    float64
	BBox       geom.Rect
	UnitsPerEm int
	Ascender   float64
	Descender  float64
	XHeight    float64
	CapHeight  float64
}

// GlyphRecord is a glyph as delivered by a Source.
type GlyphRecord struct {
	Name    string
	Rune    rune // 0 if the glyph has been requested by index
	Index   int
	Path    string // interchange path string
	Metrics Metrics
}

// Contours decodes the outline of g, drawing identifiers from ids.
func (g GlyphRecord) Contours(ids *outline.IDSource) []outline.Contour {
	return pathcodec.Decode(g.Path, ids)
}

// Source delivers glyphs of a font.
type Source interface {
	FontName() string
	NumGlyphs() int
	Glyph(r rune) (GlyphRecord, error)
	GlyphByIndex(inx int) (GlyphRecord, error)
	outline.Resolver
}

// backend is what a font library has to provide for a source.
type backend interface {
	fontName() string
	numGlyphs() int
	index(r rune) (int, bool)
	glyphName(inx int) string
	outline(inx int, pb *pathBuilder) error
	metrics(inx int) (Metrics, error)
}

// source implements Source on top of a backend.
type source struct {
	be    backend
	names map[string]int // glyph name to index, built on first use
}

var _ Source = (*source)(nil)

func (src *source) FontName() string { return src.be.fontName() }

func (src *source) NumGlyphs() int { return src.be.numGlyphs() }

func (src *source) Glyph(r rune) (GlyphRecord, error) {
	inx, ok := src.be.index(r)
	if !ok {
		return GlyphRecord{}, fmt.Errorf("%w: %U in font %q", ErrNoGlyph, r, src.FontName())
	}
	g, err := src.load(inx)
	g.Rune = r
	if err == nil && g.Name == "" {
		g.Name = runenames.Name(r)
	}
	return g, err
}

func (src *source) GlyphByIndex(inx int) (GlyphRecord, error) {
	if inx < 0 || inx >= src.be.numGlyphs() {
		return GlyphRecord{}, fmt.Errorf("%w: index %d in font %q", ErrNoGlyph, inx, src.FontName())
	}
	g, err := src.load(inx)
	if err == nil && g.Name == "" {
		g.Name = "glyph" + strconv.Itoa(inx)
	}
	return g, err
}

func (src *source) load(inx int) (GlyphRecord, error) {
	pb := newPathBuilder()
	if err := src.be.outline(inx, pb); err != nil {
		return GlyphRecord{}, fmt.Errorf("outline of glyph %d: %w", inx, err)
	}
	m, err := src.be.metrics(inx)
	if err != nil {
		return GlyphRecord{}, fmt.Errorf("metrics of glyph %d: %w", inx, err)
	}
	cs := pb.contours()
	tracer().Debugf("glyph %d of %q: %d contours", inx, src.FontName(), len(cs))
	return GlyphRecord{
		Name:    src.be.glyphName(inx),
		Index:   inx,
		Path:    pathcodec.Encode(cs),
		Metrics: m,
	}, nil
}

// Resolve implements outline.Resolver. See the package documentation for the
// forms of targetID.
func (src *source) Resolve(targetID string) (outline.ResolvedGlyph, error) {
	var g GlyphRecord
	var err error
	if r, ok := parseRune(targetID); ok {
		g, err = src.Glyph(r)
	} else if inx, ok := parseIndex(targetID); ok {
		g, err = src.GlyphByIndex(inx)
	} else if inx, ok := src.byName(targetID); ok {
		g, err = src.GlyphByIndex(inx)
	} else {
		err = fmt.Errorf("%w: %q in font %q", ErrNoGlyph, targetID, src.FontName())
	}
	if err != nil {
		return outline.ResolvedGlyph{}, err
	}
	return outline.ResolvedGlyph{
		Contours: g.Contours(nil),
		XMin:     g.Metrics.BBox.Min.X,
		YMin:     g.Metrics.BBox.Min.Y,
	}, nil
}

func (src *source) byName(name string) (int, bool) {
	if src.names == nil {
		n := src.be.numGlyphs()
		src.names = make(map[string]int, n)
		for i := range n {
			if gn := src.be.glyphName(i); gn != "" {
				if _, dup := src.names[gn]; !dup {
					src.names[gn] = i
				}
			}
		}
	}
	inx, ok := src.names[name]
	return inx, ok
}

// parseRune accepts "U+XXXX" or a string consisting of a single character.
func parseRune(id string) (rune, bool) {
	if hex, ok := strings.CutPrefix(id, "U+"); ok {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || n > utf8.MaxRune {
			return 0, false
		}
		return rune(n), true
	}
	if r, size := utf8.DecodeRuneInString(id); size > 0 && size == len(id) && r != utf8.RuneError {
		return r, true
	}
	return 0, false
}

// parseIndex accepts "gid:N".
func parseIndex(id string) (int, bool) {
	num, ok := strings.CutPrefix(id, "gid:")
	if !ok {
		return 0, false
	}
	inx, err := strconv.Atoi(num)
	return inx, err == nil && inx >= 0
}
