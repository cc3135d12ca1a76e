package glyphsrc

import (
	"errors"
	"testing"

	"github.com/npillmayer/glyphedit/internal/fontload"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
)

func TestPathBuilderClosesContours(t *testing.T) {
	pb := newPathBuilder()
	pb.moveTo(0, 0)
	pb.lineTo(100, 0)
	pb.quadTo(150, 50, 100, 100)
	pb.lineTo(0, 0) // implied by Close
	pb.moveTo(10, 10)
	pb.lineTo(20, 10)
	pb.cubeTo(25, 15, 25, 20, 10, 10)
	pb.moveTo(500, 500) // lone move is dropped
	cs := pb.contours()
	require.Len(t, cs, 2)
	assert.True(t, cs[0].IsClosed())
	assert.Len(t, cs[0].Commands, 4)
	assert.Equal(t, outline.OpQuadTo, cs[0].Commands[2].Op)
	assert.Len(t, cs[1].Commands, 4, "curved closing segment is kept")
	for _, c := range cs {
		assert.NoError(t, c.Validate())
	}
}

// fakeBackend serves two glyphs: a named square at index 1 for 'A' and an
// unnamed triangle at index 2 for 'é'.
type fakeBackend struct{}

func (fakeBackend) fontName() string { return "Fake" }
func (fakeBackend) numGlyphs() int   { return 3 }

func (fakeBackend) index(r rune) (int, bool) {
	switch r {
	case 'A':
		return 1, true
	case 'é':
		return 2, true
	}
	return 0, false
}

func (fakeBackend) glyphName(inx int) string {
	if inx == 1 {
		return "square"
	}
	return ""
}

func (fakeBackend) outline(inx int, pb *pathBuilder) error {
	switch inx {
	case 1:
		pb.moveTo(0, 0)
		pb.lineTo(100, 0)
		pb.lineTo(100, 100)
		pb.lineTo(0, 100)
	case 2:
		pb.moveTo(0, 0)
		pb.lineTo(50, 0)
		pb.lineTo(25, 80)
	}
	return nil
}

func (fakeBackend) metrics(inx int) (Metrics, error) {
	return Metrics{Advance: 120, UnitsPerEm: 1000}, nil
}

func TestSourceLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.source")
	defer teardown()
	//
	src := &source{be: fakeBackend{}}
	g, err := src.Glyph('A')
	require.NoError(t, err)
	assert.Equal(t, "square", g.Name)
	assert.Equal(t, 'A', g.Rune)
	assert.Equal(t, "M 0 0 L 100 0 L 100 -100 L 0 -100 Z", g.Path)
	//
	g, err = src.Glyph('é')
	require.NoError(t, err)
	assert.Equal(t, "LATIN SMALL LETTER E WITH ACUTE", g.Name)
	g, err = src.GlyphByIndex(2)
	require.NoError(t, err)
	assert.Equal(t, "glyph2", g.Name)
	assert.Equal(t, rune(0), g.Rune)
	//
	_, err = src.Glyph('x')
	assert.True(t, errors.Is(err, ErrNoGlyph))
	_, err = src.GlyphByIndex(3)
	assert.True(t, errors.Is(err, ErrNoGlyph))
}

func TestSourceResolvesComponentReferences(t *testing.T) {
	src := &source{be: fakeBackend{}}
	for _, id := range []string{"square", "A", "U+0041", "gid:1"} {
		g, err := src.Resolve(id)
		require.NoError(t, err, id)
		assert.Len(t, outline.AllPoints(g.Contours), 4, id)
	}
	_, err := src.Resolve("circle")
	assert.True(t, errors.Is(err, ErrNoGlyph))
	_, err = src.Resolve("U+zz")
	assert.Error(t, err)
	//
	comps, err := outline.Assemble([]outline.ComponentRef{{TargetID: "square", XOffset: 10}}, src)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.True(t, comps[0].Locked)
}

func TestMapResolver(t *testing.T) {
	m := MapResolver{}
	m.AddPath("acute", "M 10 -100 L 30 -130 L 20 -140 Z")
	m.AddPath("eacute", "", outline.ComponentRef{TargetID: "acute", XOffset: 200})
	g, err := m.Resolve("acute")
	require.NoError(t, err)
	assert.Equal(t, 10.0, g.XMin)
	assert.Equal(t, 100.0, g.YMin)
	g.Contours[0].Commands[0].Pts[0].X = 999
	again, _ := m.Resolve("acute")
	assert.Equal(t, 10.0, again.Contours[0].Commands[0].Pts[0].X)
	//
	comps, err := outline.Assemble([]outline.ComponentRef{{TargetID: "eacute"}}, m)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.True(t, comps[0].IsComposite)
	require.Len(t, comps[0].SubComponents, 1)
	assert.Equal(t, 200.0, comps[0].SubComponents[0].XOffset)
	//
	_, err = m.Resolve("grave")
	assert.True(t, errors.Is(err, ErrNoGlyph))
}

// --- Real font backends ----------------------------------------------------

type FontEnviron struct {
	suite.Suite
	teardown func()
	font     *fontload.ScalableFont
}

func TestFontEnviron(t *testing.T) {
	suite.Run(t, new(FontEnviron))
}

func (env *FontEnviron) SetupSuite() {
	env.teardown = gotestingadapter.QuickConfig(env.T(), "glyph.source")
	var err error
	env.font, err = fontload.ParseOpenTypeFont(goregular.TTF)
	env.Require().NoError(err)
}

func (env *FontEnviron) TearDownSuite() {
	env.teardown()
}

func (env *FontEnviron) TestSFNTGlyph() {
	src := NewSFNT(env.font)
	env.Contains(src.FontName(), "Go")
	env.Greater(src.NumGlyphs(), 100)
	g, err := src.Glyph('o')
	env.Require().NoError(err)
	env.NotEmpty(g.Name)
	env.Greater(g.Metrics.UnitsPerEm, 0)
	env.Greater(g.Metrics.Advance, 0.0)
	env.Greater(g.Metrics.Ascender, 0.0)
	env.Less(g.Metrics.Descender, 0.0)
	env.Greater(g.Metrics.BBox.Max.Y, g.Metrics.BBox.Min.Y)
	cs := g.Contours(nil)
	env.Len(cs, 2, "outer and inner ring of an 'o'")
	for _, c := range cs {
		env.True(c.IsClosed())
		env.NoError(c.Validate())
	}
	_, err = src.Glyph(0x10FFFD)
	env.True(errors.Is(err, ErrNoGlyph))
}

func (env *FontEnviron) TestBackendsAgree() {
	a := NewSFNT(env.font)
	b, err := NewTypesetting(env.font)
	env.Require().NoError(err)
	for _, r := range "Hgo" {
		ga, err := a.Glyph(r)
		env.Require().NoError(err)
		gb, err := b.Glyph(r)
		env.Require().NoError(err)
		env.Equal(ga.Index, gb.Index, string(r))
		env.Equal(ga.Name, gb.Name, string(r))
		env.Equal(ga.Metrics.Advance, gb.Metrics.Advance, string(r))
		env.Equal(ga.Metrics.UnitsPerEm, gb.Metrics.UnitsPerEm, string(r))
		env.Len(gb.Contours(nil), len(ga.Contours(nil)), string(r))
	}
}

func (env *FontEnviron) TestResolveFromFont() {
	src := NewSFNT(env.font)
	g, err := src.Resolve("U+0048")
	env.Require().NoError(err)
	env.NotEmpty(g.Contours)
	comps, err := outline.Assemble([]outline.ComponentRef{{TargetID: "H", XOffset: 50}}, src)
	env.Require().NoError(err)
	env.Len(comps, 1)
	env.NotEmpty(outline.Flatten(comps))
}
