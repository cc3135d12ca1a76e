package pathcodec

import (
	"testing"

	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shape strips identifiers so contours can be compared structurally.
type shape struct {
	op  outline.Op
	pts []outline.Point
}

func shapes(cs []outline.Contour) [][]shape {
	out := make([][]shape, len(cs))
	for i, c := range cs {
		for _, cmd := range c.Commands {
			pts := cmd.Points()
			for j := range pts {
				pts[j].ID = 0
			}
			out[i] = append(out[i], shape{op: cmd.Op, pts: pts})
		}
	}
	return out
}

func TestDecodeFlipsY(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.codec")
	defer teardown()
	//
	cs := Decode("M 0 0 L 100 0 L 100 -200 Z", nil)
	require.Len(t, cs, 1)
	c := cs[0]
	require.Len(t, c.Commands, 4)
	assert.True(t, c.IsClosed())
	p := c.Commands[2].Pts[0]
	assert.Equal(t, 100.0, p.X)
	assert.Equal(t, 200.0, p.Y, "interchange Y is negated font Y")
	assert.NotEqual(t, c.Commands[0].Pts[0].ID, c.Commands[1].Pts[0].ID)
}

func TestDecodeNumberForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.codec")
	defer teardown()
	//
	cs := Decode("m-1.5,+2e1 q.5 -1E-1 3 4 c1 2 3 4 5 6z", nil)
	require.Len(t, cs, 1)
	cmds := cs[0].Commands
	require.Len(t, cmds, 4)
	assert.Equal(t, -1.5, cmds[0].Pts[0].X)
	assert.Equal(t, -20.0, cmds[0].Pts[0].Y)
	assert.Equal(t, outline.OpQuadTo, cmds[1].Op)
	assert.Equal(t, 0.5, cmds[1].Pts[0].X)
	assert.Equal(t, 0.1, cmds[1].Pts[0].Y)
	assert.Equal(t, outline.OffCurveQuadratic, cmds[1].Pts[0].Kind)
	assert.Equal(t, outline.OpCubicTo, cmds[2].Op)
	assert.Equal(t, outline.OpClose, cmds[3].Op)
}

func TestDecodeImplicitRepeat(t *testing.T) {
	cs := Decode("M 0 0 10 0 10 10 L 0 10 5 5", nil)
	require.Len(t, cs, 1)
	ops := []outline.Op{}
	for _, cmd := range cs[0].Commands {
		ops = append(ops, cmd.Op)
	}
	assert.Equal(t, []outline.Op{outline.OpMoveTo, outline.OpLineTo, outline.OpLineTo,
		outline.OpLineTo, outline.OpLineTo}, ops)
}

func TestDecodeMalformedDegradesGracefully(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.codec")
	defer teardown()
	//
	inputs := []string{
		"",
		"Z Z Z",
		"L 1 2",
		"M 1",
		"M 1 2 L # 3 4",
		"M 1 2 Q 3 4 5",
		"M 1 2 X 9 9 L 3 4",
		"M 1 2 Z L 5 5",
		"M - . L 1e999 2",
		"----",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Decode(in, nil) }, "input %q", in)
	}
	cs, err := DecodeStrict("M 1 2 L # 3 4", nil)
	assert.Error(t, err)
	require.Len(t, cs, 1)
	require.Len(t, cs[0].Commands, 2)
	assert.Equal(t, 3.0, cs[0].Commands[1].Pts[0].X, "valid command after garbage is exact")
	assert.Equal(t, -4.0, cs[0].Commands[1].Pts[0].Y)
	//
	cs, err = DecodeStrict("M 1 2 X 9 9 L 3 4", nil)
	assert.Error(t, err)
	require.Len(t, cs, 1)
	assert.Len(t, cs[0].Commands, 2, "numbers after an unknown command are skipped")
	//
	cs = Decode("M 1 2 Q 3 4 5", nil)
	require.Len(t, cs, 1)
	assert.Len(t, cs[0].Commands, 1, "incomplete trailing command is dropped")
	//
	cs = Decode("L 1 2 M 0 0 L 1 1", nil)
	require.Len(t, cs, 1)
	assert.Len(t, cs[0].Commands, 2)
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.codec")
	defer teardown()
	//
	ids := outline.NewIDSource()
	third := 100.0 / 3
	cs := []outline.Contour{
		outline.NewContour(ids.Contour(),
			outline.MoveTo(outline.Pt(ids.Point(), 0, 0)),
			outline.CubicTo(outline.Pt(ids.Point(), third, 0), outline.Pt(ids.Point(), 2*third, 0),
				outline.Pt(ids.Point(), 100, 0)),
			outline.QuadTo(outline.Pt(ids.Point(), 0.1, 1e-7), outline.Pt(ids.Point(), -12345.678, 1e21)),
			outline.LineTo(outline.Pt(ids.Point(), 0, -0.30000000000000004)),
			outline.Close(),
		),
		outline.NewContour(ids.Contour(),
			outline.MoveTo(outline.Pt(ids.Point(), 5, 5)),
			outline.LineTo(outline.Pt(ids.Point(), 6, 7)),
		),
	}
	text := Encode(cs)
	t.Logf("encoded: %s", text)
	back := Decode(text, nil)
	assert.Equal(t, shapes(cs), shapes(back))
	again := Decode(Encode(back), nil)
	assert.Equal(t, shapes(back), shapes(again))
}

func TestEncodeFormat(t *testing.T) {
	cs := Decode("M 0 0 L 100 0 L 100 -200 Z", nil)
	assert.Equal(t, "M 0 0 L 100 0 L 100 -200 Z", Encode(cs))
}
