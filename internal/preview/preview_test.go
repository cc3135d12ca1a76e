package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/glyphedit/pathcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareFrame(t *testing.T) (*editstate.State, editstate.Frame) {
	s := editstate.New()
	cs := pathcodec.Decode("M 0 0 L 100 0 L 100 -100 L 0 -100 Z", s.IDs())
	require.NoError(t, s.Apply(editstate.SetPaths{Contours: cs}))
	return s, s.Render()
}

func TestFit(t *testing.T) {
	_, f := squareFrame(t)
	v := Fit(f.Contours, DefaultOptions())
	assert.InDelta(t, 2.24, v.Scale, 1e-9)
	assert.InDelta(t, 16, v.OriginX, 1e-9)
	assert.InDelta(t, 240, v.OriginY, 1e-9)
	empty := Fit(nil, DefaultOptions())
	assert.Equal(t, 1.0, empty.Scale)
}

func TestRenderFillsGlyph(t *testing.T) {
	_, f := squareFrame(t)
	img := Render(f, DefaultOptions())
	assert.Equal(t, ink, img.RGBAAt(128, 128))
	assert.Equal(t, paper, img.RGBAAt(4, 4))
	assert.Equal(t, paper, img.RGBAAt(250, 250))
}

func TestRenderPoints(t *testing.T) {
	s, _ := squareFrame(t)
	first := outline.AllPoints(s.Contours())[0]
	require.NoError(t, s.Apply(editstate.SetSelection{Selection: outline.NewSelection(first.ID)}))
	opts := DefaultOptions()
	opts.ShowPoints = true
	img := Render(s.Render(), opts)
	assert.Equal(t, selected, img.RGBAAt(16, 240), "point (0,0)")
	assert.Equal(t, onCurve, img.RGBAAt(240, 240), "point (100,0)")
}

func TestRenderBackdropLayer(t *testing.T) {
	s, _ := squareFrame(t)
	require.NoError(t, s.Apply(editstate.AddLayer{Layer: &outline.DrawingLayer{
		ID:       "sketch",
		Contours: pathcodec.Decode("M 200 0 L 300 0 L 300 -100 L 200 -100 Z", s.IDs()),
	}}))
	img := Render(s.Render(), DefaultOptions())
	// both squares fit side by side: scale 224/300
	assert.Equal(t, ink, img.RGBAAt(16+37, 128))
	assert.Equal(t, backdrop, img.RGBAAt(16+187, 128))
}

func TestWritePNG(t *testing.T) {
	_, f := squareFrame(t)
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, f, Options{Width: 64, Height: 32, Margin: 2}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}
