package glyphdoc

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/glyphsrc"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/glyphedit/pathcodec"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const square = "M 0 0 L 100 0 L 100 -100 L 0 -100 Z"

func sample() Document {
	return Document{
		Name:    "eacute",
		Unicode: "U+00E9",
		Advance: 556,
		Layers: []Layer{
			{ID: outline.OutlineLayerID, Name: "Outline", Path: square},
			{ID: "sketch", Name: "Sketch", Path: "M 10 -10 L 20 -10"},
			{ID: "scan", Name: "Scan", Image: &Image{
				Ref: "scan.png", Width: 200, Height: 100, Opacity: 0.5,
				ScaleX: 1, ScaleY: 1, Rotation: 15, CenterX: 300, CenterY: 100,
			}},
		},
		Components: []Component{{Target: "acute", X: 120}},
	}
}

func resolver() glyphsrc.MapResolver {
	m := glyphsrc.MapResolver{}
	m.AddPath("acute", "M 10 -100 L 30 -130 L 20 -140 Z")
	return m
}

func TestFormats(t *testing.T) {
	for _, format := range []Format{TOML, YAML} {
		var buf bytes.Buffer
		require.NoError(t, sample().Encode(&buf, format))
		doc, err := Decode(&buf, format)
		require.NoError(t, err, format.String())
		assert.Equal(t, sample(), doc, format.String())
	}
	_, err := Decode(strings.NewReader("name = \"x\"\ncolour = \"red\"\n"), TOML)
	assert.Error(t, err, "unknown keys")
	_, err = Decode(strings.NewReader("name: x\ncolour: red\n"), YAML)
	assert.Error(t, err, "unknown keys")
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("a/b/glyph.TOML")
	require.NoError(t, err)
	assert.Equal(t, TOML, f)
	f, err = FormatOf("glyph.yml")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)
	_, err = FormatOf("glyph.json")
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestLoadIntoState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.edit")
	defer teardown()
	//
	s := editstate.New()
	require.NoError(t, sample().Load(s, resolver()))
	assert.Equal(t, square, pathcodec.Encode(s.Contours()))
	assert.False(t, s.IsDirty())
	assert.Equal(t, 0, s.UndoDepth())
	require.Len(t, s.Layers(), 3)
	img, ok := s.Layer("scan")
	require.True(t, ok)
	assert.Equal(t, 15.0, img.(*outline.ImageLayer).RotationDeg)
	comps := s.Components()
	require.Len(t, comps, 1)
	assert.True(t, comps[0].Locked)
	assert.Equal(t, 120.0, comps[0].XOffset)
	//
	err := sample().Load(editstate.New(), nil)
	assert.Error(t, err, "components need a resolver")
}

func TestSaveAndOpen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.edit")
	defer teardown()
	//
	for _, name := range []string{"eacute.toml", "eacute.yaml"} {
		s := editstate.New()
		require.NoError(t, sample().Load(s, resolver()))
		require.NoError(t, s.Apply(editstate.SelectAll{}))
		require.NoError(t, s.Apply(editstate.ApplyTransform{
			Transform: geom.Translation(10, 0),
			Selection: s.Selection(),
		}))
		require.True(t, s.IsDirty())
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, Save(path, s, "eacute"))
		assert.False(t, s.IsDirty(), name)
		assert.False(t, s.IsSaving(), name)
		//
		reopened := editstate.New()
		doc, err := Open(path, reopened, resolver())
		require.NoError(t, err, name)
		assert.Equal(t, "eacute", doc.Name)
		assert.Equal(t, "M 10 0 L 110 0 L 110 -100 L 10 -100 Z", pathcodec.Encode(reopened.Contours()), name)
		assert.Len(t, reopened.Layers(), 3, name)
		assert.Len(t, reopened.Components(), 1, name)
	}
	err := Save(filepath.Join(t.TempDir(), "eacute.json"), editstate.New(), "eacute")
	assert.True(t, errors.Is(err, ErrFormat))
}
