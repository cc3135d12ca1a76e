package main

import (
	"path/filepath"
	"testing"

	"github.com/npillmayer/glyphedit/config"
	"github.com/npillmayer/glyphedit/interact"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/glyphedit/session"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, intp *Intp, lines ...string) {
	t.Helper()
	for _, line := range lines {
		cmd, err := parseCommand(line)
		require.NoError(t, err, line)
		err, quit := intp.execute(cmd)
		require.NoError(t, err, line)
		require.False(t, quit, line)
	}
}

func TestParseCommand(t *testing.T) {
	cmd, err := parseCommand("  Move 10  -5 ")
	require.NoError(t, err)
	assert.Equal(t, MOVE, cmd.code)
	assert.Equal(t, []string{"10", "-5"}, cmd.args)
	_, err = parseCommand("frobnicate")
	assert.ErrorIs(t, err, errUnknownCommand)
}

func TestParseArguments(t *testing.T) {
	mods, err := parseMods([]string{"ctrl+shift"})
	require.NoError(t, err)
	assert.True(t, mods.Has(interact.ModCtrl))
	assert.True(t, mods.Has(interact.ModShift))
	_, err = parseMods([]string{"hyper"})
	assert.Error(t, err)
	r, err := parseRune("u+00e9")
	require.NoError(t, err)
	assert.Equal(t, 'é', r)
	_, err = parseRune("ab")
	assert.Error(t, err)
}

func TestDrawAndEditSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.edit")
	defer teardown()
	//
	intp := NewIntp(config.Default(), session.New())
	run(t, intp, "tool pen", "click 0 0", "click 100 0", "click 100 -100", "key enter")
	cs := intp.state.Contours()
	require.Len(t, cs, 1)
	assert.True(t, cs[0].IsClosed())
	assert.Len(t, cs[0].Points(), 3)
	//
	run(t, intp, "tool select", "select all", "move 10 0")
	first := outline.AllPoints(intp.state.Contours())[0]
	assert.Equal(t, 10.0, first.X)
	run(t, intp, "undo")
	first = outline.AllPoints(intp.state.Contours())[0]
	assert.Equal(t, 0.0, first.X)
	//
	run(t, intp, "select none", "drag -20 20 120 -120")
	assert.Len(t, intp.state.Selection().PointIDs(), 3, "rubber band selects all points")
	run(t, intp, "copy", "delete")
	assert.Empty(t, intp.state.Contours())
	assert.False(t, intp.session.Clipboard().IsEmpty())
	run(t, intp, "paste")
	assert.Len(t, outline.AllPoints(intp.state.Contours()), 3)
}

func TestSaveAndOpen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.edit")
	defer teardown()
	//
	intp := NewIntp(config.Default(), session.New())
	run(t, intp, "tool pen", "click 0 0", "click 50 0", "key escape", "layer add sketch")
	path := filepath.Join(t.TempDir(), "stroke.yaml")
	run(t, intp, "save "+path)
	assert.False(t, intp.state.IsDirty())
	//
	other := NewIntp(config.Default(), intp.session)
	run(t, other, "open "+path)
	assert.Equal(t, "untitled", other.glyph)
	assert.Equal(t, "untitled", intp.session.FocusedGlyph())
	assert.Len(t, other.state.Layers(), 2)
	cs := other.state.Contours()
	require.Len(t, cs, 1)
	assert.False(t, cs[0].IsClosed())
}
