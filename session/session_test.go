package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/interact"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ interact.Clipboard = (*Session)(nil)

func TestClipboardIsCopied(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyph.edit")
	defer teardown()
	//
	s := New()
	assert.True(t, s.Clipboard().IsEmpty())
	data := editstate.Clipboard{Points: []editstate.ClipPoint{{X: 1, Y: 2}}}
	s.SetClipboard(data)
	data.Points[0].X = 99
	got := s.Clipboard()
	require.Len(t, got.Points, 1)
	assert.Equal(t, 1.0, got.Points[0].X)
	got.Points[0].X = 77
	assert.Equal(t, 1.0, s.Clipboard().Points[0].X)
}

func TestSubscribers(t *testing.T) {
	s := New()
	var events []Event
	unsubscribe := s.Subscribe(func(ev Event) {
		events = append(events, ev)
		_ = s.FocusedGlyph() // callbacks may re-enter the session
	})
	s.SetFocusedGlyph("A")
	s.SetFocusedGlyph("A")
	s.SetClipboard(editstate.Clipboard{})
	unsubscribe()
	unsubscribe()
	s.SetFocusedGlyph("B")
	assert.Equal(t, []Event{
		{Kind: FocusChanged, Glyph: "A"},
		{Kind: ClipboardChanged, Glyph: "A"},
	}, events)
	assert.Equal(t, "B", s.FocusedGlyph())
}

func TestConcurrentEditors(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SetFocusedGlyph(fmt.Sprintf("g%d", i))
			s.SetClipboard(editstate.Clipboard{Points: []editstate.ClipPoint{{ID: outline.PointID(i)}}})
			_ = s.Clipboard()
		}()
	}
	wg.Wait()
	assert.Len(t, s.Clipboard().Points, 1)
	assert.NotEmpty(t, s.FocusedGlyph())
}

func TestSharedBetweenControllers(t *testing.T) {
	s := New()
	var kinds []EventKind
	s.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })
	a := interact.New(editstate.New(), interact.WithClipboard(s))
	b := interact.New(editstate.New(), interact.WithClipboard(s), interact.WithPasteOffset(0))
	require.NoError(t, a.State().Apply(editstate.AddPoint{At: geom.V(3, 4)}))
	require.NoError(t, a.State().Apply(editstate.AddPoint{At: geom.V(5, 4)}))
	require.True(t, a.KeyDown(interact.KeyA, interact.ModCtrl))
	require.True(t, a.KeyDown(interact.KeyC, interact.ModCtrl))
	assert.Equal(t, []EventKind{ClipboardChanged}, kinds)
	require.True(t, b.KeyDown(interact.KeyV, interact.ModCtrl))
	pts := outline.AllPoints(b.State().Contours())
	require.Len(t, pts, 2)
	assert.Equal(t, 3.0, pts[0].X)
	assert.Equal(t, 5.0, pts[1].X)
}
