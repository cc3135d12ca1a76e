/*
Package session holds context shared between the editors of one host.

Hosts editing several glyphs at once share a clipboard and the notion of a
focused glyph. A Session carries both and is passed explicitly to every
editor (see interact.WithClipboard); there is no package-level state.
Interested parties subscribe to changes.

A Session is safe for concurrent use. Subscribers are called synchronously
from the goroutine performing the change, outside of the session's lock, so
they may call back into the session.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package session

import (
	"maps"
	"slices"
	"sync"

	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyph.edit'
func tracer() tracing.Trace {
	return tracing.Select("glyph.edit")
}

// EventKind tells what changed in a session.
type EventKind uint8

const (
	ClipboardChanged EventKind = iota + 1
	FocusChanged
)

func (k EventKind) String() string {
	switch k {
	case ClipboardChanged:
		return "clipboard"
	case FocusChanged:
		return "focus"
	}
	return "event?"
}

// Event is passed to subscribers after a change.
type Event struct {
	Kind  EventKind
	Glyph string // focused glyph after the change
}

// Session is the shared context of the editors of one host.
type Session struct {
	mu      sync.Mutex
	clip    editstate.Clipboard
	focused string
	subs    map[int]func(Event)
	nextSub int
}

// New creates an empty session.
func New() *Session {
	return &Session{subs: make(map[int]func(Event))}
}

// Clipboard returns a copy of the current clipboard payload.
func (s *Session) Clipboard() editstate.Clipboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clip.Clone()
}

// SetClipboard replaces the clipboard payload and notifies subscribers.
func (s *Session) SetClipboard(data editstate.Clipboard) {
	s.mu.Lock()
	s.clip = data.Clone()
	ev := Event{Kind: ClipboardChanged, Glyph: s.focused}
	s.mu.Unlock()
	tracer().Debugf("session clipboard holds %d segments, %d points", len(data.Segments), len(data.Points))
	s.publish(ev)
}

// FocusedGlyph returns the identifier of the glyph with input focus, or "".
func (s *Session) FocusedGlyph() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// SetFocusedGlyph moves the focus to glyph id. Subscribers are notified only
// if the focus changed.
func (s *Session) SetFocusedGlyph(id string) {
	s.mu.Lock()
	if s.focused == id {
		s.mu.Unlock()
		return
	}
	s.focused = id
	s.mu.Unlock()
	s.publish(Event{Kind: FocusChanged, Glyph: id})
}

// Subscribe registers fn for change events. The returned function
// unsubscribes; calling it more than once is harmless.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(Event))
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) publish(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, id := range slices.Sorted(maps.Keys(s.subs)) {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
