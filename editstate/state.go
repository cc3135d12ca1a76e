package editstate

import (
	"maps"
	"slices"

	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/outline"
)

// DefaultMaxUndo is the default bound of the undo history.
const DefaultMaxUndo = 50

// ToolMode is the externally visible mode of the editor.
type ToolMode uint8

const (
	ToolSelect ToolMode = iota // select, move and transform points
	ToolPen                    // draw contours
	ToolHand                   // pan the view
)

func (m ToolMode) String() string {
	switch m {
	case ToolSelect:
		return "select"
	case ToolPen:
		return "pen"
	case ToolHand:
		return "hand"
	}
	return "tool?"
}

// entry is a history entry: a deep contour snapshot, optionally paired with
// a component tree snapshot.
type entry struct {
	label          string
	contours       []outline.Contour
	components     []outline.Component
	withComponents bool
}

// State is the editing state of one glyph. Create it with New; mutate it with
// Apply.
type State struct {
	ids         *outline.IDSource
	maxUndo     int
	contours    []outline.Contour
	selection   outline.Selection
	tool        ToolMode
	view        geom.View
	layers      []outline.Layer
	active      string // active drawing layer
	focused     string // layer receiving image gestures
	components  []outline.Component
	compPath    outline.ComponentPath // active component, nil if none
	compEditing bool                  // live buffer holds an unlocked component's outline
	compStash   []outline.Contour     // glyph contours while a component is edited
	compEntry   []outline.Contour     // component outline as loaded into the live buffer
	edited      map[string]struct{}   // targets written back from component editing
	undo        []entry
	redo        []entry
	dirty       bool
	saving      bool
	activePath  outline.ContourID // contour being drawn with the pen
	drawing     bool
	clipboard   Clipboard
	observers   map[int]func(Frame)
	nextObs     int
}

// Option configures a State.
type Option func(*State)

// WithMaxUndo bounds the undo history to n entries. Values below 1 select
// DefaultMaxUndo.
func WithMaxUndo(n int) Option {
	return func(s *State) {
		if n >= 1 {
			s.maxUndo = n
		}
	}
}

// WithIDSource makes the state draw identifiers from src.
func WithIDSource(src *outline.IDSource) Option {
	return func(s *State) {
		if src != nil {
			s.ids = src
		}
	}
}

// WithView sets the initial view transform.
func WithView(v geom.View) Option {
	return func(s *State) {
		s.view = v
	}
}

// New creates an empty editing state holding just the outline layer.
func New(opts ...Option) *State {
	s := &State{
		ids:     outline.NewIDSource(),
		maxUndo: DefaultMaxUndo,
		view:    geom.DefaultView(),
		layers:  []outline.Layer{&outline.DrawingLayer{ID: outline.OutlineLayerID, Name: "Outline"}},
		active:  outline.OutlineLayerID,
		edited:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- Accessors -------------------------------------------------------------

// Contours returns a deep copy of the live contours.
func (s *State) Contours() []outline.Contour { return outline.CloneAll(s.contours) }

// Selection returns a copy of the selection.
func (s *State) Selection() outline.Selection { return s.selection.Clone() }

// ToolMode returns the current tool.
func (s *State) ToolMode() ToolMode { return s.tool }

// View returns the view transform.
func (s *State) View() geom.View { return s.view }

// IDs returns the identifier source of the state.
func (s *State) IDs() *outline.IDSource { return s.ids }

// IsDirty reports unsaved changes.
func (s *State) IsDirty() bool { return s.dirty }

// IsSaving reports a save in progress.
func (s *State) IsSaving() bool { return s.saving }

// IsDrawing reports whether a pen path is being drawn.
func (s *State) IsDrawing() bool { return s.drawing }

// ActivePath returns the contour being drawn with the pen.
func (s *State) ActivePath() (outline.ContourID, bool) {
	return s.activePath, s.drawing && s.activePath != 0
}

// MaxUndo returns the bound of the undo history.
func (s *State) MaxUndo() int { return s.maxUndo }

// UndoDepth returns the number of undoable steps.
func (s *State) UndoDepth() int { return len(s.undo) }

// RedoDepth returns the number of redoable steps.
func (s *State) RedoDepth() int { return len(s.redo) }

// UndoLabel describes the step Undo would revert.
func (s *State) UndoLabel() (string, bool) {
	if len(s.undo) == 0 {
		return "", false
	}
	return s.undo[len(s.undo)-1].label, true
}

// RedoLabel describes the step Redo would re-apply.
func (s *State) RedoLabel() (string, bool) {
	if len(s.redo) == 0 {
		return "", false
	}
	return s.redo[len(s.redo)-1].label, true
}

// Clipboard returns the payload produced by the last Cut.
func (s *State) Clipboard() Clipboard { return s.clipboard.Clone() }

// CopySelection computes the clipboard payload of the current selection
// without changing the state.
func (s *State) CopySelection() Clipboard {
	return ComputeClipboard(s.contours, s.selection)
}

// EditedTargets returns the component targets whose outlines were edited
// through an unlocked component, in ascending order. Their backing glyphs have
// to be saved.
func (s *State) EditedTargets() []string {
	return slices.Sorted(maps.Keys(s.edited))
}

// --- Observers -------------------------------------------------------------

// Subscribe registers fn to be called with a fresh Frame after every
// successful Apply. The returned function unsubscribes.
func (s *State) Subscribe(fn func(Frame)) (unsubscribe func()) {
	if s.observers == nil {
		s.observers = make(map[int]func(Frame))
	}
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

func (s *State) notify() {
	if len(s.observers) == 0 {
		return
	}
	f := s.Render()
	for _, id := range slices.Sorted(maps.Keys(s.observers)) {
		s.observers[id](f)
	}
}

// Frame is a read-only snapshot of a State for renderers. It shares no
// storage with the state.
type Frame struct {
	Contours        []outline.Contour
	Selection       outline.Selection
	View            geom.View
	Tool            ToolMode
	Layers          []outline.Layer
	ActiveLayer     string
	FocusedLayer    string
	Components      []outline.Component
	ActiveComponent outline.ComponentPath
	ActivePath      outline.ContourID
	IsDrawing       bool
	Dirty           bool
	Saving          bool
}

// Render returns a snapshot of s.
func (s *State) Render() Frame {
	return Frame{
		Contours:        s.Contours(),
		Selection:       s.Selection(),
		View:            s.view,
		Tool:            s.tool,
		Layers:          s.Layers(),
		ActiveLayer:     s.active,
		FocusedLayer:    s.focused,
		Components:      outline.CloneComponents(s.components),
		ActiveComponent: slices.Clone(s.compPath),
		ActivePath:      s.activePath,
		IsDrawing:       s.drawing,
		Dirty:           s.dirty,
		Saving:          s.saving,
	}
}

// --- Apply -----------------------------------------------------------------

// Apply performs action a. If Apply returns an error, the state is
// unchanged. Errors wrap ErrNotFound or ErrRejected.
func (s *State) Apply(a Action) error {
	err := s.apply(a)
	if err != nil {
		tracer().Debugf("%s failed: %v", a.name(), err)
		return err
	}
	tracer().Debugf("applied %s", a.name())
	s.notify()
	return nil
}

func (s *State) apply(a Action) error {
	switch a := a.(type) {
	case SetPaths:
		s.setPaths(a.Contours)
	case MovePointsLive:
		return s.movePointsLive(a)
	case TransformPointsLive:
		return s.transformPointsLive(a)
	case CommitMove:
		s.commit("Move points", a.Before)
	case CommitTransform:
		s.commit("Transform points", a.Before)
	case RevertLive:
		s.contours = outline.CloneAll(a.Before)
		s.dirty = a.Dirty
	case ApplyTransform:
		s.applyTransform(a)
	case Undo:
		s.undoStep()
	case Redo:
		s.redoStep()
	case DeleteSelection:
		s.deleteSelection("Delete points")
	case ConvertSegments:
		return s.convertSegments(a)
	case Paste:
		return s.paste(a)
	case Cut:
		s.clipboard = ComputeClipboard(s.contours, s.selection)
		s.deleteSelection("Cut")
	case AddPoint:
		s.addPoint(a)
	case ClosePath:
		return s.closePath(a)
	case EndPath:
		s.endDrawing()
	case ConnectPoints:
		return s.connectPoints(a)
	case ExtendPath:
		return s.extendPath(a)
	case SetSelection:
		s.selection = a.Selection.Clone()
	case SelectAll:
		s.selection = outline.Selection{}
		for _, p := range outline.AllPoints(s.contours) {
			s.selection.AddPoint(p.ID)
		}
	case ClearSelection:
		s.selection = outline.Selection{}
	case SetToolMode:
		if a.Mode != ToolPen {
			s.endDrawing()
		}
		s.tool = a.Mode
	case SetView:
		s.view = a.View
	case PanView:
		s.view = s.view.Pan(a.DX, a.DY)
	case ZoomView:
		s.view = s.view.ZoomAt(a.Factor, a.Anchor)
	case AddLayer:
		return s.addLayer(a)
	case RemoveLayer:
		return s.removeLayer(a)
	case SetActiveLayer:
		return s.setActiveLayer(a)
	case SetFocusedLayer:
		return s.setFocusedLayer(a)
	case SetImageTransform:
		return s.setImageTransform(a)
	case SetImageOpacity:
		return s.setImageOpacity(a)
	case SetComponents:
		s.setComponents(a.Components)
	case SetActiveComponent:
		return s.setActiveComponent(a)
	case MoveComponentLive:
		return s.moveComponentLive(a)
	case CommitComponentMove:
		s.commitComponents("Move component", a.Before)
	case SetComponentLocked:
		return s.setComponentLocked(a)
	case MarkSaving:
		s.saving = a.Saving
	case MarkSaved:
		s.dirty, s.saving = false, false
	default:
		return &EditError{Action: "Apply", Issue: "unknown action", Err: ErrRejected}
	}
	return nil
}

// --- History ---------------------------------------------------------------

func (s *State) setPaths(cs []outline.Contour) {
	s.leaveComponent(false)
	s.contours = outline.CloneAll(cs)
	s.ids.Observe(outline.HighestID(s.contours))
	s.selection = outline.Selection{}
	s.undo, s.redo = nil, nil
	s.dirty = false
	s.endDrawing()
}

// snapshot captures the live contours for a history entry.
func (s *State) snapshot() []outline.Contour {
	return outline.CloneAll(s.contours)
}

// commit records before as the state preceding the latest change. It clears
// the redo history and marks the state dirty.
func (s *State) commit(label string, before []outline.Contour) {
	s.push(entry{label: label, contours: outline.CloneAll(before)})
	s.redo = nil
	s.dirty = true
}

// commitComponents records a component tree snapshot together with the
// (unchanged) live contours.
func (s *State) commitComponents(label string, before []outline.Component) {
	s.push(entry{
		label:          label,
		contours:       s.snapshot(),
		components:     outline.CloneComponents(before),
		withComponents: true,
	})
	s.redo = nil
	s.dirty = true
}

func (s *State) push(e entry) {
	s.undo = append(s.undo, e)
	if over := len(s.undo) - s.maxUndo; over > 0 {
		tracer().Debugf("undo history full, evicting %d entries", over)
		s.undo = slices.Delete(s.undo, 0, over)
	}
}

func (s *State) undoStep() {
	if len(s.undo) == 0 {
		return
	}
	e := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, s.current(e))
	s.restore(e)
}

func (s *State) redoStep() {
	if len(s.redo) == 0 {
		return
	}
	e := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.push(s.current(e))
	s.restore(e)
}

// current captures the live state in the shape of e, so that e can be
// reverted later.
func (s *State) current(e entry) entry {
	cur := entry{label: e.label, contours: s.snapshot()}
	if e.withComponents {
		cur.components = outline.CloneComponents(s.components)
		cur.withComponents = true
	}
	return cur
}

// restore installs a popped entry. Popped entries are no longer referenced
// by the history, so their storage is adopted.
func (s *State) restore(e entry) {
	s.contours = e.contours
	if e.withComponents {
		s.components = e.components
	}
	s.selection = outline.Selection{}
	s.endDrawing()
	s.dirty = true
}

func (s *State) endDrawing() {
	s.activePath = 0
	s.drawing = false
}
