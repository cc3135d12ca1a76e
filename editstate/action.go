package editstate

import (
	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/outline"
)

// Action is a state transition accepted by State.Apply. The set of actions
// is closed; clients cannot add their own.
type Action interface {
	name() string
}

// --- Contours and history --------------------------------------------------

// SetPaths replaces the live contours, e.g. when a glyph is (re)loaded.
// Selection, history, drawing state and the dirty flag are reset.
// Identifiers found in Contours are reserved in the state's IDSource.
type SetPaths struct {
	Contours []outline.Contour
}

// MovePointsLive displaces points by per-point deltas. Deltas are
// incremental: callers send only the movement since the previous live move.
// No history entry is recorded.
type MovePointsLive struct {
	Delta map[outline.PointID]geom.Vec
}

// TransformPointsLive positions points absolutely. Callers compute the
// positions from the gesture's start snapshot. No history entry is recorded.
type TransformPointsLive struct {
	Positions map[outline.PointID]geom.Vec
}

// CommitMove records the end of a move gesture. Before is the contour set
// captured when the gesture started.
type CommitMove struct {
	Before []outline.Contour
}

// CommitTransform records the end of a scale or rotate gesture. Before is the
// contour set captured when the gesture started.
type CommitTransform struct {
	Before []outline.Contour
}

// RevertLive drops the live changes of a gesture. The contours are reset to
// Before and the dirty flag to Dirty, both captured when the gesture started.
// No history entry is recorded.
type RevertLive struct {
	Before []outline.Contour
	Dirty  bool
}

// ApplyTransform applies an affine transform to every point touched by
// Selection (see geom.ExpandSelection) as one undoable step.
type ApplyTransform struct {
	Transform geom.Affine
	Selection outline.Selection
}

// Undo restores the most recent history entry. It is a no-op on an empty
// history.
type Undo struct{}

// Redo re-applies the most recently undone entry. It is a no-op if nothing
// has been undone since the last commit.
type Redo struct{}

// --- Editing ---------------------------------------------------------------

// DeleteSelection removes every selected point. Selected segments contribute
// their end points.
type DeleteSelection struct{}

// ConvertSegments converts every selected segment. With To set to
// outline.OpQuadTo or outline.OpCubicTo, straight segments become curves with
// default control points. With outline.OpLineTo, curves are straightened.
type ConvertSegments struct {
	To outline.Op
}

// Paste inserts the contents of a clipboard payload, displaced by (DX, DY).
// The pasted points become the selection.
type Paste struct {
	Data   Clipboard
	DX, DY float64
}

// Cut copies the selection into the state's clipboard slot (see
// State.Clipboard) and deletes it.
type Cut struct{}

// --- Pen tool --------------------------------------------------------------

// AddPoint adds an on-curve point at a font-space position. Without a path
// being drawn it starts a new contour, otherwise it extends the active one.
type AddPoint struct {
	At geom.Vec
}

// ClosePath closes the contour being drawn and ends drawing.
type ClosePath struct{}

// EndPath ends drawing, leaving the active contour open.
type EndPath struct{}

// ConnectPoints joins two end points of open contours by a line. If both
// belong to the same contour, the contour is closed. Otherwise the two
// contours are merged into one.
type ConnectPoints struct {
	From, To outline.PointID
}

// ExtendPath draws a new line segment from an end point of an open contour
// to a new point.
type ExtendPath struct {
	From outline.PointID
	At   geom.Vec
}

// --- Selection, tool and view ----------------------------------------------

// SetSelection replaces the selection.
type SetSelection struct {
	Selection outline.Selection
}

// SelectAll selects every point of the live contours.
type SelectAll struct{}

// ClearSelection empties the selection.
type ClearSelection struct{}

// SetToolMode switches the tool. Leaving the pen tool ends drawing.
type SetToolMode struct {
	Mode ToolMode
}

// SetView replaces the view transform.
type SetView struct {
	View geom.View
}

// PanView shifts the view by a screen-space delta.
type PanView struct {
	DX, DY float64
}

// ZoomView zooms by Factor, keeping the font position under the screen
// position Anchor in place.
type ZoomView struct {
	Factor float64
	Anchor geom.Vec
}

// --- Layers ----------------------------------------------------------------

// AddLayer appends a layer. Layer identifiers must be unique.
type AddLayer struct {
	Layer outline.Layer
}

// RemoveLayer removes a layer. The outline layer cannot be removed.
type RemoveLayer struct {
	ID string
}

// SetActiveLayer makes a drawing layer the one being edited. Its contours are
// loaded into the live buffer; the previous layer keeps the live contours.
type SetActiveLayer struct {
	ID string
}

// SetFocusedLayer selects the layer receiving image gestures. An empty ID
// clears the focus.
type SetFocusedLayer struct {
	ID string
}

// ImagePlacement positions an image layer in font space.
type ImagePlacement struct {
	ScaleX, ScaleY   float64
	RotationDeg      float64
	CenterX, CenterY float64
}

// SetImageTransform repositions an image layer.
type SetImageTransform struct {
	ID        string
	Placement ImagePlacement
}

// SetImageOpacity changes the opacity of an image layer. Values are clamped
// to [0,1].
type SetImageOpacity struct {
	ID      string
	Opacity float64
}

// --- Components ------------------------------------------------------------

// SetComponents replaces the component tree, e.g. when a composite glyph is
// loaded.
type SetComponents struct {
	Components []outline.Component
}

// SetActiveComponent enters the component at Path, or leaves component
// editing for an empty Path. Entering an unlocked component loads its outline
// into the live buffer; leaving it writes the edited outline back to every
// instance of the same target.
type SetActiveComponent struct {
	Path outline.ComponentPath
}

// MoveComponentLive displaces the component at Path by an incremental delta.
// No history entry is recorded.
type MoveComponentLive struct {
	Path   outline.ComponentPath
	DX, DY float64
}

// CommitComponentMove records the end of a component move gesture. Before is
// the component tree captured when the gesture started.
type CommitComponentMove struct {
	Before []outline.Component
}

// SetComponentLocked locks or unlocks the component at Path.
type SetComponentLocked struct {
	Path   outline.ComponentPath
	Locked bool
}

// --- Document status -------------------------------------------------------

// MarkSaving flags a save in progress.
type MarkSaving struct {
	Saving bool
}

// MarkSaved clears the dirty and saving flags after a successful save.
type MarkSaved struct{}

func (SetPaths) name() string            { return "SetPaths" }
func (MovePointsLive) name() string      { return "MovePointsLive" }
func (TransformPointsLive) name() string { return "TransformPointsLive" }
func (CommitMove) name() string          { return "CommitMove" }
func (CommitTransform) name() string     { return "CommitTransform" }
func (RevertLive) name() string          { return "RevertLive" }
func (ApplyTransform) name() string      { return "ApplyTransform" }
func (Undo) name() string                { return "Undo" }
func (Redo) name() string                { return "Redo" }
func (DeleteSelection) name() string     { return "DeleteSelection" }
func (ConvertSegments) name() string     { return "ConvertSegments" }
func (Paste) name() string               { return "Paste" }
func (Cut) name() string                 { return "Cut" }
func (AddPoint) name() string            { return "AddPoint" }
func (ClosePath) name() string           { return "ClosePath" }
func (EndPath) name() string             { return "EndPath" }
func (ConnectPoints) name() string       { return "ConnectPoints" }
func (ExtendPath) name() string          { return "ExtendPath" }
func (SetSelection) name() string        { return "SetSelection" }
func (SelectAll) name() string           { return "SelectAll" }
func (ClearSelection) name() string      { return "ClearSelection" }
func (SetToolMode) name() string         { return "SetToolMode" }
func (SetView) name() string             { return "SetView" }
func (PanView) name() string             { return "PanView" }
func (ZoomView) name() string            { return "ZoomView" }
func (AddLayer) name() string            { return "AddLayer" }
func (RemoveLayer) name() string         { return "RemoveLayer" }
func (SetActiveLayer) name() string      { return "SetActiveLayer" }
func (SetFocusedLayer) name() string     { return "SetFocusedLayer" }
func (SetImageTransform) name() string   { return "SetImageTransform" }
func (SetImageOpacity) name() string     { return "SetImageOpacity" }
func (SetComponents) name() string       { return "SetComponents" }
func (SetActiveComponent) name() string  { return "SetActiveComponent" }
func (MoveComponentLive) name() string   { return "MoveComponentLive" }
func (CommitComponentMove) name() string { return "CommitComponentMove" }
func (SetComponentLocked) name() string  { return "SetComponentLocked" }
func (MarkSaving) name() string          { return "MarkSaving" }
func (MarkSaved) name() string           { return "MarkSaved" }
