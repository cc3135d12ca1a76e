/*
Package editstate holds the authoritative editing state of a glyph and the
action processor mutating it.

A State owns the live contour set, the selection, tool mode, view transform,
layers, the composite-component tree, and a bounded undo/redo history. It is
mutated exclusively through State.Apply, which accepts a closed set of
actions.

Two kinds of mutation exist. Live actions (MovePointsLive,
TransformPointsLive, MoveComponentLive) change the live contours immediately
and mark the state dirty, but never touch the history; they fire on every
pointer move of a drag. Commit actions (CommitMove, CommitTransform,
CommitComponentMove) push the pre-gesture snapshot captured by the caller
and change nothing else. Together they produce exactly one undo step per
gesture. RevertLive resets a gesture without net effect to its start
snapshot. All other editing actions snapshot, mutate and commit in one step.

Snapshots are deep copies; the live contour set never shares storage with
the history.

State is not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package editstate

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyph.edit'
func tracer() tracing.Trace {
	return tracing.Select("glyph.edit")
}
