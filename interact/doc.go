/*
Package interact turns raw pointer and keyboard events into editing actions.

A Controller sits between a host UI and an editstate.State. It classifies
a pointer press by what lies under the cursor (a point, a transform handle,
a segment, a component, a focused image layer, or nothing) and the current
tool, and runs the matching gesture:

	select tool   move points, scale or rotate the selection, rubber-band
	              select, move a locked component, move/scale/rotate an image
	pen tool      add points, close the path, connect or extend open ends
	hand tool     pan the view (the middle button pans with every tool)

A press becomes a drag only after the cursor travelled the drag threshold.
Drags produce live actions on every pointer move and exactly one commit on
release. Gestures with zero net movement are dropped without a commit.

Move gestures remember the total delta already applied and send only the
difference to the state, so replaying a pointer position never moves a point
twice. Scale and rotate gestures recompute absolute positions from the
positions captured at drag start.

Controller is not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package interact

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyph.interact'
func tracer() tracing.Trace {
	return tracing.Select("glyph.interact")
}
