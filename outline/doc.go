/*
Package outline holds the in-memory representation of glyph outlines.

An outline is a list of contours. Each contour is a sequence of commands
(MoveTo, LineTo, QuadTo, CubicTo, Close) carrying points in font design units
with the Y axis pointing up. Points carry stable identifiers; selections,
segment keys and undo snapshots refer to points by identifier only.

Segments are never stored. They are derived on demand by pairing every
on-curve point with its on-curve predecessor, plus a closing segment for closed
contours.

Package outline contains no editing behavior beyond construction and traversal.
Mutation is the business of package editstate.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package outline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyph.outline'
func tracer() tracing.Trace {
	return tracing.Select("glyph.outline")
}
