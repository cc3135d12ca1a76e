/*
Package glyphsrc supplies glyph outlines and metrics from font files.

A Source answers requests for single glyphs, addressed by code point or by
glyph index. Outlines are delivered as interchange path strings (see package
pathcodec), ready to be loaded into an editor state with editstate.SetPaths.
Coordinates are font design units.

Two backends exist:

	OpenSFNT         golang.org/x/image/font/sfnt
	OpenTypesetting  github.com/go-text/typesetting

Both read TrueType and CFF outlines and flatten composite glyphs. Sources also
implement outline.Resolver, so a composite glyph of the host may reference
glyphs of a font by name, by code point ("U+00E9") or by index ("gid:42").
MapResolver is an in-memory resolver for glyphs not backed by a font.

Glyphs without a name in the font are named after their Unicode character
name, e.g. "LATIN SMALL LETTER E WITH ACUTE".

Sources are not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphsrc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyph.source'
func tracer() tracing.Trace {
	return tracing.Select("glyph.source")
}
