/*
Package glyphedit is an editing engine for vector glyph outlines.

A glyph is a set of contours made of move, line, quadratic, cubic and close
commands. Editing happens on an explicit state value (package editstate)
which is changed by applying actions only. Pointer and keyboard input is
turned into actions by a controller (package interact), which uses hit
testing (package hittest) to decide what is under the pointer.

Sub-packages:

▪︎ outline: contours, points, selections, layers and component references

▪︎ pathcodec: the SVG-style path string interchange format

▪︎ geom: vectors, affine transforms, bounding boxes and the screen view

▪︎ editstate: the editor state, edit history and actions

▪︎ interact: gestures, tools and key bindings

▪︎ session: clipboard and focus shared between open glyphs

▪︎ glyphsrc: glyph outlines and metrics from OpenType fonts

▪︎ glyphdoc: glyph documents in TOML or YAML

▪︎ config: editor settings

Commands glyphcli (an interactive editor shell) and glyph-tools (batch
utilities) are built on top of these packages.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphedit
