package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/glyphedit/glyphsrc"
	"github.com/thatisuday/commando"
)

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setup(flags)
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	src := openSource(fontPath, flags)
	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Name: %s\n", src.FontName())
	fmt.Printf("Glyphs: %d\n", src.NumGlyphs())
	g, err := src.GlyphByIndex(0)
	if err != nil {
		fatalf("%v", err)
	}
	m := g.Metrics
	fmt.Printf("Units per em: %d\n", m.UnitsPerEm)
	fmt.Printf("Ascender: %g  Descender: %g\n", m.Ascender, m.Descender)
	fmt.Printf("x-height: %g  cap height: %g\n", m.XHeight, m.CapHeight)
}

func runDumpCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setup(flags)
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	runes, err := inputRunes(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	src := openSource(fontPath, flags)
	for _, r := range runes {
		g, err := src.Glyph(r)
		if err != nil {
			fmt.Printf("%U: %v\n", r, err)
			continue
		}
		printGlyph(g)
	}
}

func printGlyph(g glyphsrc.GlyphRecord) {
	fmt.Printf("%U %q glyph=%d name=%s\n", g.Rune, g.Rune, g.Index, g.Name)
	b := g.Metrics.BBox
	fmt.Printf("  advance=%g bbox=(%g,%g)-(%g,%g)\n", g.Metrics.Advance, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	cs := g.Contours(nil)
	n := 0
	for _, c := range cs {
		n += len(c.Points())
	}
	fmt.Printf("  contours=%d points=%d\n", len(cs), n)
	fmt.Printf("  path: %s\n", g.Path)
}
