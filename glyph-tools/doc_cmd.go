package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/glyphedit/config"
	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/glyphdoc"
	"github.com/npillmayer/glyphedit/glyphsrc"
	"github.com/npillmayer/glyphedit/internal/preview"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/glyphedit/pathcodec"
	"github.com/thatisuday/commando"
)

func runRenderCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	conf := setup(flags)
	input := strings.TrimSpace(args["input"].Value)
	if input == "" {
		fatalf("input path is required")
	}
	s := editstate.New(conf.StateOptions()...)
	if _, err := glyphdoc.FormatOf(input); err == nil {
		if _, err := glyphdoc.Open(input, s, nil); err != nil {
			fatalf("%v", err)
		}
	} else {
		src := openSource(input, flags)
		g, err := src.Glyph(singleRune(args["text"], flags["codepoints"]))
		if err != nil {
			fatalf("%v", err)
		}
		if err := s.Apply(editstate.SetPaths{Contours: g.Contours(s.IDs())}); err != nil {
			fatalf("%v", err)
		}
	}
	opts := preview.DefaultOptions()
	opts.Width = mustFlagInt(flags["width"], "width")
	opts.Height = mustFlagInt(flags["height"], "height")
	opts.ShowPoints = mustFlagBool(flags["points"], "points")
	output := mustFlagString(flags["output"], "output")
	f, err := os.Create(output)
	if err != nil {
		fatalf("cannot create %s: %v", output, err)
	}
	defer f.Close()
	if err := preview.WritePNG(f, s.Render(), opts); err != nil {
		fatalf("cannot write %s: %v", output, err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", output, opts.Width, opts.Height)
}

func runExtractCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setup(flags)
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	src := openSource(fontPath, flags)
	g, err := src.Glyph(singleRune(args["text"], flags["codepoints"]))
	if err != nil {
		fatalf("%v", err)
	}
	output := mustFlagString(flags["output"], "output")
	if err := glyphdoc.Write(output, documentOf(g)); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote glyph %s to %s\n", g.Name, output)
}

// documentOf creates a single-layer glyph document.
func documentOf(g glyphsrc.GlyphRecord) glyphdoc.Document {
	doc := glyphdoc.Document{
		Name:    g.Name,
		Advance: g.Metrics.Advance,
		Layers:  []glyphdoc.Layer{{ID: outline.OutlineLayerID, Name: "Outline", Path: g.Path}},
	}
	if g.Rune != 0 {
		doc.Unicode = fmt.Sprintf("%U", g.Rune)
	}
	return doc
}

func runRoundtripCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	conf := setup(flags)
	input := strings.TrimSpace(args["input"].Value)
	if input == "" {
		fatalf("input path is required")
	}
	output := mustFlagString(flags["output"], "output")
	if output == "-" {
		output = ""
	}
	issues, err := roundtrip(input, output, conf)
	if err != nil {
		fatalf("%v", err)
	}
	for _, issue := range issues {
		fmt.Println(issue)
	}
	if len(issues) > 0 {
		os.Exit(2)
	}
	fmt.Printf("%s: ok\n", filepath.Base(input))
}

// roundtrip loads a glyph document into an editor state and reports drawing
// layers whose paths do not survive decoding and re-encoding unchanged. If
// output is not empty, the editor's glyph is saved there.
func roundtrip(input, output string, conf config.Config) ([]string, error) {
	s := editstate.New(conf.StateOptions()...)
	doc, err := glyphdoc.Open(input, s, nil)
	if err != nil {
		return nil, err
	}
	var issues []string
	for _, l := range doc.Layers {
		if l.Image != nil {
			continue
		}
		cs, err := pathcodec.DecodeStrict(l.Path, nil)
		if err != nil {
			issues = append(issues, fmt.Sprintf("layer %s: %v", l.ID, err))
			continue
		}
		if again := pathcodec.Encode(cs); pathcodec.Encode(pathcodec.Decode(again, nil)) != again {
			issues = append(issues, fmt.Sprintf("layer %s: path does not round-trip", l.ID))
		}
	}
	if output != "" {
		out := glyphdoc.FromFrame(s.Render(), doc.Name)
		out.Unicode, out.Advance = doc.Unicode, doc.Advance
		if err := glyphdoc.Write(output, out); err != nil {
			return issues, err
		}
	}
	return issues, nil
}
