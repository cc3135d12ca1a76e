package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/glyphedit/config"
	"github.com/npillmayer/glyphedit/glyphsrc"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("glyph-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for inspecting, rendering and converting glyph outlines.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("info").
		SetDescription("Print font-wide information and metrics of a font.").
		SetShortDescription("font information").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("backend,b", "font backend: sfnt|gotext", commando.String, "sfnt").
		AddFlag("config,C", "settings file (TOML)", commando.String, "-").
		SetAction(runInfoCommand)

	commando.
		Register("dump").
		SetDescription("Print names, metrics and interchange paths of glyphs.").
		SetShortDescription("dump glyph outlines").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("text...", "characters to dump", "").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0041,U+00E9)", commando.String, "-").
		AddFlag("backend,b", "font backend: sfnt|gotext", commando.String, "sfnt").
		AddFlag("config,C", "settings file (TOML)", commando.String, "-").
		SetAction(runDumpCommand)

	commando.
		Register("render").
		SetDescription("Render a glyph of a font or a glyph document to a PNG image.").
		SetShortDescription("glyph to image").
		AddArgument("input", "OpenType font file or glyph document (.toml, .yaml)", "").
		AddArgument("text...", "character to render if input is a font", "").
		AddFlag("codepoints,c", "codepoint instead of text (e.g. U+0041)", commando.String, "-").
		AddFlag("backend,b", "font backend: sfnt|gotext", commando.String, "sfnt").
		AddFlag("output,o", "output PNG file", commando.String, "glyph.png").
		AddFlag("width,W", "image width in pixels", commando.Int, 256).
		AddFlag("height,H", "image height in pixels", commando.Int, 256).
		AddFlag("points,P", "mark on-curve and off-curve points", commando.Bool, nil).
		AddFlag("config,C", "settings file (TOML)", commando.String, "-").
		SetAction(runRenderCommand)

	commando.
		Register("extract").
		SetDescription("Create a glyph document from a glyph of a font.").
		SetShortDescription("font glyph to document").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("text...", "character to extract", "").
		AddFlag("codepoints,c", "codepoint instead of text (e.g. U+0041)", commando.String, "-").
		AddFlag("backend,b", "font backend: sfnt|gotext", commando.String, "sfnt").
		AddFlag("output,o", "output document (.toml, .yaml)", commando.String, "glyph.toml").
		AddFlag("config,C", "settings file (TOML)", commando.String, "-").
		SetAction(runExtractCommand)

	commando.
		Register("roundtrip").
		SetDescription("Load a glyph document into an editor, check the path codec and write it again.").
		SetShortDescription("check and convert documents").
		AddArgument("input", "glyph document (.toml, .yaml)", "").
		AddFlag("output,o", "output document (.toml, .yaml), '-' for none", commando.String, "-").
		AddFlag("config,C", "settings file (TOML)", commando.String, "-").
		SetAction(runRoundtripCommand)

	commando.Parse(nil)
}

// setup loads the settings named by the --config flag and configures tracing.
func setup(flags map[string]commando.FlagValue) config.Config {
	path := mustFlagString(flags["config"], "config")
	if path == "-" {
		path = ""
	}
	conf, err := config.Load(path)
	if err != nil {
		fatalf("%v", err)
	}
	if err := conf.SetupTracing(); err != nil {
		fatalf("%v", err)
	}
	return conf
}

func openSource(path string, flags map[string]commando.FlagValue) glyphsrc.Source {
	backend := mustFlagString(flags["backend"], "backend")
	var src glyphsrc.Source
	var err error
	switch strings.ToLower(backend) {
	case "sfnt":
		src, err = glyphsrc.OpenSFNT(path)
	case "gotext", "go-text", "typesetting":
		src, err = glyphsrc.OpenTypesetting(path)
	default:
		err = fmt.Errorf("unknown backend %q, expected sfnt or gotext", backend)
	}
	if err != nil {
		fatalf("%v", err)
	}
	return src
}

// inputRunes returns the runes given either as text arguments or by the
// --codepoints flag.
func inputRunes(textArg commando.ArgValue, cpFlag commando.FlagValue) ([]rune, error) {
	cp, err := cpFlag.GetString()
	if err != nil {
		return nil, fmt.Errorf("invalid --codepoints flag: %w", err)
	}
	if cp = strings.TrimSpace(cp); cp != "" && cp != "-" {
		return parseCodepoints(cp)
	}
	// commando joins variadic argument parts by comma
	text := strings.ReplaceAll(textArg.Value, ",", "")
	if text == "" {
		return nil, errors.New("no characters given")
	}
	return []rune(text), nil
}

func singleRune(textArg commando.ArgValue, cpFlag commando.FlagValue) rune {
	runes, err := inputRunes(textArg, cpFlag)
	if err != nil {
		fatalf("%v", err)
	}
	if len(runes) != 1 {
		fatalf("expected a single character, have %d", len(runes))
	}
	return runes[0]
}

func parseCodepoints(list string) ([]rune, error) {
	parts := splitCSVSpace(list)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	if r := rune(u); utf8.ValidRune(r) {
		return r, nil
	}
	return 0, fmt.Errorf("codepoint %q out of range", token)
}

func splitCSVSpace(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "glyph-tools: "+format+"\n", args...)
	os.Exit(1)
}
