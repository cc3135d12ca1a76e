/*
Package config holds the editor settings and the tracing setup of the
glyph editing tools.

Settings are read from a TOML file:

	[editor]
	hit_radius_px     = 8.0
	drag_threshold_px = 3.0
	max_undo          = 50
	paste_offset      = 10.0
	handle_pad_px     = 8.0

	[trace]
	level = "Info"
	keys  = ["glyph.edit", "glyph.interact"]

Missing keys keep their defaults; unknown keys are an error.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/hittest"
	"github.com/npillmayer/glyphedit/interact"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pelletier/go-toml/v2"
)

// TraceKeys are the tracing keys used by the packages of this module.
var TraceKeys = []string{"glyph.outline", "glyph.codec", "glyph.edit", "glyph.interact", "glyph.source"}

// Config is the complete settings tree.
type Config struct {
	Editor Editor `toml:"editor"`
	Trace  Trace  `toml:"trace"`
}

// Editor holds interaction settings. Pixel values are screen distances.
type Editor struct {
	HitRadiusPx     float64 `toml:"hit_radius_px"`
	DragThresholdPx float64 `toml:"drag_threshold_px"`
	MaxUndo         int     `toml:"max_undo"`
	PasteOffset     float64 `toml:"paste_offset"`
	HandlePadPx     float64 `toml:"handle_pad_px"`
}

// Trace selects the trace level and the keys it applies to. An empty key
// list means all of TraceKeys.
type Trace struct {
	Level string   `toml:"level"`
	Keys  []string `toml:"keys"`
}

// Default returns the built-in settings.
func Default() Config {
	tol := hittest.DefaultTolerances()
	return Config{
		Editor: Editor{
			HitRadiusPx:     tol.HitRadius,
			DragThresholdPx: interact.DefaultDragThreshold,
			MaxUndo:         editstate.DefaultMaxUndo,
			PasteOffset:     interact.DefaultPasteOffset,
			HandlePadPx:     tol.Pad,
		},
		Trace: Trace{Level: "Info"},
	}
}

// ErrInvalid is wrapped by errors for settings out of range.
var ErrInvalid = errors.New("invalid setting")

// Load reads settings from a TOML file. A path of "" yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	conf, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

// Parse reads TOML settings on top of the defaults.
func Parse(r io.Reader) (Config, error) {
	conf := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&conf); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return Config{}, err
	}
	return conf, conf.Validate()
}

// Write stores conf as TOML.
func (conf Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).SetIndentTables(true).Encode(conf)
}

// Validate checks value ranges.
func (conf Config) Validate() error {
	e := conf.Editor
	switch {
	case e.HitRadiusPx <= 0:
		return fmt.Errorf("%w: editor.hit_radius_px must be positive", ErrInvalid)
	case e.DragThresholdPx < 0:
		return fmt.Errorf("%w: editor.drag_threshold_px must not be negative", ErrInvalid)
	case e.MaxUndo < 1:
		return fmt.Errorf("%w: editor.max_undo must be at least 1", ErrInvalid)
	case e.HandlePadPx < 0:
		return fmt.Errorf("%w: editor.handle_pad_px must not be negative", ErrInvalid)
	}
	if err := checkLevel(conf.Trace.Level); err != nil {
		return err
	}
	for _, k := range conf.Trace.Keys {
		if !slices.Contains(TraceKeys, k) {
			return fmt.Errorf("%w: unknown trace key %q", ErrInvalid, k)
		}
	}
	return nil
}

// Tolerances returns the hit-testing tolerances.
func (conf Config) Tolerances() hittest.Tolerances {
	tol := hittest.DefaultTolerances()
	tol.HitRadius = conf.Editor.HitRadiusPx
	tol.Pad = conf.Editor.HandlePadPx
	return tol
}

// StateOptions returns the options of an editstate.State.
func (conf Config) StateOptions() []editstate.Option {
	return []editstate.Option{editstate.WithMaxUndo(conf.Editor.MaxUndo)}
}

// ControllerOptions returns the options of an interact.Controller.
// Additional options, e.g. a shared clipboard, are appended.
func (conf Config) ControllerOptions(more ...interact.Option) []interact.Option {
	return append([]interact.Option{
		interact.WithTolerances(conf.Tolerances()),
		interact.WithDragThreshold(conf.Editor.DragThresholdPx),
		interact.WithPasteOffset(conf.Editor.PasteOffset),
	}, more...)
}

// --- Tracing ---------------------------------------------------------------

func checkLevel(l string) error {
	switch l {
	case "Debug", "Info", "Error":
		return nil
	}
	return fmt.Errorf("%w: trace level %q, expected Debug, Info or Error", ErrInvalid, l)
}

func (conf Config) traceKeys() []string {
	if len(conf.Trace.Keys) == 0 {
		return TraceKeys
	}
	return conf.Trace.Keys
}

// TraceConf returns a tracing configuration for trace2go, using the go
// logging adapter.
func (conf Config) TraceConf() testconfig.Conf {
	tc := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, k := range conf.traceKeys() {
		tc["trace."+k] = conf.Trace.Level
	}
	return tc
}

// SetupTracing registers the go logging adapter and configures the traces
// of this module. It is meant to be called once from a main package.
func (conf Config) SetupTracing() error {
	if err := checkLevel(conf.Trace.Level); err != nil {
		return err
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf.TraceConf(), "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	for _, k := range conf.traceKeys() {
		t := tracing.Select(k)
		switch conf.Trace.Level {
		case "Debug":
			t.SetTraceLevel(tracing.LevelDebug)
		case "Info":
			t.SetTraceLevel(tracing.LevelInfo)
		default:
			t.SetTraceLevel(tracing.LevelError)
		}
	}
	return nil
}
