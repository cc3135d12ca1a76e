package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/geom"
	"github.com/npillmayer/glyphedit/glyphdoc"
	"github.com/npillmayer/glyphedit/interact"
	"github.com/npillmayer/glyphedit/internal/preview"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/pterm/pterm"
)

var errArgs = errors.New("wrong number of arguments, try 'help'")

// --- Documents ---------------------------------------------------------

func openOp(intp *Intp, args []string) (error, bool) {
	if len(args) != 1 {
		return errArgs, false
	}
	name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	intp.reset(name)
	var r outline.Resolver
	if intp.src != nil {
		r = intp.src
	}
	doc, err := glyphdoc.Open(args[0], intp.state, r)
	if err != nil {
		return err, false
	}
	if doc.Name != "" {
		intp.glyph = doc.Name
		intp.session.SetFocusedGlyph(doc.Name)
	}
	pterm.Printf("opened glyph %s with %d layers\n", intp.glyph, len(doc.Layers))
	return nil, false
}

func loadOp(intp *Intp, args []string) (error, bool) {
	if len(args) != 1 {
		return errArgs, false
	}
	if intp.src == nil {
		return errors.New("no font loaded, start with -font"), false
	}
	r, err := parseRune(args[0])
	if err != nil {
		return err, false
	}
	g, err := intp.src.Glyph(r)
	if err != nil {
		return err, false
	}
	intp.reset(g.Name)
	if err := intp.state.Apply(editstate.SetPaths{Contours: g.Contours(intp.state.IDs())}); err != nil {
		return err, false
	}
	pterm.Printf("loaded glyph %s (index %d, advance %g)\n", g.Name, g.Index, g.Metrics.Advance)
	return nil, false
}

func saveOp(intp *Intp, args []string) (error, bool) {
	if len(args) != 1 {
		return errArgs, false
	}
	if err := glyphdoc.Save(args[0], intp.state, intp.glyph); err != nil {
		return err, false
	}
	pterm.Printf("saved %s\n", args[0])
	return nil, false
}

func renderOp(intp *Intp, args []string) (error, bool) {
	if len(args) != 1 {
		return errArgs, false
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err, false
	}
	defer f.Close()
	opts := preview.DefaultOptions()
	opts.ShowPoints = true
	return preview.WritePNG(f, intp.state.Render(), opts), false
}

// --- Editing -----------------------------------------------------------

func actionOp(a editstate.Action) func(*Intp, []string) (error, bool) {
	return func(intp *Intp, args []string) (error, bool) {
		return intp.state.Apply(a), false
	}
}

func keyShortcut(k interact.Key) func(*Intp, []string) (error, bool) {
	return func(intp *Intp, args []string) (error, bool) {
		if !intp.ctrl.KeyDown(k, interact.ModCtrl) {
			pterm.Info.Println("nothing to do")
		}
		return nil, false
	}
}

func selectOp(intp *Intp, args []string) (error, bool) {
	if len(args) == 0 {
		return errArgs, false
	}
	switch strings.ToLower(args[0]) {
	case "all":
		return intp.state.Apply(editstate.SelectAll{}), false
	case "none":
		return intp.state.Apply(editstate.ClearSelection{}), false
	}
	sel := outline.Selection{}
	cs := intp.state.Contours()
	for _, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("point id %q: %w", arg, err), false
		}
		if _, ok := outline.FindPoint(cs, outline.PointID(n)); !ok {
			return fmt.Errorf("no point %d", n), false
		}
		sel.AddPoint(outline.PointID(n))
	}
	return intp.state.Apply(editstate.SetSelection{Selection: sel}), false
}

func toolOp(intp *Intp, args []string) (error, bool) {
	if len(args) != 1 {
		return errArgs, false
	}
	var mode editstate.ToolMode
	switch strings.ToLower(args[0]) {
	case "select":
		mode = editstate.ToolSelect
	case "pen":
		mode = editstate.ToolPen
	case "hand":
		mode = editstate.ToolHand
	default:
		return fmt.Errorf("unknown tool %q", args[0]), false
	}
	return intp.state.Apply(editstate.SetToolMode{Mode: mode}), false
}

// transform applies an affine transform to the selection as one undo step.
func (intp *Intp) transform(t func(pivot geom.Vec) geom.Affine) error {
	sel := intp.state.Selection()
	box, ok := geom.SelectionBoundingBox(intp.state.Contours(), sel)
	if !ok {
		return errors.New("nothing selected")
	}
	return intp.state.Apply(editstate.ApplyTransform{Transform: t(box.Center()), Selection: sel})
}

func moveOp(intp *Intp, args []string) (error, bool) {
	f, err := floats(args, 2, 2)
	if err != nil {
		return err, false
	}
	return intp.transform(func(geom.Vec) geom.Affine { return geom.Translation(f[0], f[1]) }), false
}

func scaleOp(intp *Intp, args []string) (error, bool) {
	f, err := floats(args, 1, 2)
	if err != nil {
		return err, false
	}
	sx, sy := f[0], f[0]
	if len(f) == 2 {
		sy = f[1]
	}
	return intp.transform(func(c geom.Vec) geom.Affine { return geom.ScalingAbout(c, sx, sy) }), false
}

func rotateOp(intp *Intp, args []string) (error, bool) {
	f, err := floats(args, 1, 1)
	if err != nil {
		return err, false
	}
	return intp.transform(func(c geom.Vec) geom.Affine { return geom.RotationAbout(c, f[0]) }), false
}

func convertOp(intp *Intp, args []string) (error, bool) {
	if len(args) != 1 {
		return errArgs, false
	}
	var op outline.Op
	switch strings.ToLower(args[0]) {
	case "line":
		op = outline.OpLineTo
	case "quad":
		op = outline.OpQuadTo
	case "cubic":
		op = outline.OpCubicTo
	default:
		return fmt.Errorf("cannot convert to %q, expected line, quad or cubic", args[0]), false
	}
	return intp.state.Apply(editstate.ConvertSegments{To: op}), false
}

// --- Pointer and keyboard ----------------------------------------------

func keyOp(intp *Intp, args []string) (error, bool) {
	if len(args) == 0 {
		return errArgs, false
	}
	k, ok := interact.ParseKey(args[0])
	if !ok {
		return fmt.Errorf("unknown key %q", args[0]), false
	}
	mods, err := parseMods(args[1:])
	if err != nil {
		return err, false
	}
	if !intp.ctrl.KeyDown(k, mods) {
		pterm.Info.Println("key not handled")
	}
	return nil, false
}

// clickOp presses and releases the primary button at a screen position.
func clickOp(intp *Intp, args []string) (error, bool) {
	if len(args) < 2 {
		return errArgs, false
	}
	f, err := floats(args[:2], 2, 2)
	if err != nil {
		return err, false
	}
	mods, err := parseMods(args[2:])
	if err != nil {
		return err, false
	}
	ev := interact.PointerEvent{X: f[0], Y: f[1], Button: interact.ButtonPrimary, Mods: mods}
	intp.ctrl.PointerDown(ev)
	intp.ctrl.PointerUp(ev)
	return nil, false
}

// dragOp drags with the primary button between two screen positions,
// passing through intermediate positions.
func dragOp(intp *Intp, args []string) (error, bool) {
	if len(args) < 4 {
		return errArgs, false
	}
	f, err := floats(args[:4], 4, 4)
	if err != nil {
		return err, false
	}
	mods, err := parseMods(args[4:])
	if err != nil {
		return err, false
	}
	from, to := geom.V(f[0], f[1]), geom.V(f[2], f[3])
	ev := func(p geom.Vec) interact.PointerEvent {
		return interact.PointerEvent{X: p.X, Y: p.Y, Button: interact.ButtonPrimary, Mods: mods}
	}
	intp.ctrl.PointerDown(ev(from))
	const steps = 8
	for i := 1; i <= steps; i++ {
		intp.ctrl.PointerMove(ev(from.Lerp(to, float64(i)/steps)))
		if i == steps/2 {
			tracer().Debugf("dragging: %s", intp.ctrl.Gesture())
		}
	}
	intp.ctrl.PointerUp(ev(to))
	return nil, false
}

func viewOp(intp *Intp, args []string) (error, bool) {
	if len(args) == 0 {
		v := intp.state.View()
		pterm.Printf("view scale=%g origin=(%g,%g)\n", v.Scale, v.OriginX, v.OriginY)
		return nil, false
	}
	f, err := floats(args, 3, 3)
	if err != nil {
		return err, false
	}
	v := geom.View{Scale: f[0], OriginX: f[1], OriginY: f[2]}
	return intp.state.Apply(editstate.SetView{View: v}), false
}

func layerOp(intp *Intp, args []string) (error, bool) {
	if len(args) == 0 {
		printLayers(intp.state)
		return nil, false
	}
	if len(args) != 2 {
		return errArgs, false
	}
	var a editstate.Action
	switch strings.ToLower(args[0]) {
	case "add":
		a = editstate.AddLayer{Layer: &outline.DrawingLayer{ID: args[1], Name: args[1]}}
	case "use":
		a = editstate.SetActiveLayer{ID: args[1]}
	case "remove":
		a = editstate.RemoveLayer{ID: args[1]}
	default:
		return fmt.Errorf("unknown layer command %q", args[0]), false
	}
	return intp.state.Apply(a), false
}

// --- Argument parsing --------------------------------------------------

func floats(args []string, least, most int) ([]float64, error) {
	if len(args) < least || len(args) > most {
		return nil, errArgs
	}
	f := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", a)
		}
		f[i] = v
	}
	return f, nil
}

func parseMods(args []string) (interact.Mods, error) {
	var mods interact.Mods
	for _, a := range args {
		for _, m := range strings.Split(strings.ToLower(a), "+") {
			switch m {
			case "shift":
				mods |= interact.ModShift
			case "ctrl", "cmd":
				mods |= interact.ModCtrl
			case "alt":
				mods |= interact.ModAlt
			default:
				return 0, fmt.Errorf("unknown modifier %q", m)
			}
		}
	}
	return mods, nil
}

// parseRune accepts a single character or a code point as U+XXXX.
func parseRune(arg string) (rune, error) {
	if hex, ok := strings.CutPrefix(strings.ToUpper(arg), "U+"); ok {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid code point %q", arg)
		}
		return rune(n), nil
	}
	if r := []rune(arg); len(r) == 1 {
		return r[0], nil
	}
	return 0, fmt.Errorf("expected a single character, have %q", arg)
}
