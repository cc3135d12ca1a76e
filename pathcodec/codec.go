/*
Package pathcodec converts between contours and the interchange path-command
string exchanged with outline storage.

The interchange format is a sequence of single-letter commands M, L, Q, C and
Z (case-insensitive) followed by coordinate pairs:

	M 0 0 L 100 0 L 100 -200 Z

The interchange format stores Y pointing down, so every Y coordinate is negated
when crossing the boundary. Point identifiers are not part of the format;
decoding issues fresh identifiers for every point.

Decoding never fails. Tokens that cannot be interpreted are skipped and every
command which could be parsed is geometrically exact. Clients interested in
what has been skipped may use DecodeStrict.
*/
package pathcodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyph.codec'
func tracer() tracing.Trace {
	return tracing.Select("glyph.codec")
}

// SyntaxError describes an interchange token which has been skipped.
type SyntaxError struct {
	Pos   int    // byte offset of the token
	Token string // offending token text
	Issue string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("path syntax at %d (%q): %s", e.Pos, e.Token, e.Issue)
}

// Decode parses an interchange string into contours, drawing point and contour
// identifiers from ids. If ids is nil, a fresh identifier source is used.
func Decode(text string, ids *outline.IDSource) []outline.Contour {
	cs, _ := decode(text, ids)
	return cs
}

// DecodeStrict is Decode, but reports every skipped token. The contours
// returned are the same as the ones Decode returns.
func DecodeStrict(text string, ids *outline.IDSource) ([]outline.Contour, error) {
	cs, issues := decode(text, ids)
	if len(issues) == 0 {
		return cs, nil
	}
	errs := make([]error, len(issues))
	for i, iss := range issues {
		errs[i] = iss
	}
	return cs, errors.Join(errs...)
}

// arity returns the count of numbers a command letter consumes.
func arity(cmd byte) int {
	switch cmd {
	case 'M', 'L':
		return 2
	case 'Q':
		return 4
	case 'C':
		return 6
	}
	return 0
}

// decoder accumulates contours while tokens stream in.
type decoder struct {
	ids      *outline.IDSource
	contours []outline.Contour
	current  *outline.Contour
	issues   []*SyntaxError
}

func (d *decoder) issue(pos int, tok, msg string) {
	d.issues = append(d.issues, &SyntaxError{Pos: pos, Token: tok, Issue: msg})
}

func (d *decoder) finish() {
	if d.current != nil {
		d.contours = append(d.contours, *d.current)
		d.current = nil
	}
}

func (d *decoder) point(x, y float64) outline.Point {
	fy := -y
	if fy == 0 {
		fy = 0 // no negative zeros
	}
	return outline.Point{ID: d.ids.Point(), X: x, Y: fy}
}

func (d *decoder) emit(cmd byte, f []float64, pos int) {
	if cmd == 'M' {
		d.finish()
		d.current = &outline.Contour{ID: d.ids.Contour()}
		d.current.Commands = append(d.current.Commands, outline.MoveTo(d.point(f[0], f[1])))
		return
	}
	if d.current == nil || d.current.IsClosed() {
		d.issue(pos, string(cmd), "drawing command without current contour")
		return
	}
	var c outline.Command
	switch cmd {
	case 'L':
		c = outline.LineTo(d.point(f[0], f[1]))
	case 'Q':
		c = outline.QuadTo(d.point(f[0], f[1]), d.point(f[2], f[3]))
	case 'C':
		c = outline.CubicTo(d.point(f[0], f[1]), d.point(f[2], f[3]), d.point(f[4], f[5]))
	}
	d.current.Commands = append(d.current.Commands, c)
}

func (d *decoder) close(pos int) {
	if d.current == nil || d.current.IsClosed() {
		d.issue(pos, "Z", "close without open contour")
		return
	}
	d.current.Commands = append(d.current.Commands, outline.Close())
	d.finish()
}

func decode(text string, ids *outline.IDSource) ([]outline.Contour, []*SyntaxError) {
	if ids == nil {
		ids = outline.NewIDSource()
	}
	d := &decoder{ids: ids}
	var cmd byte // current command letter, 0 if numbers are to be skipped
	var nums [6]float64
	n, start := 0, 0 // numbers collected for current command, position of command
	for _, tok := range tokenize(text) {
		if tok.letter != 0 {
			if n > 0 {
				d.issue(start, string(cmd), "incomplete coordinates dropped")
			}
			n, start = 0, tok.pos
			switch c := upper(tok.letter); c {
			case 'M', 'L', 'Q', 'C':
				cmd = c
			case 'Z':
				d.close(tok.pos)
				cmd = 0
			default:
				d.issue(tok.pos, string(tok.letter), "unknown command")
				cmd = 0
			}
			continue
		}
		if tok.bad {
			d.issue(tok.pos, tok.text, "not a number")
			continue
		}
		if cmd == 0 {
			d.issue(tok.pos, tok.text, "number without command")
			continue
		}
		nums[n] = tok.num
		n++
		if n == arity(cmd) {
			d.emit(cmd, nums[:n], start)
			n = 0
			if cmd == 'M' { // additional pairs after M are implicit line-tos
				cmd = 'L'
			}
		}
	}
	if n > 0 {
		d.issue(start, string(cmd), "incomplete coordinates dropped")
	}
	d.finish()
	if len(d.issues) > 0 {
		tracer().Debugf("decoded %d contours, skipped %d tokens", len(d.contours), len(d.issues))
	}
	return d.contours, d.issues
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// --- Encoding --------------------------------------------------------------

// Encode serializes contours into the interchange format. Numbers are written
// in their shortest exact representation, so decoding the result reproduces
// every coordinate bit for bit.
func Encode(cs []outline.Contour) string {
	var sb strings.Builder
	for _, c := range cs {
		for _, cmd := range c.Commands {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cmd.Op.Letter())
			for _, p := range cmd.Points() {
				sb.WriteByte(' ')
				sb.WriteString(formatNumber(p.X))
				sb.WriteByte(' ')
				sb.WriteString(formatNumber(-p.Y))
			}
		}
	}
	return sb.String()
}

func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
