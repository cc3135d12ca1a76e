/*
Package glyphdoc stores glyphs being edited as documents.

A document holds the layers of a glyph, each drawing layer as an interchange
path string (see package pathcodec), and the top-level component references of
composite glyphs. Documents are written as TOML or YAML, depending on the file
extension:

	name    = "eacute"
	unicode = "U+00E9"
	advance = 556.0

	[[layers]]
	id   = "outline"
	name = "Outline"
	path = "M 0 0 L 100 0 L 100 -200 Z"

	[[components]]
	target = "acute"
	x      = 120.0
	y      = 0.0

Point identifiers, selection, view and history are not stored.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/npillmayer/glyphedit/pathcodec"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'glyph.edit'
func tracer() tracing.Trace {
	return tracing.Select("glyph.edit")
}

// Document is the persistent form of a glyph.
type Document struct {
	Name       string      `toml:"name" yaml:"name"`
	Unicode    string      `toml:"unicode,omitempty" yaml:"unicode,omitempty"`
	Advance    float64     `toml:"advance" yaml:"advance"`
	Layers     []Layer     `toml:"layers" yaml:"layers"`
	Components []Component `toml:"components,omitempty" yaml:"components,omitempty"`
}

// Layer is a drawing layer if Image is nil, an image layer otherwise.
type Layer struct {
	ID    string `toml:"id" yaml:"id"`
	Name  string `toml:"name" yaml:"name"`
	Path  string `toml:"path,omitempty" yaml:"path,omitempty"`
	Image *Image `toml:"image,omitempty" yaml:"image,omitempty"`
}

// Image is the placement of a reference bitmap.
type Image struct {
	Ref      string  `toml:"ref" yaml:"ref"`
	Width    float64 `toml:"width" yaml:"width"`
	Height   float64 `toml:"height" yaml:"height"`
	Opacity  float64 `toml:"opacity" yaml:"opacity"`
	ScaleX   float64 `toml:"scale_x" yaml:"scale_x"`
	ScaleY   float64 `toml:"scale_y" yaml:"scale_y"`
	Rotation float64 `toml:"rotation" yaml:"rotation"`
	CenterX  float64 `toml:"center_x" yaml:"center_x"`
	CenterY  float64 `toml:"center_y" yaml:"center_y"`
}

// Component references another glyph. Components are locked unless
// Unlocked is set.
type Component struct {
	Target   string  `toml:"target" yaml:"target"`
	X        float64 `toml:"x" yaml:"x"`
	Y        float64 `toml:"y" yaml:"y"`
	Unlocked bool    `toml:"unlocked,omitempty" yaml:"unlocked,omitempty"`
}

// Format is a file format for documents.
type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// ErrFormat is returned for file names with an unknown extension.
var ErrFormat = errors.New("unknown document format")

// FormatOf selects a format by the extension of a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("%w: %q", ErrFormat, path)
}

// --- Conversion from and to editor states ----------------------------------

// FromFrame captures the layers and components of an editor frame.
func FromFrame(f editstate.Frame, name string) Document {
	doc := Document{Name: name}
	for _, l := range f.Layers {
		switch l := l.(type) {
		case *outline.DrawingLayer:
			doc.Layers = append(doc.Layers, Layer{
				ID:   l.ID,
				Name: l.Name,
				Path: pathcodec.Encode(l.Contours),
			})
		case *outline.ImageLayer:
			doc.Layers = append(doc.Layers, Layer{
				ID:   l.ID,
				Name: l.Name,
				Image: &Image{
					Ref:      l.Ref,
					Width:    l.Width,
					Height:   l.Height,
					Opacity:  l.Opacity,
					ScaleX:   l.ScaleX,
					ScaleY:   l.ScaleY,
					Rotation: l.RotationDeg,
					CenterX:  l.CenterX,
					CenterY:  l.CenterY,
				},
			})
		}
	}
	for _, c := range f.Components {
		doc.Components = append(doc.Components, Component{
			Target:   c.TargetID,
			X:        c.XOffset,
			Y:        c.YOffset,
			Unlocked: !c.Locked,
		})
	}
	return doc
}

// Load fills a fresh editor state with the document. Component references
// are resolved with r, which may be nil for documents without components.
// History and dirty flag of s are reset.
func (doc Document) Load(s *editstate.State, r outline.Resolver) error {
	var glyph []outline.Contour
	for _, l := range doc.Layers {
		if l.ID == outline.OutlineLayerID {
			glyph = pathcodec.Decode(l.Path, s.IDs())
			continue
		}
		var layer outline.Layer
		if img := l.Image; img != nil {
			layer = &outline.ImageLayer{
				ID: l.ID, Name: l.Name, Ref: img.Ref,
				Width: img.Width, Height: img.Height, Opacity: img.Opacity,
				ScaleX: img.ScaleX, ScaleY: img.ScaleY, RotationDeg: img.Rotation,
				CenterX: img.CenterX, CenterY: img.CenterY,
			}
		} else {
			layer = &outline.DrawingLayer{ID: l.ID, Name: l.Name, Contours: pathcodec.Decode(l.Path, s.IDs())}
		}
		if err := s.Apply(editstate.AddLayer{Layer: layer}); err != nil {
			return fmt.Errorf("glyph %q: %w", doc.Name, err)
		}
	}
	if len(doc.Components) > 0 {
		if r == nil {
			return fmt.Errorf("glyph %q has components but no resolver", doc.Name)
		}
		refs := make([]outline.ComponentRef, len(doc.Components))
		for i, c := range doc.Components {
			refs[i] = outline.ComponentRef{TargetID: c.Target, XOffset: c.X, YOffset: c.Y}
		}
		comps, err := outline.Assemble(refs, r)
		if err != nil {
			return fmt.Errorf("glyph %q: %w", doc.Name, err)
		}
		for i, c := range doc.Components {
			comps[i].Locked = !c.Unlocked
		}
		if err := s.Apply(editstate.SetComponents{Components: comps}); err != nil {
			return fmt.Errorf("glyph %q: %w", doc.Name, err)
		}
	}
	tracer().Infof("loaded glyph %q: %d layers, %d components", doc.Name, len(doc.Layers), len(doc.Components))
	return s.Apply(editstate.SetPaths{Contours: glyph})
}

// --- Files -----------------------------------------------------------------

// Encode writes doc in format f.
func (doc Document) Encode(w io.Writer, f Format) error {
	if f == YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return toml.NewEncoder(w).SetIndentTables(true).Encode(doc)
}

// Decode reads a document in format f.
func Decode(r io.Reader, f Format) (Document, error) {
	var doc Document
	var err error
	if f == YAML {
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	} else {
		err = toml.NewDecoder(r).DisallowUnknownFields().Decode(&doc)
	}
	if err != nil {
		return Document{}, fmt.Errorf("decoding %s glyph document: %w", f, err)
	}
	return doc, nil
}

// Write stores doc in a file. The format is selected by the file extension.
func Write(path string, doc Document) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := doc.Encode(&buf, f); err != nil {
		return fmt.Errorf("encoding glyph %q: %w", doc.Name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("saving glyph %q: %w", doc.Name, err)
	}
	return nil
}

// Read loads a document from a file. The format is selected by the file
// extension.
func Read(path string) (Document, error) {
	f, err := FormatOf(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading glyph document: %w", err)
	}
	return Decode(bytes.NewReader(data), f)
}

// Save writes the glyph of an editor state to a file and marks the state as
// saved. The saving flag of s is set while the file is written.
func Save(path string, s *editstate.State, name string) error {
	if err := s.Apply(editstate.MarkSaving{Saving: true}); err != nil {
		return err
	}
	doc := FromFrame(s.Render(), name)
	if err := Write(path, doc); err != nil {
		_ = s.Apply(editstate.MarkSaving{Saving: false})
		return err
	}
	tracer().Infof("saved glyph %q to %s", name, path)
	return s.Apply(editstate.MarkSaved{})
}

// Open reads a document from a file and loads it into s.
func Open(path string, s *editstate.State, r outline.Resolver) (Document, error) {
	doc, err := Read(path)
	if err != nil {
		return Document{}, err
	}
	return doc, doc.Load(s, r)
}
