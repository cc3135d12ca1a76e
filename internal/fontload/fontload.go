/*
Package fontload reads font binaries for the glyph sources.

A font is parsed once with golang.org/x/image/font/sfnt. Clients needing the
go-text view of the same binary get it from Typesetting, which parses the bytes
again without copying them.
*/
package fontload

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
)

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Filepath string
	Binary   []byte
	SFNT     *sfnt.Font
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
// Fonts without a full name in their name table get the name "".
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull)
	if errors.Is(err, sfnt.ErrNotFound) {
		err = nil
	}
	return f, err
}

// Typesetting parses the binary of f with go-text/typesetting. The returned
// face is not safe for concurrent use.
func (f *ScalableFont) Typesetting() (*font.Face, error) {
	face, err := font.ParseTTF(bytes.NewReader(f.Binary))
	if err != nil {
		return nil, fmt.Errorf("go-text cannot parse %q: %w", f.Fontname, err)
	}
	return face, nil
}

// UnitsPerEm returns the design units per em of f.
func (f *ScalableFont) UnitsPerEm() int {
	return int(f.SFNT.UnitsPerEm())
}

// NumGlyphs returns the count of glyphs in f.
func (f *ScalableFont) NumGlyphs() int {
	return f.SFNT.NumGlyphs()
}
