// seehuhn.de/go/pdfgen - a library for generating PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package font implements fonts for use in PDF content streams.
//
// A font is loaded from a specification string with [Load].  Two kinds of
// fonts are supported: the 14 standard fonts, which every PDF viewer
// provides, and TrueType fonts, which are embedded into the PDF file as
// composite fonts.  The glyph outlines of the Go font family are built in.
//
// Every font has a fixed size.  Loading the same font file at different
// sizes gives different font handles, but the font data is only embedded
// once.
package font

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// Face is a font program, independent of the font size.
// All metrics are given in glyph space units, where 1000 units
// correspond to the font size.
type Face interface {
	resource.Resource

	// PostScriptName returns the name of the font.
	PostScriptName() string

	// Encode converts text to character codes, one code per rune.
	Encode(text string) ([][]byte, error)

	// EncodeGlyphs converts glyph indices to character codes.
	EncodeGlyphs(glyphs []int) ([][]byte, error)

	// Width returns the advance width of the given text.
	Width(text string) (float64, error)

	// Ascent and Descent give the vertical extent of the font.
	// Descent is negative.
	Ascent() float64
	Descent() float64
}

// Font is a font face at a given size.  Font objects are the resources
// which can be selected in content streams.
type Font struct {
	Face       Face
	FaceHandle resource.Handle
	Size       float64

	ref pdfgen.Object
}

// DirectObject implements the [resource.Direct] interface.
// All sizes of a face share the font dictionary of the face.
func (f *Font) DirectObject() pdfgen.Object {
	return f.ref
}

// Embed implements the [resource.Resource] interface.
// The font dictionary is written by the face.
func (f *Font) Embed(*resource.EmbedHelper) error {
	return nil
}

// AdvanceWidth returns the width of the given text in PDF units.
func (f *Font) AdvanceWidth(text string) (float64, error) {
	w, err := f.Face.Width(text)
	if err != nil {
		return 0, err
	}
	return w * f.Size / 1000, nil
}

// Ascent returns the height of the font above the baseline, in PDF units.
func (f *Font) Ascent() float64 {
	return f.Face.Ascent() * f.Size / 1000
}

// Descent returns the depth of the font below the baseline, in PDF units.
// The value is negative.
func (f *Font) Descent() float64 {
	return f.Face.Descent() * f.Size / 1000
}

// Height returns the distance between baselines, in PDF units.
func (f *Font) Height() float64 {
	return 1.2 * f.Size
}

// MissingGlyphError is returned when a font cannot represent a character.
type MissingGlyphError struct {
	Font string
	Char rune
}

func (err *MissingGlyphError) Error() string {
	return fmt.Sprintf("font %s: no glyph for %q (U+%04X)", err.Font, err.Char, err.Char)
}

// Is makes [errors.Is] match [pdfgen.ErrInvalidArgument].
func (err *MissingGlyphError) Is(target error) bool {
	return target == pdfgen.ErrInvalidArgument
}

var errNoMetrics = errors.New("no font metrics available")
