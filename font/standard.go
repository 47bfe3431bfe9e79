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

package font

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/postscript/afm"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// The 14 standard fonts.
var standardFonts = []string{
	"Courier",
	"Courier-Bold",
	"Courier-BoldOblique",
	"Courier-Oblique",
	"Helvetica",
	"Helvetica-Bold",
	"Helvetica-BoldOblique",
	"Helvetica-Oblique",
	"Times-Roman",
	"Times-Bold",
	"Times-BoldItalic",
	"Times-Italic",
	"Symbol",
	"ZapfDingbats",
}

// IsStandard reports whether name is one of the 14 standard fonts.
func IsStandard(name string) bool {
	for _, n := range standardFonts {
		if n == name {
			return true
		}
	}
	return false
}

// Standard is one of the 14 standard fonts.  These fonts are not embedded,
// PDF viewers provide the glyphs.
//
// Text is encoded using WinAnsiEncoding, except for the fonts Symbol and
// ZapfDingbats which use their built-in encodings.  For these two fonts,
// text is given as a string of runes in the range 0-255.
type Standard struct {
	name    string
	builtin bool

	// widths are in glyph space units, zero for unknown glyphs.
	widths     [256]float64
	hasMetrics bool

	ascent, descent float64
}

// NewStandard returns a standard font.  If metrics is nil, glyph widths are
// only known for the Courier fonts.
func NewStandard(name string, metrics *afm.Metrics) (*Standard, error) {
	if !IsStandard(name) {
		return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, "",
			"%q is not a standard font", name)
	}
	f := &Standard{
		name:    name,
		builtin: name == "Symbol" || name == "ZapfDingbats",
		ascent:  750,
		descent: -250,
	}

	switch {
	case metrics != nil:
		f.setMetrics(metrics)
	case strings.HasPrefix(name, "Courier"):
		for code := 32; code < 256; code++ {
			f.widths[code] = 600
		}
		f.ascent = 629
		f.descent = -157
		f.hasMetrics = true
	}
	return f, nil
}

func (f *Standard) setMetrics(metrics *afm.Metrics) {
	for code := 0; code < 256; code++ {
		var name string
		if f.builtin {
			if code < len(metrics.Encoding) {
				name = metrics.Encoding[code]
			}
		} else {
			name = winAnsi[code]
		}
		if g, ok := metrics.Glyphs[name]; ok && name != "" {
			f.widths[code] = g.WidthX
		}
	}
	f.hasMetrics = true

	if metrics.Ascent > 0 {
		f.ascent = metrics.Ascent
	} else if g, ok := metrics.Glyphs["d"]; ok {
		f.ascent = float64(g.BBox.URy)
	}
	if metrics.Descent < 0 {
		f.descent = metrics.Descent
	} else if g, ok := metrics.Glyphs["p"]; ok {
		f.descent = float64(g.BBox.LLy)
	}
}

// PostScriptName implements the [Face] interface.
func (f *Standard) PostScriptName() string {
	return f.name
}

// Encode implements the [Face] interface.
func (f *Standard) Encode(text string) ([][]byte, error) {
	var res [][]byte
	for _, r := range text {
		var c byte
		var ok bool
		if f.builtin {
			c, ok = byte(r), r >= 0 && r < 256
		} else {
			c, ok = charmap.Windows1252.EncodeRune(r)
		}
		if !ok {
			return nil, &MissingGlyphError{Font: f.name, Char: r}
		}
		res = append(res, []byte{c})
	}
	return res, nil
}

// EncodeGlyphs implements the [Face] interface.
// For simple fonts, the glyph index is the character code.
func (f *Standard) EncodeGlyphs(glyphs []int) ([][]byte, error) {
	res := make([][]byte, len(glyphs))
	for i, g := range glyphs {
		if g < 0 || g > 255 {
			return nil, pdfgen.Errorf(pdfgen.ErrInvalidArgument, "",
				"font %s: invalid glyph index %d", f.name, g)
		}
		res[i] = []byte{byte(g)}
	}
	return res, nil
}

// Width implements the [Face] interface.
func (f *Standard) Width(text string) (float64, error) {
	if !f.hasMetrics {
		return 0, pdfgen.Errorf(pdfgen.ErrResourceUnavailable, "",
			"font %s: %w", f.name, errNoMetrics)
	}
	codes, err := f.Encode(text)
	if err != nil {
		return 0, err
	}
	var w float64
	for _, c := range codes {
		w += f.widths[c[0]]
	}
	return w, nil
}

// Ascent implements the [Face] interface.
func (f *Standard) Ascent() float64 {
	return f.ascent
}

// Descent implements the [Face] interface.
func (f *Standard) Descent() float64 {
	return f.descent
}

// Embed implements the [resource.Resource] interface.
func (f *Standard) Embed(e *resource.EmbedHelper) error {
	dict := pdfgen.Dict{
		"Type":     pdfgen.Name("Font"),
		"Subtype":  pdfgen.Name("Type1"),
		"BaseFont": pdfgen.Name(f.name),
	}
	if !f.builtin {
		dict["Encoding"] = pdfgen.Name("WinAnsiEncoding")
	}
	if f.hasMetrics {
		first, last := 255, 0
		for code, w := range f.widths {
			if w != 0 {
				first = min(first, code)
				last = max(last, code)
			}
		}
		if first <= last {
			widths := make(pdfgen.Array, 0, last-first+1)
			for _, w := range f.widths[first : last+1] {
				widths = append(widths, pdfgen.Real(w))
			}
			dict["FirstChar"] = pdfgen.Integer(first)
			dict["LastChar"] = pdfgen.Integer(last)
			dict["Widths"] = widths
		}
	}
	return e.Out().Put(e.Ref(), dict)
}
