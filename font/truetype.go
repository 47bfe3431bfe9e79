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
	"bytes"
	"errors"
	"math"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// TrueType is a TrueType font, embedded as a composite font with
// Identity-H encoding.  The character codes are the glyph indices, two bytes
// per glyph.
type TrueType struct {
	name string
	data []byte
	info *sfnt.Font
	buf  sfnt.Buffer

	ascent, descent, capHeight float64
	italicAngle                float64
	isFixedPitch               bool

	widths map[sfnt.GlyphIndex]float64
	text   map[sfnt.GlyphIndex][]rune
}

// NewTrueType parses a TrueType font file.
func NewTrueType(data []byte) (*TrueType, error) {
	if len(data) < 4 {
		return nil, errors.New("font file too small")
	}
	switch string(data[:4]) {
	case "true", "\x00\x01\x00\x00":
		// pass
	case "OTTO":
		return nil, errors.New("CFF-based OpenType fonts are not supported")
	default:
		return nil, errors.New("unrecognized font format")
	}

	info, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}

	f := &TrueType{
		data:   data,
		info:   info,
		widths: make(map[sfnt.GlyphIndex]float64),
		text:   make(map[sfnt.GlyphIndex][]rune),
	}

	name, err := info.Name(&f.buf, sfnt.NameIDPostScript)
	if err != nil || name == "" {
		return nil, errors.New("missing PostScript font name")
	}
	f.name = strings.Map(func(r rune) rune {
		if r <= ' ' || r > '~' || strings.ContainsRune("()<>[]{}/%#", r) {
			return -1
		}
		return r
	}, name)

	metrics, err := info.Metrics(&f.buf, fixed.I(1000), xfont.HintingNone)
	if err != nil {
		return nil, err
	}
	f.ascent = fromFixed(metrics.Ascent)
	f.descent = -fromFixed(metrics.Descent)
	f.capHeight = fromFixed(metrics.CapHeight)
	if pt := info.PostTable(); pt != nil {
		f.italicAngle = pt.ItalicAngle
		f.isFixedPitch = pt.IsFixedPitch
	}

	return f, nil
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// PostScriptName implements the [Face] interface.
func (f *TrueType) PostScriptName() string {
	return f.name
}

func (f *TrueType) glyph(r rune) (sfnt.GlyphIndex, error) {
	gid, err := f.info.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0, err
	}
	if gid == 0 {
		return 0, &MissingGlyphError{Font: f.name, Char: r}
	}
	return gid, nil
}

func (f *TrueType) width(gid sfnt.GlyphIndex) (float64, error) {
	if w, ok := f.widths[gid]; ok {
		return w, nil
	}
	adv, err := f.info.GlyphAdvance(&f.buf, gid, fixed.I(1000), xfont.HintingNone)
	if err != nil {
		return 0, err
	}
	w := fromFixed(adv)
	f.widths[gid] = w
	return w, nil
}

// Encode implements the [Face] interface.
// The glyphs used are recorded, so that text can be extracted from the
// PDF file.
func (f *TrueType) Encode(text string) ([][]byte, error) {
	var res [][]byte
	for _, r := range text {
		gid, err := f.glyph(r)
		if err != nil {
			return nil, err
		}
		if _, err := f.width(gid); err != nil {
			return nil, err
		}
		if _, seen := f.text[gid]; !seen {
			f.text[gid] = []rune{r}
		}
		res = append(res, []byte{byte(gid >> 8), byte(gid)})
	}
	return res, nil
}

// EncodeGlyphs implements the [Face] interface.
func (f *TrueType) EncodeGlyphs(glyphs []int) ([][]byte, error) {
	numGlyphs := f.info.NumGlyphs()
	res := make([][]byte, len(glyphs))
	for i, g := range glyphs {
		if g < 0 || g >= numGlyphs {
			return nil, pdfgen.Errorf(pdfgen.ErrInvalidArgument, "",
				"font %s: invalid glyph index %d", f.name, g)
		}
		if _, err := f.width(sfnt.GlyphIndex(g)); err != nil {
			return nil, err
		}
		res[i] = []byte{byte(g >> 8), byte(g)}
	}
	return res, nil
}

// Width implements the [Face] interface.
func (f *TrueType) Width(text string) (float64, error) {
	var total float64
	for _, r := range text {
		gid, err := f.glyph(r)
		if err != nil {
			return 0, err
		}
		w, err := f.width(gid)
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}

// Ascent implements the [Face] interface.
func (f *TrueType) Ascent() float64 {
	return f.ascent
}

// Descent implements the [Face] interface.
func (f *TrueType) Descent() float64 {
	return f.descent
}

// Embed implements the [resource.Resource] interface.
// The complete font file is embedded.
func (f *TrueType) Embed(e *resource.EmbedHelper) error {
	w := e.Out()
	cidFontRef := e.Alloc()
	descRef := e.Alloc()
	fileRef := e.Alloc()
	toUniRef := e.Alloc()

	fontDict := pdfgen.Dict{
		"Type":            pdfgen.Name("Font"),
		"Subtype":         pdfgen.Name("Type0"),
		"BaseFont":        pdfgen.Name(f.name),
		"Encoding":        pdfgen.Name("Identity-H"),
		"DescendantFonts": pdfgen.Array{cidFontRef},
		"ToUnicode":       toUniRef,
	}
	err := w.Put(e.Ref(), fontDict)
	if err != nil {
		return err
	}

	notdefWidth, err := f.width(0)
	if err != nil {
		return err
	}
	cidFont := pdfgen.Dict{
		"Type":     pdfgen.Name("Font"),
		"Subtype":  pdfgen.Name("CIDFontType2"),
		"BaseFont": pdfgen.Name(f.name),
		"CIDSystemInfo": pdfgen.Dict{
			"Registry":   pdfgen.String("Adobe"),
			"Ordering":   pdfgen.String("Identity"),
			"Supplement": pdfgen.Integer(0),
		},
		"FontDescriptor": descRef,
		"CIDToGIDMap":    pdfgen.Name("Identity"),
	}
	if dw := math.Round(notdefWidth); dw != 1000 {
		cidFont["DW"] = pdfgen.Integer(dw)
	}
	if ww := f.widthArray(); len(ww) > 0 {
		cidFont["W"] = ww
	}
	err = w.Put(cidFontRef, cidFont)
	if err != nil {
		return err
	}

	bbox := pdfgen.Array{pdfgen.Integer(0), pdfgen.Integer(0), pdfgen.Integer(0), pdfgen.Integer(0)}
	b, err := f.info.Bounds(&f.buf, fixed.I(1000), xfont.HintingNone)
	if err == nil {
		bbox = pdfgen.Array{
			pdfgen.Integer(b.Min.X.Floor()),
			pdfgen.Integer(-b.Max.Y.Ceil()),
			pdfgen.Integer(b.Max.X.Ceil()),
			pdfgen.Integer(-b.Min.Y.Floor()),
		}
	}
	flags := flagSymbolic
	if f.isFixedPitch {
		flags |= flagFixedPitch
	}
	if f.italicAngle != 0 {
		flags |= flagItalic
	}
	desc := pdfgen.Dict{
		"Type":        pdfgen.Name("FontDescriptor"),
		"FontName":    pdfgen.Name(f.name),
		"Flags":       pdfgen.Integer(flags),
		"FontBBox":    bbox,
		"ItalicAngle": pdfgen.Real(f.italicAngle),
		"Ascent":      pdfgen.Real(math.Round(f.ascent)),
		"Descent":     pdfgen.Real(math.Round(f.descent)),
		"CapHeight":   pdfgen.Real(math.Round(f.capHeight)),
		"StemV":       pdfgen.Integer(80),
		"FontFile2":   fileRef,
	}
	err = w.Put(descRef, desc)
	if err != nil {
		return err
	}

	err = w.PutStream(fileRef, pdfgen.Dict{"Length1": pdfgen.Integer(len(f.data))}, f.data, true)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	err = writeToUnicode(buf, f.text)
	if err != nil {
		return err
	}
	return w.PutStream(toUniRef, nil, buf.Bytes(), true)
}

// widthArray returns the /W array for all glyphs used, grouping
// consecutive glyphs.
func (f *TrueType) widthArray() pdfgen.Array {
	gids := maps.Keys(f.widths)
	slices.Sort(gids)

	var res pdfgen.Array
	var run pdfgen.Array
	for i, gid := range gids {
		if i == 0 || gid != gids[i-1]+1 {
			if run != nil {
				res = append(res, run)
			}
			res = append(res, pdfgen.Integer(gid))
			run = pdfgen.Array{}
		}
		run = append(run, pdfgen.Real(math.Round(f.widths[gid])))
	}
	if run != nil {
		res = append(res, run)
	}
	return res
}

// Font descriptor flags.
//
// See section 9.8.2 of ISO 32000-2:2020.
const (
	flagFixedPitch = 1 << 0
	flagSymbolic   = 1 << 2
	flagItalic     = 1 << 6
)
