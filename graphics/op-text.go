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

package graphics

import (
	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/resource"
)

// This file implements the text operators, as defined in tables 103,
// 105, 106 and 107 of ISO 32000-2:2020.

// DefaultFont is used when text is shown before a font has been selected.
const DefaultFont = "standard; name=Helvetica; size=12"

// TextStart starts a new text object, with the text position at (x, y).
//
// This implements the PDF graphics operators "BT" and "Td".
func (c *Canvas) TextStart(x, y float64) error {
	const op = "TextStart"
	if err := c.check(op, objPage); err != nil {
		return err
	}
	if err := checkFinite(op, x, y); err != nil {
		return err
	}
	c.textStart(x, y)
	return nil
}

func (c *Canvas) textStart(x, y float64) {
	c.current = objText
	c.res.ProcSet.Text = true
	c.emit("BT")
	if x != 0 || y != 0 {
		c.emit(num(x), num(y), "Td")
	}
}

// TextEnd ends the current text object.
//
// This implements the PDF graphics operator "ET".
func (c *Canvas) TextEnd() error {
	if err := c.check("TextEnd", objText); err != nil {
		return err
	}
	c.textEnd()
	return nil
}

func (c *Canvas) textEnd() {
	c.current = objPage
	c.emit("ET")
}

// TextTranslateLine moves to the start of the next line, offset from the
// start of the current line by (tx, ty).
//
// This implements the PDF graphics operator "Td".
func (c *Canvas) TextTranslateLine(tx, ty float64) error {
	const op = "TextTranslateLine"
	if err := c.check(op, objText); err != nil {
		return err
	}
	if err := checkFinite(op, tx, ty); err != nil {
		return err
	}
	c.emit(num(tx), num(ty), "Td")
	return nil
}

// TextFont selects the font used for showing text.  The handle must refer
// to a font loaded with [font.Load].
//
// This implements the PDF graphics operator "Tf".
func (c *Canvas) TextFont(h resource.Handle) error {
	const op = "TextFont"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	return c.setFont(h)
}

func (c *Canvas) setFont(h resource.Handle) error {
	F, err := c.font(h)
	if err != nil {
		return err
	}
	name, err := c.name(resource.CatFont, F.FaceHandle)
	if err != nil {
		return err
	}
	c.state.Font = h
	c.state.FontSize = F.Size
	c.emit(name, num(F.Size), "Tf")
	return nil
}

func (c *Canvas) font(h resource.Handle) (*font.Font, error) {
	res, err := c.reg.Get(h, resource.KindFont)
	if err != nil {
		return nil, err
	}
	F, ok := res.(*font.Font)
	if !ok {
		return nil, pdfgen.Errorf(pdfgen.ErrInvalidArgument, "",
			"%s is not a sized font", h)
	}
	return F, nil
}

// currentFont returns the selected font.  If no font has been selected
// yet, the default font is selected.
func (c *Canvas) currentFont() (*font.Font, error) {
	if c.state.Font.IsZero() {
		h, err := font.Load(c.reg, DefaultFont)
		if err != nil {
			return nil, err
		}
		if err := c.setFont(h); err != nil {
			return nil, err
		}
	}
	return c.font(c.state.Font)
}

// TextCharacterSpacing sets the extra space added after each glyph.
//
// This implements the PDF graphics operator "Tc".
func (c *Canvas) TextCharacterSpacing(spacing float64) error {
	const op = "TextCharacterSpacing"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if err := checkFinite(op, spacing); err != nil {
		return err
	}
	c.state.CharacterSpacing = spacing
	c.emit(num(spacing), "Tc")
	return nil
}

// TextWordSpacing sets the extra space added after each space character.
//
// This implements the PDF graphics operator "Tw".
func (c *Canvas) TextWordSpacing(spacing float64) error {
	const op = "TextWordSpacing"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if err := checkFinite(op, spacing); err != nil {
		return err
	}
	c.state.WordSpacing = spacing
	c.emit(num(spacing), "Tw")
	return nil
}

// TextHorizontalScaling sets the horizontal scaling of glyphs, in percent.
//
// This implements the PDF graphics operator "Tz".
func (c *Canvas) TextHorizontalScaling(scaling float64) error {
	const op = "TextHorizontalScaling"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if err := checkFinite(op, scaling); err != nil {
		return err
	}
	if scaling == 0 {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op, "zero scaling")
	}
	c.state.HorizontalScaling = scaling
	c.emit(num(scaling), "Tz")
	return nil
}

// TextLeading sets the distance between baselines used by
// [Canvas.TextNextLine].
//
// This implements the PDF graphics operator "TL".
func (c *Canvas) TextLeading(leading float64) error {
	const op = "TextLeading"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if err := checkFinite(op, leading); err != nil {
		return err
	}
	c.state.Leading = leading
	c.emit(num(leading), "TL")
	return nil
}

// TextNextLine moves to the start of the next line, using the current
// leading.
//
// This implements the PDF graphics operator "T*".
func (c *Canvas) TextNextLine() error {
	if err := c.check("TextNextLine", objText); err != nil {
		return err
	}
	c.emit("T*")
	return nil
}

// TextRise moves the baseline up (or down, for negative values).
//
// This implements the PDF graphics operator "Ts".
func (c *Canvas) TextRise(rise float64) error {
	const op = "TextRise"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if err := checkFinite(op, rise); err != nil {
		return err
	}
	c.state.TextRise = rise
	c.emit(num(rise), "Ts")
	return nil
}

// TextRenderingMode sets the text rendering mode.  See
// [ParseTextRenderingMode] for the recognised tokens.
//
// This implements the PDF graphics operator "Tr".
func (c *Canvas) TextRenderingMode(mode string) error {
	const op = "TextRenderingMode"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	m, ok := ParseTextRenderingMode(mode)
	if !ok {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"invalid text rendering mode %q", mode)
	}
	c.state.TextRenderingMode = m
	c.emit(int(m), "Tr")
	return nil
}

// Text shows a string at the current text position.
//
// This implements the PDF graphics operator "Tj".
func (c *Canvas) Text(s string) error {
	return c.TextOffsets(s, nil, nil)
}

// TextOffsets shows a string at the current text position.  The glyph at
// index positions[i] is moved by offsets[i] horizontally, in user space
// units.  Positive offsets move glyphs to the right.
//
// This implements the PDF graphics operators "Tj" and "TJ".
func (c *Canvas) TextOffsets(s string, offsets []float64, positions []int) error {
	const op = "Text"
	if err := c.check(op, objText); err != nil {
		return err
	}
	return c.showText(op, s, nil, offsets, positions)
}

// TextAt shows a string at (x, y) in its own text object.
//
// This implements the PDF graphics operators "BT", "Td", "Tj" and "ET".
func (c *Canvas) TextAt(x, y float64, s string) error {
	const op = "TextAt"
	if err := c.check(op, objPage); err != nil {
		return err
	}
	if err := checkFinite(op, x, y); err != nil {
		return err
	}

	mark := c.content.Len()
	c.textStart(x, y)
	if err := c.showText(op, s, nil, nil, nil); err != nil {
		c.content.Truncate(mark)
		c.current = objPage
		return err
	}
	c.textEnd()
	return nil
}

// TextGlyphs shows the given glyphs at (x, y) in its own text object.
// For simple fonts the glyph indices are the character codes, for
// TrueType fonts they are the glyph indices in the font file.  See
// [Canvas.TextOffsets] for the meaning of offsets and positions.
//
// This implements the PDF graphics operators "BT", "Td", "Tj" or "TJ",
// and "ET".
func (c *Canvas) TextGlyphs(x, y float64, glyphs []int, offsets []float64, positions []int) error {
	const op = "TextGlyphs"
	if err := c.check(op, objPage); err != nil {
		return err
	}
	if err := checkFinite(op, x, y); err != nil {
		return err
	}

	mark := c.content.Len()
	c.textStart(x, y)
	if err := c.showText(op, "", glyphs, offsets, positions); err != nil {
		c.content.Truncate(mark)
		c.current = objPage
		return err
	}
	c.textEnd()
	return nil
}

// showText emits a text showing operator.  If glyphs is non-nil, the
// glyphs are shown instead of the string s.
func (c *Canvas) showText(op, s string, glyphs []int, offsets []float64, positions []int) error {
	if len(offsets) != len(positions) {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"%d offsets but %d positions", len(offsets), len(positions))
	}
	if err := checkFinite(op, offsets...); err != nil {
		return err
	}

	mark := c.content.Len()
	stateBefore := c.state.Font
	sizeBefore := c.state.FontSize
	F, err := c.currentFont()
	if err != nil {
		return err
	}
	restore := func() {
		c.content.Truncate(mark)
		c.state.Font, c.state.FontSize = stateBefore, sizeBefore
	}

	var codes [][]byte
	if glyphs != nil {
		codes, err = F.Face.EncodeGlyphs(glyphs)
	} else {
		codes, err = F.Face.Encode(s)
	}
	if err != nil {
		restore()
		return pdfgen.Wrap(pdfgen.ErrInvalidArgument, op, err)
	}

	if len(offsets) == 0 {
		var str pdfgen.String
		for _, code := range codes {
			str = append(str, code...)
		}
		c.emit(str, "Tj")
		return nil
	}

	// Convert offsets to TJ units.  The adjustments are subtracted from
	// the horizontal position, in thousandths of text space units.
	scale := -1000 / F.Size / (c.state.HorizontalScaling / 100)
	adjust := make(map[int]float64)
	for i, pos := range positions {
		if pos < 0 || pos > len(codes) {
			restore()
			return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
				"glyph position %d out of range", pos)
		}
		adjust[pos] += offsets[i] * scale
	}

	var arr pdfgen.Array
	var str pdfgen.String
	for i := 0; i <= len(codes); i++ {
		if delta, ok := adjust[i]; ok && delta != 0 {
			if len(str) > 0 {
				arr = append(arr, str)
				str = nil
			}
			arr = append(arr, pdfgen.Real(delta))
		}
		if i < len(codes) {
			str = append(str, codes[i]...)
		}
	}
	if len(str) > 0 {
		arr = append(arr, str)
	}
	c.emit(arr, "TJ")
	return nil
}
