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

package annotation

import (
	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/internal/keyval"
)

// The highlighting modes of a link annotation.
const (
	HighlightNone    pdfgen.Name = "N"
	HighlightInvert  pdfgen.Name = "I"
	HighlightOutline pdfgen.Name = "O"
	HighlightPush    pdfgen.Name = "P"
)

// Style describes the appearance of a link annotation.
type Style struct {
	// Border is the border width.  If 0, no border is drawn.
	Border float64

	// Dash, if non-empty, gives the dash pattern of the border.
	Dash []float64

	// Color, if non-nil, is the DeviceRGB color of the border.
	Color []float64

	// Highlight is the visual effect when the link is activated.
	// The empty value means [HighlightInvert].
	Highlight pdfgen.Name
}

// ParseStyle reads an annotation style specification.  The recognised
// keys are
//
//	border=<width>
//	color=<r> <g> <b>
//	dash=<on> <off> ...
//	highlight=none|invert|outline|push
//
// The empty string gives the default style, which has no border.
func ParseStyle(spec string) (*Style, error) {
	s, err := keyval.Parse(spec)
	if err != nil {
		return nil, err
	}
	if s.Kind != "" {
		return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, "annotation style",
			"unexpected token %q", s.Kind)
	}

	res := &Style{
		Border: s.Float("border", 0),
		Color:  s.Floats("color", 3),
		Dash:   s.Floats("dash", 0),
	}
	if res.Border < 0 {
		s.Fail("negative border width")
	}
	for _, c := range res.Color {
		if c < 0 || c > 1 {
			s.Fail("color component %g out of range", c)
		}
	}
	allZero := true
	for _, d := range res.Dash {
		if d < 0 {
			s.Fail("negative dash length")
		}
		if d != 0 {
			allZero = false
		}
	}
	if len(res.Dash) > 0 && allZero {
		s.Fail("dash lengths are all zero")
	}
	switch s.Choice("highlight", "invert", "none", "outline", "push") {
	case "none":
		res.Highlight = HighlightNone
	case "outline":
		res.Highlight = HighlightOutline
	case "push":
		res.Highlight = HighlightPush
	}

	if err := s.Finish(); err != nil {
		return nil, err
	}
	return res, nil
}
