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

package destination

import (
	"math"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/internal/keyval"
)

// Mode selects how the page is fitted into the viewer window.
type Mode pdfgen.Name

// These are the destination modes of table 149 in ISO 32000-2:2020.
const (
	ModeXYZ   Mode = "XYZ"
	ModeFit   Mode = "Fit"
	ModeFitH  Mode = "FitH"
	ModeFitV  Mode = "FitV"
	ModeFitR  Mode = "FitR"
	ModeFitB  Mode = "FitB"
	ModeFitBH Mode = "FitBH"
	ModeFitBV Mode = "FitBV"
)

// Unset marks a coordinate which keeps its current value when the
// destination is opened.  Use math.IsNaN() to test for this value.
var Unset = math.NaN()

// View is a resolved destination.
type View struct {
	// Page is the page number, starting at 1.
	Page int

	Mode Mode

	// Left, Top, Right and Bottom are in default user space of the page.
	// Only the values used by Mode are written, the others are ignored.
	Left, Top, Right, Bottom float64

	// Zoom is the magnification factor for ModeXYZ.  Zero has the same
	// meaning as Unset.
	Zoom float64
}

// Parse reads a destination specification.  If the specification does
// not name a page, currentPage is used.
func Parse(spec string, currentPage int) (*View, error) {
	const op = "destination"

	s, err := keyval.Parse(spec)
	if err != nil {
		return nil, err
	}
	if s.Kind != "" {
		return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
			"unexpected token %q", s.Kind)
	}

	v := &View{
		Page:   s.Int("page", currentPage),
		Left:   Unset,
		Top:    Unset,
		Right:  Unset,
		Bottom: Unset,
		Zoom:   Unset,
	}
	mode := s.Choice("mode", string(ModeXYZ), string(ModeFit),
		string(ModeFitH), string(ModeFitV), string(ModeFitR),
		string(ModeFitB), string(ModeFitBH), string(ModeFitBV))
	v.Mode = Mode(mode)

	switch v.Mode {
	case ModeXYZ:
		v.Left = s.Float("left", Unset)
		v.Top = s.Float("top", Unset)
		v.Zoom = s.Float("zoom", Unset)
		if v.Zoom < 0 {
			s.Fail("negative zoom factor")
		}
	case ModeFitH, ModeFitBH:
		v.Top = s.Float("top", Unset)
	case ModeFitV, ModeFitBV:
		v.Left = s.Float("left", Unset)
	case ModeFitR:
		s.Require("left", "bottom", "right", "top")
		v.Left = s.Float("left", 0)
		v.Bottom = s.Float("bottom", 0)
		v.Right = s.Float("right", 0)
		v.Top = s.Float("top", 0)
	}
	if err := s.Finish(); err != nil {
		return nil, err
	}

	if v.Page < 1 {
		if s.Has("page") {
			return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
				"invalid page number %d", v.Page)
		}
		return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
			"no page given and no current page")
	}
	return v, nil
}

// Encode returns the destination array for the view.  The argument is
// the reference of the page object.
func (v *View) Encode(page pdfgen.Reference) pdfgen.Array {
	res := pdfgen.Array{page, pdfgen.Name(v.Mode)}
	switch v.Mode {
	case ModeXYZ:
		zoom := v.Zoom
		if zoom == 0 {
			zoom = Unset
		}
		res = append(res, optional(v.Left), optional(v.Top), optional(zoom))
	case ModeFitH, ModeFitBH:
		res = append(res, optional(v.Top))
	case ModeFitV, ModeFitBV:
		res = append(res, optional(v.Left))
	case ModeFitR:
		res = append(res, optional(v.Left), optional(v.Bottom),
			optional(v.Right), optional(v.Top))
	}
	return res
}

// optional converts a number to a PDF object, using null for Unset.
func optional(x float64) pdfgen.Object {
	if math.IsNaN(x) {
		return nil
	}
	return pdfgen.Real(x)
}
