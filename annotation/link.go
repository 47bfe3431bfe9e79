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

// Package annotation implements link annotations.
//
// A link annotation makes a rectangular area of a page clickable.  The
// link either jumps to a destination inside the document, or opens a URI.
package annotation

import (
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/internal/float"
)

// PDF 2.0 sections: 12.5.6.5

// Link is a link annotation.
type Link struct {
	// Rect is the clickable area, in default user space.
	Rect rect.Rect

	// Dest, if non-zero, is the reference of a destination array.
	Dest pdfgen.Reference

	// URI is used if Dest is zero.
	URI string

	Style *Style
}

// NewLink returns a link annotation covering the rectangle with lower
// left corner (x, y).  The style is given as a specification string, see
// [ParseStyle].
func NewLink(x, y, width, height float64, style string) (*Link, error) {
	const op = "annotation"
	if !float.IsFinite(x, y, width, height) {
		return nil, pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"invalid rectangle %g %g %g %g", x, y, width, height)
	}
	if width < 0 || height < 0 {
		return nil, pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"negative size %g x %g", width, height)
	}
	s, err := ParseStyle(style)
	if err != nil {
		return nil, err
	}
	return &Link{
		Rect:  rect.Rect{LLx: x, LLy: y, URx: x + width, URy: y + height},
		Style: s,
	}, nil
}

// Embed writes the annotation dictionary.  The argument page is the
// reference of the page the annotation is placed on.
func (l *Link) Embed(out *pdfgen.Writer, ref, page pdfgen.Reference) error {
	dict := pdfgen.Dict{
		"Type":    pdfgen.Name("Annot"),
		"Subtype": pdfgen.Name("Link"),
		"Rect":    pdfgen.Reals(l.Rect.LLx, l.Rect.LLy, l.Rect.URx, l.Rect.URy),
		"P":       page,
	}
	if l.Dest != 0 {
		dict["Dest"] = l.Dest
	} else {
		dict["A"] = pdfgen.Dict{
			"S":   pdfgen.Name("URI"),
			"URI": pdfgen.String(l.URI),
		}
	}

	s := l.Style
	if s == nil {
		s = &Style{}
	}
	border := pdfgen.Array{pdfgen.Integer(0), pdfgen.Integer(0), pdfgen.Real(s.Border)}
	if len(s.Dash) > 0 {
		border = append(border, pdfgen.Reals(s.Dash...))
	}
	dict["Border"] = border
	if s.Color != nil {
		dict["C"] = pdfgen.Reals(s.Color...)
	}
	if s.Highlight != "" && s.Highlight != HighlightInvert {
		dict["H"] = s.Highlight
	}

	return out.Put(ref, dict)
}
