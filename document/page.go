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

package document

import (
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/annotation"
	"seehuhn.de/go/pdfgen/destination"
	"seehuhn.de/go/pdfgen/graphics"
)

// Page represents a page in a PDF document.
// The contents of the page are drawn using the [graphics.Canvas] returned
// by [Page.Canvas].
type Page struct {
	doc      *Document
	number   int
	ref      pdfgen.Reference
	mediaBox rect.Rect
	canvas   *graphics.Canvas
	annots   []*annotation.Link
}

// Canvas returns the canvas used to draw the contents of the page.
func (p *Page) Canvas() *graphics.Canvas {
	return p.canvas
}

// Number returns the page number, starting from 1.
func (p *Page) Number() int {
	return p.number
}

// MediaBox returns the page boundaries.
func (p *Page) MediaBox() rect.Rect {
	return p.mediaBox
}

// AnnotationGoto adds a link to the destination described by dest.  If
// the destination does not name a page, the link points to this page.
// The style of the link is described by a specification string, see
// [annotation.ParseStyle].
func (p *Page) AnnotationGoto(x, y, width, height float64, dest, style string) error {
	const op = "AnnotationGoto"
	if err := p.doc.check(op); err != nil {
		return err
	}
	link, err := annotation.NewLink(x, y, width, height, style)
	if err != nil {
		return err
	}
	id, err := p.doc.dests.Define(dest, p.number)
	if err != nil {
		return err
	}
	link.Dest, _ = p.doc.dests.Ref(id)
	p.annots = append(p.annots, link)
	return nil
}

// AnnotationGotoID adds a link to a destination from the document's
// destination table.  The destination may be a reserved destination which
// is defined later.
func (p *Page) AnnotationGotoID(x, y, width, height float64, id destination.ID, style string) error {
	const op = "AnnotationGotoID"
	if err := p.doc.check(op); err != nil {
		return err
	}
	link, err := annotation.NewLink(x, y, width, height, style)
	if err != nil {
		return err
	}
	link.Dest, err = p.doc.dests.Ref(id)
	if err != nil {
		return pdfgen.Wrap(pdfgen.ErrInvalidArgument, op, err)
	}
	p.annots = append(p.annots, link)
	return nil
}

// AnnotationURI adds a link which opens the given URI.
func (p *Page) AnnotationURI(x, y, width, height float64, uri, style string) error {
	const op = "AnnotationURI"
	if err := p.doc.check(op); err != nil {
		return err
	}
	if uri == "" {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op, "empty URI")
	}
	link, err := annotation.NewLink(x, y, width, height, style)
	if err != nil {
		return err
	}
	link.URI = uri
	p.annots = append(p.annots, link)
	return nil
}

// write writes the page object, its annotations and its content stream.
func (p *Page) write(parent pdfgen.Reference) error {
	out := p.doc.out

	contentRef := out.Alloc()
	annotRefs := make(pdfgen.Array, len(p.annots))
	for i := range p.annots {
		annotRefs[i] = out.Alloc()
	}

	mb := p.mediaBox
	dict := pdfgen.Dict{
		"Type":      pdfgen.Name("Page"),
		"Parent":    parent,
		"MediaBox":  pdfgen.Reals(mb.LLx, mb.LLy, mb.URx, mb.URy),
		"Resources": p.canvas.Resources().AsDict(p.doc.ver),
		"Contents":  contentRef,
	}
	if len(annotRefs) > 0 {
		dict["Annots"] = annotRefs
	}
	if err := out.Put(p.ref, dict); err != nil {
		return err
	}

	for i, link := range p.annots {
		err := link.Embed(out, annotRefs[i].(pdfgen.Reference), p.ref)
		if err != nil {
			return err
		}
	}

	return out.PutStream(contentRef, nil, p.canvas.Content(), true)
}
