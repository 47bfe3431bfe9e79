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
	"time"

	"golang.org/x/text/language"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/metadata"
	"seehuhn.de/go/pdfgen/pagetree"
)

// Finalize writes the document.  All reserved destinations must have been
// defined by now.  A page which is still open is closed before the
// document is written.  After Finalize has been called, the document can no longer be
// modified, even if Finalize fails.
func (d *Document) Finalize() error {
	const op = "Finalize"
	if err := d.check(op); err != nil {
		return err
	}

	err := d.finalize(op)
	if err != nil {
		d.state = stateFailed
		if d.abort != nil {
			d.abort()
		}
		d.log.Printf("finalize failed: %v", err)
		return err
	}

	if d.commit != nil {
		if err := d.commit(); err != nil {
			d.state = stateFailed
			d.log.Printf("finalize failed: %v", err)
			return err
		}
	}
	d.state = stateFinalized
	return nil
}

func (d *Document) finalize(op string) error {
	var openAction pdfgen.Object
	if spec := d.opt.InitialDestination; spec != "" {
		id, err := d.dests.Define(spec, 1)
		if err != nil {
			return err
		}
		openAction, _ = d.dests.Ref(id)
	}
	if err := d.dests.Check(); err != nil {
		return err
	}

	if d.open != nil {
		if err := d.closePage(op); err != nil {
			return err
		}
	}
	d.outline.Freeze()

	out := d.out
	pageRefs := make([]pdfgen.Reference, len(d.pages))
	for i, p := range d.pages {
		pageRefs[i] = p.ref
	}
	tree := pagetree.Build(out, d.pagesRef, pageRefs)

	catalog := pdfgen.Dict{
		"Type":  pdfgen.Name("Catalog"),
		"Pages": d.pagesRef,
	}
	var outlineRef pdfgen.Reference
	if !d.outline.IsEmpty() {
		outlineRef = out.Alloc()
		catalog["Outlines"] = outlineRef
	}
	if d.opt.PageMode != "" {
		catalog["PageMode"] = d.opt.PageMode
	}
	if d.opt.PageLayout != "" {
		catalog["PageLayout"] = d.opt.PageLayout
	}
	if d.opt.Lang != language.Und {
		catalog["Lang"] = pdfgen.TextString(d.opt.Lang.String())
	}
	if openAction != nil {
		catalog["OpenAction"] = openAction
	}

	info := &metadata.Info{
		Title:    d.opt.Title,
		Author:   d.opt.Author,
		Subject:  d.opt.Subject,
		Keywords: d.opt.Keywords,
		Creator:  d.opt.Creator,
		Producer: d.opt.Producer,
		Lang:     d.opt.Lang,
	}
	if d.opt.CreationDate {
		info.CreationDate = time.Now()
	}
	infoDict := info.AsDict()
	var infoRef, metadataRef pdfgen.Reference
	if len(infoDict) > 0 {
		infoRef = out.Alloc()
	}
	if d.opt.Metadata {
		metadataRef = out.Alloc()
		catalog["Metadata"] = metadataRef
	}

	if err := out.Put(d.catalogRef, catalog); err != nil {
		return err
	}
	if err := tree.Write(); err != nil {
		return err
	}
	for i, p := range d.pages {
		if err := p.write(tree.Parents[i]); err != nil {
			return err
		}
	}
	if err := d.reg.Embed(); err != nil {
		return err
	}
	if outlineRef != 0 {
		if err := d.outline.Embed(out, outlineRef); err != nil {
			return err
		}
	}
	if err := d.dests.Embed(pageRefs); err != nil {
		return err
	}
	if infoRef != 0 {
		if err := out.Put(infoRef, infoDict); err != nil {
			return err
		}
	}
	if metadataRef != 0 {
		if err := info.Embed(out, metadataRef); err != nil {
			return err
		}
	}

	trailer := pdfgen.Dict{"Root": d.catalogRef}
	if infoRef != 0 {
		trailer["Info"] = infoRef
	}
	if err := out.Close(trailer); err != nil {
		return err
	}

	d.log.Printf("wrote %d pages, %d resources, %d destinations, %d bytes",
		len(d.pages), d.reg.Len(), d.dests.Len(), out.Pos())
	return nil
}
