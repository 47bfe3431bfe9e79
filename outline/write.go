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

package outline

import (
	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/destination"
)

// IsEmpty reports whether the outline has no items.
func (o *Outline) IsEmpty() bool {
	return len(o.Items) == 0
}

// Embed writes the outline tree to out, using rootRef for the outline
// dictionary.  The outline must not be empty.
//
// All items are written in the open state.  Objects are written in
// depth-first order, starting with the outline dictionary.
func (o *Outline) Embed(out *pdfgen.Writer, rootRef pdfgen.Reference) error {
	if o.IsEmpty() {
		return pdfgen.Errorf(pdfgen.ErrInvalidOperationOrder, "write outline", "no items")
	}

	ww := &writer{out: out, dests: o.dests}
	refs := ww.alloc(o.Items)
	rootDict := pdfgen.Dict{
		"Type":  pdfgen.Name("Outlines"),
		"First": refs[0],
		"Last":  refs[len(refs)-1],
		"Count": pdfgen.Integer(count(o.Items)),
	}
	if err := out.Put(rootRef, rootDict); err != nil {
		return err
	}
	return ww.writeChildren(rootRef, refs, o.Items)
}

type writer struct {
	out   *pdfgen.Writer
	dests *destination.Table
}

func (ww *writer) alloc(items []*Item) []pdfgen.Reference {
	refs := make([]pdfgen.Reference, len(items))
	for i := range items {
		refs[i] = ww.out.Alloc()
	}
	return refs
}

// count returns the number of descendants of an open item.
func count(items []*Item) int {
	n := len(items)
	for _, item := range items {
		n += count(item.Children)
	}
	return n
}

func (ww *writer) writeChildren(parent pdfgen.Reference, refs []pdfgen.Reference, items []*Item) error {
	for i, item := range items {
		dict := pdfgen.Dict{
			"Title":  pdfgen.TextString(item.Title),
			"Parent": parent,
		}
		if i > 0 {
			dict["Prev"] = refs[i-1]
		}
		if i < len(items)-1 {
			dict["Next"] = refs[i+1]
		}

		dest, err := ww.dests.Ref(item.Dest)
		if err != nil {
			return err
		}
		dict["Dest"] = dest

		if item.Color != nil {
			dict["C"] = pdfgen.Reals(item.Color[:]...)
		}
		if item.Flags != 0 {
			dict["F"] = pdfgen.Integer(item.Flags)
		}

		var childRefs []pdfgen.Reference
		if len(item.Children) > 0 {
			childRefs = ww.alloc(item.Children)
			dict["First"] = childRefs[0]
			dict["Last"] = childRefs[len(childRefs)-1]
			dict["Count"] = pdfgen.Integer(count(item.Children))
		}

		if err := ww.out.Put(refs[i], dict); err != nil {
			return err
		}
		if len(item.Children) > 0 {
			if err := ww.writeChildren(refs[i], childRefs, item.Children); err != nil {
				return err
			}
		}
	}
	return nil
}
