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
	"fmt"

	"seehuhn.de/go/pdfgen"
)

// ID identifies a destination in a [Table].  The zero ID is not valid.
type ID int

// Table holds the destinations of a document.
//
// Each destination is assigned an indirect object reference when it is
// defined or reserved.  Annotations and outline items refer to
// destinations through these references, so that a destination can be
// used before the page it points to has been written.
type Table struct {
	out     *pdfgen.Writer
	entries []*entry
}

type entry struct {
	view     *View
	ref      pdfgen.Reference
	reserved bool
}

// NewTable creates an empty destination table.  References are
// allocated from out.
func NewTable(out *pdfgen.Writer) *Table {
	return &Table{out: out}
}

// Define adds a destination to the table.
func (t *Table) Define(spec string, currentPage int) (ID, error) {
	v, err := Parse(spec, currentPage)
	if err != nil {
		return 0, err
	}
	return t.add(v), nil
}

// Reserve allocates an identifier for a destination which is defined
// later, using [Table.DefineReserved].
func (t *Table) Reserve() ID {
	id := t.add(nil)
	t.entries[id-1].reserved = true
	return id
}

func (t *Table) add(v *View) ID {
	t.entries = append(t.entries, &entry{view: v, ref: t.out.Alloc()})
	return ID(len(t.entries))
}

// DefineReserved supplies the view for a reserved destination.
func (t *Table) DefineReserved(id ID, spec string, currentPage int) error {
	const op = "DestinationDefineReserved"
	if id < 1 || int(id) > len(t.entries) || !t.entries[id-1].reserved {
		return pdfgen.Errorf(pdfgen.ErrUnknownReservedDestination, op,
			"destination %d", id)
	}
	e := t.entries[id-1]
	if e.view != nil {
		return pdfgen.Errorf(pdfgen.ErrDestinationAlreadyResolved, op,
			"destination %d", id)
	}
	v, err := Parse(spec, currentPage)
	if err != nil {
		return err
	}
	e.view = v
	return nil
}

// Ref returns the reference used for the destination array.
func (t *Table) Ref(id ID) (pdfgen.Reference, error) {
	if id < 1 || int(id) > len(t.entries) {
		return 0, pdfgen.Errorf(pdfgen.ErrInvalidArgument, "",
			"unknown destination %d", id)
	}
	return t.entries[id-1].ref, nil
}

// Len returns the number of destinations in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Check verifies that all reserved destinations have been defined.
func (t *Table) Check() error {
	for i, e := range t.entries {
		if e.view == nil {
			return pdfgen.Errorf(pdfgen.ErrUnresolvedDestination, "Finalize",
				"destination %d", i+1)
		}
	}
	return nil
}

// Embed writes all destination arrays.  The argument lists the page
// references, in page order.
func (t *Table) Embed(pages []pdfgen.Reference) error {
	if err := t.Check(); err != nil {
		return err
	}
	for i, e := range t.entries {
		if e.view.Page > len(pages) {
			return pdfgen.Errorf(pdfgen.ErrInvalidSpecification, "Finalize",
				"destination %d refers to page %d, document has %d pages",
				i+1, e.view.Page, len(pages))
		}
		err := t.out.Put(e.ref, e.view.Encode(pages[e.view.Page-1]))
		if err != nil {
			return fmt.Errorf("destination %d: %w", i+1, err)
		}
	}
	return nil
}
