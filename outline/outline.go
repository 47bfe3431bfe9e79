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

// Package outline builds the document outline (bookmarks) of a PDF file.
//
// Items are added at the position of a cursor.  [Outline.LevelDown] makes
// the most recently added item the parent of the following items, and
// [Outline.LevelUp] returns to the parent level.
package outline

import (
	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/destination"
)

// PDF 2.0 sections: 12.3.3

// These flags can be combined using bitwise or, and are used with
// [Outline.Style].
const (
	Italic = 1
	Bold   = 2
)

// Item is a node in the outline tree.
type Item struct {
	Title string

	// Dest identifies the destination in the document's destination table.
	Dest destination.ID

	// Color, if set, is the DeviceRGB color of the title.
	Color *[3]float64

	// Flags is a combination of [Italic] and [Bold].
	Flags int

	Children []*Item
}

type style struct {
	color *[3]float64
	flags int
}

// Outline is the outline tree of a document, together with a cursor.
type Outline struct {
	// Items contains the top-level outline items.
	Items []*Item

	ver         pdfgen.Version
	dests       *destination.Table
	currentPage func() int

	path   []*Item
	style  style
	stack  []style
	frozen bool
}

// New creates an empty outline.  Destinations of new items are added to
// dests.  The function currentPage gives the page used by items which do
// not specify a page.
func New(ver pdfgen.Version, dests *destination.Table, currentPage func() int) *Outline {
	return &Outline{
		ver:         ver,
		dests:       dests,
		currentPage: currentPage,
	}
}

// Item adds an item which shows the current page.
func (o *Outline) Item(title string) error {
	return o.ItemDest(title, "")
}

// ItemDest adds an item which shows the destination described by spec.
func (o *Outline) ItemDest(title, spec string) error {
	if err := o.check("outline item"); err != nil {
		return err
	}
	id, err := o.dests.Define(spec, o.currentPage())
	if err != nil {
		return err
	}
	o.add(title, id)
	return nil
}

// ItemID adds an item which shows a destination from the destination
// table.  The destination may be a reserved one which is not yet defined.
func (o *Outline) ItemID(title string, id destination.ID) error {
	const op = "outline item"
	if err := o.check(op); err != nil {
		return err
	}
	if _, err := o.dests.Ref(id); err != nil {
		return pdfgen.Wrap(pdfgen.ErrInvalidArgument, op, err)
	}
	o.add(title, id)
	return nil
}

func (o *Outline) add(title string, id destination.ID) {
	item := &Item{
		Title: title,
		Dest:  id,
		Color: o.style.color,
		Flags: o.style.flags,
	}
	if n := len(o.path); n > 0 {
		parent := o.path[n-1]
		parent.Children = append(parent.Children, item)
	} else {
		o.Items = append(o.Items, item)
	}
}

// current returns the items at the level of the cursor.
func (o *Outline) current() []*Item {
	if n := len(o.path); n > 0 {
		return o.path[n-1].Children
	}
	return o.Items
}

// LevelDown makes the last item at the current level the parent of
// subsequently added items.
func (o *Outline) LevelDown() error {
	const op = "outline level down"
	if err := o.check(op); err != nil {
		return err
	}
	items := o.current()
	if len(items) == 0 {
		return pdfgen.Errorf(pdfgen.ErrInvalidOperationOrder, op,
			"no item at the current level")
	}
	o.path = append(o.path, items[len(items)-1])
	return nil
}

// LevelUp returns to the parent level.
func (o *Outline) LevelUp() error {
	const op = "outline level up"
	if err := o.check(op); err != nil {
		return err
	}
	if len(o.path) == 0 {
		return pdfgen.Errorf(pdfgen.ErrOutlineUnderflow, op, "")
	}
	o.path = o.path[:len(o.path)-1]
	return nil
}

// Color sets the text color for subsequently added items.
// This requires PDF version 1.4 or newer.
func (o *Outline) Color(r, g, b float64) error {
	const op = "outline item color"
	if err := o.check(op); err != nil {
		return err
	}
	if err := pdfgen.CheckVersion(o.ver, op, pdfgen.V1_4); err != nil {
		return err
	}
	for _, x := range []float64{r, g, b} {
		if !(x >= 0 && x <= 1) {
			return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
				"color component %g out of range", x)
		}
	}
	o.style.color = &[3]float64{r, g, b}
	return nil
}

// Style sets the text style for subsequently added items.  The flags
// are a combination of [Italic] and [Bold].
// This requires PDF version 1.4 or newer.
func (o *Outline) Style(flags int) error {
	const op = "outline item style"
	if err := o.check(op); err != nil {
		return err
	}
	if err := pdfgen.CheckVersion(o.ver, op, pdfgen.V1_4); err != nil {
		return err
	}
	if flags&^(Italic|Bold) != 0 {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"invalid style flags %d", flags)
	}
	o.style.flags = flags
	return nil
}

// StateSave saves the current color and style.
func (o *Outline) StateSave() error {
	if err := o.check("outline state save"); err != nil {
		return err
	}
	o.stack = append(o.stack, o.style)
	return nil
}

// StateRestore restores the color and style saved by the matching call
// to [Outline.StateSave].
func (o *Outline) StateRestore() error {
	const op = "outline state restore"
	if err := o.check(op); err != nil {
		return err
	}
	n := len(o.stack)
	if n == 0 {
		return pdfgen.Errorf(pdfgen.ErrUnbalancedStateStack, op, "")
	}
	o.style = o.stack[n-1]
	o.stack = o.stack[:n-1]
	return nil
}

// Freeze makes all further modifications fail.
func (o *Outline) Freeze() {
	o.frozen = true
}

func (o *Outline) check(op string) error {
	if o.frozen {
		return pdfgen.Errorf(pdfgen.ErrDocumentAlreadyFinalized, op, "")
	}
	return nil
}
