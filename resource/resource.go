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

// Package resource implements the resource registry of a document and the
// resource dictionaries of content streams.
package resource

import (
	"strconv"

	"seehuhn.de/go/pdfgen"
)

// Category is a section of a resource dictionary.
//
// See section 7.8.3 of ISO 32000-2:2020.
type Category byte

// The resource categories.
const (
	CatExtGState Category = iota + 1
	CatColorSpace
	CatPattern
	CatShading
	CatXObject
	CatFont
)

func (cat Category) key() pdfgen.Name {
	switch cat {
	case CatExtGState:
		return "ExtGState"
	case CatColorSpace:
		return "ColorSpace"
	case CatPattern:
		return "Pattern"
	case CatShading:
		return "Shading"
	case CatXObject:
		return "XObject"
	case CatFont:
		return "Font"
	default:
		panic("invalid resource category")
	}
}

func (cat Category) prefix() pdfgen.Name {
	switch cat {
	case CatExtGState:
		return "GS"
	case CatColorSpace:
		return "CS"
	case CatPattern:
		return "P"
	case CatShading:
		return "Sh"
	case CatXObject:
		return "Im"
	case CatFont:
		return "F"
	default:
		panic("invalid resource category")
	}
}

// ProcSet records which procedure sets a content stream uses.
// Procedure sets are obsolete, but were required before PDF 1.4.
type ProcSet struct {
	Text   bool
	ImageB bool
	ImageC bool
	ImageI bool
}

// Dict is the resource dictionary of a single content stream.
// Names are allocated per category, in order of first use.
type Dict struct {
	ProcSet ProcSet

	names map[catHandle]pdfgen.Name
	cats  map[Category]pdfgen.Dict
}

type catHandle struct {
	cat Category
	h   Handle
}

// NewDict returns an empty resource dictionary.
func NewDict() *Dict {
	return &Dict{
		names: make(map[catHandle]pdfgen.Name),
		cats:  make(map[Category]pdfgen.Dict),
	}
}

// Name returns the name under which the resource h is listed in the given
// category.  If needed, a new name is allocated and obj is stored in the
// dictionary.
func (d *Dict) Name(cat Category, h Handle, obj pdfgen.Object) pdfgen.Name {
	key := catHandle{cat, h}
	if name, ok := d.names[key]; ok {
		return name
	}

	dict := d.cats[cat]
	if dict == nil {
		dict = pdfgen.Dict{}
		d.cats[cat] = dict
	}
	name := cat.prefix() + pdfgen.Name(strconv.Itoa(len(dict)+1))
	dict[name] = obj
	d.names[key] = name
	return name
}

// IsEmpty reports whether no resources have been used.
func (d *Dict) IsEmpty() bool {
	return len(d.cats) == 0 && d.ProcSet == ProcSet{}
}

// AsDict returns the PDF representation of the resource dictionary.
func (d *Dict) AsDict(ver pdfgen.Version) pdfgen.Dict {
	res := pdfgen.Dict{}
	for cat, dict := range d.cats {
		res[cat.key()] = dict
	}
	if ver < pdfgen.V1_4 {
		procSet := pdfgen.Array{pdfgen.Name("PDF")}
		if d.ProcSet.Text {
			procSet = append(procSet, pdfgen.Name("Text"))
		}
		if d.ProcSet.ImageB {
			procSet = append(procSet, pdfgen.Name("ImageB"))
		}
		if d.ProcSet.ImageC {
			procSet = append(procSet, pdfgen.Name("ImageC"))
		}
		if d.ProcSet.ImageI {
			procSet = append(procSet, pdfgen.Name("ImageI"))
		}
		res["ProcSet"] = procSet
	}
	return res
}
