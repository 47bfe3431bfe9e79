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

// Package pdfgen provides the low-level layer for writing PDF files.
//
// This package treats PDF files as a sequence of indirect objects
// (typically dictionaries and streams).  Objects are written
// sequentially, the byte offset of every object is recorded as it is
// written, and the cross-reference table and the trailer are written by
// [Writer.Close]:
//
//	w, err := pdfgen.NewWriter(out, pdfgen.V1_7, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	catalog := w.Alloc()
//	pages := w.Alloc()
//	... write the page tree and the pages ...
//	err = w.Put(catalog, pdfgen.Dict{
//	    "Type":  pdfgen.Name("Catalog"),
//	    "Pages": pages,
//	})
//	...
//	err = w.Close(pdfgen.Dict{"Root": catalog})
//
// The following types implement the native PDF object types.
// All of these implement the [Object] interface:
//
//	Array
//	Bool
//	Dict
//	Integer
//	Name
//	Real
//	Reference
//	*Stream
//	String
//
// [TextString] and [Date] are converted to PDF strings when they are
// written.
//
// Most users will not use this package directly, but will use
// seehuhn.de/go/pdfgen/document to assemble complete documents.
//
// Errors returned by the packages of this module can be classified using
// [errors.Is] with the sentinel errors defined here, for example
// [ErrInvalidSpecification] or [ErrIOFailure].
package pdfgen
