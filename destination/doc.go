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

// Package destination keeps track of the destinations in a PDF document.
//
// A destination gives a page of the document together with the part of
// the page which should be shown, and the magnification.  Destinations are
// described by specification strings of the form
//
//	page=3; mode=FitH; top=700
//
// The recognised modes are XYZ (the default), Fit, FitH, FitV, FitR,
// FitB, FitBH and FitBV.  Each mode takes a subset of the keys left, top,
// right, bottom and zoom, following table 149 of ISO 32000-2:2020.  If the
// page is omitted, the current page of the document is used.
//
// Destinations can be used before they are defined: [Table.Reserve]
// allocates an identifier, and [Table.DefineReserved] later supplies the
// view.  All destinations are written as indirect destination arrays.
package destination
