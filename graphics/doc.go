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

// Package graphics implements PDF content streams.
//
// A [Canvas] tracks the graphics state and the current object mode
// (page level, path, clipping path or text object), and translates each
// method call into the corresponding PDF operators.  Calls which are not
// valid in the current mode, or which have invalid arguments, return an
// error and leave the content stream unchanged.
//
// Operators are written in call order, one operator per line.  Coordinates
// are written as given, the current transformation matrix is applied by
// the PDF viewer.
//
// The object modes and the operators allowed in each mode are described
// in section 8.2 and figure 9 of ISO 32000-2:2020.
package graphics
