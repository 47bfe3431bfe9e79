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

// Package pattern implements shading and tiling patterns.
//
// Patterns are described in section 8.7 of ISO 32000-2:2020.
package pattern

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// Pattern is a pattern resource.
type Pattern interface {
	resource.Resource

	// PatternType returns 1 for tiling patterns and 2 for shading patterns.
	PatternType() int

	// PaintType returns 1 for colored patterns and 2 for uncolored patterns.
	PaintType() int
}

// Paint types.
const (
	Colored   = 1
	Uncolored = 2
)

func matrixToPDF(m matrix.Matrix) pdfgen.Array {
	return pdfgen.Reals(m[:]...)
}

func rectToPDF(r *rect.Rect) pdfgen.Array {
	return pdfgen.Reals(r.LLx, r.LLy, r.URx, r.URy)
}

func toMatrix(x []float64) matrix.Matrix {
	if x == nil {
		return matrix.Identity
	}
	var m matrix.Matrix
	copy(m[:], x)
	return m
}

func toRect(x []float64) *rect.Rect {
	if x == nil {
		return nil
	}
	return &rect.Rect{
		LLx: min(x[0], x[2]),
		LLy: min(x[1], x[3]),
		URx: max(x[0], x[2]),
		URy: max(x[1], x[3]),
	}
}
