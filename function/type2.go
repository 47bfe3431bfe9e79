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

package function

import (
	"math"
	"slices"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/internal/float"
	"seehuhn.de/go/pdfgen/resource"
)

// Type2 represents a power interpolation function, of the form
// y = C0 + x^N × (C1 - C0).  These functions have a single input x and can
// have one or more outputs.
type Type2 struct {
	// XMin and XMax give the input domain.
	XMin, XMax float64

	// Range (optional) defines clipping ranges for the outputs, in the form
	// [min0, max0, min1, max1, ...].
	Range []float64

	// C0 defines the function result when x = 0.0.
	// This must have the same length as C1.
	C0 []float64

	// C1 defines the function result when x = 1.0.
	// This must have the same length as C0.
	C1 []float64

	// N is the interpolation exponent.
	N float64
}

// FunctionType implements the [Function] interface.
func (f *Type2) FunctionType() int {
	return 2
}

// Shape implements the [Function] interface.
func (f *Type2) Shape() (int, int) {
	return 1, len(f.C0)
}

// Embed implements the [resource.Resource] interface.
func (f *Type2) Embed(e *resource.EmbedHelper) error {
	dict := pdfgen.Dict{
		"FunctionType": pdfgen.Integer(2),
		"Domain":       pdfgen.Reals(f.XMin, f.XMax),
		"N":            pdfgen.Real(f.N),
	}
	if len(f.Range) > 0 {
		dict["Range"] = pdfgen.Reals(f.Range...)
	}
	if !slices.Equal(f.C0, []float64{0}) {
		dict["C0"] = pdfgen.Reals(f.C0...)
	}
	if !slices.Equal(f.C1, []float64{1}) {
		dict["C1"] = pdfgen.Reals(f.C1...)
	}
	return e.Out().Put(e.Ref(), dict)
}

func (f *Type2) validate() error {
	if !isRange(f.XMin, f.XMax) {
		return newInvalidFunctionError(2, "domain", "invalid domain [%g,%g]",
			f.XMin, f.XMax)
	}

	if len(f.C0) < 1 || len(f.C0) != len(f.C1) {
		return newInvalidFunctionError(2, "c0/c1", "invalid length %d,%d",
			len(f.C0), len(f.C1))
	}

	if !float.IsFinite(f.N) {
		return newInvalidFunctionError(2, "n", "must be a finite number, got %g", f.N)
	}
	if f.N != math.Trunc(f.N) && f.XMin < 0 {
		return newInvalidFunctionError(2, "domain",
			"minimum must be >= 0 when n is non-integer, got %g", f.XMin)
	}
	if f.N < 0 && f.XMin <= 0 && f.XMax >= 0 {
		return newInvalidFunctionError(2, "domain", "must not include 0 when n is negative")
	}

	if f.Range != nil {
		_, n := f.Shape()
		return checkRanges(2, "range", f.Range, n)
	}
	return nil
}
