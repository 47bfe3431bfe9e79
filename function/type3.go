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
	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// Type3 is a stitching function: the input domain is cut into k
// intervals, and each interval is handled by one of k sub-functions.
type Type3 struct {
	Domain []float64 // [min max]
	Range  []float64 // optional output ranges, [min0 max0 min1 max1 ...]

	// Functions are the sub-functions.  Each takes one input, and all
	// of them have the same number of outputs.
	Functions []Function

	// Handles holds the registry handle of every entry of Functions.
	Handles []resource.Handle

	// Bounds are the k-1 interior cut points, strictly increasing.
	Bounds []float64

	// Encode gives, for every interval, the input range [lo hi] passed on
	// to the corresponding sub-function.
	Encode []float64
}

// FunctionType implements the [Function] interface.
func (f *Type3) FunctionType() int {
	return 3
}

// Shape implements the [Function] interface.
func (f *Type3) Shape() (int, int) {
	_, n := f.Functions[0].Shape()
	return 1, n
}

// Embed implements the [resource.Resource] interface.
func (f *Type3) Embed(e *resource.EmbedHelper) error {
	functionRefs := make(pdfgen.Array, len(f.Handles))
	for i, h := range f.Handles {
		ref, err := e.Object(h)
		if err != nil {
			return err
		}
		functionRefs[i] = ref
	}

	dict := pdfgen.Dict{
		"FunctionType": pdfgen.Integer(3),
		"Domain":       pdfgen.Reals(f.Domain...),
		"Functions":    functionRefs,
		"Bounds":       pdfgen.Reals(f.Bounds...),
		"Encode":       pdfgen.Reals(f.Encode...),
	}
	if len(f.Range) > 0 {
		dict["Range"] = pdfgen.Reals(f.Range...)
	}
	return e.Out().Put(e.Ref(), dict)
}

func (f *Type3) validate() error {
	fail := func(field, format string, args ...any) error {
		return newInvalidFunctionError(3, field, format, args...)
	}

	if len(f.Domain) != 2 || !isRange(f.Domain[0], f.Domain[1]) {
		return fail("domain", "need [min max], got %v", f.Domain)
	}
	lo, hi := f.Domain[0], f.Domain[1]

	k := len(f.Functions)
	switch {
	case k == 0:
		return fail("functions", "no sub-functions given")
	case len(f.Handles) != k:
		return fail("functions", "%d handles for %d functions", len(f.Handles), k)
	case len(f.Bounds) != k-1:
		return fail("bounds", "%d values for %d functions", len(f.Bounds), k)
	case len(f.Encode) != 2*k:
		return fail("encode", "%d values for %d functions", len(f.Encode), k)
	}

	prev := lo
	for i, b := range f.Bounds {
		if b <= prev || b >= hi {
			return fail("bounds", "value %d (%g) out of order or outside [%g, %g]", i, b, lo, hi)
		}
		prev = b
	}

	_, nOut := f.Functions[0].Shape()
	for i, fn := range f.Functions {
		if m, n := fn.Shape(); m != 1 || n != nOut {
			return fail("functions", "sub-function %d maps %d to %d values, want 1 to %d",
				i, m, n, nOut)
		}
	}

	if len(f.Range) > 0 {
		return checkRanges(3, "range", f.Range, nOut)
	}
	return nil
}
