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

// Package function implements PDF functions.
//
// Three function types are supported:
//   - Type 2: exponential interpolation
//   - Type 3: stitching functions
//   - Type 4: PostScript calculator functions
//
// Functions are described in section 7.10 of ISO 32000-2:2020.
package function

import (
	"fmt"
	"math"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// Function is a PDF function resource.
type Function interface {
	resource.Resource

	// FunctionType returns 2, 3 or 4.
	FunctionType() int

	// Shape returns the number of input and output values of the function.
	Shape() (int, int)
}

// InvalidFunctionError is returned when a function's configuration is
// invalid.
type InvalidFunctionError struct {
	FunctionType int
	Field        string
	Message      string
}

func (e *InvalidFunctionError) Error() string {
	return fmt.Sprintf("Type %d function invalid %s: %s", e.FunctionType, e.Field, e.Message)
}

// Is allows [errors.Is] to classify the error as
// [pdfgen.ErrInvalidSpecification].
func (e *InvalidFunctionError) Is(target error) bool {
	return target == pdfgen.ErrInvalidSpecification
}

func newInvalidFunctionError(functionType int, field, format string, args ...any) *InvalidFunctionError {
	return &InvalidFunctionError{
		FunctionType: functionType,
		Field:        field,
		Message:      fmt.Sprintf(format, args...),
	}
}

func isRange(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0) && x <= y
}

func checkRanges(tp int, field string, ranges []float64, n int) error {
	if len(ranges) != 2*n {
		return newInvalidFunctionError(tp, field, "invalid length %d, expected %d",
			len(ranges), 2*n)
	}
	for i := range n {
		if !isRange(ranges[2*i], ranges[2*i+1]) {
			return newInvalidFunctionError(tp, field, "invalid range for value %d: [%g, %g]",
				i, ranges[2*i], ranges[2*i+1])
		}
	}
	return nil
}
