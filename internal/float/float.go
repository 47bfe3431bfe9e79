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

// Package float formats numbers for use in PDF files.
//
// PDF has no syntax for exponents, so all numbers are written in fixed
// notation.  Trailing zeros after the decimal point are removed, and a
// leading zero before the decimal point is omitted.
package float

import (
	"math"
	"strconv"
	"strings"
)

// Precision is the number of decimal digits used for content stream
// operands.
const Precision = 6

// Format formats x with at most the given number of decimal digits.
func Format(x float64, precision int) string {
	out := strconv.FormatFloat(x, 'f', precision, 64)
	if strings.IndexByte(out, '.') >= 0 {
		out = strings.TrimRight(out, "0")
		out = strings.TrimSuffix(out, ".")
	}
	if neg, ok := strings.CutPrefix(out, "-"); ok {
		if neg == "0" {
			return "0"
		}
		return "-" + strings.TrimPrefix(neg, "0")
	}
	if out == "0" {
		return out
	}
	return strings.TrimPrefix(out, "0")
}

// Round rounds x to the given number of decimal digits, in the same
// way as [Format] does.
func Round(x float64, digits int) float64 {
	s := Format(x, digits)
	y, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(err)
	}
	return y
}

// IsFinite reports whether all arguments are finite numbers.
func IsFinite(xx ...float64) bool {
	for _, x := range xx {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
