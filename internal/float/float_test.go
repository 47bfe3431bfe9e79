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

package float

import (
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		prec int
		out  string
	}{
		{0, 6, "0"},
		{1, 6, "1"},
		{-1, 6, "-1"},
		{10, 6, "10"},
		{100, 2, "100"},
		{0.5, 6, ".5"},
		{-0.25, 6, "-.25"},
		{1.5, 6, "1.5"},
		{1.0 / 3.0, 6, ".333333"},
		{2.0 / 3.0, 3, ".667"},
		{1e-7, 6, "0"},
		{-1e-7, 6, "0"},
		{math.Copysign(0, -1), 6, "0"},
		{123456789, 6, "123456789"},
		{1e20, 6, "100000000000000000000"},
		{12.3400, 6, "12.34"},
		{0.000001, 6, ".000001"},
	}
	for _, c := range cases {
		got := Format(c.in, c.prec)
		if got != c.out {
			t.Errorf("Format(%g, %d) = %q, want %q", c.in, c.prec, got, c.out)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.23456789, 3); got != 1.235 {
		t.Errorf("Round() = %g, want 1.235", got)
	}
	if got := Round(-0.0004, 3); got != 0 {
		t.Errorf("Round() = %g, want 0", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1, 2, -3) {
		t.Error("finite numbers not recognised")
	}
	if IsFinite(1, math.NaN()) {
		t.Error("NaN not detected")
	}
	if IsFinite(math.Inf(-1)) {
		t.Error("-Inf not detected")
	}
}
