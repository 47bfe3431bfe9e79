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

package pdfgen

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{nil, "null"},
		{Bool(true), "true"},
		{Integer(-12), "-12"},
		{Real(0.5), ".5"},
		{Real(2), "2"},
		{Name("Type"), "/Type"},
		{Name("A B#"), "/A#20B#23"},
		{Name("x/y"), "/x#2fy"},
		{String("hello"), "(hello)"},
		{String("a(b)c"), "(a(b)c)"},
		{String("a)b"), `(a\)b)`},
		{String("line\n"), `(line\n)`},
		{String{0, 1, 2}, "<000102>"},
		{Array{Integer(1), nil, Name("X")}, "[1 null /X]"},
		{Dict{"B": Integer(2), "A": Integer(1), "C": nil}, "<<\n/A 1\n/B 2\n>>"},
		{Dict(nil), "null"},
		{NewReference(12, 0), "12 0 R"},
		{Reals(1, 0, 0, 1, 0.25, -3), "[1 0 0 1 .25 -3]"},
	}
	for _, c := range cases {
		got := Format(c.in)
		if got != c.out {
			t.Errorf("Format(%#v) = %q, want %q", c.in, got, c.out)
		}
	}
}

func TestRealNaN(t *testing.T) {
	err := Real(math.NaN()).PDF(&discard{})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestTextString(t *testing.T) {
	if got := string(TextString("Chapter 1")); got != "Chapter 1" {
		t.Errorf("ASCII text changed: %q", got)
	}

	got := TextString("Grüße")
	want := []byte{0xFE, 0xFF, 0, 'G', 0, 'r', 0, 0xFC, 0, 0xDF, 0, 'e'}
	if string(got) != string(want) {
		t.Errorf("TextString() = % x, want % x", got, want)
	}

	// decomposed input is normalised
	decomposed := TextString("u\u0308")
	composed := TextString("\u00fc")
	if string(decomposed) != string(composed) {
		t.Errorf("NFC normalisation missing: % x != % x", decomposed, composed)
	}
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("test", 2*3600)
	d := Date(time.Date(2026, 3, 1, 12, 30, 45, 0, loc))
	if string(d) != "D:20260301123045+02'00" {
		t.Errorf("Date() = %q", d)
	}
}

func TestReference(t *testing.T) {
	ref := NewReference(7, 3)
	if ref.Number() != 7 || ref.Generation() != 3 {
		t.Errorf("wrong reference fields %d %d", ref.Number(), ref.Generation())
	}
	if ref.String() != "7 3 R" {
		t.Errorf("String() = %q", ref.String())
	}
	if Format(Reference(0)) == "0 0 R" {
		t.Error("null reference was written")
	}
}
