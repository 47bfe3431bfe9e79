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

package pattern

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/color"
	"seehuhn.de/go/pdfgen/function"
	"seehuhn.de/go/pdfgen/resource"
)

func setup(t *testing.T) (*resource.Registry, *bytes.Buffer, resource.Handle, resource.Handle) {
	t.Helper()
	buf := &bytes.Buffer{}
	w, err := pdfgen.NewWriter(buf, pdfgen.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	reg := resource.NewRegistry(w)
	cs, err := color.Load(reg, "rgb")
	if err != nil {
		t.Fatal(err)
	}
	fn, err := function.Load2(reg, "domain=0 1; c0=1 0 0; c1=0 0 1; n=1")
	if err != nil {
		t.Fatal(err)
	}
	return reg, buf, cs, fn
}

func TestAxial(t *testing.T) {
	reg, buf, cs, fn := setup(t)

	h1, err := LoadShading(reg, "axial; coords=0 0 100 0; extend=1 1", cs, fn)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := LoadShading(reg, "axial;extend=1 1;coords=0 0 100 0", cs, fn)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Error("equivalent shadings give different handles")
	}

	res, err := reg.Get(h1, resource.KindPattern)
	if err != nil {
		t.Fatal(err)
	}
	pat := res.(*ShadingPattern)
	if pat.PatternType() != 2 || pat.PaintType() != Colored {
		t.Error("wrong pattern type")
	}
	if pat.ShadingHandle.Kind() != resource.KindShading {
		t.Error("shading handle has the wrong kind")
	}

	if err := reg.Embed(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"/ShadingType 2",
		"/Coords [0 0 100 0]",
		"/Extend [true true]",
		"/PatternType 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestRadialPerComponent(t *testing.T) {
	reg, _, cs, _ := setup(t)
	var fns []resource.Handle
	for _, spec := range []string{"c0=0; c1=1", "c0=1; c1=0", "c0=.5; c1=.5"} {
		fn, err := function.Load2(reg, spec)
		if err != nil {
			t.Fatal(err)
		}
		fns = append(fns, fn)
	}
	_, err := LoadShading(reg, "radial; coords=50 50 0 50 50 40; background=1 1 1", cs, fns...)
	if err != nil {
		t.Fatal(err)
	}
}

func TestShadingErrors(t *testing.T) {
	reg, _, cs, fn := setup(t)
	gray, err := color.Load(reg, "gray")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		spec string
		cs   resource.Handle
		fns  []resource.Handle
	}{
		{"axial; coords=0 0 1", cs, []resource.Handle{fn}},
		{"conic; coords=0 0 1 1", cs, []resource.Handle{fn}},
		{"axial; coords=0 0 1 1", gray, []resource.Handle{fn}},
		{"axial; coords=0 0 1 1", cs, nil},
		{"radial; coords=0 0 -1 0 0 1", cs, []resource.Handle{fn}},
		{"axial; coords=0 0 1 1; background=1", cs, []resource.Handle{fn}},
		{"axial; coords=0 0 1 1; extend=1", cs, []resource.Handle{fn}},
		{"function", cs, []resource.Handle{fn}},
		{"axial; coords=0 0 1 1", fn, []resource.Handle{fn}},
	}
	for _, c := range cases {
		_, err := LoadShading(reg, c.spec, c.cs, c.fns...)
		if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
			t.Errorf("%q: expected ErrInvalidSpecification, got %v", c.spec, err)
		}
	}
}

func TestTiling(t *testing.T) {
	reg, buf, _, _ := setup(t)

	content := []byte("0 0 5 5 re f\n")
	h, err := LoadTiling(reg, "step=10 10; type=uncolored", content, pdfgen.Dict{})
	if err != nil {
		t.Fatal(err)
	}
	res, err := reg.Get(h, resource.KindPattern)
	if err != nil {
		t.Fatal(err)
	}
	pat := res.(*Tiling)
	if pat.PaintType() != Uncolored {
		t.Error("wrong paint type")
	}
	if d := cmp.Diff(rect.Rect{URx: 10, URy: 10}, pat.BBox); d != "" {
		t.Error(d)
	}

	if err := reg.Embed(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "0 0 5 5 re f\n") {
		t.Error("pattern cell not written")
	}

	for _, spec := range []string{
		"bbox=0 0 1 1",
		"step=0 10",
		"step=10 10; tiling=4",
		"step=10 10; type=shaded",
		"step=10 10; bbox=0 0 0 1",
	} {
		_, err := LoadTiling(reg, spec, content, nil)
		if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
			t.Errorf("%q: expected ErrInvalidSpecification, got %v", spec, err)
		}
	}
}
