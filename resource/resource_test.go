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

package resource

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfgen"
)

type testRes struct {
	val  int
	deps []Handle
	seen *[]int
}

func (r *testRes) Embed(e *EmbedHelper) error {
	for _, dep := range r.deps {
		if _, err := e.Object(dep); err != nil {
			return err
		}
	}
	*r.seen = append(*r.seen, r.val)
	return e.Out().Put(e.Ref(), pdfgen.Integer(r.val))
}

type directRes struct{}

func (directRes) Embed(*EmbedHelper) error    { panic("not reached") }
func (directRes) DirectObject() pdfgen.Object { return pdfgen.Name("DeviceRGB") }

func newRegistry(t *testing.T, out io.Writer) *Registry {
	t.Helper()
	w, err := pdfgen.NewWriter(out, pdfgen.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewRegistry(w)
}

func TestInterning(t *testing.T) {
	r := newRegistry(t, io.Discard)
	var seen []int
	builds := 0
	build := func() (Resource, error) {
		builds++
		return &testRes{val: 1, seen: &seen}, nil
	}

	h1, err := r.Load(KindFont, "standard;name=Helvetica", build)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := r.Load(KindFont, "standard;name=Helvetica", build)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("handles differ: %v != %v", h1, h2)
	}
	if builds != 1 || r.Len() != 1 {
		t.Errorf("resource built %d times, %d entries", builds, r.Len())
	}

	// same id, different kind
	h3, err := r.Load(KindImage, "standard;name=Helvetica", func() (Resource, error) {
		return &testRes{val: 2, seen: &seen}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if h3 == h1 || h3.Kind() != KindImage {
		t.Error("kinds are not separated")
	}
}

func TestEmbedOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	r := newRegistry(t, buf)
	var seen []int

	fn, err := r.Add(KindFunction, &testRes{val: 10, seen: &seen})
	if err != nil {
		t.Fatal(err)
	}
	cs, err := r.Load(KindColorSpace, "rgb", func() (Resource, error) { return directRes{}, nil })
	if err != nil {
		t.Fatal(err)
	}
	_, err = r.Add(KindPattern, &testRes{val: 20, deps: []Handle{fn, cs}, seen: &seen}, fn, cs)
	if err != nil {
		t.Fatal(err)
	}

	obj, err := r.Object(cs)
	if err != nil {
		t.Fatal(err)
	}
	if obj != pdfgen.Name("DeviceRGB") {
		t.Errorf("direct object %v", obj)
	}

	err = r.Embed()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]int{10, 20}, seen); d != "" {
		t.Error(d)
	}
	if bytes.Count(buf.Bytes(), []byte(" obj\n")) != 2 {
		t.Error("wrong number of objects written")
	}

	_, err = r.Add(KindFunction, &testRes{val: 30, seen: &seen})
	if !errors.Is(err, pdfgen.ErrDocumentAlreadyFinalized) {
		t.Errorf("load after embed: %v", err)
	}
}

func TestForeignHandle(t *testing.T) {
	r1 := newRegistry(t, io.Discard)
	r2 := newRegistry(t, io.Discard)
	var seen []int

	h, err := r1.Add(KindFunction, &testRes{val: 1, seen: &seen})
	if err != nil {
		t.Fatal(err)
	}
	_, err = r2.Add(KindFunction, &testRes{val: 2, seen: &seen})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r2.Object(h); !errors.Is(err, pdfgen.ErrInvalidArgument) {
		t.Errorf("foreign handle accepted: %v", err)
	}
	if _, err := r2.Add(KindPattern, &testRes{seen: &seen}, h); !errors.Is(err, pdfgen.ErrInvalidSpecification) {
		t.Errorf("foreign dependency accepted: %v", err)
	}
	if _, err := r1.Get(h, KindFont); !errors.Is(err, pdfgen.ErrInvalidArgument) {
		t.Errorf("wrong kind accepted: %v", err)
	}
	if _, err := r1.Object(Handle{}); err == nil {
		t.Error("zero handle accepted")
	}
}

func TestDictNames(t *testing.T) {
	r := newRegistry(t, io.Discard)
	var seen []int
	f1, _ := r.Add(KindFont, &testRes{seen: &seen})
	f2, _ := r.Add(KindFont, &testRes{seen: &seen})
	gs, _ := r.Add(KindExtGState, &testRes{seen: &seen})

	d := NewDict()
	if !d.IsEmpty() {
		t.Error("new dict not empty")
	}
	n1 := d.Name(CatFont, f1, pdfgen.NewReference(1, 0))
	n2 := d.Name(CatFont, f2, pdfgen.NewReference(2, 0))
	n3 := d.Name(CatFont, f1, pdfgen.NewReference(1, 0))
	n4 := d.Name(CatExtGState, gs, pdfgen.NewReference(3, 0))
	if n1 != "F1" || n2 != "F2" || n3 != "F1" || n4 != "GS1" {
		t.Errorf("unexpected names %s %s %s %s", n1, n2, n3, n4)
	}

	d.ProcSet.Text = true
	got := d.AsDict(pdfgen.V1_3)
	want := pdfgen.Dict{
		"Font": pdfgen.Dict{
			"F1": pdfgen.NewReference(1, 0),
			"F2": pdfgen.NewReference(2, 0),
		},
		"ExtGState": pdfgen.Dict{"GS1": pdfgen.NewReference(3, 0)},
		"ProcSet":   pdfgen.Array{pdfgen.Name("PDF"), pdfgen.Name("Text")},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
	if _, hasProcSet := d.AsDict(pdfgen.V1_4)["ProcSet"]; hasProcSet {
		t.Error("ProcSet written for PDF 1.4")
	}
}
