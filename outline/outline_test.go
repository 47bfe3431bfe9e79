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

package outline

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/destination"
)

func newOutline(t *testing.T, out io.Writer, ver pdfgen.Version) (*Outline, *pdfgen.Writer) {
	t.Helper()
	w, err := pdfgen.NewWriter(out, ver, nil)
	if err != nil {
		t.Fatal(err)
	}
	dests := destination.NewTable(w)
	return New(ver, dests, func() int { return 1 }), w
}

func titles(items []*Item) []any {
	var res []any
	for _, item := range items {
		res = append(res, item.Title)
		if len(item.Children) > 0 {
			res = append(res, titles(item.Children))
		}
	}
	return res
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestTree(t *testing.T) {
	o, _ := newOutline(t, io.Discard, pdfgen.V1_4)

	must(t, o.Item("1"))
	must(t, o.LevelDown())
	must(t, o.Item("1.1"))
	must(t, o.Item("1.2"))
	must(t, o.LevelDown())
	must(t, o.Item("1.2.1"))
	must(t, o.LevelUp())
	must(t, o.Item("1.3"))
	must(t, o.LevelUp())
	must(t, o.Item("2"))

	want := []any{"1", []any{"1.1", "1.2", []any{"1.2.1"}, "1.3"}, "2"}
	if d := cmp.Diff(want, titles(o.Items)); d != "" {
		t.Error(d)
	}
}

func TestLevelErrors(t *testing.T) {
	o, _ := newOutline(t, io.Discard, pdfgen.V1_4)

	err := o.LevelUp()
	if !errors.Is(err, pdfgen.ErrOutlineUnderflow) {
		t.Errorf("LevelUp at root: got %v", err)
	}
	err = o.LevelDown()
	if !errors.Is(err, pdfgen.ErrInvalidOperationOrder) {
		t.Errorf("LevelDown without item: got %v", err)
	}

	must(t, o.Item("a"))
	must(t, o.LevelDown())
	err = o.LevelDown()
	if !errors.Is(err, pdfgen.ErrInvalidOperationOrder) {
		t.Errorf("LevelDown without child: got %v", err)
	}
	must(t, o.LevelUp())
	err = o.LevelUp()
	if !errors.Is(err, pdfgen.ErrOutlineUnderflow) {
		t.Errorf("second LevelUp: got %v", err)
	}
}

func TestStyle(t *testing.T) {
	o, _ := newOutline(t, io.Discard, pdfgen.V1_4)

	must(t, o.Color(1, 0, 0))
	must(t, o.Style(Bold))
	must(t, o.StateSave())
	must(t, o.Style(Bold|Italic))
	must(t, o.Item("a"))
	must(t, o.StateRestore())
	must(t, o.Item("b"))

	a, b := o.Items[0], o.Items[1]
	if a.Flags != Bold|Italic || b.Flags != Bold {
		t.Errorf("flags = %d, %d", a.Flags, b.Flags)
	}
	red := &[3]float64{1, 0, 0}
	if d := cmp.Diff(red, b.Color); d != "" {
		t.Error(d)
	}

	err := o.StateRestore()
	if !errors.Is(err, pdfgen.ErrUnbalancedStateStack) {
		t.Errorf("unbalanced restore: got %v", err)
	}
	err = o.Color(2, 0, 0)
	if !errors.Is(err, pdfgen.ErrInvalidArgument) {
		t.Errorf("invalid color: got %v", err)
	}
	err = o.Style(4)
	if !errors.Is(err, pdfgen.ErrInvalidArgument) {
		t.Errorf("invalid style: got %v", err)
	}
}

func TestStyleVersion(t *testing.T) {
	o, _ := newOutline(t, io.Discard, pdfgen.V1_3)
	err := o.Color(0, 0, 1)
	var verErr *pdfgen.VersionError
	if !errors.As(err, &verErr) {
		t.Errorf("Color: got %v, want VersionError", err)
	}
	err = o.Style(Italic)
	if !errors.As(err, &verErr) {
		t.Errorf("Style: got %v, want VersionError", err)
	}
}

func TestItemDest(t *testing.T) {
	o, _ := newOutline(t, io.Discard, pdfgen.V1_4)
	err := o.ItemDest("x", "mode=Nowhere")
	if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
		t.Errorf("invalid destination: got %v", err)
	}
	err = o.ItemID("y", 42)
	if !errors.Is(err, pdfgen.ErrInvalidArgument) {
		t.Errorf("unknown destination: got %v", err)
	}
	if len(o.Items) != 0 {
		t.Errorf("%d items after errors", len(o.Items))
	}
}

func TestFreeze(t *testing.T) {
	o, _ := newOutline(t, io.Discard, pdfgen.V1_4)
	must(t, o.Item("a"))
	o.Freeze()
	if err := o.Item("b"); !errors.Is(err, pdfgen.ErrDocumentAlreadyFinalized) {
		t.Errorf("Item after Freeze: got %v", err)
	}
	if err := o.LevelDown(); !errors.Is(err, pdfgen.ErrDocumentAlreadyFinalized) {
		t.Errorf("LevelDown after Freeze: got %v", err)
	}
}

func TestEmbed(t *testing.T) {
	buf := &bytes.Buffer{}
	o, w := newOutline(t, buf, pdfgen.V1_4)

	must(t, o.Style(Italic))
	must(t, o.Item("Chapter"))
	must(t, o.LevelDown())
	must(t, o.Item("Section"))

	err := o.Embed(w, w.Alloc())
	if err != nil {
		t.Fatal(err)
	}
	body := buf.String()
	for _, want := range []string{
		"/Type /Outlines",
		"/Count 2",
		"/Title (Chapter)",
		"/Title (Section)",
		"/F 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in output", want)
		}
	}
}

func TestEmbedEmpty(t *testing.T) {
	o, w := newOutline(t, io.Discard, pdfgen.V1_4)
	if !o.IsEmpty() {
		t.Error("new outline is not empty")
	}
	err := o.Embed(w, w.Alloc())
	if !errors.Is(err, pdfgen.ErrInvalidOperationOrder) {
		t.Errorf("got %v, want ErrInvalidOperationOrder", err)
	}
}
