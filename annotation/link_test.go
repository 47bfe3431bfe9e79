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

package annotation

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
)

func TestParseStyle(t *testing.T) {
	cases := []struct {
		spec string
		want *Style
	}{
		{"", &Style{}},
		{"border=2", &Style{Border: 2}},
		{"border=1; color=1 0 0", &Style{Border: 1, Color: []float64{1, 0, 0}}},
		{"dash=3 1; highlight=push", &Style{Dash: []float64{3, 1}, Highlight: HighlightPush}},
		{"highlight=None", &Style{Highlight: HighlightNone}},
	}
	for _, c := range cases {
		got, err := ParseStyle(c.spec)
		if err != nil {
			t.Errorf("%q: %v", c.spec, err)
			continue
		}
		if d := cmp.Diff(c.want, got); d != "" {
			t.Errorf("%q: %s", c.spec, d)
		}
	}
}

func TestParseStyleErrors(t *testing.T) {
	for _, spec := range []string{
		"border=-1",
		"color=1 0",
		"color=2 0 0",
		"dash=0 0",
		"dash=-1 2",
		"highlight=blink",
		"width=2",
		"solid",
	} {
		_, err := ParseStyle(spec)
		if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
			t.Errorf("%q: got %v, want ErrInvalidSpecification", spec, err)
		}
	}
}

func TestNewLink(t *testing.T) {
	l, err := NewLink(10, 20, 100, 15, "")
	if err != nil {
		t.Fatal(err)
	}
	want := rect.Rect{LLx: 10, LLy: 20, URx: 110, URy: 35}
	if d := cmp.Diff(want, l.Rect); d != "" {
		t.Error(d)
	}

	_, err = NewLink(0, 0, -1, 1, "")
	if !errors.Is(err, pdfgen.ErrInvalidArgument) {
		t.Errorf("negative width: got %v", err)
	}
	_, err = NewLink(math.Inf(1), 0, 1, 1, "")
	if !errors.Is(err, pdfgen.ErrInvalidArgument) {
		t.Errorf("infinite coordinate: got %v", err)
	}
}

func TestEmbed(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := pdfgen.NewWriter(buf, pdfgen.V1_4, nil)
	if err != nil {
		t.Fatal(err)
	}
	page := w.Alloc()
	dest := w.Alloc()

	goTo, err := NewLink(0, 0, 50, 10, "border=1; color=0 0 1")
	if err != nil {
		t.Fatal(err)
	}
	goTo.Dest = dest
	uri, err := NewLink(0, 20, 50, 10, "highlight=outline")
	if err != nil {
		t.Fatal(err)
	}
	uri.URI = "https://example.com/"

	for _, l := range []*Link{goTo, uri} {
		err = l.Embed(w, w.Alloc(), page)
		if err != nil {
			t.Fatal(err)
		}
	}

	body := buf.String()
	for _, want := range []string{
		"/Subtype /Link",
		"/Dest 2 0 R",
		"/Border [0 0 1]",
		"/C [0 0 1]",
		"/P 1 0 R",
		"/Rect [0 20 50 30]",
		"/URI (https://example.com/)",
		"/S /URI",
		"/H /O",
		"/Border [0 0 0]",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in output", want)
		}
	}
}
