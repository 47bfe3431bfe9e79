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

package metadata

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdfgen"
)

func TestAsDict(t *testing.T) {
	info := &Info{
		Title:        "Grüße",
		Producer:     "test",
		CreationDate: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}
	got := info.AsDict()
	want := pdfgen.Dict{
		"Title":        pdfgen.TextString("Grüße"),
		"Producer":     pdfgen.String("test"),
		"CreationDate": pdfgen.String("D:20261017120000+00'00"),
		"ModDate":      pdfgen.String("D:20261017120000+00'00"),
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestPacketRoundTrip(t *testing.T) {
	info := &Info{
		Title:   "Test Document",
		Author:  "Test Author",
		Subject: "Round Trip",
		Lang:    language.German,
	}
	buf := &bytes.Buffer{}
	w, err := pdfgen.NewWriter(buf, pdfgen.V1_4, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = info.Embed(w, w.Alloc())
	if err != nil {
		t.Fatal(err)
	}

	body := buf.String()
	start := strings.Index(body, "<?xpacket begin")
	end := strings.LastIndex(body, "<?xpacket end")
	if start < 0 || end < start {
		t.Fatal("no XMP packet found")
	}
	end += strings.Index(body[end:], "?>") + 2
	packet, err := xmp.Read(strings.NewReader(body[start:end]))
	if err != nil {
		t.Fatal(err)
	}

	var dc xmp.DublinCore
	packet.Get(&dc)
	got := []string{dc.Title.Default.V, dc.Title.V[language.German].V, dc.Description.Default.V}
	for _, name := range dc.Creator.V {
		got = append(got, name.V)
	}
	want := []string{"Test Document", "Test Document", "Round Trip", "Test Author"}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestEmbedVersion(t *testing.T) {
	w, err := pdfgen.NewWriter(io.Discard, pdfgen.V1_3, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = (&Info{Title: "x"}).Embed(w, w.Alloc())
	var verErr *pdfgen.VersionError
	if !errors.As(err, &verErr) {
		t.Errorf("got %v, want VersionError", err)
	}
}
