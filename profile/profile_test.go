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

package profile

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"seehuhn.de/go/pdfgen"
)

func TestDefaults(t *testing.T) {
	opt := New().Snapshot()
	if opt.Version != pdfgen.V1_4 {
		t.Errorf("default version %s", opt.Version)
	}
	if !opt.Compressed || opt.XRefStream || opt.Metadata {
		t.Error("wrong default flags")
	}
	if opt.DefaultDPI != 72 {
		t.Errorf("default dpi %g", opt.DefaultDPI)
	}
	if _, ok := opt.Filter().(pdfgen.FilterFlate); !ok {
		t.Errorf("default filter %T", opt.Filter())
	}

	var p *Profile
	if p.Snapshot().Version != pdfgen.V1_4 {
		t.Error("nil profile not handled")
	}
}

func TestSet(t *testing.T) {
	p := New()
	good := [][2]string{
		{"doc.version", "7"},
		{"doc.compressed", "0"},
		{"doc.lang", "de-CH"},
		{"doc.page_mode", "UseOutlines"},
		{"info.title", "A Test"},
		{"images.default_dpi", "300"},
	}
	for _, kv := range good {
		if err := p.Set(kv[0], kv[1]); err != nil {
			t.Errorf("Set(%q, %q): %v", kv[0], kv[1], err)
		}
	}
	opt := p.Snapshot()
	if opt.Version != pdfgen.V1_7 || opt.Compressed || opt.Title != "A Test" {
		t.Errorf("options not applied: %+v", opt)
	}
	if opt.Lang != language.MustParse("de-CH") {
		t.Errorf("wrong language %s", opt.Lang)
	}
	if opt.Filter() != nil {
		t.Error("compression not disabled")
	}

	bad := [][2]string{
		{"doc.version", "9"},
		{"doc.version", "x"},
		{"doc.compressed", "yes"},
		{"doc.compression_filter", "zip"},
		{"doc.lang", "not a language"},
		{"images.default_dpi", "-1"},
		{"no.such.option", "1"},
	}
	for _, kv := range bad {
		err := p.Set(kv[0], kv[1])
		if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
			t.Errorf("Set(%q, %q): expected ErrInvalidSpecification, got %v", kv[0], kv[1], err)
		}
	}
}

func TestSnapshotIsolation(t *testing.T) {
	p := New()
	opt := p.Snapshot()
	if err := p.Set("info.author", "someone"); err != nil {
		t.Fatal(err)
	}
	if opt.Author != "" {
		t.Error("snapshot changed after Set")
	}
}

func TestSaveLoad(t *testing.T) {
	p := New()
	_ = p.Set("doc.version", "6")
	_ = p.Set("doc.compression_filter", "lzw")
	_ = p.Set("info.title", "Title: with colon")

	buf := &bytes.Buffer{}
	if err := p.Save(buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "images.default_dpi") {
		t.Error("default value was saved")
	}

	q, err := Load(buf)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(p.values, q.values); d != "" {
		t.Error(d)
	}

	fname := filepath.Join(t.TempDir(), "profile.yaml")
	if err := p.SaveFile(fname); err != nil {
		t.Fatal(err)
	}
	r, err := LoadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if r.Snapshot().Version != pdfgen.V1_6 {
		t.Error("version lost")
	}
	if _, ok := r.Snapshot().Filter().(pdfgen.FilterLZW); !ok {
		t.Error("filter lost")
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader("doc.version: [1, 2]\n"))
	if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
		t.Errorf("malformed YAML: %v", err)
	}
	_, err = Load(strings.NewReader("doc.unknown: 1\n"))
	if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
		t.Errorf("unknown option: %v", err)
	}
	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, pdfgen.ErrResourceUnavailable) {
		t.Errorf("missing file: %v", err)
	}
}
