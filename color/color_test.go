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

package color

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/icc"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

func newRegistry(t *testing.T, ver pdfgen.Version) (*resource.Registry, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	w, err := pdfgen.NewWriter(buf, ver, nil)
	if err != nil {
		t.Fatal(err)
	}
	return resource.NewRegistry(w), buf
}

func TestChannels(t *testing.T) {
	reg, _ := newRegistry(t, pdfgen.V1_7)
	cases := []struct {
		spec     string
		family   pdfgen.Name
		channels int
	}{
		{"gray", FamilyDeviceGray, 1},
		{"rgb", FamilyDeviceRGB, 3},
		{"cmyk", FamilyDeviceCMYK, 4},
		{"calgray; white=0.9505, 1.089; gamma=2.2", FamilyCalGray, 1},
		{"calrgb; white=0.9505 1.089; gamma=1.8 1.8 1.8", FamilyCalRGB, 3},
		{"lab; white=0.9505 1.089; range=-127 127 -127 127", FamilyLab, 3},
		{"srgb", FamilyICCBased, 3},
		{"indexed; base=rgb; palette=255 0 0 0 255 0", FamilyIndexed, 1},
		{"gray; palette=0 128 255", FamilyIndexed, 1},
	}
	for _, c := range cases {
		h, err := Load(reg, c.spec)
		if err != nil {
			t.Errorf("%q: %v", c.spec, err)
			continue
		}
		res, err := reg.Get(h, resource.KindColorSpace)
		if err != nil {
			t.Fatal(err)
		}
		space := res.(Space)
		if space.Family() != c.family || space.Channels() != c.channels {
			t.Errorf("%q: got %s with %d channels", c.spec, space.Family(), space.Channels())
		}
	}
}

func TestInterning(t *testing.T) {
	reg, _ := newRegistry(t, pdfgen.V1_7)
	h1, err := Load(reg, "calrgb; white=0.9505 1.089; gamma=2.2 2.2 2.2")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := Load(reg, "calrgb;gamma=2.2  2.2 2.2;  white=0.9505 1.089")
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Error("equivalent specifications give different handles")
	}
	h3, err := Load(reg, "calrgb; white=0.9505 1.089")
	if err != nil {
		t.Fatal(err)
	}
	if h3 == h1 {
		t.Error("different specifications give the same handle")
	}
}

func TestDeviceIsDirect(t *testing.T) {
	reg, _ := newRegistry(t, pdfgen.V1_7)
	h, err := Load(reg, "cmyk")
	if err != nil {
		t.Fatal(err)
	}
	obj, err := reg.Object(h)
	if err != nil {
		t.Fatal(err)
	}
	if obj != FamilyDeviceCMYK {
		t.Errorf("expected /DeviceCMYK, got %v", obj)
	}
	for _, c := range []struct {
		space       SpaceDevice
		fill, strke string
	}{
		{DeviceGray, "g", "G"},
		{DeviceRGB, "rg", "RG"},
		{DeviceCMYK, "k", "K"},
	} {
		if op := c.space.Operator(false); op != c.fill {
			t.Errorf("%s: fill operator %q, want %q", c.space.Family(), op, c.fill)
		}
		if op := c.space.Operator(true); op != c.strke {
			t.Errorf("%s: stroke operator %q, want %q", c.space.Family(), op, c.strke)
		}
	}
}

func TestEmbed(t *testing.T) {
	reg, buf := newRegistry(t, pdfgen.V1_7)
	for _, spec := range []string{
		"calgray; white=0.9505 1.089; gamma=2.2",
		"rgb; palette=255 0 0 0 0 255",
		"srgb; alternate=rgb",
	} {
		if _, err := Load(reg, spec); err != nil {
			t.Fatalf("%q: %v", spec, err)
		}
	}
	if err := reg.Embed(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"[/CalGray <<\n/Gamma 2.2\n/WhitePoint [.9505 1 1.089]\n>>]",
		"[/Indexed /DeviceRGB 1 <ff00000000ff>]",
		"/Alternate /DeviceRGB",
		"/N 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	reg, _ := newRegistry(t, pdfgen.V1_7)
	for _, spec := range []string{
		"",
		"hsv",
		"calgray",
		"calgray; white=1 1 1",
		"calgray; white=0.9505 1.089; gamma=-1",
		"calrgb; white=0.9505 1.089; matrix=1 0 0",
		"lab; white=0.9505 1.089; range=10 -10 0 1",
		"rgb; palette=255 0",
		"gray; palette=256",
		"lab; white=0.9505 1.089; palette=1 2 3",
		"rgb; gamma=2.2",
		"srgb; components=4",
		"srgb; alternate=cmyk",
	} {
		_, err := Load(reg, spec)
		if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
			t.Errorf("%q: expected ErrInvalidSpecification, got %v", spec, err)
		}
	}

	missing := filepath.Join(t.TempDir(), "missing.icc")
	_, err := Load(reg, "icc; profile="+missing)
	if !errors.Is(err, pdfgen.ErrResourceUnavailable) {
		t.Errorf("missing profile: %v", err)
	}
}

func TestVersion(t *testing.T) {
	reg, _ := newRegistry(t, pdfgen.V1_2)
	_, err := Load(reg, "srgb")
	var verErr *pdfgen.VersionError
	if !errors.As(err, &verErr) || verErr.Earliest != pdfgen.V1_3 {
		t.Errorf("expected version error, got %v", err)
	}
	if !errors.Is(err, pdfgen.ErrInvalidOperationOrder) {
		t.Error("version error has the wrong kind")
	}
}

func TestSRGBProfile(t *testing.T) {
	data := sRGBProfile()
	p, err := icc.Decode(slices.Clone(data))
	if err != nil {
		t.Fatal(err)
	}
	if p.ColorSpace != icc.RGBSpace || p.PCS != icc.PCSXYZSpace {
		t.Errorf("wrong color spaces %v -> %v", p.ColorSpace, p.PCS)
	}
	if p.Class != icc.DisplayDeviceProfile {
		t.Errorf("wrong profile class %v", p.Class)
	}
	for _, sig := range []string{"desc", "cprt", "wtpt", "rXYZ", "gXYZ", "bXYZ", "rTRC", "gTRC", "bTRC"} {
		if _, ok := p.TagData[iccTag(sig)]; !ok {
			t.Errorf("missing tag %q", sig)
		}
	}

	s := SRGB()
	if s.N != 3 || len(s.Ranges) != 6 {
		t.Errorf("wrong sRGB space: N=%d, ranges=%v", s.N, s.Ranges)
	}
}

func TestInvalidProfile(t *testing.T) {
	reg, _ := newRegistry(t, pdfgen.V1_7)
	path := filepath.Join(t.TempDir(), "bad.icc")
	if err := os.WriteFile(path, []byte("not an ICC profile"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(reg, "icc; profile="+path)
	if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
		t.Errorf("expected ErrInvalidSpecification, got %v", err)
	}
}
