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

package image

import (
	"bytes"
	"errors"
	goimage "image"
	gocolor "image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/color"
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

func encodePNG(t *testing.T, img goimage.Image) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNative(t *testing.T) {
	reg, buf := newRegistry(t, pdfgen.V1_7)
	rgb, err := color.Load(reg, "rgb")
	if err != nil {
		t.Fatal(err)
	}

	def := &Def{
		Format:           FormatNative,
		Data:             []byte{255, 0, 0, 0, 255, 0},
		Width:            2,
		Height:           1,
		BitsPerComponent: 8,
		ColorSpace:       rgb,
		DPIX:             144,
		DPIY:             144,
	}
	h1, err := Load(reg, def, nil)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := Load(reg, def, nil)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Error("identical images give different handles")
	}

	res, err := reg.Get(h1, resource.KindImage)
	if err != nil {
		t.Fatal(err)
	}
	im := res.(*Image)
	w, h := im.Size()
	if d := cmp.Diff([]float64{1, .5}, []float64{w, h}); d != "" {
		t.Error(d)
	}
	if !im.IsColor() {
		t.Error("RGB image not reported as color")
	}

	if err := reg.Embed(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"/Subtype /Image", "/ColorSpace /DeviceRGB", "/Width 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestNativeErrors(t *testing.T) {
	reg, _ := newRegistry(t, pdfgen.V1_7)
	gray, err := color.Load(reg, "gray")
	if err != nil {
		t.Fatal(err)
	}
	cases := []*Def{
		{Format: FormatNative, Data: []byte{1, 2}, Width: 2, Height: 2, BitsPerComponent: 8, ColorSpace: gray},
		{Format: FormatNative, Data: []byte{1}, Width: 1, Height: 1, BitsPerComponent: 3, ColorSpace: gray},
		{Format: FormatNative, Data: []byte{1}, Width: 1, Height: 1, BitsPerComponent: 8},
		{Format: FormatNative, Data: []byte{1}, Width: 1, Height: 1, BitsPerComponent: 8, ColorSpace: gray,
			Decode: []float64{0, 1, 0, 1}},
		{Format: FormatNative, Data: []byte{1}, Width: 1, Height: 1, BitsPerComponent: 8, ColorSpace: gray,
			ColorKeyMask: []int{0, 300}},
		{Format: FormatNative, Data: []byte{1}, Width: 1, Height: 1, BitsPerComponent: 8, ColorSpace: gray,
			RenderingIntent: "Vivid"},
		{Format: FormatPNG, Data: []byte("not a PNG file")},
		{},
	}
	for i, def := range cases {
		_, err := Load(reg, def, nil)
		if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
			t.Errorf("%d: expected ErrInvalidSpecification, got %v", i, err)
		}
	}

	_, err = Load(reg, &Def{File: filepath.Join(t.TempDir(), "missing.png")}, nil)
	if !errors.Is(err, pdfgen.ErrResourceUnavailable) {
		t.Errorf("expected ErrResourceUnavailable, got %v", err)
	}
}

func TestPNGAlpha(t *testing.T) {
	img := goimage.NewNRGBA(goimage.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.Set(1, 1, gocolor.NRGBA{R: 10, G: 20, B: 30, A: 128})
	data := encodePNG(t, img)

	reg, buf := newRegistry(t, pdfgen.V1_4)
	h, err := Load(reg, &Def{Data: data}, &Options{DefaultDPI: 72})
	if err != nil {
		t.Fatal(err)
	}
	res, err := reg.Get(h, resource.KindImage)
	if err != nil {
		t.Fatal(err)
	}
	im := res.(*Image)
	if im.Width != 3 || im.Height != 2 {
		t.Errorf("wrong size %dx%d", im.Width, im.Height)
	}
	if len(im.data) != 18 || len(im.alpha) != 6 || im.alpha[4] != 128 {
		t.Error("wrong samples")
	}
	if err := reg.Embed(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "/SMask 2 0 R") {
		t.Error("soft mask not referenced")
	}

	reg, _ = newRegistry(t, pdfgen.V1_3)
	_, err = Load(reg, &Def{Data: data}, nil)
	var verErr *pdfgen.VersionError
	if !errors.As(err, &verErr) {
		t.Errorf("expected a version error, got %v", err)
	}
}

func TestPNGFile(t *testing.T) {
	img := goimage.NewGray(goimage.Rect(0, 0, 4, 4))
	fname := filepath.Join(t.TempDir(), "gray.png")
	if err := os.WriteFile(fname, encodePNG(t, img), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, _ := newRegistry(t, pdfgen.V1_7)
	h, err := Load(reg, &Def{File: fname, Format: FormatPNG}, &Options{DefaultDPI: 300})
	if err != nil {
		t.Fatal(err)
	}
	res, err := reg.Get(h, resource.KindImage)
	if err != nil {
		t.Fatal(err)
	}
	im := res.(*Image)
	if im.IsColor() {
		t.Error("gray image reported as color")
	}
	if im.DPIX != 300 || im.DPIY != 300 {
		t.Errorf("wrong resolution %g x %g", im.DPIX, im.DPIY)
	}

	_, err = Load(reg, &Def{File: fname, Format: FormatJPEG}, nil)
	if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
		t.Errorf("format mismatch: expected ErrInvalidSpecification, got %v", err)
	}
}

func TestJPEGPassThrough(t *testing.T) {
	img := goimage.NewRGBA(goimage.Rect(0, 0, 8, 8))
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, nil); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	reg, out := newRegistry(t, pdfgen.V1_7)
	h, err := Load(reg, &Def{Data: data}, nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := reg.Get(h, resource.KindImage)
	if err != nil {
		t.Fatal(err)
	}
	im := res.(*Image)
	if !bytes.Equal(im.data, data) {
		t.Error("JPEG data was re-encoded")
	}
	if err := reg.Embed(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "/Filter /DCTDecode") {
		t.Error("missing DCTDecode filter")
	}
}

func TestJFIFDensity(t *testing.T) {
	header := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 16, 'J', 'F', 'I', 'F', 0, 1, 1, 2, 0, 100, 0, 50}
	x, y := jfifDensity(header)
	if d := cmp.Diff([]float64{254, 127}, []float64{x, y}); d != "" {
		t.Error(d)
	}
	header[13] = 0
	if x, y := jfifDensity(header); x != 0 || y != 0 {
		t.Error("aspect ratio only header gives a resolution")
	}
}

func TestMask(t *testing.T) {
	reg, buf := newRegistry(t, pdfgen.V1_7)
	gray, err := color.Load(reg, "gray")
	if err != nil {
		t.Fatal(err)
	}

	stencil, err := LoadMask(reg, &MaskDef{Width: 8, Height: 2, BitsPerComponent: 1, Data: []byte{0xF0, 0x0F}})
	if err != nil {
		t.Fatal(err)
	}
	soft, err := LoadMask(reg, &MaskDef{Width: 2, Height: 1, Data: []byte{0, 255}})
	if err != nil {
		t.Fatal(err)
	}

	for _, mask := range []resource.Handle{stencil, soft} {
		_, err := Load(reg, &Def{
			Format:           FormatNative,
			Data:             []byte{1, 2},
			Width:            2,
			Height:           1,
			BitsPerComponent: 8,
			ColorSpace:       gray,
			Mask:             mask,
		}, nil)
		if err != nil {
			t.Fatal(err)
		}
	}
	_, err = LoadMask(reg, &MaskDef{Width: 2, Height: 2, BitsPerComponent: 1, Data: []byte{0}})
	if !errors.Is(err, pdfgen.ErrInvalidSpecification) {
		t.Errorf("expected ErrInvalidSpecification, got %v", err)
	}

	if err := reg.Embed(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"/ImageMask true", "/Mask 1 0 R", "/SMask 2 0 R"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}

	reg, _ = newRegistry(t, pdfgen.V1_3)
	_, err = LoadMask(reg, &MaskDef{Width: 1, Height: 1, Data: []byte{1}})
	var verErr *pdfgen.VersionError
	if !errors.As(err, &verErr) {
		t.Errorf("expected a version error, got %v", err)
	}
}
