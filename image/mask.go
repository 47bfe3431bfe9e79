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
	"crypto/sha256"
	"fmt"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/color"
	"seehuhn.de/go/pdfgen/resource"
)

// Mask is an image mask, used to restrict painting of an image.
// One-bit masks are stencil masks, masks with more bits per sample are
// soft masks.
type Mask struct {
	Width, Height    int
	BitsPerComponent int
	Decode           []float64
	Interpolate      bool

	data []byte
}

// IsSoft reports whether the mask gives a continuous opacity value.
func (m *Mask) IsSoft() bool {
	return m.BitsPerComponent > 1
}

// Embed implements the [resource.Resource] interface.
func (m *Mask) Embed(e *resource.EmbedHelper) error {
	dict := pdfgen.Dict{
		"Type":    pdfgen.Name("XObject"),
		"Subtype": pdfgen.Name("Image"),
		"Width":   pdfgen.Integer(m.Width),
		"Height":  pdfgen.Integer(m.Height),
	}
	if m.IsSoft() {
		dict["ColorSpace"] = color.FamilyDeviceGray
		dict["BitsPerComponent"] = pdfgen.Integer(m.BitsPerComponent)
	} else {
		dict["ImageMask"] = pdfgen.Bool(true)
	}
	if m.Decode != nil {
		dict["Decode"] = pdfgen.Reals(m.Decode...)
	}
	if m.Interpolate {
		dict["Interpolate"] = pdfgen.Bool(true)
	}
	return e.Out().PutStream(e.Ref(), dict, m.data, true)
}

// LoadMask registers an image mask.  The returned handle can be used in
// the Mask field of a [Def].
func LoadMask(reg *resource.Registry, def *MaskDef) (resource.Handle, error) {
	const op = "load image mask"

	bpc := def.BitsPerComponent
	if bpc == 0 {
		bpc = 8
	}

	h := sha256.New()
	fmt.Fprintf(h, "%d %d %d %v %v;", def.Width, def.Height, bpc, def.Decode, def.Interpolate)
	h.Write(def.Data)
	id := fmt.Sprintf("%x", h.Sum(nil))

	return reg.Load(resource.KindImageMask, id, func() (resource.Resource, error) {
		if def.Width <= 0 || def.Height <= 0 {
			return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
				"invalid mask size %dx%d", def.Width, def.Height)
		}
		if !validBPC(bpc) {
			return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
				"invalid number of bits per component: %d", bpc)
		}
		if def.Decode != nil && len(def.Decode) != 2 {
			return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
				"decode array needs 2 values, got %d", len(def.Decode))
		}
		want := def.Height * rowBytes(def.Width, 1, bpc)
		if len(def.Data) != want {
			return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
				"expected %d bytes of mask data, got %d", want, len(def.Data))
		}
		ver := reg.Out().Version
		if bpc > 1 {
			if err := pdfgen.CheckVersion(ver, "soft masks", pdfgen.V1_4); err != nil {
				return nil, err
			}
		}
		if bpc == 16 {
			if err := pdfgen.CheckVersion(ver, "16-bit images", pdfgen.V1_5); err != nil {
				return nil, err
			}
		}
		return &Mask{
			Width:            def.Width,
			Height:           def.Height,
			BitsPerComponent: bpc,
			Decode:           def.Decode,
			Interpolate:      def.Interpolate,
			data:             def.Data,
		}, nil
	})
}
