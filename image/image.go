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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/color"
	"seehuhn.de/go/pdfgen/resource"
)

// Options give document-wide defaults for image loading.
type Options struct {
	DefaultDPI  float64
	Interpolate bool
}

// Image is an image XObject resource.
type Image struct {
	Width, Height int
	DPIX, DPIY    float64

	dict       pdfgen.Dict
	colorSpace resource.Handle // zero for device spaces
	mask       resource.Handle
	softMask   bool
	data       []byte
	compress   bool
	alpha      []byte // soft mask generated from an alpha channel
}

// Size returns the width and height of the image in PDF units (1/72 inch).
func (im *Image) Size() (float64, float64) {
	return float64(im.Width) * 72 / im.DPIX, float64(im.Height) * 72 / im.DPIY
}

// IsColor reports whether the image has color samples (as opposed to
// gray samples).  This is used for the obsolete procedure sets.
func (im *Image) IsColor() bool {
	return im.dict["ColorSpace"] != color.FamilyDeviceGray
}

// Embed implements the [resource.Resource] interface.
func (im *Image) Embed(e *resource.EmbedHelper) error {
	w := e.Out()

	dict := make(pdfgen.Dict, len(im.dict)+4)
	for k, v := range im.dict {
		dict[k] = v
	}
	dict["Type"] = pdfgen.Name("XObject")
	dict["Subtype"] = pdfgen.Name("Image")
	dict["Width"] = pdfgen.Integer(im.Width)
	dict["Height"] = pdfgen.Integer(im.Height)

	if !im.colorSpace.IsZero() {
		cs, err := e.Object(im.colorSpace)
		if err != nil {
			return err
		}
		dict["ColorSpace"] = cs
	}
	if !im.mask.IsZero() {
		m, err := e.Object(im.mask)
		if err != nil {
			return err
		}
		if im.softMask {
			dict["SMask"] = m
		} else {
			dict["Mask"] = m
		}
	}

	var alphaRef pdfgen.Reference
	if im.alpha != nil {
		alphaRef = e.Alloc()
		dict["SMask"] = alphaRef
	}

	err := w.PutStream(e.Ref(), dict, im.data, im.compress)
	if err != nil {
		return err
	}

	if im.alpha != nil {
		alphaDict := pdfgen.Dict{
			"Type":             pdfgen.Name("XObject"),
			"Subtype":          pdfgen.Name("Image"),
			"Width":            pdfgen.Integer(im.Width),
			"Height":           pdfgen.Integer(im.Height),
			"ColorSpace":       color.FamilyDeviceGray,
			"BitsPerComponent": pdfgen.Integer(8),
		}
		err = w.PutStream(alphaRef, alphaDict, im.alpha, true)
		if err != nil {
			return err
		}
	}
	return nil
}

// Load registers an image.  Loading the same image data with the same
// parameters twice returns the same handle.
func Load(reg *resource.Registry, def *Def, opt *Options) (resource.Handle, error) {
	const op = "load image"

	if opt == nil {
		opt = &Options{DefaultDPI: 72}
	}

	data := def.Data
	if data == nil {
		if def.File == "" {
			return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
				"no image data")
		}
		var err error
		data, err = os.ReadFile(def.File)
		if err != nil {
			return resource.Handle{}, pdfgen.Wrap(pdfgen.ErrResourceUnavailable, op, err)
		}
	}

	var deps []resource.Handle
	if !def.ColorSpace.IsZero() {
		deps = append(deps, def.ColorSpace)
	}
	if !def.Mask.IsZero() {
		deps = append(deps, def.Mask)
	}

	id := fingerprint(def, data, opt)
	return reg.Load(resource.KindImage, id, func() (resource.Resource, error) {
		im, err := build(reg, def, data, opt)
		var verErr *pdfgen.VersionError
		if errors.As(err, &verErr) {
			return nil, err
		} else if err != nil {
			return nil, pdfgen.Wrap(pdfgen.ErrInvalidSpecification, op, err)
		}
		return im, nil
	}, deps...)
}

func build(reg *resource.Registry, def *Def, data []byte, opt *Options) (*Image, error) {
	ver := reg.Out().Version

	var im *Image
	var err error
	switch def.Format {
	case FormatNative:
		im, err = nativeImage(reg, def, data)
	default:
		im, err = decodeImage(def.Format, data)
	}
	if err != nil {
		return nil, err
	}

	if def.DPIX > 0 {
		im.DPIX = def.DPIX
	}
	if def.DPIY > 0 {
		im.DPIY = def.DPIY
	}
	if im.DPIX <= 0 {
		im.DPIX = opt.DefaultDPI
	}
	if im.DPIY <= 0 {
		im.DPIY = opt.DefaultDPI
	}
	if !(im.DPIX > 0 && im.DPIY > 0) {
		return nil, fmt.Errorf("invalid resolution %g x %g dpi", im.DPIX, im.DPIY)
	}

	channels := channelsOf(reg, im)
	if def.Decode != nil {
		if len(def.Decode) != 2*channels {
			return nil, fmt.Errorf("decode array needs %d values, got %d", 2*channels, len(def.Decode))
		}
		im.dict["Decode"] = pdfgen.Reals(def.Decode...)
	}

	interpolate := opt.Interpolate
	if def.Interpolate != nil {
		interpolate = *def.Interpolate
	}
	if interpolate {
		im.dict["Interpolate"] = pdfgen.Bool(true)
	}

	if def.RenderingIntent != "" {
		switch def.RenderingIntent {
		case "AbsoluteColorimetric", "RelativeColorimetric", "Saturation", "Perceptual":
		default:
			return nil, fmt.Errorf("unknown rendering intent %q", def.RenderingIntent)
		}
		if err := pdfgen.CheckVersion(ver, "rendering intents", pdfgen.V1_1); err != nil {
			return nil, err
		}
		im.dict["Intent"] = def.RenderingIntent
	}

	if def.ColorKeyMask != nil && !def.Mask.IsZero() {
		return nil, fmt.Errorf("color key masking and explicit masks cannot be combined")
	}
	if def.ColorKeyMask != nil {
		if err := pdfgen.CheckVersion(ver, "color key masking", pdfgen.V1_3); err != nil {
			return nil, err
		}
		bpc := int(im.dict["BitsPerComponent"].(pdfgen.Integer))
		if len(def.ColorKeyMask) != 2*channels {
			return nil, fmt.Errorf("color key mask needs %d values, got %d",
				2*channels, len(def.ColorKeyMask))
		}
		maxVal := 1<<bpc - 1
		arr := make(pdfgen.Array, len(def.ColorKeyMask))
		for i, x := range def.ColorKeyMask {
			if x < 0 || x > maxVal {
				return nil, fmt.Errorf("color key mask value %d out of range", x)
			}
			arr[i] = pdfgen.Integer(x)
		}
		im.dict["Mask"] = arr
	}

	if !def.Mask.IsZero() {
		res, err := reg.Get(def.Mask, resource.KindImageMask)
		if err != nil {
			return nil, err
		}
		m := res.(*Mask)
		if m.IsSoft() {
			if err := pdfgen.CheckVersion(ver, "soft masks", pdfgen.V1_4); err != nil {
				return nil, err
			}
			im.softMask = true
		} else if err := pdfgen.CheckVersion(ver, "explicit masking", pdfgen.V1_3); err != nil {
			return nil, err
		}
		if im.alpha != nil {
			return nil, fmt.Errorf("image already has an alpha channel")
		}
		im.mask = def.Mask
	}

	if im.alpha != nil {
		if err := pdfgen.CheckVersion(ver, "images with transparency", pdfgen.V1_4); err != nil {
			return nil, err
		}
	}

	return im, nil
}

func nativeImage(reg *resource.Registry, def *Def, data []byte) (*Image, error) {
	if def.Width <= 0 || def.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", def.Width, def.Height)
	}
	if !validBPC(def.BitsPerComponent) {
		return nil, fmt.Errorf("invalid number of bits per component: %d", def.BitsPerComponent)
	}
	if def.BitsPerComponent == 16 {
		if err := pdfgen.CheckVersion(reg.Out().Version, "16-bit images", pdfgen.V1_5); err != nil {
			return nil, err
		}
	}
	if def.ColorSpace.IsZero() {
		return nil, fmt.Errorf("native images need a color space")
	}
	res, err := reg.Get(def.ColorSpace, resource.KindColorSpace)
	if err != nil {
		return nil, err
	}
	cs := res.(color.Space)
	if cs.Family() == color.FamilyPattern {
		return nil, fmt.Errorf("invalid image color space /Pattern")
	}
	if cs.Family() == color.FamilyIndexed && def.BitsPerComponent > 8 {
		return nil, fmt.Errorf("indexed images use at most 8 bits per sample")
	}

	want := def.Height * rowBytes(def.Width, cs.Channels(), def.BitsPerComponent)
	if len(data) != want {
		return nil, fmt.Errorf("expected %d bytes of image data, got %d", want, len(data))
	}

	im := &Image{
		Width:  def.Width,
		Height: def.Height,
		dict: pdfgen.Dict{
			"BitsPerComponent": pdfgen.Integer(def.BitsPerComponent),
		},
		colorSpace: def.ColorSpace,
		data:       data,
		compress:   true,
	}
	if d, isDevice := cs.(color.SpaceDevice); isDevice {
		im.dict["ColorSpace"] = d.Family()
		im.colorSpace = resource.Handle{}
	}
	return im, nil
}

func channelsOf(reg *resource.Registry, im *Image) int {
	if !im.colorSpace.IsZero() {
		res, err := reg.Get(im.colorSpace, resource.KindColorSpace)
		if err == nil {
			return res.(color.Space).Channels()
		}
	}
	switch im.dict["ColorSpace"] {
	case color.FamilyDeviceGray:
		return 1
	case color.FamilyDeviceCMYK:
		return 4
	default:
		return 3
	}
}

// fingerprint computes the identity of an image from its definition and
// data.
func fingerprint(def *Def, data []byte, opt *Options) string {
	h := sha256.New()
	num := func(x float64) {
		binary.Write(h, binary.BigEndian, math.Float64bits(x))
	}
	fmt.Fprintf(h, "%d %d %d %d %s %v;", def.Format, def.Width, def.Height,
		def.BitsPerComponent, def.ColorSpace, def.Mask)
	num(def.DPIX)
	num(def.DPIY)
	num(opt.DefaultDPI)
	for _, x := range def.Decode {
		num(x)
	}
	fmt.Fprintf(h, ";%v;%v;%v;%s;", def.ColorKeyMask, def.Interpolate != nil && *def.Interpolate,
		opt.Interpolate, def.RenderingIntent)
	if def.Interpolate == nil {
		io.WriteString(h, "default")
	}
	h.Write(data)
	return fmt.Sprintf("%x", h.Sum(nil))
}
