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
	"encoding/binary"
	"fmt"
	"image"
	gocolor "image/color"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/color"
)

var formatNames = map[string]Format{
	"png":  FormatPNG,
	"jpeg": FormatJPEG,
	"tiff": FormatTIFF,
	"bmp":  FormatBMP,
}

// decodeImage converts encoded image data into an image XObject.
// JPEG data is kept as it is, all other formats are decoded and stored
// as 8-bit samples.
func decodeImage(format Format, data []byte) (*Image, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	detected, ok := formatNames[name]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q", name)
	}
	if format != FormatAuto && format != detected {
		return nil, fmt.Errorf("expected %s data, found %s", format, detected)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", cfg.Width, cfg.Height)
	}

	if detected == FormatJPEG {
		return jpegImage(cfg, data)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return pixelImage(src), nil
}

func jpegImage(cfg image.Config, data []byte) (*Image, error) {
	dict := pdfgen.Dict{
		"BitsPerComponent": pdfgen.Integer(8),
		"Filter":           pdfgen.Name("DCTDecode"),
	}
	switch cfg.ColorModel {
	case gocolor.GrayModel:
		dict["ColorSpace"] = color.FamilyDeviceGray
	case gocolor.YCbCrModel:
		dict["ColorSpace"] = color.FamilyDeviceRGB
	case gocolor.CMYKModel:
		// Adobe applications write inverted CMYK data.
		dict["ColorSpace"] = color.FamilyDeviceCMYK
		dict["Decode"] = pdfgen.Reals(1, 0, 1, 0, 1, 0, 1, 0)
	default:
		return nil, fmt.Errorf("unsupported JPEG color model")
	}

	im := &Image{
		Width:    cfg.Width,
		Height:   cfg.Height,
		dict:     dict,
		data:     data,
		compress: false,
	}
	im.DPIX, im.DPIY = jfifDensity(data)
	return im, nil
}

// pixelImage stores the samples of a decoded image.  Any alpha channel is
// separated into a soft mask.
func pixelImage(src image.Image) *Image {
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()

	im := &Image{
		Width:  width,
		Height: height,
		dict: pdfgen.Dict{
			"BitsPerComponent": pdfgen.Integer(8),
		},
		compress: true,
	}

	switch src.ColorModel() {
	case gocolor.GrayModel, gocolor.Gray16Model:
		im.dict["ColorSpace"] = color.FamilyDeviceGray
		data := make([]byte, 0, width*height)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				g := gocolor.GrayModel.Convert(src.At(x, y)).(gocolor.Gray)
				data = append(data, g.Y)
			}
		}
		im.data = data
		return im

	case gocolor.CMYKModel:
		im.dict["ColorSpace"] = color.FamilyDeviceCMYK
		data := make([]byte, 0, 4*width*height)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := gocolor.CMYKModel.Convert(src.At(x, y)).(gocolor.CMYK)
				data = append(data, c.C, c.M, c.Y, c.K)
			}
		}
		im.data = data
		return im
	}

	im.dict["ColorSpace"] = color.FamilyDeviceRGB
	data := make([]byte, 0, 3*width*height)
	var alpha []byte
	if !isOpaque(src) {
		alpha = make([]byte, 0, width*height)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := gocolor.NRGBAModel.Convert(src.At(x, y)).(gocolor.NRGBA)
			data = append(data, c.R, c.G, c.B)
			if alpha != nil {
				alpha = append(alpha, c.A)
			}
		}
	}
	im.data = data
	im.alpha = alpha
	return im
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// jfifDensity extracts the resolution from the JFIF header of a JPEG file.
// If no resolution is given, zero is returned.
func jfifDensity(data []byte) (float64, float64) {
	// SOI, then an APP0 segment: FF E0, length, "JFIF\0", version (2 bytes),
	// units, x density, y density
	if len(data) < 18 || data[0] != 0xFF || data[1] != 0xD8 ||
		data[2] != 0xFF || data[3] != 0xE0 || string(data[6:11]) != "JFIF\x00" {
		return 0, 0
	}
	units := data[13]
	xDensity := float64(binary.BigEndian.Uint16(data[14:16]))
	yDensity := float64(binary.BigEndian.Uint16(data[16:18]))
	switch units {
	case 1: // dots per inch
		return xDensity, yDensity
	case 2: // dots per cm
		return xDensity * 2.54, yDensity * 2.54
	}
	return 0, 0
}
