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

// Package image implements image XObjects and image masks.
//
// Images are described by a [Def], which is filled in by the caller and
// then registered with [Load].  The pixel data can either be given directly
// (in the native PDF layout), or as an encoded file in one of the formats
// PNG, JPEG, TIFF or BMP.  JPEG files are embedded without re-encoding.
package image

import (
	"fmt"
	"strings"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// Format identifies the encoding of image data.
type Format int

// The supported image formats.
const (
	FormatAuto Format = iota
	FormatNative
	FormatPNG
	FormatJPEG
	FormatTIFF
	FormatBMP
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatNative:
		return "native"
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatTIFF:
		return "tiff"
	case FormatBMP:
		return "bmp"
	default:
		return fmt.Sprintf("image.Format(%d)", int(f))
	}
}

// ParseFormat converts a format name, as used in file names and on the
// command line, to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return FormatAuto, nil
	case "native", "raw":
		return FormatNative, nil
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	case "bmp":
		return FormatBMP, nil
	}
	return 0, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, "", "unknown image format %q", name)
}

// Def describes an image before it is registered.
type Def struct {
	// Format is the encoding of Data (or of the file).  FormatAuto detects
	// PNG, JPEG, TIFF and BMP data.  Native data must be marked explicitly.
	Format Format

	// Data holds the image data.  If Data is nil, the data is read from
	// File.
	Data []byte
	File string

	// Width, Height, BitsPerComponent and ColorSpace describe native image
	// data.  Rows start on byte boundaries.  For encoded images, these
	// fields are ignored.
	Width            int
	Height           int
	BitsPerComponent int
	ColorSpace       resource.Handle

	// DPIX and DPIY give the resolution used to compute the size of the
	// image on the page.  If zero, the resolution stored in the image file
	// is used, or the default resolution of the document.
	DPIX, DPIY float64

	// Decode (optional) maps sample values to color components, as pairs
	// [min0 max0 min1 max1 ...].
	Decode []float64

	// Interpolate requests smoothing of the image when it is scaled up.
	// If unset, the document default is used.
	Interpolate *bool

	// ColorKeyMask (optional) gives ranges [min0 max0 ...] of sample
	// values which are treated as transparent.
	ColorKeyMask []int

	// Mask (optional) is an image mask registered with [LoadMask].
	// A 1-bit mask is used as a stencil mask, deeper masks are used as soft
	// masks.
	Mask resource.Handle

	// RenderingIntent (optional) is one of AbsoluteColorimetric,
	// RelativeColorimetric, Saturation or Perceptual.
	RenderingIntent pdfgen.Name
}

// MaskDef describes an image mask before it is registered.
type MaskDef struct {
	Width  int
	Height int

	// BitsPerComponent is 1 for stencil masks, and 2, 4, 8 or 16 for soft
	// masks.  The default is 8.
	BitsPerComponent int

	// Data holds the native mask data.  Rows start on byte boundaries.
	Data []byte

	// Decode (optional) gives the mapping [min max] of sample values.
	Decode []float64

	Interpolate bool
}

func validBPC(bpc int) bool {
	switch bpc {
	case 1, 2, 4, 8, 16:
		return true
	}
	return false
}

// rowBytes returns the number of bytes needed to store one row of samples.
func rowBytes(width, channels, bpc int) int {
	return (width*channels*bpc + 7) / 8
}
