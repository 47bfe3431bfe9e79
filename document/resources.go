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

package document

import (
	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/color"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/function"
	"seehuhn.de/go/pdfgen/graphics"
	"seehuhn.de/go/pdfgen/image"
	"seehuhn.de/go/pdfgen/pattern"
	"seehuhn.de/go/pdfgen/resource"
)

// This file contains the typed front ends of the resource registry.
// Loading the same specification twice returns the same handle.

// ColorSpaceLoad loads a color space.  See [color.Load] for the
// specification syntax.
func (d *Document) ColorSpaceLoad(spec string) (resource.Handle, error) {
	if err := d.check("ColorSpaceLoad"); err != nil {
		return resource.Handle{}, err
	}
	return color.Load(d.reg, spec)
}

// FontLoad loads a font.  See [font.Load] for the specification syntax.
func (d *Document) FontLoad(spec string) (resource.Handle, error) {
	if err := d.check("FontLoad"); err != nil {
		return resource.Handle{}, err
	}
	return font.Load(d.reg, spec)
}

// Function2Load loads an exponential interpolation function.
func (d *Document) Function2Load(spec string) (resource.Handle, error) {
	if err := d.check("Function2Load"); err != nil {
		return resource.Handle{}, err
	}
	return function.Load2(d.reg, spec)
}

// Function3Load loads a stitching function, which combines the given
// functions.
func (d *Document) Function3Load(spec string, funcs ...resource.Handle) (resource.Handle, error) {
	if err := d.check("Function3Load"); err != nil {
		return resource.Handle{}, err
	}
	return function.Load3(d.reg, spec, funcs...)
}

// Function4Load loads a PostScript calculator function.
func (d *Document) Function4Load(spec string) (resource.Handle, error) {
	if err := d.check("Function4Load"); err != nil {
		return resource.Handle{}, err
	}
	return function.Load4(d.reg, spec)
}

// ShadingPatternLoad loads a shading pattern in the color space cs.
func (d *Document) ShadingPatternLoad(spec string, cs resource.Handle, funcs ...resource.Handle) (resource.Handle, error) {
	if err := d.check("ShadingPatternLoad"); err != nil {
		return resource.Handle{}, err
	}
	return pattern.LoadShading(d.reg, spec, cs, funcs...)
}

// TilingPatternLoad loads a tiling pattern.  The pattern cell is drawn
// on c, which must have been obtained from [Document.CanvasCreate].
// The canvas is closed by this call.
func (d *Document) TilingPatternLoad(spec string, c *graphics.Canvas) (resource.Handle, error) {
	const op = "TilingPatternLoad"
	if err := d.check(op); err != nil {
		return resource.Handle{}, err
	}
	if c == nil {
		return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidArgument, op, "missing canvas")
	}
	for _, p := range d.pages {
		if p.canvas == c {
			return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
				"the canvas of page %d cannot be used as a pattern cell", p.number)
		}
	}
	if !c.IsClosed() {
		if err := c.Close(); err != nil {
			return resource.Handle{}, err
		}
	}
	return pattern.LoadTiling(d.reg, spec, c.Content(), c.Resources().AsDict(d.ver))
}

// CanvasCreate returns a new canvas which is not attached to a page.
// This is used to draw the cells of tiling patterns.
func (d *Document) CanvasCreate() (*graphics.Canvas, error) {
	if err := d.check("CanvasCreate"); err != nil {
		return nil, err
	}
	return graphics.NewCanvas(d.reg, d.ver), nil
}

// ImageDefinition returns an empty image definition, to be filled in by
// the caller and passed to [Document.ImageLoad].
func (d *Document) ImageDefinition() *image.Def {
	return &image.Def{}
}

// ImageLoad loads an image.
func (d *Document) ImageLoad(def *image.Def) (resource.Handle, error) {
	const op = "ImageLoad"
	if err := d.check(op); err != nil {
		return resource.Handle{}, err
	}
	if def == nil {
		return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidArgument, op, "missing image definition")
	}
	return image.Load(d.reg, def, d.imageOpt)
}

// ImageLoadFile loads an image from a file.  If format is
// [image.FormatAuto], the format is detected from the file contents.
func (d *Document) ImageLoadFile(path string, format image.Format) (resource.Handle, error) {
	return d.ImageLoad(&image.Def{File: path, Format: format})
}

// DefineImageMask returns an empty image mask definition, to be filled
// in by the caller and passed to [Document.RegisterImageMask].
func (d *Document) DefineImageMask() *image.MaskDef {
	return &image.MaskDef{}
}

// RegisterImageMask loads an image mask.  The returned handle can be
// used in the Mask field of an image definition.
func (d *Document) RegisterImageMask(def *image.MaskDef) (resource.Handle, error) {
	const op = "RegisterImageMask"
	if err := d.check(op); err != nil {
		return resource.Handle{}, err
	}
	if def == nil {
		return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidArgument, op, "missing mask definition")
	}
	return image.LoadMask(d.reg, def)
}
