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

package graphics

import (
	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/image"
	"seehuhn.de/go/pdfgen/resource"
)

// Image draws an image with its lower left corner at (x, y).  The size of
// the image is determined by its resolution.
//
// This uses the PDF graphics operator "Do", inside a "q"/"Q" pair.
func (c *Canvas) Image(img resource.Handle, x, y float64) error {
	return c.ScaledImage(img, x, y, 1, 1)
}

// ScaledImage draws an image with its lower left corner at (x, y), scaled
// by sx horizontally and sy vertically.
//
// This uses the PDF graphics operator "Do", inside a "q"/"Q" pair.
func (c *Canvas) ScaledImage(img resource.Handle, x, y, sx, sy float64) error {
	const op = "Image"
	if err := c.check(op, objPage); err != nil {
		return err
	}
	if err := checkFinite(op, x, y, sx, sy); err != nil {
		return err
	}
	res, err := c.reg.Get(img, resource.KindImage)
	if err != nil {
		return err
	}
	im, ok := res.(*image.Image)
	if !ok {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"%s is not an image", img)
	}
	name, err := c.name(resource.CatXObject, img)
	if err != nil {
		return err
	}

	if im.IsColor() {
		c.res.ProcSet.ImageC = true
	} else {
		c.res.ProcSet.ImageB = true
	}

	w, h := im.Size()
	c.emit("q")
	c.emit(num(w*sx), 0, 0, num(h*sy), num(x), num(y), "cm")
	c.emit(name, "Do")
	c.emit("Q")
	return nil
}
