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

package main

import (
	"math"

	"seehuhn.de/go/pdfgen/document"
	"seehuhn.de/go/pdfgen/graphics"
)

// writeSample draws a two-page document which uses text, paths,
// patterns, links and an outline.
func writeSample(doc *document.Document) error {
	title, err := doc.FontLoad("go; face=bold; size=24")
	if err != nil {
		return err
	}
	body, err := doc.FontLoad("standard; name=Helvetica; size=12")
	if err != nil {
		return err
	}

	rgb, err := doc.ColorSpaceLoad("rgb")
	if err != nil {
		return err
	}
	fn, err := doc.Function2Load("domain=0 1; c0=0.1 0.3 0.8; c1=0.9 0.9 1; n=1")
	if err != nil {
		return err
	}
	shading, err := doc.ShadingPatternLoad("axial; coords=72 0 523 0; extend=1 1", rgb, fn)
	if err != nil {
		return err
	}

	cell, err := doc.CanvasCreate()
	if err != nil {
		return err
	}
	err = drawCell(cell)
	if err != nil {
		return err
	}
	tiles, err := doc.TilingPatternLoad("step=12 12; bbox=0 0 12 12", cell)
	if err != nil {
		return err
	}

	details, err := doc.DestinationReserve()
	if err != nil {
		return err
	}

	w, h := document.A4.URx, document.A4.URy
	outline := doc.Outline()

	// page 1
	page, err := doc.PageStart(w, h)
	if err != nil {
		return err
	}
	c := page.Canvas()
	err = c.TextFont(title)
	if err == nil {
		err = c.TextAt(72, h-100, "pdfgen sample")
	}
	if err == nil {
		err = c.TextFont(body)
	}
	if err == nil {
		err = c.TextAt(72, h-130, "The box below links to the second page.")
	}
	if err == nil {
		err = c.ColorSpacePattern("f")
	}
	if err == nil {
		err = c.Pattern("f", shading)
	}
	if err == nil {
		err = c.Rectangle(72, h-300, w-144, 120)
	}
	if err == nil {
		err = c.PathPaint("f")
	}
	if err != nil {
		return err
	}
	err = page.AnnotationGotoID(72, h-300, w-144, 120, details, "border=1; color=0 0 1")
	if err != nil {
		return err
	}
	err = page.AnnotationURI(72, h-160, 200, 20, "https://seehuhn.de/", "highlight=outline")
	if err != nil {
		return err
	}
	err = outline.Item("Introduction")
	if err != nil {
		return err
	}
	err = doc.PageEnd()
	if err != nil {
		return err
	}

	// page 2
	page, err = doc.PageStart(w, h)
	if err != nil {
		return err
	}
	err = doc.DestinationDefineReserved(details, "mode=FitH; top=800")
	if err != nil {
		return err
	}
	c = page.Canvas()
	err = c.ColorSpacePattern("f")
	if err == nil {
		err = c.Pattern("f", tiles)
	}
	if err == nil {
		err = c.Circle(w/2, h/2, 150)
	}
	if err == nil {
		err = c.PathPaint("f")
	}
	if err == nil {
		err = c.LineWidth(3)
	}
	if err == nil {
		err = c.Color("s", 0.8, 0, 0)
	}
	if err == nil {
		err = c.Arc(w/2, h/2, 170, 170, 0, 1.5*math.Pi)
	}
	if err == nil {
		err = c.PathPaint("S")
	}
	if err != nil {
		return err
	}
	err = outline.LevelDown()
	if err == nil {
		err = outline.ItemID("Details", details)
	}
	if err == nil {
		err = outline.LevelUp()
	}
	if err != nil {
		return err
	}
	return doc.PageEnd()
}

func drawCell(c *graphics.Canvas) error {
	err := c.Color("f", 0.95, 0.6, 0.1)
	if err == nil {
		err = c.Rectangle(0, 0, 6, 6)
	}
	if err == nil {
		err = c.Rectangle(6, 6, 6, 6)
	}
	if err == nil {
		err = c.PathPaint("f")
	}
	return err
}
