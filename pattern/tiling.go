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

package pattern

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// TilingProperties describes the properties of a tiling pattern.
type TilingProperties struct {
	// PaintType is 1 for colored and 2 for uncolored patterns.
	PaintType int

	// TilingType is a code that controls adjustments to the spacing of tiles
	// relative to the device pixel grid.
	TilingType int

	// The pattern cell's bounding box.
	// The pattern cell is clipped to this rectangle before it is painted.
	BBox rect.Rect

	// XStep is the horizontal spacing between pattern cells.
	XStep float64

	// YStep is the vertical spacing between pattern cells.
	YStep float64

	// Matrix maps pattern space to the default coordinate space of the
	// pattern's parent content stream.
	Matrix matrix.Matrix
}

func (p *TilingProperties) validate() error {
	if p.PaintType != Colored && p.PaintType != Uncolored {
		return fmt.Errorf("invalid paint type: %d", p.PaintType)
	}
	if p.TilingType < 1 || p.TilingType > 3 {
		return fmt.Errorf("invalid tiling type: %d", p.TilingType)
	}
	if p.XStep == 0 || p.YStep == 0 {
		return fmt.Errorf("invalid step size: (%g, %g)", p.XStep, p.YStep)
	}
	if p.BBox.URx <= p.BBox.LLx || p.BBox.URy <= p.BBox.LLy {
		return fmt.Errorf("empty bounding box")
	}
	return nil
}

// Tiling is a tiling pattern (pattern type 1).  The pattern cell is given by
// a content stream and its resource dictionary.
type Tiling struct {
	TilingProperties

	Content   []byte
	Resources pdfgen.Dict
}

// PatternType implements the [Pattern] interface.
func (p *Tiling) PatternType() int {
	return 1
}

// PaintType implements the [Pattern] interface.
func (p *Tiling) PaintType() int {
	return p.TilingProperties.PaintType
}

// Embed implements the [resource.Resource] interface.
func (p *Tiling) Embed(e *resource.EmbedHelper) error {
	dict := pdfgen.Dict{
		"Type":        pdfgen.Name("Pattern"),
		"PatternType": pdfgen.Integer(1),
		"PaintType":   pdfgen.Integer(p.TilingProperties.PaintType),
		"TilingType":  pdfgen.Integer(p.TilingType),
		"BBox":        rectToPDF(&p.BBox),
		"XStep":       pdfgen.Real(p.XStep),
		"YStep":       pdfgen.Real(p.YStep),
		"Resources":   p.Resources,
	}
	if p.Matrix != matrix.Identity {
		dict["Matrix"] = matrixToPDF(p.Matrix)
	}
	return e.Out().PutStream(e.Ref(), dict, p.Content, true)
}
