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
	"fmt"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/internal/float"
	"seehuhn.de/go/pdfgen/resource"
)

// ExtGState is a graphics state parameter dictionary, setting the
// transparency parameters of the graphics state.
//
// See section 8.4.5 of ISO 32000-2:2020.
type ExtGState struct {
	StrokeAlpha  float64
	FillAlpha    float64
	AlphaIsShape bool
}

func (gs *ExtGState) id() string {
	return fmt.Sprintf("CA=%s;ca=%s;AIS=%t",
		float.Format(gs.StrokeAlpha, float.Precision),
		float.Format(gs.FillAlpha, float.Precision),
		gs.AlphaIsShape)
}

// Embed implements the [resource.Resource] interface.
func (gs *ExtGState) Embed(e *resource.EmbedHelper) error {
	dict := pdfgen.Dict{
		"Type": pdfgen.Name("ExtGState"),
		"CA":   pdfgen.Real(gs.StrokeAlpha),
		"ca":   pdfgen.Real(gs.FillAlpha),
		"AIS":  pdfgen.Bool(gs.AlphaIsShape),
	}
	return e.Out().Put(e.Ref(), dict)
}
