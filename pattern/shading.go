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
	"errors"
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/color"
	"seehuhn.de/go/pdfgen/function"
	"seehuhn.de/go/pdfgen/resource"
)

// Shading types.
const (
	FunctionBased = 1
	Axial         = 2
	Radial        = 3
)

// Shading represents a function-based, axial or radial shading.
type Shading struct {
	ShadingType int

	ColorSpace       color.Space
	ColorSpaceHandle resource.Handle

	// Functions is either a single function with as many outputs as the
	// color space has components, or one single-output function per
	// color component.
	Functions       []function.Function
	FunctionHandles []resource.Handle

	// Coords gives x0 y0 x1 y1 for axial shadings and x0 y0 r0 x1 y1 r1
	// for radial shadings.  Coords is unused for function-based shadings.
	Coords []float64

	// Domain gives t0 t1 for axial and radial shadings, and
	// xmin xmax ymin ymax for function-based shadings.
	Domain []float64

	// FunctionMatrix maps the domain of a function-based shading into the
	// shading space.
	FunctionMatrix matrix.Matrix

	ExtendStart, ExtendEnd bool
	Background             []float64
	BBox                   *rect.Rect
}

func (s *Shading) validate() error {
	if s.ColorSpace == nil {
		return errors.New("missing color space")
	} else if s.ColorSpace.Family() == color.FamilyPattern {
		return errors.New("invalid color space /Pattern")
	}
	n := s.ColorSpace.Channels()
	if have := len(s.Background); have > 0 && have != n {
		return fmt.Errorf("wrong number of background values: expected %d, got %d", n, have)
	}

	nIn := 1
	switch s.ShadingType {
	case FunctionBased:
		nIn = 2
		if len(s.Domain) != 4 {
			return errors.New("function-based shadings need a domain xmin xmax ymin ymax")
		}
	case Axial:
		if len(s.Coords) != 4 {
			return fmt.Errorf("axial shadings need 4 coordinates, got %d", len(s.Coords))
		}
	case Radial:
		if len(s.Coords) != 6 {
			return fmt.Errorf("radial shadings need 6 coordinates, got %d", len(s.Coords))
		}
		if s.Coords[2] < 0 || s.Coords[5] < 0 {
			return errors.New("negative radius")
		}
	default:
		return fmt.Errorf("unsupported shading type %d", s.ShadingType)
	}
	if s.ShadingType != FunctionBased && len(s.Domain) != 2 {
		return errors.New("domain must be t0 t1")
	}

	if len(s.Functions) != len(s.FunctionHandles) {
		return errors.New("function handles do not match functions")
	}
	switch len(s.Functions) {
	case 0:
		return errors.New("missing function")
	case 1:
		m, k := s.Functions[0].Shape()
		if m != nIn || k != n {
			return fmt.Errorf("function must map %d inputs to %d outputs, not %d to %d",
				nIn, n, m, k)
		}
	default:
		if len(s.Functions) != n {
			return fmt.Errorf("need 1 or %d functions, got %d", n, len(s.Functions))
		}
		for i, fn := range s.Functions {
			if m, k := fn.Shape(); m != nIn || k != 1 {
				return fmt.Errorf("function %d must map %d inputs to 1 output", i, nIn)
			}
		}
	}
	return nil
}

// Embed implements the [resource.Resource] interface.
func (s *Shading) Embed(e *resource.EmbedHelper) error {
	cs, err := e.Object(s.ColorSpaceHandle)
	if err != nil {
		return err
	}
	var fn pdfgen.Object
	if len(s.FunctionHandles) == 1 {
		fn, err = e.Object(s.FunctionHandles[0])
		if err != nil {
			return err
		}
	} else {
		fns := make(pdfgen.Array, len(s.FunctionHandles))
		for i, h := range s.FunctionHandles {
			fns[i], err = e.Object(h)
			if err != nil {
				return err
			}
		}
		fn = fns
	}

	dict := pdfgen.Dict{
		"ShadingType": pdfgen.Integer(s.ShadingType),
		"ColorSpace":  cs,
		"Function":    fn,
	}
	if s.ShadingType == FunctionBased {
		if !(s.Domain[0] == 0 && s.Domain[1] == 1 && s.Domain[2] == 0 && s.Domain[3] == 1) {
			dict["Domain"] = pdfgen.Reals(s.Domain...)
		}
		if s.FunctionMatrix != matrix.Identity {
			dict["Matrix"] = matrixToPDF(s.FunctionMatrix)
		}
	} else {
		dict["Coords"] = pdfgen.Reals(s.Coords...)
		if s.Domain[0] != 0 || s.Domain[1] != 1 {
			dict["Domain"] = pdfgen.Reals(s.Domain...)
		}
		if s.ExtendStart || s.ExtendEnd {
			dict["Extend"] = pdfgen.Array{pdfgen.Bool(s.ExtendStart), pdfgen.Bool(s.ExtendEnd)}
		}
	}
	if len(s.Background) > 0 {
		dict["Background"] = pdfgen.Reals(s.Background...)
	}
	if s.BBox != nil {
		dict["BBox"] = rectToPDF(s.BBox)
	}

	return e.Out().Put(e.Ref(), dict)
}

// ShadingPattern represents a shading pattern (pattern type 2).
type ShadingPattern struct {
	Shading       *Shading
	ShadingHandle resource.Handle
	Matrix        matrix.Matrix
}

// PatternType implements the [Pattern] interface.
func (p *ShadingPattern) PatternType() int {
	return 2
}

// PaintType implements the [Pattern] interface.
// Shading patterns are always colored.
func (p *ShadingPattern) PaintType() int {
	return Colored
}

// Embed implements the [resource.Resource] interface.
func (p *ShadingPattern) Embed(e *resource.EmbedHelper) error {
	sh, err := e.Object(p.ShadingHandle)
	if err != nil {
		return err
	}
	dict := pdfgen.Dict{
		"Type":        pdfgen.Name("Pattern"),
		"PatternType": pdfgen.Integer(2),
		"Shading":     sh,
	}
	if p.Matrix != matrix.Identity {
		dict["Matrix"] = matrixToPDF(p.Matrix)
	}
	return e.Out().Put(e.Ref(), dict)
}
