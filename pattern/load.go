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
	"strings"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/color"
	"seehuhn.de/go/pdfgen/function"
	"seehuhn.de/go/pdfgen/internal/keyval"
	"seehuhn.de/go/pdfgen/resource"
)

// LoadShading registers a shading pattern.  The returned handle refers to
// the pattern; the underlying shading is available through
// [ShadingPattern.ShadingHandle].
//
// The recognised specifications are:
//
//	axial; coords=x0 y0 x1 y1 [; domain=t0 t1] [; extend=0|1 0|1]
//	radial; coords=x0 y0 r0 x1 y1 r1 [; domain=t0 t1] [; extend=0|1 0|1]
//	function; [domain=xmin xmax ymin ymax] [; matrix_fun=a b c d e f]
//
// All kinds accept the optional keys matrix (the pattern matrix), bbox and
// background.
func LoadShading(reg *resource.Registry, spec string, cs resource.Handle, fns ...resource.Handle) (resource.Handle, error) {
	const op = "load shading pattern"

	if err := pdfgen.CheckVersion(reg.Out().Version, "shading patterns", pdfgen.V1_3); err != nil {
		return resource.Handle{}, err
	}

	s, err := keyval.Parse(spec)
	if err != nil {
		return resource.Handle{}, err
	}

	sh := &Shading{
		ColorSpaceHandle: cs,
		FunctionHandles:  fns,
	}
	switch s.Kind {
	case "axial":
		sh.ShadingType = Axial
		s.Require("coords")
		sh.Coords = s.Floats("coords", 4)
	case "radial":
		sh.ShadingType = Radial
		s.Require("coords")
		sh.Coords = s.Floats("coords", 6)
	case "function":
		sh.ShadingType = FunctionBased
		sh.FunctionMatrix = toMatrix(s.Floats("matrix_fun", 6))
	default:
		return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
			"%q: unknown shading kind %q", spec, s.Kind)
	}
	if sh.ShadingType == FunctionBased {
		sh.Domain = s.Floats("domain", 4)
		if sh.Domain == nil {
			sh.Domain = []float64{0, 1, 0, 1}
		}
	} else {
		sh.Domain = s.Floats("domain", 2)
		if sh.Domain == nil {
			sh.Domain = []float64{0, 1}
		}
		if ext := s.Ints("extend"); ext != nil {
			if len(ext) != 2 {
				return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
					"%q: extend needs two values", spec)
			}
			sh.ExtendStart = ext[0] != 0
			sh.ExtendEnd = ext[1] != 0
		}
	}
	sh.Background = s.Floats("background", 0)
	sh.BBox = toRect(s.Floats("bbox", 4))
	patMatrix := toMatrix(s.Floats("matrix", 6))
	if err := s.Finish(); err != nil {
		return resource.Handle{}, err
	}

	res, err := reg.Get(cs, resource.KindColorSpace)
	if err != nil {
		return resource.Handle{}, pdfgen.Wrap(pdfgen.ErrInvalidSpecification, op, err)
	}
	sh.ColorSpace = res.(color.Space)
	for _, h := range fns {
		res, err := reg.Get(h, resource.KindFunction)
		if err != nil {
			return resource.Handle{}, pdfgen.Wrap(pdfgen.ErrInvalidSpecification, op, err)
		}
		sh.Functions = append(sh.Functions, res.(function.Function))
	}

	id := &strings.Builder{}
	id.WriteString(s.Canonical())
	id.WriteString(";cs=" + cs.String())
	for _, h := range fns {
		id.WriteString(";fn=" + h.String())
	}

	deps := append([]resource.Handle{cs}, fns...)
	shHandle, err := reg.Load(resource.KindShading, id.String(), func() (resource.Resource, error) {
		if err := sh.validate(); err != nil {
			return nil, pdfgen.Wrap(pdfgen.ErrInvalidSpecification, op, err)
		}
		return sh, nil
	}, deps...)
	if err != nil {
		return resource.Handle{}, err
	}

	return reg.Load(resource.KindPattern, id.String(), func() (resource.Resource, error) {
		pat := &ShadingPattern{
			Shading:       sh,
			ShadingHandle: shHandle,
			Matrix:        patMatrix,
		}
		return pat, nil
	}, shHandle)
}

// LoadTiling registers a tiling pattern, using the given content stream
// and resource dictionary for the pattern cell.
//
//	step=xs ys; bbox=x0 y0 x1 y1 [; matrix=a b c d e f]
//	[; type=colored|uncolored] [; tiling=1|2|3]
//
// If bbox is omitted, the cell 0 0 xs ys is used.
// Every call registers a new pattern.
func LoadTiling(reg *resource.Registry, spec string, content []byte, resources pdfgen.Dict) (resource.Handle, error) {
	const op = "load tiling pattern"

	s, err := keyval.Parse(spec)
	if err != nil {
		return resource.Handle{}, err
	}
	if s.Kind != "" {
		return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
			"%q: unexpected token %q", spec, s.Kind)
	}
	s.Require("step")
	step := s.Floats("step", 2)
	bbox := s.Floats("bbox", 4)
	prop := TilingProperties{
		Matrix:     toMatrix(s.Floats("matrix", 6)),
		TilingType: s.Int("tiling", 1),
	}
	switch s.Choice("type", "colored", "uncolored") {
	case "colored":
		prop.PaintType = Colored
	case "uncolored":
		prop.PaintType = Uncolored
	}
	if err := s.Finish(); err != nil {
		return resource.Handle{}, err
	}
	prop.XStep = step[0]
	prop.YStep = step[1]
	if bbox == nil {
		bbox = []float64{0, 0, step[0], step[1]}
	}
	prop.BBox = *toRect(bbox)

	if err := prop.validate(); err != nil {
		return resource.Handle{}, pdfgen.Wrap(pdfgen.ErrInvalidSpecification, op, err)
	}

	return reg.Add(resource.KindPattern, &Tiling{
		TilingProperties: prop,
		Content:          content,
		Resources:        resources,
	})
}
