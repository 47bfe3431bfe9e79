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

package function

import (
	"strings"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/internal/keyval"
	"seehuhn.de/go/pdfgen/resource"
)

// Load2 registers a Type 2 (exponential interpolation) function.
//
//	domain=xmin xmax; c0=...; c1=...; n=exponent [; range=...]
//
// C0 defaults to [0] and C1 defaults to [1].
func Load2(reg *resource.Registry, spec string) (resource.Handle, error) {
	s, err := parse(reg, spec, 2)
	if err != nil {
		return resource.Handle{}, err
	}
	domain := s.Floats("domain", 2)
	if domain == nil {
		domain = []float64{0, 1}
	}
	f := &Type2{
		XMin:  domain[0],
		XMax:  domain[1],
		C0:    s.Floats("c0", 0),
		C1:    s.Floats("c1", 0),
		N:     s.Float("n", 1),
		Range: s.Floats("range", 0),
	}
	if f.C0 == nil {
		f.C0 = []float64{0}
	}
	if f.C1 == nil {
		f.C1 = []float64{1}
	}
	if err := s.Finish(); err != nil {
		return resource.Handle{}, err
	}
	return register(reg, "2;"+s.Canonical(), f, f.validate)
}

// Load3 registers a Type 3 (stitching) function, combining the given
// single-input functions.
//
//	domain=xmin xmax; bounds=...; encode=... [; range=...]
func Load3(reg *resource.Registry, spec string, funcs ...resource.Handle) (resource.Handle, error) {
	s, err := parse(reg, spec, 3)
	if err != nil {
		return resource.Handle{}, err
	}
	s.Require("domain")
	f := &Type3{
		Domain:  s.Floats("domain", 2),
		Bounds:  s.Floats("bounds", 0),
		Encode:  s.Floats("encode", 0),
		Range:   s.Floats("range", 0),
		Handles: funcs,
	}
	if f.Bounds == nil {
		f.Bounds = []float64{}
	}
	if err := s.Finish(); err != nil {
		return resource.Handle{}, err
	}

	for _, h := range funcs {
		res, err := reg.Get(h, resource.KindFunction)
		if err != nil {
			return resource.Handle{}, pdfgen.Wrap(pdfgen.ErrInvalidSpecification, "load function", err)
		}
		f.Functions = append(f.Functions, res.(Function))
	}

	id := &strings.Builder{}
	id.WriteString("3;")
	id.WriteString(s.Canonical())
	for _, h := range funcs {
		id.WriteString(";")
		id.WriteString(h.String())
	}
	return register(reg, id.String(), f, f.validate, funcs...)
}

// Load4 registers a Type 4 (PostScript calculator) function.
//
//	domain=...; range=...; func={ program }
func Load4(reg *resource.Registry, spec string) (resource.Handle, error) {
	s, err := parse(reg, spec, 4)
	if err != nil {
		return resource.Handle{}, err
	}
	s.Require("domain", "range", "func")
	f := &Type4{
		Domain: s.Floats("domain", 0),
		Range:  s.Floats("range", 0),
	}
	program := strings.TrimSpace(s.String("func", ""))
	if err := s.Finish(); err != nil {
		return resource.Handle{}, err
	}
	if !strings.HasPrefix(program, "{") || !strings.HasSuffix(program, "}") {
		return resource.Handle{}, newInvalidFunctionError(4, "func",
			"program must be enclosed in braces")
	}
	f.Program = program[1 : len(program)-1]
	return register(reg, "4;"+s.Canonical(), f, f.validate)
}

func parse(reg *resource.Registry, spec string, tp int) (*keyval.Spec, error) {
	err := pdfgen.CheckVersion(reg.Out().Version, "PDF functions", pdfgen.V1_3)
	if err != nil {
		return nil, err
	}
	s, err := keyval.Parse(spec)
	if err != nil {
		return nil, err
	}
	if s.Kind != "" {
		return nil, newInvalidFunctionError(tp, "spec", "unexpected token %q", s.Kind)
	}
	return s, nil
}

func register(reg *resource.Registry, id string, f Function, validate func() error, deps ...resource.Handle) (resource.Handle, error) {
	return reg.Load(resource.KindFunction, id, func() (resource.Resource, error) {
		if err := validate(); err != nil {
			return nil, err
		}
		return f, nil
	}, deps...)
}
