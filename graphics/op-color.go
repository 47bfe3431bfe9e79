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
	"slices"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/color"
	"seehuhn.de/go/pdfgen/pattern"
	"seehuhn.de/go/pdfgen/resource"
)

// This file implements the "Colour operators", as defined in table 73 of
// ISO 32000-2:2020, and the shading operator "sh".

// Color sets the color for filling ("f"), stroking ("s") or both ("fs").
//
// The number of components must match the active color space.  If no
// color space has been selected using [Canvas.ColorSpace], one of the device
// color spaces is chosen by the number of components: 1 for DeviceGray,
// 3 for DeviceRGB and 4 for DeviceCMYK.
//
// This implements the PDF graphics operators "g", "G", "rg", "RG", "k", "K",
// "sc", "SC", "scn" and "SCN".
func (c *Canvas) Color(which string, components ...float64) error {
	const op = "Color"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	paints, err := c.paints(op, which)
	if err != nil {
		return err
	}
	if err := checkFinite(op, components...); err != nil {
		return err
	}

	// validate everything before writing anything
	operators := make([]string, len(paints))
	for i, p := range paints {
		if p.IsPattern {
			return pdfgen.Errorf(pdfgen.ErrInvalidOperationOrder, op,
				"pattern color space is active")
		}
		stroke := p == &c.state.Stroke

		if p.Space.IsZero() {
			var dev color.SpaceDevice
			switch len(components) {
			case 1:
				dev = color.DeviceGray
			case 3:
				dev = color.DeviceRGB
			case 4:
				dev = color.DeviceCMYK
			default:
				return pdfgen.Errorf(pdfgen.ErrColorComponentMismatch, op,
					"%d components given, expected 1, 3 or 4", len(components))
			}
			operators[i] = dev.Operator(stroke)
			continue
		}

		space, err := c.space(p.Space)
		if err != nil {
			return err
		}
		if n := space.Channels(); n != len(components) {
			return pdfgen.Errorf(pdfgen.ErrColorComponentMismatch, op,
				"%d components given, %s color space has %d",
				len(components), space.Family(), n)
		}
		switch {
		case color.IsDevice(space):
			operators[i] = space.(color.SpaceDevice).Operator(stroke)
		case color.UsesSCN(space):
			operators[i] = ifelse(stroke, "SCN", "scn")
		default:
			operators[i] = ifelse(stroke, "SC", "sc")
		}
	}

	for i, p := range paints {
		p.Color = slices.Clone(components)
		c.emit(append(nums(components...), operators[i])...)
	}
	return nil
}

// ColorSpace selects a color space for filling ("f"), stroking ("s") or
// both ("fs").  The color is set to the initial color of the space.
//
// This implements the PDF graphics operators "cs" and "CS".
func (c *Canvas) ColorSpace(which string, cs resource.Handle) error {
	const op = "ColorSpace"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	paints, err := c.paints(op, which)
	if err != nil {
		return err
	}
	space, err := c.space(cs)
	if err != nil {
		return err
	}
	if err := pdfgen.CheckVersion(c.ver, string(space.Family())+" color space", space.MinVersion()); err != nil {
		return err
	}

	var name pdfgen.Name
	if color.IsDevice(space) {
		name = space.Family()
	} else {
		name, err = c.name(resource.CatColorSpace, cs)
		if err != nil {
			return err
		}
	}

	for _, p := range paints {
		*p = Paint{
			Space:     cs,
			IsPattern: space.Family() == color.FamilyPattern,
			Color:     initialColor(space),
		}
		c.emit(name, ifelse(p == &c.state.Stroke, "CS", "cs"))
	}
	return nil
}

// ColorSpacePattern selects the pattern color space for colored patterns.
// After this, [Canvas.Pattern] must be used to set the color.
//
// This implements the PDF graphics operators "cs" and "CS".
func (c *Canvas) ColorSpacePattern(which string) error {
	const op = "ColorSpacePattern"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	paints, err := c.paints(op, which)
	if err != nil {
		return err
	}
	for _, p := range paints {
		*p = Paint{IsPattern: true}
		c.emit(color.FamilyPattern, ifelse(p == &c.state.Stroke, "CS", "cs"))
	}
	return nil
}

// ColorSpacePatternUncolored selects a pattern color space for uncolored
// patterns.  The color of the pattern is given in the color space cs.
//
// This implements the PDF graphics operators "cs" and "CS".
func (c *Canvas) ColorSpacePatternUncolored(which string, cs resource.Handle) error {
	const op = "ColorSpacePatternUncolored"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	paints, err := c.paints(op, which)
	if err != nil {
		return err
	}
	base, err := c.space(cs)
	if err != nil {
		return err
	}
	if base.Family() == color.FamilyPattern {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"base color space cannot be a pattern color space")
	}

	h, err := c.reg.Load(resource.KindColorSpace, "pattern;"+cs.String(), func() (resource.Resource, error) {
		return &color.SpacePattern{Base: base, BaseHandle: cs}, nil
	}, cs)
	if err != nil {
		return err
	}
	name, err := c.name(resource.CatColorSpace, h)
	if err != nil {
		return err
	}

	for _, p := range paints {
		*p = Paint{Space: h, IsPattern: true}
		c.emit(name, ifelse(p == &c.state.Stroke, "CS", "cs"))
	}
	return nil
}

// Pattern selects a pattern for filling ("f"), stroking ("s") or both
// ("fs").  A pattern color space must be active.  For uncolored patterns,
// the components give the color in the base color space.
//
// This implements the PDF graphics operators "scn" and "SCN".
func (c *Canvas) Pattern(which string, patt resource.Handle, components ...float64) error {
	const op = "Pattern"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	paints, err := c.paints(op, which)
	if err != nil {
		return err
	}
	for _, p := range paints {
		if !p.IsPattern {
			return pdfgen.Errorf(pdfgen.ErrInvalidOperationOrder, op,
				"no pattern color space is active")
		}
	}
	if err := checkFinite(op, components...); err != nil {
		return err
	}
	res, err := c.reg.Get(patt, resource.KindPattern)
	if err != nil {
		return err
	}
	paintType := res.(pattern.Pattern).PaintType()

	for _, p := range paints {
		if p.Space.IsZero() {
			if paintType != pattern.Colored {
				return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
					"uncolored pattern needs ColorSpacePatternUncolored")
			}
			if len(components) > 0 {
				return pdfgen.Errorf(pdfgen.ErrColorComponentMismatch, op,
					"colored patterns take no color components")
			}
			continue
		}

		if paintType != pattern.Uncolored {
			return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
				"colored pattern needs ColorSpacePattern")
		}
		space, err := c.space(p.Space)
		if err != nil {
			return err
		}
		if n := space.Channels(); n != len(components) {
			return pdfgen.Errorf(pdfgen.ErrColorComponentMismatch, op,
				"%d components given, base color space has %d",
				len(components), n)
		}
	}

	name, err := c.name(resource.CatPattern, patt)
	if err != nil {
		return err
	}
	for _, p := range paints {
		p.Pattern = patt
		p.Color = slices.Clone(components)
		args := append(nums(components...), name, ifelse(p == &c.state.Stroke, "SCN", "scn"))
		c.emit(args...)
	}
	return nil
}

// ShadingApply paints the shading of a shading pattern over the current
// clipping region.  The pattern matrix is ignored, the shading is drawn in
// user space.
//
// This implements the PDF graphics operator "sh".
func (c *Canvas) ShadingApply(patt resource.Handle) error {
	const op = "ShadingApply"
	if err := c.check(op, objPage); err != nil {
		return err
	}
	res, err := c.reg.Get(patt, resource.KindPattern)
	if err != nil {
		return err
	}
	sp, ok := res.(*pattern.ShadingPattern)
	if !ok {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"%s is not a shading pattern", patt)
	}
	if err := pdfgen.CheckVersion(c.ver, "sh operator", pdfgen.V1_3); err != nil {
		return err
	}
	name, err := c.name(resource.CatShading, sp.ShadingHandle)
	if err != nil {
		return err
	}
	c.emit(name, "sh")
	return nil
}

// space returns the color space a handle refers to.
func (c *Canvas) space(h resource.Handle) (color.Space, error) {
	res, err := c.reg.Get(h, resource.KindColorSpace)
	if err != nil {
		return nil, err
	}
	return res.(color.Space), nil
}

// initialColor returns the color selected by the "cs" operator.
func initialColor(space color.Space) []float64 {
	switch space.Family() {
	case color.FamilyPattern:
		return nil
	case color.FamilyDeviceCMYK:
		return []float64{0, 0, 0, 1}
	}
	return make([]float64, space.Channels())
}
