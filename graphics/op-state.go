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
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// This file implements the operators in the "General graphics state" and
// "Special graphics state" categories.  These operators are defined
// in table 56 of ISO 32000-2:2020.

// StateSave saves the current graphics state.
//
// This implements the PDF graphics operator "q".
func (c *Canvas) StateSave() error {
	if err := c.check("StateSave", objPage); err != nil {
		return err
	}
	c.stack = append(c.stack, c.state.Clone())
	c.emit("q")
	return nil
}

// StateRestore restores the graphics state saved by the matching call to
// [Canvas.StateSave].
//
// This implements the PDF graphics operator "Q".
func (c *Canvas) StateRestore() error {
	const op = "StateRestore"
	if c.closed {
		return pdfgen.Errorf(pdfgen.ErrCanvasClosed, op, "")
	}
	n := len(c.stack) - 1
	if n < 0 {
		return pdfgen.Errorf(pdfgen.ErrUnbalancedStateStack, op,
			"no matching StateSave")
	}
	if err := c.check(op, objPage); err != nil {
		return err
	}
	c.state = c.stack[n]
	c.stack = c.stack[:n]
	c.emit("Q")
	return nil
}

// Transform applies an additional transformation to the coordinate
// system.  The new transformation is applied to user coordinates first,
// followed by the existing transformation.
//
// This implements the PDF graphics operator "cm".
func (c *Canvas) Transform(a, b, cc, d, e, f float64) error {
	const op = "Transform"
	if err := c.check(op, objPage); err != nil {
		return err
	}
	if err := checkFinite(op, a, b, cc, d, e, f); err != nil {
		return err
	}
	m := matrix.Matrix{a, b, cc, d, e, f}
	c.state.CTM = m.Mul(c.state.CTM)
	c.emit(append(nums(m[:]...), "cm")...)
	return nil
}

// Translate moves the origin of the coordinate system.
func (c *Canvas) Translate(tx, ty float64) error {
	return c.Transform(1, 0, 0, 1, tx, ty)
}

// Scale scales the coordinate axes.
func (c *Canvas) Scale(sx, sy float64) error {
	return c.Transform(sx, 0, 0, sy, 0, 0)
}

// Rotate rotates the coordinate system counterclockwise.  The angle is given
// in radians.
func (c *Canvas) Rotate(angle float64) error {
	sin, cos := math.Sincos(angle)
	return c.Transform(cos, sin, -sin, cos, 0, 0)
}

// Skew skews the x axis by the angle alpha and the y axis by the angle
// beta.  Angles are given in radians.
func (c *Canvas) Skew(alpha, beta float64) error {
	return c.Transform(1, math.Tan(alpha), math.Tan(beta), 1, 0, 0)
}

// LineWidth sets the line width.
//
// This implements the PDF graphics operator "w".
func (c *Canvas) LineWidth(width float64) error {
	const op = "LineWidth"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if err := checkFinite(op, width); err != nil {
		return err
	}
	if width < 0 {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"negative width %g", width)
	}
	c.state.LineWidth = width
	c.emit(num(width), "w")
	return nil
}

// LineCap sets the line cap style.
//
// This implements the PDF graphics operator "J".
func (c *Canvas) LineCap(cap LineCapStyle) error {
	const op = "LineCap"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if cap > LineCapSquare {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"invalid line cap style %d", cap)
	}
	c.state.LineCap = cap
	c.emit(int(cap), "J")
	return nil
}

// LineJoin sets the line join style.
//
// This implements the PDF graphics operator "j".
func (c *Canvas) LineJoin(join LineJoinStyle) error {
	const op = "LineJoin"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if join > LineJoinBevel {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"invalid line join style %d", join)
	}
	c.state.LineJoin = join
	c.emit(int(join), "j")
	return nil
}

// LineMiterLimit sets the miter limit.
//
// This implements the PDF graphics operator "M".
func (c *Canvas) LineMiterLimit(limit float64) error {
	const op = "LineMiterLimit"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if err := checkFinite(op, limit); err != nil {
		return err
	}
	if limit < 1 {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"miter limit %g is less than 1", limit)
	}
	c.state.MiterLimit = limit
	c.emit(num(limit), "M")
	return nil
}

// LineDash sets the line dash pattern.  An empty pattern gives solid lines.
//
// This implements the PDF graphics operator "d".
func (c *Canvas) LineDash(pattern []float64, phase float64) error {
	const op = "LineDash"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if err := checkFinite(op, append(slices.Clone(pattern), phase)...); err != nil {
		return err
	}
	allZero := true
	for _, x := range pattern {
		if x < 0 {
			return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
				"negative dash length %g", x)
		}
		if x != 0 {
			allZero = false
		}
	}
	if len(pattern) > 0 && allZero {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"all dash lengths are zero")
	}
	if phase < 0 {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"negative dash phase %g", phase)
	}

	c.state.DashPattern = slices.Clone(pattern)
	c.state.DashPhase = phase
	c.emit(pdfgen.Reals(pattern...), num(phase), "d")
	return nil
}

// Alpha sets the constant opacity for filling ("f") or stroking ("s").
// Both can be set at once using "fs".
//
// This uses the PDF graphics operator "gs".
func (c *Canvas) Alpha(which string, alpha float64) error {
	const op = "Alpha"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if err := pdfgen.CheckVersion(c.ver, "transparency", pdfgen.V1_4); err != nil {
		return err
	}
	if err := checkFinite(op, alpha); err != nil {
		return err
	}
	if alpha < 0 || alpha > 1 {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"alpha value %g not in [0, 1]", alpha)
	}

	fill, stroke := c.state.FillAlpha, c.state.StrokeAlpha
	switch which {
	case "f":
		fill = alpha
	case "s":
		stroke = alpha
	case "fs", "sf":
		fill, stroke = alpha, alpha
	default:
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"invalid operation %q, must be f, s or fs", which)
	}

	gs := &ExtGState{
		StrokeAlpha:  stroke,
		FillAlpha:    fill,
		AlphaIsShape: c.state.AlphaIsShape,
	}
	if err := c.setExtGState(gs); err != nil {
		return err
	}
	c.state.FillAlpha, c.state.StrokeAlpha = fill, stroke
	return nil
}

// AlphaIsShape sets the alpha source flag.  If set, the alpha values are
// interpreted as shape rather than opacity.
//
// This uses the PDF graphics operator "gs".
func (c *Canvas) AlphaIsShape(isShape bool) error {
	const op = "AlphaIsShape"
	if err := c.check(op, objPage|objText); err != nil {
		return err
	}
	if err := pdfgen.CheckVersion(c.ver, "transparency", pdfgen.V1_4); err != nil {
		return err
	}

	gs := &ExtGState{
		StrokeAlpha:  c.state.StrokeAlpha,
		FillAlpha:    c.state.FillAlpha,
		AlphaIsShape: isShape,
	}
	if err := c.setExtGState(gs); err != nil {
		return err
	}
	c.state.AlphaIsShape = isShape
	return nil
}

func (c *Canvas) setExtGState(gs *ExtGState) error {
	h, err := c.reg.Load(resource.KindExtGState, gs.id(), func() (resource.Resource, error) {
		return gs, nil
	})
	if err != nil {
		return err
	}
	name, err := c.name(resource.CatExtGState, h)
	if err != nil {
		return err
	}
	c.emit(name, "gs")
	return nil
}
