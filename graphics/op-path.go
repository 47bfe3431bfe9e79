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
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfgen"
)

// This file implements the "Path construction operators" and "Path-painting
// operators".  The operators implemented here are defined in tables 58, 59
// and 60 of ISO 32000-2:2020.

// MoveTo starts a new subpath at the given coordinates.
//
// This implements the PDF graphics operator "m".
func (c *Canvas) MoveTo(x, y float64) error {
	const op = "MoveTo"
	if err := c.check(op, objPage|objPath); err != nil {
		return err
	}
	if err := checkFinite(op, x, y); err != nil {
		return err
	}
	c.moveTo(vec.Vec2{X: x, Y: y})
	return nil
}

func (c *Canvas) moveTo(p vec.Vec2) {
	c.current = objPath
	c.start, c.cur = p, p
	c.segments = 0
	c.emit(num(p.X), num(p.Y), "m")
}

// LineTo appends a straight line segment to the current subpath.
//
// This implements the PDF graphics operator "l".
func (c *Canvas) LineTo(x, y float64) error {
	const op = "LineTo"
	if err := c.check(op, objPath); err != nil {
		return err
	}
	if err := checkFinite(op, x, y); err != nil {
		return err
	}
	c.lineTo(vec.Vec2{X: x, Y: y})
	return nil
}

func (c *Canvas) lineTo(p vec.Vec2) {
	c.cur = p
	c.segments++
	c.emit(num(p.X), num(p.Y), "l")
}

// BezierTo appends a cubic Bézier curve to the current subpath.
//
// This implements the PDF graphics operator "c".
func (c *Canvas) BezierTo(x1, y1, x2, y2, x3, y3 float64) error {
	const op = "BezierTo"
	if err := c.check(op, objPath); err != nil {
		return err
	}
	if err := checkFinite(op, x1, y1, x2, y2, x3, y3); err != nil {
		return err
	}
	c.curveTo(x1, y1, x2, y2, x3, y3)
	return nil
}

func (c *Canvas) curveTo(x1, y1, x2, y2, x3, y3 float64) {
	c.cur = vec.Vec2{X: x3, Y: y3}
	c.segments++
	c.emit(num(x1), num(y1), num(x2), num(y2), num(x3), num(y3), "c")
}

// BezierTo1stCtrlPt appends a cubic Bézier curve to the current subpath,
// where the second control point coincides with the end point.
//
// This implements the PDF graphics operator "y".
func (c *Canvas) BezierTo1stCtrlPt(x1, y1, x3, y3 float64) error {
	const op = "BezierTo1stCtrlPt"
	if err := c.check(op, objPath); err != nil {
		return err
	}
	if err := checkFinite(op, x1, y1, x3, y3); err != nil {
		return err
	}
	c.cur = vec.Vec2{X: x3, Y: y3}
	c.segments++
	c.emit(num(x1), num(y1), num(x3), num(y3), "y")
	return nil
}

// BezierTo2ndCtrlPt appends a cubic Bézier curve to the current subpath,
// where the first control point coincides with the current point.
//
// This implements the PDF graphics operator "v".
func (c *Canvas) BezierTo2ndCtrlPt(x2, y2, x3, y3 float64) error {
	const op = "BezierTo2ndCtrlPt"
	if err := c.check(op, objPath); err != nil {
		return err
	}
	if err := checkFinite(op, x2, y2, x3, y3); err != nil {
		return err
	}
	c.cur = vec.Vec2{X: x3, Y: y3}
	c.segments++
	c.emit(num(x2), num(y2), num(x3), num(y3), "v")
	return nil
}

// PathClose closes the current subpath.
//
// This implements the PDF graphics operator "h".
func (c *Canvas) PathClose() error {
	if err := c.check("PathClose", objPath); err != nil {
		return err
	}
	c.closePath()
	return nil
}

func (c *Canvas) closePath() {
	c.cur = c.start
	c.segments++
	c.emit("h")
}

// Rectangle appends a rectangle to the current path as a closed subpath.
//
// This implements the PDF graphics operator "re".
func (c *Canvas) Rectangle(x, y, width, height float64) error {
	const op = "Rectangle"
	if err := c.check(op, objPage|objPath); err != nil {
		return err
	}
	if err := checkFinite(op, x, y, width, height); err != nil {
		return err
	}
	c.current = objPath
	c.start = vec.Vec2{X: x, Y: y}
	c.cur = c.start
	c.segments++
	c.emit(num(x), num(y), num(width), num(height), "re")
	return nil
}

// Circle appends a circle to the current path, as a closed subpath.
//
// The circle is approximated by four Bézier curves.
func (c *Canvas) Circle(x, y, radius float64) error {
	const op = "Circle"
	if err := c.check(op, objPage|objPath); err != nil {
		return err
	}
	if err := checkFinite(op, x, y, radius); err != nil {
		return err
	}
	if radius < 0 {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"negative radius %g", radius)
	}
	center := vec.Vec2{X: x, Y: y}
	c.moveTo(ellipsePoint(center, radius, radius, 0, 0))
	c.ellipticArc(center, radius, radius, 0, 0, 2*math.Pi)
	c.closePath()
	return nil
}

// Arc appends an arc of an axis-aligned ellipse to the current path.  The
// ellipse has center (cx, cy) and radii rx and ry.  The arc starts at
// angle startAngle and extends counterclockwise by sweepAngle (clockwise
// for negative values).  Angles are given in radians.
//
// If a path is under construction, the arc is connected to the current
// point by a straight line.  Otherwise, a new subpath is started.
func (c *Canvas) Arc(cx, cy, rx, ry, startAngle, sweepAngle float64) error {
	const op = "Arc"
	if err := c.check(op, objPage|objPath); err != nil {
		return err
	}
	if err := checkFinite(op, cx, cy, rx, ry, startAngle, sweepAngle); err != nil {
		return err
	}
	if rx < 0 || ry < 0 {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op, "negative radius")
	}

	center := vec.Vec2{X: cx, Y: cy}
	p0 := ellipsePoint(center, rx, ry, 0, startAngle)
	if c.current == objPath {
		c.lineTo(p0)
	} else {
		c.moveTo(p0)
	}
	c.ellipticArc(center, rx, ry, 0, startAngle, sweepAngle)
	return nil
}

// ArcTo appends an elliptical arc from the current point to (x, y).
// The parameters have the same meaning as for the SVG "A" path command:
// rx and ry are the radii of the ellipse, angle is the rotation of the
// ellipse's x axis (in radians), largeArc selects the larger of the two
// possible arcs and sweep selects the arc which is traversed
// counterclockwise.
//
// If one of the radii is zero, a straight line is drawn.
func (c *Canvas) ArcTo(x, y, rx, ry, angle float64, largeArc, sweep bool) error {
	const op = "ArcTo"
	if err := c.check(op, objPath); err != nil {
		return err
	}
	if err := checkFinite(op, x, y, rx, ry, angle); err != nil {
		return err
	}

	p1 := c.cur
	p2 := vec.Vec2{X: x, Y: y}
	if p1 == p2 {
		c.segments++
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		c.lineTo(p2)
		return nil
	}

	// Convert from endpoint to center parameterization, following
	// section B.2.4 of the SVG 2 specification.
	sin, cos := math.Sincos(angle)
	dx, dy := (p1.X-p2.X)/2, (p1.Y-p2.Y)/2
	x1 := cos*dx + sin*dy
	y1 := -sin*dx + cos*dy

	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	numer := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math.Sqrt(max(0, numer/den))
	if largeArc == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	center := vec.Vec2{
		X: cos*cx1 - sin*cy1 + (p1.X+p2.X)/2,
		Y: sin*cx1 + cos*cy1 + (p1.Y+p2.Y)/2,
	}

	theta1 := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	theta2 := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx)
	dTheta := theta2 - theta1
	if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	} else if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	}

	c.ellipticArc(center, rx, ry, angle, theta1, dTheta)
	c.cur = p2
	return nil
}

// ellipsePoint returns the point at parameter theta on an ellipse with
// the given center, radii and rotation.
func ellipsePoint(center vec.Vec2, rx, ry, rot, theta float64) vec.Vec2 {
	sinR, cosR := math.Sincos(rot)
	sin, cos := math.Sincos(theta)
	x, y := rx*cos, ry*sin
	return vec.Vec2{
		X: center.X + cosR*x - sinR*y,
		Y: center.Y + sinR*x + cosR*y,
	}
}

// ellipticArc appends Bézier curves approximating an arc of an ellipse,
// starting at the current point.  Each curve covers at most a quarter
// turn.
func (c *Canvas) ellipticArc(center vec.Vec2, rx, ry, rot, theta, dTheta float64) {
	// also see https://pomax.github.io/bezierinfo/ , section 42

	nSegment := int(math.Ceil(math.Abs(dTheta) / (0.5 * math.Pi)))
	if nSegment == 0 {
		return
	}
	dPhi := dTheta / float64(nSegment)
	k := 4.0 / 3.0 * math.Tan(dPhi/4)

	sinR, cosR := math.Sincos(rot)
	tangent := func(phi float64) vec.Vec2 {
		sin, cos := math.Sincos(phi)
		x, y := -rx*sin, ry*cos
		return vec.Vec2{X: cosR*x - sinR*y, Y: sinR*x + cosR*y}
	}

	p0 := ellipsePoint(center, rx, ry, rot, theta)
	for range nSegment {
		t0 := tangent(theta)
		theta += dPhi
		p3 := ellipsePoint(center, rx, ry, rot, theta)
		t3 := tangent(theta)
		c.curveTo(
			p0.X+k*t0.X, p0.Y+k*t0.Y,
			p3.X-k*t3.X, p3.Y-k*t3.Y,
			p3.X, p3.Y)
		p0 = p3
	}
}

// paintOperators lists the operators accepted by [Canvas.PathPaint].
var paintOperators = map[string]bool{
	"S": true, "s": true,
	"f": true, "f*": true,
	"B": true, "B*": true,
	"b": true, "b*": true,
	"n": true,
}

// PathPaint ends the current path.  The argument is a path-painting
// operator ("S", "s", "f", "f*", "B", "B*", "b", "b*" or "n"), optionally
// preceded by a clipping path operator ("W" or "W*"), for example "W n".
// If only a clipping operator is given, the path must be ended by a
// second call to PathPaint.
//
// This implements the PDF graphics operators "S", "s", "f", "f*", "B",
// "B*", "b", "b*", "n", "W" and "W*".
func (c *Canvas) PathPaint(cmd string) error {
	const op = "PathPaint"
	if err := c.check(op, objPath|objClippingPath); err != nil {
		return err
	}

	tokens := strings.Fields(cmd)
	var clip, paint string
	if len(tokens) > 0 && (tokens[0] == "W" || tokens[0] == "W*") {
		clip, tokens = tokens[0], tokens[1:]
	}
	if len(tokens) == 1 {
		paint = tokens[0]
	}
	if len(tokens) > 1 || (paint != "" && !paintOperators[paint]) || (clip == "" && paint == "") {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"invalid path painting command %q", cmd)
	}

	if clip != "" && c.current == objClippingPath {
		return pdfgen.Errorf(pdfgen.ErrInvalidOperationOrder, op,
			"clipping path already set")
	}
	if c.current == objPath && c.segments == 0 {
		return pdfgen.Errorf(pdfgen.ErrInvalidOperationOrder, op,
			"empty path")
	}

	if clip != "" {
		c.emit(clip)
		c.current = objClippingPath
	}
	if paint != "" {
		c.emit(paint)
		c.current = objPage
		c.segments = 0
	}
	return nil
}
