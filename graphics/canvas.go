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
	"bytes"
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/internal/float"
	"seehuhn.de/go/pdfgen/resource"
)

// Canvas accumulates the content stream of a page.
//
// Every method validates its arguments and the current object mode before
// appending operators to the content stream.  If validation fails, an error
// is returned and the canvas is left unchanged.
type Canvas struct {
	reg *resource.Registry
	ver pdfgen.Version
	res *resource.Dict

	content bytes.Buffer

	state State
	stack []State

	current objectType
	closed  bool

	// Path construction.  segments counts the path construction calls
	// since the last MoveTo or painting operator.
	start, cur vec.Vec2
	segments   int
}

// NewCanvas returns an empty canvas.  Resources used on the canvas must
// be loaded from reg.
func NewCanvas(reg *resource.Registry, ver pdfgen.Version) *Canvas {
	return &Canvas{
		reg:     reg,
		ver:     ver,
		res:     resource.NewDict(),
		state:   NewState(),
		current: objPage,
	}
}

// Content returns the content stream built so far.
func (c *Canvas) Content() []byte {
	return c.content.Bytes()
}

// Resources returns the resource dictionary of the canvas.
func (c *Canvas) Resources() *resource.Dict {
	return c.res
}

// State returns a copy of the current graphics state.
func (c *Canvas) State() State {
	return c.state.Clone()
}

// Close checks that the content stream is complete and marks the canvas as
// closed.  All text and path objects must be finished and all saved
// graphics states must have been restored.  If the check fails, the canvas
// stays open.
func (c *Canvas) Close() error {
	const op = "close canvas"
	if c.closed {
		return pdfgen.Errorf(pdfgen.ErrCanvasClosed, op, "")
	}
	if c.current != objPage {
		return pdfgen.Errorf(pdfgen.ErrInvalidOperationOrder, op,
			"unfinished %s", c.current)
	}
	if n := len(c.stack); n > 0 {
		return pdfgen.Errorf(pdfgen.ErrUnbalancedStateStack, op,
			"%d unmatched StateSave calls", n)
	}
	c.closed = true
	return nil
}

// IsClosed reports whether [Canvas.Close] has succeeded.
func (c *Canvas) IsClosed() bool {
	return c.closed
}

// check verifies that an operator may be used in the current object mode.
func (c *Canvas) check(op string, allowed objectType) error {
	if c.closed {
		return pdfgen.Errorf(pdfgen.ErrCanvasClosed, op, "")
	}
	if c.current&allowed == 0 {
		return pdfgen.Errorf(pdfgen.ErrInvalidOperationOrder, op,
			"not allowed in %s", c.current)
	}
	return nil
}

// checkFinite verifies that all numeric arguments are finite.
func checkFinite(op string, xx ...float64) error {
	if !float.IsFinite(xx...) {
		return pdfgen.Errorf(pdfgen.ErrInvalidArgument, op, "invalid number")
	}
	return nil
}

// emit appends one operator, together with its operands, to the content
// stream.  PDF objects among the operands are written in PDF syntax.
func (c *Canvas) emit(args ...any) {
	for i, arg := range args {
		if obj, ok := arg.(pdfgen.Object); ok {
			args[i] = pdfgen.Format(obj)
		}
	}
	fmt.Fprintln(&c.content, args...)
}

func num(x float64) string {
	return float.Format(x, float.Precision)
}

func nums(xx ...float64) []any {
	res := make([]any, len(xx))
	for i, x := range xx {
		res[i] = num(x)
	}
	return res
}

// name returns the name of a resource in the resource dictionary of the
// canvas.
func (c *Canvas) name(cat resource.Category, h resource.Handle) (pdfgen.Name, error) {
	obj, err := c.reg.Object(h)
	if err != nil {
		return "", err
	}
	return c.res.Name(cat, h, obj), nil
}

// objectType is the current object mode, as described in figure 9 of
// ISO 32000-2:2020.
type objectType byte

const (
	objPage objectType = 1 << iota
	objPath
	objText
	objClippingPath
)

func (s objectType) String() string {
	switch s {
	case objPage:
		return "page description level"
	case objPath:
		return "path object"
	case objText:
		return "text object"
	case objClippingPath:
		return "clipping path object"
	default:
		return fmt.Sprintf("objectType(%d)", s)
	}
}

// paints returns the paint records selected by an operation token, "f" for
// filling, "s" for stroking, or "fs" for both.
func (c *Canvas) paints(op, which string) ([]*Paint, error) {
	switch which {
	case "f":
		return []*Paint{&c.state.Fill}, nil
	case "s":
		return []*Paint{&c.state.Stroke}, nil
	case "fs", "sf":
		return []*Paint{&c.state.Fill, &c.state.Stroke}, nil
	}
	return nil, pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
		"invalid operation %q, must be f, s or fs", which)
}

func ifelse[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
