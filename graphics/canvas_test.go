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
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

func newCanvas(t *testing.T, ver pdfgen.Version) (*Canvas, *resource.Registry) {
	t.Helper()
	w, err := pdfgen.NewWriter(&bytes.Buffer{}, ver, nil)
	if err != nil {
		t.Fatal(err)
	}
	reg := resource.NewRegistry(w)
	return NewCanvas(reg, ver), reg
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestRectangleFill(t *testing.T) {
	c, _ := newCanvas(t, pdfgen.V1_7)
	must(t, c.Rectangle(10, 10, 50, 50))
	must(t, c.PathPaint("f"))
	must(t, c.Close())

	if d := cmp.Diff("10 10 50 50 re\nf\n", string(c.Content())); d != "" {
		t.Error(d)
	}
}

func TestCallOrder(t *testing.T) {
	c, _ := newCanvas(t, pdfgen.V1_7)
	must(t, c.LineWidth(2))
	must(t, c.Color("s", 1, 0, 0))
	must(t, c.StateSave())
	must(t, c.Translate(10, 20.5))
	must(t, c.MoveTo(0, 0))
	must(t, c.LineTo(100, 0.25))
	must(t, c.BezierTo(1, 2, 3, 4, 5, 6))
	must(t, c.BezierTo1stCtrlPt(1, 2, 3, 4))
	must(t, c.BezierTo2ndCtrlPt(1, 2, 3, 4))
	must(t, c.PathClose())
	must(t, c.PathPaint("S"))
	must(t, c.StateRestore())
	must(t, c.LineDash([]float64{3, 1}, 0))
	must(t, c.LineCap(LineCapRound))
	must(t, c.LineJoin(LineJoinBevel))
	must(t, c.LineMiterLimit(4))

	want := strings.Join([]string{
		"2 w",
		"1 0 0 RG",
		"q",
		"1 0 0 1 10 20.5 cm",
		"0 0 m",
		"100 .25 l",
		"1 2 3 4 5 6 c",
		"1 2 3 4 y",
		"1 2 3 4 v",
		"h",
		"S",
		"Q",
		"[3 1] 0 d",
		"1 J",
		"2 j",
		"4 M",
	}, "\n") + "\n"
	if d := cmp.Diff(want, string(c.Content())); d != "" {
		t.Error(d)
	}
}

func TestSaveRestore(t *testing.T) {
	c, _ := newCanvas(t, pdfgen.V1_7)
	must(t, c.LineDash([]float64{2, 2}, 1))
	must(t, c.Color("f", .5))
	before := c.State()

	must(t, c.StateSave())
	must(t, c.Scale(2, 3))
	must(t, c.LineWidth(7))
	must(t, c.LineDash([]float64{5}, 0))
	must(t, c.Color("f", 1, 0, 0))
	must(t, c.TextRise(4))
	must(t, c.TextRenderingMode("s"))
	must(t, c.StateRestore())

	opt := cmp.AllowUnexported(resource.Handle{})
	if d := cmp.Diff(before, c.State(), opt); d != "" {
		t.Error(d)
	}

	err := c.StateRestore()
	if !errors.Is(err, pdfgen.ErrUnbalancedStateStack) {
		t.Errorf("expected ErrUnbalancedStateStack, got %v", err)
	}
}

func TestRestoreEmptyStack(t *testing.T) {
	setups := map[string]func(c *Canvas) error{
		"page": func(c *Canvas) error { return nil },
		"text": func(c *Canvas) error { return c.TextStart(1, 1) },
		"path": func(c *Canvas) error { return c.MoveTo(0, 0) },
	}
	for name, setup := range setups {
		c, _ := newCanvas(t, pdfgen.V1_7)
		must(t, setup(c))
		err := c.StateRestore()
		if !errors.Is(err, pdfgen.ErrUnbalancedStateStack) {
			t.Errorf("%s: expected ErrUnbalancedStateStack, got %v", name, err)
		}
	}

	c, _ := newCanvas(t, pdfgen.V1_7)
	must(t, c.StateSave())
	must(t, c.TextStart(1, 1))
	err := c.StateRestore()
	if !errors.Is(err, pdfgen.ErrInvalidOperationOrder) {
		t.Errorf("restore in text object: got %v", err)
	}
}

func TestStateIsCopied(t *testing.T) {
	c, _ := newCanvas(t, pdfgen.V1_7)
	dash := []float64{1, 2}
	must(t, c.LineDash(dash, 0))
	dash[0] = 100

	s := c.State()
	if s.DashPattern[0] != 1 {
		t.Error("dash pattern shares memory with the caller")
	}
	s.DashPattern[1] = 100
	if c.State().DashPattern[1] != 2 {
		t.Error("State returns shared memory")
	}
}

func TestInvalidOrder(t *testing.T) {
	type step func(c *Canvas) error
	cases := []struct {
		name  string
		setup []step
		call  step
	}{
		{"LineTo without path", nil,
			func(c *Canvas) error { return c.LineTo(1, 1) }},
		{"BezierTo without path", nil,
			func(c *Canvas) error { return c.BezierTo1stCtrlPt(1, 1, 2, 2) }},
		{"PathClose without path", nil,
			func(c *Canvas) error { return c.PathClose() }},
		{"ArcTo without path", nil,
			func(c *Canvas) error { return c.ArcTo(1, 1, 1, 1, 0, false, false) }},
		{"paint without path", nil,
			func(c *Canvas) error { return c.PathPaint("f") }},
		{"paint after MoveTo", []step{
			func(c *Canvas) error { return c.MoveTo(0, 0) },
		}, func(c *Canvas) error { return c.PathPaint("S") }},
		{"paint after second MoveTo", []step{
			func(c *Canvas) error { return c.MoveTo(0, 0) },
			func(c *Canvas) error { return c.LineTo(1, 0) },
			func(c *Canvas) error { return c.MoveTo(5, 5) },
		}, func(c *Canvas) error { return c.PathPaint("S") }},
		{"color inside path", []step{
			func(c *Canvas) error { return c.MoveTo(0, 0) },
		}, func(c *Canvas) error { return c.Color("f", 0) }},
		{"save inside path", []step{
			func(c *Canvas) error { return c.Rectangle(0, 0, 1, 1) },
		}, func(c *Canvas) error { return c.StateSave() }},
		{"save inside text", []step{
			func(c *Canvas) error { return c.TextStart(0, 0) },
		}, func(c *Canvas) error { return c.StateSave() }},
		{"path inside text", []step{
			func(c *Canvas) error { return c.TextStart(0, 0) },
		}, func(c *Canvas) error { return c.MoveTo(0, 0) }},
		{"nested text", []step{
			func(c *Canvas) error { return c.TextStart(0, 0) },
		}, func(c *Canvas) error { return c.TextStart(0, 0) }},
		{"text without text object", nil,
			func(c *Canvas) error { return c.Text("abc") }},
		{"Td without text object", nil,
			func(c *Canvas) error { return c.TextTranslateLine(0, 10) }},
		{"ET without text object", nil,
			func(c *Canvas) error { return c.TextEnd() }},
		{"TextAt inside text object", []step{
			func(c *Canvas) error { return c.TextStart(0, 0) },
		}, func(c *Canvas) error { return c.TextAt(0, 0, "x") }},
		{"cm inside text", []step{
			func(c *Canvas) error { return c.TextStart(0, 0) },
		}, func(c *Canvas) error { return c.Rotate(1) }},
		{"second clip", []step{
			func(c *Canvas) error { return c.Rectangle(0, 0, 1, 1) },
			func(c *Canvas) error { return c.PathPaint("W") },
		}, func(c *Canvas) error { return c.PathPaint("W* n") }},
		{"Color with pattern space", []step{
			func(c *Canvas) error { return c.ColorSpacePattern("f") },
		}, func(c *Canvas) error { return c.Color("f", 0) }},
		{"Pattern without pattern space", nil,
			func(c *Canvas) error { return c.Pattern("f", resource.Handle{}) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newCanvas(t, pdfgen.V1_7)
			for _, s := range tc.setup {
				must(t, s(c))
			}
			before := string(c.Content())
			err := tc.call(c)
			if !errors.Is(err, pdfgen.ErrInvalidOperationOrder) {
				t.Errorf("expected ErrInvalidOperationOrder, got %v", err)
			}
			if after := string(c.Content()); after != before {
				t.Errorf("content changed by failed call: %q", after[len(before):])
			}
		})
	}
}

func TestInvalidArguments(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name string
		call func(c *Canvas) error
	}{
		{"NaN coordinate", func(c *Canvas) error { return c.MoveTo(nan, 0) }},
		{"infinite matrix", func(c *Canvas) error { return c.Transform(1, 0, 0, math.Inf(1), 0, 0) }},
		{"negative line width", func(c *Canvas) error { return c.LineWidth(-1) }},
		{"small miter limit", func(c *Canvas) error { return c.LineMiterLimit(.5) }},
		{"negative dash", func(c *Canvas) error { return c.LineDash([]float64{1, -1}, 0) }},
		{"zero dash", func(c *Canvas) error { return c.LineDash([]float64{0, 0}, 0) }},
		{"negative dash phase", func(c *Canvas) error { return c.LineDash([]float64{1}, -1) }},
		{"line cap", func(c *Canvas) error { return c.LineCap(3) }},
		{"line join", func(c *Canvas) error { return c.LineJoin(7) }},
		{"rendering mode", func(c *Canvas) error { return c.TextRenderingMode("ff") }},
		{"alpha range", func(c *Canvas) error { return c.Alpha("f", 1.5) }},
		{"alpha target", func(c *Canvas) error { return c.Alpha("x", .5) }},
		{"color target", func(c *Canvas) error { return c.Color("fill", 0) }},
		{"NaN color", func(c *Canvas) error { return c.Color("f", nan) }},
		{"horizontal scaling", func(c *Canvas) error { return c.TextHorizontalScaling(0) }},
		{"negative radius", func(c *Canvas) error { return c.Circle(0, 0, -1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newCanvas(t, pdfgen.V1_7)
			err := tc.call(c)
			if !errors.Is(err, pdfgen.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if len(c.Content()) > 0 {
				t.Errorf("content written by failed call: %q", c.Content())
			}
		})
	}

	for _, cmd := range []string{"", "x", "f S", "W W", "n f"} {
		c, _ := newCanvas(t, pdfgen.V1_7)
		must(t, c.Rectangle(0, 0, 1, 1))
		err := c.PathPaint(cmd)
		if !errors.Is(err, pdfgen.ErrInvalidArgument) {
			t.Errorf("PathPaint(%q): expected ErrInvalidArgument, got %v", cmd, err)
		}
	}
}

func TestClip(t *testing.T) {
	c, _ := newCanvas(t, pdfgen.V1_7)
	must(t, c.Rectangle(0, 0, 10, 10))
	must(t, c.PathPaint("W n"))
	must(t, c.Rectangle(1, 1, 2, 2))
	must(t, c.PathPaint("W*"))
	must(t, c.PathPaint("f*"))
	must(t, c.Close())

	want := "0 0 10 10 re\nW\nn\n1 1 2 2 re\nW*\nf*\n"
	if d := cmp.Diff(want, string(c.Content())); d != "" {
		t.Error(d)
	}
}

func TestClose(t *testing.T) {
	c, _ := newCanvas(t, pdfgen.V1_7)
	must(t, c.StateSave())
	if err := c.Close(); !errors.Is(err, pdfgen.ErrUnbalancedStateStack) {
		t.Errorf("expected ErrUnbalancedStateStack, got %v", err)
	}
	must(t, c.StateRestore())
	must(t, c.TextStart(0, 0))
	if err := c.Close(); !errors.Is(err, pdfgen.ErrInvalidOperationOrder) {
		t.Errorf("expected ErrInvalidOperationOrder, got %v", err)
	}
	must(t, c.TextEnd())
	must(t, c.Close())
	if !c.IsClosed() {
		t.Error("canvas not closed")
	}

	calls := []func() error{
		c.Close,
		c.StateSave,
		func() error { return c.MoveTo(0, 0) },
		func() error { return c.Color("f", 0) },
		func() error { return c.TextStart(0, 0) },
		func() error { return c.TextAt(0, 0, "x") },
		func() error { return c.Alpha("f", .5) },
		func() error { return c.LineWidth(-1) },
		func() error { return c.Image(resource.Handle{}, 0, 0) },
	}
	for i, call := range calls {
		if err := call(); !errors.Is(err, pdfgen.ErrCanvasClosed) {
			t.Errorf("%d: expected ErrCanvasClosed, got %v", i, err)
		}
	}
}

func TestCircle(t *testing.T) {
	c, _ := newCanvas(t, pdfgen.V1_7)
	must(t, c.Circle(10, 10, 5))
	must(t, c.PathPaint("f"))

	lines := strings.Split(strings.TrimSpace(string(c.Content())), "\n")
	want := []string{"15 10 m", "c", "c", "c", "c", "h", "f"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), lines)
	}
	if lines[0] != want[0] {
		t.Errorf("wrong start: %q", lines[0])
	}
	if !strings.HasSuffix(lines[4], " 15 10 c") {
		t.Errorf("circle does not end at the start point: %q", lines[4])
	}
	for i := 1; i < len(want); i++ {
		if !strings.HasSuffix(lines[i], want[i]) {
			t.Errorf("line %d: expected operator %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestArcTo(t *testing.T) {
	c, _ := newCanvas(t, pdfgen.V1_7)
	must(t, c.MoveTo(0, 0))
	must(t, c.ArcTo(2, 0, 1, 1, 0, false, true))
	must(t, c.PathPaint("S"))

	lines := strings.Split(strings.TrimSpace(string(c.Content())), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected a half circle in two segments, got %q", lines)
	}
	if !strings.HasSuffix(lines[1], " 1 -1 c") {
		t.Errorf("half circle does not pass through (1, -1): %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], " 2 0 c") {
		t.Errorf("arc does not end at (2, 0): %q", lines[2])
	}
}

func TestArc(t *testing.T) {
	c, _ := newCanvas(t, pdfgen.V1_7)
	must(t, c.Arc(0, 0, 2, 1, 0, math.Pi/2))
	must(t, c.PathPaint("S"))
	want := "2 0 m\n2 .552285 1.104569 1 0 1 c\nS\n"
	if d := cmp.Diff(want, string(c.Content())); d != "" {
		t.Error(d)
	}
}
