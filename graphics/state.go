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

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfgen/resource"
)

// State holds the graphics state parameters tracked by a [Canvas].
// A copy of the complete state is pushed by [Canvas.StateSave].
type State struct {
	// CTM is the "current transformation matrix", which maps positions from
	// user coordinates to the default coordinate system of the page.
	CTM matrix.Matrix

	Fill   Paint
	Stroke Paint

	LineWidth   float64
	LineCap     LineCapStyle
	LineJoin    LineJoinStyle
	MiterLimit  float64
	DashPattern []float64
	DashPhase   float64

	StrokeAlpha  float64
	FillAlpha    float64
	AlphaIsShape bool

	// Text state parameters.  These survive the end of a text object.
	Font              resource.Handle // zero until a font is selected
	FontSize          float64
	CharacterSpacing  float64
	WordSpacing       float64
	HorizontalScaling float64 // in percent
	Leading           float64
	TextRise          float64
	TextRenderingMode TextRenderingMode
}

// Paint describes the color used for either filling or stroking.
type Paint struct {
	// Space is the color space selected by the user.  If this is the zero
	// handle, one of the device color spaces is selected implicitly by
	// the number of color components given.
	Space resource.Handle

	// IsPattern is set if a pattern color space is active.
	IsPattern bool

	Color   []float64
	Pattern resource.Handle
}

// NewState returns the graphics state at the start of a content stream.
func NewState() State {
	return State{
		CTM:               matrix.Identity,
		Fill:              Paint{Color: []float64{0}},
		Stroke:            Paint{Color: []float64{0}},
		LineWidth:         1,
		LineCap:           LineCapButt,
		LineJoin:          LineJoinMiter,
		MiterLimit:        10,
		StrokeAlpha:       1,
		FillAlpha:         1,
		HorizontalScaling: 100,
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	res := s
	res.DashPattern = slices.Clone(s.DashPattern)
	res.Fill.Color = slices.Clone(s.Fill.Color)
	res.Stroke.Color = slices.Clone(s.Stroke.Color)
	return res
}

// LineCapStyle is the style of the end of a line.
type LineCapStyle uint8

// Possible values for LineCapStyle.
// See section 8.4.3.3 of ISO 32000-2:2020.
const (
	LineCapButt   LineCapStyle = 0
	LineCapRound  LineCapStyle = 1
	LineCapSquare LineCapStyle = 2
)

// LineJoinStyle is the style of the corner of a line.
type LineJoinStyle uint8

// Possible values for LineJoinStyle.
const (
	LineJoinMiter LineJoinStyle = 0
	LineJoinRound LineJoinStyle = 1
	LineJoinBevel LineJoinStyle = 2
)

// TextRenderingMode determines whether text is filled, stroked, or used
// as a clipping path.
type TextRenderingMode uint8

// Possible values for TextRenderingMode.
// See section 9.3.6 of ISO 32000-2:2020.
const (
	TextRenderingModeFill TextRenderingMode = iota
	TextRenderingModeStroke
	TextRenderingModeFillStroke
	TextRenderingModeInvisible
	TextRenderingModeFillClip
	TextRenderingModeStrokeClip
	TextRenderingModeFillStrokeClip
	TextRenderingModeClip
)

// ParseTextRenderingMode converts a rendering mode token to a
// TextRenderingMode.  Tokens are either the operand of the "Tr" operator
// ("0" to "7"), or a combination of the letters "f" (fill), "s" (stroke)
// and "c" (clip), or "i" for invisible text.
func ParseTextRenderingMode(token string) (TextRenderingMode, bool) {
	if len(token) == 1 && token[0] >= '0' && token[0] <= '7' {
		return TextRenderingMode(token[0] - '0'), true
	}
	if token == "i" {
		return TextRenderingModeInvisible, true
	}

	var fill, stroke, clip bool
	for _, c := range token {
		var flag *bool
		switch c {
		case 'f':
			flag = &fill
		case 's':
			flag = &stroke
		case 'c':
			flag = &clip
		default:
			return 0, false
		}
		if *flag {
			return 0, false
		}
		*flag = true
	}

	switch {
	case fill && stroke && clip:
		return TextRenderingModeFillStrokeClip, true
	case fill && stroke:
		return TextRenderingModeFillStroke, true
	case fill && clip:
		return TextRenderingModeFillClip, true
	case stroke && clip:
		return TextRenderingModeStrokeClip, true
	case fill:
		return TextRenderingModeFill, true
	case stroke:
		return TextRenderingModeStroke, true
	case clip:
		return TextRenderingModeClip, true
	}
	return 0, false
}
