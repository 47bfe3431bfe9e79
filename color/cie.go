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

package color

import (
	"fmt"
	"slices"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// PDF 2.0 sections: 8.6.5.2 8.6.5.3 8.6.5.4

// CIEPoints holds the white and black points shared by the CIE-based
// color spaces.  Both are given as CIE 1931 XYZ coordinates.
type CIEPoints struct {
	// WhitePoint must have positive entries and Y=1.
	WhitePoint []float64

	// BlackPoint has non-negative entries.  Nil means [0 0 0].
	BlackPoint []float64
}

func newCIEPoints(family pdfgen.Name, white, black []float64) (CIEPoints, error) {
	if !isPosVec3(white) || white[1] != 1 {
		return CIEPoints{}, fmt.Errorf("%s: white point %v is not of the form [X 1 Z]", family, white)
	}
	if black == nil {
		black = []float64{0, 0, 0}
	} else if !isNonNegVec3(black) {
		return CIEPoints{}, fmt.Errorf("%s: black point %v has negative entries", family, black)
	}
	return CIEPoints{WhitePoint: white, BlackPoint: black}, nil
}

// dict returns the parameter dictionary with the points filled in.
func (p CIEPoints) dict() pdfgen.Dict {
	dict := pdfgen.Dict{"WhitePoint": pdfgen.Reals(p.WhitePoint...)}
	if !isConst(p.BlackPoint, 0) {
		dict["BlackPoint"] = pdfgen.Reals(p.BlackPoint...)
	}
	return dict
}

// cieSpace implements the parts of the [Space] interface which are common
// to all CIE-based spaces.
type cieSpace struct {
	CIEPoints
	family   pdfgen.Name
	channels int
}

// Family implements the [Space] interface.
func (s *cieSpace) Family() pdfgen.Name {
	return s.family
}

// Channels implements the [Space] interface.
func (s *cieSpace) Channels() int {
	return s.channels
}

// MinVersion implements the [Space] interface.
func (s *cieSpace) MinVersion() pdfgen.Version {
	return pdfgen.V1_1
}

func (s *cieSpace) put(e *resource.EmbedHelper, dict pdfgen.Dict) error {
	return e.Out().Put(e.Ref(), pdfgen.Array{s.family, dict})
}

// SpaceCalGray is a CalGray color space.
type SpaceCalGray struct {
	cieSpace
	Gamma float64
}

// CalGray returns a CalGray color space.  Gamma must be positive.
func CalGray(whitePoint, blackPoint []float64, gamma float64) (*SpaceCalGray, error) {
	points, err := newCIEPoints(FamilyCalGray, whitePoint, blackPoint)
	if err != nil {
		return nil, err
	}
	if gamma <= 0 {
		return nil, fmt.Errorf("CalGray: gamma %g is not positive", gamma)
	}
	return &SpaceCalGray{
		cieSpace: cieSpace{CIEPoints: points, family: FamilyCalGray, channels: 1},
		Gamma:    gamma,
	}, nil
}

// Embed implements the [resource.Resource] interface.
func (s *SpaceCalGray) Embed(e *resource.EmbedHelper) error {
	dict := s.dict()
	if s.Gamma != 1 {
		dict["Gamma"] = pdfgen.Real(s.Gamma)
	}
	return s.put(e, dict)
}

// SpaceCalRGB is a CalRGB color space.
type SpaceCalRGB struct {
	cieSpace
	Gamma  []float64 // one value per component
	Matrix []float64 // 3x3, row by row
}

// CalRGB returns a CalRGB color space.  Nil gamma values default to
// [1 1 1], a nil matrix to the identity.
func CalRGB(whitePoint, blackPoint, gamma, matrix []float64) (*SpaceCalRGB, error) {
	points, err := newCIEPoints(FamilyCalRGB, whitePoint, blackPoint)
	if err != nil {
		return nil, err
	}
	switch {
	case gamma == nil:
		gamma = []float64{1, 1, 1}
	case !isPosVec3(gamma):
		return nil, fmt.Errorf("CalRGB: gamma %v must be three positive numbers", gamma)
	}
	switch {
	case matrix == nil:
		matrix = []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	case len(matrix) != 9:
		return nil, fmt.Errorf("CalRGB: matrix needs 9 entries, got %d", len(matrix))
	}
	return &SpaceCalRGB{
		cieSpace: cieSpace{CIEPoints: points, family: FamilyCalRGB, channels: 3},
		Gamma:    gamma,
		Matrix:   matrix,
	}, nil
}

// Embed implements the [resource.Resource] interface.
func (s *SpaceCalRGB) Embed(e *resource.EmbedHelper) error {
	dict := s.dict()
	if !isConst(s.Gamma, 1) {
		dict["Gamma"] = pdfgen.Reals(s.Gamma...)
	}
	if !isIdentity3(s.Matrix) {
		dict["Matrix"] = pdfgen.Reals(s.Matrix...)
	}
	return s.put(e, dict)
}

var defaultLabRange = []float64{-100, 100, -100, 100}

// SpaceLab is a CIE 1976 L*a*b* color space.
type SpaceLab struct {
	cieSpace
	Ranges []float64 // amin amax bmin bmax
}

// Lab returns a CIE 1976 L*a*b* color space.  Nil ranges default to
// [-100 100 -100 100].
func Lab(whitePoint, blackPoint, ranges []float64) (*SpaceLab, error) {
	points, err := newCIEPoints(FamilyLab, whitePoint, blackPoint)
	if err != nil {
		return nil, err
	}
	switch {
	case ranges == nil:
		ranges = defaultLabRange
	case len(ranges) != 4 || ranges[0] > ranges[1] || ranges[2] > ranges[3]:
		return nil, fmt.Errorf("Lab: invalid ranges %v", ranges)
	}
	return &SpaceLab{
		cieSpace: cieSpace{CIEPoints: points, family: FamilyLab, channels: 3},
		Ranges:   ranges,
	}, nil
}

// Embed implements the [resource.Resource] interface.
func (s *SpaceLab) Embed(e *resource.EmbedHelper) error {
	dict := s.dict()
	if !slices.Equal(s.Ranges, defaultLabRange) {
		dict["Range"] = pdfgen.Reals(s.Ranges...)
	}
	return s.put(e, dict)
}

func isPosVec3(x []float64) bool {
	return len(x) == 3 && x[0] > 0 && x[1] > 0 && x[2] > 0
}

func isNonNegVec3(x []float64) bool {
	return len(x) == 3 && x[0] >= 0 && x[1] >= 0 && x[2] >= 0
}

func isConst(x []float64, c float64) bool {
	for _, xi := range x {
		if xi != c {
			return false
		}
	}
	return true
}

func isIdentity3(m []float64) bool {
	for i, mi := range m {
		diag := i%4 == 0
		if diag && mi != 1 || !diag && mi != 0 {
			return false
		}
	}
	return true
}
