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
	"errors"
	"fmt"

	"seehuhn.de/go/icc"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// SpaceICCBased is a color space defined by an embedded ICC profile.
type SpaceICCBased struct {
	N      int       // number of color components
	Ranges []float64 // [min0 max0 min1 max1 ...]

	// Alternate is used by viewers which cannot read the profile.
	// The zero handle means no alternate.
	Alternate resource.Handle

	profile []byte
}

// ICCBased wraps an ICC profile as a PDF color space.  The profile header
// determines the number of components and their ranges.
func ICCBased(profile []byte) (*SpaceICCBased, error) {
	if len(profile) == 0 {
		return nil, errors.New("ICCBased: empty profile")
	}
	p, err := icc.Decode(profile)
	if err != nil {
		return nil, fmt.Errorf("ICCBased: %w", err)
	}

	var ranges []float64
	switch p.ColorSpace {
	case icc.GraySpace:
		ranges = []float64{0, 1}
	case icc.RGBSpace:
		ranges = []float64{0, 1, 0, 1, 0, 1}
	case icc.CMYKSpace:
		ranges = []float64{0, 1, 0, 1, 0, 1, 0, 1}
	case icc.CIELabSpace:
		ranges = []float64{0, 100, -128, 127, -128, 127}
	default:
		return nil, fmt.Errorf("ICCBased: profile color space %v not usable in PDF", p.ColorSpace)
	}
	if n := p.ColorSpace.NumComponents(); 2*n != len(ranges) {
		return nil, fmt.Errorf("ICCBased: profile has %d components", n)
	}

	return &SpaceICCBased{
		N:       len(ranges) / 2,
		Ranges:  ranges,
		profile: profile,
	}, nil
}

// Family implements the [Space] interface.
func (s *SpaceICCBased) Family() pdfgen.Name {
	return FamilyICCBased
}

// Channels implements the [Space] interface.
func (s *SpaceICCBased) Channels() int {
	return s.N
}

// MinVersion implements the [Space] interface.
func (s *SpaceICCBased) MinVersion() pdfgen.Version {
	return pdfgen.V1_3
}

// Embed implements the [resource.Resource] interface.
func (s *SpaceICCBased) Embed(e *resource.EmbedHelper) error {
	w := e.Out()
	if err := pdfgen.CheckVersion(w.Version, "ICCBased color space", pdfgen.V1_3); err != nil {
		return err
	}

	dict := pdfgen.Dict{
		"N": pdfgen.Integer(s.N),
	}
	if !isUnitRanges(s.Ranges) {
		dict["Range"] = pdfgen.Reals(s.Ranges...)
	}
	if !s.Alternate.IsZero() {
		alt, err := e.Object(s.Alternate)
		if err != nil {
			return err
		}
		dict["Alternate"] = alt
	}

	sRef := e.Alloc()
	err := w.Put(e.Ref(), pdfgen.Array{FamilyICCBased, sRef})
	if err != nil {
		return err
	}
	return w.PutStream(sRef, dict, s.profile, true)
}

func isUnitRanges(ranges []float64) bool {
	for i, x := range ranges {
		if x != float64(i%2) {
			return false
		}
	}
	return true
}
