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

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// == Indexed ================================================================

// SpaceIndexed represents an indexed color space.
type SpaceIndexed struct {
	NumCol     int
	Base       Space
	BaseHandle resource.Handle

	lookup pdfgen.String
}

// Indexed returns a new indexed color space.
//
// The palette contains the color components of all colors, in the base
// color space, as integers in the range 0 to 255.  The number of colors
// must be in the range from 1 to 256 (both inclusive).
func Indexed(base Space, baseHandle resource.Handle, palette []int) (*SpaceIndexed, error) {
	switch base.Family() {
	case FamilyPattern, FamilyIndexed:
		return nil, fmt.Errorf("Indexed: invalid base color space %s", base.Family())
	}
	n := base.Channels()
	if len(palette) == 0 || len(palette)%n != 0 {
		return nil, fmt.Errorf("Indexed: palette length %d is not a multiple of %d",
			len(palette), n)
	}
	numCol := len(palette) / n
	if numCol > 256 {
		return nil, fmt.Errorf("Indexed: invalid number of colors: %d", numCol)
	}

	lookup := make(pdfgen.String, len(palette))
	for i, x := range palette {
		if x < 0 || x > 255 {
			return nil, fmt.Errorf("Indexed: palette entry %d out of range", x)
		}
		lookup[i] = byte(x)
	}

	return &SpaceIndexed{
		NumCol:     numCol,
		Base:       base,
		BaseHandle: baseHandle,
		lookup:     lookup,
	}, nil
}

// Family implements the [Space] interface.
func (s *SpaceIndexed) Family() pdfgen.Name {
	return FamilyIndexed
}

// Channels implements the [Space] interface.
func (s *SpaceIndexed) Channels() int {
	return 1
}

// MinVersion implements the [Space] interface.
func (s *SpaceIndexed) MinVersion() pdfgen.Version {
	return max(pdfgen.V1_1, s.Base.MinVersion())
}

// Embed implements the [resource.Resource] interface.
func (s *SpaceIndexed) Embed(e *resource.EmbedHelper) error {
	base, err := e.Object(s.BaseHandle)
	if err != nil {
		return err
	}

	data := pdfgen.Array{
		FamilyIndexed,
		base,
		pdfgen.Integer(s.NumCol - 1),
		s.lookup,
	}
	return e.Out().Put(e.Ref(), data)
}
