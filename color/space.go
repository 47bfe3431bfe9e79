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

// Package color implements PDF color spaces.
//
// Color spaces are described in section 8.6 of ISO 32000-2:2020.
package color

import (
	"strings"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// Color space families.
const (
	FamilyDeviceGray pdfgen.Name = "DeviceGray"
	FamilyDeviceRGB  pdfgen.Name = "DeviceRGB"
	FamilyDeviceCMYK pdfgen.Name = "DeviceCMYK"
	FamilyCalGray    pdfgen.Name = "CalGray"
	FamilyCalRGB     pdfgen.Name = "CalRGB"
	FamilyLab        pdfgen.Name = "Lab"
	FamilyICCBased   pdfgen.Name = "ICCBased"
	FamilyIndexed    pdfgen.Name = "Indexed"
	FamilyPattern    pdfgen.Name = "Pattern"
)

// Space represents a PDF color space.
type Space interface {
	resource.Resource

	// Family returns the family of the color space.
	Family() pdfgen.Name

	// Channels returns the number of operands the color setting operators
	// take in this color space.
	Channels() int

	// MinVersion returns the earliest PDF version supporting the space.
	MinVersion() pdfgen.Version
}

// IsDevice reports whether the color space is one of the three device color
// spaces.  For these spaces, the operators g/G, rg/RG and k/K can be used.
func IsDevice(s Space) bool {
	_, ok := s.(SpaceDevice)
	return ok
}

// UsesSCN reports whether the "scn" operator (instead of "sc") must be used
// to set colors in the given color space.
func UsesSCN(s Space) bool {
	switch s.Family() {
	case FamilyICCBased, FamilyPattern:
		return true
	}
	return false
}

// SpaceDevice is one of the device color spaces DeviceGray, DeviceRGB
// and DeviceCMYK.
type SpaceDevice struct {
	family pdfgen.Name
	n      int
}

// The device color spaces.
var (
	DeviceGray = SpaceDevice{FamilyDeviceGray, 1}
	DeviceRGB  = SpaceDevice{FamilyDeviceRGB, 3}
	DeviceCMYK = SpaceDevice{FamilyDeviceCMYK, 4}
)

// Family implements the [Space] interface.
func (s SpaceDevice) Family() pdfgen.Name {
	return s.family
}

// Channels implements the [Space] interface.
func (s SpaceDevice) Channels() int {
	return s.n
}

// MinVersion implements the [Space] interface.
func (s SpaceDevice) MinVersion() pdfgen.Version {
	return pdfgen.V1_0
}

// DirectObject implements the [resource.Direct] interface.
// Device color spaces are referred to by name.
func (s SpaceDevice) DirectObject() pdfgen.Object {
	return s.family
}

// Embed implements the [resource.Resource] interface.
// Device color spaces are never embedded.
func (s SpaceDevice) Embed(*resource.EmbedHelper) error {
	return nil
}

// Operator returns the operator which sets a color in this device color
// space, for filling or stroking.
func (s SpaceDevice) Operator(stroke bool) string {
	var op string
	switch s.family {
	case FamilyDeviceGray:
		op = "g"
	case FamilyDeviceRGB:
		op = "rg"
	case FamilyDeviceCMYK:
		op = "k"
	}
	if stroke {
		op = strings.ToUpper(op)
	}
	return op
}

// SpacePattern is a pattern color space.  If Base is nil, the space is used
// for colored patterns and can be selected by name.  Otherwise, the space is
// used for uncolored patterns, and color values are given in the base space.
type SpacePattern struct {
	Base       Space
	BaseHandle resource.Handle
}

// Family implements the [Space] interface.
func (s *SpacePattern) Family() pdfgen.Name {
	return FamilyPattern
}

// Channels implements the [Space] interface.
func (s *SpacePattern) Channels() int {
	if s.Base == nil {
		return 0
	}
	return s.Base.Channels()
}

// MinVersion implements the [Space] interface.
func (s *SpacePattern) MinVersion() pdfgen.Version {
	return pdfgen.V1_2
}

// Embed implements the [resource.Resource] interface.
func (s *SpacePattern) Embed(e *resource.EmbedHelper) error {
	if s.Base == nil {
		return e.Out().Put(e.Ref(), pdfgen.Array{FamilyPattern})
	}
	base, err := e.Object(s.BaseHandle)
	if err != nil {
		return err
	}
	return e.Out().Put(e.Ref(), pdfgen.Array{FamilyPattern, base})
}
