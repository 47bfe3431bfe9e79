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

package pdfgen

import (
	"errors"
	"fmt"
	"strings"
)

// Version is a version of the PDF format.
type Version int

// The PDF versions known to this module.
const (
	_ Version = iota
	V1_0
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
)

// The range of versions accepted by [NewWriter].
const (
	MinVersion = V1_2
	MaxVersion = V1_7
)

var errVersion = errors.New("unsupported PDF version")

// ParseVersion converts a version string like "1.4" into a [Version].
func ParseVersion(s string) (Version, error) {
	minor, ok := strings.CutPrefix(s, "1.")
	if !ok || len(minor) != 1 || minor[0] < '0' || minor[0] > '7' {
		return 0, errVersion
	}
	return V1_0 + Version(minor[0]-'0'), nil
}

// Minor returns the minor version number, e.g. 7 for PDF 1.7.
func (ver Version) Minor() int {
	return int(ver - V1_0)
}

// ToString formats ver as it appears in the file header, e.g. "1.7".
func (ver Version) ToString() (string, error) {
	if ver < V1_0 || ver > V1_7 {
		return "", errVersion
	}
	return fmt.Sprintf("1.%d", ver.Minor()), nil
}

func (ver Version) String() string {
	if s, err := ver.ToString(); err == nil {
		return s
	}
	return fmt.Sprintf("pdfgen.Version(%d)", int(ver))
}
