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
	"encoding/binary"
	"math"
	"slices"
	"sync"
	"time"

	"seehuhn.de/go/icc"
)

// SRGB returns an ICC-based color space using the built-in sRGB profile.
func SRGB() *SpaceICCBased {
	s, err := ICCBased(slices.Clone(sRGBProfile()))
	if err != nil {
		panic(err)
	}
	return s
}

// sRGBProfile returns an ICC version 2 display profile for the sRGB
// color space.  The primaries are adapted to the D50 profile connection
// space, and the tone curves are sampled from the sRGB transfer function.
var sRGBProfile = sync.OnceValue(func() []byte {
	p := &icc.Profile{
		Version:         icc.Version2_1_0,
		Class:           icc.DisplayDeviceProfile,
		ColorSpace:      icc.RGBSpace,
		PCS:             icc.PCSXYZSpace,
		CreationDate:    time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		RenderingIntent: icc.Perceptual,
		TagData: map[icc.TagType][]byte{
			icc.ProfileDescription: iccDesc("sRGB"),
			icc.Copyright:          iccText("No copyright, use freely"),
			iccTag("wtpt"):         iccXYZ(0.9642, 1.0, 0.8249),
			iccTag("rXYZ"):         iccXYZ(0.4361, 0.2225, 0.0139),
			iccTag("gXYZ"):         iccXYZ(0.3851, 0.7169, 0.0971),
			iccTag("bXYZ"):         iccXYZ(0.1431, 0.0606, 0.7141),
		},
	}
	trc := iccCurve(1024, srgbToLinear)
	for _, name := range []string{"rTRC", "gTRC", "bTRC"} {
		p.TagData[iccTag(name)] = trc
	}
	return p.Encode()
})

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func iccTag(sig string) icc.TagType {
	return icc.TagType(binary.BigEndian.Uint32([]byte(sig)))
}

// iccXYZ encodes an XYZType tag holding a single s15Fixed16 triple.
func iccXYZ(x, y, z float64) []byte {
	buf := make([]byte, 20)
	copy(buf, "XYZ ")
	for i, v := range []float64{x, y, z} {
		binary.BigEndian.PutUint32(buf[8+4*i:], uint32(int32(math.Round(v*65536))))
	}
	return buf
}

// iccCurve encodes a curveType tag with n samples of f on [0, 1].
func iccCurve(n int, f func(float64) float64) []byte {
	buf := make([]byte, 12+2*n)
	copy(buf, "curv")
	binary.BigEndian.PutUint32(buf[8:], uint32(n))
	for i := range n {
		y := f(float64(i) / float64(n-1))
		binary.BigEndian.PutUint16(buf[12+2*i:], uint16(math.Round(y*65535)))
	}
	return buf
}

func iccText(s string) []byte {
	buf := make([]byte, 8+len(s)+1)
	copy(buf, "text")
	copy(buf[8:], s)
	return buf
}

// iccDesc encodes a version 2 textDescriptionType tag with an ASCII
// description and empty Unicode and ScriptCode parts.
func iccDesc(s string) []byte {
	n := len(s) + 1
	buf := make([]byte, 12+n+4+4+2+1+67)
	copy(buf, "desc")
	binary.BigEndian.PutUint32(buf[8:], uint32(n))
	copy(buf[12:], s)
	return buf
}
