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
	"bytes"
	"fmt"
	"math/bits"
)

// writeXRefTable writes a classic cross-reference table, followed by the
// trailer dictionary.  Objects which were allocated but never written are
// marked as free.
func (pdf *Writer) writeXRefTable(xRefDict Dict) error {
	xRefDict["Size"] = Integer(pdf.nextRef)

	_, err := fmt.Fprintf(pdf.w, "xref\n0 %d\n", pdf.nextRef)
	if err != nil {
		return err
	}
	for i := uint32(0); i < pdf.nextRef; i++ {
		pos, ok := pdf.xref[i]
		if ok {
			_, err = fmt.Fprintf(pdf.w, "%010d %05d n\r\n", pos, 0)
		} else {
			// free object
			_, err = pdf.w.Write([]byte("0000000000 65535 f\r\n"))
		}
		if err != nil {
			return err
		}
	}

	_, err = pdf.w.Write([]byte("trailer\n"))
	if err != nil {
		return err
	}
	return xRefDict.PDF(pdf.w)
}

// writeXRefStream writes a cross-reference stream, which also takes the
// role of the trailer dictionary.  The stream object itself is included
// in the cross-reference data.  The return value is the byte offset of the
// stream object.
func (pdf *Writer) writeXRefStream(xRefDict Dict) (int64, error) {
	ref := pdf.Alloc()
	xRefPos := pdf.w.pos

	xRefDict["Type"] = Name("XRef")
	xRefDict["Size"] = Integer(pdf.nextRef)

	maxPos := xRefPos
	for _, pos := range pdf.xref {
		maxPos = max(maxPos, pos)
	}
	w2 := max((bits.Len64(uint64(maxPos))+7)/8, 1)
	const w3 = 2
	xRefDict["W"] = Array{Integer(1), Integer(w2), Integer(w3)}

	data := &bytes.Buffer{}
	for i := uint32(0); i < pdf.nextRef; i++ {
		pos, ok := pdf.xref[i]
		switch {
		case i == ref.Number():
			data.WriteByte(1)
			encodeInt(data, uint64(xRefPos), w2)
			encodeInt(data, 0, w3)
		case ok:
			data.WriteByte(1)
			encodeInt(data, uint64(pos), w2)
			encodeInt(data, 0, w3)
		default:
			data.WriteByte(0)
			encodeInt(data, 0, w2)
			encodeInt(data, 0xFFFF, w3)
		}
	}

	err := pdf.PutStream(ref, xRefDict, data.Bytes(), true)
	return xRefPos, err
}

func encodeInt(data *bytes.Buffer, x uint64, w int) {
	for i := w - 1; i >= 0; i-- {
		data.WriteByte(byte(x >> (i * 8)))
	}
}
