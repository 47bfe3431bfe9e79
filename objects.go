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
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"golang.org/x/exp/maps"
	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/pdfgen/internal/float"
)

// PDF 2.0 sections: 7.3

// Object is implemented by the native PDF object types [Array], [Bool],
// [Dict], [Integer], [Name], [Real], [Reference], [*Stream] and [String].
// A nil Object is written as "null".
type Object interface {
	// PDF writes the object in PDF syntax.
	PDF(w io.Writer) error
}

// Bool is a PDF boolean.
type Bool bool

// PDF implements the [Object] interface.
func (x Bool) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatBool(bool(x)))
	return err
}

// Integer is a PDF integer.
type Integer int64

// PDF implements the [Object] interface.
func (x Integer) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

// Real is a PDF real number.  NaN and infinite values cannot be written.
type Real float64

// PDF implements the [Object] interface.
func (x Real) PDF(w io.Writer) error {
	if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
		return Errorf(ErrInvalidArgument, "", "cannot write %g to a PDF file", float64(x))
	}
	_, err := io.WriteString(w, float.Format(float64(x), float.Precision))
	return err
}

// Reals converts a list of numbers into a PDF array.
func Reals(xx ...float64) Array {
	res := make(Array, len(xx))
	for i, x := range xx {
		res[i] = Real(x)
	}
	return res
}

// String is a PDF string.  The bytes are written unchanged; their
// interpretation depends on where the string is used.
type String []byte

// PDF implements the [Object] interface.
//
// Strings with few special characters use the literal form (...), all
// other strings are written in hexadecimal.
func (x String) PDF(w io.Writer) error {
	parens := parensBalanced(x)
	escapes := 0
	for _, c := range x {
		if needsEscape(c, parens) {
			escapes++
		}
	}

	buf := &bytes.Buffer{}
	if 3*escapes > len(x) {
		fmt.Fprintf(buf, "<%x>", []byte(x))
	} else {
		buf.WriteByte('(')
		for _, c := range x {
			if !needsEscape(c, parens) {
				buf.WriteByte(c)
				continue
			}
			if esc, ok := stringEscapes[c]; ok {
				buf.WriteByte('\\')
				buf.WriteByte(esc)
			} else {
				fmt.Fprintf(buf, `\%03o`, c)
			}
		}
		buf.WriteByte(')')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

var stringEscapes = map[byte]byte{
	'\n': 'n', '\r': 'r', '\t': 't', '\b': 'b', '\f': 'f',
	'(': '(', ')': ')', '\\': '\\',
}

// parensBalanced reports whether the parentheses in s can be written
// without escaping.
func parensBalanced(s []byte) bool {
	depth := 0
	for _, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func needsEscape(c byte, parensOK bool) bool {
	return c < 32 || c == '\\' || !parensOK && (c == '(' || c == ')')
}

// TextString encodes s as a PDF text string.  The text is converted to
// NFC first.  Printable ASCII is kept as it is, anything else is stored
// as UTF-16BE with a byte order mark.
func TextString(s string) String {
	s = norm.NFC.String(s)

	plain := strings.IndexFunc(s, func(r rune) bool {
		return r >= 127 || r < 32 && r != '\n' && r != '\r' && r != '\t'
	}) < 0
	if plain {
		return String(s)
	}

	units := utf16.Encode([]rune(s))
	res := make(String, 2, 2+2*len(units))
	res[0], res[1] = 0xFE, 0xFF
	for _, u := range units {
		res = append(res, byte(u>>8), byte(u))
	}
	return res
}

// Date encodes t as a PDF date string, for example
// "D:20260301123045+02'00".
func Date(t time.Time) String {
	_, offset := t.Zone()
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	s := fmt.Sprintf("D:%s%c%02d'%02d",
		t.Format("20060102150405"), sign, offset/3600, offset/60%60)
	return String(s)
}

// Name is a PDF name.  The leading slash is not part of the value.
type Name string

// PDF implements the [Object] interface.
func (x Name) PDF(w io.Writer) error {
	buf := &bytes.Buffer{}
	buf.WriteByte('/')
	for i := 0; i < len(x); i++ {
		c := x[i]
		if c >= 0x21 && c <= 0x7e && c != '#' && strings.IndexByte("()<>[]{}/%", c) < 0 {
			buf.WriteByte(c)
		} else {
			fmt.Fprintf(buf, "#%02x", c)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Array is a PDF array.  Nil elements are written as "null".
type Array []Object

// PDF implements the [Object] interface.
func (x Array) PDF(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.str("[")
	for i, val := range x {
		if i > 0 {
			ew.str(" ")
		}
		ew.obj(val)
	}
	ew.str("]")
	return ew.err
}

// Dict is a PDF dictionary.  Entries with nil values are omitted.
type Dict map[Name]Object

// PDF implements the [Object] interface.
// Keys are written in sorted order, one entry per line.
func (x Dict) PDF(w io.Writer) error {
	if x == nil {
		_, err := io.WriteString(w, "null")
		return err
	}

	ew := &errWriter{w: w}
	ew.str("<<")
	keys := maps.Keys(x)
	slices.Sort(keys)
	for _, key := range keys {
		val := x[key]
		if val == nil {
			continue
		}
		ew.str("\n")
		ew.obj(key)
		ew.str(" ")
		ew.obj(val)
	}
	ew.str("\n>>")
	return ew.err
}

// Stream is a PDF stream.  The /Length entry of the dictionary must
// match the number of bytes read from R.  [Writer.PutStream] fills in the
// length automatically.
type Stream struct {
	Dict
	R io.Reader
}

// PDF implements the [Object] interface.
func (x *Stream) PDF(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.obj(x.Dict)
	ew.str("\nstream\n")
	if x.R != nil && ew.err == nil {
		_, ew.err = io.Copy(w, x.R)
	}
	ew.str("\nendstream")
	return ew.err
}

// Reference is a reference to an indirect object.  The lower 32 bits
// hold the object number, the next 16 bits the generation number.
type Reference uint64

// NewReference returns the reference for the given object and generation
// numbers.
func NewReference(number uint32, generation uint16) Reference {
	return Reference(uint64(number) | uint64(generation)<<32)
}

// Number returns the object number.
func (x Reference) Number() uint32 {
	return uint32(x)
}

// Generation returns the generation number.
func (x Reference) Generation() uint16 {
	return uint16(x >> 32)
}

func (x Reference) String() string {
	return fmt.Sprintf("%d %d R", x.Number(), x.Generation())
}

// PDF implements the [Object] interface.
func (x Reference) PDF(w io.Writer) error {
	if x>>48 != 0 || x.Number() == 0 {
		return fmt.Errorf("invalid reference: 0x%016x", uint64(x))
	}
	_, err := io.WriteString(w, x.String())
	return err
}

// errWriter keeps the first error of a sequence of writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) str(s string) {
	if ew.err == nil {
		_, ew.err = io.WriteString(ew.w, s)
	}
}

func (ew *errWriter) obj(obj Object) {
	if ew.err == nil {
		ew.err = writeObject(ew.w, obj)
	}
}

func writeObject(w io.Writer, obj Object) error {
	if obj == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	return obj.PDF(w)
}

// Format returns obj in PDF syntax, as it would appear in a PDF file.
// If obj cannot be written, the error message is returned in angle
// brackets.
func Format(obj Object) string {
	buf := &bytes.Buffer{}
	err := writeObject(buf, obj)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return buf.String()
}
