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
	"compress/zlib"
	"io"

	"github.com/hhrutter/lzw"
)

// Filter represents a PDF stream filter.
//
// Filters are described in section 7.4 of ISO 32000-2:2020.
type Filter interface {
	// Info returns the name of the filter and the decode parameters
	// to be stored in the stream dictionary.
	Info() (Name, Dict)

	// Encode wraps w so that data written to the returned writer
	// is encoded by the filter.
	Encode(w io.Writer) (io.WriteCloser, error)
}

// FilterFlate is the FlateDecode filter.
// This filter is available for PDF 1.2 and newer.
type FilterFlate struct{}

// Info implements the [Filter] interface.
func (FilterFlate) Info() (Name, Dict) {
	return "FlateDecode", nil
}

// Encode implements the [Filter] interface.
func (FilterFlate) Encode(w io.Writer) (io.WriteCloser, error) {
	return zlib.NewWriterLevel(w, zlib.BestCompression)
}

// FilterLZW is the LZWDecode filter.
type FilterLZW struct {
	// EarlyChange controls when the code length increases.
	// The PDF default is true.
	EarlyChange bool
}

// Info implements the [Filter] interface.
func (f FilterLZW) Info() (Name, Dict) {
	if f.EarlyChange {
		return "LZWDecode", nil
	}
	return "LZWDecode", Dict{"EarlyChange": Integer(0)}
}

// Encode implements the [Filter] interface.
func (f FilterLZW) Encode(w io.Writer) (io.WriteCloser, error) {
	return lzw.NewWriter(w, f.EarlyChange), nil
}

// FilterFor returns the default filter for the given PDF version:
// FlateDecode for PDF 1.2 and newer, LZWDecode otherwise.
func FilterFor(ver Version) Filter {
	if ver >= V1_2 {
		return FilterFlate{}
	}
	return FilterLZW{EarlyChange: true}
}

// encodeBytes applies the filter to data.
func encodeBytes(f Filter, data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w, err := f.Encode(buf)
	if err != nil {
		return nil, err
	}
	_, err = w.Write(data)
	if err != nil {
		return nil, err
	}
	err = w.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
