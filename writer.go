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
	"crypto/md5"
	"fmt"
	"hash"
	"io"
)

// WriterOptions control how a PDF file is written.
type WriterOptions struct {
	// XRefStream selects a cross-reference stream instead of a
	// cross-reference table.  This requires PDF 1.5 or newer.
	XRefStream bool

	// Compress, if not nil, is the filter used for streams which are
	// written with compression enabled.
	Compress Filter
}

// Writer represents a PDF file open for writing.
//
// The Writer never seeks: the offsets stored in the cross-reference
// table are obtained by counting the bytes written so far.
type Writer struct {
	Version Version

	w       *posWriter
	xref    map[uint32]int64
	nextRef uint32
	opt     WriterOptions
	closed  bool
}

// NewWriter prepares a PDF file for writing.
// The PDF header is written to w immediately.
func NewWriter(w io.Writer, ver Version, opt *WriterOptions) (*Writer, error) {
	if ver < MinVersion || ver > MaxVersion {
		return nil, Errorf(ErrInvalidSpecification, "NewWriter",
			"PDF version %s not supported", ver)
	}
	if opt == nil {
		opt = &WriterOptions{}
	}
	if opt.XRefStream {
		err := CheckVersion(ver, "cross-reference streams", V1_5)
		if err != nil {
			return nil, err
		}
	}

	pdf := &Writer{
		Version: ver,

		w:       &posWriter{w: w, hash: md5.New()},
		xref:    make(map[uint32]int64),
		nextRef: 1,
		opt:     *opt,
	}

	_, err := fmt.Fprintf(pdf.w, "%%PDF-1.%d\n%%\x80\x80\x80\x80\n", ver.Minor())
	if err != nil {
		return nil, Wrap(ErrIOFailure, "NewWriter", err)
	}

	return pdf, nil
}

// Alloc allocates an object number for an indirect object.
func (pdf *Writer) Alloc() Reference {
	res := NewReference(pdf.nextRef, 0)
	pdf.nextRef++
	return res
}

// Pos returns the number of bytes written so far.
func (pdf *Writer) Pos() int64 {
	return pdf.w.pos
}

// Offset returns the byte offset of the given object in the file,
// if the object has already been written.
func (pdf *Writer) Offset(ref Reference) (int64, bool) {
	pos, ok := pdf.xref[ref.Number()]
	return pos, ok
}

// Put writes an object to the PDF file, as an indirect object.
// The reference must have been obtained from [Writer.Alloc], and each
// reference can only be written once.
func (pdf *Writer) Put(ref Reference, obj Object) error {
	if pdf.closed {
		return Errorf(ErrInvalidOperationOrder, "Put", "writer is closed")
	}
	if ref.Number() == 0 || ref.Number() >= pdf.nextRef {
		return Errorf(ErrInvalidArgument, "Put", "reference %s was not allocated", ref)
	}
	if _, seen := pdf.xref[ref.Number()]; seen {
		return Errorf(ErrInvalidOperationOrder, "Put", "object %s already written", ref)
	}

	pos := pdf.w.pos
	_, err := fmt.Fprintf(pdf.w, "%d %d obj\n", ref.Number(), ref.Generation())
	if err != nil {
		return Wrap(ErrIOFailure, "Put", err)
	}
	err = writeObject(pdf.w, obj)
	if err != nil {
		if pdf.w.err != nil {
			return Wrap(ErrIOFailure, "Put", err)
		}
		return Wrap(ErrInvalidArgument, "Put", err)
	}
	_, err = pdf.w.Write([]byte("\nendobj\n"))
	if err != nil {
		return Wrap(ErrIOFailure, "Put", err)
	}

	pdf.xref[ref.Number()] = pos
	return nil
}

// PutStream writes a stream object to the PDF file.  The /Length entry is
// set to the exact number of bytes stored.  If compress is true and the
// writer was configured with a filter, the data is encoded before it is
// written and the /Filter entry is set.
func (pdf *Writer) PutStream(ref Reference, dict Dict, data []byte, compress bool) error {
	d := make(Dict, len(dict)+3)
	for k, v := range dict {
		d[k] = v
	}

	if compress && pdf.opt.Compress != nil {
		name, parms := pdf.opt.Compress.Info()
		enc, err := encodeBytes(pdf.opt.Compress, data)
		if err != nil {
			return Wrap(ErrIOFailure, "PutStream", err)
		}
		data = enc
		d["Filter"] = name
		if parms != nil {
			d["DecodeParms"] = parms
		}
	}
	d["Length"] = Integer(len(data))

	return pdf.Put(ref, &Stream{Dict: d, R: bytes.NewReader(data)})
}

// Close writes the cross-reference table (or stream) and the trailer.
// The trailer dictionary must contain the /Root entry.  /Size and
// /ID are filled in automatically.
func (pdf *Writer) Close(trailer Dict) error {
	if pdf.closed {
		return Errorf(ErrInvalidOperationOrder, "Close", "writer already closed")
	}
	if _, ok := trailer["Root"].(Reference); !ok {
		return Errorf(ErrInvalidArgument, "Close", "missing /Root in trailer")
	}

	xRefDict := Dict{}
	for k, v := range trailer {
		xRefDict[k] = v
	}
	id := String(pdf.w.hash.Sum(nil))
	xRefDict["ID"] = Array{id, id}

	var xRefPos int64
	var err error
	if pdf.opt.XRefStream {
		xRefPos, err = pdf.writeXRefStream(xRefDict)
	} else {
		xRefPos = pdf.w.pos
		err = pdf.writeXRefTable(xRefDict)
	}
	pdf.closed = true
	if err != nil {
		return Wrap(ErrIOFailure, "Close", err)
	}

	_, err = fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	if err != nil {
		return Wrap(ErrIOFailure, "Close", err)
	}
	return nil
}

// posWriter counts the bytes written and keeps a running hash of the
// file contents, which is used to generate the file identifier.
// After the first write error, all further writes fail.
type posWriter struct {
	w    io.Writer
	pos  int64
	hash hash.Hash
	err  error
}

func (w *posWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.hash.Write(p[:n])
	w.pos += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	w.err = err
	return n, err
}
