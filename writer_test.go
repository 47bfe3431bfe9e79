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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/hhrutter/lzw"
)

func writeMinimal(t *testing.T, out io.Writer, ver Version, opt *WriterOptions) *Writer {
	t.Helper()

	w, err := NewWriter(out, ver, opt)
	if err != nil {
		t.Fatal(err)
	}
	catRef := w.Alloc()
	pagesRef := w.Alloc()
	pageRef := w.Alloc()
	contentRef := w.Alloc()

	err = w.Put(catRef, Dict{"Type": Name("Catalog"), "Pages": pagesRef})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(pagesRef, Dict{
		"Type":  Name("Pages"),
		"Kids":  Array{pageRef},
		"Count": Integer(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(pageRef, Dict{
		"Type":     Name("Page"),
		"Parent":   pagesRef,
		"MediaBox": Array{Integer(0), Integer(0), Integer(200), Integer(200)},
		"Contents": contentRef,
	})
	if err != nil {
		t.Fatal(err)
	}
	err = w.PutStream(contentRef, nil, []byte("10 10 50 50 re\nf\n"), true)
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close(Dict{"Root": catRef})
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func startXRef(t *testing.T, data []byte) int64 {
	t.Helper()
	idx := bytes.LastIndex(data, []byte("startxref\n"))
	if idx < 0 {
		t.Fatal("startxref not found")
	}
	fields := strings.Fields(string(data[idx+10:]))
	pos, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		t.Fatal(err)
	}
	return pos
}

func TestXRefTable(t *testing.T) {
	out := &bytes.Buffer{}
	writeMinimal(t, out, V1_4, nil)
	data := out.Bytes()

	if !bytes.HasPrefix(data, []byte("%PDF-1.4\n")) {
		t.Errorf("wrong header %q", data[:9])
	}
	if !bytes.HasSuffix(data, []byte("%%EOF\n")) {
		t.Error("missing end-of-file marker")
	}

	pos := startXRef(t, data)
	body := string(data[pos:])
	if !strings.HasPrefix(body, "xref\n0 5\n") {
		t.Fatalf("unexpected xref section start %q", body[:20])
	}
	lines := strings.SplitAfter(body[len("xref\n0 5\n"):], "\r\n")
	if lines[0] != "0000000000 65535 f\r\n" {
		t.Errorf("wrong free list head %q", lines[0])
	}
	for num := 1; num < 5; num++ {
		line := lines[num]
		if len(line) != 20 || line[17] != 'n' {
			t.Fatalf("malformed xref entry %q", line)
		}
		offs, err := strconv.ParseInt(line[:10], 10, 64)
		if err != nil {
			t.Fatal(err)
		}
		want := fmt.Sprintf("%d 0 obj\n", num)
		if !bytes.HasPrefix(data[offs:], []byte(want)) {
			t.Errorf("xref offset %d for object %d points at %q", offs, num, data[offs:offs+10])
		}
	}

	if !strings.Contains(body, "/Size 5") || !strings.Contains(body, "/Root 1 0 R") {
		t.Errorf("incomplete trailer: %q", body)
	}
}

func TestXRefStream(t *testing.T) {
	out := &bytes.Buffer{}
	w := writeMinimal(t, out, V1_5, &WriterOptions{XRefStream: true})
	data := out.Bytes()

	pos := startXRef(t, data)
	if !bytes.HasPrefix(data[pos:], []byte("5 0 obj\n")) {
		t.Errorf("startxref points at %q", data[pos:pos+10])
	}
	if offs, ok := w.Offset(NewReference(5, 0)); !ok || offs != pos {
		t.Errorf("xref stream offset %d, %t", offs, ok)
	}
	if !bytes.Contains(data[pos:], []byte("/Type /XRef")) {
		t.Error("missing /Type /XRef")
	}
}

func TestXRefStreamVersion(t *testing.T) {
	_, err := NewWriter(io.Discard, V1_4, &WriterOptions{XRefStream: true})
	var verErr *VersionError
	if !errors.As(err, &verErr) {
		t.Fatalf("expected VersionError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidOperationOrder) {
		t.Error("VersionError is not classified")
	}
}

func TestStreamLength(t *testing.T) {
	for _, filter := range []Filter{nil, FilterFlate{}, FilterLZW{EarlyChange: true}} {
		out := &bytes.Buffer{}
		w, err := NewWriter(out, V1_7, &WriterOptions{Compress: filter})
		if err != nil {
			t.Fatal(err)
		}
		ref := w.Alloc()
		payload := bytes.Repeat([]byte("0 0 m 100 100 l S\n"), 50)
		err = w.PutStream(ref, Dict{"Type": Name("Test")}, payload, true)
		if err != nil {
			t.Fatal(err)
		}

		data := out.Bytes()
		start := bytes.Index(data, []byte("stream\n")) + 7
		end := bytes.LastIndex(data, []byte("\nendstream"))
		idx := bytes.Index(data, []byte("/Length "))
		fields := strings.Fields(string(data[idx+8:]))
		length, _ := strconv.Atoi(fields[0])
		if length != end-start {
			t.Errorf("%T: /Length %d, actual %d", filter, length, end-start)
		}

		var r io.Reader = bytes.NewReader(data[start:end])
		switch filter.(type) {
		case FilterFlate:
			r, err = zlib.NewReader(r)
			if err != nil {
				t.Fatal(err)
			}
		case FilterLZW:
			r = lzw.NewReader(r, true)
		}
		decoded, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(decoded, payload) {
			t.Errorf("%T: stream data corrupted", filter)
		}
	}
}

func TestPutTwice(t *testing.T) {
	w, err := NewWriter(io.Discard, V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	ref := w.Alloc()
	err = w.Put(ref, Integer(1))
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(ref, Integer(2))
	if !errors.Is(err, ErrInvalidOperationOrder) {
		t.Errorf("expected ErrInvalidOperationOrder, got %v", err)
	}
	err = w.Put(NewReference(99, 0), Integer(3))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

type failingWriter struct {
	n int
}

var errDiskFull = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		n := w.n
		w.n = 0
		return n, errDiskFull
	}
	w.n -= len(p)
	return len(p), nil
}

func TestIOFailure(t *testing.T) {
	w, err := NewWriter(&failingWriter{n: 30}, V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	ref := w.Alloc()
	err = w.Put(ref, Dict{"Type": Name("Catalog"), "Pages": NewReference(2, 0)})
	if !errors.Is(err, ErrIOFailure) {
		t.Fatalf("expected ErrIOFailure, got %v", err)
	}
	if !errors.Is(err, errDiskFull) {
		t.Error("cause was lost")
	}

	// all later writes fail as well
	ref2 := w.Alloc()
	err = w.Put(ref2, Integer(1))
	if !errors.Is(err, ErrIOFailure) {
		t.Errorf("expected ErrIOFailure, got %v", err)
	}
}
