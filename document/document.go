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

// Package document assembles PDF documents.
//
// A [Document] owns the pages, the resources, the outline and the
// destinations of a PDF file.  Pages are drawn using the canvas returned
// by [Page.Canvas].  Nothing is written to the output, apart from the
// file header, until [Document.Finalize] is called.  Finalize then
// writes all objects in a fixed order: the catalog, the page tree, the
// pages (each followed by its annotations and its content stream), the
// resources in order of registration, the outline, the destinations,
// the document information and metadata, and finally the
// cross-reference table and the trailer.
//
// Documents are not safe for concurrent use.
package document

import (
	"bufio"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/destination"
	"seehuhn.de/go/pdfgen/graphics"
	"seehuhn.de/go/pdfgen/image"
	"seehuhn.de/go/pdfgen/internal/float"
	"seehuhn.de/go/pdfgen/outline"
	"seehuhn.de/go/pdfgen/profile"
	"seehuhn.de/go/pdfgen/resource"
)

// Options control aspects of the library which are not part of the
// document itself.
type Options struct {
	// Logger, if not nil, receives diagnostic messages.
	Logger *log.Logger
}

type state int

const (
	stateBuilding state = iota
	stateFinalized
	stateFailed
)

// Document is a PDF document under construction.
type Document struct {
	opt *profile.Options
	log *log.Logger
	ver pdfgen.Version

	out      *pdfgen.Writer
	reg      *resource.Registry
	dests    *destination.Table
	outline  *outline.Outline
	imageOpt *image.Options

	catalogRef pdfgen.Reference
	pagesRef   pdfgen.Reference

	pages []*Page
	open  *Page

	state state

	// commit and abort are set for documents written to a file.
	commit func() error
	abort  func()
}

// catalogVersion lists the /PageLayout and /PageMode values which need
// a PDF version later than 1.3.
var catalogVersion = map[pdfgen.Name]pdfgen.Version{
	"TwoPageLeft":    pdfgen.V1_5,
	"TwoPageRight":   pdfgen.V1_5,
	"UseOC":          pdfgen.V1_5,
	"UseAttachments": pdfgen.V1_6,
}

// New starts a new document, which is written to w.  The options are
// taken from the profile p.  If p is nil, the default options are used.
func New(w io.Writer, p *profile.Profile, opt *Options) (*Document, error) {
	const op = "New"

	if opt == nil {
		opt = &Options{}
	}
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	o := p.Snapshot()
	ver := o.Version
	if o.Metadata {
		if err := pdfgen.CheckVersion(ver, "XMP metadata", pdfgen.V1_4); err != nil {
			return nil, err
		}
	}
	if o.Lang != language.Und {
		if err := pdfgen.CheckVersion(ver, "document language", pdfgen.V1_4); err != nil {
			return nil, err
		}
	}
	if minVer, ok := catalogVersion[o.PageLayout]; ok {
		if err := pdfgen.CheckVersion(ver, "page layout "+string(o.PageLayout), minVer); err != nil {
			return nil, err
		}
	}
	if minVer, ok := catalogVersion[o.PageMode]; ok {
		if err := pdfgen.CheckVersion(ver, "page mode "+string(o.PageMode), minVer); err != nil {
			return nil, err
		}
	}

	out, err := pdfgen.NewWriter(w, ver, &pdfgen.WriterOptions{
		XRefStream: o.XRefStream,
		Compress:   o.Filter(),
	})
	if err != nil {
		return nil, err
	}

	d := &Document{
		opt: o,
		log: logger,
		ver: ver,
		out: out,
		reg: resource.NewRegistry(out),
		imageOpt: &image.Options{
			DefaultDPI:  o.DefaultDPI,
			Interpolate: o.Interpolated,
		},
		catalogRef: out.Alloc(),
		pagesRef:   out.Alloc(),
	}
	d.dests = destination.NewTable(out)
	d.outline = outline.New(ver, d.dests, d.currentPage)

	if o.InitialDestination != "" {
		// check the syntax early, the destination is added at finalize
		if _, err := destination.Parse(o.InitialDestination, 1); err != nil {
			return nil, pdfgen.Wrap(pdfgen.ErrInvalidSpecification, op, err)
		}
	}

	return d, nil
}

// Create starts a new document, which is written to the file with the
// given name.  The data is written to a temporary file in the same
// directory, which is renamed only after [Document.Finalize] has
// succeeded.
func Create(path string, p *profile.Profile, opt *Options) (*Document, error) {
	const op = "Create"

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	fd, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return nil, pdfgen.Wrap(pdfgen.ErrIOFailure, op, err)
	}
	abort := func() {
		fd.Close()
		os.Remove(fd.Name())
	}

	buf := bufio.NewWriter(fd)
	d, err := New(buf, p, opt)
	if err != nil {
		abort()
		return nil, err
	}

	d.abort = abort
	d.commit = func() error {
		err := buf.Flush()
		if err == nil {
			err = fd.Close()
		} else {
			fd.Close()
		}
		if err == nil {
			err = os.Rename(fd.Name(), path)
		}
		if err != nil {
			os.Remove(fd.Name())
			return pdfgen.Wrap(pdfgen.ErrIOFailure, "Finalize", err)
		}
		return nil
	}
	return d, nil
}

// Version returns the PDF version of the document.
func (d *Document) Version() pdfgen.Version {
	return d.ver
}

// PageNumber returns the number of the open page, or of the last page if
// no page is open.  Pages are numbered starting from 1.  Before the first
// page is started, the result is 0.
func (d *Document) PageNumber() int {
	if d.open != nil {
		return d.open.number
	}
	return len(d.pages)
}

// currentPage gives the page used by destinations which do not specify
// a page.
func (d *Document) currentPage() int {
	if n := d.PageNumber(); n > 0 {
		return n
	}
	return 1
}

// check returns an error if the document can no longer be modified.
func (d *Document) check(op string) error {
	if d.state != stateBuilding {
		return pdfgen.Errorf(pdfgen.ErrDocumentAlreadyFinalized, op, "")
	}
	return nil
}

// PageStart starts a new page of the given size, in PDF units (1/72 inch).
func (d *Document) PageStart(width, height float64) (*Page, error) {
	const op = "PageStart"
	if err := d.check(op); err != nil {
		return nil, err
	}
	if d.open != nil {
		return nil, pdfgen.Errorf(pdfgen.ErrPageAlreadyOpen, op,
			"page %d is still open", d.open.number)
	}
	if !float.IsFinite(width, height) || width <= 0 || height <= 0 {
		return nil, pdfgen.Errorf(pdfgen.ErrInvalidArgument, op,
			"invalid page size %g x %g", width, height)
	}

	p := &Page{
		doc:      d,
		number:   len(d.pages) + 1,
		ref:      d.out.Alloc(),
		mediaBox: rect.Rect{URx: width, URy: height},
		canvas:   graphics.NewCanvas(d.reg, d.ver),
	}
	d.pages = append(d.pages, p)
	d.open = p
	return p, nil
}

// PageEnd closes the open page.  All text and path objects on the page
// must be finished, and all saved graphics states must be restored.
func (d *Document) PageEnd() error {
	const op = "PageEnd"
	if err := d.check(op); err != nil {
		return err
	}
	return d.closePage(op)
}

func (d *Document) closePage(op string) error {
	if d.open == nil {
		return pdfgen.Errorf(pdfgen.ErrNoOpenPage, op, "")
	}
	if !d.open.canvas.IsClosed() {
		if err := d.open.canvas.Close(); err != nil {
			return err
		}
	}
	d.open = nil
	return nil
}

// Page returns the open page, or nil if no page is open.
func (d *Document) Page() *Page {
	return d.open
}

// Outline returns the document outline.
func (d *Document) Outline() *outline.Outline {
	return d.outline
}

// DestinationDefine adds a destination to the document.  If the
// specification does not name a page, the current page is used.
func (d *Document) DestinationDefine(spec string) (destination.ID, error) {
	if err := d.check("DestinationDefine"); err != nil {
		return 0, err
	}
	return d.dests.Define(spec, d.currentPage())
}

// DestinationReserve allocates a destination which is defined later,
// using [Document.DestinationDefineReserved].  All reserved destinations
// must be defined before the document is finalized.
func (d *Document) DestinationReserve() (destination.ID, error) {
	if err := d.check("DestinationReserve"); err != nil {
		return 0, err
	}
	return d.dests.Reserve(), nil
}

// DestinationDefineReserved defines a destination previously allocated
// with [Document.DestinationReserve].
func (d *Document) DestinationDefineReserved(id destination.ID, spec string) error {
	if err := d.check("DestinationDefineReserved"); err != nil {
		return err
	}
	return d.dests.DefineReserved(id, spec, d.currentPage())
}
