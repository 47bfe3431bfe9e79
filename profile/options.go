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

package profile

import (
	"errors"
	"strconv"

	"golang.org/x/text/language"

	"seehuhn.de/go/pdfgen"
)

// Options is a read-only snapshot of the recognised options of a profile.
type Options struct {
	Version           pdfgen.Version
	Compressed        bool
	CompressionFilter string
	XRefStream        bool
	Lang              language.Tag
	Metadata          bool

	PageLayout         pdfgen.Name
	PageMode           pdfgen.Name
	InitialDestination string

	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	CreationDate bool

	DefaultDPI   float64
	Interpolated bool
}

// Snapshot returns the current option values.  Later changes to the
// profile do not affect the returned value.
// If p is nil, the default options are returned.
func (p *Profile) Snapshot() *Options {
	if p == nil {
		p = New()
	}
	v := p.values

	minor, _ := strconv.Atoi(v["doc.version"])
	dpi, _ := strconv.ParseFloat(v["images.default_dpi"], 64)
	var lang language.Tag
	if v["doc.lang"] != "" {
		lang = language.MustParse(v["doc.lang"])
	}

	return &Options{
		Version:           pdfgen.V1_0 + pdfgen.Version(minor),
		Compressed:        v["doc.compressed"] == "1",
		CompressionFilter: v["doc.compression_filter"],
		XRefStream:        v["doc.xref_stream"] == "1",
		Lang:              lang,
		Metadata:          v["doc.metadata"] == "1",

		PageLayout:         pdfgen.Name(v["doc.page_layout"]),
		PageMode:           pdfgen.Name(v["doc.page_mode"]),
		InitialDestination: v["doc.initial_destination"],

		Title:        v["info.title"],
		Author:       v["info.author"],
		Subject:      v["info.subject"],
		Keywords:     v["info.keywords"],
		Creator:      v["info.creator"],
		Producer:     v["info.producer"],
		CreationDate: v["info.creation_date"] == "1",

		DefaultDPI:   dpi,
		Interpolated: v["images.interpolated"] == "1",
	}
}

// Filter returns the stream filter selected by the options, or nil if
// compression is disabled.
func (o *Options) Filter() pdfgen.Filter {
	if !o.Compressed {
		return nil
	}
	if o.CompressionFilter == "lzw" || o.Version < pdfgen.V1_2 {
		return pdfgen.FilterLZW{EarlyChange: true}
	}
	return pdfgen.FilterFlate{}
}

var (
	errOutOfRange = errors.New("value out of range")
	errNotBool    = errors.New("expected 0 or 1")
	errNoChoice   = errors.New("not one of the allowed values")
)
