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

// Package metadata writes the document information dictionary and the
// XMP metadata stream of a PDF file.
package metadata

import (
	"bytes"
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdfgen"
)

// PDF 2.0 sections: 14.3

// Info holds the document-level metadata.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string

	// CreationDate, if non-zero, is used for both the creation and the
	// modification date.
	CreationDate time.Time

	// Lang, if set, is the natural language of the document.
	Lang language.Tag
}

// AsDict returns the document information dictionary.
// Empty fields are omitted.
func (info *Info) AsDict() pdfgen.Dict {
	dict := pdfgen.Dict{}
	set := func(key pdfgen.Name, val string) {
		if val != "" {
			dict[key] = pdfgen.TextString(val)
		}
	}
	set("Title", info.Title)
	set("Author", info.Author)
	set("Subject", info.Subject)
	set("Keywords", info.Keywords)
	set("Creator", info.Creator)
	set("Producer", info.Producer)
	if !info.CreationDate.IsZero() {
		dict["CreationDate"] = pdfgen.Date(info.CreationDate)
		dict["ModDate"] = pdfgen.Date(info.CreationDate)
	}
	return dict
}

// pdfNamespace is the XMP namespace for PDF metadata.
// See https://developer.adobe.com/xmp/docs/XMPNamespaces/pdf/
type pdfNamespace struct {
	_        xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_        xmp.Prefix    `xmp:"pdf"`
	Keywords xmp.Text
	Producer xmp.AgentName
}

// Packet returns an XMP packet with the same information as the
// document information dictionary.
func (info *Info) Packet() (*xmp.Packet, error) {
	dc := &xmp.DublinCore{}
	if info.Title != "" {
		dc.Title.Default = xmp.NewText(info.Title)
		if info.Lang != language.Und {
			dc.Title.Set(info.Lang, info.Title)
		}
	}
	if info.Author != "" {
		dc.Creator.Append(xmp.NewProperName(info.Author))
	}
	if info.Subject != "" {
		dc.Description.Default = xmp.NewText(info.Subject)
	}

	basic := &xmp.Basic{}
	if !info.CreationDate.IsZero() {
		basic.CreateDate = xmp.NewDate(info.CreationDate)
		basic.ModifyDate = xmp.NewDate(info.CreationDate)
	}

	pdfInfo := &pdfNamespace{}
	if info.Keywords != "" {
		pdfInfo.Keywords = xmp.NewText(info.Keywords)
	}
	if info.Producer != "" {
		pdfInfo.Producer = xmp.NewAgentName(info.Producer)
	}

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic, pdfInfo)
	if err != nil {
		return nil, err
	}
	return packet, nil
}

// Embed writes the XMP metadata stream.  The stream is never compressed.
func (info *Info) Embed(out *pdfgen.Writer, ref pdfgen.Reference) error {
	const op = "XMP metadata stream"
	if err := pdfgen.CheckVersion(out.Version, op, pdfgen.V1_4); err != nil {
		return err
	}

	packet, err := info.Packet()
	if err != nil {
		return pdfgen.Wrap(pdfgen.ErrInvalidArgument, op, err)
	}
	body := &bytes.Buffer{}
	err = packet.Write(body, &xmp.PacketOptions{Pretty: true})
	if err != nil {
		return pdfgen.Wrap(pdfgen.ErrInvalidArgument, op, err)
	}

	dict := pdfgen.Dict{
		"Type":    pdfgen.Name("Metadata"),
		"Subtype": pdfgen.Name("XML"),
	}
	return out.PutStream(ref, dict, body.Bytes(), false)
}
