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

package font

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"seehuhn.de/go/postscript/afm"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/internal/keyval"
	"seehuhn.de/go/pdfgen/resource"
)

// goFaces are the faces of the Go font family, by their names in font
// specifications.
var goFaces = map[string][]byte{
	"regular":         goregular.TTF,
	"bold":            gobold.TTF,
	"italic":          goitalic.TTF,
	"bolditalic":      gobolditalic.TTF,
	"medium":          gomedium.TTF,
	"mediumitalic":    gomediumitalic.TTF,
	"smallcaps":       gosmallcaps.TTF,
	"smallcapsitalic": gosmallcapsitalic.TTF,
	"mono":            gomono.TTF,
	"monobold":        gomonobold.TTF,
	"monoitalic":      gomonoitalic.TTF,
	"monobolditalic":  gomonobolditalic.TTF,
}

// Load registers a font and returns a handle to a [*Font].
// The following specifications are recognised:
//
//	standard; name=<standard font>; size=<pt> [; afm=<path>] [; enc=windows-1252|builtin]
//	file=<path to .ttf>; size=<pt>
//	go; face=regular|bold|italic|...; size=<pt>
//
// If afm is given, glyph widths for a standard font are read from the AFM
// file.  Fonts which differ only in size share one font dictionary in the
// PDF file.
func Load(reg *resource.Registry, spec string) (resource.Handle, error) {
	const op = "load font"

	s, err := keyval.Parse(spec)
	if err != nil {
		return resource.Handle{}, err
	}

	s.Require("size")
	size := s.Float("size", 0)

	var faceID string
	var build func() (Face, error)
	switch s.Kind {
	case "standard":
		s.Require("name")
		name := s.String("name", "")
		for _, n := range standardFonts {
			if strings.EqualFold(n, name) {
				name = n
			}
		}
		afmPath := s.String("afm", "")
		builtin := name == "Symbol" || name == "ZapfDingbats"
		enc := s.Choice("enc", "windows-1252", "builtin")
		if s.Has("enc") && builtin != (enc == "builtin") {
			s.Fail("encoding %s cannot be used with font %s", enc, name)
		}
		faceID = "standard;" + name + ";" + afmPath
		build = func() (Face, error) {
			var metrics *afm.Metrics
			if afmPath != "" {
				fd, err := os.Open(afmPath)
				if err != nil {
					return nil, pdfgen.Wrap(pdfgen.ErrResourceUnavailable, op, err)
				}
				defer fd.Close()
				metrics, err = afm.Read(fd)
				if err != nil {
					return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
						"%s: %w", afmPath, err)
				}
			}
			return NewStandard(name, metrics)
		}

	case "":
		s.Require("file")
		path := s.String("file", "")
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		faceID = "file;" + path
		build = func() (Face, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, pdfgen.Wrap(pdfgen.ErrResourceUnavailable, op, err)
			}
			f, err := NewTrueType(data)
			if err != nil {
				return nil, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
					"%s: %w", path, err)
			}
			return f, nil
		}

	case "go":
		face := strings.ToLower(s.String("face", "regular"))
		data, ok := goFaces[face]
		if !ok && s.Err == nil {
			s.Fail("unknown Go font face %q", face)
		}
		faceID = "go;" + face
		build = func() (Face, error) {
			f, err := NewTrueType(data)
			if err != nil {
				return nil, pdfgen.Wrap(pdfgen.ErrInvalidSpecification, op, err)
			}
			return f, nil
		}

	default:
		return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
			"%q: unknown font kind %q", spec, s.Kind)
	}

	if err := s.Finish(); err != nil {
		return resource.Handle{}, err
	}
	if !(size > 0 && size < 1e5) {
		return resource.Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidSpecification, op,
			"%q: invalid font size", spec)
	}

	faceHandle, err := reg.Load(resource.KindFont, faceID, func() (resource.Resource, error) {
		return build()
	})
	if err != nil {
		return resource.Handle{}, err
	}

	sizeID := faceID + ";size=" + strconv.FormatFloat(size, 'g', -1, 64)
	return reg.Load(resource.KindFont, sizeID, func() (resource.Resource, error) {
		res, err := reg.Get(faceHandle, resource.KindFont)
		if err != nil {
			return nil, err
		}
		ref, err := reg.Object(faceHandle)
		if err != nil {
			return nil, err
		}
		return &Font{
			Face:       res.(Face),
			FaceHandle: faceHandle,
			Size:       size,
			ref:        ref,
		}, nil
	}, faceHandle)
}
