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

// Package profile implements configuration profiles for PDF documents.
//
// A profile is a set of option=value pairs.  Only the options listed in
// the table below are recognised, and values are validated when they are
// set.  Profiles can be stored in and loaded from YAML files.
//
//	doc.version               PDF minor version, 2 to 7 (default 4)
//	doc.compressed            compress streams, 0 or 1 (default 1)
//	doc.compression_filter    "flate" or "lzw" (default flate)
//	doc.xref_stream           use a cross-reference stream (default 0)
//	doc.lang                  natural language of the document (BCP 47)
//	doc.metadata              write an XMP metadata stream (default 0)
//	doc.page_layout           SinglePage, OneColumn, TwoColumnLeft, ...
//	doc.page_mode             UseNone, UseOutlines, UseThumbs, FullScreen
//	doc.initial_destination   destination to show when the file is opened
//	info.title, info.author, info.subject, info.keywords,
//	info.creator, info.producer
//	info.creation_date        write the creation date (default 1)
//	images.default_dpi        resolution of images without dpi information
//	images.interpolated       default for image interpolation (default 0)
package profile

import (
	"io"
	"os"
	"slices"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"seehuhn.de/go/pdfgen"
)

// Profile holds configuration options for a document.
// The zero value is not usable, use [New] to create a profile.
type Profile struct {
	values map[string]string
}

// New returns a profile with all options set to their defaults.
func New() *Profile {
	p := &Profile{values: make(map[string]string, len(options))}
	for name, opt := range options {
		p.values[name] = opt.def
	}
	return p
}

// Set changes the value of an option.
func (p *Profile) Set(option, value string) error {
	opt, ok := options[option]
	if !ok {
		return pdfgen.Errorf(pdfgen.ErrInvalidSpecification, "profile.Set",
			"unknown option %q", option)
	}
	if opt.check != nil {
		err := opt.check(value)
		if err != nil {
			return pdfgen.Errorf(pdfgen.ErrInvalidSpecification, "profile.Set",
				"invalid value %q for %s: %w", value, option, err)
		}
	}
	p.values[option] = value
	return nil
}

// Get returns the current value of an option.
func (p *Profile) Get(option string) (string, bool) {
	val, ok := p.values[option]
	return val, ok
}

// Load reads a profile from a YAML document.  The document must be a
// mapping from option names to values.  Options not mentioned keep their
// default values.
func Load(r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pdfgen.Wrap(pdfgen.ErrResourceUnavailable, "profile.Load", err)
	}
	var raw map[string]string
	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, pdfgen.Wrap(pdfgen.ErrInvalidSpecification, "profile.Load", err)
	}

	p := New()
	keys := maps.Keys(raw)
	slices.Sort(keys)
	for _, option := range keys {
		err := p.Set(option, raw[option])
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// LoadFile reads a profile from the named YAML file.
func LoadFile(path string) (*Profile, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, pdfgen.Wrap(pdfgen.ErrResourceUnavailable, "profile.LoadFile", err)
	}
	defer fd.Close()
	return Load(fd)
}

// Save writes all options which differ from their defaults, as a YAML
// document.
func (p *Profile) Save(w io.Writer) error {
	out := yaml.MapSlice{}
	keys := maps.Keys(p.values)
	slices.Sort(keys)
	for _, option := range keys {
		val := p.values[option]
		if val == options[option].def {
			continue
		}
		out = append(out, yaml.MapItem{Key: option, Value: val})
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	if err != nil {
		return pdfgen.Wrap(pdfgen.ErrIOFailure, "profile.Save", err)
	}
	return nil
}

// SaveFile writes the profile to the named file.
func (p *Profile) SaveFile(path string) error {
	fd, err := os.Create(path)
	if err != nil {
		return pdfgen.Wrap(pdfgen.ErrIOFailure, "profile.SaveFile", err)
	}
	err = p.Save(fd)
	if err != nil {
		fd.Close()
		return err
	}
	return pdfgen.Wrap(pdfgen.ErrIOFailure, "profile.SaveFile", fd.Close())
}

type option struct {
	def   string
	check func(string) error
}

var options = map[string]option{
	"doc.version":             {"4", checkVersion},
	"doc.compressed":          {"1", checkBool},
	"doc.compression_filter":  {"flate", checkChoice("flate", "lzw")},
	"doc.xref_stream":         {"0", checkBool},
	"doc.lang":                {"", checkLang},
	"doc.metadata":            {"0", checkBool},
	"doc.page_layout":         {"", checkChoice("", "SinglePage", "OneColumn", "TwoColumnLeft", "TwoColumnRight", "TwoPageLeft", "TwoPageRight")},
	"doc.page_mode":           {"", checkChoice("", "UseNone", "UseOutlines", "UseThumbs", "FullScreen", "UseOC", "UseAttachments")},
	"doc.initial_destination": {"", nil},
	"info.title":              {"", nil},
	"info.author":             {"", nil},
	"info.subject":            {"", nil},
	"info.keywords":           {"", nil},
	"info.creator":            {"", nil},
	"info.producer":           {"seehuhn.de/go/pdfgen", nil},
	"info.creation_date":      {"1", checkBool},
	"images.default_dpi":      {"72", checkPositive},
	"images.interpolated":     {"0", checkBool},
}

func checkVersion(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	ver := pdfgen.V1_0 + pdfgen.Version(v)
	if ver < pdfgen.MinVersion || ver > pdfgen.MaxVersion {
		return errOutOfRange
	}
	return nil
}

func checkBool(s string) error {
	if s != "0" && s != "1" {
		return errNotBool
	}
	return nil
}

func checkChoice(alternatives ...string) func(string) error {
	return func(s string) error {
		if !slices.Contains(alternatives, s) {
			return errNoChoice
		}
		return nil
	}
}

func checkLang(s string) error {
	if s == "" {
		return nil
	}
	_, err := language.Parse(s)
	return err
}

func checkPositive(s string) error {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if !(x > 0) {
		return errOutOfRange
	}
	return nil
}
