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

// Package keyval parses the specification strings used to describe
// resources.
//
// A specification consists of tokens separated by semicolons.  The first
// token may be a bare word, giving the kind of the resource.  All other
// tokens have the form key=value.  Semicolons inside curly braces do not
// separate tokens.  Example:
//
//	calrgb; white=0.9505 1.089; gamma=2.2 2.2 2.2
package keyval

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/internal/float"
)

// Spec is a parsed specification string.
//
// The accessor methods record the first error they encounter in Err, and
// return the zero value after an error has occurred.  Once all values have
// been read, [Spec.Finish] must be called to check for unused keys.
type Spec struct {
	Kind string
	Err  error

	text   string
	values map[string]string
	keys   []string
	used   map[string]bool
}

// Parse parses a specification string.
func Parse(text string) (*Spec, error) {
	s := &Spec{
		text:   text,
		values: make(map[string]string),
		used:   make(map[string]bool),
	}

	for i, tok := range split(text) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		key, val, hasValue := strings.Cut(tok, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !hasValue {
			if i > 0 || s.Kind != "" || !isIdent(key) {
				return nil, s.errorf("unexpected token %q", tok)
			}
			s.Kind = key
			continue
		}
		if !isIdent(key) {
			return nil, s.errorf("invalid key %q", key)
		}
		if _, dup := s.values[key]; dup {
			return nil, s.errorf("duplicate key %q", key)
		}
		s.values[key] = strings.TrimSpace(val)
		s.keys = append(s.keys, key)
	}
	return s, nil
}

func split(text string) []string {
	var res []string
	depth := 0
	start := 0
	for i, c := range text {
		switch c {
		case '{':
			depth++
		case '}':
			depth--
		case ';':
			if depth == 0 {
				res = append(res, text[start:i])
				start = i + 1
			}
		}
	}
	return append(res, text[start:])
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func (s *Spec) errorf(format string, args ...any) error {
	return pdfgen.Errorf(pdfgen.ErrInvalidSpecification, "",
		"%q: "+format, append([]any{s.text}, args...)...)
}

// Fail records an error, unless an earlier error has already been
// recorded.  The error is reported by [Spec.Finish].
func (s *Spec) Fail(format string, args ...any) {
	if s.Err == nil {
		s.Err = s.errorf(format, args...)
	}
}

// Has reports whether the key is present.
func (s *Spec) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns the keys in the order they appear in the specification.
func (s *Spec) Keys() []string {
	return s.keys
}

func (s *Spec) lookup(key string) (string, bool) {
	if s.Err != nil {
		return "", false
	}
	val, ok := s.values[key]
	if ok {
		s.used[key] = true
	}
	return val, ok
}

// String returns the value for key, or def if the key is not present.
func (s *Spec) String(key, def string) string {
	val, ok := s.lookup(key)
	if !ok {
		return def
	}
	return val
}

// Choice returns the value for key, which must be one of the given
// alternatives.  If the key is not present, the first alternative is
// returned.
func (s *Spec) Choice(key string, alternatives ...string) string {
	val, ok := s.lookup(key)
	if !ok {
		if s.Err != nil {
			return ""
		}
		return alternatives[0]
	}
	for _, alt := range alternatives {
		if strings.EqualFold(val, alt) {
			return alt
		}
	}
	s.Fail("invalid value %q for %s", val, key)
	return ""
}

// Int returns the integer value for key, or def if the key is not present.
func (s *Spec) Int(key string, def int) int {
	val, ok := s.lookup(key)
	if !ok {
		return def
	}
	x, err := strconv.Atoi(val)
	if err != nil {
		s.Fail("invalid integer %q for %s", val, key)
		return 0
	}
	return x
}

// Float returns the numeric value for key, or def if the key is not present.
func (s *Spec) Float(key string, def float64) float64 {
	val, ok := s.lookup(key)
	if !ok {
		return def
	}
	x, err := parseFloat(val)
	if err != nil {
		s.Fail("invalid number %q for %s", val, key)
		return 0
	}
	return x
}

// Floats returns the list of numbers for key.
// If n is positive, the list must have exactly n elements.
// If the key is not present, nil is returned.
func (s *Spec) Floats(key string, n int) []float64 {
	val, ok := s.lookup(key)
	if !ok {
		return nil
	}
	fields := listFields(val)
	if n > 0 && len(fields) != n {
		s.Fail("%s needs %d numbers, got %d", key, n, len(fields))
		return nil
	}
	res := make([]float64, len(fields))
	for i, f := range fields {
		x, err := parseFloat(f)
		if err != nil {
			s.Fail("invalid number %q for %s", f, key)
			return nil
		}
		res[i] = x
	}
	return res
}

// Ints returns the list of integers for key.
// If the key is not present, nil is returned.
func (s *Spec) Ints(key string) []int {
	val, ok := s.lookup(key)
	if !ok {
		return nil
	}
	fields := listFields(val)
	res := make([]int, len(fields))
	for i, f := range fields {
		x, err := strconv.Atoi(f)
		if err != nil {
			s.Fail("invalid integer %q for %s", f, key)
			return nil
		}
		res[i] = x
	}
	return res
}

// Require records an error if the key is not present.
func (s *Spec) Require(keys ...string) {
	for _, key := range keys {
		if !s.Has(key) {
			s.Fail("missing %s", key)
		}
	}
}

// Finish returns the first error encountered while reading values.
// If there was no such error, Finish checks that all keys in the
// specification have been used.
func (s *Spec) Finish() error {
	if s.Err != nil {
		return s.Err
	}
	for _, key := range s.keys {
		if !s.used[key] {
			return s.errorf("unknown key %q", key)
		}
	}
	return nil
}

// Canonical returns a normalized form of the specification, which can be
// used as an identity key.  Whitespace differences and key order do not
// affect the result.
func (s *Spec) Canonical() string {
	b := &strings.Builder{}
	b.WriteString(s.Kind)
	keys := slices.Clone(s.keys)
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(b, ";%s=%s", key, strings.Join(strings.Fields(s.values[key]), " "))
	}
	return b.String()
}

// listFields splits a list of numbers.  Both whitespace and commas are
// accepted as separators.
func listFields(val string) []string {
	return strings.FieldsFunc(val, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}

func parseFloat(s string) (float64, error) {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !float.IsFinite(x) {
		return 0, strconv.ErrRange
	}
	return x, nil
}
