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

package function

import (
	"errors"
	"strconv"
	"strings"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/resource"
)

// Type4 represents a PostScript calculator function.
type Type4 struct {
	// Domain gives the input ranges as [min0, max0, min1, max1, ...].
	Domain []float64

	// Range gives the output ranges as [min0, max0, min1, max1, ...].
	Range []float64

	// Program is the PostScript code, without the enclosing braces.
	Program string
}

// FunctionType implements the [Function] interface.
func (f *Type4) FunctionType() int {
	return 4
}

// Shape implements the [Function] interface.
func (f *Type4) Shape() (int, int) {
	return len(f.Domain) / 2, len(f.Range) / 2
}

// Embed implements the [resource.Resource] interface.
func (f *Type4) Embed(e *resource.EmbedHelper) error {
	dict := pdfgen.Dict{
		"FunctionType": pdfgen.Integer(4),
		"Domain":       pdfgen.Reals(f.Domain...),
		"Range":        pdfgen.Reals(f.Range...),
	}
	program := "{" + f.Program + "}"
	return e.Out().PutStream(e.Ref(), dict, []byte(program), true)
}

func (f *Type4) validate() error {
	if len(f.Domain) == 0 || len(f.Domain)%2 != 0 {
		return newInvalidFunctionError(4, "domain", "invalid length %d", len(f.Domain))
	}
	if len(f.Range) == 0 || len(f.Range)%2 != 0 {
		return newInvalidFunctionError(4, "range", "invalid length %d", len(f.Range))
	}
	m, n := f.Shape()
	if err := checkRanges(4, "domain", f.Domain, m); err != nil {
		return err
	}
	if err := checkRanges(4, "range", f.Range, n); err != nil {
		return err
	}

	if strings.TrimSpace(f.Program) == "" {
		return newInvalidFunctionError(4, "func", "program cannot be empty")
	}
	if err := checkProgram(f.Program); err != nil {
		return newInvalidFunctionError(4, "func", "%s", err)
	}
	return nil
}

// The operators allowed in Type 4 functions (table 42 of ISO 32000-2:2020).
var opNames = map[string]bool{
	"abs": true, "add": true, "atan": true, "ceiling": true,
	"cos": true, "cvi": true, "cvr": true, "div": true,
	"exp": true, "floor": true, "idiv": true, "ln": true,
	"log": true, "mod": true, "mul": true, "neg": true,
	"round": true, "sin": true, "sqrt": true, "sub": true,
	"truncate": true,
	"and":      true, "bitshift": true, "eq": true, "ge": true,
	"gt": true, "le": true, "lt": true, "ne": true, "not": true,
	"or": true, "xor": true,
	"copy": true, "dup": true, "exch": true, "index": true,
	"pop": true, "roll": true,
	"true": true, "false": true,
}

// token types
const (
	tokNumber = iota
	tokName
	tokOpen  // {
	tokClose // }
)

type token struct {
	typ  int
	name string
}

func tokenize(src string) []token {
	var tokens []token
	i := 0
	for i < len(src) {
		c := src[i]

		if isSpace(c) {
			i++
			continue
		}

		if c == '%' {
			for i < len(src) && src[i] != '\n' && src[i] != '\r' {
				i++
			}
			continue
		}

		if c == '{' {
			tokens = append(tokens, token{typ: tokOpen})
			i++
			continue
		}
		if c == '}' {
			tokens = append(tokens, token{typ: tokClose})
			i++
			continue
		}

		start := i
		for i < len(src) && !isSpace(src[i]) && src[i] != '{' && src[i] != '}' && src[i] != '%' {
			i++
		}
		word := src[start:i]

		if _, err := strconv.ParseFloat(word, 64); err == nil {
			tokens = append(tokens, token{typ: tokNumber})
			continue
		}
		tokens = append(tokens, token{typ: tokName, name: word})
	}
	return tokens
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == 0
}

// checkProgram verifies that a program only uses the allowed operators,
// that the braces are balanced, and that every procedure body is consumed
// by an "if" or "ifelse" operator.
func checkProgram(program string) error {
	tokens := tokenize(program)
	_, err := checkBlock(tokens, 0, false)
	return err
}

func checkBlock(tokens []token, pos int, inBlock bool) (int, error) {
	// number of procedure bodies not yet consumed by "if" or "ifelse"
	pending := 0

	for pos < len(tokens) {
		tok := tokens[pos]
		pos++

		switch tok.typ {
		case tokOpen:
			next, err := checkBlock(tokens, pos, true)
			if err != nil {
				return 0, err
			}
			pos = next
			pending++

		case tokClose:
			if !inBlock {
				return 0, errors.New("unexpected '}'")
			}
			if pending > 0 {
				return 0, errors.New("unused procedure body in block")
			}
			return pos, nil

		case tokName:
			switch tok.name {
			case "if":
				if pending < 1 {
					return 0, errors.New("'if' requires one procedure body")
				}
				pending--
			case "ifelse":
				if pending < 2 {
					return 0, errors.New("'ifelse' requires two procedure bodies")
				}
				pending -= 2
			default:
				if pending > 0 {
					return 0, errors.New("procedure body not followed by 'if' or 'ifelse'")
				}
				if !opNames[tok.name] {
					return 0, errors.New("unknown operator " + strconv.Quote(tok.name))
				}
			}

		case tokNumber:
			if pending > 0 {
				return 0, errors.New("procedure body not followed by 'if' or 'ifelse'")
			}
		}
	}

	if inBlock {
		return 0, errors.New("unterminated '{'")
	}
	if pending > 0 {
		return 0, errors.New("unused procedure body at end of program")
	}
	return pos, nil
}
