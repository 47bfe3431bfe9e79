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

// Pdfgen writes a sample PDF document, using a configuration profile
// given on the command line.
//
// Usage:
//
//	pdfgen [-profile file.yaml] [-set option=value ...] [-version 1.x] [-v] -o out.pdf
//
// If the output file is "-", the document is written to standard output.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
	"seehuhn.de/go/pdfgen/profile"
)

type settings []string

func (s *settings) String() string {
	return strings.Join(*s, ",")
}

func (s *settings) Set(val string) error {
	if !strings.Contains(val, "=") {
		return errors.New("expected option=value")
	}
	*s = append(*s, val)
	return nil
}

func main() {
	outFile := flag.String("o", "", "output file name (\"-\" for stdout)")
	profileFile := flag.String("profile", "", "read the profile from this YAML file")
	showProfile := flag.Bool("show-profile", false, "print the profile and exit")
	verbose := flag.Bool("v", false, "log progress to stderr")
	version := flag.String("version", "", "PDF version to write, for example 1.7")
	var extra settings
	flag.Var(&extra, "set", "set a profile option (may be repeated)")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("pdfgen: ")

	p := profile.New()
	if *profileFile != "" {
		var err error
		p, err = profile.LoadFile(*profileFile)
		if err != nil {
			log.Fatal(err)
		}
	}
	for _, s := range extra {
		key, val, _ := strings.Cut(s, "=")
		err := p.Set(strings.TrimSpace(key), strings.TrimSpace(val))
		if err != nil {
			log.Fatal(err)
		}
	}

	if *version != "" {
		ver, err := pdfgen.ParseVersion(*version)
		if err == nil {
			err = p.Set("doc.version", strconv.Itoa(ver.Minor()))
		}
		if err != nil {
			log.Fatalf("invalid PDF version %q: %v", *version, err)
		}
	}

	if *showProfile {
		if err := p.Save(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *outFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] -o out.pdf\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	opt := &document.Options{}
	if *verbose {
		opt.Logger = log.New(os.Stderr, "pdfgen: ", 0)
	}

	var doc *document.Document
	var err error
	if *outFile == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			log.Fatal("refusing to write PDF data to a terminal")
		}
		doc, err = document.New(os.Stdout, p, opt)
	} else {
		doc, err = document.Create(*outFile, p, opt)
	}
	if err != nil {
		log.Fatal(err)
	}

	err = writeSample(doc)
	if err != nil {
		log.Fatal(err)
	}
	err = doc.Finalize()
	if err != nil {
		log.Fatal(err)
	}
}
