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
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"
	"unicode/utf16"

	"golang.org/x/exp/maps"
	"golang.org/x/image/font/sfnt"
)

type toUnicodeEntry struct {
	Code  sfnt.GlyphIndex
	Value []rune
}

// writeToUnicode writes a ToUnicode CMap for two-byte glyph codes.
func writeToUnicode(w io.Writer, text map[sfnt.GlyphIndex][]rune) error {
	gids := maps.Keys(text)
	slices.Sort(gids)
	entries := make([]toUnicodeEntry, len(gids))
	for i, gid := range gids {
		entries[i] = toUnicodeEntry{Code: gid, Value: text[gid]}
	}
	return toUnicodeTmpl.Execute(w, entries)
}

// bfcharMax is the largest number of entries allowed in one bfchar block.
const bfcharMax = 100

var toUnicodeTmpl = template.Must(template.New("tounicode").Funcs(template.FuncMap{
	"Chunks": func(x []toUnicodeEntry) [][]toUnicodeEntry {
		return slices.Collect(slices.Chunk(x, bfcharMax))
	},
	"Single": func(e toUnicodeEntry) string {
		var b strings.Builder
		fmt.Fprintf(&b, "<%04x> <", uint16(e.Code))
		for _, u := range utf16.Encode(e.Value) {
			fmt.Fprintf(&b, "%04x", u)
		}
		b.WriteByte('>')
		return b.String()
	},
}).Parse(`/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CMapName /Adobe-Identity-UCS def
/CMapType 2 def
/CIDSystemInfo <<
/Registry (Adobe)
/Ordering (UCS)
/Supplement 0
>> def
1 begincodespacerange
<0000> <ffff>
endcodespacerange
{{range Chunks . -}}
{{len .}} beginbfchar
{{range . -}}
{{Single .}}
{{end -}}
endbfchar
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`))
