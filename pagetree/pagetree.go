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

// Package pagetree implements PDF page trees.
//
// The tree is balanced: all pages are at the same depth, and every
// intermediate node has at most 16 children.
package pagetree

import (
	"seehuhn.de/go/pdfgen"
)

const maxDegree = 16

// Tree is the page tree of a document.
type Tree struct {
	// Root is the reference of the root /Pages node.
	Root pdfgen.Reference

	// Parents gives, for every page, the reference of the /Pages node
	// which has the page as a kid.
	Parents []pdfgen.Reference

	out   *pdfgen.Writer
	nodes []*node // the root first, then one level after the other
}

type node struct {
	ref    pdfgen.Reference
	parent pdfgen.Reference
	kids   pdfgen.Array
	count  int
}

// Build arranges the given pages into a tree.  Intermediate nodes
// are allocated from out.  Nothing is written until [Tree.Write] is
// called.
func Build(out *pdfgen.Writer, root pdfgen.Reference, pages []pdfgen.Reference) *Tree {
	t := &Tree{
		Root:    root,
		Parents: make([]pdfgen.Reference, len(pages)),
		out:     out,
	}

	type item struct {
		ref   pdfgen.Reference
		count int
		n     *node
	}
	level := make([]item, len(pages))
	for i, ref := range pages {
		level[i] = item{ref: ref, count: 1}
	}

	// Group the nodes of each level, bottom up, until the remaining
	// nodes fit into the root.
	var levels [][]*node
	leaves := true
	for len(level) > maxDegree {
		var next []item
		var group []*node
		for start := 0; start < len(level); start += maxDegree {
			end := min(start+maxDegree, len(level))
			n := &node{ref: out.Alloc()}
			for i := start; i < end; i++ {
				n.kids = append(n.kids, level[i].ref)
				n.count += level[i].count
				if leaves {
					t.Parents[i] = n.ref
				} else {
					level[i].n.parent = n.ref
				}
			}
			group = append(group, n)
			next = append(next, item{ref: n.ref, count: n.count, n: n})
		}
		levels = append(levels, group)
		level = next
		leaves = false
	}

	rootNode := &node{ref: root}
	for i, it := range level {
		rootNode.kids = append(rootNode.kids, it.ref)
		rootNode.count += it.count
		if leaves {
			t.Parents[i] = root
		} else {
			it.n.parent = root
		}
	}

	t.nodes = append(t.nodes, rootNode)
	for i := len(levels) - 1; i >= 0; i-- {
		t.nodes = append(t.nodes, levels[i]...)
	}
	return t
}

// Write writes the /Pages nodes of the tree, starting with the root.
func (t *Tree) Write() error {
	for _, n := range t.nodes {
		dict := pdfgen.Dict{
			"Type":  pdfgen.Name("Pages"),
			"Kids":  n.kids,
			"Count": pdfgen.Integer(n.count),
		}
		if n.parent != 0 {
			dict["Parent"] = n.parent
		}
		if err := t.out.Put(n.ref, dict); err != nil {
			return err
		}
	}
	return nil
}
