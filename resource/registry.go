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

package resource

import (
	"fmt"
	"sync/atomic"

	"seehuhn.de/go/pdfgen"
)

// Kind identifies the type of a resource.
type Kind uint8

// The resource kinds.
const (
	KindFont Kind = iota + 1
	KindImage
	KindImageMask
	KindColorSpace
	KindFunction
	KindPattern
	KindShading
	KindExtGState
)

func (k Kind) String() string {
	switch k {
	case KindFont:
		return "font"
	case KindImage:
		return "image"
	case KindImageMask:
		return "image mask"
	case KindColorSpace:
		return "color space"
	case KindFunction:
		return "function"
	case KindPattern:
		return "pattern"
	case KindShading:
		return "shading"
	case KindExtGState:
		return "graphics state parameters"
	default:
		return fmt.Sprintf("resource.Kind(%d)", k)
	}
}

// Handle refers to a resource owned by a [Registry].
//
// Handles are small values which can be compared using ==.  Loading the
// same resource twice gives equal handles.  The zero Handle does not
// refer to any resource.
type Handle struct {
	kind  Kind
	index uint32
	gen   uint32
}

// Kind returns the kind of resource the handle refers to.
func (h Handle) Kind() Kind {
	return h.kind
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

func (h Handle) String() string {
	if h.IsZero() {
		return "<no resource>"
	}
	return fmt.Sprintf("%s#%d", h.kind, h.index)
}

// Resource is implemented by all objects stored in a [Registry].
type Resource interface {
	// Embed writes the resource to the PDF file, using the reference
	// obtained from e.Ref().
	Embed(e *EmbedHelper) error
}

// Direct is implemented by resources which are not written as indirect
// objects.  For these resources, the value returned by DirectObject is
// used in place of a reference, and Embed is never called.
type Direct interface {
	DirectObject() pdfgen.Object
}

// Registry interns resources by identity.  Each distinct resource is
// assigned an indirect object reference when it is first loaded, and is
// written to the PDF file exactly once, in the order of registration.
//
// A resource can only depend on resources which were registered before
// it.  This guarantees that the dependency graph is acyclic.
type Registry struct {
	out     *pdfgen.Writer
	gen     uint32
	entries []*entry
	index   map[key]uint32
	written bool
}

type key struct {
	kind Kind
	id   string
}

type entry struct {
	kind Kind
	res  Resource
	ref  pdfgen.Reference
	obj  pdfgen.Object
}

var generation atomic.Uint32

// NewRegistry creates a new registry for resources written to out.
func NewRegistry(out *pdfgen.Writer) *Registry {
	return &Registry{
		out:   out,
		gen:   generation.Add(1),
		index: make(map[key]uint32),
	}
}

// Out returns the PDF writer the resources will be written to.
func (r *Registry) Out() *pdfgen.Writer {
	return r.out
}

// Load returns the handle for the resource with the given identity.
// If no such resource has been registered yet, build is called to
// construct it, and the resource is appended to the registration order.
// The handles in deps are the resources the new resource refers to; they
// are checked to be valid handles of this registry.
func (r *Registry) Load(kind Kind, id string, build func() (Resource, error), deps ...Handle) (Handle, error) {
	k := key{kind, id}
	if idx, ok := r.index[k]; ok {
		return Handle{kind: kind, index: idx, gen: r.gen}, nil
	}
	if r.written {
		return Handle{}, pdfgen.Errorf(pdfgen.ErrDocumentAlreadyFinalized, "load "+kind.String(), "")
	}
	for _, dep := range deps {
		if err := r.check(dep); err != nil {
			return Handle{}, pdfgen.Errorf(pdfgen.ErrInvalidSpecification,
				"load "+kind.String(), "invalid dependency: %w", err)
		}
	}

	res, err := build()
	if err != nil {
		return Handle{}, err
	}

	e := &entry{kind: kind, res: res}
	if d, isDirect := res.(Direct); isDirect {
		e.obj = d.DirectObject()
	} else {
		e.ref = r.out.Alloc()
		e.obj = e.ref
	}

	idx := uint32(len(r.entries))
	r.entries = append(r.entries, e)
	r.index[k] = idx
	return Handle{kind: kind, index: idx, gen: r.gen}, nil
}

// Add registers a resource which has no identity of its own.  Each call
// registers a new resource.
func (r *Registry) Add(kind Kind, res Resource, deps ...Handle) (Handle, error) {
	id := fmt.Sprintf("\x00anon%d", len(r.entries))
	return r.Load(kind, id, func() (Resource, error) { return res, nil }, deps...)
}

func (r *Registry) check(h Handle) error {
	if h.IsZero() {
		return fmt.Errorf("missing resource handle")
	}
	if h.gen != r.gen || int(h.index) >= len(r.entries) {
		return fmt.Errorf("handle %s belongs to a different document", h)
	}
	return nil
}

// Get returns the resource for a handle.  The handle must be of the
// given kind.
func (r *Registry) Get(h Handle, kind Kind) (Resource, error) {
	err := r.check(h)
	if err == nil && h.kind != kind {
		err = fmt.Errorf("expected %s, got %s", kind, h.kind)
	}
	if err != nil {
		return nil, pdfgen.Wrap(pdfgen.ErrInvalidArgument, "", err)
	}
	return r.entries[h.index].res, nil
}

// Object returns the PDF object which refers to the resource in resource
// dictionaries.  For most resources this is an indirect reference.
func (r *Registry) Object(h Handle) (pdfgen.Object, error) {
	if err := r.check(h); err != nil {
		return nil, pdfgen.Wrap(pdfgen.ErrInvalidArgument, "", err)
	}
	return r.entries[h.index].obj, nil
}

// Len returns the number of registered resources.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Embed writes all registered resources to the PDF file, in registration
// order.  After Embed has been called, no new resources can be loaded.
func (r *Registry) Embed() error {
	if r.written {
		return pdfgen.Errorf(pdfgen.ErrInvalidOperationOrder, "embed resources", "already written")
	}
	r.written = true

	for i, e := range r.entries {
		if e.ref == 0 {
			continue
		}
		helper := &EmbedHelper{reg: r, ref: e.ref, index: uint32(i)}
		err := e.res.Embed(helper)
		if err != nil {
			return fmt.Errorf("embed %s: %w", e.kind, err)
		}
	}
	return nil
}

// EmbedHelper gives resources access to the PDF file while they are
// being written.
type EmbedHelper struct {
	reg   *Registry
	ref   pdfgen.Reference
	index uint32
}

// Out returns the PDF writer.
func (e *EmbedHelper) Out() *pdfgen.Writer {
	return e.reg.out
}

// Ref returns the reference allocated for the resource being written.
func (e *EmbedHelper) Ref() pdfgen.Reference {
	return e.ref
}

// Alloc allocates a reference for an additional object, for example for
// a font descriptor.
func (e *EmbedHelper) Alloc() pdfgen.Reference {
	return e.reg.out.Alloc()
}

// Object returns the PDF object used to refer to a dependency.
// Only resources registered before the current one can be used.
func (e *EmbedHelper) Object(h Handle) (pdfgen.Object, error) {
	if err := e.reg.check(h); err != nil {
		return nil, err
	}
	if h.index >= e.index {
		return nil, fmt.Errorf("%s is registered after the resource using it", h)
	}
	return e.reg.entries[h.index].obj, nil
}

// Resource returns a dependency.
// Only resources registered before the current one can be used.
func (e *EmbedHelper) Resource(h Handle) (Resource, error) {
	if err := e.reg.check(h); err != nil {
		return nil, err
	}
	if h.index >= e.index {
		return nil, fmt.Errorf("%s is registered after the resource using it", h)
	}
	return e.reg.entries[h.index].res, nil
}
