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

package pdfgen

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds.  All errors returned by this module wrap exactly one of these
// values, so that callers can use [errors.Is] to classify a failure.
var (
	ErrInvalidSpecification       = errors.New("invalid specification")
	ErrInvalidOperationOrder      = errors.New("invalid operation order")
	ErrUnbalancedStateStack       = errors.New("unbalanced graphics state stack")
	ErrColorComponentMismatch     = errors.New("wrong number of color components")
	ErrCanvasClosed               = errors.New("canvas is closed")
	ErrPageAlreadyOpen            = errors.New("a page is already open")
	ErrNoOpenPage                 = errors.New("no page is open")
	ErrUnknownReservedDestination = errors.New("destination was never reserved")
	ErrDestinationAlreadyResolved = errors.New("destination already defined")
	ErrOutlineUnderflow           = errors.New("outline level underflow")
	ErrUnresolvedDestination      = errors.New("reserved destination not defined")
	ErrDocumentAlreadyFinalized   = errors.New("document already finalized")
	ErrResourceUnavailable        = errors.New("resource unavailable")
	ErrIOFailure                  = errors.New("I/O failure")
	ErrInvalidArgument            = errors.New("invalid argument")
)

// OpError records the operation which failed, together with the error
// kind and, optionally, an underlying cause.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

// Errorf returns an [*OpError] of the given kind.  The message is formatted
// using [fmt.Errorf], so that %w verbs can be used to record a cause.
func Errorf(kind error, op string, format string, args ...any) error {
	var cause error
	if format != "" {
		cause = fmt.Errorf(format, args...)
	}
	return &OpError{Op: op, Kind: kind, Err: cause}
}

// Wrap returns an [*OpError] of the given kind, with err as the cause.
// If err is nil, Wrap returns nil.  If err already is of kind, it
// is returned unchanged.
func Wrap(kind error, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kind) {
		return err
	}
	return &OpError{Op: op, Kind: kind, Err: err}
}

func (err *OpError) Error() string {
	parts := []string{}
	if err.Op != "" {
		parts = append(parts, err.Op)
	}
	if err.Kind != nil {
		parts = append(parts, err.Kind.Error())
	}
	if err.Err != nil {
		parts = append(parts, err.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns both the error kind and the underlying cause.
func (err *OpError) Unwrap() []error {
	res := make([]error, 0, 2)
	if err.Kind != nil {
		res = append(res, err.Kind)
	}
	if err.Err != nil {
		res = append(res, err.Err)
	}
	return res
}

// VersionError is returned when trying to use a feature in a PDF file which
// is not supported by the PDF version used.
type VersionError struct {
	Operation string
	Earliest  Version
}

func (err *VersionError) Error() string {
	return fmt.Sprintf("%s requires PDF version %s or newer",
		err.Operation, err.Earliest)
}

// Is allows [errors.Is] to classify a VersionError as an
// [ErrInvalidOperationOrder].
func (err *VersionError) Is(target error) bool {
	return target == ErrInvalidOperationOrder
}

// CheckVersion checks whether the PDF version ver is at least minVersion.
// If not, a [*VersionError] is returned.
func CheckVersion(ver Version, operation string, minVersion Version) error {
	if ver >= minVersion {
		return nil
	}
	return &VersionError{
		Operation: operation,
		Earliest:  minVersion,
	}
}
