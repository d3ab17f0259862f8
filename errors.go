// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graphpack

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedEncoding is returned when an expected prefix, delimiter,
	// token or separator is missing from an encoded stream.
	ErrMalformedEncoding = errors.New("graphpack: malformed encoding")

	// ErrMalformedArray is returned when an array payload does not match its
	// declared shape and element kind.
	ErrMalformedArray = errors.New("graphpack: malformed array")

	// ErrUnhashable is returned when a list, dict, set, array or record is
	// used as a dict key or set element.
	ErrUnhashable = errors.New("graphpack: unhashable value")

	// ErrReservedField is returned when a composite exposes a field named
	// like one of the reserved record keys.
	ErrReservedField = errors.New("graphpack: reserved field name")
)

// UnsupportedValueError is returned when a value is outside the closed set of
// kinds and cannot be turned into a record.
type UnsupportedValueError struct {
	Value interface{}
}

func (e UnsupportedValueError) Error() string {
	return fmt.Sprintf("graphpack: unsupported value of type %T", e.Value)
}

// IsUnsupportedValue returns whether err is or wraps an UnsupportedValueError.
func IsUnsupportedValue(err error) bool {
	var uv UnsupportedValueError
	return errors.As(err, &uv)
}

// UnresolvedReferenceError is returned when a reference token was never
// registered before it is used.
type UnresolvedReferenceError struct {
	Token uint64
}

func (e UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("graphpack: unresolved reference %d", e.Token)
}

func IsUnresolvedReference(err error) bool {
	var ur UnresolvedReferenceError
	return errors.As(err, &ur)
}

// TypeResolutionError is returned when a record's type name has no
// registered constructor.
type TypeResolutionError struct {
	Name string
}

func (e TypeResolutionError) Error() string {
	return fmt.Sprintf("graphpack: cannot resolve type %q", e.Name)
}

func IsTypeResolution(err error) bool {
	var tr TypeResolutionError
	return errors.As(err, &tr)
}
