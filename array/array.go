// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package array implements the binary layout of rectangular numeric arrays:
//
//	<shape: N x uint64 LE> '0' <element kind> '0' <raw elements>
package array

import (
	"encoding/binary"
	"math/bits"

	"github.com/pkg/errors"

	"github.com/ssbc/graphpack"
)

// Sep is the separator byte around the element kind code.
const Sep byte = '0'

// Marshal returns the binary payload of a.
func Marshal(a *graphpack.Array) ([]byte, error) {
	if a == nil {
		return nil, errors.Wrap(graphpack.ErrMalformedArray, "nil array")
	}
	if !a.Elem.Valid() {
		return nil, errors.Wrapf(graphpack.ErrMalformedArray, "invalid element kind %d", a.Elem)
	}
	want, ok := byteLen(a.Shape, a.Elem)
	if !ok || want != uint64(len(a.Data)) {
		return nil, errors.Wrapf(graphpack.ErrMalformedArray, "have %d bytes for shape %v of %s", len(a.Data), a.Shape, a.Elem)
	}

	out := make([]byte, 0, 8*len(a.Shape)+3+len(a.Data))
	var dim [8]byte
	for _, d := range a.Shape {
		binary.LittleEndian.PutUint64(dim[:], d)
		out = append(out, dim[:]...)
	}
	out = append(out, Sep, byte(a.Elem), Sep)
	out = append(out, a.Data...)

	// a zero dimension next to header-like shape bytes can make an earlier
	// offset parse as a complete header.
	back, err := Unmarshal(out)
	if err != nil || back.Elem != a.Elem || !sameShape(back.Shape, a.Shape) {
		return nil, errors.Wrapf(graphpack.ErrMalformedArray, "shape %v of %s does not read back unambiguously", a.Shape, a.Elem)
	}
	return out, nil
}

func sameShape(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Unmarshal parses a payload produced by Marshal. The shape ends at the first
// 8-byte aligned offset that is followed by a separator, a valid kind code
// and a separator, and after which exactly shape x width bytes remain.
func Unmarshal(b []byte) (*graphpack.Array, error) {
	for i := 0; i+3 <= len(b); i += 8 {
		if b[i] != Sep || b[i+2] != Sep {
			continue
		}
		elem := graphpack.ElemKind(b[i+1])
		if !elem.Valid() {
			continue
		}
		shape := make([]uint64, i/8)
		for j := range shape {
			shape[j] = binary.LittleEndian.Uint64(b[8*j:])
		}
		want, ok := byteLen(shape, elem)
		if !ok || want != uint64(len(b)-i-3) {
			continue
		}
		data := make([]byte, len(b)-i-3)
		copy(data, b[i+3:])
		return &graphpack.Array{Shape: shape, Elem: elem, Data: data}, nil
	}
	return nil, errors.Wrapf(graphpack.ErrMalformedArray, "no shape/kind header matches %d payload bytes", len(b))
}

// byteLen returns product(shape) * width, or false on overflow.
func byteLen(shape []uint64, elem graphpack.ElemKind) (uint64, bool) {
	n := uint64(elem.Width())
	for _, d := range shape {
		hi, lo := bits.Mul64(n, d)
		if hi != 0 {
			return 0, false
		}
		n = lo
	}
	return n, true
}
