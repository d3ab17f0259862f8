// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graphpack

import (
	"fmt"

	"github.com/pkg/errors"
)

// ElemKind is the element kind code of an Array, as stored in the binary
// array payload.
type ElemKind uint8

const (
	ElemUint8 ElemKind = iota + 1
	ElemUint16
	ElemUint32
	ElemUint64
	ElemInt8
	ElemInt16
	ElemInt32
	ElemInt64
	ElemFloat16
	ElemFloat32
	ElemFloat64
	ElemBool

	// MaxTextChars is the widest fixed-width text element that fits the
	// one byte kind code.
	MaxTextChars = 255 - int(ElemBool)
)

// ElemText returns the kind of fixed-width text elements of chars code
// points each (UTF-32LE, four bytes per code point).
func ElemText(chars int) (ElemKind, error) {
	if chars < 1 || chars > MaxTextChars {
		return 0, errors.Errorf("graphpack: text width %d out of range", chars)
	}
	return ElemBool + ElemKind(chars), nil
}

// IsText reports whether k is a fixed-width text kind.
func (k ElemKind) IsText() bool { return k > ElemBool }

// TextChars returns the number of code points per text element.
func (k ElemKind) TextChars() int {
	if !k.IsText() {
		return 0
	}
	return int(k - ElemBool)
}

// Valid reports whether k is a known element kind.
func (k ElemKind) Valid() bool { return k >= ElemUint8 }

// Width returns the size in bytes of one element.
func (k ElemKind) Width() int {
	switch k {
	case ElemUint8, ElemInt8, ElemBool:
		return 1
	case ElemUint16, ElemInt16, ElemFloat16:
		return 2
	case ElemUint32, ElemInt32, ElemFloat32:
		return 4
	case ElemUint64, ElemInt64, ElemFloat64:
		return 8
	}
	if k.IsText() {
		return 4 * k.TextChars()
	}
	return 0
}

func (k ElemKind) String() string {
	switch k {
	case ElemUint8:
		return "uint8"
	case ElemUint16:
		return "uint16"
	case ElemUint32:
		return "uint32"
	case ElemUint64:
		return "uint64"
	case ElemInt8:
		return "int8"
	case ElemInt16:
		return "int16"
	case ElemInt32:
		return "int32"
	case ElemInt64:
		return "int64"
	case ElemFloat16:
		return "float16"
	case ElemFloat32:
		return "float32"
	case ElemFloat64:
		return "float64"
	case ElemBool:
		return "bool"
	}
	if k.IsText() {
		return fmt.Sprintf("text%d", k.TextChars())
	}
	return "invalid"
}

// Array is a rectangular numeric tensor. Data holds the elements in row-major
// order, little-endian, at the native width of Elem.
type Array struct {
	Shape []uint64
	Elem  ElemKind
	Data  []byte
}

func (*Array) Kind() Kind { return KindArray }

// Len returns the number of elements implied by Shape.
func (a *Array) Len() uint64 {
	n := uint64(1)
	for _, d := range a.Shape {
		n *= d
	}
	return n
}
