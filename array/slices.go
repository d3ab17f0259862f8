// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package array

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/ssbc/graphpack"
)

// FromSlice builds an array from a typed slice. A nil shape means a one
// dimensional array of len(vals) elements.
//
// Supported slice types are []uint8 ... []uint64, []int8 ... []int64,
// []float16.Float16, []float32, []float64 and []bool.
func FromSlice(shape []uint64, vals interface{}) (*graphpack.Array, error) {
	var (
		elem graphpack.ElemKind
		n    int
	)
	switch v := vals.(type) {
	case []uint8:
		elem, n = graphpack.ElemUint8, len(v)
	case []uint16:
		elem, n = graphpack.ElemUint16, len(v)
	case []uint32:
		elem, n = graphpack.ElemUint32, len(v)
	case []uint64:
		elem, n = graphpack.ElemUint64, len(v)
	case []int8:
		elem, n = graphpack.ElemInt8, len(v)
	case []int16:
		elem, n = graphpack.ElemInt16, len(v)
	case []int32:
		elem, n = graphpack.ElemInt32, len(v)
	case []int64:
		elem, n = graphpack.ElemInt64, len(v)
	case []float16.Float16:
		elem, n = graphpack.ElemFloat16, len(v)
	case []float32:
		elem, n = graphpack.ElemFloat32, len(v)
	case []float64:
		elem, n = graphpack.ElemFloat64, len(v)
	case []bool:
		elem, n = graphpack.ElemBool, len(v)
	default:
		return nil, errors.Errorf("array: unsupported slice type %T", vals)
	}

	shape, err := checkShape(shape, n)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(n * elem.Width())
	if err := binary.Write(&buf, binary.LittleEndian, vals); err != nil {
		return nil, errors.Wrap(err, "array: failed to write elements")
	}
	return &graphpack.Array{Shape: shape, Elem: elem, Data: buf.Bytes()}, nil
}

// ToSlice returns the elements of a as a typed slice matching its element
// kind. Text arrays are returned as []string.
func ToSlice(a *graphpack.Array) (interface{}, error) {
	if a.Elem.IsText() {
		return Strings(a)
	}
	n, err := elemCount(a)
	if err != nil {
		return nil, err
	}
	var out interface{}
	switch a.Elem {
	case graphpack.ElemUint8:
		out = make([]uint8, n)
	case graphpack.ElemUint16:
		out = make([]uint16, n)
	case graphpack.ElemUint32:
		out = make([]uint32, n)
	case graphpack.ElemUint64:
		out = make([]uint64, n)
	case graphpack.ElemInt8:
		out = make([]int8, n)
	case graphpack.ElemInt16:
		out = make([]int16, n)
	case graphpack.ElemInt32:
		out = make([]int32, n)
	case graphpack.ElemInt64:
		out = make([]int64, n)
	case graphpack.ElemFloat16:
		out = make([]float16.Float16, n)
	case graphpack.ElemFloat32:
		out = make([]float32, n)
	case graphpack.ElemFloat64:
		out = make([]float64, n)
	case graphpack.ElemBool:
		out = make([]bool, n)
	default:
		return nil, errors.Wrapf(graphpack.ErrMalformedArray, "invalid element kind %d", a.Elem)
	}
	if err := binary.Read(bytes.NewReader(a.Data), binary.LittleEndian, out); err != nil {
		return nil, errors.Wrap(err, "array: failed to read elements")
	}
	return out, nil
}

// Float64s widens every element of a numeric or bool array to float64.
func Float64s(a *graphpack.Array) ([]float64, error) {
	vals, err := ToSlice(a)
	if err != nil {
		return nil, err
	}
	var out []float64
	switch v := vals.(type) {
	case []uint8:
		out = widen(len(v), func(i int) float64 { return float64(v[i]) })
	case []uint16:
		out = widen(len(v), func(i int) float64 { return float64(v[i]) })
	case []uint32:
		out = widen(len(v), func(i int) float64 { return float64(v[i]) })
	case []uint64:
		out = widen(len(v), func(i int) float64 { return float64(v[i]) })
	case []int8:
		out = widen(len(v), func(i int) float64 { return float64(v[i]) })
	case []int16:
		out = widen(len(v), func(i int) float64 { return float64(v[i]) })
	case []int32:
		out = widen(len(v), func(i int) float64 { return float64(v[i]) })
	case []int64:
		out = widen(len(v), func(i int) float64 { return float64(v[i]) })
	case []float16.Float16:
		out = widen(len(v), func(i int) float64 { return float64(v[i].Float32()) })
	case []float32:
		out = widen(len(v), func(i int) float64 { return float64(v[i]) })
	case []float64:
		out = v
	case []bool:
		out = widen(len(v), func(i int) float64 {
			if v[i] {
				return 1
			}
			return 0
		})
	default:
		return nil, errors.Errorf("array: %s elements are not numeric", a.Elem)
	}
	return out, nil
}

func widen(n int, at func(int) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}

// FromStrings builds a fixed-width text array. The width is the longest
// string in code points; shorter strings are zero padded.
func FromStrings(shape []uint64, vals []string) (*graphpack.Array, error) {
	shape, err := checkShape(shape, len(vals))
	if err != nil {
		return nil, err
	}
	chars := 1
	for _, s := range vals {
		if c := utf8.RuneCountInString(s); c > chars {
			chars = c
		}
	}
	elem, err := graphpack.ElemText(chars)
	if err != nil {
		return nil, errors.Wrap(err, "array: strings too wide")
	}

	data := make([]byte, len(vals)*elem.Width())
	for i, s := range vals {
		off := i * elem.Width()
		for _, r := range s {
			binary.LittleEndian.PutUint32(data[off:], uint32(r))
			off += 4
		}
	}
	return &graphpack.Array{Shape: shape, Elem: elem, Data: data}, nil
}

// Strings decodes a text array. Trailing zero code points are dropped.
func Strings(a *graphpack.Array) ([]string, error) {
	if !a.Elem.IsText() {
		return nil, errors.Errorf("array: %s is not a text kind", a.Elem)
	}
	n, err := elemCount(a)
	if err != nil {
		return nil, err
	}
	width := a.Elem.Width()
	out := make([]string, n)
	for i := range out {
		elem := a.Data[i*width : (i+1)*width]
		runes := make([]rune, 0, a.Elem.TextChars())
		for off := 0; off < width; off += 4 {
			runes = append(runes, rune(binary.LittleEndian.Uint32(elem[off:])))
		}
		for len(runes) > 0 && runes[len(runes)-1] == 0 {
			runes = runes[:len(runes)-1]
		}
		out[i] = string(runes)
	}
	return out, nil
}

func checkShape(shape []uint64, n int) ([]uint64, error) {
	if shape == nil {
		return []uint64{uint64(n)}, nil
	}
	want := uint64(1)
	for _, d := range shape {
		want *= d
	}
	if want != uint64(n) {
		return nil, errors.Wrapf(graphpack.ErrMalformedArray, "shape %v needs %d elements, have %d", shape, want, n)
	}
	out := make([]uint64, len(shape))
	copy(out, shape)
	return out, nil
}

func elemCount(a *graphpack.Array) (int, error) {
	n, ok := byteLen(a.Shape, a.Elem)
	if !ok || n != uint64(len(a.Data)) {
		return 0, errors.Wrapf(graphpack.ErrMalformedArray, "have %d bytes for shape %v of %s", len(a.Data), a.Shape, a.Elem)
	}
	return int(a.Len()), nil
}
