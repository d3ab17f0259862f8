// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graphpack

import (
	"math"
	"reflect"

	"github.com/x448/float16"
)

// Value is a node of an encodable graph.
//
// Scalars (Null, Bool, Int, Float, String, TypeTag) are plain values.
// Containers (*Bytes, *List, *Tuple, *Set, *Dict, *Array) are pointer
// handles; two occurrences of the same pointer are the same node and are
// encoded once, with later occurrences becoming references.
type Value interface {
	Kind() Kind
}

type Null struct{}

func (Null) Kind() Kind { return KindNull }

type Bool bool

func (Bool) Kind() Kind { return KindBool }

type Int int64

func (Int) Kind() Kind { return KindInt }

type Float float64

func (Float) Kind() Kind { return KindFloat }

type String string

func (String) Kind() Kind { return KindString }

// TypeTag is a kind used as a value, i.e. the type itself rather than a value
// of that type.
type TypeTag Kind

func (TypeTag) Kind() Kind { return KindType }

type Bytes struct {
	Data []byte
}

func NewBytes(b []byte) *Bytes { return &Bytes{Data: b} }

func (*Bytes) Kind() Kind { return KindBytes }

type List struct {
	Items []Value
}

// NewList returns a list holding items.
func NewList(items ...Value) *List { return &List{Items: items} }

func (*List) Kind() Kind { return KindList }

func (l *List) Append(v ...Value) { l.Items = append(l.Items, v...) }

func (l *List) Len() int { return len(l.Items) }

// Tuple has the same layout as List but a distinct kind. Tuples are
// hashable when all their elements are.
type Tuple struct {
	Items []Value
}

func NewTuple(items ...Value) *Tuple { return &Tuple{Items: items} }

func (*Tuple) Kind() Kind { return KindTuple }

func (t *Tuple) Len() int { return len(t.Items) }

// ValueOf converts a Go value into a Value. Integers of every width collapse
// to Int and floats to Float; width is only kept for Array elements.
func ValueOf(x interface{}) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		if isNilHandle(v) {
			return Null{}, nil
		}
		return v, nil
	case Composite:
		return Obj(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		return uintValue(uint64(v), x)
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case uint64:
		return uintValue(v, x)
	case float16.Float16:
		return Float(v.Float32()), nil
	case float32:
		return Float(v), nil
	case float64:
		return Float(v), nil
	case string:
		return String(v), nil
	case []byte:
		return NewBytes(v), nil
	case Kind:
		return TypeTag(v), nil
	}
	return nil, UnsupportedValueError{Value: x}
}

func uintValue(u uint64, orig interface{}) (Value, error) {
	if u > math.MaxInt64 {
		return nil, UnsupportedValueError{Value: orig}
	}
	return Int(u), nil
}

// isNilHandle reports whether v is a typed nil pointer, which is encoded
// like Null.
func isNilHandle(v Value) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// IsNull reports whether v encodes as Null.
func IsNull(v Value) bool {
	switch tv := v.(type) {
	case Null:
		return true
	case Object:
		if tv.C == nil {
			return true
		}
		rv := reflect.ValueOf(tv.C)
		return rv.Kind() == reflect.Ptr && rv.IsNil()
	}
	return isNilHandle(v)
}
