// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graphpack

import "reflect"

// Reserved record keys.
const (
	RecordTypeKey = "0"
	RecordIDKey   = "1"
)

// Field is one named field of a composite.
type Field struct {
	Name  string
	Value Value
}

// Composite is implemented by types whose named fields can be enumerated and
// encoded as records. Implementations must be pointers to types of non-zero
// size; the pointer is the composite's identity. Distinct zero-size
// allocations may share an address, so such composites are unsupported.
type Composite interface {
	TypeName() string
	Fields() []Field
}

// Object wraps a Composite so it can be stored wherever a Value is expected.
// Two Objects wrapping the same pointer are the same node.
type Object struct {
	C Composite
}

// Obj wraps c.
func Obj(c Composite) Object { return Object{C: c} }

func (Object) Kind() Kind { return KindRecord }

// identity returns the key the encoder tracks o under, or false if the
// wrapped composite is not a non-nil pointer to a non-zero-size value.
func (o Object) identity() (interface{}, bool) {
	if o.C == nil {
		return nil, false
	}
	rv := reflect.ValueOf(o.C)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Type().Elem().Size() == 0 {
		return nil, false
	}
	return o.C, true
}

// Identity returns the key used to track v during one traversal. ok is false
// for scalars and for objects that do not wrap a pointer.
func Identity(v Value) (key interface{}, ok bool) {
	if o, isObj := v.(Object); isObj {
		return o.identity()
	}
	if v == nil || !v.Kind().IsContainer() || isNilHandle(v) {
		return nil, false
	}
	return v, true
}

// RecordInfo reports whether d is a record and returns its reserved type
// name and original identity token.
func RecordInfo(d *Dict) (typeName string, id int64, ok bool) {
	if d == nil {
		return "", 0, false
	}
	tv, has := d.GetString(RecordTypeKey)
	if !has {
		return "", 0, false
	}
	name, isStr := tv.(String)
	if !isStr {
		return "", 0, false
	}
	idv, has := d.GetString(RecordIDKey)
	if !has {
		return string(name), -1, true
	}
	n, isInt := idv.(Int)
	if !isInt {
		return string(name), -1, true
	}
	return string(name), int64(n), true
}

// IsReservedKey reports whether k is one of the reserved record keys.
func IsReservedKey(k string) bool {
	return k == RecordTypeKey || k == RecordIDKey
}
