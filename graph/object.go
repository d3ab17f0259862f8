// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package graph saves and loads graphs of composite objects. Objects are
// encoded as records; on load, records found in fields are turned back into
// objects through a Resolver, and records reached twice become the same
// object.
package graph

import (
	"github.com/ssbc/graphpack"
	"github.com/ssbc/graphpack/codec/text"
)

// Object is a composite that can be populated field by field.
//
// SetField receives graphpack.Object for fields that held another object;
// its C is the loaded instance.
type Object interface {
	graphpack.Composite
	SetField(name string, v graphpack.Value) error
}

// BeforeLoader is called before any field of the object is set.
type BeforeLoader interface {
	BeforeLoad() error
}

// AfterLoader is called once all fields of the object are set.
type AfterLoader interface {
	AfterLoad() error
}

// Marshal encodes obj and everything reachable from it. Objects are always
// turned into records.
func Marshal(obj Object, opts ...text.Option) (string, error) {
	opts = append(opts[:len(opts):len(opts)], text.WithRecords(true))
	return text.Encode(obj, opts...)
}
