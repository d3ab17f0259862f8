// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graph

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/ssbc/graphpack"
)

// Resolver constructs an empty object for a record type name.
type Resolver interface {
	Resolve(typeName string) (Object, error)
}

// Registry is a Resolver backed by constructors registered up front. It is
// safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]func() Object
}

var _ Resolver = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]func() Object)}
}

// Register adds the constructor for name. Names can only be registered once.
func (r *Registry) Register(name string, ctor func() Object) error {
	if name == "" {
		return errors.New("graph: empty type name")
	}
	if ctor == nil {
		return errors.Errorf("graph: nil constructor for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, has := r.ctors[name]; has {
		return errors.Errorf("graph: type %q already registered", name)
	}
	r.ctors[name] = ctor
	return nil
}

// MustRegister is Register for package initialization; it panics on error.
func (r *Registry) MustRegister(name string, ctor func() Object) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

func (r *Registry) Resolve(typeName string) (Object, error) {
	r.mu.RLock()
	ctor, has := r.ctors[typeName]
	r.mu.RUnlock()
	if !has {
		return nil, graphpack.TypeResolutionError{Name: typeName}
	}
	obj := ctor()
	if obj == nil {
		return nil, errors.Wrapf(graphpack.TypeResolutionError{Name: typeName}, "graph: constructor returned nil")
	}
	return obj, nil
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ctors))
	for n := range r.ctors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
