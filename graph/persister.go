// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graph

import (
	"github.com/pkg/errors"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"

	"github.com/ssbc/graphpack"
	"github.com/ssbc/graphpack/codec/text"
)

// Storage keeps encoded graphs by identifier. *persist.Store implements it.
type Storage interface {
	Store(id string, data []byte) error
	Retrieve(id string) (data []byte, found bool, err error)
}

// Persister saves object graphs to a Storage and loads them back.
type Persister struct {
	storage  Storage
	resolver Resolver

	textOpts []text.Option
	log      log.Logger
}

type Option func(*Persister) error

// WithTextOptions passes opts to every encode and decode call.
func WithTextOptions(opts ...text.Option) Option {
	return func(p *Persister) error {
		p.textOpts = append(p.textOpts, opts...)
		return nil
	}
}

func WithLogger(l log.Logger) Option {
	return func(p *Persister) error {
		if l == nil {
			return errors.New("graph: nil logger")
		}
		p.log = l
		return nil
	}
}

// New returns a Persister. storage may be nil if only LoadText and
// LoadRecord are used.
func New(storage Storage, resolver Resolver, opts ...Option) (*Persister, error) {
	if resolver == nil {
		return nil, errors.New("graph: nil resolver")
	}
	p := &Persister{
		storage:  storage,
		resolver: resolver,
		log:      log.NewNopLogger(),
	}
	for i, o := range opts {
		if err := o(p); err != nil {
			return nil, errors.Wrapf(err, "graph: option %d", i)
		}
	}
	return p, nil
}

// Save encodes obj and stores it under id.
func (p *Persister) Save(id string, obj Object) error {
	if p.storage == nil {
		return errors.New("graph: no storage configured")
	}
	s, err := Marshal(obj, p.textOpts...)
	if err != nil {
		return errors.Wrapf(err, "graph: failed to encode %s", obj.TypeName())
	}
	if err := p.storage.Store(id, []byte(s)); err != nil {
		return errors.Wrapf(err, "graph: failed to save %q", id)
	}
	level.Debug(p.log).Log("event", "saved", "id", id, "type", obj.TypeName(), "size", len(s))
	return nil
}

// Load populates obj from the graph stored under id. found is false if
// nothing is stored there; obj is left untouched in that case.
func (p *Persister) Load(id string, obj Object) (found bool, err error) {
	if p.storage == nil {
		return false, errors.New("graph: no storage configured")
	}
	data, found, err := p.storage.Retrieve(id)
	if err != nil {
		return false, errors.Wrapf(err, "graph: failed to retrieve %q", id)
	}
	if !found {
		return false, nil
	}
	if err := p.LoadText(string(data), obj); err != nil {
		return true, errors.Wrapf(err, "graph: failed to load %q", id)
	}
	return true, nil
}

// LoadText decodes s, which must hold a record, and populates obj from it.
func (p *Persister) LoadText(s string, obj Object) error {
	v, err := text.Decode(s, p.textOpts...)
	if err != nil {
		return err
	}
	rec, ok := v.(*graphpack.Dict)
	if !ok {
		return errors.Errorf("graph: encoded root is a %s, not a record", v.Kind())
	}
	return p.LoadRecord(rec, obj)
}

// LoadRecord populates obj from an already decoded record. Fields holding
// another record are loaded into a new object from the Resolver, unless that
// record was already loaded during this call, in which case the existing
// object is used. Records nested inside containers are left as dicts.
func (p *Persister) LoadRecord(rec *graphpack.Dict, obj Object) error {
	if _, _, ok := graphpack.RecordInfo(rec); !ok {
		return errors.New("graph: dict is not a record")
	}
	l := &loader{
		resolver: p.resolver,
		log:      p.log,
		byID:     make(map[int64]Object),
		byDict:   make(map[*graphpack.Dict]Object),
	}
	return l.load(rec, obj)
}

// loader holds the objects reconstructed during one load call.
type loader struct {
	resolver Resolver
	log      log.Logger

	byID   map[int64]Object
	byDict map[*graphpack.Dict]Object
}

func (l *loader) load(rec *graphpack.Dict, obj Object) error {
	typeName, id, _ := graphpack.RecordInfo(rec)

	if bl, ok := obj.(BeforeLoader); ok {
		if err := bl.BeforeLoad(); err != nil {
			return errors.Wrapf(err, "graph: before load of %s", typeName)
		}
	}

	l.byDict[rec] = obj
	if id >= 0 {
		l.byID[id] = obj
	}

	var err error
	rec.Range(func(k, v graphpack.Value) bool {
		name, isStr := k.(graphpack.String)
		if !isStr {
			err = errors.Errorf("graph: %s record has a %s key", typeName, k.Kind())
			return false
		}
		if graphpack.IsReservedKey(string(name)) {
			return true
		}
		fv, ferr := l.field(v)
		if ferr != nil {
			err = errors.Wrapf(ferr, "graph: field %s.%s", typeName, name)
			return false
		}
		if ferr := obj.SetField(string(name), fv); ferr != nil {
			err = errors.Wrapf(ferr, "graph: failed to set %s.%s", typeName, name)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}

	if al, ok := obj.(AfterLoader); ok {
		if err := al.AfterLoad(); err != nil {
			return errors.Wrapf(err, "graph: after load of %s", typeName)
		}
	}
	level.Debug(l.log).Log("event", "record loaded", "type", typeName, "id", id)
	return nil
}

// field turns a record value into its object and leaves everything else as
// it is.
func (l *loader) field(v graphpack.Value) (graphpack.Value, error) {
	d, ok := v.(*graphpack.Dict)
	if !ok {
		return v, nil
	}
	typeName, id, isRec := graphpack.RecordInfo(d)
	if !isRec {
		return v, nil
	}
	if obj, done := l.byDict[d]; done {
		return graphpack.Obj(obj), nil
	}
	if id >= 0 {
		if obj, done := l.byID[id]; done {
			return graphpack.Obj(obj), nil
		}
	}

	child, err := l.resolver.Resolve(typeName)
	if err != nil {
		return nil, err
	}
	if err := l.load(d, child); err != nil {
		return nil, err
	}
	return graphpack.Obj(child), nil
}
