// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package badger stores keys in a badger database, optionally sharing one
// database between several savers by prefixing their keys.
package badger

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/ssbc/graphpack/persist"
)

type Saver struct {
	db     *badger.DB
	prefix []byte

	// shared savers do not own db
	shared bool
}

var _ persist.Saver = (*Saver)(nil)

// New opens (or creates) the database at path with BadgerOpts.
func New(path string) (*Saver, error) {
	return Open(BadgerOpts(path))
}

// Open opens a database with explicit options, e.g. in-memory ones.
func Open(o badger.Options) (*Saver, error) {
	db, err := badger.Open(o)
	if err != nil {
		return nil, errors.Wrapf(err, "persist/badger: failed to open %s", o.Dir)
	}
	return &Saver{db: db}, nil
}

// NewShared returns a saver that keeps its keys below prefix in db. Closing it
// leaves db open.
func NewShared(db *badger.DB, prefix []byte) (*Saver, error) {
	if len(prefix) == 0 {
		return nil, errors.New("persist/badger: shared saver needs a prefix")
	}
	p := make([]byte, len(prefix))
	copy(p, prefix)
	return &Saver{db: db, prefix: p, shared: true}, nil
}

func (s *Saver) Close() error {
	if s.shared {
		return nil
	}
	return s.db.Close()
}

func (s *Saver) fullKey(key persist.Key) []byte {
	k := make([]byte, 0, len(s.prefix)+len(key))
	k = append(k, s.prefix...)
	return append(k, key...)
}
