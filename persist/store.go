// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package persist

import (
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"
)

// DefaultSuffix is the extension added to identifiers that have none.
const DefaultSuffix = "pcksave"

// Store saves and retrieves encoded graphs by identifier. Identifiers are
// slash separated; the fs backend turns them into nested directories.
type Store struct {
	saver  Saver
	suffix string
	log    log.Logger
}

type StoreOption func(*Store) error

// WithSuffix replaces DefaultSuffix. ext is given without the leading dot.
func WithSuffix(ext string) StoreOption {
	return func(s *Store) error {
		if ext == "" || strings.ContainsAny(ext, "./") {
			return errors.Errorf("persist: invalid suffix %q", ext)
		}
		s.suffix = ext
		return nil
	}
}

func WithLogger(l log.Logger) StoreOption {
	return func(s *Store) error {
		if l == nil {
			return errors.New("persist: nil logger")
		}
		s.log = l
		return nil
	}
}

func NewStore(saver Saver, opts ...StoreOption) (*Store, error) {
	if saver == nil {
		return nil, errors.New("persist: nil saver")
	}
	s := &Store{
		saver:  saver,
		suffix: DefaultSuffix,
		log:    log.NewNopLogger(),
	}
	for i, o := range opts {
		if err := o(s); err != nil {
			return nil, errors.Wrapf(err, "persist: store option %d", i)
		}
	}
	return s, nil
}

// Key returns the storage key of id.
func (s *Store) Key(id string) Key {
	if path.Ext(id) == "" {
		id += "." + s.suffix
	}
	return Key(id)
}

// Store persists data under id, replacing what was there before.
func (s *Store) Store(id string, data []byte) error {
	k := s.Key(id)
	if err := s.saver.Put(k, data); err != nil {
		return errors.Wrapf(err, "persist: failed to store %q", k)
	}
	level.Debug(s.log).Log("event", "stored", "key", string(k), "size", len(data))
	return nil
}

// Retrieve returns the data stored under id. found is false, and err nil, if
// there is none.
func (s *Store) Retrieve(id string) (data []byte, found bool, err error) {
	k := s.Key(id)
	data, err = s.saver.Get(k)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "persist: failed to retrieve %q", k)
	}
	return data, true, nil
}

// IDs lists the keys of all stored graphs.
func (s *Store) IDs() ([]string, error) {
	keys, err := s.saver.List()
	if err != nil {
		return nil, errors.Wrap(err, "persist: failed to list keys")
	}
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = string(k)
	}
	return ids, nil
}

// Close closes the underlying saver if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.saver.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
