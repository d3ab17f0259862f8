// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package persist defines the flat key/value storage that encoded graphs are
// kept in, and Store, which maps graph identifiers onto it.
package persist

import "errors"

type Key []byte

var ErrNotFound = errors.New("persist: item not found")

//go:generate counterfeiter -o persistfakes/fake_saver.go . Saver

// Saver is implemented by every storage backend.
type Saver interface {
	Put(Key, []byte) error

	// Get returns ErrNotFound if nothing was stored under the key.
	Get(Key) ([]byte, error)

	List() ([]Key, error)
}
