// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package fs stores every key as a file below a base directory. Keys are
// slash separated relative paths.
package fs

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ssbc/graphpack/persist"
)

// tmpPrefix marks files that are still being written. Keys may not contain
// path elements starting with it.
const tmpPrefix = ".pcktmp-"

type Saver struct {
	base string
}

var _ persist.Saver = (*Saver)(nil)

func New(base string) *Saver {
	return &Saver{base: base}
}

// fileName maps key onto a path below base. Keys that would leave base are
// rejected.
func (s Saver) fileName(key persist.Key) (string, error) {
	k := string(key)
	if k == "" || strings.ContainsRune(k, 0) || strings.HasPrefix(k, "/") {
		return "", errors.Errorf("persist/fs: invalid key %q", k)
	}
	clean := path.Clean(k)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errors.Errorf("persist/fs: key %q escapes the base directory", k)
	}
	for _, elem := range strings.Split(clean, "/") {
		if strings.HasPrefix(elem, tmpPrefix) {
			return "", errors.Errorf("persist/fs: key %q uses the reserved prefix %s", k, tmpPrefix)
		}
	}
	return filepath.Join(s.base, filepath.FromSlash(clean)), nil
}

func (s Saver) Put(key persist.Key, data []byte) error {
	fname, err := s.fileName(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fname), 0700); err != nil {
		return errors.Wrap(err, "persist/fs: failed to create directories")
	}

	// write next to the target and rename so readers never see half a file
	f, err := os.CreateTemp(filepath.Dir(fname), tmpPrefix+"*")
	if err != nil {
		return errors.Wrap(err, "persist/fs: failed to create temp file")
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "persist/fs: failed to write %s", tmp)
	}
	if err := os.Rename(tmp, fname); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "persist/fs: failed to move %s into place", fname)
	}
	return nil
}

func (s Saver) Get(key persist.Key) ([]byte, error) {
	fname, err := s.fileName(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persist.ErrNotFound
		}
		return nil, errors.Wrapf(err, "persist/fs: failed to read %s", fname)
	}
	return data, nil
}

func (s Saver) List() ([]persist.Key, error) {
	var keys []persist.Key
	err := filepath.Walk(s.base, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == s.base {
				return filepath.SkipDir
			}
			return err
		}
		if info.IsDir() || strings.HasPrefix(info.Name(), tmpPrefix) {
			return nil
		}
		rel, err := filepath.Rel(s.base, p)
		if err != nil {
			return err
		}
		keys = append(keys, persist.Key(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "persist/fs: failed to walk base directory")
	}
	return keys, nil
}
