// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mindeco.de/log"

	"github.com/ssbc/graphpack"
	"github.com/ssbc/graphpack/codec/text"
	"github.com/ssbc/graphpack/persist"
)

func TestDump(t *testing.T) {
	r := require.New(t)

	for _, backend := range []string{"fs", "mkv", "sqlite"} {
		dir := filepath.Join("testrun", t.Name(), backend)
		os.RemoveAll(dir)
		path := dir
		if backend != "fs" {
			path = filepath.Join(dir, "db")
		}

		cfg := config{backend: backend, path: path, zstd: true, suffix: persist.DefaultSuffix, sep: text.DefaultSeparator}
		saver, err := openSaver(cfg, log.NewNopLogger())
		r.NoError(err, backend)
		store, err := persist.NewStore(saver)
		r.NoError(err)

		l := graphpack.NewList(graphpack.Int(1))
		l.Append(l)
		enc, err := text.Encode(l)
		r.NoError(err)
		r.NoError(store.Store("loops/self", []byte(enc)))

		var out bytes.Buffer
		r.NoError(dump(&out, log.NewNopLogger(), store, cfg, []string{"loops/self", "missing"}))
		r.Equal(fmt.Sprintf("loops/self.pcksave: %d bytes\n&0 [1, *0]\n\n", len(enc)), out.String())

		out.Reset()
		cfg.raw = true
		r.NoError(dump(&out, log.NewNopLogger(), store, cfg, []string{"loops/self"}))
		r.Contains(out.String(), enc)

		out.Reset()
		r.NoError(list(&out, store))
		r.Equal("loops/self.pcksave\n", out.String())

		r.NoError(store.Close())
	}

	_, err := openSaver(config{backend: "tape"}, log.NewNopLogger())
	r.Error(err)
}

func TestDumpSharedBadger(t *testing.T) {
	r := require.New(t)

	dir := filepath.Join("testrun", t.Name())
	os.RemoveAll(dir)

	open := func(prefix string) *persist.Store {
		cfg := config{backend: "badger", path: dir, prefix: prefix, suffix: persist.DefaultSuffix}
		saver, err := openSaver(cfg, log.NewNopLogger())
		r.NoError(err, "prefix %q", prefix)
		store, err := persist.NewStore(saver)
		r.NoError(err)
		return store
	}

	store := open("graphs/")
	r.NoError(store.Store("n", []byte("0:i1")))
	var out bytes.Buffer
	r.NoError(list(&out, store))
	r.Equal("n.pcksave\n", out.String())
	r.NoError(store.Close())

	// the whole database shows the prefix
	store = open("")
	out.Reset()
	r.NoError(list(&out, store))
	r.Equal("graphs/n.pcksave\n", out.String())
	r.NoError(store.Close())

	store = open("other/")
	out.Reset()
	r.NoError(list(&out, store))
	r.Equal("", out.String())
	r.NoError(store.Close())

	_, err := openSaver(config{backend: "fs", path: dir, prefix: "graphs/"}, log.NewNopLogger())
	r.Error(err)
}
