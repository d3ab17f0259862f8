// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// pckdump prints graphs kept in one of the storage backends.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"
	"go.mindeco.de/logging"

	"github.com/ssbc/graphpack"
	"github.com/ssbc/graphpack/codec/text"
	"github.com/ssbc/graphpack/persist"
	pbadger "github.com/ssbc/graphpack/persist/badger"
	"github.com/ssbc/graphpack/persist/compress"
	"github.com/ssbc/graphpack/persist/fs"
	"github.com/ssbc/graphpack/persist/mkv"
	"github.com/ssbc/graphpack/persist/sqlite"
)

var check = logging.CheckFatal

type config struct {
	backend string
	path    string
	prefix  string
	zstd    bool
	suffix  string
	sep     string
	list    bool
	raw     bool
}

func main() {
	var cfg config
	flagSet := pflag.NewFlagSet("pckdump", pflag.ContinueOnError)
	flagSet.StringVarP(&cfg.backend, "backend", "b", "fs", "storage backend: fs, badger, mkv or sqlite")
	flagSet.StringVarP(&cfg.path, "path", "p", ".", "directory (fs, badger) or database file (mkv, sqlite)")
	flagSet.StringVar(&cfg.prefix, "prefix", "", "key prefix of a saver sharing its badger database")
	flagSet.BoolVar(&cfg.zstd, "zstd", false, "values are zstd compressed")
	flagSet.StringVar(&cfg.suffix, "suffix", persist.DefaultSuffix, "extension added to ids without one")
	flagSet.StringVar(&cfg.sep, "sep", text.DefaultSeparator, "dict key/value separator of the encoding")
	flagSet.BoolVarP(&cfg.list, "list", "l", false, "list stored ids instead of printing graphs")
	flagSet.BoolVar(&cfg.raw, "raw", false, "print the encoded text as stored")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	ids := flagSet.Args()
	if !cfg.list && len(ids) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <id>...\n", os.Args[0])
		flagSet.PrintDefaults()
		os.Exit(2)
	}

	logging.SetupLogging(nil)
	logger := logging.Logger("pckdump")

	saver, err := openSaver(cfg, logger)
	check(err)

	store, err := persist.NewStore(saver,
		persist.WithSuffix(cfg.suffix),
		persist.WithLogger(logger))
	check(err)
	defer store.Close()

	if cfg.list {
		check(list(os.Stdout, store))
		return
	}
	check(dump(os.Stdout, logger, store, cfg, ids))
}

func openSaver(cfg config, logger log.Logger) (persist.Saver, error) {
	var (
		s   persist.Saver
		err error
	)
	if cfg.prefix != "" && cfg.backend != "badger" {
		return nil, errors.Errorf("pckdump: --prefix needs the badger backend, not %q", cfg.backend)
	}
	switch cfg.backend {
	case "fs":
		s = fs.New(cfg.path)
	case "badger":
		o := pbadger.BadgerOpts(cfg.path).WithLogger(pbadger.Logger(logger))
		if cfg.prefix == "" {
			s, err = pbadger.Open(o)
		} else {
			s, err = openShared(o, cfg.prefix)
		}
	case "mkv":
		s, err = mkv.New(cfg.path)
	case "sqlite":
		s, err = sqlite.New(cfg.path)
	default:
		return nil, errors.Errorf("pckdump: unknown backend %q", cfg.backend)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "pckdump: failed to open %s at %s", cfg.backend, filepath.Clean(cfg.path))
	}
	if cfg.zstd {
		return compress.New(s)
	}
	return s, nil
}

// sharedSaver owns the database behind a prefixed saver.
type sharedSaver struct {
	*pbadger.Saver
	db *badger.DB
}

func (s sharedSaver) Close() error { return s.db.Close() }

func openShared(o badger.Options, prefix string) (persist.Saver, error) {
	db, err := badger.Open(o)
	if err != nil {
		return nil, err
	}
	shared, err := pbadger.NewShared(db, []byte(prefix))
	if err != nil {
		db.Close()
		return nil, err
	}
	return sharedSaver{Saver: shared, db: db}, nil
}

func list(w io.Writer, store *persist.Store) error {
	ids, err := store.IDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
	return nil
}

func dump(w io.Writer, logger log.Logger, store *persist.Store, cfg config, ids []string) error {
	for _, id := range ids {
		data, found, err := store.Retrieve(id)
		if err != nil {
			return err
		}
		if !found {
			level.Warn(logger).Log("event", "not found", "id", id)
			continue
		}

		fmt.Fprintf(w, "%s: %d bytes\n", store.Key(id), len(data))
		if cfg.raw {
			fmt.Fprintln(w, string(data)+"\n")
			continue
		}

		v, err := text.Decode(string(data), text.WithSeparator(cfg.sep))
		if err != nil {
			return errors.Wrapf(err, "pckdump: failed to decode %q", id)
		}
		if d, ok := v.(*graphpack.Dict); ok {
			if typ, tok, isRec := graphpack.RecordInfo(d); isRec {
				fmt.Fprintf(w, "record %s (token %d)\n", typ, tok)
			}
		}
		fmt.Fprintln(w, graphpack.Sprint(v)+"\n")
	}
	return nil
}
