// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package sqlite stores keys in a single table of a sqlite3 database.
package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/ssbc/graphpack/persist"
)

const schema = `CREATE TABLE IF NOT EXISTS persisted_graphs (
	key TEXT PRIMARY KEY,
	data BLOB NOT NULL
);`

type Saver struct {
	db *sql.DB
}

var _ persist.Saver = (*Saver)(nil)

// New opens the database file at path, creating it, its directory and the
// table if needed.
func New(path string) (*Saver, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(err, "persist/sqlite: failed to create directory")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "persist/sqlite: failed to open database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "persist/sqlite: failed to create table")
	}
	return &Saver{db: db}, nil
}

func (s *Saver) Close() error {
	return s.db.Close()
}
