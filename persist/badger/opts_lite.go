// SPDX-FileCopyrightText: 2022 The margaret Authors
//
// SPDX-License-Identifier: MIT

//go:build lite
// +build lite

package badger

import (
	"github.com/dgraph-io/badger/v3"
)

// BadgerOpts keeps memory use low for small devices.
func BadgerOpts(dbPath string) badger.Options {
	return badger.DefaultOptions(dbPath).
		WithMemTableSize(1 << 23).
		WithValueLogFileSize(1 << 25).
		WithNumMemtables(2).
		WithNumLevelZeroTables(2).
		WithNumLevelZeroTablesStall(4).
		WithNumCompactors(2).
		WithIndexCacheSize(1 << 24).
		WithBlockCacheSize(1 << 24).
		WithLogger(nil)
}
