// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package badger

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"
)

// Logger routes badger's internal messages into l.
func Logger(l log.Logger) badger.Logger {
	return kitLogger{l: log.With(l, "module", "badger")}
}

type kitLogger struct{ l log.Logger }

func (k kitLogger) Errorf(f string, args ...interface{}) {
	level.Error(k.l).Log("msg", msg(f, args))
}

func (k kitLogger) Warningf(f string, args ...interface{}) {
	level.Warn(k.l).Log("msg", msg(f, args))
}

func (k kitLogger) Infof(f string, args ...interface{}) {
	level.Info(k.l).Log("msg", msg(f, args))
}

func (k kitLogger) Debugf(f string, args ...interface{}) {
	level.Debug(k.l).Log("msg", msg(f, args))
}

func msg(f string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(f, args...))
}
