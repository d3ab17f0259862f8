// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

//go:build tools
// +build tools

// Package tools pins the generators behind the go:generate lines, e.g. the
// counterfeiter fake of persist.Saver.
package tools

import (
	_ "github.com/maxbrunsfeld/counterfeiter/v6"
)
