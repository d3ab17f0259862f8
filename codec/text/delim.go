// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package text

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ssbc/graphpack"
)

const (
	rootPrefix = "0:"
	emptyBody  = "<empty>"
)

// delimiter returns the child delimiter of depth d. Every newline in a
// stream starts a delimiter, and the digits after it end at the colon, so
// the delimiter of one depth never occurs inside that of another.
func delimiter(d int) string {
	return "\n" + strconv.Itoa(d) + ":" + strings.Repeat(" ", d)
}

// splitChildren cuts a container body into the encodings of its children at
// depth d.
func splitChildren(body string, d int) ([]string, error) {
	if body == emptyBody {
		return nil, nil
	}
	delim := delimiter(d)
	if !strings.HasPrefix(body, delim) {
		return nil, errors.Wrapf(graphpack.ErrMalformedEncoding, "missing depth %d delimiter", d)
	}
	return strings.Split(body[len(delim):], delim), nil
}

// splitEntry cuts a dict entry at the first separator that is not the colon
// of a nested delimiter.
func splitEntry(entry, sep string) (key, value string, err error) {
	from := 0
	for {
		i := strings.Index(entry[from:], sep)
		if i < 0 {
			return "", "", errors.Wrapf(graphpack.ErrMalformedEncoding, "missing separator %q in dict entry", sep)
		}
		i += from
		if !endsDelimiterHead(entry[:i]) {
			return entry[:i], entry[i+len(sep):], nil
		}
		from = i + len(sep)
	}
}

// endsDelimiterHead reports whether s ends in a newline followed by digits.
func endsDelimiterHead(s string) bool {
	j := len(s)
	for j > 0 && s[j-1] >= '0' && s[j-1] <= '9' {
		j--
	}
	return j < len(s) && j > 0 && s[j-1] == '\n'
}

// splitToken reads the identity token and the space after it.
func splitToken(s string) (uint64, string, error) {
	i := strings.IndexByte(s, ' ')
	if i <= 0 {
		return 0, "", errors.Wrap(graphpack.ErrMalformedEncoding, "missing identity token")
	}
	tok, err := strconv.ParseUint(s[:i], 10, 64)
	if err != nil {
		return 0, "", errors.Wrapf(graphpack.ErrMalformedEncoding, "bad identity token %q", s[:i])
	}
	return tok, s[i+1:], nil
}
