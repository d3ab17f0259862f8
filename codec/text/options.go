// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.mindeco.de/log"
)

// DefaultSeparator splits dict keys from their values.
const DefaultSeparator = ":"

type options struct {
	sep string

	ceiling    int
	hasCeiling bool

	records         bool
	nullUnsupported bool

	log log.Logger
}

// Option configures an encode or decode call.
type Option func(*options) error

// WithSeparator sets the key/value separator. It must be a single rune that
// cannot appear in literals, tokens or hex payloads. Encoder and decoder must
// agree on it.
func WithSeparator(sep string) Option {
	return func(o *options) error {
		r, size := utf8.DecodeRuneInString(sep)
		if size == 0 || size != len(sep) || r == utf8.RuneError {
			return errors.Errorf("text: separator %q is not a single rune", sep)
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune("<>+-.", r) {
			return errors.Errorf("text: separator %q collides with the encoding alphabet", sep)
		}
		o.sep = sep
		return nil
	}
}

// WithDepthCeiling replaces every value at nesting depth n with null. Dict
// keys are never cut.
func WithDepthCeiling(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return errors.Errorf("text: negative depth ceiling %d", n)
		}
		o.ceiling = n
		o.hasCeiling = true
		return nil
	}
}

// WithRecords makes the encoder turn Objects into records. Without it
// Objects are unsupported values.
func WithRecords(enabled bool) Option {
	return func(o *options) error {
		o.records = enabled
		return nil
	}
}

// WithNullUnsupported encodes unsupported values as null and logs a warning
// instead of failing the call.
func WithNullUnsupported(enabled bool) Option {
	return func(o *options) error {
		o.nullUnsupported = enabled
		return nil
	}
}

func WithLogger(l log.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return errors.New("text: nil logger")
		}
		o.log = l
		return nil
	}
}

func newOptions(opts []Option) (options, error) {
	o := options{
		sep: DefaultSeparator,
		log: log.NewNopLogger(),
	}
	for i, opt := range opts {
		if err := opt(&o); err != nil {
			return o, errors.Wrapf(err, "text: option %d", i)
		}
	}
	return o, nil
}
