// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package text

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ssbc/graphpack"
	"github.com/ssbc/graphpack/array"
)

// Decode rebuilds the graph encoded in s. Shared containers come back as the
// same pointer and cycles are restored. Any framing, array or reference error
// aborts the call and no partial graph is returned.
func Decode(s string, opts ...Option) (graphpack.Value, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(s, rootPrefix) {
		return nil, errors.Wrap(graphpack.ErrMalformedEncoding, "missing root prefix")
	}

	dec := &decoder{
		opts:  o,
		table: make(map[uint64]graphpack.Value),
		open:  make(map[graphpack.Value]struct{}),
	}
	var result graphpack.Value
	dec.stack = append(dec.stack, decTask{
		text: s[len(rootPrefix):],
		done: func(v graphpack.Value) error {
			result = v
			return nil
		},
	})
	if err := dec.run(); err != nil {
		return nil, err
	}
	return result, nil
}

// decTask either decodes text into a value handed to done, or, when finish
// is set, runs after all tasks pushed above it are complete.
type decTask struct {
	text  string
	depth int
	done  func(graphpack.Value) error

	finish func() error
}

type decoder struct {
	opts  options
	stack []decTask

	// table maps identity tokens to the containers registered under them.
	table map[uint64]graphpack.Value
	// open holds the containers whose children are still being decoded.
	open map[graphpack.Value]struct{}
}

func (d *decoder) run() error {
	for len(d.stack) > 0 {
		t := d.stack[len(d.stack)-1]
		d.stack = d.stack[:len(d.stack)-1]
		var err error
		if t.finish != nil {
			err = t.finish()
		} else {
			err = d.node(t)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) push(t decTask) { d.stack = append(d.stack, t) }

func (d *decoder) register(tok uint64, v graphpack.Value) error {
	if _, dup := d.table[tok]; dup {
		return errors.Wrapf(graphpack.ErrMalformedEncoding, "identity token %d registered twice", tok)
	}
	d.table[tok] = v
	return nil
}

// holdsOpen reports whether v is, or is a tuple reaching, a container that
// is not complete yet. Such a value cannot be hashed stably.
func (d *decoder) holdsOpen(v graphpack.Value, seen map[*graphpack.Tuple]bool) bool {
	if _, ok := d.open[v]; ok {
		return true
	}
	tp, ok := v.(*graphpack.Tuple)
	if !ok || seen[tp] {
		return false
	}
	seen[tp] = true
	for _, item := range tp.Items {
		if d.holdsOpen(item, seen) {
			return true
		}
	}
	return false
}

func (d *decoder) hashable(v graphpack.Value, what string, depth int) error {
	if d.holdsOpen(v, make(map[*graphpack.Tuple]bool)) {
		return errors.Wrapf(graphpack.ErrUnhashable, "text: %s at depth %d refers to an unfinished container", what, depth)
	}
	return nil
}

func (d *decoder) node(t decTask) error {
	if t.text == "" {
		return errors.Wrapf(graphpack.ErrMalformedEncoding, "empty node at depth %d", t.depth)
	}
	tag, rest := t.text[0], t.text[1:]

	switch tag {
	case 'n':
		if rest != "" {
			return malformed(t, "trailing data after null")
		}
		return t.done(graphpack.Null{})

	case 'o':
		switch rest {
		case "1":
			return t.done(graphpack.Bool(true))
		case "0":
			return t.done(graphpack.Bool(false))
		}
		return malformed(t, "bad bool literal")

	case 'i':
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return malformed(t, "bad int literal")
		}
		return t.done(graphpack.Int(n))

	case 'f':
		f, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return malformed(t, "bad float literal")
		}
		return t.done(graphpack.Float(f))

	case 's':
		return t.done(graphpack.String(rest))

	case graphpack.TagEscapedString:
		b, err := hex.DecodeString(rest)
		if err != nil {
			return malformed(t, "bad escaped string")
		}
		return t.done(graphpack.String(b))

	case 'y':
		if len(rest) != 1 {
			return malformed(t, "bad type tag")
		}
		k, ok := graphpack.KindOf(rest[0])
		if !ok {
			return malformed(t, "unknown type tag")
		}
		return t.done(graphpack.TypeTag(k))

	case 'r':
		tok, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			return malformed(t, "bad reference token")
		}
		v, ok := d.table[tok]
		if !ok {
			return errors.Wrapf(graphpack.UnresolvedReferenceError{Token: tok}, "text: depth %d", t.depth)
		}
		return t.done(v)

	case 'b', 'a':
		tok, payload, err := splitToken(rest)
		if err != nil {
			return err
		}
		raw, err := hex.DecodeString(payload)
		if err != nil {
			return malformed(t, "bad hex payload")
		}
		var v graphpack.Value
		if tag == 'b' {
			v = graphpack.NewBytes(raw)
		} else {
			a, err := array.Unmarshal(raw)
			if err != nil {
				return err
			}
			v = a
		}
		if err := d.register(tok, v); err != nil {
			return err
		}
		return t.done(v)

	case 'l', 't', 'e':
		tok, body, err := splitToken(rest)
		if err != nil {
			return err
		}
		children, err := splitChildren(body, t.depth+1)
		if err != nil {
			return err
		}
		var (
			v   graphpack.Value
			add func(graphpack.Value) error
		)
		switch tag {
		case 'l':
			l := &graphpack.List{Items: make([]graphpack.Value, 0, len(children))}
			v, add = l, func(c graphpack.Value) error { l.Append(c); return nil }
		case 't':
			tp := &graphpack.Tuple{Items: make([]graphpack.Value, 0, len(children))}
			v, add = tp, func(c graphpack.Value) error { tp.Items = append(tp.Items, c); return nil }
		default:
			set, _ := graphpack.NewSet()
			v, add = set, func(c graphpack.Value) error {
				if err := d.hashable(c, "set element", t.depth+1); err != nil {
					return err
				}
				return errors.Wrapf(set.Add(c), "text: set element at depth %d", t.depth+1)
			}
		}
		if err := d.register(tok, v); err != nil {
			return err
		}
		d.open[v] = struct{}{}
		d.push(decTask{finish: func() error {
			delete(d.open, v)
			return t.done(v)
		}})
		for i := len(children) - 1; i >= 0; i-- {
			d.push(decTask{text: children[i], depth: t.depth + 1, done: add})
		}
		return nil

	case 'd':
		tok, body, err := splitToken(rest)
		if err != nil {
			return err
		}
		entries, err := splitChildren(body, t.depth+1)
		if err != nil {
			return err
		}
		dict := graphpack.NewDict()
		if err := d.register(tok, dict); err != nil {
			return err
		}
		d.open[dict] = struct{}{}
		d.push(decTask{finish: func() error {
			delete(d.open, dict)
			return t.done(dict)
		}})
		for i := len(entries) - 1; i >= 0; i-- {
			ktext, vtext, err := splitEntry(entries[i], d.opts.sep)
			if err != nil {
				return err
			}
			var key, val graphpack.Value
			d.push(decTask{finish: func() error {
				if err := d.hashable(key, "dict key", t.depth+1); err != nil {
					return err
				}
				return errors.Wrapf(dict.Set(key, val), "text: dict key at depth %d", t.depth+1)
			}})
			d.push(decTask{text: vtext, depth: t.depth + 1, done: func(v graphpack.Value) error { val = v; return nil }})
			d.push(decTask{text: ktext, depth: t.depth + 1, done: func(v graphpack.Value) error { key = v; return nil }})
		}
		return nil
	}

	return errors.Wrapf(graphpack.ErrMalformedEncoding, "unknown tag %q at depth %d", tag, t.depth)
}

func malformed(t decTask, msg string) error {
	return errors.Wrapf(graphpack.ErrMalformedEncoding, "%s at depth %d: %q", msg, t.depth, truncate(t.text))
}

func truncate(s string) string {
	const max = 32
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
