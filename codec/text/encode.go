// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package text

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.mindeco.de/log/level"

	"github.com/ssbc/graphpack"
	"github.com/ssbc/graphpack/array"
)

// Encode returns the text encoding of v. v may be a graphpack.Value or any Go
// value accepted by graphpack.ValueOf.
func Encode(v interface{}, opts ...Option) (string, error) {
	o, err := newOptions(opts)
	if err != nil {
		return "", err
	}
	root, err := graphpack.ValueOf(v)
	if err != nil {
		if !o.nullUnsupported {
			return "", err
		}
		level.Warn(o.log).Log("event", "unsupported value nulled", "depth", 0, "err", err)
		root = graphpack.Null{}
	}

	enc := &encoder{
		opts: o,
		ids:  make(map[interface{}]uint64),
	}
	if err := enc.run(root); err != nil {
		return "", err
	}
	return enc.buf.String(), nil
}

// encTask is either a literal to copy to the output or a node to encode.
type encTask struct {
	lit   string
	isLit bool

	v     graphpack.Value
	depth int
	// key is set for dict keys and everything below them; those are never
	// cut by the depth ceiling.
	key bool
}

type encoder struct {
	opts  options
	buf   strings.Builder
	stack []encTask

	ids  map[interface{}]uint64
	next uint64
}

func (e *encoder) run(root graphpack.Value) error {
	e.buf.WriteString(rootPrefix)
	e.stack = append(e.stack, encTask{v: root})
	for len(e.stack) > 0 {
		t := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		if t.isLit {
			e.buf.WriteString(t.lit)
			continue
		}
		if err := e.node(t); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) push(t encTask) { e.stack = append(e.stack, t) }

func (e *encoder) pushLit(s string) { e.stack = append(e.stack, encTask{lit: s, isLit: true}) }

// register assigns the next token to the identity of v.
func (e *encoder) register(id interface{}) uint64 {
	tok := e.next
	e.next++
	e.ids[id] = tok
	return tok
}

func (e *encoder) writeTagged(tag byte, tok uint64) {
	e.buf.WriteByte(tag)
	e.buf.WriteString(strconv.FormatUint(tok, 10))
	e.buf.WriteByte(' ')
}

func (e *encoder) node(t encTask) error {
	if !t.key && e.opts.hasCeiling && t.depth == e.opts.ceiling {
		e.buf.WriteByte('n')
		return nil
	}
	if graphpack.IsNull(t.v) {
		e.buf.WriteByte('n')
		return nil
	}

	id, tracked := graphpack.Identity(t.v)
	if tracked {
		if tok, seen := e.ids[id]; seen {
			e.buf.WriteByte('r')
			e.buf.WriteString(strconv.FormatUint(tok, 10))
			return nil
		}
	}

	switch v := t.v.(type) {
	case *graphpack.Dict:
		tok := e.register(id)
		e.writeTagged('d', tok)
		if v.Len() == 0 {
			e.buf.WriteString(emptyBody)
			return nil
		}
		keys := make([]graphpack.Value, 0, v.Len())
		vals := make([]graphpack.Value, 0, v.Len())
		v.Range(func(k, val graphpack.Value) bool {
			keys = append(keys, k)
			vals = append(vals, val)
			return true
		})
		e.pushEntries(keys, vals, t)

	case *graphpack.Array:
		b, err := array.Marshal(v)
		if err != nil {
			return err
		}
		tok := e.register(id)
		e.writeTagged('a', tok)
		e.buf.WriteString(hex.EncodeToString(b))

	case *graphpack.List:
		e.writeTagged('l', e.register(id))
		e.pushItems(v.Items, t)

	case *graphpack.Tuple:
		e.writeTagged('t', e.register(id))
		e.pushItems(v.Items, t)

	case *graphpack.Set:
		e.writeTagged('e', e.register(id))
		e.pushItems(v.Items(), t)

	case *graphpack.Bytes:
		e.writeTagged('b', e.register(id))
		e.buf.WriteString(hex.EncodeToString(v.Data))

	case graphpack.Int:
		e.literal('i', strconv.FormatInt(int64(v), 10))

	case graphpack.Float:
		e.literal('f', strconv.FormatFloat(float64(v), 'g', -1, 64))

	case graphpack.String:
		e.literal('s', string(v))

	case graphpack.Bool:
		if v {
			e.buf.WriteString("o1")
		} else {
			e.buf.WriteString("o0")
		}

	case graphpack.TypeTag:
		tag, ok := graphpack.Kind(v).Tag()
		if !ok {
			return e.unsupported(t)
		}
		e.buf.WriteByte('y')
		e.buf.WriteByte(tag)

	case graphpack.Object:
		if !e.opts.records || !tracked || t.key {
			return e.unsupported(t)
		}
		return e.record(v, id, t)

	default:
		return e.unsupported(t)
	}
	return nil
}

// record encodes a composite as a dict of its fields followed by the two
// reserved keys.
func (e *encoder) record(o graphpack.Object, id interface{}, t encTask) error {
	tok := e.register(id)
	fields := o.C.Fields()
	keys := make([]graphpack.Value, 0, len(fields)+2)
	vals := make([]graphpack.Value, 0, len(fields)+2)
	for _, f := range fields {
		if graphpack.IsReservedKey(f.Name) {
			return errors.Wrapf(graphpack.ErrReservedField, "%s.%s", o.C.TypeName(), f.Name)
		}
		keys = append(keys, graphpack.String(f.Name))
		vals = append(vals, f.Value)
	}
	keys = append(keys, graphpack.String(graphpack.RecordTypeKey), graphpack.String(graphpack.RecordIDKey))
	vals = append(vals, graphpack.String(o.C.TypeName()), graphpack.Int(tok))

	e.writeTagged('d', tok)
	e.pushEntries(keys, vals, t)
	return nil
}

// pushItems schedules delim child delim child ... in order.
func (e *encoder) pushItems(items []graphpack.Value, parent encTask) {
	if len(items) == 0 {
		e.buf.WriteString(emptyBody)
		return
	}
	d := parent.depth + 1
	delim := delimiter(d)
	for i := len(items) - 1; i >= 0; i-- {
		e.push(encTask{v: items[i], depth: d, key: parent.key})
		e.pushLit(delim)
	}
}

// pushEntries schedules delim key sep value ... in order.
func (e *encoder) pushEntries(keys, vals []graphpack.Value, parent encTask) {
	d := parent.depth + 1
	delim := delimiter(d)
	for i := len(keys) - 1; i >= 0; i-- {
		e.push(encTask{v: vals[i], depth: d, key: parent.key})
		e.pushLit(e.opts.sep)
		e.push(encTask{v: keys[i], depth: d, key: true})
		e.pushLit(delim)
	}
}

// literal writes a scalar, hex escaping it when it would be ambiguous inside
// a dict entry or could forge a delimiter.
func (e *encoder) literal(tag byte, s string) {
	if strings.Contains(s, e.opts.sep) || strings.ContainsRune(s, '\n') {
		e.buf.WriteByte(graphpack.TagEscapedString)
		e.buf.WriteString(hex.EncodeToString([]byte(s)))
		return
	}
	e.buf.WriteByte(tag)
	e.buf.WriteString(s)
}

func (e *encoder) unsupported(t encTask) error {
	err := graphpack.UnsupportedValueError{Value: t.v}
	if o, ok := t.v.(graphpack.Object); ok && o.C != nil {
		err.Value = o.C
	}
	if !e.opts.nullUnsupported {
		return errors.Wrapf(err, "text: depth %d", t.depth)
	}
	level.Warn(e.opts.log).Log("event", "unsupported value nulled", "depth", t.depth, "type", fmt.Sprintf("%T", err.Value))
	e.buf.WriteByte('n')
	return nil
}
