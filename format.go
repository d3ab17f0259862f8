// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graphpack

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint renders v for humans. Containers reached more than once are labelled
// &n on first print and shown as *n afterwards, so cyclic graphs terminate.
func Sprint(v Value) string {
	p := printer{seen: make(map[interface{}]int)}
	p.count(v)
	p.labels = make(map[interface{}]int)
	p.print(v)
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	seen   map[interface{}]int
	labels map[interface{}]int
}

func (p *printer) count(v Value) {
	id, ok := Identity(v)
	if !ok {
		return
	}
	p.seen[id]++
	if p.seen[id] > 1 {
		return
	}
	switch tv := v.(type) {
	case *List:
		for _, it := range tv.Items {
			p.count(it)
		}
	case *Tuple:
		for _, it := range tv.Items {
			p.count(it)
		}
	case *Set:
		for _, it := range tv.items {
			p.count(it)
		}
	case *Dict:
		tv.Range(func(k, val Value) bool {
			p.count(k)
			p.count(val)
			return true
		})
	case Object:
		for _, f := range tv.C.Fields() {
			p.count(f.Value)
		}
	}
}

func (p *printer) print(v Value) {
	if IsNull(v) {
		p.sb.WriteString("None")
		return
	}
	if id, ok := Identity(v); ok {
		if n, done := p.labels[id]; done {
			fmt.Fprintf(&p.sb, "*%d", n)
			return
		}
		p.labels[id] = len(p.labels)
		if p.seen[id] > 1 {
			fmt.Fprintf(&p.sb, "&%d ", p.labels[id])
		}
	}

	switch tv := v.(type) {
	case Bool:
		if tv {
			p.sb.WriteString("True")
		} else {
			p.sb.WriteString("False")
		}
	case Int:
		p.sb.WriteString(strconv.FormatInt(int64(tv), 10))
	case Float:
		p.sb.WriteString(strconv.FormatFloat(float64(tv), 'g', -1, 64))
	case String:
		p.sb.WriteString(strconv.Quote(string(tv)))
	case TypeTag:
		fmt.Fprintf(&p.sb, "<type %s>", Kind(tv))
	case *Bytes:
		fmt.Fprintf(&p.sb, "b%q", tv.Data)
	case *Array:
		fmt.Fprintf(&p.sb, "array(%s%v)", tv.Elem, tv.Shape)
	case *List:
		p.seq("[", "]", tv.Items)
	case *Tuple:
		p.seq("(", ")", tv.Items)
	case *Set:
		p.seq("{", "}", tv.items)
	case *Dict:
		p.sb.WriteByte('{')
		first := true
		tv.Range(func(k, val Value) bool {
			if !first {
				p.sb.WriteString(", ")
			}
			first = false
			p.print(k)
			p.sb.WriteString(": ")
			p.print(val)
			return true
		})
		p.sb.WriteByte('}')
	case Object:
		if tv.C == nil {
			p.sb.WriteString("None")
			return
		}
		p.sb.WriteString(tv.C.TypeName())
		p.sb.WriteByte('{')
		for i, f := range tv.C.Fields() {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(f.Name)
			p.sb.WriteString(": ")
			p.print(f.Value)
		}
		p.sb.WriteByte('}')
	default:
		fmt.Fprintf(&p.sb, "<%T>", v)
	}
}

func (p *printer) seq(open, close string, items []Value) {
	p.sb.WriteString(open)
	for i, it := range items {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.print(it)
	}
	p.sb.WriteString(close)
}
