// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graphpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDict(t *testing.T) {
	r := require.New(t)

	d := NewDict()
	r.Equal(0, d.Len())

	d.SetString("b", Int(1))
	d.SetString("a", Int(2))
	r.NoError(d.Set(Int(1), String("int")))
	r.NoError(d.Set(NewTuple(Int(1), Int(2)), String("tuple")))
	r.Equal(4, d.Len())

	// replace keeps position
	d.SetString("b", Int(3))
	r.Equal([]Value{String("b"), String("a"), Int(1), NewTuple(Int(1), Int(2))}, d.Keys())

	v, ok := d.GetString("b")
	r.True(ok)
	r.Equal(Int(3), v)

	v, ok = d.Get(NewTuple(Int(1), Int(2)))
	r.True(ok)
	r.Equal(String("tuple"), v)

	_, ok = d.Get(String("1"))
	r.False(ok, "string and int keys must not collide")

	r.ErrorIs(d.Set(NewList(), Int(0)), ErrUnhashable)
	_, ok = d.Get(NewList())
	r.False(ok)

	r.True(d.Delete(String("b")))
	r.False(d.Delete(String("b")))
	r.Equal(3, d.Len())
	v, ok = d.Get(Int(1))
	r.True(ok)
	r.Equal(String("int"), v)

	var order []string
	d.Range(func(k, _ Value) bool {
		order = append(order, Sprint(k))
		return len(order) < 2
	})
	r.Equal([]string{`"a"`, "1"}, order)

	var zero Dict
	r.NoError(zero.Set(String("x"), Null{}))
	r.Equal(1, zero.Len())
}

func TestSet(t *testing.T) {
	r := require.New(t)

	s, err := NewSet(Int(1), Int(2), Int(1), String("x"))
	r.NoError(err)
	r.Equal(3, s.Len())
	r.Equal([]Value{Int(1), Int(2), String("x")}, s.Items())

	r.True(s.Has(Int(2)))
	r.False(s.Has(Int(3)))
	r.False(s.Has(NewList()))

	r.NoError(s.Add(NewTuple(String("a"))))
	r.True(s.Has(NewTuple(String("a"))))

	r.ErrorIs(s.Add(NewDict()), ErrUnhashable)

	_, err = NewSet(NewList())
	r.ErrorIs(err, ErrUnhashable)

	items := s.Items()
	items[0] = Int(99)
	r.True(s.Has(Int(1)), "Items returns a copy")
}

func TestSprint(t *testing.T) {
	r := require.New(t)

	r.Equal("None", Sprint(Null{}))
	r.Equal("True", Sprint(Bool(true)))
	r.Equal("1.5", Sprint(Float(1.5)))
	r.Equal(`"a\nb"`, Sprint(String("a\nb")))
	r.Equal("<type dict>", Sprint(TypeTag(KindDict)))
	r.Equal(`b"\x00a"`, Sprint(NewBytes([]byte{0, 'a'})))

	d := NewDict()
	d.SetString("k", NewList(Int(1), NewTuple(Int(2), Null{})))
	r.Equal(`{"k": [1, (2, None)]}`, Sprint(d))

	cyclic := NewList(Int(1))
	cyclic.Append(cyclic)
	r.Equal("&0 [1, *0]", Sprint(cyclic))

	shared := NewList()
	r.Equal("[&1 [], *1]", Sprint(NewList(shared, shared)))

	n := &node{Name: "a"}
	n.Next = n
	r.Equal(`&0 node{name: "a", next: *0}`, Sprint(Obj(n)))
}
