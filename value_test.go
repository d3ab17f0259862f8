// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graphpack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

type node struct {
	Name string
	Next *node
}

func (n *node) TypeName() string { return "node" }

func (n *node) Fields() []Field {
	var next Value = Null{}
	if n.Next != nil {
		next = Obj(n.Next)
	}
	return []Field{{Name: "name", Value: String(n.Name)}, {Name: "next", Value: next}}
}

type marker struct{}

func (*marker) TypeName() string { return "marker" }
func (*marker) Fields() []Field { return nil }

func TestValueOf(t *testing.T) {
	type testcase struct {
		in   interface{}
		want Value
	}
	tcs := []testcase{
		{nil, Null{}},
		{true, Bool(true)},
		{int8(-8), Int(-8)},
		{int16(16), Int(16)},
		{int32(-32), Int(-32)},
		{int64(math.MinInt64), Int(math.MinInt64)},
		{42, Int(42)},
		{uint(7), Int(7)},
		{uint8(255), Int(255)},
		{uint16(65535), Int(65535)},
		{uint32(math.MaxUint32), Int(math.MaxUint32)},
		{uint64(math.MaxInt64), Int(math.MaxInt64)},
		{float16.Fromfloat32(1.5), Float(1.5)},
		{float32(0.25), Float(0.25)},
		{3.75, Float(3.75)},
		{"s", String("s")},
		{KindTuple, TypeTag(KindTuple)},
		{Int(5), Int(5)},
		{(*List)(nil), Null{}},
	}
	for _, tc := range tcs {
		got, err := ValueOf(tc.in)
		require.NoError(t, err, "%T", tc.in)
		assert.Equal(t, tc.want, got, "%T", tc.in)
	}

	b, err := ValueOf([]byte("raw"))
	require.NoError(t, err)
	require.IsType(t, &Bytes{}, b)
	assert.Equal(t, []byte("raw"), b.(*Bytes).Data)

	n := &node{Name: "a"}
	o, err := ValueOf(n)
	require.NoError(t, err)
	assert.Equal(t, Obj(n), o)

	_, err = ValueOf(uint64(math.MaxUint64))
	assert.True(t, IsUnsupportedValue(err))

	_, err = ValueOf(map[string]int{})
	assert.True(t, IsUnsupportedValue(err))
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(Null{}))
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull((*Dict)(nil)))
	assert.True(t, IsNull(Object{}))
	assert.True(t, IsNull(Obj((*node)(nil))))

	assert.False(t, IsNull(Int(0)))
	assert.False(t, IsNull(String("")))
	assert.False(t, IsNull(NewList()))
	assert.False(t, IsNull(Obj(&node{})))
}

func TestIdentity(t *testing.T) {
	r := require.New(t)

	l := NewList()
	id1, ok := Identity(l)
	r.True(ok)
	id2, ok := Identity(l)
	r.True(ok)
	r.Same(id1, id2)

	other, ok := Identity(NewList())
	r.True(ok)
	r.NotSame(id1, other)

	_, ok = Identity(Int(1))
	r.False(ok)
	_, ok = Identity(String("x"))
	r.False(ok)
	_, ok = Identity((*List)(nil))
	r.False(ok)

	n := &node{}
	oa, ok := Identity(Obj(n))
	r.True(ok)
	ob, ok := Identity(Obj(n))
	r.True(ok)
	r.Same(oa, ob)

	// zero-size pointees may share an address
	_, ok = Identity(Obj(new(marker)))
	r.False(ok)
	r.False(IsNull(Obj(new(marker))))
	r.True(IsNull(Obj((*marker)(nil))))
}

func TestHashKey(t *testing.T) {
	r := require.New(t)

	distinct := []Value{
		Null{},
		Bool(true),
		Bool(false),
		Int(1),
		Float(1),
		String("1"),
		String("i1"),
		NewBytes([]byte("1")),
		TypeTag(KindInt),
		NewTuple(Int(1)),
		NewTuple(Int(1), Int(2)),
		NewTuple(NewTuple(Int(1)), Int(2)),
		NewTuple(String("a,b")),
		NewTuple(String("a"), String("b")),
	}
	seen := make(map[string]int)
	for i, v := range distinct {
		h, err := HashKey(v)
		r.NoError(err, "%d", i)
		prev, dup := seen[h]
		r.False(dup, "value %d collides with %d", i, prev)
		seen[h] = i
	}

	h1, err := HashKey(NewTuple(Int(1), String("x")))
	r.NoError(err)
	h2, err := HashKey(NewTuple(Int(1), String("x")))
	r.NoError(err)
	r.Equal(h1, h2)

	for _, v := range []Value{NewList(), NewDict(), &Set{}, &Array{}, NewTuple(NewList()), Obj(&node{})} {
		_, err := HashKey(v)
		r.ErrorIs(err, ErrUnhashable, "%T", v)
	}

	self := NewTuple(Int(1))
	self.Items = append(self.Items, self)
	_, err = HashKey(self)
	r.ErrorIs(err, ErrUnhashable)
}

func TestRecordInfo(t *testing.T) {
	r := require.New(t)

	d := NewDict()
	_, _, ok := RecordInfo(d)
	r.False(ok)

	d.SetString(RecordTypeKey, String("node"))
	name, id, ok := RecordInfo(d)
	r.True(ok)
	r.Equal("node", name)
	r.EqualValues(-1, id)

	d.SetString(RecordIDKey, Int(4))
	_, id, ok = RecordInfo(d)
	r.True(ok)
	r.EqualValues(4, id)

	_, _, ok = RecordInfo(nil)
	r.False(ok)

	r.True(IsReservedKey("0"))
	r.True(IsReservedKey("1"))
	r.False(IsReservedKey("2"))
}

func TestKindTags(t *testing.T) {
	for _, k := range []Kind{KindNull, KindBool, KindInt, KindFloat, KindString, KindBytes, KindList, KindTuple, KindSet, KindDict, KindArray, KindType, KindRef} {
		tag, ok := k.Tag()
		require.True(t, ok, "%s", k)
		back, ok := KindOf(tag)
		require.True(t, ok)
		assert.Equal(t, k, back)
	}
	_, ok := KindRecord.Tag()
	assert.False(t, ok)
	_, ok = KindOf(TagEscapedString)
	assert.False(t, ok)
}
