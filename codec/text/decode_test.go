// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package text

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/graphpack"
	"github.com/ssbc/graphpack/array"
)

func roundTrip(t *testing.T, v interface{}, opts ...Option) graphpack.Value {
	t.Helper()
	enc, err := Encode(v, opts...)
	require.NoError(t, err)
	got, err := Decode(enc, opts...)
	require.NoError(t, err, "encoding: %q", enc)
	return got
}

func TestRoundTripScalars(t *testing.T) {
	tcs := []graphpack.Value{
		graphpack.Null{},
		graphpack.Bool(true),
		graphpack.Bool(false),
		graphpack.Int(0),
		graphpack.Int(-1),
		graphpack.Int(math.MaxInt64),
		graphpack.Int(math.MinInt64),
		graphpack.Float(0.1),
		graphpack.Float(-1e-300),
		graphpack.Float(math.Inf(1)),
		graphpack.Float(math.Inf(-1)),
		graphpack.String(""),
		graphpack.String("plain"),
		graphpack.String("with:colon"),
		graphpack.String("multi\nline\n1: fake delimiter"),
		graphpack.String("<empty>"),
		graphpack.String("ünïcödé ✓"),
		graphpack.TypeTag(graphpack.KindSet),
		graphpack.TypeTag(graphpack.KindNull),
	}
	for _, v := range tcs {
		got := roundTrip(t, v)
		assert.Equal(t, v, got)
	}

	got := roundTrip(t, graphpack.Float(math.NaN()))
	f, ok := got.(graphpack.Float)
	require.True(t, ok)
	assert.True(t, math.IsNaN(float64(f)))
}

func TestRoundTripContainers(t *testing.T) {
	r := require.New(t)

	set, err := graphpack.NewSet(graphpack.Int(1), graphpack.String("two"), graphpack.NewTuple(graphpack.Int(3), graphpack.Null{}))
	r.NoError(err)

	keyed := graphpack.NewDict()
	r.NoError(keyed.Set(graphpack.Int(1), graphpack.String("int key")))
	r.NoError(keyed.Set(graphpack.Bool(true), graphpack.String("bool key")))
	r.NoError(keyed.Set(graphpack.Null{}, graphpack.String("null key")))
	r.NoError(keyed.Set(graphpack.NewTuple(graphpack.Int(1), graphpack.String("a:b")), graphpack.NewList()))
	r.NoError(keyed.Set(graphpack.String("x:y"), graphpack.NewBytes([]byte("raw\n:bytes"))))

	nested := graphpack.NewList(
		graphpack.NewList(),
		graphpack.NewTuple(),
		graphpack.NewDict(),
		graphpack.NewBytes(nil),
		graphpack.NewList(graphpack.NewList(graphpack.NewList(graphpack.Int(3)))),
		graphpack.TypeTag(graphpack.KindArray),
	)

	for name, v := range map[string]graphpack.Value{
		"set":    set,
		"keyed":  keyed,
		"nested": nested,
	} {
		t.Run(name, func(t *testing.T) {
			got := roundTrip(t, v)
			assert.Equal(t, graphpack.Sprint(v), graphpack.Sprint(got))
			assert.Equal(t, v.Kind(), got.Kind())
		})
	}
}

func TestRoundTripOtherSeparator(t *testing.T) {
	d := graphpack.NewDict()
	d.SetString("a:b", graphpack.String("c=d"))
	d.SetString("e=f", graphpack.NewList(graphpack.String("g:h")))

	got := roundTrip(t, d, WithSeparator("="))
	assert.Equal(t, graphpack.Sprint(d), graphpack.Sprint(got))

	_, err := Decode("0:d0 \n1: sa=i1")
	assert.ErrorIs(t, err, graphpack.ErrMalformedEncoding, "default separator must not split at '='")
}

func TestCycleRestored(t *testing.T) {
	r := require.New(t)

	d := graphpack.NewDict()
	l := graphpack.NewList(d)
	d.SetString("a", l)

	got := roundTrip(t, d)
	gd, ok := got.(*graphpack.Dict)
	r.True(ok, "got %T", got)

	a, ok := gd.GetString("a")
	r.True(ok)
	gl, ok := a.(*graphpack.List)
	r.True(ok, "got %T", a)
	r.Equal(1, gl.Len())
	r.Same(gd, gl.Items[0])
}

func TestSelfContainingList(t *testing.T) {
	r := require.New(t)

	l := graphpack.NewList(graphpack.Int(1))
	l.Append(l)

	got := roundTrip(t, l)
	gl := got.(*graphpack.List)
	r.Equal(2, gl.Len())
	r.Equal(graphpack.Int(1), gl.Items[0])
	r.Same(gl, gl.Items[1])
}

func TestSharedAcyclic(t *testing.T) {
	r := require.New(t)

	shared := graphpack.NewList(graphpack.Int(1), graphpack.Int(2))
	outer := graphpack.NewDict()
	outer.SetString("x", shared)
	outer.SetString("y", shared)

	got := roundTrip(t, outer).(*graphpack.Dict)
	x, _ := got.GetString("x")
	y, _ := got.GetString("y")
	r.Same(x, y)
	r.Equal("[1, 2]", graphpack.Sprint(x))

	// equal but distinct containers stay distinct
	distinct := graphpack.NewDict()
	distinct.SetString("x", graphpack.NewList(graphpack.Int(1)))
	distinct.SetString("y", graphpack.NewList(graphpack.Int(1)))
	got = roundTrip(t, distinct).(*graphpack.Dict)
	x, _ = got.GetString("x")
	y, _ = got.GetString("y")
	r.NotSame(x, y)
}

func TestSharedTupleKey(t *testing.T) {
	r := require.New(t)

	key := graphpack.NewTuple(graphpack.Int(1), graphpack.Int(2))
	d := graphpack.NewDict()
	r.NoError(d.Set(key, graphpack.String("first")))
	d.SetString("again", key)

	got := roundTrip(t, d).(*graphpack.Dict)
	keys := got.Keys()
	r.Len(keys, 2)
	again, ok := got.GetString("again")
	r.True(ok)
	r.Same(keys[0], again)

	v, ok := got.Get(graphpack.NewTuple(graphpack.Int(1), graphpack.Int(2)))
	r.True(ok)
	r.Equal(graphpack.String("first"), v)
}

func TestDepthCeiling(t *testing.T) {
	r := require.New(t)

	inner := graphpack.NewDict()
	inner.SetString("c", graphpack.Int(1))
	mid := graphpack.NewDict()
	mid.SetString("b", inner)
	outer := graphpack.NewDict()
	outer.SetString("a", mid)

	enc, err := Encode(outer, WithDepthCeiling(1))
	r.NoError(err)
	r.Equal("0:d0 \n1: sa:n", enc)

	got, err := Decode(enc)
	r.NoError(err)
	r.Equal(`{"a": None}`, graphpack.Sprint(got))

	got = roundTrip(t, outer, WithDepthCeiling(2))
	r.Equal(`{"a": {"b": None}}`, graphpack.Sprint(got))

	// keys below the ceiling survive, values at it do not
	keyed := graphpack.NewDict()
	r.NoError(keyed.Set(graphpack.NewTuple(graphpack.NewTuple(graphpack.Int(7))), graphpack.Int(1)))
	got = roundTrip(t, keyed, WithDepthCeiling(1))
	r.Equal(`{((7)): None}`, graphpack.Sprint(got))
}

func TestArraysInGraph(t *testing.T) {
	r := require.New(t)

	m, err := array.FromSlice([]uint64{2, 2}, []float32{1, 2, 3, 4})
	r.NoError(err)
	names, err := array.FromStrings(nil, []string{"ab", "c:d"})
	r.NoError(err)

	l := graphpack.NewList(m, names, m)
	got := roundTrip(t, l).(*graphpack.List)
	r.Equal(3, got.Len())
	r.Same(got.Items[0], got.Items[2])

	gm := got.Items[0].(*graphpack.Array)
	r.Equal([]uint64{2, 2}, gm.Shape)
	vals, err := array.ToSlice(gm)
	r.NoError(err)
	r.Equal([]float32{1, 2, 3, 4}, vals)

	gs, err := array.Strings(got.Items[1].(*graphpack.Array))
	r.NoError(err)
	r.Equal([]string{"ab", "c:d"}, gs)
}

func TestRecordsDecodeToDicts(t *testing.T) {
	r := require.New(t)

	a := &peer{Name: "a"}
	b := &peer{Name: "b", Peer: a}
	a.Peer = b

	got := roundTrip(t, a, WithRecords(true))
	da := got.(*graphpack.Dict)
	typ, id, ok := graphpack.RecordInfo(da)
	r.True(ok)
	r.Equal("peer", typ)
	r.EqualValues(0, id)

	pb, _ := da.GetString("peer")
	db := pb.(*graphpack.Dict)
	typ, id, ok = graphpack.RecordInfo(db)
	r.True(ok)
	r.Equal("peer", typ)
	r.EqualValues(1, id)

	back, _ := db.GetString("peer")
	r.Same(da, back)
}

func TestDeepNesting(t *testing.T) {
	r := require.New(t)

	const depth = 300
	root := graphpack.NewList()
	cur := root
	for i := 0; i < depth; i++ {
		next := graphpack.NewList()
		cur.Append(next)
		cur = next
	}
	cur.Append(graphpack.String("bottom"))

	got := roundTrip(t, root)
	v := got
	for i := 0; i < depth; i++ {
		l, ok := v.(*graphpack.List)
		r.True(ok, "level %d: %T", i, v)
		r.Equal(1, l.Len())
		v = l.Items[0]
	}
	last := v.(*graphpack.List)
	r.Equal(graphpack.String("bottom"), last.Items[0])
}

func TestDecodeErrors(t *testing.T) {
	type testcase struct {
		name  string
		input string
		check func(error) bool
	}

	malformed := func(err error) bool { return errors.Is(err, graphpack.ErrMalformedEncoding) }

	tcs := []testcase{
		{name: "empty", input: "", check: malformed},
		{name: "no prefix", input: "i1", check: malformed},
		{name: "bad root prefix", input: "1:i1", check: malformed},
		{name: "unknown tag", input: "0:q", check: malformed},
		{name: "empty node", input: "0:", check: malformed},
		{name: "bad int", input: "0:ione", check: malformed},
		{name: "bad bool", input: "0:o2", check: malformed},
		{name: "bad float", input: "0:fx", check: malformed},
		{name: "bad escape", input: "0:Szz", check: malformed},
		{name: "bad type", input: "0:yq", check: malformed},
		{name: "null with data", input: "0:nn", check: malformed},
		{name: "missing token", input: "0:l <empty>", check: malformed},
		{name: "missing delimiter", input: "0:l0 i1", check: malformed},
		{name: "wrong depth delimiter", input: "0:l0 \n2:  i1", check: malformed},
		{name: "missing separator", input: "0:d0 \n1: sa", check: malformed},
		{name: "duplicate token", input: "0:l0 \n1: l0 <empty>", check: malformed},
		{name: "bad hex", input: "0:b0 xyz", check: malformed},
		{name: "truncated array", input: "0:a0 0200000000000000", check: func(err error) bool {
			return errors.Is(err, graphpack.ErrMalformedArray)
		}},
		{name: "unresolved", input: "0:l0 \n1: r5", check: graphpack.IsUnresolvedReference},
		{name: "forward reference", input: "0:l0 \n1: r1\n1: l1 <empty>", check: graphpack.IsUnresolvedReference},
		{name: "unhashable element", input: "0:e0 \n1: l1 <empty>", check: unhashable},
		{name: "unhashable key", input: "0:d0 \n1: d1 <empty>:i1", check: unhashable},
		{name: "set element is open parent", input: "0:t0 \n1: e1 \n2:  r0", check: unhashable},
		{name: "set element reaches open parent", input: "0:t0 \n1: e1 \n2:  t2 \n3:   r0", check: unhashable},
		{name: "dict key is open parent", input: "0:t0 \n1: d1 \n2:  r0:i1", check: unhashable},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Decode(tc.input)
			require.Error(t, err)
			assert.Nil(t, v)
			assert.True(t, tc.check(err), "unexpected error: %v", err)
		})
	}
}

func unhashable(err error) bool { return errors.Is(err, graphpack.ErrUnhashable) }
