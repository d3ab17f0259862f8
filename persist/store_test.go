// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package persist_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/graphpack/persist"
	"github.com/ssbc/graphpack/persist/persistfakes"
)

func TestStoreKeys(t *testing.T) {
	r := require.New(t)

	s, err := persist.NewStore(new(persistfakes.FakeSaver))
	r.NoError(err)

	r.Equal(persist.Key("graph.pcksave"), s.Key("graph"))
	r.Equal(persist.Key("dir/graph.pcksave"), s.Key("dir/graph"))
	r.Equal(persist.Key("dir.v2/graph.pcksave"), s.Key("dir.v2/graph"))
	r.Equal(persist.Key("graph.txt"), s.Key("graph.txt"))

	s, err = persist.NewStore(new(persistfakes.FakeSaver), persist.WithSuffix("gp"))
	r.NoError(err)
	r.Equal(persist.Key("graph.gp"), s.Key("graph"))

	for _, bad := range []string{"", ".gp", "a/b"} {
		_, err = persist.NewStore(new(persistfakes.FakeSaver), persist.WithSuffix(bad))
		r.Error(err, "suffix %q", bad)
	}

	_, err = persist.NewStore(nil)
	r.Error(err)
}

func TestStoreRetrieve(t *testing.T) {
	r := require.New(t)

	fake := new(persistfakes.FakeSaver)
	s, err := persist.NewStore(fake)
	r.NoError(err)

	r.NoError(s.Store("a/b", []byte("0:i1")))
	r.Equal(1, fake.PutCallCount())
	k, data := fake.PutArgsForCall(0)
	r.Equal(persist.Key("a/b.pcksave"), k)
	r.Equal([]byte("0:i1"), data)

	fake.GetReturnsOnCall(0, nil, persist.ErrNotFound)
	fake.GetReturnsOnCall(1, []byte("0:i1"), nil)
	fake.GetReturnsOnCall(2, nil, errors.New("disk on fire"))

	got, found, err := s.Retrieve("missing")
	r.NoError(err)
	r.False(found)
	r.Nil(got)

	got, found, err = s.Retrieve("a/b")
	r.NoError(err)
	r.True(found)
	r.Equal([]byte("0:i1"), got)
	r.Equal(persist.Key("a/b.pcksave"), fake.GetArgsForCall(1))

	_, found, err = s.Retrieve("a/b")
	r.Error(err)
	r.False(found)

	fake.PutReturns(errors.New("read only"))
	r.Error(s.Store("c", []byte("0:n")))

	fake.ListReturns([]persist.Key{persist.Key("a/b.pcksave"), persist.Key("c.pcksave")}, nil)
	ids, err := s.IDs()
	r.NoError(err)
	r.Equal([]string{"a/b.pcksave", "c.pcksave"}, ids)

	r.NoError(s.Close())
}
