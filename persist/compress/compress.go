// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package compress wraps a persist.Saver so that values are stored zstd
// compressed. Keys are left as they are.
package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/ssbc/graphpack/persist"
)

type Saver struct {
	inner persist.Saver

	enc *zstd.Encoder
	dec *zstd.Decoder
}

var _ persist.Saver = (*Saver)(nil)

// New wraps inner. opts tune the encoder; decoding needs no options.
func New(inner persist.Saver, opts ...zstd.EOption) (*Saver, error) {
	if inner == nil {
		return nil, errors.New("persist/compress: nil saver")
	}
	opts = append([]zstd.EOption{zstd.WithEncoderLevel(zstd.SpeedDefault)}, opts...)
	enc, err := zstd.NewWriter(nil, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "persist/compress: failed to create encoder")
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, errors.Wrap(err, "persist/compress: failed to create decoder")
	}
	return &Saver{inner: inner, enc: enc, dec: dec}, nil
}

func (s *Saver) Put(key persist.Key, data []byte) error {
	return s.inner.Put(key, s.enc.EncodeAll(data, nil))
}

func (s *Saver) Get(key persist.Key) ([]byte, error) {
	packed, err := s.inner.Get(key)
	if err != nil {
		return nil, err
	}
	data, err := s.dec.DecodeAll(packed, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "persist/compress: failed to decompress %q", key)
	}
	return data, nil
}

func (s *Saver) List() ([]persist.Key, error) {
	return s.inner.List()
}

// Close releases the codec state and closes the wrapped saver if it can be
// closed.
func (s *Saver) Close() error {
	s.dec.Close()
	if err := s.enc.Close(); err != nil {
		return errors.Wrap(err, "persist/compress: failed to close encoder")
	}
	if c, ok := s.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
