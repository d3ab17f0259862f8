// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package text implements the self-delimiting text encoding of graphpack
// values.
//
// Every node starts with a one byte tag. Containers follow it with their
// identity token and a space, then their children, each preceded by a
// delimiter unique to the child depth:
//
//	0:d0
//	1: sa:l1
//	2:  i1
//	2:  r0
//
// is the dict {"a": [1, <the dict itself>]}. The root carries the prefix
// "0:". Strings that contain the separator or a newline, byte strings and
// arrays are hex encoded.
package text

import (
	"io"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/ssbc/graphpack"
)

// NewCodec returns a graphpack.Codec using this encoding. The same options
// apply to both directions.
func NewCodec(opts ...Option) graphpack.Codec {
	return &codec{opts: opts}
}

type codec struct {
	opts []Option
}

var _ graphpack.Codec = (*codec)(nil)

func (c *codec) Marshal(v interface{}) ([]byte, error) {
	s, err := Encode(v, c.opts...)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (c *codec) Unmarshal(data []byte) (graphpack.Value, error) {
	return Decode(string(data), c.opts...)
}

func (c *codec) NewEncoder(w io.Writer) graphpack.Encoder {
	return &encoderW{w: w, opts: c.opts}
}

// NewDecoder returns a decoder that reads r to the end and decodes one graph.
// The encoding has no length prefix, so a reader holds exactly one graph.
func (c *codec) NewDecoder(r io.Reader) graphpack.Decoder {
	return &decoderR{r: r, opts: c.opts}
}

type encoderW struct {
	w    io.Writer
	opts []Option
}

func (e *encoderW) Encode(v interface{}) error {
	s, err := Encode(v, e.opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(e.w, s)
	return errors.Wrap(err, "text: failed to write encoding")
}

type decoderR struct {
	r    io.Reader
	opts []Option
}

func (d *decoderR) Decode() (graphpack.Value, error) {
	data, err := ioutil.ReadAll(d.r)
	if err != nil {
		return nil, errors.Wrap(err, "text: failed to read encoding")
	}
	if len(data) == 0 {
		return nil, io.EOF
	}
	return Decode(string(data), d.opts...)
}
