// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graphpack

import (
	"io"
)

// Codec turns whole graphs into bytes and back.
type Codec interface {
	// Marshal encodes a single graph and returns the serialized byte slice.
	Marshal(value interface{}) ([]byte, error)

	// Unmarshal decodes and returns the graph stored in data.
	Unmarshal(data []byte) (Value, error)

	NewDecoder(io.Reader) Decoder
	NewEncoder(io.Writer) Encoder
}

type Decoder interface {
	Decode() (Value, error)
}

type Encoder interface {
	Encode(v interface{}) error
}
