// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package graphpack defines the value model of a recursive object-graph
// codec.
//
// A graph is built from scalars (Null, Bool, Int, Float, String, TypeTag),
// container handles (*Bytes, *List, *Tuple, *Set, *Dict, *Array) and
// Objects wrapping user types that implement Composite. Containers and
// objects are identified by pointer, so a graph may share sub-structures and
// contain cycles.
//
// The text encoding lives in codec/text, the binary layout of arrays in
// array, and save/load of composite types in graph.
package graphpack
