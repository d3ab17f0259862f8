// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graphpack

// Kind is one of the closed set of encodable kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	KindTuple
	KindSet
	KindDict
	KindArray
	KindType
	KindRef
	// KindRecord is the in-memory kind of an Object. On the wire a record
	// is a dict with two reserved keys, so it has no tag of its own.
	KindRecord
)

// TagEscapedString marks a string literal that was hex encoded because it
// collided with the separator or contained a newline.
const TagEscapedString byte = 'S'

var kindTags = map[Kind]byte{
	KindNull:   'n',
	KindBool:   'o',
	KindInt:    'i',
	KindFloat:  'f',
	KindString: 's',
	KindBytes:  'b',
	KindList:   'l',
	KindTuple:  't',
	KindSet:    'e',
	KindDict:   'd',
	KindArray:  'a',
	KindType:   'y',
	KindRef:    'r',
}

var tagKinds = func() map[byte]Kind {
	m := make(map[byte]Kind, len(kindTags))
	for k, t := range kindTags {
		m[t] = k
	}
	return m
}()

// Tag returns the wire tag of k. ok is false for kinds without a tag.
func (k Kind) Tag() (tag byte, ok bool) {
	tag, ok = kindTags[k]
	return tag, ok
}

// KindOf maps a wire tag back to its kind.
func KindOf(tag byte) (Kind, bool) {
	k, ok := tagKinds[tag]
	return k, ok
}

// IsContainer reports whether values of kind k are handles that get an
// identity token.
func (k Kind) IsContainer() bool {
	switch k {
	case KindBytes, KindList, KindTuple, KindSet, KindDict, KindArray, KindRecord:
		return true
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindSet:
		return "set"
	case KindDict:
		return "dict"
	case KindArray:
		return "array"
	case KindType:
		return "type"
	case KindRef:
		return "ref"
	case KindRecord:
		return "record"
	}
	return "unknown"
}
