// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graphpack

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// HashKey returns a string that is equal for equal hashable values. It is
// what Dict and Set index by.
func HashKey(v Value) (string, error) {
	var sb strings.Builder
	if err := writeHashKey(&sb, v, nil); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeHashKey(sb *strings.Builder, v Value, visiting map[*Tuple]struct{}) error {
	if IsNull(v) {
		sb.WriteByte('n')
		return nil
	}
	switch tv := v.(type) {
	case Bool:
		if tv {
			sb.WriteString("o1")
		} else {
			sb.WriteString("o0")
		}
	case Int:
		sb.WriteByte('i')
		sb.WriteString(strconv.FormatInt(int64(tv), 10))
	case Float:
		sb.WriteByte('f')
		sb.WriteString(strconv.FormatFloat(float64(tv), 'g', -1, 64))
	case String:
		writeSized(sb, 's', string(tv))
	case TypeTag:
		sb.WriteByte('y')
		sb.WriteString(strconv.Itoa(int(tv)))
	case *Bytes:
		writeSized(sb, 'b', string(tv.Data))
	case *Tuple:
		if _, ok := visiting[tv]; ok {
			return errors.Wrap(ErrUnhashable, "tuple contains itself")
		}
		if visiting == nil {
			visiting = make(map[*Tuple]struct{})
		}
		visiting[tv] = struct{}{}
		sb.WriteString("t")
		sb.WriteString(strconv.Itoa(len(tv.Items)))
		sb.WriteByte('(')
		for _, it := range tv.Items {
			if err := writeHashKey(sb, it, visiting); err != nil {
				return err
			}
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
		delete(visiting, tv)
	default:
		return errors.Wrapf(ErrUnhashable, "kind %s", v.Kind())
	}
	return nil
}

func writeSized(sb *strings.Builder, tag byte, s string) {
	sb.WriteByte(tag)
	sb.WriteString(strconv.Itoa(len(s)))
	sb.WriteByte(':')
	sb.WriteString(s)
}
