// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package graphpack

// Dict is an insertion ordered mapping with hashable keys.
type Dict struct {
	keys  []Value
	vals  []Value
	index map[string]int
}

func NewDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

func (*Dict) Kind() Kind { return KindDict }

// Set inserts or replaces the entry for k. Replacing keeps the original
// position.
func (d *Dict) Set(k, v Value) error {
	h, err := HashKey(k)
	if err != nil {
		return err
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[h]; ok {
		d.vals[i] = v
		return nil
	}
	d.index[h] = len(d.keys)
	d.keys = append(d.keys, k)
	d.vals = append(d.vals, v)
	return nil
}

// SetString is Set with a String key.
func (d *Dict) SetString(k string, v Value) {
	// string keys are always hashable
	_ = d.Set(String(k), v)
}

func (d *Dict) Get(k Value) (Value, bool) {
	h, err := HashKey(k)
	if err != nil {
		return nil, false
	}
	i, ok := d.index[h]
	if !ok {
		return nil, false
	}
	return d.vals[i], true
}

// GetString is Get with a String key.
func (d *Dict) GetString(k string) (Value, bool) {
	return d.Get(String(k))
}

func (d *Dict) Delete(k Value) bool {
	h, err := HashKey(k)
	if err != nil {
		return false
	}
	i, ok := d.index[h]
	if !ok {
		return false
	}
	delete(d.index, h)
	d.keys = append(d.keys[:i], d.keys[i+1:]...)
	d.vals = append(d.vals[:i], d.vals[i+1:]...)
	for key, j := range d.index {
		if j > i {
			d.index[key] = j - 1
		}
	}
	return true
}

func (d *Dict) Len() int { return len(d.keys) }

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Value {
	out := make([]Value, len(d.keys))
	copy(out, d.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (d *Dict) Range(fn func(k, v Value) bool) {
	for i := range d.keys {
		if !fn(d.keys[i], d.vals[i]) {
			return
		}
	}
}

// Set is an insertion ordered collection of unique hashable values.
type Set struct {
	items []Value
	index map[string]struct{}
}

func NewSet(items ...Value) (*Set, error) {
	s := &Set{index: make(map[string]struct{})}
	for _, it := range items {
		if err := s.Add(it); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (*Set) Kind() Kind { return KindSet }

// Add inserts v unless an equal value is already present.
func (s *Set) Add(v Value) error {
	h, err := HashKey(v)
	if err != nil {
		return err
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[h]; ok {
		return nil
	}
	s.index[h] = struct{}{}
	s.items = append(s.items, v)
	return nil
}

func (s *Set) Has(v Value) bool {
	h, err := HashKey(v)
	if err != nil {
		return false
	}
	_, ok := s.index[h]
	return ok
}

func (s *Set) Len() int { return len(s.items) }

// Items returns the elements in insertion order.
func (s *Set) Items() []Value {
	out := make([]Value, len(s.items))
	copy(out, s.items)
	return out
}
