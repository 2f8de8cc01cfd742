// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keylist implements an ordered list (slice) of values with a
// map from a key (e.g., a name) to its index, supporting fast lookup
// by key while preserving insertion order. It backs the ordered,
// uniquely named column set of a table.
package keylist

import (
	"fmt"
	"slices"
)

// List is an ordered list of Values with a map from a key to its
// index, preserving insertion order. Keys are unique: Add returns an
// error for a duplicate key, matching the name-uniqueness invariant
// of table columns.
type List[K comparable, V any] struct {
	// Values is the ordered slice of values.
	Values []V

	// Keys is the ordered slice of keys, parallel to Values.
	Keys []K

	// indexes is the key-to-index map, built lazily.
	indexes map[K]int
}

// New returns a new [List]. The zero value is also usable directly.
func New[K comparable, V any]() *List[K, V] {
	return &List[K, V]{}
}

func (kl *List[K, V]) rebuildIndexes() {
	kl.indexes = make(map[K]int, len(kl.Keys))
	for i, k := range kl.Keys {
		kl.indexes[k] = i
	}
}

func (kl *List[K, V]) initIndexes() {
	if kl.indexes == nil {
		kl.rebuildIndexes()
	}
}

// Len returns the number of items in the list.
func (kl *List[K, V]) Len() int {
	if kl == nil {
		return 0
	}
	return len(kl.Values)
}

// Add appends the given key, value pair, returning an error if the
// key is already present.
func (kl *List[K, V]) Add(key K, val V) error {
	kl.initIndexes()
	if _, ok := kl.indexes[key]; ok {
		return fmt.Errorf("keylist.Add: key %v is already in the list", key)
	}
	kl.indexes[key] = len(kl.Values)
	kl.Keys = append(kl.Keys, key)
	kl.Values = append(kl.Values, val)
	return nil
}

// Set sets the given key to the given value, appending it if the key
// is not already present (map semantics). See [List.Add] for the
// version that errors on duplicates.
func (kl *List[K, V]) Set(key K, val V) {
	kl.initIndexes()
	if idx, ok := kl.indexes[key]; ok {
		kl.Values[idx] = val
		return
	}
	kl.indexes[key] = len(kl.Values)
	kl.Keys = append(kl.Keys, key)
	kl.Values = append(kl.Values, val)
}

// At returns the value for the given key, with the zero value for a
// missing key. See [List.AtTry] when a missing key must be detected.
func (kl *List[K, V]) At(key K) V {
	kl.initIndexes()
	if idx, ok := kl.indexes[key]; ok {
		return kl.Values[idx]
	}
	var zv V
	return zv
}

// AtTry returns the value for the given key, and whether it was found.
func (kl *List[K, V]) AtTry(key K) (V, bool) {
	kl.initIndexes()
	if idx, ok := kl.indexes[key]; ok {
		return kl.Values[idx], true
	}
	var zv V
	return zv, false
}

// IndexByKey returns the index of the given key, or -1 if not present.
func (kl *List[K, V]) IndexByKey(key K) int {
	kl.initIndexes()
	idx, ok := kl.indexes[key]
	if !ok {
		return -1
	}
	return idx
}

// DeleteByIndex deletes the items in the index range [i:j).
// It regenerates the index map.
func (kl *List[K, V]) DeleteByIndex(i, j int) {
	kl.Keys = slices.Delete(kl.Keys, i, j)
	kl.Values = slices.Delete(kl.Values, i, j)
	kl.rebuildIndexes()
}

// DeleteByKey deletes the item with the given key, returning false if
// it is not present.
func (kl *List[K, V]) DeleteByKey(key K) bool {
	idx := kl.IndexByKey(key)
	if idx < 0 {
		return false
	}
	kl.DeleteByIndex(idx, idx+1)
	return true
}

// RenameKey changes the key at the given index to the new key,
// returning an error if the new key is already present.
func (kl *List[K, V]) RenameKey(i int, key K) error {
	kl.initIndexes()
	if j, ok := kl.indexes[key]; ok && j != i {
		return fmt.Errorf("keylist.RenameKey: key %v is already in the list", key)
	}
	delete(kl.indexes, kl.Keys[i])
	kl.Keys[i] = key
	kl.indexes[key] = i
	return nil
}

// Clone returns a shallow copy of the list: keys and the value slice
// are copied, but the values themselves are shared.
func (kl *List[K, V]) Clone() *List[K, V] {
	cp := &List[K, V]{
		Values: slices.Clone(kl.Values),
		Keys:   slices.Clone(kl.Keys),
	}
	cp.rebuildIndexes()
	return cp
}

// String returns a string representation of the list.
func (kl *List[K, V]) String() string {
	sv := "{"
	for i, v := range kl.Values {
		sv += fmt.Sprintf("%v: %v, ", kl.Keys[i], v)
	}
	return sv + "}"
}
