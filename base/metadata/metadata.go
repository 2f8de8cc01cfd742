// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metadata provides a map of named any elements with generic
// support for type-safe Get and nil-safe Set. Metadata keys function
// as optional fields, so a CamelCase naming convention is typical.
// Default support is provided for the "Name", "Doc", and "Source"
// standard keys.
package metadata

import (
	"fmt"
	"maps"

	"github.com/tidyframe/tidyframe/base/errors"
)

// Data is metadata as a map of named any elements.
// In general it is good practice to provide access functions that
// establish standard key names, to avoid issues with typos.
type Data map[string]any

func (md *Data) init() {
	if *md == nil {
		*md = make(map[string]any)
	}
}

// Set sets key to the given value, creating the map if needed.
func (md *Data) Set(key string, value any) {
	md.init()
	(*md)[key] = value
}

// Get gets the metadata value of the given type for the given key.
// It returns an error if the key is not present or holds a different type.
func Get[T any](md Data, key string) (T, error) {
	var zv T
	x, ok := md[key]
	if !ok {
		return zv, fmt.Errorf("key %q not found in metadata", key)
	}
	v, ok := x.(T)
	if !ok {
		return zv, fmt.Errorf("key %q has a different type than expected %T: is %T", key, zv, x)
	}
	return v, nil
}

// Copy does a shallow copy of metadata from the source.
// Pointer-based values still point at the same underlying data,
// but the two maps remain distinct.
func (md *Data) Copy(src Data) {
	if src == nil {
		return
	}
	md.init()
	maps.Copy(*md, src)
}

// SetName sets the "Name" standard key.
func (md *Data) SetName(name string) {
	md.Set("Name", name)
}

// Name returns the "Name" standard key value (empty if not set).
func (md *Data) Name() string {
	return errors.Ignore1(Get[string](*md, "Name"))
}

// SetDoc sets the "Doc" standard key.
func (md *Data) SetDoc(doc string) {
	md.Set("Doc", doc)
}

// Doc returns the "Doc" standard key value (empty if not set).
func (md *Data) Doc() string {
	return errors.Ignore1(Get[string](*md, "Doc"))
}

// SetSource sets the "Source" standard key, recording where a table
// was loaded from.
func (md *Data) SetSource(src string) {
	md.Set("Source", src)
}

// Source returns the "Source" standard key value (empty if not set).
func (md *Data) Source() string {
	return errors.Ignore1(Get[string](*md, "Source"))
}
