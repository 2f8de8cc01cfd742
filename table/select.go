// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"strings"
)

// Selection specifies a set of columns by explicit names, name prefix,
// or name substring, optionally negated to exclude the matched set.
// The matched set is the union of all given criteria.
type Selection struct {
	// Names is an explicit sequence of column names. Selecting an
	// absent name is a [ErrKeyNotFound] error.
	Names []string

	// Prefix matches columns whose name starts with it, when non-empty.
	Prefix string

	// Contains matches columns whose name contains it, when non-empty.
	Contains string

	// Negate excludes the matched set instead of keeping it.
	Negate bool

	// AllowEmpty permits the selection to yield zero columns;
	// otherwise that is a [ErrEmptySelection] error.
	AllowEmpty bool
}

// ByNames returns a [Selection] of the given explicit column names.
func ByNames(names ...string) Selection { return Selection{Names: names} }

// ByPrefix returns a [Selection] of columns whose name starts with
// the given prefix.
func ByPrefix(prefix string) Selection { return Selection{Prefix: prefix} }

// ByContains returns a [Selection] of columns whose name contains the
// given substring.
func ByContains(sub string) Selection { return Selection{Contains: sub} }

// Negated returns the selection with the matched set excluded
// instead of kept.
func (s Selection) Negated() Selection {
	s.Negate = !s.Negate
	return s
}

// AllowingEmpty returns the selection with zero-column results
// permitted.
func (s Selection) AllowingEmpty() Selection {
	s.AllowEmpty = true
	return s
}

// Select returns a new table with only the columns matched by the
// given selection. Column data is shared with the receiver. With
// explicit names only, output columns follow the name sequence;
// otherwise they keep table order.
func (dt *Table) Select(sel Selection) (*Table, error) {
	matched := make(map[string]bool)
	for _, nm := range sel.Names {
		if !dt.HasColumn(nm) {
			return nil, fmt.Errorf("table: select column %q: %w", nm, ErrKeyNotFound)
		}
		matched[nm] = true
	}
	for _, nm := range dt.cols.Keys {
		if sel.Prefix != "" && strings.HasPrefix(nm, sel.Prefix) {
			matched[nm] = true
		}
		if sel.Contains != "" && strings.Contains(nm, sel.Contains) {
			matched[nm] = true
		}
	}
	var keep []string
	if len(sel.Names) > 0 && sel.Prefix == "" && sel.Contains == "" && !sel.Negate {
		keep = sel.Names
	} else {
		for _, nm := range dt.cols.Keys {
			if matched[nm] != sel.Negate {
				keep = append(keep, nm)
			}
		}
	}
	if len(keep) == 0 && !sel.AllowEmpty {
		return nil, fmt.Errorf("table: selection matched no columns: %w", ErrEmptySelection)
	}
	nt := New()
	nt.Meta.Copy(dt.Meta)
	nt.rows = dt.rows
	for _, nm := range keep {
		nt.cols.Set(nm, dt.cols.At(nm))
	}
	return nt, nil
}

// SelectFunc returns a new table with only the columns whose name
// satisfies the given predicate, in table order, sharing column data.
func (dt *Table) SelectFunc(pred func(name string) bool) *Table {
	nt := New()
	nt.Meta.Copy(dt.Meta)
	nt.rows = dt.rows
	for i, nm := range dt.cols.Keys {
		if pred(nm) {
			nt.cols.Set(nm, dt.cols.Values[i])
		}
	}
	return nt
}

// FilterFunc is a row predicate: it returns whether the given row of
// the table should be kept.
type FilterFunc func(dt *Table, row int) bool

// FilterRows returns a new table with only the rows satisfying the
// given predicate. The predicate is invoked once per row in original
// order, and the result preserves that order.
func (dt *Table) FilterRows(pred FilterFunc) *Table {
	var keep []int
	for r := range dt.rows {
		if pred(dt, r) {
			keep = append(keep, r)
		}
	}
	return dt.Take(keep)
}
