// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clean provides dummy-value substitution, deduplication,
// column renaming, and string normalization for tables.
package clean

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/tidyframe/tidyframe/table"
)

// ReplaceDummy returns a new column in which every element equal to
// any of the given dummy values (e.g., the 9999 of a legacy dataset)
// becomes missing. The column type is preserved: dummies must be
// assignable to it, or an error is returned.
func ReplaceDummy(cl table.Column, dummies ...any) (table.Column, error) {
	probe := cl.Empty(0)
	for _, d := range dummies {
		if err := probe.Append(d); err != nil {
			return nil, fmt.Errorf("clean: dummy value %v: %w", d, err)
		}
	}
	out := cl.Clone()
	for i := range out.Len() {
		for j := range probe.Len() {
			if out.EqualAt(i, probe, j) {
				out.SetMissing(i)
				break
			}
		}
	}
	return out, nil
}

// ReplaceDummyIn returns a new table with [ReplaceDummy] applied to
// the named column.
func ReplaceDummyIn(dt *table.Table, column string, dummies ...any) (*table.Table, error) {
	cl, err := dt.Column(column)
	if err != nil {
		return nil, err
	}
	nc, err := ReplaceDummy(cl, dummies...)
	if err != nil {
		return nil, err
	}
	return dt.WithColumn(column, nc)
}

// Deduplicate returns a new table with rows that are exact duplicates
// of an earlier row removed, comparing by value across all columns
// with missing equal to missing for this purpose only. The first
// occurrence survives and the relative order of survivors is
// preserved. Deduplicate is idempotent.
func Deduplicate(dt *table.Table) *table.Table {
	cols := make([]table.Column, dt.NumColumns())
	for i := range cols {
		cols[i] = dt.ColumnByIndex(i)
	}
	seen := make(map[uint64][]int, dt.NumRows())
	var keep []int
	var buf []byte
rows:
	for r := range dt.NumRows() {
		buf = table.RowBytes(buf[:0], cols, r)
		h := xxh3.Hash(buf)
		for _, prev := range seen[h] {
			if table.RowsEqual(dt, prev, r) {
				continue rows
			}
		}
		seen[h] = append(seen[h], r)
		keep = append(keep, r)
	}
	return dt.Take(keep)
}

// RenameColumns returns a new table with columns renamed per the
// old-name to new-name mapping, failing if any old name is absent.
func RenameColumns(dt *table.Table, mapping map[string]string) (*table.Table, error) {
	return dt.RenameColumns(mapping)
}

// StringOptions configures [NormalizeStrings].
type StringOptions struct {
	// Trim removes leading and trailing whitespace.
	Trim bool

	// Lower lowercases values.
	Lower bool

	// CollapseSpace replaces internal whitespace runs with a
	// single space.
	CollapseSpace bool
}

// NormalizeStrings returns a new column with the given string
// normalizations applied. The column must be of string or categorical
// type; categorical columns are rebuilt with normalized labels.
func NormalizeStrings(cl table.Column, opts StringOptions) (table.Column, error) {
	switch cl.Type() {
	case table.StringType, table.CategoricalType:
	default:
		return nil, fmt.Errorf("clean: cannot normalize strings in %s column: %w",
			cl.Type(), table.ErrSchemaMismatch)
	}
	out := cl.Empty(cl.Len())
	for i := range cl.Len() {
		if cl.IsMissing(i) {
			continue
		}
		if err := out.SetValue(i, normalize(cl.StringValue(i), opts)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// NormalizeStringsIn returns a new table with [NormalizeStrings]
// applied to the named columns, or to every string and categorical
// column when none are named.
func NormalizeStringsIn(dt *table.Table, columns []string, opts StringOptions) (*table.Table, error) {
	if len(columns) == 0 {
		for i, ci := range dt.Schema() {
			switch ci.Type {
			case table.StringType, table.CategoricalType:
				columns = append(columns, dt.ColumnName(i))
			}
		}
	}
	out := dt
	for _, name := range columns {
		cl, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		nc, err := NormalizeStrings(cl, opts)
		if err != nil {
			return nil, err
		}
		out, err = out.WithColumn(name, nc)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func normalize(s string, opts StringOptions) string {
	if opts.Trim {
		s = strings.TrimSpace(s)
	}
	if opts.CollapseSpace {
		s = strings.Join(strings.Fields(s), " ")
	}
	if opts.Lower {
		s = strings.ToLower(s)
	}
	return s
}
