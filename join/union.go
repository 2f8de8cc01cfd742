// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package join

import (
	"fmt"

	"github.com/tidyframe/tidyframe/clean"
	"github.com/tidyframe/tidyframe/table"
)

// Union returns the row-concatenation of a then b. The two tables
// must have identical column name sets (order-independent) and the
// same column types, or a [table.ErrSchemaMismatch] error is
// returned. No deduplication is performed; see [DistinctUnion].
// Output columns follow a's order.
func Union(a, b *table.Table) (*table.Table, error) {
	if a.NumColumns() != b.NumColumns() {
		return nil, fmt.Errorf("join: union of %d columns with %d columns: %w",
			a.NumColumns(), b.NumColumns(), table.ErrSchemaMismatch)
	}
	out := table.New()
	out.Meta.Copy(a.Meta)
	for i := range a.NumColumns() {
		nm := a.ColumnName(i)
		bc, err := b.Column(nm)
		if err != nil {
			return nil, fmt.Errorf("join: union: column %q missing from second table: %w",
				nm, table.ErrSchemaMismatch)
		}
		ac := a.ColumnByIndex(i)
		if ac.Type() != bc.Type() {
			return nil, fmt.Errorf("join: union: column %q is %s in one table and %s in the other: %w",
				nm, ac.Type(), bc.Type(), table.ErrSchemaMismatch)
		}
		cl := ac.Clone()
		if err := cl.AppendAll(bc); err != nil {
			return nil, fmt.Errorf("join: union: column %q: %w", nm, table.ErrSchemaMismatch)
		}
		if err := out.AddColumn(nm, cl); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DistinctUnion returns [Union] with exact duplicate rows removed,
// keeping first occurrences.
func DistinctUnion(a, b *table.Table) (*table.Table, error) {
	u, err := Union(a, b)
	if err != nil {
		return nil, err
	}
	return clean.Deduplicate(u), nil
}

// ConcatColumns returns a new table with a's columns followed by b's,
// pairing row i of a with row i of b positionally; the caller is
// responsible for alignment, and no key-based reconciliation is done
// (that is what the key-based joins are for). The tables must have
// equal row counts, or a [table.ErrShapeMismatch] error is returned;
// a column name present in both is a [table.ErrColumnConflict] error.
func ConcatColumns(a, b *table.Table) (*table.Table, error) {
	if a.NumRows() != b.NumRows() {
		return nil, fmt.Errorf("join: concat of %d rows with %d rows: %w",
			a.NumRows(), b.NumRows(), table.ErrShapeMismatch)
	}
	out := table.New()
	out.Meta.Copy(a.Meta)
	for i := range a.NumColumns() {
		if err := out.AddColumn(a.ColumnName(i), a.ColumnByIndex(i)); err != nil {
			return nil, err
		}
	}
	for i := range b.NumColumns() {
		if err := out.AddColumn(b.ColumnName(i), b.ColumnByIndex(i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
