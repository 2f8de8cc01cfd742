// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table provides an in-memory columnar table of named, typed
// columns with explicit missing-value handling, which all of the
// tidyframe transformations consume and produce.
//
// Tables are value objects: transformations never mutate their input
// and instead return a new Table, so a source table can safely feed
// multiple downstream pipelines. The mutating methods ([Table.AddColumn],
// [Column.SetValue], ...) are for constructing a table before it is
// handed off.
package table

import (
	"fmt"
	"strings"

	"github.com/tidyframe/tidyframe/base/keylist"
	"github.com/tidyframe/tidyframe/base/metadata"
)

// Table is an ordered sequence of named [Column] values, all of equal
// length. Column names are unique. Row order is significant and is
// preserved by every operation unless it explicitly sorts or reshapes.
type Table struct {
	cols *keylist.List[string, Column]
	rows int

	// Meta is misc metadata for the table, with standard support for
	// the "Name", "Doc", and "Source" keys.
	Meta metadata.Data
}

// New returns a new empty Table. An optional name sets the
// "Name" metadata key.
func New(name ...string) *Table {
	dt := &Table{cols: keylist.New[string, Column]()}
	if len(name) > 0 {
		dt.Meta.SetName(name[0])
	}
	return dt
}

// NumRows returns the number of rows.
func (dt *Table) NumRows() int { return dt.rows }

// NumColumns returns the number of columns.
func (dt *Table) NumColumns() int { return dt.cols.Len() }

// ColumnNames returns the ordered column names.
func (dt *Table) ColumnNames() []string {
	names := make([]string, len(dt.cols.Keys))
	copy(names, dt.cols.Keys)
	return names
}

// HasColumn returns whether a column with the given name exists.
func (dt *Table) HasColumn(name string) bool {
	return dt.cols.IndexByKey(name) >= 0
}

// Column returns the column with the given name, or a [ErrKeyNotFound]
// error if absent.
func (dt *Table) Column(name string) (Column, error) {
	cl, ok := dt.cols.AtTry(name)
	if !ok {
		return nil, fmt.Errorf("table: column %q: %w", name, ErrKeyNotFound)
	}
	return cl, nil
}

// ColumnByIndex returns the column at the given index.
func (dt *Table) ColumnByIndex(i int) Column { return dt.cols.Values[i] }

// ColumnName returns the name of the column at the given index.
func (dt *Table) ColumnName(i int) string { return dt.cols.Keys[i] }

// ColumnList returns the columns with the given names, in the given
// order, or a [ErrKeyNotFound] error for the first absent name.
func (dt *Table) ColumnList(names ...string) ([]Column, error) {
	cols := make([]Column, len(names))
	for i, nm := range names {
		cl, err := dt.Column(nm)
		if err != nil {
			return nil, err
		}
		cols[i] = cl
	}
	return cols, nil
}

// AddColumn appends the given column to the table, for use while
// constructing a table. It returns a [ErrColumnConflict] error if the
// name is already taken, and a [ErrShapeMismatch] error if the column
// length differs from the current row count. Adding the first column
// sets the row count.
func (dt *Table) AddColumn(name string, cl Column) error {
	if dt.cols.Len() > 0 && cl.Len() != dt.rows {
		return fmt.Errorf("table: column %q has %d rows, table has %d: %w",
			name, cl.Len(), dt.rows, ErrShapeMismatch)
	}
	if dt.cols.IndexByKey(name) >= 0 {
		return fmt.Errorf("table: column %q already exists: %w", name, ErrColumnConflict)
	}
	if dt.cols.Len() == 0 {
		dt.rows = cl.Len()
	}
	return dt.cols.Add(name, cl)
}

// WithColumn returns a new table with the given column added, or
// replaced if the name already exists. The other columns are shared
// with the receiver. It returns a [ErrShapeMismatch] error if the
// column length differs from the row count.
func (dt *Table) WithColumn(name string, cl Column) (*Table, error) {
	if dt.cols.Len() > 0 && cl.Len() != dt.rows {
		return nil, fmt.Errorf("table: column %q has %d rows, table has %d: %w",
			name, cl.Len(), dt.rows, ErrShapeMismatch)
	}
	nt := dt.shallowClone()
	if nt.cols.Len() == 0 {
		nt.rows = cl.Len()
	}
	nt.cols.Set(name, cl)
	return nt, nil
}

// RenameColumns returns a new table with columns renamed per the
// given old-name to new-name mapping. It returns a [ErrKeyNotFound]
// error if any old name is absent, and a [ErrColumnConflict] error if
// a new name collides with an existing one.
func (dt *Table) RenameColumns(mapping map[string]string) (*Table, error) {
	nt := dt.shallowClone()
	for old, nw := range mapping {
		i := nt.cols.IndexByKey(old)
		if i < 0 {
			return nil, fmt.Errorf("table: column %q: %w", old, ErrKeyNotFound)
		}
		if err := nt.cols.RenameKey(i, nw); err != nil {
			return nil, fmt.Errorf("table: rename %q to %q: %w", old, nw, ErrColumnConflict)
		}
	}
	return nt, nil
}

// shallowClone copies the table structure (column list, metadata)
// while sharing the column data.
func (dt *Table) shallowClone() *Table {
	nt := &Table{cols: dt.cols.Clone(), rows: dt.rows}
	nt.Meta.Copy(dt.Meta)
	return nt
}

// Clone returns a complete copy of the table, including the
// underlying column data.
func (dt *Table) Clone() *Table {
	nt := dt.shallowClone()
	for i, cl := range nt.cols.Values {
		nt.cols.Values[i] = cl.Clone()
	}
	return nt
}

// Take returns a new table holding the given rows in order, copying
// the column data. A row index of -1 yields a row of missing values.
func (dt *Table) Take(rows []int) *Table {
	nt := &Table{cols: keylist.New[string, Column](), rows: len(rows)}
	nt.Meta.Copy(dt.Meta)
	for i, cl := range dt.cols.Values {
		nt.cols.Set(dt.cols.Keys[i], cl.Take(rows))
	}
	return nt
}

// Head returns a new table with the first n rows (all rows if fewer).
func (dt *Table) Head(n int) *Table {
	return dt.Take(seq(0, min(n, dt.rows)))
}

// Tail returns a new table with the last n rows (all rows if fewer).
func (dt *Table) Tail(n int) *Table {
	return dt.Take(seq(max(0, dt.rows-n), dt.rows))
}

func seq(lo, hi int) []int {
	s := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		s = append(s, i)
	}
	return s
}

// Schema returns the name, type, and missing-value count of every
// column, in column order.
func (dt *Table) Schema() []ColumnInfo {
	info := make([]ColumnInfo, dt.cols.Len())
	for i, cl := range dt.cols.Values {
		nmiss := 0
		for r := range cl.Len() {
			if cl.IsMissing(r) {
				nmiss++
			}
		}
		info[i] = ColumnInfo{Name: dt.cols.Keys[i], Type: cl.Type(), Missing: nmiss}
	}
	return info
}

// Records returns the table as string records: a header row of column
// names followed by one record per row, with missing values rendered
// as empty strings. This is the form consumed by delimited-text
// exporters.
func (dt *Table) Records() [][]string {
	recs := make([][]string, 0, dt.rows+1)
	recs = append(recs, dt.ColumnNames())
	for r := range dt.rows {
		rec := make([]string, dt.cols.Len())
		for i, cl := range dt.cols.Values {
			rec[i] = cl.StringValue(r)
		}
		recs = append(recs, rec)
	}
	return recs
}

// String returns a plain-text rendition of the table for debugging,
// truncated after 20 rows.
func (dt *Table) String() string {
	var b strings.Builder
	if nm := dt.Meta.Name(); nm != "" {
		fmt.Fprintf(&b, "%s: ", nm)
	}
	fmt.Fprintf(&b, "%d rows x %d columns\n", dt.rows, dt.cols.Len())
	recs := dt.Head(20).Records()
	for _, rec := range recs {
		b.WriteString(strings.Join(rec, "\t"))
		b.WriteByte('\n')
	}
	if dt.rows > 20 {
		b.WriteString("...\n")
	}
	return b.String()
}
