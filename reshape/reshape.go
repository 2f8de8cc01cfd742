// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reshape converts tables between wide and long layouts:
// [Melt] stacks measure columns into a variable/value pair, and
// [Cast] pivots distinct key combinations back out into columns,
// optionally collapsing duplicates with an aggregator.
//
// The two are inverses: casting a melted table on the same id
// columns, with the variable column as the column key, reproduces the
// original measures (up to column order), provided the ids are unique.
package reshape

import (
	"fmt"
	"strings"

	"github.com/tidyframe/tidyframe/table"
)

// Melt reshapes wide to long: for each original row and each measure
// column it emits one output row holding the id columns unchanged, a
// variable cell set to the measure column's name, and a value cell
// set to that column's value. The output has
// inputRows x len(measureColumns) rows.
//
// If one of idColumns and measureColumns is empty, it is inferred as
// the complement of the other; if both are empty the roles cannot be
// inferred, which is a [table.ErrAmbiguousColumns] error. All measure
// columns must share one type. Empty variable and value names default
// to "variable" and "value".
func Melt(dt *table.Table, idColumns, measureColumns []string, variableName, valueName string) (*table.Table, error) {
	if len(idColumns) == 0 && len(measureColumns) == 0 {
		return nil, fmt.Errorf("reshape: no id or measure columns given: %w", table.ErrAmbiguousColumns)
	}
	if variableName == "" {
		variableName = "variable"
	}
	if valueName == "" {
		valueName = "value"
	}
	switch {
	case len(measureColumns) == 0:
		measureColumns = complement(dt, idColumns)
	case len(idColumns) == 0:
		idColumns = complement(dt, measureColumns)
	}
	ids, err := dt.ColumnList(idColumns...)
	if err != nil {
		return nil, err
	}
	measures, err := dt.ColumnList(measureColumns...)
	if err != nil {
		return nil, err
	}
	for _, m := range measures[1:] {
		if m.Type() != measures[0].Type() {
			return nil, fmt.Errorf("reshape: measure columns mix %s and %s: %w",
				measures[0].Type(), m.Type(), table.ErrSchemaMismatch)
		}
	}

	nm := len(measures)
	// id rows repeat once per measure, row-major
	idx := make([]int, 0, dt.NumRows()*nm)
	for r := range dt.NumRows() {
		for range nm {
			idx = append(idx, r)
		}
	}

	out := table.New()
	out.Meta.Copy(dt.Meta)
	for i, name := range idColumns {
		if err := out.AddColumn(name, ids[i].Take(idx)); err != nil {
			return nil, err
		}
	}

	variable := table.NewOfType(table.StringType, 0)
	value := measures[0].Empty(0)
	for r := range dt.NumRows() {
		for m, mc := range measures {
			if err := variable.Append(measureColumns[m]); err != nil {
				return nil, err
			}
			if mc.IsMissing(r) {
				value.AppendMissing()
				continue
			}
			if err := value.Append(mc.Value(r)); err != nil {
				return nil, err
			}
		}
	}
	if err := out.AddColumn(variableName, variable); err != nil {
		return nil, err
	}
	if err := out.AddColumn(valueName, value); err != nil {
		return nil, err
	}
	return out, nil
}

func complement(dt *table.Table, exclude []string) []string {
	ex := make(map[string]bool, len(exclude))
	for _, nm := range exclude {
		ex[nm] = true
	}
	var names []string
	for _, nm := range dt.ColumnNames() {
		if !ex[nm] {
			names = append(names, nm)
		}
	}
	return names
}

// Cast reshapes long to wide: rows are grouped by the full key
// (rowKeyColumns plus columnKeyColumns); each distinct combination of
// column-key values becomes one output column, named by joining those
// values with "_", and each distinct combination of row-key values
// becomes one output row, both in first-appearance order. The cell is
// the aggregator applied to the value entries of that group; key
// combinations with no rows produce missing cells, never a
// synthesized zero. The default [Identity] aggregator requires
// exactly one entry per group.
func Cast(dt *table.Table, rowKeyColumns, columnKeyColumns []string, valueColumn string, agg Agg) (*table.Table, error) {
	if len(columnKeyColumns) == 0 {
		return nil, fmt.Errorf("reshape: no column key columns given: %w", table.ErrAmbiguousColumns)
	}
	rowKeys, err := dt.ColumnList(rowKeyColumns...)
	if err != nil {
		return nil, err
	}
	colKeys, err := dt.ColumnList(columnKeyColumns...)
	if err != nil {
		return nil, err
	}
	value, err := dt.Column(valueColumn)
	if err != nil {
		return nil, err
	}

	// group rows by row key and column key, in first-appearance order
	rowOf := map[string]int{}
	var rowFirst []int // first input row of each output row
	colOf := map[string]int{}
	var colNames []string
	cells := map[[2]int][]int{}
	var buf []byte
	for r := range dt.NumRows() {
		buf = table.RowBytes(buf[:0], rowKeys, r)
		rk := string(buf)
		ri, ok := rowOf[rk]
		if !ok {
			ri = len(rowFirst)
			rowOf[rk] = ri
			rowFirst = append(rowFirst, r)
		}
		buf = table.RowBytes(buf[:0], colKeys, r)
		ck := string(buf)
		ci, ok := colOf[ck]
		if !ok {
			ci = len(colNames)
			colOf[ck] = ci
			colNames = append(colNames, colKeyName(colKeys, r))
		}
		cells[[2]int{ri, ci}] = append(cells[[2]int{ri, ci}], r)
	}

	out := table.New()
	out.Meta.Copy(dt.Meta)
	for i, name := range rowKeyColumns {
		if err := out.AddColumn(name, rowKeys[i].Take(rowFirst)); err != nil {
			return nil, err
		}
	}
	for ci, name := range colNames {
		cl := table.NewOfType(agg.outputType(value.Type()), len(rowFirst))
		for ri := range rowFirst {
			rows := cells[[2]int{ri, ci}]
			if err := agg.apply(value, rows, cl, ri); err != nil {
				return nil, fmt.Errorf("column %q, row group %d: %w", name, ri, err)
			}
		}
		if err := out.AddColumn(name, cl); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// colKeyName names an output column from the column-key values of the
// given row, joining multiple keys with "_".
func colKeyName(colKeys []table.Column, row int) string {
	parts := make([]string, len(colKeys))
	for i, cl := range colKeys {
		parts[i] = cl.StringValue(row)
	}
	return strings.Join(parts, "_")
}
