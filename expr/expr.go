// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr implements a small expression language over table rows,
// used for row filtering and derived-column computation. Expressions
// support comparison, arithmetic, conjunction/disjunction with
// standard precedence (and binds tighter than or), substring and
// regular-expression pattern matching, and explicit missing tests:
//
//	age >= 30 and (city contains "York" or city matches "^San ")
//	price is not missing and price / quantity > 2.5
//
// Missing values propagate through arithmetic and comparisons; a
// missing condition keeps the row out of a filter result.
package expr

import (
	"fmt"

	"github.com/tidyframe/tidyframe/table"
)

// Expr is a parsed expression, reusable across tables and rows.
type Expr struct {
	root node
	src  string
}

// String returns the source the expression was parsed from.
func (e *Expr) String() string { return e.src }

// Filter returns a new table with only the rows for which the
// expression is true, in original order. Rows where the expression is
// missing are dropped. Referencing an absent column is a
// [table.ErrKeyNotFound] error.
func (e *Expr) Filter(dt *table.Table) (*table.Table, error) {
	ev := newEvaluator(dt)
	var keep []int
	for r := range dt.NumRows() {
		v, err := ev.eval(e.root, r)
		if err != nil {
			return nil, err
		}
		b, err := v.truth()
		if err != nil {
			return nil, err
		}
		if b {
			keep = append(keep, r)
		}
	}
	return dt.Take(keep), nil
}

// Compute evaluates the expression for every row and returns the
// results as a new column. The column type follows the first
// non-missing result: float for numbers, string for strings, bool for
// booleans; mixing kinds across rows is an error. An all-missing
// result yields a float column.
func (e *Expr) Compute(dt *table.Table) (table.Column, error) {
	ev := newEvaluator(dt)
	vals := make([]value, dt.NumRows())
	kind := missingKind
	for r := range dt.NumRows() {
		v, err := ev.eval(e.root, r)
		if err != nil {
			return nil, err
		}
		if v.kind != missingKind {
			if kind == missingKind {
				kind = v.kind
			} else if v.kind != kind {
				return nil, fmt.Errorf("expr: mixed %s and %s results at row %d",
					kindName(kind), kindName(v.kind), r)
			}
		}
		vals[r] = v
	}
	var typ table.Type
	switch kind {
	case strKind:
		typ = table.StringType
	case boolKind:
		typ = table.BoolType
	default:
		typ = table.FloatType
	}
	out := table.NewOfType(typ, len(vals))
	for r, v := range vals {
		if v.kind == missingKind {
			continue
		}
		var err error
		switch kind {
		case strKind:
			err = out.SetValue(r, v.str)
		case boolKind:
			err = out.SetValue(r, v.b)
		default:
			err = out.SetValue(r, v.num)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Filter parses the given expression and filters the table with it.
func Filter(dt *table.Table, src string) (*table.Table, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return e.Filter(dt)
}

// Compute parses the given expression, evaluates it for every row,
// and returns a new table with the result as a column of the given
// name, added or replaced.
func Compute(dt *table.Table, name, src string) (*table.Table, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	cl, err := e.Compute(dt)
	if err != nil {
		return nil, err
	}
	return dt.WithColumn(name, cl)
}
