// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package join implements key-based joins between two tables, plus
// row union and positional column concatenation.
//
// All joins build a hash index over one side's key columns and probe
// it with the other side's rows, with multi-column keys treated as
// composite tuples. A missing value in any key component makes the
// row never match, mirroring SQL's null-never-equals-null semantics.
// Output preserves the left table's row order as the primary axis;
// for one-to-many matches, the matched right rows appear in the right
// table's original order.
package join

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/tidyframe/tidyframe/table"
)

// Kind selects the join semantics.
type Kind int32

const (
	// Inner emits one combined row per matching left/right pair.
	Inner Kind = iota

	// Left additionally emits unmatched left rows, with missing
	// values filling the right side's columns.
	Left

	// Right additionally emits unmatched right rows, with missing
	// values filling the left side's columns. Its primary row order
	// is the right table's, mirroring Left symmetrically.
	Right

	// Full emits matched pairs and unmatched rows from both sides;
	// unmatched right rows come last, in right-table order.
	Full

	// Semi emits left rows that have at least one match, columns from
	// the left only, each left row at most once.
	Semi

	// Anti emits left rows with zero matches, columns from the left only.
	Anti
)

func (k Kind) String() string {
	switch k {
	case Inner:
		return "inner"
	case Left:
		return "left"
	case Right:
		return "right"
	case Full:
		return "full"
	case Semi:
		return "semi"
	case Anti:
		return "anti"
	}
	return "invalid"
}

// Pair names one key column on each side.
type Pair struct {
	Left  string
	Right string
}

// On returns key pairs for columns named identically on both sides.
func On(names ...string) []Pair {
	ps := make([]Pair, len(names))
	for i, nm := range names {
		ps[i] = Pair{Left: nm, Right: nm}
	}
	return ps
}

// Options configures collision handling for join output columns.
// Column name collisions between the two tables (excluding the join
// keys) are resolved by suffixing; with both suffixes empty, a
// collision is a [table.ErrColumnConflict] error.
type Options struct {
	LeftSuffix  string
	RightSuffix string
}

// Tables performs a join of the given kind. See the convenience
// wrappers [InnerJoin], [LeftJoin], [RightJoin], [FullJoin],
// [SemiJoin], and [AntiJoin].
func Tables(left, right *table.Table, kind Kind, keys []Pair, opts Options) (*table.Table, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("join: no key columns given: %w", table.ErrKeyNotFound)
	}
	leftKeys := make([]string, len(keys))
	rightKeys := make([]string, len(keys))
	for i, p := range keys {
		leftKeys[i] = p.Left
		rightKeys[i] = p.Right
	}
	lk, err := left.ColumnList(leftKeys...)
	if err != nil {
		return nil, err
	}
	rk, err := right.ColumnList(rightKeys...)
	if err != nil {
		return nil, err
	}
	for i := range lk {
		if !keyCompatible(lk[i].Type(), rk[i].Type()) {
			return nil, fmt.Errorf("join: key %q is %s on the left but %q is %s on the right: %w",
				keys[i].Left, lk[i].Type(), keys[i].Right, rk[i].Type(), table.ErrSchemaMismatch)
		}
	}

	switch kind {
	case Semi, Anti:
		rows := matchRows(left, lk, right, rk, kind == Anti)
		return left.Take(rows), nil
	case Right:
		// symmetric to Left: probe the left index with right rows
		rightRows, leftRows := pairRows(right, rk, left, lk, true, false)
		return combine(left, leftKeys, right, rightKeys, leftRows, rightRows, opts)
	}

	emitLeftUnmatched := kind == Left || kind == Full
	li, ri := pairRows(left, lk, right, rk, emitLeftUnmatched, kind == Full)
	return combine(left, leftKeys, right, rightKeys, li, ri, opts)
}

// keyCompatible returns whether two key column types can match.
// String and categorical keys are compared by label, so they are
// mutually compatible.
func keyCompatible(a, b table.Type) bool {
	if a == b {
		return true
	}
	stringish := func(t table.Type) bool {
		return t == table.StringType || t == table.CategoricalType
	}
	return stringish(a) && stringish(b)
}

// index hashes the key of every row of the given columns, keeping
// bucket rows in original order. Rows with a missing key component
// are not indexed.
func index(n int, keyCols []table.Column) map[uint64][]int {
	idx := make(map[uint64][]int, n)
	var buf []byte
	for r := range n {
		b, ok := table.KeyBytes(buf[:0], keyCols, r)
		if !ok {
			continue
		}
		buf = b
		h := xxh3.Hash(buf)
		idx[h] = append(idx[h], r)
	}
	return idx
}

// matches returns the rows of the indexed side whose key equals
// row r of the probing side, in original order.
func matches(idx map[uint64][]int, probeCols []table.Column, r int, idxCols []table.Column) []int {
	b, ok := table.KeyBytes(nil, probeCols, r)
	if !ok {
		return nil
	}
	var out []int
	for _, cand := range idx[xxh3.Hash(b)] {
		if table.KeyEqual(probeCols, r, idxCols, cand) {
			out = append(out, cand)
		}
	}
	return out
}

// matchRows returns the probe-side rows with at least one match
// (anti=false) or with none (anti=true), in original order, each
// at most once.
func matchRows(probe *table.Table, probeKeys []table.Column, indexed *table.Table, indexedKeys []table.Column, anti bool) []int {
	idx := index(indexed.NumRows(), indexedKeys)
	var rows []int
	for r := range probe.NumRows() {
		matched := len(matches(idx, probeKeys, r, indexedKeys)) > 0
		if matched != anti {
			rows = append(rows, r)
		}
	}
	return rows
}

// pairRows produces the parallel row index lists of a join: probe-side
// rows in order, each paired with its matches in indexed-side order.
// -1 marks the absent side. emitUnmatched keeps unmatched probe rows;
// emitIndexedUnmatched appends unmatched indexed-side rows at the end.
func pairRows(probe *table.Table, probeKeys []table.Column, indexed *table.Table, indexedKeys []table.Column, emitUnmatched, emitIndexedUnmatched bool) (probeRows, indexedRows []int) {
	idx := index(indexed.NumRows(), indexedKeys)
	var hit []bool
	if emitIndexedUnmatched {
		hit = make([]bool, indexed.NumRows())
	}
	for r := range probe.NumRows() {
		ms := matches(idx, probeKeys, r, indexedKeys)
		if len(ms) == 0 {
			if emitUnmatched {
				probeRows = append(probeRows, r)
				indexedRows = append(indexedRows, -1)
			}
			continue
		}
		for _, m := range ms {
			probeRows = append(probeRows, r)
			indexedRows = append(indexedRows, m)
			if hit != nil {
				hit[m] = true
			}
		}
	}
	if emitIndexedUnmatched {
		for m, h := range hit {
			if !h {
				probeRows = append(probeRows, -1)
				indexedRows = append(indexedRows, m)
			}
		}
	}
	return probeRows, indexedRows
}

// combine assembles the output table from parallel left/right row
// lists. Key columns appear once, under the left-side names, filled
// from the right side for right-only rows. Right key columns are
// dropped; remaining name collisions are suffixed per opts.
func combine(left *table.Table, leftKeys []string, right *table.Table, rightKeys []string, li, ri []int, opts Options) (*table.Table, error) {
	isLeftKey := toSet(leftKeys)
	isRightKey := toSet(rightKeys)
	rightNames := toSet(right.ColumnNames())

	// key name on the right for each left key name
	rightKeyFor := make(map[string]string, len(leftKeys))
	for i, nm := range leftKeys {
		rightKeyFor[nm] = rightKeys[i]
	}

	collides := func(nm string) bool {
		return rightNames[nm] && !isRightKey[nm]
	}

	out := table.New()
	out.Meta.Copy(left.Meta)
	for i := range left.NumColumns() {
		nm := left.ColumnName(i)
		cl := left.ColumnByIndex(i).Take(li)
		if isLeftKey[nm] {
			// fill key values from the right for right-only rows
			rkc, err := right.Column(rightKeyFor[nm])
			if err != nil {
				return nil, err
			}
			for r := range li {
				if li[r] < 0 && ri[r] >= 0 {
					if err := cl.SetValue(r, rkc.Value(ri[r])); err != nil {
						return nil, err
					}
				}
			}
		} else if collides(nm) {
			if opts.LeftSuffix == "" && opts.RightSuffix == "" {
				return nil, fmt.Errorf("join: column %q exists in both tables: %w", nm, table.ErrColumnConflict)
			}
			nm += opts.LeftSuffix
		}
		if err := out.AddColumn(nm, cl); err != nil {
			return nil, err
		}
	}
	leftNames := toSet(left.ColumnNames())
	for i := range right.NumColumns() {
		nm := right.ColumnName(i)
		if isRightKey[nm] {
			continue
		}
		if leftNames[nm] {
			if opts.LeftSuffix == "" && opts.RightSuffix == "" {
				return nil, fmt.Errorf("join: column %q exists in both tables: %w", nm, table.ErrColumnConflict)
			}
			nm += opts.RightSuffix
		}
		if err := out.AddColumn(nm, right.ColumnByIndex(i).Take(ri)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func toSet(names []string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, nm := range names {
		s[nm] = true
	}
	return s
}

// InnerJoin emits one combined row per matching pair.
func InnerJoin(left, right *table.Table, keys []Pair, opts Options) (*table.Table, error) {
	return Tables(left, right, Inner, keys, opts)
}

// LeftJoin keeps all left rows, filling right columns with missing
// for unmatched rows.
func LeftJoin(left, right *table.Table, keys []Pair, opts Options) (*table.Table, error) {
	return Tables(left, right, Left, keys, opts)
}

// RightJoin keeps all right rows, filling left columns with missing
// for unmatched rows.
func RightJoin(left, right *table.Table, keys []Pair, opts Options) (*table.Table, error) {
	return Tables(left, right, Right, keys, opts)
}

// FullJoin keeps all rows from both sides.
func FullJoin(left, right *table.Table, keys []Pair, opts Options) (*table.Table, error) {
	return Tables(left, right, Full, keys, opts)
}

// SemiJoin emits left rows with at least one match, left columns only.
func SemiJoin(left, right *table.Table, keys []Pair) (*table.Table, error) {
	return Tables(left, right, Semi, keys, Options{})
}

// AntiJoin emits left rows with no match, left columns only.
func AntiJoin(left, right *table.Table, keys []Pair) (*table.Table, error) {
	return Tables(left, right, Anti, keys, Options{})
}
