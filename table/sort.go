// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "slices"

// Ascending and Descending are the orderings accepted by
// [Table.Sorted], for self-documenting call sites.
const (
	Ascending  = true
	Descending = false
)

// Sorted returns a new table with rows sorted by the given columns,
// in order of precedence, all ascending or all descending. The sort
// is stable, so ties keep their original relative order, and missing
// values sort after concrete values in either direction.
func (dt *Table) Sorted(ascending bool, columns ...string) (*Table, error) {
	cols, err := dt.ColumnList(columns...)
	if err != nil {
		return nil, err
	}
	idx := seq(0, dt.rows)
	slices.SortStableFunc(idx, func(a, b int) int {
		for _, cl := range cols {
			if v, ok := compareMissing(cl.IsMissing(a), cl.IsMissing(b)); ok {
				if v != 0 {
					return v // missing last regardless of direction
				}
				continue
			}
			v := cl.Compare(a, b)
			if v == 0 {
				continue
			}
			if !ascending {
				v = -v
			}
			return v
		}
		return 0
	})
	return dt.Take(idx), nil
}
