// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reshape

import (
	"fmt"
	"math"

	"github.com/tidyframe/tidyframe/table"
)

// Agg selects how [Cast] collapses the set of value entries in one
// group into a single cell.
type Agg int32

const (
	// Identity requires exactly one entry per group and uses it
	// unchanged; more than one is a [table.ErrAmbiguousAggregation]
	// error, and an empty group yields a missing cell.
	Identity Agg = iota

	// Mean is the arithmetic mean of the entries.
	Mean

	// SD is the sample standard deviation (n-1 denominator) of the
	// entries; a single entry yields missing.
	SD

	// Sum is the sum of the entries.
	Sum

	// Count is the number of non-missing entries, never missing.
	Count
)

func (a Agg) String() string {
	switch a {
	case Identity:
		return "identity"
	case Mean:
		return "mean"
	case SD:
		return "sd"
	case Sum:
		return "sum"
	case Count:
		return "count"
	}
	return "invalid"
}

// AggFromString parses an aggregator name as produced by [Agg.String].
// An empty name means [Identity].
func AggFromString(name string) (Agg, error) {
	switch name {
	case "", "identity":
		return Identity, nil
	case "mean":
		return Mean, nil
	case "sd":
		return SD, nil
	case "sum":
		return Sum, nil
	case "count":
		return Count, nil
	}
	return 0, fmt.Errorf("reshape: unknown aggregator %q", name)
}

// outputType returns the column type an aggregator produces for a
// value column of the given type.
func (a Agg) outputType(valueType table.Type) table.Type {
	switch a {
	case Identity:
		return valueType
	case Count:
		return table.IntType
	}
	return table.FloatType
}

// apply aggregates the given value-column rows into the output cell.
// A missing entry propagates to a missing result for the numeric
// aggregators, per the missing-marker arithmetic rule; Count simply
// does not count it.
func (a Agg) apply(cl table.Column, rows []int, out table.Column, outRow int) error {
	switch a {
	case Identity:
		if len(rows) == 0 {
			return nil // missing cell
		}
		if len(rows) > 1 {
			return fmt.Errorf("reshape: %d values in one group and no aggregator to collapse them: %w",
				len(rows), table.ErrAmbiguousAggregation)
		}
		return out.SetValue(outRow, cl.Value(rows[0]))
	case Count:
		n := int64(0)
		for _, r := range rows {
			if !cl.IsMissing(r) {
				n++
			}
		}
		return out.SetValue(outRow, n)
	}

	if len(rows) == 0 {
		return nil // missing cell
	}
	var sum, sumsq float64
	for _, r := range rows {
		f, ok := cl.Float(r)
		if !ok {
			if cl.IsMissing(r) {
				return nil // missing operand, missing result
			}
			return fmt.Errorf("reshape: %s aggregation over non-numeric %s column: %w",
				a, cl.Type(), table.ErrSchemaMismatch)
		}
		sum += f
		sumsq += f * f
	}
	n := float64(len(rows))
	switch a {
	case Sum:
		return out.SetValue(outRow, sum)
	case Mean:
		return out.SetValue(outRow, sum/n)
	case SD:
		if len(rows) < 2 {
			return nil // undefined, missing
		}
		mean := sum / n
		return out.SetValue(outRow, math.Sqrt((sumsq-n*mean*mean)/(n-1)))
	}
	return fmt.Errorf("reshape: unknown aggregator %d", a)
}
