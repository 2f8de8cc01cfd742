// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coerce converts column storage types, detecting and
// reporting malformed values. In strict mode the first unparsable
// value fails the whole conversion with a [table.ConversionError]
// identifying the row and raw value; otherwise unparsable values
// become missing and are counted.
package coerce

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/tidyframe/tidyframe/base/logx"
	"github.com/tidyframe/tidyframe/table"
)

// Options configures a coercion.
type Options struct {
	// DateFormat is the time layout pattern for date and datetime
	// targets, in Go reference-time form. Defaults to "2006-01-02"
	// for dates and RFC 3339 for datetimes.
	DateFormat string

	// Locale selects the built-in month-name substitution table for
	// date parsing. The zero value means English.
	Locale language.Tag

	// Months overrides the month substitution mapping entirely:
	// lowercase source token to English month name. When set,
	// Locale is ignored.
	Months map[string]string

	// Strict makes any unparsable value fail the whole operation.
	// Otherwise unparsable values become missing and are counted.
	Strict bool
}

// Column converts the given column to the target type, returning the
// new column and the number of values that could not be parsed and
// were turned into missing (always 0 in strict mode, where the first
// such value returns an error instead). Missing inputs stay missing
// and are not counted.
func Column(cl table.Column, target table.Type, opts Options) (table.Column, int, error) {
	if cl.Type() == target {
		return cl.Clone(), 0, nil
	}
	n := cl.Len()
	out := table.NewOfType(target, n)
	months := opts.Months
	if months == nil {
		months = monthsForLocale(opts.Locale)
	}
	bad := 0
	for i := range n {
		if cl.IsMissing(i) {
			continue
		}
		v, err := convertValue(cl, i, target, opts, months)
		if err != nil {
			if opts.Strict {
				return nil, 0, fmt.Errorf("coerce: %w", err)
			}
			bad++
			continue
		}
		if err := out.SetValue(i, v); err != nil {
			return nil, 0, err
		}
	}
	if bad > 0 {
		logx.Debugf("coerce: %d value(s) could not be parsed as %s and became missing", bad, target)
	}
	return out, bad, nil
}

// Table converts the named column of the given table to the target
// type, returning a new table and the missing-coercion count.
func Table(dt *table.Table, column string, target table.Type, opts Options) (*table.Table, int, error) {
	cl, err := dt.Column(column)
	if err != nil {
		return nil, 0, err
	}
	nc, bad, err := Column(cl, target, opts)
	if err != nil {
		return nil, 0, err
	}
	nt, err := dt.WithColumn(column, nc)
	return nt, bad, err
}

func convertValue(cl table.Column, i int, target table.Type, opts Options, months map[string]string) (any, error) {
	raw := cl.StringValue(i)
	fail := func() error {
		return &table.ConversionError{Row: i, Raw: raw, Target: target}
	}
	switch target {
	case table.StringType, table.CategoricalType:
		return raw, nil
	case table.IntType:
		if f, ok := cl.Float(i); ok {
			if f != math.Trunc(f) {
				return nil, fail()
			}
			return int64(f), nil
		}
		v, err := strconv.ParseInt(stripGrouping(raw), 10, 64)
		if err != nil {
			return nil, fail()
		}
		return v, nil
	case table.FloatType:
		if f, ok := cl.Float(i); ok {
			return f, nil
		}
		v, err := strconv.ParseFloat(stripGrouping(raw), 64)
		if err != nil {
			return nil, fail()
		}
		return v, nil
	case table.BoolType:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "t", "yes", "y", "1":
			return true, nil
		case "false", "f", "no", "n", "0":
			return false, nil
		}
		return nil, fail()
	case table.DateType, table.DatetimeType:
		layout := opts.DateFormat
		if layout == "" {
			if target == table.DateType {
				layout = time.DateOnly
			} else {
				layout = time.RFC3339
			}
		}
		t, err := time.Parse(layout, expandMonths(strings.TrimSpace(raw), months))
		if err != nil {
			return nil, fail()
		}
		return t, nil
	}
	return nil, fail()
}

// stripGrouping removes thousands grouping separators (commas, spaces,
// and underscores) from a numeric string before parsing, so values
// like "1,234,567" parse cleanly.
func stripGrouping(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ',', ' ', '_', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
