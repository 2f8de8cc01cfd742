// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coerce

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/tidyframe/tidyframe/table"
)

func TestCoerceInt(t *testing.T) {
	cl := table.NewString("12", "1,234,567", " 42 ", "oops")
	out, bad, err := Column(cl, table.IntType, Options{})
	assert.NoError(t, err)
	assert.Equal(t, 1, bad)
	assert.Equal(t, table.IntType, out.Type())
	assert.Equal(t, int64(12), out.Value(0))
	// grouping separators are stripped before parsing
	assert.Equal(t, int64(1234567), out.Value(1))
	assert.Equal(t, int64(42), out.Value(2))
	assert.True(t, out.IsMissing(3))
}

func TestCoerceStrict(t *testing.T) {
	cl := table.NewString("12", "oops")
	_, _, err := Column(cl, table.IntType, Options{Strict: true})
	assert.ErrorIs(t, err, table.ErrConversion)

	var ce *table.ConversionError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.Row)
	assert.Equal(t, "oops", ce.Raw)
	assert.Equal(t, table.IntType, ce.Target)
}

func TestCoerceFloat(t *testing.T) {
	cl := table.NewString("3.5", "1 234,5", "2e3")
	out, bad, err := Column(cl, table.FloatType, Options{})
	assert.NoError(t, err)
	assert.Equal(t, float64(3.5), out.Value(0))
	// "1 234,5" strips to "12345": separators removed, no decimal comma
	assert.Equal(t, float64(12345), out.Value(1))
	assert.Equal(t, float64(2000), out.Value(2))
	assert.Equal(t, 0, bad)
}

func TestCoerceIntFromFloat(t *testing.T) {
	cl := table.NewFloat(3, 2.5)
	out, bad, err := Column(cl, table.IntType, Options{})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.Value(0))
	// non-integral floats do not silently truncate
	assert.True(t, out.IsMissing(1))
	assert.Equal(t, 1, bad)
}

func TestCoerceBool(t *testing.T) {
	cl := table.NewString("yes", "No", "TRUE", "0", "maybe")
	out, bad, err := Column(cl, table.BoolType, Options{})
	assert.NoError(t, err)
	assert.Equal(t, true, out.Value(0))
	assert.Equal(t, false, out.Value(1))
	assert.Equal(t, true, out.Value(2))
	assert.Equal(t, false, out.Value(3))
	assert.True(t, out.IsMissing(4))
	assert.Equal(t, 1, bad)
}

func TestCoerceDate(t *testing.T) {
	cl := table.NewString("2024-03-15", "not a date")
	out, bad, err := Column(cl, table.DateType, Options{})
	assert.NoError(t, err)
	assert.Equal(t, 1, bad)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), out.Value(0))
	assert.True(t, out.IsMissing(1))
}

func TestCoerceDateSpanishMonths(t *testing.T) {
	cl := table.NewString("12 ene 2004", "3 diciembre 1999")
	out, bad, err := Column(cl, table.DateType, Options{
		DateFormat: "2 January 2006",
		Locale:     language.Spanish,
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, bad)
	assert.Equal(t, time.Date(2004, 1, 12, 0, 0, 0, 0, time.UTC), out.Value(0))
	assert.Equal(t, time.Date(1999, 12, 3, 0, 0, 0, 0, time.UTC), out.Value(1))
}

func TestCoerceDateMonthsOverride(t *testing.T) {
	cl := table.NewString("1 muharram 2020")
	out, bad, err := Column(cl, table.DateType, Options{
		DateFormat: "2 January 2006",
		Months:     map[string]string{"muharram": "January"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, bad)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), out.Value(0))
}

func TestCoerceSameTypeClones(t *testing.T) {
	cl := table.NewInt(1, 2)
	out, bad, err := Column(cl, table.IntType, Options{})
	assert.NoError(t, err)
	assert.Equal(t, 0, bad)
	assert.NoError(t, out.SetValue(0, int64(99)))
	assert.Equal(t, int64(1), cl.Value(0))
}

func TestCoerceMissingStaysMissing(t *testing.T) {
	cl := table.NewString("1", "2")
	cl.SetMissing(0)
	out, bad, err := Column(cl, table.IntType, Options{})
	assert.NoError(t, err)
	assert.Equal(t, 0, bad)
	assert.True(t, out.IsMissing(0))
	assert.Equal(t, int64(2), out.Value(1))
}

func TestCoerceTable(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("age", table.NewString("30", "x")))
	nt, bad, err := Table(dt, "age", table.IntType, Options{})
	assert.NoError(t, err)
	assert.Equal(t, 1, bad)
	cl, _ := nt.Column("age")
	assert.Equal(t, table.IntType, cl.Type())
	// the input table keeps its string column
	old, _ := dt.Column("age")
	assert.Equal(t, table.StringType, old.Type())

	_, _, err = Table(dt, "nope", table.IntType, Options{})
	assert.ErrorIs(t, err, table.ErrKeyNotFound)
}

func TestMonthsForLocaleFallback(t *testing.T) {
	// unsupported locales fall back to English
	m := monthsForLocale(language.Japanese)
	assert.Equal(t, "January", m["jan"])
	m = monthsForLocale(language.MustParse("es-MX"))
	assert.Equal(t, "January", m["enero"])
}
