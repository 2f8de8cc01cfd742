// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidyframe/tidyframe/table"
)

func TestReplaceDummy(t *testing.T) {
	cl := table.NewInt(12, 9999, 30, -1)
	out, err := ReplaceDummy(cl, 9999, -1)
	assert.NoError(t, err)
	assert.Equal(t, table.IntType, out.Type())
	assert.Equal(t, int64(12), out.Value(0))
	assert.True(t, out.IsMissing(1))
	assert.Equal(t, int64(30), out.Value(2))
	assert.True(t, out.IsMissing(3))
	// input column untouched
	assert.Equal(t, int64(9999), cl.Value(1))
}

func TestReplaceDummyTypeMismatch(t *testing.T) {
	cl := table.NewInt(1, 2)
	_, err := ReplaceDummy(cl, "N/A")
	assert.Error(t, err)
}

func TestReplaceDummyStrings(t *testing.T) {
	cl := table.NewString("ann", "N/A", "bob")
	out, err := ReplaceDummy(cl, "N/A")
	assert.NoError(t, err)
	assert.True(t, out.IsMissing(1))
	assert.Equal(t, "bob", out.Value(2))
}

func TestReplaceDummyIn(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("v", table.NewInt(1, 9999)))
	nt, err := ReplaceDummyIn(dt, "v", 9999)
	assert.NoError(t, err)
	cl, _ := nt.Column("v")
	assert.True(t, cl.IsMissing(1))

	_, err = ReplaceDummyIn(dt, "nope", 9999)
	assert.ErrorIs(t, err, table.ErrKeyNotFound)
}

func TestDeduplicate(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("a", table.NewInt(1, 2, 1, 2, 3)))
	assert.NoError(t, dt.AddColumn("b", table.NewString("x", "y", "x", "z", "x")))

	nt := Deduplicate(dt)
	assert.Equal(t, 4, nt.NumRows())
	a, _ := nt.Column("a")
	b, _ := nt.Column("b")
	// first occurrences survive in original order
	assert.Equal(t, int64(1), a.Value(0))
	assert.Equal(t, "y", b.StringValue(1))
	assert.Equal(t, "z", b.StringValue(2))
	assert.Equal(t, int64(3), a.Value(3))

	// idempotent
	again := Deduplicate(nt)
	assert.Equal(t, nt.NumRows(), again.NumRows())
}

func TestDeduplicateMissing(t *testing.T) {
	a := table.NewInt(1, 1, 2)
	a.SetMissing(0)
	a.SetMissing(1)
	dt := table.New()
	assert.NoError(t, dt.AddColumn("a", a))
	// missing equals missing for dedup purposes
	nt := Deduplicate(dt)
	assert.Equal(t, 2, nt.NumRows())
}

func TestNormalizeStrings(t *testing.T) {
	cl := table.NewString("  Hello   World  ", "OK")
	out, err := NormalizeStrings(cl, StringOptions{Trim: true, Lower: true, CollapseSpace: true})
	assert.NoError(t, err)
	assert.Equal(t, "hello world", out.Value(0))
	assert.Equal(t, "ok", out.Value(1))

	_, err = NormalizeStrings(table.NewInt(1), StringOptions{Trim: true})
	assert.ErrorIs(t, err, table.ErrSchemaMismatch)
}

func TestNormalizeStringsCategorical(t *testing.T) {
	cl := table.NewCategorical(" Red ", "Blue")
	out, err := NormalizeStrings(cl, StringOptions{Trim: true, Lower: true})
	assert.NoError(t, err)
	assert.Equal(t, table.CategoricalType, out.Type())
	assert.Equal(t, "red", out.StringValue(0))
	assert.Equal(t, "blue", out.StringValue(1))
}

func TestNormalizeStringsIn(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("name", table.NewString(" Ann ")))
	assert.NoError(t, dt.AddColumn("n", table.NewInt(1)))
	// no columns named: every string column, numeric ones untouched
	nt, err := NormalizeStringsIn(dt, nil, StringOptions{Trim: true})
	assert.NoError(t, err)
	cl, _ := nt.Column("name")
	assert.Equal(t, "Ann", cl.Value(0))
}

func TestRenameColumns(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("old", table.NewInt(1)))
	nt, err := RenameColumns(dt, map[string]string{"old": "new"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"new"}, nt.ColumnNames())
}
