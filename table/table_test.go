// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	dt := New("sample")
	assert.NoError(t, dt.AddColumn("id", NewInt(1, 2, 3, 4)))
	assert.NoError(t, dt.AddColumn("name", NewString("ann", "bob", "cid", "dee")))
	score := NewFloat(3.5, 2.0, 4.25, 0)
	score.SetMissing(3)
	assert.NoError(t, dt.AddColumn("score", score))
	return dt
}

func TestAddColumn(t *testing.T) {
	dt := sampleTable(t)
	assert.Equal(t, 4, dt.NumRows())
	assert.Equal(t, 3, dt.NumColumns())
	assert.Equal(t, []string{"id", "name", "score"}, dt.ColumnNames())

	err := dt.AddColumn("id", NewInt(9, 9, 9, 9))
	assert.ErrorIs(t, err, ErrColumnConflict)

	err = dt.AddColumn("short", NewInt(1, 2))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = dt.Column("nope")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestWithColumn(t *testing.T) {
	dt := sampleTable(t)
	nt, err := dt.WithColumn("flag", NewBool(true, false, true, false))
	assert.NoError(t, err)
	assert.Equal(t, 4, nt.NumColumns())
	// the receiver is unchanged
	assert.Equal(t, 3, dt.NumColumns())

	nt, err = dt.WithColumn("id", NewInt(10, 20, 30, 40))
	assert.NoError(t, err)
	cl, err := nt.Column("id")
	assert.NoError(t, err)
	assert.Equal(t, int64(10), cl.Value(0))
	old, _ := dt.Column("id")
	assert.Equal(t, int64(1), old.Value(0))

	_, err = dt.WithColumn("bad", NewInt(1))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestRenameColumns(t *testing.T) {
	dt := sampleTable(t)
	nt, err := dt.RenameColumns(map[string]string{"name": "label"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "label", "score"}, nt.ColumnNames())
	assert.Equal(t, []string{"id", "name", "score"}, dt.ColumnNames())

	_, err = dt.RenameColumns(map[string]string{"nope": "x"})
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = dt.RenameColumns(map[string]string{"name": "id"})
	assert.ErrorIs(t, err, ErrColumnConflict)
}

func TestTakeHeadTail(t *testing.T) {
	dt := sampleTable(t)
	tk := dt.Take([]int{2, 0, -1})
	assert.Equal(t, 3, tk.NumRows())
	id, _ := tk.Column("id")
	assert.Equal(t, int64(3), id.Value(0))
	assert.Equal(t, int64(1), id.Value(1))
	assert.True(t, id.IsMissing(2))

	assert.Equal(t, 2, dt.Head(2).NumRows())
	assert.Equal(t, 4, dt.Head(10).NumRows())
	tl := dt.Tail(1)
	assert.Equal(t, 1, tl.NumRows())
	id, _ = tl.Column("id")
	assert.Equal(t, int64(4), id.Value(0))
}

func TestSchema(t *testing.T) {
	dt := sampleTable(t)
	want := []ColumnInfo{
		{Name: "id", Type: IntType, Missing: 0},
		{Name: "name", Type: StringType, Missing: 0},
		{Name: "score", Type: FloatType, Missing: 1},
	}
	if diff := cmp.Diff(want, dt.Schema()); diff != "" {
		t.Errorf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestRecords(t *testing.T) {
	dt := sampleTable(t)
	recs := dt.Records()
	assert.Equal(t, []string{"id", "name", "score"}, recs[0])
	assert.Equal(t, []string{"1", "ann", "3.5"}, recs[1])
	// missing renders as the empty string
	assert.Equal(t, []string{"4", "dee", ""}, recs[4])
}

func TestCloneIsDeep(t *testing.T) {
	dt := sampleTable(t)
	cp := dt.Clone()
	cl, _ := cp.Column("id")
	assert.NoError(t, cl.SetValue(0, int64(99)))
	orig, _ := dt.Column("id")
	assert.Equal(t, int64(1), orig.Value(0))
}

func TestFilterRows(t *testing.T) {
	dt := sampleTable(t)
	nt := dt.FilterRows(func(dt *Table, row int) bool {
		cl, _ := dt.Column("id")
		v, _ := cl.Float(row)
		return v >= 3
	})
	assert.Equal(t, 2, nt.NumRows())
}

func TestDateColumn(t *testing.T) {
	d := NewDate(time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, DateType, d.Type())
	// the clock is truncated away
	assert.Equal(t, "2024-03-15", d.StringValue(0))

	dt := NewDatetime(time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-15T13:45:00Z", dt.StringValue(0))
}

func TestColumnMissing(t *testing.T) {
	c := NewInt(1, 2, 3)
	c.SetMissing(1)
	assert.True(t, c.IsMissing(1))
	assert.Nil(t, c.Value(1))
	assert.Equal(t, "", c.StringValue(1))
	_, ok := c.Float(1)
	assert.False(t, ok)

	// missing never equals missing in value comparison
	d := NewInt(1, 2, 3)
	d.SetMissing(1)
	assert.False(t, c.EqualAt(1, d, 1))
	assert.True(t, c.EqualAt(0, d, 0))
}
