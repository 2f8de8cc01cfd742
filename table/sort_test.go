// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSorted(t *testing.T) {
	dt := New()
	assert.NoError(t, dt.AddColumn("grp", NewString("b", "a", "b", "a")))
	assert.NoError(t, dt.AddColumn("val", NewInt(1, 4, 3, 2)))

	nt, err := dt.Sorted(Ascending, "grp", "val")
	assert.NoError(t, err)
	grp, _ := nt.Column("grp")
	val, _ := nt.Column("val")
	assert.Equal(t, []string{"a", "a", "b", "b"},
		[]string{grp.StringValue(0), grp.StringValue(1), grp.StringValue(2), grp.StringValue(3)})
	assert.Equal(t, int64(2), val.Value(0))
	assert.Equal(t, int64(4), val.Value(1))

	// original is untouched
	og, _ := dt.Column("grp")
	assert.Equal(t, "b", og.StringValue(0))

	_, err = dt.Sorted(Ascending, "nope")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSortedMissingLast(t *testing.T) {
	vals := NewFloat(2, 0, 1)
	vals.SetMissing(1)
	dt := New()
	assert.NoError(t, dt.AddColumn("v", vals))

	up, err := dt.Sorted(Ascending, "v")
	assert.NoError(t, err)
	v, _ := up.Column("v")
	assert.Equal(t, float64(1), v.Value(0))
	assert.Equal(t, float64(2), v.Value(1))
	assert.True(t, v.IsMissing(2))

	// missing stays last when descending too
	down, err := dt.Sorted(Descending, "v")
	assert.NoError(t, err)
	v, _ = down.Column("v")
	assert.Equal(t, float64(2), v.Value(0))
	assert.Equal(t, float64(1), v.Value(1))
	assert.True(t, v.IsMissing(2))
}

func TestSortedStable(t *testing.T) {
	dt := New()
	assert.NoError(t, dt.AddColumn("k", NewString("x", "x", "x")))
	assert.NoError(t, dt.AddColumn("tag", NewString("first", "second", "third")))
	nt, err := dt.Sorted(Ascending, "k")
	assert.NoError(t, err)
	tag, _ := nt.Column("tag")
	assert.Equal(t, "first", tag.StringValue(0))
	assert.Equal(t, "second", tag.StringValue(1))
	assert.Equal(t, "third", tag.StringValue(2))
}
