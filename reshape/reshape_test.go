// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reshape

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/tidyframe/tidyframe/table"
)

// scores in wide form: one row per subject, one column per test
func wideScores(t *testing.T) *table.Table {
	t.Helper()
	dt := table.New()
	assert.NoError(t, dt.AddColumn("id", table.NewInt(1, 2)))
	assert.NoError(t, dt.AddColumn("Verbal", table.NewFloat(600, 520)))
	assert.NoError(t, dt.AddColumn("Nonverbal", table.NewFloat(580, 610)))
	return dt
}

func TestMelt(t *testing.T) {
	dt := wideScores(t)
	long, err := Melt(dt, []string{"id"}, []string{"Verbal", "Nonverbal"}, "Test", "Score")
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "Test", "Score"}, long.ColumnNames())
	assert.Equal(t, 4, long.NumRows())

	id, _ := long.Column("id")
	test, _ := long.Column("Test")
	score, _ := long.Column("Score")
	// row-major: all measures of row 0, then of row 1
	assert.Equal(t, int64(1), id.Value(0))
	assert.Equal(t, "Verbal", test.StringValue(0))
	assert.Equal(t, float64(600), score.Value(0))
	assert.Equal(t, int64(1), id.Value(1))
	assert.Equal(t, "Nonverbal", test.StringValue(1))
	assert.Equal(t, float64(580), score.Value(1))
	assert.Equal(t, int64(2), id.Value(2))
	assert.Equal(t, "Verbal", test.StringValue(2))
}

func TestMeltInfersComplement(t *testing.T) {
	dt := wideScores(t)
	// measures not named: everything but the ids
	long, err := Melt(dt, []string{"id"}, nil, "", "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "variable", "value"}, long.ColumnNames())
	assert.Equal(t, 4, long.NumRows())

	// ids not named: everything but the measures
	long2, err := Melt(dt, nil, []string{"Verbal", "Nonverbal"}, "", "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "variable", "value"}, long2.ColumnNames())

	_, err = Melt(dt, nil, nil, "", "")
	assert.ErrorIs(t, err, table.ErrAmbiguousColumns)
}

func TestMeltMixedMeasureTypes(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("id", table.NewInt(1)))
	assert.NoError(t, dt.AddColumn("a", table.NewFloat(1)))
	assert.NoError(t, dt.AddColumn("b", table.NewString("x")))
	_, err := Melt(dt, []string{"id"}, []string{"a", "b"}, "", "")
	assert.ErrorIs(t, err, table.ErrSchemaMismatch)
}

func TestMeltMissingValues(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("id", table.NewInt(1)))
	v := table.NewFloat(0)
	v.SetMissing(0)
	assert.NoError(t, dt.AddColumn("a", v))
	long, err := Melt(dt, []string{"id"}, []string{"a"}, "", "")
	assert.NoError(t, err)
	val, _ := long.Column("value")
	assert.True(t, val.IsMissing(0))
}

func TestCast(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("id", table.NewInt(1, 1, 2)))
	assert.NoError(t, dt.AddColumn("Test", table.NewString("Verbal", "Nonverbal", "Verbal")))
	assert.NoError(t, dt.AddColumn("Score", table.NewFloat(600, 580, 520)))

	wide, err := Cast(dt, []string{"id"}, []string{"Test"}, "Score", Identity)
	assert.NoError(t, err)
	// column-key values become columns in first-appearance order
	assert.Equal(t, []string{"id", "Verbal", "Nonverbal"}, wide.ColumnNames())
	assert.Equal(t, 2, wide.NumRows())

	verbal, _ := wide.Column("Verbal")
	nonverbal, _ := wide.Column("Nonverbal")
	assert.Equal(t, float64(600), verbal.Value(0))
	assert.Equal(t, float64(580), nonverbal.Value(0))
	assert.Equal(t, float64(520), verbal.Value(1))
	// id=2 never took the Nonverbal test: the cell is missing, not zero
	assert.True(t, nonverbal.IsMissing(1))
}

func TestMeltCastRoundTrip(t *testing.T) {
	dt := wideScores(t)
	long, err := Melt(dt, []string{"id"}, []string{"Verbal", "Nonverbal"}, "Test", "Score")
	assert.NoError(t, err)
	back, err := Cast(long, []string{"id"}, []string{"Test"}, "Score", Identity)
	assert.NoError(t, err)
	if diff := cmp.Diff(dt.Records(), back.Records()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCastAmbiguousAggregation(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("id", table.NewInt(1, 1)))
	assert.NoError(t, dt.AddColumn("k", table.NewString("x", "x")))
	assert.NoError(t, dt.AddColumn("v", table.NewFloat(1, 2)))
	_, err := Cast(dt, []string{"id"}, []string{"k"}, "v", Identity)
	assert.ErrorIs(t, err, table.ErrAmbiguousAggregation)

	// an explicit aggregator collapses the group instead
	wide, err := Cast(dt, []string{"id"}, []string{"k"}, "v", Mean)
	assert.NoError(t, err)
	x, _ := wide.Column("x")
	assert.Equal(t, float64(1.5), x.Value(0))
}

func TestCastAggregators(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("id", table.NewInt(1, 1, 1)))
	assert.NoError(t, dt.AddColumn("k", table.NewString("x", "x", "x")))
	v := table.NewFloat(2, 4, 0)
	v.SetMissing(2)
	assert.NoError(t, dt.AddColumn("v", v))

	// a missing operand makes mean, sd, and sum missing
	for _, agg := range []Agg{Mean, SD, Sum} {
		wide, err := Cast(dt, []string{"id"}, []string{"k"}, "v", agg)
		assert.NoError(t, err, agg.String())
		x, _ := wide.Column("x")
		assert.True(t, x.IsMissing(0), agg.String())
	}

	// count counts the non-missing entries
	wide, err := Cast(dt, []string{"id"}, []string{"k"}, "v", Count)
	assert.NoError(t, err)
	x, _ := wide.Column("x")
	assert.Equal(t, table.IntType, x.Type())
	assert.Equal(t, int64(2), x.Value(0))
}

func TestCastSumMeanSD(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("id", table.NewInt(1, 1, 1)))
	assert.NoError(t, dt.AddColumn("k", table.NewString("x", "x", "x")))
	assert.NoError(t, dt.AddColumn("v", table.NewFloat(1, 2, 3)))

	sum, err := Cast(dt, []string{"id"}, []string{"k"}, "v", Sum)
	assert.NoError(t, err)
	x, _ := sum.Column("x")
	assert.Equal(t, float64(6), x.Value(0))

	mean, err := Cast(dt, []string{"id"}, []string{"k"}, "v", Mean)
	assert.NoError(t, err)
	x, _ = mean.Column("x")
	assert.Equal(t, float64(2), x.Value(0))

	sd, err := Cast(dt, []string{"id"}, []string{"k"}, "v", SD)
	assert.NoError(t, err)
	x, _ = sd.Column("x")
	assert.InDelta(t, 1.0, x.Value(0), 1e-9)
}

func TestCastMultipleColumnKeys(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("id", table.NewInt(1)))
	assert.NoError(t, dt.AddColumn("year", table.NewInt(2024)))
	assert.NoError(t, dt.AddColumn("q", table.NewString("Q1")))
	assert.NoError(t, dt.AddColumn("v", table.NewFloat(9)))
	wide, err := Cast(dt, []string{"id"}, []string{"year", "q"}, "v", Identity)
	assert.NoError(t, err)
	// multi-column keys join with "_"
	assert.Equal(t, []string{"id", "2024_Q1"}, wide.ColumnNames())
}

func TestCastErrors(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("id", table.NewInt(1)))
	assert.NoError(t, dt.AddColumn("k", table.NewString("x")))
	assert.NoError(t, dt.AddColumn("v", table.NewString("oops")))

	_, err := Cast(dt, []string{"id"}, nil, "v", Identity)
	assert.ErrorIs(t, err, table.ErrAmbiguousColumns)

	_, err = Cast(dt, []string{"id"}, []string{"k"}, "nope", Identity)
	assert.ErrorIs(t, err, table.ErrKeyNotFound)

	// numeric aggregation over a string value column
	_, err = Cast(dt, []string{"id"}, []string{"k"}, "v", Mean)
	assert.ErrorIs(t, err, table.ErrSchemaMismatch)
}

func TestAggFromString(t *testing.T) {
	a, err := AggFromString("")
	assert.NoError(t, err)
	assert.Equal(t, Identity, a)
	a, err = AggFromString("mean")
	assert.NoError(t, err)
	assert.Equal(t, Mean, a)
	_, err = AggFromString("median")
	assert.Error(t, err)
}
