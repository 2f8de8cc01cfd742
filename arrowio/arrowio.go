// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arrowio converts tables to and from Apache Arrow records,
// for zero-copy style interchange with the Arrow ecosystem. Missing
// cells map to Arrow nulls in both directions.
package arrowio

import (
	"fmt"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"github.com/tidyframe/tidyframe/table"
)

// ToRecord converts a table to an Arrow record. Categorical columns
// export as their label strings. The caller owns the record and must
// Release it.
func ToRecord(dt *table.Table) (arrow.Record, error) {
	fields := make([]arrow.Field, dt.NumColumns())
	for i := range fields {
		at, err := arrowType(dt.ColumnByIndex(i).Type())
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: dt.ColumnName(i), Type: at, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)
	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	for i := range fields {
		if err := appendColumn(b.Field(i), dt.ColumnByIndex(i)); err != nil {
			return nil, fmt.Errorf("arrowio: column %q: %w", dt.ColumnName(i), err)
		}
	}
	return b.NewRecord(), nil
}

// FromRecord converts an Arrow record to a table. Nulls become
// missing cells. String, int64, float64, boolean, date32, and
// timestamp columns are supported.
func FromRecord(rec arrow.Record) (*table.Table, error) {
	dt := table.New()
	for i := range int(rec.NumCols()) {
		name := rec.Schema().Field(i).Name
		cl, err := fromArray(rec.Column(i))
		if err != nil {
			return nil, fmt.Errorf("arrowio: column %q: %w", name, err)
		}
		if err := dt.AddColumn(name, cl); err != nil {
			return nil, err
		}
	}
	return dt, nil
}

func arrowType(t table.Type) (arrow.DataType, error) {
	switch t {
	case table.StringType, table.CategoricalType:
		return arrow.BinaryTypes.String, nil
	case table.IntType:
		return arrow.PrimitiveTypes.Int64, nil
	case table.FloatType:
		return arrow.PrimitiveTypes.Float64, nil
	case table.BoolType:
		return arrow.FixedWidthTypes.Boolean, nil
	case table.DateType:
		return arrow.FixedWidthTypes.Date32, nil
	case table.DatetimeType:
		return arrow.FixedWidthTypes.Timestamp_us, nil
	}
	return nil, fmt.Errorf("arrowio: no arrow type for %s: %w", t, table.ErrSchemaMismatch)
}

func appendColumn(fb array.Builder, cl table.Column) error {
	for r := range cl.Len() {
		if cl.IsMissing(r) {
			fb.AppendNull()
			continue
		}
		switch b := fb.(type) {
		case *array.StringBuilder:
			b.Append(cl.StringValue(r))
		case *array.Int64Builder:
			v, ok := cl.Value(r).(int64)
			if !ok {
				return fmt.Errorf("int cell at row %d is %T", r, cl.Value(r))
			}
			b.Append(v)
		case *array.Float64Builder:
			f, _ := cl.Float(r)
			b.Append(f)
		case *array.BooleanBuilder:
			v, ok := cl.Value(r).(bool)
			if !ok {
				return fmt.Errorf("bool cell at row %d is %T", r, cl.Value(r))
			}
			b.Append(v)
		case *array.Date32Builder:
			t, ok := cl.Value(r).(time.Time)
			if !ok {
				return fmt.Errorf("date cell at row %d is %T", r, cl.Value(r))
			}
			b.Append(arrow.Date32FromTime(t))
		case *array.TimestampBuilder:
			t, ok := cl.Value(r).(time.Time)
			if !ok {
				return fmt.Errorf("datetime cell at row %d is %T", r, cl.Value(r))
			}
			b.Append(arrow.Timestamp(t.UnixMicro()))
		default:
			return fmt.Errorf("unsupported builder %T", fb)
		}
	}
	return nil
}

func fromArray(arr arrow.Array) (table.Column, error) {
	n := arr.Len()
	var cl table.Column
	switch a := arr.(type) {
	case *array.String:
		cl = table.NewOfType(table.StringType, n)
		for i := range n {
			if !a.IsNull(i) {
				if err := cl.SetValue(i, a.Value(i)); err != nil {
					return nil, err
				}
			}
		}
	case *array.Int64:
		cl = table.NewOfType(table.IntType, n)
		for i := range n {
			if !a.IsNull(i) {
				if err := cl.SetValue(i, a.Value(i)); err != nil {
					return nil, err
				}
			}
		}
	case *array.Float64:
		cl = table.NewOfType(table.FloatType, n)
		for i := range n {
			if !a.IsNull(i) {
				if err := cl.SetValue(i, a.Value(i)); err != nil {
					return nil, err
				}
			}
		}
	case *array.Boolean:
		cl = table.NewOfType(table.BoolType, n)
		for i := range n {
			if !a.IsNull(i) {
				if err := cl.SetValue(i, a.Value(i)); err != nil {
					return nil, err
				}
			}
		}
	case *array.Date32:
		cl = table.NewOfType(table.DateType, n)
		for i := range n {
			if !a.IsNull(i) {
				if err := cl.SetValue(i, a.Value(i).ToTime()); err != nil {
					return nil, err
				}
			}
		}
	case *array.Timestamp:
		unit := arr.DataType().(*arrow.TimestampType).Unit
		cl = table.NewOfType(table.DatetimeType, n)
		for i := range n {
			if !a.IsNull(i) {
				if err := cl.SetValue(i, a.Value(i).ToTime(unit).UTC()); err != nil {
					return nil, err
				}
			}
		}
	default:
		return nil, fmt.Errorf("unsupported arrow type %s: %w", arr.DataType(), table.ErrSchemaMismatch)
	}
	return cl, nil
}
