// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

// Type is the declared storage type of a [Column].
type Type int32

const (
	// StringType is a column of raw strings.
	StringType Type = iota

	// CategoricalType is a column of labels drawn from a level set,
	// stored as codes into the levels. See [Categorical].
	CategoricalType

	// IntType is a column of 64-bit signed integers.
	IntType

	// FloatType is a column of 64-bit floats.
	FloatType

	// BoolType is a column of booleans.
	BoolType

	// DateType is a column of calendar dates (time with zeroed clock).
	DateType

	// DatetimeType is a column of full timestamps.
	DatetimeType
)

func (t Type) String() string {
	switch t {
	case StringType:
		return "string"
	case CategoricalType:
		return "categorical"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case BoolType:
		return "bool"
	case DateType:
		return "date"
	case DatetimeType:
		return "datetime"
	}
	return "invalid"
}

// TypeFromString returns the [Type] with the given string name,
// and false if the name is not a recognized type.
func TypeFromString(s string) (Type, bool) {
	for t := StringType; t <= DatetimeType; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return StringType, false
}

// IsNumeric returns whether values of this type participate in
// arithmetic and numeric aggregation (int, float, bool as 0 / 1).
func (t Type) IsNumeric() bool {
	return t == IntType || t == FloatType || t == BoolType
}

// IsTime returns whether this type stores time values.
func (t Type) IsTime() bool {
	return t == DateType || t == DatetimeType
}

// ColumnInfo describes one column in a table schema: its name,
// declared type, and the number of missing values it holds.
type ColumnInfo struct {
	Name    string
	Type    Type
	Missing int
}
