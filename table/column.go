// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Column is a typed, ordered sequence of values, each either a
// concrete value of the declared [Type] or an explicit missing
// marker. Columns do not carry names: the [Table] maps names to
// columns and enforces name uniqueness.
//
// The i arguments index rows and must be in [0, Len()); indexing
// methods panic on out-of-range rows like a slice would.
type Column interface {
	// Type returns the declared storage type.
	Type() Type

	// Len returns the number of values, including missing ones.
	Len() int

	// IsMissing returns whether the value at the given row is missing.
	IsMissing(i int) bool

	// SetMissing marks the value at the given row as missing.
	SetMissing(i int)

	// Value returns the value at the given row as its natural Go type,
	// or nil if missing. Categorical values are returned as their
	// label string.
	Value(i int) any

	// SetValue sets the value at the given row, clearing any missing
	// marker. A nil value marks the row missing. It returns an error
	// if the value is not assignable to the column type.
	SetValue(i int, v any) error

	// StringValue returns the string rendition of the value at the
	// given row, and "" for missing values.
	StringValue(i int) string

	// Float returns the value at the given row as a float64, with
	// false if the value is missing or the type is not numeric.
	// Bool values convert to 0 and 1.
	Float(i int) (float64, bool)

	// Compare compares the values at rows i and j for sorting:
	// negative if i sorts before j. Missing values sort after all
	// concrete values and compare equal to each other.
	Compare(i, j int) int

	// EqualAt reports whether the value at row i equals the value of
	// the other column at row j. Missing values are never equal here;
	// deduplication handles missing-equals-missing separately.
	EqualAt(i int, other Column, j int) bool

	// Append appends a value, growing the column by one row.
	// A nil value appends a missing marker.
	Append(v any) error

	// AppendMissing appends a missing marker.
	AppendMissing()

	// AppendAll appends all rows of the source column, which must
	// have the same type.
	AppendAll(src Column) error

	// Take returns a new column holding the given rows in order.
	// A row index of -1 yields a missing value, which join operations
	// use to fill the unmatched side.
	Take(rows []int) Column

	// Clone returns a deep copy.
	Clone() Column

	// Empty returns a new column of the same type with n missing rows.
	Empty(n int) Column

	// appendKeyBytes appends the canonical byte encoding of the value
	// at the given row, for hashing. Callers must not pass missing rows.
	appendKeyBytes(buf []byte, i int) []byte
}

// col is the generic storage core shared by the concrete column types:
// a value slice and a parallel missing mask.
type col[T any] struct {
	values  []T
	missing []bool
}

func newCol[T any](vals []T) col[T] {
	return col[T]{values: vals, missing: make([]bool, len(vals))}
}

func emptyCol[T any](n int) col[T] {
	c := col[T]{values: make([]T, n), missing: make([]bool, n)}
	for i := range c.missing {
		c.missing[i] = true
	}
	return c
}

func (c *col[T]) Len() int { return len(c.values) }

func (c *col[T]) IsMissing(i int) bool { return c.missing[i] }

func (c *col[T]) SetMissing(i int) {
	var zv T
	c.values[i] = zv
	c.missing[i] = true
}

func (c *col[T]) AppendMissing() {
	var zv T
	c.values = append(c.values, zv)
	c.missing = append(c.missing, true)
}

func (c *col[T]) set(i int, v T) {
	c.values[i] = v
	c.missing[i] = false
}

func (c *col[T]) append(v T) {
	c.values = append(c.values, v)
	c.missing = append(c.missing, false)
}

func (c *col[T]) appendAll(src *col[T]) {
	c.values = append(c.values, src.values...)
	c.missing = append(c.missing, src.missing...)
}

func (c *col[T]) take(rows []int) col[T] {
	nc := col[T]{values: make([]T, len(rows)), missing: make([]bool, len(rows))}
	for k, r := range rows {
		if r < 0 || c.missing[r] {
			nc.missing[k] = true
			continue
		}
		nc.values[k] = c.values[r]
	}
	return nc
}

func (c *col[T]) clone() col[T] {
	return col[T]{values: slices.Clone(c.values), missing: slices.Clone(c.missing)}
}

// compareMissing resolves ordering when either row is missing:
// missing sorts after concrete values. The bool result reports
// whether the comparison was resolved here.
func compareMissing(im, jm bool) (int, bool) {
	switch {
	case im && jm:
		return 0, true
	case im:
		return 1, true
	case jm:
		return -1, true
	}
	return 0, false
}

//////// String

// String is a [Column] of raw strings.
type String struct {
	col[string]
}

// NewString returns a new string column holding the given values.
func NewString(vals ...string) *String {
	return &String{newCol(slices.Clone(vals))}
}

func (c *String) Type() Type { return StringType }

func (c *String) Value(i int) any {
	if c.missing[i] {
		return nil
	}
	return c.values[i]
}

func (c *String) SetValue(i int, v any) error {
	if v == nil {
		c.SetMissing(i)
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("table.String: cannot set %T value", v)
	}
	c.set(i, s)
	return nil
}

func (c *String) StringValue(i int) string {
	if c.missing[i] {
		return ""
	}
	return c.values[i]
}

func (c *String) Float(i int) (float64, bool) { return 0, false }

func (c *String) Compare(i, j int) int {
	if v, ok := compareMissing(c.missing[i], c.missing[j]); ok {
		return v
	}
	return cmp.Compare(c.values[i], c.values[j])
}

func (c *String) EqualAt(i int, other Column, j int) bool {
	oc, ok := other.(*String)
	if !ok || c.missing[i] || oc.missing[j] {
		return false
	}
	return c.values[i] == oc.values[j]
}

func (c *String) Append(v any) error {
	if v == nil {
		c.AppendMissing()
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("table.String: cannot append %T value", v)
	}
	c.append(s)
	return nil
}

func (c *String) AppendAll(src Column) error {
	oc, ok := src.(*String)
	if !ok {
		return fmt.Errorf("table.String: cannot append rows from %s column", src.Type())
	}
	c.appendAll(&oc.col)
	return nil
}

func (c *String) Take(rows []int) Column { return &String{c.take(rows)} }
func (c *String) Clone() Column          { return &String{c.clone()} }
func (c *String) Empty(n int) Column     { return &String{emptyCol[string](n)} }

func (c *String) appendKeyBytes(buf []byte, i int) []byte {
	return appendStringKey(buf, byte(StringType), c.values[i])
}

//////// Int

// Int is a [Column] of 64-bit signed integers.
type Int struct {
	col[int64]
}

// NewInt returns a new int column holding the given values.
func NewInt(vals ...int64) *Int {
	return &Int{newCol(slices.Clone(vals))}
}

func (c *Int) Type() Type { return IntType }

func (c *Int) Value(i int) any {
	if c.missing[i] {
		return nil
	}
	return c.values[i]
}

func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	}
	return 0, false
}

func (c *Int) SetValue(i int, v any) error {
	if v == nil {
		c.SetMissing(i)
		return nil
	}
	n, ok := intValue(v)
	if !ok {
		return fmt.Errorf("table.Int: cannot set %T value", v)
	}
	c.set(i, n)
	return nil
}

func (c *Int) StringValue(i int) string {
	if c.missing[i] {
		return ""
	}
	return strconv.FormatInt(c.values[i], 10)
}

func (c *Int) Float(i int) (float64, bool) {
	if c.missing[i] {
		return 0, false
	}
	return float64(c.values[i]), true
}

func (c *Int) Compare(i, j int) int {
	if v, ok := compareMissing(c.missing[i], c.missing[j]); ok {
		return v
	}
	return cmp.Compare(c.values[i], c.values[j])
}

func (c *Int) EqualAt(i int, other Column, j int) bool {
	oc, ok := other.(*Int)
	if !ok || c.missing[i] || oc.missing[j] {
		return false
	}
	return c.values[i] == oc.values[j]
}

func (c *Int) Append(v any) error {
	if v == nil {
		c.AppendMissing()
		return nil
	}
	n, ok := intValue(v)
	if !ok {
		return fmt.Errorf("table.Int: cannot append %T value", v)
	}
	c.append(n)
	return nil
}

func (c *Int) AppendAll(src Column) error {
	oc, ok := src.(*Int)
	if !ok {
		return fmt.Errorf("table.Int: cannot append rows from %s column", src.Type())
	}
	c.appendAll(&oc.col)
	return nil
}

func (c *Int) Take(rows []int) Column { return &Int{c.take(rows)} }
func (c *Int) Clone() Column          { return &Int{c.clone()} }
func (c *Int) Empty(n int) Column     { return &Int{emptyCol[int64](n)} }

func (c *Int) appendKeyBytes(buf []byte, i int) []byte {
	return appendUint64Key(buf, byte(IntType), uint64(c.values[i]))
}

//////// Float

// Float is a [Column] of 64-bit floats.
type Float struct {
	col[float64]
}

// NewFloat returns a new float column holding the given values.
func NewFloat(vals ...float64) *Float {
	return &Float{newCol(slices.Clone(vals))}
}

func (c *Float) Type() Type { return FloatType }

func (c *Float) Value(i int) any {
	if c.missing[i] {
		return nil
	}
	return c.values[i]
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func (c *Float) SetValue(i int, v any) error {
	if v == nil {
		c.SetMissing(i)
		return nil
	}
	f, ok := floatValue(v)
	if !ok {
		return fmt.Errorf("table.Float: cannot set %T value", v)
	}
	c.set(i, f)
	return nil
}

func (c *Float) StringValue(i int) string {
	if c.missing[i] {
		return ""
	}
	return strconv.FormatFloat(c.values[i], 'g', -1, 64)
}

func (c *Float) Float(i int) (float64, bool) {
	if c.missing[i] {
		return 0, false
	}
	return c.values[i], true
}

func (c *Float) Compare(i, j int) int {
	if v, ok := compareMissing(c.missing[i], c.missing[j]); ok {
		return v
	}
	return cmp.Compare(c.values[i], c.values[j])
}

func (c *Float) EqualAt(i int, other Column, j int) bool {
	oc, ok := other.(*Float)
	if !ok || c.missing[i] || oc.missing[j] {
		return false
	}
	return c.values[i] == oc.values[j]
}

func (c *Float) Append(v any) error {
	if v == nil {
		c.AppendMissing()
		return nil
	}
	f, ok := floatValue(v)
	if !ok {
		return fmt.Errorf("table.Float: cannot append %T value", v)
	}
	c.append(f)
	return nil
}

func (c *Float) AppendAll(src Column) error {
	oc, ok := src.(*Float)
	if !ok {
		return fmt.Errorf("table.Float: cannot append rows from %s column", src.Type())
	}
	c.appendAll(&oc.col)
	return nil
}

func (c *Float) Take(rows []int) Column { return &Float{c.take(rows)} }
func (c *Float) Clone() Column          { return &Float{c.clone()} }
func (c *Float) Empty(n int) Column     { return &Float{emptyCol[float64](n)} }

func (c *Float) appendKeyBytes(buf []byte, i int) []byte {
	return appendFloatKey(buf, byte(FloatType), c.values[i])
}

//////// Bool

// Bool is a [Column] of booleans.
type Bool struct {
	col[bool]
}

// NewBool returns a new bool column holding the given values.
func NewBool(vals ...bool) *Bool {
	return &Bool{newCol(slices.Clone(vals))}
}

func (c *Bool) Type() Type { return BoolType }

func (c *Bool) Value(i int) any {
	if c.missing[i] {
		return nil
	}
	return c.values[i]
}

func (c *Bool) SetValue(i int, v any) error {
	if v == nil {
		c.SetMissing(i)
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("table.Bool: cannot set %T value", v)
	}
	c.set(i, b)
	return nil
}

func (c *Bool) StringValue(i int) string {
	if c.missing[i] {
		return ""
	}
	return strconv.FormatBool(c.values[i])
}

func (c *Bool) Float(i int) (float64, bool) {
	if c.missing[i] {
		return 0, false
	}
	if c.values[i] {
		return 1, true
	}
	return 0, true
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (c *Bool) Compare(i, j int) int {
	if v, ok := compareMissing(c.missing[i], c.missing[j]); ok {
		return v
	}
	return cmp.Compare(boolInt(c.values[i]), boolInt(c.values[j]))
}

func (c *Bool) EqualAt(i int, other Column, j int) bool {
	oc, ok := other.(*Bool)
	if !ok || c.missing[i] || oc.missing[j] {
		return false
	}
	return c.values[i] == oc.values[j]
}

func (c *Bool) Append(v any) error {
	if v == nil {
		c.AppendMissing()
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("table.Bool: cannot append %T value", v)
	}
	c.append(b)
	return nil
}

func (c *Bool) AppendAll(src Column) error {
	oc, ok := src.(*Bool)
	if !ok {
		return fmt.Errorf("table.Bool: cannot append rows from %s column", src.Type())
	}
	c.appendAll(&oc.col)
	return nil
}

func (c *Bool) Take(rows []int) Column { return &Bool{c.take(rows)} }
func (c *Bool) Clone() Column          { return &Bool{c.clone()} }
func (c *Bool) Empty(n int) Column     { return &Bool{emptyCol[bool](n)} }

func (c *Bool) appendKeyBytes(buf []byte, i int) []byte {
	v := uint64(boolInt(c.values[i]))
	return appendUint64Key(buf, byte(BoolType), v)
}

//////// Time

// Time is a [Column] of time values: either calendar dates
// ([DateType]) or full timestamps ([DatetimeType]).
type Time struct {
	col[time.Time]
	typ Type
}

// NewDate returns a new date column holding the given values,
// truncated to midnight UTC.
func NewDate(vals ...time.Time) *Time {
	ds := make([]time.Time, len(vals))
	for i, v := range vals {
		ds[i] = DateOf(v)
	}
	return &Time{newCol(ds), DateType}
}

// NewDatetime returns a new datetime column holding the given values.
func NewDatetime(vals ...time.Time) *Time {
	return &Time{newCol(slices.Clone(vals)), DatetimeType}
}

// DateOf truncates the given time to its calendar date, in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (c *Time) Type() Type { return c.typ }

func (c *Time) Value(i int) any {
	if c.missing[i] {
		return nil
	}
	return c.values[i]
}

func (c *Time) SetValue(i int, v any) error {
	if v == nil {
		c.SetMissing(i)
		return nil
	}
	t, ok := v.(time.Time)
	if !ok {
		return fmt.Errorf("table.Time: cannot set %T value", v)
	}
	if c.typ == DateType {
		t = DateOf(t)
	}
	c.set(i, t)
	return nil
}

func (c *Time) StringValue(i int) string {
	if c.missing[i] {
		return ""
	}
	if c.typ == DateType {
		return c.values[i].Format(time.DateOnly)
	}
	return c.values[i].Format(time.RFC3339)
}

func (c *Time) Float(i int) (float64, bool) { return 0, false }

func (c *Time) Compare(i, j int) int {
	if v, ok := compareMissing(c.missing[i], c.missing[j]); ok {
		return v
	}
	return c.values[i].Compare(c.values[j])
}

func (c *Time) EqualAt(i int, other Column, j int) bool {
	oc, ok := other.(*Time)
	if !ok || c.missing[i] || oc.missing[j] {
		return false
	}
	return c.values[i].Equal(oc.values[j])
}

func (c *Time) Append(v any) error {
	if v == nil {
		c.AppendMissing()
		return nil
	}
	t, ok := v.(time.Time)
	if !ok {
		return fmt.Errorf("table.Time: cannot append %T value", v)
	}
	if c.typ == DateType {
		t = DateOf(t)
	}
	c.append(t)
	return nil
}

func (c *Time) AppendAll(src Column) error {
	oc, ok := src.(*Time)
	if !ok || oc.typ != c.typ {
		return fmt.Errorf("table.Time: cannot append rows from %s column", src.Type())
	}
	c.appendAll(&oc.col)
	return nil
}

func (c *Time) Take(rows []int) Column { return &Time{c.take(rows), c.typ} }
func (c *Time) Clone() Column          { return &Time{c.clone(), c.typ} }
func (c *Time) Empty(n int) Column     { return &Time{emptyCol[time.Time](n), c.typ} }

func (c *Time) appendKeyBytes(buf []byte, i int) []byte {
	return appendUint64Key(buf, byte(c.typ), uint64(c.values[i].UnixNano()))
}

// NewOfType returns a new column of the given type with n rows,
// all missing.
func NewOfType(t Type, n int) Column {
	switch t {
	case StringType:
		return &String{emptyCol[string](n)}
	case CategoricalType:
		return emptyCategorical(n)
	case IntType:
		return &Int{emptyCol[int64](n)}
	case FloatType:
		return &Float{emptyCol[float64](n)}
	case BoolType:
		return &Bool{emptyCol[bool](n)}
	case DateType:
		return &Time{emptyCol[time.Time](n), DateType}
	case DatetimeType:
		return &Time{emptyCol[time.Time](n), DatetimeType}
	}
	panic("table.NewOfType: invalid type " + t.String())
}
