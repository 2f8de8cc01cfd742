// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"

	"github.com/tidyframe/tidyframe/base/errors"
)

// Sentinel errors for the operations across all tidyframe packages.
// Operation errors wrap one of these, so callers can classify
// failures with [errors.Is] while still getting full context from
// the message.
var (
	// ErrKeyNotFound indicates a referenced column or key is absent.
	ErrKeyNotFound = errors.New("column or key not found")

	// ErrShapeMismatch indicates incompatible row or column counts.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrSchemaMismatch indicates incompatible column sets or types.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrConversion indicates a strict type coercion failure.
	// The error wrapping it is a [*ConversionError] carrying the
	// offending row index and raw value.
	ErrConversion = errors.New("conversion error")

	// ErrColumnConflict indicates an unresolved column name collision.
	ErrColumnConflict = errors.New("column name conflict")

	// ErrAmbiguousColumns indicates a reshape could not infer which
	// columns are identifiers and which are measures.
	ErrAmbiguousColumns = errors.New("ambiguous columns")

	// ErrAmbiguousAggregation indicates a reshape group held more than
	// one value and no aggregator was given to collapse them.
	ErrAmbiguousAggregation = errors.New("ambiguous aggregation")

	// ErrEmptySelection indicates a column selection matched nothing
	// and the caller did not allow an empty result.
	ErrEmptySelection = errors.New("empty selection")
)

// ConversionError reports a value that could not be parsed under the
// target type during strict coercion. It wraps [ErrConversion].
type ConversionError struct {
	// Row is the index of the offending row.
	Row int

	// Raw is the raw value that failed to parse.
	Raw string

	// Target is the type the value was being converted to.
	Target Type
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert value %q at row %d to %s", e.Raw, e.Row, e.Target)
}

func (e *ConversionError) Unwrap() error { return ErrConversion }
