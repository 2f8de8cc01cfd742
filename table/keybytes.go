// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Canonical byte encodings of cell values, used for hashing rows in
// join indexes and deduplication. Each cell is encoded as a type tag
// byte followed by a fixed-width value, or a length-prefixed string,
// so that multi-column keys cannot alias each other.

const missingTag = 0xFF

func appendUint64Key(buf []byte, tag byte, v uint64) []byte {
	buf = append(buf, tag)
	return binary.BigEndian.AppendUint64(buf, v)
}

func appendFloatKey(buf []byte, tag byte, v float64) []byte {
	return appendUint64Key(buf, tag, math.Float64bits(v))
}

func appendStringKey(buf []byte, tag byte, s string) []byte {
	buf = append(buf, tag)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// KeyBytes appends the canonical encoding of the given row across the
// given columns to buf, returning the extended buffer and whether the
// key is usable: a missing value in any key component makes the whole
// key unusable, so such rows never match in joins.
func KeyBytes(buf []byte, cols []Column, row int) ([]byte, bool) {
	for _, cl := range cols {
		if cl.IsMissing(row) {
			return buf, false
		}
		buf = cl.appendKeyBytes(buf, row)
	}
	return buf, true
}

// RowBytes appends the canonical encoding of the given row across the
// given columns, encoding missing values as an explicit marker, so
// that missing equals missing. Deduplication uses this form.
func RowBytes(buf []byte, cols []Column, row int) []byte {
	for _, cl := range cols {
		if cl.IsMissing(row) {
			buf = append(buf, missingTag)
			continue
		}
		buf = cl.appendKeyBytes(buf, row)
	}
	return buf
}

// KeyEqual reports whether the key of row i over the left columns
// equals the key of row j over the right columns, comparing canonical
// encodings. Missing key components never match.
func KeyEqual(left []Column, i int, right []Column, j int) bool {
	lb, ok := KeyBytes(nil, left, i)
	if !ok {
		return false
	}
	rb, ok := KeyBytes(nil, right, j)
	if !ok {
		return false
	}
	return bytes.Equal(lb, rb)
}

// RowsEqual reports whether rows i and j of the given table are exact
// duplicates across all columns, with missing equal to missing, as
// deduplication requires.
func RowsEqual(dt *Table, i, j int) bool {
	for _, cl := range dt.cols.Values {
		im, jm := cl.IsMissing(i), cl.IsMissing(j)
		if im != jm {
			return false
		}
		if im {
			continue
		}
		if !cl.EqualAt(i, cl, j) {
			return false
		}
	}
	return true
}
