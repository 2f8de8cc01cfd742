// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tableio

import (
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/tidyframe/tidyframe/table"
)

// WriteJSON writes the table as a JSON array of record objects, one
// per row, with keys in column order. Missing cells become null;
// date and datetime cells become their ISO string renditions.
func WriteJSON(dt *table.Table, w io.Writer) error {
	cols := make([]table.Column, dt.NumColumns())
	keys := make([][]byte, dt.NumColumns())
	for i := range cols {
		cols[i] = dt.ColumnByIndex(i)
		k, err := json.Marshal(dt.ColumnName(i))
		if err != nil {
			return err
		}
		keys[i] = k
	}

	buf := []byte{'['}
	for r := range dt.NumRows() {
		if r > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, '{')
		for c, cl := range cols {
			if c > 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, keys[c]...)
			buf = append(buf, ':')
			cell, err := marshalCell(cl, r)
			if err != nil {
				return err
			}
			buf = append(buf, cell...)
		}
		buf = append(buf, '}')
	}
	buf = append(buf, ']', '\n')
	_, err := w.Write(buf)
	return err
}

// SaveJSON writes the table to the named file with [WriteJSON].
func SaveJSON(dt *table.Table, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	err = WriteJSON(dt, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func marshalCell(cl table.Column, row int) ([]byte, error) {
	if cl.IsMissing(row) {
		return []byte("null"), nil
	}
	if cl.Type().IsTime() {
		return json.Marshal(cl.StringValue(row))
	}
	return json.Marshal(cl.Value(row))
}
