// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tableio reads and writes tables as delimited text (CSV,
// TSV) and exports them as JSON records. Reading produces string
// columns by default, preserving the raw cell text; per-column type
// hints convert on the way in.
package tableio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/tidyframe/tidyframe/base/logx"
	"github.com/tidyframe/tidyframe/coerce"
	"github.com/tidyframe/tidyframe/table"
)

// ReadOptions configures [ReadCSV].
type ReadOptions struct {
	// NoHeader treats the first record as data; columns are then
	// named col1, col2, and so on.
	NoHeader bool

	// Delimiter is the field separator. Zero means detect from the
	// first line, choosing among comma, tab, semicolon, and pipe.
	Delimiter rune

	// Encoding is the IANA name of the input character encoding,
	// such as "windows-1252" or "ISO-8859-1". Empty means UTF-8.
	Encoding string

	// TypeHints converts the named columns to the given types after
	// reading, leniently: unparsable cells become missing. Columns
	// without a hint stay strings.
	TypeHints map[string]table.Type

	// Coerce configures the hint conversions (date format, locale).
	Coerce coerce.Options
}

// WriteOptions configures [WriteCSV].
type WriteOptions struct {
	// Delimiter is the field separator; zero means comma.
	Delimiter rune

	// NoHeader omits the column-name record.
	NoHeader bool
}

// ReadCSV reads delimited text into a table. Every column is read as
// a string column with empty cells missing, then the type hints are
// applied. Records with a deviating field count are an error.
func ReadCSV(r io.Reader, opts ReadOptions) (*table.Table, error) {
	if opts.Encoding != "" {
		enc, err := ianaindex.IANA.Encoding(opts.Encoding)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("tableio: unknown encoding %q", opts.Encoding)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}
	br := bufio.NewReader(r)
	delim := opts.Delimiter
	if delim == 0 {
		delim = detectDelimiter(br)
	}
	cr := csv.NewReader(br)
	cr.Comma = delim
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tableio: %w", err)
	}
	if len(recs) == 0 {
		return table.New(), nil
	}

	var names []string
	if opts.NoHeader {
		names = make([]string, len(recs[0]))
		for i := range names {
			names[i] = fmt.Sprintf("col%d", i+1)
		}
	} else {
		names = recs[0]
		recs = recs[1:]
	}

	dt := table.New()
	for c, name := range names {
		cl := table.NewOfType(table.StringType, len(recs))
		for r, rec := range recs {
			if rec[c] == "" {
				continue
			}
			if err := cl.SetValue(r, rec[c]); err != nil {
				return nil, err
			}
		}
		if err := dt.AddColumn(name, cl); err != nil {
			return nil, fmt.Errorf("tableio: column %q: %w", name, err)
		}
	}

	for name, target := range opts.TypeHints {
		co := opts.Coerce
		co.Strict = false
		nd, bad, err := coerce.Table(dt, name, target, co)
		if err != nil {
			return nil, err
		}
		if bad > 0 {
			logx.Warnf("tableio: column %q: %d values unparsable as %s, now missing", name, bad, target)
		}
		dt = nd
	}
	return dt, nil
}

// OpenCSV reads the named file with [ReadCSV] and records the
// filename as the table's source metadata.
func OpenCSV(filename string, opts ReadOptions) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dt, err := ReadCSV(f, opts)
	if err != nil {
		return nil, err
	}
	dt.Meta.SetSource(filename)
	return dt, nil
}

// WriteCSV writes the table as delimited text. Missing cells become
// empty fields.
func WriteCSV(dt *table.Table, w io.Writer, opts WriteOptions) error {
	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}
	recs := dt.Records()
	if opts.NoHeader {
		recs = recs[1:]
	}
	if err := cw.WriteAll(recs); err != nil {
		return fmt.Errorf("tableio: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the table to the named file with [WriteCSV].
func SaveCSV(dt *table.Table, filename string, opts WriteOptions) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	err = WriteCSV(dt, f, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// detectDelimiter inspects the first line for the most frequent of
// the candidate separators, defaulting to comma.
func detectDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(4096)
	line := string(peek)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestCount := ',', 0
	for _, cand := range []rune{',', '\t', ';', '|'} {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}
