// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tableio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidyframe/tidyframe/table"
)

func TestReadCSV(t *testing.T) {
	src := "id,name,score\n1,ann,3.5\n2,bob,\n"
	dt, err := ReadCSV(strings.NewReader(src), ReadOptions{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "score"}, dt.ColumnNames())
	assert.Equal(t, 2, dt.NumRows())

	// everything reads as strings without hints
	id, _ := dt.Column("id")
	assert.Equal(t, table.StringType, id.Type())
	assert.Equal(t, "1", id.Value(0))

	// empty cells are missing
	score, _ := dt.Column("score")
	assert.True(t, score.IsMissing(1))
}

func TestReadCSVTypeHints(t *testing.T) {
	src := "id,score\n1,3.5\n2,bad\n"
	dt, err := ReadCSV(strings.NewReader(src), ReadOptions{
		TypeHints: map[string]table.Type{"id": table.IntType, "score": table.FloatType},
	})
	assert.NoError(t, err)
	id, _ := dt.Column("id")
	score, _ := dt.Column("score")
	assert.Equal(t, table.IntType, id.Type())
	assert.Equal(t, int64(2), id.Value(1))
	assert.Equal(t, float64(3.5), score.Value(0))
	// hints convert leniently: the bad cell becomes missing
	assert.True(t, score.IsMissing(1))
}

func TestReadCSVNoHeader(t *testing.T) {
	dt, err := ReadCSV(strings.NewReader("1,x\n2,y\n"), ReadOptions{NoHeader: true})
	assert.NoError(t, err)
	assert.Equal(t, []string{"col1", "col2"}, dt.ColumnNames())
	assert.Equal(t, 2, dt.NumRows())
}

func TestReadCSVDetectsDelimiter(t *testing.T) {
	dt, err := ReadCSV(strings.NewReader("a\tb\n1\t2\n"), ReadOptions{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, dt.ColumnNames())

	dt, err = ReadCSV(strings.NewReader("a;b\n1;2\n"), ReadOptions{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, dt.ColumnNames())
}

func TestReadCSVRagged(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1\n"), ReadOptions{})
	assert.Error(t, err)
}

func TestReadCSVEncoding(t *testing.T) {
	// "José" in ISO-8859-1: é is 0xE9
	raw := []byte("name\nJos\xe9\n")
	dt, err := ReadCSV(bytes.NewReader(raw), ReadOptions{Encoding: "ISO-8859-1"})
	assert.NoError(t, err)
	nm, _ := dt.Column("name")
	assert.Equal(t, "José", nm.Value(0))

	_, err = ReadCSV(bytes.NewReader(raw), ReadOptions{Encoding: "no-such-charset"})
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("id", table.NewInt(1, 2)))
	score := table.NewFloat(3.5, 0)
	score.SetMissing(1)
	assert.NoError(t, dt.AddColumn("score", score))

	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(dt, &buf, WriteOptions{}))
	assert.Equal(t, "id,score\n1,3.5\n2,\n", buf.String())

	buf.Reset()
	assert.NoError(t, WriteCSV(dt, &buf, WriteOptions{Delimiter: '\t', NoHeader: true}))
	assert.Equal(t, "1\t3.5\n2\t\n", buf.String())
}

func TestCSVRoundTripFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "out.csv")

	dt := table.New()
	assert.NoError(t, dt.AddColumn("k", table.NewString("a", "b")))
	assert.NoError(t, SaveCSV(dt, fn, WriteOptions{}))

	back, err := OpenCSV(fn, ReadOptions{})
	assert.NoError(t, err)
	assert.Equal(t, dt.Records(), back.Records())
	// the filename is recorded as the source
	assert.Equal(t, fn, back.Meta.Source())
}

func TestWriteJSON(t *testing.T) {
	dt := table.New()
	assert.NoError(t, dt.AddColumn("id", table.NewInt(1, 2)))
	name := table.NewString("ann", "")
	name.SetMissing(1)
	assert.NoError(t, dt.AddColumn("name", name))
	assert.NoError(t, dt.AddColumn("ok", table.NewBool(true, false)))

	var buf bytes.Buffer
	assert.NoError(t, WriteJSON(dt, &buf))
	assert.Equal(t,
		`[{"id":1,"name":"ann","ok":true},{"id":2,"name":null,"ok":false}]`+"\n",
		buf.String())
}

func TestSaveJSON(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "out.json")
	dt := table.New()
	assert.NoError(t, dt.AddColumn("v", table.NewFloat(1.5)))
	assert.NoError(t, SaveJSON(dt, fn))
	data, err := os.ReadFile(fn)
	assert.NoError(t, err)
	assert.Equal(t, `[{"v":1.5}]`+"\n", string(data))
}
