// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/tidyframe/tidyframe/clean"
	"github.com/tidyframe/tidyframe/coerce"
	"github.com/tidyframe/tidyframe/expr"
	"github.com/tidyframe/tidyframe/reshape"
	"github.com/tidyframe/tidyframe/table"
)

// Config is the YAML description of a pipeline:
//
//	name: clean-survey
//	stages:
//	  - op: coerce
//	    column: age
//	    type: int
//	  - op: replace-dummy
//	    column: age
//	    values: [9999]
//	  - op: filter
//	    expr: age >= 18
type Config struct {
	Name   string        `yaml:"name"`
	Stages []StageConfig `yaml:"stages"`
}

// StageConfig describes one stage. Op selects the operation; the
// remaining fields parameterize it and unused ones are ignored.
type StageConfig struct {
	Op string `yaml:"op"`

	Column  string   `yaml:"column"`
	Columns []string `yaml:"columns"`

	// coerce
	Type   string `yaml:"type"`
	Format string `yaml:"format"`
	Locale string `yaml:"locale"`
	Strict bool   `yaml:"strict"`

	// filter, compute
	Expr string `yaml:"expr"`

	// rename
	Mapping map[string]string `yaml:"mapping"`

	// replace-dummy
	Values []any `yaml:"values"`

	// select
	Prefix   string `yaml:"prefix"`
	Contains string `yaml:"contains"`
	Negate   bool   `yaml:"negate"`

	// normalize-strings
	Trim          bool `yaml:"trim"`
	Lower         bool `yaml:"lower"`
	CollapseSpace bool `yaml:"collapse-space"`

	// sort
	Descending bool `yaml:"descending"`

	// melt
	IDs      []string `yaml:"ids"`
	Measures []string `yaml:"measures"`
	Variable string   `yaml:"variable"`
	Value    string   `yaml:"value"`

	// cast
	RowKeys     []string `yaml:"row-keys"`
	ColumnKeys  []string `yaml:"column-keys"`
	ValueColumn string   `yaml:"value-column"`
	Agg         string   `yaml:"agg"`

	// head, tail
	N int `yaml:"n"`
}

// Load reads a YAML pipeline description and builds the pipeline.
func Load(r io.Reader) (*Pipeline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadFile builds a pipeline from the YAML description in the named
// file.
func LoadFile(filename string) (*Pipeline, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Parse builds a pipeline from YAML source.
func Parse(data []byte) (*Pipeline, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return FromConfig(&cfg)
}

// FromConfig builds a pipeline from a parsed [Config].
func FromConfig(cfg *Config) (*Pipeline, error) {
	p := New()
	for i, sc := range cfg.Stages {
		s, err := buildStage(sc)
		if err != nil {
			return nil, fmt.Errorf("pipeline: stage %d: %w", i, err)
		}
		p.Add(s)
	}
	return p, nil
}

func buildStage(sc StageConfig) (Stage, error) {
	build, ok := stageBuilders[sc.Op]
	if !ok {
		return nil, fmt.Errorf("unknown op %q", sc.Op)
	}
	return build(sc)
}

var stageBuilders = map[string]func(StageConfig) (Stage, error){
	"coerce":            buildCoerce,
	"filter":            buildFilter,
	"compute":           buildCompute,
	"select":            buildSelect,
	"rename":            buildRename,
	"replace-dummy":     buildReplaceDummy,
	"deduplicate":       buildDeduplicate,
	"normalize-strings": buildNormalizeStrings,
	"sort":              buildSort,
	"melt":              buildMelt,
	"cast":              buildCast,
	"head":              buildHead,
	"tail":              buildTail,
}

func buildCoerce(sc StageConfig) (Stage, error) {
	if sc.Column == "" {
		return nil, fmt.Errorf("coerce: no column given")
	}
	target, ok := table.TypeFromString(sc.Type)
	if !ok {
		return nil, fmt.Errorf("coerce: unknown type %q", sc.Type)
	}
	opts := coerce.Options{DateFormat: sc.Format, Strict: sc.Strict}
	if sc.Locale != "" {
		tag, err := language.Parse(sc.Locale)
		if err != nil {
			return nil, fmt.Errorf("coerce: invalid locale %q: %w", sc.Locale, err)
		}
		opts.Locale = tag
	}
	name := fmt.Sprintf("coerce %s to %s", sc.Column, target)
	return Func(name, func(dt *table.Table) (*table.Table, error) {
		out, _, err := coerce.Table(dt, sc.Column, target, opts)
		return out, err
	}), nil
}

func buildFilter(sc StageConfig) (Stage, error) {
	e, err := expr.Parse(sc.Expr)
	if err != nil {
		return nil, err
	}
	return Func("filter "+sc.Expr, e.Filter), nil
}

func buildCompute(sc StageConfig) (Stage, error) {
	if sc.Column == "" {
		return nil, fmt.Errorf("compute: no column given")
	}
	e, err := expr.Parse(sc.Expr)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("compute %s = %s", sc.Column, sc.Expr)
	return Func(name, func(dt *table.Table) (*table.Table, error) {
		cl, err := e.Compute(dt)
		if err != nil {
			return nil, err
		}
		return dt.WithColumn(sc.Column, cl)
	}), nil
}

func buildSelect(sc StageConfig) (Stage, error) {
	sel := table.Selection{
		Names:    sc.Columns,
		Prefix:   sc.Prefix,
		Contains: sc.Contains,
		Negate:   sc.Negate,
	}
	return Func("select", func(dt *table.Table) (*table.Table, error) {
		return dt.Select(sel)
	}), nil
}

func buildRename(sc StageConfig) (Stage, error) {
	if len(sc.Mapping) == 0 {
		return nil, fmt.Errorf("rename: no mapping given")
	}
	return Func("rename", func(dt *table.Table) (*table.Table, error) {
		return clean.RenameColumns(dt, sc.Mapping)
	}), nil
}

func buildReplaceDummy(sc StageConfig) (Stage, error) {
	if sc.Column == "" {
		return nil, fmt.Errorf("replace-dummy: no column given")
	}
	if len(sc.Values) == 0 {
		return nil, fmt.Errorf("replace-dummy: no values given")
	}
	return Func("replace-dummy "+sc.Column, func(dt *table.Table) (*table.Table, error) {
		return clean.ReplaceDummyIn(dt, sc.Column, sc.Values...)
	}), nil
}

func buildDeduplicate(sc StageConfig) (Stage, error) {
	return Func("deduplicate", func(dt *table.Table) (*table.Table, error) {
		return clean.Deduplicate(dt), nil
	}), nil
}

func buildNormalizeStrings(sc StageConfig) (Stage, error) {
	opts := clean.StringOptions{Trim: sc.Trim, Lower: sc.Lower, CollapseSpace: sc.CollapseSpace}
	return Func("normalize-strings", func(dt *table.Table) (*table.Table, error) {
		return clean.NormalizeStringsIn(dt, sc.Columns, opts)
	}), nil
}

func buildSort(sc StageConfig) (Stage, error) {
	if len(sc.Columns) == 0 {
		return nil, fmt.Errorf("sort: no columns given")
	}
	return Func("sort", func(dt *table.Table) (*table.Table, error) {
		return dt.Sorted(!sc.Descending, sc.Columns...)
	}), nil
}

func buildMelt(sc StageConfig) (Stage, error) {
	return Func("melt", func(dt *table.Table) (*table.Table, error) {
		return reshape.Melt(dt, sc.IDs, sc.Measures, sc.Variable, sc.Value)
	}), nil
}

func buildCast(sc StageConfig) (Stage, error) {
	agg, err := reshape.AggFromString(sc.Agg)
	if err != nil {
		return nil, err
	}
	return Func("cast", func(dt *table.Table) (*table.Table, error) {
		return reshape.Cast(dt, sc.RowKeys, sc.ColumnKeys, sc.ValueColumn, agg)
	}), nil
}

func buildHead(sc StageConfig) (Stage, error) {
	return Func("head", func(dt *table.Table) (*table.Table, error) {
		return dt.Head(sc.N), nil
	}), nil
}

func buildTail(sc StageConfig) (Stage, error) {
	return Func("tail", func(dt *table.Table) (*table.Table, error) {
		return dt.Tail(sc.N), nil
	}), nil
}
