// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline chains table transformations into a reusable,
// named sequence. Stages run in order, each consuming the previous
// stage's output; the first failing stage aborts the run and its
// position and name are attached to the error. Pipelines can be built
// in code with [New] and [Func], or loaded from a YAML description
// with [Load].
package pipeline

import (
	"fmt"

	"github.com/tidyframe/tidyframe/base/logx"
	"github.com/tidyframe/tidyframe/table"
)

// Stage is one step of a pipeline.
type Stage interface {
	// Name identifies the stage in logs and errors.
	Name() string

	// Apply transforms the input table, returning a new table and
	// leaving the input unchanged.
	Apply(dt *table.Table) (*table.Table, error)
}

// Func adapts a function to the [Stage] interface.
func Func(name string, fn func(*table.Table) (*table.Table, error)) Stage {
	return &funcStage{name: name, fn: fn}
}

type funcStage struct {
	name string
	fn   func(*table.Table) (*table.Table, error)
}

func (s *funcStage) Name() string { return s.name }

func (s *funcStage) Apply(dt *table.Table) (*table.Table, error) { return s.fn(dt) }

// Pipeline is an ordered sequence of stages.
type Pipeline struct {
	stages []Stage
}

// New returns a pipeline running the given stages in order.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Add appends a stage, returning the pipeline for chaining.
func (p *Pipeline) Add(s Stage) *Pipeline {
	p.stages = append(p.stages, s)
	return p
}

// Len returns the number of stages.
func (p *Pipeline) Len() int { return len(p.stages) }

// Run applies the stages in order to the given table. It stops at the
// first failing stage, returning an error identifying the stage by
// position and name; on success it returns the final table. The input
// table is never modified.
func (p *Pipeline) Run(dt *table.Table) (*table.Table, error) {
	for i, s := range p.stages {
		out, err := s.Apply(dt)
		if err != nil {
			return nil, fmt.Errorf("pipeline: stage %d (%s): %w", i, s.Name(), err)
		}
		logx.Debugf("pipeline: stage %d (%s): %d rows in, %d rows out",
			i, s.Name(), dt.NumRows(), out.NumRows())
		dt = out
	}
	return dt, nil
}
