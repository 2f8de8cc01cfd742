// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"cmp"
	"fmt"
	"slices"
)

// Categorical is a [Column] of labels drawn from a level set: an
// ordered sequence of unique labels defining sort and display order.
// Levels are unordered by default, in which case values sort by label;
// ordered levels sort by their position in the level set.
type Categorical struct {
	codes   []int
	missing []bool
	levels  []string
	index   map[string]int
	ordered bool
}

// NewCategorical returns a new categorical column holding the given
// labels, with levels in first-appearance order, unordered.
func NewCategorical(labels ...string) *Categorical {
	c := &Categorical{index: map[string]int{}}
	c.codes = make([]int, 0, len(labels))
	c.missing = make([]bool, len(labels))
	for _, l := range labels {
		c.codes = append(c.codes, c.internLevel(l))
	}
	return c
}

// NewCategoricalLevels returns a new categorical column holding the
// given labels with an explicit level set. Labels not present in the
// level set become missing values.
func NewCategoricalLevels(levels []string, ordered bool, labels ...string) *Categorical {
	c := &Categorical{
		levels:  slices.Clone(levels),
		index:   make(map[string]int, len(levels)),
		ordered: ordered,
		codes:   make([]int, len(labels)),
		missing: make([]bool, len(labels)),
	}
	for i, l := range levels {
		c.index[l] = i
	}
	for i, l := range labels {
		code, ok := c.index[l]
		if !ok {
			c.missing[i] = true
			continue
		}
		c.codes[i] = code
	}
	return c
}

func emptyCategorical(n int) *Categorical {
	c := &Categorical{
		index:   map[string]int{},
		codes:   make([]int, n),
		missing: make([]bool, n),
	}
	for i := range c.missing {
		c.missing[i] = true
	}
	return c
}

func (c *Categorical) internLevel(label string) int {
	if code, ok := c.index[label]; ok {
		return code
	}
	code := len(c.levels)
	c.levels = append(c.levels, label)
	c.index[label] = code
	return code
}

// Levels returns a copy of the level set, in level order.
func (c *Categorical) Levels() []string { return slices.Clone(c.levels) }

// Ordered returns whether the level set defines the sort order.
func (c *Categorical) Ordered() bool { return c.ordered }

// SetLevels returns a new column with the given level set and
// orderedness. Values whose label is absent from the new level set
// become missing.
func (c *Categorical) SetLevels(levels []string, ordered bool) *Categorical {
	return NewCategoricalLevels(levels, ordered, c.labels()...)
}

// labels returns the label of every row; missing rows keep "" but the
// caller must consult the mask, so this is only used internally where
// the mask is carried along.
func (c *Categorical) labels() []string {
	ls := make([]string, len(c.codes))
	for i, code := range c.codes {
		if !c.missing[i] {
			ls[i] = c.levels[code]
		}
	}
	return ls
}

func (c *Categorical) Type() Type { return CategoricalType }

func (c *Categorical) Len() int { return len(c.codes) }

func (c *Categorical) IsMissing(i int) bool { return c.missing[i] }

func (c *Categorical) SetMissing(i int) {
	c.codes[i] = 0
	c.missing[i] = true
}

func (c *Categorical) Value(i int) any {
	if c.missing[i] {
		return nil
	}
	return c.levels[c.codes[i]]
}

func (c *Categorical) SetValue(i int, v any) error {
	if v == nil {
		c.SetMissing(i)
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("table.Categorical: cannot set %T value", v)
	}
	c.codes[i] = c.internLevel(s)
	c.missing[i] = false
	return nil
}

func (c *Categorical) StringValue(i int) string {
	if c.missing[i] {
		return ""
	}
	return c.levels[c.codes[i]]
}

func (c *Categorical) Float(i int) (float64, bool) { return 0, false }

func (c *Categorical) Compare(i, j int) int {
	if v, ok := compareMissing(c.missing[i], c.missing[j]); ok {
		return v
	}
	if c.ordered {
		return cmp.Compare(c.codes[i], c.codes[j])
	}
	return cmp.Compare(c.levels[c.codes[i]], c.levels[c.codes[j]])
}

func (c *Categorical) EqualAt(i int, other Column, j int) bool {
	oc, ok := other.(*Categorical)
	if !ok || c.missing[i] || oc.missing[j] {
		return false
	}
	return c.levels[c.codes[i]] == oc.levels[oc.codes[j]]
}

func (c *Categorical) Append(v any) error {
	if v == nil {
		c.AppendMissing()
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("table.Categorical: cannot append %T value", v)
	}
	c.codes = append(c.codes, c.internLevel(s))
	c.missing = append(c.missing, false)
	return nil
}

func (c *Categorical) AppendMissing() {
	c.codes = append(c.codes, 0)
	c.missing = append(c.missing, true)
}

func (c *Categorical) AppendAll(src Column) error {
	oc, ok := src.(*Categorical)
	if !ok {
		return fmt.Errorf("table.Categorical: cannot append rows from %s column", src.Type())
	}
	for j := range oc.codes {
		if oc.missing[j] {
			c.AppendMissing()
			continue
		}
		c.codes = append(c.codes, c.internLevel(oc.levels[oc.codes[j]]))
		c.missing = append(c.missing, false)
	}
	return nil
}

func (c *Categorical) Take(rows []int) Column {
	nc := &Categorical{
		levels:  slices.Clone(c.levels),
		ordered: c.ordered,
		index:   make(map[string]int, len(c.levels)),
		codes:   make([]int, len(rows)),
		missing: make([]bool, len(rows)),
	}
	for i, l := range nc.levels {
		nc.index[l] = i
	}
	for k, r := range rows {
		if r < 0 || c.missing[r] {
			nc.missing[k] = true
			continue
		}
		nc.codes[k] = c.codes[r]
	}
	return nc
}

func (c *Categorical) Clone() Column {
	nc := &Categorical{
		codes:   slices.Clone(c.codes),
		missing: slices.Clone(c.missing),
		levels:  slices.Clone(c.levels),
		ordered: c.ordered,
		index:   make(map[string]int, len(c.levels)),
	}
	for i, l := range nc.levels {
		nc.index[l] = i
	}
	return nc
}

func (c *Categorical) Empty(n int) Column { return emptyCategorical(n) }

func (c *Categorical) appendKeyBytes(buf []byte, i int) []byte {
	// encoded as a string label so categorical and string key columns
	// can match each other in joins
	return appendStringKey(buf, byte(StringType), c.levels[c.codes[i]])
}
