// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import "regexp"

// node is an expression tree node.
type node interface {
	nodeType() string
}

// literalNode is a literal number, string, or boolean.
type literalNode struct {
	val value
}

func (n *literalNode) nodeType() string { return "literal" }

// columnNode references a column by name.
type columnNode struct {
	name string
}

func (n *columnNode) nodeType() string { return "column" }

// binaryNode is a binary operation: comparison, arithmetic, or logic.
type binaryNode struct {
	op    string // "or" "and" "==" "!=" "<" "<=" ">" ">=" "+" "-" "*" "/" "contains" "matches"
	left  node
	right node

	// re is the compiled pattern for "matches" with a literal
	// right-hand side, compiled once at parse time.
	re *regexp.Regexp
}

func (n *binaryNode) nodeType() string { return "binary" }

// unaryNode is "not x" or "-x".
type unaryNode struct {
	op      string
	operand node
}

func (n *unaryNode) nodeType() string { return "unary" }

// isMissingNode is "x is missing" or "x is not missing".
type isMissingNode struct {
	operand node
	negated bool
}

func (n *isMissingNode) nodeType() string { return "ismissing" }
