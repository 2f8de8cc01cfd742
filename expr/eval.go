// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidyframe/tidyframe/table"
)

type valueKind int

const (
	missingKind valueKind = iota
	numKind
	strKind
	boolKind
)

// value is the result of evaluating an expression for one row.
// The missing marker propagates: any operation over a missing operand
// yields missing, except the explicit "is missing" test and the
// logical operators, which treat missing as false.
type value struct {
	kind valueKind
	num  float64
	str  string
	b    bool
}

func missingValue() value      { return value{kind: missingKind} }
func numValue(f float64) value { return value{kind: numKind, num: f} }
func strValue(s string) value  { return value{kind: strKind, str: s} }
func boolValue(b bool) value   { return value{kind: boolKind, b: b} }

// truth interprets a value in a logical context; missing is false.
func (v value) truth() (bool, error) {
	switch v.kind {
	case boolKind:
		return v.b, nil
	case missingKind:
		return false, nil
	case numKind:
		return v.num != 0, nil
	}
	return false, fmt.Errorf("expr: string value %q used as a condition", v.str)
}

// evaluator evaluates an expression tree against one table, caching
// column lookups across rows.
type evaluator struct {
	dt   *table.Table
	cols map[string]table.Column
}

func newEvaluator(dt *table.Table) *evaluator {
	return &evaluator{dt: dt, cols: make(map[string]table.Column)}
}

func (ev *evaluator) column(name string) (table.Column, error) {
	if cl, ok := ev.cols[name]; ok {
		return cl, nil
	}
	cl, err := ev.dt.Column(name)
	if err != nil {
		return nil, err
	}
	ev.cols[name] = cl
	return cl, nil
}

func (ev *evaluator) eval(n node, row int) (value, error) {
	switch n := n.(type) {
	case *literalNode:
		return n.val, nil
	case *columnNode:
		cl, err := ev.column(n.name)
		if err != nil {
			return value{}, err
		}
		return columnValue(cl, row), nil
	case *unaryNode:
		return ev.evalUnary(n, row)
	case *isMissingNode:
		v, err := ev.eval(n.operand, row)
		if err != nil {
			return value{}, err
		}
		return boolValue((v.kind == missingKind) != n.negated), nil
	case *binaryNode:
		return ev.evalBinary(n, row)
	}
	return value{}, fmt.Errorf("expr: unknown node %q", n.nodeType())
}

// columnValue converts a cell to an expression value. Numeric and
// bool columns keep their kind; string, categorical, date, and
// datetime columns evaluate as strings (ISO date renditions compare
// correctly as strings).
func columnValue(cl table.Column, row int) value {
	if cl.IsMissing(row) {
		return missingValue()
	}
	switch cl.Type() {
	case table.BoolType:
		f, _ := cl.Float(row)
		return boolValue(f != 0)
	case table.IntType, table.FloatType:
		f, _ := cl.Float(row)
		return numValue(f)
	}
	return strValue(cl.StringValue(row))
}

func (ev *evaluator) evalUnary(n *unaryNode, row int) (value, error) {
	v, err := ev.eval(n.operand, row)
	if err != nil {
		return value{}, err
	}
	switch n.op {
	case "not":
		if v.kind == missingKind {
			return boolValue(true), nil // not(missing-as-false)
		}
		b, err := v.truth()
		if err != nil {
			return value{}, err
		}
		return boolValue(!b), nil
	case "-":
		if v.kind == missingKind {
			return missingValue(), nil
		}
		if v.kind != numKind {
			return value{}, fmt.Errorf("expr: cannot negate a non-numeric value")
		}
		return numValue(-v.num), nil
	}
	return value{}, fmt.Errorf("expr: unknown unary operator %q", n.op)
}

func (ev *evaluator) evalBinary(n *binaryNode, row int) (value, error) {
	// logical operators short-circuit left to right
	if n.op == "and" || n.op == "or" {
		lv, err := ev.eval(n.left, row)
		if err != nil {
			return value{}, err
		}
		lb, err := lv.truth()
		if err != nil {
			return value{}, err
		}
		if n.op == "and" && !lb {
			return boolValue(false), nil
		}
		if n.op == "or" && lb {
			return boolValue(true), nil
		}
		rv, err := ev.eval(n.right, row)
		if err != nil {
			return value{}, err
		}
		rb, err := rv.truth()
		if err != nil {
			return value{}, err
		}
		return boolValue(rb), nil
	}

	lv, err := ev.eval(n.left, row)
	if err != nil {
		return value{}, err
	}
	rv, err := ev.eval(n.right, row)
	if err != nil {
		return value{}, err
	}
	if lv.kind == missingKind || rv.kind == missingKind {
		return missingValue(), nil
	}

	switch n.op {
	case "+", "-", "*", "/":
		lf, rf, err := numericOperands(lv, rv, n.op)
		if err != nil {
			return value{}, err
		}
		switch n.op {
		case "+":
			return numValue(lf + rf), nil
		case "-":
			return numValue(lf - rf), nil
		case "*":
			return numValue(lf * rf), nil
		case "/":
			if rf == 0 {
				return missingValue(), nil
			}
			return numValue(lf / rf), nil
		}
	case "==", "!=", "<", "<=", ">", ">=":
		c, err := compareValues(lv, rv)
		if err != nil {
			return value{}, err
		}
		switch n.op {
		case "==":
			return boolValue(c == 0), nil
		case "!=":
			return boolValue(c != 0), nil
		case "<":
			return boolValue(c < 0), nil
		case "<=":
			return boolValue(c <= 0), nil
		case ">":
			return boolValue(c > 0), nil
		case ">=":
			return boolValue(c >= 0), nil
		}
	case "contains":
		if lv.kind != strKind || rv.kind != strKind {
			return value{}, fmt.Errorf("expr: \"contains\" requires string operands")
		}
		return boolValue(strings.Contains(lv.str, rv.str)), nil
	case "matches":
		if lv.kind != strKind || rv.kind != strKind {
			return value{}, fmt.Errorf("expr: \"matches\" requires string operands")
		}
		re := n.re
		if re == nil {
			re, err = regexp.Compile(rv.str)
			if err != nil {
				return value{}, fmt.Errorf("expr: invalid pattern %q: %w", rv.str, err)
			}
		}
		return boolValue(re.MatchString(lv.str)), nil
	}
	return value{}, fmt.Errorf("expr: unknown operator %q", n.op)
}

func numericOperands(lv, rv value, op string) (float64, float64, error) {
	lf, ok := lv.asNum()
	if !ok {
		return 0, 0, fmt.Errorf("expr: operator %q requires numeric operands", op)
	}
	rf, ok := rv.asNum()
	if !ok {
		return 0, 0, fmt.Errorf("expr: operator %q requires numeric operands", op)
	}
	return lf, rf, nil
}

func (v value) asNum() (float64, bool) {
	switch v.kind {
	case numKind:
		return v.num, true
	case boolKind:
		if v.b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// compareValues compares two non-missing values: numerically when both
// are numeric (bools count as 0 / 1), as strings when both are
// strings; mixed kinds are an error.
func compareValues(lv, rv value) (int, error) {
	lf, lok := lv.asNum()
	rf, rok := rv.asNum()
	if lok && rok {
		switch {
		case lf < rf:
			return -1, nil
		case lf > rf:
			return 1, nil
		}
		return 0, nil
	}
	if lv.kind == strKind && rv.kind == strKind {
		return strings.Compare(lv.str, rv.str), nil
	}
	return 0, fmt.Errorf("expr: cannot compare %s with %s", kindName(lv.kind), kindName(rv.kind))
}

func kindName(k valueKind) string {
	switch k {
	case numKind:
		return "number"
	case strKind:
		return "string"
	case boolKind:
		return "bool"
	}
	return "missing"
}
