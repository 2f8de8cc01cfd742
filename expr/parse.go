// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"fmt"
	"regexp"
	"strconv"
)

// parser is a recursive descent parser over the token stream, with
// the precedence (loosest to tightest):
//
//	or < and < not < comparison < additive < multiplicative < unary minus
//
// so "a == 1 or b == 2 and c == 3" parses as
// "a == 1 or (b == 2 and c == 3)".
type parser struct {
	toks []token
	pos  int
}

// Parse parses the given expression source into an [Expr].
func Parse(src string) (*Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenEOF {
		return nil, fmt.Errorf("expr: unexpected %q at position %d", p.peek().text, p.peek().pos)
	}
	return &Expr{root: root, src: src}, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) acceptKeyword(kw string) bool {
	if p.peek().kind == tokenKeyword && p.peek().text == kw {
		p.pos++
		return true
	}
	return false
}

func (p *parser) acceptOp(op string) bool {
	if p.peek().kind == tokenOp && p.peek().text == op {
		p.pos++
		return true
	}
	return false
}

func (p *parser) orExpr() (node, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.acceptKeyword("or") {
		right, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: "or", left: left, right: right}
	}
	return left, nil
}

func (p *parser) andExpr() (node, error) {
	left, err := p.notExpr()
	if err != nil {
		return nil, err
	}
	for p.acceptKeyword("and") {
		right, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: "and", left: left, right: right}
	}
	return left, nil
}

func (p *parser) notExpr() (node, error) {
	if p.acceptKeyword("not") {
		operand, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: "not", operand: operand}, nil
	}
	return p.cmpExpr()
}

var cmpOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

func (p *parser) cmpExpr() (node, error) {
	left, err := p.addExpr()
	if err != nil {
		return nil, err
	}
	switch {
	case p.peek().kind == tokenOp && cmpOps[p.peek().text]:
		op := p.next().text
		right, err := p.addExpr()
		if err != nil {
			return nil, err
		}
		return &binaryNode{op: op, left: left, right: right}, nil
	case p.acceptKeyword("contains"):
		right, err := p.addExpr()
		if err != nil {
			return nil, err
		}
		return &binaryNode{op: "contains", left: left, right: right}, nil
	case p.acceptKeyword("matches"):
		right, err := p.addExpr()
		if err != nil {
			return nil, err
		}
		n := &binaryNode{op: "matches", left: left, right: right}
		if lit, ok := right.(*literalNode); ok && lit.val.kind == strKind {
			re, err := regexp.Compile(lit.val.str)
			if err != nil {
				return nil, fmt.Errorf("expr: invalid pattern %q: %w", lit.val.str, err)
			}
			n.re = re
		}
		return n, nil
	case p.acceptKeyword("is"):
		negated := p.acceptKeyword("not")
		if !p.acceptKeyword("missing") {
			return nil, fmt.Errorf("expr: expected \"missing\" after \"is\" at position %d", p.peek().pos)
		}
		return &isMissingNode{operand: left, negated: negated}, nil
	}
	return left, nil
}

func (p *parser) addExpr() (node, error) {
	left, err := p.mulExpr()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.acceptOp("+"):
			op = "+"
		case p.acceptOp("-"):
			op = "-"
		default:
			return left, nil
		}
		right, err := p.mulExpr()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) mulExpr() (node, error) {
	left, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.acceptOp("*"):
			op = "*"
		case p.acceptOp("/"):
			op = "/"
		default:
			return left, nil
		}
		right, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) unaryExpr() (node, error) {
	if p.acceptOp("-") {
		operand, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: "-", operand: operand}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokenNumber:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("expr: invalid number %q at position %d", t.text, t.pos)
		}
		return &literalNode{val: numValue(f)}, nil
	case tokenString:
		return &literalNode{val: strValue(t.text)}, nil
	case tokenIdent:
		return &columnNode{name: t.text}, nil
	case tokenKeyword:
		switch t.text {
		case "true":
			return &literalNode{val: boolValue(true)}, nil
		case "false":
			return &literalNode{val: boolValue(false)}, nil
		}
	case tokenOp:
		if t.text == "(" {
			inner, err := p.orExpr()
			if err != nil {
				return nil, err
			}
			if !p.acceptOp(")") {
				return nil, fmt.Errorf("expr: expected \")\" at position %d", p.peek().pos)
			}
			return inner, nil
		}
	}
	return nil, fmt.Errorf("expr: unexpected %q at position %d", t.text, t.pos)
}
