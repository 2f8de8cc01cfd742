// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenNumber
	tokenString
	tokenOp     // == != < <= > >= + - * / ( )
	tokenKeyword // and or not contains matches is missing true false
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var keywords = map[string]bool{
	"and": true, "or": true, "not": true,
	"contains": true, "matches": true,
	"is": true, "missing": true,
	"true": true, "false": true,
}

// lex splits the expression source into tokens. Identifiers may be
// backquoted to allow column names with spaces or punctuation.
func lex(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	i := 0
	for i < len(rs) {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(' || r == ')' || r == '+' || r == '-' || r == '*' || r == '/':
			toks = append(toks, token{tokenOp, string(r), i})
			i++
		case r == '=' || r == '!' || r == '<' || r == '>':
			op := string(r)
			if i+1 < len(rs) && rs[i+1] == '=' {
				op += "="
				i++
			}
			i++
			switch op {
			case "=", "==":
				op = "=="
			case "!=", "<", "<=", ">", ">=":
			default:
				return nil, fmt.Errorf("expr: invalid operator %q at position %d", op, i)
			}
			toks = append(toks, token{tokenOp, op, i})
		case r == '"' || r == '\'':
			quote := r
			j := i + 1
			var b strings.Builder
			for j < len(rs) && rs[j] != quote {
				if rs[j] == '\\' && j+1 < len(rs) {
					j++
				}
				b.WriteRune(rs[j])
				j++
			}
			if j >= len(rs) {
				return nil, fmt.Errorf("expr: unterminated string at position %d", i)
			}
			toks = append(toks, token{tokenString, b.String(), i})
			i = j + 1
		case r == '`':
			j := i + 1
			for j < len(rs) && rs[j] != '`' {
				j++
			}
			if j >= len(rs) {
				return nil, fmt.Errorf("expr: unterminated quoted identifier at position %d", i)
			}
			toks = append(toks, token{tokenIdent, string(rs[i+1 : j]), i})
			i = j + 1
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.' || rs[j] == 'e' ||
				rs[j] == 'E' || ((rs[j] == '+' || rs[j] == '-') && j > i && (rs[j-1] == 'e' || rs[j-1] == 'E'))) {
				j++
			}
			toks = append(toks, token{tokenNumber, string(rs[i:j]), i})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			word := string(rs[i:j])
			if keywords[strings.ToLower(word)] {
				toks = append(toks, token{tokenKeyword, strings.ToLower(word), i})
			} else {
				toks = append(toks, token{tokenIdent, word, i})
			}
			i = j
		default:
			return nil, fmt.Errorf("expr: unexpected character %q at position %d", r, i)
		}
	}
	toks = append(toks, token{tokenEOF, "", len(rs)})
	return toks, nil
}
