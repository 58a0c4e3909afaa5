// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbols

import (
	"fmt"
	"strconv"
	"strings"
)

// Literal is a symbol carrying a literal value.
type Literal interface {
	Symbol
	literal()
}

// IntLit is an integer literal.
type IntLit int64

func (IntLit) symbol()  {}
func (IntLit) literal() {}

func (l IntLit) String() string { return strconv.FormatInt(int64(l), 10) }

// StrLit is a string literal with escapes already resolved.
type StrLit string

func (StrLit) symbol()  {}
func (StrLit) literal() {}

func (l StrLit) String() string { return strconv.Quote(string(l)) }

// BoolLit is a boolean literal.
type BoolLit bool

func (BoolLit) symbol()  {}
func (BoolLit) literal() {}

func (l BoolLit) String() string { return strconv.FormatBool(bool(l)) }

// NoneLit is the absent-value literal used by indexed initialisation.
type NoneLit struct{}

func (NoneLit) symbol()  {}
func (NoneLit) literal() {}

func (NoneLit) String() string { return "none" }

// StringDelimiters are the characters opening and closing string literals.
const StringDelimiters = "'\""

var escapeCodes = map[byte]byte{
	'n':  '\n',
	'\\': '\\',
	'0':  0,
}

// resolveEscapes replaces the \n, \\ and \0 escape codes in a raw string
// body with their values.
func resolveEscapes(in string) string {
	var b strings.Builder
	esc := false
	for i := 0; i < len(in); i++ {
		c := in[i]
		if esc {
			esc = false
			if r, ok := escapeCodes[c]; ok {
				b.WriteByte(r)
				continue
			}
			b.WriteByte(c)
			continue
		}
		if c == '\\' {
			esc = true
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func classifyLiteral(tok string) Symbol {
	switch tok {
	case "true":
		return BoolLit(true)
	case "false":
		return BoolLit(false)
	case "none":
		return NoneLit{}
	}
	if len(tok) >= 2 &&
		strings.ContainsRune(StringDelimiters, rune(tok[0])) &&
		tok[len(tok)-1] == tok[0] {
		return StrLit(resolveEscapes(tok[1 : len(tok)-1]))
	}
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return IntLit(v)
	}
	return nil
}

// Param is one entry of a function parameter list.
type Param struct {
	Type TypeSymbol
	Name string
}

// ParseParameters converts a bracketed group into a parameter list. The
// expected shape is ([Type] [Name] , [Type] [Name] , ...).
func ParseParameters(b Bracketed) ([]Param, error) {
	formatErr := fmt.Errorf("symbols: parameters must be formatted ([Type] [Name] , [Type] [Name] , ...)")

	var params []Param
	for i := 0; i < len(b); i += 3 {
		if len(b)-i < 2 {
			return nil, formatErr
		}
		ts, ok := b[i].(TypeSymbolToken)
		if !ok {
			return nil, formatErr
		}
		name, ok := b[i+1].(Name)
		if !ok || len(name) != 1 {
			return nil, formatErr
		}
		if i+2 < len(b) {
			if _, ok := b[i+2].(Sep); !ok {
				return nil, formatErr
			}
		}
		params = append(params, Param{Type: ts.Type, Name: name[0]})
	}
	return params, nil
}

// SplitList splits a bracketed group at its separators, e.g. an argument
// list into one symbol slice per argument. An empty group yields nil.
func SplitList(b Bracketed) [][]Symbol {
	if len(b) == 0 {
		return nil
	}
	var out [][]Symbol
	var cur []Symbol
	for _, s := range b {
		if _, ok := s.(Sep); ok {
			out = append(out, cur)
			cur = nil
			continue
		}
		cur = append(cur, s)
	}
	return append(out, cur)
}
