// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package symbols defines the closed lexical vocabulary of the Why
// language: the symbol kinds the preprocessor produces and the compiler
// consumes.
package symbols

import (
	"fmt"
	"strings"
)

// Symbol is one classified token, bracketed group or indexer of a source
// line.
type Symbol interface {
	fmt.Stringer
	symbol()
}

// Name is a (possibly dotted) identifier, split at the dots.
type Name []string

func (Name) symbol() {}

func (n Name) String() string {
	return strings.Join(n, ".")
}

// Bracketed is a parenthesised group of symbols.
type Bracketed []Symbol

func (Bracketed) symbol() {}

func (b Bracketed) String() string {
	parts := make([]string, len(b))
	for i, s := range b {
		parts[i] = s.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Indexer is a square-bracketed index following a name. It holds exactly
// one symbol.
type Indexer struct {
	Inner Symbol
}

func (Indexer) symbol() {}

func (ix Indexer) String() string {
	return "[" + ix.Inner.String() + "]"
}

// Sep is the list separator ','.
type Sep struct{}

func (Sep) symbol() {}

func (Sep) String() string { return "," }

// OpSymbol wraps an operator.
type OpSymbol struct {
	Op Operator
}

func (OpSymbol) symbol() {}

func (s OpSymbol) String() string { return s.Op.String() }

// AssignSymbol wraps an assigner.
type AssignSymbol struct {
	Assign Assigner
}

func (AssignSymbol) symbol() {}

func (s AssignSymbol) String() string { return s.Assign.String() }

// TypeSymbolToken wraps a type symbol.
type TypeSymbolToken struct {
	Type TypeSymbol
}

func (TypeSymbolToken) symbol() {}

func (s TypeSymbolToken) String() string { return s.Type.String() }

// BlockSymbol wraps a block keyword.
type BlockSymbol struct {
	Block BlockKind
}

func (BlockSymbol) symbol() {}

func (s BlockSymbol) String() string { return s.Block.String() }

// KeywordSymbol wraps a non-block keyword.
type KeywordSymbol struct {
	Keyword Keyword
}

func (KeywordSymbol) symbol() {}

func (s KeywordSymbol) String() string { return s.Keyword.String() }

// nameChars are the characters permitted in identifiers; a dot separates
// the parts of a dotted name.
const nameChars = "abcdefghijklmnopqrstuvwxyz_"

// Classify converts one token to a symbol. It returns nil when the token
// matches nothing in the vocabulary.
func Classify(tok string) Symbol {
	if s := classifyAssigner(tok); s != nil {
		return s
	}
	if s := classifyOperator(tok); s != nil {
		return s
	}
	if s := classifyType(tok); s != nil {
		return s
	}
	if s := classifyBlock(tok); s != nil {
		return s
	}
	if s := classifyLiteral(tok); s != nil {
		return s
	}
	if tok == "," {
		return Sep{}
	}
	if s := classifyKeyword(tok); s != nil {
		return s
	}
	return classifyName(tok)
}

func classifyName(tok string) Symbol {
	parts := strings.Split(tok, ".")
	for _, part := range parts {
		if part == "" {
			return nil
		}
		for _, c := range part {
			if !strings.ContainsRune(nameChars, c) {
				return nil
			}
		}
	}
	return Name(parts)
}
