// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbols

import "fmt"

// TypeSymbol tags one of the primitive types.
type TypeSymbol int

const (
	TypeInteger TypeSymbol = iota
	TypeBoolean
	TypeCharacter
	TypePointer
)

var typeNames = map[TypeSymbol]string{
	TypeInteger:   "int",
	TypeBoolean:   "bool",
	TypeCharacter: "char",
	TypePointer:   "ptr",
}

func (t TypeSymbol) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("type(%d)", int(t))
}

func classifyType(tok string) Symbol {
	for t, s := range typeNames {
		if s == tok {
			return TypeSymbolToken{Type: t}
		}
	}
	return nil
}

// BlockKind tags a block-opening keyword.
type BlockKind int

const (
	BlockBase BlockKind = iota
	BlockIf
	BlockElif
	BlockElse
	BlockWhile
	BlockFunction
	BlockClass
)

var blockNames = map[BlockKind]string{
	BlockBase:     "block",
	BlockIf:       "if",
	BlockElif:     "elif",
	BlockElse:     "else",
	BlockWhile:    "while",
	BlockFunction: "fn",
	BlockClass:    "class",
}

func (b BlockKind) String() string {
	if s, ok := blockNames[b]; ok {
		return s
	}
	return fmt.Sprintf("block(%d)", int(b))
}

func classifyBlock(tok string) Symbol {
	for b, s := range blockNames {
		if s == tok {
			return BlockSymbol{Block: b}
		}
	}
	return nil
}

// Keyword tags a non-block statement keyword.
type Keyword int

const (
	KeywordBreak Keyword = iota
	KeywordContinue
	KeywordDump
	KeywordViewMemory
	KeywordViewMemoryDecimal
	KeywordHeapAlloc
	KeywordHeapFree
)

var keywordNames = map[Keyword]string{
	KeywordBreak:             "break",
	KeywordContinue:          "continue",
	KeywordDump:              "dump",
	KeywordViewMemory:        "viewmem",
	KeywordViewMemoryDecimal: "viewmemdec",
	KeywordHeapAlloc:         "heapalloc",
	KeywordHeapFree:          "heapfree",
}

func (k Keyword) String() string {
	if s, ok := keywordNames[k]; ok {
		return s
	}
	return fmt.Sprintf("keyword(%d)", int(k))
}

func classifyKeyword(tok string) Symbol {
	for k, s := range keywordNames {
		if s == tok {
			return KeywordSymbol{Keyword: k}
		}
	}
	return nil
}
