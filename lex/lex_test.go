// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/why-lang/why/symbols"
)

func TestSplitLineSimple(t *testing.T) {
	syms, err := SplitLine("bool a = true")
	require.NoError(t, err)
	assert.Equal(t, []symbols.Symbol{
		symbols.TypeSymbolToken{Type: symbols.TypeBoolean},
		symbols.Name{"a"},
		symbols.AssignSymbol{Assign: symbols.AssignSet},
		symbols.BoolLit(true),
	}, syms)
}

func TestSplitLineBrackets(t *testing.T) {
	syms, err := SplitLine("bool c = a & (!b)")
	require.NoError(t, err)
	require.Len(t, syms, 6)
	inner, ok := syms[5].(symbols.Bracketed)
	require.True(t, ok)
	assert.Equal(t, []symbols.Symbol{
		symbols.OpSymbol{Op: symbols.OpNot},
		symbols.Name{"b"},
	}, []symbols.Symbol(inner))
}

func TestSplitLineNestedBrackets(t *testing.T) {
	syms, err := SplitLine("x = ((1))")
	require.NoError(t, err)
	require.Len(t, syms, 3)
	outer := syms[2].(symbols.Bracketed)
	require.Len(t, outer, 1)
	inner := outer[0].(symbols.Bracketed)
	assert.Equal(t, symbols.IntLit(1), inner[0])
}

func TestSplitLineCall(t *testing.T) {
	syms, err := SplitLine("add(40, 2)")
	require.NoError(t, err)
	require.Len(t, syms, 2)
	assert.Equal(t, symbols.Name{"add"}, syms[0])
	args := syms[1].(symbols.Bracketed)
	assert.Equal(t, []symbols.Symbol{
		symbols.IntLit(40),
		symbols.Sep{},
		symbols.IntLit(2),
	}, []symbols.Symbol(args))
}

func TestSplitLineIndexer(t *testing.T) {
	syms, err := SplitLine("s[3] = 'x'")
	require.NoError(t, err)
	require.Len(t, syms, 4)
	assert.Equal(t, symbols.Name{"s"}, syms[0])
	assert.Equal(t, symbols.Indexer{Inner: symbols.IntLit(3)}, syms[1])
}

func TestSplitLineStringsKeepSpaces(t *testing.T) {
	syms, err := SplitLine(`char c = 'a b'`)
	require.NoError(t, err)
	assert.Equal(t, symbols.StrLit("a b"), syms[3])

	syms, err = SplitLine(`x = "a b"`)
	require.NoError(t, err)
	assert.Equal(t, symbols.StrLit("a b"), syms[2])
}

func TestSplitLineComment(t *testing.T) {
	syms, err := SplitLine("break # leaves the loop")
	require.NoError(t, err)
	assert.Equal(t, []symbols.Symbol{
		symbols.KeywordSymbol{Keyword: symbols.KeywordBreak},
	}, syms)

	syms, err = SplitLine("# whole line")
	require.NoError(t, err)
	assert.Empty(t, syms)
}

func TestSplitLineErrors(t *testing.T) {
	_, err := SplitLine("x = 'unterminated")
	assert.Error(t, err)

	_, err = SplitLine("x = (1")
	assert.Error(t, err)

	_, err = SplitLine("x = 1)")
	assert.Error(t, err)

	_, err = SplitLine("s[1 2] = 0")
	assert.Error(t, err)

	_, err = SplitLine("s[] = 0")
	assert.Error(t, err)

	_, err = SplitLine("What?")
	assert.Error(t, err)
}

func TestSplitSourceIndentation(t *testing.T) {
	src := "block\n    bool a = true\n\tbool b = false"
	lines, err := SplitSource(src)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, 0, lines[0].Indent)
	assert.Equal(t, 1, lines[1].Indent)
	assert.Equal(t, 1, lines[2].Indent, "a tab counts as 4 spaces")
	assert.Equal(t, 2, lines[1].Number)
}

func TestSplitSourceBadIndentation(t *testing.T) {
	_, err := SplitSource("block\n   bool a = true")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestSplitSourceReportsLineNumbers(t *testing.T) {
	_, err := SplitSource("block\n    x = ???")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
