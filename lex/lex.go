// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lex implements the lexical preprocessor: it splits source text
// into indentation-prefixed symbol lines, balancing brackets and indexers
// and classifying every token against the closed vocabulary.
package lex

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/why-lang/why/symbols"
)

// Line is one source line reduced to its indentation level and symbols.
type Line struct {
	// Indent is the indentation level in units of 4 spaces.
	Indent int
	// Number is the 1-based source line number.
	Number  int
	Symbols []symbols.Symbol
}

// SplitSource converts source text into symbol lines. Indentation must be
// a multiple of 4 spaces; a tab counts as 4.
func SplitSource(src string) ([]Line, error) {
	var out []Line
	for i, raw := range strings.Split(src, "\n") {
		number := i + 1

		indent := 0
		chars := 0
		for _, c := range raw {
			if c == ' ' {
				indent++
			} else if c == '\t' {
				indent += 4
			} else {
				break
			}
			chars++
		}
		if indent%4 != 0 {
			return nil, errors.Errorf("line %d: indentation must be a multiple of 4 spaces or single tabs", number)
		}

		syms, err := SplitLine(raw[chars:])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", number)
		}
		out = append(out, Line{Indent: indent / 4, Number: number, Symbols: syms})
	}
	return out, nil
}

// SplitLine converts one line of code (without indentation) into symbols.
func SplitLine(line string) ([]symbols.Symbol, error) {
	var (
		out          []symbols.Symbol
		buf          strings.Builder
		inString     bool
		bracketDepth int
		inIndexer    bool
		indexerStart int
	)

	flush := func() error {
		if buf.Len() == 0 {
			return nil
		}
		tok := buf.String()
		buf.Reset()
		sym := symbols.Classify(tok)
		if sym == nil && len(tok) > 1 && tok[0] == '!' {
			// A prefix not written against its operand ('!b') is the
			// operator followed by the operand.
			if rest := symbols.Classify(tok[1:]); rest != nil {
				out = append(out, symbols.OpSymbol{Op: symbols.OpNot}, rest)
				return nil
			}
		}
		if sym == nil {
			return errors.Errorf("symbol %q not found", tok)
		}
		out = append(out, sym)
		return nil
	}

	for _, c := range line {
		if c == '#' && !inString {
			break
		}

		if bracketDepth == 0 && !inString {
			switch c {
			case ' ':
				if err := flush(); err != nil {
					return nil, err
				}
				continue
			case ',':
				if err := flush(); err != nil {
					return nil, err
				}
				out = append(out, symbols.Sep{})
				continue
			case '[':
				if err := flush(); err != nil {
					return nil, err
				}
				if inIndexer {
					return nil, errors.New("recursive indexing not permitted")
				}
				inIndexer = true
				indexerStart = len(out)
				continue
			case ']':
				if err := flush(); err != nil {
					return nil, err
				}
				if !inIndexer {
					return nil, errors.New("closing indexer bracket found with no corresponding opening bracket")
				}
				if len(out)-indexerStart > 1 {
					return nil, errors.New("indexers may only contain one symbol")
				}
				if len(out)-indexerStart < 1 {
					return nil, errors.New("indexer must contain a symbol")
				}
				inner := out[len(out)-1]
				out[len(out)-1] = symbols.Indexer{Inner: inner}
				inIndexer = false
				continue
			}
		}

		if c == ')' && !inString {
			bracketDepth--
			switch {
			case bracketDepth == 0:
				sub, err := SplitLine(buf.String())
				if err != nil {
					return nil, err
				}
				buf.Reset()
				out = append(out, symbols.Bracketed(sub))
			case bracketDepth < 0:
				return nil, errors.New("closing bracket found with no corresponding opening bracket")
			default:
				buf.WriteRune(c)
			}
			continue
		}

		if strings.ContainsRune(symbols.StringDelimiters, c) {
			inString = !inString
		}

		if c == '(' && !inString {
			if bracketDepth == 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			} else {
				buf.WriteRune(c)
			}
			bracketDepth++
			continue
		}

		buf.WriteRune(c)
	}

	if inString {
		return nil, errors.New("unclosed string")
	}
	if bracketDepth != 0 {
		return nil, errors.New("unclosed brackets")
	}
	if inIndexer {
		return nil, errors.New("unclosed indexer")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}
