// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"

	"github.com/why-lang/why/address"
	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/symbols"
)

// lineHandler attempts to process one symbol line. Matched reports
// whether the line belongs to this handler at all; err is only meaningful
// when it does.
type lineHandler func(line []symbols.Symbol, ctx *Context, coord *Coordinator) (matched bool, err error)

// lineHandlers is the ordered trial list. The order is significant:
// initialisation demands a leading type symbol and must run before
// assignment, and calls must be tried before assignment claims the name.
var lineHandlers = []lineHandler{
	blockLine,
	variableInitWithArgumentLine,
	variableInitLine,
	callLine,
	indexedAssignmentLine,
	assignmentLine,
	breakContinueLine,
	dumpLine,
	viewMemoryLine,
	heapLine,
}

// blockLine opens base, if, while, function and class blocks. elif and
// else never open a block here; they are consumed by the enclosing if's
// exit hook, so reaching this point with one is a compile error reported
// by the dispatcher.
func blockLine(line []symbols.Symbol, ctx *Context, coord *Coordinator) (bool, error) {
	bs, ok := line[0].(symbols.BlockSymbol)
	if !ok {
		return false, nil
	}
	var h BlockHandler
	switch bs.Block {
	case symbols.BlockBase:
		if len(line) != 1 {
			return true, fmt.Errorf("'block' cannot be followed by any other symbol")
		}
		h = newBaseBlock()
	case symbols.BlockIf:
		h = newIfBlock()
	case symbols.BlockWhile:
		h = newWhileBlock()
	case symbols.BlockFunction:
		h = newFunctionBlock()
	case symbols.BlockClass:
		h = newClassBlock()
	default:
		return false, nil
	}
	return true, coord.AddHandler(h, ctx, bs.Block, line)
}

// variableInitLine handles '[Type] [Name] = [expression]'.
func variableInitLine(line []symbols.Symbol, ctx *Context, coord *Coordinator) (bool, error) {
	if len(line) == 0 {
		return false, nil
	}
	ts, ok := line[0].(symbols.TypeSymbolToken)
	if !ok {
		return false, nil
	}
	if len(line) >= 3 {
		if _, isIndexer := line[2].(symbols.Indexer); isIndexer {
			return false, nil
		}
	}
	if len(line) < 4 {
		return true, fmt.Errorf("type must be followed by a name, '=' and a value to initialise a variable")
	}
	name, ok := line[1].(symbols.Name)
	if !ok || len(name) != 1 {
		return true, fmt.Errorf("type must be followed by a name to initialise a variable")
	}
	as, ok := line[2].(symbols.AssignSymbol)
	if !ok || as.Assign != symbols.AssignSet {
		return true, fmt.Errorf("type must be followed by a name, '=' and a value to initialise a variable")
	}

	if ctx.Sizes.Depth() == 0 {
		return true, fmt.Errorf("variables can only be initialised inside a block")
	}
	t, err := NewType(ts.Type)
	if err != nil {
		return true, err
	}
	t.Allocate(ctx.Sizes)
	if err := evalInto(line[3:], t, ctx); err != nil {
		return true, err
	}
	return true, ctx.Refs.Register(VariableRef{Type: t}, name)
}

// variableInitWithArgumentLine handles indexed initialisation,
// '[Type] [Name][count] = [string or none]'.
func variableInitWithArgumentLine(line []symbols.Symbol, ctx *Context, coord *Coordinator) (bool, error) {
	if len(line) < 5 {
		return false, nil
	}
	ts, ok := line[0].(symbols.TypeSymbolToken)
	if !ok {
		return false, nil
	}
	name, isName := line[1].(symbols.Name)
	ix, isIndexer := line[2].(symbols.Indexer)
	if !isName || !isIndexer {
		return false, nil
	}
	if len(name) != 1 {
		return true, fmt.Errorf("initialised names cannot have separators")
	}
	as, ok := line[3].(symbols.AssignSymbol)
	if !ok || as.Assign != symbols.AssignSet {
		return true, fmt.Errorf("indexed initialisation must be formatted [Type] [Name][count] = [value]")
	}

	countLit, ok := ix.Inner.(symbols.IntLit)
	if !ok || countLit <= 0 {
		return true, fmt.Errorf("initialisation argument must be a positive integer literal")
	}
	count := int(countLit)
	if ctx.Sizes.Depth() == 0 {
		return true, fmt.Errorf("variables can only be initialised inside a block")
	}

	first, err := NewType(ts.Type)
	if err != nil {
		return true, err
	}
	first.Allocate(ctx.Sizes)
	base := first.Address().(address.StackDirect).Offset
	for i := 1; i < count; i++ {
		ctx.Sizes.Increment(first.Length())
	}

	switch lit := line[4].(type) {
	case symbols.NoneLit:
		// Frames are zero-initialised; nothing to emit.
	case symbols.StrLit:
		if ts.Type != symbols.TypeCharacter {
			return true, fmt.Errorf("only char arrays can be initialised from a string literal")
		}
		content := string(lit)
		for len(content) < count {
			content += "\x00"
		}
		for i := 0; i < count; i++ {
			view := first.WithAddress(address.StackDirect{Offset: base + i*first.Length()})
			if _, err := view.RuntimeCopyFromLiteral(symbols.StrLit(content[i:i+1]), ctx.Program); err != nil {
				return true, err
			}
		}
	default:
		return true, fmt.Errorf("indexed initialisation accepts a string literal or none")
	}

	return true, ctx.Refs.Register(VariableRef{Type: first}, name)
}

// callLine handles a standalone '[Name]([arguments])'.
func callLine(line []symbols.Symbol, ctx *Context, coord *Coordinator) (bool, error) {
	if len(line) != 2 {
		return false, nil
	}
	name, ok := line[0].(symbols.Name)
	if !ok {
		return false, nil
	}
	args, ok := line[1].(symbols.Bracketed)
	if !ok {
		return false, nil
	}
	fn, err := ctx.Refs.Function(name)
	if err != nil {
		return true, err
	}
	return true, fn.Call(symbols.SplitList(args), nil, ctx)
}

// expandAssigner rewrites a compound assignment into its expanded
// right-hand side: 'x += e' becomes 'x + (e)'.
func expandAssigner(as symbols.Assigner, lhs symbols.Symbol, rhs []symbols.Symbol) []symbols.Symbol {
	op, compound := as.Operator()
	if !compound {
		return rhs
	}
	return []symbols.Symbol{lhs, symbols.OpSymbol{Op: op}, symbols.Bracketed(rhs)}
}

// assignmentLine handles '[Name] [assigner] [expression]'.
func assignmentLine(line []symbols.Symbol, ctx *Context, coord *Coordinator) (bool, error) {
	if len(line) < 3 {
		return false, nil
	}
	name, ok := line[0].(symbols.Name)
	if !ok {
		return false, nil
	}
	as, ok := line[1].(symbols.AssignSymbol)
	if !ok {
		return false, nil
	}
	v, err := ctx.Refs.Variable(name)
	if err != nil {
		return true, err
	}
	return true, evalInto(expandAssigner(as.Assign, line[0], line[2:]), v, ctx)
}

// indexedAssignmentLine handles '[Name][index] [assigner] [expression]'.
func indexedAssignmentLine(line []symbols.Symbol, ctx *Context, coord *Coordinator) (bool, error) {
	if len(line) < 4 {
		return false, nil
	}
	name, isName := line[0].(symbols.Name)
	ix, isIndexer := line[1].(symbols.Indexer)
	if !isName || !isIndexer {
		return false, nil
	}
	as, ok := line[2].(symbols.AssignSymbol)
	if !ok {
		return true, fmt.Errorf("indexed name must be followed by an assigner")
	}
	view, err := indexedView(name, ix, ctx)
	if err != nil {
		return true, err
	}
	lhs := []symbols.Symbol{line[0], line[1]}
	rhs := expandAssigner(as.Assign, symbols.Bracketed(lhs), line[3:])
	return true, evalInto(rhs, view, ctx)
}

// breakContinueLine handles 'break' and 'continue'.
func breakContinueLine(line []symbols.Symbol, ctx *Context, coord *Coordinator) (bool, error) {
	kw, ok := line[0].(symbols.KeywordSymbol)
	if !ok {
		return false, nil
	}
	switch kw.Keyword {
	case symbols.KeywordBreak:
		if len(line) != 1 {
			return true, fmt.Errorf("break cannot be followed by any other symbol")
		}
		return true, coord.Break(ctx)
	case symbols.KeywordContinue:
		if len(line) != 1 {
			return true, fmt.Errorf("continue cannot be followed by any other symbol")
		}
		return true, coord.Continue(ctx)
	}
	return false, nil
}

// dumpLine handles 'dump'.
func dumpLine(line []symbols.Symbol, ctx *Context, coord *Coordinator) (bool, error) {
	kw, ok := line[0].(symbols.KeywordSymbol)
	if !ok || kw.Keyword != symbols.KeywordDump {
		return false, nil
	}
	if len(line) != 1 {
		return true, fmt.Errorf("dump cannot be followed by any other symbol")
	}
	instr.EmitDump(ctx.Program)
	return true, nil
}

// viewMemoryLine handles 'viewmem [expression]' and
// 'viewmemdec [expression]'.
func viewMemoryLine(line []symbols.Symbol, ctx *Context, coord *Coordinator) (bool, error) {
	kw, ok := line[0].(symbols.KeywordSymbol)
	if !ok {
		return false, nil
	}
	var dec bool
	switch kw.Keyword {
	case symbols.KeywordViewMemory:
	case symbols.KeywordViewMemoryDecimal:
		dec = true
	default:
		return false, nil
	}
	if len(line) < 2 {
		return true, fmt.Errorf("%s must be followed by a value", kw.Keyword)
	}
	t, err := evalAny(line[1:], ctx)
	if err != nil {
		return true, err
	}
	if dec {
		instr.EmitViewMemoryDec(ctx.Program, t.Length(), t.Address())
	} else {
		instr.EmitViewMemory(ctx.Program, t.Length(), t.Address())
	}
	return true, nil
}

// heapLine handles 'heapalloc [Name] [size]' and 'heapfree [Name]'.
func heapLine(line []symbols.Symbol, ctx *Context, coord *Coordinator) (bool, error) {
	kw, ok := line[0].(symbols.KeywordSymbol)
	if !ok {
		return false, nil
	}
	switch kw.Keyword {
	case symbols.KeywordHeapAlloc:
		if len(line) != 3 {
			return true, fmt.Errorf("heapalloc must be formatted 'heapalloc [Name] [size]'")
		}
		name, ok := line[1].(symbols.Name)
		if !ok {
			return true, fmt.Errorf("heapalloc must be followed by a variable")
		}
		size, ok := line[2].(symbols.IntLit)
		if !ok || size <= 0 {
			return true, fmt.Errorf("heapalloc size must be a positive integer literal")
		}
		v, err := ctx.Refs.Variable(name)
		if err != nil {
			return true, err
		}
		if !isWordClass(v.Symbol()) {
			return true, incorrectType([]symbols.TypeSymbol{symbols.TypePointer, symbols.TypeInteger}, v.Symbol())
		}
		instr.EmitHeapAlloc(ctx.Program, int(size), v.Address())
		return true, nil

	case symbols.KeywordHeapFree:
		if len(line) != 2 {
			return true, fmt.Errorf("heapfree must be formatted 'heapfree [Name]'")
		}
		name, ok := line[1].(symbols.Name)
		if !ok {
			return true, fmt.Errorf("heapfree must be followed by a variable")
		}
		v, err := ctx.Refs.Variable(name)
		if err != nil {
			return true, err
		}
		if !isWordClass(v.Symbol()) {
			return true, incorrectType([]symbols.TypeSymbol{symbols.TypePointer, symbols.TypeInteger}, v.Symbol())
		}
		instr.EmitHeapFree(ctx.Program, v.Address())
		return true, nil
	}
	return false, nil
}
