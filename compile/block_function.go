// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"

	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/symbols"
	"github.com/why-lang/why/word"
)

// returnSlotName is the variable the body assigns the return value to.
const returnSlotName = "return"

// functionBlock compiles one function body: a skip jump so surrounding
// code falls through the definition, a fresh frame layout holding the
// return pointer, parameters and return slot, and the function reference
// whose stack size is patched into every call site when the body closes.
type functionBlock struct {
	baseHandler
	skip       *instr.Jump
	fn         *FuncRef
	savedLimit int
}

func newFunctionBlock() BlockHandler {
	return &functionBlock{}
}

func functionFormatError() error {
	return fmt.Errorf("function declaration must be formatted 'fn [NAME] ([PARAMETER LIST]) {optional [RETURN TYPE] [DEFAULT RETURN VALUE]}'")
}

func (b *functionBlock) OnEntry(ctx *Context, line []symbols.Symbol) error {
	if len(line) != 3 && len(line) != 5 {
		return functionFormatError()
	}
	name, ok := line[1].(symbols.Name)
	if !ok || len(name) != 1 {
		return functionFormatError()
	}
	bracket, ok := line[2].(symbols.Bracketed)
	if !ok {
		return functionFormatError()
	}
	paramList, err := symbols.ParseParameters(bracket)
	if err != nil {
		return err
	}

	// Code above the definition must not fall into the body.
	b.skip = instr.EmitJump(ctx.Program, 0)

	// The body lays out its own frame; callers cannot leak locals in.
	ctx.Sizes.Push()
	b.savedLimit = ctx.Refs.DepthLimit()
	ctx.Refs.SetDepthLimit(ctx.Refs.Depth() - 1)

	// The return pointer is the frame's first slot, written by the
	// caller and read back by the exit jump.
	retPtr, err := NewType(symbols.TypePointer)
	if err != nil {
		return err
	}
	retPtr.Allocate(ctx.Sizes)

	params := make([]funcParam, 0, len(paramList))
	for _, p := range paramList {
		t, err := NewType(p.Type)
		if err != nil {
			return err
		}
		t.Allocate(ctx.Sizes)
		if err := ctx.Refs.Register(VariableRef{Type: t}, []string{p.Name}); err != nil {
			return err
		}
		params = append(params, funcParam{name: p.Name, typ: t})
	}

	var retVar Type
	var retDefault symbols.Literal
	if len(line) == 5 {
		ts, ok := line[3].(symbols.TypeSymbolToken)
		if !ok {
			return functionFormatError()
		}
		retDefault, ok = line[4].(symbols.Literal)
		if !ok {
			return functionFormatError()
		}
		retVar, err = NewType(ts.Type)
		if err != nil {
			return err
		}
		retVar.Allocate(ctx.Sizes)
		if err := ctx.Refs.Register(VariableRef{Type: retVar}, []string{returnSlotName}); err != nil {
			return err
		}
	}

	// The entry point: every call re-runs the default return
	// assignment before the body.
	entry := ctx.Program.Position()
	if retVar != nil {
		if _, err := retVar.RuntimeCopyFromLiteral(retDefault, ctx.Program); err != nil {
			return err
		}
	}

	b.fn = NewFuncRef(entry, retPtr, retVar, params)
	return ctx.Refs.RegisterWithOffset(FunctionBinding{Func: b.fn}, name, 1)
}

func (b *functionBlock) OnExit(ctx *Context, line []symbols.Symbol) (bool, error) {
	return true, b.OnForcedExit(ctx)
}

func (b *functionBlock) OnForcedExit(ctx *Context) error {
	instr.EmitDynamicJump(ctx.Program, b.fn.returnPtr.Address())
	b.skip.SetDestination(ctx.Program, ctx.Program.Position())

	size := ctx.Sizes.Pop()
	if size < word.Size {
		size = word.Size
	}
	b.fn.SetStackSizeAndComplete(size, ctx)

	ctx.Refs.SetDepthLimit(b.savedLimit)
	return nil
}
