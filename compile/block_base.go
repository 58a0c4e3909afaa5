// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/symbols"
)

// baseBlock is the frame-owning block: it creates a stack frame whose
// size is patched once the block closes and every local is laid out.
type baseBlock struct {
	baseHandler
	create *instr.StackCreate
}

func newBaseBlock() BlockHandler {
	return &baseBlock{}
}

func (b *baseBlock) OnEntry(ctx *Context, line []symbols.Symbol) error {
	ctx.Sizes.Push()
	b.create = instr.EmitStackCreate(ctx.Program, 0)
	instr.EmitStackUp(ctx.Program)
	return nil
}

func (b *baseBlock) OnExit(ctx *Context, line []symbols.Symbol) (bool, error) {
	return true, b.OnForcedExit(ctx)
}

func (b *baseBlock) OnForcedExit(ctx *Context) error {
	b.create.SetStackSize(ctx.Program, ctx.Sizes.Pop())
	instr.EmitStackDown(ctx.Program)
	return nil
}
