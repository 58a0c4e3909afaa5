// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/symbols"
)

// whileBlock tracks one loop: the position the condition re-evaluates at,
// the conditional exit, and the jumps break statements take to the end.
type whileBlock struct {
	baseHandler
	start    int
	jumpExit *instr.JumpIfNot
	jumpEnds []*instr.Jump
}

func newWhileBlock() BlockHandler {
	return &whileBlock{}
}

func (b *whileBlock) OnEntry(ctx *Context, line []symbols.Symbol) error {
	b.start = ctx.Program.Position()
	cond, err := evalToTypes(line[1:], []symbols.TypeSymbol{symbols.TypeBoolean}, ctx)
	if err != nil {
		return err
	}
	b.jumpExit = instr.EmitJumpIfNot(ctx.Program, cond.Address(), 0)
	return nil
}

func (b *whileBlock) OnExit(ctx *Context, line []symbols.Symbol) (bool, error) {
	return true, b.OnForcedExit(ctx)
}

func (b *whileBlock) OnForcedExit(ctx *Context) error {
	instr.EmitJump(ctx.Program, b.start)

	end := ctx.Program.Position()
	b.jumpExit.SetDestination(ctx.Program, end)
	for _, j := range b.jumpEnds {
		j.SetDestination(ctx.Program, end)
	}
	return nil
}

func (b *whileBlock) OnBreak(ctx *Context) (bool, error) {
	b.jumpEnds = append(b.jumpEnds, instr.EmitJump(ctx.Program, 0))
	return true, nil
}

func (b *whileBlock) OnContinue(ctx *Context) (bool, error) {
	instr.EmitJump(ctx.Program, b.start)
	return true, nil
}
