// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"

	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/symbols"
)

// ifBlock tracks one if/elif/else chain: the conditional skip into the
// next arm, and the jumps every finished arm takes to the end of the
// chain.
type ifBlock struct {
	baseHandler
	jumpNext *instr.JumpIfNot
	jumpEnds []*instr.Jump
}

func newIfBlock() BlockHandler {
	return &ifBlock{}
}

func (b *ifBlock) OnEntry(ctx *Context, line []symbols.Symbol) error {
	cond, err := evalToTypes(line[1:], []symbols.TypeSymbol{symbols.TypeBoolean}, ctx)
	if err != nil {
		return err
	}
	b.jumpNext = instr.EmitJumpIfNot(ctx.Program, cond.Address(), 0)
	return nil
}

func (b *ifBlock) OnExit(ctx *Context, line []symbols.Symbol) (bool, error) {
	if len(line) == 0 {
		return true, b.OnForcedExit(ctx)
	}
	blk, ok := line[0].(symbols.BlockSymbol)
	if !ok {
		return true, b.OnForcedExit(ctx)
	}

	switch blk.Block {
	case symbols.BlockElif:
		if b.jumpNext == nil {
			return false, fmt.Errorf("'elif' cannot follow an 'else' block as it will never be reached")
		}
		b.jumpEnds = append(b.jumpEnds, instr.EmitJump(ctx.Program, 0))
		b.jumpNext.SetDestination(ctx.Program, ctx.Program.Position())
		if err := b.OnEntry(ctx, line); err != nil {
			return false, err
		}
		ctx.Refs.Pop()
		ctx.Refs.Push()
		return false, nil

	case symbols.BlockElse:
		if len(line) > 1 {
			return false, fmt.Errorf("else cannot be followed by any other symbol")
		}
		if b.jumpNext == nil {
			return false, fmt.Errorf("'else' cannot follow an 'else' block as it will never be reached")
		}
		b.jumpEnds = append(b.jumpEnds, instr.EmitJump(ctx.Program, 0))
		b.jumpNext.SetDestination(ctx.Program, ctx.Program.Position())
		b.jumpNext = nil
		ctx.Refs.Pop()
		ctx.Refs.Push()
		return false, nil
	}
	return true, b.OnForcedExit(ctx)
}

func (b *ifBlock) OnForcedExit(ctx *Context) error {
	if b.jumpNext != nil {
		b.jumpNext.SetDestination(ctx.Program, ctx.Program.Position())
	}
	for _, j := range b.jumpEnds {
		j.SetDestination(ctx.Program, ctx.Program.Position())
	}
	return nil
}
