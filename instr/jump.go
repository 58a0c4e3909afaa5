// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instr

import (
	"github.com/why-lang/why/address"
	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/word"
)

// Jump is the handle of an emitted unconditional jump. Forward branches
// are emitted with destination 0 and patched once the target is known.
type Jump struct {
	addr int
}

// EmitJump appends jump(dest).
func EmitJump(m *memory.Manager, dest int) *Jump {
	return &Jump{addr: emit(m, OpJump, wordOperand(dest))}
}

// Addr returns the instruction's emit address.
func (i *Jump) Addr() int {
	return i.addr
}

// SetDestination overwrites the destination operand.
func (i *Jump) SetDestination(m *memory.Manager, dest int) {
	m.Overwrite(i.addr+CodeLength, word.Encode(dest))
}

// JumpIfNot is the handle of an emitted conditional jump. The jump is
// taken when the single byte at the condition address is not the boolean
// true pattern.
type JumpIfNot struct {
	addr int
}

// EmitJumpIfNot appends jump_if_not(dest, cond).
func EmitJumpIfNot(m *memory.Manager, cond address.Address, dest int) *JumpIfNot {
	i := &JumpIfNot{addr: emit(m, OpJumpIfNot, wordOperand(dest))}
	m.Append(cond.Encode())
	return i
}

// Addr returns the instruction's emit address.
func (i *JumpIfNot) Addr() int {
	return i.addr
}

// SetDestination overwrites the destination operand.
func (i *JumpIfNot) SetDestination(m *memory.Manager, dest int) {
	m.Overwrite(i.addr+CodeLength, word.Encode(dest))
}

// EmitDynamicJump appends dynamic_jump(dest): the instruction pointer is
// set to the word read from dest at runtime. Used for function return.
func EmitDynamicJump(m *memory.Manager, dest address.Address) int {
	addr := emit(m, OpDynamicJump)
	m.Append(dest.Encode())
	return addr
}
