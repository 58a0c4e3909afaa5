// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instr

import (
	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/word"
)

// StackCreate is the handle of an emitted stack_create instruction. The
// size operand may be patched after emission, once the final frame size of
// a block or function body is known.
type StackCreate struct {
	addr int
}

// EmitStackCreate appends stack_create(size).
func EmitStackCreate(m *memory.Manager, size int) *StackCreate {
	return &StackCreate{addr: emit(m, OpStackCreate, wordOperand(size))}
}

// Addr returns the instruction's emit address.
func (i *StackCreate) Addr() int {
	return i.addr
}

// SetStackSize overwrites the size operand.
func (i *StackCreate) SetStackSize(m *memory.Manager, size int) {
	m.Overwrite(i.addr+CodeLength, word.Encode(size))
}

// EmitStackUp appends stack_up. Executing it only moves the legacy depth
// counter; it is kept for image compatibility.
func EmitStackUp(m *memory.Manager) int {
	return emit(m, OpStackUp)
}

// EmitStackDown appends stack_down.
func EmitStackDown(m *memory.Manager) int {
	return emit(m, OpStackDown)
}
