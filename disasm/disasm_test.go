// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/why-lang/why/address"
	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/word"
)

func TestDisassembleWalksTheWholeImage(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, 9)
	instr.EmitStackUp(m)
	_, err := instr.EmitCopy(m, address.ImmediateWord(7), address.StackDirect{Offset: 1}, word.Size)
	require.NoError(t, err)
	instr.EmitJumpIfNot(m, address.StackDirect{Offset: 0}, 5)
	instr.EmitViewMemoryDec(m, word.Size, address.StackDirect{Offset: 1})
	instr.EmitDynamicJump(m, address.StackDirect{Offset: 0})
	instr.EmitHeapAlloc(m, 64, address.StackDirect{Offset: 1})
	instr.EmitHeapFree(m, address.StackDirect{Offset: 1})
	instr.EmitStackDown(m)

	instrs, err := Disassemble(m.Bytes())
	require.NoError(t, err)

	ops := make([]instr.Opcode, len(instrs))
	for i, ins := range instrs {
		ops[i] = ins.Op
	}
	want := []instr.Opcode{
		instr.OpStackCreate,
		instr.OpStackUp,
		instr.OpCopy,
		instr.OpJumpIfNot,
		instr.OpViewMemoryDec,
		instr.OpDynamicJump,
		instr.OpHeapAlloc,
		instr.OpHeapFree,
		instr.OpStackDown,
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("opcode walk mismatch (-want +got):\n%s", diff)
	}
}

func TestDisassembleOperands(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, 24)
	j := instr.EmitJump(m, 0)
	j.SetDestination(m, 42)

	instrs, err := Disassemble(m.Bytes())
	require.NoError(t, err)
	require.Len(t, instrs, 2)

	assert.Equal(t, 24, instrs[0].Immediates[0])
	assert.Equal(t, 42, instrs[1].Immediates[0])
	assert.Equal(t, instr.CodeLength+word.Size, instrs[1].Addr)
}

func TestDisassembleCopyAddresses(t *testing.T) {
	m := memory.NewManager()
	src := address.Immediate{Data: []byte{1, 2, 3}}
	dst := address.StackDirect{Offset: 5}
	_, err := instr.EmitCopy(m, src, dst, 3)
	require.NoError(t, err)

	instrs, err := Disassemble(m.Bytes())
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	require.Len(t, instrs[0].Immediates, 3)

	assert.Equal(t, 3, instrs[0].Immediates[0])
	gotSrc := instrs[0].Immediates[1].(address.Address)
	gotDst := instrs[0].Immediates[2].(address.Address)
	assert.Equal(t, src.Encode(), gotSrc.Encode())
	assert.Equal(t, dst.Encode(), gotDst.Encode())
}

func TestDisassembleTruncated(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, 1)
	buf := m.Bytes()[:m.Position()-1]

	_, err := Disassemble(buf)
	assert.Error(t, err)
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	_, err := Disassemble([]byte{0xEE, 0x7F})
	assert.Error(t, err)
}

func TestListing(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, 3)
	instr.EmitStackDown(m)

	s, err := Listing(m.Bytes())
	require.NoError(t, err)
	assert.Contains(t, s, "stack_create 3")
	assert.Contains(t, s, "stack_down")
}
