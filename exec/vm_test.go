// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"bytes"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/why-lang/why/address"
	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/word"
)

// runImage executes a hand-emitted image and returns the VM and its
// captured output.
func runImage(t *testing.T, m *memory.Manager) (*VM, string) {
	t.Helper()
	vm := NewVM(m)
	var out bytes.Buffer
	vm.SetOutput(&out)
	require.NoError(t, vm.Run())
	return vm, out.String()
}

func TestCopyIdentity(t *testing.T) {
	// copy(k, imm(bytes), stack[o]) leaves exactly bytes at o.
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	m := memory.NewManager()
	instr.EmitStackCreate(m, 16)
	_, err := instr.EmitCopy(m, address.Immediate{Data: payload}, address.StackDirect{Offset: 3}, len(payload))
	require.NoError(t, err)

	vm := NewVM(m)
	require.NoError(t, vm.Run())
	assert.Equal(t, payload, vm.Memory().GetData(memory.StackLoc, 3, len(payload)))
}

func TestEqualityNotEqualComplementarity(t *testing.T) {
	patterns := [][2][]byte{
		{{1, 2, 3}, {1, 2, 3}},
		{{1, 2, 3}, {1, 2, 4}},
		{{0}, {0}},
		{{0xFF}, {0x00}},
	}
	for _, p := range patterns {
		lhs, rhs := p[0], p[1]
		size := len(lhs)

		m := memory.NewManager()
		instr.EmitStackCreate(m, 2)
		instr.EmitEquality(m, size, address.Immediate{Data: lhs}, address.Immediate{Data: rhs}, address.StackDirect{Offset: 0})
		instr.EmitNotEqual(m, size, address.Immediate{Data: lhs}, address.Immediate{Data: rhs}, address.StackDirect{Offset: 1})

		vm, _ := runImage(t, m)
		eq := vm.Memory().GetByte(memory.StackLoc, 0)
		ne := vm.Memory().GetByte(memory.StackLoc, 1)
		assert.Equal(t, ^eq, ne, "equality and not_equal must complement for % x vs % x", lhs, rhs)
	}
}

func TestEqualityWritesExactlyOneByte(t *testing.T) {
	// The byte after the destination must stay untouched even for wide
	// operands.
	m := memory.NewManager()
	instr.EmitStackCreate(m, 16)
	sentinel := []byte{0xAB}
	_, err := instr.EmitCopy(m, address.Immediate{Data: sentinel}, address.StackDirect{Offset: 1}, 1)
	require.NoError(t, err)
	lhs := address.ImmediateWord(7)
	rhs := address.ImmediateWord(7)
	instr.EmitEquality(m, word.Size, lhs, rhs, address.StackDirect{Offset: 0})

	vm, _ := runImage(t, m)
	assert.Equal(t, instr.BoolTrue, vm.Memory().GetByte(memory.StackLoc, 0))
	assert.Equal(t, byte(0xAB), vm.Memory().GetByte(memory.StackLoc, 1))
}

// addBytes runs the add instruction over two little-endian operands of
// width k and returns the result.
func addBytes(t *testing.T, a, b []byte) []byte {
	t.Helper()
	k := len(a)
	m := memory.NewManager()
	instr.EmitStackCreate(m, k)
	instr.EmitAdd(m, k, address.Immediate{Data: a}, address.Immediate{Data: b}, address.StackDirect{Offset: 0})
	vm, _ := runImage(t, m)
	out := make([]byte, k)
	copy(out, vm.Memory().GetData(memory.StackLoc, 0, k))
	return out
}

func TestAddCarryChain(t *testing.T) {
	// 255 + 1 carries across bytes.
	got := addBytes(t, []byte{0xFF, 0x00}, []byte{0x01, 0x00})
	assert.Equal(t, []byte{0x00, 0x01}, got)

	// All-ones + 1 wraps to zero modulo 2^(8k).
	got = addBytes(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, []byte{1, 0, 0, 0})
	assert.Equal(t, []byte{0, 0, 0, 0}, got)
}

func TestAddAssociativity(t *testing.T) {
	for _, k := range []int{1, 4, 8, word.Size} {
		a := make([]byte, k)
		b := make([]byte, k)
		c := make([]byte, k)
		for i := 0; i < k; i++ {
			a[i] = byte(0xF3 >> uint(i % 8))
			b[i] = byte(0x91 + i*37)
			c[i] = byte(0x68 * (i + 1))
		}
		left := addBytes(t, addBytes(t, a, b), c)
		right := addBytes(t, a, addBytes(t, b, c))
		assert.Equal(t, left, right, "k=%d", k)
	}
}

func TestBitwiseOps(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, 3)
	lhs := address.Immediate{Data: []byte{0b1100}}
	rhs := address.Immediate{Data: []byte{0b1010}}
	instr.EmitBinaryAnd(m, 1, lhs, rhs, address.StackDirect{Offset: 0})
	instr.EmitBinaryOr(m, 1, lhs, rhs, address.StackDirect{Offset: 1})
	instr.EmitBinaryNot(m, 1, lhs, address.StackDirect{Offset: 2})

	vm, _ := runImage(t, m)
	assert.Equal(t, byte(0b1000), vm.Memory().GetByte(memory.StackLoc, 0))
	assert.Equal(t, byte(0b1110), vm.Memory().GetByte(memory.StackLoc, 1))
	assert.Equal(t, byte(0xF3), vm.Memory().GetByte(memory.StackLoc, 2))
}

func TestJumpIfNotTakenOnFalse(t *testing.T) {
	// Write 1 to the frame, conditionally skip an overwrite with 2.
	m := memory.NewManager()
	instr.EmitStackCreate(m, 1)
	_, err := instr.EmitCopy(m, address.Immediate{Data: []byte{1}}, address.StackDirect{Offset: 0}, 1)
	require.NoError(t, err)
	j := instr.EmitJumpIfNot(m, address.Immediate{Data: []byte{instr.BoolFalse}}, 0)
	_, err = instr.EmitCopy(m, address.Immediate{Data: []byte{2}}, address.StackDirect{Offset: 0}, 1)
	require.NoError(t, err)
	j.SetDestination(m, m.Position())

	vm, _ := runImage(t, m)
	assert.Equal(t, byte(1), vm.Memory().GetByte(memory.StackLoc, 0), "false condition must take the jump")
}

func TestJumpIfNotFallsThroughOnTrue(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, 1)
	j := instr.EmitJumpIfNot(m, address.Immediate{Data: []byte{instr.BoolTrue}}, 0)
	_, err := instr.EmitCopy(m, address.Immediate{Data: []byte{2}}, address.StackDirect{Offset: 0}, 1)
	require.NoError(t, err)
	j.SetDestination(m, m.Position())

	vm, _ := runImage(t, m)
	assert.Equal(t, byte(2), vm.Memory().GetByte(memory.StackLoc, 0))
}

func TestDynamicJump(t *testing.T) {
	// The jump target is read from the stack at runtime.
	m := memory.NewManager()
	instr.EmitStackCreate(m, word.Size+1)
	retCopy, err := instr.EmitCopy(m, address.ImmediateWord(0), address.StackDirect{Offset: 0}, word.Size)
	require.NoError(t, err)
	instr.EmitDynamicJump(m, address.StackDirect{Offset: 0})
	// Skipped when the dynamic jump lands past it.
	skipped, err := instr.EmitCopy(m, address.Immediate{Data: []byte{9}}, address.StackDirect{Offset: word.Size}, 1)
	require.NoError(t, err)
	_ = skipped
	retCopy.SetSource(m, address.ImmediateWord(m.Position()))

	vm, _ := runImage(t, m)
	assert.Equal(t, byte(0), vm.Memory().GetByte(memory.StackLoc, word.Size))
}

func TestHeapAllocAndFree(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, word.Size)
	instr.EmitHeapAlloc(m, 32, address.StackDirect{Offset: 0})

	vm, _ := runImage(t, m)
	id := word.Decode(vm.Memory().GetData(memory.StackLoc, 0, word.Size))
	assert.Len(t, vm.Memory().Heap().Frame(id), 32)
	assert.Equal(t, 1, vm.Memory().Heap().Len())

	m2 := memory.NewManager()
	instr.EmitStackCreate(m2, word.Size)
	instr.EmitHeapAlloc(m2, 8, address.StackDirect{Offset: 0})
	instr.EmitHeapFree(m2, address.StackDirect{Offset: 0})
	vm2, _ := runImage(t, m2)
	assert.Equal(t, 0, vm2.Memory().Heap().Len())
}

func TestViewMemoryHex(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, 0)
	instr.EmitViewMemory(m, 2, address.Immediate{Data: []byte{0xFF, 0x0A}})
	_, out := runImage(t, m)
	assert.Equal(t, "FF0A\n", out)
}

func TestViewMemoryDec(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, 0)
	instr.EmitViewMemoryDec(m, word.Size, address.ImmediateWord(256))
	_, out := runImage(t, m)
	assert.Equal(t, "256\n", out)
}

func TestViewMemoryDecWide(t *testing.T) {
	// 16 bytes still render as a decimal.
	data := make([]byte, 16)
	data[8] = 1 // 2^64
	m := memory.NewManager()
	instr.EmitStackCreate(m, 0)
	instr.EmitViewMemoryDec(m, len(data), address.Immediate{Data: data})
	_, out := runImage(t, m)
	assert.Equal(t, "18446744073709551616\n", out)
}

func TestUnknownOpcode(t *testing.T) {
	m := memory.ManagerFromBytes([]byte{0xEE, 0x7F})
	vm := NewVM(m)
	err := vm.Run()
	require.Error(t, err)
	assert.IsType(t, UnknownOpcodeError(0), err)
}

func TestProgramOverwriteTraps(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, 1)
	// A copy whose destination evaluates into the program region: an
	// immediate-indexed destination resolves within program memory.
	dst := address.ImmediateIndexed{Location: address.ImmediateWord(0), Offset: address.ImmediateWord(0)}
	_, err := instr.EmitCopy(m, address.Immediate{Data: []byte{1}}, dst, 1)
	require.NoError(t, err)

	vm := NewVM(m)
	err = vm.Run()
	assert.ErrorIs(t, err, memory.ErrProgramWrite)
}

func TestCancellation(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, 0)
	instr.EmitStackDown(m)

	vm := NewVM(m)
	var flag atomic.Bool
	flag.Store(true)
	vm.SetCancel(&flag)
	assert.ErrorIs(t, vm.Run(), ErrCancelled)
}

func TestStackLevelAfterBalancedProgram(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackCreate(m, 4)
	instr.EmitStackUp(m)
	instr.EmitStackDown(m)
	vm, _ := runImage(t, m)
	assert.Equal(t, 0, vm.StackLevel())
}

func TestStackDownWithoutFrameTraps(t *testing.T) {
	m := memory.NewManager()
	instr.EmitStackDown(m)
	vm := NewVM(m)
	assert.ErrorIs(t, vm.Run(), memory.ErrNoStackToDestroy)
}
