// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/word"
)

// sampleAddresses covers every variant, including nested indexed forms.
func sampleAddresses(elemSize int) []Address {
	imm := make([]byte, elemSize)
	for i := range imm {
		imm[i] = byte(i + 1)
	}
	return []Address{
		Immediate{Data: imm},
		StackDirect{Offset: 12},
		StackIndirect{Offset: 40},
		HeapDirect{Frame: ImmediateWord(1), Offset: ImmediateWord(8)},
		HeapDirect{Frame: StackDirect{Offset: 0}, Offset: StackDirect{Offset: word.Size}},
		HeapIndirect{Frame: ImmediateWord(0), Offset: ImmediateWord(0)},
		ImmediateIndexed{Location: ImmediateWord(100), Offset: ImmediateWord(3)},
		StackIndexed{Location: ImmediateWord(4), Offset: StackDirect{Offset: 8}},
		HeapIndexed{Frame: ImmediateWord(2), Location: ImmediateWord(0), Offset: ImmediateWord(5)},
		StackIndexed{
			Location: ImmediateWord(4),
			Offset:   StackIndexed{Location: ImmediateWord(16), Offset: ImmediateWord(1)},
		},
	}
}

func TestEncodedLengthRoundTrip(t *testing.T) {
	for _, elemSize := range []int{1, 4, 8, word.Size} {
		for _, a := range sampleAddresses(elemSize) {
			enc := a.Encode()
			n, err := EncodedLength(enc, 0, elemSize)
			require.NoError(t, err, "%s", a)
			assert.Equal(t, len(enc), n, "%s with element size %d", a, elemSize)
		}
	}
}

func TestSelfDelimiting(t *testing.T) {
	elemSize := 4
	all := sampleAddresses(elemSize)
	for _, a1 := range all {
		for _, a2 := range all {
			buf := append(a1.Encode(), a2.Encode()...)
			n, err := EncodedLength(buf, 0, elemSize)
			require.NoError(t, err)
			assert.Equal(t, len(a1.Encode()), n, "%s || %s", a1, a2)
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	elemSize := word.Size
	for _, a := range sampleAddresses(elemSize) {
		enc := a.Encode()
		got, n, err := Decode(enc, 0, elemSize)
		require.NoError(t, err)
		assert.Equal(t, len(enc), n)
		assert.Equal(t, enc, got.Encode(), "%s", a)
	}
}

func TestInvalidCode(t *testing.T) {
	_, err := EncodedLength([]byte{0xEE}, 0, 1)
	assert.Error(t, err)
	_, _, err = Decode([]byte{0xEE}, 0, 1)
	assert.Error(t, err)
}

// buildRuntime assembles a runtime whose program region is the encoded
// address under test.
func buildRuntime(t *testing.T, program []byte) *memory.Runtime {
	t.Helper()
	return memory.NewRuntime(memory.ManagerFromBytes(program))
}

func TestEvaluateImmediate(t *testing.T) {
	a := Immediate{Data: []byte{0xDE, 0xAD}}
	r := buildRuntime(t, a.Encode())

	cursor := 0
	off, loc := Evaluate(&cursor, 2, r, memory.ProgramLoc)
	assert.Equal(t, 1, off, "immediate data follows the code byte")
	assert.Equal(t, memory.ProgramLoc, loc)
	assert.Equal(t, 3, cursor)
	assert.Equal(t, []byte{0xDE, 0xAD}, r.GetData(loc, off, 2))
}

func TestEvaluateStackDirect(t *testing.T) {
	a := StackDirect{Offset: 3}
	r := buildRuntime(t, a.Encode())
	r.Stack().Create(8)
	r.Overwrite(memory.StackLoc, 3, []byte{0x7F})

	cursor := 0
	off, loc := Evaluate(&cursor, 1, r, memory.ProgramLoc)
	assert.Equal(t, 3, off)
	assert.Equal(t, memory.StackLoc, loc)
	assert.Equal(t, byte(0x7F), r.GetByte(loc, off))
}

func TestEvaluateStackIndirect(t *testing.T) {
	// The stack at offset 2 holds an encoded StackDirect(12); the target
	// byte lies past the encoding's 1+word.Size bytes.
	inner := StackDirect{Offset: 12}
	a := StackIndirect{Offset: 2}
	r := buildRuntime(t, a.Encode())
	r.Stack().Create(16)
	r.Overwrite(memory.StackLoc, 2, inner.Encode())
	r.Overwrite(memory.StackLoc, 12, []byte{0x55})

	cursor := 0
	off, loc := Evaluate(&cursor, 1, r, memory.ProgramLoc)
	assert.Equal(t, 12, off)
	assert.Equal(t, memory.StackLoc, loc)
	assert.Equal(t, byte(0x55), r.GetByte(loc, off))
}

func TestEvaluateHeapDirect(t *testing.T) {
	a := HeapDirect{Frame: ImmediateWord(0), Offset: ImmediateWord(5)}
	r := buildRuntime(t, a.Encode())
	id := r.Heap().Create(8)
	require.Equal(t, 0, id)
	r.Overwrite(memory.HeapLoc(id), 5, []byte{0x99})

	cursor := 0
	off, loc := Evaluate(&cursor, 1, r, memory.ProgramLoc)
	assert.Equal(t, 5, off)
	assert.Equal(t, memory.HeapLoc(id), loc)
	assert.Equal(t, byte(0x99), r.GetByte(loc, off))
}

func TestEvaluateHeapIndirect(t *testing.T) {
	a := HeapIndirect{Frame: ImmediateWord(0), Offset: ImmediateWord(2)}
	r := buildRuntime(t, a.Encode())
	id := r.Heap().Create(32)
	require.Equal(t, 0, id)

	// The heap frame at offset 2 holds an encoded StackDirect(1).
	inner := StackDirect{Offset: 1}
	r.Overwrite(memory.HeapLoc(id), 2, inner.Encode())
	r.Stack().Create(4)
	r.Overwrite(memory.StackLoc, 1, []byte{0x42})

	cursor := 0
	off, loc := Evaluate(&cursor, 1, r, memory.ProgramLoc)
	assert.Equal(t, 1, off)
	assert.Equal(t, memory.StackLoc, loc)
	assert.Equal(t, byte(0x42), r.GetByte(loc, off))
}

func TestEvaluateStackIndexed(t *testing.T) {
	elemSize := 2
	a := StackIndexed{Location: ImmediateWord(4), Offset: ImmediateWord(3)}
	r := buildRuntime(t, a.Encode())
	r.Stack().Create(16)
	r.Overwrite(memory.StackLoc, 4+3*elemSize, []byte{0xCA, 0xFE})

	cursor := 0
	off, loc := Evaluate(&cursor, elemSize, r, memory.ProgramLoc)
	assert.Equal(t, 4+3*elemSize, off)
	assert.Equal(t, memory.StackLoc, loc)
	assert.Equal(t, []byte{0xCA, 0xFE}, r.GetData(loc, off, elemSize))
}

func TestEvaluateHeapIndexed(t *testing.T) {
	elemSize := 4
	a := HeapIndexed{Frame: ImmediateWord(0), Location: ImmediateWord(8), Offset: ImmediateWord(2)}
	r := buildRuntime(t, a.Encode())
	id := r.Heap().Create(32)
	require.Equal(t, 0, id)

	cursor := 0
	off, loc := Evaluate(&cursor, elemSize, r, memory.ProgramLoc)
	assert.Equal(t, 8+2*elemSize, off)
	assert.Equal(t, memory.HeapLoc(id), loc)
}

func TestEvaluateAdvancesCursorPastEncoding(t *testing.T) {
	for _, a := range sampleAddresses(word.Size) {
		if needsLiveMemory(a) {
			continue
		}
		enc := a.Encode()
		r := buildRuntime(t, enc)
		r.Stack().Create(64)
		cursor := 0
		Evaluate(&cursor, word.Size, r, memory.ProgramLoc)
		assert.Equal(t, len(enc), cursor, "%s", a)
	}
}

// needsLiveMemory reports whether evaluating a requires prepared stack or
// heap contents beyond a single empty frame.
func needsLiveMemory(a Address) bool {
	switch v := a.(type) {
	case StackIndirect:
		return true
	case HeapDirect, HeapIndirect, HeapIndexed:
		return true
	case StackIndexed:
		return needsLiveMemory(v.Location) || needsLiveMemory(v.Offset)
	}
	return false
}

func TestOffsetIfStack(t *testing.T) {
	assert.Equal(t, StackDirect{Offset: 15}, OffsetIfStack(StackDirect{Offset: 5}, 10))
	assert.Equal(t, StackIndirect{Offset: 12}, OffsetIfStack(StackIndirect{Offset: 2}, 10))

	imm := Immediate{Data: []byte{1, 2}}
	assert.Equal(t, Address(imm), OffsetIfStack(imm, 10))

	// The immediate base of a stack-indexed view is itself a stack
	// offset and moves with the frame.
	ix := StackIndexed{Location: ImmediateWord(4), Offset: ImmediateWord(2)}
	moved := OffsetIfStack(ix, 10).(StackIndexed)
	assert.Equal(t, Address(ImmediateWord(14)), moved.Location)
	assert.Equal(t, Address(ImmediateWord(2)), moved.Offset, "index counts do not move")

	// A stack-resident index slot moves.
	ix = StackIndexed{Location: ImmediateWord(4), Offset: StackDirect{Offset: 8}}
	moved = OffsetIfStack(ix, 10).(StackIndexed)
	assert.Equal(t, Address(StackDirect{Offset: 18}), moved.Offset)
}
