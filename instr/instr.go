// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package instr defines the instruction set of the compiled image: the
// opcode numbering, and one emitter per opcode. Emitters append the
// opcode and its operands to the program image and return a handle bearing
// the emit address; handles for patchable instructions expose setters that
// overwrite individual operand slots in place.
package instr

import (
	"fmt"

	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/word"
)

// Opcode is the 2-byte little-endian code prefixing every instruction.
type Opcode uint16

// The opcode numbering is wire protocol and must match on disk.
const (
	OpStackCreate   Opcode = 0
	OpStackUp       Opcode = 1
	OpHeapAlloc     Opcode = 2
	OpCopy          Opcode = 3
	OpStackDown     Opcode = 4
	OpDump          Opcode = 5
	OpViewMemory    Opcode = 6
	OpBinaryNot     Opcode = 7
	OpBinaryAnd     Opcode = 8
	OpJumpIfNot     Opcode = 9
	OpJump          Opcode = 10
	OpDynamicJump   Opcode = 11
	OpBinaryOr      Opcode = 12
	OpAdd           Opcode = 13
	OpEquality      Opcode = 14
	OpNotEqual      Opcode = 15
	OpViewMemoryDec Opcode = 16
	OpHeapFree      Opcode = 17
)

// NumOpcodes is one past the highest assigned opcode.
const NumOpcodes = 18

// CodeLength is the byte length of an encoded opcode.
const CodeLength = 2

var opNames = [NumOpcodes]string{
	"stack_create",
	"stack_up",
	"heap_alloc",
	"copy",
	"stack_down",
	"dump",
	"view_memory",
	"binary_not",
	"binary_and",
	"jump_if_not",
	"jump",
	"dynamic_jump",
	"binary_or",
	"add",
	"equality",
	"not_equal",
	"view_memory_dec",
	"heap_free",
}

func (op Opcode) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("opcode(%d)", uint16(op))
}

// Valid reports whether op is an assigned opcode.
func (op Opcode) Valid() bool {
	return int(op) < NumOpcodes
}

// Bytes returns the wire encoding of op.
func (op Opcode) Bytes() []byte {
	return []byte{byte(op), byte(op >> 8)}
}

// DecodeOpcode reads the opcode at pos in buf.
func DecodeOpcode(buf []byte, pos int) Opcode {
	return Opcode(uint16(buf[pos]) | uint16(buf[pos+1])<<8)
}

// emit writes the opcode and any trailing operand bytes, returning the
// instruction's address.
func emit(m *memory.Manager, op Opcode, operands ...[]byte) int {
	addr := m.Append(op.Bytes())
	for _, b := range operands {
		m.Append(b)
	}
	return addr
}

// wordOperand encodes v as a word operand.
func wordOperand(v int) []byte {
	return word.Encode(v)
}
