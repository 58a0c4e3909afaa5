// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instr

import (
	"github.com/why-lang/why/address"
	"github.com/why-lang/why/memory"
)

// EmitBinaryNot appends binary_not(size, src, dst): the bitwise complement
// of size bytes at src is written to dst.
func EmitBinaryNot(m *memory.Manager, size int, src, dst address.Address) int {
	addr := emit(m, OpBinaryNot, wordOperand(size))
	m.Append(src.Encode())
	m.Append(dst.Encode())
	return addr
}

// emitBinaryOp appends a three-operand bytewise instruction.
func emitBinaryOp(m *memory.Manager, op Opcode, size int, lhs, rhs, dst address.Address) int {
	addr := emit(m, op, wordOperand(size))
	m.Append(lhs.Encode())
	m.Append(rhs.Encode())
	m.Append(dst.Encode())
	return addr
}

// EmitBinaryAnd appends binary_and(size, lhs, rhs, dst).
func EmitBinaryAnd(m *memory.Manager, size int, lhs, rhs, dst address.Address) int {
	return emitBinaryOp(m, OpBinaryAnd, size, lhs, rhs, dst)
}

// EmitBinaryOr appends binary_or(size, lhs, rhs, dst).
func EmitBinaryOr(m *memory.Manager, size int, lhs, rhs, dst address.Address) int {
	return emitBinaryOp(m, OpBinaryOr, size, lhs, rhs, dst)
}

// EmitAdd appends add(size, lhs, rhs, dst): little-endian multi-byte
// addition with carry across bytes and no overflow trap.
func EmitAdd(m *memory.Manager, size int, lhs, rhs, dst address.Address) int {
	return emitBinaryOp(m, OpAdd, size, lhs, rhs, dst)
}

// EmitEquality appends equality(size, lhs, rhs, dst): exactly one boolean
// byte is written to dst regardless of the operand size.
func EmitEquality(m *memory.Manager, size int, lhs, rhs, dst address.Address) int {
	return emitBinaryOp(m, OpEquality, size, lhs, rhs, dst)
}

// EmitNotEqual appends not_equal(size, lhs, rhs, dst), the complement of
// equality.
func EmitNotEqual(m *memory.Manager, size int, lhs, rhs, dst address.Address) int {
	return emitBinaryOp(m, OpNotEqual, size, lhs, rhs, dst)
}
