// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instr

import (
	"github.com/why-lang/why/address"
	"github.com/why-lang/why/memory"
)

// EmitDump appends dump: every runtime region is serialised to disk when
// it executes.
func EmitDump(m *memory.Manager) int {
	return emit(m, OpDump)
}

// EmitViewMemory appends view_memory(length, src): length bytes at src are
// printed in hex.
func EmitViewMemory(m *memory.Manager, length int, src address.Address) int {
	addr := emit(m, OpViewMemory, wordOperand(length))
	m.Append(src.Encode())
	return addr
}

// EmitViewMemoryDec appends view_memory_dec(length, src): the bytes are
// printed as a decimal number when they fit one.
func EmitViewMemoryDec(m *memory.Manager, length int, src address.Address) int {
	addr := emit(m, OpViewMemoryDec, wordOperand(length))
	m.Append(src.Encode())
	return addr
}
