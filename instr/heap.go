// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instr

import (
	"github.com/why-lang/why/address"
	"github.com/why-lang/why/memory"
)

// EmitHeapAlloc appends heap_alloc(size, dest): a heap frame of the given
// size is allocated and its id written as a word into dest.
func EmitHeapAlloc(m *memory.Manager, size int, dest address.Address) int {
	addr := emit(m, OpHeapAlloc, wordOperand(size))
	m.Append(dest.Encode())
	return addr
}

// EmitHeapFree appends heap_free(frame): the heap frame whose id is the
// word read from frame is released.
func EmitHeapFree(m *memory.Manager, frame address.Address) int {
	addr := emit(m, OpHeapFree)
	m.Append(frame.Encode())
	return addr
}
