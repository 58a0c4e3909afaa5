// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"
	"math/big"

	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/word"
)

func (vm *VM) stackCreate() {
	size := vm.fetchWord()
	vm.mem.Stack().Create(size)
}

func (vm *VM) stackUp() {
	vm.mem.Stack().Up()
}

func (vm *VM) stackDown() {
	vm.mem.Stack().Down()
}

func (vm *VM) heapAlloc() {
	size := vm.fetchWord()
	destOff, destLoc := vm.fetchAddress(word.Size)
	id := vm.mem.Heap().Create(size)
	vm.mem.Overwrite(destLoc, destOff, word.Encode(id))
}

func (vm *VM) heapFree() {
	id := word.Decode(vm.fetchData(word.Size))
	vm.mem.Heap().Free(id)
}

func (vm *VM) copy() {
	size := vm.fetchWord()
	srcOff, srcLoc := vm.fetchAddress(size)
	dstOff, dstLoc := vm.fetchAddress(size)

	// The destination may alias the source region; copy through a
	// scratch buffer.
	data := make([]byte, size)
	copy(data, vm.mem.GetData(srcLoc, srcOff, size))
	vm.mem.Overwrite(dstLoc, dstOff, data)
}

func (vm *VM) jump() {
	vm.pc = vm.fetchWord()
}

func (vm *VM) jumpIfNot() {
	dest := vm.fetchWord()
	cond := vm.fetchData(instr.BoolSize)
	if cond[0] != instr.BoolTrue {
		vm.pc = dest
	}
}

func (vm *VM) dynamicJump() {
	vm.pc = word.Decode(vm.fetchData(word.Size))
}

func (vm *VM) binaryNot() {
	size := vm.fetchWord()
	srcOff, srcLoc := vm.fetchAddress(size)
	dstOff, dstLoc := vm.fetchAddress(size)

	src := vm.mem.GetData(srcLoc, srcOff, size)
	out := make([]byte, size)
	for i, b := range src {
		out[i] = ^b
	}
	vm.mem.Overwrite(dstLoc, dstOff, out)
}

// fetchBinaryOperands resolves the common size/lhs/rhs/dst grammar and
// returns the operand bytes plus the destination.
func (vm *VM) fetchBinaryOperands() (lhs, rhs []byte, dstOff int, dstLoc memory.Location, size int) {
	size = vm.fetchWord()
	lhsOff, lhsLoc := vm.fetchAddress(size)
	rhsOff, rhsLoc := vm.fetchAddress(size)
	dstOff, dstLoc = vm.fetchAddress(size)
	lhs = vm.mem.GetData(lhsLoc, lhsOff, size)
	rhs = vm.mem.GetData(rhsLoc, rhsOff, size)
	return lhs, rhs, dstOff, dstLoc, size
}

func (vm *VM) binaryAnd() {
	lhs, rhs, dstOff, dstLoc, size := vm.fetchBinaryOperands()
	out := make([]byte, size)
	for i := range out {
		out[i] = lhs[i] & rhs[i]
	}
	vm.mem.Overwrite(dstLoc, dstOff, out)
}

func (vm *VM) binaryOr() {
	lhs, rhs, dstOff, dstLoc, size := vm.fetchBinaryOperands()
	out := make([]byte, size)
	for i := range out {
		out[i] = lhs[i] | rhs[i]
	}
	vm.mem.Overwrite(dstLoc, dstOff, out)
}

func (vm *VM) add() {
	lhs, rhs, dstOff, dstLoc, size := vm.fetchBinaryOperands()
	out := make([]byte, size)
	carry := byte(0)
	for i := 0; i < size; i++ {
		sum := uint16(lhs[i]) + uint16(rhs[i]) + uint16(carry)
		out[i] = byte(sum)
		carry = byte(sum >> 8)
	}
	vm.mem.Overwrite(dstLoc, dstOff, out)
}

func (vm *VM) equality() {
	lhs, rhs, dstOff, dstLoc, size := vm.fetchBinaryOperands()
	result := instr.BoolTrue
	for i := 0; i < size; i++ {
		if lhs[i] != rhs[i] {
			result = instr.BoolFalse
			break
		}
	}
	vm.mem.Overwrite(dstLoc, dstOff, []byte{result})
}

func (vm *VM) notEqual() {
	lhs, rhs, dstOff, dstLoc, size := vm.fetchBinaryOperands()
	result := instr.BoolFalse
	for i := 0; i < size; i++ {
		if lhs[i] != rhs[i] {
			result = instr.BoolTrue
			break
		}
	}
	vm.mem.Overwrite(dstLoc, dstOff, []byte{result})
}

func (vm *VM) dump() {
	if err := vm.mem.Dump(vm.dumpDir); err != nil {
		logger.Warnf("dump failed: %v", err)
	}
}

func (vm *VM) viewMemory() {
	length := vm.fetchWord()
	data := vm.fetchData(length)
	for _, b := range data {
		fmt.Fprintf(vm.out, "%02X", b)
	}
	fmt.Fprintln(vm.out)
}

// maxDecimalBytes is the widest value view_memory_dec renders in decimal.
const maxDecimalBytes = 16

func (vm *VM) viewMemoryDec() {
	length := vm.fetchWord()
	data := vm.fetchData(length)

	if len(data) > maxDecimalBytes {
		fmt.Fprint(vm.out, "Data too big for decimal representation - ")
		for _, b := range data {
			fmt.Fprintf(vm.out, "%02X", b)
		}
		fmt.Fprintln(vm.out)
		return
	}

	if len(data) <= 8 {
		var v uint64
		for i := len(data) - 1; i >= 0; i-- {
			v = v<<8 | uint64(data[i])
		}
		fmt.Fprintln(vm.out, v)
		return
	}

	// Larger than a machine word: go through a big integer. The wire
	// order is little-endian, SetBytes wants big-endian.
	be := make([]byte, len(data))
	for i, b := range data {
		be[len(data)-1-i] = b
	}
	fmt.Fprintln(vm.out, new(big.Int).SetBytes(be).String())
}
