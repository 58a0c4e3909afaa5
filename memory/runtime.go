// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import "errors"

// ErrProgramWrite is used while trapping the VM when an instruction
// attempts to overwrite program memory.
var ErrProgramWrite = errors.New("memory: attempted to overwrite program memory")

// Runtime is the three-region runtime memory an image executes against.
type Runtime struct {
	program []byte
	stack   StackMemory
	heap    *HeapMemory
}

// NewRuntime builds a runtime around a compiled image. The image bytes are
// cloned; the program region is never mutated afterwards.
func NewRuntime(image *Manager) *Runtime {
	prog := make([]byte, len(image.Bytes()))
	copy(prog, image.Bytes())
	return &Runtime{
		program: prog,
		heap:    NewHeapMemory(),
	}
}

// Program returns the immutable program region.
func (r *Runtime) Program() []byte {
	return r.program
}

// Stack returns the stack region.
func (r *Runtime) Stack() *StackMemory {
	return &r.stack
}

// Heap returns the heap region.
func (r *Runtime) Heap() *HeapMemory {
	return r.heap
}

// GetByte returns the byte at off inside loc.
func (r *Runtime) GetByte(loc Location, off int) byte {
	switch loc.Region {
	case Program:
		return r.program[off]
	case Stack:
		return r.stack.Byte(off)
	default:
		return r.heap.Frame(loc.Frame)[off]
	}
}

// GetData returns length bytes starting at off inside loc.
func (r *Runtime) GetData(loc Location, off, length int) []byte {
	switch loc.Region {
	case Program:
		return r.program[off : off+length]
	case Stack:
		return r.stack.Slice(off, length)
	default:
		return r.heap.Frame(loc.Frame)[off : off+length]
	}
}

// GetMemory returns the backing bytes of loc together with off transformed
// into an index of the returned slice. For the stack the transformation
// skips the frames the offset flows past.
func (r *Runtime) GetMemory(loc Location, off int) ([]byte, int) {
	switch loc.Region {
	case Program:
		return r.program, off
	case Stack:
		return r.stack.Frame(off)
	default:
		return r.heap.Frame(loc.Frame), off
	}
}

// Overwrite copies data into loc at off. Writing to the program region is
// a programmer error and traps with ErrProgramWrite.
func (r *Runtime) Overwrite(loc Location, off int, data []byte) {
	switch loc.Region {
	case Program:
		panic(ErrProgramWrite)
	case Stack:
		r.stack.Write(off, data)
	default:
		copy(r.heap.Frame(loc.Frame)[off:off+len(data)], data)
	}
}
