// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import "errors"

var (
	// ErrIndexOutOfStack is used while trapping the VM when a stack
	// offset does not land inside any live frame.
	ErrIndexOutOfStack = errors.New("memory: index out of stack")
	// ErrNoStackToDestroy is used while trapping the VM when StackDown
	// executes with no frames left.
	ErrNoStackToDestroy = errors.New("memory: tried to destroy a stack frame when there are none")
)

// StackMemory is the stack region: a pile of fixed-size byte frames.
// Offsets resolve newest-frame-first: an offset below the top frame's
// length addresses the top frame, anything beyond flows into the frame
// under it, and so on. This is what lets a call site address the callee's
// fresh frame directly and its own locals at offset + callee frame size.
type StackMemory struct {
	frames [][]byte
	// ups counts StackUp executions. It is a legacy depth counter kept
	// for image compatibility; nothing reads it for addressing.
	ups int
}

// Create pushes a zero-initialised frame of the given size.
func (s *StackMemory) Create(size int) {
	s.frames = append(s.frames, make([]byte, size))
}

// Up moves the legacy depth counter.
func (s *StackMemory) Up() {
	s.ups++
}

// Down pops the top frame. Panics with ErrNoStackToDestroy if empty.
func (s *StackMemory) Down() {
	if len(s.frames) == 0 {
		panic(ErrNoStackToDestroy)
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Level returns the number of live frames.
func (s *StackMemory) Level() int {
	return len(s.frames)
}

// Frame returns the frame containing pos together with the offset of pos
// inside it.
func (s *StackMemory) Frame(pos int) ([]byte, int) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		if pos < len(f) {
			return f, pos
		}
		pos -= len(f)
	}
	panic(ErrIndexOutOfStack)
}

// Byte returns the byte at pos.
func (s *StackMemory) Byte(pos int) byte {
	f, off := s.Frame(pos)
	return f[off]
}

// Slice returns length bytes starting at pos. The range must lie within a
// single frame.
func (s *StackMemory) Slice(pos, length int) []byte {
	f, off := s.Frame(pos)
	if off+length > len(f) {
		panic(ErrIndexOutOfStack)
	}
	return f[off : off+length]
}

// Write copies data into the stack at pos. The range must lie within a
// single frame.
func (s *StackMemory) Write(pos int, data []byte) {
	f, off := s.Frame(pos)
	if off+len(data) > len(f) {
		panic(ErrIndexOutOfStack)
	}
	copy(f[off:], data)
}
