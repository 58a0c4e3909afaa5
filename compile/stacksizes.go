// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import "github.com/why-lang/why/internal/stack"

// StackSizes is the compile-time layout engine for stack frames: one
// counter per open frame handing out monotonically increasing offsets.
// Base and function blocks push a counter on entry and pop it on exit;
// the popped value is the final frame size.
type StackSizes struct {
	sizes stack.Stack
}

// Push opens a fresh frame counter.
func (s *StackSizes) Push() {
	s.sizes.Push(0)
}

// Pop closes the current frame counter and returns its final size.
func (s *StackSizes) Pop() int {
	return s.sizes.Pop()
}

// Increment reserves n bytes in the current frame and returns the offset
// they start at.
func (s *StackSizes) Increment(n int) int {
	old := s.sizes.Top()
	s.sizes.SetTop(old + n)
	return old
}

// Current returns the number of bytes allocated in the current frame so
// far.
func (s *StackSizes) Current() int {
	return s.sizes.Top()
}

// Depth returns the number of open frame counters.
func (s *StackSizes) Depth() int {
	return s.sizes.Len()
}
