// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stack implements a simple int stack.
package stack

// Stack is a LIFO stack of ints.
type Stack struct {
	slice []int
}

// Push places v on top of the stack.
func (s *Stack) Push(v int) {
	s.slice = append(s.slice, v)
}

// Pop removes and returns the top of the stack.
func (s *Stack) Pop() int {
	v := s.Top()
	s.slice = s.slice[:len(s.slice)-1]
	return v
}

// Top returns the top of the stack.
func (s *Stack) Top() int {
	return s.slice[len(s.slice)-1]
}

// SetTop replaces the top of the stack.
func (s *Stack) SetTop(v int) {
	s.slice[len(s.slice)-1] = v
}

// Get returns the value at index i, counted from the bottom.
func (s *Stack) Get(i int) int {
	return s.slice[i]
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return len(s.slice)
}
