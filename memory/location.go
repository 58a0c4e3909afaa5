// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import "fmt"

// Region identifies one of the three runtime memory regions.
type Region int

const (
	// Program is the immutable compiled image.
	Program Region = iota
	// Stack is the frame stack.
	Stack
	// Heap is the id-keyed frame table.
	Heap
)

func (r Region) String() string {
	switch r {
	case Program:
		return "program"
	case Stack:
		return "stack"
	case Heap:
		return "heap"
	}
	return fmt.Sprintf("region(%d)", int(r))
}

// Location names a byte region at runtime. Frame is the heap frame id and
// is only meaningful when Region is Heap.
type Location struct {
	Region Region
	Frame  int
}

// ProgramLoc and StackLoc are the fixed locations of the frame-less regions.
var (
	ProgramLoc = Location{Region: Program}
	StackLoc   = Location{Region: Stack}
)

// HeapLoc returns the location of the heap frame with the given id.
func HeapLoc(frame int) Location {
	return Location{Region: Heap, Frame: frame}
}

func (l Location) String() string {
	if l.Region == Heap {
		return fmt.Sprintf("heap[%d]", l.Frame)
	}
	return l.Region.String()
}
