// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import (
	"errors"

	lru "github.com/hashicorp/golang-lru"
)

// ErrFrameNotInHeap is used while trapping the VM when a heap frame id
// does not name a live frame.
var ErrFrameNotInHeap = errors.New("memory: frame not in heap")

// heapLookupCacheSize bounds the id lookup cache in front of the frame
// list scan.
const heapLookupCacheSize = 128

type heapFrame struct {
	id   int
	data []byte
}

// HeapMemory is the heap region: a table of byte frames keyed by
// monotonically allocated ids. Ids are never reused for the lifetime of a
// run, so cached lookups can never go stale.
type HeapMemory struct {
	frames []*heapFrame
	next   int
	lookup *lru.Cache
}

// NewHeapMemory creates an empty heap.
func NewHeapMemory() *HeapMemory {
	c, err := lru.New(heapLookupCacheSize)
	if err != nil {
		panic(err)
	}
	return &HeapMemory{lookup: c}
}

// Create allocates a zero-initialised frame of the given size and returns
// its id.
func (h *HeapMemory) Create(size int) int {
	f := &heapFrame{id: h.next, data: make([]byte, size)}
	h.next++
	h.frames = append(h.frames, f)
	h.lookup.Add(f.id, f)
	return f.id
}

// Frame returns the frame with the given id. Panics with ErrFrameNotInHeap
// if it does not exist.
func (h *HeapMemory) Frame(id int) []byte {
	if f, ok := h.lookup.Get(id); ok {
		return f.(*heapFrame).data
	}
	for _, f := range h.frames {
		if f.id == id {
			h.lookup.Add(id, f)
			return f.data
		}
	}
	panic(ErrFrameNotInHeap)
}

// Free releases the frame with the given id. Panics with ErrFrameNotInHeap
// if it does not exist. The id is not reused.
func (h *HeapMemory) Free(id int) {
	for i, f := range h.frames {
		if f.id == id {
			h.frames = append(h.frames[:i], h.frames[i+1:]...)
			h.lookup.Remove(id)
			return
		}
	}
	panic(ErrFrameNotInHeap)
}

// Len returns the number of live frames.
func (h *HeapMemory) Len() int {
	return len(h.frames)
}
