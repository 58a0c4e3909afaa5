// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instr

import (
	"errors"
	"fmt"

	"github.com/why-lang/why/address"
	"github.com/why-lang/why/memory"
)

// ErrCopyToImmediate is returned when a copy destination is an immediate,
// which would overwrite program memory at runtime.
var ErrCopyToImmediate = errors.New("instr: copy destination must not be an immediate")

// Copy is the handle of an emitted copy instruction. Both operand
// addresses can be patched in place as long as the replacement encodes to
// the same length; this is how call sites re-base argument and return
// copies once the callee's frame size is known, and how the return-address
// immediate is filled in after the jump is emitted.
type Copy struct {
	addr int
	size int

	src, dst       address.Address
	srcPos, dstPos int
}

// EmitCopy appends copy(size, src, dst).
func EmitCopy(m *memory.Manager, src, dst address.Address, size int) (*Copy, error) {
	if address.IsImmediate(dst) {
		return nil, ErrCopyToImmediate
	}
	c := &Copy{size: size, src: src, dst: dst}
	c.addr = emit(m, OpCopy, wordOperand(size))
	c.srcPos = m.Append(src.Encode())
	c.dstPos = m.Append(dst.Encode())
	return c, nil
}

// Addr returns the instruction's emit address.
func (c *Copy) Addr() int {
	return c.addr
}

// Source returns the current source address.
func (c *Copy) Source() address.Address {
	return c.src
}

// Destination returns the current destination address.
func (c *Copy) Destination() address.Address {
	return c.dst
}

// SetSource overwrites the source operand. The new address must encode to
// the same length as the old one.
func (c *Copy) SetSource(m *memory.Manager, a address.Address) {
	old := c.src.Encode()
	enc := a.Encode()
	if len(enc) != len(old) {
		panic(fmt.Sprintf("instr: copy source patch changes operand length (%d != %d)", len(enc), len(old)))
	}
	m.Overwrite(c.srcPos, enc)
	c.src = a
}

// SetDestination overwrites the destination operand. The new address must
// encode to the same length as the old one.
func (c *Copy) SetDestination(m *memory.Manager, a address.Address) {
	if address.IsImmediate(a) {
		panic(ErrCopyToImmediate)
	}
	old := c.dst.Encode()
	enc := a.Encode()
	if len(enc) != len(old) {
		panic(fmt.Sprintf("instr: copy destination patch changes operand length (%d != %d)", len(enc), len(old)))
	}
	m.Overwrite(c.dstPos, enc)
	c.dst = a
}
