// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"

	"github.com/why-lang/why/address"
	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/symbols"
	"github.com/why-lang/why/word"
)

// funcParam is one declared parameter: its name and its value slot in the
// function's own frame.
type funcParam struct {
	name string
	typ  Type
}

// incompleteCall records the instructions a call site emitted while the
// callee's frame size was still unknown: the placeholder stack_create, the
// argument copies whose sources need re-basing, and the return read-out
// copies whose destinations do.
type incompleteCall struct {
	create    *instr.StackCreate
	srcRebase []*instr.Copy
	dstRebase []*instr.Copy
}

// FuncRef is the compile-time record of a declared function: entry point,
// return-pointer slot, parameter slots, declared return slot, and the
// frame size that is only known once the body closes.
type FuncRef struct {
	entry     int
	returnPtr Type
	returnVar Type
	params    []funcParam

	stackSize int
	sized     bool

	incomplete []incompleteCall
}

// NewFuncRef records a function whose body starts at entry.
func NewFuncRef(entry int, returnPtr, returnVar Type, params []funcParam) *FuncRef {
	return &FuncRef{entry: entry, returnPtr: returnPtr, returnVar: returnVar, params: params}
}

// Returns reports whether the function declares a return slot.
func (f *FuncRef) Returns() bool {
	return f.returnVar != nil
}

// ReturnType returns the declared return type symbol. Only valid when
// Returns is true.
func (f *FuncRef) ReturnType() symbols.TypeSymbol {
	return f.returnVar.Symbol()
}

// Call emits the §-call sequence for name(args): evaluate arguments into
// caller-frame temporaries, create the callee frame, copy arguments and
// the return address in, jump, optionally read the return slot out into
// dest, and tear the frame down. When the callee's frame size is still
// unknown the affected instructions are parked on the incomplete list and
// re-patched by SetStackSizeAndComplete.
func (f *FuncRef) Call(args [][]symbols.Symbol, dest Type, ctx *Context) error {
	if len(args) != len(f.params) {
		return fmt.Errorf("expected %d arguments - received %d", len(f.params), len(args))
	}
	if dest != nil && !f.Returns() {
		return fmt.Errorf("function does not return a value")
	}

	// Evaluate every argument to its parameter's type in the caller's
	// frame.
	temps := make([]Type, len(args))
	for i, arg := range args {
		t, err := evalToTypes(arg, []symbols.TypeSymbol{f.params[i].typ.Symbol()}, ctx)
		if err != nil {
			return err
		}
		temps[i] = t
	}

	createSize := 0
	if f.sized {
		createSize = f.stackSize
	}
	create := instr.EmitStackCreate(ctx.Program, createSize)

	var call incompleteCall
	call.create = create

	// Argument copies: parameter slots resolve in the callee frame,
	// caller temporaries are reached past it.
	for i, temp := range temps {
		src := temp.Address()
		if f.sized {
			src = address.OffsetIfStack(src, f.stackSize)
		}
		c, err := f.params[i].typ.RuntimeCopyFrom(temp.WithAddress(src), ctx.Program)
		if err != nil {
			return err
		}
		if !f.sized {
			call.srcRebase = append(call.srcRebase, c)
		}
	}

	// Return address: a placeholder immediate patched to the position
	// after the jump.
	retCopy, err := instr.EmitCopy(ctx.Program, address.ImmediateWord(0), f.returnPtr.Address(), word.Size)
	if err != nil {
		return err
	}

	instr.EmitJump(ctx.Program, f.entry)
	retCopy.SetSource(ctx.Program, address.ImmediateWord(ctx.Program.Position()))

	// Read the return slot out before the callee frame is destroyed.
	if dest != nil {
		dst := dest.Address()
		if f.sized {
			dst = address.OffsetIfStack(dst, f.stackSize)
		}
		c, err := instr.EmitCopy(ctx.Program, f.returnVar.Address(), dst, dest.Length())
		if err != nil {
			return err
		}
		if !f.sized {
			call.dstRebase = append(call.dstRebase, c)
		}
	}

	instr.EmitStackDown(ctx.Program)

	if !f.sized {
		f.incomplete = append(f.incomplete, call)
	}
	return nil
}

// SetStackSizeAndComplete fixes the function's frame size and retroactively
// patches every call emitted before it was known.
func (f *FuncRef) SetStackSizeAndComplete(size int, ctx *Context) {
	f.stackSize = size
	f.sized = true

	for _, call := range f.incomplete {
		call.create.SetStackSize(ctx.Program, size)
		for _, c := range call.srcRebase {
			c.SetSource(ctx.Program, address.OffsetIfStack(c.Source(), size))
		}
		for _, c := range call.dstRebase {
			c.SetDestination(ctx.Program, address.OffsetIfStack(c.Destination(), size))
		}
	}
	f.incomplete = nil
}

// IncompleteCalls returns the number of call sites still awaiting the
// frame size. It must be zero by the time compilation completes.
func (f *FuncRef) IncompleteCalls() int {
	return len(f.incomplete)
}
