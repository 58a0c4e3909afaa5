// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"

	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/symbols"
)

// BlockHandler is the contract every block kind implements. A handler may
// hold emit-time state such as a forward-patch site.
type BlockHandler interface {
	// OnEntry is called when the block's opening line is processed.
	OnEntry(ctx *Context, line []symbols.Symbol) error

	// OnExit is called when indentation returns to the block's own
	// level. Returning false means the block consumed the line and
	// stays open (an if consuming its elif).
	OnExit(ctx *Context, line []symbols.Symbol) (bool, error)

	// OnForcedExit is called when indentation drops past the block;
	// there is no option to stay open.
	OnForcedExit(ctx *Context) error

	// OnBreak handles a break statement; false defers to an outer
	// block.
	OnBreak(ctx *Context) (bool, error)

	// OnContinue handles a continue statement; false defers to an
	// outer block.
	OnContinue(ctx *Context) (bool, error)

	// UpdateSubBlock is called after every processed line with the
	// block kind the line opened, or nil.
	UpdateSubBlock(kind *symbols.BlockKind)
}

// baseHandler provides the default break/continue/sub-block behaviour.
type baseHandler struct{}

func (baseHandler) OnBreak(*Context) (bool, error)    { return false, nil }
func (baseHandler) OnContinue(*Context) (bool, error) { return false, nil }
func (baseHandler) UpdateSubBlock(*symbols.BlockKind) {}

// Coordinator owns the handler stack, the reference scopes and the frame
// layout counters, and structures code emission so that every frame
// creation is paired with destruction and every forward branch is
// eventually patched.
type Coordinator struct {
	stack []BlockHandler
	refs  *RefStack
	sizes StackSizes

	completed bool
}

// NewCoordinator creates a coordinator with the global reference scope.
func NewCoordinator() *Coordinator {
	return &Coordinator{refs: NewRefStack()}
}

// Context builds the handler context around the image under construction.
func (c *Coordinator) Context(pm *memory.Manager) *Context {
	return &Context{Program: pm, Refs: c.refs, Sizes: &c.sizes}
}

// Refs returns the reference stack.
func (c *Coordinator) Refs() *RefStack {
	return c.refs
}

// Indentation returns the current block depth.
func (c *Coordinator) Indentation() int {
	return len(c.stack)
}

// AddHandler opens a block: a fresh reference scope, the handler's entry
// hook, and a sub-block notification to the enclosing handlers.
func (c *Coordinator) AddHandler(h BlockHandler, ctx *Context, kind symbols.BlockKind, line []symbols.Symbol) error {
	for _, parent := range c.stack {
		parent.UpdateSubBlock(&kind)
	}
	c.refs.Push()
	err := h.OnEntry(ctx, line)
	c.stack = append(c.stack, h)
	return err
}

// NotifyLine tells every open handler a non-block line was processed.
func (c *Coordinator) NotifyLine() {
	for _, h := range c.stack {
		h.UpdateSubBlock(nil)
	}
}

// ExitHandler offers line to the top handler as a block-closing line.
// True means the block closed and its scope was discarded.
func (c *Coordinator) ExitHandler(ctx *Context, line []symbols.Symbol) (bool, error) {
	if len(c.stack) == 0 {
		panic("compile: exit called with no block handler on the stack")
	}
	h := c.stack[len(c.stack)-1]
	closed, err := h.OnExit(ctx, line)
	if err != nil {
		return false, err
	}
	if closed {
		c.stack = c.stack[:len(c.stack)-1]
		c.refs.Pop()
	}
	return closed, nil
}

// ForceExitHandler closes the top handler unconditionally.
func (c *Coordinator) ForceExitHandler(ctx *Context) error {
	if len(c.stack) == 0 {
		panic("compile: forced exit called with no block handler on the stack")
	}
	h := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	err := h.OnForcedExit(ctx)
	c.refs.Pop()
	return err
}

// Break routes a break statement to the innermost breakable block.
func (c *Coordinator) Break(ctx *Context) error {
	for i := len(c.stack) - 1; i >= 0; i-- {
		ok, err := c.stack[i].OnBreak(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return fmt.Errorf("none of the enclosing blocks support breaking")
}

// Continue routes a continue statement to the innermost continuable
// block.
func (c *Coordinator) Continue(ctx *Context) error {
	for i := len(c.stack) - 1; i >= 0; i-- {
		ok, err := c.stack[i].OnContinue(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return fmt.Errorf("none of the enclosing blocks support continuing")
}

// Complete marks compilation finished. Every block must have closed.
func (c *Coordinator) Complete() error {
	if len(c.stack) != 0 {
		panic(fmt.Sprintf("compile: coordinator completed with %d open blocks", len(c.stack)))
	}
	c.completed = true
	return nil
}
