// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"

	"github.com/why-lang/why/symbols"
)

// classSelfName is the placeholder a class body registers itself under
// until the block closes and the real name is attached.
const classSelfName = "self"

// classBlock compiles one class body: the class registers itself in the
// enclosing scope and adopts every reference declared in its body as a
// dotted sub-reference.
type classBlock struct {
	baseHandler
	name    string
	handler *RefHandler
}

func newClassBlock() BlockHandler {
	return &classBlock{}
}

func (b *classBlock) OnEntry(ctx *Context, line []symbols.Symbol) error {
	if len(line) != 2 {
		return fmt.Errorf("class declaration must be formatted 'class [NAME]'")
	}
	name, ok := line[1].(symbols.Name)
	if !ok || len(name) != 1 {
		return fmt.Errorf("class names cannot have separators")
	}
	b.name = name[0]

	if err := ctx.Refs.RegisterWithOffset(ClassRef{}, []string{classSelfName}, 1); err != nil {
		return err
	}
	h, err := ctx.Refs.Get([]string{classSelfName})
	if err != nil {
		return err
	}
	b.handler = h
	return nil
}

func (b *classBlock) OnExit(ctx *Context, line []symbols.Symbol) (bool, error) {
	return true, b.OnForcedExit(ctx)
}

func (b *classBlock) OnForcedExit(ctx *Context) error {
	b.handler.Name = b.name
	// Adopt the body's references as members before the scope pops.
	b.handler.Children = append(b.handler.Children, ctx.Refs.top().handlers...)
	return nil
}
