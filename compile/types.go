// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"

	"github.com/why-lang/why/address"
	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/symbols"
)

// Type is the protocol every primitive type implements. The expression
// evaluator talks only to this interface; types are the only producers of
// instructions during expression evaluation.
type Type interface {
	// Symbol returns the type's tag.
	Symbol() symbols.TypeSymbol

	// Allocate reserves the type's bytes in the current stack frame and
	// records the resulting address.
	Allocate(sizes *StackSizes)

	// Constant encodes a literal into an immediate address. Fails for a
	// literal kind the type does not accept.
	Constant(lit symbols.Literal) (address.Address, error)

	// RuntimeCopyFrom emits a copy of another value of a compatible
	// type into this one.
	RuntimeCopyFrom(other Type, pm *memory.Manager) (*instr.Copy, error)

	// RuntimeCopyFromLiteral emits a copy of an immediate literal into
	// this value.
	RuntimeCopyFromLiteral(lit symbols.Literal, pm *memory.Manager) (*instr.Copy, error)

	// PrefixResultTypes lists the result types a prefix operator can
	// produce on this type; empty means unsupported.
	PrefixResultTypes(op symbols.Operator) []symbols.TypeSymbol

	// BinaryResultTypes lists the result types an operator can produce
	// between this type and rhs; empty means unsupported.
	BinaryResultTypes(op symbols.Operator, rhs symbols.TypeSymbol) []symbols.TypeSymbol

	// OperatePrefix emits the instructions realising a prefix operation
	// into dst.
	OperatePrefix(op symbols.Operator, dst Type, pm *memory.Manager) error

	// Operate emits the instructions realising a binary operation into
	// dst.
	Operate(op symbols.Operator, rhs, dst Type, pm *memory.Manager) error

	// Address returns the value's address. Nil until allocated.
	Address() address.Address

	// Length returns the value's size in bytes.
	Length() int

	// Duplicate returns a copy of the value object sharing its address.
	Duplicate() Type

	// WithAddress returns a copy of the value object viewing another
	// address, e.g. an indexed element.
	WithAddress(a address.Address) Type
}

// NewType instantiates an unallocated value of the named type.
func NewType(sym symbols.TypeSymbol) (Type, error) {
	switch sym {
	case symbols.TypeBoolean:
		return &boolType{}, nil
	case symbols.TypeCharacter:
		return &charType{}, nil
	case symbols.TypePointer, symbols.TypeInteger:
		return &wordType{sym: sym}, nil
	}
	return nil, fmt.Errorf("type %s cannot be instantiated", sym)
}

// DefaultTypeForLiteral returns the type symbol a bare literal defaults
// to.
func DefaultTypeForLiteral(lit symbols.Literal) (symbols.TypeSymbol, error) {
	switch l := lit.(type) {
	case symbols.BoolLit:
		return symbols.TypeBoolean, nil
	case symbols.IntLit:
		return symbols.TypeInteger, nil
	case symbols.StrLit:
		if len(l) == 1 {
			return symbols.TypeCharacter, nil
		}
		return 0, fmt.Errorf("no default type for string literal %s", l)
	}
	return 0, fmt.Errorf("no default type for literal %s", lit)
}

// newLiteralType allocates a value of the literal's default type and
// copies the literal into it.
func newLiteralType(lit symbols.Literal, ctx *Context) (Type, error) {
	sym, err := DefaultTypeForLiteral(lit)
	if err != nil {
		return nil, err
	}
	t, err := NewType(sym)
	if err != nil {
		return nil, err
	}
	t.Allocate(ctx.Sizes)
	if _, err := t.RuntimeCopyFromLiteral(lit, ctx.Program); err != nil {
		return nil, err
	}
	return t, nil
}

// isWordClass reports whether sym is one of the word-sized numeric types.
func isWordClass(sym symbols.TypeSymbol) bool {
	return sym == symbols.TypePointer || sym == symbols.TypeInteger
}

// compatible reports whether a value of type b can stand in for type a:
// equal tags, or both word-sized numerics.
func compatible(a, b symbols.TypeSymbol) bool {
	return a == b || (isWordClass(a) && isWordClass(b))
}

func opNotImplemented(op symbols.Operator, lhs symbols.TypeSymbol, rhs *symbols.TypeSymbol) error {
	if rhs != nil {
		return fmt.Errorf("'%s' operator not implemented for '%s' and '%s'", op, lhs, *rhs)
	}
	return fmt.Errorf("'%s' operator not implemented for '%s'", op, lhs)
}

func literalNotImplemented(lit symbols.Literal, t symbols.TypeSymbol) error {
	return fmt.Errorf("literal %s not supported for %s", lit, t)
}

func copyNotImplemented(from, to symbols.TypeSymbol) error {
	return fmt.Errorf("copy not implemented from type '%s' to '%s'", from, to)
}

// containsSymbol reports whether syms contains sym.
func containsSymbol(syms []symbols.TypeSymbol, sym symbols.TypeSymbol) bool {
	for _, s := range syms {
		if s == sym {
			return true
		}
	}
	return false
}
