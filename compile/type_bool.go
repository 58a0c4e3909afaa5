// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"github.com/why-lang/why/address"
	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/symbols"
)

// boolType is the one-byte boolean. True is 0xFF, false is 0x00.
type boolType struct {
	addr address.Address
}

func (t *boolType) Symbol() symbols.TypeSymbol {
	return symbols.TypeBoolean
}

func (t *boolType) Allocate(sizes *StackSizes) {
	t.addr = address.StackDirect{Offset: sizes.Increment(instr.BoolSize)}
}

func (t *boolType) Constant(lit symbols.Literal) (address.Address, error) {
	b, ok := lit.(symbols.BoolLit)
	if !ok {
		return nil, literalNotImplemented(lit, t.Symbol())
	}
	v := instr.BoolFalse
	if b {
		v = instr.BoolTrue
	}
	return address.Immediate{Data: []byte{v}}, nil
}

func (t *boolType) RuntimeCopyFrom(other Type, pm *memory.Manager) (*instr.Copy, error) {
	if other.Symbol() != symbols.TypeBoolean {
		return nil, copyNotImplemented(other.Symbol(), t.Symbol())
	}
	return instr.EmitCopy(pm, other.Address(), t.addr, instr.BoolSize)
}

func (t *boolType) RuntimeCopyFromLiteral(lit symbols.Literal, pm *memory.Manager) (*instr.Copy, error) {
	c, err := t.Constant(lit)
	if err != nil {
		return nil, err
	}
	return instr.EmitCopy(pm, c, t.addr, instr.BoolSize)
}

func (t *boolType) PrefixResultTypes(op symbols.Operator) []symbols.TypeSymbol {
	if op == symbols.OpNot {
		return []symbols.TypeSymbol{symbols.TypeBoolean}
	}
	return nil
}

func (t *boolType) BinaryResultTypes(op symbols.Operator, rhs symbols.TypeSymbol) []symbols.TypeSymbol {
	if rhs != symbols.TypeBoolean {
		return nil
	}
	switch op {
	case symbols.OpAnd, symbols.OpOr, symbols.OpEqual, symbols.OpNotEqual:
		return []symbols.TypeSymbol{symbols.TypeBoolean}
	}
	return nil
}

func (t *boolType) OperatePrefix(op symbols.Operator, dst Type, pm *memory.Manager) error {
	if op != symbols.OpNot || dst.Symbol() != symbols.TypeBoolean {
		return opNotImplemented(op, t.Symbol(), nil)
	}
	instr.EmitBinaryNot(pm, instr.BoolSize, t.addr, dst.Address())
	return nil
}

func (t *boolType) Operate(op symbols.Operator, rhs, dst Type, pm *memory.Manager) error {
	rhsSym := rhs.Symbol()
	if len(t.BinaryResultTypes(op, rhsSym)) == 0 {
		return opNotImplemented(op, t.Symbol(), &rhsSym)
	}
	switch op {
	case symbols.OpAnd:
		instr.EmitBinaryAnd(pm, instr.BoolSize, t.addr, rhs.Address(), dst.Address())
	case symbols.OpOr:
		instr.EmitBinaryOr(pm, instr.BoolSize, t.addr, rhs.Address(), dst.Address())
	case symbols.OpEqual:
		instr.EmitEquality(pm, instr.BoolSize, t.addr, rhs.Address(), dst.Address())
	case symbols.OpNotEqual:
		instr.EmitNotEqual(pm, instr.BoolSize, t.addr, rhs.Address(), dst.Address())
	}
	return nil
}

func (t *boolType) Address() address.Address {
	return t.addr
}

func (t *boolType) Length() int {
	return instr.BoolSize
}

func (t *boolType) Duplicate() Type {
	return &boolType{addr: t.addr}
}

func (t *boolType) WithAddress(a address.Address) Type {
	return &boolType{addr: a}
}
