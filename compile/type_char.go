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

// charSize is the byte length of a character.
const charSize = 1

// charType is the one-byte character.
type charType struct {
	addr address.Address
}

func (t *charType) Symbol() symbols.TypeSymbol {
	return symbols.TypeCharacter
}

func (t *charType) Allocate(sizes *StackSizes) {
	t.addr = address.StackDirect{Offset: sizes.Increment(charSize)}
}

func (t *charType) Constant(lit symbols.Literal) (address.Address, error) {
	switch l := lit.(type) {
	case symbols.StrLit:
		if len(l) != 1 {
			return nil, fmt.Errorf("chars can only be assigned from string literals of length 1")
		}
		return address.Immediate{Data: []byte{l[0]}}, nil
	case symbols.IntLit:
		if l < 0 || l > 255 {
			return nil, fmt.Errorf("chars can be assigned from integer literals 0-255 only")
		}
		return address.Immediate{Data: []byte{byte(l)}}, nil
	}
	return nil, literalNotImplemented(lit, t.Symbol())
}

func (t *charType) RuntimeCopyFrom(other Type, pm *memory.Manager) (*instr.Copy, error) {
	if other.Symbol() != symbols.TypeCharacter {
		return nil, copyNotImplemented(other.Symbol(), t.Symbol())
	}
	return instr.EmitCopy(pm, other.Address(), t.addr, charSize)
}

func (t *charType) RuntimeCopyFromLiteral(lit symbols.Literal, pm *memory.Manager) (*instr.Copy, error) {
	c, err := t.Constant(lit)
	if err != nil {
		return nil, err
	}
	return instr.EmitCopy(pm, c, t.addr, charSize)
}

func (t *charType) PrefixResultTypes(op symbols.Operator) []symbols.TypeSymbol {
	return nil
}

func (t *charType) BinaryResultTypes(op symbols.Operator, rhs symbols.TypeSymbol) []symbols.TypeSymbol {
	if rhs != symbols.TypeCharacter {
		return nil
	}
	switch op {
	case symbols.OpEqual, symbols.OpNotEqual:
		return []symbols.TypeSymbol{symbols.TypeBoolean}
	}
	return nil
}

func (t *charType) OperatePrefix(op symbols.Operator, dst Type, pm *memory.Manager) error {
	return opNotImplemented(op, t.Symbol(), nil)
}

func (t *charType) Operate(op symbols.Operator, rhs, dst Type, pm *memory.Manager) error {
	rhsSym := rhs.Symbol()
	if len(t.BinaryResultTypes(op, rhsSym)) == 0 {
		return opNotImplemented(op, t.Symbol(), &rhsSym)
	}
	switch op {
	case symbols.OpEqual:
		instr.EmitEquality(pm, charSize, t.addr, rhs.Address(), dst.Address())
	case symbols.OpNotEqual:
		instr.EmitNotEqual(pm, charSize, t.addr, rhs.Address(), dst.Address())
	}
	return nil
}

func (t *charType) Address() address.Address {
	return t.addr
}

func (t *charType) Length() int {
	return charSize
}

func (t *charType) Duplicate() Type {
	return &charType{addr: t.addr}
}

func (t *charType) WithAddress(a address.Address) Type {
	return &charType{addr: a}
}
