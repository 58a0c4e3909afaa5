// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"
	"math"

	"github.com/why-lang/why/address"
	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/symbols"
	"github.com/why-lang/why/word"
)

// wordType is the platform-width unsigned numeric backing both the int
// and ptr type symbols; the two share size and operation set.
type wordType struct {
	sym  symbols.TypeSymbol
	addr address.Address
}

func (t *wordType) Symbol() symbols.TypeSymbol {
	return t.sym
}

func (t *wordType) Allocate(sizes *StackSizes) {
	t.addr = address.StackDirect{Offset: sizes.Increment(word.Size)}
}

func (t *wordType) Constant(lit symbols.Literal) (address.Address, error) {
	v, ok := lit.(symbols.IntLit)
	if !ok {
		return nil, literalNotImplemented(lit, t.Symbol())
	}
	if v < 0 || (word.Size == 4 && int64(v) > math.MaxUint32) {
		return nil, fmt.Errorf("the value %d cannot fit into a %s (it must be non-negative and fit the platform word width of %d bytes)", int64(v), t.sym, word.Size)
	}
	return address.ImmediateWord(int(v)), nil
}

func (t *wordType) RuntimeCopyFrom(other Type, pm *memory.Manager) (*instr.Copy, error) {
	if !isWordClass(other.Symbol()) {
		return nil, copyNotImplemented(other.Symbol(), t.Symbol())
	}
	return instr.EmitCopy(pm, other.Address(), t.addr, word.Size)
}

func (t *wordType) RuntimeCopyFromLiteral(lit symbols.Literal, pm *memory.Manager) (*instr.Copy, error) {
	c, err := t.Constant(lit)
	if err != nil {
		return nil, err
	}
	return instr.EmitCopy(pm, c, t.addr, word.Size)
}

func (t *wordType) PrefixResultTypes(op symbols.Operator) []symbols.TypeSymbol {
	return nil
}

func (t *wordType) BinaryResultTypes(op symbols.Operator, rhs symbols.TypeSymbol) []symbols.TypeSymbol {
	if !isWordClass(rhs) {
		return nil
	}
	switch op {
	case symbols.OpAdd:
		return []symbols.TypeSymbol{t.sym}
	case symbols.OpEqual, symbols.OpNotEqual:
		return []symbols.TypeSymbol{symbols.TypeBoolean}
	}
	return nil
}

func (t *wordType) OperatePrefix(op symbols.Operator, dst Type, pm *memory.Manager) error {
	return opNotImplemented(op, t.Symbol(), nil)
}

func (t *wordType) Operate(op symbols.Operator, rhs, dst Type, pm *memory.Manager) error {
	rhsSym := rhs.Symbol()
	if len(t.BinaryResultTypes(op, rhsSym)) == 0 {
		return opNotImplemented(op, t.Symbol(), &rhsSym)
	}
	switch op {
	case symbols.OpAdd:
		instr.EmitAdd(pm, word.Size, t.addr, rhs.Address(), dst.Address())
	case symbols.OpEqual:
		instr.EmitEquality(pm, word.Size, t.addr, rhs.Address(), dst.Address())
	case symbols.OpNotEqual:
		instr.EmitNotEqual(pm, word.Size, t.addr, rhs.Address(), dst.Address())
	}
	return nil
}

func (t *wordType) Address() address.Address {
	return t.addr
}

func (t *wordType) Length() int {
	return word.Size
}

func (t *wordType) Duplicate() Type {
	return &wordType{sym: t.sym, addr: t.addr}
}

func (t *wordType) WithAddress(a address.Address) Type {
	return &wordType{sym: t.sym, addr: a}
}
