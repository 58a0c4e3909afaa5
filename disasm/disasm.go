// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm provides functions for disassembling compiled Why
// images. The traversal is read-only and never touches runtime memory:
// embedded addresses are skipped through their self-delimiting encoding.
package disasm

import (
	"fmt"
	"strings"

	"github.com/why-lang/why/address"
	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/word"
)

// Instr describes one decoded instruction: its opcode and the operand
// values read off the stream.
type Instr struct {
	// Addr is the byte offset of the opcode in the image.
	Addr int
	Op   instr.Opcode

	// Immediates are the operand values in stream order. Word operands
	// decode to int, address operands to address.Address.
	Immediates []interface{}
}

func (i Instr) String() string {
	if len(i.Immediates) == 0 {
		return fmt.Sprintf("[%05d] %s", i.Addr, i.Op)
	}
	parts := make([]string, 0, len(i.Immediates))
	for _, imm := range i.Immediates {
		parts = append(parts, fmt.Sprint(imm))
	}
	return fmt.Sprintf("[%05d] %s %s", i.Addr, i.Op, strings.Join(parts, " "))
}

// TruncatedError is returned when the stream ends inside an instruction.
type TruncatedError int

func (e TruncatedError) Error() string {
	return fmt.Sprintf("disasm: truncated instruction at offset %d", int(e))
}

// Disassemble decodes a whole image into instruction records.
func Disassemble(code []byte) ([]Instr, error) {
	var out []Instr
	pos := 0
	for pos < len(code) {
		ins, n, err := disassembleOne(code, pos)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
		pos += n
	}
	return out, nil
}

// disassembleOne decodes the instruction at pos, returning it and its
// total encoded length.
func disassembleOne(code []byte, pos int) (Instr, int, error) {
	if pos+instr.CodeLength > len(code) {
		return Instr{}, 0, TruncatedError(pos)
	}
	op := instr.DecodeOpcode(code, pos)
	ins := Instr{Addr: pos, Op: op}
	p := pos + instr.CodeLength

	readWord := func() (int, error) {
		if p+word.Size > len(code) {
			return 0, TruncatedError(pos)
		}
		v := word.At(code, p)
		p += word.Size
		return v, nil
	}
	readAddress := func(elemSize int) (address.Address, error) {
		if p >= len(code) {
			return nil, TruncatedError(pos)
		}
		n, err := address.EncodedLength(code, p, elemSize)
		if err != nil {
			return nil, err
		}
		if p+n > len(code) {
			return nil, TruncatedError(pos)
		}
		a, _, err := address.Decode(code, p, elemSize)
		if err != nil {
			return nil, err
		}
		p += n
		return a, nil
	}
	push := func(v interface{}) { ins.Immediates = append(ins.Immediates, v) }

	// The operand grammar is fixed per opcode.
	var grammarErr error
	words := func(n int) []int {
		vs := make([]int, n)
		for i := range vs {
			v, err := readWord()
			if err != nil {
				grammarErr = err
				return nil
			}
			vs[i] = v
			push(v)
		}
		return vs
	}
	addrs := func(n, elemSize int) {
		for i := 0; i < n; i++ {
			a, err := readAddress(elemSize)
			if err != nil {
				grammarErr = err
				return
			}
			push(a)
		}
	}

	switch op {
	case instr.OpStackCreate, instr.OpJump:
		words(1)
	case instr.OpStackUp, instr.OpStackDown, instr.OpDump:
		// no operands
	case instr.OpHeapAlloc:
		words(1)
		addrs(1, word.Size)
	case instr.OpCopy, instr.OpBinaryNot:
		if vs := words(1); vs != nil {
			addrs(2, vs[0])
		}
	case instr.OpBinaryAnd, instr.OpBinaryOr, instr.OpAdd,
		instr.OpEquality, instr.OpNotEqual:
		if vs := words(1); vs != nil {
			addrs(3, vs[0])
		}
	case instr.OpJumpIfNot:
		words(1)
		addrs(1, instr.BoolSize)
	case instr.OpDynamicJump, instr.OpHeapFree:
		addrs(1, word.Size)
	case instr.OpViewMemory, instr.OpViewMemoryDec:
		if vs := words(1); vs != nil {
			addrs(1, vs[0])
		}
	default:
		return Instr{}, 0, fmt.Errorf("disasm: unknown opcode %d at offset %d", uint16(op), pos)
	}
	if grammarErr != nil {
		return Instr{}, 0, grammarErr
	}
	return ins, p - pos, nil
}

// Listing renders a whole image as one instruction per line.
func Listing(code []byte) (string, error) {
	instrs, err := Disassemble(code)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, ins := range instrs {
		b.WriteString(ins.String())
		b.WriteByte('\n')
	}
	return b.String(), nil
}
