// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address implements the address calculus: the tagged descriptors
// instructions use to locate bytes at runtime, their self-delimiting wire
// encoding, and their evaluation against live runtime memory.
package address

import (
	"fmt"
	"io"

	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/word"
)

// Leading code bytes of the encoded forms. They are wire protocol and
// must not change.
const (
	immediateCode byte = iota
	stackDirectCode
	stackIndirectCode
	heapDirectCode
	heapIndirectCode
	immediateIndexedCode
	stackIndexedCode
	heapIndexedCode
)

// InvalidCodeError is used while trapping the VM when a leading address
// code byte is not one of the known forms.
type InvalidCodeError byte

func (e InvalidCodeError) Error() string {
	return fmt.Sprintf("address: invalid address code %d", byte(e))
}

// Address describes how to locate bytes at runtime. The header of every
// encoded form is a single code byte; the payload is fully
// determined by it, making encoded addresses self-delimiting.
type Address interface {
	// Encode returns the wire form: code byte then payload.
	Encode() []byte

	fmt.Stringer
}

// Immediate is a constant inlined at the instruction's operand site in the
// program image.
type Immediate struct {
	Data []byte
}

// StackDirect is a byte offset into the stack region.
type StackDirect struct {
	Offset int
}

// StackIndirect is a stack offset whose bytes hold a further encoded
// address to follow.
type StackIndirect struct {
	Offset int
}

// HeapDirect locates bytes in a heap frame. Frame and Offset are
// sub-addresses naming words that hold the frame id and the intra-frame
// offset.
type HeapDirect struct {
	Frame, Offset Address
}

// HeapIndirect is like HeapDirect, but the located bytes hold a further
// encoded address to follow.
type HeapIndirect struct {
	Frame, Offset Address
}

// ImmediateIndexed computes base + index*elemSize inside the region the
// address itself is read from. Location and Offset are sub-addresses
// naming words that hold the base and the index.
type ImmediateIndexed struct {
	Location, Offset Address
}

// StackIndexed computes base + index*elemSize inside the stack region.
type StackIndexed struct {
	Location, Offset Address
}

// HeapIndexed computes base + index*elemSize inside the heap frame named
// by the Frame sub-address.
type HeapIndexed struct {
	Frame, Location, Offset Address
}

func (a Immediate) Encode() []byte {
	out := make([]byte, 0, 1+len(a.Data))
	out = append(out, immediateCode)
	return append(out, a.Data...)
}

func (a StackDirect) Encode() []byte {
	return word.Append([]byte{stackDirectCode}, a.Offset)
}

func (a StackIndirect) Encode() []byte {
	return word.Append([]byte{stackIndirectCode}, a.Offset)
}

func (a HeapDirect) Encode() []byte {
	out := append([]byte{heapDirectCode}, a.Frame.Encode()...)
	return append(out, a.Offset.Encode()...)
}

func (a HeapIndirect) Encode() []byte {
	out := append([]byte{heapIndirectCode}, a.Frame.Encode()...)
	return append(out, a.Offset.Encode()...)
}

func (a ImmediateIndexed) Encode() []byte {
	out := append([]byte{immediateIndexedCode}, a.Location.Encode()...)
	return append(out, a.Offset.Encode()...)
}

func (a StackIndexed) Encode() []byte {
	out := append([]byte{stackIndexedCode}, a.Location.Encode()...)
	return append(out, a.Offset.Encode()...)
}

func (a HeapIndexed) Encode() []byte {
	out := append([]byte{heapIndexedCode}, a.Frame.Encode()...)
	out = append(out, a.Location.Encode()...)
	return append(out, a.Offset.Encode()...)
}

func (a Immediate) String() string {
	return fmt.Sprintf("imm(% x)", a.Data)
}

func (a StackDirect) String() string {
	return fmt.Sprintf("stack[%d]", a.Offset)
}

func (a StackIndirect) String() string {
	return fmt.Sprintf("stack[[%d]]", a.Offset)
}

func (a HeapDirect) String() string {
	return fmt.Sprintf("heap[%s][%s]", a.Frame, a.Offset)
}

func (a HeapIndirect) String() string {
	return fmt.Sprintf("heap[%s][[%s]]", a.Frame, a.Offset)
}

func (a ImmediateIndexed) String() string {
	return fmt.Sprintf("imm-indexed(%s + %s*elem)", a.Location, a.Offset)
}

func (a StackIndexed) String() string {
	return fmt.Sprintf("stack-indexed(%s + %s*elem)", a.Location, a.Offset)
}

func (a HeapIndexed) String() string {
	return fmt.Sprintf("heap-indexed[%s](%s + %s*elem)", a.Frame, a.Location, a.Offset)
}

// ImmediateWord returns an Immediate holding v as a word.
func ImmediateWord(v int) Immediate {
	return Immediate{Data: word.Encode(v)}
}

// IsImmediate reports whether a is an Immediate.
func IsImmediate(a Address) bool {
	_, ok := a.(Immediate)
	return ok
}

// EncodedLength returns the encoded size of the address starting at pos in
// buf. elemSize is the size hint consumed by an Immediate leaf; indexed
// forms recurse with a word-size hint for their sub-addresses. The
// traversal never touches runtime memory.
func EncodedLength(buf []byte, pos, elemSize int) (int, error) {
	if pos >= len(buf) {
		return 0, io.ErrUnexpectedEOF
	}
	switch buf[pos] {
	case immediateCode:
		return 1 + elemSize, nil
	case stackDirectCode, stackIndirectCode:
		return 1 + word.Size, nil
	case heapDirectCode, heapIndirectCode, immediateIndexedCode, stackIndexedCode:
		p := pos + 1
		for i := 0; i < 2; i++ {
			n, err := EncodedLength(buf, p, word.Size)
			if err != nil {
				return 0, err
			}
			p += n
		}
		return p - pos, nil
	case heapIndexedCode:
		p := pos + 1
		for i := 0; i < 3; i++ {
			n, err := EncodedLength(buf, p, word.Size)
			if err != nil {
				return 0, err
			}
			p += n
		}
		return p - pos, nil
	}
	return 0, InvalidCodeError(buf[pos])
}

// Memory is the subset of runtime memory the calculus reads through.
type Memory interface {
	GetByte(loc memory.Location, off int) byte
	GetData(loc memory.Location, off, length int) []byte
}

// Evaluate resolves the address encoded at *cursor inside src, advancing
// the cursor past it, and returns where the addressed bytes live. It is a
// pure function of the encoded bytes, the source location, the expected
// element size and the runtime memory state. Unknown code bytes trap with
// InvalidCodeError.
func Evaluate(cursor *int, elemSize int, mem Memory, src memory.Location) (int, memory.Location) {
	code := mem.GetByte(src, *cursor)
	*cursor++

	switch code {
	case immediateCode:
		pos := *cursor
		*cursor += elemSize
		return pos, src

	case stackDirectCode:
		off := word.Decode(mem.GetData(src, *cursor, word.Size))
		*cursor += word.Size
		return off, memory.StackLoc

	case stackIndirectCode:
		next := word.Decode(mem.GetData(src, *cursor, word.Size))
		*cursor += word.Size
		inner := next
		return Evaluate(&inner, elemSize, mem, memory.StackLoc)

	case heapDirectCode:
		frame := evaluateWord(cursor, mem, src)
		off := evaluateWord(cursor, mem, src)
		return off, memory.HeapLoc(frame)

	case heapIndirectCode:
		frame := evaluateWord(cursor, mem, src)
		off := evaluateWord(cursor, mem, src)
		inner := off
		return Evaluate(&inner, elemSize, mem, memory.HeapLoc(frame))

	case immediateIndexedCode:
		base := evaluateWord(cursor, mem, src)
		index := evaluateWord(cursor, mem, src)
		return base + index*elemSize, src

	case stackIndexedCode:
		base := evaluateWord(cursor, mem, src)
		index := evaluateWord(cursor, mem, src)
		return base + index*elemSize, memory.StackLoc

	case heapIndexedCode:
		frame := evaluateWord(cursor, mem, src)
		base := evaluateWord(cursor, mem, src)
		index := evaluateWord(cursor, mem, src)
		return base + index*elemSize, memory.HeapLoc(frame)
	}
	panic(InvalidCodeError(code))
}

// evaluateWord resolves a word-sized sub-address and reads the word it
// points at.
func evaluateWord(cursor *int, mem Memory, src memory.Location) int {
	off, loc := Evaluate(cursor, word.Size, mem, src)
	return word.Decode(mem.GetData(loc, off, word.Size))
}

// EvaluateToData resolves the address encoded at *cursor and returns the
// elemSize bytes it locates.
func EvaluateToData(cursor *int, elemSize int, mem Memory, src memory.Location) []byte {
	off, loc := Evaluate(cursor, elemSize, mem, src)
	return mem.GetData(loc, off, elemSize)
}

// Decode parses the address encoded at pos in buf back into its symbolic
// form. elemSize is the Immediate payload hint, as for EncodedLength.
func Decode(buf []byte, pos, elemSize int) (Address, int, error) {
	if pos >= len(buf) {
		return nil, 0, io.ErrUnexpectedEOF
	}
	switch buf[pos] {
	case immediateCode:
		data := make([]byte, elemSize)
		copy(data, buf[pos+1:pos+1+elemSize])
		return Immediate{Data: data}, 1 + elemSize, nil
	case stackDirectCode:
		return StackDirect{Offset: word.At(buf, pos+1)}, 1 + word.Size, nil
	case stackIndirectCode:
		return StackIndirect{Offset: word.At(buf, pos+1)}, 1 + word.Size, nil
	case heapDirectCode, heapIndirectCode, immediateIndexedCode, stackIndexedCode, heapIndexedCode:
		code := buf[pos]
		count := 2
		if code == heapIndexedCode {
			count = 3
		}
		subs := make([]Address, count)
		p := pos + 1
		for i := range subs {
			sub, n, err := Decode(buf, p, word.Size)
			if err != nil {
				return nil, 0, err
			}
			subs[i] = sub
			p += n
		}
		total := p - pos
		switch code {
		case heapDirectCode:
			return HeapDirect{Frame: subs[0], Offset: subs[1]}, total, nil
		case heapIndirectCode:
			return HeapIndirect{Frame: subs[0], Offset: subs[1]}, total, nil
		case immediateIndexedCode:
			return ImmediateIndexed{Location: subs[0], Offset: subs[1]}, total, nil
		case stackIndexedCode:
			return StackIndexed{Location: subs[0], Offset: subs[1]}, total, nil
		default:
			return HeapIndexed{Frame: subs[0], Location: subs[1], Offset: subs[2]}, total, nil
		}
	}
	return nil, 0, InvalidCodeError(buf[pos])
}

// OffsetIfStack re-bases a into a frame delta bytes further down the
// linearised stack. Stack offsets move; immediates are data and stay,
// except the base of a StackIndexed, whose immediate value is itself a
// stack offset.
func OffsetIfStack(a Address, delta int) Address {
	switch v := a.(type) {
	case StackDirect:
		return StackDirect{Offset: v.Offset + delta}
	case StackIndirect:
		return StackIndirect{Offset: v.Offset + delta}
	case StackIndexed:
		return StackIndexed{
			Location: offsetIndexBase(v.Location, delta),
			Offset:   OffsetIfStack(v.Offset, delta),
		}
	case HeapDirect:
		return HeapDirect{Frame: OffsetIfStack(v.Frame, delta), Offset: OffsetIfStack(v.Offset, delta)}
	case HeapIndirect:
		return HeapIndirect{Frame: OffsetIfStack(v.Frame, delta), Offset: OffsetIfStack(v.Offset, delta)}
	case HeapIndexed:
		return HeapIndexed{
			Frame:    OffsetIfStack(v.Frame, delta),
			Location: OffsetIfStack(v.Location, delta),
			Offset:   OffsetIfStack(v.Offset, delta),
		}
	case ImmediateIndexed:
		return ImmediateIndexed{Location: v.Location, Offset: OffsetIfStack(v.Offset, delta)}
	default:
		return a
	}
}

// offsetIndexBase shifts the base sub-address of a stack-indexed form. An
// immediate base holds a stack offset by value, so the value moves too.
func offsetIndexBase(a Address, delta int) Address {
	if imm, ok := a.(Immediate); ok && len(imm.Data) == word.Size {
		return ImmediateWord(word.Decode(imm.Data) + delta)
	}
	return OffsetIfStack(a, delta)
}
