// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exec provides the interpreter executing compiled Why images.
package exec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/why-lang/why/address"
	"github.com/why-lang/why/instr"
	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/word"
)

// ErrCancelled is returned by (*VM).Run when the cancellation flag is
// observed set between two instructions.
var ErrCancelled = errors.New("exec: program terminated by cancellation")

// UnknownOpcodeError is returned by (*VM).Run when the instruction stream
// yields an opcode outside the instruction set.
type UnknownOpcodeError uint16

func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("exec: unknown opcode %d", uint16(e))
}

// DefaultDumpDir is where the dump instruction serialises memory regions
// unless the host overrides it.
const DefaultDumpDir = "dump"

// VM is the execution context for a compiled image: the three-region
// runtime memory, the instruction pointer, and the opcode dispatch table.
type VM struct {
	mem *memory.Runtime
	pc  int

	cancel  *atomic.Bool
	out     io.Writer
	dumpDir string

	funcTable [instr.NumOpcodes]func()
}

// NewVM creates a VM around the given image. The program region is an
// immutable clone of the image bytes.
func NewVM(image *memory.Manager) *VM {
	vm := &VM{
		mem:     memory.NewRuntime(image),
		out:     os.Stdout,
		dumpDir: DefaultDumpDir,
	}
	vm.newFuncTable()
	return vm
}

// Memory returns the runtime memory, e.g. for inspection after Run.
func (vm *VM) Memory() *memory.Runtime {
	return vm.mem
}

// SetOutput redirects the view_memory family's output. Defaults to stdout.
func (vm *VM) SetOutput(w io.Writer) {
	vm.out = w
}

// SetDumpDir overrides the dump instruction's target directory.
func (vm *VM) SetDumpDir(dir string) {
	vm.dumpDir = dir
}

// SetCancel installs the cooperative cancellation flag. The flag is read
// with relaxed semantics between instructions; there is no preemption
// mid-instruction.
func (vm *VM) SetCancel(flag *atomic.Bool) {
	vm.cancel = flag
}

// Run executes the image from the start until the instruction pointer
// leaves the program. Runtime traps (unknown opcodes or address codes,
// out-of-range accesses, program-memory writes) surface as a single error.
// A non-zero stack level on clean exit is a warning, not an error.
func (vm *VM) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("exec: %v", r)
		}
	}()

	program := vm.mem.Program()
	start := time.Now()
	logger.Infof("executing program [%d bytes]", len(program))

	for vm.pc < len(program) {
		op := instr.DecodeOpcode(program, vm.pc)
		vm.pc += instr.CodeLength

		if !op.Valid() || vm.funcTable[op] == nil {
			return UnknownOpcodeError(op)
		}
		vm.funcTable[op]()

		if vm.cancel != nil && vm.cancel.Load() {
			return ErrCancelled
		}
	}

	logger.Infof("execution completed [%v]", time.Since(start))
	if level := vm.mem.Stack().Level(); level != 0 {
		logger.Warnf("program exited with stack level %d", level)
	}
	return nil
}

// StackLevel returns the number of live stack frames.
func (vm *VM) StackLevel() int {
	return vm.mem.Stack().Level()
}

func (vm *VM) newFuncTable() {
	vm.funcTable[instr.OpStackCreate] = vm.stackCreate
	vm.funcTable[instr.OpStackUp] = vm.stackUp
	vm.funcTable[instr.OpHeapAlloc] = vm.heapAlloc
	vm.funcTable[instr.OpCopy] = vm.copy
	vm.funcTable[instr.OpStackDown] = vm.stackDown
	vm.funcTable[instr.OpDump] = vm.dump
	vm.funcTable[instr.OpViewMemory] = vm.viewMemory
	vm.funcTable[instr.OpBinaryNot] = vm.binaryNot
	vm.funcTable[instr.OpBinaryAnd] = vm.binaryAnd
	vm.funcTable[instr.OpJumpIfNot] = vm.jumpIfNot
	vm.funcTable[instr.OpJump] = vm.jump
	vm.funcTable[instr.OpDynamicJump] = vm.dynamicJump
	vm.funcTable[instr.OpBinaryOr] = vm.binaryOr
	vm.funcTable[instr.OpAdd] = vm.add
	vm.funcTable[instr.OpEquality] = vm.equality
	vm.funcTable[instr.OpNotEqual] = vm.notEqual
	vm.funcTable[instr.OpViewMemoryDec] = vm.viewMemoryDec
	vm.funcTable[instr.OpHeapFree] = vm.heapFree
}

// fetchWord reads a word operand at the instruction pointer.
func (vm *VM) fetchWord() int {
	v := word.At(vm.mem.Program(), vm.pc)
	vm.pc += word.Size
	return v
}

// fetchAddress resolves an address operand at the instruction pointer.
func (vm *VM) fetchAddress(elemSize int) (int, memory.Location) {
	return address.Evaluate(&vm.pc, elemSize, vm.mem, memory.ProgramLoc)
}

// fetchData resolves an address operand and reads the bytes it locates.
func (vm *VM) fetchData(elemSize int) []byte {
	return address.EvaluateToData(&vm.pc, elemSize, vm.mem, memory.ProgramLoc)
}
