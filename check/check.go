// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package check verifies finished images before they are persisted or
// executed: the instruction stream must decode end to end, and no forward
// branch may still hold its unpatched placeholder destination.
package check

import (
	"github.com/pkg/errors"

	"github.com/why-lang/why/disasm"
	"github.com/why-lang/why/instr"
)

// VerifyImage walks the disassembly of code and reports the first defect
// found. A destination of zero on a jump is a placeholder left behind by
// an incomplete forward patch: offset zero holds the image's first
// instruction (a block's stack_create or a function's skip jump), which
// no compiled jump targets.
func VerifyImage(code []byte) error {
	instrs, err := disasm.Disassemble(code)
	if err != nil {
		return errors.Wrap(err, "check: image does not decode")
	}
	for _, ins := range instrs {
		switch ins.Op {
		case instr.OpJump, instr.OpJumpIfNot:
			dest := ins.Immediates[0].(int)
			if dest == 0 {
				return errors.Errorf("check: unpatched %s at offset %d", ins.Op, ins.Addr)
			}
			if dest > len(code) {
				return errors.Errorf("check: %s at offset %d targets %d beyond the image", ins.Op, ins.Addr, dest)
			}
		}
	}
	return nil
}
