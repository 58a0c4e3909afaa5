// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instr

// Boolean wire encoding: one byte, 0xFF for true, 0x00 for false. The
// runtime treats a byte equal to BoolTrue as true and anything else as
// false.
const (
	BoolTrue  byte = 0xFF
	BoolFalse byte = 0x00
)

// BoolSize is the byte length of an encoded boolean.
const BoolSize = 1
