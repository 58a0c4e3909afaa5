// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package word provides functions for reading and writing platform-width
// unsigned integers in little-endian byte order. The compiled image stores
// every size, offset and jump destination as one such word, so the word
// width of the compiler and the runtime must agree.
package word

import (
	"encoding/binary"
	"strconv"
)

// Size is the number of bytes in a platform word.
const Size = strconv.IntSize / 8

// Bits is the platform word width in bits.
const Bits = strconv.IntSize

// Decode reads a word from the start of b.
func Decode(b []byte) int {
	if Size == 4 {
		return int(binary.LittleEndian.Uint32(b))
	}
	return int(binary.LittleEndian.Uint64(b))
}

// At reads a word from b at offset pos.
func At(b []byte, pos int) int {
	return Decode(b[pos : pos+Size])
}

// Put writes v into the first Size bytes of b.
func Put(b []byte, v int) {
	if Size == 4 {
		binary.LittleEndian.PutUint32(b, uint32(v))
		return
	}
	binary.LittleEndian.PutUint64(b, uint64(v))
}

// Encode returns v as a freshly allocated word.
func Encode(v int) []byte {
	b := make([]byte, Size)
	Put(b, v)
	return b
}

// Append appends the encoding of v to dst and returns the extended slice.
func Append(dst []byte, v int) []byte {
	return append(dst, Encode(v)...)
}
