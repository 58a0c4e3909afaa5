// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memory implements the two sides of the Why memory model: the
// append-only program image built during compilation, and the three-region
// runtime memory (program, stack, heap) the interpreter executes against.
package memory

// Manager is the append-only byte buffer all compiler output lands in.
// The write cursor is the buffer length; Position of the next emit point.
type Manager struct {
	buf []byte
}

// NewManager creates an empty program image.
func NewManager() *Manager {
	return &Manager{}
}

// ManagerFromBytes wraps an existing image, e.g. one loaded from disk.
func ManagerFromBytes(b []byte) *Manager {
	return &Manager{buf: b}
}

// Position returns the position after the last byte written.
func (m *Manager) Position() int {
	return len(m.buf)
}

// Bytes returns the image contents. The slice aliases the manager's buffer.
func (m *Manager) Bytes() []byte {
	return m.buf
}

// Append adds data to the end of the image and returns its position.
func (m *Manager) Append(data []byte) int {
	pos := len(m.buf)
	m.buf = append(m.buf, data...)
	return pos
}

// AppendByte adds a single byte to the image and returns its position.
func (m *Manager) AppendByte(b byte) int {
	pos := len(m.buf)
	m.buf = append(m.buf, b)
	return pos
}

// Reserve appends n zero bytes and returns their position.
func (m *Manager) Reserve(n int) int {
	pos := len(m.buf)
	m.buf = append(m.buf, make([]byte, n)...)
	return pos
}

// Overwrite replaces len(data) bytes at pos. The region must already have
// been written or reserved.
func (m *Manager) Overwrite(pos int, data []byte) {
	copy(m.buf[pos:pos+len(data)], data)
}
