// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/why-lang/why/word"
)

// ImageExt is the file extension of a compiled image.
const ImageExt = ".cwhy"

// ImageFileName returns the file name an image with the given base name is
// saved under. The word width is embedded for the operator's benefit; the
// loader ignores it.
func ImageFileName(name string) string {
	return fmt.Sprintf("%s - %d%s", name, word.Bits, ImageExt)
}

// Save writes the image verbatim to the file ImageFileName(name) and
// returns the file name written.
func (m *Manager) Save(name string) (string, error) {
	fname := ImageFileName(name)
	if err := os.WriteFile(fname, m.buf, 0644); err != nil {
		return fname, err
	}
	logger.WithField("bytes", len(m.buf)).Infof("saved compiled image %q", fname)
	return fname, nil
}

// LoadImage reads a compiled image from path. The file is memory-mapped
// read-only and copied into a private buffer so the returned image stays
// valid after the mapping is released.
func LoadImage(path string) (*Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 {
		return NewManager(), nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer m.Unmap()

	buf := make([]byte, len(m))
	copy(buf, m)
	logger.WithField("bytes", len(buf)).Infof("loaded compiled image %q", path)
	return ManagerFromBytes(buf), nil
}
