// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dump serialises every region into dir: program.bin, stack-N.bin per
// frame, and heap/N.bin per heap frame.
func (r *Runtime) Dump(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "program.bin"), r.program, 0644); err != nil {
		return err
	}
	for i, f := range r.stack.frames {
		name := filepath.Join(dir, fmt.Sprintf("stack-%d.bin", i))
		if err := os.WriteFile(name, f, 0644); err != nil {
			return err
		}
	}
	heapDir := filepath.Join(dir, "heap")
	if err := os.MkdirAll(heapDir, 0755); err != nil {
		return err
	}
	for _, f := range r.heap.frames {
		name := filepath.Join(heapDir, fmt.Sprintf("%d.bin", f.id))
		if err := os.WriteFile(name, f.data, 0644); err != nil {
			return err
		}
	}
	logger.Infof("dumped memory regions to %q", dir)
	return nil
}
