// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
)

// DumpLines renders the classified symbol lines for diagnostics.
func DumpLines(w io.Writer, lines []Line) {
	conf := spew.ConfigState{Indent: "  ", DisableCapacities: true, DisablePointerAddresses: true}
	for _, l := range lines {
		if len(l.Symbols) == 0 {
			continue
		}
		fmt.Fprintf(w, "%4d @%d: ", l.Number, l.Indent)
		conf.Fdump(w, l.Symbols)
	}
}

// DumpLinesToDir writes the symbol line dump into dir/lines.txt.
func DumpLinesToDir(dir string, lines []Line) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "lines.txt"))
	if err != nil {
		return err
	}
	defer f.Close()
	DumpLines(f, lines)
	return nil
}
