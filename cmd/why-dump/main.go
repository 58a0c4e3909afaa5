// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command why-dump prints the disassembly of a compiled Why image, or of
// a source file after compiling it in memory.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/why-lang/why/check"
	"github.com/why-lang/why/compile"
	"github.com/why-lang/why/disasm"
	"github.com/why-lang/why/memory"
)

func main() {
	app := &cli.App{
		Name:      "why-dump",
		Usage:     "disassemble compiled Why images",
		ArgsUsage: "file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verify-image",
				Usage: "verify the image before disassembling it",
			},
		},
		Action: dump,
	}

	if err := app.Run(os.Args); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func dump(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing input file")
	}
	input := c.Args().Get(0)

	var image *memory.Manager
	switch strings.ToLower(filepath.Ext(input)) {
	case ".why":
		src, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		image, err = compile.ProcessSource(string(src))
		if err != nil {
			return err
		}
	case memory.ImageExt:
		var err error
		image, err = memory.LoadImage(input)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unrecognised extension on input file %q", input)
	}

	if c.Bool("verify-image") {
		if err := check.VerifyImage(image.Bytes()); err != nil {
			return err
		}
	}

	listing, err := disasm.Listing(image.Bytes())
	if err != nil {
		return err
	}
	fmt.Print(listing)
	return nil
}
