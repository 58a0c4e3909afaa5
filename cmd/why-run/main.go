// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command why-run compiles and executes Why programs: a .why source file
// is compiled, saved and executed; a .cwhy image is loaded and executed.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/why-lang/why/check"
	"github.com/why-lang/why/compile"
	"github.com/why-lang/why/exec"
	"github.com/why-lang/why/lex"
	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/word"
)

// defaultInput is the source file compiled when no argument is given.
const defaultInput = "main.why"

var (
	failf    = color.New(color.FgRed, color.Bold).FprintfFunc()
	succeedf = color.New(color.FgGreen, color.Bold).FprintfFunc()
)

func main() {
	app := &cli.App{
		Name:      "why-run",
		Usage:     "compile and execute Why programs",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "verify-image",
				Usage: "verify the image before executing it",
			},
			&cli.BoolFlag{
				Name:  "no-exec",
				Usage: "compile without executing",
			},
			&cli.StringFlag{
				Name:  "output",
				Value: "Compiled",
				Usage: "base name of the saved image",
			},
			&cli.StringFlag{
				Name:  "dump-dir",
				Value: exec.DefaultDumpDir,
				Usage: "directory the dump instruction and -dump-lines write to",
			},
			&cli.BoolFlag{
				Name:  "dump-lines",
				Usage: "dump the classified symbol lines",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		failf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		memory.SetDebugMode(true)
		exec.SetDebugMode(true)
		compile.SetDebugMode(true)
		logrus.SetLevel(logrus.DebugLevel)
	}

	input := defaultInput
	if c.NArg() >= 1 {
		input = c.Args().Get(0)
	}
	logrus.Infof("platform word width: %d bytes [%d-bit]", word.Size, word.Bits)

	var image *memory.Manager
	switch strings.ToLower(filepath.Ext(input)) {
	case ".why":
		var err error
		image, err = compileFile(c, input)
		if err != nil {
			return err
		}
	case memory.ImageExt:
		var err error
		image, err = memory.LoadImage(input)
		if err != nil {
			return fmt.Errorf("loading precompiled file failed - %v", err)
		}
	default:
		return fmt.Errorf("unrecognised extension on input file %q", input)
	}

	if c.Bool("verify-image") {
		if err := check.VerifyImage(image.Bytes()); err != nil {
			return err
		}
	}
	if c.Bool("no-exec") {
		return nil
	}
	return execute(c, image)
}

func compileFile(c *cli.Context, input string) (*memory.Manager, error) {
	src, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q - %v", input, err)
	}

	start := time.Now()
	lines, err := lex.SplitSource(string(src))
	if err != nil {
		return nil, fmt.Errorf("compilation (pre) failed [%v]: %v", time.Since(start), err)
	}
	if c.Bool("dump-lines") {
		if err := lex.DumpLinesToDir(c.String("dump-dir"), lines); err != nil {
			logrus.Warnf("line dump failed: %v", err)
		}
	}

	image, err := compile.Process(lines)
	if err != nil {
		return nil, fmt.Errorf("compilation failed [%v]: %v", time.Since(start), err)
	}
	succeedf(os.Stdout, "Compilation completed [%v]\n", time.Since(start))

	if _, err := image.Save(c.String("output")); err != nil {
		logrus.Warnf("saving compiled image failed: %v", err)
	}
	return image, nil
}

func execute(c *cli.Context, image *memory.Manager) error {
	var cancel atomic.Bool
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	go func() {
		<-sig
		cancel.Store(true)
	}()

	vm := exec.NewVM(image)
	vm.SetCancel(&cancel)
	vm.SetDumpDir(c.String("dump-dir"))

	start := time.Now()
	if err := vm.Run(); err != nil {
		return fmt.Errorf("execution failed:\n\t%v", err)
	}
	succeedf(os.Stdout, "Execution completed [%v]\n", time.Since(start))
	return nil
}
