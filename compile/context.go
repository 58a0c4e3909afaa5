// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compile lowers symbol lines to a compiled image: it dispatches
// lines to handlers, evaluates expressions through the type protocol,
// structures emission with block handlers, and resolves names through the
// reference stack.
package compile

import "github.com/why-lang/why/memory"

// Context bundles the mutable compile state handed to block and line
// handlers: the program image under construction, the reference stack and
// the frame layout counters.
type Context struct {
	Program *memory.Manager
	Refs    *RefStack
	Sizes   *StackSizes
}
