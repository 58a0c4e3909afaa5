// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"github.com/pkg/errors"

	"github.com/why-lang/why/lex"
	"github.com/why-lang/why/memory"
)

// Process lowers symbol lines to a compiled image. It drives the block
// coordinator from the indentation structure and dispatches every line
// through the ordered handler list; the first handler claiming the line
// wins, and an unclaimed line is a compile error.
func Process(lines []lex.Line) (*memory.Manager, error) {
	pm := memory.NewManager()
	coord := NewCoordinator()
	ctx := coord.Context(pm)

lineLoop:
	for _, l := range lines {
		if len(l.Symbols) == 0 {
			continue
		}

		if l.Indent > coord.Indentation() {
			return nil, errors.Errorf("line %d: indentation too high", l.Number)
		}

		// Close blocks until the block depth matches the code depth. A
		// line exactly one level up may be consumed by the top block
		// (elif continuing its if).
		for coord.Indentation() >= 1 && l.Indent < coord.Indentation() {
			if coord.Indentation() >= 2 && l.Indent <= coord.Indentation()-2 {
				if err := coord.ForceExitHandler(ctx); err != nil {
					return nil, errors.Wrapf(err, "line %d", l.Number)
				}
				continue
			}
			closed, err := coord.ExitHandler(ctx, l.Symbols)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", l.Number)
			}
			if !closed {
				continue lineLoop
			}
		}

		before := coord.Indentation()
		matched := false
		for _, h := range lineHandlers {
			ok, err := h(l.Symbols, ctx, coord)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", l.Number)
			}
			if ok {
				matched = true
				break
			}
		}
		if !matched {
			return nil, errors.Errorf("line %d: line didn't match any known patterns", l.Number)
		}
		if coord.Indentation() == before {
			coord.NotifyLine()
		}
	}

	// Close whatever indentation left open.
	for coord.Indentation() >= 1 {
		if err := coord.ForceExitHandler(ctx); err != nil {
			return nil, err
		}
	}
	if err := coord.Complete(); err != nil {
		return nil, err
	}

	logger.WithField("bytes", pm.Position()).Info("compilation completed")
	return pm, nil
}

// ProcessSource compiles source text end to end.
func ProcessSource(src string) (*memory.Manager, error) {
	lines, err := lex.SplitSource(src)
	if err != nil {
		return nil, err
	}
	return Process(lines)
}
