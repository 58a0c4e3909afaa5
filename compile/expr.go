// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"
	"strings"

	"github.com/why-lang/why/address"
	"github.com/why-lang/why/symbols"
)

// returnOptions selects what an expression evaluation produces: a write
// into a given destination, any inferred type, or a type drawn from an
// allow-list. The allow-list mode is how control structures demand a
// boolean from their condition.
type returnOptions struct {
	into    Type
	allowed []symbols.TypeSymbol
}

// evalInto evaluates section and writes the result into dest.
func evalInto(section []symbols.Symbol, dest Type, ctx *Context) error {
	_, err := evalSection(section, returnOptions{into: dest}, ctx)
	return err
}

// evalToTypes evaluates section to a value whose type is drawn from
// allowed.
func evalToTypes(section []symbols.Symbol, allowed []symbols.TypeSymbol, ctx *Context) (Type, error) {
	return evalSection(section, returnOptions{allowed: allowed}, ctx)
}

// evalAny evaluates section to a value of any type.
func evalAny(section []symbols.Symbol, ctx *Context) (Type, error) {
	return evalSection(section, returnOptions{}, ctx)
}

func incorrectType(expected []symbols.TypeSymbol, received symbols.TypeSymbol) error {
	if len(expected) == 0 {
		return fmt.Errorf("expected type [any], received %s", received)
	}
	names := make([]string, len(expected))
	for i, e := range expected {
		names[i] = e.String()
	}
	return fmt.Errorf("expected type [%s], received %s", strings.Join(names, ", "), received)
}

// allowedMatch returns the first result type compatible with the
// allow-list, or an error.
func allowedMatch(results, allowed []symbols.TypeSymbol) (symbols.TypeSymbol, error) {
	if len(allowed) == 0 {
		return results[0], nil
	}
	for _, rt := range results {
		for _, a := range allowed {
			if compatible(a, rt) {
				return rt, nil
			}
		}
	}
	return 0, incorrectType(allowed, results[0])
}

// evalSection evaluates one expression section. In into mode the returned
// type is nil; otherwise it carries the result value.
func evalSection(section []symbols.Symbol, opts returnOptions, ctx *Context) (Type, error) {
	if len(section) == 0 {
		return nil, fmt.Errorf("cannot evaluate a section with no symbols")
	}
	if ctx.Sizes.Depth() == 0 {
		return nil, fmt.Errorf("expressions can only appear inside a block")
	}

	if len(section) == 1 {
		return evalSingle(section[0], opts, ctx)
	}

	// Prefix operator, e.g. ! a.
	if op, ok := section[0].(symbols.OpSymbol); ok {
		operand, err := evalAny(section[1:], ctx)
		if err != nil {
			return nil, err
		}
		return evalPrefix(op.Op, operand, opts, ctx)
	}

	if len(section) == 2 {
		name, isName := section[0].(symbols.Name)
		if isName {
			if args, ok := section[1].(symbols.Bracketed); ok {
				return evalCall(name, args, opts, ctx)
			}
			if ix, ok := section[1].(symbols.Indexer); ok {
				return evalIndexed(name, ix, opts, ctx)
			}
		}
		return nil, fmt.Errorf("expression sections must be formatted [Operator] [Value] or [Value] [Operator] [Value]")
	}

	// Binary operation, e.g. a + b; the right-hand side may itself be a
	// section (a & !b).
	op, ok := section[1].(symbols.OpSymbol)
	if !ok {
		return nil, fmt.Errorf("expression sections must be formatted [Operator] [Value] or [Value] [Operator] [Value]")
	}
	lhs, err := evalSingle(section[0], returnOptions{}, ctx)
	if err != nil {
		return nil, err
	}
	rhs, err := evalAny(section[2:], ctx)
	if err != nil {
		return nil, err
	}
	return evalOperation(op.Op, lhs, rhs, opts, ctx)
}

// evalSingle resolves a lone symbol: a name, a literal, or a bracketed
// sub-section.
func evalSingle(sym symbols.Symbol, opts returnOptions, ctx *Context) (Type, error) {
	switch s := sym.(type) {
	case symbols.Name:
		v, err := ctx.Refs.Variable(s)
		if err != nil {
			return nil, err
		}
		if opts.into != nil {
			_, err := opts.into.RuntimeCopyFrom(v, ctx.Program)
			return nil, err
		}
		if len(opts.allowed) != 0 {
			if _, err := allowedMatch([]symbols.TypeSymbol{v.Symbol()}, opts.allowed); err != nil {
				return nil, err
			}
		}
		return v, nil

	case symbols.Literal:
		if opts.into != nil {
			_, err := opts.into.RuntimeCopyFromLiteral(s, ctx.Program)
			return nil, err
		}
		if len(opts.allowed) != 0 {
			// A literal takes the requested type rather than its
			// default.
			t, err := NewType(opts.allowed[0])
			if err != nil {
				return nil, err
			}
			t.Allocate(ctx.Sizes)
			if _, err := t.RuntimeCopyFromLiteral(s, ctx.Program); err != nil {
				return nil, err
			}
			return t, nil
		}
		return newLiteralType(s, ctx)

	case symbols.Bracketed:
		return evalSection(s, opts, ctx)
	}
	return nil, fmt.Errorf("expected an expression, found %s", sym)
}

func evalPrefix(op symbols.Operator, operand Type, opts returnOptions, ctx *Context) (Type, error) {
	if opts.into != nil {
		return nil, operand.OperatePrefix(op, opts.into, ctx.Program)
	}
	results := operand.PrefixResultTypes(op)
	if len(results) == 0 {
		return nil, opNotImplemented(op, operand.Symbol(), nil)
	}
	sym, err := allowedMatch(results, opts.allowed)
	if err != nil {
		return nil, err
	}
	out, err := NewType(sym)
	if err != nil {
		return nil, err
	}
	out.Allocate(ctx.Sizes)
	if err := operand.OperatePrefix(op, out, ctx.Program); err != nil {
		return nil, err
	}
	return out, nil
}

func evalOperation(op symbols.Operator, lhs, rhs Type, opts returnOptions, ctx *Context) (Type, error) {
	if opts.into != nil {
		return nil, lhs.Operate(op, rhs, opts.into, ctx.Program)
	}
	rhsSym := rhs.Symbol()
	results := lhs.BinaryResultTypes(op, rhsSym)
	if len(results) == 0 {
		return nil, opNotImplemented(op, lhs.Symbol(), &rhsSym)
	}
	sym, err := allowedMatch(results, opts.allowed)
	if err != nil {
		return nil, err
	}
	out, err := NewType(sym)
	if err != nil {
		return nil, err
	}
	out.Allocate(ctx.Sizes)
	if err := lhs.Operate(op, rhs, out, ctx.Program); err != nil {
		return nil, err
	}
	return out, nil
}

// evalCall emits a function call, routing the return slot into the
// requested destination.
func evalCall(name symbols.Name, args symbols.Bracketed, opts returnOptions, ctx *Context) (Type, error) {
	fn, err := ctx.Refs.Function(name)
	if err != nil {
		return nil, err
	}
	argList := symbols.SplitList(args)

	if opts.into != nil {
		if !fn.Returns() {
			return nil, fmt.Errorf("function '%s' does not return a value", name)
		}
		if !compatible(opts.into.Symbol(), fn.ReturnType()) {
			return nil, incorrectType([]symbols.TypeSymbol{opts.into.Symbol()}, fn.ReturnType())
		}
		return nil, fn.Call(argList, opts.into, ctx)
	}

	if !fn.Returns() {
		return nil, fmt.Errorf("function '%s' does not return a value", name)
	}
	sym, err := allowedMatch([]symbols.TypeSymbol{fn.ReturnType()}, opts.allowed)
	if err != nil {
		return nil, err
	}
	out, err := NewType(sym)
	if err != nil {
		return nil, err
	}
	out.Allocate(ctx.Sizes)
	if err := fn.Call(argList, out, ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// evalIndexed resolves name[index] to a view of the indexed element.
func evalIndexed(name symbols.Name, ix symbols.Indexer, opts returnOptions, ctx *Context) (Type, error) {
	view, err := indexedView(name, ix, ctx)
	if err != nil {
		return nil, err
	}
	if opts.into != nil {
		_, err := opts.into.RuntimeCopyFrom(view, ctx.Program)
		return nil, err
	}
	if len(opts.allowed) != 0 {
		if _, err := allowedMatch([]symbols.TypeSymbol{view.Symbol()}, opts.allowed); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// indexedView builds the element view name[index]: the element address is
// the variable's base offset plus index times the element size.
func indexedView(name symbols.Name, ix symbols.Indexer, ctx *Context) (Type, error) {
	v, err := ctx.Refs.Variable(name)
	if err != nil {
		return nil, err
	}
	base, ok := v.Address().(address.StackDirect)
	if !ok {
		return nil, fmt.Errorf("'%s' cannot be indexed", name)
	}

	var idx address.Address
	switch inner := ix.Inner.(type) {
	case symbols.IntLit:
		if inner < 0 {
			return nil, fmt.Errorf("index %d out of range", int64(inner))
		}
		idx = address.ImmediateWord(int(inner))
	case symbols.Name:
		iv, err := ctx.Refs.Variable(inner)
		if err != nil {
			return nil, err
		}
		if !isWordClass(iv.Symbol()) {
			return nil, incorrectType([]symbols.TypeSymbol{symbols.TypeInteger, symbols.TypePointer}, iv.Symbol())
		}
		idx = iv.Address()
	default:
		return nil, fmt.Errorf("indexers may only hold a name or an integer literal")
	}

	elem := address.StackIndexed{
		Location: address.ImmediateWord(base.Offset),
		Offset:   idx,
	}
	return v.WithAddress(elem), nil
}
