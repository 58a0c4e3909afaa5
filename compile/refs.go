// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"
	"strings"
)

// Reference is a compile-time binding for a name: a variable carrying a
// runtime type, a function, or a class.
type Reference interface {
	refKind() string
}

// VariableRef binds a name to an allocated value.
type VariableRef struct {
	Type Type
}

func (VariableRef) refKind() string { return "variable" }

// FunctionBinding binds a name to a function.
type FunctionBinding struct {
	Func *FuncRef
}

func (FunctionBinding) refKind() string { return "function" }

// ClassRef binds a name to a class whose members hang off the handler's
// children.
type ClassRef struct{}

func (ClassRef) refKind() string { return "class" }

// RefHandler owns one reference and the sub-handlers reachable through
// dotted names.
type RefHandler struct {
	Name     string
	Ref      Reference
	Children []*RefHandler
}

func (h *RefHandler) child(name string) *RefHandler {
	for _, c := range h.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// RefManager is one scope's worth of reference handlers.
type RefManager struct {
	handlers []*RefHandler
}

func (m *RefManager) find(name string) *RefHandler {
	for _, h := range m.handlers {
		if h.Name == name {
			return h
		}
	}
	return nil
}

func (m *RefManager) register(h *RefHandler) error {
	if m.find(h.Name) != nil {
		return fmt.Errorf("reference with name '%s' already exists", h.Name)
	}
	m.handlers = append(m.handlers, h)
	return nil
}

// RefStack is the stack of scopes names resolve through. A depth limit
// hides variables registered below it, so a function body cannot read its
// caller's locals while functions and classes above stay in scope.
type RefStack struct {
	managers   []*RefManager
	depthLimit int
}

// NewRefStack creates a stack holding the global scope.
func NewRefStack() *RefStack {
	return &RefStack{managers: []*RefManager{{}}}
}

// Push opens a scope.
func (r *RefStack) Push() {
	r.managers = append(r.managers, &RefManager{})
}

// Pop discards the top scope and the references it owns.
func (r *RefStack) Pop() *RefManager {
	if len(r.managers) == 0 {
		panic("compile: popped a reference scope when none exists")
	}
	top := r.managers[len(r.managers)-1]
	r.managers = r.managers[:len(r.managers)-1]
	return top
}

// Depth returns the number of open scopes.
func (r *RefStack) Depth() int {
	return len(r.managers)
}

// DepthLimit returns the current variable visibility limit.
func (r *RefStack) DepthLimit() int {
	return r.depthLimit
}

// SetDepthLimit hides variables in scopes below index limit.
func (r *RefStack) SetDepthLimit(limit int) {
	r.depthLimit = limit
}

// Register binds name at the top scope. A dotted name navigates into the
// named handler's children.
func (r *RefStack) Register(ref Reference, name []string) error {
	return r.RegisterWithOffset(ref, name, 0)
}

// RegisterWithOffset binds name offset scopes above the top one; a
// function uses this to register its own handle in the scope it is
// declared in.
func (r *RefStack) RegisterWithOffset(ref Reference, name []string, offset int) error {
	idx := len(r.managers) - 1 - offset
	if idx < 0 {
		panic("compile: reference registration offset below the global scope")
	}
	m := r.managers[idx]

	if len(name) == 1 {
		return m.register(&RefHandler{Name: name[0], Ref: ref})
	}

	parent, err := r.Get(name[:len(name)-1])
	if err != nil {
		return err
	}
	leaf := name[len(name)-1]
	if parent.child(leaf) != nil {
		return fmt.Errorf("reference with name '%s' already exists", strings.Join(name, "."))
	}
	parent.Children = append(parent.Children, &RefHandler{Name: leaf, Ref: ref})
	return nil
}

// Get resolves a dotted name, searching scopes top-down. Below the depth
// limit only non-variable references are visible.
func (r *RefStack) Get(name []string) (*RefHandler, error) {
	for i := len(r.managers) - 1; i >= 0; i-- {
		h := r.managers[i].find(name[0])
		if h == nil {
			continue
		}
		if i < r.depthLimit {
			if _, isVar := h.Ref.(VariableRef); isVar {
				continue
			}
		}
		for _, part := range name[1:] {
			h = h.child(part)
			if h == nil {
				return nil, fmt.Errorf("reference '%s' not found", strings.Join(name, "."))
			}
		}
		return h, nil
	}
	return nil, fmt.Errorf("reference '%s' not found", strings.Join(name, "."))
}

// Variable resolves name to a variable's type.
func (r *RefStack) Variable(name []string) (Type, error) {
	h, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	v, ok := h.Ref.(VariableRef)
	if !ok {
		return nil, fmt.Errorf("reference '%s' is not a variable", strings.Join(name, "."))
	}
	return v.Type, nil
}

// Function resolves name to a function reference.
func (r *RefStack) Function(name []string) (*FuncRef, error) {
	h, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	f, ok := h.Ref.(FunctionBinding)
	if !ok {
		return nil, fmt.Errorf("reference '%s' is not a function", strings.Join(name, "."))
	}
	return f.Func, nil
}

// top returns the top scope.
func (r *RefStack) top() *RefManager {
	return r.managers[len(r.managers)-1]
}
