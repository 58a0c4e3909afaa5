// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbols

import "fmt"

// Operator is a prefix or infix operator.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	OpProduct
	OpDivide
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpEqual
	OpNotEqual
	OpOr
	OpAnd
	OpNot
)

var operatorNames = map[Operator]string{
	OpAdd:          "+",
	OpSubtract:     "-",
	OpProduct:      "*",
	OpDivide:       "/",
	OpGreater:      ">",
	OpLess:         "<",
	OpGreaterEqual: ">=",
	OpLessEqual:    "<=",
	OpEqual:        "==",
	OpNotEqual:     "!=",
	OpOr:           "|",
	OpAnd:          "&",
	OpNot:          "!",
}

func (op Operator) String() string {
	if s, ok := operatorNames[op]; ok {
		return s
	}
	return fmt.Sprintf("operator(%d)", int(op))
}

func classifyOperator(tok string) Symbol {
	for op, s := range operatorNames {
		if s == tok {
			return OpSymbol{Op: op}
		}
	}
	return nil
}

// Assigner is an assignment operator. The compound forms expand to their
// plain operator equivalent during compilation.
type Assigner int

const (
	AssignSet Assigner = iota
	AssignAdd
	AssignSubtract
	AssignProduct
	AssignDivide
)

var assignerNames = map[Assigner]string{
	AssignSet:      "=",
	AssignAdd:      "+=",
	AssignSubtract: "-=",
	AssignProduct:  "*=",
	AssignDivide:   "/=",
}

func (a Assigner) String() string {
	if s, ok := assignerNames[a]; ok {
		return s
	}
	return fmt.Sprintf("assigner(%d)", int(a))
}

// Operator returns the plain operator a compound assigner expands to, and
// whether it is compound at all.
func (a Assigner) Operator() (Operator, bool) {
	switch a {
	case AssignAdd:
		return OpAdd, true
	case AssignSubtract:
		return OpSubtract, true
	case AssignProduct:
		return OpProduct, true
	case AssignDivide:
		return OpDivide, true
	}
	return 0, false
}

func classifyAssigner(tok string) Symbol {
	for a, s := range assignerNames {
		if s == tok {
			return AssignSymbol{Assign: a}
		}
	}
	return nil
}
