package ast

import (
	"fmt"
)

// --- Operator precedence ---------------------------------------------------

// Assoc is the associativity of a binary operator.
type Assoc int

// Associativities
const (
	LeftAssoc Assoc = iota
	RightAssoc
)

// Operator describes a binary operator: its precedence level (higher binds
// tighter), its associativity and how to build an expression from it.
type Operator struct {
	Symbol string
	Level  int
	Assoc  Assoc
	Build  func(lhs, rhs Expr) Expr
}

// Operators is the precedence table for expressions, from lowest to highest
// level. Addition is the only operator of sabi.
var Operators = map[string]Operator{
	"+": {Symbol: "+", Level: 1, Assoc: LeftAssoc, Build: func(lhs, rhs Expr) Expr {
		return Add{LHS: lhs, RHS: rhs}
	}},
}

// Operation is an operator followed by its right operand, as it appears in
// the flat tail of an expression: 1 [+ 2] [+ 3].
type Operation struct {
	Operator string
	Operand  Expr
}

// Climb builds an expression tree from a first operand and a flat sequence
// of operations, using precedence climbing over the Operators table.
//
//    Climb(1, [+ 2, + 3])  ⇒  Add(Add(1, 2), 3)
//
func Climb(first Expr, tail []Operation) (Expr, error) {
	return climbWith(Operators, first, tail)
}

func climbWith(table map[string]Operator, first Expr, tail []Operation) (Expr, error) {
	if first == nil {
		return nil, ErrMissingExpression
	}
	c := &climber{operands: []Expr{first}}
	for _, opn := range tail {
		op, ok := table[opn.Operator]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownOperator, opn.Operator)
		}
		if opn.Operand == nil {
			return nil, fmt.Errorf("right operand of %q: %w", opn.Operator, ErrMissingExpression)
		}
		c.ops = append(c.ops, op)
		c.operands = append(c.operands, opn.Operand)
	}
	e := c.climb(1)
	tracer().Debugf("climbed expression %s", e)
	return e, nil
}

// climber holds operands o0…on and operators p1…pn, where operator ops[i]
// sits between operands[i] and operands[i+1].
type climber struct {
	operands []Expr
	ops      []Operator
	pos      int
}

func (c *climber) climb(minLevel int) Expr {
	lhs := c.operands[c.pos]
	for c.pos < len(c.ops) && c.ops[c.pos].Level >= minLevel {
		op := c.ops[c.pos]
		c.pos++
		next := op.Level + 1
		if op.Assoc == RightAssoc {
			next = op.Level
		}
		rhs := c.climb(next)
		lhs = op.Build(lhs, rhs)
	}
	return lhs
}
