package ast

import (
	"strconv"
)

// Expr is an expression tree. Variants are Number, String, Add and
// Variable; Number and String are scalars.
type Expr interface {
	String() string
	expr()
}

// Number is a numeric literal or value.
type Number float64

// String is a string literal or value, without quote delimiters.
type String string

// Add is the binary addition (or concatenation) of two expressions.
type Add struct {
	LHS Expr
	RHS Expr
}

// Variable refers to a named value, resolved at evaluation time.
type Variable string

func (Number) expr()   {}
func (String) expr()   {}
func (Add) expr()      {}
func (Variable) expr() {}

func (n Number) String() string {
	return FormatNumber(float64(n))
}

func (s String) String() string {
	return strconv.Quote(string(s))
}

func (a Add) String() string {
	return exprString(a.LHS) + " + " + exprString(a.RHS)
}

func (v Variable) String() string {
	return string(v)
}

func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}

// IsScalar is true for Number and String values.
func IsScalar(e Expr) bool {
	switch e.(type) {
	case Number, String:
		return true
	}
	return false
}

// FormatNumber formats n as the shortest decimal text representing it,
// without an exponent: 1 ⇒ "1", 1.5 ⇒ "1.5".
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
