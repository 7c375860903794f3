package ast

import (
	"fmt"
)

// Resolver resolves variable names to values.
type Resolver interface {
	Resolve(name string) (Expr, bool)
}

// Evaluate reduces an expression to a scalar (Number or String).
//
// Coercion rules for Add, applied after evaluating both sides:
//
//    Number + Number  ⇒  Number (arithmetic sum)
//    String + String  ⇒  String (concatenation)
//    Number + String  ⇒  String (number formatted as decimal text)
//    String + Number  ⇒  String (number formatted as decimal text)
//
// Scalars evaluate to themselves. Variables are looked up with env, which may
// be nil; their values are evaluated without further variable lookups.
// An unbound variable is an error wrapping ErrUnboundVariable.
func Evaluate(e Expr, env Resolver) (Expr, error) {
	switch e := e.(type) {
	case Number, String:
		return e, nil
	case Variable:
		if env == nil {
			return nil, fmt.Errorf("variable '%s': %w", string(e), ErrUnboundVariable)
		}
		v, ok := env.Resolve(string(e))
		if !ok {
			return nil, fmt.Errorf("variable '%s': %w", string(e), ErrUnboundVariable)
		}
		return Evaluate(v, nil)
	case Add:
		lhs, err := Evaluate(e.LHS, env)
		if err != nil {
			return nil, fmt.Errorf("left side of addition: %w", err)
		}
		rhs, err := Evaluate(e.RHS, env)
		if err != nil {
			return nil, fmt.Errorf("right side of addition: %w", err)
		}
		return add(lhs, rhs), nil
	case nil:
		return nil, ErrMissingExpression
	}
	return nil, fmt.Errorf("cannot evaluate expression of type %T", e)
}

func add(lhs, rhs Expr) Expr {
	switch l := lhs.(type) {
	case Number:
		switch r := rhs.(type) {
		case Number:
			return l + r
		case String:
			return String(FormatNumber(float64(l))) + r
		}
	case String:
		switch r := rhs.(type) {
		case String:
			return l + r
		case Number:
			return l + String(FormatNumber(float64(r)))
		}
	}
	return String(text(lhs) + text(rhs))
}

// EvaluateToText evaluates an expression and returns its value as
// printable text. Numbers are formatted as decimal text.
func EvaluateToText(e Expr, env Resolver) (string, error) {
	v, err := Evaluate(e, env)
	if err != nil {
		return "", err
	}
	return text(v), nil
}

func text(e Expr) string {
	switch e := e.(type) {
	case Number:
		return FormatNumber(float64(e))
	case String:
		return string(e)
	}
	return exprString(e)
}
