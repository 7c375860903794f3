package ast

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestClimbIsLeftAssociative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	e, err := Climb(Number(1), []Operation{{"+", Number(2)}, {"+", Number(3)}})
	if err != nil {
		t.Fatal(err)
	}
	if e != (Add{Add{Number(1), Number(2)}, Number(3)}) {
		t.Errorf("expected ((1 + 2) + 3), have %#v", e)
	}
	e, err = Climb(String("x"), nil)
	if err != nil || e != String("x") {
		t.Errorf("expected single operand to be returned as is, have %v", e)
	}
}

type mul struct{ LHS, RHS Expr }

func (mul) expr()            {}
func (m mul) String() string { return "(" + exprString(m.LHS) + "*" + exprString(m.RHS) + ")" }

func TestClimbRespectsPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	table := map[string]Operator{
		"+": Operators["+"],
		"*": {Symbol: "*", Level: 2, Build: func(l, r Expr) Expr { return mul{l, r} }},
	}
	e, err := climbWith(table, Number(1), []Operation{{"+", Number(2)}, {"*", Number(3)}})
	if err != nil {
		t.Fatal(err)
	}
	if e != (Add{Number(1), mul{Number(2), Number(3)}}) {
		t.Errorf("expected 1 + (2*3), have %s", e)
	}
	e, err = climbWith(table, Number(1), []Operation{{"*", Number(2)}, {"+", Number(3)}})
	if err != nil {
		t.Fatal(err)
	}
	if e != (Add{mul{Number(1), Number(2)}, Number(3)}) {
		t.Errorf("expected (1*2) + 3, have %s", e)
	}
}

func TestClimbErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	if _, err := Climb(Number(1), []Operation{{"-", Number(2)}}); !errors.Is(err, ErrUnknownOperator) {
		t.Errorf("expected unknown operator error, have %v", err)
	}
	if _, err := Climb(nil, nil); !errors.Is(err, ErrMissingExpression) {
		t.Errorf("expected missing expression error, have %v", err)
	}
	if _, err := Climb(Number(1), []Operation{{"+", nil}}); !errors.Is(err, ErrMissingExpression) {
		t.Errorf("expected missing operand error, have %v", err)
	}
}
