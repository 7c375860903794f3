package ast

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type vars map[string]Expr

func (v vars) Resolve(name string) (Expr, bool) {
	e, ok := v[name]
	return e, ok
}

func TestEvaluateCoercion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	inputs := []Expr{
		Number(3),
		String("x"),
		Add{Number(1), Number(2)},
		Add{String("a"), String("b")},
		Add{Number(1), String("a")},
		Add{String("a"), Number(1)},
		Add{Add{String("Level "), Number(2)}, String("!")},
		Add{Number(0.5), Number(1)},
		Add{String("v"), Number(1.25)},
	}
	outputs := []Expr{
		Number(3),
		String("x"),
		Number(3),
		String("ab"),
		String("1a"),
		String("a1"),
		String("Level 2!"),
		Number(1.5),
		String("v1.25"),
	}
	for i, input := range inputs {
		v, err := Evaluate(input, nil)
		if err != nil {
			t.Fatalf("evaluating %s: %v", input, err)
		}
		if v != outputs[i] {
			t.Errorf("expected %s to evaluate to %s, is %s", input, outputs[i], v)
		}
		if !IsScalar(v) {
			t.Errorf("expected scalar result for %s, have %T", input, v)
		}
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	e := Add{Add{Number(1), Number(2)}, String(" apples")}
	v1, err := Evaluate(e, nil)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := Evaluate(v1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v1 != v2 || v1 != String("3 apples") {
		t.Errorf("expected stable value \"3 apples\", have %s then %s", v1, v2)
	}
}

func TestEvaluateVariables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	env := vars{"name": String("Nayu"), "score": Number(41)}
	v, err := Evaluate(Add{String("Hi "), Variable("name")}, env)
	if err != nil {
		t.Fatal(err)
	}
	if v != String("Hi Nayu") {
		t.Errorf("expected \"Hi Nayu\", have %s", v)
	}
	v, err = Evaluate(Add{Variable("score"), Number(1)}, env)
	if err != nil || v != Number(42) {
		t.Errorf("expected 42, have %v (error %v)", v, err)
	}
	_, err = Evaluate(Add{String("Hi "), Variable("nobody")}, env)
	if !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("expected unbound variable error, have %v", err)
	}
	_, err = Evaluate(Variable("name"), nil)
	if !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("expected unbound variable error without environment, have %v", err)
	}
	_, err = Evaluate(nil, env)
	if !errors.Is(err, ErrMissingExpression) {
		t.Errorf("expected missing expression error, have %v", err)
	}
}

func TestEvaluateToText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	inputs := []Expr{Number(1), Number(1.5), Number(-2), String("plain"), Add{Number(2), Number(3)}}
	outputs := []string{"1", "1.5", "-2", "plain", "5"}
	for i, input := range inputs {
		s, err := EvaluateToText(input, nil)
		if err != nil {
			t.Fatal(err)
		}
		if s != outputs[i] {
			t.Errorf("expected text %q for %s, have %q", outputs[i], input, s)
		}
	}
}
