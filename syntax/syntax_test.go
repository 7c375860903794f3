package syntax

import (
	"testing"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeSimpleGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b", 2).End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d", 3).End()
	b.LHS("D").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.syntax")
	defer teardown()
	//
	g := makeSimpleGrammar(t)
	g.Dump()
	if g.Size() != 7 {
		t.Errorf("expected 7 rules (including start rule), have %d", g.Size())
	}
	if g.Rule(0).String() != "[S'] ::= [S #eof]" {
		t.Errorf("unexpected start rule %s", g.Rule(0))
	}
	if !g.Rule(4).IsEps() {
		t.Errorf("expected rule 4 to be an epsilon rule, is %s", g.Rule(4))
	}
	if len(g.FindNonTermRules(g.NonTerminal("B"))) != 2 {
		t.Errorf("expected 2 rules for B")
	}
}

func TestGrammarMissingRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.syntax")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for non-terminal A without rules")
	}
	b = NewGrammarBuilder("G")
	b.LHS("S").T("x", 1).T("y", 1).End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for terminals sharing a token value")
	}
}

func TestFirstAndFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.syntax")
	defer teardown()
	//
	g := makeSimpleGrammar(t)
	ga := Analysis(g)
	ga.Dump()
	A := g.NonTerminal("A")
	checkSet(t, "FIRST(A)", ga.First(A), 2, 3)
	checkSet(t, "FOLLOW(A)", ga.Follow(A), 1)
	checkSet(t, "FIRST(S)", ga.First(g.NonTerminal("S")), 1, 2, 3)
	checkSet(t, "FOLLOW(B)", ga.Follow(g.NonTerminal("B")), 1, 3)
	checkSet(t, "FOLLOW(S)", ga.Follow(g.NonTerminal("S")), -1)
	if !ga.Nullable(A) {
		t.Errorf("expected A to be nullable")
	}
	if ga.Nullable(g.NonTerminal("S")) {
		t.Errorf("expected S not to be nullable")
	}
}

func TestPredictionTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.syntax")
	defer teardown()
	//
	g := makeSimpleGrammar(t)
	T := Analysis(g).Table()
	if err := T.Err(); err != nil {
		t.Fatal(err)
	}
	B := g.NonTerminal("B")
	if r, ok := T.Lookup(B, 2); !ok || r.Serial != 3 {
		t.Errorf("expected [B, b] to predict rule 3, have %v", r)
	}
	if r, ok := T.Lookup(B, 1); !ok || r.Serial != 4 {
		t.Errorf("expected [B, a] to predict epsilon rule 4, have %v", r)
	}
	if _, ok := T.Lookup(g.NonTerminal("D"), 2); ok {
		t.Errorf("expected no prediction for [D, b]")
	}
	if exp := T.Expected(B); len(exp) != 3 {
		t.Errorf("expected 3 lookaheads for B, have %v", exp)
	}
}

func TestLeftRecursionConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.syntax")
	defer teardown()
	//
	b := NewGrammarBuilder("E")
	b.LHS("Expr").N("Expr").T("+", '+').T("n", 'n').End()
	b.LHS("Expr").T("n", 'n').End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	T := Analysis(g).Table()
	if T.Err() == nil {
		t.Errorf("expected a left recursive grammar not to be LL(1)")
	}
	if len(T.Conflicts()) != 1 {
		t.Errorf("expected 1 conflict, have %d", len(T.Conflicts()))
	}
}

func checkSet(t *testing.T, name string, S *treeset.Set, values ...interface{}) {
	t.Helper()
	if S.Size() != len(values) || !S.Contains(values...) {
		t.Errorf("expected %s = %v, is %v", name, values, S.Values())
	}
}
