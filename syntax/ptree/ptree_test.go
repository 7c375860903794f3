package ptree

import (
	"strings"
	"testing"

	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/syntax"
	"github.com/hiibolt/requiem/syntax/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// Builds the tree for input "a b" by hand:
//
//   S ➞ A B
//   A ➞ a
//   B ➞ b  |  ε
func makeTree(t *testing.T) *Node {
	b := syntax.NewGrammarBuilder("G")
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").T("a", 1).End()
	b.LHS("B").T("b", 2).End()
	b.LHS("B").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	leaf := func(sym *syntax.Symbol, lexeme string, from uint64) *Node {
		n := NewNode(sym, from)
		n.Token = scanner.MakeDefaultToken(sym.TokenType(), lexeme,
			requiem.Span{from, from + uint64(len(lexeme))})
		n.Extent = n.Token.Span()
		return n
	}
	A := NewNode(g.NonTerminal("A"), 0)
	A.Rule = 2
	A.Children = []*Node{leaf(g.Terminal(1), "a", 0)}
	B := NewNode(g.NonTerminal("B"), 2)
	B.Rule = 3
	B.Children = []*Node{leaf(g.Terminal(2), "b", 2)}
	S := NewNode(g.NonTerminal("S"), 0)
	S.Rule = 1
	S.Children = []*Node{A, B}
	S.Fix()
	return S
}

type recorder struct {
	events []string
	stopAt string
}

func (r *recorder) EnterRule(sym *syntax.Symbol, rhs []*RuleNode, ctxt RuleCtxt) bool {
	r.events = append(r.events, "+"+sym.Name)
	return sym.Name != r.stopAt
}

func (r *recorder) ExitRule(sym *syntax.Symbol, rhs []*RuleNode, ctxt RuleCtxt) interface{} {
	r.events = append(r.events, "-"+sym.Name)
	var lexemes []string
	for _, rn := range rhs {
		if s, ok := rn.Value.(string); ok && s != "" {
			lexemes = append(lexemes, s)
		}
	}
	return strings.Join(lexemes, " ")
}

func (r *recorder) Terminal(tok requiem.Token, ctxt RuleCtxt) interface{} {
	r.events = append(r.events, tok.Lexeme())
	return tok.Lexeme()
}

func TestExtents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.syntax")
	defer teardown()
	//
	S := makeTree(t)
	S.Dump()
	if S.Extent != (requiem.Span{0, 3}) {
		t.Errorf("expected S to cover (0…3), covers %v", S.Extent)
	}
}

func TestTopDown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.syntax")
	defer teardown()
	//
	r := &recorder{}
	v := TopDown(makeTree(t), r, Continue)
	if v != "a b" {
		t.Errorf("expected synthesized value 'a b', have %v", v)
	}
	expected := "+S +A a -A +B b -B -S"
	if got := strings.Join(r.events, " "); got != expected {
		t.Errorf("expected events %q, have %q", expected, got)
	}
}

func TestTopDownBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.syntax")
	defer teardown()
	//
	r := &recorder{stopAt: "A"}
	v := TopDown(makeTree(t), r, Break)
	if v != "b" {
		t.Errorf("expected synthesized value 'b', have %v", v)
	}
	expected := "+S +A -A +B b -B -S"
	if got := strings.Join(r.events, " "); got != expected {
		t.Errorf("expected events %q, have %q", expected, got)
	}
}
