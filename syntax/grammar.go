package syntax

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/syntax/scanner"
)

// --- Symbols ---------------------------------------------------------------

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Terminals carry the token value of the scanner token they match.
// Non-terminals carry a serial number, unique within their grammar.
type Symbol struct {
	Name     string
	Value    int
	terminal bool
}

// IsTerminal is true for terminal symbols.
func (s *Symbol) IsTerminal() bool {
	return s.terminal
}

// TokenType returns the token category a terminal matches.
func (s *Symbol) TokenType() requiem.TokType {
	return requiem.TokType(s.Value)
}

func (s *Symbol) String() string {
	return s.Name
}

// --- Rules -----------------------------------------------------------------

// Rule is a grammar production LHS ➞ RHS.
type Rule struct {
	Serial int
	LHS    *Symbol
	rhs    []*Symbol
}

// RHS returns the right hand side symbols of a rule.
// An epsilon-rule has an empty RHS.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// IsEps returns true for epsilon-productions.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	names := make([]string, len(r.rhs))
	for i, sym := range r.rhs {
		names[i] = sym.Name
	}
	return fmt.Sprintf("[%s] ::= [%s]", r.LHS.Name, strings.Join(names, " "))
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context free grammar. Create grammars with a GrammarBuilder.
// Rule #0 is always the augmented start rule S' ➞ Start #eof.
type Grammar struct {
	Name         string
	rules        *arraylist.List
	terminals    map[int]*Symbol
	nonterminals map[string]*Symbol
	ntOrder      []*Symbol
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return g.rules.Size()
}

// Rule returns rule #n, or nil.
func (g *Grammar) Rule(n int) *Rule {
	r, ok := g.rules.Get(n)
	if !ok {
		return nil
	}
	return r.(*Rule)
}

// Start returns the augmented start symbol S'.
func (g *Grammar) Start() *Symbol {
	return g.Rule(0).LHS
}

// NonTerminal returns the non-terminal with a given name, or nil.
func (g *Grammar) NonTerminal(name string) *Symbol {
	return g.nonterminals[name]
}

// Terminal returns the terminal matching token value tokval, or nil.
func (g *Grammar) Terminal(tokval int) *Symbol {
	return g.terminals[tokval]
}

// EachNonTerminal calls f for every non-terminal, in order of appearance.
func (g *Grammar) EachNonTerminal(f func(N *Symbol)) {
	for _, N := range g.ntOrder {
		f(N)
	}
}

// EachRule calls f for every rule, in serial order.
func (g *Grammar) EachRule(f func(r *Rule)) {
	it := g.rules.Iterator()
	for it.Next() {
		f(it.Value().(*Rule))
	}
}

// FindNonTermRules returns all rules with LHS N.
func (g *Grammar) FindNonTermRules(N *Symbol) []*Rule {
	var rules []*Rule
	g.EachRule(func(r *Rule) {
		if r.LHS == N {
			rules = append(rules, r)
		}
	})
	return rules
}

// Dump is a debugging helper, tracing all rules of the grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------", g.Name)
	g.EachRule(func(r *Rule) {
		tracer().Debugf("%3d: %s", r.Serial, r)
	})
	tracer().Debugf("-------------------------------------------")
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars, see package documentation.
type GrammarBuilder struct {
	g     *Grammar
	start *Symbol
	rules []*Rule
	err   error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar
// to build.
func NewGrammarBuilder(name string) *GrammarBuilder {
	g := &Grammar{
		Name:         name,
		rules:        arraylist.New(),
		terminals:    make(map[int]*Symbol),
		nonterminals: make(map[string]*Symbol),
	}
	gb := &GrammarBuilder{g: g}
	gb.nonterminal("S'")
	gb.terminal("#eof", scanner.EOF)
	return gb
}

// LHS starts a rule given the name of its left hand side symbol.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	N := gb.nonterminal(name)
	if gb.start == nil {
		gb.start = N
	}
	return &RuleBuilder{gb: gb, lhs: N}
}

// Grammar returns the grammar built so far, augmented by a start rule.
// It is an error if a non-terminal is referenced but has no rules, if two
// terminals share a token value, or if no rule has been given at all.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if gb.start == nil {
		return nil, fmt.Errorf("grammar %s has no rules", gb.g.Name)
	}
	if gb.g.rules.Size() == 0 {
		eof := gb.g.terminals[scanner.EOF]
		S := gb.g.nonterminals["S'"]
		gb.g.rules.Add(&Rule{Serial: 0, LHS: S, rhs: []*Symbol{gb.start, eof}})
		for _, r := range gb.rules {
			r.Serial = gb.g.rules.Size()
			gb.g.rules.Add(r)
		}
	}
	for _, N := range gb.g.ntOrder {
		if len(gb.g.FindNonTermRules(N)) == 0 {
			return nil, fmt.Errorf("grammar %s: non-terminal %s has no rules", gb.g.Name, N)
		}
	}
	return gb.g, nil
}

func (gb *GrammarBuilder) nonterminal(name string) *Symbol {
	if N, ok := gb.g.nonterminals[name]; ok {
		return N
	}
	N := &Symbol{Name: name, Value: len(gb.g.ntOrder)}
	gb.g.nonterminals[name] = N
	gb.g.ntOrder = append(gb.g.ntOrder, N)
	return N
}

func (gb *GrammarBuilder) terminal(name string, tokval int) *Symbol {
	if T, ok := gb.g.terminals[tokval]; ok {
		if T.Name != name && gb.err == nil {
			gb.err = fmt.Errorf("grammar %s: terminals %s and %s share token value %d",
				gb.g.Name, T.Name, name, tokval)
		}
		return T
	}
	T := &Symbol{Name: name, Value: tokval, terminal: true}
	gb.g.terminals[tokval] = T
	return T
}

// RuleBuilder collects the right hand side of a single rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs *Symbol
	rhs []*Symbol
}

// N appends a non-terminal to the RHS.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.nonterminal(name))
	return rb
}

// T appends a terminal to the RHS, given its name and token value.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.terminal(name, tokval))
	return rb
}

// End closes the rule.
func (rb *RuleBuilder) End() *Rule {
	r := &Rule{LHS: rb.lhs, rhs: rb.rhs}
	rb.gb.rules = append(rb.gb.rules, r)
	return r
}

// Epsilon closes the rule as an epsilon-production. Symbols appended before
// are discarded.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rhs = nil
	return rb.End()
}
