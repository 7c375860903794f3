package syntax

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// LLAnalysis is an object for static analysis of a grammar: nullability,
// FIRST sets and FOLLOW sets. Sets contain token values (int) of terminals.
// Epsilon is tracked separately via Nullable, it never shows up in a set.
type LLAnalysis struct {
	g        *Grammar
	nullable map[*Symbol]bool
	first    map[*Symbol]*treeset.Set
	follow   map[*Symbol]*treeset.Set
	table    *Table
}

// Analysis creates an analyser for a grammar and computes its sets.
func Analysis(g *Grammar) *LLAnalysis {
	ga := &LLAnalysis{
		g:        g,
		nullable: make(map[*Symbol]bool),
		first:    make(map[*Symbol]*treeset.Set),
		follow:   make(map[*Symbol]*treeset.Set),
	}
	g.EachNonTerminal(func(N *Symbol) {
		ga.first[N] = newTokenSet()
		ga.follow[N] = newTokenSet()
	})
	ga.markNullables()
	ga.computeFirstSets()
	ga.computeFollowSets()
	return ga
}

func newTokenSet() *treeset.Set {
	return treeset.NewWithIntComparator()
}

// Grammar returns the analysed grammar.
func (ga *LLAnalysis) Grammar() *Grammar {
	return ga.g
}

// Nullable returns true if a symbol derives epsilon. Terminals never do.
func (ga *LLAnalysis) Nullable(sym *Symbol) bool {
	return !sym.IsTerminal() && ga.nullable[sym]
}

// First returns FIRST(sym). For a terminal, this is the singleton set of its
// token value.
func (ga *LLAnalysis) First(sym *Symbol) *treeset.Set {
	if sym.IsTerminal() {
		S := newTokenSet()
		S.Add(sym.Value)
		return S
	}
	return ga.first[sym]
}

// Follow returns FOLLOW(N) for a non-terminal N.
func (ga *LLAnalysis) Follow(N *Symbol) *treeset.Set {
	return ga.follow[N]
}

// FirstOfSequence returns FIRST(X1…Xn) and whether X1…Xn derives epsilon.
func (ga *LLAnalysis) FirstOfSequence(syms []*Symbol) (*treeset.Set, bool) {
	F := newTokenSet()
	for _, X := range syms {
		if X.IsTerminal() {
			F.Add(X.Value)
			return F, false
		}
		F.Add(ga.first[X].Values()...)
		if !ga.nullable[X] {
			return F, false
		}
	}
	return F, true
}

func (ga *LLAnalysis) markNullables() {
	for changed := true; changed; {
		changed = false
		ga.g.EachRule(func(r *Rule) {
			if ga.nullable[r.LHS] {
				return
			}
			for _, X := range r.rhs {
				if !ga.Nullable(X) {
					return
				}
			}
			ga.nullable[r.LHS] = true
			changed = true
		})
	}
}

func (ga *LLAnalysis) computeFirstSets() {
	for changed := true; changed; {
		changed = false
		ga.g.EachRule(func(r *Rule) {
			F, _ := ga.FirstOfSequence(r.rhs)
			if addAll(ga.first[r.LHS], F) {
				changed = true
			}
		})
	}
}

func (ga *LLAnalysis) computeFollowSets() {
	for changed := true; changed; {
		changed = false
		ga.g.EachRule(func(r *Rule) {
			for i, X := range r.rhs {
				if X.IsTerminal() {
					continue
				}
				F, nullable := ga.FirstOfSequence(r.rhs[i+1:])
				if addAll(ga.follow[X], F) {
					changed = true
				}
				if nullable && addAll(ga.follow[X], ga.follow[r.LHS]) {
					changed = true
				}
			}
		})
	}
}

// addAll adds all values of src to dst and reports whether dst grew.
func addAll(dst, src *treeset.Set) bool {
	n := dst.Size()
	dst.Add(src.Values()...)
	return dst.Size() > n
}

// Dump is a debugging helper, tracing FIRST and FOLLOW sets of all
// non-terminals.
func (ga *LLAnalysis) Dump() {
	ga.g.EachNonTerminal(func(N *Symbol) {
		tracer().Debugf("FIRST(%s) = %s   FOLLOW(%s) = %s   ε=%v",
			N, ga.setString(ga.first[N]), N, ga.setString(ga.follow[N]), ga.nullable[N])
	})
}

func (ga *LLAnalysis) setString(S *treeset.Set) string {
	names := make([]string, 0, S.Size())
	for _, v := range S.Values() {
		if T := ga.g.Terminal(v.(int)); T != nil {
			names = append(names, T.Name)
		} else {
			names = append(names, fmt.Sprintf("%d", v))
		}
	}
	return "{" + strings.Join(names, " ") + "}"
}
