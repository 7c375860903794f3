/*
Package syntax implements prerequisites for LL(1) parsing: grammars, static
grammar analysis and prediction tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may contain epsilon-productions.
The first LHS given is the start symbol; the builder augments the grammar
with a rule S' ➞ Start #eof.

Example:

    b := syntax.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ➞  A a
    b.LHS("A").N("B").N("D").End()     // A  ➞  B D
    b.LHS("B").T("b", 2).End()         // B  ➞  b
    b.LHS("B").Epsilon()               // B  ➞
    b.LHS("D").T("d", 3).End()         // D  ➞  d
    b.LHS("D").Epsilon()               // D  ➞
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: [S'] ::= [S #eof]
   1: [S] ::= [A a]
   2: [A] ::= [B D]
   3: [B] ::= [b]
   4: [B] ::= []
   5: [D] ::= [d]
   6: [D] ::= []

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LLAnalysis object, which determines all
epsilon-derivable non-terminals and computes FIRST and FOLLOW sets.

    ga := syntax.Analysis(g)
    ga.First(g.NonTerminal("A"))    // => {2 3}  (b d)
    ga.Nullable(g.NonTerminal("A")) // => true
    ga.Follow(g.NonTerminal("A"))   // => {1}    (a)

Prediction Tables

From the analysis an LL(1) prediction table is constructed. For every
pair (non-terminal, lookahead) it holds the rule to expand. Grammars which
are not LL(1) produce conflicting entries; these are collected and reported
by Table.Err.

    T := ga.Table()
    if err := T.Err(); err != nil {
        // grammar is not LL(1)
    }
    rule, ok := T.Lookup(g.NonTerminal("B"), 2)  // => B ➞ b

Package syntax/ll uses the table to drive a predictive parser.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package syntax

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'requiem.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("requiem.syntax")
}
