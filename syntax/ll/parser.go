/*
Package ll implements a table-driven predictive parser for LL(1) grammars.

The parser is constructed from a grammar analysis (see package syntax) and
consumes tokens from a scanner.Tokenizer. Its result is a parse tree (see
package syntax/ptree) rooted at the augmented start symbol S'.

    ga := syntax.Analysis(g)
    parser, err := ll.NewParser(ga)   // fails if g is not LL(1)
    tree, err := parser.Parse(scan)

On a syntax error the parser stops at the first offending token and returns
a *ParseError, carrying the token and the set of expected terminals.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package ll

import (
	"fmt"
	"strings"

	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/syntax"
	"github.com/hiibolt/requiem/syntax/ptree"
	"github.com/hiibolt/requiem/syntax/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'requiem.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("requiem.syntax")
}

// Parser is a predictive LL(1) parser. A parser may be re-used for
// subsequent inputs, but is not safe for concurrent use.
type Parser struct {
	ga    *syntax.LLAnalysis
	table *syntax.Table
}

// NewParser creates a parser for an analysed grammar. It returns an error if
// the grammar is not LL(1).
func NewParser(ga *syntax.LLAnalysis) (*Parser, error) {
	T := ga.Table()
	if err := T.Err(); err != nil {
		return nil, err
	}
	return &Parser{ga: ga, table: T}, nil
}

type frame struct {
	sym  *syntax.Symbol
	node *ptree.Node
}

// Parse reads tokens from scan until #eof and returns the parse tree.
func (p *Parser) Parse(scan scanner.Tokenizer) (*ptree.Node, error) {
	g := p.ga.Grammar()
	la := scan.NextToken()
	root := ptree.NewNode(g.Start(), la.Span().From())
	stack := []frame{{sym: g.Start(), node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.sym.IsTerminal() {
			if la.TokType() != top.sym.TokenType() {
				return nil, p.unexpected(la, top.sym, []*syntax.Symbol{top.sym})
			}
			tracer().Debugf("match %s %q", top.sym, la.Lexeme())
			top.node.Token = la
			top.node.Extent = la.Span()
			if la.TokType() != scanner.EOF {
				la = scan.NextToken()
			}
			continue
		}
		rule, ok := p.table.Lookup(top.sym, la.TokType())
		if !ok {
			return nil, p.unexpected(la, top.sym, p.table.Expected(top.sym))
		}
		tracer().Debugf("expand %s", rule)
		top.node.Rule = rule.Serial
		rhs := rule.RHS()
		top.node.Children = make([]*ptree.Node, len(rhs))
		for i, X := range rhs {
			top.node.Children[i] = ptree.NewNode(X, la.Span().From())
		}
		for i := len(rhs) - 1; i >= 0; i-- {
			stack = append(stack, frame{sym: rhs[i], node: top.node.Children[i]})
		}
	}
	root.Fix()
	return root, nil
}

func (p *Parser) unexpected(tok requiem.Token, at *syntax.Symbol, expected []*syntax.Symbol) error {
	err := &ParseError{Token: tok, Symbol: at, Expected: expected}
	tracer().Debugf("%v", err)
	return err
}

// ParseError is returned for input which does not conform to the grammar.
type ParseError struct {
	Token    requiem.Token    // offending lookahead
	Symbol   *syntax.Symbol   // symbol the parser tried to derive or match
	Expected []*syntax.Symbol // terminals which would have been acceptable
}

func (e *ParseError) Error() string {
	found := fmt.Sprintf("%q", e.Token.Lexeme())
	if e.Token.TokType() == scanner.EOF {
		found = "end of input"
	}
	names := make([]string, len(e.Expected))
	for i, T := range e.Expected {
		names[i] = T.Name
	}
	if len(names) == 1 {
		return fmt.Sprintf("unexpected %s, expected %s", found, names[0])
	}
	return fmt.Sprintf("unexpected %s while parsing %s, expected one of [%s]",
		found, e.Symbol, strings.Join(names, " "))
}

// Span returns the input span of the offending token.
func (e *ParseError) Span() requiem.Span {
	return e.Token.Span()
}
