package ast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/syntax"
	"github.com/hiibolt/requiem/syntax/ptree"
)

// Rewriter synthesizes the value of a non-terminal from the values of its
// right-hand side. Values of terminals are their tokens; values of
// non-terminals are whatever their rewriters returned.
type Rewriter func(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error)

// Builder is a parse tree listener for building typed program
// representations. Language packages register a Rewriter for every
// grammar symbol which should produce a value. Symbols without a rewriter
// pass the value of their single valued child upwards.
//
// Building stops at the first error. The error is located at the start of
// the rule which produced it.
type Builder struct {
	sourceID  string
	source    string
	rewriters map[string]Rewriter
	err       error
}

// NewBuilder creates an AST builder for a named source text. The source is
// used for locating errors.
func NewBuilder(sourceID, source string) *Builder {
	return &Builder{
		sourceID:  sourceID,
		source:    source,
		rewriters: make(map[string]Rewriter),
	}
}

// AddRewriter adds a rewriter for a non-terminal grammar symbol.
func (b *Builder) AddRewriter(grammarSymbol string, rew Rewriter) {
	if rew != nil {
		tracer().Debugf("adding rewriter for symbol %s", grammarSymbol)
		b.rewriters[grammarSymbol] = rew
	}
}

// Build walks a parse tree and returns the value synthesized for its root.
func (b *Builder) Build(tree *ptree.Node) (interface{}, error) {
	if tree == nil {
		return nil, requiem.Errorf(requiem.BuildError, "building", errors.New("no parse tree"))
	}
	b.err = nil
	value := ptree.TopDown(tree, b, ptree.Break)
	if b.err != nil {
		return nil, b.err
	}
	tracer().Debugf("AST creation returned %v", value)
	return value, nil
}

var _ ptree.Listener = (*Builder)(nil)

// EnterRule is part of the ptree.Listener interface.
// Not intended for direct client use.
func (b *Builder) EnterRule(sym *syntax.Symbol, rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) bool {
	return b.err == nil
}

// ExitRule is part of the ptree.Listener interface.
// Not intended for direct client use.
func (b *Builder) ExitRule(sym *syntax.Symbol, rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) interface{} {
	if b.err != nil {
		return nil
	}
	rew, ok := b.rewriters[sym.Name]
	if !ok {
		return passThrough(rhs)
	}
	value, err := rew(rhs, ctxt)
	if err != nil {
		b.fail(sym, ctxt, err)
		return nil
	}
	return value
}

// Terminal is part of the ptree.Listener interface.
// Not intended for direct client use.
func (b *Builder) Terminal(tok requiem.Token, ctxt ptree.RuleCtxt) interface{} {
	if tok == nil {
		return nil
	}
	return tok
}

func (b *Builder) fail(sym *syntax.Symbol, ctxt ptree.RuleCtxt, err error) {
	var rerr *requiem.Error
	if errors.As(err, &rerr) && rerr.Kind == requiem.BuildError {
		b.err = err
		return
	}
	op := fmt.Sprintf("building %s %q", sym.Name, snippet(ctxt.Span.Text(b.source)))
	pos := requiem.PositionOf(b.sourceID, b.source, ctxt.Span.From())
	b.err = requiem.Errorf(requiem.BuildError, op, err).At(pos)
	tracer().Infof("%v", b.err)
}

// passThrough returns the single non-nil value of rhs, a slice of them if
// there are more, or nil.
func passThrough(rhs []*ptree.RuleNode) interface{} {
	var values []interface{}
	for _, r := range rhs {
		if r.Value != nil {
			values = append(values, r.Value)
		}
	}
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	}
	return values
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if r := []rune(s); len(r) > 32 {
		s = string(r[:32]) + "…"
	}
	return s
}
