/*
Package ptree implements parse trees as produced by the parsers of package
syntax/ll, together with a listener-driven traversal.

A parse tree node refers to a grammar symbol. Terminal nodes carry the
input token they matched, non-terminal nodes carry the rule which has been
used to expand them and its children in RHS order. Every node knows the
span of input it covers.

Traversing a parse tree is done with a Listener:

    value := ptree.TopDown(root, listener, ptree.Continue)

The listener sees every rule on entry and on exit, and every terminal. Values
returned from ExitRule and Terminal are propagated upwards and are available
to the parent's ExitRule as RuleNode.Value. This is how AST builders
synthesize their values bottom-up.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package ptree

import (
	"fmt"
	"strings"

	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/syntax"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'requiem.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("requiem.syntax")
}

// Node is a node of a parse tree.
type Node struct {
	Symbol   *syntax.Symbol
	Rule     int           // serial of the expanded rule, -1 for terminals
	Token    requiem.Token // matched token, for terminals only
	Extent   requiem.Span  // input covered by this node
	Children []*Node
}

// NewNode creates a node for sym covering an empty span at position pos.
func NewNode(sym *syntax.Symbol, pos uint64) *Node {
	return &Node{
		Symbol: sym,
		Rule:   -1,
		Extent: requiem.Span{pos, pos},
	}
}

// IsTerminal is true for nodes of terminal symbols.
func (n *Node) IsTerminal() bool {
	return n.Symbol.IsTerminal()
}

// Fix recomputes the extents of all non-terminal nodes from their children.
// Nodes without input keep their (empty) extent.
func (n *Node) Fix() requiem.Span {
	if n.IsTerminal() || len(n.Children) == 0 {
		return n.Extent
	}
	span := requiem.Span{n.Extent.From(), n.Extent.From()}
	for _, ch := range n.Children {
		span = span.Extend(ch.Fix())
	}
	n.Extent = span
	return span
}

func (n *Node) String() string {
	if n.IsTerminal() && n.Token != nil {
		return fmt.Sprintf("%s%v %q", n.Symbol, n.Extent, n.Token.Lexeme())
	}
	return fmt.Sprintf("%s%v", n.Symbol, n.Extent)
}

// Dump is a debugging helper, tracing the tree indented by level.
func (n *Node) Dump() {
	n.dump(0)
}

func (n *Node) dump(level int) {
	tracer().Debugf("%s%s", strings.Repeat("  ", level), n)
	for _, ch := range n.Children {
		ch.dump(level + 1)
	}
}
