package ptree

import (
	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/syntax"
)

// RuleNode represents a node occuring during a parse tree walk.
type RuleNode struct {
	node  *Node
	Value interface{} // user-defined value of a node
}

// Symbol returns the grammar symbol a RuleNode refers to.
func (rnode *RuleNode) Symbol() *syntax.Symbol {
	return rnode.node.Symbol
}

// Span returns the span of input symbols this node covers.
func (rnode *RuleNode) Span() requiem.Span {
	return rnode.node.Extent
}

// Token returns the input token of a terminal node, or nil.
func (rnode *RuleNode) Token() requiem.Token {
	return rnode.node.Token
}

// Node returns the underlying parse tree node.
func (rnode *RuleNode) Node() *Node {
	return rnode.node
}

// Breakmode is a client hint wether to stop traversing on break-signals or not.
type Breakmode int

// Setting Continue will always traverse a complete (sub-)tree. Break will skip
// traversing a sub-tree as soon as EnterRule signals a break.
const (
	Continue Breakmode = iota
	Break
)

// TopDown traverses a (sub-)tree top-down, left to right, applying Listener
// methods for all nodes encountered. It returns the user-defined value
// calculated by the listener for node n.
func TopDown(n *Node, listener Listener, breakmode Breakmode) interface{} {
	if n == nil {
		return nil
	}
	tracer().Debugf("TopDown starting at node %v", n)
	return traverse(n, listener, breakmode, 0)
}

func traverse(n *Node, listener Listener, breakmode Breakmode, level int) interface{} {
	if n.IsTerminal() {
		ctxt := makeCtxt(n.Extent, level, -1)
		return listener.Terminal(n.Token, ctxt)
	}
	rhsNodes := make([]*RuleNode, len(n.Children))
	for i, ch := range n.Children {
		rhsNodes[i] = &RuleNode{node: ch}
	}
	ctxt := makeCtxt(n.Extent, level, n.Rule)
	doContinue := listener.EnterRule(n.Symbol, rhsNodes, ctxt)
	if doContinue || breakmode == Continue {
		for i, ch := range n.Children {
			rhsNodes[i].Value = traverse(ch, listener, breakmode, level+1)
		}
	}
	return listener.ExitRule(n.Symbol, rhsNodes, ctxt)
}

// --- Listener --------------------------------------------------------------

// Listener is a type for walking a parse tree.
//
// Arguments are:
//
//     - *syntax.Symbol: the grammar symbol at the current node
//     - []*RuleNode:    the right-hand side of the grammar production at this node
//     - RuleCtxt:       contextual information for the node
//
// EnterRule returns a boolean value indicating if the traversal should continue to
// the children of this node. ExitRule and Terminal may return user-defined values
// to be propagated upwards of the tree.
type Listener interface {
	EnterRule(*syntax.Symbol, []*RuleNode, RuleCtxt) bool
	ExitRule(*syntax.Symbol, []*RuleNode, RuleCtxt) interface{}
	Terminal(requiem.Token, RuleCtxt) interface{}
}

// RuleCtxt is a context structure for Listeners.
type RuleCtxt struct {
	Span      requiem.Span // span of input symbols covered by this rule
	Level     int          // nesting level
	RuleIndex int          // -1 for terminals
}

func makeCtxt(span requiem.Span, level int, rule int) RuleCtxt {
	return RuleCtxt{
		Span:      span,
		Level:     level,
		RuleIndex: rule,
	}
}
