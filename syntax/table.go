package syntax

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hiibolt/requiem"
)

// Table is an LL(1) prediction table. Rows are non-terminals, columns are
// lookahead token values, entries are rule serials.
//
// The table is sparse and stored as sorted (row, col, rule) triplets
// (COO encoding). Conflicting entries are recorded as Conflicts; the
// first rule entered for a cell stays in the table.
type Table struct {
	g         *Grammar
	entries   []triplet
	conflicts []Conflict
}

type triplet struct {
	row, col int
	rule     int
}

func (t triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

// Conflict is a table cell for which more than one rule is predicted.
type Conflict struct {
	NonTerminal *Symbol
	Lookahead   *Symbol
	Rules       [2]int
}

func (c Conflict) String() string {
	return fmt.Sprintf("conflict at [%s, %s] between rules %d and %d",
		c.NonTerminal, c.Lookahead, c.Rules[0], c.Rules[1])
}

// Table returns the prediction table for the analysed grammar. It is
// created on first use.
func (ga *LLAnalysis) Table() *Table {
	if ga.table == nil {
		ga.table = ga.buildTable()
	}
	return ga.table
}

// For every rule A ➞ α:
//   - for every terminal a in FIRST(α), predict the rule at [A, a]
//   - if α derives ε, predict the rule at [A, b] for every b in FOLLOW(A)
func (ga *LLAnalysis) buildTable() *Table {
	T := &Table{g: ga.g}
	ga.g.EachRule(func(r *Rule) {
		F, nullable := ga.FirstOfSequence(r.rhs)
		for _, a := range F.Values() {
			T.add(r.LHS, a.(int), r.Serial)
		}
		if nullable {
			for _, b := range ga.follow[r.LHS].Values() {
				T.add(r.LHS, b.(int), r.Serial)
			}
		}
	})
	tracer().Debugf("prediction table for %s has %d entries, %d conflicts",
		ga.g.Name, len(T.entries), len(T.conflicts))
	return T
}

func (t *Table) add(A *Symbol, tokval int, serial int) {
	at := t.search(A.Value, tokval)
	if at < len(t.entries) && t.entries[at].row == A.Value && t.entries[at].col == tokval {
		if prev := t.entries[at].rule; prev != serial {
			t.conflicts = append(t.conflicts, Conflict{
				NonTerminal: A,
				Lookahead:   t.g.Terminal(tokval),
				Rules:       [2]int{prev, serial},
			})
		}
		return
	}
	tnew := triplet{row: A.Value, col: tokval, rule: serial}
	t.entries = append(t.entries, tnew)  // make room
	copy(t.entries[at+1:], t.entries[at:]) // shift remainder one index to the right
	t.entries[at] = tnew
}

// search returns the index of the first triplet not stored left of (i,j).
func (t *Table) search(i, j int) int {
	return sort.Search(len(t.entries), func(k int) bool {
		return !t.entries[k].storedLeftOf(i, j)
	})
}

// Lookup returns the rule predicted for non-terminal A and lookahead tok.
func (t *Table) Lookup(A *Symbol, tok requiem.TokType) (*Rule, bool) {
	at := t.search(A.Value, int(tok))
	if at < len(t.entries) && t.entries[at].row == A.Value && t.entries[at].col == int(tok) {
		return t.g.Rule(t.entries[at].rule), true
	}
	return nil, false
}

// Expected returns the terminals for which a rule is predicted for A,
// ordered by token value.
func (t *Table) Expected(A *Symbol) []*Symbol {
	var syms []*Symbol
	for k := t.search(A.Value, minInt); k < len(t.entries) && t.entries[k].row == A.Value; k++ {
		syms = append(syms, t.g.Terminal(t.entries[k].col))
	}
	return syms
}

const minInt = -int(^uint(0)>>1) - 1

// Size returns the number of entries.
func (t *Table) Size() int {
	return len(t.entries)
}

// Conflicts returns all conflicts found while building the table.
func (t *Table) Conflicts() []Conflict {
	return t.conflicts
}

// Err returns an error if the grammar is not LL(1), nil otherwise.
func (t *Table) Err() error {
	if len(t.conflicts) == 0 {
		return nil
	}
	msgs := make([]string, len(t.conflicts))
	for i, c := range t.conflicts {
		msgs[i] = c.String()
	}
	return fmt.Errorf("grammar %s is not LL(1): %s", t.g.Name, strings.Join(msgs, "; "))
}
