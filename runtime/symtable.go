package runtime

import (
	"fmt"
	"sort"

	"github.com/hiibolt/requiem/ast"
)

// --- Tags ------------------------------------------------------------------

// Tag is the type of variable bindings stored into symbol tables. It is not
// called 'Symbol' because grammars consist of symbols, too. Symbols are used
// in the scope of the grammar, tags are used during runtime of a script.
type Tag struct {
	name  string
	Value ast.Expr // a scalar, once assigned
}

// NewTag creates a new, unbound tag.
func NewTag(nm string) *Tag {
	return &Tag{name: nm}
}

// Name gets the tag's name.
func (tag *Tag) Name() string {
	return tag.name
}

// IsBound is true if a value has been assigned to the tag.
func (tag *Tag) IsBound() bool {
	return tag.Value != nil
}

// String is a debug Stringer for tags.
func (tag *Tag) String() string {
	if !tag.IsBound() {
		return fmt.Sprintf("<tag '%s' unbound>", tag.name)
	}
	return fmt.Sprintf("<tag '%s' = %s>", tag.name, tag.Value)
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
type SymbolTable struct {
	Table map[string]*Tag
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{Table: make(map[string]*Tag)}
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	return t.Table[tagname]
}

// ResolveOrDefineTag finds a tag in the table, inserts a new one if not
// found. Returns the tag and a flag, signalling wether the tag has already
// been present.
func (t *SymbolTable) ResolveOrDefineTag(tagname string) (*Tag, bool) {
	if len(tagname) == 0 {
		return nil, false
	}
	if tag := t.ResolveTag(tagname); tag != nil {
		return tag, true
	}
	tag, _ := t.DefineTag(tagname)
	return tag, false
}

// DefineTag creates a new tag to store into the symbol table.
// The tag's name may not be empty.
// Overwrites an existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
func (t *SymbolTable) DefineTag(tagname string) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	tag := NewTag(tagname)
	old := t.Table[tagname]
	t.Table[tagname] = tag
	return tag, old
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Each iterates over each tag in the table in order of names, executing a
// mapper function.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	names := make([]string, 0, len(t.Table))
	for k := range t.Table {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		mapper(k, t.Table[k])
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain variable bindings. Scopes link
// back to a parent scope, forming a tree.
type Scope struct {
	Name   string
	Parent *Scope
	symtab *SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	return &Scope{
		Name:   nm,
		Parent: parent,
		symtab: NewSymbolTable(),
	}
}

func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// ResolveTag finds a tag. Returns the tag (or nil) and a scope. The scope is
// the scope (of a scope-tree-path) the tag was found in.
func (s *Scope) ResolveTag(tagname string) (*Tag, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if tag := sc.symtab.ResolveTag(tagname); tag != nil {
			return tag, sc
		}
	}
	return nil, nil
}

// Resolve returns the value bound to a name, searching parent scopes.
// Unbound tags do not resolve. Resolve is part of the ast.Resolver
// interface.
func (s *Scope) Resolve(name string) (ast.Expr, bool) {
	tag, _ := s.ResolveTag(name)
	if tag == nil || !tag.IsBound() {
		return nil, false
	}
	return tag.Value, true
}

// Set binds a name to a value within this scope, shadowing bindings of
// parent scopes.
func (s *Scope) Set(name string, value ast.Expr) error {
	if name == "" {
		return fmt.Errorf("cannot bind a variable without a name")
	}
	tag, _ := s.symtab.ResolveOrDefineTag(name)
	tag.Value = value
	tracer().P("scope", s.Name).Debugf("%s = %s", name, value)
	return nil
}

// Each iterates over all visible bindings in order of names. Bindings of
// inner scopes shadow those of their parents.
func (s *Scope) Each(mapper func(name string, value ast.Expr, owner *Scope)) {
	for _, b := range s.visible() {
		mapper(b.tag.name, b.tag.Value, b.scope)
	}
}

type binding struct {
	tag   *Tag
	scope *Scope
}

func (s *Scope) visible() []binding {
	seen := make(map[string]bool)
	var bs []binding
	for sc := s; sc != nil; sc = sc.Parent {
		sc.symtab.Each(func(name string, tag *Tag) {
			if seen[name] || !tag.IsBound() {
				return
			}
			seen[name] = true
			bs = append(bs, binding{tag: tag, scope: sc})
		})
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].tag.name < bs[j].tag.name })
	return bs
}

var _ ast.Resolver = (*Scope)(nil)
