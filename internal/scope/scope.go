// Package scope implements the scope-stack half of the Scope & Visitor
// component (spec.md §4.4): a tree of lexical scopes (global namespace,
// nested namespaces, class bodies, template parameter scopes) built lazily
// as declarations nest, tracking which identifiers in scope name types so
// the type parser's declaration-vs-expression heuristics resolve correctly.
package scope

import "github.com/oxhq/cppdecl/internal/ast"

// Scope is one node of the lexical-scope tree. Parent links are non-owning
// indices into Table.nodes, never pointers, so the tree has no cycles to
// manage (spec.md §9 "cyclic scope references... avoided by making scope
// parent links non-owning indices").
type Scope struct {
	Kind      ast.ScopeKind
	Name      string // segment name; empty for global/template scopes
	ParentIdx int    // -1 for the root (global) scope
	Types     map[string]struct{}
	Access    ast.Access // meaningful only when Kind == ast.ScopeClass
}

// Table owns the scope tree and the parser's current path through it.
type Table struct {
	nodes []*Scope
	stack []int
}

// NewTable creates a Table seeded with the global scope (and, optionally,
// caller-supplied known type names — spec.md §6 Options.known_type_names).
func NewTable(knownTypes []string) *Table {
	root := &Scope{Kind: ast.ScopeGlobal, ParentIdx: -1, Types: map[string]struct{}{}}
	for _, t := range knownTypes {
		root.Types[t] = struct{}{}
	}
	t := &Table{nodes: []*Scope{root}}
	t.stack = []int{0}
	return t
}

// Current returns the innermost active scope.
func (t *Table) Current() *Scope {
	return t.nodes[t.stack[len(t.stack)-1]]
}

// CurrentIdx returns the index of the innermost active scope.
func (t *Table) CurrentIdx() int {
	return t.stack[len(t.stack)-1]
}

// Push creates a new child scope of the current scope, makes it current,
// and returns its index (pass to Pop's counterpart implicitly via stack
// discipline — Push/Pop must nest correctly, mirroring the parser's
// entry/exit of the matching delimiter per spec.md §4.4).
func (t *Table) Push(kind ast.ScopeKind, name string) int {
	s := &Scope{Kind: kind, Name: name, ParentIdx: t.CurrentIdx(), Types: map[string]struct{}{}}
	if kind == ast.ScopeClass {
		s.Access = defaultAccessFor(name)
	}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, s)
	t.stack = append(t.stack, idx)
	return idx
}

// PushClass is like Push but seeds the default access specifier from the
// class-key per spec.md §3 invariant ("defaults to private for
// class/union and public for struct").
func (t *Table) PushClass(name string, classKeyIsStruct bool) int {
	s := &Scope{Kind: ast.ScopeClass, Name: name, ParentIdx: t.CurrentIdx(), Types: map[string]struct{}{}}
	if classKeyIsStruct {
		s.Access = ast.AccessPublic
	} else {
		s.Access = ast.AccessPrivate
	}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, s)
	t.stack = append(t.stack, idx)
	return idx
}

func defaultAccessFor(string) ast.Access { return ast.AccessPrivate }

// Pop exits the current scope, restoring its parent as current.
func (t *Table) Pop() {
	t.stack = t.stack[:len(t.stack)-1]
}

// DeclareType records name as naming a type in the current scope (spec.md
// §4.4 "A type-name table is updated at each class/enum/typedef/alias/
// template-type-parameter introduction").
func (t *Table) DeclareType(name string) {
	if name == "" {
		return
	}
	t.Current().Types[name] = struct{}{}
}

// IsType reports whether name is visible as a type name from the current
// scope, walking outward through enclosing scopes (spec.md §4.2 "looked up
// against the current scope's types_in_scope").
func (t *Table) IsType(name string) bool {
	idx := t.CurrentIdx()
	for idx != -1 {
		s := t.nodes[idx]
		if _, ok := s.Types[name]; ok {
			return true
		}
		idx = s.ParentIdx
	}
	return false
}

// SetAccess updates the access specifier in effect for the current class
// scope (spec.md §4.3 "public:/private:/protected: → updates the class
// scope's current access").
func (t *Table) SetAccess(a ast.Access) {
	t.Current().Access = a
}

// CurrentAccess returns the access specifier in effect in the current class
// scope, or ast.AccessNone outside a class.
func (t *Table) CurrentAccess() ast.Access {
	c := t.Current()
	if c.Kind != ast.ScopeClass {
		return ast.AccessNone
	}
	return c.Access
}

// Ref captures the current position as an ast.ScopeRef to attach to a
// declaration (spec.md §3 invariant "every declaration records the scope
// in which it was found").
func (t *Table) Ref() ast.ScopeRef {
	idx := t.CurrentIdx()
	var path []string
	kind := t.nodes[idx].Kind
	for idx != -1 {
		s := t.nodes[idx]
		if s.Name != "" {
			path = append([]string{s.Name}, path...)
		}
		idx = s.ParentIdx
	}
	return ast.ScopeRef{Kind: kind, Path: path}
}
