package ast

// ScopeKind tags the kind of lexical scope a declaration was found in
// (spec.md §3 Scope).
type ScopeKind string

const (
	ScopeGlobal    ScopeKind = "global"
	ScopeNamespace ScopeKind = "namespace"
	ScopeClass     ScopeKind = "class"
	ScopeTemplate  ScopeKind = "template"
)

// ScopeRef identifies the lexical scope a declaration belongs to by its
// path of enclosing namespace/class names from the global scope, without
// the declaration owning a pointer into the scope tree (spec.md §9 "cyclic
// scope references... avoided by making scope parent links non-owning
// indices").
type ScopeRef struct {
	Kind ScopeKind
	Path []string
}

// Access is a class member's access specifier.
type Access string

const (
	AccessNone      Access = ""
	AccessPublic    Access = "public"
	AccessPrivate   Access = "private"
	AccessProtected Access = "protected"
)
