// Package ast is the public data model (spec.md §3, §6): a tagged,
// serializable tree describing every top-level declaration a header
// introduces, plus the Visitor contract the parser drives during parsing.
package ast

import "github.com/oxhq/cppdecl/internal/token"

// Location identifies a position in a single source file. It is a direct
// alias of token.Location so every token and every AST node shares one
// location representation (spec.md §3).
type Location = token.Location

// Tokens is an opaque, standalone run of tokens captured verbatim — used
// for default arguments, initializers, array sizes, bit-field widths,
// enumerator values, static_assert predicates, and (optionally) function
// bodies (spec.md §9 "opaque token run"). No AST node references tokens
// owned by another node: every Tokens value is its own copy.
type Tokens []token.Token

// Spelling reconstructs a best-effort source-like rendering of t by joining
// spellings with single spaces. It is not guaranteed to round-trip to
// byte-identical source; it exists for diagnostics and pretty-printing.
func (t Tokens) Spelling() string {
	s := ""
	for i, tok := range t {
		if i > 0 {
			s += " "
		}
		s += tok.Spelling
	}
	return s
}
