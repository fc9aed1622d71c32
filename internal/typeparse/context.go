// Package typeparse implements the Type Parser component (spec.md §4.2):
// fundamental types, qualified names with nested-name-specifiers,
// template-id references, pointer/reference/array/function derivations,
// CV/ref qualifiers, auto/decltype(auto), function-pointer and
// member-pointer types, and elaborated type specifiers. It is the central
// service spec.md §2 says is "consumed by all declaration-level parsers".
package typeparse

// Context tells the type parser what syntactic position it is parsing a
// type expression in, since a handful of productions differ by position
// (spec.md §4.2 "given a starting position and a context flag").
type Context int

const (
	CtxTopLevelDecl Context = iota
	CtxParameter
	CtxTemplateArgument
	CtxTrailingReturn
	CtxNewExpression
)
