package typeparse

import (
	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/options"
	"github.com/oxhq/cppdecl/internal/perrors"
	"github.com/oxhq/cppdecl/internal/scope"
	"github.com/oxhq/cppdecl/internal/stream"
	"github.com/oxhq/cppdecl/internal/token"
)

// prefixKind tags a single declarator prefix operator: `*`, `&`, `&&`, or a
// pointer-to-member `Class::*` (spec.md §4.2 derivations).
type prefixKind int

const (
	prefixPointer prefixKind = iota
	prefixLValueRef
	prefixRValueRef
	prefixMemberPointer
)

type prefixOp struct {
	kind        prefixKind
	cv          ast.CV        // pointer/member-pointer only
	attrs       []ast.Attribute
	memberClass ast.QualifiedName // memberPointer only
	location    ast.Location
}

// suffixKind tags a single declarator suffix: an array dimension or a
// function-parameter list.
type suffixKind int

const (
	suffixArray suffixKind = iota
	suffixFunction
)

type suffixOp struct {
	kind     suffixKind
	location ast.Location

	// suffixArray
	size ast.Tokens // nil for T[]

	// suffixFunction
	parameters     []ast.Parameter
	isVariadic     bool
	cv             ast.CV
	ref            ast.RefKind
	noexcept       ast.NoexceptSpec
	trailingReturn ast.Type
	attrs          []ast.Attribute
}

// declCore is the pure syntactic shape of one declarator, parsed before any
// type is known, mirroring the two-phase "parse structure, then compose
// outward from the base type" strategy spec.md §9 calls for to get
// declarations like `int (*f)(int)` and `int *p[3]` right: prefixes always
// compose onto the base first (innermost), suffixes always compose onto
// that result (outermost among themselves reversed: the derivation closest
// to the name binds tightest), and a parenthesized group recurses before
// either applies to what encloses it.
type declCore struct {
	prefixes []prefixOp
	isGroup  bool
	group    *declCore
	name     ast.QualifiedName
	hasName  bool
	suffixes []suffixOp
}

// compose builds the final Type for core given the already-parsed base
// (decl-specifier-seq) type, applying core's prefixes and suffixes, then
// recursing into any parenthesized group.
func compose(core *declCore, base ast.Type) ast.Type {
	derived := applySuffixes(core.suffixes, applyPrefixes(core.prefixes, base))
	if core.isGroup {
		return compose(core.group, derived)
	}
	return derived
}

func applyPrefixes(prefixes []prefixOp, base ast.Type) ast.Type {
	t := base
	for _, p := range prefixes {
		switch p.kind {
		case prefixPointer:
			t = &ast.PointerType{TypeCommon: ast.TypeCommon{CV: p.cv, Attributes: p.attrs, Location: p.location}, Inner: t}
		case prefixLValueRef:
			t = &ast.ReferenceType{TypeCommon: ast.TypeCommon{Attributes: p.attrs, Location: p.location}, Inner: t, Ref: ast.RefLValue}
		case prefixRValueRef:
			t = &ast.ReferenceType{TypeCommon: ast.TypeCommon{Attributes: p.attrs, Location: p.location}, Inner: t, Ref: ast.RefRValue}
		case prefixMemberPointer:
			t = &ast.MemberPointerType{TypeCommon: ast.TypeCommon{CV: p.cv, Attributes: p.attrs, Location: p.location}, Class: p.memberClass, Inner: t}
		}
	}
	return t
}

func applySuffixes(suffixes []suffixOp, base ast.Type) ast.Type {
	t := base
	// Suffixes are parsed left-to-right as written (`a[3][4]` is `[3]` then
	// `[4]`), but the one closest to the name binds tightest: `a` is an
	// array of 3 arrays of 4. So the list is applied from its last entry
	// inward, leaving the first suffix outermost, and the whole chain ends
	// up outside the prefixes it is layered onto.
	for i := len(suffixes) - 1; i >= 0; i-- {
		s := suffixes[i]
		switch s.kind {
		case suffixArray:
			t = &ast.ArrayType{TypeCommon: ast.TypeCommon{Location: s.location}, Inner: t, Size: s.size}
		case suffixFunction:
			t = &ast.FunctionType{
				TypeCommon:     ast.TypeCommon{CV: s.cv, Attributes: s.attrs, Location: s.location},
				Return:         t,
				Parameters:     s.parameters,
				IsVariadic:     s.isVariadic,
				RefQual:        s.ref,
				Noexcept:       s.noexcept,
				TrailingReturn: s.trailingReturn,
			}
		}
	}
	return t
}

// ComposeDeclarator parses a named declarator and composes it onto base in
// one step; this is the entry point declparse actually uses.
func ComposeDeclarator(ts *stream.Stream, sc *scope.Table, opts options.Options, base ast.Type) (ast.QualifiedName, ast.Type, error) {
	core, err := parseDeclCore(ts, sc, opts, true)
	if err != nil {
		return ast.QualifiedName{}, nil, err
	}
	return innermostName(core), compose(core, base), nil
}

// ComposeAbstractDeclarator parses a declarator that ordinarily carries no
// declarator-id (used for type-ids: template arguments, trailing return
// types, casts, new-expressions) and composes it onto base, discarding any
// name (well-formed type-ids never have one).
func ComposeAbstractDeclarator(ts *stream.Stream, sc *scope.Table, opts options.Options, base ast.Type) (ast.Type, error) {
	_, typ, err := ComposeAbstractOrNamedDeclarator(ts, sc, opts, base)
	return typ, err
}

func innermostName(core *declCore) ast.QualifiedName {
	if core.isGroup {
		return innermostName(core.group)
	}
	return core.name
}

// parseDeclCore parses the structural shape of one declarator: a run of
// prefix operators, then either a parenthesized group (itself a full
// declCore) or a declarator-id (parsed opportunistically whenever present;
// requireName controls only whether its absence is an error, since
// parameter-declarators allow an optional name while ordinary declarators
// do not), then a run of suffixes.
func parseDeclCore(ts *stream.Stream, sc *scope.Table, opts options.Options, requireName bool) (*declCore, error) {
	core := &declCore{}

	for {
		tok, err := ts.Current()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Is("*"):
			ts.Consume()
			attrs, err := ParseAttributeSequence(ts, opts)
			if err != nil {
				return nil, err
			}
			cv, err := parseCVQualifiers(ts)
			if err != nil {
				return nil, err
			}
			core.prefixes = append(core.prefixes, prefixOp{kind: prefixPointer, cv: cv, attrs: attrs, location: tok.Location})
			continue
		case tok.Is("&"):
			ts.Consume()
			attrs, err := ParseAttributeSequence(ts, opts)
			if err != nil {
				return nil, err
			}
			core.prefixes = append(core.prefixes, prefixOp{kind: prefixLValueRef, attrs: attrs, location: tok.Location})
			continue
		case tok.Is("&&"):
			ts.Consume()
			attrs, err := ParseAttributeSequence(ts, opts)
			if err != nil {
				return nil, err
			}
			core.prefixes = append(core.prefixes, prefixOp{kind: prefixRValueRef, attrs: attrs, location: tok.Location})
			continue
		}
		if isMemberPointerStart(ts) {
			cls, loc, err := parseMemberPointerClass(ts, sc, opts)
			if err != nil {
				return nil, err
			}
			attrs, err := ParseAttributeSequence(ts, opts)
			if err != nil {
				return nil, err
			}
			cv, err := parseCVQualifiers(ts)
			if err != nil {
				return nil, err
			}
			core.prefixes = append(core.prefixes, prefixOp{kind: prefixMemberPointer, cv: cv, attrs: attrs, memberClass: cls, location: loc})
			continue
		}
		break
	}

	tok, err := ts.Current()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Is("("):
		// Ambiguous with a function-suffix parameter list only when this is
		// the very first thing in the declarator (no prefixes consumed: a
		// plain name never starts with '('), and what follows is itself a
		// valid nested declarator rather than a parameter-type-list. Since
		// a parenthesized *group* always contains a nested declarator
		// (possibly abstract) while a parameter list always starts with a
		// type, the two are told apart by trying the group parse first at
		// the declarator level, where this function is only ever invoked
		// in a position expecting a declarator.
		ts.Consume()
		inner, err := parseDeclCore(ts, sc, opts, requireName)
		if err != nil {
			return nil, err
		}
		if !ts.Is(")") {
			t, _ := ts.Current()
			return nil, perrors.New(perrors.UnexpectedToken, t.Location, "expected ')' closing grouped declarator, got %q", t.Spelling)
		}
		ts.Consume()
		core.isGroup = true
		core.group = inner
	default:
		if declaratorIDStarts(tok) {
			name, err := ParseQualifiedName(ts, sc, opts)
			if err != nil {
				return nil, err
			}
			core.name = name
			core.hasName = true
		} else if requireName {
			return nil, perrors.New(perrors.UnexpectedToken, tok.Location, "expected declarator-id, got %q", tok.Spelling)
		}
	}

	for {
		tok, err := ts.Current()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Is("["):
			ts.Consume()
			var size ast.Tokens
			if !ts.Is("]") {
				toks, err := ts.CaptureBalanced([]string{"]"}, false)
				if err != nil {
					return nil, err
				}
				size = toks
			}
			if !ts.Is("]") {
				t, _ := ts.Current()
				return nil, perrors.New(perrors.UnexpectedToken, t.Location, "expected ']' closing array declarator")
			}
			ts.Consume()
			core.suffixes = append(core.suffixes, suffixOp{kind: suffixArray, size: size, location: tok.Location})
			continue
		case tok.Is("("):
			fn, err := parseFunctionSuffix(ts, sc, opts, tok.Location)
			if err != nil {
				return nil, err
			}
			core.suffixes = append(core.suffixes, *fn)
			continue
		}
		break
	}

	return core, nil
}

func declaratorIDStarts(tok token.Token) bool {
	return tok.Kind == token.Identifier || tok.Is("::") || tok.Is("~") || tok.Is("operator")
}

// isMemberPointerStart speculatively checks for "QualifiedName :: *" without
// committing, since a bare qualified-name is also how a declarator-id looks.
func isMemberPointerStart(ts *stream.Stream) bool {
	tok, _ := ts.Current()
	if tok.Kind != token.Identifier && !tok.Is("::") {
		return false
	}
	mark := ts.Pos()
	defer ts.Rewind(mark)
	for {
		t, _ := ts.Current()
		if t.Is("::") {
			ts.Consume()
			continue
		}
		if t.Kind != token.Identifier {
			return false
		}
		ts.Consume()
		if ts.Is("::") {
			next, _ := ts.Peek(1)
			if next.Is("*") {
				return true
			}
			ts.Consume()
			continue
		}
		return false
	}
}

func parseMemberPointerClass(ts *stream.Stream, sc *scope.Table, opts options.Options) (ast.QualifiedName, ast.Location, error) {
	loc, _ := ts.Current()
	name, err := ParseQualifiedName(ts, sc, opts)
	if err != nil {
		return ast.QualifiedName{}, loc.Location, err
	}
	if !ts.Is("::") {
		t, _ := ts.Current()
		return ast.QualifiedName{}, loc.Location, perrors.New(perrors.UnexpectedToken, t.Location, "expected '::' in pointer-to-member declarator")
	}
	ts.Consume()
	if !ts.Is("*") {
		t, _ := ts.Current()
		return ast.QualifiedName{}, loc.Location, perrors.New(perrors.UnexpectedToken, t.Location, "expected '*' after '::' in pointer-to-member declarator")
	}
	ts.Consume()
	return name, loc.Location, nil
}

func parseCVQualifiers(ts *stream.Stream) (ast.CV, error) {
	var cv ast.CV
	for {
		switch {
		case ts.Is("const"):
			ts.Consume()
			cv.Const = true
		case ts.Is("volatile"):
			ts.Consume()
			cv.Volatile = true
		default:
			return cv, nil
		}
	}
}

// parseFunctionSuffix parses the `(params) cv ref noexcept attrs -> trailing`
// tail of a function declarator.
func parseFunctionSuffix(ts *stream.Stream, sc *scope.Table, opts options.Options, loc ast.Location) (*suffixOp, error) {
	ts.Consume() // '('
	params, variadic, err := parseParameterList(ts, sc, opts)
	if err != nil {
		return nil, err
	}
	if !ts.Is(")") {
		t, _ := ts.Current()
		return nil, perrors.New(perrors.UnexpectedToken, t.Location, "expected ')' closing parameter list, got %q", t.Spelling)
	}
	ts.Consume()

	cv, err := parseCVQualifiers(ts)
	if err != nil {
		return nil, err
	}

	ref := ast.RefNone
	switch {
	case ts.Is("&"):
		ts.Consume()
		ref = ast.RefLValue
	case ts.Is("&&"):
		ts.Consume()
		ref = ast.RefRValue
	}

	noexcept, err := parseNoexceptSpec(ts)
	if err != nil {
		return nil, err
	}

	attrs, err := ParseAttributeSequence(ts, opts)
	if err != nil {
		return nil, err
	}

	var trailing ast.Type
	if ts.Is("->") {
		ts.Consume()
		trailing, err = ParseTypeID(ts, sc, opts, CtxTrailingReturn)
		if err != nil {
			return nil, err
		}
	}

	return &suffixOp{
		kind: suffixFunction, location: loc,
		parameters: params, isVariadic: variadic,
		cv: cv, ref: ref, noexcept: noexcept,
		trailingReturn: trailing, attrs: attrs,
	}, nil
}

func parseNoexceptSpec(ts *stream.Stream) (ast.NoexceptSpec, error) {
	if !ts.Is("noexcept") {
		return ast.NoexceptSpec{}, nil
	}
	ts.Consume()
	if !ts.Is("(") {
		return ast.NoexceptSpec{Present: true}, nil
	}
	ts.Consume()
	toks, err := ts.CaptureBalanced([]string{")"}, false)
	if err != nil {
		return ast.NoexceptSpec{}, err
	}
	ts.Consume() // ')'
	return ast.NoexceptSpec{Present: true, Expression: toks}, nil
}

// parseParameterList parses a parenthesized parameter-declaration-clause's
// contents (the caller has already consumed the opening '(').
func parseParameterList(ts *stream.Stream, sc *scope.Table, opts options.Options) ([]ast.Parameter, bool, error) {
	var params []ast.Parameter
	if ts.Is(")") {
		return params, false, nil
	}
	// `(void)` is a no-parameter list spelled with a single `void`.
	if ts.Is("void") {
		if next, _ := ts.Peek(1); next.Is(")") {
			ts.Consume()
			return params, false, nil
		}
	}
	for {
		if ts.Is("...") {
			ts.Consume()
			return params, true, nil
		}
		p, err := parseOneParameter(ts, sc, opts)
		if err != nil {
			return nil, false, err
		}
		params = append(params, p)
		if ts.Is(",") {
			ts.Consume()
			continue
		}
		return params, false, nil
	}
}

func parseOneParameter(ts *stream.Stream, sc *scope.Table, opts options.Options) (ast.Parameter, error) {
	loc, _ := ts.Current()
	attrs, err := ParseAttributeSequence(ts, opts)
	if err != nil {
		return ast.Parameter{}, err
	}
	base, err := ParseDeclSpecifiers(ts, sc, opts)
	if err != nil {
		return ast.Parameter{}, err
	}

	isPack := false
	if ts.Is("...") {
		ts.Consume()
		isPack = true
	}

	name := ""
	typ := base
	if declaratorIDStartsOptional(ts) {
		n, t, err := ComposeAbstractOrNamedDeclarator(ts, sc, opts, base)
		if err != nil {
			return ast.Parameter{}, err
		}
		typ = t
		if len(n.Segments) > 0 {
			name = n.Last().Name
		}
	}

	var def ast.Tokens
	if ts.Is("=") {
		ts.Consume()
		toks, err := ts.CaptureBalanced([]string{",", ")"}, false)
		if err != nil {
			return ast.Parameter{}, err
		}
		def = toks
	}

	return ast.Parameter{Type: typ, Name: name, Default: def, Attributes: attrs, IsPack: isPack, Location: loc.Location}, nil
}

func declaratorIDStartsOptional(ts *stream.Stream) bool {
	tok, _ := ts.Current()
	return declaratorIDStarts(tok) || tok.IsAny("*", "&", "&&", "(", "[")
}

// ComposeAbstractOrNamedDeclarator parses one declarator that may or may not
// carry a name (the common case inside a parameter-declaration, where a
// name is optional), composing it onto base.
func ComposeAbstractOrNamedDeclarator(ts *stream.Stream, sc *scope.Table, opts options.Options, base ast.Type) (ast.QualifiedName, ast.Type, error) {
	core, err := parseDeclCore(ts, sc, opts, false)
	if err != nil {
		return ast.QualifiedName{}, nil, err
	}
	return innermostName(core), compose(core, base), nil
}
