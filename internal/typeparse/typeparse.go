package typeparse

import (
	"strings"

	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/options"
	"github.com/oxhq/cppdecl/internal/perrors"
	"github.com/oxhq/cppdecl/internal/scope"
	"github.com/oxhq/cppdecl/internal/stream"
	"github.com/oxhq/cppdecl/internal/token"
)

// fundamentalKeywords are the type-specifier keywords that combine to form
// a built-in type name (spec.md §3 FundamentalType).
var fundamentalKeywords = map[string]bool{
	"void": true, "bool": true, "char": true, "char8_t": true,
	"char16_t": true, "char32_t": true, "wchar_t": true, "short": true,
	"int": true, "long": true, "signed": true, "unsigned": true,
	"float": true, "double": true,
}

// ParseDeclSpecifiers parses one decl-specifier-seq's type-specifier
// portion: leading attributes, interleaved cv-qualifiers, and the core type
// (a fundamental-type keyword run, an elaborated-type-specifier, a
// qualified-name/template-id, `auto`, or a `decltype` specifier), followed
// by trailing cv-qualifiers and attributes (spec.md §4.2). Storage-class
// and function specifiers (static, virtual, friend, constexpr, ...) are not
// type-specifiers and are the caller's (declparse's) responsibility.
func ParseDeclSpecifiers(ts *stream.Stream, sc *scope.Table, opts options.Options) (ast.Type, error) {
	leading, err := ParseAttributeSequence(ts, opts)
	if err != nil {
		return nil, err
	}

	var cv ast.CV
	isTypename := false
	consumeLeadingQualifiers := func() error {
		for {
			switch {
			case ts.Is("const"):
				ts.Consume()
				cv.Const = true
			case ts.Is("volatile"):
				ts.Consume()
				cv.Volatile = true
			case ts.Is("typename"):
				ts.Consume()
				isTypename = true
			default:
				return nil
			}
		}
	}
	if err := consumeLeadingQualifiers(); err != nil {
		return nil, err
	}

	loc, err := ts.Current()
	if err != nil {
		return nil, err
	}

	var base ast.Type
	switch {
	case ts.Is("auto"):
		ts.Consume()
		base = &ast.AutoType{TypeCommon: ast.TypeCommon{Location: loc.Location}}

	case ts.Is("decltype"):
		base, err = parseDecltype(ts, loc.Location)
		if err != nil {
			return nil, err
		}

	case ts.IsAny("class", "struct", "union", "enum"):
		base, err = parseElaboratedType(ts, sc, opts, loc.Location, isTypename)
		if err != nil {
			return nil, err
		}

	case curIsFundamentalKeyword(ts):
		base, err = parseFundamentalType(ts, loc.Location)
		if err != nil {
			return nil, err
		}

	case curTok(ts).Kind == token.Identifier || curTok(ts).Is("::"):
		name, err := ParseQualifiedName(ts, sc, opts)
		if err != nil {
			return nil, err
		}
		base = &ast.NamedType{TypeCommon: ast.TypeCommon{Location: loc.Location}, Name: name, IsTypename: isTypename}

	default:
		return nil, perrors.New(perrors.UnexpectedToken, loc.Location, "expected a type-specifier, got %q", loc.Spelling)
	}

	if err := consumeLeadingQualifiers(); err != nil {
		return nil, err
	}
	trailing, err := ParseAttributeSequence(ts, opts)
	if err != nil {
		return nil, err
	}

	common := base.Common()
	common.CV.Const = common.CV.Const || cv.Const
	common.CV.Volatile = common.CV.Volatile || cv.Volatile
	common.Attributes = append(append(common.Attributes, leading...), trailing...)
	return base, nil
}

func curTok(ts *stream.Stream) token.Token {
	tok, _ := ts.Current()
	return tok
}

func curIsFundamentalKeyword(ts *stream.Stream) bool {
	tok, _ := ts.Current()
	return tok.Kind == token.Keyword && fundamentalKeywords[tok.Spelling]
}

// parseFundamentalType consumes a maximal run of fundamental-type keywords
// and canonicalizes their spelling (spec.md §3 "a space-separated canonical
// spelling"), e.g. `long unsigned int` and `unsigned long` both canonicalize
// to "unsigned long".
func parseFundamentalType(ts *stream.Stream, loc ast.Location) (ast.Type, error) {
	var signed, unsigned bool
	var longCount int
	var short bool
	var base string // "", "int", "char", "bool", "float", "double", "void", "char8_t"...

	for curIsFundamentalKeyword(ts) {
		tok, _ := ts.Current()
		switch tok.Spelling {
		case "signed":
			signed = true
		case "unsigned":
			unsigned = true
		case "short":
			short = true
		case "long":
			longCount++
		case "int":
			if base == "" {
				base = "int"
			}
		default:
			if base != "" && base != "int" {
				return nil, perrors.New(perrors.UnexpectedToken, tok.Location, "conflicting fundamental-type keyword %q after %q", tok.Spelling, base)
			}
			base = tok.Spelling
		}
		ts.Consume()
	}

	var parts []string
	if signed && !unsigned && (base == "char" || base == "") {
		parts = append(parts, "signed")
	} else if unsigned {
		parts = append(parts, "unsigned")
	}
	if short {
		parts = append(parts, "short")
	}
	for i := 0; i < longCount; i++ {
		parts = append(parts, "long")
	}
	switch {
	case base == "" || base == "int":
		if !short && longCount == 0 {
			parts = append(parts, "int")
		}
	default:
		parts = append(parts, base)
	}
	spelling := strings.Join(parts, " ")
	return &ast.FundamentalType{TypeCommon: ast.TypeCommon{Location: loc}, Spelling: spelling}, nil
}

func parseElaboratedType(ts *stream.Stream, sc *scope.Table, opts options.Options, loc ast.Location, isTypename bool) (ast.Type, error) {
	keyTok, _ := ts.Current()
	var key ast.ClassKey
	switch keyTok.Spelling {
	case "class":
		key = ast.ClassKeyClass
	case "struct":
		key = ast.ClassKeyStruct
	case "union":
		key = ast.ClassKeyUnion
	case "enum":
		key = ast.ClassKeyEnum
	}
	ts.Consume()

	if _, err := ParseAttributeSequence(ts, opts); err != nil {
		return nil, err
	}

	name, err := ParseQualifiedName(ts, sc, opts)
	if err != nil {
		return nil, err
	}
	return &ast.NamedType{TypeCommon: ast.TypeCommon{Location: loc}, Name: name, IsTypename: isTypename, ElaboratedKey: key}, nil
}

func parseDecltype(ts *stream.Stream, loc ast.Location) (ast.Type, error) {
	ts.Consume() // 'decltype'
	if !ts.Is("(") {
		t, _ := ts.Current()
		return nil, perrors.New(perrors.UnexpectedToken, t.Location, "expected '(' after decltype")
	}
	ts.Consume()
	if ts.Is("auto") {
		if next, _ := ts.Peek(1); next.Is(")") {
			ts.Consume()
			ts.Consume()
			return &ast.DecltypeAutoType{TypeCommon: ast.TypeCommon{Location: loc}}, nil
		}
	}
	toks, err := ts.CaptureBalanced([]string{")"}, false)
	if err != nil {
		return nil, err
	}
	if !ts.Is(")") {
		t, _ := ts.Current()
		return nil, perrors.New(perrors.UnexpectedToken, t.Location, "expected ')' closing decltype")
	}
	ts.Consume()
	return &ast.DecltypeType{TypeCommon: ast.TypeCommon{Location: loc}, Expression: toks}, nil
}

// ParseTypeID parses a complete type-id: a decl-specifier-seq followed by an
// optional abstract declarator (spec.md §4.2), used wherever a bare type is
// needed rather than a full declaration: template arguments, trailing
// return types, decltype-adjacent casts, and new-expressions. ctx names the
// position the type-id appears in; ParseTypeID parses every position the
// same way and does not read it.
func ParseTypeID(ts *stream.Stream, sc *scope.Table, opts options.Options, ctx Context) (ast.Type, error) {
	base, err := ParseDeclSpecifiers(ts, sc, opts)
	if err != nil {
		return nil, err
	}
	if !isAbstractDeclaratorStart(ts) {
		return base, nil
	}
	return ComposeAbstractDeclarator(ts, sc, opts, base)
}

func isAbstractDeclaratorStart(ts *stream.Stream) bool {
	return ts.IsAny("*", "&", "&&", "(", "[")
}
