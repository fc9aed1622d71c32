// Package declparse implements the Declaration Parser (spec.md §4.3): the
// recursive-descent engine that recognizes namespaces, classes/structs/
// unions, enums, functions, variables, typedefs/aliases, using-declarations,
// friend declarations, static_asserts, extern "C" blocks, templates, and
// concepts, driving the Scope & Visitor component (internal/scope,
// internal/ast's Visitor) as it goes. It is the outermost layer; it
// delegates every type expression to internal/typeparse.
package declparse

import (
	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/lexer"
	"github.com/oxhq/cppdecl/internal/options"
	"github.com/oxhq/cppdecl/internal/perrors"
	"github.com/oxhq/cppdecl/internal/scope"
	"github.com/oxhq/cppdecl/internal/source"
	"github.com/oxhq/cppdecl/internal/stream"
	"github.com/oxhq/cppdecl/internal/token"
	"github.com/oxhq/cppdecl/internal/typeparse"
)

// Parser drives a single translation unit's parse.
type Parser struct {
	ts      *stream.Stream
	sc      *scope.Table
	opts    options.Options
	visitor ast.Visitor
	diags   []perrors.Diagnostic
}

// Parse lexes and parses src (named filename, for diagnostics) under opts,
// returning the resulting AST, any recovered diagnostics, and a non-nil
// error only when parsing aborted on a fatal error (spec.md §6 Parse entry
// point, §7 error policy).
func Parse(src, filename string, opts options.Options) (*ast.TranslationUnit, []perrors.Diagnostic, error) {
	r := source.New(src, filename)
	lx := lexer.New(r, lexer.Options{
		RetainDoxygenComments: opts.RetainDoxygenComments,
		PreprocessorLines:     string(opts.PreprocessorLines),
	})
	ts := stream.New(lx)
	sc := scope.NewTable(opts.KnownTypeNames)
	b := ast.NewBuilder(filename)

	p := &Parser{ts: ts, sc: sc, opts: opts, visitor: b}
	err := p.parseSequence(nil)
	return b.Unit(), p.diags, err
}

// parseSequence parses declarations until EOF or a token in stopAt is seen
// at the top of this sequence (used for `}` closing a namespace/class/extern
// block). A recoverable (Unsupported) error skips to the next plausible
// declaration boundary and is recorded as a diagnostic rather than aborting.
func (p *Parser) parseSequence(stopAt []string) error {
	for {
		if p.ts.AtEOF() {
			return nil
		}
		if len(stopAt) > 0 && p.ts.IsAny(stopAt...) {
			return nil
		}
		if err := p.parseOneDeclaration(); err != nil {
			pe, ok := err.(*perrors.ParseError)
			if !ok || pe.Code.Fatal() {
				return err
			}
			p.diags = append(p.diags, perrors.Diagnostic{Code: pe.Code, Message: pe.Message, Location: pe.Location})
			p.recoverToBoundary()
		}
	}
}

// recoverToBoundary skips tokens until a ';' (consumed) or a '}' (not
// consumed, so the caller's own close-brace check still fires) or EOF,
// matching spec.md §7's "skip to the next statement-like boundary" policy.
func (p *Parser) recoverToBoundary() {
	depth := 0
	for {
		if p.ts.AtEOF() {
			return
		}
		switch {
		case p.ts.Is("{"):
			depth++
			p.ts.Consume()
		case p.ts.Is("}"):
			if depth == 0 {
				return
			}
			depth--
			p.ts.Consume()
		case p.ts.Is(";"):
			p.ts.Consume()
			if depth == 0 {
				return
			}
		default:
			p.ts.Consume()
		}
	}
}

func (p *Parser) current() token.Token {
	tok, _ := p.ts.Current()
	return tok
}

func (p *Parser) expect(spelling, what string) (token.Token, error) {
	tok, ok := p.ts.Expect(spelling)
	if !ok {
		cur := p.current()
		return token.Token{}, perrors.New(perrors.UnexpectedToken, cur.Location, "expected %s, got %q", what, cur.Spelling)
	}
	return tok, nil
}

// parseOneDeclaration dispatches on the current token to recognize exactly
// one top-level construct, invoking the appropriate visitor event(s).
func (p *Parser) parseOneDeclaration() error {
	tok := p.current()

	switch {
	case tok.Kind == token.PPLine:
		p.ts.Consume()
		p.visitor.OnPragma(&ast.PragmaOrIncludeDecl{
			DeclCommon: ast.DeclCommon{Location: tok.Location, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
			Raw:        tok.Spelling,
		})
		return nil

	case tok.Is(";"):
		p.ts.Consume()
		return nil

	case tok.Is("namespace"), tok.Is("inline") && p.peekIs(1, "namespace"):
		return p.parseNamespace(nil)

	case tok.Is("enum"):
		return p.parseEnum(nil)

	case tok.Is("using"):
		return p.parseUsing()

	case tok.Is("template"):
		return p.parseTemplateHeaded()

	case tok.Is("friend"):
		return p.parseFriend()

	case tok.Is("static_assert"):
		return p.parseStaticAssert()

	case tok.Is("concept"):
		return p.parseConcept(nil)

	case tok.Is("extern") && p.peekIsStringLiteral(1):
		return p.parseExternBlock()

	case tok.IsAny("public", "private", "protected") && p.peekIs(1, ":"):
		return p.parseAccessSpecifier()

	case tok.IsAny("class", "struct", "union") && p.classLikeStartsDefinition():
		return p.parseClassLike(nil, nil)

	default:
		return p.parseGeneralDeclaration()
	}
}

func (p *Parser) parseGeneralDeclaration() error {
	return p.parseGeneralDeclarationImpl(nil)
}

func (p *Parser) parseGeneralDeclarationTemplated(tpl *ast.TemplateParameterList) error {
	return p.parseGeneralDeclarationImpl(tpl)
}

func (p *Parser) peekIs(k int, spelling string) bool {
	tok, _ := p.ts.Peek(k)
	return tok.Is(spelling)
}

func (p *Parser) peekIsStringLiteral(k int) bool {
	tok, _ := p.ts.Peek(k)
	return tok.Kind == token.StringLit
}

func (p *Parser) parseAccessSpecifier() error {
	tok := p.current()
	p.ts.Consume()
	p.ts.Consume() // ':'
	var a ast.Access
	switch tok.Spelling {
	case "public":
		a = ast.AccessPublic
	case "private":
		a = ast.AccessPrivate
	case "protected":
		a = ast.AccessProtected
	}
	p.sc.SetAccess(a)
	return nil
}

// parseBaseType is a small convenience wrapper around
// typeparse.ParseDeclSpecifiers used by most declarations: it parses the
// leading attribute sequence and the base type in one step, folding the
// attributes into the returned type rather than returning them separately.
func (p *Parser) parseBaseType() (ast.Type, error) {
	return typeparse.ParseDeclSpecifiers(p.ts, p.sc, p.opts)
}
