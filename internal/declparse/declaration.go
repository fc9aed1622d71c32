package declparse

import (
	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/options"
	"github.com/oxhq/cppdecl/internal/perrors"
	"github.com/oxhq/cppdecl/internal/stream"
	"github.com/oxhq/cppdecl/internal/token"
	"github.com/oxhq/cppdecl/internal/typeparse"
)

// declSpecifiers accumulates the storage-class and function specifiers that
// precede a decl-specifier-seq's type portion (spec.md §4.3): these are not
// type-specifiers, so typeparse never sees them.
type declSpecifiers struct {
	isTypedef                                            bool
	isStatic, isExtern, isMutable, isThreadLocal          bool
	isConstexpr, isConsteval, isConstinit                bool
	isInline, isVirtual, isExplicit                       bool
}

func (p *Parser) consumeSpecifiers() declSpecifiers {
	var s declSpecifiers
	for {
		switch {
		case p.ts.Is("typedef"):
			s.isTypedef = true
			p.ts.Consume()
		case p.ts.Is("static"):
			s.isStatic = true
			p.ts.Consume()
		case p.ts.Is("extern") && !p.peekIsStringLiteral(1):
			s.isExtern = true
			p.ts.Consume()
		case p.ts.Is("mutable"):
			s.isMutable = true
			p.ts.Consume()
		case p.ts.Is("thread_local"):
			s.isThreadLocal = true
			p.ts.Consume()
		case p.ts.Is("constexpr"):
			s.isConstexpr = true
			p.ts.Consume()
		case p.ts.Is("consteval"):
			s.isConsteval = true
			p.ts.Consume()
		case p.ts.Is("constinit"):
			s.isConstinit = true
			p.ts.Consume()
		case p.ts.Is("inline"):
			s.isInline = true
			p.ts.Consume()
		case p.ts.Is("virtual"):
			s.isVirtual = true
			p.ts.Consume()
		case p.ts.Is("explicit"):
			s.isExplicit = true
			p.ts.Consume()
			if p.ts.Is("(") {
				p.ts.Consume()
				p.ts.CaptureBalanced([]string{")"}, false)
				p.ts.Consume() // ')'
			}
		default:
			return s
		}
	}
}

func (p *Parser) currentClassName() string {
	c := p.sc.Current()
	if c.Kind != ast.ScopeClass {
		return ""
	}
	return c.Name
}

func peekIsOpenParen(ts *stream.Stream) bool {
	next, _ := ts.Peek(1)
	return next.Is("(")
}

// parseGeneralDeclarationImpl is the core dispatcher for everything that
// isn't a namespace/using/template/friend/static_assert/concept/extern-block/
// access-specifier: typedefs, variables, functions (ordinary, special
// members, operator overloads), and structured bindings (spec.md §3
// Variable/Function/Typedef).
func (p *Parser) parseGeneralDeclarationImpl(tpl *ast.TemplateParameterList) error {
	loc := p.current().Location
	attrs, err := typeparse.ParseAttributeSequence(p.ts, p.opts)
	if err != nil {
		return err
	}
	spec := p.consumeSpecifiers()

	if spec.isTypedef {
		return p.parseTypedef(attrs, loc)
	}

	className := p.currentClassName()
	tok := p.current()
	isSpecialStart := p.ts.Is("~") || p.ts.Is("operator") ||
		(className != "" && tok.Kind == token.Identifier && tok.Spelling == className && peekIsOpenParen(p.ts))

	var base ast.Type
	if !isSpecialStart {
		base, err = typeparse.ParseDeclSpecifiers(p.ts, p.sc, p.opts)
		if err != nil {
			return err
		}
	}
	return p.parseDeclaratorListFull(base, attrs, spec, tpl, loc)
}

func (p *Parser) parseTypedef(attrs []ast.Attribute, loc ast.Location) error {
	base, err := typeparse.ParseDeclSpecifiers(p.ts, p.sc, p.opts)
	if err != nil {
		return err
	}
	for {
		name, typ, err := typeparse.ComposeDeclarator(p.ts, p.sc, p.opts, base)
		if err != nil {
			return err
		}
		nm := nameOf(name)
		p.sc.DeclareType(nm)
		p.visitor.OnTypedef(&ast.TypedefDecl{
			DeclCommon: ast.DeclCommon{Attributes: attrs, Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
			Name:       nm,
			Type:       typ,
		})
		if p.ts.Is(",") {
			p.ts.Consume()
			continue
		}
		break
	}
	_, err = p.expect(";", "';' after typedef")
	return err
}

func nameOf(q ast.QualifiedName) string {
	if len(q.Segments) == 0 {
		return ""
	}
	return q.Last().Name
}

// parseDeclaratorList parses a bare declarator-list (no specifiers, no
// leading attributes) sharing base as their common type, terminated by ';'.
// Used for the trailing instance-declarator form after a class/enum body.
func (p *Parser) parseDeclaratorList(base ast.Type, loc ast.Location, tpl *ast.TemplateParameterList) error {
	return p.parseDeclaratorListFull(base, nil, declSpecifiers{}, tpl, loc)
}

// parseFunctionOrVariableAfterBase parses exactly one declarator onto base
// and returns the resulting Decl without emitting it through the visitor,
// so callers (friend declarations) can wrap it themselves.
func (p *Parser) parseFunctionOrVariableAfterBase(base ast.Type, tpl *ast.TemplateParameterList, loc ast.Location) (ast.Decl, error) {
	return p.parseOneDeclaratorAsDecl(base, nil, declSpecifiers{}, tpl, loc)
}

func declaratorFollows(ts *stream.Stream) bool {
	tok, _ := ts.Peek(0)
	if tok.Kind == token.Identifier {
		return true
	}
	return tok.IsAny("*", "&", "&&", "(", "::", "~", "operator")
}

func (p *Parser) parseDeclaratorListFull(base ast.Type, attrs []ast.Attribute, spec declSpecifiers, tpl *ast.TemplateParameterList, loc ast.Location) error {
	for {
		decl, err := p.parseOneDeclaratorAsDecl(base, attrs, spec, tpl, loc)
		if err != nil {
			return err
		}
		if fn, ok := decl.(*ast.FunctionDecl); ok {
			p.visitor.OnFunction(fn)
			// parseFunctionTail already consumed the body or trailing ';'.
			return nil
		}
		p.visitor.OnVariable(decl.(*ast.VariableDecl))
		if p.ts.Is(",") {
			p.ts.Consume()
			continue
		}
		break
	}
	_, err := p.expect(";", "';' after declaration")
	return err
}

func classifySpecial(name ast.QualifiedName, className string) ast.FunctionSpecialKind {
	last := name.Last()
	switch last.Kind {
	case ast.SegDestructor:
		return ast.FunctionDestructor
	case ast.SegConversion:
		return ast.FunctionConversion
	case ast.SegOperator:
		if last.LiteralSuffix != "" {
			return ast.FunctionUserDefinedLiteral
		}
		return ast.FunctionOperatorOverload
	case ast.SegIdentifier, ast.SegTemplateID:
		if className != "" && last.Name == className {
			return ast.FunctionConstructor
		}
	}
	return ast.FunctionOrdinary
}

func (p *Parser) parseOneDeclaratorAsDecl(base ast.Type, attrs []ast.Attribute, spec declSpecifiers, tpl *ast.TemplateParameterList, loc ast.Location) (ast.Decl, error) {
	if _, ok := base.(*ast.AutoType); ok && p.ts.Is("[") {
		return p.parseStructuredBinding(base, attrs, spec, loc)
	}

	name, typ, err := typeparse.ComposeDeclarator(p.ts, p.sc, p.opts, base)
	if err != nil {
		return nil, err
	}

	if ft, ok := typ.(*ast.FunctionType); ok {
		fn := &ast.FunctionDecl{
			DeclCommon:     ast.DeclCommon{Attributes: append(attrs, ft.Attributes...), Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
			Name:           name,
			ReturnType:     ft.Return,
			Parameters:     ft.Parameters,
			IsVariadic:     ft.IsVariadic,
			CV:             ft.CV,
			RefQual:        ft.RefQual,
			Noexcept:       ft.Noexcept,
			TrailingReturn: ft.TrailingReturn,
			IsVirtual:      spec.isVirtual,
			IsExplicit:     spec.isExplicit,
			IsConstexpr:    spec.isConstexpr,
			IsConsteval:    spec.isConsteval,
			IsConstinit:    spec.isConstinit,
			IsStatic:       spec.isStatic,
			IsInline:       spec.isInline,
			Template:       tpl,
		}
		fn.Special = classifySpecial(name, p.currentClassName())
		if err := p.parseFunctionTail(fn); err != nil {
			return nil, err
		}
		return fn, nil
	}

	v := &ast.VariableDecl{
		DeclCommon:    ast.DeclCommon{Attributes: attrs, Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
		Type:          typ,
		Name:          nameOf(name),
		IsStatic:      spec.isStatic,
		IsExtern:      spec.isExtern,
		IsConstexpr:   spec.isConstexpr,
		IsInline:      spec.isInline,
		IsThreadLocal: spec.isThreadLocal,
		IsMutable:     spec.isMutable,
		Template:      tpl,
	}
	if p.ts.Is(":") {
		p.ts.Consume()
		width, err := p.ts.CaptureBalanced([]string{",", ";"}, false)
		if err != nil {
			return nil, err
		}
		v.BitfieldWidth = width
	} else if p.ts.Is("=") || p.ts.Is("{") {
		init, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		v.Initializer = init
	}
	return v, nil
}

func (p *Parser) parseStructuredBinding(base ast.Type, attrs []ast.Attribute, spec declSpecifiers, loc ast.Location) (ast.Decl, error) {
	p.ts.Consume() // '['
	var names []string
	for {
		tok := p.current()
		if tok.Kind != token.Identifier {
			return nil, perrors.New(perrors.UnexpectedToken, tok.Location, "expected identifier in structured binding, got %q", tok.Spelling)
		}
		names = append(names, tok.Spelling)
		p.ts.Consume()
		if p.ts.Is(",") {
			p.ts.Consume()
			continue
		}
		break
	}
	if _, err := p.expect("]", "']' closing structured binding"); err != nil {
		return nil, err
	}
	v := &ast.VariableDecl{
		DeclCommon:             ast.DeclCommon{Attributes: attrs, Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
		Type:                   base,
		IsStatic:               spec.isStatic,
		IsConstexpr:            spec.isConstexpr,
		IsThreadLocal:          spec.isThreadLocal,
		StructuredBindingNames: names,
	}
	if p.ts.Is("=") || p.ts.Is("{") {
		init, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		v.Initializer = init
	}
	return v, nil
}

func (p *Parser) parseInitializer() (ast.Tokens, error) {
	if p.ts.Is("=") {
		p.ts.Consume()
		return p.ts.CaptureBalanced([]string{",", ";"}, false)
	}
	open := p.current()
	p.ts.Consume() // '{'
	body, err := p.ts.CaptureBalanced([]string{"}"}, false)
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expect("}", "'}' closing brace-initializer")
	if err != nil {
		return nil, err
	}
	out := append(ast.Tokens{open}, body...)
	out = append(out, closeTok)
	return out, nil
}

func (p *Parser) parseOneMemberInitializer() (ast.MemberInitializer, error) {
	loc := p.current().Location
	target, err := typeparse.ParseQualifiedName(p.ts, p.sc, p.opts)
	if err != nil {
		return ast.MemberInitializer{}, err
	}
	braced := p.ts.Is("{")
	open, close := "(", ")"
	if braced {
		open, close = "{", "}"
	}
	if _, err := p.expect(open, "'(' or '{' opening member-initializer"); err != nil {
		return ast.MemberInitializer{}, err
	}
	args, err := p.ts.CaptureBalanced([]string{close}, false)
	if err != nil {
		return ast.MemberInitializer{}, err
	}
	if _, err := p.expect(close, "closing member-initializer"); err != nil {
		return ast.MemberInitializer{}, err
	}
	return ast.MemberInitializer{Target: target, Args: args, IsBraced: braced, Location: loc}, nil
}

func (p *Parser) consumeBody(retain bool) ast.Tokens {
	var out ast.Tokens
	depth := 0
	for {
		tok := p.current()
		if tok.Kind == token.Eof {
			return out
		}
		if tok.Is("{") {
			depth++
		} else if tok.Is("}") {
			depth--
		}
		if retain {
			out = append(out, tok)
		}
		p.ts.Consume()
		if depth == 0 {
			return out
		}
	}
}

// parseFunctionTail parses what follows a function declarator: context-
// sensitive override/final, pure/default/deleted specifiers, a constructor's
// member-initializer list, and finally a body or ';' (spec.md §3 Function
// invariants, §1 "override/final... matched positionally, not as keywords").
func (p *Parser) parseFunctionTail(fn *ast.FunctionDecl) error {
	for {
		tok := p.current()
		if tok.Kind == token.Identifier && tok.Spelling == "override" {
			fn.IsOverride = true
			p.ts.Consume()
			continue
		}
		if tok.Kind == token.Identifier && tok.Spelling == "final" {
			fn.IsFinalSpec = true
			p.ts.Consume()
			continue
		}
		break
	}

	if p.ts.Is("=") {
		p.ts.Consume()
		tok := p.current()
		switch {
		case tok.Kind == token.NumberLit && tok.Spelling == "0":
			fn.IsPure = true
			p.ts.Consume()
		case p.ts.Is("default"):
			fn.IsDefault = true
			p.ts.Consume()
		case p.ts.Is("delete"):
			fn.IsDeleted = true
			p.ts.Consume()
		default:
			return perrors.New(perrors.UnexpectedToken, tok.Location, "expected '0', 'default', or 'delete' after '=' in function declarator, got %q", tok.Spelling)
		}
		_, err := p.expect(";", "';' after function declarator")
		return err
	}

	if p.ts.Is(":") {
		p.ts.Consume()
		for {
			mi, err := p.parseOneMemberInitializer()
			if err != nil {
				return err
			}
			fn.Initializers = append(fn.Initializers, mi)
			if p.ts.Is(",") {
				p.ts.Consume()
				continue
			}
			break
		}
	}

	if p.ts.Is("{") {
		fn.HasBody = true
		fn.Body = p.consumeBody(p.opts.MethodBody == options.MethodBodyRetainTokens)
		return nil
	}

	_, err := p.expect(";", "';' after function declaration")
	return err
}
