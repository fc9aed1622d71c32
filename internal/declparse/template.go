package declparse

import (
	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/perrors"
	"github.com/oxhq/cppdecl/internal/token"
	"github.com/oxhq/cppdecl/internal/typeparse"
)

// parseTemplateHeaded parses a `template < template-parameter-list >
// [requires-clause]` header (or the explicit-specialization/explicit-
// instantiation `template <>` / `template` forms) and then dispatches to
// whatever follows: a class, a function, a variable, or an alias-declaration
// (spec.md §1 "class templates... function templates... variable
// templates... alias templates", §3 TemplateParameterList).
func (p *Parser) parseTemplateHeaded() error {
	loc := p.current().Location
	p.ts.Consume() // 'template'

	// `template <...>` header, possibly empty (explicit specialization). An
	// explicit instantiation has no header at all and leaves tpl nil.
	var tpl *ast.TemplateParameterList
	if p.ts.Is("<") {
		var err error
		tpl, err = p.parseTemplateParameterList(loc)
		if err != nil {
			return err
		}
	}

	// A further `template <...>` immediately following starts a nested
	// template-parameter list (member templates of class templates); collect
	// and keep only the innermost for now, since cppdecl flattens to one
	// TemplateParameterList per declaration (recorded as an Open Question
	// resolution, see DESIGN.md).
	for p.ts.Is("template") {
		p.ts.Consume()
		inner, err := p.parseTemplateParameterList(p.current().Location)
		if err != nil {
			return err
		}
		tpl = inner
	}

	switch {
	case p.ts.IsAny("class", "struct", "union") && p.classLikeStartsDefinition():
		return p.parseClassLike(nil, tpl)
	case p.ts.Is("using"):
		return p.parseTemplatedUsing(tpl)
	case p.ts.Is("concept"):
		return p.parseConcept(tpl)
	default:
		return p.parseGeneralDeclarationTemplated(tpl)
	}
}

func (p *Parser) parseTemplatedUsing(tpl *ast.TemplateParameterList) error {
	loc := p.current().Location
	p.ts.Consume() // 'using'
	nameTok := p.current()
	if nameTok.Kind != token.Identifier {
		return perrors.New(perrors.UnexpectedToken, nameTok.Location, "expected identifier in alias template, got %q", nameTok.Spelling)
	}
	p.ts.Consume()
	if _, err := p.expect("=", "'=' in alias template"); err != nil {
		return err
	}
	base, err := typeparse.ParseDeclSpecifiers(p.ts, p.sc, p.opts)
	if err != nil {
		return err
	}
	typ := base
	if p.aliasDeclaratorFollows() {
		typ, err = typeparse.ComposeAbstractDeclarator(p.ts, p.sc, p.opts, base)
		if err != nil {
			return err
		}
	}
	if _, err := p.expect(";", "';' after alias template"); err != nil {
		return err
	}
	p.sc.DeclareType(nameTok.Spelling)
	p.visitor.OnAlias(&ast.AliasDecl{
		DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
		Name:       nameTok.Spelling,
		Type:       typ,
		Template:   tpl,
	})
	return nil
}

// parseTemplateParameterList parses `< template-parameter-list [,] >
// [requires-clause]`, where the list (and an explicit-specialization's
// empty list) may be entirely absent only in the sense of having zero
// parameters, never in the sense of omitting the angle brackets.
func (p *Parser) parseTemplateParameterList(loc ast.Location) (*ast.TemplateParameterList, error) {
	if _, err := p.expect("<", "'<' opening template-parameter-list"); err != nil {
		return nil, err
	}
	list := &ast.TemplateParameterList{Location: loc}
	if p.ts.Is(">") || p.ts.Is(">>") {
		p.closeTemplateAngle()
		p.maybeParseRequires(list)
		return list, nil
	}
	for {
		param, err := p.parseOneTemplateParameter()
		if err != nil {
			return nil, err
		}
		list.Params = append(list.Params, param)
		if p.ts.Is(",") {
			p.ts.Consume()
			continue
		}
		break
	}
	if !p.ts.Is(">") && !p.ts.Is(">>") {
		cur := p.current()
		return nil, perrors.New(perrors.UnexpectedToken, cur.Location, "expected '>' closing template-parameter-list, got %q", cur.Spelling)
	}
	p.closeTemplateAngle()
	p.maybeParseRequires(list)
	return list, nil
}

func (p *Parser) closeTemplateAngle() {
	if p.ts.Is(">>") {
		p.ts.SplitAngle()
		p.ts.Consume()
		return
	}
	p.ts.Consume()
}

func (p *Parser) maybeParseRequires(list *ast.TemplateParameterList) {
	if !p.ts.Is("requires") {
		return
	}
	p.ts.Consume()
	toks, err := p.ts.CaptureBalanced([]string{"{", ";"}, false)
	if err != nil {
		return
	}
	list.Requires = toks
}

func (p *Parser) parseOneTemplateParameter() (ast.TemplateParameter, error) {
	loc := p.current().Location

	if p.ts.Is("template") {
		p.ts.Consume()
		inner, err := p.parseTemplateParameterList(loc)
		if err != nil {
			return ast.TemplateParameter{}, err
		}
		usedClass := false
		switch {
		case p.ts.Is("class"):
			usedClass = true
			p.ts.Consume()
		case p.ts.Is("typename"):
			p.ts.Consume()
		default:
			cur := p.current()
			return ast.TemplateParameter{}, perrors.New(perrors.UnexpectedToken, cur.Location, "expected 'class' or 'typename' after template template-parameter list")
		}
		isPack := false
		if p.ts.Is("...") {
			p.ts.Consume()
			isPack = true
		}
		name := ""
		if tok := p.current(); tok.Kind == token.Identifier {
			name = tok.Spelling
			p.ts.Consume()
		}
		var def *ast.QualifiedName
		if p.ts.Is("=") {
			p.ts.Consume()
			q, err := typeparse.ParseQualifiedName(p.ts, p.sc, p.opts)
			if err != nil {
				return ast.TemplateParameter{}, err
			}
			def = &q
		}
		return ast.TemplateParameter{
			Kind: ast.TemplateParamTemplate, Name: name, IsPack: isPack,
			UsedClassKeyword: usedClass, InnerParams: inner,
			DefaultTemplateName: def, Location: loc,
		}, nil
	}

	if p.ts.IsAny("class", "typename") {
		usedClass := p.ts.Is("class")
		p.ts.Consume()
		isPack := false
		if p.ts.Is("...") {
			p.ts.Consume()
			isPack = true
		}
		name := ""
		if tok := p.current(); tok.Kind == token.Identifier {
			name = tok.Spelling
			p.sc.DeclareType(tok.Spelling)
			p.ts.Consume()
		}
		var def ast.Type
		if p.ts.Is("=") {
			p.ts.Consume()
			t, err := typeparse.ParseTypeID(p.ts, p.sc, p.opts, typeparse.CtxTopLevelDecl)
			if err != nil {
				return ast.TemplateParameter{}, err
			}
			def = t
		}
		return ast.TemplateParameter{
			Kind: ast.TemplateParamType, Name: name, IsPack: isPack,
			UsedClassKeyword: usedClass, DefaultType: def, Location: loc,
		}, nil
	}

	// Non-type template parameter: a type-id followed by an optional name,
	// optional pack-ellipsis, and optional default value.
	base, err := typeparse.ParseDeclSpecifiers(p.ts, p.sc, p.opts)
	if err != nil {
		return ast.TemplateParameter{}, err
	}
	isPack := false
	if p.ts.Is("...") {
		p.ts.Consume()
		isPack = true
	}
	name, typ, err := typeparse.ComposeAbstractOrNamedDeclarator(p.ts, p.sc, p.opts, base)
	if err != nil {
		return ast.TemplateParameter{}, err
	}
	nm := ""
	if len(name.Segments) > 0 {
		nm = name.Last().Name
	}
	var def ast.Tokens
	if p.ts.Is("=") {
		p.ts.Consume()
		toks, err := p.ts.CaptureBalanced([]string{",", ">", ">>"}, true)
		if err != nil {
			return ast.TemplateParameter{}, err
		}
		def = toks
	}
	return ast.TemplateParameter{
		Kind: ast.TemplateParamNonType, Name: nm, IsPack: isPack,
		Type: typ, DefaultValue: def, Location: loc,
	}, nil
}
