package declparse

import (
	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/perrors"
	"github.com/oxhq/cppdecl/internal/token"
	"github.com/oxhq/cppdecl/internal/typeparse"
)

// parseClassLike parses a class/struct/union declaration or definition
// (spec.md §3 ClassDecl): forward declarations, full definitions with a
// base-clause and member list, and the trailing instance-declarator form
// (`struct S { ... } instance;`).
func (p *Parser) parseClassLike(leadingAttrs []ast.Attribute, tpl *ast.TemplateParameterList) error {
	loc := p.current().Location
	key := classKeyOf(p.current())
	p.ts.Consume()

	attrs, err := typeparse.ParseAttributeSequence(p.ts, p.opts)
	if err != nil {
		return err
	}
	attrs = append(leadingAttrs, attrs...)

	var name ast.QualifiedName
	if p.current().Kind == token.Identifier || p.ts.Is("::") {
		name, err = typeparse.ParseQualifiedName(p.ts, p.sc, p.opts)
		if err != nil {
			return err
		}
	}

	isFinal := false
	if p.current().Kind == token.Identifier && p.current().Spelling == "final" {
		p.ts.Consume()
		isFinal = true
	}

	var bases []ast.BaseSpecifier
	if p.ts.Is(":") {
		p.ts.Consume()
		bases, err = p.parseBaseClause()
		if err != nil {
			return err
		}
	}

	decl := &ast.ClassDecl{
		DeclCommon: ast.DeclCommon{Attributes: attrs, Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
		Key:        key,
		Name:       name,
		Bases:      bases,
		IsFinal:    isFinal,
		Template:   tpl,
	}

	if len(name.Segments) > 0 {
		p.sc.DeclareType(name.Last().Name)
	}

	if p.ts.Is(";") {
		p.ts.Consume()
		decl.IsForward = true
		p.visitor.EnterClass(decl)
		p.visitor.ExitClass(decl)
		return nil
	}

	if _, err := p.expect("{", "'{' opening class body"); err != nil {
		return err
	}
	p.visitor.EnterClass(decl)
	classKeyIsStruct := key == ast.ClassKeyStruct
	p.sc.PushClass(classNameOf(name), classKeyIsStruct)
	err = p.parseSequence([]string{"}"})
	p.sc.Pop()
	if err != nil {
		return err
	}
	if _, err := p.expect("}", "'}' closing class body"); err != nil {
		return err
	}
	p.visitor.ExitClass(decl)

	// Trailing attributes and/or an instance-declarator list:
	// `struct S { ... } [[attr]] instance, *p;`
	if _, err := typeparse.ParseAttributeSequence(p.ts, p.opts); err != nil {
		return err
	}
	if p.ts.Is(";") {
		p.ts.Consume()
		return nil
	}
	base := classTypeRef(decl)
	return p.parseDeclaratorList(base, loc, nil)
}

func classKeyOf(tok token.Token) ast.ClassKey {
	switch tok.Spelling {
	case "class":
		return ast.ClassKeyClass
	case "struct":
		return ast.ClassKeyStruct
	default:
		return ast.ClassKeyUnion
	}
}

func classNameOf(q ast.QualifiedName) string {
	if len(q.Segments) == 0 {
		return ""
	}
	return q.Last().Name
}

// classTypeRef builds the NamedType a trailing instance-declarator's base
// type should reference after a class body just closed.
func classTypeRef(decl *ast.ClassDecl) ast.Type {
	return &ast.NamedType{
		TypeCommon:    ast.TypeCommon{Location: decl.Location},
		Name:          decl.Name,
		ElaboratedKey: decl.Key,
	}
}

// classLikeStartsDefinition speculatively parses a class-head (key, optional
// attrs, optional name, optional final, optional base-clause) and reports
// whether a '{' or ';' follows, distinguishing an actual class/struct/union
// definition-or-forward-declaration from an elaborated-type-specifier used
// as an ordinary declaration's base type (`struct Foo *p;`, `struct Foo x;`).
func (p *Parser) classLikeStartsDefinition() bool {
	mark := p.ts.Pos()
	defer p.ts.Rewind(mark)

	p.ts.Consume() // class-key
	if _, err := typeparse.ParseAttributeSequence(p.ts, p.opts); err != nil {
		return false
	}
	if p.current().Kind == token.Identifier || p.ts.Is("::") {
		if _, err := typeparse.ParseQualifiedName(p.ts, p.sc, p.opts); err != nil {
			return false
		}
	}
	if p.current().Kind == token.Identifier && p.current().Spelling == "final" {
		p.ts.Consume()
	}
	if p.ts.Is(":") {
		p.ts.Consume()
		for {
			if _, err := p.parseOneBaseSpecifier(); err != nil {
				return false
			}
			if p.ts.Is(",") {
				p.ts.Consume()
				continue
			}
			break
		}
	}
	return p.ts.Is("{") || p.ts.Is(";")
}

func (p *Parser) parseBaseClause() ([]ast.BaseSpecifier, error) {
	var bases []ast.BaseSpecifier
	for {
		b, err := p.parseOneBaseSpecifier()
		if err != nil {
			return nil, err
		}
		bases = append(bases, b)
		if p.ts.Is(",") {
			p.ts.Consume()
			continue
		}
		return bases, nil
	}
}

func (p *Parser) parseOneBaseSpecifier() (ast.BaseSpecifier, error) {
	access := ast.AccessNone
	isVirtual := false
	for {
		switch {
		case p.ts.Is("virtual"):
			p.ts.Consume()
			isVirtual = true
		case p.ts.IsAny("public", "private", "protected"):
			switch p.current().Spelling {
			case "public":
				access = ast.AccessPublic
			case "private":
				access = ast.AccessPrivate
			case "protected":
				access = ast.AccessProtected
			}
			p.ts.Consume()
		default:
			goto parseType
		}
	}
parseType:
	typ, err := typeparse.ParseTypeID(p.ts, p.sc, p.opts, typeparse.CtxTopLevelDecl)
	if err != nil {
		return ast.BaseSpecifier{}, err
	}
	isPack := false
	if p.ts.Is("...") {
		p.ts.Consume()
		isPack = true
	}
	return ast.BaseSpecifier{Access: access, IsVirtual: isVirtual, Type: typ, IsPack: isPack}, nil
}

// parseFriend parses a `friend` declaration naming a class, a function, or
// (rarely) a plain type (spec.md §3 FriendDecl).
func (p *Parser) parseFriend() error {
	loc := p.current().Location
	p.ts.Consume() // 'friend'

	if p.ts.IsAny("class", "struct", "union") && !p.classHeadHasBody() {
		key := classKeyOf(p.current())
		p.ts.Consume()
		name, err := typeparse.ParseQualifiedName(p.ts, p.sc, p.opts)
		if err != nil {
			return err
		}
		if _, err := p.expect(";", "';' after friend class declaration"); err != nil {
			return err
		}
		cd := &ast.ClassDecl{
			DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
			Key:        key, Name: name, IsForward: true,
		}
		p.visitor.OnFriend(&ast.FriendDecl{
			DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
			TargetKind: ast.FriendClass, ClassTarget: cd,
		})
		return nil
	}

	base, err := typeparse.ParseDeclSpecifiers(p.ts, p.sc, p.opts)
	if err != nil {
		return err
	}
	if declaratorFollows(p.ts) {
		fd, err := p.parseFunctionOrVariableAfterBase(base, nil, loc)
		if err != nil {
			return err
		}
		if f, ok := fd.(*ast.FunctionDecl); ok {
			f.IsFriend = true
			p.visitor.OnFriend(&ast.FriendDecl{
				DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
				TargetKind: ast.FriendFunction, FunctionTarget: f,
			})
			return nil
		}
	}
	if _, err := p.expect(";", "';' after friend type declaration"); err != nil {
		return err
	}
	p.visitor.OnFriend(&ast.FriendDecl{
		DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
		TargetKind: ast.FriendType, TypeTarget: base,
	})
	return nil
}

// classHeadHasBody peeks past a class-key + optional name to see whether a
// `{` follows, distinguishing `friend class X;` from the (rare, only
// GNU-extension-adjacent) case of a friend naming an elaborated type that
// happens to share the same leading keywords.
func (p *Parser) classHeadHasBody() bool {
	mark := p.ts.Pos()
	defer p.ts.Rewind(mark)
	p.ts.Consume()
	for p.current().Kind == token.Identifier || p.ts.Is("::") {
		p.ts.Consume()
	}
	return p.ts.Is("{")
}

func (p *Parser) parseStaticAssert() error {
	loc := p.current().Location
	p.ts.Consume() // 'static_assert'
	if _, err := p.expect("(", "'(' after static_assert"); err != nil {
		return err
	}
	expr, err := p.ts.CaptureBalanced([]string{",", ")"}, false)
	if err != nil {
		return err
	}
	var msg ast.Tokens
	if p.ts.Is(",") {
		p.ts.Consume()
		msg, err = p.ts.CaptureBalanced([]string{")"}, false)
		if err != nil {
			return err
		}
	}
	if _, err := p.expect(")", "')' closing static_assert"); err != nil {
		return err
	}
	if _, err := p.expect(";", "';' after static_assert"); err != nil {
		return err
	}
	p.visitor.OnStaticAssert(&ast.StaticAssertDecl{
		DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
		Expression: expr, Message: msg,
	})
	return nil
}

func (p *Parser) parseExternBlock() error {
	loc := p.current().Location
	p.ts.Consume() // 'extern'
	linkTok := p.current()
	p.ts.Consume() // string literal
	linkage := unquoteLinkage(linkTok.Spelling)

	braced := p.ts.Is("{")
	decl := &ast.ExternBlockDecl{
		DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
		Linkage:    linkage, IsBraced: braced,
	}
	p.visitor.OnExternBlockEnter(decl)
	var err error
	if braced {
		p.ts.Consume()
		err = p.parseSequence([]string{"}"})
		if err == nil {
			_, err = p.expect("}", "'}' closing extern linkage-specification block")
		}
	} else {
		err = p.parseOneDeclaration()
	}
	p.visitor.OnExternBlockExit(decl)
	return err
}

func unquoteLinkage(spelling string) string {
	if len(spelling) >= 2 {
		return spelling[1 : len(spelling)-1]
	}
	return spelling
}

// parseConcept parses a `concept` definition as an opaque declaration
// (spec.md §4.3 "recorded as an opaque declaration"), since full constraint-
// expression parsing falls outside cppdecl's scope.
func (p *Parser) parseConcept(tpl *ast.TemplateParameterList) error {
	loc := p.current().Location
	p.ts.Consume() // 'concept'
	nameTok := p.current()
	if nameTok.Kind != token.Identifier {
		return perrors.New(perrors.UnexpectedToken, nameTok.Location, "expected identifier after 'concept', got %q", nameTok.Spelling)
	}
	p.ts.Consume()
	if _, err := p.expect("=", "'=' in concept definition"); err != nil {
		return err
	}
	expr, err := p.ts.CaptureBalanced([]string{";"}, false)
	if err != nil {
		return err
	}
	if _, err := p.expect(";", "';' after concept definition"); err != nil {
		return err
	}
	p.visitor.OnConcept(&ast.ConceptDecl{
		DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
		Name:       nameTok.Spelling, Template: tpl, Expression: expr,
	})
	return nil
}
