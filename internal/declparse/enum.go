package declparse

import (
	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/perrors"
	"github.com/oxhq/cppdecl/internal/token"
	"github.com/oxhq/cppdecl/internal/typeparse"
)

// parseEnum parses a scoped or unscoped enum definition or forward
// declaration, with an optional underlying type (spec.md §3 EnumDecl).
func (p *Parser) parseEnum(leadingAttrs []ast.Attribute) error {
	loc := p.current().Location
	p.ts.Consume() // 'enum'

	isScoped := false
	if p.ts.IsAny("class", "struct") {
		isScoped = true
		p.ts.Consume()
	}

	attrs, err := typeparse.ParseAttributeSequence(p.ts, p.opts)
	if err != nil {
		return err
	}
	attrs = append(leadingAttrs, attrs...)

	name := ""
	if tok := p.current(); tok.Kind == token.Identifier {
		name = tok.Spelling
		p.ts.Consume()
	}

	var underlying ast.Type
	if p.ts.Is(":") {
		p.ts.Consume()
		underlying, err = typeparse.ParseDeclSpecifiers(p.ts, p.sc, p.opts)
		if err != nil {
			return err
		}
	}

	decl := &ast.EnumDecl{
		DeclCommon: ast.DeclCommon{Attributes: attrs, Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
		Name:       name,
		IsScoped:   isScoped,
		Underlying: underlying,
	}

	if name != "" {
		p.sc.DeclareType(name)
	}

	if p.ts.Is(";") {
		p.ts.Consume()
		decl.IsForward = true
		p.visitor.OnEnum(decl)
		return nil
	}

	if _, err := p.expect("{", "'{' opening enum body"); err != nil {
		return err
	}
	for !p.ts.Is("}") {
		enumerator, err := p.parseOneEnumerator()
		if err != nil {
			return err
		}
		decl.Enumerators = append(decl.Enumerators, enumerator)
		if p.ts.Is(",") {
			p.ts.Consume()
			continue
		}
		break
	}
	if _, err := p.expect("}", "'}' closing enum body"); err != nil {
		return err
	}
	p.visitor.OnEnum(decl)

	if p.ts.Is(";") {
		p.ts.Consume()
		return nil
	}
	base := &ast.NamedType{TypeCommon: ast.TypeCommon{Location: loc}, Name: ast.QualifiedName{Segments: []ast.Segment{{Kind: ast.SegIdentifier, Name: name, Location: loc}}}, ElaboratedKey: ast.ClassKeyEnum}
	return p.parseDeclaratorList(base, loc, nil)
}

func (p *Parser) parseOneEnumerator() (ast.Enumerator, error) {
	nameTok := p.current()
	if nameTok.Kind != token.Identifier {
		return ast.Enumerator{}, perrors.New(perrors.UnexpectedToken, nameTok.Location, "expected enumerator name, got %q", nameTok.Spelling)
	}
	p.ts.Consume()
	attrs, err := typeparse.ParseAttributeSequence(p.ts, p.opts)
	if err != nil {
		return ast.Enumerator{}, err
	}
	var value ast.Tokens
	if p.ts.Is("=") {
		p.ts.Consume()
		value, err = p.ts.CaptureBalanced([]string{",", "}"}, false)
		if err != nil {
			return ast.Enumerator{}, err
		}
	}
	return ast.Enumerator{Name: nameTok.Spelling, Attributes: attrs, Value: value, Location: nameTok.Location}, nil
}
