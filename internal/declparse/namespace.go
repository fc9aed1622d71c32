package declparse

import (
	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/perrors"
	"github.com/oxhq/cppdecl/internal/token"
	"github.com/oxhq/cppdecl/internal/typeparse"
)

// parseNamespace parses a namespace-definition, a namespace-alias-definition,
// or (GNU-ism aside) recurses cleanly for `inline namespace` and nested
// `namespace a::b::c { ... }` (spec.md §3 NamespaceDecl, §1 "nested and
// inline namespace definitions").
func (p *Parser) parseNamespace(leadingAttrs []ast.Attribute) error {
	loc := p.current().Location
	var names []string
	var inlines []bool

	first := true
	for {
		isInline := false
		if p.ts.Is("inline") {
			p.ts.Consume()
			isInline = true
		}
		// Only the first name follows the 'namespace' keyword; the later
		// names of `namespace a::b::c` follow a '::'.
		if first {
			if !p.ts.Is("namespace") {
				// `inline` belonged to something else entirely; unreachable in
				// practice since the caller only calls us on 'namespace'/'inline
				// namespace', but keep the check honest.
				return perrors.New(perrors.UnexpectedToken, p.current().Location, "expected 'namespace'")
			}
			p.ts.Consume()
			first = false
		}

		// Anonymous namespace.
		if p.ts.Is("{") {
			names = append(names, "")
			inlines = append(inlines, isInline)
			break
		}

		nameTok := p.current()
		if nameTok.Kind != token.Identifier {
			return perrors.New(perrors.UnexpectedToken, nameTok.Location, "expected identifier after 'namespace', got %q", nameTok.Spelling)
		}
		p.ts.Consume()

		// namespace-alias-definition: `namespace X = Y::Z;`
		if p.ts.Is("=") {
			p.ts.Consume()
			target, err := typeparse.ParseQualifiedName(p.ts, p.sc, p.opts)
			if err != nil {
				return err
			}
			if _, err := p.expect(";", "';' after namespace-alias-definition"); err != nil {
				return err
			}
			p.visitor.OnNamespaceAlias(&ast.NamespaceAliasDecl{
				DeclCommon: ast.DeclCommon{Attributes: leadingAttrs, Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
				Name:       nameTok.Spelling,
				Target:     target,
			})
			return nil
		}

		names = append(names, nameTok.Spelling)
		inlines = append(inlines, isInline)

		if p.ts.Is("::") {
			p.ts.Consume()
			continue
		}
		break
	}

	if _, err := p.expect("{", "'{' opening namespace body"); err != nil {
		return err
	}

	decl := &ast.NamespaceDecl{
		DeclCommon: ast.DeclCommon{Attributes: leadingAttrs, Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
		Names:      names,
		IsInline:   inlines,
	}
	p.visitor.EnterNamespace(decl)
	for _, n := range names {
		p.sc.Push(ast.ScopeNamespace, n)
	}
	err := p.parseSequence([]string{"}"})
	for range names {
		p.sc.Pop()
	}
	if err != nil {
		return err
	}
	if _, err := p.expect("}", "'}' closing namespace body"); err != nil {
		return err
	}
	p.visitor.ExitNamespace(decl)
	return nil
}

// parseUsing dispatches among using-declaration, using-directive,
// using-enum-declaration, and alias-declaration, all of which share the
// `using` leading keyword (spec.md §3 UsingDeclaration/UsingDirective/
// UsingEnum/Alias).
func (p *Parser) parseUsing() error {
	loc := p.current().Location
	p.ts.Consume() // 'using'

	if p.ts.Is("namespace") {
		p.ts.Consume()
		name, err := typeparse.ParseQualifiedName(p.ts, p.sc, p.opts)
		if err != nil {
			return err
		}
		if _, err := p.expect(";", "';' after using-directive"); err != nil {
			return err
		}
		p.visitor.OnUsing(&ast.UsingDirectiveDecl{
			DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
			Name:       name,
		})
		return nil
	}

	if p.ts.Is("enum") {
		p.ts.Consume()
		name, err := typeparse.ParseQualifiedName(p.ts, p.sc, p.opts)
		if err != nil {
			return err
		}
		if _, err := p.expect(";", "';' after using-enum-declaration"); err != nil {
			return err
		}
		p.visitor.OnUsing(&ast.UsingEnumDecl{
			DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
			Name:       name,
		})
		return nil
	}

	// Disambiguate alias-declaration (`using Name = T;`) from
	// using-declaration (`using ns::name;`, possibly a comma-separated list
	// in C++17) by looking for a single unqualified identifier followed by
	// '='.
	if tok := p.current(); tok.Kind == token.Identifier {
		if next, _ := p.ts.Peek(1); next.Is("=") {
			p.ts.Consume() // name
			p.ts.Consume() // '='
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
			if _, err := p.expect(";", "';' after alias-declaration"); err != nil {
				return err
			}
			p.sc.DeclareType(tok.Spelling)
			p.visitor.OnAlias(&ast.AliasDecl{
				DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
				Name:       tok.Spelling,
				Type:       typ,
			})
			return nil
		}
	}

	for {
		name, err := typeparse.ParseQualifiedName(p.ts, p.sc, p.opts)
		if err != nil {
			return err
		}
		p.visitor.OnUsing(&ast.UsingDeclarationDecl{
			DeclCommon: ast.DeclCommon{Location: loc, Scope: p.sc.Ref(), Access: p.sc.CurrentAccess()},
			Name:       name,
		})
		if p.ts.Is(",") {
			p.ts.Consume()
			continue
		}
		break
	}
	_, err := p.expect(";", "';' after using-declaration")
	return err
}

func (p *Parser) aliasDeclaratorFollows() bool {
	return p.ts.IsAny("*", "&", "&&", "(", "[")
}
