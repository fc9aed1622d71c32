package ast

import (
	"encoding/json"
	"fmt"
	"io"
)

// MarshalJSON renders the TranslationUnit as the self-describing tagged
// form spec.md §6 requires ("suitable for consumption by downstream
// tools"). Declaration and type maps carry both "kind" and "location";
// attribute, parameter, enumerator, member-initializer and
// template-parameter-list maps carry "location" only; name segments and
// individual template parameters carry "kind" only; base-clause entries
// carry neither.
func (u *TranslationUnit) MarshalJSON() ([]byte, error) {
	decls := make([]any, len(u.Declarations))
	for i, d := range u.Declarations {
		decls[i] = declToMap(d)
	}
	return json.Marshal(map[string]any{
		"filename":     u.Filename,
		"declarations": decls,
	})
}

func locMap(l Location) map[string]any {
	return map[string]any{"file": l.Filename, "line": l.Line, "column": l.Column}
}

func tokensToStrings(t Tokens) []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t))
	for i, tok := range t {
		out[i] = tok.Spelling
	}
	return out
}

func attrsToMaps(attrs []Attribute) []any {
	out := make([]any, len(attrs))
	for i, a := range attrs {
		out[i] = map[string]any{
			"form":     a.Form,
			"scope":    a.Scope,
			"name":     a.Name,
			"args":     tokensToStrings(a.Args),
			"location": locMap(a.Location),
		}
	}
	return out
}

func qualNameToMap(q QualifiedName) map[string]any {
	segs := make([]any, len(q.Segments))
	for i, s := range q.Segments {
		m := map[string]any{"kind": s.Kind, "name": s.Name}
		if s.Kind == SegOperator {
			m["operator"] = s.OperatorSpelling
			m["literal_suffix"] = s.LiteralSuffix
		}
		if s.Kind == SegConversion && s.ConversionType != nil {
			m["conversion_type"] = typeToMap(*s.ConversionType)
		}
		if len(s.TemplateArgs) > 0 {
			args := make([]any, len(s.TemplateArgs))
			for j, a := range s.TemplateArgs {
				if a.AsType != nil {
					args[j] = map[string]any{"type": typeToMap(*a.AsType), "is_pack": a.IsPack}
				} else {
					args[j] = map[string]any{"tokens": tokensToStrings(a.Tokens), "is_pack": a.IsPack}
				}
			}
			m["template_args"] = args
		}
		segs[i] = m
	}
	return map[string]any{"text": q.String(), "segments": segs}
}

func typeToMap(t Type) map[string]any {
	if t == nil {
		return nil
	}
	c := t.Common()
	m := map[string]any{
		"kind":       t.Kind(),
		"const":      c.CV.Const,
		"volatile":   c.CV.Volatile,
		"attributes": attrsToMaps(c.Attributes),
		"location":   locMap(c.Location),
	}
	switch v := t.(type) {
	case *FundamentalType:
		m["spelling"] = v.Spelling
	case *NamedType:
		m["name"] = qualNameToMap(v.Name)
		m["is_typename"] = v.IsTypename
		m["elaborated_key"] = v.ElaboratedKey
	case *DecltypeType:
		m["expression"] = tokensToStrings(v.Expression)
	case *PointerType:
		m["inner"] = typeToMap(v.Inner)
	case *ReferenceType:
		m["inner"] = typeToMap(v.Inner)
		m["ref"] = v.Ref
	case *ArrayType:
		m["inner"] = typeToMap(v.Inner)
		m["size"] = tokensToStrings(v.Size)
	case *FunctionType:
		m["return"] = typeToMap(v.Return)
		m["parameters"] = parametersToMaps(v.Parameters)
		m["is_variadic"] = v.IsVariadic
		m["ref_qual"] = v.RefQual
		m["noexcept"] = noexceptToMap(v.Noexcept)
		m["trailing_return"] = typeToMap(v.TrailingReturn)
	case *MemberPointerType:
		m["class"] = qualNameToMap(v.Class)
		m["inner"] = typeToMap(v.Inner)
	case *PackType:
		m["inner"] = typeToMap(v.Inner)
	}
	return m
}

func noexceptToMap(n NoexceptSpec) map[string]any {
	return map[string]any{"present": n.Present, "expression": tokensToStrings(n.Expression)}
}

func parametersToMaps(ps []Parameter) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = map[string]any{
			"type":       typeToMap(p.Type),
			"name":       p.Name,
			"default":    tokensToStrings(p.Default),
			"attributes": attrsToMaps(p.Attributes),
			"is_pack":    p.IsPack,
			"location":   locMap(p.Location),
		}
	}
	return out
}

func templateParamsToMap(tpl *TemplateParameterList) any {
	if tpl == nil {
		return nil
	}
	params := make([]any, len(tpl.Params))
	for i, p := range tpl.Params {
		m := map[string]any{
			"kind":    p.Kind,
			"name":    p.Name,
			"is_pack": p.IsPack,
		}
		switch p.Kind {
		case TemplateParamType:
			m["used_class_keyword"] = p.UsedClassKeyword
			m["default_type"] = typeToMap(p.DefaultType)
		case TemplateParamTemplate:
			m["inner_params"] = templateParamsToMap(p.InnerParams)
			if p.DefaultTemplateName != nil {
				m["default_template_name"] = qualNameToMap(*p.DefaultTemplateName)
			}
		case TemplateParamNonType:
			m["type"] = typeToMap(p.Type)
			m["default_value"] = tokensToStrings(p.DefaultValue)
		}
		params[i] = m
	}
	return map[string]any{
		"params":   params,
		"requires": tokensToStrings(tpl.Requires),
		"location": locMap(tpl.Location),
	}
}

func scopeRefToMap(s ScopeRef) map[string]any {
	return map[string]any{"kind": s.Kind, "path": s.Path}
}

func declCommonToMap(c *DeclCommon) map[string]any {
	return map[string]any{
		"attributes": attrsToMaps(c.Attributes),
		"location":   locMap(c.Location),
		"scope":      scopeRefToMap(c.Scope),
		"doc":        c.Doc,
		"access":     c.Access,
	}
}

func mergeInto(dst map[string]any, src map[string]any) map[string]any {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func declToMap(d Decl) map[string]any {
	if d == nil {
		return nil
	}
	m := map[string]any{"kind": d.Kind()}
	mergeInto(m, declCommonToMap(d.Common()))

	switch v := d.(type) {
	case *NamespaceDecl:
		m["names"] = v.Names
		m["is_inline"] = v.IsInline
		m["body"] = declsToMaps(v.Body)
	case *NamespaceAliasDecl:
		m["name"] = v.Name
		m["target"] = qualNameToMap(v.Target)
	case *ClassDecl:
		m["key"] = v.Key
		m["name"] = qualNameToMap(v.Name)
		m["bases"] = basesToMaps(v.Bases)
		m["is_final"] = v.IsFinal
		m["is_forward"] = v.IsForward
		m["template"] = templateParamsToMap(v.Template)
		m["body"] = declsToMaps(v.Body)
	case *EnumDecl:
		m["name"] = v.Name
		m["is_scoped"] = v.IsScoped
		m["underlying"] = typeToMap(v.Underlying)
		m["is_forward"] = v.IsForward
		m["enumerators"] = enumeratorsToMaps(v.Enumerators)
	case *FunctionDecl:
		m["name"] = qualNameToMap(v.Name)
		m["special"] = v.Special
		m["return_type"] = typeToMap(v.ReturnType)
		m["parameters"] = parametersToMaps(v.Parameters)
		m["is_variadic"] = v.IsVariadic
		m["const"] = v.CV.Const
		m["volatile"] = v.CV.Volatile
		m["ref_qual"] = v.RefQual
		m["noexcept"] = noexceptToMap(v.Noexcept)
		m["is_virtual"] = v.IsVirtual
		m["is_explicit"] = v.IsExplicit
		m["is_constexpr"] = v.IsConstexpr
		m["is_consteval"] = v.IsConsteval
		m["is_constinit"] = v.IsConstinit
		m["is_static"] = v.IsStatic
		m["is_friend"] = v.IsFriend
		m["is_inline"] = v.IsInline
		m["is_pure"] = v.IsPure
		m["is_default"] = v.IsDefault
		m["is_deleted"] = v.IsDeleted
		m["is_override"] = v.IsOverride
		m["is_final"] = v.IsFinalSpec
		m["trailing_return"] = typeToMap(v.TrailingReturn)
		m["initializers"] = initializersToMaps(v.Initializers)
		m["has_body"] = v.HasBody
		m["body"] = tokensToStrings(v.Body)
		m["template"] = templateParamsToMap(v.Template)
		m["requires"] = tokensToStrings(v.Requires)
	case *VariableDecl:
		m["type"] = typeToMap(v.Type)
		m["name"] = v.Name
		m["initializer"] = tokensToStrings(v.Initializer)
		m["is_static"] = v.IsStatic
		m["is_extern"] = v.IsExtern
		m["is_constexpr"] = v.IsConstexpr
		m["is_inline"] = v.IsInline
		m["is_thread_local"] = v.IsThreadLocal
		m["is_mutable"] = v.IsMutable
		m["bitfield_width"] = tokensToStrings(v.BitfieldWidth)
		m["template"] = templateParamsToMap(v.Template)
		m["structured_binding_names"] = v.StructuredBindingNames
	case *TypedefDecl:
		m["name"] = v.Name
		m["type"] = typeToMap(v.Type)
	case *AliasDecl:
		m["name"] = v.Name
		m["type"] = typeToMap(v.Type)
		m["template"] = templateParamsToMap(v.Template)
	case *UsingDeclarationDecl:
		m["name"] = qualNameToMap(v.Name)
	case *UsingDirectiveDecl:
		m["name"] = qualNameToMap(v.Name)
	case *UsingEnumDecl:
		m["name"] = qualNameToMap(v.Name)
	case *FriendDecl:
		m["target_kind"] = v.TargetKind
		if v.ClassTarget != nil {
			m["class_target"] = declToMap(v.ClassTarget)
		}
		if v.FunctionTarget != nil {
			m["function_target"] = declToMap(v.FunctionTarget)
		}
		if v.TypeTarget != nil {
			m["type_target"] = typeToMap(v.TypeTarget)
		}
	case *StaticAssertDecl:
		m["expression"] = tokensToStrings(v.Expression)
		m["message"] = tokensToStrings(v.Message)
	case *ExternBlockDecl:
		m["linkage"] = v.Linkage
		m["is_braced"] = v.IsBraced
		m["body"] = declsToMaps(v.Body)
	case *PragmaOrIncludeDecl:
		m["raw"] = v.Raw
	case *ConceptDecl:
		m["name"] = v.Name
		m["template"] = templateParamsToMap(v.Template)
		m["expression"] = tokensToStrings(v.Expression)
	}
	return m
}

func declsToMaps(ds []Decl) []any {
	out := make([]any, len(ds))
	for i, d := range ds {
		out[i] = declToMap(d)
	}
	return out
}

func basesToMaps(bs []BaseSpecifier) []any {
	out := make([]any, len(bs))
	for i, b := range bs {
		out[i] = map[string]any{
			"access":     b.Access,
			"is_virtual": b.IsVirtual,
			"type":       typeToMap(b.Type),
			"is_pack":    b.IsPack,
		}
	}
	return out
}

func enumeratorsToMaps(es []Enumerator) []any {
	out := make([]any, len(es))
	for i, e := range es {
		out[i] = map[string]any{
			"name":       e.Name,
			"attributes": attrsToMaps(e.Attributes),
			"value":      tokensToStrings(e.Value),
			"location":   locMap(e.Location),
		}
	}
	return out
}

func initializersToMaps(is []MemberInitializer) []any {
	out := make([]any, len(is))
	for i, m := range is {
		out[i] = map[string]any{
			"target":    qualNameToMap(m.Target),
			"args":      tokensToStrings(m.Args),
			"is_braced": m.IsBraced,
			"location":  locMap(m.Location),
		}
	}
	return out
}

// Dump writes a compact, indented human-readable rendering of the
// TranslationUnit to w. It is the backing implementation of
// `cppdecl parse --format=text`.
func (u *TranslationUnit) Dump(w io.Writer) error {
	fmt.Fprintf(w, "translation unit %s\n", u.Filename)
	for _, d := range u.Declarations {
		dumpDecl(w, d, 1)
	}
	return nil
}

func dumpDecl(w io.Writer, d Decl, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	fmt.Fprintf(w, "%s%s @ %s\n", pad, d.Kind(), d.Common().Location)
	switch v := d.(type) {
	case *NamespaceDecl:
		for _, c := range v.Body {
			dumpDecl(w, c, indent+1)
		}
	case *ClassDecl:
		for _, c := range v.Body {
			dumpDecl(w, c, indent+1)
		}
	case *ExternBlockDecl:
		for _, c := range v.Body {
			dumpDecl(w, c, indent+1)
		}
	}
}
