package ast

// DeclKind tags the closed set of Decl variants (spec.md §3 Declaration).
type DeclKind string

const (
	DeclNamespace      DeclKind = "namespace"
	DeclNamespaceAlias DeclKind = "namespace_alias"
	DeclClass          DeclKind = "class"
	DeclEnum           DeclKind = "enum"
	DeclFunction       DeclKind = "function"
	DeclVariable       DeclKind = "variable"
	DeclTypedef        DeclKind = "typedef"
	DeclAlias          DeclKind = "alias" // using X = T;
	DeclUsingDecl      DeclKind = "using_declaration"
	DeclUsingDirective DeclKind = "using_directive"
	DeclUsingEnum      DeclKind = "using_enum"
	DeclFriend         DeclKind = "friend"
	DeclStaticAssert   DeclKind = "static_assert"
	DeclExternBlock    DeclKind = "extern_block"
	DeclPragmaOrInclude DeclKind = "pragma_or_include"
	DeclConcept        DeclKind = "concept"
)

// Decl is the closed interface implemented by every declaration variant.
type Decl interface {
	Kind() DeclKind
	Common() *DeclCommon
}

// DeclCommon holds the fields every declaration carries (spec.md §3
// invariants: "Every declaration records the scope in which it was found").
type DeclCommon struct {
	Attributes []Attribute
	Location   Location
	Scope      ScopeRef
	Doc        string // always empty: the parser leaves a retained doxygen comment on its first token's LeadingDoc

	// Access is the access specifier (public/private/protected) in effect
	// at this declaration's position, or AccessNone outside a class body.
	Access Access
}

// NamespaceDecl models a (possibly nested-name, possibly inline) namespace
// definition: `namespace a::b { ... }`. An anonymous namespace has Names==nil.
type NamespaceDecl struct {
	DeclCommon
	Names    []string // e.g. ["a","b"] for `namespace a::b { ... }`
	IsInline []bool   // per-segment `inline` flag, parallel to Names
	Body     []Decl
}

func (d *NamespaceDecl) Kind() DeclKind      { return DeclNamespace }
func (d *NamespaceDecl) Common() *DeclCommon { return &d.DeclCommon }

// NamespaceAliasDecl models `namespace X = Y::Z;`.
type NamespaceAliasDecl struct {
	DeclCommon
	Name   string
	Target QualifiedName
}

func (d *NamespaceAliasDecl) Kind() DeclKind      { return DeclNamespaceAlias }
func (d *NamespaceAliasDecl) Common() *DeclCommon { return &d.DeclCommon }

// BaseSpecifier is one entry of a class's base-clause (spec.md §3 Class).
type BaseSpecifier struct {
	Access    Access
	IsVirtual bool
	Type      Type
	IsPack    bool
}

// ClassDecl models a class/struct/union definition or forward declaration.
type ClassDecl struct {
	DeclCommon
	Key       ClassKey
	Name      QualifiedName // empty Segments for an unnamed class
	Bases     []BaseSpecifier
	IsFinal   bool
	Body      []Decl
	IsForward bool
	Template  *TemplateParameterList
}

func (d *ClassDecl) Kind() DeclKind      { return DeclClass }
func (d *ClassDecl) Common() *DeclCommon { return &d.DeclCommon }

// Enumerator is one entry of an enum's enumerator list.
type Enumerator struct {
	Name       string
	Attributes []Attribute
	Value      Tokens // nil when no initializer
	Location   Location
}

// EnumDecl models an enum definition (scoped or unscoped) or forward
// declaration.
type EnumDecl struct {
	DeclCommon
	Name        string // empty for an unnamed enum
	IsScoped    bool
	Underlying  Type // nil when no underlying type was spelled out
	Enumerators []Enumerator
	IsForward   bool
}

func (d *EnumDecl) Kind() DeclKind      { return DeclEnum }
func (d *EnumDecl) Common() *DeclCommon { return &d.DeclCommon }

// FunctionSpecialKind distinguishes ordinary functions from the special
// member/operator forms spec.md §3 calls out explicitly.
type FunctionSpecialKind string

const (
	FunctionOrdinary          FunctionSpecialKind = ""
	FunctionConstructor       FunctionSpecialKind = "constructor"
	FunctionDestructor        FunctionSpecialKind = "destructor"
	FunctionConversion        FunctionSpecialKind = "conversion"
	FunctionOperatorOverload  FunctionSpecialKind = "operator_overload"
	FunctionUserDefinedLiteral FunctionSpecialKind = "user_defined_literal"
)

// MemberInitializer is one entry of a constructor's member-initializer list
// (spec.md §4.3 "constructor with member initializer list").
type MemberInitializer struct {
	Target   QualifiedName
	Args     Tokens
	IsBraced bool // `{...}` vs `(...)` initializer form
	Location Location
}

// FunctionDecl models a function declaration or definition, including
// operators, conversion operators, constructors (with initializer list),
// and destructors (spec.md §3 Function).
type FunctionDecl struct {
	DeclCommon
	Name       QualifiedName
	Special    FunctionSpecialKind
	ReturnType Type // nil for constructors/destructors
	Parameters []Parameter
	IsVariadic bool
	CV         CV
	RefQual    RefKind
	Noexcept   NoexceptSpec

	IsVirtual   bool
	IsExplicit  bool
	IsConstexpr bool
	IsConsteval bool
	IsConstinit bool
	IsStatic    bool
	IsFriend    bool
	IsInline    bool
	IsPure      bool
	IsDefault   bool
	IsDeleted   bool
	IsOverride  bool
	IsFinalSpec bool

	TrailingReturn Type

	Initializers []MemberInitializer

	HasBody  bool
	Body     Tokens // populated only when Options.MethodBody == "retain_tokens"
	Template *TemplateParameterList
	Requires Tokens
}

func (d *FunctionDecl) Kind() DeclKind      { return DeclFunction }
func (d *FunctionDecl) Common() *DeclCommon { return &d.DeclCommon }

// VariableDecl models a namespace-scope variable, static data member, or
// (within a class) non-static data member, including bit-fields and
// structured-binding declarations.
type VariableDecl struct {
	DeclCommon
	Type        Type
	Name        string
	Initializer Tokens

	IsStatic       bool
	IsExtern       bool
	IsConstexpr    bool
	IsInline       bool
	IsThreadLocal  bool
	IsMutable      bool
	BitfieldWidth  Tokens // nil unless this is a bit-field member
	Template       *TemplateParameterList

	// StructuredBindingNames is non-empty for `auto [a, b] = expr;`
	// (spec.md §1 "structured bindings on declarations"); Name is empty in
	// that case.
	StructuredBindingNames []string
}

func (d *VariableDecl) Kind() DeclKind      { return DeclVariable }
func (d *VariableDecl) Common() *DeclCommon { return &d.DeclCommon }

// TypedefDecl models a classic `typedef T Name;`.
type TypedefDecl struct {
	DeclCommon
	Name string
	Type Type
}

func (d *TypedefDecl) Kind() DeclKind      { return DeclTypedef }
func (d *TypedefDecl) Common() *DeclCommon { return &d.DeclCommon }

// AliasDecl models a (possibly templated) alias-declaration: `using Name = T;`.
type AliasDecl struct {
	DeclCommon
	Name     string
	Type     Type
	Template *TemplateParameterList
}

func (d *AliasDecl) Kind() DeclKind      { return DeclAlias }
func (d *AliasDecl) Common() *DeclCommon { return &d.DeclCommon }

// UsingDeclarationDecl models `using ns::name;`.
type UsingDeclarationDecl struct {
	DeclCommon
	Name QualifiedName
}

func (d *UsingDeclarationDecl) Kind() DeclKind      { return DeclUsingDecl }
func (d *UsingDeclarationDecl) Common() *DeclCommon { return &d.DeclCommon }

// UsingDirectiveDecl models `using namespace ns;`.
type UsingDirectiveDecl struct {
	DeclCommon
	Name QualifiedName
}

func (d *UsingDirectiveDecl) Kind() DeclKind      { return DeclUsingDirective }
func (d *UsingDirectiveDecl) Common() *DeclCommon { return &d.DeclCommon }

// UsingEnumDecl models `using enum ns::E;`.
type UsingEnumDecl struct {
	DeclCommon
	Name QualifiedName
}

func (d *UsingEnumDecl) Kind() DeclKind      { return DeclUsingEnum }
func (d *UsingEnumDecl) Common() *DeclCommon { return &d.DeclCommon }

// FriendTargetKind tags what a FriendDecl grants friendship to.
type FriendTargetKind string

const (
	FriendClass    FriendTargetKind = "class"
	FriendFunction FriendTargetKind = "function"
	FriendType     FriendTargetKind = "type"
)

// FriendDecl models a `friend` declaration (spec.md §3 Friend).
type FriendDecl struct {
	DeclCommon
	TargetKind     FriendTargetKind
	ClassTarget    *ClassDecl
	FunctionTarget *FunctionDecl
	TypeTarget     Type
}

func (d *FriendDecl) Kind() DeclKind      { return DeclFriend }
func (d *FriendDecl) Common() *DeclCommon { return &d.DeclCommon }

// StaticAssertDecl models `static_assert(expr, "message");`.
type StaticAssertDecl struct {
	DeclCommon
	Expression Tokens
	Message    Tokens // nil when the single-argument form was used
}

func (d *StaticAssertDecl) Kind() DeclKind      { return DeclStaticAssert }
func (d *StaticAssertDecl) Common() *DeclCommon { return &d.DeclCommon }

// ExternBlockDecl models `extern "C" { ... }` (or the unbraced single-
// declaration form `extern "C" void f();`).
type ExternBlockDecl struct {
	DeclCommon
	Linkage  string
	Body     []Decl
	IsBraced bool
}

func (d *ExternBlockDecl) Kind() DeclKind      { return DeclExternBlock }
func (d *ExternBlockDecl) Common() *DeclCommon { return &d.DeclCommon }

// PragmaOrIncludeDecl models a `#`-prefixed line surfaced at a declaration
// boundary (spec.md §3, §4.1).
type PragmaOrIncludeDecl struct {
	DeclCommon
	Raw string
}

func (d *PragmaOrIncludeDecl) Kind() DeclKind      { return DeclPragmaOrInclude }
func (d *PragmaOrIncludeDecl) Common() *DeclCommon { return &d.DeclCommon }

// ConceptDecl models a `concept` definition, recorded opaquely (spec.md
// §4.3 "a concept... recorded as an opaque declaration").
type ConceptDecl struct {
	DeclCommon
	Name       string
	Template   *TemplateParameterList
	Expression Tokens
}

func (d *ConceptDecl) Kind() DeclKind      { return DeclConcept }
func (d *ConceptDecl) Common() *DeclCommon { return &d.DeclCommon }

// TranslationUnit is the root AST artifact returned by Parse (spec.md §6).
type TranslationUnit struct {
	Filename     string
	Declarations []Decl
}
