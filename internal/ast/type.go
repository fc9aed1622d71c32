package ast

// TypeKind tags the closed set of Type variants (spec.md §3 Type, §9 "closed
// tagged variant per node family").
type TypeKind string

const (
	TypeFundamental    TypeKind = "fundamental"
	TypeNamed          TypeKind = "named"
	TypeAuto           TypeKind = "auto"
	TypeDecltypeAuto   TypeKind = "decltype_auto"
	TypeDecltype       TypeKind = "decltype"
	TypePointer        TypeKind = "pointer"
	TypeReference      TypeKind = "reference"
	TypeArray          TypeKind = "array"
	TypeFunction       TypeKind = "function"
	TypeMemberPointer  TypeKind = "member_pointer"
	TypePack           TypeKind = "pack"
)

// CV carries the const/volatile qualifiers a Type may bear.
type CV struct {
	Const    bool
	Volatile bool
}

// RefKind distinguishes lvalue (&) from rvalue (&&) reference derivations.
type RefKind string

const (
	RefNone   RefKind = ""
	RefLValue RefKind = "lvalue"
	RefRValue RefKind = "rvalue"
)

// ClassKey tags the elaborated-type-specifier keyword, when present.
type ClassKey string

const (
	ClassKeyNone   ClassKey = ""
	ClassKeyClass  ClassKey = "class"
	ClassKeyStruct ClassKey = "struct"
	ClassKeyUnion  ClassKey = "union"
	ClassKeyEnum   ClassKey = "enum"
)

// NoexceptSpec records a function type's noexcept-specifier.
type NoexceptSpec struct {
	Present    bool
	Expression Tokens // present only for noexcept(expr); empty for bare noexcept
}

// Type is the closed interface implemented by every type-expression variant
// (spec.md §3 Type). Every variant carries CV qualifiers, attributes, and a
// location via the embedded TypeCommon returned by Common().
type Type interface {
	Kind() TypeKind
	Common() *TypeCommon
}

// TypeCommon holds the fields shared by every Type variant.
type TypeCommon struct {
	CV         CV
	Attributes []Attribute
	Location   Location
}

// FundamentalType is a space-separated canonical spelling of a built-in
// type, e.g. "unsigned long long", "signed char" (spec.md §3).
type FundamentalType struct {
	TypeCommon
	Spelling string
}

func (t *FundamentalType) Kind() TypeKind    { return TypeFundamental }
func (t *FundamentalType) Common() *TypeCommon { return &t.TypeCommon }

// NamedType references a (possibly elaborated, possibly typename-prefixed)
// qualified name, e.g. "struct Foo::Bar<int>".
type NamedType struct {
	TypeCommon
	Name          QualifiedName
	IsTypename    bool
	ElaboratedKey ClassKey
}

func (t *NamedType) Kind() TypeKind    { return TypeNamed }
func (t *NamedType) Common() *TypeCommon { return &t.TypeCommon }

// AutoType is the placeholder type `auto`.
type AutoType struct{ TypeCommon }

func (t *AutoType) Kind() TypeKind    { return TypeAuto }
func (t *AutoType) Common() *TypeCommon { return &t.TypeCommon }

// DecltypeAutoType is `decltype(auto)`.
type DecltypeAutoType struct{ TypeCommon }

func (t *DecltypeAutoType) Kind() TypeKind    { return TypeDecltypeAuto }
func (t *DecltypeAutoType) Common() *TypeCommon { return &t.TypeCommon }

// DecltypeType is `decltype(expr)`, with expr captured opaquely.
type DecltypeType struct {
	TypeCommon
	Expression Tokens
}

func (t *DecltypeType) Kind() TypeKind    { return TypeDecltype }
func (t *DecltypeType) Common() *TypeCommon { return &t.TypeCommon }

// PointerType is `inner *`, optionally cv-qualified on the pointer itself.
type PointerType struct {
	TypeCommon
	Inner Type
}

func (t *PointerType) Kind() TypeKind    { return TypePointer }
func (t *PointerType) Common() *TypeCommon { return &t.TypeCommon }

// ReferenceType is `inner &` or `inner &&`.
type ReferenceType struct {
	TypeCommon
	Inner Type
	Ref   RefKind
}

func (t *ReferenceType) Kind() TypeKind    { return TypeReference }
func (t *ReferenceType) Common() *TypeCommon { return &t.TypeCommon }

// ArrayType is `inner [size?]`, with size captured opaquely when present
// (spec.md §1 "array sizes... captured as opaque balanced token runs").
type ArrayType struct {
	TypeCommon
	Inner Type
	Size  Tokens // nil for an unbounded array `T[]`
}

func (t *ArrayType) Kind() TypeKind    { return TypeArray }
func (t *ArrayType) Common() *TypeCommon { return &t.TypeCommon }

// FunctionType is a function signature as a type (used for function-pointer
// targets and function declarators alike).
type FunctionType struct {
	TypeCommon
	Return         Type // nil when constructors/destructors have no return type
	Parameters     []Parameter
	IsVariadic     bool
	RefQual        RefKind
	Noexcept       NoexceptSpec
	TrailingReturn Type // non-nil when the declarator used `-> T`
}

func (t *FunctionType) Kind() TypeKind    { return TypeFunction }
func (t *FunctionType) Common() *TypeCommon { return &t.TypeCommon }

// MemberPointerType is `Class::* inner`, e.g. `int Foo::*`.
type MemberPointerType struct {
	TypeCommon
	Class QualifiedName
	Inner Type
}

func (t *MemberPointerType) Kind() TypeKind    { return TypeMemberPointer }
func (t *MemberPointerType) Common() *TypeCommon { return &t.TypeCommon }

// PackType is a parameter-pack expansion `Inner...`.
type PackType struct {
	TypeCommon
	Inner Type
}

func (t *PackType) Kind() TypeKind    { return TypePack }
func (t *PackType) Common() *TypeCommon { return &t.TypeCommon }
