package ast

// SegmentKind enumerates the forms a single component of a QualifiedName
// can take (spec.md §3 QualifiedName).
type SegmentKind string

const (
	SegIdentifier SegmentKind = "identifier"
	SegTemplateID SegmentKind = "template_id"
	SegDestructor SegmentKind = "destructor"
	SegOperator   SegmentKind = "operator"
	SegConversion SegmentKind = "conversion"
	SegGlobal     SegmentKind = "global" // the leading empty segment of ::X
)

// TemplateArgument is a single entry in a template-id's argument list.
// Exactly one of AsType / Tokens is populated: a type-valued argument is
// parsed structurally (it is needed for type resolution), while a
// non-type or template-template argument is captured as an opaque token
// run (spec.md §1 "expression parsing... captured as opaque balanced
// token runs").
type TemplateArgument struct {
	AsType *Type
	Tokens Tokens
	IsPack bool
}

// Segment is one component of a QualifiedName.
type Segment struct {
	Kind SegmentKind

	// Identifier, TemplateID, Destructor (the "identifier" part, e.g. ~Foo
	// stores "Foo" here with Kind=SegDestructor).
	Name string

	// TemplateID only.
	TemplateArgs []TemplateArgument

	// Operator only: the normalized operator spelling ("+", "new[]", "\"\"" for
	// the user-defined-literal marker, etc).
	OperatorSpelling string
	// Operator only, when the operator is a user-defined-literal: the suffix
	// identifier ("_km" in operator""_km).
	LiteralSuffix string

	// Conversion only: the target type of `operator T()`.
	ConversionType *Type

	Location Location
}

// QualifiedName is an ordered sequence of segments, e.g. `::std::vector<int>`.
type QualifiedName struct {
	Segments []Segment
}

// IsGlobalQualified reports whether the name begins with "::" (its first
// segment is the global-scope marker).
func (q QualifiedName) IsGlobalQualified() bool {
	return len(q.Segments) > 0 && q.Segments[0].Kind == SegGlobal
}

// Last returns the final segment, or the zero Segment if q is empty.
func (q QualifiedName) Last() Segment {
	if len(q.Segments) == 0 {
		return Segment{}
	}
	return q.Segments[len(q.Segments)-1]
}

// String renders a best-effort "::"-joined spelling for diagnostics.
func (q QualifiedName) String() string {
	s := ""
	for i, seg := range q.Segments {
		if i > 0 {
			s += "::"
		}
		switch seg.Kind {
		case SegGlobal:
			// leading empty segment: nothing to render before the next "::"
		case SegDestructor:
			s += "~" + seg.Name
		case SegOperator:
			s += "operator" + seg.OperatorSpelling + seg.LiteralSuffix
		case SegConversion:
			s += "operator <conversion>"
		case SegTemplateID:
			s += seg.Name + "<...>"
		default:
			s += seg.Name
		}
	}
	return s
}
