package ast

// Visitor is the streaming alternative to building a full TranslationUnit
// (spec.md §4.4, §2 "the Visitor is an optional streaming alternative").
// The parser invokes these methods in source order as it recognizes each
// construct; Builder (in builder.go) implements it to build an AST.
type Visitor interface {
	EnterNamespace(*NamespaceDecl)
	ExitNamespace(*NamespaceDecl)
	EnterClass(*ClassDecl)
	ExitClass(*ClassDecl)
	OnFunction(*FunctionDecl)
	OnVariable(*VariableDecl)
	OnTypedef(*TypedefDecl)
	OnAlias(*AliasDecl)
	OnUsing(Decl) // UsingDeclarationDecl | UsingDirectiveDecl | UsingEnumDecl
	OnFriend(*FriendDecl)
	OnEnum(*EnumDecl)
	OnStaticAssert(*StaticAssertDecl)
	OnPragma(*PragmaOrIncludeDecl)
	OnNamespaceAlias(*NamespaceAliasDecl)
	OnConcept(*ConceptDecl)
	OnExternBlockEnter(*ExternBlockDecl)
	OnExternBlockExit(*ExternBlockDecl)
}

// NopVisitor implements Visitor with no-op methods, useful to embed when a
// consumer only cares about a handful of events.
type NopVisitor struct{}

func (NopVisitor) EnterNamespace(*NamespaceDecl)      {}
func (NopVisitor) ExitNamespace(*NamespaceDecl)       {}
func (NopVisitor) EnterClass(*ClassDecl)              {}
func (NopVisitor) ExitClass(*ClassDecl)               {}
func (NopVisitor) OnFunction(*FunctionDecl)           {}
func (NopVisitor) OnVariable(*VariableDecl)           {}
func (NopVisitor) OnTypedef(*TypedefDecl)             {}
func (NopVisitor) OnAlias(*AliasDecl)                 {}
func (NopVisitor) OnUsing(Decl)                       {}
func (NopVisitor) OnFriend(*FriendDecl)               {}
func (NopVisitor) OnEnum(*EnumDecl)                   {}
func (NopVisitor) OnStaticAssert(*StaticAssertDecl)   {}
func (NopVisitor) OnPragma(*PragmaOrIncludeDecl)      {}
func (NopVisitor) OnNamespaceAlias(*NamespaceAliasDecl) {}
func (NopVisitor) OnConcept(*ConceptDecl)             {}
func (NopVisitor) OnExternBlockEnter(*ExternBlockDecl) {}
func (NopVisitor) OnExternBlockExit(*ExternBlockDecl)  {}
