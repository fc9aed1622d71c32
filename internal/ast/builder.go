package ast

// Builder implements Visitor by appending each event into the body of
// whichever namespace/class/extern-block is currently open, producing a
// full TranslationUnit (spec.md §4.4 "Default visitor builds the AST").
type Builder struct {
	NopVisitor
	unit  TranslationUnit
	stack []*[]Decl // top is the currently-open body to append into
}

// NewBuilder creates a Builder rooted at the global scope of filename.
func NewBuilder(filename string) *Builder {
	b := &Builder{unit: TranslationUnit{Filename: filename}}
	b.stack = []*[]Decl{&b.unit.Declarations}
	return b
}

// Unit returns the TranslationUnit built so far. Call after the parse
// completes (all Enter* calls have matching Exit*/On* calls).
func (b *Builder) Unit() *TranslationUnit { return &b.unit }

func (b *Builder) top() *[]Decl { return b.stack[len(b.stack)-1] }

func (b *Builder) append(d Decl) { *b.top() = append(*b.top(), d) }

func (b *Builder) EnterNamespace(d *NamespaceDecl) {
	b.append(d)
	b.stack = append(b.stack, &d.Body)
}

func (b *Builder) ExitNamespace(*NamespaceDecl) {
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *Builder) EnterClass(d *ClassDecl) {
	b.append(d)
	b.stack = append(b.stack, &d.Body)
}

func (b *Builder) ExitClass(*ClassDecl) {
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *Builder) OnExternBlockEnter(d *ExternBlockDecl) {
	b.append(d)
	b.stack = append(b.stack, &d.Body)
}

func (b *Builder) OnExternBlockExit(*ExternBlockDecl) {
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *Builder) OnFunction(d *FunctionDecl)             { b.append(d) }
func (b *Builder) OnVariable(d *VariableDecl)             { b.append(d) }
func (b *Builder) OnTypedef(d *TypedefDecl)               { b.append(d) }
func (b *Builder) OnAlias(d *AliasDecl)                   { b.append(d) }
func (b *Builder) OnUsing(d Decl)                         { b.append(d) }
func (b *Builder) OnFriend(d *FriendDecl)                 { b.append(d) }
func (b *Builder) OnEnum(d *EnumDecl)                     { b.append(d) }
func (b *Builder) OnStaticAssert(d *StaticAssertDecl)     { b.append(d) }
func (b *Builder) OnPragma(d *PragmaOrIncludeDecl)        { b.append(d) }
func (b *Builder) OnNamespaceAlias(d *NamespaceAliasDecl) { b.append(d) }
func (b *Builder) OnConcept(d *ConceptDecl)               { b.append(d) }
