package declparse

import (
	"testing"

	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/options"
)

func mustParse(t *testing.T, src string) *ast.TranslationUnit {
	t.Helper()
	unit, diags, err := Parse(src, "test.h", options.Default())
	if err != nil {
		t.Fatalf("Parse returned fatal error: %v", err)
	}
	for _, d := range diags {
		t.Errorf("unexpected diagnostic: %s: %s", d.Code, d.Message)
	}
	return unit
}

func TestParse_SimpleNamespaceAndClass(t *testing.T) {
	unit := mustParse(t, `
namespace foo::bar {
class Widget {
public:
    Widget();
    ~Widget();
    int value;
};
}
`)
	if len(unit.Declarations) != 1 {
		t.Fatalf("expected 1 top-level declaration, got %d", len(unit.Declarations))
	}
	ns, ok := unit.Declarations[0].(*ast.NamespaceDecl)
	if !ok {
		t.Fatalf("expected *ast.NamespaceDecl, got %T", unit.Declarations[0])
	}
	if got := ns.Names; len(got) != 2 || got[0] != "foo" || got[1] != "bar" {
		t.Errorf("expected Names [foo bar], got %v", got)
	}
	if len(ns.Body) != 1 {
		t.Fatalf("expected 1 declaration in namespace body, got %d", len(ns.Body))
	}
	cls, ok := ns.Body[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", ns.Body[0])
	}
	if cls.Key != ast.ClassKeyClass {
		t.Errorf("expected class key 'class', got %q", cls.Key)
	}
	if cls.Name.String() != "Widget" {
		t.Errorf("expected class name Widget, got %q", cls.Name.String())
	}
	if len(cls.Body) != 3 {
		t.Fatalf("expected 3 members, got %d", len(cls.Body))
	}

	ctor, ok := cls.Body[0].(*ast.FunctionDecl)
	if !ok || ctor.Special != ast.FunctionConstructor {
		t.Errorf("expected first member to be a constructor, got %#v", cls.Body[0])
	}
	if ctor.Access != ast.AccessPublic {
		t.Errorf("expected constructor access 'public', got %q", ctor.Access)
	}
	dtor, ok := cls.Body[1].(*ast.FunctionDecl)
	if !ok || dtor.Special != ast.FunctionDestructor {
		t.Errorf("expected second member to be a destructor, got %#v", cls.Body[1])
	}
	if dtor.Access != ast.AccessPublic {
		t.Errorf("expected destructor access 'public', got %q", dtor.Access)
	}
	field, ok := cls.Body[2].(*ast.VariableDecl)
	if !ok || field.Name != "value" {
		t.Errorf("expected third member to be variable 'value', got %#v", cls.Body[2])
	}
	if field.Access != ast.AccessPublic {
		t.Errorf("expected field access 'public', got %q", field.Access)
	}
}

// TestParse_ClassDefaultAccessAndSectionSwitch covers scenario S2 (a
// struct's members default to public) and the private/protected section
// switches within a single class key (a class defaults to private).
func TestParse_ClassDefaultAccessAndSectionSwitch(t *testing.T) {
	unit := mustParse(t, `
struct B {
    int m;
};
class C {
    int a;
protected:
    int b;
public:
    int c;
};
`)
	if len(unit.Declarations) != 2 {
		t.Fatalf("expected 2 top-level declarations, got %d", len(unit.Declarations))
	}
	structB, ok := unit.Declarations[0].(*ast.ClassDecl)
	if !ok || structB.Key != ast.ClassKeyStruct {
		t.Fatalf("expected struct B, got %#v", unit.Declarations[0])
	}
	if len(structB.Body) != 1 {
		t.Fatalf("expected 1 member in struct B, got %d", len(structB.Body))
	}
	m, ok := structB.Body[0].(*ast.VariableDecl)
	if !ok || m.Name != "m" {
		t.Fatalf("expected member 'm', got %#v", structB.Body[0])
	}
	if m.Access != ast.AccessPublic {
		t.Errorf("expected struct member default access 'public', got %q", m.Access)
	}

	classC, ok := unit.Declarations[1].(*ast.ClassDecl)
	if !ok || classC.Key != ast.ClassKeyClass {
		t.Fatalf("expected class C, got %#v", unit.Declarations[1])
	}
	if len(classC.Body) != 3 {
		t.Fatalf("expected 3 members in class C, got %d", len(classC.Body))
	}
	a, ok := classC.Body[0].(*ast.VariableDecl)
	if !ok || a.Access != ast.AccessPrivate {
		t.Errorf("expected 'a' to default to private, got %#v", classC.Body[0])
	}
	b, ok := classC.Body[1].(*ast.VariableDecl)
	if !ok || b.Access != ast.AccessProtected {
		t.Errorf("expected 'b' to be protected, got %#v", classC.Body[1])
	}
	c, ok := classC.Body[2].(*ast.VariableDecl)
	if !ok || c.Access != ast.AccessPublic {
		t.Errorf("expected 'c' to be public, got %#v", classC.Body[2])
	}
}

func TestParse_ClassForwardDeclaration(t *testing.T) {
	unit := mustParse(t, `struct Opaque;`)
	if len(unit.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(unit.Declarations))
	}
	cls, ok := unit.Declarations[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", unit.Declarations[0])
	}
	if !cls.IsForward {
		t.Error("expected IsForward true")
	}
	if cls.Key != ast.ClassKeyStruct {
		t.Errorf("expected struct key, got %q", cls.Key)
	}
	if cls.Name.String() != "Opaque" {
		t.Errorf("expected name Opaque, got %q", cls.Name.String())
	}
}

func TestParse_EnumScopedAndPlain(t *testing.T) {
	unit := mustParse(t, `
enum class Color : unsigned int { Red, Green = 2, Blue };
enum Legacy { A, B };
`)
	if len(unit.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(unit.Declarations))
	}
	color, ok := unit.Declarations[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("expected *ast.EnumDecl, got %T", unit.Declarations[0])
	}
	if !color.IsScoped {
		t.Error("expected Color to be scoped (enum class)")
	}
	if color.Underlying == nil {
		t.Fatal("expected an underlying type for Color")
	}
	if len(color.Enumerators) != 3 {
		t.Fatalf("expected 3 enumerators, got %d", len(color.Enumerators))
	}
	if color.Enumerators[0].Name != "Red" || color.Enumerators[1].Name != "Green" {
		t.Errorf("unexpected enumerator names: %+v", color.Enumerators)
	}

	legacy, ok := unit.Declarations[1].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("expected *ast.EnumDecl, got %T", unit.Declarations[1])
	}
	if legacy.IsScoped {
		t.Error("expected Legacy to be unscoped")
	}
}

func TestParse_FunctionOverloadAndOperator(t *testing.T) {
	unit := mustParse(t, `
int add(int a, int b);
Widget& operator+=(const Widget& other);
virtual void run() noexcept = 0;
`)
	if len(unit.Declarations) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(unit.Declarations))
	}

	add, ok := unit.Declarations[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", unit.Declarations[0])
	}
	if add.Special != ast.FunctionOrdinary {
		t.Errorf("expected ordinary function, got %v", add.Special)
	}
	if len(add.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(add.Parameters))
	}

	op, ok := unit.Declarations[1].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", unit.Declarations[1])
	}
	if op.Special != ast.FunctionOperatorOverload {
		t.Errorf("expected operator-overload kind, got %v", op.Special)
	}

	run, ok := unit.Declarations[2].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", unit.Declarations[2])
	}
	if !run.IsVirtual || !run.IsPure {
		t.Errorf("expected virtual pure-specifier function, got IsVirtual=%v IsPure=%v", run.IsVirtual, run.IsPure)
	}
	if !run.Noexcept.Present {
		t.Error("expected noexcept to be recorded")
	}
}

func TestParse_VariableBitfieldAndStructuredBinding(t *testing.T) {
	unit := mustParse(t, `
unsigned flags : 4;
auto [first, second] = pair;
`)
	if len(unit.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(unit.Declarations))
	}
	bitfield, ok := unit.Declarations[0].(*ast.VariableDecl)
	if !ok {
		t.Fatalf("expected *ast.VariableDecl, got %T", unit.Declarations[0])
	}
	if bitfield.BitfieldWidth == nil {
		t.Error("expected a bitfield width")
	}

	binding, ok := unit.Declarations[1].(*ast.VariableDecl)
	if !ok {
		t.Fatalf("expected *ast.VariableDecl, got %T", unit.Declarations[1])
	}
	if len(binding.StructuredBindingNames) != 2 ||
		binding.StructuredBindingNames[0] != "first" ||
		binding.StructuredBindingNames[1] != "second" {
		t.Errorf("unexpected structured binding names: %v", binding.StructuredBindingNames)
	}
}

func TestParse_TypedefAndAlias(t *testing.T) {
	unit := mustParse(t, `
typedef unsigned long ulong_t;
using IntVec = std::vector<int>;
`)
	if len(unit.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(unit.Declarations))
	}
	td, ok := unit.Declarations[0].(*ast.TypedefDecl)
	if !ok || td.Name != "ulong_t" {
		t.Errorf("expected typedef ulong_t, got %#v", unit.Declarations[0])
	}
	al, ok := unit.Declarations[1].(*ast.AliasDecl)
	if !ok || al.Name != "IntVec" {
		t.Errorf("expected alias IntVec, got %#v", unit.Declarations[1])
	}
}

func TestParse_UsingDeclarationAndDirective(t *testing.T) {
	unit := mustParse(t, `
using std::vector;
using namespace std;
`)
	if len(unit.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(unit.Declarations))
	}
	if _, ok := unit.Declarations[0].(*ast.UsingDeclarationDecl); !ok {
		t.Errorf("expected *ast.UsingDeclarationDecl, got %T", unit.Declarations[0])
	}
	if _, ok := unit.Declarations[1].(*ast.UsingDirectiveDecl); !ok {
		t.Errorf("expected *ast.UsingDirectiveDecl, got %T", unit.Declarations[1])
	}
}

func TestParse_FriendDeclaration(t *testing.T) {
	unit := mustParse(t, `
class Outer {
    friend class Inner;
};
`)
	cls := unit.Declarations[0].(*ast.ClassDecl)
	if len(cls.Body) != 1 {
		t.Fatalf("expected 1 member, got %d", len(cls.Body))
	}
	friend, ok := cls.Body[0].(*ast.FriendDecl)
	if !ok {
		t.Fatalf("expected *ast.FriendDecl, got %T", cls.Body[0])
	}
	if friend.TargetKind != ast.FriendClass {
		t.Errorf("expected friend class target, got %v", friend.TargetKind)
	}
	if friend.ClassTarget == nil || friend.ClassTarget.Name.String() != "Inner" {
		t.Errorf("expected friend target Inner, got %#v", friend.ClassTarget)
	}
}

func TestParse_StaticAssertAndExternBlock(t *testing.T) {
	unit := mustParse(t, `
static_assert(sizeof(int) == 4, "int must be 4 bytes");
extern "C" {
    void c_function(int x);
}
`)
	if len(unit.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(unit.Declarations))
	}
	sa, ok := unit.Declarations[0].(*ast.StaticAssertDecl)
	if !ok {
		t.Fatalf("expected *ast.StaticAssertDecl, got %T", unit.Declarations[0])
	}
	if len(sa.Expression) == 0 {
		t.Error("expected a non-empty static_assert expression")
	}

	block, ok := unit.Declarations[1].(*ast.ExternBlockDecl)
	if !ok {
		t.Fatalf("expected *ast.ExternBlockDecl, got %T", unit.Declarations[1])
	}
	if block.Linkage != "C" {
		t.Errorf("expected linkage C, got %q", block.Linkage)
	}
	if len(block.Body) != 1 {
		t.Fatalf("expected 1 declaration inside extern block, got %d", len(block.Body))
	}
}

func TestParse_TemplateClassAndFunction(t *testing.T) {
	unit := mustParse(t, `
template <typename T, int N>
class Buffer {
    T data[N];
};

template <typename T>
T max_of(T a, T b);
`)
	if len(unit.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(unit.Declarations))
	}
	cls, ok := unit.Declarations[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", unit.Declarations[0])
	}
	if cls.Template == nil || len(cls.Template.Params) != 2 {
		t.Fatalf("expected 2 template parameters, got %#v", cls.Template)
	}

	fn, ok := unit.Declarations[1].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", unit.Declarations[1])
	}
	if fn.Template == nil || len(fn.Template.Params) != 1 {
		t.Fatalf("expected 1 template parameter, got %#v", fn.Template)
	}
}

func TestParse_NestedTemplateAngleBrackets(t *testing.T) {
	unit := mustParse(t, `std::vector<std::vector<int>> matrix;`)
	v, ok := unit.Declarations[0].(*ast.VariableDecl)
	if !ok {
		t.Fatalf("expected *ast.VariableDecl, got %T", unit.Declarations[0])
	}
	if v.Name != "matrix" {
		t.Errorf("expected variable named matrix, got %q", v.Name)
	}
	named, ok := v.Type.(*ast.NamedType)
	if !ok {
		t.Fatalf("expected *ast.NamedType, got %T", v.Type)
	}
	if named.Name.String() == "" {
		t.Error("expected a non-empty rendered type name")
	}
}

func TestParse_ConceptDeclaration(t *testing.T) {
	unit := mustParse(t, `
template <typename T>
concept Addable = requires(T a, T b) { a + b; };
`)
	if len(unit.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(unit.Declarations))
	}
	c, ok := unit.Declarations[0].(*ast.ConceptDecl)
	if !ok {
		t.Fatalf("expected *ast.ConceptDecl, got %T", unit.Declarations[0])
	}
	if c.Name != "Addable" {
		t.Errorf("expected concept name Addable, got %q", c.Name)
	}
	if len(c.Expression) == 0 {
		t.Error("expected a non-empty concept expression")
	}
}

func TestParse_ScopePathTracksNesting(t *testing.T) {
	unit := mustParse(t, `
namespace outer {
class Inner {
    int member;
};
}
`)
	ns := unit.Declarations[0].(*ast.NamespaceDecl)
	cls := ns.Body[0].(*ast.ClassDecl)
	member := cls.Body[0].(*ast.VariableDecl)

	if got := member.Scope.Path; len(got) != 2 || got[0] != "outer" || got[1] != "Inner" {
		t.Errorf("expected scope path [outer Inner], got %v", got)
	}
}
