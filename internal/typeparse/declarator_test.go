package typeparse

import (
	"testing"

	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/lexer"
	"github.com/oxhq/cppdecl/internal/options"
	"github.com/oxhq/cppdecl/internal/scope"
	"github.com/oxhq/cppdecl/internal/source"
	"github.com/oxhq/cppdecl/internal/stream"
)

func newDeclaratorStream(t *testing.T, src string) (*stream.Stream, *scope.Table) {
	t.Helper()
	r := source.New(src, "test.h")
	lx := lexer.New(r, lexer.DefaultOptions())
	return stream.New(lx), scope.NewTable(nil)
}

func intBase() ast.Type {
	return &ast.FundamentalType{Spelling: "int"}
}

func TestComposeDeclarator_SimplePointer(t *testing.T) {
	ts, sc := newDeclaratorStream(t, "*p")
	name, typ, err := ComposeDeclarator(ts, sc, options.Default(), intBase())
	if err != nil {
		t.Fatal(err)
	}
	if name.String() != "p" {
		t.Errorf("expected name 'p', got %q", name.String())
	}
	ptr, ok := typ.(*ast.PointerType)
	if !ok {
		t.Fatalf("expected *ast.PointerType, got %T", typ)
	}
	if _, ok := ptr.Inner.(*ast.FundamentalType); !ok {
		t.Errorf("expected pointer to wrap the fundamental base, got %T", ptr.Inner)
	}
}

func TestComposeDeclarator_LValueReference(t *testing.T) {
	ts, sc := newDeclaratorStream(t, "&r")
	_, typ, err := ComposeDeclarator(ts, sc, options.Default(), intBase())
	if err != nil {
		t.Fatal(err)
	}
	ref, ok := typ.(*ast.ReferenceType)
	if !ok {
		t.Fatalf("expected *ast.ReferenceType, got %T", typ)
	}
	if ref.Ref != ast.RefLValue {
		t.Errorf("expected lvalue reference, got %v", ref.Ref)
	}
}

func TestComposeDeclarator_RValueReference(t *testing.T) {
	ts, sc := newDeclaratorStream(t, "&&r")
	_, typ, err := ComposeDeclarator(ts, sc, options.Default(), intBase())
	if err != nil {
		t.Fatal(err)
	}
	ref, ok := typ.(*ast.ReferenceType)
	if !ok || ref.Ref != ast.RefRValue {
		t.Fatalf("expected rvalue reference, got %T %+v", typ, typ)
	}
}

func TestComposeDeclarator_ArrayOfKnownSize(t *testing.T) {
	ts, sc := newDeclaratorStream(t, "arr[10]")
	name, typ, err := ComposeDeclarator(ts, sc, options.Default(), intBase())
	if err != nil {
		t.Fatal(err)
	}
	if name.String() != "arr" {
		t.Errorf("expected name 'arr', got %q", name.String())
	}
	arr, ok := typ.(*ast.ArrayType)
	if !ok {
		t.Fatalf("expected *ast.ArrayType, got %T", typ)
	}
	if len(arr.Size) == 0 {
		t.Error("expected a captured array size")
	}
}

func TestComposeDeclarator_PointerToArray(t *testing.T) {
	// int (*p)[3]: p is a pointer to an array of 3 ints.
	ts, sc := newDeclaratorStream(t, "(*p)[3]")
	name, typ, err := ComposeDeclarator(ts, sc, options.Default(), intBase())
	if err != nil {
		t.Fatal(err)
	}
	if name.String() != "p" {
		t.Errorf("expected name 'p', got %q", name.String())
	}
	ptr, ok := typ.(*ast.PointerType)
	if !ok {
		t.Fatalf("expected the outermost type to be *ast.PointerType (pointer to array), got %T", typ)
	}
	if _, ok := ptr.Inner.(*ast.ArrayType); !ok {
		t.Errorf("expected the pointer to wrap an *ast.ArrayType, got %T", ptr.Inner)
	}
}

func TestComposeDeclarator_FunctionPointer(t *testing.T) {
	// int (*fp)(int): fp is a pointer to a function taking int, returning int.
	ts, sc := newDeclaratorStream(t, "(*fp)(int)")
	name, typ, err := ComposeDeclarator(ts, sc, options.Default(), intBase())
	if err != nil {
		t.Fatal(err)
	}
	if name.String() != "fp" {
		t.Errorf("expected name 'fp', got %q", name.String())
	}
	ptr, ok := typ.(*ast.PointerType)
	if !ok {
		t.Fatalf("expected the outermost type to be *ast.PointerType, got %T", typ)
	}
	fn, ok := ptr.Inner.(*ast.FunctionType)
	if !ok {
		t.Fatalf("expected the pointer to wrap an *ast.FunctionType, got %T", ptr.Inner)
	}
	if len(fn.Parameters) != 1 {
		t.Errorf("expected 1 parameter, got %d", len(fn.Parameters))
	}
}

func TestComposeDeclarator_CVQualifiedPointer(t *testing.T) {
	ts, sc := newDeclaratorStream(t, "*const cp")
	_, typ, err := ComposeDeclarator(ts, sc, options.Default(), intBase())
	if err != nil {
		t.Fatal(err)
	}
	ptr, ok := typ.(*ast.PointerType)
	if !ok {
		t.Fatalf("expected *ast.PointerType, got %T", typ)
	}
	if !ptr.CV.Const {
		t.Error("expected the pointer itself to be const-qualified")
	}
}
