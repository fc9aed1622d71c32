package scope

import (
	"testing"

	"github.com/oxhq/cppdecl/internal/ast"
)

func TestNewTable_SeedsKnownTypes(t *testing.T) {
	tbl := NewTable([]string{"size_t", "int32_t"})
	if !tbl.IsType("size_t") {
		t.Error("expected size_t to be a known type")
	}
	if tbl.IsType("unknown_t") {
		t.Error("expected unknown_t to not be a known type")
	}
}

func TestPushPop_NestsAndRestoresScope(t *testing.T) {
	tbl := NewTable(nil)
	root := tbl.CurrentIdx()

	nsIdx := tbl.Push(ast.ScopeNamespace, "outer")
	if nsIdx == root {
		t.Fatal("expected Push to create a new scope")
	}
	if tbl.CurrentIdx() != nsIdx {
		t.Error("expected Push to make the new scope current")
	}

	tbl.Pop()
	if tbl.CurrentIdx() != root {
		t.Error("expected Pop to restore the parent scope as current")
	}
}

func TestDeclareType_VisibleFromNestedScopeNotFromSibling(t *testing.T) {
	tbl := NewTable(nil)
	tbl.Push(ast.ScopeNamespace, "outer")
	tbl.DeclareType("Widget")

	tbl.Push(ast.ScopeClass, "Inner")
	if !tbl.IsType("Widget") {
		t.Error("expected a type declared in an enclosing scope to be visible from a nested scope")
	}
	tbl.Pop()
	tbl.Pop()

	tbl.Push(ast.ScopeNamespace, "sibling")
	if tbl.IsType("Widget") {
		t.Error("expected a type declared in one namespace to not leak into an unrelated sibling")
	}
}

func TestPushClass_DefaultAccessByKey(t *testing.T) {
	tbl := NewTable(nil)

	tbl.PushClass("S", true) // struct
	if got := tbl.CurrentAccess(); got != ast.AccessPublic {
		t.Errorf("expected struct default access public, got %v", got)
	}
	tbl.Pop()

	tbl.PushClass("C", false) // class
	if got := tbl.CurrentAccess(); got != ast.AccessPrivate {
		t.Errorf("expected class default access private, got %v", got)
	}
}

func TestSetAccess_UpdatesCurrentClassScope(t *testing.T) {
	tbl := NewTable(nil)
	tbl.PushClass("S", true)
	tbl.SetAccess(ast.AccessPrivate)
	if got := tbl.CurrentAccess(); got != ast.AccessPrivate {
		t.Errorf("expected access to update to private, got %v", got)
	}
}

func TestCurrentAccess_NoneOutsideClass(t *testing.T) {
	tbl := NewTable(nil)
	tbl.Push(ast.ScopeNamespace, "ns")
	if got := tbl.CurrentAccess(); got != ast.AccessNone {
		t.Errorf("expected AccessNone outside a class scope, got %v", got)
	}
}

func TestRef_BuildsPathFromNamedScopes(t *testing.T) {
	tbl := NewTable(nil)
	tbl.Push(ast.ScopeNamespace, "outer")
	tbl.PushClass("Inner", false)

	ref := tbl.Ref()
	if len(ref.Path) != 2 || ref.Path[0] != "outer" || ref.Path[1] != "Inner" {
		t.Errorf("expected path [outer Inner], got %v", ref.Path)
	}
	if ref.Kind != ast.ScopeClass {
		t.Errorf("expected innermost scope kind class, got %v", ref.Kind)
	}
}
