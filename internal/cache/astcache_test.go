package cache

import (
	"testing"
	"time"

	"github.com/oxhq/cppdecl/internal/ast"
)

func TestASTCache_StoreAndGet(t *testing.T) {
	c := New(time.Minute)
	unit := &ast.TranslationUnit{Filename: "foo.h"}

	if _, ok := c.Get("int x;"); ok {
		t.Fatal("expected miss before any Store")
	}

	c.Store("int x;", unit)

	got, ok := c.Get("int x;")
	if !ok {
		t.Fatal("expected hit after Store")
	}
	if got != unit {
		t.Errorf("expected the same *ast.TranslationUnit pointer back, got %p want %p", got, unit)
	}
}

func TestASTCache_ExpiresAfterMaxAge(t *testing.T) {
	c := New(time.Millisecond)
	c.Store("int x;", &ast.TranslationUnit{Filename: "foo.h"})

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("int x;"); ok {
		t.Error("expected entry to have expired")
	}
}

func TestASTCache_Stats(t *testing.T) {
	c := New(time.Minute)
	c.Store("a", &ast.TranslationUnit{Filename: "a.h"})

	c.Get("a") // hit
	c.Get("b") // miss

	stats := c.Stats()
	if stats["hits"] != 1 {
		t.Errorf("expected 1 hit, got %d", stats["hits"])
	}
	if stats["misses"] != 1 {
		t.Errorf("expected 1 miss, got %d", stats["misses"])
	}
}

func TestHash_IsDeterministicAndContentAddressed(t *testing.T) {
	if Hash("same") != Hash("same") {
		t.Error("expected Hash to be deterministic for identical input")
	}
	if Hash("a") == Hash("b") {
		t.Error("expected different input to hash differently")
	}
}
