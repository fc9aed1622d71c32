package walker

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalk_DefaultExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "include", "foo.h"), "struct Foo;")
	writeFile(t, filepath.Join(root, "include", "bar.hpp"), "struct Bar;")
	writeFile(t, filepath.Join(root, "src", "main.cpp"), "int main() { return 0; }")
	writeFile(t, filepath.Join(root, "vendor", "skipped.h"), "struct Skipped;")
	writeFile(t, filepath.Join(root, ".git", "hidden.h"), "struct Hidden;")

	files, err := Walk(root, Config{})
	if err != nil {
		t.Fatal(err)
	}

	var bases []string
	for _, f := range files {
		bases = append(bases, filepath.Base(f))
	}
	sort.Strings(bases)

	want := []string{"bar.hpp", "foo.h"}
	if len(bases) != len(want) {
		t.Fatalf("expected %v, got %v", want, bases)
	}
	for i := range want {
		if bases[i] != want[i] {
			t.Errorf("expected %v, got %v", want, bases)
			break
		}
	}
}

func TestWalk_IncludeExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "keep.h"), "struct Keep;")
	writeFile(t, filepath.Join(root, "b", "drop.h"), "struct Drop;")

	files, err := Walk(root, Config{
		IncludeGlobs: []string{filepath.Join(root, "a", "**")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "keep.h" {
		t.Fatalf("expected only keep.h, got %v", files)
	}

	files, err = Walk(root, Config{
		ExcludeGlobs: []string{filepath.Join(root, "b", "**")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "keep.h" {
		t.Fatalf("expected keep.h after excluding b/, got %v", files)
	}
}

func TestReadFile_RoundTrips(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "x.h")
	writeFile(t, path, "struct X;")

	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "struct X;" {
		t.Errorf("expected file contents round-tripped, got %q", got)
	}
}

func TestReadFile_MissingFile(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.h")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
