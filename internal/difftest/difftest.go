// Package difftest is a test-only helper that renders a unified diff
// between two strings, used by the pretty-printer round-trip property
// tests to make a mismatch readable instead of dumping both ASTs in full.
package difftest

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Unified renders a unified diff between want and got, grounded on the
// teacher's own diff-rendering helper in providers/base/provider.go.
func Unified(want, got string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("--- want\n+++ got\n@@ changes @@\n%d bytes -> %d bytes",
			len(want), len(got))
	}
	return text
}

// RequireEqual returns a non-empty failure message (suitable for
// t.Fatal/t.Error) when want != got, with a unified diff attached; it
// returns "" when they match, so tests can do `if msg := difftest.RequireEqual(...); msg != "" { t.Fatal(msg) }`.
func RequireEqual(label, want, got string) string {
	if want == got {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s mismatch:\n%s", label, Unified(want, got))
	return b.String()
}
