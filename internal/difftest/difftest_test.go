package difftest

import (
	"strings"
	"testing"
)

func TestRequireEqual_MatchReturnsEmpty(t *testing.T) {
	if msg := RequireEqual("case", "same", "same"); msg != "" {
		t.Errorf("expected empty message for equal strings, got %q", msg)
	}
}

func TestRequireEqual_MismatchIncludesDiff(t *testing.T) {
	msg := RequireEqual("case", "line one\nline two\n", "line one\nline three\n")
	if msg == "" {
		t.Fatal("expected a non-empty message for mismatched strings")
	}
	if !strings.Contains(msg, "case mismatch") {
		t.Errorf("expected message to be labeled, got %q", msg)
	}
	if !strings.Contains(msg, "line two") || !strings.Contains(msg, "line three") {
		t.Errorf("expected diff to show both differing lines, got %q", msg)
	}
}

func TestUnified_IdenticalInputProducesNoHunks(t *testing.T) {
	out := Unified("same\n", "same\n")
	if strings.Contains(out, "@@") {
		t.Errorf("expected no diff hunks for identical input, got %q", out)
	}
}
