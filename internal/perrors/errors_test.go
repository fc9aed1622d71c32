package perrors

import (
	"strings"
	"testing"

	"github.com/oxhq/cppdecl/internal/token"
)

func TestCode_Fatal(t *testing.T) {
	cases := []struct {
		code  Code
		fatal bool
	}{
		{LexicalError, true},
		{UnexpectedToken, true},
		{UnbalancedDelimiter, true},
		{AmbiguousDeclaration, true},
		{Unsupported, false},
		{InternalInvariantBroken, true},
	}
	for _, c := range cases {
		if got := c.code.Fatal(); got != c.fatal {
			t.Errorf("%s.Fatal() = %v, want %v", c.code, got, c.fatal)
		}
	}
}

func TestNew_FormatsMessageWithArgs(t *testing.T) {
	loc := token.Location{Filename: "x.h", Line: 3, Column: 5}
	err := New(UnexpectedToken, loc, "expected %s, got %s", ";", "}")
	if err.Message != "expected ;, got }" {
		t.Errorf("expected formatted message, got %q", err.Message)
	}
	if err.Code != UnexpectedToken {
		t.Errorf("expected code UnexpectedToken, got %v", err.Code)
	}
}

func TestError_IncludesDetailWhenPresent(t *testing.T) {
	loc := token.Location{Filename: "x.h", Line: 1, Column: 1}
	withoutDetail := New(Unsupported, loc, "skipping construct")
	if strings.Contains(withoutDetail.Error(), "(") {
		t.Errorf("expected no parenthesized detail when Detail is empty, got %q", withoutDetail.Error())
	}

	wrapped := Wrap(Unsupported, loc, "skipping construct", errAsError("inner cause"))
	if !strings.Contains(wrapped.Error(), "inner cause") {
		t.Errorf("expected wrapped error to include the inner cause, got %q", wrapped.Error())
	}
}

func TestJSON_RoundTripsCode(t *testing.T) {
	loc := token.Location{Filename: "x.h", Line: 2, Column: 2}
	err := New(AmbiguousDeclaration, loc, "ambiguous")
	j := err.JSON()
	if !strings.Contains(j, `"code":"AmbiguousDeclaration"`) {
		t.Errorf("expected JSON to include the error code, got %q", j)
	}
}

type simpleError string

func (e simpleError) Error() string { return string(e) }

func errAsError(msg string) error { return simpleError(msg) }
