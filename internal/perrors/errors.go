// Package perrors implements the parser's error taxonomy. It is named
// perrors (parser errors) rather than errors to avoid shadowing the
// standard library package.
package perrors

import (
	"encoding/json"
	"fmt"

	"github.com/oxhq/cppdecl/internal/token"
)

// Code enumerates the error kinds from spec.md §7.
type Code string

const (
	LexicalError           Code = "LexicalError"
	UnexpectedToken         Code = "UnexpectedToken"
	UnbalancedDelimiter     Code = "UnbalancedDelimiter"
	AmbiguousDeclaration    Code = "AmbiguousDeclaration"
	Unsupported             Code = "Unsupported"
	InternalInvariantBroken Code = "InternalInvariantBroken"
)

// Fatal reports whether an error of this Code aborts the parse (spec.md §7
// policy: "the first three are fatal... Unsupported is recoverable...
// InternalInvariantBroken is always fatal").
func (c Code) Fatal() bool {
	switch c {
	case Unsupported:
		return false
	default:
		return true
	}
}

// ParseError is the uniform error payload for both human and JSON output.
type ParseError struct {
	Code     Code           `json:"code"`
	Message  string         `json:"message"`
	Location token.Location `json:"location"`
	Detail   string         `json:"detail,omitempty"`
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s (%s)", e.Location, e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", e.Location, e.Code, e.Message)
}

func (e *ParseError) String() string { return e.Error() }

// JSON renders the error as a JSON object.
func (e *ParseError) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New builds a ParseError, naming the construct being parsed in msg per
// spec.md §7 ("messages name the construct being parsed").
func New(code Code, loc token.Location, msg string, args ...any) *ParseError {
	return &ParseError{Code: code, Message: fmt.Sprintf(msg, args...), Location: loc}
}

// Wrap attaches inner's message as Detail.
func Wrap(code Code, loc token.Location, msg string, inner error) *ParseError {
	d := ""
	if inner != nil {
		d = inner.Error()
	}
	return &ParseError{Code: code, Message: msg, Location: loc, Detail: d}
}

// Diagnostic is a non-fatal, recorded issue (spec.md §7 "Unsupported is
// recoverable: the offending declaration is skipped... and recorded as a
// diagnostic").
type Diagnostic struct {
	Code     Code           `json:"code"`
	Message  string         `json:"message"`
	Location token.Location `json:"location"`
}
