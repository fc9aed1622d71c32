package typeparse

import (
	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/options"
	"github.com/oxhq/cppdecl/internal/perrors"
	"github.com/oxhq/cppdecl/internal/stream"
	"github.com/oxhq/cppdecl/internal/token"
)

// ParseAttributeSequence consumes zero or more leading attribute specifiers
// in any mix of the `[[...]]`, `__attribute__((...))`, and `__declspec(...)`
// forms (spec.md §1, §4.3 "Consumes leading attribute sequences"), honoring
// Options.GNUAttributes/MSVCAttributes/Strict (spec.md §6, §9 open
// question on vendor attribute tolerance).
func ParseAttributeSequence(ts *stream.Stream, opts options.Options) ([]ast.Attribute, error) {
	var out []ast.Attribute
	for {
		tok, err := ts.Current()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Is("[") && peekIs(ts, 1, "["):
			attrs, err := parseStandardAttribute(ts)
			if err != nil {
				return nil, err
			}
			out = append(out, attrs...)

		case tok.Kind == token.Identifier && (tok.Spelling == "__attribute__" || tok.Spelling == "__attribute"):
			if !opts.GNUAttributes && opts.Strict {
				return nil, perrors.New(perrors.Unsupported, tok.Location, "GNU __attribute__ encountered with gnu_attributes disabled")
			}
			attrs, err := parseGNUAttribute(ts)
			if err != nil {
				return nil, err
			}
			out = append(out, attrs...)

		case tok.Kind == token.Identifier && tok.Spelling == "__declspec":
			if !opts.MSVCAttributes && opts.Strict {
				return nil, perrors.New(perrors.Unsupported, tok.Location, "MSVC __declspec encountered with msvc_attributes disabled")
			}
			attrs, err := parseMSVCDeclspec(ts)
			if err != nil {
				return nil, err
			}
			out = append(out, attrs...)

		case tok.Kind == token.Identifier && isMSVCCallConv(tok.Spelling):
			ts.Consume()
			out = append(out, ast.Attribute{Form: ast.AttrFormMSVC, Name: tok.Spelling, Location: tok.Location})

		default:
			return out, nil
		}
	}
}

func peekIs(ts *stream.Stream, k int, spelling string) bool {
	tok, err := ts.Peek(k)
	return err == nil && tok.Is(spelling)
}

func isMSVCCallConv(s string) bool {
	switch s {
	case "__cdecl", "__stdcall", "__fastcall", "__thiscall", "__vectorcall":
		return true
	}
	return false
}

// parseStandardAttribute parses one `[[ attr-list ]]` sequence, possibly
// containing multiple comma-separated, optionally scoped attributes.
func parseStandardAttribute(ts *stream.Stream) ([]ast.Attribute, error) {
	start, _ := ts.Current()
	ts.Consume() // '['
	ts.Consume() // '['

	var out []ast.Attribute
	for !ts.Is("]") {
		tok, err := ts.Current()
		if err != nil {
			return nil, err
		}
		loc := tok.Location
		var scopeName string
		name := tok.Spelling
		ts.Consume()
		if ts.Is("::") {
			ts.Consume()
			scopeName = name
			tok2, _ := ts.Current()
			name = tok2.Spelling
			ts.Consume()
		}
		var args ast.Tokens
		if ts.Is("(") {
			ts.Consume()
			toks, err := ts.CaptureBalanced([]string{")"}, false)
			if err != nil {
				return nil, err
			}
			args = toks
			ts.Consume() // ')'
		}
		out = append(out, ast.Attribute{Form: ast.AttrFormStandard, Scope: scopeName, Name: name, Args: args, Location: loc})
		if ts.Is(",") {
			ts.Consume()
			continue
		}
		break
	}
	if !ts.Is("]") {
		t, _ := ts.Current()
		return nil, perrors.New(perrors.UnexpectedToken, t.Location, "expected ']' closing attribute list starting at %s", start.Location)
	}
	ts.Consume() // ']'
	if !ts.Is("]") {
		t, _ := ts.Current()
		return nil, perrors.New(perrors.UnexpectedToken, t.Location, "expected second ']' closing attribute list starting at %s", start.Location)
	}
	ts.Consume() // ']'
	return out, nil
}

func parseGNUAttribute(ts *stream.Stream) ([]ast.Attribute, error) {
	start, _ := ts.Current()
	ts.Consume() // __attribute__
	if !ts.Is("(") {
		t, _ := ts.Current()
		return nil, perrors.New(perrors.UnexpectedToken, t.Location, "expected '(' after __attribute__ at %s", start.Location)
	}
	ts.Consume()
	if !ts.Is("(") {
		t, _ := ts.Current()
		return nil, perrors.New(perrors.UnexpectedToken, t.Location, "expected '((' after __attribute__ at %s", start.Location)
	}
	ts.Consume()
	toks, err := ts.CaptureBalanced([]string{")"}, false)
	if err != nil {
		return nil, err
	}
	ts.Consume() // inner ')'
	if !ts.Is(")") {
		t, _ := ts.Current()
		return nil, perrors.New(perrors.UnexpectedToken, t.Location, "expected closing ')' of __attribute__ at %s", start.Location)
	}
	ts.Consume() // outer ')'
	return []ast.Attribute{{Form: ast.AttrFormGNU, Name: "__attribute__", Args: toks, Location: start.Location}}, nil
}

func parseMSVCDeclspec(ts *stream.Stream) ([]ast.Attribute, error) {
	start, _ := ts.Current()
	ts.Consume() // __declspec
	if !ts.Is("(") {
		t, _ := ts.Current()
		return nil, perrors.New(perrors.UnexpectedToken, t.Location, "expected '(' after __declspec at %s", start.Location)
	}
	ts.Consume()
	toks, err := ts.CaptureBalanced([]string{")"}, false)
	if err != nil {
		return nil, err
	}
	ts.Consume() // ')'
	return []ast.Attribute{{Form: ast.AttrFormMSVC, Name: "__declspec", Args: toks, Location: start.Location}}, nil
}
