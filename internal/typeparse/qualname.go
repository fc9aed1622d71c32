package typeparse

import (
	"strings"

	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/options"
	"github.com/oxhq/cppdecl/internal/perrors"
	"github.com/oxhq/cppdecl/internal/scope"
	"github.com/oxhq/cppdecl/internal/stream"
	"github.com/oxhq/cppdecl/internal/token"
)

var overloadableOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "^": true,
	"&": true, "|": true, "~": true, "!": true, "=": true, "<": true,
	">": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"^=": true, "&=": true, "|=": true, "<<": true, ">>": true, "<<=": true,
	">>=": true, "==": true, "!=": true, "<=": true, ">=": true, "<=>": true,
	"&&": true, "||": true, "++": true, "--": true, ",": true, "->*": true,
	"->": true, "()": true, "[]": true,
}

// ParseQualifiedName parses a (possibly globally-qualified, possibly
// template-id-bearing) qualified name, including operator-function-id,
// conversion-function-id, and destructor-id forms (spec.md §3 QualifiedName,
// §4.2 "qualified-name parsing with nested-name-specifiers"). Each
// intermediate identifier segment that is found to name a type is recorded
// as such via sc so that a following '<' is resolved as a template-id
// rather than a less-than expression (spec.md §9, the central "is this a
// type" disambiguation).
func ParseQualifiedName(ts *stream.Stream, sc *scope.Table, opts options.Options) (ast.QualifiedName, error) {
	var q ast.QualifiedName
	if ts.Is("::") {
		tok, _ := ts.Consume()
		q.Segments = append(q.Segments, ast.Segment{Kind: ast.SegGlobal, Location: tok.Location})
	}
	for {
		seg, err := parseOneSegment(ts, sc, opts)
		if err != nil {
			return q, err
		}
		q.Segments = append(q.Segments, seg)
		if seg.Kind == ast.SegDestructor || seg.Kind == ast.SegOperator || seg.Kind == ast.SegConversion {
			return q, nil
		}
		if ts.Is("::") {
			if next, _ := ts.Peek(1); next.Is("*") {
				// member-pointer's "Class::*" is handled by the declarator
				// parser, not here; stop before consuming the "::".
				return q, nil
			}
			ts.Consume()
			continue
		}
		return q, nil
	}
}

func parseOneSegment(ts *stream.Stream, sc *scope.Table, opts options.Options) (ast.Segment, error) {
	tok, err := ts.Current()
	if err != nil {
		return ast.Segment{}, err
	}

	if tok.Is("~") {
		ts.Consume()
		nameTok, err := ts.Current()
		if err != nil {
			return ast.Segment{}, err
		}
		if nameTok.Kind != token.Identifier {
			return ast.Segment{}, perrors.New(perrors.UnexpectedToken, nameTok.Location, "expected identifier after '~' in destructor name, got %q", nameTok.Spelling)
		}
		ts.Consume()
		return ast.Segment{Kind: ast.SegDestructor, Name: nameTok.Spelling, Location: tok.Location}, nil
	}

	if tok.Is("operator") {
		return parseOperatorSegment(ts, sc, opts)
	}

	if tok.Kind != token.Identifier {
		return ast.Segment{}, perrors.New(perrors.UnexpectedToken, tok.Location, "expected identifier in qualified name, got %q", tok.Spelling)
	}
	name := tok.Spelling
	loc := tok.Location
	ts.Consume()

	if ts.Is("<") && looksLikeTemplateArgList(ts, sc, opts, name) {
		args, err := parseTemplateArgumentList(ts, sc, opts)
		if err != nil {
			return ast.Segment{}, err
		}
		return ast.Segment{Kind: ast.SegTemplateID, Name: name, TemplateArgs: args, Location: loc}, nil
	}
	return ast.Segment{Kind: ast.SegIdentifier, Name: name, Location: loc}, nil
}

// looksLikeTemplateArgList decides whether a '<' following name opens a
// template-argument-list. A known template name always does; otherwise a
// speculative parse is attempted and rolled back on failure, matching the
// spec.md §9 guidance that "a '<' following a name known to be a template
// is parsed as a template-argument-list start; otherwise the parser
// attempts a speculative parse and backtracks on failure".
func looksLikeTemplateArgList(ts *stream.Stream, sc *scope.Table, opts options.Options, name string) bool {
	if sc.IsType(name) {
		return true
	}
	mark := ts.Pos()
	_, err := parseTemplateArgumentList(ts, sc, opts)
	ts.Rewind(mark)
	return err == nil
}

func parseOperatorSegment(ts *stream.Stream, sc *scope.Table, opts options.Options) (ast.Segment, error) {
	opTok, _ := ts.Current()
	loc := opTok.Location
	ts.Consume() // 'operator'

	// Conversion-function-id: `operator` type-id, where type-id does not
	// start with an overloadable operator punctuator or "" (UDL marker).
	if !isOperatorTokenStart(ts) {
		typ, err := ParseTypeID(ts, sc, opts, CtxTopLevelDecl)
		if err != nil {
			return ast.Segment{}, err
		}
		return ast.Segment{Kind: ast.SegConversion, ConversionType: &typ, Location: loc}, nil
	}

	// User-defined-literal: operator"" suffix. The lexer already folds an
	// abutting suffix into the string token's Spelling (e.g. `""_km`); a
	// suffix written with a space is instead the following identifier.
	if cur, _ := ts.Current(); cur.Kind == token.StringLit && strings.HasPrefix(cur.Spelling, `""`) {
		ts.Consume()
		suffix := strings.TrimPrefix(cur.Spelling, `""`)
		if suffix == "" {
			if idTok, _ := ts.Current(); idTok.Kind == token.Identifier {
				suffix = idTok.Spelling
				ts.Consume()
			}
		}
		return ast.Segment{Kind: ast.SegOperator, OperatorSpelling: `""`, LiteralSuffix: suffix, Location: loc}, nil
	}

	spelling, err := consumeOperatorSpelling(ts)
	if err != nil {
		return ast.Segment{}, err
	}
	return ast.Segment{Kind: ast.SegOperator, OperatorSpelling: spelling, Location: loc}, nil
}

func isOperatorTokenStart(ts *stream.Stream) bool {
	tok, _ := ts.Current()
	if tok.Kind == token.StringLit && strings.HasPrefix(tok.Spelling, `""`) {
		return true
	}
	if tok.IsAny("new", "delete", "(", "[") {
		return true
	}
	if tok.Kind != token.Punct {
		return false
	}
	return overloadableOperators[tok.KeywordOrPunct]
}

// consumeOperatorSpelling handles the punctuator and new/delete/new[]/
// delete[]/()/[] operator-function-id spellings.
func consumeOperatorSpelling(ts *stream.Stream) (string, error) {
	tok, err := ts.Current()
	if err != nil {
		return "", err
	}
	switch {
	case tok.IsAny("new", "delete"):
		ts.Consume()
		base := tok.Spelling
		if ts.Is("[") {
			ts.Consume()
			if !ts.Is("]") {
				t, _ := ts.Current()
				return "", perrors.New(perrors.UnexpectedToken, t.Location, "expected ']' in operator %s[]", base)
			}
			ts.Consume()
			return base + "[]", nil
		}
		return base, nil
	case tok.Is("("):
		ts.Consume()
		if !ts.Is(")") {
			t, _ := ts.Current()
			return "", perrors.New(perrors.UnexpectedToken, t.Location, "expected ')' in operator()")
		}
		ts.Consume()
		return "()", nil
	case tok.Is("["):
		ts.Consume()
		if !ts.Is("]") {
			t, _ := ts.Current()
			return "", perrors.New(perrors.UnexpectedToken, t.Location, "expected ']' in operator[]")
		}
		ts.Consume()
		return "[]", nil
	case tok.Kind == token.Punct && overloadableOperators[tok.KeywordOrPunct]:
		ts.Consume()
		spelling := tok.KeywordOrPunct
		// operator>> inside a template-argument context would have already
		// been split by the caller; here it is a plain lexed token.
		return spelling, nil
	default:
		return "", perrors.New(perrors.UnexpectedToken, tok.Location, "expected overloadable operator after 'operator', got %q", tok.Spelling)
	}
}

// parseTemplateArgumentList parses the '<' ... '>' portion of a template-id.
// Each argument is first tried as a type-id; if that fails the argument is
// captured as an opaque balanced token run instead (spec.md §1 "non-type
// template arguments... captured as opaque balanced token runs"). A closing
// '>>' is split in place, consuming one '>' and leaving the other as the
// current token, per spec.md §4.2's template-context '>>'-splitting rule.
func parseTemplateArgumentList(ts *stream.Stream, sc *scope.Table, opts options.Options) ([]ast.TemplateArgument, error) {
	open, _ := ts.Current()
	if !open.Is("<") {
		return nil, perrors.New(perrors.UnexpectedToken, open.Location, "expected '<' to open template-argument-list")
	}
	ts.Consume()

	var args []ast.TemplateArgument
	if closesTemplateArgList(ts) {
		consumeTemplateArgListClose(ts)
		return args, nil
	}
	for {
		arg, err := parseOneTemplateArgument(ts, sc, opts)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if ts.Is(",") {
			ts.Consume()
			continue
		}
		if closesTemplateArgList(ts) {
			consumeTemplateArgListClose(ts)
			return args, nil
		}
		tok, _ := ts.Current()
		return nil, perrors.New(perrors.UnexpectedToken, tok.Location, "expected ',' or '>' in template-argument-list, got %q", tok.Spelling)
	}
}

func closesTemplateArgList(ts *stream.Stream) bool {
	return ts.Is(">") || ts.Is(">>")
}

// consumeTemplateArgListClose consumes exactly one closing '>', splitting a
// lexed '>>' token via Stream.SplitAngle when the list closes against one
// (spec.md §4.2's '>>'-splitting rule for nested template-argument-lists).
func consumeTemplateArgListClose(ts *stream.Stream) {
	if ts.Is(">>") {
		ts.SplitAngle()
		return
	}
	ts.Consume()
}

func parseOneTemplateArgument(ts *stream.Stream, sc *scope.Table, opts options.Options) (ast.TemplateArgument, error) {
	mark := ts.Pos()
	typ, err := ParseTypeID(ts, sc, opts, CtxTemplateArgument)
	if err == nil && (ts.Is(",") || closesTemplateArgList(ts)) {
		isPack := false
		if ts.Is("...") {
			ts.Consume()
			isPack = true
		}
		return ast.TemplateArgument{AsType: &typ, IsPack: isPack}, nil
	}
	ts.Rewind(mark)

	toks, err := ts.CaptureBalanced([]string{",", ">", ">>"}, true)
	if err != nil {
		return ast.TemplateArgument{}, err
	}
	isPack := false
	if n := len(toks); n > 0 && toks[n-1].Is("...") {
		toks = toks[:n-1]
		isPack = true
	}
	if len(toks) == 0 {
		tok, _ := ts.Current()
		return ast.TemplateArgument{}, perrors.New(perrors.UnexpectedToken, tok.Location, "empty template argument")
	}
	return ast.TemplateArgument{Tokens: toks, IsPack: isPack}, nil
}
