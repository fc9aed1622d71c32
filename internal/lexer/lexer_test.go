package lexer

import (
	"testing"

	"github.com/oxhq/cppdecl/internal/source"
	"github.com/oxhq/cppdecl/internal/token"
)

func scanAll(t *testing.T, src string, opts Options) []token.Token {
	t.Helper()
	r := source.New(src, "test.h")
	lx := New(r, opts)
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == token.Eof {
			return toks
		}
	}
}

func TestNext_IdentifiersKeywordsAndPunct(t *testing.T) {
	toks := scanAll(t, "int x = 1;", DefaultOptions())

	want := []struct {
		kind     token.Kind
		spelling string
	}{
		{token.Keyword, "int"},
		{token.Identifier, "x"},
		{token.Punct, "="},
		{token.NumberLit, "1"},
		{token.Punct, ";"},
		{token.Eof, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind {
			t.Errorf("token %d: expected kind %v, got %v (%q)", i, w.kind, toks[i].Kind, toks[i].Spelling)
		}
	}
}

func TestNext_StringAndCharLiterals(t *testing.T) {
	toks := scanAll(t, `"hello" 'c'`, DefaultOptions())
	if toks[0].Kind != token.StringLit || toks[0].Spelling != `"hello"` {
		t.Errorf("expected string literal, got %+v", toks[0])
	}
	if toks[1].Kind != token.CharLit || toks[1].Spelling != "'c'" {
		t.Errorf("expected char literal, got %+v", toks[1])
	}
}

func TestNext_DoxygenCommentRetainedAsLeadingDoc(t *testing.T) {
	toks := scanAll(t, "/// Explains Foo.\nint Foo;", DefaultOptions())
	if toks[0].LeadingDoc == "" {
		t.Error("expected the doxygen comment to be retained on the following token")
	}
}

func TestNext_DoxygenCommentNotRetainedWhenDisabled(t *testing.T) {
	toks := scanAll(t, "/// Explains Foo.\nint Foo;", Options{RetainDoxygenComments: false, PreprocessorLines: "retain"})
	if toks[0].LeadingDoc != "" {
		t.Errorf("expected no retained doc when disabled, got %q", toks[0].LeadingDoc)
	}
}

func TestMarkAndRestore_RewindsLexerState(t *testing.T) {
	r := source.New("int x;", "test.h")
	lx := New(r, DefaultOptions())

	mark := lx.Mark()
	first, err := lx.Next()
	if err != nil {
		t.Fatal(err)
	}
	if first.Spelling != "int" {
		t.Fatalf("expected first token 'int', got %q", first.Spelling)
	}

	lx.Restore(mark)
	replay, err := lx.Next()
	if err != nil {
		t.Fatal(err)
	}
	if replay.Spelling != "int" {
		t.Errorf("expected restored lexer to re-yield 'int', got %q", replay.Spelling)
	}
}

func TestNext_BracketDigraphsNormalizeToCanonicalPunct(t *testing.T) {
	cases := []struct {
		src      string
		spelling string
		canon    string
	}{
		{"<:", "<:", "["},
		{":>", ":>", "]"},
		{"<%", "<%", "{"},
		{"%>", "%>", "}"},
		{"%:", "%:", "#"},
		{"%:%:", "%:%:", "##"},
	}
	for _, c := range cases {
		toks := scanAll(t, c.src, DefaultOptions())
		if toks[0].Kind != token.Punct {
			t.Fatalf("%q: expected a single Punct token, got %+v", c.src, toks[0])
		}
		if toks[0].Spelling != c.spelling {
			t.Errorf("%q: expected spelling %q, got %q", c.src, c.spelling, toks[0].Spelling)
		}
		if toks[0].KeywordOrPunct != c.canon {
			t.Errorf("%q: expected canonical form %q, got %q", c.src, c.canon, toks[0].KeywordOrPunct)
		}
		if len(toks) != 2 || toks[1].Kind != token.Eof {
			t.Errorf("%q: expected exactly one punct token before EOF, got %+v", c.src, toks)
		}
	}
}

func TestNext_BracketDigraphDoesNotShadowLongerOperators(t *testing.T) {
	toks := scanAll(t, "a <<= b", DefaultOptions())
	if toks[1].Spelling != "<<=" {
		t.Errorf("expected '<<=' to win over the '<%%'/'<:' digraphs, got %q", toks[1].Spelling)
	}
}

func TestNext_UnterminatedBlockCommentIsAnError(t *testing.T) {
	r := source.New("/* never closed", "test.h")
	lx := New(r, DefaultOptions())
	if _, err := lx.Next(); err == nil {
		t.Error("expected an error for an unterminated block comment")
	}
}
