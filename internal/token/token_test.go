package token

import "testing"

func TestToken_Is_OnlyMatchesKeywordOrPunct(t *testing.T) {
	kw := Token{Kind: Keyword, Spelling: "int", KeywordOrPunct: "int"}
	if !kw.Is("int") {
		t.Error("expected a keyword token to match its normalized spelling")
	}

	punct := Token{Kind: Punct, Spelling: "&&", KeywordOrPunct: "&&"}
	if !punct.Is("&&") {
		t.Error("expected a punct token to match its normalized spelling")
	}

	// override/final are context-sensitive identifiers, not keywords: Is
	// must not match them even though the spelling lines up.
	override := Token{Kind: Identifier, Spelling: "override"}
	if override.Is("override") {
		t.Error("expected Is to never match on an Identifier-kind token")
	}

	num := Token{Kind: NumberLit, Spelling: "0"}
	if num.Is("0") {
		t.Error("expected Is to never match on a NumberLit-kind token")
	}
}

func TestToken_IsAny(t *testing.T) {
	tok := Token{Kind: Punct, Spelling: ";", KeywordOrPunct: ";"}
	if !tok.IsAny(",", ";", ")") {
		t.Error("expected IsAny to match when one of its arguments matches")
	}
	if tok.IsAny(",", ")") {
		t.Error("expected IsAny to report false when none of its arguments match")
	}
}

func TestLocation_String(t *testing.T) {
	loc := Location{Filename: "x.h", Line: 3, Column: 7}
	if got := loc.String(); got != "x.h:3:7" {
		t.Errorf("expected 'x.h:3:7', got %q", got)
	}

	anon := Location{Line: 1, Column: 1}
	if got := anon.String(); got != "1:1" {
		t.Errorf("expected '1:1' for an unnamed location, got %q", got)
	}
}

func TestIsKeyword_RecognizesReservedWordsNotContextSensitiveOnes(t *testing.T) {
	if !IsKeyword("class") {
		t.Error("expected 'class' to be a recognized keyword")
	}
	if IsKeyword("override") {
		t.Error("expected 'override' to NOT be in the keyword set (context-sensitive identifier)")
	}
	if IsKeyword("final") {
		t.Error("expected 'final' to NOT be in the keyword set (context-sensitive identifier)")
	}
}
