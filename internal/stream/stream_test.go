package stream

import (
	"testing"

	"github.com/oxhq/cppdecl/internal/lexer"
	"github.com/oxhq/cppdecl/internal/source"
	"github.com/oxhq/cppdecl/internal/token"
)

func newStream(t *testing.T, src string) *Stream {
	t.Helper()
	r := source.New(src, "test.h")
	lx := lexer.New(r, lexer.DefaultOptions())
	return New(lx)
}

func TestPeekAndConsume_Sequential(t *testing.T) {
	s := newStream(t, "int x ;")

	first, err := s.Peek(0)
	if err != nil || first.Spelling != "int" {
		t.Fatalf("expected Peek(0)='int', got %+v err=%v", first, err)
	}
	second, err := s.Peek(1)
	if err != nil || second.Spelling != "x" {
		t.Fatalf("expected Peek(1)='x', got %+v err=%v", second, err)
	}

	tok, err := s.Consume()
	if err != nil || tok.Spelling != "int" {
		t.Fatalf("expected Consume to return 'int', got %+v err=%v", tok, err)
	}
	cur, err := s.Current()
	if err != nil || cur.Spelling != "x" {
		t.Fatalf("expected Current to now be 'x', got %+v err=%v", cur, err)
	}
}

func TestIsAndIsAny(t *testing.T) {
	s := newStream(t, "; ,")
	if !s.Is(";") {
		t.Error("expected Is(';') to match the current token")
	}
	if s.Is(",") {
		t.Error("expected Is(',') to not match the current token")
	}
	if !s.IsAny(",", ";") {
		t.Error("expected IsAny to match one of its arguments")
	}
}

func TestExpect_ConsumesOnlyOnMatch(t *testing.T) {
	s := newStream(t, "; ,")

	if _, ok := s.Expect(","); ok {
		t.Fatal("expected Expect(',') to fail on a leading ';'")
	}
	if _, ok := s.Expect(";"); !ok {
		t.Fatal("expected Expect(';') to succeed")
	}
	cur, _ := s.Current()
	if cur.Spelling != "," {
		t.Errorf("expected cursor to have advanced past ';', got %+v", cur)
	}
}

func TestPosAndRewind_RestoresCursor(t *testing.T) {
	s := newStream(t, "a b c")
	mark := s.Pos()

	s.Consume()
	s.Consume()
	cur, _ := s.Current()
	if cur.Spelling != "c" {
		t.Fatalf("expected 'c' before rewind, got %+v", cur)
	}

	s.Rewind(mark)
	cur, _ = s.Current()
	if cur.Spelling != "a" {
		t.Errorf("expected 'a' after rewind, got %+v", cur)
	}
}

func TestAtEOF(t *testing.T) {
	s := newStream(t, "x")
	if s.AtEOF() {
		t.Fatal("expected not at EOF before consuming the only token")
	}
	s.Consume()
	if !s.AtEOF() {
		t.Error("expected AtEOF after consuming the last real token")
	}
}

func TestCaptureBalanced_StopsAtTopLevelDelimiter(t *testing.T) {
	s := newStream(t, "(a, (b, c)) ; rest")
	toks, err := s.CaptureBalanced([]string{";"}, false)
	if err != nil {
		t.Fatal(err)
	}

	var spellings []string
	for _, tk := range toks {
		spellings = append(spellings, tk.Spelling)
	}
	want := []string{"(", "a", ",", "(", "b", ",", "c", ")", ")"}
	if len(spellings) != len(want) {
		t.Fatalf("expected %v, got %v", want, spellings)
	}
	for i := range want {
		if spellings[i] != want[i] {
			t.Errorf("expected %v, got %v", want, spellings)
			break
		}
	}

	cur, _ := s.Current()
	if !cur.Is(";") {
		t.Errorf("expected cursor to stop at ';', got %+v", cur)
	}
}

func TestCaptureBalanced_RunsToEOFWithoutStopTokens(t *testing.T) {
	s := newStream(t, "a b c")
	toks, err := s.CaptureBalanced(nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 {
		t.Fatalf("expected all 3 tokens captured, got %d: %+v", len(toks), toks)
	}
	if !s.AtEOF() {
		t.Error("expected the stream to be at EOF after capturing with no stop set")
	}
}

func TestSplitAngle_SplitsTrailingDoubleAngle(t *testing.T) {
	s := newStream(t, "std::vector<std::vector<int>>")
	for !s.Is(">>") {
		if s.AtEOF() {
			t.Fatal("never reached '>>' in the token stream")
		}
		s.Consume()
	}

	s.SplitAngle()
	cur, err := s.Current()
	if err != nil || cur.Spelling != ">" {
		t.Fatalf("expected synthetic '>' after SplitAngle, got %+v err=%v", cur, err)
	}

	s.Consume()
	cur, err = s.Current()
	if err != nil || cur.Kind != token.Eof {
		t.Fatalf("expected EOF after consuming both split halves, got %+v err=%v", cur, err)
	}
}
