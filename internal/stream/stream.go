// Package stream implements the Token Stream component (spec.md §2 component
// 3): a buffered view over the Lexer providing peek-k, consume, mark/rewind,
// and balanced-token capture for default arguments, initializers, array
// sizes, bit-field widths, and similar opaque runs (spec.md §9).
package stream

import (
	"github.com/oxhq/cppdecl/internal/lexer"
	"github.com/oxhq/cppdecl/internal/token"
)

// Stream buffers tokens pulled lazily from a Lexer.
type Stream struct {
	lex    *lexer.Lexer
	buf    []token.Token
	pos    int
	atEOF  bool
	loaded int

	// splitGT is true when the token at buf[pos] is a lexed ">>" that a
	// template-argument-list close has already consumed "half" of (see
	// SplitAngle): Current/Peek(0) report a synthetic trailing ">" instead
	// of the real ">>" until the next Consume.
	splitGT bool
}

// New wraps lex in a Stream.
func New(lex *lexer.Lexer) *Stream {
	return &Stream{lex: lex}
}

func (s *Stream) fill(upTo int) error {
	for len(s.buf)-s.pos <= upTo {
		if s.atEOF {
			return nil
		}
		tok, err := s.lex.Next()
		if err != nil {
			return err
		}
		s.buf = append(s.buf, tok)
		if tok.Kind == token.Eof {
			s.atEOF = true
		}
	}
	return nil
}

// Peek returns the token k positions ahead of the cursor (0 = current),
// reading further from the lexer as needed. Peek(0) honors a pending
// SplitAngle (see below); Peek(k) for k>0 always sees the raw token stream.
func (s *Stream) Peek(k int) (token.Token, error) {
	if k == 0 && s.splitGT {
		return s.syntheticGT(), nil
	}
	if err := s.fill(k); err != nil {
		return token.Token{}, err
	}
	idx := s.pos + k
	if idx >= len(s.buf) {
		return s.buf[len(s.buf)-1], nil // Eof
	}
	return s.buf[idx], nil
}

func (s *Stream) syntheticGT() token.Token {
	real := s.buf[s.pos]
	loc := real.Location
	loc.Column++
	return token.Token{Kind: token.Punct, Spelling: ">", KeywordOrPunct: ">", Location: loc}
}

// Current is shorthand for Peek(0).
func (s *Stream) Current() (token.Token, error) { return s.Peek(0) }

// Consume returns the current token and advances the cursor.
func (s *Stream) Consume() (token.Token, error) {
	if s.splitGT {
		tok := s.syntheticGT()
		s.splitGT = false
		s.pos++
		return tok, nil
	}
	tok, err := s.Peek(0)
	if err != nil {
		return token.Token{}, err
	}
	if tok.Kind != token.Eof {
		s.pos++
	}
	return tok, nil
}

// SplitAngle consumes one '>' worth of a lexed ">>" token that closes a
// template-argument-list nested inside another (spec.md §4.2's "maximal
// munch lexes '>>' as one token; the template-argument-list parser splits
// it when closing a nested list"). The cursor does not advance; the
// current token becomes a synthetic single '>' that a subsequent Consume
// will retire, after which the real stream position finally moves past
// the original ">>" token.
func (s *Stream) SplitAngle() {
	tok, err := s.rawCurrent()
	if err != nil || !tok.Is(">>") {
		return
	}
	s.splitGT = true
}

func (s *Stream) rawCurrent() (token.Token, error) {
	if err := s.fill(0); err != nil {
		return token.Token{}, err
	}
	if s.pos >= len(s.buf) {
		return s.buf[len(s.buf)-1], nil
	}
	return s.buf[s.pos], nil
}

// Mark is an opaque, restorable cursor position, including whether a
// ">>" split was pending at the time it was taken.
type Mark struct {
	pos     int
	splitGT bool
}

// Pos returns the current cursor position for checkpointed rewind.
func (s *Stream) Pos() Mark { return Mark{pos: s.pos, splitGT: s.splitGT} }

// Rewind restores a previously captured Mark.
func (s *Stream) Rewind(m Mark) {
	s.pos = m.pos
	s.splitGT = m.splitGT
}

// Is reports whether the current token normalizes to s (see token.Token.Is).
func (s *Stream) Is(spelling string) bool {
	tok, err := s.Peek(0)
	return err == nil && tok.Is(spelling)
}

// IsAny reports whether the current token normalizes to any of ss.
func (s *Stream) IsAny(ss ...string) bool {
	tok, err := s.Peek(0)
	return err == nil && tok.IsAny(ss...)
}

// AtEOF reports whether the cursor sits on the Eof token.
func (s *Stream) AtEOF() bool {
	tok, err := s.Peek(0)
	return err == nil && tok.Kind == token.Eof
}

// Expect consumes the current token if it normalizes to spelling, else
// returns false without advancing.
func (s *Stream) Expect(spelling string) (token.Token, bool) {
	tok, err := s.Peek(0)
	if err != nil || !tok.Is(spelling) {
		return token.Token{}, false
	}
	s.pos++
	return tok, true
}

// CaptureBalanced reads tokens until it finds one of stopAt at bracket depth
// zero (not consumed), tracking (){}[] nesting, and — when templateDepth is
// true — '<'/'>' nesting under the usual "only inside an already-open
// template argument list" heuristic described in spec.md §4.2: callers that
// know they are inside a template-argument context should pass
// templateDepth=true so a bare '<'/'>' run is balanced too. It returns the
// captured tokens verbatim (the stop token is NOT included/consumed).
func (s *Stream) CaptureBalanced(stopAt []string, templateDepth bool) ([]token.Token, error) {
	var out []token.Token
	depthParen, depthBrace, depthBracket, depthAngle := 0, 0, 0, 0
	for {
		tok, err := s.Peek(0)
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.Eof {
			return out, nil
		}
		atZero := depthParen == 0 && depthBrace == 0 && depthBracket == 0 && depthAngle == 0
		if atZero && tok.IsAny(stopAt...) {
			return out, nil
		}
		switch {
		case tok.Is("("):
			depthParen++
		case tok.Is(")"):
			depthParen--
		case tok.Is("{"):
			depthBrace++
		case tok.Is("}"):
			depthBrace--
		case tok.Is("["):
			depthBracket++
		case tok.Is("]"):
			depthBracket--
		case templateDepth && tok.Is("<"):
			depthAngle++
		case templateDepth && tok.Is(">"):
			depthAngle--
		case templateDepth && tok.Is(">>"):
			depthAngle -= 2
		}
		out = append(out, tok)
		s.pos++
	}
}
