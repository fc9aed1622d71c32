// Package lexer implements the Lexer component (spec.md §4.1): it turns
// normalized source text into a lazy sequence of typed tokens with source
// locations, tracking comments, preprocessor lines, and string/char literal
// peculiarities (raw strings, encoding prefixes, user-defined-literal
// suffixes, adjacent-literal concatenation).
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/oxhq/cppdecl/internal/source"
	"github.com/oxhq/cppdecl/internal/token"
)

// Options configures lexer behavior. It is a subset of the package-level
// parser Options (spec.md §6) relevant to lexing.
type Options struct {
	RetainDoxygenComments bool
	PreprocessorLines     string // "ignore" | "retain"
}

// DefaultOptions matches spec.md §6's stated defaults.
func DefaultOptions() Options {
	return Options{RetainDoxygenComments: true, PreprocessorLines: "retain"}
}

// Error reports a lexical failure (spec.md §7 LexicalError).
type Error struct {
	Message  string
	Location token.Location
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Lexer produces tokens on demand from a source.Reader.
type Lexer struct {
	r           *source.Reader
	opts        Options
	atLineStart bool
	pendingDoc  string
}

// New creates a Lexer over an already-constructed source.Reader.
func New(r *source.Reader, opts Options) *Lexer {
	return &Lexer{r: r, opts: opts, atLineStart: true}
}

// Checkpoint is a restorable lexer cursor snapshot (spec.md §4.1 "checkpoints").
type Checkpoint struct {
	rc          source.Checkpoint
	atLineStart bool
	pendingDoc  string
}

func (l *Lexer) Mark() Checkpoint {
	return Checkpoint{rc: l.r.Mark(), atLineStart: l.atLineStart, pendingDoc: l.pendingDoc}
}

func (l *Lexer) Restore(c Checkpoint) {
	l.r.Restore(c.rc)
	l.atLineStart = c.atLineStart
	l.pendingDoc = c.pendingDoc
}

func (l *Lexer) loc() token.Location {
	loc := l.r.Location()
	return token.Location{Filename: l.r.Filename, Line: loc.Line, Column: loc.Column}
}

// Next scans and returns the next token, or an *Error on malformed input.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipTrivia(); err != nil {
		return token.Token{}, err
	}
	startLoc := l.loc()
	doc := l.pendingDoc
	l.pendingDoc = ""

	ch, ok := l.r.Peek(0)
	if !ok {
		return token.Token{Kind: token.Eof, Location: startLoc}, nil
	}

	if ch == '#' && l.atLineStart {
		return l.scanPPLine(startLoc)
	}
	l.atLineStart = false

	switch {
	case isIdentStart(ch):
		return l.scanIdentifierOrLiteralPrefixed(startLoc, doc)
	case unicode.IsDigit(ch):
		return l.scanNumber(startLoc, doc)
	case ch == '"':
		return l.scanString(startLoc, "", doc)
	case ch == '\'':
		return l.scanChar(startLoc, "", doc)
	default:
		return l.scanPunct(startLoc, doc)
	}
}

// skipTrivia consumes whitespace and comments, stripping comments by default
// and retaining the spelling of the last doxygen-style comment (if enabled)
// in l.pendingDoc for attachment to the next token's declaration.
func (l *Lexer) skipTrivia() error {
	for {
		ch, ok := l.r.Peek(0)
		if !ok {
			return nil
		}
		switch {
		case ch == '\n':
			l.r.Next()
			l.atLineStart = true
		case ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f' || ch == '\r':
			l.r.Next()
		case ch == '/' && peekIs(l.r, 1, '/'):
			text := l.scanLineComment()
			l.maybeRetainDoc(text)
		case ch == '/' && peekIs(l.r, 1, '*'):
			loc := l.loc()
			text, err := l.scanBlockComment(loc)
			if err != nil {
				return err
			}
			l.maybeRetainDoc(text)
		default:
			return nil
		}
	}
}

func peekIs(r *source.Reader, offset int, want rune) bool {
	ch, ok := r.Peek(offset)
	return ok && ch == want
}

func (l *Lexer) scanLineComment() string {
	var b strings.Builder
	for {
		ch, ok := l.r.Peek(0)
		if !ok || ch == '\n' {
			break
		}
		b.WriteRune(ch)
		l.r.Next()
	}
	return b.String()
}

func (l *Lexer) scanBlockComment(start token.Location) (string, error) {
	var b strings.Builder
	l.r.Next() // '/'
	l.r.Next() // '*'
	b.WriteString("/*")
	for {
		ch, ok := l.r.Next()
		if !ok {
			return "", &Error{Message: "unterminated block comment", Location: start}
		}
		b.WriteRune(ch)
		if ch == '*' {
			if next, ok := l.r.Peek(0); ok && next == '/' {
				l.r.Next()
				b.WriteRune('/')
				return b.String(), nil
			}
		}
	}
}

// maybeRetainDoc records text as the pending doc comment if it looks like a
// doxygen-style comment (///, //!, /** , /*!) and retention is enabled.
func (l *Lexer) maybeRetainDoc(text string) {
	if !l.opts.RetainDoxygenComments {
		return
	}
	switch {
	case strings.HasPrefix(text, "///"), strings.HasPrefix(text, "//!"):
		l.pendingDoc = text
	case strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/**/"),
		strings.HasPrefix(text, "/*!"):
		l.pendingDoc = text
	}
}

func (l *Lexer) scanPPLine(start token.Location) (token.Token, error) {
	var b strings.Builder
	for {
		ch, ok := l.r.Peek(0)
		if !ok || ch == '\n' {
			break
		}
		b.WriteRune(ch)
		l.r.Next()
	}
	l.atLineStart = false
	return token.Token{Kind: token.PPLine, Spelling: b.String(), Location: start}, nil
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || ch == '\\' // '\' heads UCNs \uXXXX / \UXXXXXXXX
}

func isIdentCont(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// scanIdentifierOrLiteralPrefixed scans an identifier, keyword, digraph
// alternative token, or — when the identifier is a string/char encoding
// prefix (u8, u, U, L, R, and their raw-string combinations) immediately
// followed by a quote — delegates to string/char scanning with that prefix.
func (l *Lexer) scanIdentifierOrLiteralPrefixed(start token.Location, doc string) (token.Token, error) {
	spelling := l.scanIdentRaw()

	if ch, ok := l.r.Peek(0); ok {
		if ch == '"' && isStringPrefix(spelling) {
			return l.scanString(start, spelling, doc)
		}
		if ch == '\'' && isCharPrefix(spelling) {
			return l.scanChar(start, spelling, doc)
		}
	}

	if canon, ok := token.Digraphs[spelling]; ok {
		return token.Token{Kind: token.Punct, Spelling: spelling, KeywordOrPunct: canon, Location: start, LeadingDoc: doc}, nil
	}
	if token.IsKeyword(spelling) {
		return token.Token{Kind: token.Keyword, Spelling: spelling, KeywordOrPunct: spelling, Location: start, LeadingDoc: doc}, nil
	}
	return token.Token{Kind: token.Identifier, Spelling: spelling, Location: start, LeadingDoc: doc}, nil
}

func (l *Lexer) scanIdentRaw() string {
	var b strings.Builder
	for {
		ch, ok := l.r.Peek(0)
		if !ok || !isIdentCont(ch) {
			break
		}
		b.WriteRune(ch)
		l.r.Next()
	}
	return b.String()
}

func isStringPrefix(s string) bool {
	switch s {
	case "u8", "u", "U", "L", "R", "u8R", "uR", "UR", "LR":
		return true
	}
	return false
}

func isCharPrefix(s string) bool {
	switch s {
	case "u8", "u", "U", "L":
		return true
	}
	return false
}

// scanNumber preserves the full spelling: base prefix, digit separators
// ('), exponent, and a trailing user-defined-literal suffix. No numeric
// value is computed (spec.md §4.1).
func (l *Lexer) scanNumber(start token.Location, doc string) (token.Token, error) {
	var b strings.Builder
	consumeDigits := func(isDigit func(rune) bool) {
		for {
			ch, ok := l.r.Peek(0)
			if !ok {
				return
			}
			if ch == '\'' {
				if next, ok2 := l.r.Peek(1); ok2 && isDigit(next) {
					b.WriteRune(ch)
					l.r.Next()
					continue
				}
				return
			}
			if !isDigit(ch) {
				return
			}
			b.WriteRune(ch)
			l.r.Next()
		}
	}

	first, _ := l.r.Next()
	b.WriteRune(first)

	isHex := false
	if first == '0' {
		if ch, ok := l.r.Peek(0); ok && (ch == 'x' || ch == 'X') {
			b.WriteRune(ch)
			l.r.Next()
			isHex = true
		} else if ch, ok := l.r.Peek(0); ok && (ch == 'b' || ch == 'B') {
			b.WriteRune(ch)
			l.r.Next()
		}
	}

	digitPred := isDecDigit
	if isHex {
		digitPred = isHexDigit
	}
	consumeDigits(digitPred)

	if ch, ok := l.r.Peek(0); ok && ch == '.' {
		b.WriteRune(ch)
		l.r.Next()
		consumeDigits(digitPred)
	}

	expChars := "eE"
	if isHex {
		expChars = "pP"
	}
	if ch, ok := l.r.Peek(0); ok && strings.ContainsRune(expChars, ch) {
		b.WriteRune(ch)
		l.r.Next()
		if sign, ok2 := l.r.Peek(0); ok2 && (sign == '+' || sign == '-') {
			b.WriteRune(sign)
			l.r.Next()
		}
		consumeDigits(isDecDigit)
	}

	// trailing integer suffixes (u, U, l, L, ll, LL, f, F) or a
	// user-defined-literal suffix (identifier).
	for {
		ch, ok := l.r.Peek(0)
		if !ok || !isIdentCont(ch) {
			break
		}
		b.WriteRune(ch)
		l.r.Next()
	}

	return token.Token{Kind: token.NumberLit, Spelling: b.String(), Location: start, LeadingDoc: doc}, nil
}

func isDecDigit(ch rune) bool { return ch >= '0' && ch <= '9' }
func isHexDigit(ch rune) bool {
	return isDecDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// scanString scans a (possibly raw, possibly prefixed) string literal
// starting at the current '"', then concatenates any adjacent string
// literals (across whitespace/comments), preserving every spelling verbatim
// in the resulting token's Spelling field.
func (l *Lexer) scanString(start token.Location, prefix string, doc string) (token.Token, error) {
	var b strings.Builder
	b.WriteString(prefix)

	first, err := l.scanOneString(start, strings.HasSuffix(prefix, "R"))
	if err != nil {
		return token.Token{}, err
	}
	b.WriteString(first)

	for {
		mark := l.Mark()
		if err := l.skipTrivia(); err != nil {
			l.Restore(mark)
			break
		}
		ch, ok := l.r.Peek(0)
		if !ok {
			l.Restore(mark)
			break
		}
		if ch == '"' {
			piece, err := l.scanOneString(l.loc(), false)
			if err != nil {
				return token.Token{}, err
			}
			b.WriteString(" ")
			b.WriteString(piece)
			continue
		}
		if isIdentStart(ch) {
			save := l.Mark()
			spelling := l.scanIdentRaw()
			if next, ok2 := l.r.Peek(0); ok2 && next == '"' && isStringPrefix(spelling) {
				piece, err := l.scanOneString(l.loc(), strings.HasSuffix(spelling, "R"))
				if err != nil {
					return token.Token{}, err
				}
				b.WriteString(" ")
				b.WriteString(spelling)
				b.WriteString(piece)
				continue
			}
			l.Restore(save)
		}
		l.Restore(mark)
		break
	}

	// a trailing user-defined-literal suffix directly abuts the final quote.
	if ch, ok := l.r.Peek(0); ok && isIdentStart(ch) {
		b.WriteString(l.scanIdentRaw())
	}

	return token.Token{Kind: token.StringLit, Spelling: b.String(), Location: start, LeadingDoc: doc}, nil
}

// scanOneString scans exactly one `"..."` (or, when raw is true, a raw
// `R"delim(...)delim"` body) including the surrounding quotes, and returns
// its verbatim spelling.
func (l *Lexer) scanOneString(loc token.Location, raw bool) (string, error) {
	var b strings.Builder
	open, _ := l.r.Next() // '"'
	b.WriteRune(open)

	if raw {
		var delim strings.Builder
		for {
			ch, ok := l.r.Peek(0)
			if !ok {
				return "", &Error{Message: "unterminated raw string delimiter", Location: loc}
			}
			if ch == '(' {
				break
			}
			delim.WriteRune(ch)
			b.WriteRune(ch)
			l.r.Next()
		}
		l.r.Next() // '('
		b.WriteRune('(')
		closer := ")" + delim.String() + "\""
		for {
			if l.matchesAhead(closer) {
				for range closer {
					ch, _ := l.r.Next()
					b.WriteRune(ch)
				}
				return b.String(), nil
			}
			ch, ok := l.r.Next()
			if !ok {
				return "", &Error{Message: "unterminated raw string literal", Location: loc}
			}
			b.WriteRune(ch)
		}
	}

	for {
		ch, ok := l.r.Next()
		if !ok {
			return "", &Error{Message: "unterminated string literal", Location: loc}
		}
		b.WriteRune(ch)
		if ch == '\\' {
			if esc, ok2 := l.r.Next(); ok2 {
				b.WriteRune(esc)
			}
			continue
		}
		if ch == '"' {
			return b.String(), nil
		}
		if ch == '\n' {
			return "", &Error{Message: "unterminated string literal (newline in non-raw string)", Location: loc}
		}
	}
}

// scanChar scans a char literal `'...'`, with escapes.
func (l *Lexer) scanChar(start token.Location, prefix string, doc string) (token.Token, error) {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteRune('\'')
	l.r.Next() // opening quote
	for {
		ch, ok := l.r.Next()
		if !ok {
			return token.Token{}, &Error{Message: "unterminated char literal", Location: start}
		}
		b.WriteRune(ch)
		if ch == '\\' {
			if esc, ok2 := l.r.Next(); ok2 {
				b.WriteRune(esc)
			}
			continue
		}
		if ch == '\'' {
			break
		}
		if ch == '\n' {
			return token.Token{}, &Error{Message: "unterminated char literal", Location: start}
		}
	}
	if ch, ok := l.r.Peek(0); ok && isIdentStart(ch) {
		b.WriteString(l.scanIdentRaw())
	}
	return token.Token{Kind: token.CharLit, Spelling: b.String(), Location: start, LeadingDoc: doc}, nil
}

// multiCharPuncts lists multi-character punctuators, longest first so
// maximal-munch scanning picks the longest valid match.
var multiCharPuncts = []string{
	"<<=", ">>=", "...", "->*", "<=>",
	"::", "->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=",
	"&&", "||", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	".*", "##",
}

var singleCharPuncts = "{}()[];:,.+-*/%^&|~!=<>?#@$"

// punctDigraphs lists the punctuation-form digraphs (alternative spellings
// of brackets and the preprocessor hash), longest first so "%:%:" is not
// mistaken for two "%:" tokens.
var punctDigraphs = []string{"%:%:", "<%", "%>", "<:", ":>", "%:"}

// scanPunct scans a punctuator (operator, separator, bracket), applying
// maximal munch except that the caller (type/template parsing) is
// responsible for splitting a closing ">>" into two ">" tokens per spec.md
// §4.2's template-argument-list heuristic; the lexer always emits ">>" as
// one token when it appears literally in the source.
func (l *Lexer) scanPunct(start token.Location, doc string) (token.Token, error) {
	for _, m := range multiCharPuncts {
		if l.matchesAhead(m) {
			for range m {
				l.r.Next()
			}
			return token.Token{Kind: token.Punct, Spelling: m, KeywordOrPunct: m, Location: start, LeadingDoc: doc}, nil
		}
	}
	for _, m := range punctDigraphs {
		if l.matchesAhead(m) {
			for range m {
				l.r.Next()
			}
			canon := token.Digraphs[m]
			return token.Token{Kind: token.Punct, Spelling: m, KeywordOrPunct: canon, Location: start, LeadingDoc: doc}, nil
		}
	}
	ch, ok := l.r.Next()
	if !ok {
		return token.Token{}, &Error{Message: "unexpected end of input", Location: start}
	}
	if !strings.ContainsRune(singleCharPuncts, ch) {
		return token.Token{}, &Error{Message: fmt.Sprintf("invalid character %q", ch), Location: start}
	}
	s := string(ch)
	return token.Token{Kind: token.Punct, Spelling: s, KeywordOrPunct: s, Location: start, LeadingDoc: doc}, nil
}

func (l *Lexer) matchesAhead(s string) bool {
	for i, want := range s {
		ch, ok := l.r.Peek(i)
		if !ok || ch != want {
			return false
		}
	}
	return true
}
