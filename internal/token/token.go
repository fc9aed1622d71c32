// Package token defines the lexical token vocabulary shared by the lexer,
// token stream, and parser.
package token

import "fmt"

// Location identifies a position within a single source file.
type Location struct {
	Filename string
	Line     int
	Column   int
}

func (l Location) String() string {
	if l.Filename == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
}

// Kind enumerates the categories a Token can belong to.
type Kind int

const (
	Invalid Kind = iota
	Identifier
	Keyword
	Punct
	NumberLit
	CharLit
	StringLit
	PPLine
	Eof
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Keyword:
		return "keyword"
	case Punct:
		return "punctuator"
	case NumberLit:
		return "number-literal"
	case CharLit:
		return "char-literal"
	case StringLit:
		return "string-literal"
	case PPLine:
		return "preprocessor-line"
	case Eof:
		return "eof"
	default:
		return "invalid"
	}
}

// Token is a single lexical unit with its exact spelling and source location.
//
// Keyword and Punct tokens additionally carry a normalized form in KeywordOrPunct
// so the parser can switch on a stable identifier even when Spelling holds an
// alternative/digraph spelling (e.g. "and" normalizes to "&&", "<%" to "{").
type Token struct {
	Kind             Kind
	Spelling         string
	KeywordOrPunct   string
	Location         Location
	LeadingDoc       string // doxygen-style comment immediately preceding, if retained
	PrecededByPPLine bool
}

// Is reports whether t is a Keyword or Punct token whose normalized spelling
// equals s.
func (t Token) Is(s string) bool {
	switch t.Kind {
	case Keyword, Punct:
		return t.KeywordOrPunct == s
	default:
		return false
	}
}

// IsAny reports whether t.Is holds for any of ss.
func (t Token) IsAny(ss ...string) bool {
	for _, s := range ss {
		if t.Is(s) {
			return true
		}
	}
	return false
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Spelling, t.Location)
}

// Keywords is the full C++ reserved-word table recognized by the lexer.
// Context-sensitive identifiers (override, final, module, import) are
// intentionally NOT keywords: they behave as identifiers everywhere except
// where the parser recognizes them positionally, matching real C++ grammar.
var Keywords = buildKeywordSet(
	"alignas", "alignof", "asm", "auto", "bool", "break", "case", "catch",
	"char", "char8_t", "char16_t", "char32_t", "class", "concept", "const",
	"consteval", "constexpr", "constinit", "const_cast", "continue",
	"co_await", "co_return", "co_yield", "decltype", "default", "delete",
	"do", "double", "dynamic_cast", "else", "enum", "explicit", "export",
	"extern", "false", "float", "for", "friend", "goto", "if", "inline",
	"int", "long", "mutable", "namespace", "new", "noexcept", "nullptr",
	"operator", "private", "protected", "public", "register",
	"reinterpret_cast", "requires", "return", "short", "signed", "sizeof",
	"static", "static_assert", "static_cast", "struct", "switch",
	"template", "this", "thread_local", "throw", "true", "try", "typedef",
	"typeid", "typename", "union", "unsigned", "using", "virtual", "void",
	"volatile", "wchar_t", "while",
)

func buildKeywordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// IsKeyword reports whether spelling is a reserved C++ keyword.
func IsKeyword(spelling string) bool {
	_, ok := Keywords[spelling]
	return ok
}

// Digraphs maps alternative token spellings to their canonical punctuator form.
var Digraphs = map[string]string{
	"<%": "{", "%>": "}", "<:": "[", ":>": "]", "%:": "#", "%:%:": "##",
	"and": "&&", "or": "||", "not": "!", "xor": "^", "bitand": "&",
	"bitor": "|", "compl": "~", "and_eq": "&=", "or_eq": "|=",
	"xor_eq": "^=", "not_eq": "!=",
}
