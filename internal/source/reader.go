// Package source implements the Source Reader component (spec.md component 1):
// it owns the raw input text, normalizes line endings, splices line
// continuations, and tracks filename/line/column as the lexer consumes runes.
package source

import "strings"

// Reader wraps a preprocessed source string and exposes a rune cursor with
// line/column tracking. It normalizes CRLF/CR to LF and removes `\` +
// newline line continuations before the lexer ever sees them, so column
// numbers the lexer reports are relative to the normalized text.
type Reader struct {
	Filename string
	runes    []rune
	pos      int
	line     int
	col      int
}

// New creates a Reader over text, normalizing line endings and splicing
// backslash-newline continuations.
func New(text, filename string) *Reader {
	normalized := normalizeLineEndings(text)
	normalized = spliceContinuations(normalized)
	return &Reader{
		Filename: filename,
		runes:    []rune(normalized),
		pos:      0,
		line:     1,
		col:      1,
	}
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// spliceContinuations removes every `\` immediately followed by a newline
// (optionally preceded by trailing whitespace, tolerated by common
// preprocessors), joining the two physical lines into one logical line.
func spliceContinuations(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' {
			j := i + 1
			for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t') {
				j++
			}
			if j < len(runes) && runes[j] == '\n' {
				i = j
				continue
			}
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// Peek returns the rune offset ahead positions without consuming, and false
// if that position is past the end of input.
func (r *Reader) Peek(offset int) (rune, bool) {
	idx := r.pos + offset
	if idx < 0 || idx >= len(r.runes) {
		return 0, false
	}
	return r.runes[idx], true
}

// Next consumes and returns the current rune, advancing line/column.
func (r *Reader) Next() (rune, bool) {
	ch, ok := r.Peek(0)
	if !ok {
		return 0, false
	}
	r.pos++
	if ch == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return ch, true
}

// Eof reports whether the cursor has reached the end of input.
func (r *Reader) Eof() bool {
	return r.pos >= len(r.runes)
}

// Location returns the current cursor position.
func (r *Reader) Location() struct{ Line, Column int } {
	return struct{ Line, Column int }{r.line, r.col}
}

// Checkpoint is an opaque, restorable cursor snapshot.
type Checkpoint struct {
	pos, line, col int
}

// Mark captures the current cursor position.
func (r *Reader) Mark() Checkpoint {
	return Checkpoint{r.pos, r.line, r.col}
}

// Restore resets the cursor to a previously captured Checkpoint.
func (r *Reader) Restore(c Checkpoint) {
	r.pos, r.line, r.col = c.pos, c.line, c.col
}
