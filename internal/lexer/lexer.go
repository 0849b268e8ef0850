package lexer

import (
	"unicode"

	"github.com/oxhq/svcheck/internal/token"
)

// Lexer drives a per-first-character switch over a Source, per spec §4.2.
// It has no preprocessor awareness of its own — that lives one layer up in
// internal/tokenstream, which is the only consumer of Lexer.Next.
type Lexer struct {
	src *Source
}

// New wraps src in a Lexer.
func New(src *Source) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token, skipping leading whitespace. Returns
// (Token{Kind: token.Eof}, nil) once the source is exhausted.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	pos := l.src.Pos()
	r, err := l.src.Peek()
	if err != nil {
		return token.New(token.Eof, "", pos), nil
	}

	switch {
	case r == '"':
		return l.lexString(pos)
	case r == '\\':
		l.src.Advance()
		return l.lexEscapedIdent(pos)
	case r == '$':
		if next, err2 := l.src.PeekAt(1); err2 == nil && isIdentStart(next) {
			l.src.Advance()
			return l.lexSystemTask(pos)
		}
	case r == '`':
		l.src.Advance()
		return l.lexBacktick(pos)
	case isIdentStart(r):
		return l.lexIdent(pos)
	case isDigit(r) || r == '\'':
		return l.lexNumber(pos)
	}

	return l.lexOperator(pos, r)
}

// SourcePos returns the position the underlying Source cursor is
// currently at, used by TokenStream.GetPos when the lookahead buffer is
// empty.
func (l *Lexer) SourcePos() token.Position {
	return l.src.Pos()
}

// skipWhitespace advances past spaces, tabs, and newlines, but leaves
// comments and attributes to be tokenized (the TokenStream's comment-
// filtering variant is what discards them, per spec §4.3).
func (l *Lexer) skipWhitespace() {
	for {
		r, err := l.src.Peek()
		if err != nil {
			return
		}
		if r == '\\' {
			// A line-continuation ("\" immediately before newline) is
			// whitespace-equivalent to the lexer and does not advance the
			// logical line number, so a macro body split across physical
			// lines still reports positions on its defining line.
			if next, err2 := l.src.PeekAt(1); err2 == nil && next == '\n' {
				l.src.SkipLineContinuation()
				continue
			}
			return
		}
		if unicode.IsSpace(r) {
			l.src.Advance()
			continue
		}
		return
	}
}
