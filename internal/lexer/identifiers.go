package lexer

import (
	"strings"
	"unicode"

	"github.com/oxhq/svcheck/internal/token"
)

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lexIdent consumes [A-Za-z0-9_]* after an alphabetic/'_' start, then
// classifies the word as a keyword, base type, or plain Ident. A trailing
// "'" (as in "int'") flips the result to Casting. "PATHPULSE$" is
// special-cased as a single identifier rather than splitting at '$'.
func (l *Lexer) lexIdent(start token.Position) (token.Token, error) {
	var b strings.Builder
	for {
		r, err := l.src.Peek()
		if err != nil || !isIdentCont(r) {
			break
		}
		l.src.Advance()
		b.WriteRune(r)
	}
	word := b.String()

	if word == "PATHPULSE" {
		if r, err := l.src.Peek(); err == nil && r == '$' {
			l.src.Advance()
			word += "$"
		}
	}

	if r, err := l.src.Peek(); err == nil && r == '\'' {
		// Only a casting suffix when not starting a based literal like 'h1.
		if next, err2 := l.src.PeekAt(1); err2 != nil || !isBaseLetter(next) {
			l.src.Advance()
			return token.New(token.Casting, word, start), nil
		}
	}

	if word == "1step" {
		return token.New(token.Kw1step, word, start), nil
	}
	if k, ok := token.Keywords[word]; ok {
		return token.New(k, word, start), nil
	}
	if k, ok := token.BaseTypes[word]; ok {
		return token.New(k, word, start), nil
	}
	return token.New(token.Ident, word, start), nil
}

// lexEscapedIdent consumes a `\`-escaped identifier: everything up to the
// next whitespace.
func (l *Lexer) lexEscapedIdent(start token.Position) (token.Token, error) {
	var b strings.Builder
	b.WriteRune('\\')
	for {
		r, err := l.src.Peek()
		if err != nil || unicode.IsSpace(r) {
			break
		}
		l.src.Advance()
		b.WriteRune(r)
	}
	return token.New(token.Ident, b.String(), start), nil
}

// lexSystemTask consumes a $-prefixed word such as $display.
func (l *Lexer) lexSystemTask(start token.Position) (token.Token, error) {
	var b strings.Builder
	b.WriteRune('$')
	for {
		r, err := l.src.Peek()
		if err != nil || !isIdentCont(r) {
			break
		}
		l.src.Advance()
		b.WriteRune(r)
	}
	return token.New(token.SystemTask, b.String(), start), nil
}

// macroDirectives is the fixed set of backtick-prefixed words that are
// preprocessor directives (Macro) rather than macro invocations (MacroCall).
var macroDirectives = map[string]bool{
	"ifdef": true, "ifndef": true, "elsif": true, "else": true, "endif": true,
	"define": true, "undef": true, "include": true, "timescale": true,
	"line": true, "pragma": true, "default_nettype": true,
	"begin_keywords": true, "end_keywords": true, "resetall": true,
	"celldefine": true, "endcelldefine": true, "unconnected_drive": true,
	"nounconnected_drive": true, "undefineall": true,
}

// lexBacktick consumes a `-prefixed word and classifies it as Macro
// (a fixed directive), MacroCall (anything else), or, for the bare
// interpolation form ``` ``ident ```, IdentInterpolated.
func (l *Lexer) lexBacktick(start token.Position) (token.Token, error) {
	if r, err := l.src.Peek(); err == nil && r == '`' {
		l.src.Advance()
		var b strings.Builder
		for {
			r, err := l.src.Peek()
			if err != nil || !isIdentCont(r) {
				break
			}
			l.src.Advance()
			b.WriteRune(r)
		}
		return token.New(token.IdentInterpolated, b.String(), start), nil
	}
	var b strings.Builder
	for {
		r, err := l.src.Peek()
		if err != nil || !isIdentCont(r) {
			break
		}
		l.src.Advance()
		b.WriteRune(r)
	}
	word := b.String()
	if word == "" {
		return token.Token{}, newError(start, "stray '`' with no following identifier")
	}
	if macroDirectives[word] {
		return token.New(token.Macro, word, start), nil
	}
	return token.New(token.MacroCall, word, start), nil
}
