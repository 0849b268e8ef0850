package lexer

import "github.com/oxhq/svcheck/internal/token"

// lexOperator performs deterministic maximal-munch disambiguation for the
// operator/punctuation starting at r (already peeked, not consumed), per
// spec §4.2. Comments, which also start with '/', are handled here since
// they share a prefix with the division operators.
func (l *Lexer) lexOperator(start token.Position, r rune) (token.Token, error) {
	switch r {
	case '/':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '/' {
			return l.lexLineComment(start)
		}
		if n, _ := l.src.Peek(); n == '*' {
			return l.lexBlockComment(start)
		}
		return l.maybeEq(start, "/", token.OpDiv, token.OpCompAss)
	case '+':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '+' {
			l.src.Advance()
			return token.New(token.OpIncrDecr, "++", start), nil
		}
		if n, _ := l.src.Peek(); n == ':' {
			l.src.Advance()
			return token.New(token.OpRange, "+:", start), nil
		}
		return l.maybeEq(start, "+", token.OpPlus, token.OpCompAss)
	case '-':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '-' {
			l.src.Advance()
			return token.New(token.OpIncrDecr, "--", start), nil
		}
		if n, _ := l.src.Peek(); n == ':' {
			l.src.Advance()
			return token.New(token.OpRange, "-:", start), nil
		}
		if n, _ := l.src.Peek(); n == '>' {
			l.src.Advance()
			return token.New(token.OpImpl, "->", start), nil
		}
		return l.maybeEq(start, "-", token.OpMinus, token.OpCompAss)
	case '*':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '*' {
			l.src.Advance()
			return token.New(token.OpPow, "**", start), nil
		}
		if n, _ := l.src.Peek(); n == '>' {
			l.src.Advance()
			return token.New(token.OpStarLT, "*>", start), nil
		}
		if n, _ := l.src.Peek(); n == ')' {
			l.src.Advance()
			return token.New(token.SensiAll, "(*)", start), nil
		}
		return l.maybeEq(start, "*", token.OpStar, token.OpCompAss)
	case '%':
		l.src.Advance()
		return l.maybeEq(start, "%", token.OpMod, token.OpCompAss)
	case '!':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '=' {
			l.src.Advance()
			if n2, _ := l.src.Peek(); n2 == '=' {
				l.src.Advance()
				return token.New(token.OpDiff2, "!==", start), nil
			}
			if n2, _ := l.src.Peek(); n2 == '?' {
				l.src.Advance()
				return token.New(token.OpDiffQue, "!=?", start), nil
			}
			return token.New(token.OpDiff, "!=", start), nil
		}
		return token.New(token.OpBang, "!", start), nil
	case '~':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '&' {
			l.src.Advance()
			return token.New(token.OpNand, "~&", start), nil
		}
		if n, _ := l.src.Peek(); n == '|' {
			l.src.Advance()
			return token.New(token.OpNor, "~|", start), nil
		}
		if n, _ := l.src.Peek(); n == '^' {
			l.src.Advance()
			return token.New(token.OpXnor, "~^", start), nil
		}
		return token.New(token.OpTilde, "~", start), nil
	case '&':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '&' {
			l.src.Advance()
			if n2, _ := l.src.Peek(); n2 == '&' {
				l.src.Advance()
				return token.New(token.OpTimingAnd, "&&&", start), nil
			}
			return token.New(token.OpLogicAnd, "&&", start), nil
		}
		return l.maybeEq(start, "&", token.OpAnd, token.OpCompAss)
	case '|':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '|' {
			l.src.Advance()
			return token.New(token.OpLogicOr, "||", start), nil
		}
		if n, _ := l.src.Peek(); n == '-' {
			if n2, _ := l.src.PeekAt(1); n2 == '>' {
				l.src.Advance()
				l.src.Advance()
				return token.New(token.OpSeqRel, "|->", start), nil
			}
		}
		if n, _ := l.src.Peek(); n == '=' {
			if n2, _ := l.src.PeekAt(1); n2 == '>' {
				l.src.Advance()
				l.src.Advance()
				return token.New(token.OpSeqRel, "|=>", start), nil
			}
		}
		return l.maybeEq(start, "|", token.OpOr, token.OpCompAss)
	case '^':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '~' {
			l.src.Advance()
			return token.New(token.OpXnor, "^~", start), nil
		}
		return l.maybeEq(start, "^", token.OpXor, token.OpCompAss)
	case '=':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '=' {
			l.src.Advance()
			if n2, _ := l.src.Peek(); n2 == '=' {
				l.src.Advance()
				return token.New(token.OpEq3, "===", start), nil
			}
			if n2, _ := l.src.Peek(); n2 == '?' {
				l.src.Advance()
				return token.New(token.OpEq2Que, "==?", start), nil
			}
			return token.New(token.OpEq2, "==", start), nil
		}
		if n, _ := l.src.Peek(); n == '>' {
			l.src.Advance()
			return token.New(token.OpFatArrL, "=>", start), nil
		}
		return token.New(token.OpEq, "=", start), nil
	case '<':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '-' {
			if n2, _ := l.src.PeekAt(1); n2 == '>' {
				l.src.Advance()
				l.src.Advance()
				return token.New(token.OpEquiv, "<->", start), nil
			}
		}
		if n, _ := l.src.Peek(); n == '=' {
			l.src.Advance()
			return token.New(token.OpLTE, "<=", start), nil
		}
		if n, _ := l.src.Peek(); n == '<' {
			l.src.Advance()
			if n2, _ := l.src.Peek(); n2 == '<' {
				l.src.Advance()
				if n3, _ := l.src.Peek(); n3 == '=' {
					l.src.Advance()
					return token.New(token.OpCompAss, "<<<=", start), nil
				}
				return token.New(token.OpSShift, "<<<", start), nil
			}
			if n2, _ := l.src.Peek(); n2 == '=' {
				l.src.Advance()
				return token.New(token.OpCompAss, "<<=", start), nil
			}
			return token.New(token.OpSL, "<<", start), nil
		}
		return token.New(token.OpLT, "<", start), nil
	case '>':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '=' {
			l.src.Advance()
			return token.New(token.OpGTE, ">=", start), nil
		}
		if n, _ := l.src.Peek(); n == '>' {
			l.src.Advance()
			if n2, _ := l.src.Peek(); n2 == '>' {
				l.src.Advance()
				if n3, _ := l.src.Peek(); n3 == '=' {
					l.src.Advance()
					return token.New(token.OpCompAss, ">>>=", start), nil
				}
				return token.New(token.OpSShift, ">>>", start), nil
			}
			if n2, _ := l.src.Peek(); n2 == '=' {
				l.src.Advance()
				return token.New(token.OpCompAss, ">>=", start), nil
			}
			return token.New(token.OpSR, ">>", start), nil
		}
		return token.New(token.OpGT, ">", start), nil
	case '#':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '#' {
			l.src.Advance()
			return token.New(token.Hash2, "##", start), nil
		}
		if n, _ := l.src.Peek(); n == '-' {
			if n2, _ := l.src.PeekAt(1); n2 == '#' {
				l.src.Advance()
				l.src.Advance()
				return token.New(token.OpSeqRel, "#-#", start), nil
			}
		}
		if n, _ := l.src.Peek(); n == '=' {
			if n2, _ := l.src.PeekAt(1); n2 == '#' {
				l.src.Advance()
				l.src.Advance()
				return token.New(token.OpSeqRel, "#=#", start), nil
			}
		}
		return token.New(token.Hash, "#", start), nil
	case '@':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '@' {
			l.src.Advance()
			return token.New(token.At2, "@@", start), nil
		}
		return token.New(token.At, "@", start), nil
	case ':':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == ':' {
			l.src.Advance()
			return token.New(token.Scope, "::", start), nil
		}
		if n, _ := l.src.Peek(); n == '=' {
			l.src.Advance()
			return token.New(token.OpDist, ":=", start), nil
		}
		if n, _ := l.src.Peek(); n == '/' {
			l.src.Advance()
			return token.New(token.OpDist, ":/", start), nil
		}
		return token.New(token.Colon, ":", start), nil
	case '.':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '*' {
			l.src.Advance()
			return token.New(token.DotStar, ".*", start), nil
		}
		return token.New(token.Dot, ".", start), nil
	case '(':
		l.src.Advance()
		if n, _ := l.src.Peek(); n == '*' {
			if n2, _ := l.src.PeekAt(1); n2 == ')' {
				l.src.Advance()
				l.src.Advance()
				return token.New(token.SensiAll, "(*)", start), nil
			}
			l.src.Advance()
			return l.lexAttribute(start)
		}
		return token.New(token.ParenLeft, "(", start), nil
	case ')':
		l.src.Advance()
		return token.New(token.ParenRight, ")", start), nil
	case '{':
		l.src.Advance()
		return token.New(token.CurlyLeft, "{", start), nil
	case '}':
		l.src.Advance()
		return token.New(token.CurlyRight, "}", start), nil
	case '[':
		l.src.Advance()
		return token.New(token.SquareLeft, "[", start), nil
	case ']':
		l.src.Advance()
		return token.New(token.SquareRight, "]", start), nil
	case ',':
		l.src.Advance()
		return token.New(token.Comma, ",", start), nil
	case '?':
		l.src.Advance()
		return token.New(token.Que, "?", start), nil
	case ';':
		l.src.Advance()
		return token.New(token.SemiColon, ";", start), nil
	case '$':
		l.src.Advance()
		return token.New(token.Dollar, "$", start), nil
	}
	l.src.Advance()
	return token.Token{}, newError(start, "unrecognized character %q", r)
}

// maybeEq returns compound if the next char is '=', else plain.
func (l *Lexer) maybeEq(start token.Position, spelling string, plain, compound token.Kind) (token.Token, error) {
	if n, _ := l.src.Peek(); n == '=' {
		l.src.Advance()
		return token.New(compound, spelling+"=", start), nil
	}
	return token.New(plain, spelling, start), nil
}

func (l *Lexer) lexLineComment(start token.Position) (token.Token, error) {
	l.src.Advance() // second '/'
	var b []rune
	b = append(b, '/', '/')
	for {
		r, err := l.src.Peek()
		if err != nil || r == '\n' {
			break
		}
		l.src.Advance()
		b = append(b, r)
	}
	return token.New(token.Comment, string(b), start), nil
}

func (l *Lexer) lexBlockComment(start token.Position) (token.Token, error) {
	l.src.Advance() // '*'
	b := []rune{'/', '*'}
	for {
		r, err := l.src.Advance()
		if err != nil {
			return token.Token{}, newError(start, "unterminated block comment")
		}
		b = append(b, r)
		if r == '*' {
			if n, _ := l.src.Peek(); n == '/' {
				l.src.Advance()
				b = append(b, '/')
				break
			}
		}
	}
	return token.New(token.Comment, string(b), start), nil
}

func (l *Lexer) lexAttribute(start token.Position) (token.Token, error) {
	b := []rune{'(', '*'}
	for {
		r, err := l.src.Advance()
		if err != nil {
			return token.Token{}, newError(start, "unterminated attribute")
		}
		b = append(b, r)
		if r == '*' {
			if n, _ := l.src.Peek(); n == ')' {
				l.src.Advance()
				b = append(b, ')')
				break
			}
		}
	}
	return token.New(token.Attribute, string(b), start), nil
}

func (l *Lexer) lexString(start token.Position) (token.Token, error) {
	l.src.Advance() // opening quote
	var b []rune
	for {
		r, err := l.src.Advance()
		if err != nil {
			return token.Token{}, newError(start, "unterminated string literal")
		}
		if r == '\\' {
			n, err := l.src.Peek()
			if err == nil && n == '"' {
				l.src.Advance()
				b = append(b, '\\', '"')
				continue
			}
			if err == nil && n == '\\' {
				l.src.Advance()
				b = append(b, '\\', '\\')
				continue
			}
			b = append(b, r)
			continue
		}
		if r == '"' {
			break
		}
		b = append(b, r)
	}
	return token.New(token.Str, string(b), start), nil
}
