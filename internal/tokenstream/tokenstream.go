package tokenstream

import (
	"github.com/oxhq/svcheck/internal/lexer"
	"github.com/oxhq/svcheck/internal/reporter"
	"github.com/oxhq/svcheck/internal/token"
)

// TokenStream mediates all parser/lexer interaction: comment/attribute
// filtering, macro expansion, and `` `include `` splicing sit behind the
// next/peek/rewind/flush surface described in
// original_source/src/tokenizer.rs. buf holds tokens already pulled out of
// the lexer (post-filtering, post-expansion) that the parser has not yet
// flushed past; rd is the read pointer used for lookahead via peek.
type TokenStream struct {
	lex  *lexer.Lexer
	host Host
	rep  *reporter.Reporter

	file string
	dir  string

	defines token.Defines

	buf []token.Token
	rd  int

	expansionQueue []token.Token
	expanding      []expansionFrame
}

// New builds a TokenStream over src, seeded with defines (shared by
// reference with the Project so `define mutates the caller's table) and
// reporting through rep. file/dir identify the compilation unit for
// `__FILE__`/`__LINE__` and relative include resolution.
func New(src *lexer.Source, file, dir string, defines token.Defines, host Host, rep *reporter.Reporter) *TokenStream {
	if defines == nil {
		defines = token.Defines{}
	}
	return &TokenStream{
		lex:     lexer.New(src),
		host:    host,
		rep:     rep,
		file:    file,
		dir:     dir,
		defines: defines,
	}
}

// Defines returns the live defines table, mutated in place by `define.
func (ts *TokenStream) Defines() token.Defines { return ts.defines }

// File returns the compilation unit's file name, used for diagnostics.
func (ts *TokenStream) File() string { return ts.file }

// ensure makes sure buf has at least one unread token at rd, pulling and
// expanding from the lexer as needed. Returns false at end of stream.
func (ts *TokenStream) ensure() (bool, error) {
	if ts.rd < len(ts.buf) {
		return true, nil
	}
	tok, err := ts.pullOne()
	if err != nil {
		return false, err
	}
	if tok.Kind == token.Eof {
		return false, nil
	}
	ts.buf = append(ts.buf, tok)
	return true, nil
}

// NextT returns the next non-comment, non-attribute, macro-expanded token.
// If peek is true the token stays in the buffer and the read pointer
// advances past it; otherwise it is popped off the front of the buffer.
func (ts *TokenStream) NextT(peek bool) (token.Token, error) {
	ok, err := ts.ensure()
	if err != nil {
		return token.Token{}, err
	}
	if !ok {
		return token.New(token.Eof, "", ts.lex_pos()), nil
	}
	tok := ts.buf[ts.rd]
	if peek {
		ts.rd++
	} else {
		tok = ts.buf[0]
		ts.buf = ts.buf[1:]
		if ts.rd > 0 {
			ts.rd--
		}
	}
	return tok, nil
}

// Next is NextT(false): consume and return the next token.
func (ts *TokenStream) Next() (token.Token, error) { return ts.NextT(false) }

// Peek is NextT(true): look at the next token without consuming it.
func (ts *TokenStream) Peek() (token.Token, error) { return ts.NextT(true) }

// PeekAt peeks n tokens ahead (0 is equivalent to Peek), extending the
// buffer and read pointer as needed without consuming anything.
func (ts *TokenStream) PeekAt(n int) (token.Token, error) {
	var tok token.Token
	for i := 0; i <= n; i++ {
		var err error
		tok, err = ts.Peek()
		if err != nil {
			return token.Token{}, err
		}
	}
	ts.Rewind(n + 1)
	return tok, nil
}

// Flush drops the first n buffered tokens (or all of them if n==0),
// independent of the read pointer.
func (ts *TokenStream) Flush(n int) {
	if n <= 0 || n >= len(ts.buf) {
		ts.buf = nil
		ts.rd = 0
		return
	}
	ts.buf = ts.buf[n:]
	ts.rd -= n
	if ts.rd < 0 {
		ts.rd = 0
	}
}

// FlushRd drops buffered tokens up to and including the current read
// pointer, committing everything the parser has peeked so far.
func (ts *TokenStream) FlushRd() {
	ts.Flush(ts.rd)
}

// Rewind moves the read pointer back n, saturating at 0 — used to
// backtrack a failed speculative parse.
func (ts *TokenStream) Rewind(n int) {
	ts.rd -= n
	if ts.rd < 0 {
		ts.rd = 0
	}
}

// Checkpoint captures the read pointer so a caller can restore it on a
// failed parse alternative without the explicit flush/rewind counters.
type Checkpoint struct {
	rd int
}

// Mark returns a Checkpoint for the current read position.
func (ts *TokenStream) Mark() Checkpoint { return Checkpoint{rd: ts.rd} }

// Restore resets the read pointer to a previously captured Checkpoint.
func (ts *TokenStream) Restore(c Checkpoint) { ts.rd = c.rd }

// isOpen/isClose classify the bracket-like tokens skip_until/peek_until
// track for nesting depth.
func isOpen(k token.Kind) bool {
	return k == token.ParenLeft || k == token.CurlyLeft || k == token.SquareLeft || k == token.KwBegin || k == token.KwFork
}

func isClose(k token.Kind) bool {
	return k == token.ParenRight || k == token.CurlyRight || k == token.SquareRight || k == token.KwEnd || k == token.KwJoin
}

// SkipUntil consumes tokens (committing past the read pointer) until a
// token of kind k is seen at bracket/begin-end depth zero, then consumes
// that token too. It returns the terminating token.
func (ts *TokenStream) SkipUntil(k token.Kind) (token.Token, error) {
	depth := 0
	for {
		tok, err := ts.Next()
		if err != nil {
			return token.Token{}, err
		}
		if tok.Kind == token.Eof {
			return tok, nil
		}
		if depth == 0 && tok.Kind == k {
			return tok, nil
		}
		if isOpen(tok.Kind) {
			depth++
		} else if isClose(tok.Kind) {
			if depth > 0 {
				depth--
			}
		}
	}
}

// PeekUntil behaves like SkipUntil but only advances the read pointer,
// leaving the buffer intact for the caller to then Rewind past.
func (ts *TokenStream) PeekUntil(k token.Kind) (token.Token, error) {
	depth := 0
	count := 0
	for {
		tok, err := ts.Peek()
		if err != nil {
			return token.Token{}, err
		}
		count++
		if tok.Kind == token.Eof {
			return tok, nil
		}
		if depth == 0 && tok.Kind == k {
			return tok, nil
		}
		if isOpen(tok.Kind) {
			depth++
		} else if isClose(tok.Kind) {
			if depth > 0 {
				depth--
			}
		}
	}
}

// CollectUntil collects tokens up to end-of-line, or (if isList) up to a
// top-level comma or ')'. Used by `define body capture and default
// argument capture, both of which read raw (non-macro-expanded) tokens.
func (ts *TokenStream) CollectUntil(isList bool) ([]token.Token, error) {
	var out []token.Token
	startLine := -1
	depth := 0
	for {
		tok, err := ts.nextRaw()
		if err != nil {
			return out, err
		}
		if tok.Kind == token.Eof {
			return out, nil
		}
		if startLine == -1 {
			startLine = tok.Pos.Line
		}
		if isList {
			if depth == 0 && (tok.Kind == token.Comma || tok.Kind == token.ParenRight) {
				ts.unread(tok)
				return out, nil
			}
			if tok.Kind == token.ParenLeft {
				depth++
			} else if tok.Kind == token.ParenRight {
				depth--
			}
		} else if tok.Pos.Line != startLine {
			ts.unread(tok)
			return out, nil
		}
		out = append(out, tok)
	}
}

// GetPos returns the position of the next token without consuming it.
func (ts *TokenStream) GetPos() token.Position {
	tok, err := ts.PeekAt(0)
	if err != nil {
		return ts.lex_pos()
	}
	return tok.Pos
}

func (ts *TokenStream) lex_pos() token.Position {
	return ts.lex.SourcePos()
}

// unread pushes tok back to the front of the raw pending queue, used by
// CollectUntil to put back the delimiter it peeked at.
func (ts *TokenStream) unread(tok token.Token) {
	ts.expansionQueue = append([]token.Token{tok}, ts.expansionQueue...)
}
