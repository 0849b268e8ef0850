// Package lexer turns a character stream into a stream of tokens with an
// integrated number/identifier/operator state machine. It is grounded on
// original_source/src/source.rs and src/tokenizer.rs, restructured into the
// teacher's provider-file layout (internal/lang/golang/golang.go split one
// concern per file) instead of one monolithic tokenizer.
package lexer

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/oxhq/svcheck/internal/token"
)

// ErrEOF is returned by Source.Advance/Peek once the input is exhausted.
// It is the only error Source can produce directly — open-file failures
// surface as reporter.ErrFile at the Project level, never from here.
var ErrEOF = errors.New("lexer: eof")

// Source is a sequential, buffered character reader over UTF-8 text that
// tracks a (line, column) cursor. It reads one rune at a time through
// Peek/Advance, with PeekAt, AtEOF and SkipLineContinuation as helpers.
type Source struct {
	runes []rune
	pos   int
	line  int
	col   int
}

// FromFile reads the named file fully into memory and wraps it in a Source.
func FromFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromReader(f)
}

// FromReader builds a Source from an arbitrary UTF-8 reader; FromFile uses
// it on the opened file.
func FromReader(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	return FromString(string(data)), nil
}

// FromString builds a Source directly from in-memory text.
func FromString(s string) *Source {
	return &Source{runes: []rune(s), pos: 0, line: 1, col: 1}
}

// Peek returns the next rune without consuming it.
func (s *Source) Peek() (rune, error) {
	if s.pos >= len(s.runes) {
		return 0, ErrEOF
	}
	return s.runes[s.pos], nil
}

// PeekAt returns the rune offset runes ahead of the cursor without
// consuming anything (offset 0 is equivalent to Peek).
func (s *Source) PeekAt(offset int) (rune, error) {
	idx := s.pos + offset
	if idx >= len(s.runes) || idx < 0 {
		return 0, ErrEOF
	}
	return s.runes[idx], nil
}

// Advance consumes and returns the next rune, updating line/col.
func (s *Source) Advance() (rune, error) {
	if s.pos >= len(s.runes) {
		return 0, ErrEOF
	}
	r := s.runes[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r, nil
}

// Pos returns the current cursor position.
func (s *Source) Pos() token.Position {
	return token.Position{Line: s.line, Col: s.col}
}

// AtEOF reports whether the cursor has consumed all input.
func (s *Source) AtEOF() bool {
	return s.pos >= len(s.runes)
}

// SkipLineContinuation consumes a "\" immediately followed by "\n" without
// advancing the logical line number, so that a macro body split across
// physical lines via line continuation still reports positions on its
// defining line (spec's "LineCont extends the line").
// Callers must have already confirmed the next two runes are "\\\n".
func (s *Source) SkipLineContinuation() {
	s.pos += 2
	s.col = 1
}
