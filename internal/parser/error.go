// Package parser implements the recursive-descent parser over a
// tokenstream.TokenStream, producing an ast.Ast. Grounded on
// original_source/src/parser.rs (entry-point dispatch, parse_expr's
// context enum, the declaration/statement/assignment/call lookahead
// rules, and end-label checking) and restructured into the teacher's
// one-concern-per-file layout.
package parser

import (
	"fmt"

	"github.com/oxhq/svcheck/internal/reporter"
	"github.com/oxhq/svcheck/internal/token"
)

// Error is a structured parse failure: the offending token's position and
// kind, and the construct the parser expected instead. It implements
// error so callers can use errors.As at API boundaries instead of string
// matching, per the ambient error-handling convention.
type Error struct {
	Pos      token.Position
	Got      token.Token
	Expected string
	MsgID    reporter.MsgID
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: unexpected %s, expected %s", e.Pos, e.Got, e.Expected)
}

func newError(got token.Token, expected string) *Error {
	return &Error{Pos: got.Pos, Got: got, Expected: expected, MsgID: reporter.ErrSyntax}
}
