package lexer

import (
	"fmt"

	"github.com/oxhq/svcheck/internal/token"
)

// Error reports a lexical failure (ErrToken in spec's taxonomy): an
// unrecognized character, a malformed number, or an unterminated string.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func newError(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
