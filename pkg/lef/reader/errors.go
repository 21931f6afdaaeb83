package reader

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// ErrUnknownStatement is wrapped by the ParseError of an unsupported
// statement in strict mode.
var ErrUnknownStatement = errors.New("reader: unknown statement")

// ParseError reports a problem at a position of the input.
type ParseError struct {
	Pos lexer.Position
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	return fmt.Sprintf("%s: %s", e.Pos, msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Line returns the 1-based line of the error.
func (e *ParseError) Line() int { return e.Pos.Line }

// Column returns the 1-based column of the error.
func (e *ParseError) Column() int { return e.Pos.Column }

func errorAt(pos lexer.Position, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func wrapAt(pos lexer.Position, err error, format string, args ...any) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...), Err: err}
}
