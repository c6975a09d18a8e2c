package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDivisionByZero = errors.New("division by zero is not allowed")
	ErrUnmatchedParen = errors.New("it looks like you forgot a closing parenthesis")
)

// Error is an evaluation failure. It aborts the statement being evaluated
// and can be caught by an enclosing TRY.
type Error struct {
	Err    error  // ErrDivisionByZero or ErrUnmatchedParen
	Input  string // expression source
	Offset int    // byte offset of the offending operator or parenthesis
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (column %d)", e.Err, e.Offset+1)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Context renders the expression with a caret under the failing position
func (e *Error) Context() string {
	return e.Input + "\n" + strings.Repeat(" ", e.Offset) + "^"
}

// errorAt records an evaluation error at the given offset
func (p *Parser) errorAt(offset int, err error) *Error {
	return &Error{
		Err:    err,
		Input:  p.input,
		Offset: offset,
	}
}
