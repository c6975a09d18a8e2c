package interpreter

import (
	"errors"
	"fmt"
)

var (
	ErrExit                  = errors.New("exit requested")
	ErrVariableLimit         = errors.New("maximum variable limit reached")
	ErrFunctionLimit         = errors.New("maximum function limit reached")
	ErrCallDepth             = errors.New("maximum call stack depth reached")
	ErrBlockLimit            = errors.New("maximum block size reached")
	ErrMaxIterationsExceeded = errors.New("maximum loop iterations exceeded")
	ErrReturnOutsideFunction = errors.New("RETURN can only be used inside a function")
	ErrInputFailed           = errors.New("failed to read input")
	ErrImportOpen            = errors.New("could not open import file")
	ErrImportCycle           = errors.New("file is already being imported")
)

// SyntaxError is a malformed statement: wrong operand count, missing keyword.
// It is reported and the statement skipped; TRY does not catch it.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

func syntaxErrorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

func usageError(usage string) *SyntaxError {
	return &SyntaxError{Msg: "Usage: " + usage}
}

// returnSignal unwinds a function body back to its call site
type returnSignal struct {
	value float64
}

func (r *returnSignal) Error() string {
	return "return outside of a function call"
}

// isSignal reports control transfers that no statement boundary may swallow
func isSignal(err error) bool {
	var ret *returnSignal
	return errors.Is(err, ErrExit) || errors.As(err, &ret)
}
