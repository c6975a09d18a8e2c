package interpreter

import (
	"bufio"
	"io"
	"strings"
)

// LineReader supplies source lines one at a time. Statements, block bodies
// and INPUT all read through it. It returns io.EOF when exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Interactive is implemented by readers attached to a person typing, where
// prompts and block hints should be shown.
type Interactive interface {
	Interactive() bool
}

func isInteractive(r LineReader) bool {
	ir, ok := r.(Interactive)
	return ok && ir.Interactive()
}

type sliceReader struct {
	lines []string
	next  int
}

// NewLines returns a reader over in-memory lines
func NewLines(lines []string) LineReader {
	return &sliceReader{lines: lines}
}

func (s *sliceReader) ReadLine(string) (string, error) {
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}

type scannerReader struct {
	sc *bufio.Scanner
}

// NewScanner returns a reader over r, one line per newline. Prompts are ignored.
func NewScanner(r io.Reader) LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1024*1024)
	return &scannerReader{sc: sc}
}

func (s *scannerReader) ReadLine(string) (string, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.sc.Text(), "\r"), nil
}

// countingReader keeps the interpreter's line number in step with the
// lines consumed from a top-level source.
type countingReader struct {
	r    LineReader
	line *int
}

func (c *countingReader) ReadLine(prompt string) (string, error) {
	s, err := c.r.ReadLine(prompt)
	if err == nil {
		*c.line++
	}
	return s, err
}

func (c *countingReader) Interactive() bool {
	return isInteractive(c.r)
}
