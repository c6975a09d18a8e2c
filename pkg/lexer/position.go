package lexer

import "fmt"

// Position locates a token inside a single statement line.
// Column is 1-based and counts bytes; Offset is the 0-based byte index.
type Position struct {
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("col %d", p.Column)
}

