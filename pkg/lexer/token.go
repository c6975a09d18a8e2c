package lexer

import (
	"fmt"
	"strings"
)

type TokenType int

type Token struct {
	Type TokenType // Type of the token
	Text string    // Token text, without the surrounding quotes for literals
	Pos  Position  // Position of the first byte (opening quote for literals)
	End  int       // Offset just past the last byte consumed
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, text string, pos Position, end int) Token {
	return Token{
		Type: tokenType,
		Text: text,
		Pos:  pos,
		End:  end,
	}
}

const (
	EOF     TokenType = iota // End of line
	WORD                     // unquoted run of non-space characters
	LITERAL                  // double-quoted text
)

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WORD:
		return "WORD"
	case LITERAL:
		return "LITERAL"
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// String returns a string representation of the Token
func (t Token) String() string {
	return fmt.Sprintf("T_{%s, %q, %s}", t.Type, t.Text, t.Pos.String())
}

// IsWord reports whether the token is an unquoted word equal to kw, ignoring case.
func (t Token) IsWord(kw string) bool {
	return t.Type == WORD && strings.EqualFold(t.Text, kw)
}

// Upper returns the token text in upper case, as used for command names and keywords.
func (t Token) Upper() string {
	return strings.ToUpper(t.Text)
}
