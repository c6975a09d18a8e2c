package lexer

type Lexer struct {
	input    string // line to be tokenized
	length   int    // length of the input string
	position int    // current byte offset in the input
	column   int    // current column number for error reporting
}

// Create a new lexer instance for a single source line
func NewLexer(s string) *Lexer {
	return &Lexer{
		input:    s,
		length:   len(s),
		position: 0,
		column:   1,
	}
}

// Tokenize splits a whole line into tokens, dropping the trailing EOF.
func Tokenize(s string) []Token {
	l := NewLexer(s)
	tokens := make([]Token, 0, 8)

	for l.HasMore() {
		tokens = append(tokens, l.NextToken())
	}
	return tokens
}

// Get the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.position >= l.length {
		return NewToken(EOF, "", l.currentPosition(), l.position)
	}

	pos := l.currentPosition()

	// A quoted literal runs to the closing quote, or to the end of the line
	// when the quote is never closed.
	if l.input[l.position] == '"' {
		l.advance(1)
		start := l.position
		for l.position < l.length && l.input[l.position] != '"' {
			l.advance(1)
		}
		text := l.input[start:l.position]
		if l.position < l.length {
			l.advance(1)
		}

		return NewToken(LITERAL, text, pos, l.position)
	}

	start := l.position
	for l.position < l.length && !isSpace(l.input[l.position]) {
		l.advance(1)
	}

	return NewToken(WORD, l.input[start:l.position], pos, l.position)
}

// Check if there are more tokens to read
func (l *Lexer) HasMore() bool {
	l.skipWhitespace()
	return l.position < l.length
}

// Skip whitespace between tokens
func (l *Lexer) skipWhitespace() {
	for l.position < l.length && isSpace(l.input[l.position]) {
		l.advance(1)
	}
}

// Advance the lexer position by n bytes
func (l *Lexer) advance(n int) {
	for range n {
		if l.position >= l.length {
			break
		}

		l.column++
		l.position++
	}
}

// Get the current position of the lexer
func (l *Lexer) currentPosition() Position {
	return Position{
		Column: l.column,
		Offset: l.position,
	}
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
