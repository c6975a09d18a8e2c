package parser

import (
	"claro/pkg/lexer"
	"strconv"
	"strings"
)

// Lookup resolves a variable name to its stored text.
type Lookup func(name string) (string, bool)

// Parser is a recursive-descent evaluator working directly on a cursor into
// the source text. No tree is built; each level returns its value.
//
//	comparison := expression ( ("=="|"!="|"<="|">="|"<"|">") expression )*
//	expression := term ( ("+"|"-") term )*
//	term       := factor ( ("*"|"/") factor )*
//	factor     := "(" comparison ")" | number | "true" | "false" | identifier
type Parser struct {
	input  string // expression source
	pos    int    // read cursor (byte offset into input)
	lookup Lookup // variable resolver, may be nil
}

// NewParser creates a new parser positioned at the start of input
func NewParser(input string, lookup Lookup) *Parser {
	return &Parser{
		input:  input,
		pos:    0,
		lookup: lookup,
	}
}

// Evaluate parses and evaluates a full comparison from the start of input.
// Text after the expression is ignored.
func Evaluate(input string, lookup Lookup) (float64, error) {
	return NewParser(input, lookup).Parse()
}

// Parse evaluates one comparison starting at the cursor
func (p *Parser) Parse() (float64, error) {
	return p.comparison()
}

// Rest returns the unconsumed input
func (p *Parser) Rest() string {
	return p.input[p.pos:]
}

func (p *Parser) comparison() (float64, error) {
	left, err := p.expression()
	if err != nil {
		return 0, err
	}

	for {
		save := p.pos
		p.skipWhitespace()

		op, ok := lexer.MatchComparison(p.Rest())
		if !ok {
			p.pos = save
			return left, nil
		}
		p.pos += len(op)

		right, err := p.expression()
		if err != nil {
			return 0, err
		}
		left = compare(op, left, right)
	}
}

func (p *Parser) expression() (float64, error) {
	result, err := p.term()
	if err != nil {
		return 0, err
	}

	for {
		save := p.pos
		p.skipWhitespace()

		if !p.at('+') && !p.at('-') {
			p.pos = save
			return result, nil
		}
		op := p.input[p.pos]
		p.pos++

		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			result += rhs
		} else {
			result -= rhs
		}
	}
}

func (p *Parser) term() (float64, error) {
	result, err := p.factor()
	if err != nil {
		return 0, err
	}

	for {
		save := p.pos
		p.skipWhitespace()

		if !p.at('*') && !p.at('/') {
			p.pos = save
			return result, nil
		}
		opPos := p.pos
		op := p.input[p.pos]
		p.pos++

		rhs, err := p.factor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			result *= rhs
			continue
		}
		if rhs == 0 {
			return 0, p.errorAt(opPos, ErrDivisionByZero)
		}
		result /= rhs
	}
}

func (p *Parser) factor() (float64, error) {
	p.skipWhitespace()
	rest := p.Rest()

	if v, lexeme, ok := lexer.MatchBool(rest); ok {
		p.pos += len(lexeme)
		if v {
			return 1, nil
		}
		return 0, nil
	}

	if p.at('(') {
		open := p.pos
		p.pos++

		result, err := p.comparison()
		if err != nil {
			return 0, err
		}

		p.skipWhitespace()
		if !p.at(')') {
			return 0, p.errorAt(open, ErrUnmatchedParen)
		}
		p.pos++
		return result, nil
	}

	if lexeme, ok := lexer.MatchNumber(rest); ok {
		p.pos += len(lexeme)
		// Overflow yields ±Inf, which is what we want.
		v, _ := strconv.ParseFloat(lexeme, 64)
		return v, nil
	}

	// identifier, optionally written with the PRINT-style '$' marker
	if p.at('$') {
		p.pos++
	}
	name := lexer.MatchIdent(p.Rest())
	p.pos += len(name)

	if name == "" || p.lookup == nil {
		return 0, nil
	}
	if val, ok := p.lookup(name); ok {
		return ToNumber(val), nil
	}
	return 0, nil
}

// at reports whether the byte under the cursor is ch
func (p *Parser) at(ch byte) bool {
	return p.pos < len(p.input) && p.input[p.pos] == ch
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) && strings.IndexByte(" \t\r\n\v\f", p.input[p.pos]) >= 0 {
		p.pos++
	}
}

func compare(op string, a, b float64) float64 {
	var r bool
	switch op {
	case "==":
		r = a == b
	case "!=":
		r = a != b
	case "<=":
		r = a <= b
	case ">=":
		r = a >= b
	case "<":
		r = a < b
	case ">":
		r = a > b
	}
	if r {
		return 1
	}
	return 0
}

// ToNumber interprets stored text as a number: its longest numeric prefix,
// or 0 when there is none.
func ToNumber(s string) float64 {
	prefix := lexer.NumericPrefix(s)
	if prefix == "" {
		return 0
	}
	v, _ := strconv.ParseFloat(prefix, 64)
	return v
}
