package lexer_test

import (
	"claro/pkg/lexer"
	"testing"
)

func TestNumbers(t *testing.T) {
	tests := []struct {
		input       string
		lexeme      string
		description string
	}{
		{"42", "42", "integer"},
		{"0", "0", "zero"},
		{"3.14", "3.14", "simple float"},
		{".5", ".5", "leading dot"},
		{"5.", "5.", "trailing dot"},
		{"1e5", "1e5", "scientific notation with e"},
		{"1E-5", "1E-5", "scientific notation with E-"},
		{"2.5e+10)", "2.5e+10", "float with exponent before paren"},
		{"12abc", "12", "number followed by identifier"},
	}

	for _, test := range tests {
		lexeme, ok := lexer.MatchNumber(test.input)
		if !ok {
			t.Errorf("Failed to match %s (%s)", test.input, test.description)
			continue
		}
		if lexeme != test.lexeme {
			t.Errorf("Input %s (%s): expected lexeme %s, got %s", test.input, test.description, test.lexeme, lexeme)
		}
	}

	if _, ok := lexer.MatchNumber("x1"); ok {
		t.Error("identifier matched as number")
	}
}

func TestNumericPrefix(t *testing.T) {
	tests := map[string]string{
		"10":       "10",
		"  -2.5":   "-2.5",
		"3.3333":   "3.3333",
		"7 apples": "7",
		"hi":       "",
		"inf":      "inf",
		"-INF x":   "-INF",
		"infinity": "infinity",
		"nan":      "nan",
		"":         "",
	}

	for input, want := range tests {
		if got := lexer.NumericPrefix(input); got != want {
			t.Errorf("NumericPrefix(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestBoolAndComparison(t *testing.T) {
	if v, lex, ok := lexer.MatchBool("TRUE)"); !ok || !v || lex != "TRUE" {
		t.Errorf("TRUE not matched: %v %q %v", v, lex, ok)
	}
	if v, _, ok := lexer.MatchBool("false"); !ok || v {
		t.Error("false not matched")
	}
	if _, _, ok := lexer.MatchBool("trueish"); ok {
		t.Error("identifier prefix matched as boolean")
	}
	if _, _, ok := lexer.MatchBool("false2"); ok {
		t.Error("digit suffix matched as boolean")
	}
	if v, lex, ok := lexer.MatchBool("true_x"); !ok || !v || lex != "true" {
		t.Errorf("underscore should end the keyword: %v %q %v", v, lex, ok)
	}

	for input, want := range map[string]string{"<= 3": "<=", "< 3": "<", "!=": "!=", "==1": "=="} {
		if got, ok := lexer.MatchComparison(input); !ok || got != want {
			t.Errorf("MatchComparison(%q) = %q", input, got)
		}
	}
	if _, ok := lexer.MatchComparison("= 3"); ok {
		t.Error("single = matched as comparison")
	}
}
