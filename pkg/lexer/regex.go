package lexer

import (
	"regexp"
	"strings"
)

type tokenRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

// Expression-level patterns. Statement tokens are plain whitespace splits;
// the evaluator works on raw text and uses these to match at its cursor.
var (
	numberRegex  = tokenRegex{regexp.MustCompile(`^(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`), `^(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`}
	prefixRegex  = tokenRegex{regexp.MustCompile(`^([+-]?((\d+\.?\d*|\.\d+)([eE][+-]?\d+)?|(?i:infinity|inf))|(?i:nan))`), `^([+-]?((\d+\.?\d*|\.\d+)([eE][+-]?\d+)?|(?i:infinity|inf))|(?i:nan))`}
	identRegex   = tokenRegex{regexp.MustCompile(`^[A-Za-z0-9_]*`), `^[A-Za-z0-9_]*`}
	boolRegex    = tokenRegex{regexp.MustCompile(`^(?i)(true|false)`), `^(?i)(true|false)`}
	compareRegex = tokenRegex{regexp.MustCompile(`^(==|!=|<=|>=|<|>)`), `^(==|!=|<=|>=|<|>)`}
)

// MatchNumber matches an unsigned number literal at the start of s.
func MatchNumber(s string) (string, bool) {
	m := numberRegex.Pattern.FindString(s)
	return m, m != ""
}

// MatchIdent matches an identifier at the start of s. The match may be empty.
func MatchIdent(s string) string {
	return identRegex.Pattern.FindString(s)
}

// MatchBool matches a case-insensitive true/false keyword at the start of s.
// The keyword must not be followed by a letter or digit; an underscore ends it.
func MatchBool(s string) (value bool, lexeme string, ok bool) {
	m := boolRegex.Pattern.FindString(s)
	if m == "" || (len(s) > len(m) && isAlnum(s[len(m)])) {
		return false, "", false
	}
	return strings.EqualFold(m, "true"), m, true
}

// MatchComparison matches a comparison operator at the start of s, longest first.
func MatchComparison(s string) (string, bool) {
	m := compareRegex.Pattern.FindString(s)
	return m, m != ""
}

// NumericPrefix returns the signed number at the start of s, after leading
// whitespace, or "" when s does not start with one. Infinities and nan are
// accepted in any case, so stored inf and nan values read back unchanged.
func NumericPrefix(s string) string {
	return prefixRegex.Pattern.FindString(strings.TrimLeft(s, " \t\r\n\v\f"))
}

func isAlnum(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9')
}
