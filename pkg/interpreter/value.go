package interpreter

import (
	"math"
	"strconv"

	"claro/pkg/parser"
)

type ValueKind int

const (
	KindInt ValueKind = iota
	KindFloat
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Variable is one named entry of the variable table. Every value is kept as
// text; the kind only records where it came from.
type Variable struct {
	Name  string
	Kind  ValueKind
	Value string
}

// Number returns the numeric interpretation of the stored text
func (v Variable) Number() float64 {
	return parser.ToNumber(v.Value)
}

// FormatNumber renders a number the way it is stored back into a variable:
// six significant digits, %g style, with inf, -inf and nan spelled in lower case.
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// newNumber creates a numeric variable, tagged Int when the value is integral
func newNumber(name string, f float64) Variable {
	kind := KindFloat
	if !math.IsInf(f, 0) && f == math.Trunc(f) {
		kind = KindInt
	}
	return Variable{Name: name, Kind: kind, Value: FormatNumber(f)}
}

// newString creates a text variable
func newString(name, s string) Variable {
	return Variable{Name: name, Kind: KindString, Value: s}
}
